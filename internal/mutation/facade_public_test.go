// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package mutation_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/guard"
	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/mutation"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/store/mocks"
)

type FacadePublicTestSuite struct {
	suite.Suite

	ctx         context.Context
	logger      *slog.Logger
	backend     *store.Memory
	inspections *store.Collection[inspection.Inspection]
	auditStore  *audit.KVStore
	recorder    *audit.Recorder
	registry    *closure.Registry
	processor   *closure.Processor
	engine      *guard.Engine
	facade      *mutation.Facade
}

func (s *FacadePublicTestSuite) SetupTest() {
	s.logger = slog.Default()
	s.ctx = actor.WithActor(context.Background(), actor.Actor{
		ID:    "1",
		Name:  "Admin Principal",
		Roles: []string{actor.RoleAdmin},
	})
	s.backend = store.NewMemory()
	s.inspections = inspection.NewStore(s.logger, s.backend)
	s.auditStore = audit.NewKVStore(s.logger, s.backend)
	s.recorder = audit.NewRecorder(s.logger, s.auditStore)

	closures := closure.NewStore(s.logger, s.backend)
	s.registry = closure.NewRegistry(closures)
	s.processor = closure.NewProcessor(s.logger, closures, s.inspections, s.recorder)
	s.engine = guard.New(guard.WithClock(func() time.Time {
		return time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	}))
	s.facade = mutation.New(s.logger, s.inspections, s.engine, s.registry, s.recorder)
}

func (s *FacadePublicTestSuite) newRecord(
	id string,
	month string,
) inspection.Inspection {
	return inspection.Inspection{
		ID:               id,
		Date:             month + "-15",
		VehicleModel:     "Onix",
		LicensePlate:     "PLT-" + id,
		SelectedServices: []string{"Laudo Cautelar"},
		Inspector:        "Cris",
		TotalValue:       decimal.NewFromInt(250),
		PaymentMethod:    inspection.MethodToBePaid,
		RecordStatus:     inspection.RecordComplete,
		PaymentStatus:    inspection.PaymentPending,
		Status:           inspection.StatusInProgress,
		Month:            month,
	}
}

func (s *FacadePublicTestSuite) seed(
	records ...inspection.Inspection,
) {
	for _, r := range records {
		s.Require().NoError(s.inspections.Put(s.ctx, r))
	}
}

func (s *FacadePublicTestSuite) closeMonth(
	month string,
) {
	_, err := s.processor.CloseMonth(s.ctx, month, actor.FromContext(s.ctx))
	s.Require().NoError(err)
}

func (s *FacadePublicTestSuite) auditEntries() []audit.Entry {
	entries, _, err := s.auditStore.List(s.ctx, 100, 0)
	s.Require().NoError(err)
	return entries
}

func (s *FacadePublicTestSuite) stored() []inspection.Inspection {
	records, err := s.inspections.List(s.ctx)
	s.Require().NoError(err)
	return records
}

func (s *FacadePublicTestSuite) TestSaveIncompletePaymentScenario() {
	existing := s.newRecord("INS-010", "2024-05")
	existing.RecordStatus = inspection.RecordIncomplete
	s.seed(existing)

	update := existing
	update.PaymentStatus = inspection.PaymentPaid

	saved, err := s.facade.Save(s.ctx, update)

	s.Nil(saved)
	s.ErrorIs(err, guard.ErrIncompletePayment)

	var denied *guard.DeniedError
	s.True(errors.As(err, &denied))
	s.Equal(guard.ReasonIncompletePayment, denied.Reason)

	s.Equal([]inspection.Inspection{existing}, s.stored())

	entries := s.auditEntries()
	s.Require().Len(entries, 1)
	s.Equal(audit.KindSecurity, entries[0].Kind)
	s.Equal("Tentativa de registrar pagamento em ficha incompleta", entries[0].Description)
	s.Equal("Placa: PLT-INS-010", entries[0].Details)
	s.Equal("Admin Principal", entries[0].UserName)
}

func (s *FacadePublicTestSuite) TestSaveClosedMonthScenario() {
	existing := s.newRecord("INS-004", "2024-04")
	s.seed(existing)
	s.closeMonth("2024-04")

	tests := []struct {
		name   string
		record inspection.Inspection
	}{
		{
			name: "update of existing record",
			record: func() inspection.Inspection {
				r := existing
				r.VehicleModel = "HB20"
				return r
			}(),
		},
		{
			name:   "insert of new record",
			record: s.newRecord("INS-NEW", "2024-04"),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			before := len(s.auditEntries())

			saved, err := s.facade.Save(s.ctx, tt.record)

			s.Nil(saved)
			s.ErrorIs(err, guard.ErrClosedPeriod)
			s.Equal([]inspection.Inspection{existing}, s.stored())

			entries := s.auditEntries()
			s.Len(entries, before+1)
			s.Equal(audit.KindSecurity, entries[0].Kind)
			s.Equal("Tentativa de salvar ficha em mês fechado (2024-04)", entries[0].Description)
			s.Equal("ID Ficha: "+tt.record.ID, entries[0].Details)
		})
	}
}

func (s *FacadePublicTestSuite) TestSaveIsIdempotent() {
	r := s.newRecord("INS-001", "2024-05")

	first, err := s.facade.Save(s.ctx, r)
	s.Require().NoError(err)
	afterFirst := s.stored()

	second, err := s.facade.Save(s.ctx, r)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(afterFirst, s.stored())
	s.Empty(s.auditEntries())
}

func (s *FacadePublicTestSuite) TestSaveDefaults() {
	r := inspection.Inspection{
		Date:         "2024-05-03",
		LicensePlate: "XYZ-9876",
		TotalValue:   decimal.NewFromInt(80),
	}

	saved, err := s.facade.Save(s.ctx, r)

	s.Require().NoError(err)
	s.NotEmpty(saved.ID)
	s.Equal("2024-05", saved.Month)
	s.Equal(inspection.RecordIncomplete, saved.RecordStatus)
	s.Equal(inspection.PaymentPending, saved.PaymentStatus)
	s.Equal(inspection.StatusInProgress, saved.Status)

	got, err := s.facade.Get(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved, got)
}

func (s *FacadePublicTestSuite) TestSaveValidation() {
	tests := []struct {
		name   string
		record inspection.Inspection
	}{
		{
			name:   "missing plate",
			record: inspection.Inspection{ID: "INS-1", Month: "2024-05"},
		},
		{
			name:   "missing month and date",
			record: inspection.Inspection{ID: "INS-1", LicensePlate: "ABC-1234"},
		},
		{
			name: "negative value",
			record: inspection.Inspection{
				ID:           "INS-1",
				Month:        "2024-05",
				LicensePlate: "ABC-1234",
				TotalValue:   decimal.NewFromInt(-1),
			},
		},
		{
			name: "unknown payment method",
			record: inspection.Inspection{
				ID:            "INS-1",
				Month:         "2024-05",
				LicensePlate:  "ABC-1234",
				PaymentMethod: "Cheque",
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			saved, err := s.facade.Save(s.ctx, tt.record)

			s.Nil(saved)
			s.ErrorIs(err, mutation.ErrInvalid)
			s.Empty(s.stored())
		})
	}
}

func (s *FacadePublicTestSuite) TestSaveClosedMonthBeforeValidation() {
	s.closeMonth("2024-04")
	before := len(s.auditEntries())

	saved, err := s.facade.Save(s.ctx, inspection.Inspection{
		ID:    "INS-077",
		Date:  "2024-04-18",
		Month: "2024-04",
	})

	s.Nil(saved)
	s.ErrorIs(err, guard.ErrClosedPeriod)
	s.NotErrorIs(err, mutation.ErrInvalid)
	s.Empty(s.stored())

	entries := s.auditEntries()
	s.Require().Len(entries, before+1)
	s.Equal(audit.KindSecurity, entries[0].Kind)
	s.Equal("Tentativa de salvar ficha em mês fechado (2024-04)", entries[0].Description)
	s.Equal("ID Ficha: INS-077", entries[0].Details)
}

func (s *FacadePublicTestSuite) TestDelete() {
	open := s.newRecord("INS-005", "2024-05")
	locked := s.newRecord("INS-004", "2024-04")
	s.seed(open, locked)
	s.closeMonth("2024-04")
	auditBefore := len(s.auditEntries())

	tests := []struct {
		name    string
		id      string
		wantIDs []string
	}{
		{
			name:    "record in closed month is kept",
			id:      "INS-004",
			wantIDs: []string{"INS-004", "INS-005"},
		},
		{
			name:    "missing record is a no-op",
			id:      "INS-404",
			wantIDs: []string{"INS-004", "INS-005"},
		},
		{
			name:    "record in open month is removed",
			id:      "INS-005",
			wantIDs: []string{"INS-004"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.NoError(s.facade.Delete(s.ctx, tt.id))

			keys, err := s.inspections.Keys(s.ctx)
			s.Require().NoError(err)
			s.Equal(tt.wantIDs, keys)
		})
	}

	s.Len(s.auditEntries(), auditBefore)
}

func (s *FacadePublicTestSuite) TestBulkUpdateClosedMonthIsAtomic() {
	a := s.newRecord("A", "2024-05")
	b := s.newRecord("B", "2024-04")
	s.seed(a, b)
	s.closeMonth("2024-04")

	status := inspection.StatusCompleted
	records, err := s.facade.BulkUpdate(s.ctx, []string{"A", "B"}, inspection.Patch{Status: &status})

	s.Nil(records)
	s.ErrorIs(err, guard.ErrClosedPeriod)
	s.Equal([]inspection.Inspection{a, b}, s.stored())

	entries := s.auditEntries()
	s.Equal(audit.KindSecurity, entries[0].Kind)
	s.Equal("Fichas: A, B", entries[0].Details)
}

func (s *FacadePublicTestSuite) TestBulkUpdateStampsPayment() {
	a := s.newRecord("A", "2024-05")
	a.PaymentMethod = inspection.MethodPIX
	b := s.newRecord("B", "2024-05")
	s.seed(a, b)

	status := inspection.StatusCompleted
	records, err := s.facade.BulkUpdate(s.ctx, []string{"A", "B", "A"}, inspection.Patch{Status: &status})

	s.Require().NoError(err)
	s.Len(records, 2)
	for _, r := range s.stored() {
		s.Equal(inspection.StatusCompleted, r.Status)
		s.Equal(inspection.PaymentPaid, r.PaymentStatus)
		s.Equal("2024-05-20", r.PaymentDate)
	}

	entries := s.auditEntries()
	s.Require().Len(entries, 1)
	s.Equal(audit.KindFinancial, entries[0].Kind)
	s.Equal("Atualização em lote realizada para 2 fichas.", entries[0].Description)
	s.Equal("Fichas: A, B", entries[0].Details)
}

func (s *FacadePublicTestSuite) TestBulkUpdateRefusals() {
	a := s.newRecord("A", "2024-05")
	s.seed(a)
	method := inspection.PaymentMethod("Cheque")

	tests := []struct {
		name    string
		ids     []string
		patch   inspection.Patch
		wantErr error
	}{
		{
			name:    "unknown id applies nothing",
			ids:     []string{"A", "missing"},
			patch:   inspection.Patch{NFe: new(string)},
			wantErr: mutation.ErrNotFound,
		},
		{
			name:    "no ids",
			ids:     []string{},
			wantErr: mutation.ErrInvalid,
		},
		{
			name:    "invalid patch",
			ids:     []string{"A"},
			patch:   inspection.Patch{PaymentMethod: &method},
			wantErr: mutation.ErrInvalid,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			records, err := s.facade.BulkUpdate(s.ctx, tt.ids, tt.patch)

			s.Nil(records)
			s.ErrorIs(err, tt.wantErr)
			s.Equal([]inspection.Inspection{a}, s.stored())
			s.Empty(s.auditEntries())
		})
	}
}

func (s *FacadePublicTestSuite) TestList() {
	s.seed(
		s.newRecord("A", "2024-05"),
		func() inspection.Inspection {
			r := s.newRecord("B", "2024-06")
			r.Date = "2024-06-01"
			return r
		}(),
		s.newRecord("C", "2024-05"),
	)

	tests := []struct {
		name    string
		filter  inspection.Filter
		wantIDs []string
	}{
		{
			name:    "all newest first",
			wantIDs: []string{"B", "C", "A"},
		},
		{
			name:    "by month",
			filter:  inspection.Filter{Month: "2024-05"},
			wantIDs: []string{"C", "A"},
		},
		{
			name:    "by plate substring",
			filter:  inspection.Filter{Plate: "plt-b"},
			wantIDs: []string{"B"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			records, err := s.facade.List(s.ctx, tt.filter)
			s.Require().NoError(err)

			got := make([]string, 0, len(records))
			for _, r := range records {
				got = append(got, r.ID)
			}
			s.Equal(tt.wantIDs, got)
		})
	}
}

func (s *FacadePublicTestSuite) TestGetNotFound() {
	r, err := s.facade.Get(s.ctx, "missing")

	s.Nil(r)
	s.ErrorIs(err, mutation.ErrNotFound)
}

func (s *FacadePublicTestSuite) TestStoreFailures() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	facade := mutation.New(
		s.logger,
		inspection.NewStore(s.logger, backend),
		s.engine,
		closure.NewRegistry(closure.NewStore(s.logger, backend)),
		s.recorder,
	)

	s.Run("save propagates put failure", func() {
		backend.EXPECT().
			Get(gomock.Any(), store.CollectionInspections, "INS-1").
			Return(nil, store.ErrNotFound)
		backend.EXPECT().
			Keys(gomock.Any(), store.CollectionClosures).
			Return(nil, nil)
		backend.EXPECT().
			Put(gomock.Any(), store.CollectionInspections, "INS-1", gomock.Any()).
			Return(errors.New("kv down"))

		saved, err := facade.Save(s.ctx, s.newRecord("INS-1", "2024-05"))
		s.Nil(saved)
		s.ErrorContains(err, "save inspection")
	})

	s.Run("get propagates backend failure", func() {
		backend.EXPECT().
			Get(gomock.Any(), store.CollectionInspections, "INS-1").
			Return(nil, errors.New("kv down"))

		s.ErrorContains(facade.Delete(s.ctx, "INS-1"), "get inspection")
	})

	s.Run("closure listing failure blocks save", func() {
		backend.EXPECT().
			Keys(gomock.Any(), store.CollectionClosures).
			Return(nil, errors.New("kv down"))

		saved, err := facade.Save(s.ctx, s.newRecord("INS-1", "2024-05"))
		s.Nil(saved)
		s.ErrorContains(err, "list closures")
	})
}

func TestFacadePublicTestSuite(t *testing.T) {
	suite.Run(t, new(FacadePublicTestSuite))
}
