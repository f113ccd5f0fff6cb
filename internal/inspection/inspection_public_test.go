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

package inspection_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/validation"
)

type InspectionPublicTestSuite struct {
	suite.Suite
}

func (s *InspectionPublicTestSuite) newRecord() inspection.Inspection {
	return inspection.Inspection{
		ID:               "INS-001",
		Date:             "2024-05-10",
		VehicleModel:     "Honda Civic",
		LicensePlate:     "ABC-1234",
		SelectedServices: []string{"Laudo de Transferência", "Pesquisa"},
		Inspector:        "Cris Vistoriador",
		TotalValue:       decimal.NewFromInt(150),
		PaymentMethod:    inspection.MethodPIX,
		RecordStatus:     inspection.RecordComplete,
		PaymentStatus:    inspection.PaymentPaid,
		Status:           inspection.StatusCompleted,
		Month:            "2024-05",
	}
}

func (s *InspectionPublicTestSuite) TestValidation() {
	tests := []struct {
		name     string
		mutate   func(*inspection.Inspection)
		wantOK   bool
		contains string
	}{
		{
			name:   "when record is valid",
			mutate: func(_ *inspection.Inspection) {},
			wantOK: true,
		},
		{
			name:     "when payment method is unknown",
			mutate:   func(r *inspection.Inspection) { r.PaymentMethod = "Boleto" },
			contains: "PaymentMethod",
		},
		{
			name:     "when total is negative",
			mutate:   func(r *inspection.Inspection) { r.TotalValue = decimal.NewFromInt(-5) },
			contains: "TotalValue",
		},
		{
			name:     "when month is malformed",
			mutate:   func(r *inspection.Inspection) { r.Month = "05/2024" },
			contains: "month_key",
		},
		{
			name:     "when date is malformed",
			mutate:   func(r *inspection.Inspection) { r.Date = "10/05/2024" },
			contains: "Date",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			r := s.newRecord()
			tt.mutate(&r)

			msg, ok := validation.Struct(r)
			s.Equal(tt.wantOK, ok)
			s.Contains(msg, tt.contains)
		})
	}
}

func (s *InspectionPublicTestSuite) TestApplyDefaults() {
	r := inspection.Inspection{ID: "INS-002", Date: "2024-06-03"}

	r.ApplyDefaults()

	s.Equal(inspection.RecordIncomplete, r.RecordStatus)
	s.Equal(inspection.PaymentPending, r.PaymentStatus)
	s.Equal(inspection.StatusInProgress, r.Status)
	s.Equal("2024-06", r.Month)
}

func (s *InspectionPublicTestSuite) TestViolatesPaymentInvariant() {
	r := s.newRecord()
	s.False(r.ViolatesPaymentInvariant())

	r.RecordStatus = inspection.RecordIncomplete
	s.True(r.ViolatesPaymentInvariant())

	r.PaymentStatus = inspection.PaymentPending
	s.False(r.ViolatesPaymentInvariant())
}

func (s *InspectionPublicTestSuite) TestPatchApply() {
	status := inspection.StatusAtCashier
	nfe := "8812"
	patch := inspection.Patch{Status: &status, NFe: &nfe}

	original := s.newRecord()
	got := patch.Apply(original)

	s.Equal(inspection.StatusAtCashier, got.Status)
	s.Equal("8812", got.NFe)
	s.Equal(original.PaymentMethod, got.PaymentMethod)
	s.Equal(inspection.StatusCompleted, original.Status)

	got.SelectedServices[0] = "changed"
	s.Equal("Laudo de Transferência", original.SelectedServices[0])
}

func (s *InspectionPublicTestSuite) TestPatchSettlesPayment() {
	completed := inspection.StatusCompleted
	cashier := inspection.StatusAtCashier
	pix := inspection.MethodPIX
	later := inspection.MethodToBePaid

	tests := []struct {
		name  string
		patch inspection.Patch
		want  bool
	}{
		{name: "empty patch", patch: inspection.Patch{}, want: false},
		{name: "completed status", patch: inspection.Patch{Status: &completed}, want: true},
		{name: "other status", patch: inspection.Patch{Status: &cashier}, want: false},
		{name: "settling method", patch: inspection.Patch{PaymentMethod: &pix}, want: true},
		{name: "to-be-paid method", patch: inspection.Patch{PaymentMethod: &later}, want: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, tt.patch.SettlesPayment())
		})
	}

	s.True(inspection.Patch{}.IsEmpty())
	s.False(inspection.Patch{Status: &cashier}.IsEmpty())
}

func (s *InspectionPublicTestSuite) TestFilterApply() {
	a := s.newRecord()
	b := s.newRecord()
	b.ID = "INS-002"
	b.Date = "2024-05-20"
	b.LicensePlate = "XYZ-5678"
	b.PaymentStatus = inspection.PaymentPending
	c := s.newRecord()
	c.ID = "INS-003"
	c.Month = "2024-06"
	c.Date = "2024-06-01"

	records := []inspection.Inspection{a, b, c}

	tests := []struct {
		name    string
		filter  inspection.Filter
		wantIDs []string
	}{
		{
			name:    "empty filter orders newest first",
			filter:  inspection.Filter{},
			wantIDs: []string{"INS-003", "INS-002", "INS-001"},
		},
		{
			name:    "month filter",
			filter:  inspection.Filter{Month: "2024-05"},
			wantIDs: []string{"INS-002", "INS-001"},
		},
		{
			name:    "plate substring ignores case",
			filter:  inspection.Filter{Plate: "xyz"},
			wantIDs: []string{"INS-002"},
		},
		{
			name:    "payment status filter",
			filter:  inspection.Filter{PaymentStatus: inspection.PaymentPaid},
			wantIDs: []string{"INS-003", "INS-001"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got := tt.filter.Apply(records)

			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func TestInspectionPublicTestSuite(t *testing.T) {
	suite.Run(t, new(InspectionPublicTestSuite))
}
