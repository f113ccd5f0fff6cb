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

package audit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/audit/mocks"
	"github.com/prevencar/vistoria/internal/store"
)

type RecorderPublicTestSuite struct {
	suite.Suite

	ctx   context.Context
	store *audit.KVStore
	clock time.Time
}

func (s *RecorderPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = audit.NewKVStore(slog.Default(), store.NewMemory())
	s.clock = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
}

// tick advances the fake clock one second per call.
func (s *RecorderPublicTestSuite) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *RecorderPublicTestSuite) TestAppendStampsActor() {
	tests := []struct {
		name     string
		ctx      context.Context
		wantID   string
		wantName string
	}{
		{
			name:     "uses anonymous fallback without actor",
			ctx:      s.ctx,
			wantID:   actor.AnonymousID,
			wantName: actor.AnonymousName,
		},
		{
			name: "uses context actor",
			ctx: actor.WithActor(s.ctx, actor.Actor{
				ID:   "4",
				Name: "Joana Financeiro",
			}),
			wantID:   "4",
			wantName: "Joana Financeiro",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			r := audit.NewRecorder(slog.Default(), s.store, audit.WithClock(s.tick))

			entry := r.Append(tt.ctx, audit.KindFinancial, "Atualização em lote", "Fichas: INS-001")

			stored, err := s.store.Get(s.ctx, entry.ID)
			s.Require().NoError(err)
			s.Equal(tt.wantID, stored.UserID)
			s.Equal(tt.wantName, stored.UserName)
			s.Equal(audit.KindFinancial, stored.Kind)
			s.Equal("Fichas: INS-001", stored.Details)
			s.True(stored.Timestamp.Equal(s.clock))
		})
	}
}

func (s *RecorderPublicTestSuite) TestRetentionKeepsNewest() {
	r := audit.NewRecorder(slog.Default(), s.store, audit.WithClock(s.tick))

	var first, last audit.Entry
	for i := 0; i < audit.DefaultRetention+1; i++ {
		e := r.Append(s.ctx, audit.KindOperational, "evento", "")
		if i == 0 {
			first = e
		}
		last = e
	}

	entries, total, err := s.store.List(s.ctx, 2*audit.DefaultRetention, 0)
	s.NoError(err)
	s.Equal(audit.DefaultRetention, total)
	s.Len(entries, audit.DefaultRetention)
	s.Equal(last.ID, entries[0].ID)

	_, err = s.store.Get(s.ctx, first.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *RecorderPublicTestSuite) TestCustomRetention() {
	r := audit.NewRecorder(
		slog.Default(),
		s.store,
		audit.WithClock(s.tick),
		audit.WithRetention(3),
	)

	for i := 0; i < 5; i++ {
		r.Append(s.ctx, audit.KindOperational, "evento", "")
	}

	_, total, err := s.store.List(s.ctx, 10, 0)
	s.NoError(err)
	s.Equal(3, total)
}

func (s *RecorderPublicTestSuite) TestFailuresAreSwallowed() {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockStore)
		wantLog   string
	}{
		{
			name: "write failure is logged and prune skipped",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("kv down"))
			},
			wantLog: "failed to write audit entry",
		},
		{
			name: "prune failure is logged",
			setupMock: func(m *mocks.MockStore) {
				m.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
				m.EXPECT().
					Prune(gomock.Any(), audit.DefaultRetention).
					Return(0, errors.New("kv down"))
			},
			wantLog: "failed to prune audit log",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			ctrl := gomock.NewController(s.T())
			defer ctrl.Finish()

			mockStore := mocks.NewMockStore(ctrl)
			tt.setupMock(mockStore)

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			r := audit.NewRecorder(logger, mockStore)

			s.NotPanics(func() {
				entry := r.Append(s.ctx, audit.KindSecurity, "Tentativa", "")
				s.NotEmpty(entry.ID)
			})
			s.Contains(buf.String(), tt.wantLog)
		})
	}
}

func (s *RecorderPublicTestSuite) TestRecordIgnoresNil() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	r := audit.NewRecorder(slog.Default(), mocks.NewMockStore(ctrl))

	s.NotPanics(func() { r.Record(s.ctx, nil) })
}

func TestRecorderPublicTestSuite(t *testing.T) {
	suite.Run(t, new(RecorderPublicTestSuite))
}
