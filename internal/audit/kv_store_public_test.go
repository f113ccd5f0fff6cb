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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/store/mocks"
)

type KVStorePublicTestSuite struct {
	suite.Suite

	ctx   context.Context
	store *audit.KVStore
}

func (s *KVStorePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = audit.NewKVStore(slog.Default(), store.NewMemory())
}

func (s *KVStorePublicTestSuite) newEntry(
	id string,
) audit.Entry {
	return audit.Entry{
		ID:          id,
		Timestamp:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		UserID:      "1",
		UserName:    "Admin Principal",
		Kind:        audit.KindOperational,
		Description: "Usuário Admin Principal realizou login.",
	}
}

func (s *KVStorePublicTestSuite) seed(
	ids ...string,
) {
	for _, id := range ids {
		s.Require().NoError(s.store.Write(s.ctx, s.newEntry(id)))
	}
}

func (s *KVStorePublicTestSuite) TestGet() {
	s.seed("aaa")

	tests := []struct {
		name     string
		id       string
		validate func(*audit.Entry, error)
	}{
		{
			name: "successfully gets entry",
			id:   "aaa",
			validate: func(e *audit.Entry, err error) {
				s.NoError(err)
				s.Require().NotNil(e)
				s.Equal("Admin Principal", e.UserName)
				s.Equal(audit.KindOperational, e.Kind)
			},
		},
		{
			name: "returns not found for missing id",
			id:   "missing",
			validate: func(e *audit.Entry, err error) {
				s.Nil(e)
				s.ErrorIs(err, store.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			e, err := s.store.Get(s.ctx, tt.id)
			tt.validate(e, err)
		})
	}
}

func (s *KVStorePublicTestSuite) TestList() {
	s.seed("aaa", "ccc", "bbb")

	tests := []struct {
		name    string
		limit   int
		offset  int
		wantIDs []string
	}{
		{
			name:    "returns all entries newest first",
			limit:   10,
			wantIDs: []string{"ccc", "bbb", "aaa"},
		},
		{
			name:    "applies pagination correctly",
			limit:   1,
			offset:  1,
			wantIDs: []string{"bbb"},
		},
		{
			name:    "returns empty when offset exceeds total",
			limit:   10,
			offset:  100,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entries, total, err := s.store.List(s.ctx, tt.limit, tt.offset)

			s.NoError(err)
			s.Equal(3, total)

			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func (s *KVStorePublicTestSuite) TestPrune() {
	tests := []struct {
		name        string
		seed        []string
		keep        int
		wantRemoved int
		wantIDs     []string
	}{
		{
			name:        "removes oldest beyond keep",
			seed:        []string{"a", "b", "c", "d"},
			keep:        2,
			wantRemoved: 2,
			wantIDs:     []string{"d", "c"},
		},
		{
			name:        "no-op when under keep",
			seed:        []string{"a"},
			keep:        5,
			wantRemoved: 0,
			wantIDs:     []string{"a"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.store = audit.NewKVStore(slog.Default(), store.NewMemory())
			s.seed(tt.seed...)

			removed, err := s.store.Prune(s.ctx, tt.keep)
			s.NoError(err)
			s.Equal(tt.wantRemoved, removed)

			entries, _, err := s.store.List(s.ctx, 100, 0)
			s.NoError(err)
			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func (s *KVStorePublicTestSuite) TestBackendFailures() {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockBackend)
		run       func(*audit.KVStore) error
		contains  string
	}{
		{
			name: "write failure is wrapped",
			setupMock: func(m *mocks.MockBackend) {
				m.EXPECT().
					Put(gomock.Any(), store.CollectionLogs, "e1", gomock.Any()).
					Return(fmt.Errorf("kv error"))
			},
			run: func(st *audit.KVStore) error {
				return st.Write(s.ctx, s.newEntry("e1"))
			},
			contains: "put audit entry",
		},
		{
			name: "corrupt entry fails get",
			setupMock: func(m *mocks.MockBackend) {
				m.EXPECT().
					Get(gomock.Any(), store.CollectionLogs, "bad-json").
					Return([]byte("not-json"), nil)
			},
			run: func(st *audit.KVStore) error {
				_, err := st.Get(s.ctx, "bad-json")
				return err
			},
			contains: "unmarshal audit entry",
		},
		{
			name: "list skips unreadable entries",
			setupMock: func(m *mocks.MockBackend) {
				m.EXPECT().
					Keys(gomock.Any(), store.CollectionLogs).
					Return([]string{"a", "b"}, nil)
				m.EXPECT().
					Get(gomock.Any(), store.CollectionLogs, "b").
					Return(nil, errors.New("kv error"))
				m.EXPECT().
					Get(gomock.Any(), store.CollectionLogs, "a").
					Return([]byte(`{"id":"a"}`), nil)
			},
			run: func(st *audit.KVStore) error {
				entries, total, err := st.List(s.ctx, 10, 0)
				s.Equal(2, total)
				s.Len(entries, 1)
				return err
			},
		},
		{
			name: "prune stops at first delete failure",
			setupMock: func(m *mocks.MockBackend) {
				m.EXPECT().
					Keys(gomock.Any(), store.CollectionLogs).
					Return([]string{"a", "b", "c"}, nil)
				m.EXPECT().
					Delete(gomock.Any(), store.CollectionLogs, "b").
					Return(errors.New("kv error"))
			},
			run: func(st *audit.KVStore) error {
				removed, err := st.Prune(s.ctx, 1)
				s.Equal(0, removed)
				return err
			},
			contains: "delete audit entry b",
		},
		{
			name: "keys failure is wrapped",
			setupMock: func(m *mocks.MockBackend) {
				m.EXPECT().
					Keys(gomock.Any(), store.CollectionLogs).
					Return(nil, errors.New("kv error"))
			},
			run: func(st *audit.KVStore) error {
				_, _, err := st.List(s.ctx, 10, 0)
				return err
			},
			contains: "list audit keys",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			ctrl := gomock.NewController(s.T())
			defer ctrl.Finish()

			backend := mocks.NewMockBackend(ctrl)
			tt.setupMock(backend)

			err := tt.run(audit.NewKVStore(slog.Default(), backend))
			if tt.contains == "" {
				s.NoError(err)
				return
			}
			s.Error(err)
			s.Contains(err.Error(), tt.contains)
		})
	}
}

func TestKVStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(KVStorePublicTestSuite))
}
