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

package catalog_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/catalog"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/store/mocks"
)

type CatalogPublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	catalog *catalog.Catalog
}

func (s *CatalogPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.catalog = catalog.New(slog.Default(), store.NewMemory())
}

func (s *CatalogPublicTestSuite) TestSeed() {
	s.Require().NoError(s.catalog.Seed(s.ctx))

	services, err := s.catalog.Services(s.ctx)
	s.Require().NoError(err)
	s.Len(services, 6)
	s.Equal("Laudo Cautelar", services[0].Name)

	_, err = s.catalog.SaveService(s.ctx, catalog.Service{ID: "1", Name: "Laudo de Transferência", Price: decimal.NewFromInt(120)})
	s.Require().NoError(err)

	s.Require().NoError(s.catalog.Seed(s.ctx))

	got, err := s.catalog.Service(s.ctx, "1")
	s.Require().NoError(err)
	s.True(got.Price.Equal(decimal.NewFromInt(120)))
}

func (s *CatalogPublicTestSuite) TestSaveService() {
	tests := []struct {
		name    string
		service catalog.Service
		wantErr error
	}{
		{
			name:    "generates id",
			service: catalog.Service{Name: "Vistoria Móvel", Price: decimal.NewFromInt(200)},
		},
		{
			name:    "missing name",
			service: catalog.Service{Price: decimal.NewFromInt(10)},
			wantErr: catalog.ErrInvalid,
		},
		{
			name:    "negative price",
			service: catalog.Service{Name: "Desconto", Price: decimal.NewFromInt(-5)},
			wantErr: catalog.ErrInvalid,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.catalog.SaveService(s.ctx, tt.service)

			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				s.Nil(got)
				return
			}
			s.Require().NoError(err)
			s.NotEmpty(got.ID)

			stored, err := s.catalog.Service(s.ctx, got.ID)
			s.Require().NoError(err)
			s.Equal(tt.service.Name, stored.Name)
		})
	}
}

func (s *CatalogPublicTestSuite) TestPriceOf() {
	s.Require().NoError(s.catalog.Seed(s.ctx))

	total, unknown, err := s.catalog.PriceOf(s.ctx, []string{"Laudo de Transferência", "Pesquisa", "Pesquisa", "Polimento"})

	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(200)))
	s.Equal([]string{"Polimento"}, unknown)
}

func (s *CatalogPublicTestSuite) TestIndications() {
	saved, err := s.catalog.SaveIndication(s.ctx, catalog.Indication{
		Name:  "Peças AutoSul",
		Email: "contato@autosul.com",
	})
	s.Require().NoError(err)

	_, err = s.catalog.SaveIndication(s.ctx, catalog.Indication{Name: "Mecânica Rápida"})
	s.Require().NoError(err)

	_, err = s.catalog.SaveIndication(s.ctx, catalog.Indication{Name: "X", Email: "not-an-email"})
	s.ErrorIs(err, catalog.ErrInvalid)

	items, err := s.catalog.Indications(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 2)
	s.Equal("Mecânica Rápida", items[0].Name)

	s.Require().NoError(s.catalog.DeleteIndication(s.ctx, saved.ID))
	_, err = s.catalog.Indication(s.ctx, saved.ID)
	s.ErrorIs(err, catalog.ErrNotFound)

	s.NoError(s.catalog.DeleteIndication(s.ctx, "missing"))
}

func (s *CatalogPublicTestSuite) TestBackendFailures() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	c := catalog.New(slog.Default(), backend)

	s.Run("seed listing failure", func() {
		backend.EXPECT().
			Keys(gomock.Any(), store.CollectionServices).
			Return(nil, errors.New("kv down"))

		s.ErrorContains(c.Seed(s.ctx), "kv down")
	})

	s.Run("seed write failure", func() {
		backend.EXPECT().
			Keys(gomock.Any(), store.CollectionServices).
			Return([]string{}, nil)
		backend.EXPECT().
			Put(gomock.Any(), store.CollectionServices, "1", gomock.Any()).
			Return(errors.New("kv down"))

		s.ErrorContains(c.Seed(s.ctx), "seed service Laudo de Transferência")
	})

	s.Run("get failure is not a not found", func() {
		backend.EXPECT().
			Get(gomock.Any(), store.CollectionServices, "1").
			Return(nil, errors.New("kv down"))

		_, err := c.Service(s.ctx, "1")
		s.Error(err)
		s.False(errors.Is(err, catalog.ErrNotFound))
	})
}

func TestCatalogPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogPublicTestSuite))
}
