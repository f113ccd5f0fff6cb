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
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	catalogapi "github.com/prevencar/vistoria/internal/api/catalog"
	"github.com/prevencar/vistoria/internal/api/common"
	catalogstore "github.com/prevencar/vistoria/internal/catalog"
	"github.com/prevencar/vistoria/internal/store"
)

type CatalogPublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	e       *echo.Echo
	catalog *catalogstore.Catalog
}

func (s *CatalogPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.catalog = catalogstore.New(logger, store.NewMemory())
	s.Require().NoError(s.catalog.Seed(s.ctx))

	h := catalogapi.New(logger, s.catalog)
	s.e = echo.New()
	s.e.HTTPErrorHandler = common.ErrorHandler(logger)
	s.e.GET("/catalog/services", h.GetServices)
	s.e.GET("/catalog/services/:id", h.GetServiceByID)
	s.e.PUT("/catalog/services", h.PutService)
	s.e.DELETE("/catalog/services/:id", h.DeleteService)
	s.e.GET("/catalog/indications", h.GetIndications)
	s.e.GET("/catalog/indications/:id", h.GetIndicationByID)
	s.e.PUT("/catalog/indications", h.PutIndication)
	s.e.DELETE("/catalog/indications/:id", h.DeleteIndication)
}

func (s *CatalogPublicTestSuite) do(
	method string,
	target string,
	body string,
) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec
}

func (s *CatalogPublicTestSuite) TestServices() {
	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		wantCode     int
		validateFunc func(body []byte)
	}{
		{
			name:     "lists the seeded services",
			method:   http.MethodGet,
			target:   "/catalog/services",
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp common.ListResponse[catalogstore.Service]
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Equal(len(catalogstore.DefaultServices()), resp.TotalItems)
			},
		},
		{
			name:     "gets one service",
			method:   http.MethodGet,
			target:   "/catalog/services/2",
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				s.Contains(string(body), `"name":"Laudo Cautelar"`)
			},
		},
		{
			name:     "unknown service is not found",
			method:   http.MethodGet,
			target:   "/catalog/services/99",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "creates a service with a generated id",
			method:   http.MethodPut,
			target:   "/catalog/services",
			body:     `{"name":"Pesquisa Veicular","price":"45.50"}`,
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var got catalogstore.Service
				s.Require().NoError(json.Unmarshal(body, &got))
				s.NotEmpty(got.ID)
				s.Equal("45.5", got.Price.String())
			},
		},
		{
			name:     "negative price is a bad request",
			method:   http.MethodPut,
			target:   "/catalog/services",
			body:     `{"name":"Pesquisa Veicular","price":"-1"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "deletes a service",
			method:   http.MethodDelete,
			target:   "/catalog/services/1",
			wantCode: http.StatusNoContent,
			validateFunc: func(_ []byte) {
				_, err := s.catalog.Service(s.ctx, "1")
				s.ErrorIs(err, catalogstore.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.target, tt.body)

			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.Bytes())
			}
		})
	}
}

func (s *CatalogPublicTestSuite) TestIndications() {
	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		wantCode     int
		validateFunc func(body []byte)
	}{
		{
			name:     "creates an indication",
			method:   http.MethodPut,
			target:   "/catalog/indications",
			body:     `{"id":"IND-1","name":"Despachante Silva","email":"silva@example.com"}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "lists the indications",
			method:   http.MethodGet,
			target:   "/catalog/indications",
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var resp common.ListResponse[catalogstore.Indication]
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Require().Len(resp.Items, 1)
				s.Equal("Despachante Silva", resp.Items[0].Name)
			},
		},
		{
			name:     "gets one indication",
			method:   http.MethodGet,
			target:   "/catalog/indications/IND-1",
			wantCode: http.StatusOK,
		},
		{
			name:     "invalid email is a bad request",
			method:   http.MethodPut,
			target:   "/catalog/indications",
			body:     `{"name":"Despachante","email":"nope"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "deletes the indication",
			method:   http.MethodDelete,
			target:   "/catalog/indications/IND-1",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "deleted indication is not found",
			method:   http.MethodGet,
			target:   "/catalog/indications/IND-1",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.target, tt.body)

			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.Bytes())
			}
		})
	}
}

func TestCatalogPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogPublicTestSuite))
}
