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

package closure_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/actor"
	closureapi "github.com/prevencar/vistoria/internal/api/closure"
	"github.com/prevencar/vistoria/internal/api/common"
	"github.com/prevencar/vistoria/internal/audit"
	closurestore "github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/store"
)

type ClosurePublicTestSuite struct {
	suite.Suite

	ctx     context.Context
	logger  *slog.Logger
	backend *store.Memory
	audits  *audit.KVStore
	who     actor.Actor
}

func (s *ClosurePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.backend = store.NewMemory()
	s.audits = audit.NewKVStore(s.logger, s.backend)
	s.who = actor.Actor{ID: "3", Name: "Fernanda Financeiro", Roles: []string{actor.RoleFinance}}

	records := inspection.NewStore(s.logger, s.backend)
	for _, r := range []inspection.Inspection{
		{ID: "A", Month: "2024-06", TotalValue: decimal.NewFromInt(150)},
		{ID: "B", Month: "2024-06", TotalValue: decimal.NewFromInt(280)},
		{ID: "C", Month: "2024-05", TotalValue: decimal.NewFromInt(90)},
	} {
		s.Require().NoError(records.Put(s.ctx, r))
	}
}

func (s *ClosurePublicTestSuite) newEcho() *echo.Echo {
	closures := closurestore.NewStore(s.logger, s.backend)
	processor := closurestore.NewProcessor(
		s.logger,
		closures,
		inspection.NewStore(s.logger, s.backend),
		audit.NewRecorder(s.logger, s.audits),
	)
	processor.SetClock(func() time.Time {
		return time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC)
	})
	h := closureapi.New(s.logger, closurestore.NewRegistry(closures), processor)

	e := echo.New()
	e.HTTPErrorHandler = common.ErrorHandler(s.logger)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(actor.WithActor(c.Request().Context(), s.who)))
			return next(c)
		}
	})
	e.GET("/closures", h.GetClosures)
	e.POST("/closures", h.PostClosure)

	return e
}

func (s *ClosurePublicTestSuite) post(
	e *echo.Echo,
	body string,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/closures", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func (s *ClosurePublicTestSuite) TestPostClosure() {
	tests := []struct {
		name         string
		who          actor.Actor
		body         string
		wantCode     int
		wantEntries  int
		validateFunc func(body string)
	}{
		{
			name:        "financeiro closes june with the month total",
			who:         s.who,
			body:        `{"month":"2024-06"}`,
			wantCode:    http.StatusCreated,
			wantEntries: 1,
			validateFunc: func(body string) {
				var got closurestore.Closure
				s.Require().NoError(json.Unmarshal([]byte(body), &got))
				s.Equal("2024-06", got.Month)
				s.True(got.Closed)
				s.Equal("2024-07-02", got.Date)
				s.Equal("Fernanda Financeiro", got.ClosedBy)
				s.True(decimal.NewFromInt(430).Equal(got.Total))
			},
		},
		{
			name:        "vistoriador is forbidden",
			who:         actor.Actor{ID: "2", Name: "Carlos", Roles: []string{actor.RoleInspector}},
			body:        `{"month":"2024-06"}`,
			wantCode:    http.StatusForbidden,
			wantEntries: 0,
		},
		{
			name:        "malformed month is a bad request",
			who:         s.who,
			body:        `{"month":"06/2024"}`,
			wantCode:    http.StatusBadRequest,
			wantEntries: 0,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.who = tt.who

			rec := s.post(s.newEcho(), tt.body)

			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.String())
			}

			_, total, err := s.audits.List(s.ctx, 10, 0)
			s.Require().NoError(err)
			s.Equal(tt.wantEntries, total)
		})
	}
}

func (s *ClosurePublicTestSuite) TestGetClosures() {
	e := s.newEcho()
	s.Equal(http.StatusCreated, s.post(e, `{"month":"2024-05"}`).Code)
	s.Equal(http.StatusCreated, s.post(e, `{"month":"2024-06"}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/closures", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)

	var resp common.ListResponse[closurestore.Closure]
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Items, 2)
	s.Equal("2024-06", resp.Items[0].Month)
	s.Equal("2024-05", resp.Items[1].Month)
}

func TestClosurePublicTestSuite(t *testing.T) {
	suite.Run(t, new(ClosurePublicTestSuite))
}
