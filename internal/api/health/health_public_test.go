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

package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/api/health"
)

type HealthPublicTestSuite struct {
	suite.Suite

	logger *slog.Logger
}

func (s *HealthPublicTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *HealthPublicTestSuite) serve(
	h *health.Health,
	target string,
) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/health", h.GetHealth)
	e.GET("/health/ready", h.GetHealthReady)
	e.GET("/health/status", h.GetHealthStatus)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func okChecker() *health.ComponentChecker {
	return &health.ComponentChecker{
		Checks: []health.Check{
			{Name: "store", Fn: func(context.Context) error { return nil }},
		},
	}
}

func failingChecker() *health.ComponentChecker {
	return &health.ComponentChecker{
		Checks: []health.Check{
			{Name: "store", Fn: func(context.Context) error { return nil }},
			{Name: "nats", Fn: func(context.Context) error { return errors.New("nats not connected") }},
		},
	}
}

func (s *HealthPublicTestSuite) TestGetHealth() {
	h := health.New(s.logger, failingChecker(), time.Now(), "0.1.0", nil)

	rec := s.serve(h, "/health")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *HealthPublicTestSuite) TestGetHealthReady() {
	tests := []struct {
		name     string
		checker  health.Checker
		wantCode int
		wantBody string
	}{
		{
			name:     "ready when all checks pass",
			checker:  okChecker(),
			wantCode: http.StatusOK,
			wantBody: `{"status":"ready"}`,
		},
		{
			name:     "not ready when a check fails",
			checker:  failingChecker(),
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"status":"not_ready","error":"nats: nats not connected"}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			h := health.New(s.logger, tt.checker, time.Now(), "0.1.0", nil)

			rec := s.serve(h, "/health/ready")

			s.Equal(tt.wantCode, rec.Code)
			s.JSONEq(tt.wantBody, rec.Body.String())
		})
	}
}

func (s *HealthPublicTestSuite) TestGetHealthStatus() {
	metrics := &health.ClosureMetricsProvider{
		CollectionStatsFn: func(context.Context) ([]health.CollectionMetrics, error) {
			return []health.CollectionMetrics{
				{Name: "users", Keys: 1},
				{Name: "inspections", Keys: 12},
			}, nil
		},
		ClosedMonthsFn: func(context.Context) ([]string, error) {
			return []string{"2024-04", "2024-06"}, nil
		},
	}
	brokenMetrics := &health.ClosureMetricsProvider{
		CollectionStatsFn: func(context.Context) ([]health.CollectionMetrics, error) {
			return nil, errors.New("keys failed")
		},
		ClosedMonthsFn: func(context.Context) ([]string, error) {
			return nil, errors.New("closures failed")
		},
	}

	tests := []struct {
		name         string
		checker      health.Checker
		metrics      health.MetricsProvider
		wantCode     int
		validateFunc func(resp health.StatusResponse)
	}{
		{
			name:     "ok with metrics",
			checker:  okChecker(),
			metrics:  metrics,
			wantCode: http.StatusOK,
			validateFunc: func(resp health.StatusResponse) {
				s.Equal("ok", resp.Status)
				s.Equal("1.2.3", resp.Version)
				s.Equal("ok", resp.Components["store"].Status)
				s.Require().Len(resp.Collections, 2)
				s.Equal("inspections", resp.Collections[0].Name)
				s.Equal(12, resp.Collections[0].Keys)
				s.Equal([]string{"2024-04", "2024-06"}, resp.ClosedMonths)
			},
		},
		{
			name:     "degraded when a component fails",
			checker:  failingChecker(),
			metrics:  nil,
			wantCode: http.StatusServiceUnavailable,
			validateFunc: func(resp health.StatusResponse) {
				s.Equal("degraded", resp.Status)
				s.Equal("ok", resp.Components["store"].Status)
				s.Equal("error", resp.Components["nats"].Status)
				s.Equal("nats not connected", resp.Components["nats"].Error)
				s.Empty(resp.Collections)
			},
		},
		{
			name:     "metrics failures are skipped",
			checker:  okChecker(),
			metrics:  brokenMetrics,
			wantCode: http.StatusOK,
			validateFunc: func(resp health.StatusResponse) {
				s.Equal("ok", resp.Status)
				s.Nil(resp.Collections)
				s.Nil(resp.ClosedMonths)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			h := health.New(s.logger, tt.checker, time.Now().Add(-time.Minute), "1.2.3", tt.metrics)

			rec := s.serve(h, "/health/status")

			s.Equal(tt.wantCode, rec.Code)
			var resp health.StatusResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			s.NotEmpty(resp.Uptime)
			tt.validateFunc(resp)
		})
	}
}

func TestHealthPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HealthPublicTestSuite))
}
