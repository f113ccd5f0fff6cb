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

package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/api/common"
	"github.com/prevencar/vistoria/internal/authtoken"
)

const testSigningKey = "test-signing-key-for-middleware"

type refusal struct {
	code   int
	reason string
}

type MiddlewareTestSuite struct {
	suite.Suite

	logger       *slog.Logger
	tokenManager *authtoken.Token
}

func (s *MiddlewareTestSuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.tokenManager = authtoken.New(s.logger)
}

func (s *MiddlewareTestSuite) generateToken(
	roles []string,
	permissions []string,
) string {
	token, err := s.tokenManager.Generate(
		testSigningKey,
		roles,
		"7",
		permissions,
		authtoken.WithName("Carla Financeiro"),
	)
	s.Require().NoError(err)

	return token
}

func (s *MiddlewareTestSuite) TestScopeMiddleware() {
	customRoles := map[string][]string{
		actor.RoleInspector: {authtoken.PermInspectionRead, authtoken.PermReportRead},
	}

	tests := []struct {
		name           string
		authHeader     func() string
		customRoles    map[string][]string
		requiredScopes []string
		wantCode       int
		wantCalled     bool
		wantRefusal    *refusal
	}{
		{
			name:           "no auth header returns 401",
			authHeader:     func() string { return "" },
			requiredScopes: []string{authtoken.PermInspectionRead},
			wantCode:       http.StatusUnauthorized,
			wantRefusal:    &refusal{code: http.StatusUnauthorized, reason: "missing bearer token"},
		},
		{
			name:           "non-bearer auth header returns 401",
			authHeader:     func() string { return "Basic dXNlcjpwYXNz" },
			requiredScopes: []string{authtoken.PermInspectionRead},
			wantCode:       http.StatusUnauthorized,
			wantRefusal:    &refusal{code: http.StatusUnauthorized, reason: "missing bearer token"},
		},
		{
			name:           "invalid token returns 401",
			authHeader:     func() string { return "Bearer invalid-token-string" },
			requiredScopes: []string{authtoken.PermInspectionRead},
			wantCode:       http.StatusUnauthorized,
			wantRefusal:    &refusal{code: http.StatusUnauthorized, reason: "invalid token"},
		},
		{
			name: "role with permission calls handler",
			authHeader: func() string {
				return "Bearer " + s.generateToken([]string{actor.RoleFinance}, nil)
			},
			requiredScopes: []string{authtoken.PermClosureWrite},
			wantCode:       http.StatusOK,
			wantCalled:     true,
		},
		{
			name: "role without permission returns 403",
			authHeader: func() string {
				return "Bearer " + s.generateToken([]string{actor.RoleInspector}, nil)
			},
			requiredScopes: []string{authtoken.PermClosureWrite},
			wantCode:       http.StatusForbidden,
			wantRefusal:    &refusal{code: http.StatusForbidden, reason: "missing closure:write"},
		},
		{
			name: "any of several scopes is enough",
			authHeader: func() string {
				return "Bearer " + s.generateToken([]string{actor.RoleInspector}, nil)
			},
			requiredScopes: []string{authtoken.PermClosureWrite, authtoken.PermInspectionRead},
			wantCode:       http.StatusOK,
			wantCalled:     true,
		},
		{
			name: "custom role overrides built in permissions",
			authHeader: func() string {
				return "Bearer " + s.generateToken([]string{actor.RoleInspector}, nil)
			},
			customRoles:    customRoles,
			requiredScopes: []string{authtoken.PermReportRead},
			wantCode:       http.StatusOK,
			wantCalled:     true,
		},
		{
			name: "direct permissions replace role permissions",
			authHeader: func() string {
				return "Bearer " + s.generateToken(
					[]string{actor.RoleAdmin},
					[]string{authtoken.PermHealthRead},
				)
			},
			requiredScopes: []string{authtoken.PermUserWrite},
			wantCode:       http.StatusForbidden,
			wantRefusal:    &refusal{code: http.StatusForbidden, reason: "missing user:write"},
		},
		{
			name: "no required scopes accepts any valid token",
			authHeader: func() string {
				return "Bearer " + s.generateToken([]string{actor.RoleInspector}, nil)
			},
			wantCode:   http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var (
				called bool
				seen   actor.Actor
				got    *refusal
			)

			e := echo.New()
			e.HTTPErrorHandler = common.ErrorHandler(s.logger)
			mw := scopeMiddleware(
				s.tokenManager,
				testSigningKey,
				tt.customRoles,
				func(_ echo.Context, code int, reason string) {
					got = &refusal{code: code, reason: reason}
				},
				tt.requiredScopes...,
			)
			e.GET("/test", func(c echo.Context) error {
				called = true
				seen = common.Actor(c)
				return c.NoContent(http.StatusOK)
			}, mw)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if header := tt.authHeader(); header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			s.Equal(tt.wantCode, rec.Code)
			s.Equal(tt.wantCalled, called)
			s.Equal(tt.wantRefusal, got)
			if tt.wantCalled {
				s.Equal("7", seen.ID)
				s.Equal("Carla Financeiro", seen.Name)
			}
		})
	}
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
