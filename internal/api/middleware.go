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
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/authtoken"
)

// Context key constants for injecting user identity into handlers.
const (
	ContextKeySubject = "auth.subject"
	ContextKeyRoles   = "auth.roles"
)

// scopeMiddleware validates JWT tokens, attaches the token's actor to the
// request context and checks that the resolved permissions include at least
// one of requiredScopes. No requiredScopes means any valid token passes.
func scopeMiddleware(
	tokenManager TokenValidator,
	signingKey string,
	customRoles map[string][]string,
	refused refusalFunc,
	requiredScopes ...string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				refused(c, http.StatusUnauthorized, "missing bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, "Bearer token required")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokenManager.Validate(tokenString, signingKey)
			if err != nil {
				refused(c, http.StatusUnauthorized, "invalid token")
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token: "+err.Error())
			}

			req := c.Request()
			c.SetRequest(req.WithContext(actor.WithActor(req.Context(), claims.Actor())))
			c.Set(ContextKeySubject, claims.Subject)
			c.Set(ContextKeyRoles, claims.Roles)

			if len(requiredScopes) == 0 {
				return next(c)
			}

			resolved := authtoken.ResolvePermissions(
				claims.Roles,
				claims.Permissions,
				customRoles,
			)

			for _, required := range requiredScopes {
				if authtoken.HasPermission(resolved, required) {
					return next(c)
				}
			}

			refused(c, http.StatusForbidden, "missing "+strings.Join(requiredScopes, ", "))

			granted := make([]string, 0, len(resolved))
			for p := range resolved {
				granted = append(granted, p)
			}
			slices.Sort(granted)

			return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf(
				"Insufficient permissions. Required: %v, resolved: %v",
				requiredScopes,
				granted,
			))
		}
	}
}

// requirePermission guards a route with scopeMiddleware using the server's
// signing key, custom roles and security recorder.
func (s *Server) requirePermission(
	requiredScopes ...string,
) echo.MiddlewareFunc {
	return scopeMiddleware(
		s.tokens,
		s.appConfig.API.Server.Security.SigningKey,
		s.customRoles,
		s.recordRefusal,
		requiredScopes...,
	)
}
