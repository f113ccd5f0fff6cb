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
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/audit"
)

// excludedAuditPaths lists path prefixes that should not generate audit entries.
var excludedAuditPaths = []string{
	"/health",
	"/metrics",
}

// refusalFunc is called when a request is rejected by scopeMiddleware.
type refusalFunc func(c echo.Context, code int, reason string)

// recordRefusal writes a security entry for a rejected request. Writes are
// asynchronous so a slow store never delays the response.
func (s *Server) recordRefusal(
	c echo.Context,
	code int,
	reason string,
) {
	if s.recorder == nil {
		return
	}

	path := c.Request().URL.Path
	for _, prefix := range excludedAuditPaths {
		if strings.HasPrefix(path, prefix) {
			return
		}
	}

	ctx := context.WithoutCancel(c.Request().Context())
	description := fmt.Sprintf("Acesso negado: %s %s", c.Request().Method, path)
	details := fmt.Sprintf("status=%d motivo=%s ip=%s", code, reason, c.RealIP())

	go func() {
		entry := s.recorder.Append(ctx, audit.KindSecurity, description, details)
		s.logger.Debug(
			"recorded refused request",
			slog.String("entry_id", entry.ID),
			slog.Int("status", code),
		)
	}()
}
