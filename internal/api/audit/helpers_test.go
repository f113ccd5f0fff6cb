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
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	auditapi "github.com/prevencar/vistoria/internal/api/audit"
	"github.com/prevencar/vistoria/internal/api/common"
	auditstore "github.com/prevencar/vistoria/internal/audit"
)

// fakeStore is a simple in-memory audit store for handler tests.
type fakeStore struct {
	// Get
	getEntry *auditstore.Entry
	getErr   error

	// List
	listEntries []auditstore.Entry
	listTotal   int
	listErr     error
	limits      []int
	offsets     []int
}

func (f *fakeStore) Get(
	_ context.Context,
	_ string,
) (*auditstore.Entry, error) {
	return f.getEntry, f.getErr
}

func (f *fakeStore) List(
	_ context.Context,
	limit int,
	offset int,
) ([]auditstore.Entry, int, error) {
	f.limits = append(f.limits, limit)
	f.offsets = append(f.offsets, offset)
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	if offset >= len(f.listEntries) {
		return []auditstore.Entry{}, f.listTotal, nil
	}
	end := offset + limit
	if end > len(f.listEntries) {
		end = len(f.listEntries)
	}

	return f.listEntries[offset:end], f.listTotal, nil
}

func newEntries(
	n int,
) []auditstore.Entry {
	entries := make([]auditstore.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, auditstore.Entry{
			ID:          fmt.Sprintf("01J%03d", n-i),
			Timestamp:   time.Date(2024, 6, 21, 10, 0, n-i, 0, time.UTC),
			UserID:      "1",
			UserName:    "Admin Principal",
			Kind:        auditstore.KindOperational,
			Description: "Usuário Admin Principal realizou login.",
		})
	}

	return entries
}

// serve registers the audit routes on a fresh echo and runs one request.
func serve(
	store auditapi.Store,
	batchSize int,
	target string,
) *httptest.ResponseRecorder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := auditapi.New(logger, store, batchSize)

	e := echo.New()
	e.HTTPErrorHandler = common.ErrorHandler(logger)
	e.GET("/audit", h.GetAuditLogs)
	e.GET("/audit/export", h.GetAuditExport)
	e.GET("/audit/:id", h.GetAuditLogByID)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))

	return rec
}
