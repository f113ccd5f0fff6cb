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

// Package audit provides the audit log API handlers.
package audit

import (
	"context"
	"log/slog"

	auditstore "github.com/prevencar/vistoria/internal/audit"
)

// Store reads audit entries.
type Store interface {
	Get(ctx context.Context, id string) (*auditstore.Entry, error)
	List(ctx context.Context, limit int, offset int) ([]auditstore.Entry, int, error)
}

// Audit implementation of the audit log API operations.
type Audit struct {
	// Store provides the entries.
	Store     Store
	batchSize int
	logger    *slog.Logger
}

// ListParams pages GET /audit.
type ListParams struct {
	Limit  int `query:"limit"  validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"gte=0"`
}

// New factory to create a new instance. batchSize is the page size used
// when exporting the whole log.
func New(
	logger *slog.Logger,
	store Store,
	batchSize int,
) *Audit {
	return &Audit{
		Store:     store,
		batchSize: batchSize,
		logger:    logger.With(slog.String("handler", "audit")),
	}
}
