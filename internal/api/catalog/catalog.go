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

// Package catalog provides the service and indication API handlers.
package catalog

import (
	"context"
	"log/slog"

	catalogstore "github.com/prevencar/vistoria/internal/catalog"
)

// Store manages catalog entries.
type Store interface {
	Services(ctx context.Context) ([]catalogstore.Service, error)
	Service(ctx context.Context, id string) (*catalogstore.Service, error)
	SaveService(ctx context.Context, s catalogstore.Service) (*catalogstore.Service, error)
	DeleteService(ctx context.Context, id string) error
	Indications(ctx context.Context) ([]catalogstore.Indication, error)
	Indication(ctx context.Context, id string) (*catalogstore.Indication, error)
	SaveIndication(ctx context.Context, i catalogstore.Indication) (*catalogstore.Indication, error)
	DeleteIndication(ctx context.Context, id string) error
}

// Catalog implementation of the catalog API operations.
type Catalog struct {
	Store  Store
	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	store Store,
) *Catalog {
	return &Catalog{
		Store:  store,
		logger: logger.With(slog.String("handler", "catalog")),
	}
}
