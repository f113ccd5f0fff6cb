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

package inspection

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/prevencar/vistoria/internal/store"
)

// Store persists inspection records.
type Store interface {
	Get(ctx context.Context, id string) (*Inspection, error)
	Put(ctx context.Context, record Inspection) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Inspection, error)
}

// NewStore returns the inspections collection of backend.
func NewStore(
	logger *slog.Logger,
	backend store.Backend,
) *store.Collection[Inspection] {
	return store.NewCollection(
		logger,
		backend,
		store.CollectionInspections,
		Inspection.Key,
	)
}

// Filter selects records for listing. Zero fields match everything.
type Filter struct {
	Month         string
	Status        Status
	PaymentStatus PaymentStatus
	Inspector     string
	// Plate matches case-insensitively as a substring.
	Plate string
}

// Match reports whether r passes the filter.
func (f Filter) Match(
	r Inspection,
) bool {
	if f.Month != "" && r.Month != f.Month {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.PaymentStatus != "" && r.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.Inspector != "" && r.Inspector != f.Inspector {
		return false
	}
	if f.Plate != "" &&
		!strings.Contains(strings.ToUpper(r.LicensePlate), strings.ToUpper(f.Plate)) {
		return false
	}

	return true
}

// Apply filters records and orders them newest date first, then by id
// descending.
func (f Filter) Apply(
	records []Inspection,
) []Inspection {
	out := make([]Inspection, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Date != out[b].Date {
			return out[a].Date > out[b].Date
		}
		return out[a].ID > out[b].ID
	})

	return out
}

// InMonth returns the records billed to month.
func InMonth(
	records []Inspection,
	month string,
) []Inspection {
	return Filter{Month: month}.Apply(records)
}
