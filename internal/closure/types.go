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

// Package closure manages monthly financial closures and answers which
// billing periods are locked.
package closure

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/prevencar/vistoria/internal/store"
)

// ErrUnauthorized is returned when the actor may not close a month.
var ErrUnauthorized = errors.New("unauthorized: closing a month requires the admin or financeiro role")

// Closure is one closed billing period.
type Closure struct {
	ID string `json:"id"`
	// Month is the YYYY-MM key of the closed period.
	Month string `json:"mes"`
	// Closed is always true; closures are never reopened.
	Closed bool `json:"fechado"`
	// Date is the YYYY-MM-DD day the month was closed.
	Date string `json:"data_fechamento"`
	// ClosedBy is the display name of the closing user.
	ClosedBy string `json:"usuario_fechou"`
	// Total is the sum of every inspection value of the month.
	Total decimal.Decimal `json:"total_valor"`
}

// Key returns the storage key.
func (c Closure) Key() string {
	return c.ID
}

// Store persists closures.
type Store interface {
	Put(ctx context.Context, c Closure) error
	List(ctx context.Context) ([]Closure, error)
}

// NewStore returns the closures collection of backend.
func NewStore(
	logger *slog.Logger,
	backend store.Backend,
) *store.Collection[Closure] {
	return store.NewCollection(
		logger,
		backend,
		store.CollectionClosures,
		Closure.Key,
	)
}

// MonthSet is a snapshot of closed month keys.
type MonthSet map[string]struct{}

// NewMonthSet builds a set from month keys.
func NewMonthSet(
	months ...string,
) MonthSet {
	set := make(MonthSet, len(months))
	for _, m := range months {
		set[m] = struct{}{}
	}

	return set
}

// Contains reports whether month is closed.
func (s MonthSet) Contains(
	month string,
) bool {
	_, ok := s[month]
	return ok
}

// Sorted returns the months in ascending order.
func (s MonthSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)

	return out
}
