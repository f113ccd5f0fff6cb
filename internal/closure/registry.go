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

package closure

import (
	"context"
	"fmt"
	"sort"
)

// Registry answers which months are closed from the stored closures.
type Registry struct {
	store Store
}

// NewRegistry creates a Registry over store.
func NewRegistry(
	store Store,
) *Registry {
	return &Registry{store: store}
}

// ClosedMonths returns a fresh snapshot of every closed month.
func (r *Registry) ClosedMonths(
	ctx context.Context,
) (MonthSet, error) {
	closures, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list closures: %w", err)
	}

	set := make(MonthSet, len(closures))
	for _, c := range closures {
		if c.Closed {
			set[c.Month] = struct{}{}
		}
	}

	return set, nil
}

// IsClosed reports whether month is closed.
func (r *Registry) IsClosed(
	ctx context.Context,
	month string,
) (bool, error) {
	set, err := r.ClosedMonths(ctx)
	if err != nil {
		return false, err
	}

	return set.Contains(month), nil
}

// List returns every closure, newest month first. Closures of the same
// month keep creation order.
func (r *Registry) List(
	ctx context.Context,
) ([]Closure, error) {
	closures, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list closures: %w", err)
	}

	sort.SliceStable(closures, func(a, b int) bool {
		if closures[a].Month != closures[b].Month {
			return closures[a].Month > closures[b].Month
		}
		return closures[a].ID < closures[b].ID
	})

	return closures, nil
}
