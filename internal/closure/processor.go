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
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/ids"
	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/telemetry"
)

// InspectionLister returns every stored inspection.
type InspectionLister interface {
	List(ctx context.Context) ([]inspection.Inspection, error)
}

// Recorder appends audit entries.
type Recorder interface {
	Append(ctx context.Context, kind audit.Kind, description string, details string) audit.Entry
}

// Processor closes billing months.
type Processor struct {
	logger      *slog.Logger
	closures    Store
	inspections InspectionLister
	recorder    Recorder
	now         func() time.Time
}

// NewProcessor creates a Processor.
func NewProcessor(
	logger *slog.Logger,
	closures Store,
	inspections InspectionLister,
	recorder Recorder,
) *Processor {
	return &Processor{
		logger:      logger,
		closures:    closures,
		inspections: inspections,
		recorder:    recorder,
		now:         time.Now,
	}
}

// SetClock replaces the wall clock. Used by tests.
func (p *Processor) SetClock(
	now func() time.Time,
) {
	p.now = now
}

// CanClose reports whether a may close months.
func CanClose(
	a actor.Actor,
) bool {
	return a.HasAnyRole(actor.RoleAdmin, actor.RoleFinance)
}

// CloseMonth locks month and stores a closure holding the sum of every
// inspection value billed to it. Calling it again for the same month
// stores another closure.
func (p *Processor) CloseMonth(
	ctx context.Context,
	month string,
	who actor.Actor,
) (*Closure, error) {
	ctx, span := telemetry.StartSpan(ctx, "closure.close_month")
	defer span.End()

	if !CanClose(who) {
		return nil, ErrUnauthorized
	}

	records, err := p.inspections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}

	total := decimal.Zero
	for _, r := range records {
		if r.Month == month {
			total = total.Add(r.TotalValue)
		}
	}

	now := p.now()
	c := Closure{
		ID:       ids.NewAt(now),
		Month:    month,
		Closed:   true,
		Date:     now.Format(inspection.DateLayout),
		ClosedBy: who.Name,
		Total:    total,
	}

	if err := p.closures.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("store closure: %w", err)
	}

	p.logger.Info(
		"month closed",
		slog.String("month", month),
		slog.String("closure_id", c.ID),
		slog.String("total", total.StringFixed(2)),
		slog.String("user", who.Name),
	)

	p.recorder.Append(
		ctx,
		audit.KindFinancial,
		fmt.Sprintf("Mês %s fechado.", month),
		fmt.Sprintf("Total: %s", total.StringFixed(2)),
	)

	return &c, nil
}
