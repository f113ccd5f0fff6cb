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

package guard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/inspection"
)

const meterName = "github.com/prevencar/vistoria/internal/guard"

// Engine evaluates mutation intents.
type Engine struct {
	now       func() time.Time
	decisions metric.Int64Counter
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used to stamp payment dates.
func WithClock(
	now func() time.Time,
) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMeterProvider records decision counts on mp instead of the global
// provider.
func WithMeterProvider(
	mp metric.MeterProvider,
) Option {
	return func(e *Engine) {
		e.decisions = newDecisionCounter(mp)
	}
}

// New creates an Engine.
func New(
	opts ...Option,
) *Engine {
	e := &Engine{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.decisions == nil {
		e.decisions = newDecisionCounter(otel.GetMeterProvider())
	}

	return e
}

func newDecisionCounter(
	mp metric.MeterProvider,
) metric.Int64Counter {
	counter, err := mp.Meter(meterName).Int64Counter(
		"vistoria.guard.decisions",
		metric.WithDescription("Number of guard decisions by operation and reason."),
	)
	if err != nil {
		otel.Handle(err)
	}

	return counter
}

// Evaluate decides intent against the closed months. Rules apply in order
// and the first match wins: a closed month denies, a paid but incomplete
// result denies, anything else is allowed with payment fields derived.
func (e *Engine) Evaluate(
	ctx context.Context,
	intent Intent,
	closed closure.MonthSet,
) Decision {
	var d Decision
	switch intent.Operation {
	case OperationBulk:
		d = e.evaluateBulk(intent, closed)
	default:
		d = e.evaluateSave(intent, closed)
	}

	if e.decisions != nil {
		e.decisions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", string(intent.Operation)),
			attribute.String("reason", string(d.Reason)),
		))
	}

	return d
}

func (e *Engine) evaluateSave(
	intent Intent,
	closed closure.MonthSet,
) Decision {
	record := intent.Record

	months := []string{record.Month}
	if intent.Current != nil && intent.Current.Month != record.Month {
		months = append(months, intent.Current.Month)
	}
	if hit := closedIn(closed, months...); len(hit) > 0 {
		return deny(
			ReasonClosedPeriod,
			fmt.Sprintf("period %s is closed", strings.Join(hit, ", ")),
			&audit.Event{
				Kind:        audit.KindSecurity,
				Description: fmt.Sprintf("Tentativa de salvar ficha em mês fechado (%s)", strings.Join(hit, ", ")),
				Details:     "ID Ficha: " + record.ID,
			},
		)
	}

	settles := savedSettles(record, intent.Current)
	derived := e.derive(record, intent.Current, settles)

	if derived.ViolatesPaymentInvariant() {
		return deny(
			ReasonIncompletePayment,
			fmt.Sprintf("record %s is incomplete and cannot be marked as paid", record.ID),
			incompletePaymentEvent(derived.LicensePlate),
		)
	}

	return Decision{
		Allowed: true,
		Reason:  ReasonAllowed,
		Records: []inspection.Inspection{derived},
	}
}

func (e *Engine) evaluateBulk(
	intent Intent,
	closed closure.MonthSet,
) Decision {
	ids := make([]string, 0, len(intent.Targets))
	months := make([]string, 0, len(intent.Targets))
	for _, t := range intent.Targets {
		ids = append(ids, t.ID)
		months = append(months, t.Month)
	}
	idList := strings.Join(ids, ", ")

	if hit := closedIn(closed, months...); len(hit) > 0 {
		return deny(
			ReasonClosedPeriod,
			fmt.Sprintf("period %s is closed", strings.Join(hit, ", ")),
			&audit.Event{
				Kind:        audit.KindSecurity,
				Description: fmt.Sprintf("Tentativa de atualização em lote em mês fechado (%s)", strings.Join(hit, ", ")),
				Details:     "Fichas: " + idList,
			},
		)
	}

	settles := intent.Patch.SettlesPayment()
	today := e.now().Format(inspection.DateLayout)
	records := make([]inspection.Inspection, 0, len(intent.Targets))
	for _, t := range intent.Targets {
		derived := intent.Patch.Apply(t)
		if settles {
			derived.PaymentStatus = inspection.PaymentPaid
			derived.PaymentDate = today
		}

		if derived.ViolatesPaymentInvariant() {
			return deny(
				ReasonIncompletePayment,
				fmt.Sprintf("record %s is incomplete and cannot be marked as paid", t.ID),
				incompletePaymentEvent(derived.LicensePlate),
			)
		}

		records = append(records, derived)
	}

	return Decision{
		Allowed: true,
		Reason:  ReasonAllowed,
		Records: records,
		Event: &audit.Event{
			Kind:        audit.KindFinancial,
			Description: fmt.Sprintf("Atualização em lote realizada para %d fichas.", len(ids)),
			Details:     "Fichas: " + idList,
		},
	}
}

// derive forces the paid state on a saved record when settles is set. A
// payment date carried by the write wins, then the date of an already paid
// record, then today. Bulk updates always stamp today instead.
func (e *Engine) derive(
	record inspection.Inspection,
	current *inspection.Inspection,
	settles bool,
) inspection.Inspection {
	out := record.Clone()
	if !settles {
		return out
	}

	out.PaymentStatus = inspection.PaymentPaid

	switch {
	case out.PaymentDate != "" && (current == nil || out.PaymentDate != current.PaymentDate):
		// keep the date carried by the write
	case current != nil &&
		current.PaymentStatus == inspection.PaymentPaid &&
		current.PaymentDate != "":
		out.PaymentDate = current.PaymentDate
	default:
		out.PaymentDate = e.now().Format(inspection.DateLayout)
	}

	return out
}

// savedSettles reports whether a save changes the workflow to completed or
// picks a settling payment method. Unchanged values do not count.
func savedSettles(
	record inspection.Inspection,
	current *inspection.Inspection,
) bool {
	if current == nil {
		return record.Status == inspection.StatusCompleted ||
			record.PaymentMethod.SettlesPayment()
	}

	if record.Status == inspection.StatusCompleted && current.Status != inspection.StatusCompleted {
		return true
	}

	return record.PaymentMethod != current.PaymentMethod &&
		record.PaymentMethod.SettlesPayment()
}

func closedIn(
	closed closure.MonthSet,
	months ...string,
) []string {
	hit := closure.NewMonthSet()
	for _, m := range months {
		if closed.Contains(m) {
			hit[m] = struct{}{}
		}
	}

	return hit.Sorted()
}

func incompletePaymentEvent(
	plate string,
) *audit.Event {
	return &audit.Event{
		Kind:        audit.KindSecurity,
		Description: "Tentativa de registrar pagamento em ficha incompleta",
		Details:     "Placa: " + plate,
	}
}

func deny(
	reason Reason,
	message string,
	event *audit.Event,
) Decision {
	return Decision{
		Reason:  reason,
		Message: message,
		Event:   event,
	}
}
