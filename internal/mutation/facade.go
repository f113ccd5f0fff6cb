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

// Package mutation is the single write path for inspection records. Every
// save and bulk update is checked by the guard engine before it reaches the
// store.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/guard"
	"github.com/prevencar/vistoria/internal/ids"
	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/telemetry"
	"github.com/prevencar/vistoria/internal/validation"
)

var (
	// ErrNotFound is returned when an inspection does not exist.
	ErrNotFound = errors.New("inspection not found")
	// ErrInvalid is returned when a record or patch fails validation.
	ErrInvalid = errors.New("invalid inspection")
)

// Evaluator decides mutation intents.
type Evaluator interface {
	Evaluate(ctx context.Context, intent guard.Intent, closed closure.MonthSet) guard.Decision
}

// MonthRegistry reports closed months.
type MonthRegistry interface {
	ClosedMonths(ctx context.Context) (closure.MonthSet, error)
}

// EventRecorder appends guard events to the audit log.
type EventRecorder interface {
	Record(ctx context.Context, event *audit.Event)
}

// Facade guards and applies inspection mutations.
type Facade struct {
	logger   *slog.Logger
	store    inspection.Store
	guard    Evaluator
	registry MonthRegistry
	recorder EventRecorder
}

// New creates a Facade.
func New(
	logger *slog.Logger,
	records inspection.Store,
	engine Evaluator,
	registry MonthRegistry,
	recorder EventRecorder,
) *Facade {
	return &Facade{
		logger:   logger,
		store:    records,
		guard:    engine,
		registry: registry,
		recorder: recorder,
	}
}

// Get returns one inspection.
func (f *Facade) Get(
	ctx context.Context,
	id string,
) (*inspection.Inspection, error) {
	r, err := f.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get inspection: %w", err)
	}

	return r, nil
}

// List returns the inspections matching filter, newest date first.
func (f *Facade) List(
	ctx context.Context,
	filter inspection.Filter,
) ([]inspection.Inspection, error) {
	records, err := f.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}

	return filter.Apply(records), nil
}

// Save inserts or replaces record. Defaults are filled and an id is
// generated when empty. A denied write returns a *guard.DeniedError after
// recording its audit event.
func (f *Facade) Save(
	ctx context.Context,
	record inspection.Inspection,
) (*inspection.Inspection, error) {
	ctx, span := telemetry.StartSpan(ctx, "inspection.save")
	defer span.End()

	record = record.Clone()
	record.ApplyDefaults()
	if record.ID == "" {
		record.ID = ids.New()
	}

	closed, err := f.registry.ClosedMonths(ctx)
	if err != nil {
		return nil, err
	}

	// A write into a closed month is refused and audited even when the
	// record is malformed.
	if closed.Contains(record.Month) {
		d := f.guard.Evaluate(ctx, guard.Save(record, nil), closed)
		return nil, f.refuse(ctx, guard.OperationSave, d)
	}

	if errMsg, ok := validation.Struct(record); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, errMsg)
	}

	current, err := f.store.Get(ctx, record.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("get inspection: %w", err)
		}
		current = nil
	}

	d := f.guard.Evaluate(ctx, guard.Save(record, current), closed)
	if !d.Allowed {
		return nil, f.refuse(ctx, guard.OperationSave, d)
	}

	saved := d.Records[0]
	if err := f.store.Put(ctx, saved); err != nil {
		return nil, fmt.Errorf("save inspection: %w", err)
	}

	f.logger.Debug(
		"inspection saved",
		slog.String("id", saved.ID),
		slog.String("month", saved.Month),
		slog.Bool("insert", current == nil),
	)

	return &saved, nil
}

// Delete removes the inspection. Deleting a missing record, or one billed
// to a closed month, does nothing and returns nil.
func (f *Facade) Delete(
	ctx context.Context,
	id string,
) error {
	current, err := f.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get inspection: %w", err)
	}

	closed, err := f.registry.ClosedMonths(ctx)
	if err != nil {
		return err
	}

	if closed.Contains(current.Month) {
		f.logger.Info(
			"delete ignored for closed month",
			slog.String("id", id),
			slog.String("month", current.Month),
		)
		return nil
	}

	if err := f.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete inspection: %w", err)
	}

	return nil
}

// BulkUpdate merges patch over every listed inspection. Either all records
// are written or none are; a single financial audit entry summarizes a
// successful batch. A patch that settles payment (status Concluída or a
// paying method) on a target whose status_ficha is Incompleta is refused
// with guard.ErrIncompletePayment, even though the patch itself never sets
// the payment status.
func (f *Facade) BulkUpdate(
	ctx context.Context,
	idList []string,
	patch inspection.Patch,
) ([]inspection.Inspection, error) {
	ctx, span := telemetry.StartSpan(ctx, "inspection.bulk_update")
	defer span.End()

	idList = unique(idList)
	if len(idList) == 0 {
		return nil, fmt.Errorf("%w: no inspection ids given", ErrInvalid)
	}

	if errMsg, ok := validation.Struct(patch); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, errMsg)
	}

	targets := make([]inspection.Inspection, 0, len(idList))
	for _, id := range idList {
		r, err := f.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		targets = append(targets, *r)
	}

	closed, err := f.registry.ClosedMonths(ctx)
	if err != nil {
		return nil, err
	}

	d := f.guard.Evaluate(ctx, guard.Bulk(targets, patch), closed)
	if !d.Allowed {
		return nil, f.refuse(ctx, guard.OperationBulk, d)
	}

	for i, r := range d.Records {
		if err := f.store.Put(ctx, r); err != nil {
			f.rollback(ctx, targets[:i])
			return nil, fmt.Errorf("bulk update inspection %s: %w", r.ID, err)
		}
	}

	f.recorder.Record(ctx, d.Event)

	f.logger.Info(
		"bulk update applied",
		slog.Int("count", len(d.Records)),
	)

	return d.Records, nil
}

// rollback restores records already written by a failed batch.
func (f *Facade) rollback(
	ctx context.Context,
	originals []inspection.Inspection,
) {
	for _, r := range originals {
		if err := f.store.Put(ctx, r); err != nil {
			f.logger.Error(
				"failed to restore inspection after bulk failure",
				slog.String("id", r.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (f *Facade) refuse(
	ctx context.Context,
	op guard.Operation,
	d guard.Decision,
) error {
	f.logger.Warn(
		"inspection mutation denied",
		slog.String("operation", string(op)),
		slog.String("reason", string(d.Reason)),
		slog.String("message", d.Message),
	)

	f.recorder.Record(ctx, d.Event)

	return d.Err()
}

func unique(
	in []string,
) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, id := range in {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
