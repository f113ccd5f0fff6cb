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

// Package guard decides whether a proposed inspection mutation may be
// written. It holds no state: every call receives the closed months and the
// records in question.
package guard

import (
	"errors"

	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/inspection"
)

// Sentinel errors matched by DeniedError.
var (
	// ErrClosedPeriod is returned when a write targets a closed month.
	ErrClosedPeriod = errors.New("closed period")
	// ErrIncompletePayment is returned when a write would mark an incomplete
	// record as paid.
	ErrIncompletePayment = errors.New("incomplete payment violation")
)

// Reason classifies a decision.
type Reason string

// Reason values.
const (
	ReasonAllowed           Reason = "allowed"
	ReasonClosedPeriod      Reason = "closed_period"
	ReasonIncompletePayment Reason = "incomplete_payment"
)

// DeniedError is the caller-visible form of a deny decision.
type DeniedError struct {
	Reason  Reason
	Message string
}

// Error implements error.
func (e *DeniedError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel for the reason.
func (e *DeniedError) Unwrap() error {
	switch e.Reason {
	case ReasonClosedPeriod:
		return ErrClosedPeriod
	case ReasonIncompletePayment:
		return ErrIncompletePayment
	}

	return nil
}

// Operation identifies the kind of mutation.
type Operation string

// Operation values.
const (
	OperationSave Operation = "save"
	OperationBulk Operation = "bulk"
)

// Intent describes a proposed mutation.
type Intent struct {
	Operation Operation
	// Record is the full incoming record of a save.
	Record inspection.Inspection
	// Current is the stored version of Record, nil on insert.
	Current *inspection.Inspection
	// Targets are the stored records a bulk update applies to.
	Targets []inspection.Inspection
	// Patch is the partial update of a bulk operation.
	Patch inspection.Patch
}

// Save returns the intent to upsert record over current.
func Save(
	record inspection.Inspection,
	current *inspection.Inspection,
) Intent {
	return Intent{
		Operation: OperationSave,
		Record:    record,
		Current:   current,
	}
}

// Bulk returns the intent to merge patch over every target.
func Bulk(
	targets []inspection.Inspection,
	patch inspection.Patch,
) Intent {
	return Intent{
		Operation: OperationBulk,
		Targets:   targets,
		Patch:     patch,
	}
}

// Decision is the outcome of Evaluate.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
	// Records holds the records to write, with derived fields applied. Empty
	// on deny.
	Records []inspection.Inspection
	// Event is the audit event the caller must record, if any.
	Event *audit.Event
}

// Err returns nil for an allow and a *DeniedError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	return &DeniedError{
		Reason:  d.Reason,
		Message: d.Message,
	}
}
