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

// Package audit provides the append-only audit log: entry types, storage and
// the recorder used by every component that reports user actions.
package audit

import (
	"context"
	"time"
)

// Kind classifies an audit entry.
type Kind string

// Kind values.
const (
	KindOperational Kind = "operacional"
	KindFinancial   Kind = "financeiro"
	KindSecurity    Kind = "seguranca"
)

// Valid reports whether k is a known value.
func (k Kind) Valid() bool {
	switch k {
	case KindOperational, KindFinancial, KindSecurity:
		return true
	}
	return false
}

// DefaultRetention is the number of entries kept when no retention is
// configured.
const DefaultRetention = 1000

// Entry represents a single audit log record.
type Entry struct {
	// ID is a ULID, so ids sort in creation order.
	ID string `json:"id"`
	// Timestamp is when the action happened.
	Timestamp time.Time `json:"timestamp"`
	// UserID identifies the acting user, "anonymous" when unknown.
	UserID string `json:"userId"`
	// UserName is the acting user's display name, "Sistema" when unknown.
	UserName string `json:"userName"`
	// Kind is the entry category.
	Kind Kind `json:"type"`
	// Description is the human readable summary.
	Description string `json:"description"`
	// Details carries optional free-form context.
	Details string `json:"details,omitempty"`
}

// Event is an entry that has not been stamped or stored yet.
type Event struct {
	Kind        Kind
	Description string
	Details     string
}

// Store persists audit entries.
type Store interface {
	// Write persists an entry.
	Write(ctx context.Context, entry Entry) error
	// Get returns one entry by id.
	Get(ctx context.Context, id string) (*Entry, error)
	// List returns a page of entries, newest first, plus the total count.
	List(ctx context.Context, limit int, offset int) ([]Entry, int, error)
	// Prune removes all but the newest keep entries and returns how many
	// were removed.
	Prune(ctx context.Context, keep int) (int, error)
}
