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

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/ids"
)

// Recorder appends entries to a Store on behalf of the acting user. It
// never returns storage errors to the caller; they are logged instead.
type Recorder struct {
	store     Store
	logger    *slog.Logger
	retention int
	now       func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRetention caps the number of retained entries. Zero or less keeps
// DefaultRetention.
func WithRetention(
	n int,
) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.retention = n
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(
	now func() time.Time,
) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(
	logger *slog.Logger,
	store Store,
	opts ...RecorderOption,
) *Recorder {
	r := &Recorder{
		store:     store,
		logger:    logger,
		retention: DefaultRetention,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Append records an entry for the actor in ctx and trims the log to the
// retention. The stamped entry is returned whether or not it was stored.
func (r *Recorder) Append(
	ctx context.Context,
	kind Kind,
	description string,
	details string,
) Entry {
	who := actor.FromContext(ctx)
	now := r.now()

	entry := Entry{
		ID:          ids.NewAt(now),
		Timestamp:   now,
		UserID:      who.ID,
		UserName:    who.Name,
		Kind:        kind,
		Description: description,
		Details:     details,
	}

	if err := r.store.Write(ctx, entry); err != nil {
		r.logger.Warn(
			"failed to write audit entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID),
			slog.String("type", string(kind)),
		)
		return entry
	}

	removed, err := r.store.Prune(ctx, r.retention)
	if err != nil {
		r.logger.Warn(
			"failed to prune audit log",
			slog.String("error", err.Error()),
			slog.Int("retention", r.retention),
		)
	} else if removed > 0 {
		r.logger.Debug(
			"pruned audit log",
			slog.Int("removed", removed),
			slog.Int("retention", r.retention),
		)
	}

	return entry
}

// Record appends a prepared event. A nil event is ignored.
func (r *Recorder) Record(
	ctx context.Context,
	event *Event,
) {
	if event == nil {
		return
	}

	r.Append(ctx, event.Kind, event.Description, event.Details)
}
