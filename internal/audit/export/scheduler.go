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

package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
)

// Scheduler exports the whole audit log to a new timestamped file on a
// cron schedule.
type Scheduler struct {
	logger    *slog.Logger
	fs        afero.Fs
	dir       string
	batchSize int
	fetcher   Fetcher
	cron      *cron.Cron
	now       func() time.Time
}

// NewScheduler creates a Scheduler writing into dir.
func NewScheduler(
	logger *slog.Logger,
	fs afero.Fs,
	dir string,
	batchSize int,
	fetcher Fetcher,
) *Scheduler {
	return &Scheduler{
		logger:    logger,
		fs:        fs,
		dir:       dir,
		batchSize: batchSize,
		fetcher:   fetcher,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// SetClock replaces the wall clock used to name export files.
func (s *Scheduler) SetClock(
	now func() time.Time,
) {
	s.now = now
}

// Schedule registers the export on expr, a standard five field cron
// expression or a descriptor such as "@daily".
func (s *Scheduler) Schedule(
	expr string,
) error {
	if _, err := s.cron.AddFunc(expr, func() {
		if _, _, err := s.Export(context.Background()); err != nil {
			s.logger.Error("scheduled audit export failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return fmt.Errorf("invalid export schedule %q: %w", expr, err)
	}

	return nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running export to finish or ctx
// to end.
func (s *Scheduler) Stop(
	ctx context.Context,
) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("audit export still running at shutdown")
	}
}

// Export writes every entry to a new file and returns its path.
func (s *Scheduler) Export(
	ctx context.Context,
) (string, *Result, error) {
	path := filepath.Join(
		s.dir,
		fmt.Sprintf("audit-%s.jsonl", s.now().UTC().Format("20060102T150405Z")),
	)

	result, err := Run(ctx, s.logger, s.fetcher, NewFileExporter(s.fs, path), s.batchSize, nil)
	if err != nil {
		return path, result, err
	}

	s.logger.Info(
		"audit log exported",
		slog.String("path", path),
		slog.Int("entries", result.ExportedEntries),
	)

	return path, result, nil
}
