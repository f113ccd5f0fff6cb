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

package export_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/audit/export"
)

type ExportPublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	logger *slog.Logger
}

func (suite *ExportPublicTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.logger = slog.Default()
}

func newEntry(
	user string,
) audit.Entry {
	return audit.Entry{
		ID:          "01HZX" + user,
		Timestamp:   time.Date(2024, 6, 21, 10, 30, 0, 0, time.UTC),
		UserID:      user,
		UserName:    user,
		Kind:        audit.KindOperational,
		Description: fmt.Sprintf("Usuário %s realizou login.", user),
	}
}

func (suite *ExportPublicTestSuite) TestRun() {
	tests := []struct {
		name         string
		fetcher      export.Fetcher
		exporter     *fakeExporter
		batchSize    int
		validateFunc func(exp *fakeExporter, result *export.Result, err error)
	}{
		{
			name: "when no entries returns zero counts",
			fetcher: func(_ context.Context, _, _ int) ([]audit.Entry, int, error) {
				return nil, 0, nil
			},
			exporter:  &fakeExporter{},
			batchSize: 100,
			validateFunc: func(exp *fakeExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(0, result.TotalEntries)
				suite.Equal(0, result.ExportedEntries)
				suite.True(exp.opened)
				suite.True(exp.closed)
			},
		},
		{
			name: "when single page exports all entries",
			fetcher: func(_ context.Context, _, _ int) ([]audit.Entry, int, error) {
				return []audit.Entry{newEntry("alice"), newEntry("bob")}, 2, nil
			},
			exporter:  &fakeExporter{},
			batchSize: 100,
			validateFunc: func(exp *fakeExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(2, result.ExportedEntries)
				suite.Require().Len(exp.entries, 2)
				suite.Equal("alice", exp.entries[0].UserName)
				suite.Equal("bob", exp.entries[1].UserName)
			},
		},
		{
			name: "when multi-page paginates correctly",
			fetcher: newPagedFetcher([][]audit.Entry{
				{newEntry("alice"), newEntry("bob")},
				{newEntry("carol")},
			}, 3),
			exporter:  &fakeExporter{},
			batchSize: 2,
			validateFunc: func(exp *fakeExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(3, result.TotalEntries)
				suite.Equal(3, result.ExportedEntries)
				suite.Len(exp.entries, 3)
			},
		},
		{
			name:      "when batch size is unset uses the default",
			fetcher:   newPagedFetcher([][]audit.Entry{{newEntry("alice")}}, 1),
			exporter:  &fakeExporter{},
			batchSize: 0,
			validateFunc: func(exp *fakeExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(1, result.ExportedEntries)
				suite.Equal([]int{export.DefaultBatchSize}, exp.limits)
			},
		},
		{
			name: "when fetcher errors returns partial result",
			fetcher: func(_ context.Context, _, offset int) ([]audit.Entry, int, error) {
				if offset > 0 {
					return nil, 0, fmt.Errorf("connection lost")
				}
				return []audit.Entry{newEntry("alice")}, 3, nil
			},
			exporter:  &fakeExporter{},
			batchSize: 1,
			validateFunc: func(_ *fakeExporter, result *export.Result, err error) {
				suite.ErrorContains(err, "fetching entries at offset 1")
				suite.ErrorContains(err, "connection lost")
				suite.Equal(1, result.ExportedEntries)
				suite.Equal(3, result.TotalEntries)
			},
		},
		{
			name: "when write errors returns partial result",
			fetcher: func(_ context.Context, _, _ int) ([]audit.Entry, int, error) {
				return []audit.Entry{newEntry("alice")}, 1, nil
			},
			exporter:  &fakeExporter{writeErr: fmt.Errorf("disk full")},
			batchSize: 100,
			validateFunc: func(_ *fakeExporter, result *export.Result, err error) {
				suite.ErrorContains(err, "writing entry")
				suite.Equal(0, result.ExportedEntries)
			},
		},
		{
			name: "when open errors returns nil result",
			fetcher: func(_ context.Context, _, _ int) ([]audit.Entry, int, error) {
				return nil, 0, nil
			},
			exporter:  &fakeExporter{openErr: fmt.Errorf("permission denied")},
			batchSize: 100,
			validateFunc: func(_ *fakeExporter, result *export.Result, err error) {
				suite.ErrorContains(err, "opening exporter")
				suite.Nil(result)
			},
		},
		{
			name: "when close errors logs but returns result",
			fetcher: func(_ context.Context, _, _ int) ([]audit.Entry, int, error) {
				return nil, 0, nil
			},
			exporter:  &fakeExporter{closeErr: fmt.Errorf("close failed")},
			batchSize: 100,
			validateFunc: func(_ *fakeExporter, result *export.Result, err error) {
				suite.NoError(err)
				suite.Equal(0, result.ExportedEntries)
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			fetcher := tc.fetcher
			exp := tc.exporter
			wrapped := func(ctx context.Context, limit, offset int) ([]audit.Entry, int, error) {
				exp.limits = append(exp.limits, limit)
				return fetcher(ctx, limit, offset)
			}

			result, err := export.Run(suite.ctx, suite.logger, wrapped, exp, tc.batchSize, nil)
			tc.validateFunc(exp, result, err)
		})
	}
}

func (suite *ExportPublicTestSuite) TestRunProgress() {
	var calls [][2]int

	_, err := export.Run(
		suite.ctx,
		suite.logger,
		newPagedFetcher([][]audit.Entry{
			{newEntry("alice"), newEntry("bob")},
			{newEntry("carol")},
		}, 3),
		&fakeExporter{},
		2,
		func(exported int, total int) {
			calls = append(calls, [2]int{exported, total})
		},
	)

	suite.NoError(err)
	suite.Equal([][2]int{{2, 3}, {3, 3}}, calls)
}

func (suite *ExportPublicTestSuite) TestRunCancelled() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	result, err := export.Run(
		ctx,
		suite.logger,
		newPagedFetcher([][]audit.Entry{{newEntry("alice")}}, 1),
		&fakeExporter{},
		10,
		nil,
	)

	suite.ErrorIs(err, context.Canceled)
	suite.Equal(0, result.ExportedEntries)
}

func (suite *ExportPublicTestSuite) TestRunIntoCollector() {
	collector := &export.Collector{Entries: []audit.Entry{newEntry("stale")}}

	result, err := export.Run(
		suite.ctx,
		suite.logger,
		newPagedFetcher([][]audit.Entry{
			{newEntry("alice"), newEntry("bob")},
			{newEntry("carol")},
		}, 3),
		collector,
		2,
		nil,
	)

	suite.NoError(err)
	suite.Equal(3, result.ExportedEntries)
	suite.Require().Len(collector.Entries, 3)
	suite.Equal("alice", collector.Entries[0].UserID)
	suite.Equal("carol", collector.Entries[2].UserID)
}

func TestExportPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ExportPublicTestSuite))
}

type fakeExporter struct {
	opened   bool
	closed   bool
	entries  []audit.Entry
	limits   []int
	openErr  error
	writeErr error
	closeErr error
}

func (f *fakeExporter) Open(
	_ context.Context,
) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = true
	return nil
}

func (f *fakeExporter) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeExporter) Close(
	_ context.Context,
) error {
	f.closed = true
	return f.closeErr
}

func newPagedFetcher(
	pages [][]audit.Entry,
	total int,
) export.Fetcher {
	return func(
		_ context.Context,
		_ int,
		offset int,
	) ([]audit.Entry, int, error) {
		idx := 0
		remaining := offset
		for idx < len(pages) && remaining >= len(pages[idx]) {
			remaining -= len(pages[idx])
			idx++
		}
		if idx >= len(pages) {
			return nil, total, nil
		}
		return pages[idx], total, nil
	}
}
