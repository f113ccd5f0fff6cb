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

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/client"
)

type LogTestSuite struct {
	suite.Suite

	buf          bytes.Buffer
	logger       *slog.Logger
	exitCode     int
	originalExit func(int)
}

func (s *LogTestSuite) SetupSuite() {
	s.originalExit = osExit
	osExit = func(code int) { s.exitCode = code }
}

func (s *LogTestSuite) TearDownSuite() {
	osExit = s.originalExit
}

func (s *LogTestSuite) reset() {
	s.buf.Reset()
	s.logger = slog.New(slog.NewTextHandler(&s.buf, nil))
	s.exitCode = -1
}

func (s *LogTestSuite) TestLogFatal() {
	tests := []struct {
		name      string
		message   string
		err       error
		kvPairs   []any
		wantInLog []string
		notInLog  []string
	}{
		{
			name:      "when storage cannot open logs the cause",
			message:   "failed to open storage",
			err:       fmt.Errorf("open sqlite: %w", errors.New("disk full")),
			wantInLog: []string{"level=ERROR", "failed to open storage", "error=\"open sqlite: disk full\""},
		},
		{
			name:      "when error is nil omits the error key",
			message:   "export scheduler stopped",
			wantInLog: []string{"export scheduler stopped"},
			notInLog:  []string{"error="},
		},
		{
			name:    "when kv pairs are given logs them after the error",
			message: "invalid export schedule",
			err:     errors.New("expected 5 fields"),
			kvPairs: []any{"schedule", "every day", slog.String("dir", "/var/lib/vistoria/audit")},
			wantInLog: []string{
				"invalid export schedule",
				"error=\"expected 5 fields\"",
				"schedule=\"every day\"",
				"dir=/var/lib/vistoria/audit",
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.reset()

			LogFatal(s.logger, tc.message, tc.err, tc.kvPairs...)

			s.Equal(1, s.exitCode)
			output := s.buf.String()
			for _, want := range tc.wantInLog {
				s.Contains(output, want)
			}
			for _, unwanted := range tc.notInLog {
				s.NotContains(output, unwanted)
			}
		})
	}
}

func (s *LogTestSuite) TestHandleClientError() {
	tests := []struct {
		name      string
		err       error
		wantInLog []string
		notInLog  []string
	}{
		{
			name: "when the API refuses a closed month logs the status code",
			err: fmt.Errorf("save inspection: %w", &client.APIError{
				StatusCode: http.StatusConflict,
				Message:    "period 2024-04 is closed",
			}),
			wantInLog: []string{"failed to save inspection", "code=409", "period 2024-04 is closed"},
		},
		{
			name:      "when the server is unreachable logs without a code",
			err:       errors.New("dial tcp 127.0.0.1:8080: connection refused"),
			wantInLog: []string{"failed to save inspection", "connection refused"},
			notInLog:  []string{"code="},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.reset()

			HandleClientError(s.logger, "failed to save inspection", tc.err)

			s.Equal(1, s.exitCode)
			output := s.buf.String()
			for _, want := range tc.wantInLog {
				s.Contains(output, want)
			}
			for _, unwanted := range tc.notInLog {
				s.NotContains(output, unwanted)
			}
		})
	}
}

func TestLogTestSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}
