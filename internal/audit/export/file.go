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
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/prevencar/vistoria/internal/audit"
)

// marshalJSON is swapped in tests to exercise encode failures.
var marshalJSON = json.Marshal

var errNotOpened = errors.New("exporter not opened")

// FileExporter writes entries as JSON lines to a file on fs.
type FileExporter struct {
	fs     afero.Fs
	path   string
	file   afero.File
	writer *bufio.Writer
}

// NewFileExporter creates a FileExporter writing to path.
func NewFileExporter(
	fs afero.Fs,
	path string,
) *FileExporter {
	return &FileExporter{
		fs:   fs,
		path: path,
	}
}

// Path returns the output path.
func (e *FileExporter) Path() string {
	return e.path
}

// Open creates the parent directory and truncates the output file.
func (e *FileExporter) Open(
	_ context.Context,
) error {
	if err := e.fs.MkdirAll(filepath.Dir(e.path), 0o750); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	f, err := e.fs.Create(e.path)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}

	e.file = f
	e.writer = bufio.NewWriter(f)

	return nil
}

// Write appends entry as one line.
func (e *FileExporter) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	if e.writer == nil {
		return errNotOpened
	}

	data, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	if _, err := e.writer.Write(data); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}

	if err := e.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}

// Close flushes buffered lines and closes the file.
func (e *FileExporter) Close(
	_ context.Context,
) error {
	if e.writer == nil {
		return errNotOpened
	}

	if err := e.writer.Flush(); err != nil {
		return fmt.Errorf("flushing writer: %w", err)
	}

	if err := e.file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	return nil
}
