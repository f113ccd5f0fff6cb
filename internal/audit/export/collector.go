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

	"github.com/prevencar/vistoria/internal/audit"
)

// Collector is an Exporter that keeps entries in memory.
type Collector struct {
	Entries []audit.Entry
}

// Open resets the collected entries.
func (c *Collector) Open(
	_ context.Context,
) error {
	c.Entries = []audit.Entry{}
	return nil
}

// Write appends entry.
func (c *Collector) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	c.Entries = append(c.Entries, entry)
	return nil
}

// Close is a no-op.
func (c *Collector) Close(
	_ context.Context,
) error {
	return nil
}
