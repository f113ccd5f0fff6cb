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

package health

import (
	"context"
	"errors"
	"fmt"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// ComponentChecker runs a fixed set of dependency probes.
type ComponentChecker struct {
	Checks []Check
}

// CheckHealth runs all dependency checks and joins their errors.
func (c *ComponentChecker) CheckHealth(
	ctx context.Context,
) error {
	var errs []error

	for name, err := range c.CheckEach(ctx) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// CheckEach runs every probe and returns its result keyed by name.
func (c *ComponentChecker) CheckEach(
	ctx context.Context,
) map[string]error {
	results := make(map[string]error, len(c.Checks))
	for _, check := range c.Checks {
		if check.Fn == nil {
			results[check.Name] = nil
			continue
		}
		results[check.Name] = check.Fn(ctx)
	}

	return results
}
