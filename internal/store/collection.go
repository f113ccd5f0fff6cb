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

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// marshalJSON is swapped in tests to exercise encode failures.
var marshalJSON = json.Marshal

// Collection is a typed view over one collection of a Backend.
type Collection[T any] struct {
	backend Backend
	name    string
	keyOf   func(T) string
	logger  *slog.Logger
}

// NewCollection creates a Collection that stores T as JSON under keyOf(v).
func NewCollection[T any](
	logger *slog.Logger,
	backend Backend,
	name string,
	keyOf func(T) string,
) *Collection[T] {
	return &Collection[T]{
		backend: backend,
		name:    name,
		keyOf:   keyOf,
		logger:  logger,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Get returns the document stored under key. A missing key yields an error
// matching ErrNotFound.
func (c *Collection[T]) Get(
	ctx context.Context,
	key string,
) (*T, error) {
	data, err := c.backend.Get(ctx, c.name, key)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", c.name, key, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s/%s: %w", c.name, key, err)
	}

	return &v, nil
}

// Put upserts v.
func (c *Collection[T]) Put(
	ctx context.Context,
	v T,
) error {
	key := c.keyOf(v)
	if key == "" {
		return fmt.Errorf("put %s: empty key", c.name)
	}

	data, err := marshalJSON(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", c.name, key, err)
	}

	if err := c.backend.Put(ctx, c.name, key, data); err != nil {
		return fmt.Errorf("put %s/%s: %w", c.name, key, err)
	}

	return nil
}

// Delete removes the document stored under key.
func (c *Collection[T]) Delete(
	ctx context.Context,
	key string,
) error {
	if err := c.backend.Delete(ctx, c.name, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, key, err)
	}

	return nil
}

// Keys returns the collection keys sorted ascending.
func (c *Collection[T]) Keys(
	ctx context.Context,
) ([]string, error) {
	keys, err := c.backend.Keys(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("list %s keys: %w", c.name, err)
	}

	sort.Strings(keys)

	return keys, nil
}

// List returns every document in key order. Documents that disappear or
// fail to decode between listing and reading are skipped with a warning.
func (c *Collection[T]) List(
	ctx context.Context,
) ([]T, error) {
	keys, err := c.Keys(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(keys))
	for _, key := range keys {
		v, err := c.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				c.logger.Warn(
					"failed to read document",
					slog.String("collection", c.name),
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}
			continue
		}

		items = append(items, *v)
	}

	return items, nil
}
