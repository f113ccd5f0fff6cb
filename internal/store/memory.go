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
	"sync"
)

// ensure Memory implements Backend at compile time.
var _ Backend = (*Memory)(nil)

// Memory is an in-process Backend.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemory creates an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]map[string][]byte),
	}
}

// Get returns a copy of the stored document.
func (m *Memory) Get(
	_ context.Context,
	collection string,
	key string,
) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[collection][key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (m *Memory) Put(
	_ context.Context,
	collection string,
	key string,
	value []byte,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs, ok := m.data[collection]
	if !ok {
		docs = make(map[string][]byte)
		m.data[collection] = docs
	}
	docs[key] = append([]byte(nil), value...)

	return nil
}

// Delete removes key from collection.
func (m *Memory) Delete(
	_ context.Context,
	collection string,
	key string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[collection], key)

	return nil
}

// Keys lists the keys of collection.
func (m *Memory) Keys(
	_ context.Context,
	collection string,
) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data[collection]))
	for k := range m.data[collection] {
		keys = append(keys, k)
	}

	return keys, nil
}
