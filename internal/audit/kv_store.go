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
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/prevencar/vistoria/internal/store"
)

// ensure KVStore implements Store at compile time.
var _ Store = (*KVStore)(nil)

// marshalJSON is swapped in tests to exercise encode failures.
var marshalJSON = json.Marshal

// KVStore implements Store on the logs collection of a store.Backend.
type KVStore struct {
	backend store.Backend
	logger  *slog.Logger
}

// NewKVStore creates a new KVStore.
func NewKVStore(
	logger *slog.Logger,
	backend store.Backend,
) *KVStore {
	return &KVStore{
		backend: backend,
		logger:  logger,
	}
}

// Write persists an audit entry.
func (s *KVStore) Write(
	ctx context.Context,
	entry Entry,
) error {
	data, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	if err := s.backend.Put(ctx, store.CollectionLogs, entry.ID, data); err != nil {
		return fmt.Errorf("put audit entry: %w", err)
	}

	return nil
}

// Get retrieves a single audit entry by ID.
func (s *KVStore) Get(
	ctx context.Context,
	id string,
) (*Entry, error) {
	data, err := s.backend.Get(ctx, store.CollectionLogs, id)
	if err != nil {
		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal audit entry: %w", err)
	}

	return &entry, nil
}

// sortedKeys returns entry ids newest first.
func (s *KVStore) sortedKeys(
	ctx context.Context,
) ([]string, error) {
	keys, err := s.backend.Keys(ctx, store.CollectionLogs)
	if err != nil {
		return nil, fmt.Errorf("list audit keys: %w", err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	return keys, nil
}

// List retrieves audit entries with pagination, newest first.
func (s *KVStore) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]Entry, int, error) {
	keys, err := s.sortedKeys(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := len(keys)

	if offset >= total {
		return []Entry{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	pageKeys := keys[offset:end]

	entries := make([]Entry, 0, len(pageKeys))
	for _, key := range pageKeys {
		entry, err := s.Get(ctx, key)
		if err != nil {
			s.logger.Warn(
				"failed to read audit entry",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		entries = append(entries, *entry)
	}

	return entries, total, nil
}

// Prune deletes every entry older than the newest keep.
func (s *KVStore) Prune(
	ctx context.Context,
	keep int,
) (int, error) {
	keys, err := s.sortedKeys(ctx)
	if err != nil {
		return 0, err
	}

	if keep < 0 {
		keep = 0
	}
	if len(keys) <= keep {
		return 0, nil
	}

	removed := 0
	for _, key := range keys[keep:] {
		if err := s.backend.Delete(ctx, store.CollectionLogs, key); err != nil {
			return removed, fmt.Errorf("delete audit entry %s: %w", key, err)
		}
		removed++
	}

	return removed, nil
}
