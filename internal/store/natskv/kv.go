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

// Package natskv implements store.Backend on NATS JetStream KeyValue buckets,
// one bucket per collection.
package natskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/prevencar/vistoria/internal/store"
)

// ensure Backend implements store.Backend at compile time.
var _ store.Backend = (*Backend)(nil)

// KeyValue is the subset of jetstream.KeyValue used by the backend.
type KeyValue interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Delete(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error
	ListKeys(ctx context.Context, opts ...jetstream.WatchOpt) (jetstream.KeyLister, error)
}

// BucketCreator creates or updates KV buckets.
type BucketCreator interface {
	CreateOrUpdateKeyValue(
		ctx context.Context,
		cfg jetstream.KeyValueConfig,
	) (jetstream.KeyValue, error)
}

// BucketOptions configures the buckets created by Open.
type BucketOptions struct {
	// Namespace prefixes every bucket name.
	Namespace string
	Storage   jetstream.StorageType
	Replicas  int
	History   uint8
	MaxBytes  int64
	TTL       time.Duration
}

// Backend stores each collection in its own KV bucket.
type Backend struct {
	buckets map[string]KeyValue
}

// New creates a Backend from already opened buckets keyed by collection.
func New(
	buckets map[string]KeyValue,
) *Backend {
	return &Backend{
		buckets: buckets,
	}
}

// BucketName returns the KV bucket name for a collection.
func BucketName(
	namespace string,
	collection string,
) string {
	if namespace == "" {
		return collection
	}

	return namespace + "-" + collection
}

// Open creates or updates one bucket per collection and returns the Backend
// together with the raw buckets, which callers use for health checks.
func Open(
	ctx context.Context,
	js BucketCreator,
	opts BucketOptions,
	collections ...string,
) (*Backend, map[string]jetstream.KeyValue, error) {
	if len(collections) == 0 {
		collections = store.Collections
	}

	raw := make(map[string]jetstream.KeyValue, len(collections))
	buckets := make(map[string]KeyValue, len(collections))
	for _, name := range collections {
		kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:   BucketName(opts.Namespace, name),
			History:  opts.History,
			TTL:      opts.TTL,
			MaxBytes: opts.MaxBytes,
			Storage:  opts.Storage,
			Replicas: opts.Replicas,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create kv bucket %q: %w", name, err)
		}

		raw[name] = kv
		buckets[name] = kv
	}

	return New(buckets), raw, nil
}

func (b *Backend) bucket(
	collection string,
) (KeyValue, error) {
	kv, ok := b.buckets[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	return kv, nil
}

// Get reads the latest value of key.
func (b *Backend) Get(
	ctx context.Context,
	collection string,
	key string,
) ([]byte, error) {
	kv, err := b.bucket(collection)
	if err != nil {
		return nil, err
	}

	entry, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return entry.Value(), nil
}

// Put writes value under key.
func (b *Backend) Put(
	ctx context.Context,
	collection string,
	key string,
	value []byte,
) error {
	kv, err := b.bucket(collection)
	if err != nil {
		return err
	}

	_, err = kv.Put(ctx, key, value)

	return err
}

// Delete places a delete marker on key.
func (b *Backend) Delete(
	ctx context.Context,
	collection string,
	key string,
) error {
	kv, err := b.bucket(collection)
	if err != nil {
		return err
	}

	if err := kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return err
	}

	return nil
}

// Keys drains the bucket key lister.
func (b *Backend) Keys(
	ctx context.Context,
	collection string,
) ([]string, error) {
	kv, err := b.bucket(collection)
	if err != nil {
		return nil, err
	}

	lister, err := kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}
		return nil, err
	}
	defer func() { _ = lister.Stop() }()

	keys := []string{}
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	return keys, nil
}
