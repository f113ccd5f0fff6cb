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

// Package store provides the document persistence layer shared by every
// collection of the service.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when a key does not exist.
var ErrNotFound = errors.New("record not found")

// Collection names used by the service.
const (
	CollectionInspections = "inspections"
	CollectionClosures    = "closures"
	CollectionLogs        = "logs"
	CollectionServices    = "services"
	CollectionIndications = "indications"
	CollectionUsers       = "users"
)

// Collections lists every collection a backend must be able to serve.
var Collections = []string{
	CollectionInspections,
	CollectionClosures,
	CollectionLogs,
	CollectionServices,
	CollectionIndications,
	CollectionUsers,
}

// Backend is a byte-level key-value store partitioned by collection.
type Backend interface {
	// Get returns the raw document or ErrNotFound.
	Get(ctx context.Context, collection string, key string) ([]byte, error)
	// Put inserts or replaces the document stored under key.
	Put(ctx context.Context, collection string, key string, value []byte) error
	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, collection string, key string) error
	// Keys returns every key in the collection, in no particular order.
	Keys(ctx context.Context, collection string) ([]string, error)
}
