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

// Package sqlstore implements store.Backend on a single documents table
// shared by every collection. SQLite (modernc.org/sqlite) and PostgreSQL
// (pgx stdlib) are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prevencar/vistoria/internal/store"
)

// ensure Store implements store.Backend at compile time.
var _ store.Backend = (*Store)(nil)

// Dialect selects placeholder style and driver.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Store is a store.Backend over database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// New wraps an open database. The schema must already exist (see Migrate).
func New(
	db *sql.DB,
	dialect Dialect,
) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		now:     time.Now,
	}
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *Store) rebind(
	query string,
) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Get returns the document body.
func (s *Store) Get(
	ctx context.Context,
	collection string,
	key string,
) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx, s.rebind(`
SELECT body
FROM documents
WHERE collection = ? AND id = ?;
`), collection, key).Scan(&body)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}

	return []byte(body), nil
}

// Put upserts the document body.
func (s *Store) Put(
	ctx context.Context,
	collection string,
	key string,
	value []byte,
) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`
INSERT INTO documents (collection, id, body, updated_at_ms)
VALUES (?, ?, ?, ?)
ON CONFLICT (collection, id) DO UPDATE
SET body          = excluded.body,
    updated_at_ms = excluded.updated_at_ms;
`), collection, key, string(value), s.now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	return nil
}

// Delete removes the document if present.
func (s *Store) Delete(
	ctx context.Context,
	collection string,
	key string,
) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`
DELETE FROM documents
WHERE collection = ? AND id = ?;
`), collection, key); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	return nil
}

// Keys lists document ids of a collection.
func (s *Store) Keys(
	ctx context.Context,
	collection string,
) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
SELECT id
FROM documents
WHERE collection = ?
ORDER BY id;
`), collection)
	if err != nil {
		return nil, fmt.Errorf("select keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}

	return keys, nil
}
