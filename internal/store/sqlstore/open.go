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

package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// Config selects and locates the database.
type Config struct {
	Dialect Dialect
	// Path is the SQLite database file, or ":memory:".
	Path string
	// DSN is the PostgreSQL connection string.
	DSN string
}

// Open connects, pings and migrates the database.
func Open(
	ctx context.Context,
	cfg Config,
) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Dialect {
	case DialectSQLite:
		db, err = openSQLite(cfg.Path)
	case DialectPostgres:
		db, err = sql.Open("pgx", cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql dialect: %q", cfg.Dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db, cfg.Dialect), nil
}

func openSQLite(
	path string,
) (*sql.DB, error) {
	if path == "" {
		path = "./data/vistoria.db"
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers; a single connection also keeps :memory: alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// Migrate creates the documents table when missing.
func Migrate(
	ctx context.Context,
	db *sql.DB,
) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS documents (
  collection    TEXT   NOT NULL,
  id            TEXT   NOT NULL,
  body          TEXT   NOT NULL,
  updated_at_ms BIGINT NOT NULL,
  PRIMARY KEY (collection, id)
);
`); err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}

	return nil
}
