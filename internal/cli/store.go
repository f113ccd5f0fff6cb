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

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/prevencar/vistoria/internal/config"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/store/natskv"
	"github.com/prevencar/vistoria/internal/store/sqlstore"
)

// Storage is an opened persistence backend.
type Storage struct {
	// Backend serves every collection.
	Backend store.Backend
	// Kind is the configured backend name.
	Kind string
	// Ping verifies the backend is reachable.
	Ping func(ctx context.Context) error
	// Close releases the backend connections.
	Close func()
}

// OpenStorage opens the backend selected by cfg.Store.Backend.
func OpenStorage(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.Config,
) (*Storage, error) {
	switch cfg.Store.Backend {
	case "memory":
		return &Storage{
			Backend: store.NewMemory(),
			Kind:    cfg.Store.Backend,
			Ping:    func(context.Context) error { return nil },
			Close:   func() {},
		}, nil

	case "sqlite", "postgres":
		sqlCfg := sqlstore.Config{Dialect: sqlstore.DialectSQLite, Path: cfg.Store.SQLite.Path}
		if cfg.Store.Backend == "postgres" {
			sqlCfg = sqlstore.Config{Dialect: sqlstore.DialectPostgres, DSN: cfg.Store.Postgres.DSN}
		}

		s, err := sqlstore.Open(ctx, sqlCfg)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
		}
		logger.Info("opened sql store", slog.String("dialect", cfg.Store.Backend))

		return &Storage{
			Backend: s,
			Kind:    cfg.Store.Backend,
			Ping:    s.DB().PingContext,
			Close:   func() { _ = s.DB().Close() },
		}, nil

	case "nats":
		nc, js, err := ConnectNATS(logger, cfg.NATS.Client)
		if err != nil {
			return nil, err
		}

		backend, buckets, err := natskv.Open(ctx, js, BuildBucketOptions(cfg.NATS))
		if err != nil {
			nc.Close()
			return nil, err
		}
		logger.Info(
			"opened nats kv store",
			slog.Int("buckets", len(buckets)),
			slog.String("namespace", cfg.NATS.Client.Namespace),
		)

		return &Storage{
			Backend: backend,
			Kind:    cfg.Store.Backend,
			Ping:    natsPing(nc, buckets),
			Close:   nc.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func natsPing(
	nc *nats.Conn,
	buckets map[string]jetstream.KeyValue,
) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if !nc.IsConnected() {
			return errors.New("nats not connected")
		}

		var errs []error
		for name, kv := range buckets {
			if _, err := kv.Status(ctx); err != nil {
				errs = append(errs, fmt.Errorf("kv bucket %s not accessible: %w", name, err))
			}
		}

		return errors.Join(errs...)
	}
}
