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
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/prevencar/vistoria/internal/config"
	"github.com/prevencar/vistoria/internal/store/natskv"
)

// natsReadyTimeout bounds how long the embedded server may take to accept
// connections.
const natsReadyTimeout = 10 * time.Second

// ParseJetstreamStorageType maps "memory"/"file" strings to jetstream.StorageType.
func ParseJetstreamStorageType(
	s string,
) jetstream.StorageType {
	if s == "memory" {
		return jetstream.MemoryStorage
	}

	return jetstream.FileStorage
}

// NATSURL returns the client URL for host and port.
func NATSURL(
	host string,
	port int,
) string {
	if host == "" {
		host = "localhost"
	}
	if port == 0 {
		port = nats.DefaultPort
	}

	return "nats://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// BuildNATSOptions converts a connection config to nats.go options.
func BuildNATSOptions(
	logger *slog.Logger,
	conn config.NATSConnection,
) []nats.Option {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	}

	if conn.ClientName != "" {
		opts = append(opts, nats.Name(conn.ClientName))
	}

	if conn.Auth.Type == "user_pass" {
		opts = append(opts, nats.UserInfo(conn.Auth.Username, conn.Auth.Password))
	}

	return opts
}

// ConnectNATS dials the configured NATS server and opens a JetStream context.
func ConnectNATS(
	logger *slog.Logger,
	conn config.NATSConnection,
) (*nats.Conn, jetstream.JetStream, error) {
	url := NATSURL(conn.Host, conn.Port)

	nc, err := nats.Connect(url, BuildNATSOptions(logger, conn)...)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("open jetstream: %w", err)
	}

	logger.Debug("connected to nats", slog.String("url", url))

	return nc, js, nil
}

// BuildBucketOptions derives the KV bucket options from the NATS config.
func BuildBucketOptions(
	cfg config.NATS,
) natskv.BucketOptions {
	replicas := cfg.KV.Replicas
	if replicas == 0 {
		replicas = 1
	}

	return natskv.BucketOptions{
		Namespace: cfg.Client.Namespace,
		Storage:   ParseJetstreamStorageType(cfg.KV.Storage),
		Replicas:  replicas,
		History:   cfg.KV.History,
		MaxBytes:  cfg.KV.MaxBytes,
		TTL:       cfg.KV.TTL,
	}
}

// BuildNATSServerOptions converts the server config to nats-server options.
func BuildNATSServerOptions(
	cfg config.NATSServer,
) *server.Options {
	opts := &server.Options{
		Host:      cfg.Host,
		Port:      cfg.Port,
		JetStream: true,
		StoreDir:  cfg.StoreDir,
		NoSigs:    true,
	}
	if opts.Port == 0 {
		opts.Port = server.DEFAULT_PORT
	}

	if cfg.Auth.Type == "user_pass" {
		for _, u := range cfg.Auth.Users {
			opts.Users = append(opts.Users, &server.User{
				Username: u.Username,
				Password: u.Password,
			})
		}
	}

	return opts
}

// EmbeddedNATS runs a JetStream enabled nats-server inside the process.
type EmbeddedNATS struct {
	logger *slog.Logger
	server *server.Server
}

// NewEmbeddedNATS creates the embedded server without starting it.
func NewEmbeddedNATS(
	logger *slog.Logger,
	cfg config.NATSServer,
) (*EmbeddedNATS, error) {
	ns, err := server.NewServer(BuildNATSServerOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}

	return &EmbeddedNATS{
		logger: logger.With(slog.String("component", "nats")),
		server: ns,
	}, nil
}

// Start starts the server and waits until it accepts connections.
func (e *EmbeddedNATS) Start() {
	go e.server.Start()

	if !e.server.ReadyForConnections(natsReadyTimeout) {
		e.logger.Error("nats server not ready", slog.Duration("timeout", natsReadyTimeout))
		return
	}

	e.logger.Info("nats server started", slog.String("url", e.server.ClientURL()))
}

// Stop shuts the server down.
func (e *EmbeddedNATS) Stop(
	_ context.Context,
) {
	e.server.Shutdown()
	e.server.WaitForShutdown()
	e.logger.Info("nats server stopped")
}

