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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api"
	auditapi "github.com/prevencar/vistoria/internal/api/audit"
	"github.com/prevencar/vistoria/internal/api/auth"
	catalogapi "github.com/prevencar/vistoria/internal/api/catalog"
	closureapi "github.com/prevencar/vistoria/internal/api/closure"
	"github.com/prevencar/vistoria/internal/api/health"
	inspectionapi "github.com/prevencar/vistoria/internal/api/inspection"
	reportapi "github.com/prevencar/vistoria/internal/api/report"
	userapi "github.com/prevencar/vistoria/internal/api/user"
	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/audit/export"
	"github.com/prevencar/vistoria/internal/authtoken"
	"github.com/prevencar/vistoria/internal/catalog"
	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/guard"
	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/mutation"
	"github.com/prevencar/vistoria/internal/report"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/telemetry"
	"github.com/prevencar/vistoria/internal/user"
)

// ServerManager responsible for Server operations.
type ServerManager interface {
	cli.Lifecycle
	// GetAuthHandler returns login and logout handlers for registration.
	GetAuthHandler(users auth.Authenticator, tokens auth.TokenGenerator) []func(e *echo.Echo)
	// GetInspectionHandler returns inspection handlers for registration.
	GetInspectionHandler(facade inspectionapi.Facade) []func(e *echo.Echo)
	// GetClosureHandler returns closure handlers for registration.
	GetClosureHandler(
		registry closureapi.Lister,
		processor closureapi.Closer,
	) []func(e *echo.Echo)
	// GetAuditHandler returns audit handlers for registration.
	GetAuditHandler(store auditapi.Store, exportBatchSize int) []func(e *echo.Echo)
	// GetCatalogHandler returns catalog handlers for registration.
	GetCatalogHandler(store catalogapi.Store) []func(e *echo.Echo)
	// GetUserHandler returns user handlers for registration.
	GetUserHandler(store userapi.Store) []func(e *echo.Echo)
	// GetReportHandler returns report handlers for registration.
	GetReportHandler(builder reportapi.Builder) []func(e *echo.Echo)
	// GetHealthHandler returns health handler for registration.
	GetHealthHandler(
		checker health.Checker,
		startTime time.Time,
		version string,
		metrics health.MetricsProvider,
	) []func(e *echo.Echo)
	// GetMetricsHandler returns Prometheus metrics handler for registration.
	GetMetricsHandler(metricsHandler http.Handler, path string) []func(e *echo.Echo)
	// RegisterHandlers registers a list of handlers with the Echo instance.
	RegisterHandlers(handlers []func(e *echo.Echo))
}

// apiBundle holds what setupAPIServer opened besides the server itself.
type apiBundle struct {
	storage   *cli.Storage
	scheduler *export.Scheduler
}

// services are the domain components behind the API.
type services struct {
	users     *user.Service
	catalog   *catalog.Catalog
	audits    *audit.KVStore
	recorder  *audit.Recorder
	registry  *closure.Registry
	processor *closure.Processor
	facade    *mutation.Facade
	reporter  *report.Reporter
}

// setupAPIServer opens the store, builds the domain services and the API
// server with all handlers. It is used by the standalone API server start
// and the combined start commands.
func setupAPIServer(
	ctx context.Context,
	log *slog.Logger,
	metrics *telemetry.Metrics,
) (ServerManager, *apiBundle) {
	storage, err := cli.OpenStorage(ctx, log, appConfig)
	if err != nil {
		cli.LogFatal(log, "failed to open store", err, "backend", appConfig.Store.Backend)
	}

	svc := newServices(log, storage.Backend)
	if err := seedServices(ctx, svc); err != nil {
		storage.Close()
		cli.LogFatal(log, "failed to seed store", err)
	}

	sm := api.New(appConfig, log, api.WithSecurityRecorder(svc.recorder))
	registerAPIHandlers(
		sm,
		svc,
		newHealthChecker(storage),
		newMetricsProvider(storage.Backend, svc.registry),
		metrics,
	)

	bundle := &apiBundle{storage: storage}
	if appConfig.Audit.Export.Enabled {
		bundle.scheduler = newExportScheduler(log, svc.audits)
	}

	return sm, bundle
}

func newServices(
	log *slog.Logger,
	backend store.Backend,
) *services {
	audits := audit.NewKVStore(log.With("component", "audit"), backend)
	recorder := audit.NewRecorder(
		log.With("component", "audit"),
		audits,
		audit.WithRetention(appConfig.Audit.Retention),
	)

	records := inspection.NewStore(log, backend)
	closures := closure.NewStore(log, backend)
	registry := closure.NewRegistry(closures)

	return &services{
		users:     user.New(log, backend, recorder),
		catalog:   catalog.New(log, backend),
		audits:    audits,
		recorder:  recorder,
		registry:  registry,
		processor: closure.NewProcessor(log.With("component", "closure"), closures, records, recorder),
		facade:    mutation.New(log, records, guard.New(), registry, recorder),
		reporter:  report.New(records, registry),
	}
}

// seedServices installs the default catalog and, when configured, the
// first administrator on an empty store.
func seedServices(
	ctx context.Context,
	svc *services,
) error {
	if err := svc.catalog.Seed(ctx); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	seed := appConfig.Seed
	if seed.AdminEmail == "" {
		return nil
	}

	if err := svc.users.Seed(ctx, seed.AdminName, seed.AdminEmail, seed.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	return nil
}

func newHealthChecker(
	storage *cli.Storage,
) *health.ComponentChecker {
	return &health.ComponentChecker{
		Checks: []health.Check{
			{Name: storage.Kind, Fn: storage.Ping},
		},
	}
}

func newMetricsProvider(
	backend store.Backend,
	registry *closure.Registry,
) *health.ClosureMetricsProvider {
	return &health.ClosureMetricsProvider{
		CollectionStatsFn: func(fnCtx context.Context) ([]health.CollectionMetrics, error) {
			results := make([]health.CollectionMetrics, 0, len(store.Collections))
			for _, name := range store.Collections {
				keys, err := backend.Keys(fnCtx, name)
				if err != nil {
					return nil, fmt.Errorf("collection %s: %w", name, err)
				}

				results = append(results, health.CollectionMetrics{
					Name: name,
					Keys: len(keys),
				})
			}

			return results, nil
		},
		ClosedMonthsFn: func(fnCtx context.Context) ([]string, error) {
			months, err := registry.ClosedMonths(fnCtx)
			if err != nil {
				return nil, err
			}

			return months.Sorted(), nil
		},
	}
}

func newExportScheduler(
	log *slog.Logger,
	audits *audit.KVStore,
) *export.Scheduler {
	cfg := appConfig.Audit.Export
	scheduler := export.NewScheduler(
		log.With("component", "export"),
		appFs,
		cfg.Dir,
		cfg.BatchSize,
		audits.List,
	)

	if err := appFs.MkdirAll(cfg.Dir, 0o750); err != nil {
		cli.LogFatal(log, "failed to create export dir", err, "dir", cfg.Dir)
	}

	if err := scheduler.Schedule(cfg.Schedule); err != nil {
		cli.LogFatal(log, "failed to schedule audit export", err)
	}

	return scheduler
}

func registerAPIHandlers(
	sm ServerManager,
	svc *services,
	checker health.Checker,
	metricsProvider health.MetricsProvider,
	metrics *telemetry.Metrics,
) {
	startTime := time.Now()

	handlers := make([]func(e *echo.Echo), 0, 16)
	handlers = append(handlers, sm.GetAuthHandler(svc.users, authtoken.New(logger))...)
	handlers = append(handlers, sm.GetInspectionHandler(svc.facade)...)
	handlers = append(handlers, sm.GetClosureHandler(svc.registry, svc.processor)...)
	handlers = append(handlers, sm.GetAuditHandler(svc.audits, appConfig.Audit.Export.BatchSize)...)
	handlers = append(handlers, sm.GetCatalogHandler(svc.catalog)...)
	handlers = append(handlers, sm.GetUserHandler(svc.users)...)
	handlers = append(handlers, sm.GetReportHandler(svc.reporter)...)
	handlers = append(
		handlers,
		sm.GetHealthHandler(checker, startTime, appVersion(), metricsProvider)...)
	if metrics != nil {
		handlers = append(handlers, sm.GetMetricsHandler(metrics.Handler, metrics.Path)...)
	}

	sm.RegisterHandlers(handlers)
}
