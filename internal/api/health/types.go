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

package health

import (
	"context"
	"log/slog"
	"time"
)

// Checker checks the health of a dependency.
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// MetricsProvider retrieves domain metrics for the status endpoint.
type MetricsProvider interface {
	GetCollectionStats(ctx context.Context) ([]CollectionMetrics, error)
	GetClosedMonths(ctx context.Context) ([]string, error)
}

// CollectionMetrics holds document counts for one store collection.
type CollectionMetrics struct {
	Name string `json:"name"`
	Keys int    `json:"keys"`
}

// ClosureMetricsProvider implements MetricsProvider using function closures.
type ClosureMetricsProvider struct {
	CollectionStatsFn func(ctx context.Context) ([]CollectionMetrics, error)
	ClosedMonthsFn    func(ctx context.Context) ([]string, error)
}

// GetCollectionStats delegates to the CollectionStatsFn closure.
func (p *ClosureMetricsProvider) GetCollectionStats(
	ctx context.Context,
) ([]CollectionMetrics, error) {
	return p.CollectionStatsFn(ctx)
}

// GetClosedMonths delegates to the ClosedMonthsFn closure.
func (p *ClosureMetricsProvider) GetClosedMonths(
	ctx context.Context,
) ([]string, error) {
	return p.ClosedMonthsFn(ctx)
}

// Response is the body of the liveness and readiness probes.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ComponentHealth is the state of a single dependency.
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// StatusResponse is the body of the detailed status endpoint.
type StatusResponse struct {
	Status       string                     `json:"status"`
	Version      string                     `json:"version"`
	Uptime       string                     `json:"uptime"`
	Components   map[string]ComponentHealth `json:"components"`
	Collections  []CollectionMetrics        `json:"collections,omitempty"`
	ClosedMonths []string                   `json:"closed_months,omitempty"`
}

// Health implementation of the Health APIs operations.
type Health struct {
	// Checker performs dependency health checks.
	Checker Checker
	// StartTime records when the server started.
	StartTime time.Time
	// Version is the application version string.
	Version string
	// Metrics provides domain metrics (optional, can be nil).
	Metrics MetricsProvider
	logger  *slog.Logger
}
