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
	"cmp"
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
)

// GetHealthStatus returns per-component health status with domain metrics.
func (h *Health) GetHealthStatus(
	c echo.Context,
) error {
	ctx := c.Request().Context()

	var results map[string]error
	if checker, ok := h.Checker.(*ComponentChecker); ok {
		results = checker.CheckEach(ctx)
	} else {
		results = map[string]error{"service": h.Checker.CheckHealth(ctx)}
	}

	resp := h.buildStatusResponse(ctx, results)
	if resp.Status != "ok" {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	return c.JSON(http.StatusOK, resp)
}

// buildStatusResponse constructs the status response from component checks and metrics.
func (h *Health) buildStatusResponse(
	ctx context.Context,
	results map[string]error,
) StatusResponse {
	resp := StatusResponse{
		Status:     "ok",
		Version:    h.Version,
		Uptime:     time.Since(h.StartTime).Round(time.Second).String(),
		Components: make(map[string]ComponentHealth, len(results)),
	}

	for name, err := range results {
		if err != nil {
			resp.Components[name] = ComponentHealth{Status: "error", Error: err.Error()}
			resp.Status = "degraded"
			continue
		}
		resp.Components[name] = ComponentHealth{Status: "ok"}
	}

	if h.Metrics != nil {
		h.populateMetrics(ctx, &resp)
	}

	return resp
}

// populateMetrics enriches the response with domain metrics. A failing
// provider call is logged and skipped.
func (h *Health) populateMetrics(
	ctx context.Context,
	resp *StatusResponse,
) {
	if stats, err := h.Metrics.GetCollectionStats(ctx); err != nil {
		h.logger.Warn("failed to get collection stats for status", "error", err)
	} else {
		slices.SortFunc(stats, func(a, b CollectionMetrics) int {
			return cmp.Compare(a.Name, b.Name)
		})
		resp.Collections = stats
	}

	if months, err := h.Metrics.GetClosedMonths(ctx); err != nil {
		h.logger.Warn("failed to get closed months for status", "error", err)
	} else {
		resp.ClosedMonths = months
	}
}
