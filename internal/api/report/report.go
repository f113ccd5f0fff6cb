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

// Package report provides the financial report API handlers.
package report

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api/common"
	reportbuilder "github.com/prevencar/vistoria/internal/report"
	"github.com/prevencar/vistoria/internal/validation"
)

// Builder produces monthly summaries.
type Builder interface {
	Monthly(ctx context.Context, month string) (*reportbuilder.Monthly, error)
}

// Report implementation of the report API operations.
type Report struct {
	Builder Builder
	logger  *slog.Logger
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	builder Builder,
) *Report {
	return &Report{
		Builder: builder,
		logger:  logger.With(slog.String("handler", "report")),
	}
}

// GetMonthlyReport summarizes the inspections billed to the month in the
// path.
func (h *Report) GetMonthlyReport(
	c echo.Context,
) error {
	month := c.Param("month")
	if !validation.IsMonthKey(month) {
		return common.JSONError(c, http.StatusBadRequest, "month must be formatted YYYY-MM")
	}

	summary, err := h.Builder.Monthly(c.Request().Context(), month)
	if err != nil {
		return common.HandleError(c, h.logger, "failed to build report", err)
	}

	return c.JSON(http.StatusOK, summary)
}
