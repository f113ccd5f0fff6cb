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

package audit

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api/common"
	"github.com/prevencar/vistoria/internal/audit/export"
)

// GetAuditExport returns every retained entry, newest first.
func (a *Audit) GetAuditExport(
	c echo.Context,
) error {
	ctx := c.Request().Context()
	collector := &export.Collector{}

	result, err := export.Run(ctx, a.logger, a.Store.List, collector, a.batchSize, nil)
	if err != nil {
		return common.HandleError(c, a.logger, "failed to export audit entries", err)
	}

	a.logger.DebugContext(
		ctx,
		"audit log exported",
		slog.Int("exported", result.ExportedEntries),
		slog.Int("total", result.TotalEntries),
	)

	return c.JSON(http.StatusOK, common.NewList(collector.Entries, result.TotalEntries))
}
