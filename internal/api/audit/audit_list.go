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
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api/common"
)

// DefaultLimit is the page size when the request names none.
const DefaultLimit = 20

// GetAuditLogs returns a page of entries, newest first.
func (a *Audit) GetAuditLogs(
	c echo.Context,
) error {
	var params ListParams
	if err := common.BindQuery(c, &params); err != nil {
		return err
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	entries, total, err := a.Store.List(c.Request().Context(), limit, params.Offset)
	if err != nil {
		return common.HandleError(c, a.logger, "failed to list audit entries", err)
	}

	return c.JSON(http.StatusOK, common.NewList(entries, total))
}
