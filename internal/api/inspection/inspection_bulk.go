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

package inspection

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api/common"
)

// PostInspectionsBulk applies one patch to many records, all or nothing.
// Answers 409 when any target is in a closed month and 422 when the patch
// would mark an Incompleta record as paid.
func (i *Inspection) PostInspectionsBulk(
	c echo.Context,
) error {
	var req BulkRequest
	if err := common.Bind(c, &req); err != nil {
		return err
	}

	updated, err := i.Facade.BulkUpdate(c.Request().Context(), req.IDs, req.Patch)
	if err != nil {
		return common.HandleError(c, i.logger, "failed to update inspections", err)
	}

	return c.JSON(http.StatusOK, BulkResponse{
		Updated: len(updated),
		Items:   updated,
	})
}
