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
	inspectionstore "github.com/prevencar/vistoria/internal/inspection"
)

// GetInspections lists the records matching the query filters, newest
// date first.
func (i *Inspection) GetInspections(
	c echo.Context,
) error {
	var params ListParams
	if err := common.BindQuery(c, &params); err != nil {
		return err
	}

	records, err := i.Facade.List(c.Request().Context(), inspectionstore.Filter{
		Month:         params.Month,
		Status:        params.Status,
		PaymentStatus: params.PaymentStatus,
		Inspector:     params.Inspector,
		Plate:         params.Plate,
	})
	if err != nil {
		return common.HandleError(c, i.logger, "failed to list inspections", err)
	}

	return c.JSON(http.StatusOK, common.NewList(records, len(records)))
}
