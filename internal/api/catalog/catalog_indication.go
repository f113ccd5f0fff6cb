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

package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api/common"
	catalogstore "github.com/prevencar/vistoria/internal/catalog"
)

// GetIndications lists the referral partners ordered by name.
func (h *Catalog) GetIndications(
	c echo.Context,
) error {
	items, err := h.Store.Indications(c.Request().Context())
	if err != nil {
		return common.HandleError(c, h.logger, "failed to list indications", err)
	}

	return c.JSON(http.StatusOK, common.NewList(items, len(items)))
}

// GetIndicationByID returns one referral partner.
func (h *Catalog) GetIndicationByID(
	c echo.Context,
) error {
	item, err := h.Store.Indication(c.Request().Context(), c.Param("id"))
	if err != nil {
		return common.HandleError(c, h.logger, "failed to get indication", err)
	}

	return c.JSON(http.StatusOK, item)
}

// PutIndication creates or replaces a referral partner.
func (h *Catalog) PutIndication(
	c echo.Context,
) error {
	var item catalogstore.Indication
	if err := common.Decode(c, &item); err != nil {
		return err
	}

	saved, err := h.Store.SaveIndication(c.Request().Context(), item)
	if err != nil {
		return common.HandleError(c, h.logger, "failed to save indication", err)
	}

	return c.JSON(http.StatusOK, saved)
}

// DeleteIndication removes a referral partner.
func (h *Catalog) DeleteIndication(
	c echo.Context,
) error {
	if err := h.Store.DeleteIndication(c.Request().Context(), c.Param("id")); err != nil {
		return common.HandleError(c, h.logger, "failed to delete indication", err)
	}

	return c.NoContent(http.StatusNoContent)
}
