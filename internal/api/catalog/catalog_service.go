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

// GetServices lists the services ordered by name.
func (h *Catalog) GetServices(
	c echo.Context,
) error {
	items, err := h.Store.Services(c.Request().Context())
	if err != nil {
		return common.HandleError(c, h.logger, "failed to list services", err)
	}

	return c.JSON(http.StatusOK, common.NewList(items, len(items)))
}

// GetServiceByID returns one service.
func (h *Catalog) GetServiceByID(
	c echo.Context,
) error {
	item, err := h.Store.Service(c.Request().Context(), c.Param("id"))
	if err != nil {
		return common.HandleError(c, h.logger, "failed to get service", err)
	}

	return c.JSON(http.StatusOK, item)
}

// PutService creates or replaces a service.
func (h *Catalog) PutService(
	c echo.Context,
) error {
	var item catalogstore.Service
	if err := common.Decode(c, &item); err != nil {
		return err
	}

	saved, err := h.Store.SaveService(c.Request().Context(), item)
	if err != nil {
		return common.HandleError(c, h.logger, "failed to save service", err)
	}

	return c.JSON(http.StatusOK, saved)
}

// DeleteService removes a service.
func (h *Catalog) DeleteService(
	c echo.Context,
) error {
	if err := h.Store.DeleteService(c.Request().Context(), c.Param("id")); err != nil {
		return common.HandleError(c, h.logger, "failed to delete service", err)
	}

	return c.NoContent(http.StatusNoContent)
}
