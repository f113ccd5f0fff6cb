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

// Package closure provides the monthly closure API handlers.
package closure

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/api/common"
	closurestore "github.com/prevencar/vistoria/internal/closure"
)

// Lister lists stored closures.
type Lister interface {
	List(ctx context.Context) ([]closurestore.Closure, error)
}

// Closer closes billing months.
type Closer interface {
	CloseMonth(ctx context.Context, month string, who actor.Actor) (*closurestore.Closure, error)
}

// Closure implementation of the closure API operations.
type Closure struct {
	Registry  Lister
	Processor Closer
	logger    *slog.Logger
}

// CloseRequest is the body of POST /closures.
type CloseRequest struct {
	Month string `json:"month" validate:"required,month_key"`
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	registry Lister,
	processor Closer,
) *Closure {
	return &Closure{
		Registry:  registry,
		Processor: processor,
		logger:    logger.With(slog.String("handler", "closure")),
	}
}

// GetClosures lists every closure, newest month first.
func (h *Closure) GetClosures(
	c echo.Context,
) error {
	closures, err := h.Registry.List(c.Request().Context())
	if err != nil {
		return common.HandleError(c, h.logger, "failed to list closures", err)
	}

	return c.JSON(http.StatusOK, common.NewList(closures, len(closures)))
}

// PostClosure closes a month for the authenticated user. Only admin and
// financeiro users may close; others get 403 and nothing is recorded.
func (h *Closure) PostClosure(
	c echo.Context,
) error {
	var req CloseRequest
	if err := common.Bind(c, &req); err != nil {
		return err
	}

	closed, err := h.Processor.CloseMonth(c.Request().Context(), req.Month, common.Actor(c))
	if err != nil {
		return common.HandleError(c, h.logger, "failed to close month", err)
	}

	return c.JSON(http.StatusCreated, closed)
}
