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

// Package common holds the request and response helpers shared by the API
// handler packages.
package common

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/catalog"
	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/guard"
	"github.com/prevencar/vistoria/internal/mutation"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/user"
	"github.com/prevencar/vistoria/internal/validation"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
}

// NewList builds a ListResponse, never encoding a null items array.
func NewList[T any](
	items []T,
	total int,
) ListResponse[T] {
	if items == nil {
		items = []T{}
	}

	return ListResponse[T]{Items: items, TotalItems: total}
}

// JSONError writes an ErrorResponse with code.
func JSONError(
	c echo.Context,
	code int,
	msg string,
) error {
	return c.JSON(code, ErrorResponse{Error: msg})
}

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(
	err error,
) int {
	switch {
	case errors.Is(err, guard.ErrClosedPeriod):
		return http.StatusConflict
	case errors.Is(err, guard.ErrIncompletePayment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, closure.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, mutation.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, mutation.ErrInvalid),
		errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, user.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes err with the status StatusFor picks. Guard refusals
// carry their user-facing message; server errors are logged.
func HandleError(
	c echo.Context,
	logger *slog.Logger,
	msg string,
	err error,
) error {
	code := StatusFor(err)

	var denied *guard.DeniedError
	if errors.As(err, &denied) {
		return JSONError(c, code, denied.Message)
	}

	if code == http.StatusInternalServerError {
		logger.ErrorContext(
			c.Request().Context(),
			msg,
			slog.String("error", err.Error()),
		)
		return JSONError(c, code, msg)
	}

	return JSONError(c, code, err.Error())
}

// Decode decodes the request body into v without validating it.
func Decode(
	c echo.Context,
	v any,
) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	return nil
}

// Bind decodes the request body into v and validates it. The returned
// error is an *echo.HTTPError ready to be returned by the handler.
func Bind(
	c echo.Context,
	v any,
) error {
	if err := Decode(c, v); err != nil {
		return err
	}

	if errMsg, ok := validation.Struct(v); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, errMsg)
	}

	return nil
}

// ErrorHandler renders every error reaching echo as an ErrorResponse.
func ErrorHandler(
	logger *slog.Logger,
) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		} else {
			logger.ErrorContext(
				c.Request().Context(),
				"unhandled request error",
				slog.String("error", err.Error()),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = JSONError(c, code, msg)
	}
}

// Actor returns the authenticated user of the request.
func Actor(
	c echo.Context,
) actor.Actor {
	return actor.FromContext(c.Request().Context())
}

// BindQuery decodes query parameters into v and validates it.
func BindQuery(
	c echo.Context,
	v any,
) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	if errMsg, ok := validation.Struct(v); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, errMsg)
	}

	return nil
}
