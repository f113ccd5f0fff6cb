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

// Package user provides the account management API handlers.
package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api/common"
	userstore "github.com/prevencar/vistoria/internal/user"
)

// Store manages accounts.
type Store interface {
	List(ctx context.Context) ([]userstore.User, error)
	Get(ctx context.Context, id string) (*userstore.User, error)
	Save(ctx context.Context, u userstore.User, password string) (*userstore.User, error)
	Delete(ctx context.Context, id string) error
}

// User implementation of the account API operations.
type User struct {
	Store  Store
	logger *slog.Logger
}

// SaveRequest is the body of PUT /users. An empty password keeps the
// stored one.
type SaveRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	store Store,
) *User {
	return &User{
		Store:  store,
		logger: logger.With(slog.String("handler", "user")),
	}
}

// GetUsers lists every account without credentials.
func (h *User) GetUsers(
	c echo.Context,
) error {
	users, err := h.Store.List(c.Request().Context())
	if err != nil {
		return common.HandleError(c, h.logger, "failed to list users", err)
	}

	return c.JSON(http.StatusOK, common.NewList(users, len(users)))
}

// GetUserByID returns one account.
func (h *User) GetUserByID(
	c echo.Context,
) error {
	u, err := h.Store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return common.HandleError(c, h.logger, "failed to get user", err)
	}

	return c.JSON(http.StatusOK, u)
}

// PutUser creates or replaces an account.
func (h *User) PutUser(
	c echo.Context,
) error {
	var req SaveRequest
	if err := common.Bind(c, &req); err != nil {
		return err
	}

	saved, err := h.Store.Save(c.Request().Context(), userstore.User{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}, req.Password)
	if err != nil {
		return common.HandleError(c, h.logger, "failed to save user", err)
	}

	return c.JSON(http.StatusOK, saved)
}

// DeleteUser removes an account. An admin may not delete itself.
func (h *User) DeleteUser(
	c echo.Context,
) error {
	id := c.Param("id")
	if id == common.Actor(c).ID {
		return common.JSONError(c, http.StatusBadRequest, "cannot delete the logged in user")
	}

	if err := h.Store.Delete(c.Request().Context(), id); err != nil {
		return common.HandleError(c, h.logger, "failed to delete user", err)
	}

	return c.NoContent(http.StatusNoContent)
}
