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

// Package auth provides the login and logout API handlers.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prevencar/vistoria/internal/api/common"
	"github.com/prevencar/vistoria/internal/authtoken"
	userstore "github.com/prevencar/vistoria/internal/user"
)

// Authenticator checks credentials and records sessions.
type Authenticator interface {
	Login(ctx context.Context, email string, password string) (*userstore.User, error)
	Logout(ctx context.Context)
}

// TokenGenerator signs bearer tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		roles []string,
		subject string,
		permissions []string,
		opts ...authtoken.GenerateOption,
	) (string, error)
}

// Auth implementation of the session API operations.
type Auth struct {
	Users      Authenticator
	Tokens     TokenGenerator
	signingKey string
	ttl        time.Duration
	logger     *slog.Logger
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the logged in user.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expires_in"`
	User      userstore.User `json:"user"`
}

// New factory to create a new instance. A zero ttl uses
// authtoken.DefaultTTL.
func New(
	logger *slog.Logger,
	users Authenticator,
	tokens TokenGenerator,
	signingKey string,
	ttl time.Duration,
) *Auth {
	if ttl <= 0 {
		ttl = authtoken.DefaultTTL
	}

	return &Auth{
		Users:      users,
		Tokens:     tokens,
		signingKey: signingKey,
		ttl:        ttl,
		logger:     logger.With(slog.String("handler", "auth")),
	}
}

// PostLogin exchanges credentials for a bearer token.
func (a *Auth) PostLogin(
	c echo.Context,
) error {
	var req LoginRequest
	if err := common.Bind(c, &req); err != nil {
		return err
	}

	u, err := a.Users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.HandleError(c, a.logger, "failed to log in", err)
	}

	token, err := a.Tokens.Generate(
		a.signingKey,
		[]string{u.Role},
		u.ID,
		nil,
		authtoken.WithName(u.Name),
		authtoken.WithTTL(a.ttl),
	)
	if err != nil {
		return common.HandleError(c, a.logger, "failed to issue token", err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int64(a.ttl.Seconds()),
		User:      *u,
	})
}

// PostLogout records the end of the caller's session. Tokens are
// stateless and stay valid until they expire.
func (a *Auth) PostLogout(
	c echo.Context,
) error {
	a.Users.Logout(c.Request().Context())

	return c.NoContent(http.StatusNoContent)
}
