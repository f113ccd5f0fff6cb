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

package authtoken

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/prevencar/vistoria/internal/actor"
)

// Issuer is stamped into every token.
const Issuer = "vistoria"

// DefaultTTL is the lifetime of a token when none is given.
const DefaultTTL = 12 * time.Hour

// RoleHierarchy lists every built-in role and the roles it includes.
var RoleHierarchy = map[string][]string{
	actor.RoleAdmin:     {actor.RoleFinance, actor.RoleInspector},
	actor.RoleFinance:   {},
	actor.RoleInspector: {},
}

// CustomClaims are the claims carried by a token.
type CustomClaims struct {
	Roles       []string `json:"roles"                 validate:"required,min=1,dive,oneof=admin vistoriador financeiro"`
	Permissions []string `json:"permissions,omitempty"`
	// Name is the display name used in audit entries.
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Actor returns the identity the claims describe.
func (c *CustomClaims) Actor() actor.Actor {
	return actor.Actor{
		ID:    c.Subject,
		Name:  c.Name,
		Roles: c.Roles,
	}
}

// Token generates and validates tokens.
type Token struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Token.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
		now:    time.Now,
	}
}

// GenerateAllowedRoles returns the role names of hierarchy, sorted.
func GenerateAllowedRoles(
	hierarchy map[string][]string,
) []string {
	roles := make([]string, 0, len(hierarchy))
	for role := range hierarchy {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	return roles
}

// GenerateOption customizes a generated token.
type GenerateOption func(*CustomClaims)

// WithName sets the display name claim.
func WithName(
	name string,
) GenerateOption {
	return func(c *CustomClaims) {
		c.Name = name
	}
}

// WithTTL sets the token lifetime.
func WithTTL(
	ttl time.Duration,
) GenerateOption {
	return func(c *CustomClaims) {
		if ttl > 0 {
			c.ExpiresAt = jwt.NewNumericDate(c.IssuedAt.Add(ttl))
		}
	}
}

// Generate signs a HS256 token for subject.
func (t *Token) Generate(
	signingKey string,
	roles []string,
	subject string,
	permissions []string,
	opts ...GenerateOption,
) (string, error) {
	now := t.now()
	claims := CustomClaims{
		Roles:       roles,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(DefaultTTL)),
		},
	}

	for _, opt := range opts {
		opt(&claims)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	t.logger.Debug(
		"generated token",
		slog.String("subject", subject),
		slog.Any("roles", roles),
		slog.Time("expires", claims.ExpiresAt.Time),
	)

	return signed, nil
}
