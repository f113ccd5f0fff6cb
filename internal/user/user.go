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

// Package user manages back-office accounts, password checks and the
// login/logout audit trail.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/prevencar/vistoria/internal/actor"
	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/ids"
	"github.com/prevencar/vistoria/internal/store"
	"github.com/prevencar/vistoria/internal/validation"
)

var (
	// ErrNotFound is returned when a user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalid is returned when a user fails validation.
	ErrInvalid = errors.New("invalid user")
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when another user already owns the email.
	ErrEmailTaken = errors.New("email already registered")
)

// User is a back-office account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=admin vistoriador financeiro"`
	// PasswordHash is the bcrypt hash. Cleared by Public.
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Key returns the storage key.
func (u User) Key() string {
	return u.ID
}

// Public returns a copy without credentials.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Actor returns the identity used for audit entries.
func (u User) Actor() actor.Actor {
	return actor.Actor{
		ID:    u.ID,
		Name:  u.Name,
		Roles: []string{u.Role},
	}
}

// Recorder appends audit entries.
type Recorder interface {
	Append(ctx context.Context, kind audit.Kind, description string, details string) audit.Entry
}

// Service stores users and authenticates them.
type Service struct {
	logger   *slog.Logger
	users    *store.Collection[User]
	recorder Recorder
	cost     int
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost of new hashes.
func WithCost(
	cost int,
) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// New creates a Service over backend.
func New(
	logger *slog.Logger,
	backend store.Backend,
	recorder Recorder,
	opts ...Option,
) *Service {
	s := &Service{
		logger:   logger,
		users:    store.NewCollection(logger, backend, store.CollectionUsers, User.Key),
		recorder: recorder,
		cost:     bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns every user ordered by name, without credentials.
func (s *Service) List(
	ctx context.Context,
) ([]User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(a, b int) bool {
		return users[a].Name < users[b].Name
	})

	for i := range users {
		users[i] = users[i].Public()
	}

	return users, nil
}

// Get returns one user without credentials.
func (s *Service) Get(
	ctx context.Context,
	id string,
) (*User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	p := u.Public()
	return &p, nil
}

// Save inserts or replaces u. A non-empty password replaces the stored
// hash; an empty one keeps it. New users require a password.
func (s *Service) Save(
	ctx context.Context,
	u User,
	password string,
) (*User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.ID == "" {
		u.ID = ids.New()
	}

	if errMsg, ok := validation.Struct(u); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, errMsg)
	}

	owner, err := s.findByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != u.ID {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
	}

	existing, err := s.users.Get(ctx, u.ID)
	switch {
	case err == nil:
		u.PasswordHash = existing.PasswordHash
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if u.PasswordHash == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalid)
	}

	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}

	p := u.Public()
	return &p, nil
}

// Delete removes a user. Missing ids are ignored.
func (s *Service) Delete(
	ctx context.Context,
	id string,
) error {
	return s.users.Delete(ctx, id)
}

// Seed creates an admin account when no user exists.
func (s *Service) Seed(
	ctx context.Context,
	name string,
	email string,
	password string,
) error {
	keys, err := s.users.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return nil
	}

	if _, err := s.Save(ctx, User{
		Name:  name,
		Email: email,
		Role:  actor.RoleAdmin,
	}, password); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.logger.Info("seeded admin user", slog.String("email", email))

	return nil
}

// Login checks the credentials and records the login.
func (s *Service) Login(
	ctx context.Context,
	email string,
	password string,
) (*User, error) {
	u, err := s.findByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("password mismatch", slog.String("email", u.Email))
		return nil, ErrInvalidCredentials
	}

	s.recorder.Append(
		actor.WithActor(ctx, u.Actor()),
		audit.KindOperational,
		fmt.Sprintf("Usuário %s realizou login.", u.Name),
		"",
	)

	p := u.Public()
	return &p, nil
}

// Logout records that the actor in ctx logged out.
func (s *Service) Logout(
	ctx context.Context,
) {
	who := actor.FromContext(ctx)

	s.recorder.Append(
		ctx,
		audit.KindOperational,
		fmt.Sprintf("Usuário %s realizou logout.", who.Name),
		"",
	)
}

func (s *Service) findByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}

	return nil, nil
}
