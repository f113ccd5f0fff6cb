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

// Package actor carries the acting user through a request context.
package actor

import "context"

// Fallback identity used when no user is attached to the context.
const (
	AnonymousID   = "anonymous"
	AnonymousName = "Sistema"
)

// Built-in roles.
const (
	RoleAdmin     = "admin"
	RoleInspector = "vistoriador"
	RoleFinance   = "financeiro"
)

type contextKey struct{}

// Actor identifies who performs an operation.
type Actor struct {
	ID    string
	Name  string
	Roles []string
}

// Anonymous returns the fallback actor.
func Anonymous() Actor {
	return Actor{ID: AnonymousID, Name: AnonymousName}
}

// HasAnyRole reports whether the actor holds at least one of roles.
func (a Actor) HasAnyRole(
	roles ...string,
) bool {
	for _, have := range a.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}

	return false
}

// WithActor returns a copy of ctx carrying a.
func WithActor(
	ctx context.Context,
	a Actor,
) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// Lookup returns the actor attached to ctx and whether one was attached.
func Lookup(
	ctx context.Context,
) (Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(Actor)
	return a, ok
}

// FromContext returns the actor attached to ctx. Missing ID or name fall
// back to the anonymous identity.
func FromContext(
	ctx context.Context,
) Actor {
	a, _ := ctx.Value(contextKey{}).(Actor)
	if a.ID == "" {
		a.ID = AnonymousID
	}
	if a.Name == "" {
		a.Name = AnonymousName
	}

	return a
}
