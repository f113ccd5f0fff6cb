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

package actor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/actor"
)

type ActorPublicTestSuite struct {
	suite.Suite
}

func (s *ActorPublicTestSuite) TestFromContext() {
	tests := []struct {
		name string
		ctx  context.Context
		want actor.Actor
	}{
		{
			name: "empty context falls back to anonymous",
			ctx:  context.Background(),
			want: actor.Anonymous(),
		},
		{
			name: "attached actor is returned",
			ctx: actor.WithActor(context.Background(), actor.Actor{
				ID:    "2",
				Name:  "Cris Vistoriador",
				Roles: []string{actor.RoleInspector},
			}),
			want: actor.Actor{
				ID:    "2",
				Name:  "Cris Vistoriador",
				Roles: []string{actor.RoleInspector},
			},
		},
		{
			name: "missing name falls back",
			ctx:  actor.WithActor(context.Background(), actor.Actor{ID: "9"}),
			want: actor.Actor{ID: "9", Name: actor.AnonymousName},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, actor.FromContext(tt.ctx))
		})
	}
}

func (s *ActorPublicTestSuite) TestLookup() {
	_, ok := actor.Lookup(context.Background())
	s.False(ok)

	want := actor.Actor{ID: "1", Name: "Admin", Roles: []string{actor.RoleAdmin}}
	got, ok := actor.Lookup(actor.WithActor(context.Background(), want))
	s.True(ok)
	s.Equal(want, got)
}

func (s *ActorPublicTestSuite) TestHasAnyRole() {
	a := actor.Actor{Roles: []string{actor.RoleFinance}}

	s.True(a.HasAnyRole(actor.RoleAdmin, actor.RoleFinance))
	s.False(a.HasAnyRole(actor.RoleAdmin))
	s.False(actor.Anonymous().HasAnyRole(actor.RoleAdmin))
}

func TestActorPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ActorPublicTestSuite))
}
