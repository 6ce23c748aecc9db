package ruby

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/declint/pkg/syntax"
)

func parse(t *testing.T, src string) *syntax.File {
	t.Helper()
	f, err := NewParser().Parse(context.Background(), []byte(src), "test.rb")
	require.NoError(t, err)
	require.NotNil(t, f.Root)
	return f
}

func TestParse_ModelClass(t *testing.T) {
	src := `class User < ApplicationRecord
  # owner
  belongs_to :account
  has_many :posts, through: :memberships

  has_one :profile
end
`
	f := parse(t, src)

	stmts := syntax.Statements(f.Root)
	require.Len(t, stmts, 1)
	class := stmts[0]
	require.Equal(t, syntax.KindClass, class.Kind)
	assert.Equal(t, "User", class.Name)
	require.NotNil(t, class.Super)
	assert.Equal(t, syntax.KindConst, class.Super.Kind)
	assert.Equal(t, "ApplicationRecord", class.Super.Name)
	assert.Equal(t, 1, class.Span.Start.Line)
	assert.Equal(t, 7, class.Span.End.Line)

	body := syntax.Statements(class.Body)
	require.Len(t, body, 3)

	var names []string
	for _, n := range body {
		require.Equal(t, syntax.KindSend, n.Kind)
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"belongs_to", "has_many", "has_one"}, names)

	hasMany := body[1]
	assert.Equal(t, 4, hasMany.Span.Start.Line)
	assert.Equal(t, 3, hasMany.Span.Start.Column)
	name, ok := hasMany.FirstArg().Literal()
	require.True(t, ok)
	assert.Equal(t, "posts", name)
	through, ok := hasMany.Option("through").Literal()
	require.True(t, ok)
	assert.Equal(t, "memberships", through)

	require.Len(t, f.Comments, 1)
	assert.Equal(t, "# owner", f.Comments[0].Text)
	assert.Equal(t, 2, f.Comments[0].Span.Start.Line)
}

func TestParse_ScopedClassName(t *testing.T) {
	f := parse(t, "class Admin::User < ActiveRecord::Base\nend\n")

	class := syntax.Statements(f.Root)[0]
	assert.Equal(t, "Admin::User", class.Name)
	assert.Equal(t, "ActiveRecord::Base", class.Super.Name)
	assert.Nil(t, class.Body)
}

func TestParse_RoutesDraw(t *testing.T) {
	src := `Rails.application.routes.draw do
  root "home#index"
  namespace :admin do
    resources :users, only: [:index]
  end
  get "about", to: "pages#about"
end
`
	f := parse(t, src)

	stmts := syntax.Statements(f.Root)
	require.Len(t, stmts, 1)
	draw := stmts[0]
	require.Equal(t, syntax.KindBlock, draw.Kind)
	assert.Equal(t, "draw", draw.Call.Name)
	require.NotNil(t, draw.Call.Receiver)
	assert.Equal(t, syntax.KindSend, draw.Call.Receiver.Kind)
	assert.Equal(t, "routes", draw.Call.Receiver.Name)
	assert.Equal(t, 1, draw.Call.Span.End.Line)

	body := syntax.Statements(draw.Body)
	require.Len(t, body, 3)
	assert.Equal(t, "root", body[0].Name)

	ns := body[1]
	require.Equal(t, syntax.KindBlock, ns.Kind)
	assert.Equal(t, "namespace", ns.Call.Name)
	assert.Equal(t, 3, ns.Span.Start.Line)
	assert.Equal(t, 5, ns.Span.End.Line)
	seg, ok := ns.Call.FirstArg().Literal()
	require.True(t, ok)
	assert.Equal(t, "admin", seg)

	inner := syntax.Statements(ns.Body)
	require.Len(t, inner, 1)
	only := inner[0].Option("only")
	require.NotNil(t, only)
	require.Equal(t, syntax.KindArray, only.Kind)
	require.Len(t, only.Children, 1)
	assert.Equal(t, "[:index]", f.Text(only.Span))
	assert.Equal(t, ":index", f.Text(only.Children[0].Span))

	get := body[2]
	path, ok := get.FirstArg().Literal()
	require.True(t, ok)
	assert.Equal(t, "about", path)
}

func TestParse_InterpolatedStringIsNotLiteral(t *testing.T) {
	f := parse(t, "get \"#{prefix}/a\"\n")

	get := syntax.Statements(f.Root)[0]
	_, ok := get.FirstArg().Literal()
	assert.False(t, ok)
}

func TestParse_SyntaxErrorTolerated(t *testing.T) {
	f := parse(t, "class User < ApplicationRecord\n  has_many :posts,\nend\nhas_one\n")
	assert.NotEmpty(t, syntax.Statements(f.Root))
}

func TestParse_Errors(t *testing.T) {
	t.Run("invalid utf8", func(t *testing.T) {
		_, err := NewParser().Parse(context.Background(), []byte{0xff, 0xfe}, "bad.rb")
		assert.ErrorIs(t, err, ErrInvalidContent)
	})

	t.Run("too large", func(t *testing.T) {
		p := NewParser(WithMaxFileSize(8))
		_, err := p.Parse(context.Background(), []byte(strings.Repeat("a", 9)), "big.rb")
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewParser().Parse(ctx, []byte("get 'a'"), "x.rb")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParse_Empty(t *testing.T) {
	f := parse(t, "")
	assert.Equal(t, syntax.KindBegin, f.Root.Kind)
	assert.Empty(t, syntax.Statements(f.Root))
}

func TestParse_CommentsBeforeFirstStatement(t *testing.T) {
	t.Run("class", func(t *testing.T) {
		f := parse(t, "class Doctor < ApplicationRecord\n  # nolint:MA04\n  has_many :b\n  has_many :a\nend\n")
		require.Len(t, f.Comments, 1)
		assert.Equal(t, 2, f.Comments[0].Span.Start.Line)
		assert.Equal(t, map[int][]string{2: {"MA04"}}, f.Suppressions())
	})

	t.Run("block", func(t *testing.T) {
		f := parse(t, "Rails.application.routes.draw do\n  # first\n  resources :users\n  # last\nend\n")
		var lines []int
		for _, c := range f.Comments {
			lines = append(lines, c.Span.Start.Line)
		}
		assert.Equal(t, []int{2, 4}, lines)
	})

	t.Run("inside arguments", func(t *testing.T) {
		f := parse(t, "has_many :a, # note\n  dependent: :destroy\n")
		require.Len(t, f.Comments, 1)
		assert.Equal(t, "# note", f.Comments[0].Text)
	})
}
