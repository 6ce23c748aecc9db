// Package decl extracts convention-governed declarations from a syntax
// tree.
//
// A declaration is one recognized statement (a record association inside
// a model class, a route inside a routing block) annotated with its source
// span and the lexical scope it appears in. Declarations are produced by
// Collect, grouped per syntactic container by Containers, and ordered by
// Canonical for the sorting checks.
package decl

import (
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/declint/pkg/syntax"
	"github.com/leapstack-labs/declint/pkg/token"
)

// Context is the lexical scope of a declaration: its nesting depth and the
// names of the enclosing scopes. A Context is never mutated; Enter returns
// a new one.
type Context struct {
	Level int
	Path  []string
}

// Enter returns the context of a scope nested one level below c.
func (c Context) Enter(segment string) Context {
	path := make([]string, len(c.Path), len(c.Path)+1)
	copy(path, c.Path)
	return Context{Level: c.Level + 1, Path: append(path, segment)}
}

// Equal reports whether c and o denote the same scope.
func (c Context) Equal(o Context) bool {
	return c.Level == o.Level && slices.Equal(c.Path, o.Path)
}

// Key returns a string uniquely identifying the scope, usable as a map key.
func (c Context) Key() string {
	return strconv.Itoa(c.Level) + "\x00" + strings.Join(c.Path, "\x00")
}

// String returns the scope as a slash-separated path, "/" for the top level.
func (c Context) String() string {
	return "/" + strings.Join(c.Path, "/")
}

// Declaration is one recognized statement.
type Declaration struct {
	// Category is the family the declaration belongs to ("association", "route").
	Category string `json:"category" yaml:"category"`

	// Kind is the sub-type used for grouping, e.g. "has_many" or "resource".
	Kind string `json:"kind" yaml:"kind"`

	// Method is the call name as written.
	Method string `json:"method" yaml:"method"`

	// Name is the first literal argument, or a family default.
	Name string `json:"name" yaml:"name"`

	// Through names another declaration this one depends on.
	Through string `json:"through,omitempty" yaml:"through,omitempty"`

	// Span covers the call, or the whole block for a block-headed call.
	Span token.Span `json:"span" yaml:"span"`

	NestingLevel  int      `json:"nesting_level" yaml:"nesting_level"`
	NamespacePath []string `json:"namespace_path" yaml:"namespace_path"`

	// Node is the statement node diagnostics attach to. Not owned.
	Node *syntax.Node `json:"-" yaml:"-"`
}

// Context returns the declaration's lexical scope.
func (d *Declaration) Context() Context {
	return Context{Level: d.NestingLevel, Path: d.NamespacePath}
}

// StartLine returns the first line of the declaration.
func (d *Declaration) StartLine() int { return d.Span.Start.Line }

// EndLine returns the last line of the declaration.
func (d *Declaration) EndLine() int { return d.Span.End.Line }

// Call returns the call node of the declaration, looking through a block.
func (d *Declaration) Call() *syntax.Node {
	return d.Node.HeadCall()
}

// Statement is a statement inside a container that is not a declaration.
// Scattering treats these as foreign code.
type Statement struct {
	Span          token.Span
	NestingLevel  int
	NamespacePath []string
	Node          *syntax.Node
}

// Context returns the statement's lexical scope.
func (s *Statement) Context() Context {
	return Context{Level: s.NestingLevel, Path: s.NamespacePath}
}

// Result is the output of one collection pass.
type Result struct {
	Declarations []Declaration
	Statements   []Statement
}

// Len returns the number of declarations.
func (r Result) Len() int { return len(r.Declarations) }

// SortByPosition sorts declarations in place by start line, then column.
func SortByPosition(decls []Declaration) {
	slices.SortStableFunc(decls, func(a, b Declaration) int {
		if a.Span.Start.Line != b.Span.Start.Line {
			return a.Span.Start.Line - b.Span.Start.Line
		}
		return a.Span.Start.Column - b.Span.Start.Column
	})
}
