// Package checks implements the structural convention checks run over the
// declarations of one container.
//
// Every check is a pure function of its inputs: it never mutates the
// declarations it is given, it accepts them in any order (sorting a copy by
// position first), and it partitions them by lexical context before
// comparing neighbours. Checks return Findings; turning a Finding into a
// diagnostic is the caller's job.
package checks

import (
	"github.com/leapstack-labs/declint/pkg/decl"
	"github.com/leapstack-labs/declint/pkg/syntax"
	"github.com/leapstack-labs/declint/pkg/token"
)

// EditKind names the kind of a proposed edit.
type EditKind string

// Edit kinds.
const (
	EditInsertAfter EditKind = "insert_after"
	EditReplace     EditKind = "replace"
)

// Edit describes a text change relative to a node. It is never applied by
// this package.
type Edit struct {
	Kind EditKind     `json:"kind" yaml:"kind"`
	Node *syntax.Node `json:"-" yaml:"-"`
	Span token.Span   `json:"span" yaml:"span"`
	Text string       `json:"text" yaml:"text"`
}

// InsertAfter proposes inserting text right after n.
func InsertAfter(n *syntax.Node, text string) *Edit {
	return &Edit{Kind: EditInsertAfter, Node: n, Span: n.Span, Text: text}
}

// Replace proposes replacing the source of n with text.
func Replace(n *syntax.Node, text string) *Edit {
	return &Edit{Kind: EditReplace, Node: n, Span: n.Span, Text: text}
}

// Finding is one violation reported by a check.
type Finding struct {
	// Decl is the declaration the violation is reported on.
	Decl *decl.Declaration
	// Node, when set, narrows the reported location to a node inside Decl
	// or outside any declaration.
	Node *syntax.Node
	// Args are substituted into the rule's message template.
	Args []any
	// Edit is an optional proposed fix.
	Edit *Edit
	// Notes carry additional context shown with the diagnostic.
	Notes []string
}

// LineIndex answers blank-line queries about the source. *syntax.File
// implements it.
type LineIndex interface {
	IsBlank(line int) bool
}

// Sorted returns pointers to decls ordered by start line, then column.
// The input slice is not modified.
func Sorted(decls []decl.Declaration) []*decl.Declaration {
	cp := make([]decl.Declaration, len(decls))
	copy(cp, decls)
	decl.SortByPosition(cp)
	out := make([]*decl.Declaration, len(cp))
	for i := range cp {
		out[i] = &cp[i]
	}
	return out
}

// ByContext sorts decls by position and splits them by lexical context.
// Groups appear in order of their first declaration.
func ByContext(decls []decl.Declaration) [][]*decl.Declaration {
	index := make(map[string]int)
	var groups [][]*decl.Declaration
	for _, d := range Sorted(decls) {
		key := d.Context().Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], d)
	}
	return groups
}

// byKindAndContext splits sorted declarations by (Kind, context), in order
// of first appearance.
func byKindAndContext(decls []decl.Declaration) [][]*decl.Declaration {
	index := make(map[string]int)
	var groups [][]*decl.Declaration
	for _, d := range Sorted(decls) {
		key := d.Kind + "\x01" + d.Context().Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], d)
	}
	return groups
}
