package checks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/declint/pkg/decl"
)

// Grouping reports declarations that start a second or later run of their
// kind. A run is a maximal sequence of consecutive declarations sharing a
// kind in the container's full sequence, nested declarations included.
func Grouping(decls []decl.Declaration) []Finding {
	var findings []Finding
	seen := make(map[string]bool)
	prevKind := ""
	for i, d := range Sorted(decls) {
		if i > 0 && d.Kind == prevKind {
			continue
		}
		if seen[d.Kind] {
			findings = append(findings, Finding{Decl: d})
		}
		seen[d.Kind] = true
		prevKind = d.Kind
	}
	return findings
}

// Separation reports a declaration that directly follows one of another
// kind in the same context without a blank line between them. Two or more
// lines of gap are accepted; a single line is accepted only when blank.
// Each finding proposes inserting a newline after the previous declaration.
func Separation(decls []decl.Declaration, lines LineIndex) []Finding {
	var findings []Finding
	for _, group := range ByContext(decls) {
		for i := 1; i < len(group); i++ {
			prev, next := group[i-1], group[i]
			if prev.Kind == next.Kind || separated(prev, next, lines) {
				continue
			}
			findings = append(findings, Finding{
				Decl: next,
				Edit: InsertAfter(prev.Node, "\n"),
			})
		}
	}
	return findings
}

func separated(prev, next *decl.Declaration, lines LineIndex) bool {
	gap := next.StartLine() - prev.EndLine() - 1
	switch {
	case gap >= 2:
		return true
	case gap == 1:
		return lines.IsBlank(prev.EndLine() + 1)
	default:
		return false
	}
}

// Scattering reports a declaration separated from the previous declaration
// of its kind, in the same context, by foreign code: a declaration of
// another kind or a non-declaration statement starting strictly between
// the two. Each declaration is reported at most once.
func Scattering(decls []decl.Declaration, stmts []decl.Statement) []Finding {
	var findings []Finding
	for _, group := range ByContext(decls) {
		ctx := group[0].Context()

		var foreign []int
		for i := range stmts {
			if stmts[i].Context().Equal(ctx) {
				foreign = append(foreign, stmts[i].Span.Start.Line)
			}
		}

		last := make(map[string]*decl.Declaration)
		for _, d := range group {
			prev, ok := last[d.Kind]
			last[d.Kind] = d
			if !ok {
				continue
			}
			interrupted := slices.ContainsFunc(group, func(o *decl.Declaration) bool {
				return o.Kind != d.Kind && between(o.StartLine(), prev, d)
			}) || slices.ContainsFunc(foreign, func(line int) bool {
				return between(line, prev, d)
			})
			if interrupted {
				findings = append(findings, Finding{Decl: d})
			}
		}
	}
	return findings
}

func between(line int, prev, next *decl.Declaration) bool {
	return line > prev.EndLine() && line < next.StartLine()
}

// ConsistentSpacing reports a declaration separated by blank lines from the
// declaration of the same kind right before it in the same context.
func ConsistentSpacing(decls []decl.Declaration, lines LineIndex) []Finding {
	var findings []Finding
	for _, group := range ByContext(decls) {
		for i := 1; i < len(group); i++ {
			prev, next := group[i-1], group[i]
			if prev.Kind != next.Kind {
				continue
			}
			for line := prev.EndLine() + 1; line < next.StartLine(); line++ {
				if lines.IsBlank(line) {
					findings = append(findings, Finding{Decl: next})
					break
				}
			}
		}
	}
	return findings
}

// SortOptions configures Sorting.
type SortOptions struct {
	// DependencyAware orders through-dependents after their targets.
	DependencyAware bool
	// Unique removes duplicate names from the reported expected order.
	Unique bool
	// Exclude drops declarations from consideration.
	Exclude func(*decl.Declaration) bool
	// MinGroup is the smallest group checked. Values below 2 mean 2.
	MinGroup int
}

// Sorting reports each (kind, context) group whose names are not in
// canonical order. The finding is placed on the group's first declaration
// and carries the expected order, comma-separated, as its only argument.
func Sorting(decls []decl.Declaration, opts SortOptions) []Finding {
	minGroup := max(opts.MinGroup, 2)

	var findings []Finding
	for _, group := range byKindAndContext(decls) {
		if opts.Exclude != nil {
			group = slices.DeleteFunc(group, opts.Exclude)
		}
		if len(group) < minGroup {
			continue
		}

		members := make([]decl.Declaration, len(group))
		observed := make([]string, len(group))
		for i, d := range group {
			members[i] = *d
			observed[i] = d.Name
		}

		order := decl.Canonical(members, opts.DependencyAware)
		if slices.Equal(observed, order.Names) {
			continue
		}

		expected := order.Names
		if opts.Unique {
			expected = slices.Compact(slices.Clone(expected))
		}
		f := Finding{Decl: group[0], Args: []any{strings.Join(expected, ", ")}}
		if len(order.Cycle) > 0 {
			f.Notes = append(f.Notes, fmt.Sprintf("through references form a cycle: %s", strings.Join(order.Cycle, ", ")))
		}
		findings = append(findings, f)
	}
	return findings
}

// MissingThrough reports declarations whose through reference names no
// declaration in decls. Args are the declaration name and the reference,
// twice.
func MissingThrough(decls []decl.Declaration) []Finding {
	names := make(map[string]bool, len(decls))
	for i := range decls {
		names[decls[i].Name] = true
	}

	var findings []Finding
	for _, d := range Sorted(decls) {
		if d.Through == "" || names[d.Through] {
			continue
		}
		findings = append(findings, Finding{Decl: d, Args: []any{d.Name, d.Through, d.Through}})
	}
	return findings
}

// Repeated reports every declaration after the first of its kind in the
// same context. With nestedOnly, declarations at the container's top level
// are ignored. Args are the kind and the first declaration's start line.
func Repeated(decls []decl.Declaration, nestedOnly bool) []Finding {
	var findings []Finding
	for _, group := range byKindAndContext(decls) {
		if nestedOnly && group[0].NestingLevel == 0 {
			continue
		}
		for _, d := range group[1:] {
			findings = append(findings, Finding{Decl: d, Args: []any{d.Kind, group[0].StartLine()}})
		}
	}
	return findings
}
