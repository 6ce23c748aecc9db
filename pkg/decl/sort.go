package decl

import (
	"sort"

	"github.com/leapstack-labs/declint/internal/dag"
)

// Order is the canonical order of a declaration group.
type Order struct {
	// Names lists every declaration name in expected order, duplicates
	// included.
	Names []string

	// Cycle lists, in lexicographic order, the names that sit on a
	// through-reference loop. Names that only depend on a loop are not
	// included. Every name the loop holds back is appended to Names in
	// lexicographic order.
	Cycle []string
}

// Canonical computes the expected order of decls.
//
// Without dependencyAware the order is alphabetical by name. With it, a
// declaration whose Through names another declaration in decls is placed
// after that declaration; among declarations whose dependencies are
// satisfied the alphabetically smallest comes first. References to names
// outside decls are ignored. The result does not depend on the order of
// decls.
func Canonical(decls []Declaration, dependencyAware bool) Order {
	counts := make(map[string]int, len(decls))
	for i := range decls {
		counts[decls[i].Name]++
	}

	if !dependencyAware {
		names := make([]string, 0, len(decls))
		for i := range decls {
			names = append(names, decls[i].Name)
		}
		sort.Strings(names)
		return Order{Names: names}
	}

	g := throughGraph(decls, func(name string) bool { return counts[name] > 0 })
	order, residue := g.LexicalOrder()
	names := make([]string, 0, len(decls))
	for _, name := range append(order, residue...) {
		for range counts[name] {
			names = append(names, name)
		}
	}
	return Order{Names: names, Cycle: cycleMembers(decls, residue)}
}

// throughGraph builds the dependency graph over the declarations whose name
// passes keep. An edge runs from the Through target to the declaration.
func throughGraph(decls []Declaration, keep func(string) bool) *dag.Graph {
	g := dag.NewGraph()
	for i := range decls {
		if keep(decls[i].Name) {
			g.AddNode(decls[i].Name)
		}
	}
	for i := range decls {
		d := &decls[i]
		if d.Through == "" || d.Through == d.Name || !g.HasNode(d.Name) || !g.HasNode(d.Through) {
			continue
		}
		// Both nodes exist and differ, so AddEdge cannot fail.
		_ = g.AddEdge(d.Through, d.Name)
	}
	return g
}

// cycleMembers picks out of residue the names that lie on a loop. Each
// found loop is removed before looking for the next one.
func cycleMembers(decls []Declaration, residue []string) []string {
	if len(residue) == 0 {
		return nil
	}
	open := make(map[string]bool, len(residue))
	for _, name := range residue {
		open[name] = true
	}

	var members []string
	for {
		found, path := throughGraph(decls, func(name string) bool { return open[name] }).HasCycle()
		if !found {
			break
		}
		for _, name := range path {
			if open[name] {
				open[name] = false
				members = append(members, name)
			}
		}
	}
	sort.Strings(members)
	return members
}
