// Package dag provides the directed graph used to order declarations by
// their dependencies. It supports cycle detection and a deterministic
// topological order whose ties are broken lexicographically.
package dag

import (
	"fmt"
	"slices"
	"sort"
)

// Graph is a directed graph over string node IDs. An edge parent -> child
// means child depends on parent and must come after it.
type Graph struct {
	nodes   map[string]struct{}
	edges   map[string][]string // parent -> children (dependents)
	parents map[string][]string // child -> parents (dependencies)
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]struct{}),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, exists := g.nodes[id]; exists {
		return
	}
	g.nodes[id] = struct{}{}
	g.edges[id] = []string{}
	g.parents[id] = []string{}
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// AddEdge adds a directed edge from parent to child (child depends on parent).
func (g *Graph) AddEdge(parentID, childID string) error {
	if !g.HasNode(parentID) {
		return fmt.Errorf("parent node %q does not exist", parentID)
	}
	if !g.HasNode(childID) {
		return fmt.Errorf("child node %q does not exist", childID)
	}
	if parentID == childID {
		return fmt.Errorf("self-loop detected: %s", parentID)
	}

	if !slices.Contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !slices.Contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
	return nil
}

// sortedIDs returns every node ID in lexicographic order.
func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasCycle returns true if the graph contains a cycle, along with the cycle
// path. Nodes are explored in lexicographic order so the reported path is
// stable across runs.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		children := slices.Clone(g.edges[id])
		sort.Strings(children)
		for _, childID := range children {
			if !visited[childID] {
				path[childID] = id
				if dfs(childID) {
					return true
				}
			} else if recStack[childID] {
				cyclePath = []string{childID}
				for curr := id; curr != childID; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{childID}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, id := range g.sortedIDs() {
		if !visited[id] && dfs(id) {
			return true, cyclePath
		}
	}
	return false, nil
}

// LexicalOrder returns the nodes in topological order using Kahn's
// algorithm. Among the nodes whose dependencies are all satisfied, the
// lexicographically smallest is always emitted next.
//
// Nodes that sit on or behind a cycle can never be emitted. They are
// returned separately as residue, in lexicographic order, and are not part
// of order.
func (g *Graph) LexicalOrder() (order, residue []string) {
	inDegree := make(map[string]int, len(g.nodes))
	var frontier []string
	for _, id := range g.sortedIDs() {
		inDegree[id] = len(g.parents[id])
		if inDegree[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	order = make([]string, 0, len(g.nodes))
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		order = append(order, id)

		for _, childID := range g.edges[id] {
			inDegree[childID]--
			if inDegree[childID] == 0 {
				frontier = insertSorted(frontier, childID)
			}
		}
	}

	if len(order) == len(g.nodes) {
		return order, nil
	}
	for _, id := range g.sortedIDs() {
		if inDegree[id] > 0 {
			residue = append(residue, id)
		}
	}
	return order, residue
}

// insertSorted inserts id into the sorted slice s, keeping it sorted.
func insertSorted(s []string, id string) []string {
	i, _ := slices.BinarySearch(s, id)
	return slices.Insert(s, i, id)
}
