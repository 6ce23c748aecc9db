package decl

import (
	"github.com/leapstack-labs/declint/pkg/syntax"
)

// Container is one syntactic unit whose declarations are checked together:
// a model class body, a routing block or a request spec file.
type Container struct {
	Family *Family
	// Node is the class, the draw block or the file root.
	Node   *syntax.Node
	Result Result
}

// Containers finds every container of every configured family in f and
// collects its declarations. Containers are returned in source order per
// family, in the order association, route, hooks.
func Containers(f *syntax.File, cfg *Config) []Container {
	if f == nil || f.Root == nil || cfg == nil {
		return nil
	}
	var out []Container
	if fam := cfg.Association; fam != nil {
		out = append(out, classContainers(f.Root, fam)...)
	}
	if fam := cfg.Route; fam != nil {
		out = append(out, routeContainers(f, fam)...)
	}
	if fam := cfg.Hooks; fam != nil && fam.MatchesFile(f.Path) {
		out = append(out, Container{
			Family: fam,
			Node:   f.Root,
			Result: Collect(f.Root, fam, Context{}),
		})
	}
	return out
}

// classContainers returns every class whose superclass is one of the
// family's base classes. Classes nested in modules or other classes are
// found too.
func classContainers(root *syntax.Node, fam *Family) []Container {
	var out []Container
	syntax.Walk(root, func(n *syntax.Node) bool {
		if n.Kind == syntax.KindClass && fam.IsBaseClass(n.Super) {
			out = append(out, Container{
				Family: fam,
				Node:   n,
				Result: Collect(n.Body, fam, Context{}),
			})
		}
		return true
	})
	return out
}

// routeContainers returns every "Rails.application.routes.draw" block. A
// file matching one of the family's file patterns that holds no such block
// is a container as a whole.
func routeContainers(f *syntax.File, fam *Family) []Container {
	var out []Container
	syntax.Walk(f.Root, func(n *syntax.Node) bool {
		if n.Kind == syntax.KindBlock && isRoutesDraw(n.Call) {
			out = append(out, Container{
				Family: fam,
				Node:   n,
				Result: Collect(n.Body, fam, Context{}),
			})
			return false
		}
		return true
	})
	if len(out) == 0 && fam.MatchesFile(f.Path) {
		out = append(out, Container{
			Family: fam,
			Node:   f.Root,
			Result: Collect(f.Root, fam, Context{}),
		})
	}
	return out
}

// isRoutesDraw reports whether call is "draw" sent to a receiver chain
// ending in "routes", as in Rails.application.routes.draw.
func isRoutesDraw(call *syntax.Node) bool {
	if call == nil || call.Kind != syntax.KindSend || call.Name != "draw" {
		return false
	}
	recv := call.Receiver
	return recv != nil && recv.Kind == syntax.KindSend && recv.Name == "routes"
}
