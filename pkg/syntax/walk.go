package syntax

// Walk traverses the tree rooted at n depth-first in source order, calling
// fn for each node. If fn returns false the node's children are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n.Kind {
	case KindSend:
		Walk(n.Receiver, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case KindBlock:
		Walk(n.Call, fn)
		Walk(n.Body, fn)
	case KindClass:
		Walk(n.Super, fn)
		Walk(n.Body, fn)
	case KindPair:
		Walk(n.Key, fn)
		Walk(n.Value, fn)
	case KindBegin, KindHash, KindArray:
		for _, c := range n.Children {
			Walk(c, fn)
		}
	case KindOther:
		for _, c := range n.Children {
			Walk(c, fn)
		}
		Walk(n.Body, fn)
	case KindSym, KindStr, KindConst:
	}
}

// Calls returns every Send node in the tree, in source order. Block heads
// are included.
func Calls(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == KindSend {
			out = append(out, n)
		}
		return true
	})
	return out
}
