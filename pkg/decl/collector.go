package decl

import (
	"slices"

	"github.com/leapstack-labs/declint/pkg/syntax"
)

// Collect walks a container body and returns the declarations of fam found
// in it, including those inside nested scopes, in source order.
//
// Traversal is depth-first and left-to-right. A block whose head call is
// one of the family's scopes is descended into with ctx extended by the
// scope's segment; a matching head call is also recorded as a declaration
// spanning the whole block. Every other statement at the current level is
// recorded as a foreign Statement. A nil body yields an empty Result.
func Collect(body *syntax.Node, fam *Family, ctx Context) Result {
	var res Result
	for _, stmt := range syntax.Statements(body) {
		r := collectNode(stmt, fam, ctx)
		res.Declarations = append(res.Declarations, r.Declarations...)
		res.Statements = append(res.Statements, r.Statements...)
	}
	return res
}

func collectNode(n *syntax.Node, fam *Family, ctx Context) Result {
	if n == nil {
		return Result{}
	}
	switch n.Kind {
	case syntax.KindBegin:
		return Collect(n, fam, ctx)

	case syntax.KindSend:
		if kind, ok := fam.Match(n); ok {
			return Result{Declarations: []Declaration{newDeclaration(n, n, kind, fam, ctx)}}
		}
		return foreign(n, ctx)

	case syntax.KindBlock:
		kind, matched := fam.Match(n.Call)
		scope := fam.IsScope(n.Call)
		if !matched && !scope {
			return foreign(n, ctx)
		}

		var res Result
		if matched {
			res.Declarations = append(res.Declarations, newDeclaration(n, n.Call, kind, fam, ctx))
		} else {
			res.Statements = append(res.Statements, foreign(n, ctx).Statements...)
		}
		if scope {
			inner := Collect(n.Body, fam, ctx.Enter(fam.Segment(n.Call)))
			res.Declarations = append(res.Declarations, inner.Declarations...)
			res.Statements = append(res.Statements, inner.Statements...)
		}
		return res

	default:
		return foreign(n, ctx)
	}
}

// newDeclaration builds a declaration for stmt, whose head call is call.
func newDeclaration(stmt, call *syntax.Node, kind string, fam *Family, ctx Context) Declaration {
	return Declaration{
		Category:      fam.Category,
		Kind:          kind,
		Method:        call.Name,
		Name:          fam.NameOf(call, kind),
		Through:       fam.ThroughOf(call),
		Span:          stmt.Span,
		NestingLevel:  ctx.Level,
		NamespacePath: slices.Clone(ctx.Path),
		Node:          stmt,
	}
}

func foreign(n *syntax.Node, ctx Context) Result {
	return Result{Statements: []Statement{{
		Span:          n.Span,
		NestingLevel:  ctx.Level,
		NamespacePath: slices.Clone(ctx.Path),
		Node:          n,
	}}}
}
