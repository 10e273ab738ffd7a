package middle

import "github.com/berku-oak/pegc/ast"

// normalize implements step 6: fold nested Sequences into a single
// Sequence, likewise Choices, and drop singleton wrappers. Nesting only
// arises from parenthesized groups ("(a b) c" parses as a Sequence whose
// first child is itself the Sequence "a b"); this pass flattens that back
// into one Sequence so the back-end never has to special-case it.
func normalize(g *ast.Grammar) {
	for _, r := range g.Rules {
		r.Body = normalizeExpr(r.Body)
	}
}

func normalizeExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.Sequence:
		var flat []ast.Expr
		for _, c := range n.Children {
			c = normalizeExpr(c)
			if inner, ok := c.(*ast.Sequence); ok {
				flat = append(flat, inner.Children...)
			} else {
				flat = append(flat, c)
			}
		}
		if len(flat) == 1 {
			return flat[0]
		}
		n.Children = flat
		return n
	case *ast.Choice:
		var flat []ast.Expr
		for _, c := range n.Children {
			c = normalizeExpr(c)
			if inner, ok := c.(*ast.Choice); ok {
				flat = append(flat, inner.Children...)
			} else {
				flat = append(flat, c)
			}
		}
		if len(flat) == 1 {
			return flat[0]
		}
		n.Children = flat
		return n
	case *ast.ZeroOrMore:
		n.Child = normalizeExpr(n.Child)
		return n
	case *ast.OneOrMore:
		n.Child = normalizeExpr(n.Child)
		return n
	case *ast.Optional:
		n.Child = normalizeExpr(n.Child)
		return n
	case *ast.NotPredicate:
		n.Child = normalizeExpr(n.Child)
		return n
	case *ast.AndPredicate:
		n.Child = normalizeExpr(n.Child)
		return n
	default:
		return e
	}
}
