// Package typeinfer implements the type inferencer (C7): deriving, from
// each rule's expression, the algebraic AstRuleType of the value that
// rule would capture, per spec §4.7's rules.
//
// A nil *Type represents the "None" capture type throughout this package
// (predicates and literals capture nothing, and composite types collapse
// to None once every contributing child is None).
package typeinfer

import (
	"github.com/berku-oak/pegc/ast"
	"github.com/berku-oak/pegc/attribute"
	"github.com/berku-oak/pegc/attrs"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/ident"
)

// Kind discriminates the AstRuleType sum.
type Kind int

const (
	Character Kind = iota
	Placeholder
	Sequence // "Sequence-of(T)": zero-or-more / one-or-more capture
	Tuple
	Option
	Sum
)

// Type is one AstRuleType node.
//
//   - Character has no further fields.
//   - Placeholder carries the rule index it stands for, valid only before
//     ResolveGrammar substitutes it away.
//   - Sequence and Option carry Elem, the element/child type.
//   - Tuple carries Parts, the component types in order.
//   - Sum carries Branches, one flattened component list per Choice arm.
type Type struct {
	Kind        Kind
	Placeholder int
	Elem        *Type
	Parts       []*Type
	Branches    [][]*Type
}

// InferExpr derives e's type per the table in spec §4.7, without
// resolving any Placeholder it produces.
func InferExpr(e ast.Expr) *Type {
	switch n := e.(type) {
	case *ast.StrLiteral, *ast.AnySingleChar, *ast.NotPredicate, *ast.AndPredicate:
		return nil
	case *ast.CharacterClass:
		return &Type{Kind: Character}
	case *ast.NonTerminal:
		return &Type{Kind: Placeholder, Placeholder: n.RuleIndex}
	case *ast.Sequence:
		var parts []*Type
		for _, c := range n.Children {
			if t := InferExpr(c); t != nil {
				parts = append(parts, t)
			}
		}
		switch len(parts) {
		case 0:
			return nil
		case 1:
			return parts[0]
		default:
			return &Type{Kind: Tuple, Parts: parts}
		}
	case *ast.Choice:
		branches := make([][]*Type, 0, len(n.Children))
		for _, c := range n.Children {
			branches = append(branches, flattenBranch(InferExpr(c)))
		}
		return &Type{Kind: Sum, Branches: branches}
	case *ast.ZeroOrMore:
		if t := InferExpr(n.Child); t != nil {
			return &Type{Kind: Sequence, Elem: t}
		}
		return nil
	case *ast.OneOrMore:
		if t := InferExpr(n.Child); t != nil {
			return &Type{Kind: Sequence, Elem: t}
		}
		return nil
	case *ast.Optional:
		if t := InferExpr(n.Child); t != nil {
			return &Type{Kind: Option, Elem: t}
		}
		return nil
	default:
		return nil
	}
}

// flattenBranch turns one Choice arm's type into the flat component list a
// Sum branch carries: a Tuple contributes its parts, None contributes an
// empty list, anything else contributes itself as a single element.
func flattenBranch(t *Type) []*Type {
	if t == nil {
		return nil
	}
	if t.Kind == Tuple {
		return t.Parts
	}
	return []*Type{t}
}

// ResolveGrammar infers every rule's raw type, then resolves Placeholder
// nodes by rule index. A rule marked invisible_type resolves to None
// wherever it is referenced. A placeholder cycle with no concrete carrier
// is reported through sink and resolves to None for every rule in the
// cycle, matching the middle-end's "report and continue" policy rather
// than aborting the whole inference pass.
func ResolveGrammar(g *ast.CleanGrammar, intern *ident.Interner, sink diag.Sink) map[int]*Type {
	raw := make([]*Type, len(g.Rules))
	invisible := make([]bool, len(g.Rules))
	for i, r := range g.Rules {
		raw[i] = InferExpr(r.Body)
		invisible[i] = attribute.Get[bool](r.Attrs, sink, attrs.InvisibleType)
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make([]int, len(g.Rules))
	resolved := make([]*Type, len(g.Rules))

	var resolve func(i int) *Type
	substitute := func(t *Type) *Type { return substitutePlaceholders(t, invisible, resolve) }
	resolve = func(i int) *Type {
		switch state[i] {
		case done:
			return resolved[i]
		case visiting:
			sink.Report(diag.Error, g.Rules[i].Sp, "cyclic capture type through rule %q with no concrete carrier", intern.Name(g.Rules[i].Name))
			return nil
		}
		state[i] = visiting
		t := substitute(raw[i])
		state[i] = done
		resolved[i] = t
		return t
	}

	out := make(map[int]*Type, len(g.Rules))
	for i := range g.Rules {
		if t := resolve(i); t != nil {
			out[i] = t
		}
	}
	return out
}

func substitutePlaceholders(t *Type, invisible []bool, resolve func(int) *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case Placeholder:
		if t.Placeholder < 0 || t.Placeholder >= len(invisible) || invisible[t.Placeholder] {
			return nil
		}
		return resolve(t.Placeholder)
	case Sequence, Option:
		elem := substitutePlaceholders(t.Elem, invisible, resolve)
		if elem == nil {
			return nil
		}
		return &Type{Kind: t.Kind, Elem: elem}
	case Tuple:
		var parts []*Type
		for _, p := range t.Parts {
			if sp := substitutePlaceholders(p, invisible, resolve); sp != nil {
				parts = append(parts, sp)
			}
		}
		switch len(parts) {
		case 0:
			return nil
		case 1:
			return parts[0]
		default:
			return &Type{Kind: Tuple, Parts: parts}
		}
	case Sum:
		branches := make([][]*Type, 0, len(t.Branches))
		for _, br := range t.Branches {
			var nb []*Type
			for _, p := range br {
				if sp := substitutePlaceholders(p, invisible, resolve); sp != nil {
					nb = append(nb, sp)
				}
			}
			branches = append(branches, nb)
		}
		return &Type{Kind: Sum, Branches: branches}
	default: // Character
		return t
	}
}
