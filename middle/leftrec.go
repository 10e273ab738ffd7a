package middle

import (
	"github.com/berku-oak/pegc/ast"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/ident"
)

// detectLeftRecursion resolves the second Open Question in spec §9: left
// recursion is unsupported but never explicitly detected by the original
// source, so a cycle check over the non-terminal call graph restricted to
// first positions is added here and rejects unguarded left recursion with
// a diagnostic rather than letting the back-end generate a parser that
// loops forever at runtime.
//
// A rule is in another rule's "first position" set if it can be the very
// next non-terminal invoked without first requiring some other
// expression to consume input — which, for a Sequence, means every
// nullable prefix also contributes its next child's first positions.
func detectLeftRecursion(g *ast.Grammar, intern *ident.Interner, sink diag.Sink) {
	n := len(g.Rules)
	ruleNullable := computeNullable(g)

	edges := make([][]int, n)
	for i, r := range g.Rules {
		edges[i] = firstRuleIndices(r.Body, ruleNullable)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, n)
	var visit func(i int) bool
	visit = func(i int) bool {
		color[i] = gray
		for _, j := range edges[i] {
			if j < 0 || j >= n {
				continue
			}
			if color[j] == gray {
				sink.Report(diag.Error, g.Rules[i].Sp, "left recursion in rule `%s`", intern.Name(g.Rules[i].Name))
				continue
			}
			if color[j] == white {
				visit(j)
			}
		}
		color[i] = black
		return true
	}
	for i := 0; i < n; i++ {
		if color[i] == white {
			visit(i)
		}
	}
}

// computeNullable derives, for every rule, whether it can match without
// consuming any input, as the least fixpoint of nullable over the rule
// set: a NonTerminal is nullable iff the rule it names is itself
// nullable. Starting every rule at "not nullable" and only ever flipping
// a rule to nullable is a monotone climb on a lattice bounded by true, so
// the loop below always terminates, and each rule's nullability is never
// assumed before it is actually established.
func computeNullable(g *ast.Grammar) []bool {
	rn := make([]bool, len(g.Rules))
	for {
		changed := false
		for i, r := range g.Rules {
			if rn[i] {
				continue
			}
			if nullable(r.Body, rn) {
				rn[i] = true
				changed = true
			}
		}
		if !changed {
			return rn
		}
	}
}

// firstRuleIndices collects the rule indices reachable in e's first
// position, using ruleNullable (from computeNullable) to decide whether a
// Sequence's later children are also reachable without first consuming
// input.
func firstRuleIndices(e ast.Expr, ruleNullable []bool) []int {
	switch n := e.(type) {
	case *ast.NonTerminal:
		return []int{n.RuleIndex}
	case *ast.Sequence:
		var out []int
		for _, c := range n.Children {
			out = append(out, firstRuleIndices(c, ruleNullable)...)
			if !nullable(c, ruleNullable) {
				break
			}
		}
		return out
	case *ast.Choice:
		var out []int
		for _, c := range n.Children {
			out = append(out, firstRuleIndices(c, ruleNullable)...)
		}
		return out
	case *ast.ZeroOrMore:
		return firstRuleIndices(n.Child, ruleNullable)
	case *ast.OneOrMore:
		return firstRuleIndices(n.Child, ruleNullable)
	case *ast.Optional:
		return firstRuleIndices(n.Child, ruleNullable)
	case *ast.NotPredicate:
		return firstRuleIndices(n.Child, ruleNullable)
	case *ast.AndPredicate:
		return firstRuleIndices(n.Child, ruleNullable)
	default:
		return nil
	}
}

// nullable reports whether e can match without consuming any input.
// ruleNullable carries the nullability already established for each rule
// by computeNullable's fixpoint; a NonTerminal defers to it rather than
// assuming nullable, so a rule that always consumes (like a bare string
// literal) correctly keeps a right-recursive caller out of its own first
// position.
func nullable(e ast.Expr, ruleNullable []bool) bool {
	switch n := e.(type) {
	case *ast.StrLiteral:
		return n.Text == ""
	case *ast.AnySingleChar, *ast.CharacterClass:
		return false
	case *ast.NonTerminal:
		if n.RuleIndex < 0 || n.RuleIndex >= len(ruleNullable) {
			return true
		}
		return ruleNullable[n.RuleIndex]
	case *ast.Sequence:
		for _, c := range n.Children {
			if !nullable(c, ruleNullable) {
				return false
			}
		}
		return true
	case *ast.Choice:
		for _, c := range n.Children {
			if nullable(c, ruleNullable) {
				return true
			}
		}
		return false
	case *ast.ZeroOrMore, *ast.Optional, *ast.NotPredicate, *ast.AndPredicate:
		return true
	case *ast.OneOrMore:
		return nullable(n.Child, ruleNullable)
	default:
		return true
	}
}
