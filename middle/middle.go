// Package middle is the semantic analyser (C4): it validates a raw
// ast.Grammar, resolves every NonTerminal to a rule index, assigns the
// start rule, applies attributes, and normalizes the shape into an
// ast.CleanGrammar.
//
// Per spec §4.4 the six steps run in order and in the order listed
// there; per §7 this stage collects every Error it finds and attempts to
// process the whole grammar before aborting, so Analyse's caller sees as
// many problems as one invocation can surface rather than stopping at the
// first.
package middle

import (
	"github.com/berku-oak/pegc/ast"
	"github.com/berku-oak/pegc/attribute"
	"github.com/berku-oak/pegc/attrs"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/ident"
)

// Analyse runs all six semantic-analysis steps over g and returns the
// clean grammar plus whether analysis succeeded. ok is false iff sink
// recorded at least one Error (or worse) during analysis; the returned
// grammar should not be handed to the back-end when ok is false.
func Analyse(g *ast.Grammar, intern *ident.Interner, sink diag.Sink) (*ast.CleanGrammar, bool) {
	byName := detectDuplicates(g, intern, sink)
	resolveReferences(g, byName, intern, sink)
	selectStartRule(g, byName, intern, sink)
	applyAttributes(g, sink)
	checkWellFormed(g, sink)
	detectLeftRecursion(g, intern, sink)
	normalize(g)

	return &ast.CleanGrammar{Grammar: g}, !hadError(sink)
}

// hadError reports whether sink is a diag.Collector carrying at least one
// Error-or-above diagnostic. A sink that isn't a Collector (a host's own
// implementation) is assumed to track this itself; Analyse degrades to
// "always ok" in that case since it has no way to query an opaque Sink.
func hadError(sink diag.Sink) bool {
	if c, ok := sink.(*diag.Collector); ok {
		return c.HasErrors()
	}
	return false
}

// detectDuplicates implements step 1: two rules with the same identifier
// are an Error, reported at the second occurrence. It returns the
// first-occurrence index for every distinct rule name, which step 2 uses
// to resolve references.
func detectDuplicates(g *ast.Grammar, intern *ident.Interner, sink diag.Sink) map[ident.ID]int {
	byName := make(map[ident.ID]int, len(g.Rules))
	for i, r := range g.Rules {
		if _, seen := byName[r.Name]; seen {
			sink.Report(diag.Error, r.Sp, "duplicate rule `%s`", intern.Name(r.Name))
			continue
		}
		byName[r.Name] = i
	}
	return byName
}

// resolveReferences implements step 2: every NonTerminal is rewritten to
// carry the index of the rule it names.
func resolveReferences(g *ast.Grammar, byName map[ident.ID]int, intern *ident.Interner, sink diag.Sink) {
	for _, r := range g.Rules {
		walkMut(r.Body, func(e ast.Expr) {
			nt, ok := e.(*ast.NonTerminal)
			if !ok {
				return
			}
			idx, ok := byName[nt.Name]
			if !ok {
				sink.Report(diag.Error, nt.Sp, "unresolved reference `%s`", intern.Name(nt.Name))
				return
			}
			nt.RuleIndex = idx
		})
	}
}

// selectStartRule implements step 3: the start attribute, if set, names
// the start rule; otherwise index 0.
func selectStartRule(g *ast.Grammar, byName map[ident.ID]int, intern *ident.Interner, sink diag.Sink) {
	name := attribute.Get[string](g.Attrs, sink, attrs.Start)
	if name == "" {
		g.StartIndex = 0
		return
	}
	id, known := intern.Lookup(name)
	if known {
		if idx, ok := byName[id]; ok {
			g.StartIndex = idx
			return
		}
	}
	sink.Report(diag.Error, g.Attrs.SpanOf(attrs.Start), "unresolved start rule `%s`", name)
	g.StartIndex = 0
}

// applyAttributes implements step 4: every declared grammar- and
// rule-scoped attribute is read once through C5, so a Required attribute
// that was never set reports its diagnostic even if the back-end never
// happens to read it.
func applyAttributes(g *ast.Grammar, sink diag.Sink) {
	attribute.Get[bool](g.Attrs, sink, attrs.PrintGenerated)
	attribute.Get[string](g.Attrs, sink, attrs.Start)
	for _, r := range g.Rules {
		attribute.Get[bool](r.Attrs, sink, attrs.InvisibleType)
	}
}

// checkWellFormed implements step 5. Empty repetitions ("()*") cannot
// arise from this front-end's grammar (seq := prefixed+ always demands at
// least one element inside parentheses), so the only well-formedness
// defect left to check here is a character class interval with lo > hi.
func checkWellFormed(g *ast.Grammar, sink diag.Sink) {
	for _, r := range g.Rules {
		walkMut(r.Body, func(e ast.Expr) {
			cc, ok := e.(*ast.CharacterClass)
			if !ok {
				return
			}
			for _, iv := range cc.Intervals {
				if iv.Lo > iv.Hi {
					sink.Report(diag.Error, cc.Sp, "invalid character range %q-%q (lo > hi)", iv.Lo, iv.Hi)
				}
			}
		})
	}
}

// walkMut visits every node in the tree rooted at e, calling visit on
// each. It does not rebuild the tree; mutation happens through the
// pointers visit is handed, the same way resolveReferences mutates
// NonTerminal.RuleIndex in place.
func walkMut(e ast.Expr, visit func(ast.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *ast.Sequence:
		for _, c := range n.Children {
			walkMut(c, visit)
		}
	case *ast.Choice:
		for _, c := range n.Children {
			walkMut(c, visit)
		}
	case *ast.ZeroOrMore:
		walkMut(n.Child, visit)
	case *ast.OneOrMore:
		walkMut(n.Child, visit)
	case *ast.Optional:
		walkMut(n.Child, visit)
	case *ast.NotPredicate:
		walkMut(n.Child, visit)
	case *ast.AndPredicate:
		walkMut(n.Child, visit)
	}
}
