// Package ast is the shared expression AST (C2): the data model that the
// front-end produces, the middle-end validates and normalizes, and the
// back-end lowers to matcher code.
//
// There is one Go type per PEG operator, all satisfying Expr. The raw AST
// coming out of front and the clean AST coming out of middle share these
// same node types; what changes between the two is NonTerminal.RuleIndex
// (unresolved, -1, until middle-end reference resolution runs) and the
// shape invariants middle-end's normalization pass establishes.
package ast

import (
	"github.com/berku-oak/pegc/attribute"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/span"
)

// Expr is the sum type over PEG operators. Every concrete node below
// implements it; dispatch over concrete type (a type switch) is the
// canonical way to inspect one, the same way a tagged union would be
// pattern-matched.
type Expr interface {
	Span() span.Span
	exprNode()
}

// UnresolvedRuleIndex marks a NonTerminal whose reference has not yet
// been resolved by the middle-end.
const UnresolvedRuleIndex = -1

// StrLiteral matches Text exactly.
type StrLiteral struct {
	Text string
	Sp   span.Span
}

// AnySingleChar matches any one code point if input remains.
type AnySingleChar struct {
	Sp span.Span
}

// NonTerminal invokes the rule named Name. RuleIndex is UnresolvedRuleIndex
// until the middle-end's reference-resolution pass fills it in.
type NonTerminal struct {
	Name      ident.ID
	RuleIndex int
	Sp        span.Span
}

// Sequence is ordered conjunction. Children has length >= 2; shorter
// sequences are normalized away at parse time or during middle-end
// normalization.
type Sequence struct {
	Children []Expr
	Sp       span.Span
}

// Choice is ordered disjunction, tried strictly left to right. Children
// has length >= 2.
type Choice struct {
	Children []Expr
	Sp       span.Span
}

// ZeroOrMore matches Child as many times as possible, zero or more.
type ZeroOrMore struct {
	Child Expr
	Sp    span.Span
}

// OneOrMore matches Child as many times as possible, at least once.
type OneOrMore struct {
	Child Expr
	Sp    span.Span
}

// Optional matches Child if possible, never fails.
type Optional struct {
	Child Expr
	Sp    span.Span
}

// NotPredicate succeeds, without consuming input, exactly when Child
// fails.
type NotPredicate struct {
	Child Expr
	Sp    span.Span
}

// AndPredicate succeeds, without consuming input, exactly when Child
// succeeds.
type AndPredicate struct {
	Child Expr
	Sp    span.Span
}

// Interval is one scalar code-point range [Lo, Hi] of a CharacterClass.
type Interval struct {
	Lo, Hi rune
}

// CharacterClass matches one code point drawn from the union of
// Intervals. Intervals has length >= 1; each interval must satisfy
// Lo <= Hi, checked by the middle-end's well-formedness pass.
type CharacterClass struct {
	Intervals []Interval
	Sp        span.Span
}

func (e *StrLiteral) Span() span.Span     { return e.Sp }
func (e *AnySingleChar) Span() span.Span  { return e.Sp }
func (e *NonTerminal) Span() span.Span    { return e.Sp }
func (e *Sequence) Span() span.Span       { return e.Sp }
func (e *Choice) Span() span.Span         { return e.Sp }
func (e *ZeroOrMore) Span() span.Span     { return e.Sp }
func (e *OneOrMore) Span() span.Span      { return e.Sp }
func (e *Optional) Span() span.Span       { return e.Sp }
func (e *NotPredicate) Span() span.Span   { return e.Sp }
func (e *AndPredicate) Span() span.Span   { return e.Sp }
func (e *CharacterClass) Span() span.Span { return e.Sp }

func (*StrLiteral) exprNode()     {}
func (*AnySingleChar) exprNode()  {}
func (*NonTerminal) exprNode()    {}
func (*Sequence) exprNode()       {}
func (*Choice) exprNode()         {}
func (*ZeroOrMore) exprNode()     {}
func (*OneOrMore) exprNode()      {}
func (*Optional) exprNode()       {}
func (*NotPredicate) exprNode()   {}
func (*AndPredicate) exprNode()   {}
func (*CharacterClass) exprNode() {}

// Rule is (name, body, attributes). Names are unique within a Grammar,
// checked by the middle-end's duplicate-rule detection.
type Rule struct {
	Name  ident.ID
	Body  Expr
	Attrs *attribute.Map
	Sp    span.Span
}

// Grammar is the raw AST that the front-end produces: an ordered list of
// rules plus grammar-level attributes. StartIndex is not meaningful until
// the middle-end's start-rule-selection pass runs.
type Grammar struct {
	Name       ident.ID
	Rules      []*Rule
	StartIndex int
	Attrs      *attribute.Map
}

// CleanGrammar wraps a Grammar that has passed middle-end semantic
// analysis: every NonTerminal.RuleIndex is resolved, StartIndex is final,
// attributes have been applied, and Sequence/Choice nesting has been
// normalized. Back-end code is written against CleanGrammar, not Grammar,
// so it can never be handed unvalidated input.
type CleanGrammar struct {
	*Grammar
}
