// Package front is the grammar front-end (C3): it consumes a token.Stream
// and produces a raw ast.Grammar.
//
// The surface syntax is spec §4.3's EBNF:
//
//	grammar     := rule+
//	rule        := ident '=' expr ';'
//	expr        := choice
//	choice      := seq ('/' seq)*
//	seq         := prefixed+
//	prefixed    := ('!' | '&')? suffixed
//	suffixed    := atom ('*' | '+' | '?')?
//	atom        := ident | stringlit | '.' | '[' class ']' | '(' expr ')'
//	class       := class_item+
//	class_item  := char ('-' char)?
//
// Attribute directives (spec §4.5's print_generated/start/invisible_type)
// have no surface syntax of their own in spec.md; this front-end adopts
// one Rust-attribute-flavored line form — "#name" or "#name(arg)" — since
// the historical source this spec traces to used Rust's own #[...]
// item-attribute syntax for the same purpose. A directive naming a
// grammar-scoped attribute (print_generated, start) applies to the
// grammar regardless of where it appears; a directive naming a
// rule-scoped attribute (invisible_type) applies to the rule immediately
// following it. This choice is recorded as an Open Question resolution in
// DESIGN.md.
//
// Failure mode follows §4.3: the first syntax error records a Fatal
// diagnostic at the offending span and parsing stops immediately.
package front

import (
	"github.com/berku-oak/pegc/ast"
	"github.com/berku-oak/pegc/attribute"
	"github.com/berku-oak/pegc/attrs"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/span"
	"github.com/berku-oak/pegc/token"
)

// Parser drives one grammar parse over a token.Stream.
type Parser struct {
	ts     token.Stream
	sink   diag.Sink
	intern *ident.Interner
	failed bool
}

// NewParser returns a Parser reading from ts, reporting diagnostics to
// sink and interning names through intern.
func NewParser(ts token.Stream, sink diag.Sink, intern *ident.Interner) *Parser {
	return &Parser{ts: ts, sink: sink, intern: intern}
}

type pendingAttr struct {
	name string
	arg  string
	sp   span.Span
}

// ParseGrammar parses a complete grammar named name, returning the raw
// AST and whether parsing succeeded. On failure the returned Grammar may
// be partial; the caller must not proceed to semantic analysis.
func (p *Parser) ParseGrammar(name string) (*ast.Grammar, bool) {
	g := &ast.Grammar{
		Name:       p.intern.Intern(name),
		StartIndex: 0,
		Attrs:      attribute.NewMap(),
	}
	attrs.DeclareGrammar(g.Attrs)

	var pending []pendingAttr
	for {
		tok := p.ts.Peek()
		if tok.Kind == token.EOF {
			if tok.Text != "" {
				p.fail(tok.Span, "unexpected character %q", tok.Text)
				return g, false
			}
			break
		}
		if tok.Kind == token.Hash {
			dname, arg, sp, ok := p.parseAttrDirective()
			if !ok {
				return g, false
			}
			switch dname {
			case attrs.PrintGenerated, attrs.Start:
				p.applyGrammarAttr(g, dname, arg, sp)
			default:
				pending = append(pending, pendingAttr{name: dname, arg: arg, sp: sp})
			}
			continue
		}
		rule, ok := p.parseRule()
		if !ok {
			return g, false
		}
		attrs.DeclareRule(rule.Attrs)
		for _, pa := range pending {
			p.applyRuleAttr(rule, pa)
		}
		pending = nil
		g.Rules = append(g.Rules, rule)
	}
	if len(g.Rules) == 0 {
		p.fail(span.Zero, "grammar has no rules")
		return g, false
	}
	return g, !p.failed
}

func (p *Parser) parseAttrDirective() (name, arg string, sp span.Span, ok bool) {
	hash := p.ts.Next()
	nameTok, ok := p.ts.Expect(token.Ident)
	if !ok {
		p.fail(nameTok.Span, "expected an attribute name after '#', got %s", nameTok.Kind)
		return "", "", span.Span{}, false
	}
	sp = span.Join(hash.Span, nameTok.Span)
	if p.ts.Peek().Kind != token.LParen {
		return nameTok.Text, "", sp, true
	}
	p.ts.Next()
	argTok, ok := p.ts.Expect(token.Ident)
	if !ok {
		p.fail(argTok.Span, "expected an identifier argument, got %s", argTok.Kind)
		return "", "", sp, false
	}
	closeTok, ok := p.ts.Expect(token.RParen)
	if !ok {
		p.fail(closeTok.Span, "expected ')', got %s", closeTok.Kind)
		return "", "", sp, false
	}
	return nameTok.Text, argTok.Text, span.Join(sp, closeTok.Span), true
}

func (p *Parser) applyGrammarAttr(g *ast.Grammar, name, arg string, sp span.Span) {
	switch name {
	case attrs.PrintGenerated:
		g.Attrs.Set(p.sink, name, true, sp)
	case attrs.Start:
		g.Attrs.Set(p.sink, name, arg, sp)
	}
}

func (p *Parser) applyRuleAttr(rule *ast.Rule, pa pendingAttr) {
	switch pa.name {
	case attrs.InvisibleType:
		rule.Attrs.Set(p.sink, pa.name, true, pa.sp)
	default:
		p.sink.Report(diag.Warning, pa.sp, "unknown rule attribute %q", pa.name)
	}
}

func (p *Parser) parseRule() (*ast.Rule, bool) {
	nameTok, ok := p.ts.Expect(token.Ident)
	if !ok {
		p.fail(nameTok.Span, "expected a rule name, got %s", nameTok.Kind)
		return nil, false
	}
	if _, ok := p.ts.Expect(token.Eq); !ok {
		tok := p.ts.Peek()
		p.fail(tok.Span, "expected '=' after rule name, got %s", tok.Kind)
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	semiTok, ok := p.ts.Expect(token.Semi)
	if !ok {
		p.fail(semiTok.Span, "expected ';' after rule body, got %s", semiTok.Kind)
		return nil, false
	}
	return &ast.Rule{
		Name:  p.intern.Intern(nameTok.Text),
		Body:  body,
		Attrs: attribute.NewMap(),
		Sp:    span.Join(nameTok.Span, semiTok.Span),
	}, true
}

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseChoice()
}

func (p *Parser) parseChoice() (ast.Expr, bool) {
	first, ok := p.parseSeq()
	if !ok {
		return nil, false
	}
	children := []ast.Expr{first}
	for p.ts.Peek().Kind == token.Slash {
		p.ts.Next()
		next, ok := p.parseSeq()
		if !ok {
			return nil, false
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], true
	}
	return &ast.Choice{Children: children, Sp: span.Join(children[0].Span(), children[len(children)-1].Span())}, true
}

func (p *Parser) parseSeq() (ast.Expr, bool) {
	first, ok := p.parsePrefixed()
	if !ok {
		return nil, false
	}
	children := []ast.Expr{first}
	for p.startsPrefixed(p.ts.Peek().Kind) {
		next, ok := p.parsePrefixed()
		if !ok {
			return nil, false
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], true
	}
	return &ast.Sequence{Children: children, Sp: span.Join(children[0].Span(), children[len(children)-1].Span())}, true
}

func (p *Parser) startsPrefixed(k token.Kind) bool {
	switch k {
	case token.Bang, token.Amp, token.Ident, token.StringLit, token.Dot, token.LBracket, token.LParen:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrefixed() (ast.Expr, bool) {
	tok := p.ts.Peek()
	switch tok.Kind {
	case token.Bang:
		p.ts.Next()
		child, ok := p.parseSuffixed()
		if !ok {
			return nil, false
		}
		return &ast.NotPredicate{Child: child, Sp: span.Join(tok.Span, child.Span())}, true
	case token.Amp:
		p.ts.Next()
		child, ok := p.parseSuffixed()
		if !ok {
			return nil, false
		}
		return &ast.AndPredicate{Child: child, Sp: span.Join(tok.Span, child.Span())}, true
	default:
		return p.parseSuffixed()
	}
}

func (p *Parser) parseSuffixed() (ast.Expr, bool) {
	a, ok := p.parseAtom()
	if !ok {
		return nil, false
	}
	tok := p.ts.Peek()
	switch tok.Kind {
	case token.Star:
		p.ts.Next()
		return &ast.ZeroOrMore{Child: a, Sp: span.Join(a.Span(), tok.Span)}, true
	case token.Plus:
		p.ts.Next()
		return &ast.OneOrMore{Child: a, Sp: span.Join(a.Span(), tok.Span)}, true
	case token.Question:
		p.ts.Next()
		return &ast.Optional{Child: a, Sp: span.Join(a.Span(), tok.Span)}, true
	default:
		return a, true
	}
}

func (p *Parser) parseAtom() (ast.Expr, bool) {
	tok := p.ts.Peek()
	switch tok.Kind {
	case token.Ident:
		p.ts.Next()
		return &ast.NonTerminal{Name: p.intern.Intern(tok.Text), RuleIndex: ast.UnresolvedRuleIndex, Sp: tok.Span}, true
	case token.StringLit:
		p.ts.Next()
		return &ast.StrLiteral{Text: tok.Text, Sp: tok.Span}, true
	case token.Dot:
		p.ts.Next()
		return &ast.AnySingleChar{Sp: tok.Span}, true
	case token.LBracket:
		return p.parseClass()
	case token.LParen:
		p.ts.Next()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		closeTok, ok := p.ts.Expect(token.RParen)
		if !ok {
			p.fail(closeTok.Span, "expected ')', got %s", closeTok.Kind)
			return nil, false
		}
		return inner, true
	default:
		p.fail(tok.Span, "expected an expression, got %s", tok.Kind)
		return nil, false
	}
}

func (p *Parser) parseClass() (ast.Expr, bool) {
	open := p.ts.Next()
	var intervals []ast.Interval
	for p.ts.Peek().Kind != token.RBracket && p.ts.Peek().Kind != token.EOF {
		loTok, ok := p.ts.Expect(token.CharLit)
		if !ok {
			p.fail(loTok.Span, "expected a character in class, got %s", loTok.Kind)
			return nil, false
		}
		lo := loTok.Rune
		hi := lo
		if p.ts.Peek().Kind == token.Dash {
			p.ts.Next()
			hiTok, ok := p.ts.Expect(token.CharLit)
			if !ok {
				p.fail(hiTok.Span, "expected a character after '-', got %s", hiTok.Kind)
				return nil, false
			}
			hi = hiTok.Rune
		}
		intervals = append(intervals, ast.Interval{Lo: lo, Hi: hi})
	}
	closeTok, ok := p.ts.Expect(token.RBracket)
	if !ok {
		p.fail(closeTok.Span, "expected ']', got %s", closeTok.Kind)
		return nil, false
	}
	if len(intervals) == 0 {
		p.fail(open.Span, "empty character class")
		return nil, false
	}
	return &ast.CharacterClass{Intervals: intervals, Sp: span.Join(open.Span, closeTok.Span)}, true
}

func (p *Parser) fail(sp span.Span, format string, args ...interface{}) {
	if p.failed {
		return
	}
	p.failed = true
	p.sink.Report(diag.Fatal, sp, format, args...)
}
