package front_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/berku-oak/pegc/ast"
	"github.com/berku-oak/pegc/attribute"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/front"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/token"
)

func parse(t *testing.T, src string) (*ast.Grammar, *diag.Collector, *ident.Interner, bool) {
	t.Helper()
	intern := ident.NewInterner()
	sink := diag.NewCollector(zerolog.Nop())
	lx := token.NewLexer(src)
	p := front.NewParser(lx, sink, intern)
	g, ok := p.ParseGrammar("G")
	return g, sink, intern, ok
}

func TestParseSimpleRule(t *testing.T) {
	g, sink, intern, ok := parse(t, `r = "hello";`)
	require.True(t, ok)
	require.Empty(t, sink.Diagnostics)
	require.Len(t, g.Rules, 1)
	require.Equal(t, "r", intern.Name(g.Rules[0].Name))

	lit, isLit := g.Rules[0].Body.(*ast.StrLiteral)
	require.True(t, isLit)
	require.Equal(t, "hello", lit.Text)
}

func TestParsePrecedenceChoiceOverSequence(t *testing.T) {
	g, _, _, ok := parse(t, `r = "a" "b" / "c";`)
	require.True(t, ok)

	choice, isChoice := g.Rules[0].Body.(*ast.Choice)
	require.True(t, isChoice)
	require.Len(t, choice.Children, 2)

	seq, isSeq := choice.Children[0].(*ast.Sequence)
	require.True(t, isSeq)
	require.Len(t, seq.Children, 2)

	lit, isLit := choice.Children[1].(*ast.StrLiteral)
	require.True(t, isLit)
	require.Equal(t, "c", lit.Text)
}

func TestParseCharacterClassRepetition(t *testing.T) {
	g, _, _, ok := parse(t, `r = [a-z0-9]+;`)
	require.True(t, ok)

	plus, isPlus := g.Rules[0].Body.(*ast.OneOrMore)
	require.True(t, isPlus)

	class, isClass := plus.Child.(*ast.CharacterClass)
	require.True(t, isClass)
	require.Equal(t, []ast.Interval{{Lo: 'a', Hi: 'z'}, {Lo: '0', Hi: '9'}}, class.Intervals)
}

func TestParsePredicates(t *testing.T) {
	g, _, _, ok := parse(t, `r = !"a" . / &"b" .;`)
	require.True(t, ok)

	choice := g.Rules[0].Body.(*ast.Choice)
	seq0 := choice.Children[0].(*ast.Sequence)
	_, isNot := seq0.Children[0].(*ast.NotPredicate)
	require.True(t, isNot)

	seq1 := choice.Children[1].(*ast.Sequence)
	_, isAnd := seq1.Children[0].(*ast.AndPredicate)
	require.True(t, isAnd)
}

func TestParseGrouping(t *testing.T) {
	g, _, _, ok := parse(t, `r = ("a" "b") "c";`)
	require.True(t, ok)

	seq := g.Rules[0].Body.(*ast.Sequence)
	require.Len(t, seq.Children, 2)
	_, isNestedSeq := seq.Children[0].(*ast.Sequence)
	require.True(t, isNestedSeq, "parenthesized sequence nests until middle-end normalization folds it")
}

func TestParseGrammarAttribute(t *testing.T) {
	g, sink, _, ok := parse(t, "#start(Bar)\nFoo = \"a\";\nBar = \"b\";\n")
	require.True(t, ok)
	require.Empty(t, sink.Diagnostics)
	require.Equal(t, "Bar", attribute.Get[string](g.Attrs, sink, "start"))
}

func TestParseRuleAttribute(t *testing.T) {
	g, _, _, ok := parse(t, "#invisible_type\nWs = \" \"*;\n")
	require.True(t, ok)
	require.True(t, g.Rules[0].Attrs.Has("invisible_type"))
}

func TestParseMissingSemicolonFails(t *testing.T) {
	_, sink, _, ok := parse(t, `r = "a"`)
	require.False(t, ok)
	require.NotEmpty(t, sink.Diagnostics)
	require.Equal(t, diag.Fatal, sink.Diagnostics[0].Severity)
}

func TestParseUnresolvedParenFails(t *testing.T) {
	_, sink, _, ok := parse(t, `r = ("a";`)
	require.False(t, ok)
	require.Equal(t, diag.Fatal, sink.Diagnostics[0].Severity)
}

func TestParseEmptyGrammarFails(t *testing.T) {
	_, sink, _, ok := parse(t, ``)
	require.False(t, ok)
	require.NotEmpty(t, sink.Diagnostics)
}
