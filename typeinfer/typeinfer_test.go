package typeinfer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/berku-oak/pegc/ast"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/front"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/middle"
	"github.com/berku-oak/pegc/token"
	"github.com/berku-oak/pegc/typeinfer"
)

func compile(t *testing.T, src string) (*ast.CleanGrammar, *ident.Interner, *diag.Collector) {
	t.Helper()
	intern := ident.NewInterner()
	sink := diag.NewCollector(zerolog.Nop())
	lx := token.NewLexer(src)
	raw, ok := front.NewParser(lx, sink, intern).ParseGrammar("G")
	require.True(t, ok)
	clean, ok := middle.Analyse(raw, intern, sink)
	require.True(t, ok)
	return clean, intern, sink
}

func TestLiteralHasNoCapture(t *testing.T) {
	g, intern, sink := compile(t, `r = "a";`)
	types := typeinfer.ResolveGrammar(g, intern, sink)
	_, ok := types[0]
	require.False(t, ok)
}

func TestCharacterClassCapturesCharacter(t *testing.T) {
	g, intern, sink := compile(t, `r = [a-z];`)
	types := typeinfer.ResolveGrammar(g, intern, sink)
	ty, ok := types[0]
	require.True(t, ok)
	require.Equal(t, typeinfer.Character, ty.Kind)
}

func TestZeroOrMoreCapturesSequence(t *testing.T) {
	g, intern, sink := compile(t, `r = [a-z]*;`)
	types := typeinfer.ResolveGrammar(g, intern, sink)
	ty := types[0]
	require.Equal(t, typeinfer.Sequence, ty.Kind)
	require.Equal(t, typeinfer.Character, ty.Elem.Kind)
}

func TestSequenceOfLiteralAndClassCollapsesNone(t *testing.T) {
	// The literal contributes None; only the class contributes a type,
	// so the Sequence's inferred type collapses to that single type
	// rather than a one-element Tuple.
	g, intern, sink := compile(t, `r = "a" [0-9];`)
	types := typeinfer.ResolveGrammar(g, intern, sink)
	ty := types[0]
	require.Equal(t, typeinfer.Character, ty.Kind)
}

func TestChoiceProducesSumOfBranches(t *testing.T) {
	g, intern, sink := compile(t, `r = [a-z] / [0-9] [0-9];`)
	types := typeinfer.ResolveGrammar(g, intern, sink)
	ty := types[0]
	require.Equal(t, typeinfer.Sum, ty.Kind)
	require.Len(t, ty.Branches, 2)
	require.Len(t, ty.Branches[0], 1)
	require.Len(t, ty.Branches[1], 2)
}

func TestPlaceholderResolvesToReferencedType(t *testing.T) {
	g, intern, sink := compile(t, `r = digit; digit = [0-9];`)
	types := typeinfer.ResolveGrammar(g, intern, sink)
	ty, ok := types[0]
	require.True(t, ok)
	require.Equal(t, typeinfer.Character, ty.Kind)
}

func TestInvisibleTypeRuleContributesNone(t *testing.T) {
	g, intern, sink := compile(t, "r = digit;\n#invisible_type\ndigit = [0-9];\n")
	types := typeinfer.ResolveGrammar(g, intern, sink)
	_, ok := types[0]
	require.False(t, ok, "a rule referencing an invisible_type rule captures nothing")
}

func TestNestedRepetitionOfChoiceProducesFullTypeShape(t *testing.T) {
	// r captures a sequence of sum-branches, one branch a bare character,
	// the other a two-character tuple; compared wholesale against the
	// expected tree rather than field by field.
	g, intern, sink := compile(t, `r = ([a-z] / [0-9] [0-9])*;`)
	types := typeinfer.ResolveGrammar(g, intern, sink)
	got := types[0]

	want := &typeinfer.Type{
		Kind: typeinfer.Sequence,
		Elem: &typeinfer.Type{
			Kind: typeinfer.Sum,
			Branches: [][]*typeinfer.Type{
				{{Kind: typeinfer.Character}},
				{{Kind: typeinfer.Character}, {Kind: typeinfer.Character}},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inferred type mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaceholderCycleReportsError(t *testing.T) {
	// "x" gates the reference to b so this is not left-recursive (b is
	// not in a's first position), but a and b still form a pure
	// placeholder cycle with no concrete type anywhere in it.
	g, intern, sink := compile(t, `a = "x" b; b = a;`)
	_ = typeinfer.ResolveGrammar(g, intern, sink)
	require.NotEmpty(t, sink.Diagnostics)
	require.Contains(t, sink.Diagnostics[0].Message, "cyclic capture type")
}
