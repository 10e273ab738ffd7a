package expand_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/expand"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/token"
)

func run(t *testing.T, src string) (expand.Result, *diag.Collector) {
	t.Helper()
	intern := ident.NewInterner()
	sink := diag.NewCollector(zerolog.Nop())
	lx := token.NewLexer(src)
	res := expand.Expand(lx, sink, intern, expand.Options{GrammarName: "G", PackageName: "generated", Logger: zerolog.Nop()})
	return res, sink
}

// S1/S2: a bare literal rule generates a Parser whose Parse method
// delegates to the literal matcher.
func TestScenarioLiteralRule(t *testing.T) {
	res, sink := run(t, `r = "hello";`)
	require.True(t, res.OK)
	require.Empty(t, sink.Diagnostics)
	require.Contains(t, res.Source, `rt.MatchLiteral(input, pos, "hello", 5)`)
	require.Contains(t, res.Source, "func (p *Parser) Parse(input string) (*string, error)")
}

// S3: ordered choice compiles to a helper that tries each alternative in
// declaration order and stops at the first success.
func TestScenarioOrderedChoice(t *testing.T) {
	res, sink := run(t, `r = "a" / "b";`)
	require.True(t, res.OK)
	require.Empty(t, sink.Diagnostics)
	require.Contains(t, res.Source, `rt.MatchLiteral(input, pos, "a", 1)`)
	require.Contains(t, res.Source, `rt.MatchLiteral(input, pos, "b", 1)`)
}

// S4: zero-or-more never fails and loops the child until it stops
// advancing.
func TestScenarioZeroOrMore(t *testing.T) {
	res, sink := run(t, `r = "a"*;`)
	require.True(t, res.OK)
	require.Empty(t, sink.Diagnostics)
	require.Contains(t, res.Source, "func (p *Parser) star_r_1(input string, pos int) (int, error)")
	require.Contains(t, res.Source, "return cur, nil")
}

// S5: a negative lookahead followed by any-char consumes one character only
// when the lookahead does not match, and never advances on its own.
func TestScenarioNegativeLookahead(t *testing.T) {
	res, sink := run(t, `r = !"a" .;`)
	require.True(t, res.OK)
	require.Empty(t, sink.Diagnostics)
	require.Contains(t, res.Source, "rt.ErrLookaheadMatched")
	require.Contains(t, res.Source, "rt.AnySingleChar(input,")
	require.NotContains(t, res.Source, `"fmt"`)
}

// S6: a character class under one-or-more requires at least one match
// before looping.
func TestScenarioOneOrMoreCharacterClass(t *testing.T) {
	res, sink := run(t, `r = [a-z0-9]+;`)
	require.True(t, res.OK)
	require.Empty(t, sink.Diagnostics)
	require.Contains(t, res.Source, "first, err :=")
	require.Contains(t, res.Source, "rt.MatchClass(input, pos, []rt.Interval{")
}

// S7: a duplicate rule name aborts the pipeline in the middle-end with a
// semantic error naming the rule, and no source is generated.
func TestScenarioDuplicateRuleAborts(t *testing.T) {
	res, sink := run(t, `r = s; s = "x"; s = "y";`)
	require.False(t, res.OK)
	require.Empty(t, res.Source)
	require.NotEmpty(t, sink.Diagnostics)
	require.Contains(t, sink.Diagnostics[0].Message, "duplicate rule")
	require.Contains(t, sink.Diagnostics[0].Message, "s")
}

// S8: a reference to an undeclared rule aborts the pipeline in the
// middle-end with a semantic error naming the missing rule.
func TestScenarioUnresolvedReferenceAborts(t *testing.T) {
	res, sink := run(t, `r = q;`)
	require.False(t, res.OK)
	require.Empty(t, res.Source)
	require.NotEmpty(t, sink.Diagnostics)
	require.Contains(t, sink.Diagnostics[0].Message, "unresolved reference")
	require.Contains(t, sink.Diagnostics[0].Message, "q")
}

// A syntax error in the front-end aborts before the middle-end ever runs,
// and is reported at Fatal severity.
func TestSyntaxErrorAbortsBeforeMiddleEnd(t *testing.T) {
	res, sink := run(t, `r = "a"`)
	require.False(t, res.OK)
	require.Empty(t, res.Source)
	require.NotEmpty(t, sink.Diagnostics)
	require.Equal(t, diag.Fatal, sink.Diagnostics[0].Severity)
}
