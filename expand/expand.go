// Package expand implements the single entry point spec §6 describes:
// expand(context, span, tokens) -> result. It threads one grammar source
// through the front-end, middle-end and back-end in order, logging one
// structured event per stage and aborting with a neutral placeholder on
// the first fatal diagnostic, exactly as §6 and §7 require.
package expand

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/berku-oak/pegc/back"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/front"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/middle"
	"github.com/berku-oak/pegc/span"
	"github.com/berku-oak/pegc/token"
)

// Result is the outcome of one Expand invocation: the generated Go
// source on success, or OK == false if any fatal diagnostic aborted the
// pipeline (the diagnostics themselves live in the caller's sink).
type Result struct {
	Source string
	OK     bool
}

// Options configures one Expand invocation.
type Options struct {
	GrammarName string
	PackageName string
	Logger      zerolog.Logger
}

// Expand runs the full pipeline over tokens, reporting diagnostics to
// sink and interning names through intern.
func Expand(tokens token.Stream, sink diag.Sink, intern *ident.Interner, opts Options) Result {
	opts.Logger.Info().Str("stage", "front").Str("grammar", opts.GrammarName).Msg("parsing grammar")
	p := front.NewParser(tokens, sink, intern)
	raw, ok := p.ParseGrammar(opts.GrammarName)
	if !ok {
		return Result{OK: false}
	}

	opts.Logger.Info().Str("stage", "middle").Int("rules", len(raw.Rules)).Msg("analysing grammar")
	clean, ok := middle.Analyse(raw, intern, sink)
	if !ok {
		return Result{OK: false}
	}

	opts.Logger.Info().Str("stage", "back").Msg("generating parser")
	gen := back.NewGenerator(clean, intern, sink, opts.PackageName)
	src, err := gen.Generate()
	if err != nil {
		wrapped := errors.Wrap(err, "back")
		sink.Report(diag.Error, span.Zero, "code generation failed: %v", wrapped)
		return Result{OK: false}
	}

	return Result{Source: src, OK: true}
}
