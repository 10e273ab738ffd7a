package pegc

import (
	"github.com/rs/zerolog"

	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/expand"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/token"
)

// CompileOptions configures one Compile invocation.
type CompileOptions struct {
	// GrammarName is recorded as the compiled grammar's name; it has no
	// effect on generated code beyond logging and diagnostics.
	GrammarName string
	// PackageName is the package clause of the generated Go source.
	PackageName string
	// Logger receives one structured event per pipeline stage. The zero
	// value discards everything.
	Logger zerolog.Logger
}

// CompileResult is the outcome of one Compile invocation.
type CompileResult struct {
	// Source is the generated Go source. Only meaningful when OK.
	Source string
	// Diagnostics holds every diagnostic raised during compilation, in
	// the order it was reported.
	Diagnostics []diag.Diagnostic
	// OK is false iff a fatal or error diagnostic aborted compilation
	// before code generation.
	OK bool
}

// Compile runs the full front-end/middle-end/back-end pipeline over
// source, using the default token lexer, diagnostic collector and
// identifier interner for three of the four host collaborators spec §6
// describes; the fourth, the code emitter, is created by the back-end.
// A host compiler that wants to supply its own collaborators should call
// package expand directly instead.
func Compile(source string, opts CompileOptions) CompileResult {
	lexer := token.NewLexer(source)
	intern := ident.NewInterner()
	collector := diag.NewCollector(opts.Logger)

	res := expand.Expand(lexer, collector, intern, expand.Options{
		GrammarName: opts.GrammarName,
		PackageName: opts.PackageName,
		Logger:      opts.Logger,
	})

	return CompileResult{Source: res.Source, Diagnostics: collector.Diagnostics, OK: res.OK}
}
