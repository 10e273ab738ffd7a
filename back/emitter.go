// Package back is the back-end code generator (C6): it lowers a clean
// grammar's rule bodies to Go matcher functions, composes a Parser
// skeleton and entry point, and emits the AST-type declarations C7
// infers.
//
// Generated Go source is assembled with text/template for the fixed
// file skeleton (header, package clause, imports) and strings.Builder
// and fmt for every declaration codegen.go builds piece by piece,
// including the Parser type and its Parse method; no third-party Go-source-builder library
// appears anywhere in the retrieval corpus, so this is the one
// stdlib-only concern in the system (justified in DESIGN.md).
package back

import (
	"strings"
	"text/template"
)

// Emitter accumulates generated declarations in emission order and
// renders the final source file.
type Emitter struct {
	pkg      string
	imports  []string
	decls    []string
}

// NewEmitter returns an Emitter for a generated file in package pkg. Every
// generated file calls into rt for its primitive matchers and final
// result, so rt is always imported; nothing generated needs fmt or any
// other package, since synthetic errors (e.g. the not-predicate's) are
// sentinels vended by rt itself.
func NewEmitter(pkg string) *Emitter {
	return &Emitter{pkg: pkg, imports: []string{"github.com/berku-oak/pegc/rt"}}
}

// EmitDecl appends one already-rendered top-level declaration (a
// function or type) to the file, in order.
func (e *Emitter) EmitDecl(src string) {
	e.decls = append(e.decls, src)
}

var fileTmpl = template.Must(template.New("file").Parse(`// Code generated by pegc. DO NOT EDIT.

package {{.Pkg}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

{{range .Decls}}
{{.}}
{{end}}`))

// Render produces the complete generated Go source file.
func (e *Emitter) Render() (string, error) {
	var b strings.Builder
	err := fileTmpl.Execute(&b, struct {
		Pkg     string
		Imports []string
		Decls   []string
	}{Pkg: e.pkg, Imports: e.imports, Decls: e.decls})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
