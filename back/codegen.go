package back

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/berku-oak/pegc/ast"
	"github.com/berku-oak/pegc/attribute"
	"github.com/berku-oak/pegc/attrs"
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/ident"
	"github.com/berku-oak/pegc/typeinfer"
)

// Generator lowers one clean grammar to Go source, following the
// compositional contracts in spec §4.6.
type Generator struct {
	g       *ast.CleanGrammar
	intern  *ident.Interner
	sink    diag.Sink
	em      *Emitter
	uid     int
	curRule string // lowercase name of the top-level rule currently being lowered
}

// NewGenerator returns a Generator for grammar g, emitting into a file in
// package pkg.
func NewGenerator(g *ast.CleanGrammar, intern *ident.Interner, sink diag.Sink, pkg string) *Generator {
	return &Generator{g: g, intern: intern, sink: sink, em: NewEmitter(pkg)}
}

// Generate lowers every rule, emits the Parser type and entry point, and
// the ast namespace of inferred capture types, then renders the file.
func (gn *Generator) Generate() (string, error) {
	gn.em.EmitDecl("type Parser struct{}\n\nfunc NewParser() *Parser { return &Parser{} }")

	for i, r := range gn.g.Rules {
		gn.curRule = strings.ToLower(gn.intern.Name(r.Name))
		call := gn.compileChild(r.Body)
		fn := gn.matchFuncName(i)
		gn.em.EmitDecl(fmt.Sprintf(
			"func (p *Parser) %s(input string, pos int) (int, error) {\n\treturn %s\n}",
			fn, call.render("pos"),
		))
	}

	startFn := gn.matchFuncName(gn.g.StartIndex)
	gn.em.EmitDecl(fmt.Sprintf(`func (p *Parser) Parse(input string) (*string, error) {
	pos, err := p.%s(input, 0)
	return rt.MakeResult(input, pos, err)
}`, startFn))

	if attribute.Get[bool](gn.g.Attrs, gn.sink, attrs.PrintGenerated) {
		gn.dumpGenerated()
	}

	gn.emitAstTypes()

	return gn.em.Render()
}

// dumpGenerated renders the file so far and reports it as a Note, per
// the print_generated attribute (spec §4.5) and the original source's
// handler.note(pprust::item_to_string(...)) dump.
func (gn *Generator) dumpGenerated() {
	src, err := gn.em.Render()
	if err != nil {
		return
	}
	gn.sink.Report(diag.Note, gn.g.Attrs.SpanOf(attrs.PrintGenerated), "generated code:\n%s", src)
}

func (gn *Generator) matchFuncName(ruleIndex int) string {
	name := gn.intern.Name(gn.g.Rules[ruleIndex].Name)
	return "match" + exportCase(name)
}

func exportCase(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// gensym produces the generated helper-function name
// "<op>_<rule-lowercase>_<uid>" required by spec §4.6, with a single
// monotonic counter shared across the whole compile.
func (gn *Generator) gensym(op string) string {
	gn.uid++
	return fmt.Sprintf("%s_%s_%d", op, gn.curRule, gn.uid)
}

// call is a compiled child expression: render yields the Go expression
// text evaluating to (int, error) for the given position variable. It
// exists so a child is compiled exactly once (generating at most one
// helper function) even when its parent needs to invoke it more than
// once, as OneOrMore and ZeroOrMore do.
type call struct {
	render func(posVar string) string
}

// compileChild returns a reusable call for e: the three leaf operators
// (StrLiteral, AnySingleChar, NonTerminal) render directly into a call
// expression without a wrapper function, since spec §4.6 only requires a
// fresh helper function per composite operator; anything else is
// compiled once via compileComposite.
func (gn *Generator) compileChild(e ast.Expr) call {
	switch n := e.(type) {
	case *ast.StrLiteral:
		lit := strconv.Quote(n.Text)
		nbytes := len(n.Text)
		return call{render: func(posVar string) string {
			return fmt.Sprintf("rt.MatchLiteral(input, %s, %s, %d)", posVar, lit, nbytes)
		}}
	case *ast.AnySingleChar:
		return call{render: func(posVar string) string {
			return fmt.Sprintf("rt.AnySingleChar(input, %s)", posVar)
		}}
	case *ast.NonTerminal:
		fn := gn.matchFuncName(n.RuleIndex)
		return call{render: func(posVar string) string {
			return fmt.Sprintf("p.%s(input, %s)", fn, posVar)
		}}
	default:
		name := gn.compileComposite(e)
		return call{render: func(posVar string) string {
			return fmt.Sprintf("p.%s(input, %s)", name, posVar)
		}}
	}
}

// compileComposite emits a fresh helper function implementing e's
// compositional contract and returns its name.
func (gn *Generator) compileComposite(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Sequence:
		return gn.compileSequence(n)
	case *ast.Choice:
		return gn.compileChoice(n)
	case *ast.ZeroOrMore:
		return gn.compileRepeat("star", n.Child, false)
	case *ast.OneOrMore:
		return gn.compileRepeat("plus", n.Child, true)
	case *ast.Optional:
		return gn.compileOptional(n.Child)
	case *ast.NotPredicate:
		return gn.compileNot(n.Child)
	case *ast.AndPredicate:
		return gn.compileAnd(n.Child)
	case *ast.CharacterClass:
		return gn.compileClass(n)
	default:
		// Unreachable for a clean grammar; the back-end assumes
		// well-formed input and treats any other shape as a compiler bug.
		panic(fmt.Sprintf("back: unexpected expression node %T", e))
	}
}

func (gn *Generator) compileSequence(n *ast.Sequence) string {
	name := gn.gensym("seq")
	children := make([]call, len(n.Children))
	for i, c := range n.Children {
		children[i] = gn.compileChild(c)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "func (p *Parser) %s(input string, pos int) (int, error) {\n\tstart := pos\n\tcur := pos\n", name)
	for i, c := range children {
		fmt.Fprintf(&b, "\tnext%d, err := %s\n\tif err != nil {\n\t\treturn start, err\n\t}\n\tcur = next%d\n", i, c.render("cur"), i)
	}
	b.WriteString("\treturn cur, nil\n}")
	gn.em.EmitDecl(b.String())
	return name
}

func (gn *Generator) compileChoice(n *ast.Choice) string {
	name := gn.gensym("choice")
	children := make([]call, len(n.Children))
	for i, c := range n.Children {
		children[i] = gn.compileChild(c)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "func (p *Parser) %s(input string, pos int) (int, error) {\n\tvar lastErr error\n", name)
	for _, c := range children {
		fmt.Fprintf(&b, "\tif next, err := %s; err == nil {\n\t\treturn next, nil\n\t} else {\n\t\tlastErr = err\n\t}\n", c.render("pos"))
	}
	b.WriteString("\treturn pos, lastErr\n}")
	gn.em.EmitDecl(b.String())
	return name
}

// compileRepeat implements both ZeroOrMore (atLeastOne == false) and
// OneOrMore (atLeastOne == true): iterate while the child keeps matching
// and keeps advancing pos, stopping without error the moment an
// iteration fails or matches zero-width.
func (gn *Generator) compileRepeat(op string, child ast.Expr, atLeastOne bool) string {
	name := gn.gensym(op)
	c := gn.compileChild(child)
	var b strings.Builder
	fmt.Fprintf(&b, "func (p *Parser) %s(input string, pos int) (int, error) {\n\tcur := pos\n", name)
	if atLeastOne {
		fmt.Fprintf(&b, "\tfirst, err := %s\n\tif err != nil {\n\t\treturn pos, err\n\t}\n\tcur = first\n", c.render("cur"))
	}
	fmt.Fprintf(&b, "\tfor {\n\t\tnext, err := %s\n\t\tif err != nil || next == cur {\n\t\t\tbreak\n\t\t}\n\t\tcur = next\n\t}\n\treturn cur, nil\n}", c.render("cur"))
	gn.em.EmitDecl(b.String())
	return name
}

func (gn *Generator) compileOptional(child ast.Expr) string {
	name := gn.gensym("opt")
	c := gn.compileChild(child)
	body := fmt.Sprintf("func (p *Parser) %s(input string, pos int) (int, error) {\n\tif next, err := %s; err == nil {\n\t\treturn next, nil\n\t}\n\treturn pos, nil\n}", name, c.render("pos"))
	gn.em.EmitDecl(body)
	return name
}

func (gn *Generator) compileNot(child ast.Expr) string {
	name := gn.gensym("not")
	c := gn.compileChild(child)
	body := fmt.Sprintf("func (p *Parser) %s(input string, pos int) (int, error) {\n\tif _, err := %s; err != nil {\n\t\treturn pos, nil\n\t}\n\treturn pos, rt.ErrLookaheadMatched\n}", name, c.render("pos"))
	gn.em.EmitDecl(body)
	return name
}

func (gn *Generator) compileAnd(child ast.Expr) string {
	name := gn.gensym("and")
	c := gn.compileChild(child)
	body := fmt.Sprintf("func (p *Parser) %s(input string, pos int) (int, error) {\n\tif _, err := %s; err != nil {\n\t\treturn pos, err\n\t}\n\treturn pos, nil\n}", name, c.render("pos"))
	gn.em.EmitDecl(body)
	return name
}

func (gn *Generator) compileClass(n *ast.CharacterClass) string {
	name := gn.gensym("class")
	var ivs strings.Builder
	for i, iv := range n.Intervals {
		if i > 0 {
			ivs.WriteString(", ")
		}
		fmt.Fprintf(&ivs, "{Lo: %s, Hi: %s}", strconv.QuoteRune(iv.Lo), strconv.QuoteRune(iv.Hi))
	}
	body := fmt.Sprintf("func (p *Parser) %s(input string, pos int) (int, error) {\n\treturn rt.MatchClass(input, pos, []rt.Interval{%s})\n}", name, ivs.String())
	gn.em.EmitDecl(body)
	return name
}

// emitAstTypes emits one Go type declaration per rule whose inferred
// capture type is not None, grouped under a doc comment since Go has no
// nested-namespace construct to mirror the spec's "ast namespace"
// literally.
func (gn *Generator) emitAstTypes() {
	types := typeinfer.ResolveGrammar(gn.g, gn.intern, gn.sink)
	if len(types) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("// Capture types inferred for each rule that yields a value.\n")
	for i, r := range gn.g.Rules {
		t, ok := types[i]
		if !ok {
			continue
		}
		name := "Ast" + exportCase(gn.intern.Name(r.Name))
		fmt.Fprintf(&b, "type %s %s\n", name, gn.goType(name, t))
	}
	gn.em.EmitDecl(b.String())
}

// goType renders t as a Go type expression. name is the enclosing
// declaration's name, used to derive names for Sum-type variant structs.
func (gn *Generator) goType(name string, t *typeinfer.Type) string {
	switch t.Kind {
	case typeinfer.Character:
		return "rune"
	case typeinfer.Sequence:
		return "[]" + gn.goType(name, t.Elem)
	case typeinfer.Option:
		return "*" + gn.goType(name, t.Elem)
	case typeinfer.Tuple:
		var b strings.Builder
		b.WriteString("struct {\n")
		for i, part := range t.Parts {
			fmt.Fprintf(&b, "\tF%d %s\n", i, gn.goType(name, part))
		}
		b.WriteString("}")
		return b.String()
	case typeinfer.Sum:
		// A minimal closed sum: an empty interface marker plus one
		// exported variant struct per branch, named Alt0, Alt1, ...
		for i, branch := range t.Branches {
			var fields strings.Builder
			fields.WriteString("struct {\n")
			for j, part := range branch {
				fmt.Fprintf(&fields, "\tF%d %s\n", j, gn.goType(name, part))
			}
			fields.WriteString("}")
			gn.em.EmitDecl(fmt.Sprintf("type %sAlt%d %s", name, i, fields.String()))
		}
		return "interface{}"
	default:
		return "struct{}"
	}
}
