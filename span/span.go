// Package span carries source-location ranges through the compiler.
//
// A Span is attached to every grammar construct from the lexer onward but
// must never influence a parsing decision; it exists purely so diagnostics
// can point at the text that produced them.
package span

import "fmt"

// Pos is a single source location: a 1-based line/column pair plus the byte
// offset it corresponds to.
type Pos struct {
	Line   int
	Col    int
	Offset int
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

// Zero is the empty span used for synthetic diagnostics that have no
// concrete source position (e.g. a missing required attribute).
var Zero = Span{}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

func (s Span) String() string {
	if s.Start == s.End {
		return s.Start.String()
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	start := a.Start
	if b.Start.Offset < start.Offset {
		start = b.Start
	}
	end := a.End
	if b.End.Offset > end.Offset {
		end = b.End
	}
	return Span{Start: start, End: end}
}
