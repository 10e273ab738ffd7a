// Package attribute implements the generic per-entity attribute system
// (C5): a way to declare named, typed, optionally-required properties on
// rules and grammars without changing either type's shape.
//
// It is grounded on the original middle/attribute/attribute.rs model —
// DefaultOrRequired<T> plus a (value, span, default) record per attribute
// — collapsed onto a single dynamic Map keyed by name, per the "dynamic
// attribute bag" design note: precise per-attribute types are recovered at
// the call site with the generic Get helper rather than by keeping one
// Go type parameter per Map.
package attribute

import (
	"github.com/berku-oak/pegc/diag"
	"github.com/berku-oak/pegc/span"
)

// Kind says whether a declared attribute falls back to a default value or
// must be supplied by the grammar author.
type Kind int

const (
	HasDefault Kind = iota
	Required
)

// Declaration is the AttributeArray entry: the declared model for one
// attribute name, independent of any particular rule or grammar instance.
type Declaration struct {
	Name            string
	Doc             string
	Kind            Kind
	Default         interface{}
	RequiredMessage string
}

// WithDefault declares an attribute that falls back to v when unset.
func WithDefault(name, doc string, v interface{}) Declaration {
	return Declaration{Name: name, Doc: doc, Kind: HasDefault, Default: v}
}

// RequiredAttr declares an attribute that must be set; msg is the
// diagnostic reported when it is read but absent.
func RequiredAttr(name, doc, msg string) Declaration {
	return Declaration{Name: name, Doc: doc, Kind: Required, RequiredMessage: msg}
}

type entry struct {
	value    interface{}
	hasValue bool
	span     span.Span
}

// Map is the AttributeMap: the instantiated, per-entity set of attribute
// values, layered over a set of Declarations shared by every entity of
// that kind (every rule, or the grammar itself).
type Map struct {
	decls   map[string]Declaration
	entries map[string]*entry
}

// NewMap returns an empty Map with no attributes declared yet.
func NewMap() *Map {
	return &Map{decls: make(map[string]Declaration), entries: make(map[string]*entry)}
}

// Declare registers d's model on m. Declaring the same name twice replaces
// the earlier declaration; the compiler only ever declares its fixed,
// well-known attribute set once per map, so this is not exercised in
// practice but keeps the method total.
func (m *Map) Declare(d Declaration) {
	m.decls[d.Name] = d
}

// Set records value for name at sp. A second Set for the same name is
// idempotent last-write-wins: the new value replaces the old one and a
// Warning is reported at sp rather than an Error.
func (m *Map) Set(sink diag.Sink, name string, value interface{}, sp span.Span) {
	e, ok := m.entries[name]
	if !ok {
		m.entries[name] = &entry{value: value, hasValue: true, span: sp}
		return
	}
	if e.hasValue && sink != nil {
		sink.Report(diag.Warning, sp, "attribute %q set more than once; using the value from %s", name, sp)
	}
	e.value = value
	e.hasValue = true
	e.span = sp
}

// Value returns the value stored for name, or its declared default. If
// name was never set and its declaration is Required, a diagnostic is
// reported at the zero span and (nil, false) is returned.
func (m *Map) Value(sink diag.Sink, name string) (interface{}, bool) {
	if e, ok := m.entries[name]; ok && e.hasValue {
		return e.value, true
	}
	decl, declared := m.decls[name]
	if !declared {
		return nil, false
	}
	if decl.Kind == Required {
		if sink != nil {
			sink.Report(diag.Error, span.Zero, "%s", decl.RequiredMessage)
		}
		return nil, false
	}
	return decl.Default, true
}

// SpanOf returns the span at which name was last set, or span.Zero if it
// was never set.
func (m *Map) SpanOf(name string) span.Span {
	if e, ok := m.entries[name]; ok && e.hasValue {
		return e.span
	}
	return span.Zero
}

// Has reports whether name carries an explicit value, independent of any
// declared default. Used for presence-only flags like invisible_type.
func (m *Map) Has(name string) bool {
	e, ok := m.entries[name]
	return ok && e.hasValue
}

// Get reads name out of m as an A, falling back to its declared default.
// The zero value of A is returned when the attribute is absent and
// undeclared, or when the stored value is not an A.
func Get[A any](m *Map, sink diag.Sink, name string) A {
	var zero A
	v, ok := m.Value(sink, name)
	if !ok {
		return zero
	}
	a, ok := v.(A)
	if !ok {
		return zero
	}
	return a
}
