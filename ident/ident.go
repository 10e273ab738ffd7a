// Package ident implements the compiler's identifier interner.
//
// Rule names are interned once by the front-end so that later comparisons
// (duplicate-rule detection, reference resolution) are integer compares
// rather than string compares, and so identifier equality is "by interning
// key" the way the data model requires. Attribute maps are keyed by plain
// string names and do not go through the interner.
package ident

// ID is a stable handle into an Interner. IDs are assigned from 0 upward,
// so the zero value is the first name interned; callers that need a
// sentinel use Invalid (-1).
type ID int

// Invalid is returned by lookups that find nothing.
const Invalid ID = -1

// Interner assigns small integer handles to distinct names. It is not
// safe for concurrent use; the compiler is single-threaded per invocation.
type Interner struct {
	names []string
	byKey map[string]ID
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{byKey: make(map[string]ID)}
}

// Intern returns the ID for name, assigning a fresh one the first time it
// is seen.
func (in *Interner) Intern(name string) ID {
	if id, ok := in.byKey[name]; ok {
		return id
	}
	id := ID(len(in.names))
	in.names = append(in.names, name)
	in.byKey[name] = id
	return id
}

// Lookup returns the ID already assigned to name, or (Invalid, false) if
// name was never interned.
func (in *Interner) Lookup(name string) (ID, bool) {
	id, ok := in.byKey[name]
	if !ok {
		return Invalid, false
	}
	return id, true
}

// Name returns the display name for id. It panics if id was not produced
// by this interner, the same contract a slice index out of range has.
func (in *Interner) Name(id ID) string {
	return in.names[id]
}

// Len reports how many distinct names have been interned.
func (in *Interner) Len() int {
	return len(in.names)
}
