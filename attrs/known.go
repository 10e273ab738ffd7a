// Package attrs declares the grammar's recognized attributes (spec §4.5):
// the fixed, well-known attribute set every Grammar and Rule Map carries,
// independent of the generic attribute machinery in package attribute.
package attrs

import "github.com/berku-oak/pegc/attribute"

// Grammar-scoped attribute names.
const (
	PrintGenerated = "print_generated"
	Start          = "start"
)

// Rule-scoped attribute names.
const (
	InvisibleType = "invisible_type"
)

// DeclareGrammar registers the grammar-scoped attribute models on m.
func DeclareGrammar(m *attribute.Map) {
	m.Declare(attribute.WithDefault(PrintGenerated, "emit a human-readable dump of the generated code as a Note diagnostic", false))
	m.Declare(attribute.WithDefault(Start, "the name of the starting rule", ""))
}

// DeclareRule registers the rule-scoped attribute models on m.
func DeclareRule(m *attribute.Map) {
	m.Declare(attribute.WithDefault(InvisibleType, "exclude this rule's capture type from callers' inferred types", false))
}
