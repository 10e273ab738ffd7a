// Package pegc compiles a Parsing Expression Grammar into the source of
// a recursive-descent parser.
//
// A grammar is a sequence of rules:
//
//	Greeting = "hello" " " Name;
//	Name     = [a-zA-Z]+;
//
// Each rule names an expression built from string and character-class
// literals, non-terminal references, sequencing (concatenation), ordered
// choice ("/"), the postfix repetition operators "*" and "+", optionality
// ("?"), and the non-consuming lookahead predicates "!" and "&". Operator
// precedence, highest first: postfix *+?, prefix !&, sequencing, then
// choice. Alternatives in a choice are tried strictly left to right and
// the first success wins; there is no backtracking once a choice commits.
//
// Two attributes change how a grammar compiles:
//
//	#start(Name)       -- selects Name as the starting rule (default:
//	                      the first rule declared)
//	#print_generated   -- emits the generated source as a Note diagnostic
//
// and one rule attribute excludes a rule's capture type from its
// callers' inferred types:
//
//	#invisible_type
//	Whitespace = (" " / "\t")*;
//
// Compiling a grammar produces a Parser type with a Parse method:
//
//	p := NewParser()
//	tail, err := p.Parse("hello world")
//
// returning (nil, nil) on a full match, (&tail, nil) on a partial match
// with the unconsumed suffix, or (nil, err) describing the deepest
// failure the parser encountered.
//
// This package does not support left-recursive rules, packrat
// memoization, user-written semantic actions, Unicode-property character
// classes, or error recovery within a generated parser: a generated
// parser either matches fully, matches a prefix, or reports the first
// failure it cannot recover from.
package pegc
