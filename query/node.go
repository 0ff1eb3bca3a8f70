// Package query implements the query-text parser and the resulting node
// tree: a lexer/recursive-descent parser turning a user query string into a
// tagged-variant tree, and a Build method compiling that tree into the
// iterator algebra the iterator package implements.
package query

// Kind tags which shape a Node takes: a tagged variant with an explicit
// Build method, in place of a class hierarchy per node shape.
type Kind int

const (
	// KindTerm matches one analyzed term in one field.
	KindTerm Kind = iota
	// KindPhrase matches consecutive occurrences of Terms in one field.
	KindPhrase
	// KindAnd conjoins Children, honoring each child's Negative flag.
	KindAnd
	// KindOr unions Children.
	KindOr
)

// Node is one node of a parsed query tree. Which fields are meaningful
// depends on Kind: KindTerm uses Field/Term, KindPhrase uses Field/Terms,
// KindAnd/KindOr use Children.
type Node struct {
	Kind Kind

	Field string
	Term  string
	Terms []string

	Children []*Node
	// Negative marks a child of a KindAnd node as a NOT clause: the parent
	// AndIterator excludes documents this child matches. Set only on direct
	// children of a KindAnd node; the parser rejects a bare NOT anywhere else,
	// and rejects an AND whose children are all negative.
	Negative bool

	Weight float64
}
