// Package iterator implements an iterator algebra: a term-level
// PostingIterator decoding one term's postings across segments, and
// AndIterator/OrIterator/PhraseIterator composing term iterators into boolean
// and phrase query results. Every iterator in this package advances only
// forward: Seek(target) with a target smaller than the last returned doc is
// undefined, matching a query's single-threaded, cooperatively-advanced
// execution model.
package iterator

import "github.com/neganovalexey/ftindex/rowid"

// DocIterator is the minimal surface every node in a query tree exposes: seek
// to (at least) a target docid, read back the doc it landed on, and report an
// upper bound on how many documents it could ever match. query.Node.Build
// returns one of these regardless of which concrete iterator backs it, a
// tagged variant with an explicit Build method rather than a deep virtual
// hierarchy.
type DocIterator interface {
	// Seek advances to the smallest doc >= target and returns it, or
	// rowid.Invalid if no such doc exists in this iterator.
	Seek(target rowid.RowID) rowid.RowID
	// Doc returns the doc last returned by Seek. Undefined before the first
	// Seek call.
	Doc() rowid.RowID
	// GetDF returns an upper bound on the number of distinct docs this
	// iterator can ever match, used by AndIterator to order children
	// rarest-first and by OrIterator to cap its own estimate.
	GetDF() uint32
}

// TermIterator is a DocIterator that additionally exposes term frequency and
// per-document positions: GetCurrentTF/SeekPosition, the extra surface
// PhraseIterator needs from its children.
type TermIterator interface {
	DocIterator
	// GetCurrentTF returns the term frequency of the doc last returned by
	// Seek. Undefined before the first Seek call.
	GetCurrentTF() uint32
	// SeekPosition advances the position cursor within the current doc's
	// record and returns the smallest position >= from, or
	// rowid.InvalidPosition if none exists. Calling with an out-of-order from
	// is well-defined: positions within a record are decoded fresh from the
	// block each call, so callers may probe non-monotonically.
	SeekPosition(from rowid.Position) rowid.Position
}
