// Package posting implements the in-memory posting-list writer and its block
// codec: fixed-size blocks of delta-encoded docids, variable-byte term
// frequencies, and a position stream with a per-block prefix sum table for
// random access.
package posting

import "github.com/neganovalexey/ftindex/rowid"

// DefaultBlockSize is the default number of records per block.
const DefaultBlockSize = 128

// Record is one occurrence group for a term: a docid, its term frequency, and
// (if positions are enabled) the strictly increasing positions within that
// document. tf == len(Positions) whenever positions are enabled.
type Record struct {
	DocID     rowid.RowID
	Positions []rowid.Position
}

// TF returns the term frequency of this record.
func (r Record) TF() uint32 {
	return uint32(len(r.Positions))
}
