// Package inverter implements the column inverter: it tokenizes a column
// slice into (term, docid, position) tuples, sorts them, and replays them
// into per-term posting writers.
package inverter

import "github.com/neganovalexey/ftindex/rowid"

// tuple is one emitted occurrence, the unit ColumnInverter buffers, merges, and
// sorts before replaying into posting writers.
type tuple struct {
	Term     string
	DocID    rowid.RowID
	Position rowid.Position
}
