package iterator

import "github.com/neganovalexey/ftindex/rowid"

// emptyIterator matches nothing. query.Node.Build returns it for a term or
// phrase that has no postings anywhere, instead of a nil DocIterator, so
// callers never need a nil check before calling Seek.
type emptyIterator struct{}

// Empty returns a DocIterator that always reports rowid.Invalid.
func Empty() DocIterator {
	return emptyIterator{}
}

func (emptyIterator) Seek(rowid.RowID) rowid.RowID { return rowid.Invalid }
func (emptyIterator) Doc() rowid.RowID             { return rowid.Invalid }
func (emptyIterator) GetDF() uint32                { return 0 }
