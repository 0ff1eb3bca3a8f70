package iterator

import "github.com/neganovalexey/ftindex/rowid"

// VisibilityFilter wraps a TermIterator, skipping any doc visible reports
// false for. It is how a soft-deleted row (tombstoned rather than rewritten
// out of a sealed chunk) disappears from query results without the merge
// algebra above it needing to know deletion exists.
type VisibilityFilter struct {
	base    TermIterator
	visible func(rowid.RowID) bool
}

// NewVisibilityFilter returns an iterator equivalent to base with every doc
// visible rejects removed.
func NewVisibilityFilter(base TermIterator, visible func(rowid.RowID) bool) *VisibilityFilter {
	return &VisibilityFilter{base: base, visible: visible}
}

func (f *VisibilityFilter) Doc() rowid.RowID { return f.base.Doc() }

func (f *VisibilityFilter) Seek(target rowid.RowID) rowid.RowID {
	for {
		d := f.base.Seek(target)
		if d == rowid.Invalid || f.visible(d) {
			return d
		}
		target = d + 1
	}
}

func (f *VisibilityFilter) GetDF() uint32 { return f.base.GetDF() }

func (f *VisibilityFilter) GetCurrentTF() uint32 { return f.base.GetCurrentTF() }

func (f *VisibilityFilter) SeekPosition(from rowid.Position) rowid.Position {
	return f.base.SeekPosition(from)
}
