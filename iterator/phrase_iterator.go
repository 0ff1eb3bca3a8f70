package iterator

import (
	"math"

	"github.com/neganovalexey/ftindex/rowid"
)

// PhraseIterator matches documents where children[0..n) occur at consecutive
// positions p, p+1, ..., p+n-1 for some p. Children must be term iterators
// (not arbitrary DocIterators) since phrase matching needs each child's
// per-document positions, unlike AND/OR which only need docids.
type PhraseIterator struct {
	children []TermIterator
	doc      rowid.RowID
}

// NewPhraseIterator returns a PhraseIterator over children in phrase order.
func NewPhraseIterator(children []TermIterator) *PhraseIterator {
	return &PhraseIterator{children: children, doc: rowid.Invalid}
}

// GetDF returns min(children.GetDF()), the same upper bound AndIterator uses
// since a phrase match implies every child matches the same document.
func (p *PhraseIterator) GetDF() uint32 {
	if len(p.children) == 0 {
		return 0
	}
	min := uint32(math.MaxUint32)
	for _, c := range p.children {
		if d := c.GetDF(); d < min {
			min = d
		}
	}
	return min
}

// Doc implements DocIterator.
func (p *PhraseIterator) Doc() rowid.RowID {
	return p.doc
}

// Seek finds the next docid >= target where all children co-occur at
// consecutive positions: AND-conjoin on docid, then verify position
// alignment; on failure, advance past the candidate and retry.
func (p *PhraseIterator) Seek(target rowid.RowID) rowid.RowID {
	if len(p.children) == 0 {
		p.doc = rowid.Invalid
		return rowid.Invalid
	}

	for {
		i := 0
		for i < len(p.children) {
			d := p.children[i].Seek(target)
			if d == rowid.Invalid {
				p.doc = rowid.Invalid
				return rowid.Invalid
			}
			if d != target {
				target = d
				i = 0
				continue
			}
			i++
		}

		if p.aligned() {
			p.doc = target
			return target
		}
		target++
	}
}

// aligned reports whether, for the document every child currently agrees on,
// there exists a position p such that children[i] has a position == p+i for
// every i.
func (p *PhraseIterator) aligned() bool {
	from := rowid.Position(0)
	for {
		base := p.children[0].SeekPosition(from)
		if base == rowid.InvalidPosition {
			return false
		}

		ok := true
		for i := 1; i < len(p.children); i++ {
			want := base + rowid.Position(i)
			if p.children[i].SeekPosition(want) != want {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
		from = base + 1
	}
}
