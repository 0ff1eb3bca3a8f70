package iterator

import (
	"math"
	"sort"

	"github.com/neganovalexey/ftindex/rowid"
)

// AndIterator conjoins its positive children by the zig-zag algorithm: seek
// the rarest child first, and any time a child disagrees with the running
// candidate, restart the scan from the first (rarest) child against the new
// candidate. Negative children, from a parsed NOT clause at the same
// conjunction level, are checked after the positive children agree: a
// candidate whose docid also appears in a negative child is rejected and the
// search resumes one past it. NewAndIterator requires at least one positive
// child; a conjunction with only negative children has no finite candidate
// set to intersect them against and is rejected at parse time instead.
type AndIterator struct {
	positive []DocIterator
	negative []DocIterator
	doc      rowid.RowID
}

// NewAndIterator returns an AndIterator over positive (required) and negative
// (excluded) children, with positive children reordered ascending by GetDF so
// the zig-zag starts from the rarest term.
func NewAndIterator(positive, negative []DocIterator) *AndIterator {
	sorted := append([]DocIterator(nil), positive...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].GetDF() < sorted[j].GetDF() })
	return &AndIterator{positive: sorted, negative: negative, doc: rowid.Invalid}
}

// GetDF returns min(children.GetDF()), an upper bound on the intersection's
// size.
func (a *AndIterator) GetDF() uint32 {
	if len(a.positive) == 0 {
		return 0
	}
	min := uint32(math.MaxUint32)
	for _, c := range a.positive {
		if d := c.GetDF(); d < min {
			min = d
		}
	}
	return min
}

// Doc implements DocIterator.
func (a *AndIterator) Doc() rowid.RowID {
	return a.doc
}

// Seek advances every positive child past the previous candidate, restarting
// from the rarest child whenever one lands past it, then rejects the result
// against every negative child before returning it.
func (a *AndIterator) Seek(target rowid.RowID) rowid.RowID {
	if len(a.positive) == 0 {
		a.doc = rowid.Invalid
		return rowid.Invalid
	}

retry:
	for {
		i := 0
		for i < len(a.positive) {
			d := a.positive[i].Seek(target)
			if d == rowid.Invalid {
				a.doc = rowid.Invalid
				return rowid.Invalid
			}
			if d != target {
				target = d
				i = 0
				continue
			}
			i++
		}

		for _, n := range a.negative {
			if n.Seek(target) == target {
				target++
				continue retry
			}
		}

		a.doc = target
		return target
	}
}
