package iterator

import (
	"container/heap"
	"math"

	"github.com/neganovalexey/ftindex/rowid"
)

// OrIterator unions its children by maintaining a min-heap over their current
// docids: Seek advances every child lagging behind the target, then the heap
// top is the smallest doc across all of them.
type OrIterator struct {
	children []DocIterator
	dfCap    uint32 // 0 means uncapped
	h        *docHeap
}

// NewOrIterator returns an OrIterator over children. dfCap, when non-zero,
// caps GetDF's sum-of-children estimate against a known upper bound on the
// segment's live row count, wired from a roaring.Bitmap's cardinality by the
// query package when the OR node's field is known.
func NewOrIterator(children []DocIterator, dfCap uint32) *OrIterator {
	return &OrIterator{children: children, dfCap: dfCap}
}

// GetDF returns sum(children.GetDF()), capped at dfCap when set and, in any
// case, at math.MaxUint32.
func (o *OrIterator) GetDF() uint32 {
	var sum uint64
	for _, c := range o.children {
		sum += uint64(c.GetDF())
	}
	if o.dfCap > 0 && sum > uint64(o.dfCap) {
		return o.dfCap
	}
	if sum > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(sum)
}

// Doc implements DocIterator.
func (o *OrIterator) Doc() rowid.RowID {
	if o.h == nil || o.h.Len() == 0 {
		return rowid.Invalid
	}
	return o.h.items[0].Doc()
}

// Seek implements DocIterator: advances every child whose current doc is
// behind target to at least target, drops any that are now exhausted, and
// returns the smallest surviving doc.
func (o *OrIterator) Seek(target rowid.RowID) rowid.RowID {
	if o.h == nil {
		o.h = &docHeap{}
		for _, c := range o.children {
			if d := c.Seek(target); d != rowid.Invalid {
				heap.Push(o.h, c)
			}
		}
	} else {
		var revived []DocIterator
		for o.h.Len() > 0 && o.h.items[0].Doc() < target {
			c := heap.Pop(o.h).(DocIterator)
			if d := c.Seek(target); d != rowid.Invalid {
				revived = append(revived, c)
			}
		}
		for _, c := range revived {
			heap.Push(o.h, c)
		}
	}

	if o.h.Len() == 0 {
		return rowid.Invalid
	}
	return o.h.items[0].Doc()
}

// docHeap is a container/heap.Interface over DocIterator, ordered by current
// doc ascending.
type docHeap struct {
	items []DocIterator
}

func (h *docHeap) Len() int            { return len(h.items) }
func (h *docHeap) Less(i, j int) bool  { return h.items[i].Doc() < h.items[j].Doc() }
func (h *docHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *docHeap) Push(x interface{})  { h.items = append(h.items, x.(DocIterator)) }
func (h *docHeap) Pop() interface{} {
	n := len(h.items)
	it := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	return it
}
