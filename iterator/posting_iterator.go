package iterator

import (
	"sort"

	"github.com/neganovalexey/ftindex/posting"
	"github.com/neganovalexey/ftindex/rowid"
)

// SegmentPosting is a reader handle to one term's postings in one source — a
// sealed chunk or a live MemoryIndexer's snapshot. Base is the source's base
// row id, used only to order sources ascending
// before merging; the docids a Source actually stores are already the global
// RowIDs InvertColumn assigned, so no rebasing happens at read time.
type SegmentPosting struct {
	Source posting.Source
	Base   rowid.RowID
}

// PostingIterator decodes one term's postings across every SegmentPosting
// source that has it. Sources are non-overlapping
// (each segment or chunk owns a disjoint, increasing range of row ids), so
// merging them is a matter of exhausting sources in ascending Base order
// rather than a k-way heap merge — the OR iterator supplies that machinery
// for genuinely overlapping sources.
type PostingIterator struct {
	positionsEnabled bool
	sources          []SegmentPosting

	srcIdx   int
	block    posting.BlockView
	hasBlock bool
	recIdx   int

	doc rowid.RowID
}

// NewPostingIterator returns an iterator over sources, sorted ascending by
// Base. Order across non-overlapping sources doesn't affect correctness, so
// this is plain concatenation rather than a merge.
func NewPostingIterator(sources []SegmentPosting, positionsEnabled bool) *PostingIterator {
	sorted := append([]SegmentPosting(nil), sources...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Base < sorted[j].Base })
	return &PostingIterator{positionsEnabled: positionsEnabled, sources: sorted, doc: rowid.Invalid}
}

// GetDF returns df(term): the sum of each source's distinct docid count,
// which is exact (not just an upper bound) because sources never overlap.
func (it *PostingIterator) GetDF() uint32 {
	var df uint32
	for _, s := range it.sources {
		df += s.Source.DF()
	}
	return df
}

// Doc implements DocIterator.
func (it *PostingIterator) Doc() rowid.RowID {
	return it.doc
}

// Seek implements DocIterator by delegating to SeekDoc.
func (it *PostingIterator) Seek(target rowid.RowID) rowid.RowID {
	return it.SeekDoc(target)
}

// SeekDoc advances to the smallest docid >= target across every source,
// using each source's skip list to jump directly to the containing block in
// O(log N + block_size). It returns rowid.Invalid once every source is
// exhausted.
func (it *PostingIterator) SeekDoc(target rowid.RowID) rowid.RowID {
	for it.srcIdx < len(it.sources) {
		src := it.sources[it.srcIdx].Source
		skip := src.SkipList()
		entryIdx := sort.Search(len(skip), func(i int) bool { return skip[i].LastDocID >= target })
		if entryIdx >= len(skip) {
			it.srcIdx++
			it.hasBlock = false
			continue
		}

		var prevLast rowid.RowID
		if entryIdx > 0 {
			prevLast = skip[entryIdx-1].LastDocID
		}
		entry := skip[entryIdx]
		blk, err := posting.DecodeBlock(src.BlockBytes(entry.Offset, entry.Length), prevLast, src.PositionsEnabled())
		if err != nil {
			// A malformed block within an otherwise open source is treated as
			// end-of-source; the caller-level chunk quarantine already screens
			// whole chunks, this is defense in depth.
			it.srcIdx++
			it.hasBlock = false
			continue
		}

		recIdx := sort.Search(blk.Len(), func(i int) bool { return blk.DocID(i) >= target })
		if recIdx >= blk.Len() {
			it.srcIdx++
			it.hasBlock = false
			continue
		}

		it.block = blk
		it.hasBlock = true
		it.recIdx = recIdx
		it.doc = blk.DocID(recIdx)
		return it.doc
	}

	it.doc = rowid.Invalid
	it.hasBlock = false
	return rowid.Invalid
}

// GetCurrentTF returns the term frequency of the doc last returned by
// SeekDoc. It is undefined (returns 0) before the first SeekDoc call.
func (it *PostingIterator) GetCurrentTF() uint32 {
	if !it.hasBlock {
		return 0
	}
	return it.block.TF(it.recIdx)
}

// SeekPosition returns the smallest position >= from within the current
// doc's record, or rowid.InvalidPosition if none. Positions are decoded
// fresh from the block each call, so from need not be monotonic across
// calls.
func (it *PostingIterator) SeekPosition(from rowid.Position) rowid.Position {
	if !it.hasBlock || !it.positionsEnabled {
		return rowid.InvalidPosition
	}
	positions := it.block.Positions(it.recIdx)
	idx := sort.Search(len(positions), func(i int) bool { return positions[i] >= from })
	if idx >= len(positions) {
		return rowid.InvalidPosition
	}
	return positions[idx]
}
