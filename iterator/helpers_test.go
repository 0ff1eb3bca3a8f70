package iterator_test

import (
	"github.com/neganovalexey/ftindex/iterator"
	"github.com/neganovalexey/ftindex/posting"
	"github.com/neganovalexey/ftindex/rowid"
)

// doc is one test fixture document: a docid and its term positions.
type doc struct {
	id  rowid.RowID
	pos []rowid.Position
}

// buildSource seals a writer from docs and returns its posting.Source, the
// unit a SegmentPosting wraps.
func buildSource(blockSize int, docs []doc) posting.Source {
	w := posting.NewWriter(posting.Config{BlockSize: blockSize, PositionsEnabled: true})
	for _, d := range docs {
		for _, p := range d.pos {
			w.AddPosition(d.id, p)
		}
	}
	w.Seal()
	return w.Snapshot()
}

// buildPostingIterator wraps a single source as a PostingIterator, the shape
// most iterator tests exercise a term leaf through.
func buildPostingIterator(blockSize int, docs []doc) *iterator.PostingIterator {
	return iterator.NewPostingIterator([]iterator.SegmentPosting{{Source: buildSource(blockSize, docs), Base: 0}}, true)
}

// buildPostingIteratorAcrossSegments wraps one source per (base, docs) pair,
// the multi-segment merge PostingIterator performs.
func buildPostingIteratorAcrossSegments(blockSize int, segments ...struct {
	base rowid.RowID
	docs []doc
}) *iterator.PostingIterator {
	sources := make([]iterator.SegmentPosting, 0, len(segments))
	for _, seg := range segments {
		sources = append(sources, iterator.SegmentPosting{Source: buildSource(blockSize, seg.docs), Base: seg.base})
	}
	return iterator.NewPostingIterator(sources, true)
}
