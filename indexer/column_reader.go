package indexer

import (
	"math"
	"sync"

	"github.com/RoaringBitmap/roaring"

	"github.com/neganovalexey/ftindex/chunk"
	"github.com/neganovalexey/ftindex/fsio"
	"github.com/neganovalexey/ftindex/iterator"
	"github.com/neganovalexey/ftindex/metrics"
	"github.com/neganovalexey/ftindex/rowid"
)

// segmentBinding is one segment's contribution to a ColumnIndexReader: the
// namespace its chunks live in, the SegmentIndexEntry naming which chunks and
// active indexer to read, and a cache of chunks already opened so repeated
// Lookups don't re-read and re-parse the same file.
type segmentBinding struct {
	ns      fsio.Namespace
	entry   *SegmentIndexEntry
	metrics *metrics.Metrics

	mu     sync.Mutex
	opened map[string]*chunk.Chunk
}

func newSegmentBinding(ns fsio.Namespace, entry *SegmentIndexEntry, m *metrics.Metrics) *segmentBinding {
	return &segmentBinding{ns: ns, entry: entry, metrics: m, opened: make(map[string]*chunk.Chunk)}
}

// chunkFor returns c's parsed contents, opening and caching it on first use.
// Any failure to read or parse c (a missing or unreadable file, or a
// FormatError) quarantines c in the segment entry, so future Lookups skip it
// instead of failing outright.
func (b *segmentBinding) chunkFor(c ChunkEntry) (*chunk.Chunk, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if parsed, ok := b.opened[c.Name]; ok {
		return parsed, true
	}

	raw, err := fsio.ReadAll(b.ns, "ft/"+c.Name+".idx")
	if err != nil {
		b.entry.Quarantine(c.Name, err)
		b.metrics.ObserveQuarantine()
		return nil, false
	}
	parsed, err := chunk.Open(raw)
	if err != nil {
		b.entry.Quarantine(c.Name, err)
		b.metrics.ObserveQuarantine()
		return nil, false
	}
	b.opened[c.Name] = parsed
	return parsed, true
}

// ColumnIndexReader answers term lookups against every segment bound for one
// column. It merges the active indexer's live postings with every
// non-quarantined chunk's postings, across every bound segment, into one
// PostingIterator per term.
type ColumnIndexReader struct {
	positionsEnabled bool
	metrics          *metrics.Metrics

	mu       sync.Mutex
	segments []*segmentBinding
}

// NewColumnIndexReader returns an empty reader; segments are added with
// AddSegment as they are discovered. m may be nil to disable instrumentation.
func NewColumnIndexReader(positionsEnabled bool, m *metrics.Metrics) *ColumnIndexReader {
	return &ColumnIndexReader{positionsEnabled: positionsEnabled, metrics: m}
}

// AddSegment binds one segment's chunks and active indexer into the reader's
// search fan-out.
func (r *ColumnIndexReader) AddSegment(ns fsio.Namespace, entry *SegmentIndexEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append(r.segments, newSegmentBinding(ns, entry, r.metrics))
}

// activeBase returns the docid an entry's active indexer's rows start at,
// for sorting it correctly against the entry's already-dumped chunks in a
// PostingIterator merge: ingestion within a segment is append-only, so the
// active indexer's rows always come after the last chunk's, at
// last_chunk.BaseRow + last_chunk.RowCount, or the segment's own base if it
// has no chunks yet.
func activeBase(entry *SegmentIndexEntry) rowid.RowID {
	chunks := entry.Chunks()
	if len(chunks) == 0 {
		return entry.BaseRowID()
	}
	last := chunks[len(chunks)-1]
	return last.BaseRow + rowid.RowID(last.RowCount)
}

// Lookup resolves term to a merged TermIterator across every bound segment,
// or (nil, false) if no segment carries any postings for it.
func (r *ColumnIndexReader) Lookup(term string) (iterator.TermIterator, bool, error) {
	r.metrics.ObserveLookup()

	r.mu.Lock()
	segments := append([]*segmentBinding(nil), r.segments...)
	r.mu.Unlock()

	var sources []iterator.SegmentPosting
	for _, b := range segments {
		if active := b.entry.ActiveIndexer(); active != nil {
			if src, ok := active.Snapshot()[term]; ok {
				sources = append(sources, iterator.SegmentPosting{Source: src, Base: activeBase(b.entry)})
			}
		}
		for _, c := range b.entry.Chunks() {
			parsed, ok := b.chunkFor(c)
			if !ok {
				continue
			}
			if src, ok := parsed.Lookup(term); ok {
				sources = append(sources, iterator.SegmentPosting{Source: src, Base: c.BaseRow})
			}
		}
	}

	if len(sources) == 0 {
		return nil, false, nil
	}

	byBase := make(map[uint32]*SegmentIndexEntry, len(segments))
	for _, b := range segments {
		byBase[b.entry.BaseRowID().SegmentID()] = b.entry
	}
	visible := func(docid rowid.RowID) bool {
		entry, ok := byBase[docid.SegmentID()]
		return !ok || entry.Visible(docid)
	}

	merged := iterator.NewPostingIterator(sources, r.positionsEnabled)
	return iterator.NewVisibilityFilter(merged, visible), true, nil
}

// RowCount computes the reader's live row count exactly, per bound segment:
// the union (via roaring.Bitmap.Or) of every non-quarantined chunk's
// PresentDocIDs, minus the segment's tombstoned rows (roaring.Bitmap.AndNot),
// summed with each segment's GetCardinality. Deferring to bitmap union
// instead of trusting ChunkEntry.RowCount catches double-counting a row that
// (implausibly, but not impossibly under a future compaction bug) ended up
// present in two chunks of the same segment.
func (r *ColumnIndexReader) RowCount() uint32 {
	r.mu.Lock()
	segments := append([]*segmentBinding(nil), r.segments...)
	r.mu.Unlock()

	var total uint64
	for _, b := range segments {
		present := roaring.New()
		for _, c := range b.entry.Chunks() {
			parsed, ok := b.chunkFor(c)
			if !ok {
				continue
			}
			present.Or(parsed.PresentDocIDs())
		}
		present.AndNot(b.entry.DeletedBitmap())
		total += present.GetCardinality()
	}
	if total > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(total)
}
