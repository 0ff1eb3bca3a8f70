package indexer

import (
	"sync"

	"github.com/RoaringBitmap/roaring"

	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/rowid"
)

// ChunkEntry names one finalized (dumped) chunk belonging to a segment.
type ChunkEntry struct {
	Name     string
	BaseRow  rowid.RowID
	RowCount uint32
}

// SegmentIndexEntry is per-segment bookkeeping: the segment's base row id, an
// optional still-growing MemoryIndexer, and the ordered list of chunks
// already dumped for it. Queries read both the active
// indexer and every non-quarantined chunk.
type SegmentIndexEntry struct {
	baseRowID rowid.RowID

	mu          sync.Mutex
	active      *MemoryIndexer
	chunks      []ChunkEntry
	quarantined map[string]error
	deleted     *roaring.Bitmap
}

// NewSegmentIndexEntry returns an entry for the segment whose rows start at
// baseRowID.
func NewSegmentIndexEntry(baseRowID rowid.RowID) *SegmentIndexEntry {
	return &SegmentIndexEntry{
		baseRowID:   baseRowID,
		quarantined: make(map[string]error),
		deleted:     roaring.New(),
	}
}

// MarkDeleted tombstones docid: it stays physically present in whichever
// chunk or active writer holds it, but Visible reports false for it from now
// on, and RowCount stops counting it. Deletion this way avoids rewriting a
// sealed chunk just to drop one row.
func (s *SegmentIndexEntry) MarkDeleted(docid rowid.RowID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted.Add(docid.SegmentOffset())
}

// Visible reports whether docid has not been tombstoned by MarkDeleted.
func (s *SegmentIndexEntry) Visible(docid rowid.RowID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.deleted.Contains(docid.SegmentOffset())
}

// DeletedBitmap returns a snapshot of the segment offsets tombstoned so far,
// for RowCount to subtract from a chunk union via roaring.Bitmap.AndNot.
func (s *SegmentIndexEntry) DeletedBitmap() *roaring.Bitmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleted.Clone()
}

// BaseRowID returns the segment's base row id.
func (s *SegmentIndexEntry) BaseRowID() rowid.RowID {
	return s.baseRowID
}

// AddFtChunkIndexEntry registers a dumped chunk, appended in the order Dump
// returns them.
func (s *SegmentIndexEntry) AddFtChunkIndexEntry(name string, base rowid.RowID, rowCount uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, ChunkEntry{Name: name, BaseRow: base, RowCount: rowCount})
}

// SetMemoryIndexer transfers ownership of a still-growing indexer to this
// entry. It is accepted only if no active indexer is already present; a
// second call is a programmer error.
func (s *SegmentIndexEntry) SetMemoryIndexer(idx *MemoryIndexer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		codeerrors.Invariant("indexer.SegmentIndexEntry: SetMemoryIndexer called with an active indexer already present")
	}
	s.active = idx
}

// ActiveIndexer returns the segment's live indexer, or nil if none is set.
func (s *SegmentIndexEntry) ActiveIndexer() *MemoryIndexer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Chunks returns the finalized chunks that are not quarantined, in the order
// they were added.
func (s *SegmentIndexEntry) Chunks() []ChunkEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ChunkEntry, 0, len(s.chunks))
	for _, c := range s.chunks {
		if _, bad := s.quarantined[c.Name]; !bad {
			out = append(out, c)
		}
	}
	return out
}

// Quarantine marks name unusable after reading or parsing it failed: the chunk is
// dropped from future query fan-out while ingest and queries against the
// remaining chunks continue unaffected.
func (s *SegmentIndexEntry) Quarantine(name string, reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quarantined[name] = reason
}

// QuarantineReason returns why name was quarantined, or nil if it is healthy.
func (s *SegmentIndexEntry) QuarantineReason(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quarantined[name]
}
