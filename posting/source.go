package posting

// Source is the minimal read surface the iterator package needs to decode a
// term's postings, satisfied both by a chunk's on-disk term postings and by a
// live (possibly still-growing) Writer's in-memory snapshot. Splitting this out
// lets PostingIterator merge postings for one term across segments without
// knowing whether a given source is a sealed chunk or an active indexer.
type Source interface {
	DF() uint32
	PositionsEnabled() bool
	SkipList() []SkipEntry
	BlockBytes(offset, length uint32) []byte
}

type memSource struct {
	positionsEnabled bool
	df               uint32
	skipList         []SkipEntry
	blocks           []byte
}

func (m *memSource) DF() uint32                  { return m.df }
func (m *memSource) PositionsEnabled() bool      { return m.positionsEnabled }
func (m *memSource) SkipList() []SkipEntry       { return m.skipList }
func (m *memSource) BlockBytes(offset, length uint32) []byte {
	return m.blocks[offset : offset+length]
}

// Snapshot returns a read-only Source reflecting w's current contents,
// including any buffered-but-not-yet-block-sized records, without mutating w or
// requiring Seal. This is what lets a query see rows committed to a
// still-active MemoryIndexer, alongside every already-dumped chunk.
func (w *Writer) Snapshot() Source {
	skipList := append([]SkipEntry(nil), w.skipList...)
	blocks := append([]byte(nil), w.blocksBuf.Bytes()...)

	tail := make([]Record, 0, len(w.pending)+1)
	tail = append(tail, w.pending...)
	if w.started {
		tail = append(tail, w.current)
	}
	if len(tail) > 0 {
		encoded := encodeBlock(tail, w.lastInBlockDocID, w.positionsEnabled)
		offset := uint32(len(blocks))
		blocks = append(blocks, encoded...)
		last := tail[len(tail)-1].DocID
		skipList = append(skipList, SkipEntry{LastDocID: last, Offset: offset, Length: uint32(len(encoded))})
	}

	return &memSource{positionsEnabled: w.positionsEnabled, df: w.df, skipList: skipList, blocks: blocks}
}
