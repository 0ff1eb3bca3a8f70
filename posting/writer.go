package posting

import (
	"github.com/neganovalexey/ftindex/codec"
	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/rowid"
)

// Writer is the append-only per-term posting builder. It is uniquely owned by
// one MemoryIndexer until Dump freezes it; AddPosition must be called with
// non-decreasing docids by a single caller at a time (the indexer's commit
// worker serializes calls across merged inverters, see indexer.MemoryIndexer).
type Writer struct {
	blockSize        int
	positionsEnabled bool

	started    bool
	current    Record
	pending    []Record // records accumulated since the last full block
	blocksBuf  *codec.SerializeBuf
	skipList   []SkipEntry
	lastInBlockDocID rowid.RowID // last docid written in a completed block, the next block's delta baseline

	df        uint32
	ttf       uint64
	lastDocID rowid.RowID

	sealed bool
}

// Config controls how a Writer packs postings.
type Config struct {
	BlockSize        int  // defaults to DefaultBlockSize when <= 0
	PositionsEnabled bool
}

// NewWriter returns an empty Writer.
func NewWriter(cfg Config) *Writer {
	blockSize := cfg.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Writer{
		blockSize:        blockSize,
		positionsEnabled: cfg.PositionsEnabled,
		blocksBuf:        codec.NewSerializeBuf(4096),
	}
}

// AddPosition appends one (docid, position) occurrence:
//   - docid == last_docid: appended to the current record, tf increments.
//   - docid > last_docid: the previous record flushes, a new one starts, df increments.
//   - docid < last_docid: a programmer error; it is an InvariantViolation, not a
//     recoverable error, since it can only mean the caller is feeding unsorted
//     or concurrent input into a single Writer.
func (w *Writer) AddPosition(docid rowid.RowID, pos rowid.Position) {
	if w.sealed {
		codeerrors.Invariant("posting.Writer: AddPosition called after Seal")
	}

	switch {
	case !w.started:
		w.started = true
		w.current = Record{DocID: docid}
		w.df++
	case docid == w.current.DocID:
		// same record, fall through to append below
	case docid > w.current.DocID:
		w.flushCurrent()
		w.current = Record{DocID: docid}
		w.df++
	default:
		codeerrors.Invariant("posting.Writer: docid %d out of order after %d", docid, w.current.DocID)
	}

	if w.positionsEnabled {
		if n := len(w.current.Positions); n > 0 && pos <= w.current.Positions[n-1] {
			codeerrors.Invariant("posting.Writer: position %d out of order after %d", pos, w.current.Positions[n-1])
		}
		w.current.Positions = append(w.current.Positions, pos)
	} else {
		w.current.Positions = append(w.current.Positions, 0)
	}
	w.lastDocID = docid
	w.ttf++
}

func (w *Writer) flushCurrent() {
	w.pending = append(w.pending, w.current)
	if len(w.pending) >= w.blockSize {
		w.flushBlock()
	}
}

func (w *Writer) flushBlock() {
	if len(w.pending) == 0 {
		return
	}
	bytes := encodeBlock(w.pending, w.lastInBlockDocID, w.positionsEnabled)
	offset := uint32(w.blocksBuf.Len())
	w.blocksBuf.WriteRaw(bytes)
	last := w.pending[len(w.pending)-1].DocID
	w.skipList = append(w.skipList, SkipEntry{LastDocID: last, Offset: offset, Length: uint32(len(bytes))})
	w.lastInBlockDocID = last
	w.pending = w.pending[:0]
}

// Seal finalizes any buffered record and block and fixes the skip list. A sealed
// writer's encoded bytes are bit-identical regardless of how AddPosition calls
// were scheduled across goroutines, provided the input order itself was the same.
func (w *Writer) Seal() {
	if w.sealed {
		return
	}
	if w.started {
		w.flushCurrent()
	}
	w.flushBlock()
	w.sealed = true
}

// Sealed reports whether Seal has been called.
func (w *Writer) Sealed() bool {
	return w.sealed
}

// DF returns the number of distinct docids appended so far.
func (w *Writer) DF() uint32 {
	return w.df
}

// TTF returns the total number of occurrences appended so far.
func (w *Writer) TTF() uint64 {
	return w.ttf
}

// LastDocID returns the most recently appended docid, or rowid.Invalid if the
// writer is empty.
func (w *Writer) LastDocID() rowid.RowID {
	if !w.started {
		return rowid.Invalid
	}
	return w.lastDocID
}

// Empty reports whether any postings were ever appended.
func (w *Writer) Empty() bool {
	return !w.started && len(w.skipList) == 0
}

// PositionsEnabled reports whether this writer tracks per-occurrence positions.
func (w *Writer) PositionsEnabled() bool {
	return w.positionsEnabled
}

// SkipList returns the sealed skip list. Callers must call Seal first.
func (w *Writer) SkipList() []SkipEntry {
	return w.skipList
}

// Blocks returns the sealed, concatenated block bytes backing SkipList's offsets.
// Callers must call Seal first.
func (w *Writer) Blocks() []byte {
	return w.blocksBuf.Bytes()
}
