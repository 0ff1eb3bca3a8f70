// Package chunk implements the immutable on-disk posting file: a bit-stable
// layout of [magic][version][term_dict][postings][footer] with a CRC32
// integrity check, written once by Dump and read many times by queries
// afterward.
package chunk

import (
	"hash/crc32"
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/neganovalexey/ftindex/codec"
	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/posting"
	"github.com/neganovalexey/ftindex/rowid"
)

// Magic is the 4-byte chunk file identifier, "IFTC" (inverted full-text chunk).
const Magic = uint32('I')<<24 | uint32('F')<<16 | uint32('T')<<8 | uint32('C')

// Version is the current chunk format version. Readers reject any version
// greater than this with a FormatError.
const Version = 1

// flag bits, stored in the footer.
const (
	flagPositions uint32 = 1 << 0
)

// footer: term_dict_offset, term_dict_size, doc_bitmap_offset, doc_bitmap_size, flags, crc32
const footerSize = 8 + 8 + 8 + 8 + 4 + 4

// TermEntry is one term dictionary row: the term text, where its postings start
// within the postings region, and its document/total-term frequency, exposed to
// callers without requiring them to decode any postings.
type TermEntry struct {
	Term           string
	PostingsOffset uint64
	DF             uint32
	TTF            uint64
}

// Build serializes a sealed set of per-term posting writers into one chunk
// file's bytes. Writers must already be sealed (posting.Writer.Seal); Build
// does not mutate them.
func Build(writers map[string]*posting.Writer, positionsEnabled bool) []byte {
	terms := make([]string, 0, len(writers))
	for term := range writers {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	docBitmap := roaring.New()
	postingsBuf := codec.NewSerializeBuf(1024)
	entries := make([]TermEntry, 0, len(terms))
	for _, term := range terms {
		w := writers[term]
		offset := uint64(postingsBuf.Len())
		postingsBuf.WriteRaw(posting.EncodeSkipList(w.SkipList()))
		postingsBuf.WriteRaw(w.Blocks())
		entries = append(entries, TermEntry{Term: term, PostingsOffset: offset, DF: w.DF(), TTF: w.TTF()})
		collectDocIDs(docBitmap, w)
	}
	docBitmap.RunOptimize()

	termDict := codec.NewSerializeBuf(32 * len(entries))
	for _, e := range entries {
		termDict.EncodeFixedUint16(uint16(len(e.Term)))
		termDict.WriteRaw([]byte(e.Term))
		termDict.EncodeFixedUint64(e.PostingsOffset)
		termDict.EncodeFixedUint32(e.DF)
		termDict.EncodeFixedUint64(e.TTF)
	}

	docBitmapBytes, err := docBitmap.MarshalBinary()
	if err != nil {
		codeerrors.Invariant("chunk.Build: roaring bitmap serialization failed: %v", err)
	}

	out := codec.NewSerializeBuf(16 + termDict.Len() + postingsBuf.Len() + len(docBitmapBytes) + footerSize)
	out.EncodeFixedUint32(Magic)
	out.EncodeFixedUint32(Version)
	termDictOffset := uint64(out.Len())
	out.WriteRaw(termDict.Bytes())
	out.WriteRaw(postingsBuf.Bytes())
	docBitmapOffset := uint64(out.Len())
	out.WriteRaw(docBitmapBytes)

	flags := uint32(0)
	if positionsEnabled {
		flags |= flagPositions
	}
	crc := crc32.ChecksumIEEE(out.Bytes())

	out.EncodeFixedUint64(termDictOffset)
	out.EncodeFixedUint64(uint64(termDict.Len()))
	out.EncodeFixedUint64(docBitmapOffset)
	out.EncodeFixedUint64(uint64(len(docBitmapBytes)))
	out.EncodeFixedUint32(flags)
	out.EncodeFixedUint32(crc)

	return out.Bytes()
}

// collectDocIDs decodes w's sealed blocks and adds every record's segment
// offset to bitmap. Chunk docids all share one segment id (a MemoryIndexer
// only ever serves one segment), so the low 32 bits are enough to identify a
// row uniquely within this chunk's roaring.Bitmap.
func collectDocIDs(bitmap *roaring.Bitmap, w *posting.Writer) {
	var prevLast rowid.RowID
	for _, entry := range w.SkipList() {
		blk, err := posting.DecodeBlock(w.Blocks()[entry.Offset:entry.Offset+entry.Length], prevLast, w.PositionsEnabled())
		if err != nil {
			codeerrors.Invariant("chunk.Build: decoding a just-sealed block failed: %v", err)
		}
		for i := 0; i < blk.Len(); i++ {
			bitmap.Add(blk.DocID(i).SegmentOffset())
		}
		prevLast = entry.LastDocID
	}
}

// Chunk is a parsed, read-only chunk: its term dictionary (sorted, so Lookup can
// binary search) and the raw postings region term postings are sliced out of.
type Chunk struct {
	positionsEnabled bool
	entries          []TermEntry
	postings         []byte
	present          *roaring.Bitmap
}

// Open parses raw into a Chunk, validating magic, version, and CRC32. A
// mismatch on any of these is a FormatError: the caller should quarantine
// this chunk and fall back to the remaining ones rather than abort the whole
// query.
func Open(raw []byte) (*Chunk, error) {
	if len(raw) < 8+footerSize {
		return nil, codeerrors.ErrFormat.WithMessage("chunk too small: %d bytes", len(raw))
	}

	footer := raw[len(raw)-footerSize:]
	fb := codec.NewDeserializeBuf(footer)
	termDictOffset := fb.DecodeFixedUint64()
	termDictSize := fb.DecodeFixedUint64()
	docBitmapOffset := fb.DecodeFixedUint64()
	docBitmapSize := fb.DecodeFixedUint64()
	flags := fb.DecodeFixedUint32()
	wantCRC := fb.DecodeFixedUint32()
	if err := fb.Error(); err != nil {
		return nil, codeerrors.ErrFormat.WithReason(err)
	}

	body := raw[:len(raw)-footerSize]
	if gotCRC := crc32.ChecksumIEEE(body); gotCRC != wantCRC {
		return nil, codeerrors.ErrFormat.WithMessage("crc32 mismatch: got %x want %x", gotCRC, wantCRC)
	}

	hb := codec.NewDeserializeBuf(body)
	magic := hb.DecodeFixedUint32()
	if magic != Magic {
		return nil, codeerrors.ErrFormat.WithMessage("bad magic: %x", magic)
	}
	version := hb.DecodeFixedUint32()
	if version > Version {
		return nil, codeerrors.ErrFormat.WithMessage("unsupported chunk version: %d", version)
	}

	if termDictOffset+termDictSize > uint64(len(body)) {
		return nil, codeerrors.ErrFormat.WithMessage("term dict out of bounds")
	}
	if docBitmapOffset+docBitmapSize > uint64(len(body)) {
		return nil, codeerrors.ErrFormat.WithMessage("doc bitmap out of bounds")
	}
	termDict := body[termDictOffset : termDictOffset+termDictSize]
	postings := body[termDictOffset+termDictSize : docBitmapOffset]

	entries, err := decodeTermDict(termDict)
	if err != nil {
		return nil, codeerrors.ErrFormat.WithReason(err)
	}

	present := roaring.New()
	if docBitmapSize > 0 {
		if err := present.UnmarshalBinary(body[docBitmapOffset : docBitmapOffset+docBitmapSize]); err != nil {
			return nil, codeerrors.ErrFormat.WithReason(err)
		}
	}

	return &Chunk{
		positionsEnabled: flags&flagPositions != 0,
		entries:          entries,
		postings:         postings,
		present:          present,
	}, nil
}

// PresentDocIDs returns the set of segment offsets (rowid.RowID.SegmentOffset)
// that have at least one posting somewhere in this chunk, letting a reader
// compute an exact row count via set union instead of trusting a separately
// tracked counter.
func (c *Chunk) PresentDocIDs() *roaring.Bitmap {
	return c.present
}

func decodeTermDict(buf []byte) ([]TermEntry, error) {
	db := codec.NewDeserializeBuf(buf)
	var entries []TermEntry
	for db.Len() > 0 {
		termLen := db.DecodeFixedUint16()
		termBytes := make([]byte, termLen)
		for i := range termBytes {
			termBytes[i] = db.DecodeFixedUint8()
		}
		offset := db.DecodeFixedUint64()
		df := db.DecodeFixedUint32()
		ttf := db.DecodeFixedUint64()
		if err := db.Error(); err != nil {
			return nil, err
		}
		entries = append(entries, TermEntry{Term: string(termBytes), PostingsOffset: offset, DF: df, TTF: ttf})
	}
	return entries, nil
}

// Terms returns the chunk's term dictionary entries, sorted by term.
func (c *Chunk) Terms() []TermEntry {
	return c.entries
}

// PositionsEnabled reports whether this chunk's postings carry positions.
func (c *Chunk) PositionsEnabled() bool {
	return c.positionsEnabled
}

// Lookup finds term's postings source, or (nil, false) if the chunk has no
// postings for it.
func (c *Chunk) Lookup(term string) (posting.Source, bool) {
	i := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].Term >= term })
	if i >= len(c.entries) || c.entries[i].Term != term {
		return nil, false
	}

	entry := c.entries[i]
	end := uint64(len(c.postings))
	if i+1 < len(c.entries) {
		end = c.entries[i+1].PostingsOffset
	}
	region := c.postings[entry.PostingsOffset:end]

	skipList, n, err := posting.DecodeSkipList(region)
	if err != nil {
		return nil, false
	}
	blocks := region[n:]

	return &chunkSource{
		positionsEnabled: c.positionsEnabled,
		df:               entry.DF,
		skipList:         skipList,
		blocks:           blocks,
	}, true
}

type chunkSource struct {
	positionsEnabled bool
	df               uint32
	skipList         []posting.SkipEntry
	blocks           []byte
}

func (s *chunkSource) DF() uint32                  { return s.df }
func (s *chunkSource) PositionsEnabled() bool      { return s.positionsEnabled }
func (s *chunkSource) SkipList() []posting.SkipEntry { return s.skipList }
func (s *chunkSource) BlockBytes(offset, length uint32) []byte {
	return s.blocks[offset : offset+length]
}
