// Package rowid implements the 64-bit document identifier: a
// (segment_id:32, segment_offset:32) pair, monotone within a segment and
// never reused.
package rowid

import "math"

// RowID identifies one document (one row of a text column).
type RowID uint64

// Invalid is the INVALID_ROWID sentinel returned when a seek runs off the end of
// a posting list.
const Invalid RowID = math.MaxUint64

// Position identifies a term occurrence's offset within a document.
type Position uint32

// InvalidPosition is the INVALID_POSITION sentinel SeekPosition returns when no
// position satisfies the request.
const InvalidPosition Position = math.MaxUint32

// Pack builds a RowID from a segment id and an offset within that segment.
func Pack(segmentID, segmentOffset uint32) RowID {
	return RowID(uint64(segmentID)<<32 | uint64(segmentOffset))
}

// Unpack splits a RowID back into its segment id and segment offset.
func (r RowID) Unpack() (segmentID, segmentOffset uint32) {
	return uint32(r >> 32), uint32(r)
}

// SegmentID returns the segment id component.
func (r RowID) SegmentID() uint32 {
	return uint32(r >> 32)
}

// SegmentOffset returns the segment offset component.
func (r RowID) SegmentOffset() uint32 {
	return uint32(r)
}

// Base returns row_id_base + i, the RowID InvertColumn assigns to row i of a batch
// that starts at row_id_base.
func Base(base RowID, i uint32) RowID {
	return base + RowID(i)
}
