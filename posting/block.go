package posting

import (
	"github.com/neganovalexey/ftindex/codec"
	"github.com/neganovalexey/ftindex/rowid"
)

// encodeBlock packs records (at most the writer's block size of them) into a
// block's bytes. prevLastDocID is the previous block's last docid (or 0 for the first
// block in a posting list), the baseline the first record's delta is computed
// from.
//
// Layout: numRecords varint; numRecords docid-delta varints; numRecords tf
// varints (written whether or not positions are enabled, so tf survives a
// positions-disabled block); if positionsEnabled, numRecords prefix-sum varints
// into the positions blob, followed by the positions blob itself as a
// length-prefixed byte string (each record's positions delta-encoded, first
// delta from 0).
func encodeBlock(records []Record, prevLastDocID rowid.RowID, positionsEnabled bool) []byte {
	sb := codec.NewSerializeBuf(64 * len(records))
	sb.EncodeUint32(uint32(len(records)))

	prev := prevLastDocID
	for _, rec := range records {
		sb.EncodeUint64(uint64(rec.DocID - prev))
		prev = rec.DocID
	}
	for _, rec := range records {
		sb.EncodeUint32(rec.TF())
	}

	if positionsEnabled {
		posBuf := codec.NewSerializeBuf(4 * len(records))
		prefixSums := make([]uint32, len(records))
		for i, rec := range records {
			var prevPos rowid.Position
			for _, p := range rec.Positions {
				posBuf.EncodeUint32(uint32(p - prevPos))
				prevPos = p
			}
			prefixSums[i] = uint32(posBuf.Len())
		}
		for _, sum := range prefixSums {
			sb.EncodeUint32(sum)
		}
		sb.EncodeBuf(posBuf.Bytes())
	}

	return sb.Bytes()
}

// decodedBlock is a parsed block: absolute docids/tfs decoded eagerly (they're
// tiny), positions decoded lazily per record from the retained blob.
type decodedBlock struct {
	docIDs        []rowid.RowID
	tfs           []uint32
	posOffsets    []uint32 // len == len(docIDs)+1, byte range [posOffsets[i], posOffsets[i+1]) holds record i's deltas
	positionsBlob []byte
	lastDocID     rowid.RowID
}

func decodeBlock(buf []byte, prevLastDocID rowid.RowID, positionsEnabled bool) (*decodedBlock, error) {
	db := codec.NewDeserializeBuf(buf)
	n := db.DecodeUint32()

	blk := &decodedBlock{
		docIDs: make([]rowid.RowID, n),
		tfs:    make([]uint32, n),
	}
	prev := prevLastDocID
	for i := uint32(0); i < n; i++ {
		delta := db.DecodeUint64()
		prev += rowid.RowID(delta)
		blk.docIDs[i] = prev
	}
	for i := uint32(0); i < n; i++ {
		blk.tfs[i] = db.DecodeUint32()
	}
	if n > 0 {
		blk.lastDocID = blk.docIDs[n-1]
	} else {
		blk.lastDocID = prevLastDocID
	}

	if positionsEnabled {
		blk.posOffsets = make([]uint32, n+1)
		for i := uint32(0); i < n; i++ {
			blk.posOffsets[i+1] = db.DecodeUint32()
		}
		blk.positionsBlob = db.DecodeBuf()
	}

	if err := db.Error(); err != nil {
		return nil, err
	}
	return blk, nil
}

// positions decodes record i's positions from the retained blob.
func (blk *decodedBlock) positions(i int) []rowid.Position {
	if blk.positionsBlob == nil {
		return nil
	}
	start, end := blk.posOffsets[i], blk.posOffsets[i+1]
	db := codec.NewDeserializeBuf(blk.positionsBlob[start:end])
	positions := make([]rowid.Position, 0, blk.tfs[i])
	var prev rowid.Position
	for db.Len() > 0 {
		prev += rowid.Position(db.DecodeUint32())
		positions = append(positions, prev)
	}
	return positions
}
