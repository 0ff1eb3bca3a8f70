package posting

import "github.com/neganovalexey/ftindex/rowid"

// BlockView exposes one decoded block's records to callers outside this
// package (the iterator package's PostingIterator), without exporting the
// block codec's internal representation.
type BlockView struct {
	blk *decodedBlock
}

// DecodeBlock decodes one block's bytes (as produced by a Writer's Blocks(),
// sliced by a SkipEntry's Offset/Length) given the previous block's last docid
// as the delta baseline.
func DecodeBlock(buf []byte, prevLastDocID rowid.RowID, positionsEnabled bool) (BlockView, error) {
	blk, err := decodeBlock(buf, prevLastDocID, positionsEnabled)
	if err != nil {
		return BlockView{}, err
	}
	return BlockView{blk: blk}, nil
}

// Len returns the number of records in the block.
func (v BlockView) Len() int {
	return len(v.blk.docIDs)
}

// DocID returns record i's docid.
func (v BlockView) DocID(i int) rowid.RowID {
	return v.blk.docIDs[i]
}

// TF returns record i's term frequency.
func (v BlockView) TF(i int) uint32 {
	return v.blk.tfs[i]
}

// Positions returns record i's positions (empty if the block was encoded
// without positions).
func (v BlockView) Positions(i int) []rowid.Position {
	return v.blk.positions(i)
}

// LastDocID returns the block's last record's docid, the delta baseline the
// next block's DecodeBlock call needs.
func (v BlockView) LastDocID() rowid.RowID {
	return v.blk.lastDocID
}
