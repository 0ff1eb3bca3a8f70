package posting

import "github.com/neganovalexey/ftindex/rowid"

// Rebuild decodes src's blocks and replays every (docid, position) occurrence
// through a fresh Writer via AddPosition, in the same order they were
// originally appended. The result is an unsealed Writer ready to accept more
// AddPosition calls, the shape Load needs to resume ingestion against a chunk
// that was written with spill enabled.
func Rebuild(src Source, blockSize int) (*Writer, error) {
	w := NewWriter(Config{BlockSize: blockSize, PositionsEnabled: src.PositionsEnabled()})

	prevLastDocID := rowid.RowID(0)
	for _, entry := range src.SkipList() {
		blk, err := decodeBlock(src.BlockBytes(entry.Offset, entry.Length), prevLastDocID, src.PositionsEnabled())
		if err != nil {
			return nil, err
		}
		for i, docid := range blk.docIDs {
			if src.PositionsEnabled() {
				for _, pos := range blk.positions(i) {
					w.AddPosition(docid, pos)
				}
			} else {
				for n := uint32(0); n < blk.tfs[i]; n++ {
					w.AddPosition(docid, 0)
				}
			}
		}
		prevLastDocID = entry.LastDocID
	}
	return w, nil
}
