package posting

import (
	"github.com/neganovalexey/ftindex/codec"
	"github.com/neganovalexey/ftindex/rowid"
)

// SkipEntry is the per-block index: the block's last docid and its byte
// offset, letting SeekDoc jump directly to the block that might contain the
// target instead of scanning every block.
type SkipEntry struct {
	LastDocID rowid.RowID
	Offset    uint32
	Length    uint32
}

// EncodeSkipList serializes entries as: count varint; per entry, a docid delta
// (from the previous entry's LastDocID, first from zero), a byte offset varint,
// and a length varint.
func EncodeSkipList(entries []SkipEntry) []byte {
	sb := codec.NewSerializeBuf(16 * len(entries))
	sb.EncodeUint32(uint32(len(entries)))
	var prev rowid.RowID
	for _, e := range entries {
		sb.EncodeUint64(uint64(e.LastDocID - prev))
		sb.EncodeUint32(e.Offset)
		sb.EncodeUint32(e.Length)
		prev = e.LastDocID
	}
	return sb.Bytes()
}

// DecodeSkipList reverses EncodeSkipList and reports how many bytes it consumed.
func DecodeSkipList(buf []byte) ([]SkipEntry, int, error) {
	db := codec.NewDeserializeBuf(buf)
	n := db.DecodeUint32()
	entries := make([]SkipEntry, n)
	var prev rowid.RowID
	for i := uint32(0); i < n; i++ {
		delta := db.DecodeUint64()
		prev += rowid.RowID(delta)
		entries[i].LastDocID = prev
		entries[i].Offset = db.DecodeUint32()
		entries[i].Length = db.DecodeUint32()
	}
	if err := db.Error(); err != nil {
		return nil, 0, err
	}
	return entries, len(buf) - db.Len(), nil
}
