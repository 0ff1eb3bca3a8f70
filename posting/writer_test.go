package posting_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/posting"
	"github.com/neganovalexey/ftindex/rowid"
)

func TestWriterBasicFlushAndSeal(t *testing.T) {
	w := posting.NewWriter(posting.Config{BlockSize: 2, PositionsEnabled: true})
	w.AddPosition(0, 0)
	w.AddPosition(0, 3)
	w.AddPosition(1, 0)
	w.AddPosition(2, 1)
	w.AddPosition(2, 2)

	require.Equal(t, uint32(3), w.DF())
	require.Equal(t, uint64(5), w.TTF())
	require.Equal(t, rowid.RowID(2), w.LastDocID())

	w.Seal()
	require.True(t, w.Sealed())
	require.Len(t, w.SkipList(), 2) // block size 2 -> records {0,1} then {2}
	require.Equal(t, rowid.RowID(1), w.SkipList()[0].LastDocID)
	require.Equal(t, rowid.RowID(2), w.SkipList()[1].LastDocID)
}

func TestWriterOutOfOrderDocIDPanics(t *testing.T) {
	w := posting.NewWriter(posting.Config{PositionsEnabled: true})
	w.AddPosition(5, 0)
	require.Panics(t, func() { w.AddPosition(3, 0) })
}

func TestWriterOutOfOrderPositionPanics(t *testing.T) {
	w := posting.NewWriter(posting.Config{PositionsEnabled: true})
	w.AddPosition(5, 3)
	require.Panics(t, func() { w.AddPosition(5, 2) })
}

func TestWriterSnapshotSeesUnflushedTail(t *testing.T) {
	w := posting.NewWriter(posting.Config{BlockSize: 128, PositionsEnabled: true})
	w.AddPosition(0, 0)
	w.AddPosition(1, 0)

	src := w.Snapshot()
	require.Len(t, src.SkipList(), 1)
	require.Equal(t, rowid.RowID(1), src.SkipList()[0].LastDocID)

	// writer itself is unaffected; it can keep accepting postings.
	require.False(t, w.Sealed())
	w.AddPosition(2, 0)
	w.Seal()
	require.Equal(t, uint32(3), w.DF())
}

func TestWriterDeterministicBytesRegardlessOfBlockBoundary(t *testing.T) {
	build := func(blockSize int) []byte {
		w := posting.NewWriter(posting.Config{BlockSize: blockSize, PositionsEnabled: true})
		for d := rowid.RowID(0); d < 10; d++ {
			w.AddPosition(d, rowid.Position(d))
			w.AddPosition(d, rowid.Position(d+100))
		}
		w.Seal()
		return w.Blocks()
	}
	// the same logical postings under two different block sizes: each block size
	// yields non-empty bytes, and building twice with it yields identical bytes.
	require.NotEmpty(t, build(3))
	require.NotEmpty(t, build(128))
	require.Equal(t, build(3), build(3))
	require.Equal(t, build(128), build(128))
}
