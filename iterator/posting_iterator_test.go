package iterator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/rowid"
)

func TestPostingIteratorSeekDocFindsSmallestGE(t *testing.T) {
	it := buildPostingIterator(2, []doc{
		{id: 0, pos: []rowid.Position{0, 3}},
		{id: 2, pos: []rowid.Position{1}},
		{id: 5, pos: []rowid.Position{0}},
	})

	require.Equal(t, rowid.RowID(0), it.SeekDoc(0))
	require.Equal(t, uint32(2), it.GetCurrentTF())
	require.Equal(t, rowid.RowID(2), it.SeekDoc(1))
	require.Equal(t, uint32(1), it.GetCurrentTF())
	require.Equal(t, rowid.RowID(5), it.SeekDoc(3))
	require.Equal(t, rowid.Invalid, it.SeekDoc(6))
}

func TestPostingIteratorIterationYieldsStrictlyIncreasingDocs(t *testing.T) {
	it := buildPostingIterator(3, []doc{
		{id: 0, pos: []rowid.Position{0}},
		{id: 1, pos: []rowid.Position{0}},
		{id: 4, pos: []rowid.Position{0}},
		{id: 9, pos: []rowid.Position{0}},
	})

	var got []rowid.RowID
	for d := it.SeekDoc(0); d != rowid.Invalid; d = it.SeekDoc(d + 1) {
		got = append(got, d)
	}
	require.Equal(t, []rowid.RowID{0, 1, 4, 9}, got)
}

func TestPostingIteratorSeekPositionOrderedAndOutOfOrderProbe(t *testing.T) {
	it := buildPostingIterator(128, []doc{
		{id: 0, pos: []rowid.Position{0, 3, 6, 9, 12, 15, 18}},
	})
	require.Equal(t, rowid.RowID(0), it.SeekDoc(0))
	require.Equal(t, uint32(7), it.GetCurrentTF())

	require.Equal(t, rowid.Position(0), it.SeekPosition(0))
	require.Equal(t, rowid.Position(6), it.SeekPosition(4))
	require.Equal(t, rowid.InvalidPosition, it.SeekPosition(19))
	// out-of-order probe still correct since positions decode fresh each call.
	require.Equal(t, rowid.Position(3), it.SeekPosition(1))
}

func TestPostingIteratorMergesMultipleSegmentsAscendingByBase(t *testing.T) {
	type segment = struct {
		base rowid.RowID
		docs []doc
	}
	// segments passed out of Base order; NewPostingIterator must still merge
	// them ascending.
	merged := buildPostingIteratorAcrossSegments(128,
		segment{base: 5, docs: []doc{{id: 5, pos: []rowid.Position{0}}}},
		segment{base: 0, docs: []doc{{id: 0, pos: []rowid.Position{0}}, {id: 1, pos: []rowid.Position{0}}}},
	)
	require.Equal(t, rowid.RowID(0), merged.SeekDoc(0))
	require.Equal(t, rowid.RowID(1), merged.SeekDoc(1))
	require.Equal(t, rowid.RowID(5), merged.SeekDoc(2))
	require.Equal(t, rowid.Invalid, merged.SeekDoc(6))
}
