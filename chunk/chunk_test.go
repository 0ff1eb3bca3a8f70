package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/chunk"
	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/posting"
	"github.com/neganovalexey/ftindex/rowid"
)

func TestChunkBuildOpenLookupRoundTrip(t *testing.T) {
	fstWriter := posting.NewWriter(posting.Config{BlockSize: 4, PositionsEnabled: true})
	for _, p := range []rowid.Position{0, 5, 9, 20} {
		fstWriter.AddPosition(0, p)
	}
	for _, p := range []rowid.Position{1, 2} {
		fstWriter.AddPosition(1, p)
	}
	fstWriter.Seal()

	automatonWriter := posting.NewWriter(posting.Config{BlockSize: 4, PositionsEnabled: true})
	automatonWriter.AddPosition(0, 4)
	automatonWriter.AddPosition(0, 8)
	automatonWriter.Seal()

	raw := chunk.Build(map[string]*posting.Writer{
		"fst":       fstWriter,
		"automaton": automatonWriter,
	}, true)

	c, err := chunk.Open(raw)
	require.NoError(t, err)
	require.True(t, c.PositionsEnabled())
	require.Len(t, c.Terms(), 2)

	src, ok := c.Lookup("fst")
	require.True(t, ok)
	require.Equal(t, uint32(2), src.DF())
	require.Len(t, src.SkipList(), 1)

	_, ok = c.Lookup("nope")
	require.False(t, ok)

	present := c.PresentDocIDs()
	require.Equal(t, uint64(2), present.GetCardinality())
	require.True(t, present.Contains(0))
	require.True(t, present.Contains(1))
	require.False(t, present.Contains(2))
}

func TestChunkOpenRejectsBadMagic(t *testing.T) {
	raw := chunk.Build(map[string]*posting.Writer{}, true)
	corrupted := append([]byte{}, raw...)
	corrupted[0] ^= 0xff
	_, err := chunk.Open(corrupted)
	require.ErrorIs(t, err, codeerrors.ErrFormat)
}

func TestChunkOpenRejectsBadCRC(t *testing.T) {
	raw := chunk.Build(map[string]*posting.Writer{}, true)
	corrupted := append([]byte{}, raw...)
	corrupted[len(corrupted)-1] ^= 0xff
	_, err := chunk.Open(corrupted)
	require.ErrorIs(t, err, codeerrors.ErrFormat)
}

func TestChunkOpenRejectsTruncated(t *testing.T) {
	_, err := chunk.Open([]byte{1, 2, 3})
	require.ErrorIs(t, err, codeerrors.ErrFormat)
}
