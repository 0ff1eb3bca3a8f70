package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/codec"
)

func TestSerializeRoundTrip(t *testing.T) {
	sb := codec.NewSerializeBuf(64)
	sb.EncodeStr("fst")
	sb.EncodeUint64(1<<40 + 7)
	sb.EncodeUint32(42)
	sb.EncodeFixedUint64(0xdeadbeef)
	sb.EncodeFixedUint32(123)
	sb.EncodeFixedUint16(9)
	sb.EncodeFixedUint8(3)
	sb.EncodeBool(true)
	sb.EncodeBool(false)
	sb.EncodeInt64(-99)
	sb.EncodeBuf([]byte("blockbytes"))

	db := codec.NewDeserializeBuf(sb.Bytes())
	require.Equal(t, "fst", db.DecodeStr())
	require.Equal(t, uint64(1<<40+7), db.DecodeUint64())
	require.Equal(t, uint32(42), db.DecodeUint32())
	require.Equal(t, uint64(0xdeadbeef), db.DecodeFixedUint64())
	require.Equal(t, uint32(123), db.DecodeFixedUint32())
	require.Equal(t, uint16(9), db.DecodeFixedUint16())
	require.Equal(t, uint8(3), db.DecodeFixedUint8())
	require.True(t, db.DecodeBool())
	require.False(t, db.DecodeBool())
	require.Equal(t, int64(-99), db.DecodeInt64())
	require.Equal(t, []byte("blockbytes"), db.DecodeBuf())
	require.NoError(t, db.Error())
	require.Equal(t, 0, db.Len())
}

func TestDeserializeTruncatedSetsError(t *testing.T) {
	sb := codec.NewSerializeBuf(8)
	sb.EncodeFixedUint32(7)
	db := codec.NewDeserializeBuf(sb.Bytes()[:2])
	db.DecodeFixedUint32()
	require.Error(t, db.Error())

	db2 := codec.NewDeserializeBuf(nil)
	db2.DecodeUint64()
	require.Error(t, db2.Error())
}
