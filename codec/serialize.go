// Package codec implements the byte-level encode/decode primitives the posting
// format and chunk footer are built from: a growing serialize buffer and a
// cursor-based deserialize buffer, both varint-based for the delta-compressible
// integers postings are made of.
package codec

import (
	"encoding/binary"
	"unsafe"
)

// SerializeBuf accumulates encoded bytes for a posting block, a term dictionary
// entry, or a chunk footer.
type SerializeBuf struct {
	buf []byte
}

// DeserializeBuf reads back what a SerializeBuf produced, tracking a decode error
// so callers can check it once at the end of a decode sequence instead of after
// every field.
type DeserializeBuf struct {
	buf []byte
	err error
}

// NewSerializeBuf returns an empty buffer with capacity hint n.
func NewSerializeBuf(n int) *SerializeBuf {
	return &SerializeBuf{buf: make([]byte, 0, n)}
}

// Bytes returns the bytes written so far.
func (sb *SerializeBuf) Bytes() []byte {
	return sb.buf
}

// Len returns the number of bytes written so far.
func (sb *SerializeBuf) Len() int {
	return len(sb.buf)
}

// WriteRaw appends b without any length prefix or encoding.
func (sb *SerializeBuf) WriteRaw(b []byte) {
	sb.buf = append(sb.buf, b...)
}

// EncodeBuf encodes b as a length-prefixed byte string.
func (sb *SerializeBuf) EncodeBuf(b []byte) {
	sb.EncodeUint64(uint64(len(b)))
	sb.buf = append(sb.buf, b...)
}

// EncodeStr encodes s as a length-prefixed byte string.
func (sb *SerializeBuf) EncodeStr(s string) {
	sb.EncodeBuf(*(*[]byte)(unsafe.Pointer(&s)))
}

// EncodeUint64 varint-encodes x.
func (sb *SerializeBuf) EncodeUint64(x uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], x)
	sb.buf = append(sb.buf, tmp[:n]...)
}

// EncodeUint32 varint-encodes x.
func (sb *SerializeBuf) EncodeUint32(x uint32) {
	sb.EncodeUint64(uint64(x))
}

// EncodeInt64 zigzag-varint-encodes x, for values that can be negative (position
// and docid deltas are never negative, but block metadata sometimes is).
func (sb *SerializeBuf) EncodeInt64(x int64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutVarint(tmp[:], x)
	sb.buf = append(sb.buf, tmp[:n]...)
}

// EncodeFixedUint64 encodes x as 8 big-endian bytes.
func (sb *SerializeBuf) EncodeFixedUint64(x uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], x)
	sb.buf = append(sb.buf, tmp[:]...)
}

// EncodeFixedUint32 encodes x as 4 big-endian bytes.
func (sb *SerializeBuf) EncodeFixedUint32(x uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], x)
	sb.buf = append(sb.buf, tmp[:]...)
}

// EncodeFixedUint16 encodes x as 2 big-endian bytes.
func (sb *SerializeBuf) EncodeFixedUint16(x uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], x)
	sb.buf = append(sb.buf, tmp[:]...)
}

// EncodeFixedUint8 appends x as a single byte.
func (sb *SerializeBuf) EncodeFixedUint8(x uint8) {
	sb.buf = append(sb.buf, x)
}

// EncodeBool appends a single byte, 1 for true.
func (sb *SerializeBuf) EncodeBool(x bool) {
	if x {
		sb.buf = append(sb.buf, 1)
		return
	}
	sb.buf = append(sb.buf, 0)
}

// NewDeserializeBuf wraps buf for sequential decoding.
func NewDeserializeBuf(buf []byte) *DeserializeBuf {
	return &DeserializeBuf{buf: buf}
}

// Error returns the first decode error encountered, if any.
func (db *DeserializeBuf) Error() error {
	return db.err
}

// SetError records a decode failure. Once set, subsequent decode calls are no-ops
// returning zero values, so a caller can decode a whole record and check Error()
// once at the end.
func (db *DeserializeBuf) SetError(msg string) {
	if db.err == nil {
		db.err = decodeError(msg)
	}
}

// Len returns the number of bytes left to decode.
func (db *DeserializeBuf) Len() int {
	return len(db.buf)
}

// Bytes returns the bytes left to decode, without consuming them.
func (db *DeserializeBuf) Bytes() []byte {
	return db.buf
}

// DecodeBuf extracts a length-prefixed byte string. The returned slice aliases the
// underlying buffer; callers that need to retain it beyond the buffer's lifetime
// must copy it.
func (db *DeserializeBuf) DecodeBuf() []byte {
	if db.err != nil {
		return nil
	}
	l, n := binary.Uvarint(db.buf)
	if n <= 0 {
		db.SetError("codec: cannot decode length prefix")
		return nil
	}
	total := n + int(l)
	if total < n || len(db.buf) < total {
		db.SetError("codec: not enough bytes for length-prefixed value")
		return nil
	}
	b := db.buf[n:total]
	db.buf = db.buf[total:]
	return b
}

// DecodeStr extracts a length-prefixed string, aliasing the underlying buffer.
func (db *DeserializeBuf) DecodeStr() string {
	b := db.DecodeBuf()
	if db.err != nil {
		return ""
	}
	return string(b)
}

// DecodeUint64 decodes a varint-encoded uint64.
func (db *DeserializeBuf) DecodeUint64() uint64 {
	if db.err != nil {
		return 0
	}
	v, n := binary.Uvarint(db.buf)
	if n <= 0 {
		db.SetError("codec: cannot decode uint64")
		return 0
	}
	db.buf = db.buf[n:]
	return v
}

// DecodeUint32 decodes a varint-encoded uint32.
func (db *DeserializeBuf) DecodeUint32() uint32 {
	v := db.DecodeUint64()
	if v > 1<<32-1 {
		db.SetError("codec: uint32 value out of range")
		return 0
	}
	return uint32(v)
}

// DecodeInt64 decodes a zigzag-varint-encoded int64.
func (db *DeserializeBuf) DecodeInt64() int64 {
	if db.err != nil {
		return 0
	}
	v, n := binary.Varint(db.buf)
	if n <= 0 {
		db.SetError("codec: cannot decode int64")
		return 0
	}
	db.buf = db.buf[n:]
	return v
}

// DecodeFixedUint64 decodes 8 big-endian bytes.
func (db *DeserializeBuf) DecodeFixedUint64() uint64 {
	if db.err != nil {
		return 0
	}
	if len(db.buf) < 8 {
		db.SetError("codec: not enough bytes for fixed uint64")
		return 0
	}
	v := binary.BigEndian.Uint64(db.buf)
	db.buf = db.buf[8:]
	return v
}

// DecodeFixedUint32 decodes 4 big-endian bytes.
func (db *DeserializeBuf) DecodeFixedUint32() uint32 {
	if db.err != nil {
		return 0
	}
	if len(db.buf) < 4 {
		db.SetError("codec: not enough bytes for fixed uint32")
		return 0
	}
	v := binary.BigEndian.Uint32(db.buf)
	db.buf = db.buf[4:]
	return v
}

// DecodeFixedUint16 decodes 2 big-endian bytes.
func (db *DeserializeBuf) DecodeFixedUint16() uint16 {
	if db.err != nil {
		return 0
	}
	if len(db.buf) < 2 {
		db.SetError("codec: not enough bytes for fixed uint16")
		return 0
	}
	v := binary.BigEndian.Uint16(db.buf)
	db.buf = db.buf[2:]
	return v
}

// DecodeFixedUint8 decodes a single byte.
func (db *DeserializeBuf) DecodeFixedUint8() uint8 {
	if db.err != nil {
		return 0
	}
	if len(db.buf) < 1 {
		db.SetError("codec: not enough bytes for fixed uint8")
		return 0
	}
	v := db.buf[0]
	db.buf = db.buf[1:]
	return v
}

// DecodeBool decodes a single byte, non-zero meaning true.
func (db *DeserializeBuf) DecodeBool() bool {
	return db.DecodeFixedUint8() != 0
}

type decodeError string

func (e decodeError) Error() string { return string(e) }
