// Package wire implements the seven protobuf wire primitives: varint,
// zig-zag, little-endian fixed32/fixed64, length-delimited framing, tag
// decoding and the wire-type-indexed skip table. Every function here is a
// pure transform over a byte buffer; none of them allocate more than the
// output they produce, and none retain state between calls.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/protox-go/protox/internal/perr"
)

// Type is the 3-bit wire type carried in the low bits of every tag.
type Type uint8

const (
	Varint     Type = 0
	Fixed64    Type = 1
	Length     Type = 2
	StartGroup Type = 3
	EndGroup   Type = 4
	Fixed32    Type = 5
)

// MaxVarintLen is the longest a base-128 encoding of a uint64 can be.
const MaxVarintLen = 10

// EncodeVarint appends the base-128 little-endian encoding of v to dst and
// returns the extended slice. It never writes more than MaxVarintLen bytes
// and the final byte always has its continuation bit clear.
func EncodeVarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// DecodeVarint reads a base-128 varint from buf starting at pos and returns
// the decoded value and the position just past it.
func DecodeVarint(buf []byte, pos int) (uint64, int, error) {
	if pos >= len(buf) {
		return 0, pos, perr.TruncatedVarint()
	}
	var v uint64
	var shift uint
	for i := 0; i < MaxVarintLen; i++ {
		if pos+i >= len(buf) {
			return 0, pos, perr.TruncatedVarint()
		}
		b := buf[pos+i]
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, pos + i + 1, nil
		}
		shift += 7
	}
	return 0, pos, perr.VarintOverflow()
}

// EncodeZigZag32 maps a signed 32-bit integer to an unsigned value whose
// magnitude tracks the original's, so small negatives encode compactly.
func EncodeZigZag32(x int32) uint64 {
	return uint64(uint32((x << 1) ^ (x >> 31)))
}

// EncodeZigZag64 is the 64-bit analogue of EncodeZigZag32.
func EncodeZigZag64(x int64) uint64 {
	return uint64((x << 1) ^ (x >> 63))
}

// DecodeZigZag reverses EncodeZigZag32/64.
func DecodeZigZag(x uint64) int64 {
	return int64(x>>1) ^ -int64(x&1)
}

// EncodeInt64 reinterprets a (possibly negative) int32/int64 as its 64-bit
// two's complement unsigned form, per the protobuf int32/int64 wire
// contract: negatives always occupy the full 10-byte varint.
func EncodeInt64(x int64) uint64 { return uint64(x) }

// DecodeInt64 reverses EncodeInt64.
func DecodeInt64(v uint64) int64 { return int64(v) }

// EncodeFixed32 appends the little-endian 4-byte encoding of v.
func EncodeFixed32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// DecodeFixed32 reads 4 little-endian bytes from buf at pos.
func DecodeFixed32(buf []byte, pos int) (uint32, int, error) {
	if pos+4 > len(buf) {
		return 0, pos, perr.UnexpectedEOF("expected 4 bytes for fixed32, got %d", len(buf)-pos)
	}
	return binary.LittleEndian.Uint32(buf[pos : pos+4]), pos + 4, nil
}

// EncodeFixed64 appends the little-endian 8-byte encoding of v.
func EncodeFixed64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// DecodeFixed64 reads 8 little-endian bytes from buf at pos.
func DecodeFixed64(buf []byte, pos int) (uint64, int, error) {
	if pos+8 > len(buf) {
		return 0, pos, perr.UnexpectedEOF("expected 8 bytes for fixed64, got %d", len(buf)-pos)
	}
	return binary.LittleEndian.Uint64(buf[pos : pos+8]), pos + 8, nil
}

// EncodeFloat/EncodeDouble and their decode counterparts reuse the fixed32/
// fixed64 codecs over the IEEE-754 bit pattern.
func EncodeFloat(dst []byte, f float32) []byte {
	return EncodeFixed32(dst, math.Float32bits(f))
}

func DecodeFloat(buf []byte, pos int) (float32, int, error) {
	bits, next, err := DecodeFixed32(buf, pos)
	if err != nil {
		return 0, pos, err
	}
	return math.Float32frombits(bits), next, nil
}

func EncodeDouble(dst []byte, f float64) []byte {
	return EncodeFixed64(dst, math.Float64bits(f))
}

func DecodeDouble(buf []byte, pos int) (float64, int, error) {
	bits, next, err := DecodeFixed64(buf, pos)
	if err != nil {
		return 0, pos, err
	}
	return math.Float64frombits(bits), next, nil
}

// EncodeLengthDelimited appends a varint length prefix followed by data.
func EncodeLengthDelimited(dst []byte, data []byte) []byte {
	dst = EncodeVarint(dst, uint64(len(data)))
	return append(dst, data...)
}

// DecodeLengthDelimited reads a varint length followed by that many bytes.
// The returned slice aliases buf; callers that retain it beyond the
// lifetime of buf must copy it.
func DecodeLengthDelimited(buf []byte, pos int) ([]byte, int, error) {
	length, next, err := DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	end := next + int(length)
	if end < next || end > len(buf) {
		return nil, pos, perr.UnexpectedEOF("length-delimited field declares %d bytes, only %d available", length, len(buf)-next)
	}
	return buf[next:end], end, nil
}

// Tag is the (field number, wire type) pair decoded from the start of every
// serialized field.
type Tag struct {
	Number uint32
	Type   Type
}

// EncodeTag appends the varint-encoded tag for (number, wireType).
func EncodeTag(dst []byte, number uint32, wireType Type) []byte {
	return EncodeVarint(dst, uint64(number)<<3|uint64(wireType))
}

// DecodeTag reads a tag from buf at pos.
func DecodeTag(buf []byte, pos int) (Tag, int, error) {
	v, next, err := DecodeVarint(buf, pos)
	if err != nil {
		return Tag{}, pos, err
	}
	return Tag{Number: uint32(v >> 3), Type: Type(v & 0x7)}, next, nil
}

// Skip advances past the payload of a field of the given wire type without
// interpreting it, so the message driver can discard unknown fields.
func Skip(wireType Type, buf []byte, pos int) (int, error) {
	switch wireType {
	case Varint:
		_, next, err := DecodeVarint(buf, pos)
		return next, err
	case Fixed64:
		_, next, err := DecodeFixed64(buf, pos)
		return next, err
	case Length:
		_, next, err := DecodeLengthDelimited(buf, pos)
		return next, err
	case Fixed32:
		_, next, err := DecodeFixed32(buf, pos)
		return next, err
	case StartGroup, EndGroup:
		return pos, perr.GroupWireTypeUnsupported()
	default:
		return pos, perr.WireTypeMismatch("unknown wire type %d", wireType)
	}
}
