package field

import (
	"math"

	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/wire"
)

// Int32 is the int32 scalar field type: encoded as a varint of the 64-bit
// two's complement reinterpretation of the value, per the protobuf
// int32/int64 wire contract.
type Int32 struct {
	base
}

func NewInt32(number uint32, required bool, def ...int32) (*Int32, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &Int32{base: b}, nil
}

func (f *Int32) WireType() wire.Type { return wire.Varint }

func (f *Int32) Validate(v interface{}) error {
	x, ok := asInt64(v)
	if !ok {
		return perr.ValueError("expected an integer for field %q, got %T", f.name, v)
	}
	if x < math.MinInt32 || x > math.MaxInt32 {
		return perr.ValueError("value %d out of range for int32 field %q", x, f.name)
	}
	return nil
}

func (f *Int32) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asInt64(v)
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, wire.EncodeInt64(x)), nil
}

func (f *Int32) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return int32(wire.DecodeInt64(v)), next, nil
}

// Int64 is the int64 scalar field type.
type Int64 struct{ base }

func NewInt64(number uint32, required bool, def ...int64) (*Int64, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &Int64{base: b}, nil
}

func (f *Int64) WireType() wire.Type { return wire.Varint }

func (f *Int64) Validate(v interface{}) error {
	if _, ok := asInt64(v); !ok {
		return perr.ValueError("expected an integer for field %q, got %T", f.name, v)
	}
	return nil
}

func (f *Int64) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asInt64(v)
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, wire.EncodeInt64(x)), nil
}

func (f *Int64) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return wire.DecodeInt64(v), next, nil
}

// UInt32 is the uint32 scalar field type.
type UInt32 struct{ base }

func NewUInt32(number uint32, required bool, def ...uint32) (*UInt32, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &UInt32{base: b}, nil
}

func (f *UInt32) WireType() wire.Type { return wire.Varint }

func (f *UInt32) Validate(v interface{}) error {
	x, ok := asUint64(v)
	if !ok {
		return perr.ValueError("expected an unsigned integer for field %q, got %T", f.name, v)
	}
	if x > math.MaxUint32 {
		return perr.ValueError("value %d out of range for uint32 field %q", x, f.name)
	}
	return nil
}

func (f *UInt32) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asUint64(v)
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, x), nil
}

func (f *UInt32) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return uint32(v), next, nil
}

// UInt64 is the uint64 scalar field type.
type UInt64 struct{ base }

func NewUInt64(number uint32, required bool, def ...uint64) (*UInt64, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &UInt64{base: b}, nil
}

func (f *UInt64) WireType() wire.Type { return wire.Varint }

func (f *UInt64) Validate(v interface{}) error {
	if _, ok := asUint64(v); !ok {
		return perr.ValueError("expected an unsigned integer for field %q, got %T", f.name, v)
	}
	return nil
}

func (f *UInt64) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asUint64(v)
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, x), nil
}

func (f *UInt64) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return v, next, nil
}

// SInt32 is the zig-zag encoded sint32 scalar field type.
type SInt32 struct{ base }

func NewSInt32(number uint32, required bool, def ...int32) (*SInt32, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &SInt32{base: b}, nil
}

func (f *SInt32) WireType() wire.Type { return wire.Varint }

func (f *SInt32) Validate(v interface{}) error {
	x, ok := asInt64(v)
	if !ok {
		return perr.ValueError("expected an integer for field %q, got %T", f.name, v)
	}
	if x < math.MinInt32 || x > math.MaxInt32 {
		return perr.ValueError("value %d out of range for sint32 field %q", x, f.name)
	}
	return nil
}

func (f *SInt32) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asInt64(v)
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, wire.EncodeZigZag32(int32(x))), nil
}

func (f *SInt32) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return int32(wire.DecodeZigZag(v)), next, nil
}

// SInt64 is the zig-zag encoded sint64 scalar field type.
type SInt64 struct{ base }

func NewSInt64(number uint32, required bool, def ...int64) (*SInt64, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &SInt64{base: b}, nil
}

func (f *SInt64) WireType() wire.Type { return wire.Varint }

func (f *SInt64) Validate(v interface{}) error {
	if _, ok := asInt64(v); !ok {
		return perr.ValueError("expected an integer for field %q, got %T", f.name, v)
	}
	return nil
}

func (f *SInt64) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asInt64(v)
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, wire.EncodeZigZag64(x)), nil
}

func (f *SInt64) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return wire.DecodeZigZag(v), next, nil
}

// Fixed32 is the fixed32 scalar field type (unsigned, 4 little-endian bytes).
type Fixed32 struct{ base }

func NewFixed32(number uint32, required bool, def ...uint32) (*Fixed32, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &Fixed32{base: b}, nil
}

func (f *Fixed32) WireType() wire.Type { return wire.Fixed32 }

func (f *Fixed32) Validate(v interface{}) error {
	x, ok := asUint64(v)
	if !ok || x > math.MaxUint32 {
		return perr.ValueError("expected a uint32 for field %q, got %v", f.name, v)
	}
	return nil
}

func (f *Fixed32) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asUint64(v)
	dst = header(dst, f.number, wire.Fixed32)
	return wire.EncodeFixed32(dst, uint32(x)), nil
}

func (f *Fixed32) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeFixed32(buf, pos)
	return v, next, err
}

// Fixed64 is the fixed64 scalar field type (unsigned, 8 little-endian bytes).
type Fixed64 struct{ base }

func NewFixed64(number uint32, required bool, def ...uint64) (*Fixed64, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &Fixed64{base: b}, nil
}

func (f *Fixed64) WireType() wire.Type { return wire.Fixed64 }

func (f *Fixed64) Validate(v interface{}) error {
	if _, ok := asUint64(v); !ok {
		return perr.ValueError("expected a uint64 for field %q, got %v", f.name, v)
	}
	return nil
}

func (f *Fixed64) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asUint64(v)
	dst = header(dst, f.number, wire.Fixed64)
	return wire.EncodeFixed64(dst, x), nil
}

func (f *Fixed64) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeFixed64(buf, pos)
	return v, next, err
}

// SFixed32 is the signed fixed32 scalar field type.
type SFixed32 struct{ base }

func NewSFixed32(number uint32, required bool, def ...int32) (*SFixed32, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &SFixed32{base: b}, nil
}

func (f *SFixed32) WireType() wire.Type { return wire.Fixed32 }

func (f *SFixed32) Validate(v interface{}) error {
	x, ok := asInt64(v)
	if !ok || x < math.MinInt32 || x > math.MaxInt32 {
		return perr.ValueError("expected an int32 for field %q, got %v", f.name, v)
	}
	return nil
}

func (f *SFixed32) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asInt64(v)
	dst = header(dst, f.number, wire.Fixed32)
	return wire.EncodeFixed32(dst, uint32(int32(x))), nil
}

func (f *SFixed32) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeFixed32(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return int32(v), next, nil
}

// SFixed64 is the signed fixed64 scalar field type.
type SFixed64 struct{ base }

func NewSFixed64(number uint32, required bool, def ...int64) (*SFixed64, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &SFixed64{base: b}, nil
}

func (f *SFixed64) WireType() wire.Type { return wire.Fixed64 }

func (f *SFixed64) Validate(v interface{}) error {
	if _, ok := asInt64(v); !ok {
		return perr.ValueError("expected an int64 for field %q, got %v", f.name, v)
	}
	return nil
}

func (f *SFixed64) Encode(dst []byte, v interface{}) ([]byte, error) {
	x, _ := asInt64(v)
	dst = header(dst, f.number, wire.Fixed64)
	return wire.EncodeFixed64(dst, uint64(x)), nil
}

func (f *SFixed64) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeFixed64(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return int64(v), next, nil
}

// Bool is the bool scalar field type, encoded as a varint 0 or 1.
type Bool struct{ base }

func NewBool(number uint32, required bool, def ...bool) (*Bool, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &Bool{base: b}, nil
}

func (f *Bool) WireType() wire.Type { return wire.Varint }

func (f *Bool) Validate(v interface{}) error {
	if _, ok := v.(bool); !ok {
		return perr.ValueError("expected a bool for field %q, got %T", f.name, v)
	}
	return nil
}

func (f *Bool) Encode(dst []byte, v interface{}) ([]byte, error) {
	b, _ := v.(bool)
	var x uint64
	if b {
		x = 1
	}
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, x), nil
}

func (f *Bool) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return v != 0, next, nil
}

// MaxFloat bounds the magnitude accepted by the Float validator.
const MaxFloat = math.MaxFloat32

// Float is the float scalar field type (IEEE-754 single precision).
type Float struct{ base }

func NewFloat(number uint32, required bool, def ...float32) (*Float, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &Float{base: b}, nil
}

func (f *Float) WireType() wire.Type { return wire.Fixed32 }

func (f *Float) Validate(v interface{}) error {
	var x float64
	switch t := v.(type) {
	case float32:
		x = float64(t)
	case float64:
		x = t
	default:
		return perr.ValueError("expected a float for field %q, got %T", f.name, v)
	}
	if !math.IsNaN(x) && !math.IsInf(x, 0) && math.Abs(x) > MaxFloat {
		return perr.ValueError("value %v exceeds MAX_FLOAT for field %q", x, f.name)
	}
	return nil
}

func (f *Float) Encode(dst []byte, v interface{}) ([]byte, error) {
	x := toFloat32(v)
	dst = header(dst, f.number, wire.Fixed32)
	return wire.EncodeFloat(dst, x), nil
}

func (f *Float) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeFloat(buf, pos)
	return v, next, err
}

// Double is the double scalar field type (IEEE-754 double precision).
type Double struct{ base }

func NewDouble(number uint32, required bool, def ...float64) (*Double, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &Double{base: b}, nil
}

func (f *Double) WireType() wire.Type { return wire.Fixed64 }

func (f *Double) Validate(v interface{}) error {
	switch v.(type) {
	case float32, float64:
		return nil
	default:
		return perr.ValueError("expected a double for field %q, got %T", f.name, v)
	}
}

func (f *Double) Encode(dst []byte, v interface{}) ([]byte, error) {
	x := toFloat64(v)
	dst = header(dst, f.number, wire.Fixed64)
	return wire.EncodeDouble(dst, x), nil
}

func (f *Double) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeDouble(buf, pos)
	return v, next, err
}

// String is the string scalar field type.
type String struct{ base }

func NewString(number uint32, required bool, def ...string) (*String, error) {
	b, err := newBaseFrom(number, required, def)
	if err != nil {
		return nil, err
	}
	return &String{base: b}, nil
}

func (f *String) WireType() wire.Type { return wire.Length }

func (f *String) Validate(v interface{}) error {
	if _, ok := v.(string); !ok {
		return perr.ValueError("expected a string for field %q, got %T", f.name, v)
	}
	return nil
}

func (f *String) Encode(dst []byte, v interface{}) ([]byte, error) {
	s, _ := v.(string)
	dst = header(dst, f.number, wire.Length)
	return wire.EncodeLengthDelimited(dst, []byte(s)), nil
}

func (f *String) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	b, next, err := wire.DecodeLengthDelimited(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return string(b), next, nil
}

// Bytes is the bytes scalar field type.
type Bytes struct{ base }

func NewBytes(number uint32, required bool, def ...[]byte) (*Bytes, error) {
	var d []byte
	has := len(def) > 0
	if has {
		d = def[0]
	}
	b, err := newBase(number, required, d, has)
	if err != nil {
		return nil, err
	}
	return &Bytes{base: b}, nil
}

func (f *Bytes) WireType() wire.Type { return wire.Length }

func (f *Bytes) Validate(v interface{}) error {
	if _, ok := v.([]byte); !ok {
		return perr.ValueError("expected bytes for field %q, got %T", f.name, v)
	}
	return nil
}

func (f *Bytes) Encode(dst []byte, v interface{}) ([]byte, error) {
	b, _ := v.([]byte)
	dst = header(dst, f.number, wire.Length)
	return wire.EncodeLengthDelimited(dst, b), nil
}

func (f *Bytes) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	b, next, err := wire.DecodeLengthDelimited(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, next, nil
}

// --- helpers ---

// newBaseFrom builds a base from an optional single-element default slice,
// the idiom used throughout this file to emulate Python's keyword-optional
// default= parameter with a variadic Go argument.
func newBaseFrom[T any](number uint32, required bool, def []T) (base, error) {
	var d interface{}
	has := len(def) > 0
	if has {
		d = def[0]
	}
	return newBase(number, required, d, has)
}

func asInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	default:
		return 0, false
	}
}

func asUint64(v interface{}) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	default:
		return 0, false
	}
}

func toFloat32(v interface{}) float32 {
	switch x := v.(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
