package field

import (
	"math"

	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/wire"
)

// EnumField is encoded as a varint of the ordinal. Decoding an ordinal not
// present in the symbol table yields "absent" (the caller should omit the
// field from the value map), never a raw sentinel integer.
type EnumField struct {
	base
	byOrdinal map[int32]string
	byName    map[string]int32
}

// NewEnumField builds an enum field descriptor from a symbol table mapping
// declared names to their ordinals. Ordinals must fit in a signed 32-bit
// range; the constructor does not otherwise constrain them.
func NewEnumField(number uint32, required bool, symbols map[string]int32, def ...string) (*EnumField, error) {
	var d interface{}
	has := len(def) > 0
	if has {
		ord, ok := symbols[def[0]]
		if !ok {
			return nil, perr.FieldValidationError("default enum value %q is not a declared symbol", def[0])
		}
		d = ord
	}
	b, err := newBase(number, required, d, has)
	if err != nil {
		return nil, err
	}
	byOrdinal := make(map[int32]string, len(symbols))
	for name, ord := range symbols {
		if ord < math.MinInt32 || ord > math.MaxInt32 {
			return nil, perr.FieldValidationError("enum value %q=%d is outside the signed 32-bit range", name, ord)
		}
		byOrdinal[ord] = name
	}
	return &EnumField{base: b, byOrdinal: byOrdinal, byName: symbols}, nil
}

func (f *EnumField) WireType() wire.Type { return wire.Varint }

// NameOf returns the declared symbol for an ordinal, or "" if unknown.
func (f *EnumField) NameOf(ordinal int32) (string, bool) {
	name, ok := f.byOrdinal[ordinal]
	return name, ok
}

// OrdinalOf returns the ordinal for a declared symbol name.
func (f *EnumField) OrdinalOf(name string) (int32, bool) {
	ord, ok := f.byName[name]
	return ord, ok
}

func (f *EnumField) Validate(v interface{}) error {
	ord, ok := asInt64(v)
	if !ok {
		return perr.ValueError("expected an enum ordinal for field %q, got %T", f.name, v)
	}
	if _, ok := f.byOrdinal[int32(ord)]; !ok {
		return perr.FieldValidationError("%d is not a declared value of enum field %q", ord, f.name)
	}
	return nil
}

func (f *EnumField) Encode(dst []byte, v interface{}) ([]byte, error) {
	ord, _ := asInt64(v)
	dst = header(dst, f.number, wire.Varint)
	return wire.EncodeVarint(dst, wire.EncodeInt64(ord)), nil
}

// DecodeValue decodes the ordinal unconditionally; the message driver is
// responsible for checking NameOf and omitting the field on an unknown
// ordinal rather than storing it.
func (f *EnumField) DecodeValue(buf []byte, pos int, _ bool) (interface{}, int, error) {
	v, next, err := wire.DecodeVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	return int32(wire.DecodeInt64(v)), next, nil
}
