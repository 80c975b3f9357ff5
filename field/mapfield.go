package field

import (
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/wire"
)

// isValidMapKey reports whether d is one of the scalar kinds the protobuf
// language spec allows as map keys: integer variants, sint variants, fixed variants,
// string and bool. Floating-point and bytes are rejected at construction.
func isValidMapKey(d Descriptor) bool {
	switch d.(type) {
	case *Int32, *Int64, *UInt32, *UInt64, *SInt32, *SInt64,
		*Fixed32, *Fixed64, *SFixed32, *SFixed64, *Bool, *String:
		return true
	default:
		return false
	}
}

// MapField represents a map<key, value> field. On the wire it is a repeated
// length-delimited submessage with key=1, value=2; that submessage is never
// exposed as a named type.
type MapField struct {
	base
	key   Descriptor
	value Descriptor
}

func NewMapField(number uint32, key, value Descriptor) (*MapField, error) {
	b, err := newBase(number, false, nil, false)
	if err != nil {
		return nil, err
	}
	if !isValidMapKey(key) {
		return nil, perr.FieldValidationError("field %d: map key type is not allowed (floating-point and bytes keys are rejected)", number)
	}
	key.BindName("key")
	value.BindName("value")
	return &MapField{base: b, key: key, value: value}, nil
}

func (m *MapField) Key() Descriptor      { return m.key }
func (m *MapField) Value() Descriptor    { return m.value }
func (m *MapField) WireType() wire.Type  { return wire.Length }

func (m *MapField) Validate(v interface{}) error {
	entry, ok := v.([2]interface{})
	if !ok {
		return perr.ValueError("expected a [key, value] pair for map field %q, got %T", m.name, v)
	}
	if err := m.key.Validate(entry[0]); err != nil {
		return err
	}
	return m.value.Validate(entry[1])
}

// Encode encodes every entry of the map, one length-delimited submessage
// per entry. v must be map[interface{}]interface{}; iteration order (and
// therefore wire order) is unspecified, matching the underlying Go map.
func (m *MapField) Encode(dst []byte, v interface{}) ([]byte, error) {
	entries, ok := v.(map[interface{}]interface{})
	if !ok {
		return nil, perr.ValueError("expected a map for field %q, got %T", m.name, v)
	}
	for k, val := range entries {
		keyPayload, err := m.key.Encode(nil, k)
		if err != nil {
			return nil, err
		}
		valPayload, err := m.value.Encode(nil, val)
		if err != nil {
			return nil, err
		}
		entry := append(append([]byte{}, keyPayload...), valPayload...)
		dst = header(dst, m.number, wire.Length)
		dst = wire.EncodeLengthDelimited(dst, entry)
	}
	return dst, nil
}

// DecodeValue decodes a single map entry and returns it as a [2]interface{}
// {key, value}; the message driver inserts/overwrites the destination map.
func (m *MapField) DecodeValue(buf []byte, pos int, strict bool) (interface{}, int, error) {
	payload, next, err := wire.DecodeLengthDelimited(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	var key, value interface{}
	p := 0
	for p < len(payload) {
		tag, n, err := wire.DecodeTag(payload, p)
		if err != nil {
			return nil, pos, err
		}
		switch tag.Number {
		case 1:
			if tag.Type != m.key.WireType() {
				return nil, pos, perr.WireTypeMismatch("map key field has wire type %d, expected %d", tag.Type, m.key.WireType())
			}
			key, n, err = m.key.DecodeValue(payload, n, strict)
		case 2:
			if tag.Type != m.value.WireType() {
				return nil, pos, perr.WireTypeMismatch("map value field has wire type %d, expected %d", tag.Type, m.value.WireType())
			}
			value, n, err = m.value.DecodeValue(payload, n, strict)
		default:
			n, err = wire.Skip(tag.Type, payload, n)
		}
		if err != nil {
			return nil, pos, err
		}
		p = n
	}
	if key == nil {
		key, _ = zeroValue(m.key)
	}
	if value == nil {
		value, _ = zeroValue(m.value)
	}
	return [2]interface{}{key, value}, next, nil
}

// zeroValue returns the protobuf zero value for a scalar key/value
// descriptor, used when a map entry omits the default-valued half.
func zeroValue(d Descriptor) (interface{}, bool) {
	switch d.(type) {
	case *String:
		return "", true
	case *Bytes:
		return []byte(nil), true
	case *Bool:
		return false, true
	case *Int32, *SInt32, *SFixed32:
		return int32(0), true
	case *Int64, *SInt64, *SFixed64:
		return int64(0), true
	case *UInt32, *Fixed32:
		return uint32(0), true
	case *UInt64, *Fixed64:
		return uint64(0), true
	case *Float:
		return float32(0), true
	case *Double:
		return float64(0), true
	default:
		return nil, false
	}
}
