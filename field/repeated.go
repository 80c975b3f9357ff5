package field

import (
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/wire"
)

// Repeated wraps a scalar, enum or message descriptor and adds the
// repeated-field encode/decode strategies. Packed is only valid for
// varint or fixed-width inner types; constructing a packed Repeated of a
// message, string or bytes field is a FieldValidationError.
type Repeated struct {
	base
	of     Descriptor
	packed bool
}

func NewRepeated(number uint32, of Descriptor, packed bool) (*Repeated, error) {
	b, err := newBase(number, false, nil, false)
	if err != nil {
		return nil, err
	}
	if packed {
		if _, isMsg := of.(*MessageField); isMsg {
			return nil, perr.FieldValidationError("field %d: packed repeated of message type is not allowed", number)
		}
		if of.WireType() == wire.Length {
			return nil, perr.FieldValidationError("field %d: packed repeated requires a fixed-width or varint inner type", number)
		}
	}
	return &Repeated{base: b, of: of, packed: packed}, nil
}

func (r *Repeated) Of() Descriptor   { return r.of }
func (r *Repeated) Packed() bool     { return r.packed }
func (r *Repeated) WireType() wire.Type {
	if r.packed {
		return wire.Length
	}
	return r.of.WireType()
}

// Validate checks a single element against the inner descriptor; validated
// containers (package container) call this once per mutation.
func (r *Repeated) Validate(v interface{}) error {
	return r.of.Validate(v)
}

// Encode encodes the entire collection. v must be a []interface{}.
func (r *Repeated) Encode(dst []byte, v interface{}) ([]byte, error) {
	values, ok := v.([]interface{})
	if !ok {
		return nil, perr.ValueError("expected a slice for repeated field %q, got %T", r.name, v)
	}
	if len(values) == 0 {
		return dst, nil
	}
	if !r.packed {
		for _, item := range values {
			var err error
			dst, err = r.of.Encode(dst, item)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	}
	hdrLen := len(wire.EncodeTag(nil, r.number, r.of.WireType()))
	var payload []byte
	for _, item := range values {
		full, err := r.of.Encode(nil, item)
		if err != nil {
			return nil, err
		}
		payload = append(payload, full[hdrLen:]...)
	}
	dst = header(dst, r.number, wire.Length)
	return wire.EncodeLengthDelimited(dst, payload), nil
}

// DecodeValue decodes a single unpacked element (the driver has already
// checked the wire type matches r.of.WireType()).
func (r *Repeated) DecodeValue(buf []byte, pos int, strict bool) (interface{}, int, error) {
	return r.of.DecodeValue(buf, pos, strict)
}

// DecodePacked decodes a packed length-delimited block into a slice of
// elements, consuming the block's own length prefix.
func (r *Repeated) DecodePacked(buf []byte, pos int, strict bool) ([]interface{}, int, error) {
	payload, next, err := wire.DecodeLengthDelimited(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	var values []interface{}
	inner := 0
	for inner < len(payload) {
		v, n, err := r.of.DecodeValue(payload, inner, strict)
		if err != nil {
			return nil, pos, err
		}
		values = append(values, v)
		inner = n
	}
	return values, next, nil
}
