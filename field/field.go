// Package field implements the per-scalar-type and composite (repeated,
// map, enum, message) field descriptors layered over package wire. Each
// descriptor knows how to encode a value with its header, decode a raw
// value from a buffer, and validate a candidate value before it is stored
// in a message instance.
package field

import (
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/wire"
)

// MinFieldNumber/MaxFieldNumber/reserved range bound valid field numbers.
const (
	MinFieldNumber  = 1
	MaxFieldNumber  = 1<<29 - 1
	reservedRangeLo = 19000
	reservedRangeHi = 19999
)

// ValidateNumber enforces the field-number invariant from the data model:
// an integer in [1, 2^29-1] excluding [19000, 19999].
func ValidateNumber(number uint32) error {
	if number < MinFieldNumber || number > MaxFieldNumber {
		return perr.FieldValidationError("field number %d out of range [%d, %d]", number, MinFieldNumber, MaxFieldNumber)
	}
	if number >= reservedRangeLo && number <= reservedRangeHi {
		return perr.FieldValidationError("field number %d falls in the reserved range [%d, %d]", number, reservedRangeLo, reservedRangeHi)
	}
	return nil
}

// Descriptor is implemented by every field kind: scalars, Repeated,
// MapField, EnumField and MessageField.
//
// Encode appends the field's wire representation (including its own tag
// header, or headers for each element of a collection) to dst.
//
// DecodeValue decodes the value starting at pos, after the driver has
// already consumed the leading tag. strict is threaded through to nested
// message decodes.
//
// Validate reports whether v is an acceptable value to store for this
// field; it is invoked on every write through a message accessor or
// through a validated container (package container).
type Descriptor interface {
	Number() uint32
	WireType() wire.Type
	Name() string
	BindName(name string)
	IsRequired() bool
	DefaultValue() (interface{}, bool)
	Encode(dst []byte, v interface{}) ([]byte, error)
	DecodeValue(buf []byte, pos int, strict bool) (interface{}, int, error)
	Validate(v interface{}) error
}

// base is embedded by every scalar descriptor to provide the shared
// bookkeeping (number, name, required flag, default value).
type base struct {
	number   uint32
	name     string
	required bool
	def      interface{}
	hasDef   bool
}

func newBase(number uint32, required bool, def interface{}, hasDef bool) (base, error) {
	if err := ValidateNumber(number); err != nil {
		return base{}, err
	}
	return base{number: number, required: required, def: def, hasDef: hasDef}, nil
}

func (b *base) Number() uint32     { return b.number }
func (b *base) Name() string       { return b.name }
func (b *base) BindName(n string)  { b.name = n }
func (b *base) IsRequired() bool   { return b.required }
func (b *base) DefaultValue() (interface{}, bool) {
	return b.def, b.hasDef
}

// header returns the tag bytes for this field: number<<3 | wireType.
func header(dst []byte, number uint32, wt wire.Type) []byte {
	return wire.EncodeTag(dst, number, wt)
}
