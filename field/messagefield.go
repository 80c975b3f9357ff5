package field

import (
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/wire"
)

// Message is the subset of the message runtime's instance API that a
// MessageField needs: to serialize a nested value and to populate a fresh
// instance from a decoded sub-buffer. *pmessage.Message satisfies this
// interface structurally; this package never imports pmessage, which is
// what lets message-typed fields reference types declared later (including
// the enclosing type itself) without a cyclic package dependency.
type Message interface {
	ToBytes() ([]byte, error)
	FromBytes(data []byte, strict bool) error
}

// MessageField encodes a nested message as a length-delimited payload.
// New must return a freshly zeroed instance of the target message type;
// it is typically MessageType.New bound as a method value, resolved lazily
// so that the field can reference a type declared later in the same file
// (deferred field binding, see package pmessage).
type MessageField struct {
	base
	typeName string
	new      func() Message
}

func NewMessageField(number uint32, required bool, typeName string, newFn func() Message) (*MessageField, error) {
	b, err := newBase(number, required, nil, false)
	if err != nil {
		return nil, err
	}
	return &MessageField{base: b, typeName: typeName, new: newFn}, nil
}

// TypeName is the fully qualified name of the target message type.
func (f *MessageField) TypeName() string { return f.typeName }

func (f *MessageField) WireType() wire.Type { return wire.Length }

func (f *MessageField) Validate(v interface{}) error {
	if _, ok := v.(Message); !ok {
		return perr.ValueError("expected a message for field %q, got %T", f.name, v)
	}
	return nil
}

func (f *MessageField) Encode(dst []byte, v interface{}) ([]byte, error) {
	msg, ok := v.(Message)
	if !ok {
		return nil, perr.ValueError("expected a message for field %q, got %T", f.name, v)
	}
	payload, err := msg.ToBytes()
	if err != nil {
		return nil, perr.Wrap(err, "encoding nested message for field %q", f.name)
	}
	dst = header(dst, f.number, wire.Length)
	return wire.EncodeLengthDelimited(dst, payload), nil
}

func (f *MessageField) DecodeValue(buf []byte, pos int, strict bool) (interface{}, int, error) {
	payload, next, err := wire.DecodeLengthDelimited(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	msg := f.new()
	if err := msg.FromBytes(payload, strict); err != nil {
		return nil, pos, perr.Wrap(err, "decoding nested message for field %q", f.name)
	}
	return msg, next, nil
}
