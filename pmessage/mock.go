package pmessage

import "github.com/protox-go/protox/field"

// Mock builds an instance of mt with every required scalar or enum field
// that has no declared default set to its zero value, for tests that only
// care about the shape of a message and not its content. Required fields
// with a declared default and required message fields are left unset. Grounded on protox's mock.py helper.
func Mock(mt *MessageType) (*Message, error) {
	msg := mt.New()
	for _, entry := range mt.fields {
		if !entry.field.IsRequired() {
			continue
		}
		if _, hasDef := entry.field.DefaultValue(); hasDef {
			continue
		}
		v := mockValue(entry.field)
		if v == nil {
			continue
		}
		if err := msg.Set(entry.name, v); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

func mockValue(d field.Descriptor) interface{} {
	switch t := d.(type) {
	case *field.MessageField:
		return nil
	case *field.EnumField:
		return int32(0)
	default:
		return zeroOf(t)
	}
}
