package pmessage

import (
	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/internal/perr"
)

// Message is a mutable instance of a MessageType. Its zero value is not
// usable; construct instances through MessageType.New.
type Message struct {
	mtype       *MessageType
	values      map[string]interface{}
	oneOfWinner map[string]string
}

// Type returns the instance's message type.
func (m *Message) Type() *MessageType { return m.mtype }

// Get reads a field's observable value: the stored value if present, the
// declared default if absent and a default exists, a lazily allocated
// empty container for absent repeated/map fields, or nil for an absent
// message-typed field. Scalar proto3 fields with no explicit default read
// as the type's zero value, matching the language's implicit presence.
func (m *Message) Get(name string) (interface{}, error) {
	entry, ok := m.mtype.byName[name]
	if !ok {
		return nil, perr.ValueError("message %q has no field %q", m.mtype.Name, name)
	}
	if v, present := m.values[name]; present {
		return v, nil
	}
	switch d := entry.field.(type) {
	case *field.Repeated:
		list := container.NewList(d)
		m.values[name] = list
		return list, nil
	case *field.MapField:
		dict := container.NewDict(d.Key(), d.Value())
		m.values[name] = dict
		return dict, nil
	case *field.MessageField:
		return nil, nil
	default:
		if def, has := entry.field.DefaultValue(); has {
			return def, nil
		}
		if m.mtype.syntax == Proto3 {
			return zeroOf(entry.field), nil
		}
		return nil, nil
	}
}

// Set validates v against the field descriptor, arbitrates one-of
// membership, and stores the value.
func (m *Message) Set(name string, v interface{}) error {
	entry, ok := m.mtype.byName[name]
	if !ok {
		return perr.ValueError("message %q has no field %q", m.mtype.Name, name)
	}
	if err := entry.field.Validate(v); err != nil {
		return err
	}
	if group, isMember := m.mtype.memberOf[name]; isMember {
		m.clearOneOf(group)
		m.oneOfWinner[group] = name
	}
	m.values[name] = v
	return nil
}

// clearOneOf removes every member of group from the value map.
func (m *Message) clearOneOf(group string) {
	g, ok := m.mtype.oneOfs[group]
	if !ok {
		return
	}
	for _, member := range g.members {
		delete(m.values, member)
	}
}

// Has reports whether a field is explicitly present in the value map
// (distinct from Get's default-filling behavior).
func (m *Message) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Clear removes a field's stored value, including list/dict caches and
// one-of arbitration.
func (m *Message) Clear(name string) {
	if group, ok := m.mtype.memberOf[name]; ok {
		if m.oneOfWinner[group] == name {
			delete(m.oneOfWinner, group)
		}
	}
	delete(m.values, name)
}

// WhichOneOf reports the winning member of a one-of group as recorded by
// the last successful write or decode, or "" if none has been set.
func (m *Message) WhichOneOf(group string) (string, error) {
	if _, ok := m.mtype.oneOfs[group]; !ok {
		return "", perr.NoSuchOneOf(group)
	}
	return m.oneOfWinner[group], nil
}

func zeroOf(d field.Descriptor) interface{} {
	switch d.(type) {
	case *field.String:
		return ""
	case *field.Bytes:
		return []byte(nil)
	case *field.Bool:
		return false
	case *field.Int32, *field.SInt32, *field.SFixed32:
		return int32(0)
	case *field.Int64, *field.SInt64, *field.SFixed64:
		return int64(0)
	case *field.UInt32, *field.Fixed32:
		return uint32(0)
	case *field.UInt64, *field.Fixed64:
		return uint64(0)
	case *field.Float:
		return float32(0)
	case *field.Double:
		return float64(0)
	case *field.EnumField:
		return int32(0)
	default:
		return nil
	}
}

func isZero(d field.Descriptor, v interface{}) bool {
	switch x := v.(type) {
	case string:
		return x == ""
	case bool:
		return !x
	case int32:
		return x == 0
	case int64:
		return x == 0
	case uint32:
		return x == 0
	case uint64:
		return x == 0
	case float32:
		return x == 0
	case float64:
		return x == 0
	case []byte:
		return len(x) == 0
	default:
		return false
	}
}
