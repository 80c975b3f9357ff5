package pmessage

import (
	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/wire"
)

// ToBytes walks the field table in declaration order, failing with
// MissingRequiredField if a required field has no stored value, skipping
// absent optional fields, and otherwise appending each field's wire
// encoding. Proto3 singular scalars that hold their zero value and are not
// one-of members are skipped too, matching implicit presence.
func (m *Message) ToBytes() ([]byte, error) {
	var out []byte
	for _, entry := range m.mtype.fields {
		v, present := m.values[entry.name]
		if !present {
			if entry.field.IsRequired() {
				return nil, perr.MissingRequiredField("message %q: required field %q is not set", m.mtype.Name, entry.name)
			}
			continue
		}
		if m.mtype.syntax == Proto3 && entry.oneOf == "" {
			if _, isMsg := entry.field.(*field.MessageField); !isMsg {
				if _, isRep := entry.field.(*field.Repeated); !isRep {
					if _, isMap := entry.field.(*field.MapField); !isMap {
						if isZero(entry.field, v) {
							if _, hasDef := entry.field.DefaultValue(); !hasDef {
								continue
							}
						}
					}
				}
			}
		}

		var err error
		switch d := entry.field.(type) {
		case *field.Repeated:
			list, ok := v.(*container.List)
			if !ok {
				return nil, perr.ValueError("field %q: expected a list, got %T", entry.name, v)
			}
			out, err = d.Encode(out, list.Slice())
		case *field.MapField:
			dict, ok := v.(*container.Dict)
			if !ok {
				return nil, perr.ValueError("field %q: expected a map, got %T", entry.name, v)
			}
			out, err = d.Encode(out, dict.Map())
		default:
			out, err = entry.field.Encode(out, v)
		}
		if err != nil {
			return nil, perr.Wrap(err, "encoding field %q of message %q", entry.name, m.mtype.Name)
		}
	}
	return out, nil
}

// FromBytes repeatedly decodes a (number, wire-type) tag from data. Known
// field numbers dispatch to the field's decoder (with the packed/unpacked
// equivalence below); unknown numbers are discarded via the skip table.
// In strict mode, missing required fields fail once decoding completes;
// non-strict mode returns a partial message.
func (m *Message) FromBytes(data []byte, strict bool) error {
	pos := 0
	for pos < len(data) {
		tag, next, err := wire.DecodeTag(data, pos)
		if err != nil {
			return err
		}
		pos = next

		desc, name, known := m.mtype.FieldByNumber(tag.Number)
		if !known {
			pos, err = wire.Skip(tag.Type, data, pos)
			if err != nil {
				return err
			}
			continue
		}

		switch d := desc.(type) {
		case *field.Repeated:
			pos, err = m.decodeRepeated(data, pos, name, d, tag, strict)
		case *field.MapField:
			pos, err = m.decodeMapEntry(data, pos, name, d, tag, strict)
		case *field.EnumField:
			pos, err = m.decodeEnum(data, pos, name, d, tag)
		default:
			if tag.Type != desc.WireType() {
				return perr.WireTypeMismatch("field %q: wire type %d does not match declared type %d", name, tag.Type, desc.WireType())
			}
			var v interface{}
			v, pos, err = desc.DecodeValue(data, pos, strict)
			if err == nil {
				m.values[name] = v
				if group, isMember := m.mtype.memberOf[name]; isMember {
					m.clearOneOfExcept(group, name)
					m.oneOfWinner[group] = name
				}
			}
		}
		if err != nil {
			return err
		}
	}

	if strict {
		for _, entry := range m.mtype.fields {
			if !entry.field.IsRequired() {
				continue
			}
			if _, present := m.values[entry.name]; present {
				continue
			}
			if _, hasDef := entry.field.DefaultValue(); hasDef {
				continue
			}
			return perr.DecodeMissingRequiredField("message %q: required field %q was not present", m.mtype.Name, entry.name)
		}
	}
	return nil
}

// clearOneOfExcept clears every member of group except keep, used while
// decoding so a just-written winner does not get clobbered by its own
// clear pass.
func (m *Message) clearOneOfExcept(group, keep string) {
	g, ok := m.mtype.oneOfs[group]
	if !ok {
		return
	}
	for _, member := range g.members {
		if member != keep {
			delete(m.values, member)
		}
	}
}

func (m *Message) decodeRepeated(data []byte, pos int, name string, d *field.Repeated, tag wire.Tag, strict bool) (int, error) {
	list, _ := m.Get(name)
	l := list.(*container.List)

	if tag.Type == wire.Length && d.Of().WireType() != wire.Length {
		// Packed encoding: a single length-delimited block of concatenated
		// values, regardless of the field's own declared packed flag, so a
		// packed producer and an unpacked producer of the same field
		// decode to the same list (packed/unpacked equivalence).
		values, next, err := d.DecodePacked(data, pos, strict)
		if err != nil {
			return pos, err
		}
		for _, v := range values {
			if err := l.Append(v); err != nil {
				return pos, err
			}
		}
		return next, nil
	}

	if tag.Type != d.Of().WireType() {
		return pos, perr.WireTypeMismatch("field %q: wire type %d does not match element type %d", name, tag.Type, d.Of().WireType())
	}
	v, next, err := d.DecodeValue(data, pos, strict)
	if err != nil {
		return pos, err
	}
	if err := l.Append(v); err != nil {
		return pos, err
	}
	return next, nil
}

func (m *Message) decodeMapEntry(data []byte, pos int, name string, d *field.MapField, tag wire.Tag, strict bool) (int, error) {
	if tag.Type != wire.Length {
		return pos, perr.WireTypeMismatch("map field %q: wire type %d, expected length-delimited", name, tag.Type)
	}
	entryVal, next, err := d.DecodeValue(data, pos, strict)
	if err != nil {
		return pos, err
	}
	entry := entryVal.([2]interface{})
	dictAny, _ := m.Get(name)
	dict := dictAny.(*container.Dict)
	if err := dict.Set(entry[0], entry[1]); err != nil {
		return pos, err
	}
	return next, nil
}

func (m *Message) decodeEnum(data []byte, pos int, name string, d *field.EnumField, tag wire.Tag) (int, error) {
	if tag.Type != wire.Varint {
		return pos, perr.WireTypeMismatch("enum field %q: wire type %d, expected varint", name, tag.Type)
	}
	v, next, err := d.DecodeValue(data, pos, false)
	if err != nil {
		return pos, err
	}
	ordinal := v.(int32)
	if _, known := d.NameOf(ordinal); !known {
		// Unknown enum ordinals decode to "absent": the field is left out
		// of the value map entirely, never stored as a raw integer.
		return next, nil
	}
	m.values[name] = ordinal
	if group, isMember := m.mtype.memberOf[name]; isMember {
		m.clearOneOfExcept(group, name)
		m.oneOfWinner[group] = name
	}
	return next, nil
}
