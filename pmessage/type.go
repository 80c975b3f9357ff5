// Package pmessage implements the message runtime: the field registry and
// default-value resolution, one-of arbitration, the (de)serialization
// driver, equality and diagnostic formatting described in the message
// runtime component of the specification. It stores instance data in a
// sparse name-keyed map rather than a static struct because fields may be
// registered after the type already exists (deferred field binding, used
// to break cycles between messages that reference each other), because
// optional fields need "present vs. absent" beyond a zero value, and
// because one-of arbitration needs to atomically remove sibling members.
package pmessage

import (
	"fmt"

	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/internal/perr"
)

// Syntax selects proto2 or proto3 presence semantics for a message type.
type Syntax int

const (
	Proto2 Syntax = iota
	Proto3
)

// FieldDef pairs a declared name with its descriptor and, optionally, the
// one-of group it belongs to. It is the argument to DefineFields.
type FieldDef struct {
	Name  string
	Field field.Descriptor
	OneOf string
}

type fieldEntry struct {
	name  string
	field field.Descriptor
	oneOf string
}

type oneOfGroup struct {
	name    string
	members []string
}

// MessageType owns the ordered field table, the number index, the
// required-field set and the one-of groups for a message. Construct it
// once per program; DefineFields may be called more than once (including
// after the type has already been referenced by another message's
// MessageField) to support cyclic and forward references.
type MessageType struct {
	Name    string
	syntax  Syntax
	fields  []*fieldEntry
	byName  map[string]*fieldEntry
	byNum   map[uint32]*fieldEntry
	oneOfs  map[string]*oneOfGroup
	memberOf map[string]string // field name -> one-of group name
}

// NewMessageType creates an empty message type. Call DefineFields to
// register its fields before constructing or decoding any instance.
func NewMessageType(name string, syntax Syntax) *MessageType {
	return &MessageType{
		Name:     name,
		syntax:   syntax,
		byName:   make(map[string]*fieldEntry),
		byNum:    make(map[uint32]*fieldEntry),
		oneOfs:   make(map[string]*oneOfGroup),
		memberOf: make(map[string]string),
	}
}

// Syntax reports whether the type was declared proto2 or proto3.
func (mt *MessageType) Syntax() Syntax { return mt.syntax }

// FieldNames returns the declared field names in declaration order.
func (mt *MessageType) FieldNames() []string {
	names := make([]string, len(mt.fields))
	for i, e := range mt.fields {
		names[i] = e.name
	}
	return names
}

// FieldByName looks up a registered field descriptor.
func (mt *MessageType) FieldByName(name string) (field.Descriptor, bool) {
	e, ok := mt.byName[name]
	if !ok {
		return nil, false
	}
	return e.field, true
}

// FieldByNumber looks up a registered field descriptor by wire number.
func (mt *MessageType) FieldByNumber(number uint32) (field.Descriptor, string, bool) {
	e, ok := mt.byNum[number]
	if !ok {
		return nil, "", false
	}
	return e.field, e.name, true
}

// OneOfMembers returns the declared members of a one-of group, in
// declaration order.
func (mt *MessageType) OneOfMembers(group string) ([]string, bool) {
	g, ok := mt.oneOfs[group]
	if !ok {
		return nil, false
	}
	return g.members, true
}

// OneOfOf returns the one-of group a field belongs to, if any.
func (mt *MessageType) OneOfOf(fieldName string) (string, bool) {
	g, ok := mt.memberOf[fieldName]
	return g, ok
}

// DefineFields registers additional fields on an existing message type.
// This is the deferred-binding operation the spec requires so that a
// message may reference itself, a message declared later in the same
// file, or a message defined in an importing file, without forward
// declarations: construct all types first, then call DefineFields once
// per type after every type exists.
func DefineFields(mt *MessageType, defs ...FieldDef) error {
	for _, d := range defs {
		if d.Name == "" {
			return perr.FieldValidationError("field on message %q declared with an empty name", mt.Name)
		}
		if _, exists := mt.byName[d.Name]; exists {
			return perr.FieldValidationError("message %q already has a field named %q", mt.Name, d.Name)
		}
		if _, exists := mt.byNum[d.Field.Number()]; exists {
			return perr.FieldValidationError("message %q already has a field numbered %d", mt.Name, d.Field.Number())
		}
		if d.OneOf != "" && d.Field.IsRequired() {
			return perr.FieldValidationError("field %q: one-of members cannot be required", d.Name)
		}
		if def, has := d.Field.DefaultValue(); has {
			if err := d.Field.Validate(def); err != nil {
				return perr.Wrap(err, "default value for field %q does not validate", d.Name)
			}
		}
		d.Field.BindName(d.Name)
		entry := &fieldEntry{name: d.Name, field: d.Field, oneOf: d.OneOf}
		mt.fields = append(mt.fields, entry)
		mt.byName[d.Name] = entry
		mt.byNum[d.Field.Number()] = entry

		if d.OneOf != "" {
			g, ok := mt.oneOfs[d.OneOf]
			if !ok {
				g = &oneOfGroup{name: d.OneOf}
				mt.oneOfs[d.OneOf] = g
			}
			g.members = append(g.members, d.Name)
			mt.memberOf[d.Name] = d.OneOf
		}
	}
	return nil
}

// New constructs a zero instance: every field absent, no one-of winners.
func (mt *MessageType) New() *Message {
	return &Message{
		mtype:       mt,
		values:      make(map[string]interface{}),
		oneOfWinner: make(map[string]string),
	}
}

func (mt *MessageType) String() string {
	return fmt.Sprintf("MessageType(%s, %d fields)", mt.Name, len(mt.fields))
}
