package descriptor

import (
	"fmt"
	"strings"

	"github.com/protox-go/protox/pmessage"
)

// EnumDescriptor wraps an EnumDescriptorProto instance. If parent is nil the
// enum is declared at file scope, otherwise inside the named message.
// Grounded on the teacher's descriptor/enum.go.
type EnumDescriptor struct {
	common
	Raw       *pmessage.Message
	parent    *MessageDescriptor
	typeNames []string
	index     int
	path      string
}

func newEnum(desc *pmessage.Message, parent *MessageDescriptor, file *pmessage.Message, index int) *EnumDescriptor {
	e := &EnumDescriptor{common: common{file}, Raw: desc, parent: parent, index: index}
	if parent == nil {
		e.path = fmt.Sprintf("%d,%d", enumPath, index)
	} else {
		e.path = fmt.Sprintf("%s,%d,%d", parent.path, messageEnumPath, index)
	}
	return e
}

// wrapEnums returns every EnumDescriptor defined within a file: top-level
// enums first, then one pass per message for its directly nested enums.
func wrapEnums(file *pmessage.Message, msgs []*MessageDescriptor) []*EnumDescriptor {
	top := getMessageList(file, "enum_type")
	sl := make([]*EnumDescriptor, 0, len(top)+10)
	for i, e := range top {
		sl = append(sl, newEnum(e, nil, file, i))
	}
	for _, msg := range msgs {
		for i, e := range getMessageList(msg.Raw, "enum_type") {
			sl = append(sl, newEnum(e, msg, file, i))
		}
	}
	return sl
}

func buildNestedEnums(msgs []*MessageDescriptor, enums []*EnumDescriptor) {
	for _, e := range enums {
		if e.parent != nil {
			e.parent.enums = append(e.parent.enums, e)
		}
	}
}

// Name returns the enum's own (undotted) name.
func (e *EnumDescriptor) Name() string { return getString(e.Raw, "name") }

// Values returns the enum's EnumValueDescriptorProto instances.
func (e *EnumDescriptor) Values() []*pmessage.Message { return getMessageList(e.Raw, "value") }

// Parent returns the enclosing message, or nil at file scope.
func (e *EnumDescriptor) Parent() *MessageDescriptor { return e.parent }

// Path is the SourceCodeInfo path for this enum.
func (e *EnumDescriptor) Path() string { return e.path }

// TypeName returns the dotted-path elements of the enum's name.
func (e *EnumDescriptor) TypeName() []string {
	if e.typeNames != nil {
		return e.typeNames
	}
	name := e.Name()
	var s []string
	if e.parent == nil {
		s = []string{name}
	} else {
		pname := e.parent.TypeName()
		s = make([]string, len(pname)+1)
		copy(s, pname)
		s[len(s)-1] = name
	}
	e.typeNames = s
	return s
}

// Prefix is the constant-name prefix generated enum values share. A
// top-level enum uses its own CamelCased name; a nested enum uses every
// element of its dotted type name but the last (its enclosing messages).
func (e *EnumDescriptor) Prefix() string {
	typeName := e.TypeName()
	if len(typeName) == 1 {
		return CamelCase(typeName[0]) + "_"
	}
	return CamelCaseSlice(typeName[:len(typeName)-1]) + "_"
}

// FullName returns the dotted, package-qualified type name.
func (e *EnumDescriptor) FullName() string {
	pkg := getString(e.file, "package")
	name := strings.Join(e.TypeName(), ".")
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
