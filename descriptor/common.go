// Package descriptor wraps the dynamic FileDescriptorProto/DescriptorProto/
// EnumDescriptorProto/ServiceDescriptorProto messages a CodeGeneratorRequest
// carries into a walkable tree: parent pointers, cached dotted type names,
// and SourceCodeInfo path strings for comment lookup. Grounded on the
// teacher's own descriptor/ package, adapted from golang/protobuf's
// generated structs to this module's dynamic pmessage.Message
// representation (descriptorpb), since there is no generated-struct layer
// here for descriptor.proto itself.
package descriptor

import "github.com/protox-go/protox/pmessage"

// SourceCodeInfo path segment numbers, taken from descriptor.proto.
const (
	packagePath        = 2 // FileDescriptorProto.package
	messagePath        = 4 // FileDescriptorProto.message_type
	enumPath           = 5 // FileDescriptorProto.enum_type
	messageFieldPath   = 2 // DescriptorProto.field
	messageMessagePath = 3 // DescriptorProto.nested_type
	messageEnumPath    = 4 // DescriptorProto.enum_type
	messageOneofPath   = 8 // DescriptorProto.oneof_decl
	enumValuePath      = 2 // EnumDescriptorProto.value
)

// Object abstracts the abilities shared by messages and enums: a dotted
// type name and the file they were declared in.
type Object interface {
	TypeName() []string
	File() *pmessage.Message
}

// common carries the owning file, shared by every descriptor kind.
type common struct {
	file *pmessage.Message // the FileDescriptorProto this object comes from
}

func (c *common) File() *pmessage.Message { return c.file }

func (c *common) proto3() bool { return fileIsProto3(c.file) }

func fileIsProto3(file *pmessage.Message) bool {
	return getString(file, "syntax") == "proto3"
}

func get(m *pmessage.Message, name string) interface{} {
	v, err := m.Get(name)
	if err != nil {
		return nil
	}
	return v
}

func getMessage(m *pmessage.Message, name string) *pmessage.Message {
	v, _ := get(m, name).(*pmessage.Message)
	return v
}

func getString(m *pmessage.Message, name string) string {
	s, _ := get(m, name).(string)
	return s
}

func getInt32(m *pmessage.Message, name string) int32 {
	switch n := get(m, name).(type) {
	case int32:
		return n
	case int64:
		return int32(n)
	default:
		return 0
	}
}

func getBool(m *pmessage.Message, name string) bool {
	b, _ := get(m, name).(bool)
	return b
}

// listLike is the subset of container.List read here; declared locally so
// this package does not need to import container just to read repeated
// fields back out of a descriptor message.
type listLike interface {
	Len() int
	Get(i int) interface{}
}

func getMessageList(m *pmessage.Message, name string) []*pmessage.Message {
	lst, _ := get(m, name).(listLike)
	if lst == nil {
		return nil
	}
	out := make([]*pmessage.Message, 0, lst.Len())
	for i := 0; i < lst.Len(); i++ {
		if mv, ok := lst.Get(i).(*pmessage.Message); ok {
			out = append(out, mv)
		}
	}
	return out
}

func getStringList(m *pmessage.Message, name string) []string {
	lst, _ := get(m, name).(listLike)
	if lst == nil {
		return nil
	}
	out := make([]string, 0, lst.Len())
	for i := 0; i < lst.Len(); i++ {
		if s, ok := lst.Get(i).(string); ok {
			out = append(out, s)
		}
	}
	return out
}
