package descriptor

import (
	"fmt"
	"strings"

	"github.com/protox-go/protox/pmessage"
)

// MessageDescriptor wraps a DescriptorProto instance with the parent/nested
// pointers and path bookkeeping the generator needs to walk a message tree
// and resolve comments against it. Grounded on the teacher's
// descriptor/message.go, with *proto.DescriptorProto replaced by the dynamic
// *pmessage.Message produced by descriptorpb.
type MessageDescriptor struct {
	common
	Raw      *pmessage.Message
	parent   *MessageDescriptor
	nested   []*MessageDescriptor
	enums    []*EnumDescriptor
	typename []string
	index    int
	path     string
}

func newMessage(desc *pmessage.Message, parent *MessageDescriptor, file *pmessage.Message, index int) *MessageDescriptor {
	d := &MessageDescriptor{
		common: common{file},
		Raw:    desc,
		parent: parent,
		index:  index,
	}
	if parent == nil {
		d.path = fmt.Sprintf("%d,%d", messagePath, index)
	} else {
		d.path = fmt.Sprintf("%s,%d,%d", parent.path, messageMessagePath, index)
	}
	return d
}

// wrapMessages returns every MessageDescriptor defined within a file,
// nested messages included, in the same pre-order the teacher's
// wrapDescriptors/wrapThisDescriptor pair produces.
func wrapMessages(file *pmessage.Message) []*MessageDescriptor {
	top := getMessageList(file, "message_type")
	sl := make([]*MessageDescriptor, 0, len(top)+10)
	for i, desc := range top {
		sl = wrapThisMessage(sl, desc, nil, file, i)
	}
	return sl
}

func wrapThisMessage(sl []*MessageDescriptor, desc *pmessage.Message, parent *MessageDescriptor, file *pmessage.Message, index int) []*MessageDescriptor {
	sl = append(sl, newMessage(desc, parent, file, index))
	me := sl[len(sl)-1]
	for i, nested := range getMessageList(desc, "nested_type") {
		sl = wrapThisMessage(sl, nested, me, file, i)
	}
	return sl
}

// buildNestedMessages links each message's nested slice to the
// MessageDescriptors whose parent pointer names it, mirroring the teacher's
// buildNestedDescriptors.
func buildNestedMessages(descs []*MessageDescriptor) {
	for _, desc := range descs {
		for _, nest := range descs {
			if nest.parent == desc {
				desc.nested = append(desc.nested, nest)
			}
		}
	}
}

// Name returns the message's own (undotted) name.
func (d *MessageDescriptor) Name() string { return getString(d.Raw, "name") }

// Fields returns the message's own FieldDescriptorProto instances, in
// declaration order.
func (d *MessageDescriptor) Fields() []*pmessage.Message { return getMessageList(d.Raw, "field") }

// Oneofs returns the message's OneofDescriptorProto instances.
func (d *MessageDescriptor) Oneofs() []*pmessage.Message { return getMessageList(d.Raw, "oneof_decl") }

// Nested returns the message's directly nested messages.
func (d *MessageDescriptor) Nested() []*MessageDescriptor { return d.nested }

// Enums returns the message's directly nested enums.
func (d *MessageDescriptor) Enums() []*EnumDescriptor { return d.enums }

// Parent returns the enclosing message, or nil at top level.
func (d *MessageDescriptor) Parent() *MessageDescriptor { return d.parent }

// Path is the SourceCodeInfo path for this message, as a comma-joined
// sequence of field-number/index pairs.
func (d *MessageDescriptor) Path() string { return d.path }

// IsMapEntry reports whether this message is the compiler-synthesized
// key/value wrapper for a map field (options.map_entry).
func (d *MessageDescriptor) IsMapEntry() bool {
	opts := getMessage(d.Raw, "options")
	if opts == nil {
		return false
	}
	return getBool(opts, "map_entry")
}

// TypeName returns the dotted-path elements of the message's name, not
// including the package name.
func (d *MessageDescriptor) TypeName() []string {
	if d.typename != nil {
		return d.typename
	}
	n := 0
	for p := d; p != nil; p = p.parent {
		n++
	}
	s := make([]string, n)
	for p := d; p != nil; p = p.parent {
		n--
		s[n] = p.Name()
	}
	d.typename = s
	return s
}

// FullName returns the dotted, package-qualified type name.
func (d *MessageDescriptor) FullName() string {
	pkg := getString(d.file, "package")
	name := strings.Join(d.TypeName(), ".")
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
