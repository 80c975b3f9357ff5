package generator

import (
	"strconv"
	"strings"

	"github.com/protox-go/protox/descriptor"
	"github.com/protox-go/protox/descriptorpb"
	"github.com/protox-go/protox/pmessage"
)

// generateFile emits the full Go source for one .proto file's message
// bindings: package header and imports, enum constant blocks, message type
// declarations, then a single init function wiring every message's fields
// together via pmessage.DefineFields. Ordering mirrors the teacher's
// generate/generateEnum/generateMessage/generateInitFunction sequence; the
// deferred define_fields block exists for the same reason
// pmessage.DefineFields itself does, so mutually-recursive messages in one
// file can reference each other regardless of declaration order.
//
// When the grpclib option is set and the file declares services, a second
// source string is returned holding the companion service-stub file,
// written to its own Printer so it lands in its own
// CodeGeneratorResponse.File (spec.md's two-file naming:
// "<stem>_pb.go"/"<stem>_grpclib.go"); grpcSrc is empty otherwise.
func (g *Generator) generateFile(fd *descriptor.FileDescriptor) (src string, grpcSrc string, err error) {
	p := &Printer{}
	g.generateHeader(p, fd)

	var initLines []string

	var walkEnums func(enums []*descriptor.EnumDescriptor)
	walkEnums = func(enums []*descriptor.EnumDescriptor) {
		for _, e := range enums {
			g.generateEnum(p, e)
		}
	}
	walkEnums(fd.Enums)

	var walkMessages func(msgs []*descriptor.MessageDescriptor)
	walkMessages = func(msgs []*descriptor.MessageDescriptor) {
		for _, m := range msgs {
			if m.IsMapEntry() {
				continue // synthetic key/value wrapper, never emitted directly
			}
			initLines = append(initLines, g.generateMessage(p, fd, m))
			walkEnums(m.Enums())
			walkMessages(m.Nested())
		}
	}
	walkMessages(fd.Messages)

	g.generateInitFunction(p, initLines)

	if g.Params.GRPCLib && len(fd.Services) > 0 {
		gp := &Printer{}
		g.generateGrpclibHeader(gp, fd)
		for _, svc := range fd.Services {
			g.generateService(gp, fd, svc)
		}
		grpcSrc = gp.String()
	}

	return p.String(), grpcSrc, nil
}

func (g *Generator) generateHeader(p *Printer, fd *descriptor.FileDescriptor) {
	pkg := filePackage(fd)

	p.P("// Code generated from ", fd.Name(), ". DO NOT EDIT.")
	p.P("package ", goPackageName(pkg))
	p.P()
	p.P("import (")
	p.In()
	p.P(`"github.com/protox-go/protox/field"`)
	p.P(`"github.com/protox-go/protox/pmessage"`)
	p.Out()
	p.P(")")
	p.P()
}

// generateGrpclibHeader emits the package header and imports for a file's
// companion "<stem>_grpclib.go" output, which references the message types
// declared in "<stem>_pb.go" but otherwise only needs the transport seam
// and, when any method streams, "fmt" for its unimplemented-streaming
// error.
func (g *Generator) generateGrpclibHeader(p *Printer, fd *descriptor.FileDescriptor) {
	pkg := filePackage(fd)

	p.P("// Code generated from ", fd.Name(), ". DO NOT EDIT.")
	p.P("package ", goPackageName(pkg))
	p.P()
	p.P("import (")
	p.In()
	p.P(`"context"`)
	if anyMethodStreams(fd.Services) {
		p.P(`"fmt"`)
	}
	p.P()
	p.P(`"github.com/protox-go/protox/rpc"`)
	p.Out()
	p.P(")")
	p.P()
}

func filePackage(fd *descriptor.FileDescriptor) string {
	pkg := fd.Package()
	if pkg == "" {
		pkg = descriptor.CamelCase(strings.TrimSuffix(fd.Name(), ".proto"))
	}
	return pkg
}

func anyMethodStreams(services []*descriptor.ServiceDescriptor) bool {
	for _, svc := range services {
		for _, m := range svc.Methods() {
			if descriptor.MethodClientStreaming(m) || descriptor.MethodServerStreaming(m) {
				return true
			}
		}
	}
	return false
}

func goPackageName(pkg string) string {
	parts := strings.Split(pkg, ".")
	return strings.ToLower(descriptor.CamelCase(parts[len(parts)-1]))
}

// generateEnum emits a Go int32 type plus its named constants, mirroring
// the teacher's generateEnum. Constant names carry EnumDescriptor.Prefix:
// a top-level enum's own CamelCased name, or for a nested enum the
// CamelCased names of its enclosing messages.
func (g *Generator) generateEnum(p *Printer, enum *descriptor.EnumDescriptor) {
	ccTypeName := descriptor.CamelCaseSlice(enum.TypeName())
	prefix := enum.Prefix()
	p.P("type ", ccTypeName, " int32")
	p.P("const (")
	p.In()
	for _, v := range enum.Values() {
		name, _ := getField(v, "name").(string)
		number, _ := getField(v, "number").(int32)
		p.P(prefix, descriptor.CamelCase(name), " ", ccTypeName, " = ", number)
	}
	p.Out()
	p.P(")")
	p.P()
}

// generateMessage emits a message's Go declaration: a named MessageType
// variable and a Get/Set accessor pair per field going through
// pmessage.Get/Set, the same pattern descriptorpb and wellknown use by
// hand. It returns the must0(pmessage.DefineFields(...)) statement for
// this message; the caller collects these into the file's init function so
// forward and self references across messages resolve regardless of
// declaration order (deferred field binding, see package pmessage).
func (g *Generator) generateMessage(p *Printer, fd *descriptor.FileDescriptor, msg *descriptor.MessageDescriptor) string {
	ccTypeName := descriptor.CamelCaseSlice(msg.TypeName())
	varName := ccTypeName + "Type"
	syntax := "pmessage.Proto2"
	if fd.Proto3 {
		syntax = "pmessage.Proto3"
	}
	p.P("var ", varName, " = pmessage.NewMessageType(", quote(msg.FullName()), ", ", syntax, ")")
	p.P()

	usedNames := make(map[string]bool)
	var fieldLines []string
	for _, f := range msg.Fields() {
		fieldLines = append(fieldLines, g.fieldDefLine(f))
		generateFieldAccessor(p, ccTypeName, f, usedNames)
	}
	return buildDefineFieldsCall(varName, fieldLines)
}

// fieldDefLine renders the pmessage.FieldDef{...} literal for one field,
// choosing the field.NewXxx constructor from its declared wire type and
// wrapping it in field.NewRepeated when the label is LABEL_REPEATED.
// Grounded on the teacher's GoType/goTag pair, generalized from Go type
// strings to this runtime's field-constructor calls. Enum fields resolve
// their symbol table through the generator's Index, since the wire-format
// symbol names live on the referenced EnumDescriptorProto, not on the
// field itself.
//
// A map field is encoded on the wire (and in descriptor.proto) as a
// repeated message field pointing at a compiler-synthesized map_entry
// type, per spec.md's map-field rules. That entry type is never declared
// as its own message (generateFile skips it), so it is detected here by
// its options.map_entry flag and rendered as a single field.NewMapField
// built from the entry's key/value fields, not as a repeated message
// field referencing an undeclared type.
func (g *Generator) fieldDefLine(f *pmessage.Message) string {
	name, _ := getField(f, "name").(string)
	number, _ := getField(f, "number").(int32)
	fieldType, _ := getField(f, "type").(int32)
	label, _ := getField(f, "label").(int32)
	repeated := label == descriptorpb.LabelRepeated

	if fieldType == descriptorpb.TypeMessage {
		typeName, _ := getField(f, "type_name").(string)
		if entry, ok := g.mapEntryType(typeName); ok {
			expr := "must(" + g.mapFieldCtor(number, entry) + ")"
			return "pmessage.FieldDef{Name: " + quote(name) + ", Field: " + expr + "}"
		}
	}

	expr := g.fieldCtorExpr(number, fieldType, f)
	if repeated {
		expr = "must(field.NewRepeated(" + strconv.Itoa(int(number)) + ", must(" + expr + "), false))"
	} else {
		expr = "must(" + expr + ")"
	}
	return "pmessage.FieldDef{Name: " + quote(name) + ", Field: " + expr + "}"
}

// mapEntryType resolves a field's type_name to its MessageDescriptor and
// reports whether it is a map_entry synthetic type.
func (g *Generator) mapEntryType(typeName string) (*descriptor.MessageDescriptor, bool) {
	obj, err := g.Index.ObjectNamed(typeName)
	if err != nil {
		return nil, false
	}
	msg, ok := obj.(*descriptor.MessageDescriptor)
	if !ok || !msg.IsMapEntry() {
		return nil, false
	}
	return msg, true
}

// mapFieldCtor renders a field.NewMapField(...) call from a map_entry
// message's declared "key" and "value" fields.
func (g *Generator) mapFieldCtor(number int32, entry *descriptor.MessageDescriptor) string {
	var keyExpr, valueExpr string
	for _, f := range entry.Fields() {
		fname, _ := getField(f, "name").(string)
		fnum, _ := getField(f, "number").(int32)
		ftype, _ := getField(f, "type").(int32)
		switch fname {
		case "key":
			keyExpr = g.fieldCtorExpr(fnum, ftype, f)
		case "value":
			valueExpr = g.fieldCtorExpr(fnum, ftype, f)
		}
	}
	return "field.NewMapField(" + strconv.Itoa(int(number)) + ", must(" + keyExpr + "), must(" + valueExpr + "))"
}

// fieldCtorExpr renders the bare field.NewXxx(...) constructor call for a
// scalar, message, or enum field, without the must()/NewRepeated wrapping
// fieldDefLine and mapFieldCtor apply around it for their own purposes.
func (g *Generator) fieldCtorExpr(number, fieldType int32, f *pmessage.Message) string {
	switch fieldType {
	case descriptorpb.TypeMessage:
		typeName, _ := getField(f, "type_name").(string)
		ccName := descriptor.CamelCaseSlice(strings.Split(strings.TrimPrefix(typeName, "."), "."))
		return "field.NewMessageField(" + strconv.Itoa(int(number)) + `, false, ` + quote(strings.TrimPrefix(typeName, ".")) + `, func() field.Message { return ` + ccName + `Type.New() })`
	case descriptorpb.TypeEnum:
		typeName, _ := getField(f, "type_name").(string)
		return "field.NewEnumField(" + strconv.Itoa(int(number)) + `, false, ` + g.enumSymbolsLiteral(typeName) + ")"
	default:
		if ctor := scalarConstructor(fieldType); ctor != "" {
			return ctor + "(" + strconv.Itoa(int(number)) + ", false)"
		}
		return "field.NewString(" + strconv.Itoa(int(number)) + ", false)"
	}
}

// enumSymbolsLiteral renders the map[string]int32{...} literal an
// EnumField's symbol table needs, resolved through the Index by the
// field's fully-qualified enum type name.
func (g *Generator) enumSymbolsLiteral(typeName string) string {
	obj, err := g.Index.ObjectNamed(typeName)
	if err != nil {
		return "map[string]int32{}"
	}
	enum, ok := obj.(*descriptor.EnumDescriptor)
	if !ok {
		return "map[string]int32{}"
	}
	var b strings.Builder
	b.WriteString("map[string]int32{")
	for _, v := range enum.Values() {
		name, _ := getField(v, "name").(string)
		number, _ := getField(v, "number").(int32)
		b.WriteString(quote(name))
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(int(number)))
		b.WriteString(", ")
	}
	b.WriteString("}")
	return b.String()
}

func scalarConstructor(t int32) string {
	switch t {
	case descriptorpb.TypeDouble:
		return "field.NewDouble"
	case descriptorpb.TypeFloat:
		return "field.NewFloat"
	case descriptorpb.TypeInt64:
		return "field.NewInt64"
	case descriptorpb.TypeUint64:
		return "field.NewUInt64"
	case descriptorpb.TypeInt32:
		return "field.NewInt32"
	case descriptorpb.TypeFixed64:
		return "field.NewFixed64"
	case descriptorpb.TypeFixed32:
		return "field.NewFixed32"
	case descriptorpb.TypeBool:
		return "field.NewBool"
	case descriptorpb.TypeUint32:
		return "field.NewUInt32"
	case descriptorpb.TypeSfixed32:
		return "field.NewSFixed32"
	case descriptorpb.TypeSfixed64:
		return "field.NewSFixed64"
	case descriptorpb.TypeSint32:
		return "field.NewSInt32"
	case descriptorpb.TypeSint64:
		return "field.NewSInt64"
	case descriptorpb.TypeString, descriptorpb.TypeBytes:
		return "field.NewString"
	default:
		return ""
	}
}

func generateFieldAccessor(p *Printer, ccTypeName string, f *pmessage.Message, used map[string]bool) {
	protoName, _ := getField(f, "name").(string)
	goName := goFieldName(protoName, used)
	p.P("func (m *", ccTypeName, ") Get", goName, "() (interface{}, error) { return m.Get(", quote(protoName), ") }")
	p.P("func (m *", ccTypeName, ") Set", goName, "(v interface{}) error { return m.Set(", quote(protoName), ", v) }")
}

func (g *Generator) generateInitFunction(p *Printer, lines []string) {
	p.P("func must[T any](v T, err error) T {")
	p.In()
	p.P("if err != nil { panic(err) }")
	p.P("return v")
	p.Out()
	p.P("}")
	p.P()
	p.P("func must0(err error) {")
	p.In()
	p.P("if err != nil { panic(err) }")
	p.Out()
	p.P("}")
	p.P()
	p.P("func init() {")
	p.In()
	for _, l := range lines {
		p.P(l)
	}
	p.Out()
	p.P("}")
}

func buildDefineFieldsCall(varName string, fieldLines []string) string {
	if len(fieldLines) == 0 {
		return "must0(pmessage.DefineFields(" + varName + "))"
	}
	var b strings.Builder
	b.WriteString("must0(pmessage.DefineFields(")
	b.WriteString(varName)
	b.WriteString(",\n")
	for _, l := range fieldLines {
		b.WriteString("\t")
		b.WriteString(l)
		b.WriteString(",\n")
	}
	b.WriteString("))")
	return b.String()
}

func quote(s string) string { return strconv.Quote(s) }

func getField(m *pmessage.Message, name string) interface{} {
	v, _ := m.Get(name)
	return v
}
