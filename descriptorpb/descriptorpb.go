// Package descriptorpb implements the subset of google/protobuf/descriptor.proto
// that a CodeGeneratorRequest carries: the message, field, enum and service
// descriptors the generator walks to emit code, plus their *Options
// messages and the source-location metadata. Every type here is an
// ordinary pmessage.MessageType; there is no generated-struct layer,
// matching how the rest of this module treats "a protobuf message" as a
// MessageType plus a dynamic pmessage.Message rather than a static Go
// struct with generated accessors.
//
// Field numbers are taken directly from descriptor.proto so that a
// CodeGeneratorRequest produced by a real protoc binary decodes correctly
// against these definitions.
package descriptorpb

import (
	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/pmessage"
)

// FieldDescriptorProto.Type values.
const (
	TypeDouble   int32 = 1
	TypeFloat    int32 = 2
	TypeInt64    int32 = 3
	TypeUint64   int32 = 4
	TypeInt32    int32 = 5
	TypeFixed64  int32 = 6
	TypeFixed32  int32 = 7
	TypeBool     int32 = 8
	TypeString   int32 = 9
	TypeGroup    int32 = 10
	TypeMessage  int32 = 11
	TypeBytes    int32 = 12
	TypeUint32   int32 = 13
	TypeEnum     int32 = 14
	TypeSfixed32 int32 = 15
	TypeSfixed64 int32 = 16
	TypeSint32   int32 = 17
	TypeSint64   int32 = 18
)

// FieldDescriptorProto.Label values.
const (
	LabelOptional int32 = 1
	LabelRequired int32 = 2
	LabelRepeated int32 = 3
)

// FileOptions.OptimizeMode values.
const (
	OptimizeSpeed       int32 = 1
	OptimizeCodeSize    int32 = 2
	OptimizeLiteRuntime int32 = 3
)

var fieldTypeNames = map[string]int32{
	"TYPE_DOUBLE": TypeDouble, "TYPE_FLOAT": TypeFloat, "TYPE_INT64": TypeInt64,
	"TYPE_UINT64": TypeUint64, "TYPE_INT32": TypeInt32, "TYPE_FIXED64": TypeFixed64,
	"TYPE_FIXED32": TypeFixed32, "TYPE_BOOL": TypeBool, "TYPE_STRING": TypeString,
	"TYPE_GROUP": TypeGroup, "TYPE_MESSAGE": TypeMessage, "TYPE_BYTES": TypeBytes,
	"TYPE_UINT32": TypeUint32, "TYPE_ENUM": TypeEnum, "TYPE_SFIXED32": TypeSfixed32,
	"TYPE_SFIXED64": TypeSfixed64, "TYPE_SINT32": TypeSint32, "TYPE_SINT64": TypeSint64,
}

var fieldLabelNames = map[string]int32{
	"LABEL_OPTIONAL": LabelOptional, "LABEL_REQUIRED": LabelRequired, "LABEL_REPEATED": LabelRepeated,
}

var optimizeModeNames = map[string]int32{
	"SPEED": OptimizeSpeed, "CODE_SIZE": OptimizeCodeSize, "LITE_RUNTIME": OptimizeLiteRuntime,
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Message types. Declared as package-level vars and wired up in init() so
// that DescriptorProto, FieldDescriptorProto and the rest of this mutually
// recursive family can reference each other regardless of declaration
// order (deferred field binding, see pmessage.DefineFields).
var (
	UninterpretedOptionType     = pmessage.NewMessageType("google.protobuf.UninterpretedOption", pmessage.Proto2)
	uninterpretedOptionNamePart = pmessage.NewMessageType("google.protobuf.UninterpretedOption.NamePart", pmessage.Proto2)

	FileOptionsType          = pmessage.NewMessageType("google.protobuf.FileOptions", pmessage.Proto2)
	MessageOptionsType       = pmessage.NewMessageType("google.protobuf.MessageOptions", pmessage.Proto2)
	FieldOptionsType         = pmessage.NewMessageType("google.protobuf.FieldOptions", pmessage.Proto2)
	OneofOptionsType         = pmessage.NewMessageType("google.protobuf.OneofOptions", pmessage.Proto2)
	EnumOptionsType          = pmessage.NewMessageType("google.protobuf.EnumOptions", pmessage.Proto2)
	EnumValueOptionsType     = pmessage.NewMessageType("google.protobuf.EnumValueOptions", pmessage.Proto2)
	ServiceOptionsType       = pmessage.NewMessageType("google.protobuf.ServiceOptions", pmessage.Proto2)
	MethodOptionsType        = pmessage.NewMessageType("google.protobuf.MethodOptions", pmessage.Proto2)
	ExtensionRangeOptionsType = pmessage.NewMessageType("google.protobuf.ExtensionRangeOptions", pmessage.Proto2)

	FileDescriptorProtoType  = pmessage.NewMessageType("google.protobuf.FileDescriptorProto", pmessage.Proto2)
	DescriptorProtoType      = pmessage.NewMessageType("google.protobuf.DescriptorProto", pmessage.Proto2)
	extensionRangeType       = pmessage.NewMessageType("google.protobuf.DescriptorProto.ExtensionRange", pmessage.Proto2)
	reservedRangeType        = pmessage.NewMessageType("google.protobuf.DescriptorProto.ReservedRange", pmessage.Proto2)
	FieldDescriptorProtoType = pmessage.NewMessageType("google.protobuf.FieldDescriptorProto", pmessage.Proto2)
	OneofDescriptorProtoType = pmessage.NewMessageType("google.protobuf.OneofDescriptorProto", pmessage.Proto2)
	EnumDescriptorProtoType  = pmessage.NewMessageType("google.protobuf.EnumDescriptorProto", pmessage.Proto2)
	enumReservedRangeType    = pmessage.NewMessageType("google.protobuf.EnumDescriptorProto.EnumReservedRange", pmessage.Proto2)
	EnumValueDescriptorProtoType = pmessage.NewMessageType("google.protobuf.EnumValueDescriptorProto", pmessage.Proto2)
	ServiceDescriptorProtoType   = pmessage.NewMessageType("google.protobuf.ServiceDescriptorProto", pmessage.Proto2)
	MethodDescriptorProtoType    = pmessage.NewMessageType("google.protobuf.MethodDescriptorProto", pmessage.Proto2)

	SourceCodeInfoType = pmessage.NewMessageType("google.protobuf.SourceCodeInfo", pmessage.Proto2)
	locationType       = pmessage.NewMessageType("google.protobuf.SourceCodeInfo.Location", pmessage.Proto2)

	GeneratedCodeInfoType = pmessage.NewMessageType("google.protobuf.GeneratedCodeInfo", pmessage.Proto2)
	annotationType        = pmessage.NewMessageType("google.protobuf.GeneratedCodeInfo.Annotation", pmessage.Proto2)
)

func messageFieldOf(number uint32, required bool, typeName string, mt *pmessage.MessageType) *field.MessageField {
	return must(field.NewMessageField(number, required, typeName, func() field.Message { return mt.New() }))
}

// repeatedMessageOf, repeatedStringOf and repeatedInt32Packed all construct
// the inner element descriptor with the same field number as the outer
// Repeated: unpacked Repeated.Encode writes each element's own tag byte,
// so the element descriptor's number must equal the repeated field's
// number or the wrong tag ends up on the wire.
func repeatedMessageOf(number uint32, typeName string, mt *pmessage.MessageType) *field.Repeated {
	return must(field.NewRepeated(number, messageFieldOf(number, false, typeName, mt), false))
}

func repeatedStringOf(number uint32) *field.Repeated {
	return must(field.NewRepeated(number, must(field.NewString(number, false)), false))
}

func repeatedInt32Packed(number uint32) *field.Repeated {
	return must(field.NewRepeated(number, must(field.NewInt32(number, false)), true))
}

func init() {
	defineUninterpretedOption()
	defineOptions()
	defineFileDescriptor()
	defineDescriptorProto()
	defineFieldDescriptorProto()
	defineOneofDescriptorProto()
	defineEnumDescriptorProto()
	defineServiceAndMethod()
	defineSourceCodeInfo()
	defineGeneratedCodeInfo()
}

func defineUninterpretedOption() {
	must0(pmessage.DefineFields(uninterpretedOptionNamePart,
		pmessage.FieldDef{Name: "name_part", Field: must(field.NewString(1, true))},
		pmessage.FieldDef{Name: "is_extension", Field: must(field.NewBool(2, true))},
	))
	must0(pmessage.DefineFields(UninterpretedOptionType,
		pmessage.FieldDef{Name: "name", Field: repeatedMessageOf(2, "google.protobuf.UninterpretedOption.NamePart", uninterpretedOptionNamePart)},
		pmessage.FieldDef{Name: "identifier_value", Field: must(field.NewString(3, false))},
		pmessage.FieldDef{Name: "positive_int_value", Field: must(field.NewUInt64(4, false))},
		pmessage.FieldDef{Name: "negative_int_value", Field: must(field.NewInt64(5, false))},
		pmessage.FieldDef{Name: "double_value", Field: must(field.NewDouble(6, false))},
		pmessage.FieldDef{Name: "string_value", Field: must(field.NewBytes(7, false))},
		pmessage.FieldDef{Name: "aggregate_value", Field: must(field.NewString(8, false))},
	))
}

func defineOptions() {
	uninterpreted := func(num uint32) pmessage.FieldDef {
		return pmessage.FieldDef{Name: "uninterpreted_option", Field: repeatedMessageOf(num, "google.protobuf.UninterpretedOption", UninterpretedOptionType)}
	}

	must0(pmessage.DefineFields(FileOptionsType,
		pmessage.FieldDef{Name: "java_package", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "java_outer_classname", Field: must(field.NewString(8, false))},
		pmessage.FieldDef{Name: "java_multiple_files", Field: must(field.NewBool(10, false, false))},
		pmessage.FieldDef{Name: "optimize_for", Field: must(field.NewEnumField(9, false, optimizeModeNames, "SPEED"))},
		pmessage.FieldDef{Name: "go_package", Field: must(field.NewString(11, false))},
		pmessage.FieldDef{Name: "cc_generic_services", Field: must(field.NewBool(16, false, false))},
		pmessage.FieldDef{Name: "java_generic_services", Field: must(field.NewBool(17, false, false))},
		pmessage.FieldDef{Name: "py_generic_services", Field: must(field.NewBool(18, false, false))},
		pmessage.FieldDef{Name: "deprecated", Field: must(field.NewBool(23, false, false))},
		uninterpreted(999),
	))

	must0(pmessage.DefineFields(MessageOptionsType,
		pmessage.FieldDef{Name: "message_set_wire_format", Field: must(field.NewBool(1, false, false))},
		pmessage.FieldDef{Name: "no_standard_descriptor_accessor", Field: must(field.NewBool(2, false, false))},
		pmessage.FieldDef{Name: "deprecated", Field: must(field.NewBool(3, false, false))},
		pmessage.FieldDef{Name: "map_entry", Field: must(field.NewBool(7, false))},
		uninterpreted(999),
	))

	must0(pmessage.DefineFields(FieldOptionsType,
		pmessage.FieldDef{Name: "ctype", Field: must(field.NewInt32(1, false))},
		pmessage.FieldDef{Name: "packed", Field: must(field.NewBool(2, false))},
		pmessage.FieldDef{Name: "jstype", Field: must(field.NewInt32(6, false))},
		pmessage.FieldDef{Name: "lazy", Field: must(field.NewBool(5, false, false))},
		pmessage.FieldDef{Name: "deprecated", Field: must(field.NewBool(3, false, false))},
		pmessage.FieldDef{Name: "weak", Field: must(field.NewBool(10, false, false))},
		uninterpreted(999),
	))

	must0(pmessage.DefineFields(OneofOptionsType, uninterpreted(999)))

	must0(pmessage.DefineFields(EnumOptionsType,
		pmessage.FieldDef{Name: "allow_alias", Field: must(field.NewBool(2, false))},
		pmessage.FieldDef{Name: "deprecated", Field: must(field.NewBool(3, false, false))},
		uninterpreted(999),
	))

	must0(pmessage.DefineFields(EnumValueOptionsType,
		pmessage.FieldDef{Name: "deprecated", Field: must(field.NewBool(1, false, false))},
		uninterpreted(999),
	))

	must0(pmessage.DefineFields(ServiceOptionsType,
		pmessage.FieldDef{Name: "deprecated", Field: must(field.NewBool(33, false, false))},
		uninterpreted(999),
	))

	must0(pmessage.DefineFields(MethodOptionsType,
		pmessage.FieldDef{Name: "deprecated", Field: must(field.NewBool(33, false, false))},
		pmessage.FieldDef{Name: "idempotency_level", Field: must(field.NewInt32(34, false, 0))},
		uninterpreted(999),
	))

	must0(pmessage.DefineFields(ExtensionRangeOptionsType, uninterpreted(999)))
}

func defineFileDescriptor() {
	must0(pmessage.DefineFields(FileDescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "package", Field: must(field.NewString(2, false))},
		pmessage.FieldDef{Name: "dependency", Field: repeatedStringOf(3)},
		pmessage.FieldDef{Name: "message_type", Field: repeatedMessageOf(4, "google.protobuf.DescriptorProto", DescriptorProtoType)},
		pmessage.FieldDef{Name: "enum_type", Field: repeatedMessageOf(5, "google.protobuf.EnumDescriptorProto", EnumDescriptorProtoType)},
		pmessage.FieldDef{Name: "service", Field: repeatedMessageOf(6, "google.protobuf.ServiceDescriptorProto", ServiceDescriptorProtoType)},
		pmessage.FieldDef{Name: "extension", Field: repeatedMessageOf(7, "google.protobuf.FieldDescriptorProto", FieldDescriptorProtoType)},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(8, false, "google.protobuf.FileOptions", FileOptionsType)},
		pmessage.FieldDef{Name: "source_code_info", Field: messageFieldOf(9, false, "google.protobuf.SourceCodeInfo", SourceCodeInfoType)},
		pmessage.FieldDef{Name: "syntax", Field: must(field.NewString(12, false, "proto2"))},
	))
}

func defineDescriptorProto() {
	must0(pmessage.DefineFields(extensionRangeType,
		pmessage.FieldDef{Name: "start", Field: must(field.NewInt32(1, false))},
		pmessage.FieldDef{Name: "end", Field: must(field.NewInt32(2, false))},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(3, false, "google.protobuf.ExtensionRangeOptions", ExtensionRangeOptionsType)},
	))
	must0(pmessage.DefineFields(reservedRangeType,
		pmessage.FieldDef{Name: "start", Field: must(field.NewInt32(1, false))},
		pmessage.FieldDef{Name: "end", Field: must(field.NewInt32(2, false))},
	))
	must0(pmessage.DefineFields(DescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "field", Field: repeatedMessageOf(2, "google.protobuf.FieldDescriptorProto", FieldDescriptorProtoType)},
		pmessage.FieldDef{Name: "nested_type", Field: repeatedMessageOf(3, "google.protobuf.DescriptorProto", DescriptorProtoType)},
		pmessage.FieldDef{Name: "enum_type", Field: repeatedMessageOf(4, "google.protobuf.EnumDescriptorProto", EnumDescriptorProtoType)},
		pmessage.FieldDef{Name: "extension_range", Field: repeatedMessageOf(5, "google.protobuf.DescriptorProto.ExtensionRange", extensionRangeType)},
		pmessage.FieldDef{Name: "extension", Field: repeatedMessageOf(6, "google.protobuf.FieldDescriptorProto", FieldDescriptorProtoType)},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(7, false, "google.protobuf.MessageOptions", MessageOptionsType)},
		pmessage.FieldDef{Name: "oneof_decl", Field: repeatedMessageOf(8, "google.protobuf.OneofDescriptorProto", OneofDescriptorProtoType)},
		pmessage.FieldDef{Name: "reserved_range", Field: repeatedMessageOf(9, "google.protobuf.DescriptorProto.ReservedRange", reservedRangeType)},
		pmessage.FieldDef{Name: "reserved_name", Field: repeatedStringOf(10)},
	))
}

func defineFieldDescriptorProto() {
	must0(pmessage.DefineFields(FieldDescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "extendee", Field: must(field.NewString(2, false))},
		pmessage.FieldDef{Name: "number", Field: must(field.NewInt32(3, false))},
		pmessage.FieldDef{Name: "label", Field: must(field.NewEnumField(4, false, fieldLabelNames))},
		pmessage.FieldDef{Name: "type", Field: must(field.NewEnumField(5, false, fieldTypeNames))},
		pmessage.FieldDef{Name: "type_name", Field: must(field.NewString(6, false))},
		pmessage.FieldDef{Name: "default_value", Field: must(field.NewString(7, false))},
		pmessage.FieldDef{Name: "oneof_index", Field: must(field.NewInt32(9, false))},
		pmessage.FieldDef{Name: "json_name", Field: must(field.NewString(10, false))},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(8, false, "google.protobuf.FieldOptions", FieldOptionsType)},
	))
}

func defineOneofDescriptorProto() {
	must0(pmessage.DefineFields(OneofDescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(2, false, "google.protobuf.OneofOptions", OneofOptionsType)},
	))
}

func defineEnumDescriptorProto() {
	must0(pmessage.DefineFields(enumReservedRangeType,
		pmessage.FieldDef{Name: "start", Field: must(field.NewInt32(1, false))},
		pmessage.FieldDef{Name: "end", Field: must(field.NewInt32(2, false))},
	))
	must0(pmessage.DefineFields(EnumValueDescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "number", Field: must(field.NewInt32(2, false))},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(3, false, "google.protobuf.EnumValueOptions", EnumValueOptionsType)},
	))
	must0(pmessage.DefineFields(EnumDescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "value", Field: repeatedMessageOf(2, "google.protobuf.EnumValueDescriptorProto", EnumValueDescriptorProtoType)},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(3, false, "google.protobuf.EnumOptions", EnumOptionsType)},
		pmessage.FieldDef{Name: "reserved_range", Field: repeatedMessageOf(4, "google.protobuf.EnumDescriptorProto.EnumReservedRange", enumReservedRangeType)},
		pmessage.FieldDef{Name: "reserved_name", Field: repeatedStringOf(5)},
	))
}

func defineServiceAndMethod() {
	must0(pmessage.DefineFields(MethodDescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "input_type", Field: must(field.NewString(2, false))},
		pmessage.FieldDef{Name: "output_type", Field: must(field.NewString(3, false))},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(4, false, "google.protobuf.MethodOptions", MethodOptionsType)},
		pmessage.FieldDef{Name: "client_streaming", Field: must(field.NewBool(5, false, false))},
		pmessage.FieldDef{Name: "server_streaming", Field: must(field.NewBool(6, false, false))},
	))
	must0(pmessage.DefineFields(ServiceDescriptorProtoType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "method", Field: repeatedMessageOf(2, "google.protobuf.MethodDescriptorProto", MethodDescriptorProtoType)},
		pmessage.FieldDef{Name: "options", Field: messageFieldOf(3, false, "google.protobuf.ServiceOptions", ServiceOptionsType)},
	))
}

func defineSourceCodeInfo() {
	must0(pmessage.DefineFields(locationType,
		pmessage.FieldDef{Name: "path", Field: repeatedInt32Packed(1)},
		pmessage.FieldDef{Name: "span", Field: repeatedInt32Packed(2)},
		pmessage.FieldDef{Name: "leading_comments", Field: must(field.NewString(3, false))},
		pmessage.FieldDef{Name: "trailing_comments", Field: must(field.NewString(4, false))},
		pmessage.FieldDef{Name: "leading_detached_comments", Field: repeatedStringOf(6)},
	))
	must0(pmessage.DefineFields(SourceCodeInfoType,
		pmessage.FieldDef{Name: "location", Field: repeatedMessageOf(1, "google.protobuf.SourceCodeInfo.Location", locationType)},
	))
}

func defineGeneratedCodeInfo() {
	must0(pmessage.DefineFields(annotationType,
		pmessage.FieldDef{Name: "path", Field: repeatedInt32Packed(1)},
		pmessage.FieldDef{Name: "source_file", Field: must(field.NewString(2, false))},
		pmessage.FieldDef{Name: "begin", Field: must(field.NewInt32(3, false))},
		pmessage.FieldDef{Name: "end", Field: must(field.NewInt32(4, false))},
	))
	must0(pmessage.DefineFields(GeneratedCodeInfoType,
		pmessage.FieldDef{Name: "annotation", Field: repeatedMessageOf(1, "google.protobuf.GeneratedCodeInfo.Annotation", annotationType)},
	))
}

func must0(err error) {
	if err != nil {
		panic(err)
	}
}
