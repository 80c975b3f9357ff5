package generator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/descriptorpb"
	"github.com/protox-go/protox/generator"
	"github.com/protox-go/protox/pluginpb"
	"github.com/protox-go/protox/pmessage"
)

func buildGreetingFile(t *testing.T) *pmessage.Message {
	t.Helper()
	idField := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, idField.Set("name", "id"))
	require.NoError(t, idField.Set("number", int32(1)))
	require.NoError(t, idField.Set("type", descriptorpb.TypeInt32))
	require.NoError(t, idField.Set("label", descriptorpb.LabelOptional))

	tagsField := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, tagsField.Set("name", "tags"))
	require.NoError(t, tagsField.Set("number", int32(2)))
	require.NoError(t, tagsField.Set("type", descriptorpb.TypeString))
	require.NoError(t, tagsField.Set("label", descriptorpb.LabelRepeated))

	msg := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, msg.Set("name", "Greeting"))
	fields, err := msg.Get("field")
	require.NoError(t, err)
	require.NoError(t, fields.(*container.List).Append(idField))
	require.NoError(t, fields.(*container.List).Append(tagsField))

	file := descriptorpb.FileDescriptorProtoType.New()
	require.NoError(t, file.Set("name", "greet.proto"))
	require.NoError(t, file.Set("package", "greet"))
	require.NoError(t, file.Set("syntax", "proto3"))
	msgList, err := file.Get("message_type")
	require.NoError(t, err)
	require.NoError(t, msgList.(*container.List).Append(msg))
	return file
}

func buildRequest(t *testing.T, files ...*pmessage.Message) *pmessage.Message {
	t.Helper()
	req := pluginpb.CodeGeneratorRequestType.New()
	names, err := req.Get("file_to_generate")
	require.NoError(t, err)
	protoFiles, err := req.Get("proto_file")
	require.NoError(t, err)
	for _, f := range files {
		name, _ := f.Get("name")
		require.NoError(t, names.(*container.List).Append(name))
		require.NoError(t, protoFiles.(*container.List).Append(f))
	}
	return req
}

func TestGenerateProducesSourceForEveryRequestedFile(t *testing.T) {
	file := buildGreetingFile(t)
	req := buildRequest(t, file)
	require.NoError(t, req.Set("parameter", "base-package=example/greet"))

	resp, err := generator.Generate(req)
	require.NoError(t, err)

	errVal, _ := resp.Get("error")
	assert.Empty(t, errVal)

	fileList, err := resp.Get("file")
	require.NoError(t, err)
	list := fileList.(*container.List)
	require.Equal(t, 1, list.Len())

	genFile := list.Get(0).(*pmessage.Message)
	name, _ := genFile.Get("name")
	assert.Equal(t, "greet_pb.go", name)

	content, _ := genFile.Get("content")
	src, _ := content.(string)
	assert.True(t, strings.Contains(src, "package greet"))
	assert.True(t, strings.Contains(src, "GreetingType"))
	assert.True(t, strings.Contains(src, "GetId"))
	assert.True(t, strings.Contains(src, "field.NewRepeated"))
	assert.True(t, strings.Contains(src, "func init()"))
}

func TestGenerateRejectsOldCompilerVersion(t *testing.T) {
	file := buildGreetingFile(t)
	req := buildRequest(t, file)

	version := pluginpb.VersionType.New()
	require.NoError(t, version.Set("major", int32(2)))
	require.NoError(t, version.Set("minor", int32(0)))
	require.NoError(t, version.Set("patch", int32(0)))
	require.NoError(t, req.Set("compiler_version", version))

	resp, err := generator.Generate(req)
	require.NoError(t, err)
	errVal, _ := resp.Get("error")
	s, _ := errVal.(string)
	assert.NotEmpty(t, s)
}

func TestGenerateEmitsServiceStubsWhenGRPCLibRequested(t *testing.T) {
	file := buildGreetingFile(t)

	method := descriptorpb.MethodDescriptorProtoType.New()
	require.NoError(t, method.Set("name", "SayHello"))
	require.NoError(t, method.Set("input_type", ".greet.Greeting"))
	require.NoError(t, method.Set("output_type", ".greet.Greeting"))

	svc := descriptorpb.ServiceDescriptorProtoType.New()
	require.NoError(t, svc.Set("name", "Greeter"))
	methods, err := svc.Get("method")
	require.NoError(t, err)
	require.NoError(t, methods.(*container.List).Append(method))

	svcList, err := file.Get("service")
	require.NoError(t, err)
	require.NoError(t, svcList.(*container.List).Append(svc))

	req := buildRequest(t, file)
	require.NoError(t, req.Set("parameter", "grpclib"))

	resp, err := generator.Generate(req)
	require.NoError(t, err)
	errVal, _ := resp.Get("error")
	assert.Empty(t, errVal)

	fileList, err := resp.Get("file")
	require.NoError(t, err)
	list := fileList.(*container.List)
	require.Equal(t, 2, list.Len())

	pbFile := list.Get(0).(*pmessage.Message)
	pbName, _ := pbFile.Get("name")
	assert.Equal(t, "greet_pb.go", pbName)

	grpcFile := list.Get(1).(*pmessage.Message)
	grpcName, _ := grpcFile.Get("name")
	assert.Equal(t, "greet_grpclib.go", grpcName)

	content, _ := grpcFile.Get("content")
	src, _ := content.(string)

	assert.Contains(t, src, "GreeterClient interface")
	assert.Contains(t, src, "GreeterServer interface")
	assert.Contains(t, src, "/greet.Greeter/SayHello")
	assert.Contains(t, src, "UNARY_UNARY")

	pbContent, _ := pbFile.Get("content")
	pbSrc, _ := pbContent.(string)
	assert.NotContains(t, pbSrc, "GreeterClient interface")
}

func TestGenerateEnumFieldResolvesSymbolTable(t *testing.T) {
	status := descriptorpb.EnumDescriptorProtoType.New()
	require.NoError(t, status.Set("name", "Status"))
	values, err := status.Get("value")
	require.NoError(t, err)
	active := descriptorpb.EnumValueDescriptorProtoType.New()
	require.NoError(t, active.Set("name", "ACTIVE"))
	require.NoError(t, active.Set("number", int32(0)))
	require.NoError(t, values.(*container.List).Append(active))
	inactive := descriptorpb.EnumValueDescriptorProtoType.New()
	require.NoError(t, inactive.Set("name", "INACTIVE"))
	require.NoError(t, inactive.Set("number", int32(1)))
	require.NoError(t, values.(*container.List).Append(inactive))

	statusField := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, statusField.Set("name", "status"))
	require.NoError(t, statusField.Set("number", int32(3)))
	require.NoError(t, statusField.Set("type", descriptorpb.TypeEnum))
	require.NoError(t, statusField.Set("label", descriptorpb.LabelOptional))
	require.NoError(t, statusField.Set("type_name", ".greet.Status"))

	file := buildGreetingFile(t)
	msgList, err := file.Get("message_type")
	require.NoError(t, err)
	msg := msgList.(*container.List).Get(0).(*pmessage.Message)
	fields, err := msg.Get("field")
	require.NoError(t, err)
	require.NoError(t, fields.(*container.List).Append(statusField))

	enums, err := file.Get("enum_type")
	require.NoError(t, err)
	require.NoError(t, enums.(*container.List).Append(status))

	req := buildRequest(t, file)
	resp, err := generator.Generate(req)
	require.NoError(t, err)
	errVal, _ := resp.Get("error")
	assert.Empty(t, errVal)

	fileList, err := resp.Get("file")
	require.NoError(t, err)
	genFile := fileList.(*container.List).Get(0).(*pmessage.Message)
	content, _ := genFile.Get("content")
	src, _ := content.(string)

	assert.Contains(t, src, "field.NewEnumField")
	assert.Contains(t, src, `"ACTIVE": 0`)
	assert.Contains(t, src, `"INACTIVE": 1`)
}

func TestGenerateMapFieldEmitsMapField(t *testing.T) {
	keyField := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, keyField.Set("name", "key"))
	require.NoError(t, keyField.Set("number", int32(1)))
	require.NoError(t, keyField.Set("type", descriptorpb.TypeString))
	require.NoError(t, keyField.Set("label", descriptorpb.LabelOptional))

	valueField := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, valueField.Set("name", "value"))
	require.NoError(t, valueField.Set("number", int32(2)))
	require.NoError(t, valueField.Set("type", descriptorpb.TypeInt32))
	require.NoError(t, valueField.Set("label", descriptorpb.LabelOptional))

	entryOpts := descriptorpb.MessageOptionsType.New()
	require.NoError(t, entryOpts.Set("map_entry", true))

	entry := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, entry.Set("name", "CountsEntry"))
	require.NoError(t, entry.Set("options", entryOpts))
	entryFields, err := entry.Get("field")
	require.NoError(t, err)
	require.NoError(t, entryFields.(*container.List).Append(keyField))
	require.NoError(t, entryFields.(*container.List).Append(valueField))

	mapField := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, mapField.Set("name", "counts"))
	require.NoError(t, mapField.Set("number", int32(4)))
	require.NoError(t, mapField.Set("type", descriptorpb.TypeMessage))
	require.NoError(t, mapField.Set("label", descriptorpb.LabelRepeated))
	require.NoError(t, mapField.Set("type_name", ".greet.Greeting.CountsEntry"))

	file := buildGreetingFile(t)
	msgList, err := file.Get("message_type")
	require.NoError(t, err)
	msg := msgList.(*container.List).Get(0).(*pmessage.Message)
	nested, err := msg.Get("nested_type")
	require.NoError(t, err)
	require.NoError(t, nested.(*container.List).Append(entry))
	fields, err := msg.Get("field")
	require.NoError(t, err)
	require.NoError(t, fields.(*container.List).Append(mapField))

	req := buildRequest(t, file)
	resp, err := generator.Generate(req)
	require.NoError(t, err)
	errVal, _ := resp.Get("error")
	assert.Empty(t, errVal)

	fileList, err := resp.Get("file")
	require.NoError(t, err)
	genFile := fileList.(*container.List).Get(0).(*pmessage.Message)
	content, _ := genFile.Get("content")
	src, _ := content.(string)

	assert.Contains(t, src, "field.NewMapField")
	assert.NotContains(t, src, "CountsEntryType")
	assert.NotContains(t, src, "field.NewRepeated(4")
}

func TestGenerateUnknownFileToGenerate(t *testing.T) {
	req := pluginpb.CodeGeneratorRequestType.New()
	names, err := req.Get("file_to_generate")
	require.NoError(t, err)
	require.NoError(t, names.(*container.List).Append("missing.proto"))

	resp, err := generator.Generate(req)
	require.NoError(t, err)
	errVal, _ := resp.Get("error")
	s, _ := errVal.(string)
	assert.Contains(t, s, "missing.proto")
}
