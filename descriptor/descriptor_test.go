package descriptor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/descriptor"
	"github.com/protox-go/protox/descriptorpb"
)

func newField(t *testing.T, name string, number int32, typ int32) interface{} {
	t.Helper()
	f := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, f.Set("name", name))
	require.NoError(t, f.Set("number", number))
	require.NoError(t, f.Set("type", typ))
	return f
}

func TestWrapFileMessagesAndNesting(t *testing.T) {
	outer := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, outer.Set("name", "Outer"))

	inner := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, inner.Set("name", "Inner"))

	nestedList, err := outer.Get("nested_type")
	require.NoError(t, err)
	require.NoError(t, nestedList.(*container.List).Append(inner))

	fieldList, err := outer.Get("field")
	require.NoError(t, err)
	require.NoError(t, fieldList.(*container.List).Append(newField(t, "id", 1, descriptorpb.TypeInt32)))

	file := descriptorpb.FileDescriptorProtoType.New()
	require.NoError(t, file.Set("name", "a/b/c.proto"))
	require.NoError(t, file.Set("package", "pkg"))
	fileMsgs, err := file.Get("message_type")
	require.NoError(t, err)
	require.NoError(t, fileMsgs.(*container.List).Append(outer))

	fd := descriptor.WrapFile(file, 0)
	require.Len(t, fd.Messages, 2)
	assert.Equal(t, "a__b__c_pb", fd.PackageAlias())
	assert.Equal(t, "a/b/c_pb.go", fd.OutputFileName())
	assert.Equal(t, "a/b/c_grpclib.go", fd.GrpclibFileName())

	top := fd.Messages[0]
	assert.Equal(t, "Outer", top.Name())
	assert.Equal(t, []string{"Outer"}, top.TypeName())
	require.Len(t, top.Nested(), 1)
	assert.Equal(t, "pkg.Outer.Inner", top.Nested()[0].FullName())
	require.Len(t, top.Fields(), 1)
}

func TestWrapFileEnums(t *testing.T) {
	val := descriptorpb.EnumValueDescriptorProtoType.New()
	require.NoError(t, val.Set("name", "RED"))
	require.NoError(t, val.Set("number", int32(0)))

	enum := descriptorpb.EnumDescriptorProtoType.New()
	require.NoError(t, enum.Set("name", "Color"))
	values, err := enum.Get("value")
	require.NoError(t, err)
	require.NoError(t, values.(*container.List).Append(val))

	file := descriptorpb.FileDescriptorProtoType.New()
	require.NoError(t, file.Set("name", "x.proto"))
	enums, err := file.Get("enum_type")
	require.NoError(t, err)
	require.NoError(t, enums.(*container.List).Append(enum))

	fd := descriptor.WrapFile(file, 0)
	require.Len(t, fd.Enums, 1)
	assert.Equal(t, "Color_", fd.Enums[0].Prefix())
}

func TestMapEntryDetection(t *testing.T) {
	entry := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, entry.Set("name", "StatusEntry"))
	opts := descriptorpb.MessageOptionsType.New()
	require.NoError(t, opts.Set("map_entry", true))
	require.NoError(t, entry.Set("options", opts))

	file := descriptorpb.FileDescriptorProtoType.New()
	require.NoError(t, file.Set("name", "m.proto"))
	msgs, err := file.Get("message_type")
	require.NoError(t, err)
	require.NoError(t, msgs.(*container.List).Append(entry))

	fd := descriptor.WrapFile(file, 0)
	require.Len(t, fd.Messages, 1)
	assert.True(t, fd.Messages[0].IsMapEntry())
}

func TestNestedTypeNamePath(t *testing.T) {
	outer := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, outer.Set("name", "Outer"))
	inner := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, inner.Set("name", "Inner"))
	nestedList, err := outer.Get("nested_type")
	require.NoError(t, err)
	require.NoError(t, nestedList.(*container.List).Append(inner))

	file := descriptorpb.FileDescriptorProtoType.New()
	require.NoError(t, file.Set("name", "a.proto"))
	require.NoError(t, file.Set("package", "pkg"))
	fileMsgs, err := file.Get("message_type")
	require.NoError(t, err)
	require.NoError(t, fileMsgs.(*container.List).Append(outer))

	fd := descriptor.WrapFile(file, 0)
	got := fd.Messages[0].Nested()[0].TypeName()
	want := []string{"Outer", "Inner"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("TypeName() mismatch (-want +got):\n%s", diff)
	}
}

func TestCamelCaseAndImportAlias(t *testing.T) {
	assert.Equal(t, "MyFieldName", descriptor.CamelCase("my_field_name"))
	assert.Equal(t, "XFoo", descriptor.CamelCase("_foo"))
	assert.Equal(t, "a__b__c_pb", descriptor.ImportAlias("a/b/c.proto"))
}
