package descriptorpb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/descriptorpb"
)

func TestFieldDescriptorRoundTrip(t *testing.T) {
	fd := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, fd.Set("name", "id"))
	require.NoError(t, fd.Set("number", int32(1)))
	require.NoError(t, fd.Set("label", descriptorpb.LabelOptional))
	require.NoError(t, fd.Set("type", descriptorpb.TypeInt32))

	bs, err := fd.ToBytes()
	require.NoError(t, err)

	fd2 := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, fd2.FromBytes(bs, true))
	name, err := fd2.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "id", name)
	typ, err := fd2.Get("type")
	require.NoError(t, err)
	assert.Equal(t, descriptorpb.TypeInt32, typ)
}

func TestDescriptorProtoWithNestedFields(t *testing.T) {
	field1 := descriptorpb.FieldDescriptorProtoType.New()
	require.NoError(t, field1.Set("name", "x"))
	require.NoError(t, field1.Set("number", int32(1)))
	require.NoError(t, field1.Set("type", descriptorpb.TypeInt32))

	msg := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, msg.Set("name", "Point"))
	fv, err := msg.Get("field")
	require.NoError(t, err)
	require.NoError(t, fv.(*container.List).Append(field1))

	bs, err := msg.ToBytes()
	require.NoError(t, err)

	msg2 := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, msg2.FromBytes(bs, true))
	nm, err := msg2.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Point", nm)
	fv2, err := msg2.Get("field")
	require.NoError(t, err)
	assert.Equal(t, 1, fv2.(*container.List).Len())
}

func TestMessageOptionsMapEntryFlag(t *testing.T) {
	opts := descriptorpb.MessageOptionsType.New()
	require.NoError(t, opts.Set("map_entry", true))
	v, err := opts.Get("map_entry")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestFileDescriptorProtoDefaultSyntax(t *testing.T) {
	fdp := descriptorpb.FileDescriptorProtoType.New()
	v, err := fdp.Get("syntax")
	require.NoError(t, err)
	assert.Equal(t, "proto2", v)
}
