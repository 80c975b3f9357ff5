package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/descriptorpb"
	"github.com/protox-go/protox/generator"
	"github.com/protox-go/protox/pmessage"
)

func buildFile(t *testing.T, name, pkg string, messages ...*pmessage.Message) *pmessage.Message {
	t.Helper()
	file := descriptorpb.FileDescriptorProtoType.New()
	require.NoError(t, file.Set("name", name))
	require.NoError(t, file.Set("package", pkg))
	require.NoError(t, file.Set("syntax", "proto3"))
	msgList, err := file.Get("message_type")
	require.NoError(t, err)
	for _, m := range messages {
		require.NoError(t, msgList.(*container.List).Append(m))
	}
	return file
}

func buildMessage(t *testing.T, name string) *pmessage.Message {
	t.Helper()
	m := descriptorpb.DescriptorProtoType.New()
	require.NoError(t, m.Set("name", name))
	return m
}

func TestIndexObjectNamed(t *testing.T) {
	msg := buildMessage(t, "Greeting")
	file := buildFile(t, "greet.proto", "greet", msg)

	idx, err := generator.NewIndex([]*pmessage.Message{file})
	require.NoError(t, err)

	obj, err := idx.ObjectNamed(".greet.Greeting")
	require.NoError(t, err)
	assert.NotNil(t, obj)

	_, err = idx.ObjectNamed(".greet.Missing")
	assert.Error(t, err)

	fd, err := idx.FileByName("greet.proto")
	require.NoError(t, err)
	assert.Equal(t, "greet", fd.Package())

	_, err = idx.FileByName("nope.proto")
	assert.Error(t, err)
}

func TestIndexResolvesNestedTypes(t *testing.T) {
	inner := buildMessage(t, "Inner")
	outer := buildMessage(t, "Outer")
	nestedList, err := outer.Get("nested_type")
	require.NoError(t, err)
	require.NoError(t, nestedList.(*container.List).Append(inner))

	file := buildFile(t, "nest.proto", "nest", outer)
	idx, err := generator.NewIndex([]*pmessage.Message{file})
	require.NoError(t, err)

	obj, err := idx.ObjectNamed(".nest.Outer.Inner")
	require.NoError(t, err)
	assert.NotNil(t, obj)
}
