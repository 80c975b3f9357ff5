package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/field"
)

func TestListRejectsInvalidAppend(t *testing.T) {
	elem, err := field.NewInt32(1, false)
	require.NoError(t, err)
	l := container.NewList(elem)

	require.NoError(t, l.Append(int32(5)))
	require.Error(t, l.Append("not an int"))
	assert.Equal(t, 1, l.Len())
}

func TestListExtendIsAtomic(t *testing.T) {
	elem, err := field.NewInt32(1, false)
	require.NoError(t, err)
	l := container.NewList(elem)

	err = l.Extend([]interface{}{int32(1), "bad", int32(3)})
	require.Error(t, err)
	assert.Equal(t, 0, l.Len(), "a failed extend must not partially apply")
}

func TestDictValidatesKeyAndValue(t *testing.T) {
	key, err := field.NewString(1, false)
	require.NoError(t, err)
	val, err := field.NewInt32(2, false)
	require.NoError(t, err)
	d := container.NewDict(key, val)

	require.NoError(t, d.Set("a", int32(1)))
	require.Error(t, d.Set("b", "not an int"))

	v, ok := d.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int32(1), v)
}
