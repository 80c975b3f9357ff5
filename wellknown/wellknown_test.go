package wellknown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/pmessage"
	"github.com/protox-go/protox/wellknown"
)

func TestValueFromToPythonScalars(t *testing.T) {
	for _, v := range []interface{}{nil, 3.5, "hi", true} {
		msg, err := wellknown.ValueFromPython(v)
		require.NoError(t, err)
		back, err := wellknown.ValueToPython(msg)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestStructRoundTrip(t *testing.T) {
	m := map[string]interface{}{"a": 1.0, "b": "x"}
	s, err := wellknown.StructFromPython(m)
	require.NoError(t, err)

	bs, err := s.ToBytes()
	require.NoError(t, err)

	s2 := wellknown.StructType.New()
	require.NoError(t, s2.FromBytes(bs, true))
	back, err := wellknown.StructToPython(s2)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestListValueRoundTrip(t *testing.T) {
	v, err := wellknown.ValueFromPython([]interface{}{1.0, "two", true})
	require.NoError(t, err)
	bs, err := v.ToBytes()
	require.NoError(t, err)

	v2 := wellknown.ValueType.New()
	require.NoError(t, v2.FromBytes(bs, true))
	back, err := wellknown.ValueToPython(v2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1.0, "two", true}, back)
}

func TestAnyPackUnpack(t *testing.T) {
	d := wellknown.DurationType.New()
	require.NoError(t, d.Set("seconds", int64(5)))

	a, err := wellknown.Pack("google.protobuf.Duration", d)
	require.NoError(t, err)

	reg := wellknown.MapRegistry{
		"google.protobuf.Duration": func() *pmessage.Message { return wellknown.DurationType.New() },
	}
	out, err := wellknown.Unpack(a, reg)
	require.NoError(t, err)
	v, err := out.Get("seconds")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestTimestampISO8601RoundTrip(t *testing.T) {
	ts, err := wellknown.TimestampFromISO8601("2020-01-02T03:04:05Z")
	require.NoError(t, err)
	s, err := wellknown.TimestampToISO8601(ts)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02T03:04:05.000000000Z", s)
}

func TestFieldMaskOperations(t *testing.T) {
	a, err := wellknown.NewFieldMask("a.b", "c")
	require.NoError(t, err)
	b, err := wellknown.NewFieldMask("c", "d")
	require.NoError(t, err)

	union, err := wellknown.FieldMaskUnion(a, b)
	require.NoError(t, err)
	up, err := wellknown.FieldMaskPaths(union)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.b", "c", "d"}, up)

	inter, err := wellknown.FieldMaskIntersect(a, b)
	require.NoError(t, err)
	ip, err := wellknown.FieldMaskPaths(inter)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ip)

	contains, err := wellknown.FieldMaskContains(a, "a.b.c")
	require.NoError(t, err)
	assert.True(t, contains)
}
