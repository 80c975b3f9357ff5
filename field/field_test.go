package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/wire"
)

func TestFieldNumberValidation(t *testing.T) {
	_, err := field.NewInt32(0, false)
	require.Error(t, err)

	_, err = field.NewInt32(1<<29, false)
	require.Error(t, err)

	_, err = field.NewInt32(19500, false)
	require.Error(t, err)

	_, err = field.NewInt32(1, false)
	require.NoError(t, err)
}

func TestInt32RangeValidation(t *testing.T) {
	f, err := field.NewInt32(1, false)
	require.NoError(t, err)

	require.NoError(t, f.Validate(int32(5)))
	require.Error(t, f.Validate(int64(1)<<40))
}

func TestPackedRepeatedInt32(t *testing.T) {
	inner, err := field.NewInt32(1, false)
	require.NoError(t, err)
	rep, err := field.NewRepeated(1, inner, true)
	require.NoError(t, err)

	enc, err := rep.Encode(nil, []interface{}{int32(1), int32(2), int32(3)})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x03, 0x01, 0x02, 0x03}, enc)

	tag, pos, err := wire.DecodeTag(enc, 0)
	require.NoError(t, err)
	assert.Equal(t, wire.Length, tag.Type)

	values, _, err := rep.DecodePacked(enc, pos, true)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(1), int32(2), int32(3)}, values)
}

func TestUnpackedRepeatedMatchesPackedDecode(t *testing.T) {
	inner, err := field.NewInt32(1, false)
	require.NoError(t, err)

	unpackedRep, err := field.NewRepeated(1, inner, false)
	require.NoError(t, err)
	var unpacked []byte
	for _, v := range []int32{1, 2, 3} {
		unpacked, err = inner.Encode(unpacked, v)
		require.NoError(t, err)
	}

	packedRep, err := field.NewRepeated(1, inner, true)
	require.NoError(t, err)
	packed, err := packedRep.Encode(nil, []interface{}{int32(1), int32(2), int32(3)})
	require.NoError(t, err)

	var got []interface{}
	pos := 0
	for pos < len(unpacked) {
		tag, next, err := wire.DecodeTag(unpacked, pos)
		require.NoError(t, err)
		v, next2, err := unpackedRep.DecodeValue(unpacked, next, true)
		require.NoError(t, err)
		got = append(got, v)
		pos = next2
		_ = tag
	}

	tag, pos2, err := wire.DecodeTag(packed, 0)
	require.NoError(t, err)
	require.Equal(t, wire.Length, tag.Type)
	gotPacked, _, err := packedRep.DecodePacked(packed, pos2, true)
	require.NoError(t, err)

	assert.Equal(t, gotPacked, got)
}

func TestMapFieldRoundTrip(t *testing.T) {
	key, err := field.NewString(1, false)
	require.NoError(t, err)
	val, err := field.NewInt32(2, false)
	require.NoError(t, err)
	m, err := field.NewMapField(1, key, val)
	require.NoError(t, err)

	enc, err := m.Encode(nil, map[interface{}]interface{}{"key": int32(1)})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x07, 0x0a, 0x03, 'k', 'e', 'y', 0x10, 0x01}, enc)

	tag, pos, err := wire.DecodeTag(enc, 0)
	require.NoError(t, err)
	assert.Equal(t, wire.Length, tag.Type)
	entry, _, err := m.DecodeValue(enc, pos, true)
	require.NoError(t, err)
	assert.Equal(t, [2]interface{}{"key", int32(1)}, entry)
}

func TestMapRejectsFloatKey(t *testing.T) {
	key, err := field.NewFloat(1, false)
	require.NoError(t, err)
	val, err := field.NewInt32(2, false)
	require.NoError(t, err)
	_, err = field.NewMapField(1, key, val)
	require.Error(t, err)
}

func TestEnumFieldUnknownOrdinalIsReportedAbsent(t *testing.T) {
	ef, err := field.NewEnumField(3, false, map[string]int32{"MERE_MORTAL": 0, "ADMIN": 1})
	require.NoError(t, err)

	name, ok := ef.NameOf(0)
	assert.True(t, ok)
	assert.Equal(t, "MERE_MORTAL", name)

	_, ok = ef.NameOf(42)
	assert.False(t, ok, "unknown ordinals must not resolve to a symbol")
}

func TestPackedRepeatedOfMessageRejected(t *testing.T) {
	mf, err := field.NewMessageField(1, false, ".pkg.Inner", nil)
	require.NoError(t, err)
	_, err = field.NewRepeated(1, mf, true)
	require.Error(t, err)
}
