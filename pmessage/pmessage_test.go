package pmessage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/pmessage"
)

func mustField[T any](t *testing.T, f T, err error) T {
	t.Helper()
	require.NoError(t, err)
	return f
}

func newPointType(t *testing.T) *pmessage.MessageType {
	mt := pmessage.NewMessageType("Point", pmessage.Proto2)
	require.NoError(t, pmessage.DefineFields(mt,
		pmessage.FieldDef{Name: "x", Field: mustField(t, field.NewInt64(1, false))},
		pmessage.FieldDef{Name: "y", Field: mustField(t, field.NewInt64(2, false))},
		pmessage.FieldDef{Name: "z", Field: mustField(t, field.NewInt64(3, false))},
	))
	return mt
}

func TestPointRoundTrip(t *testing.T) {
	mt := newPointType(t)
	m := mt.New()
	require.NoError(t, m.Set("x", int64(1)))
	require.NoError(t, m.Set("y", int64(2)))
	require.NoError(t, m.Set("z", int64(3)))

	bs, err := m.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x01, 0x10, 0x02, 0x18, 0x03}, bs)

	m2 := mt.New()
	require.NoError(t, m2.FromBytes(bs, true))
	assert.True(t, m.Equal(m2))
}

func userType(t *testing.T) (*pmessage.MessageType, *field.EnumField) {
	ef := mustField(t, field.NewEnumField(3, false, map[string]int32{
		"MERE_MORTAL": 0,
		"ADMIN":       1,
	}, "MERE_MORTAL"))
	mt := pmessage.NewMessageType("User", pmessage.Proto2)
	require.NoError(t, pmessage.DefineFields(mt,
		pmessage.FieldDef{Name: "id", Field: mustField(t, field.NewUInt32(1, true))},
		pmessage.FieldDef{Name: "name", Field: mustField(t, field.NewString(2, true))},
		pmessage.FieldDef{Name: "type", Field: ef},
	))
	return mt, ef
}

func TestUserDefaultNotEncodedUnlessSet(t *testing.T) {
	mt, _ := userType(t)
	m := mt.New()
	require.NoError(t, m.Set("id", uint32(5)))
	require.NoError(t, m.Set("name", "ann"))

	bs, err := m.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x05, 0x12, 0x03, 'a', 'n', 'n'}, bs)

	m2 := mt.New()
	require.NoError(t, m2.FromBytes(bs, true))
	v, err := m2.Get("type")
	require.NoError(t, err)
	assert.Equal(t, int32(0), v)
}

func TestMissingRequiredFieldFailsEncode(t *testing.T) {
	mt, _ := userType(t)
	m := mt.New()
	require.NoError(t, m.Set("id", uint32(5)))
	_, err := m.ToBytes()
	require.Error(t, err)
}

func TestUnknownFieldToleranceOnDecode(t *testing.T) {
	mt := pmessage.NewMessageType("WithID", pmessage.Proto2)
	require.NoError(t, pmessage.DefineFields(mt,
		pmessage.FieldDef{Name: "id", Field: mustField(t, field.NewUInt32(1, false))},
	))

	var buf []byte
	idField := mustField(t, field.NewUInt32(1, false))
	buf, err := idField.Encode(buf, uint32(7))
	require.NoError(t, err)
	unknown := mustField(t, field.NewInt32(2, false))
	buf, err = unknown.Encode(buf, int32(99))
	require.NoError(t, err)

	m := mt.New()
	require.NoError(t, m.FromBytes(buf, true))
	v, err := m.Get("id")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestPackedRepeatedFieldWireBytes(t *testing.T) {
	mt := pmessage.NewMessageType("Xs", pmessage.Proto2)
	inner := mustField(t, field.NewInt32(1, false))
	rep := mustField(t, field.NewRepeated(1, inner, true))
	require.NoError(t, pmessage.DefineFields(mt, pmessage.FieldDef{Name: "xs", Field: rep}))

	m := mt.New()
	lv, err := m.Get("xs")
	require.NoError(t, err)
	l := lv.(*container.List)
	require.NoError(t, l.Extend([]interface{}{int32(1), int32(2), int32(3)}))

	bs, err := m.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x03, 0x01, 0x02, 0x03}, bs)

	m2 := mt.New()
	require.NoError(t, m2.FromBytes(bs, true))
	l2v, err := m2.Get("xs")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(1), int32(2), int32(3)}, l2v.(*container.List).Slice())
}

func TestMapFieldWireBytes(t *testing.T) {
	mt := pmessage.NewMessageType("M", pmessage.Proto2)
	key := mustField(t, field.NewString(1, false))
	val := mustField(t, field.NewInt32(2, false))
	mf := mustField(t, field.NewMapField(1, key, val))
	require.NoError(t, pmessage.DefineFields(mt, pmessage.FieldDef{Name: "m", Field: mf}))

	m := mt.New()
	dv, err := m.Get("m")
	require.NoError(t, err)
	require.NoError(t, dv.(*container.Dict).Set("key", int32(1)))

	bs, err := m.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x07, 0x0a, 0x03, 'k', 'e', 'y', 0x10, 0x01}, bs)

	m2 := mt.New()
	require.NoError(t, m2.FromBytes(bs, true))
	d2v, err := m2.Get("m")
	require.NoError(t, err)
	v, ok := d2v.(*container.Dict).Get("key")
	require.True(t, ok)
	assert.Equal(t, int32(1), v)
}

func TestOneOfExclusivity(t *testing.T) {
	mt := pmessage.NewMessageType("Result", pmessage.Proto2)
	require.NoError(t, pmessage.DefineFields(mt,
		pmessage.FieldDef{Name: "ok", Field: mustField(t, field.NewInt32(10, false)), OneOf: "result"},
		pmessage.FieldDef{Name: "fail", Field: mustField(t, field.NewInt32(11, false)), OneOf: "result"},
	))

	m := mt.New()
	require.NoError(t, m.Set("ok", int32(1)))
	require.NoError(t, m.Set("fail", int32(2)))

	winner, err := m.WhichOneOf("result")
	require.NoError(t, err)
	assert.Equal(t, "fail", winner)
	assert.False(t, m.Has("ok"))

	bs, err := m.ToBytes()
	require.NoError(t, err)
	m2 := mt.New()
	require.NoError(t, m2.FromBytes(bs, true))
	winner2, err := m2.WhichOneOf("result")
	require.NoError(t, err)
	assert.Equal(t, "fail", winner2)
}

func TestWhichOneOfUnknownGroup(t *testing.T) {
	mt := pmessage.NewMessageType("Empty", pmessage.Proto2)
	m := mt.New()
	_, err := m.WhichOneOf("nope")
	require.Error(t, err)
}

func TestForwardCompatibility(t *testing.T) {
	t1 := pmessage.NewMessageType("T", pmessage.Proto2)
	require.NoError(t, pmessage.DefineFields(t1,
		pmessage.FieldDef{Name: "a", Field: mustField(t, field.NewInt32(1, false))},
	))
	t2 := pmessage.NewMessageType("T", pmessage.Proto2)
	require.NoError(t, pmessage.DefineFields(t2,
		pmessage.FieldDef{Name: "a", Field: mustField(t, field.NewInt32(1, false))},
		pmessage.FieldDef{Name: "b", Field: mustField(t, field.NewInt32(2, false))},
	))

	m2 := t2.New()
	require.NoError(t, m2.Set("a", int32(1)))
	require.NoError(t, m2.Set("b", int32(2)))
	bs, err := m2.ToBytes()
	require.NoError(t, err)

	m1 := t1.New()
	require.NoError(t, m1.FromBytes(bs, true))
	v, err := m1.Get("a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)
}

func TestRequiredOneOfMemberRejected(t *testing.T) {
	mt := pmessage.NewMessageType("Bad", pmessage.Proto2)
	err := pmessage.DefineFields(mt,
		pmessage.FieldDef{Name: "a", Field: mustField(t, field.NewInt32(1, true)), OneOf: "g"},
	)
	require.Error(t, err)
}

func TestProto3ZeroValueNotEncoded(t *testing.T) {
	mt := pmessage.NewMessageType("P3", pmessage.Proto3)
	require.NoError(t, pmessage.DefineFields(mt,
		pmessage.FieldDef{Name: "n", Field: mustField(t, field.NewInt32(1, false))},
	))
	m := mt.New()
	require.NoError(t, m.Set("n", int32(0)))
	bs, err := m.ToBytes()
	require.NoError(t, err)
	assert.Empty(t, bs)

	require.NoError(t, m.Set("n", int32(5)))
	bs, err = m.ToBytes()
	require.NoError(t, err)
	assert.NotEmpty(t, bs)
}
