// Package wellknown implements the small set of message types every
// protobuf runtime ships as a convenience layer over the core wire format:
// Empty, Any, Duration, Timestamp, the Struct/Value/ListValue JSON-like
// value tree, the scalar wrapper messages, and FieldMask. None of these
// are in spec.md's prose; they are supplemented from
// original_source/protox/well_known_types per SPEC_FULL.md Module H.
package wellknown

import (
	"time"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/pmessage"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func must0(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	EmptyType = pmessage.NewMessageType("google.protobuf.Empty", pmessage.Proto3)

	AnyType = pmessage.NewMessageType("google.protobuf.Any", pmessage.Proto3)

	DurationType  = pmessage.NewMessageType("google.protobuf.Duration", pmessage.Proto3)
	TimestampType = pmessage.NewMessageType("google.protobuf.Timestamp", pmessage.Proto3)

	FieldMaskType = pmessage.NewMessageType("google.protobuf.FieldMask", pmessage.Proto3)

	StructType    = pmessage.NewMessageType("google.protobuf.Struct", pmessage.Proto3)
	ValueType     = pmessage.NewMessageType("google.protobuf.Value", pmessage.Proto3)
	ListValueType = pmessage.NewMessageType("google.protobuf.ListValue", pmessage.Proto3)

	DoubleValueType = pmessage.NewMessageType("google.protobuf.DoubleValue", pmessage.Proto3)
	FloatValueType  = pmessage.NewMessageType("google.protobuf.FloatValue", pmessage.Proto3)
	Int64ValueType  = pmessage.NewMessageType("google.protobuf.Int64Value", pmessage.Proto3)
	UInt64ValueType = pmessage.NewMessageType("google.protobuf.UInt64Value", pmessage.Proto3)
	Int32ValueType  = pmessage.NewMessageType("google.protobuf.Int32Value", pmessage.Proto3)
	UInt32ValueType = pmessage.NewMessageType("google.protobuf.UInt32Value", pmessage.Proto3)
	BoolValueType   = pmessage.NewMessageType("google.protobuf.BoolValue", pmessage.Proto3)
	StringValueType = pmessage.NewMessageType("google.protobuf.StringValue", pmessage.Proto3)
	BytesValueType  = pmessage.NewMessageType("google.protobuf.BytesValue", pmessage.Proto3)
)

// NullValue is the sole value of google.protobuf.NullValue.
const NullValue int32 = 0

func init() {
	must0(pmessage.DefineFields(AnyType,
		pmessage.FieldDef{Name: "type_url", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "value", Field: must(field.NewBytes(2, false))},
	))

	must0(pmessage.DefineFields(DurationType,
		pmessage.FieldDef{Name: "seconds", Field: must(field.NewInt64(1, false))},
		pmessage.FieldDef{Name: "nanos", Field: must(field.NewInt32(2, false))},
	))
	must0(pmessage.DefineFields(TimestampType,
		pmessage.FieldDef{Name: "seconds", Field: must(field.NewInt64(1, false))},
		pmessage.FieldDef{Name: "nanos", Field: must(field.NewInt32(2, false))},
	))

	must0(pmessage.DefineFields(FieldMaskType,
		pmessage.FieldDef{Name: "paths", Field: must(field.NewRepeated(1, must(field.NewString(1, false)), false))},
	))

	must0(pmessage.DefineFields(StructType,
		pmessage.FieldDef{Name: "fields", Field: must(field.NewMapField(1,
			must(field.NewString(1, false)),
			must(field.NewMessageField(2, false, "google.protobuf.Value", func() field.Message { return ValueType.New() })),
		))},
	))
	must0(pmessage.DefineFields(ValueType,
		pmessage.FieldDef{Name: "null_value", Field: must(field.NewEnumField(1, false, map[string]int32{"NULL_VALUE": NullValue})), OneOf: "kind"},
		pmessage.FieldDef{Name: "number_value", Field: must(field.NewDouble(2, false)), OneOf: "kind"},
		pmessage.FieldDef{Name: "string_value", Field: must(field.NewString(3, false)), OneOf: "kind"},
		pmessage.FieldDef{Name: "bool_value", Field: must(field.NewBool(4, false)), OneOf: "kind"},
		pmessage.FieldDef{Name: "struct_value", Field: must(field.NewMessageField(5, false, "google.protobuf.Struct", func() field.Message { return StructType.New() })), OneOf: "kind"},
		pmessage.FieldDef{Name: "list_value", Field: must(field.NewMessageField(6, false, "google.protobuf.ListValue", func() field.Message { return ListValueType.New() })), OneOf: "kind"},
	))
	must0(pmessage.DefineFields(ListValueType,
		pmessage.FieldDef{Name: "values", Field: must(field.NewRepeated(1,
			must(field.NewMessageField(1, false, "google.protobuf.Value", func() field.Message { return ValueType.New() })), false))},
	))

	must0(pmessage.DefineFields(DoubleValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewDouble(1, false))}))
	must0(pmessage.DefineFields(FloatValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewFloat(1, false))}))
	must0(pmessage.DefineFields(Int64ValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewInt64(1, false))}))
	must0(pmessage.DefineFields(UInt64ValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewUInt64(1, false))}))
	must0(pmessage.DefineFields(Int32ValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewInt32(1, false))}))
	must0(pmessage.DefineFields(UInt32ValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewUInt32(1, false))}))
	must0(pmessage.DefineFields(BoolValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewBool(1, false))}))
	must0(pmessage.DefineFields(StringValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewString(1, false))}))
	must0(pmessage.DefineFields(BytesValueType, pmessage.FieldDef{Name: "value", Field: must(field.NewBytes(1, false))}))
}

// ValueFromPython mirrors protox's Value.from_python: it builds a
// google.protobuf.Value instance from a plain Go value (nil, float64,
// float32, int, string, bool, map[string]interface{}, or []interface{}).
func ValueFromPython(v interface{}) (*pmessage.Message, error) {
	msg := ValueType.New()
	switch x := v.(type) {
	case nil:
		if err := msg.Set("null_value", NullValue); err != nil {
			return nil, err
		}
	case float64:
		if err := msg.Set("number_value", x); err != nil {
			return nil, err
		}
	case float32:
		if err := msg.Set("number_value", float64(x)); err != nil {
			return nil, err
		}
	case int:
		if err := msg.Set("number_value", float64(x)); err != nil {
			return nil, err
		}
	case string:
		if err := msg.Set("string_value", x); err != nil {
			return nil, err
		}
	case bool:
		if err := msg.Set("bool_value", x); err != nil {
			return nil, err
		}
	case map[string]interface{}:
		s, err := StructFromPython(x)
		if err != nil {
			return nil, err
		}
		if err := msg.Set("struct_value", s); err != nil {
			return nil, err
		}
	case []interface{}:
		lv := ListValueType.New()
		vals, err := lv.Get("values")
		if err != nil {
			return nil, err
		}
		for _, item := range x {
			iv, err := ValueFromPython(item)
			if err != nil {
				return nil, err
			}
			if err := vals.(*container.List).Append(iv); err != nil {
				return nil, err
			}
		}
		if err := msg.Set("list_value", lv); err != nil {
			return nil, err
		}
	default:
		return nil, perr.ValueError("invalid value %#v for google.protobuf.Value", v)
	}
	return msg, nil
}

// ValueToPython is the inverse of ValueFromPython, returning nil for
// NullValue and unwrapping nested Struct/ListValue instances recursively.
func ValueToPython(msg *pmessage.Message) (interface{}, error) {
	kind, err := msg.WhichOneOf("kind")
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, nil
	}
	v, err := msg.Get(kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "null_value":
		return nil, nil
	case "struct_value":
		return StructToPython(v.(*pmessage.Message))
	case "list_value":
		lv := v.(*pmessage.Message)
		vals, err := lv.Get("values")
		if err != nil {
			return nil, err
		}
		list := vals.(*container.List)
		out := make([]interface{}, list.Len())
		for i := 0; i < list.Len(); i++ {
			out[i], err = ValueToPython(list.Get(i).(*pmessage.Message))
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return v, nil
	}
}

// StructFromPython builds a google.protobuf.Struct from a plain Go map.
func StructFromPython(m map[string]interface{}) (*pmessage.Message, error) {
	s := StructType.New()
	fv, err := s.Get("fields")
	if err != nil {
		return nil, err
	}
	dict := fv.(*container.Dict)
	for k, v := range m {
		val, err := ValueFromPython(v)
		if err != nil {
			return nil, err
		}
		if err := dict.Set(k, val); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// StructToPython is the inverse of StructFromPython.
func StructToPython(s *pmessage.Message) (map[string]interface{}, error) {
	fv, err := s.Get("fields")
	if err != nil {
		return nil, err
	}
	dict := fv.(*container.Dict)
	out := make(map[string]interface{}, dict.Len())
	for k, v := range dict.Map() {
		py, err := ValueToPython(v.(*pmessage.Message))
		if err != nil {
			return nil, err
		}
		out[k.(string)] = py
	}
	return out, nil
}

// Pack wraps msg into an Any, stamping type_url with the
// "type.googleapis.com/<fully.qualified.Name>" convention.
func Pack(typeName string, msg interface{ ToBytes() ([]byte, error) }) (*pmessage.Message, error) {
	payload, err := msg.ToBytes()
	if err != nil {
		return nil, err
	}
	a := AnyType.New()
	if err := a.Set("type_url", "type.googleapis.com/"+typeName); err != nil {
		return nil, err
	}
	if err := a.Set("value", payload); err != nil {
		return nil, err
	}
	return a, nil
}

// Registry resolves a fully qualified message name to a fresh zero
// instance, the minimal type registry Unpack needs.
type Registry interface {
	New(typeName string) (*pmessage.Message, error)
}

// MapRegistry is a Registry backed by a plain map of factory functions,
// keyed by fully qualified message type name.
type MapRegistry map[string]func() *pmessage.Message

func (r MapRegistry) New(typeName string) (*pmessage.Message, error) {
	newFn, ok := r[typeName]
	if !ok {
		return nil, perr.NotImplementedError("no registered message type %q", typeName)
	}
	return newFn(), nil
}

// Unpack decodes an Any's payload into a fresh instance of the type its
// type_url names, resolved through reg.
func Unpack(a *pmessage.Message, reg Registry) (*pmessage.Message, error) {
	urlVal, err := a.Get("type_url")
	if err != nil {
		return nil, err
	}
	url, _ := urlVal.(string)
	typeName := url
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == '/' {
			typeName = url[i+1:]
			break
		}
	}
	if typeName == "" {
		return nil, perr.ValueError("Any has no type_url")
	}
	msg, err := reg.New(typeName)
	if err != nil {
		return nil, err
	}
	valVal, err := a.Get("value")
	if err != nil {
		return nil, err
	}
	payload, _ := valVal.([]byte)
	if err := msg.FromBytes(payload, false); err != nil {
		return nil, perr.Wrap(err, "unpacking Any of type %q", typeName)
	}
	return msg, nil
}

// TimestampFromISO8601 is the ISO-8601 helper spec.md §1 budgets: it parses
// an RFC3339 string into a Timestamp message, grounded on protox's
// Timestamp.from_json_string.
func TimestampFromISO8601(s string) (*pmessage.Message, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, perr.ValueError("invalid RFC3339 timestamp %q: %v", s, err)
	}
	msg := TimestampType.New()
	if err := msg.Set("seconds", t.Unix()); err != nil {
		return nil, err
	}
	if err := msg.Set("nanos", int32(t.Nanosecond())); err != nil {
		return nil, err
	}
	return msg, nil
}

// TimestampToISO8601 is the inverse of TimestampFromISO8601, always
// rendering in UTC with a trailing "Z".
func TimestampToISO8601(msg *pmessage.Message) (string, error) {
	secV, err := msg.Get("seconds")
	if err != nil {
		return "", err
	}
	nanosV, err := msg.Get("nanos")
	if err != nil {
		return "", err
	}
	sec, _ := secV.(int64)
	nanos, _ := nanosV.(int32)
	return time.Unix(sec, int64(nanos)).UTC().Format("2006-01-02T15:04:05.000000000Z"), nil
}

// FieldMaskPaths reads a FieldMask's paths field as a plain []string.
func FieldMaskPaths(msg *pmessage.Message) ([]string, error) {
	pv, err := msg.Get("paths")
	if err != nil {
		return nil, err
	}
	items := pv.(*container.List).Slice()
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.(string)
	}
	return out, nil
}

// NewFieldMask builds a FieldMask from a plain []string.
func NewFieldMask(paths ...string) (*pmessage.Message, error) {
	msg := FieldMaskType.New()
	pv, err := msg.Get("paths")
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(paths))
	for i, p := range paths {
		values[i] = p
	}
	if err := pv.(*container.List).Extend(values); err != nil {
		return nil, err
	}
	return msg, nil
}

// FieldMaskUnion returns a FieldMask containing every path present in
// either mask, deduplicated.
func FieldMaskUnion(a, b *pmessage.Message) (*pmessage.Message, error) {
	pa, err := FieldMaskPaths(a)
	if err != nil {
		return nil, err
	}
	pb, err := FieldMaskPaths(b)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(pa)+len(pb))
	var out []string
	for _, p := range append(append([]string{}, pa...), pb...) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return NewFieldMask(out...)
}

// FieldMaskIntersect returns a FieldMask containing only paths present in
// both masks.
func FieldMaskIntersect(a, b *pmessage.Message) (*pmessage.Message, error) {
	pa, err := FieldMaskPaths(a)
	if err != nil {
		return nil, err
	}
	pb, err := FieldMaskPaths(b)
	if err != nil {
		return nil, err
	}
	inB := make(map[string]struct{}, len(pb))
	for _, p := range pb {
		inB[p] = struct{}{}
	}
	var out []string
	for _, p := range pa {
		if _, ok := inB[p]; ok {
			out = append(out, p)
		}
	}
	return NewFieldMask(out...)
}

// FieldMaskContains reports whether mask covers path, either exactly or as
// an ancestor dotted-path prefix (mask path "a.b" covers "a.b.c").
func FieldMaskContains(mask *pmessage.Message, path string) (bool, error) {
	paths, err := FieldMaskPaths(mask)
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		if p == path {
			return true, nil
		}
		if len(path) > len(p) && path[:len(p)] == p && path[len(p)] == '.' {
			return true, nil
		}
	}
	return false, nil
}
