package pmessage

import (
	"reflect"

	"github.com/protox-go/protox/container"
)

// Equal reports whether two messages have the same type and every
// declared field's observable value — including defaults — matches.
func (m *Message) Equal(other *Message) bool {
	if other == nil {
		return false
	}
	if m.mtype != other.mtype {
		return false
	}
	for _, entry := range m.mtype.fields {
		a, err := m.Get(entry.name)
		if err != nil {
			return false
		}
		b, err := other.Get(entry.name)
		if err != nil {
			return false
		}
		if !valueEqual(a, b) {
			return false
		}
	}
	return true
}

func valueEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case *container.List:
		bv, ok := b.(*container.List)
		if !ok {
			return false
		}
		return reflect.DeepEqual(av.Slice(), bv.Slice())
	case *container.Dict:
		bv, ok := b.(*container.Dict)
		if !ok {
			return false
		}
		return reflect.DeepEqual(av.Map(), bv.Map())
	case *Message:
		bv, ok := b.(*Message)
		if !ok {
			return av == nil && b == nil
		}
		if av == nil || bv == nil {
			return av == bv
		}
		return av.Equal(bv)
	default:
		return reflect.DeepEqual(a, b)
	}
}
