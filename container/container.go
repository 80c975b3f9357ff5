// Package container implements the validated list and map wrappers that
// sit between user code and a message instance's sparse value map. Every
// mutating operation invokes the backing field descriptor's Validate so a
// caller cannot smuggle an out-of-range or wrong-kind value into a
// repeated or map field through the collection API.
package container

// Validator is the subset of field.Descriptor a container needs.
type Validator interface {
	Validate(v interface{}) error
}

// List wraps the elements of a repeated field.
type List struct {
	elem   Validator
	values []interface{}
}

// NewList creates an empty validated list for the given element validator.
func NewList(elem Validator) *List {
	return &List{elem: elem}
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.values) }

// Get returns the element at i.
func (l *List) Get(i int) interface{} { return l.values[i] }

// Slice returns the backing slice for serialization; callers must not
// mutate it directly.
func (l *List) Slice() []interface{} { return l.values }

// Append validates and appends a single value.
func (l *List) Append(v interface{}) error {
	if err := l.elem.Validate(v); err != nil {
		return err
	}
	l.values = append(l.values, v)
	return nil
}

// Extend validates and appends every value in vs, atomically: if any value
// fails validation none of them are appended.
func (l *List) Extend(vs []interface{}) error {
	for _, v := range vs {
		if err := l.elem.Validate(v); err != nil {
			return err
		}
	}
	l.values = append(l.values, vs...)
	return nil
}

// Set validates and assigns the element at position i.
func (l *List) Set(i int, v interface{}) error {
	if err := l.elem.Validate(v); err != nil {
		return err
	}
	l.values[i] = v
	return nil
}

// SetSlice validates and replaces a[lo:hi] with vs, the container analogue
// of Python slice assignment.
func (l *List) SetSlice(lo, hi int, vs []interface{}) error {
	for _, v := range vs {
		if err := l.elem.Validate(v); err != nil {
			return err
		}
	}
	tail := append([]interface{}{}, l.values[hi:]...)
	l.values = append(l.values[:lo], vs...)
	l.values = append(l.values, tail...)
	return nil
}

// Dict wraps the entries of a map field.
type Dict struct {
	key   Validator
	value Validator
	pairs map[interface{}]interface{}
}

// NewDict creates an empty validated map for the given key/value
// validators.
func NewDict(key, value Validator) *Dict {
	return &Dict{key: key, value: value, pairs: make(map[interface{}]interface{})}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.pairs) }

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key interface{}) (interface{}, bool) {
	v, ok := d.pairs[key]
	return v, ok
}

// Map returns the backing map for serialization; callers must not mutate
// it directly.
func (d *Dict) Map() map[interface{}]interface{} { return d.pairs }

// Set validates key and value, then inserts or overwrites the entry.
func (d *Dict) Set(key, value interface{}) error {
	if err := d.key.Validate(key); err != nil {
		return err
	}
	if err := d.value.Validate(value); err != nil {
		return err
	}
	d.pairs[key] = value
	return nil
}

// Delete removes an entry if present.
func (d *Dict) Delete(key interface{}) {
	delete(d.pairs, key)
}
