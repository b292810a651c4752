package binding

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one name/value pair of a BoundTree.
type Entry struct {
	Name  string
	Value any
}

// BoundTree is the result of converting a Group: an immutable, ordered
// mapping from field name to value. Values are scalars, nested *BoundTree
// values or typed collections of those.
type BoundTree struct {
	names  []string
	values map[string]any
}

// NewBoundTree builds a tree from entries in order. It panics on a duplicate
// name.
func NewBoundTree(entries ...Entry) *BoundTree {
	t := &BoundTree{
		names:  make([]string, 0, len(entries)),
		values: make(map[string]any, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.values[e.Name]; dup {
			panic(fmt.Sprintf("binding: duplicate bound name %q", e.Name))
		}
		t.names = append(t.names, e.Name)
		t.values[e.Name] = e.Value
	}
	return t
}

// Get returns the value bound to name.
func (t *BoundTree) Get(name string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[name]
	return v, ok
}

// Has reports whether name is bound.
func (t *BoundTree) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Names returns the bound names in declaration order.
func (t *BoundTree) Names() []string {
	if t == nil {
		return nil
	}
	return concat(t.names, nil)
}

func (t *BoundTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Each calls fn for every entry in declaration order.
func (t *BoundTree) Each(fn func(name string, value any)) {
	if t == nil {
		return
	}
	for _, name := range t.names {
		fn(name, t.values[name])
	}
}

// MarshalJSON writes the tree as a JSON object, keeping declaration order.
func (t *BoundTree) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.values[name])
		if err != nil {
			return nil, fmt.Errorf("binding: marshal %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Lookup returns the value bound to name as a T.
func Lookup[T any](t *BoundTree, name string) (T, bool) {
	v, ok := t.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
