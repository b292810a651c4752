package transform

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Accessor reads and writes named properties of a target type. Failures are
// reported, never ignored.
type Accessor interface {
	// Properties lists the declared property names of t in order.
	Properties(t reflect.Type) []string
	// PropertyType returns the type of property name on t.
	PropertyType(t reflect.Type, name string) (reflect.Type, error)
	// Read returns property name of bean.
	Read(bean reflect.Value, name string) (reflect.Value, error)
	// Write sets property name of bean, which must be addressable.
	Write(bean reflect.Value, name string, value reflect.Value) error
}

// PropertyError wraps a failure to transform or write one property.
type PropertyError struct {
	Type reflect.Type
	Name string
	Err  error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("transform: property %s.%s: %v", e.Type, e.Name, e.Err)
}

func (e *PropertyError) Unwrap() error { return e.Err }

// ── Struct accessor ──────────────────────────────────────────────────────────

// property describes one settable struct field.
type property struct {
	name  string
	index []int
	typ   reflect.Type
}

type descriptor struct {
	props  []property
	byName map[string]int // lower-cased name → props index
}

// descriptors caches struct descriptors by type.
var descriptors sync.Map // key: reflect.Type, val: *descriptor

type structAccessor struct{}

// StructAccessor returns the reflective accessor for struct types. A field is
// named by its `form` tag, else its `json` tag, else its Go name; names match
// case-insensitively. Unexported fields and fields tagged "-" are skipped,
// and fields of embedded structs are promoted.
func StructAccessor() Accessor { return structAccessor{} }

func describe(t reflect.Type) (*descriptor, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrTypeMismatch, t)
	}
	if d, ok := descriptors.Load(t); ok {
		return d.(*descriptor), nil
	}

	d := &descriptor{byName: make(map[string]int)}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		name, ok := fieldName(f)
		if !ok {
			continue
		}
		// An embedded struct without a tag only contributes its promoted fields.
		if f.Anonymous && indirect(f.Type).Kind() == reflect.Struct && name == f.Name {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := d.byName[key]; dup {
			continue
		}
		d.byName[key] = len(d.props)
		d.props = append(d.props, property{name: name, index: f.Index, typ: f.Type})
	}

	actual, _ := descriptors.LoadOrStore(t, d)
	return actual.(*descriptor), nil
}

func indirect(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func fieldName(f reflect.StructField) (string, bool) {
	for _, key := range []string{"form", "json"} {
		tag, ok := f.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}
	return f.Name, true
}

func (d *descriptor) lookup(t reflect.Type, name string) (property, error) {
	i, ok := d.byName[strings.ToLower(name)]
	if !ok {
		return property{}, fmt.Errorf("%w: %s has no %q", ErrUnknownProperty, t, name)
	}
	return d.props[i], nil
}

func (structAccessor) Properties(t reflect.Type) []string {
	d, err := describe(t)
	if err != nil {
		return nil
	}
	names := make([]string, len(d.props))
	for i, p := range d.props {
		names[i] = p.name
	}
	return names
}

func (structAccessor) PropertyType(t reflect.Type, name string) (reflect.Type, error) {
	d, err := describe(t)
	if err != nil {
		return nil, err
	}
	p, err := d.lookup(t, name)
	if err != nil {
		return nil, err
	}
	return p.typ, nil
}

func (structAccessor) Read(bean reflect.Value, name string) (reflect.Value, error) {
	bean = reflect.Indirect(bean)
	d, err := describe(bean.Type())
	if err != nil {
		return reflect.Value{}, err
	}
	p, err := d.lookup(bean.Type(), name)
	if err != nil {
		return reflect.Value{}, err
	}
	f, err := bean.FieldByIndexErr(p.index)
	if err != nil {
		return reflect.Value{}, err
	}
	return f, nil
}

func (structAccessor) Write(bean reflect.Value, name string, value reflect.Value) error {
	bean = reflect.Indirect(bean)
	d, err := describe(bean.Type())
	if err != nil {
		return err
	}
	p, err := d.lookup(bean.Type(), name)
	if err != nil {
		return err
	}
	f, err := fieldForWrite(bean, p.index)
	if err != nil {
		return err
	}
	if !f.CanSet() {
		return fmt.Errorf("transform: %s.%s is not settable", bean.Type(), p.name)
	}
	if !value.IsValid() {
		f.SetZero()
		return nil
	}
	if !value.Type().AssignableTo(f.Type()) {
		return fmt.Errorf("%w: cannot assign %s to %s", ErrTypeMismatch, value.Type(), f.Type())
	}
	f.Set(value)
	return nil
}

// fieldForWrite walks index, allocating nil embedded pointers on the way.
func fieldForWrite(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("transform: cannot allocate embedded %s", v.Type())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}
