package transform

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/km-arc/go-formbind/framework/binding"
)

var (
	boundTreeType = reflect.TypeOf((**binding.BoundTree)(nil)).Elem()
	unwrapperType = reflect.TypeOf((*unwrapper)(nil)).Elem()
	fillerType    = reflect.TypeOf((*filler)(nil)).Elem()
)

// unwrapper is implemented by optional-like sources such as binding.Optional.
type unwrapper interface {
	Unwrap() (any, bool)
}

// filler is implemented by pointers to optional-like destinations.
type filler interface {
	Fill(any) error
	ElemType() reflect.Type
}

// Transform shapes value into a value of type to. Bound trees fill structs
// property by property (absent properties are left zero), optionals and
// pointers are unwrapped or wrapped as the destination requires, maps and
// sequences are converted element-wise, and scalars go through reg.Resolve.
// A nil reg uses Default().
func Transform(value any, to reflect.Type, reg *Registry) (reflect.Value, error) {
	if reg == nil {
		reg = Default()
	}
	return reg.transform(reflect.ValueOf(value), to)
}

// To is Transform with the destination given as a type parameter.
func To[T any](value any, reg *Registry) (T, error) {
	var zero T
	v, err := Transform(value, reflect.TypeOf((*T)(nil)).Elem(), reg)
	if err != nil {
		return zero, err
	}
	if !v.IsValid() {
		return zero, nil
	}
	out, ok := v.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, v.Type(), reflect.TypeOf((*T)(nil)).Elem())
	}
	return out, nil
}

func (r *Registry) transform(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() || isNil(v) {
		return reflect.Zero(to), nil
	}
	if v.Type().AssignableTo(to) {
		return v, nil
	}

	// Optional destination: unwrap the source if needed, then fill.
	if reflect.PointerTo(to).Implements(fillerType) {
		inner, ok := unwrap(v)
		if !ok {
			return reflect.Zero(to), nil
		}
		out := reflect.New(to)
		dst := out.Interface().(filler)
		res, err := r.transform(inner, dst.ElemType())
		if err != nil {
			return reflect.Value{}, err
		}
		if err := dst.Fill(settable(res, dst.ElemType()).Interface()); err != nil {
			return reflect.Value{}, err
		}
		return out.Elem(), nil
	}

	// Optional source: unwrap then forward.
	if v.Type().Implements(unwrapperType) {
		inner, ok := unwrap(v)
		if !ok {
			return reflect.Zero(to), nil
		}
		return r.transform(inner, to)
	}

	if v.Type() == boundTreeType {
		return r.fromTree(v.Interface().(*binding.BoundTree), to)
	}

	switch {
	case to.Kind() == reflect.Pointer:
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}
		res, err := r.transform(v, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		return pointerTo(res, to.Elem()), nil

	case v.Kind() == reflect.Pointer:
		return r.transform(v.Elem(), to)

	case v.Kind() == reflect.Map:
		if to.Kind() != reflect.Map {
			return r.registered(v, to)
		}
		return r.mapToMap(v, to)

	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		if to.Kind() != reflect.Slice && to.Kind() != reflect.Array {
			return r.registered(v, to)
		}
		return r.sequence(v, to)
	}

	fn, err := r.Resolve(v.Type(), to)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	return fn(v)
}

// registered converts a container value whose destination is not a
// container, e.g. a uuid.UUID array into a string type. Only an explicit
// registration applies.
func (r *Registry) registered(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	fn, err := r.Resolve(v.Type(), to)
	if err != nil {
		return reflect.Value{}, mismatch(v.Type(), to)
	}
	return fn(v)
}

// fromTree fills a struct, a pointer to one or a string-keyed map.
func (r *Registry) fromTree(tree *binding.BoundTree, to reflect.Type) (reflect.Value, error) {
	switch to.Kind() {
	case reflect.Pointer:
		res, err := r.fromTree(tree, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		return pointerTo(res, to.Elem()), nil

	case reflect.Struct:
		out := reflect.New(to).Elem()
		for _, name := range r.accessor.Properties(to) {
			raw, ok := treeValue(tree, name)
			if !ok {
				continue
			}
			pt, err := r.accessor.PropertyType(to, name)
			if err != nil {
				return reflect.Value{}, &PropertyError{Type: to, Name: name, Err: err}
			}
			val, err := r.transform(reflect.ValueOf(raw), pt)
			if err != nil {
				return reflect.Value{}, &PropertyError{Type: to, Name: name, Err: err}
			}
			if err := r.accessor.Write(out, name, val); err != nil {
				return reflect.Value{}, &PropertyError{Type: to, Name: name, Err: err}
			}
		}
		return out, nil

	case reflect.Map:
		if to.Key().Kind() != reflect.String {
			return reflect.Value{}, mismatch(boundTreeType, to)
		}
		out := reflect.MakeMapWithSize(to, tree.Len())
		var err error
		tree.Each(func(name string, value any) {
			if err != nil {
				return
			}
			var val reflect.Value
			if val, err = r.transform(reflect.ValueOf(value), to.Elem()); err != nil {
				err = &PropertyError{Type: to, Name: name, Err: err}
				return
			}
			out.SetMapIndex(reflect.ValueOf(name).Convert(to.Key()), settable(val, to.Elem()))
		})
		if err != nil {
			return reflect.Value{}, err
		}
		return out, nil
	}
	return reflect.Value{}, mismatch(boundTreeType, to)
}

func (r *Registry) mapToMap(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.MakeMapWithSize(to, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := r.transform(iter.Key(), to.Key())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("map key %v: %w", iter.Key(), err)
		}
		e, err := r.transform(iter.Value(), to.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("map value %v: %w", iter.Key(), err)
		}
		out.SetMapIndex(settable(k, to.Key()), settable(e, to.Elem()))
	}
	return out, nil
}

func (r *Registry) sequence(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	var out reflect.Value
	if to.Kind() == reflect.Array {
		if v.Len() > to.Len() {
			return reflect.Value{}, fmt.Errorf("%w: %d elements do not fit %s", ErrTypeMismatch, v.Len(), to)
		}
		out = reflect.New(to).Elem()
	} else {
		out = reflect.MakeSlice(to, v.Len(), v.Len())
	}
	for i := 0; i < v.Len(); i++ {
		e, err := r.transform(v.Index(i), to.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		out.Index(i).Set(settable(e, to.Elem()))
	}
	return out, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func treeValue(tree *binding.BoundTree, name string) (any, bool) {
	if v, ok := tree.Get(name); ok {
		return v, true
	}
	for _, n := range tree.Names() {
		if strings.EqualFold(n, name) {
			return tree.Get(n)
		}
	}
	return nil, false
}

func unwrap(v reflect.Value) (reflect.Value, bool) {
	u, ok := v.Interface().(unwrapper)
	if !ok {
		return v, true
	}
	inner, present := u.Unwrap()
	if !present {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(inner), true
}

// settable returns v as a value of type t, or the zero t for an invalid v.
func settable(v reflect.Value, t reflect.Type) reflect.Value {
	if !v.IsValid() {
		return reflect.Zero(t)
	}
	return v
}

func pointerTo(v reflect.Value, elem reflect.Type) reflect.Value {
	p := reflect.New(elem)
	p.Elem().Set(settable(v, elem))
	return p
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func mismatch(from, to reflect.Type) error {
	return fmt.Errorf("%w: cannot shape %s into %s", ErrTypeMismatch, from, to)
}
