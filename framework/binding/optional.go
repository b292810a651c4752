package binding

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Optional holds a value that may be absent from the input.
type Optional[T any] struct {
	value   T
	present bool
}

func Some[T any](v T) Optional[T] { return Optional[T]{value: v, present: true} }

func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present }

func (o Optional[T]) IsPresent() bool { return o.present }

// OrElse returns the value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// Unwrap returns the value boxed.
func (o Optional[T]) Unwrap() (any, bool) { return o.value, o.present }

// ElemType returns the type of the wrapped value.
func (o Optional[T]) ElemType() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Fill sets o from v; a nil v clears it. It lets reflective callers build an
// Optional without knowing T.
func (o *Optional[T]) Fill(v any) error {
	if v == nil {
		*o = None[T]()
		return nil
	}
	t, ok := v.(T)
	if !ok {
		return fmt.Errorf("binding: cannot fill Optional[%s] with %T", reflect.TypeOf((*T)(nil)).Elem(), v)
	}
	*o = Some(t)
	return nil
}

// MarshalJSON writes the value, or null when absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o Optional[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
