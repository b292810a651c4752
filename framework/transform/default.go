package transform

import (
	"reflect"
	"sync/atomic"
	"time"
)

var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(builtin())
}

// primitives are pre-registered with identity transformers so that the
// default registry never rebinds a primitive kind. The time.Time entry also
// lets types embedding it, such as binding.Timestamp, resolve to time.Time.
var primitives = []reflect.Type{
	reflect.TypeOf((*bool)(nil)).Elem(),
	reflect.TypeOf((*string)(nil)).Elem(),
	reflect.TypeOf((*int)(nil)).Elem(),
	reflect.TypeOf((*int8)(nil)).Elem(),
	reflect.TypeOf((*int16)(nil)).Elem(),
	reflect.TypeOf((*int32)(nil)).Elem(),
	reflect.TypeOf((*int64)(nil)).Elem(),
	reflect.TypeOf((*uint)(nil)).Elem(),
	reflect.TypeOf((*uint8)(nil)).Elem(),
	reflect.TypeOf((*uint16)(nil)).Elem(),
	reflect.TypeOf((*uint32)(nil)).Elem(),
	reflect.TypeOf((*uint64)(nil)).Elem(),
	reflect.TypeOf((*float32)(nil)).Elem(),
	reflect.TypeOf((*float64)(nil)).Elem(),
	reflect.TypeOf((*complex64)(nil)).Elem(),
	reflect.TypeOf((*complex128)(nil)).Elem(),
	reflect.TypeOf((*time.Time)(nil)).Elem(),
}

func builtin() *Registry {
	r := NewRegistry()
	for _, t := range primitives {
		r.Register(t, t, identity)
	}
	return r
}

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry.Load() }

// SetDefault replaces the process-wide registry and returns the previous one.
// A nil r restores the built-in registry.
func SetDefault(r *Registry) *Registry {
	if r == nil {
		r = builtin()
	}
	return defaultRegistry.Swap(r)
}

// Register adds a transformer to the process-wide registry.
func Register(from, to reflect.Type, fn Func) bool {
	return Default().Register(from, to, fn)
}
