package binding

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"
)

// Flatten writes v into out as flat keys under prefix. Maps and bound trees
// become prefix.name keys and sequences become prefix[i] keys; nil values,
// absent optionals and zero times write nothing. Timestamps are written in
// the layout they were bound with. It is the inverse of binding a Group, so
//
//	Flatten("", tree, out)
//
// yields input that binds back to an equivalent tree.
func Flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case nil:
		return
	case string:
		out[prefix] = t
	case bool:
		out[prefix] = strconv.FormatBool(t)
	case json.Number:
		out[prefix] = t.String()
	case float64:
		out[prefix] = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		out[prefix] = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case *big.Int:
		if t != nil {
			out[prefix] = t.String()
		}
	case Timestamp:
		if !t.IsZero() {
			out[prefix] = t.String()
		}
	case time.Time:
		if !t.IsZero() {
			out[prefix] = t.Format(time.RFC3339)
		}
	case interface{ Unwrap() (any, bool) }:
		if inner, ok := t.Unwrap(); ok {
			Flatten(prefix, inner, out)
		}
	case fmt.Stringer:
		if !isNull(v) {
			out[prefix] = t.String()
		}
	case *BoundTree:
		t.Each(func(name string, value any) {
			Flatten(ChildPath(prefix, name), value, out)
		})
	case map[string]any:
		for name, value := range t {
			Flatten(ChildPath(prefix, name), value, out)
		}
	case []any:
		for i, value := range t {
			Flatten(IndexPath(prefix, i), value, out)
		}
	default:
		flattenValue(prefix, reflect.ValueOf(v), out)
	}
}

func flattenValue(prefix string, rv reflect.Value, out map[string]string) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			Flatten(prefix, rv.Elem().Interface(), out)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			Flatten(IndexPath(prefix, i), rv.Index(i).Interface(), out)
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			Flatten(ChildPath(prefix, fmt.Sprint(iter.Key().Interface())), iter.Value().Interface(), out)
		}
	default:
		out[prefix] = fmt.Sprint(rv.Interface())
	}
}
