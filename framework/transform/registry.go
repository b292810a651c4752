package transform

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrNoTransformer is returned when no registered transformer, directly or
	// through the embedding chain, produces the requested type.
	ErrNoTransformer = errors.New("transform: no transformer registered")
	// ErrTypeMismatch is returned when a value cannot be shaped into the
	// requested type, e.g. a list into a struct.
	ErrTypeMismatch = errors.New("transform: type mismatch")
	// ErrUnknownProperty is returned by an Accessor for a name the target type
	// does not declare.
	ErrUnknownProperty = errors.New("transform: unknown property")
)

// Func converts a value of a registered source type into its destination
// type.
type Func func(reflect.Value) (reflect.Value, error)

type entry struct {
	to reflect.Type
	fn Func
}

// Entry describes one registration, for diagnostics.
type Entry struct {
	From reflect.Type
	To   reflect.Type
}

// Registry maps source types to transformers. The first registration for a
// source type wins; later ones are ignored. It is safe for concurrent use.
type Registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps source reflect.Type to entry.
	m     sync.Map
	count int

	accessor Accessor
}

// Option configures a Registry.
type Option func(*Registry)

// WithAccessor sets the property accessor used to fill structs.
func WithAccessor(a Accessor) Option {
	return func(r *Registry) { r.accessor = a }
}

// NewRegistry returns an empty registry using StructAccessor by default.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{accessor: StructAccessor()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates from with a transformer producing to. It reports
// whether the entry was stored, i.e. whether from was not registered yet.
func (r *Registry) Register(from, to reflect.Type, fn Func) bool {
	if from == nil || to == nil || fn == nil {
		return false
	}
	// Fast read path without locking.
	if _, ok := r.m.Load(from); ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, loaded := r.m.LoadOrStore(from, entry{to: to, fn: fn}); loaded {
		return false
	}
	r.count++
	return true
}

// RegisterFunc registers a typed transformer.
func RegisterFunc[From, To any](r *Registry, fn func(From) (To, error)) bool {
	return r.Register(reflect.TypeOf((*From)(nil)).Elem(), reflect.TypeOf((*To)(nil)).Elem(), func(v reflect.Value) (reflect.Value, error) {
		if !v.CanInterface() {
			return reflect.Value{}, fmt.Errorf("%w: unexported %s", ErrTypeMismatch, v.Type())
		}
		in, ok := v.Interface().(From)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s is not %s", ErrTypeMismatch, v.Type(), reflect.TypeOf((*From)(nil)).Elem())
		}
		out, err := fn(in)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&out).Elem(), nil
	})
}

// Resolve finds the transformer turning from into to. An assignable pair
// resolves to identity. Otherwise from and then its embedding ancestors are
// tried in order; the first with a registration whose destination is
// assignable to to wins, and receives the embedded ancestor value.
func (r *Registry) Resolve(from, to reflect.Type) (Func, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNoTransformer)
	}
	if from.AssignableTo(to) {
		return identity, nil
	}
	for _, link := range ancestors(from) {
		v, ok := r.m.Load(link.typ)
		if !ok {
			continue
		}
		e := v.(entry)
		if !e.to.AssignableTo(to) {
			continue
		}
		if len(link.index) == 0 {
			return e.fn, nil
		}
		index := link.index
		return func(v reflect.Value) (reflect.Value, error) {
			return e.fn(v.FieldByIndex(index))
		}, nil
	}
	return nil, fmt.Errorf("%w: %s → %s", ErrNoTransformer, from, to)
}

func identity(v reflect.Value) (reflect.Value, error) { return v, nil }

// link is a type on the embedding chain and the field index reaching it.
type link struct {
	typ   reflect.Type
	index []int
}

// ancestors returns t followed by its embedding chain: the type of the first
// field of a struct, when that field is an embedded struct, and so on.
func ancestors(t reflect.Type) []link {
	chain := []link{{typ: t}}
	var index []int
	for t.Kind() == reflect.Struct && t.NumField() > 0 {
		f := t.Field(0)
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			break
		}
		index = append(slices.Clone(index), 0)
		t = f.Type
		chain = append(chain, link{typ: t, index: index})
	}
	return chain
}

// Merge returns a new registry holding r's entries and then other's; entries
// of r are never overridden. The accessor of r is kept.
func (r *Registry) Merge(other *Registry) *Registry {
	out := NewRegistry(WithAccessor(r.accessor))
	for _, src := range []*Registry{r, other} {
		if src == nil {
			continue
		}
		src.m.Range(func(key, value any) bool {
			e := value.(entry)
			out.Register(key.(reflect.Type), e.to, e.fn)
			return true
		})
	}
	return out
}

// Entries returns a snapshot sorted by source type name.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, Entry{From: key.(reflect.Type), To: value.(entry).to})
		return true
	})
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.From.String(), b.From.String())
	})
	return entries
}

// Count returns the number of registered entries.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Accessor returns the property accessor used to fill structs.
func (r *Registry) Accessor() Accessor { return r.accessor }
