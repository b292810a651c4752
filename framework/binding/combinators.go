package binding

import "fmt"

// ── List ─────────────────────────────────────────────────────────────────────

// ListOf maps base over every path[i] present in the input, in index order.
//
//	{"list[1]": "101", "list[0]": "100"}  →  []int{100, 101}
func ListOf[T any](base Mapping[T]) Mapping[[]T] {
	check := func(path string, data map[string]string, messages Messages, options Options) (Errors, error) {
		var errs Errors
		for _, i := range Indexes(path, data) {
			more, err := base.Validate(IndexPath(path, i), data, messages, options)
			if err != nil {
				return nil, err
			}
			errs = append(errs, more...)
		}
		return errs, nil
	}
	convert := func(path string, data map[string]string) ([]T, error) {
		idx := Indexes(path, data)
		out := make([]T, 0, len(idx))
		for _, i := range idx {
			v, err := base.Convert(IndexPath(path, i), data)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return field[[]T]{
		options: Options{}.WithPresenceMode(Multiple),
		convert: convert,
		check:   check,
	}
}

// ── Map ──────────────────────────────────────────────────────────────────────

// MapOf maps every child path.name present in the input. The name is bound
// through key as if it were the whole input, value is bound at path.name.
//
//	{"prices.apple": "3", "prices.pear": "4"}  →  map[string]int{"apple": 3, "pear": 4}
func MapOf[K comparable, V any](key Mapping[K], value Mapping[V]) Mapping[map[K]V] {
	check := func(path string, data map[string]string, messages Messages, options Options) (Errors, error) {
		var errs Errors
		for _, name := range Keys(path, data) {
			keyErrs, err := key.Validate(name, map[string]string{name: name}, messages, options)
			if err != nil {
				return nil, err
			}
			for _, fe := range keyErrs {
				errs = append(errs, FieldError{Path: ChildPath(path, name), Message: fe.Message})
			}
			more, err := value.Validate(ChildPath(path, name), data, messages, options)
			if err != nil {
				return nil, err
			}
			errs = append(errs, more...)
		}
		return errs, nil
	}
	convert := func(path string, data map[string]string) (map[K]V, error) {
		names := Keys(path, data)
		out := make(map[K]V, len(names))
		for _, name := range names {
			k, err := key.Convert(name, map[string]string{name: name})
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", name, err)
			}
			v, err := value.Convert(ChildPath(path, name), data)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
	return field[map[K]V]{
		options: Options{}.WithPresenceMode(Multiple),
		convert: convert,
		check:   check,
	}
}

// ── Optional ─────────────────────────────────────────────────────────────────

// OptionalOf accepts absent input as None and otherwise delegates to base.
// The base is only validated when the optional's own constraints passed,
// unless eager checking is on.
func OptionalOf[T any](base Mapping[T]) Mapping[Optional[T]] {
	mode := base.Options().PresenceMode()
	labelled := func(options Options) Mapping[T] {
		label, ok := options.Label()
		if _, own := base.Options().Label(); ok && !own {
			return base.Label(label)
		}
		return base
	}
	check := func(path string, data map[string]string, messages Messages, options Options) (Errors, error) {
		if IsEmptyInput(path, data, mode) {
			return nil, nil
		}
		return labelled(options).Validate(path, data, messages, options)
	}
	convert := func(path string, data map[string]string) (Optional[T], error) {
		if IsEmptyInput(path, data, mode) {
			return None[T](), nil
		}
		v, err := base.Convert(path, data)
		if err != nil {
			return None[T](), err
		}
		return Some(v), nil
	}
	return field[Optional[T]]{
		options: Options{}.WithPresenceMode(mode),
		convert: convert,
		check:   check,
		gated:   true,
	}
}

// ── Default ──────────────────────────────────────────────────────────────────

// DefaultVal substitutes fallback when the input is absent and otherwise
// delegates entirely to base.
func DefaultVal[T any](base Mapping[T], fallback T) Mapping[T] {
	absent := func(base Mapping[T], path string, data map[string]string) bool {
		return IsEmptyInput(path, data, base.Options().PresenceMode())
	}
	return Wrap(base,
		func(base Mapping[T], path string, data map[string]string) (T, error) {
			if absent(base, path, data) {
				return fallback, nil
			}
			return base.Convert(path, data)
		},
		func(base Mapping[T], path string, data map[string]string, messages Messages, parent Options) (Errors, error) {
			if absent(base, path, data) {
				return nil, nil
			}
			return base.Validate(path, data, messages, parent)
		},
	)
}

// ── Ignored ──────────────────────────────────────────────────────────────────

// Ignored always converts to value and never reports errors, whatever the
// input or attached constraints.
func Ignored[T any](value T) Mapping[T] {
	return field[T]{
		options: Options{}.WithIgnoreConstraints(true),
		convert: func(string, map[string]string) (T, error) { return value, nil },
		inert:   true,
	}
}

// ── Transform ────────────────────────────────────────────────────────────────

// Transform maps the converted value of base through fn.
func Transform[T, R any](base Mapping[T], fn func(T) (R, error)) Mapping[R] {
	return Wrap(base, func(base Mapping[T], path string, data map[string]string) (R, error) {
		v, err := base.Convert(path, data)
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(v)
	}, nil)
}
