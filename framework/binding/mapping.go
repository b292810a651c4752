package binding

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"
)

// ── Boundary types ───────────────────────────────────────────────────────────

// Constraint checks the raw string input at path. It must tolerate the key
// being absent and must not modify data.
type Constraint func(path string, data map[string]string, messages Messages, options Options) Errors

// PreProcessor rewrites the full flat input before a node looks at it. It
// returns a new map and never mutates data in place. An error means the input
// could not be parsed at all (see MalformedInputError).
type PreProcessor func(prefix string, data map[string]string, options Options) (map[string]string, error)

// TouchedChecker decides whether an empty, skippable node should still be
// checked, e.g. because the user submitted it.
type TouchedChecker func(prefix string, data map[string]string) bool

// ExtraConstraint checks a converted value. It is only called with non-null
// values and returns plain messages which are attached to the node's path.
type ExtraConstraint[T any] func(label string, value T, messages Messages) []string

// AnyExtraConstraint is the type-erased form stored in Options.
type AnyExtraConstraint func(label string, value any, messages Messages) []string

// Erase adapts c to any value. It panics when called with a value that is not
// a T, which means the constraint was attached to the wrong mapping.
func (c ExtraConstraint[T]) Erase() AnyExtraConstraint {
	return func(label string, value any, messages Messages) []string {
		v, ok := value.(T)
		if !ok {
			panic(fmt.Sprintf("binding: extra constraint for %T applied to %T", *new(T), value))
		}
		return c(label, v, messages)
	}
}

// ConvertFunc turns the flat input at path into a T.
type ConvertFunc[T any] func(path string, data map[string]string) (T, error)

// ── Mapping ──────────────────────────────────────────────────────────────────

// Node is the type-erased view of a mapping, used for group children and by
// the Binder.
type Node interface {
	// Options returns the node's own, unmerged options.
	Options() Options
	// Validate checks the input at path. Data-driven failures are returned as
	// Errors; error is reserved for input that cannot be processed at all.
	Validate(path string, data map[string]string, messages Messages, parent Options) (Errors, error)
	// ConvertAny is Convert with the result boxed.
	ConvertAny(path string, data map[string]string) (any, error)
}

// Mapping binds flat input to a T. Mappings are immutable: every method that
// looks like a setter returns a new mapping.
type Mapping[T any] interface {
	Node
	Convert(path string, data map[string]string) (T, error)
	Configure(fn func(Options) Options) Mapping[T]
	Label(label string) Mapping[T]
	Constraint(cs ...Constraint) Mapping[T]
	Process(ps ...PreProcessor) Mapping[T]
	Verifying(cs ...ExtraConstraint[T]) Mapping[T]
}

// checkFunc is a built-in check. Unlike Constraint it can fail hard, since
// combinators delegate it to child mappings.
type checkFunc func(path string, data map[string]string, messages Messages, options Options) (Errors, error)

func asCheck(c Constraint) checkFunc {
	if c == nil {
		return nil
	}
	return func(path string, data map[string]string, messages Messages, options Options) (Errors, error) {
		return c(path, data, messages, options), nil
	}
}

// ── Engine ───────────────────────────────────────────────────────────────────

// process applies every attached pre-processor in order.
func process(path string, data map[string]string, options Options) (map[string]string, error) {
	for _, p := range options.processors {
		out, err := p(path, data, options)
		if err != nil {
			return nil, err
		}
		data = out
	}
	return data, nil
}

// skipEmpty reports whether validation is skipped entirely: the input is
// empty, empties are ignored and nothing marks the node as touched. A
// structural node at the root is never empty.
func skipEmpty(path string, data map[string]string, options Options) bool {
	if path == "" && options.mode == Multiple {
		return false
	}
	if !IsEmptyInput(path, data, options.mode) || !options.ignoreEmpty.OrElse(false) {
		return false
	}
	return options.touched == nil || !options.touched(path, data)
}

// runConstraints runs the constraint tier. Attached constraints all run. The
// built-in check runs after them; a gated check belongs to a delegated
// mapping and only runs when the attached constraints passed, unless eager
// checking is on.
func runConstraints(path string, data map[string]string, messages Messages, options Options, check checkFunc, gated bool) (Errors, error) {
	var errs Errors
	if !options.ignoreConstraints {
		for _, c := range options.constraints {
			errs = append(errs, c(path, data, messages, options)...)
		}
	}
	if check == nil {
		return errs, nil
	}
	if gated && len(errs) > 0 && !options.eagerCheck.OrElse(false) {
		return errs, nil
	}
	more, err := check(path, data, messages, options)
	if err != nil {
		return nil, err
	}
	return append(errs, more...), nil
}

// runExtras runs the extra constraints on a converted value.
func runExtras(path string, value any, messages Messages, options Options, extras []AnyExtraConstraint) Errors {
	if len(extras) == 0 || isNull(value) {
		return nil
	}
	label := LabelFor(path, messages, options)
	var errs Errors
	for _, c := range extras {
		for _, msg := range c(label, value, messages) {
			errs = append(errs, FieldError{Path: path, Message: msg})
		}
	}
	return errs
}

// validateNode is the validation algorithm shared by fields and groups.
// convert receives the already processed data.
func validateNode(
	path string,
	data map[string]string,
	messages Messages,
	options Options,
	check checkFunc,
	gated bool,
	convert func(path string, data map[string]string) (any, error),
) (Errors, error) {
	data, err := process(path, data, options)
	if err != nil {
		return nil, err
	}
	if skipEmpty(path, data, options) {
		slog.Debug("binding: skipped empty input", "path", path)
		return nil, nil
	}

	errs, err := runConstraints(path, data, messages, options, check, gated)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 || len(options.extras) == 0 {
		return errs, nil
	}

	value, err := convert(path, data)
	if err != nil {
		return nil, err
	}
	return runExtras(path, value, messages, options, options.extras), nil
}

// isNull reports whether v counts as "no value" for extra constraints.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case interface{ IsPresent() bool }:
		return !t.IsPresent()
	case interface{ IsZero() bool }:
		return t.IsZero()
	case uuid.UUID:
		return t == uuid.Nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// ── Field ────────────────────────────────────────────────────────────────────

type field[T any] struct {
	options Options
	convert ConvertFunc[T]
	check   checkFunc
	gated   bool
	inert   bool
}

// NewField builds an atomic mapping. convert must return the zero value for
// blank input; check is the built-in parse check and may be nil.
func NewField[T any](mode PresenceMode, convert ConvertFunc[T], check Constraint) Mapping[T] {
	return field[T]{
		options: Options{}.WithPresenceMode(mode),
		convert: convert,
		check:   asCheck(check),
	}
}

func (f field[T]) Options() Options { return f.options }

func (f field[T]) Validate(path string, data map[string]string, messages Messages, parent Options) (Errors, error) {
	if f.inert {
		return nil, nil
	}
	return validateNode(path, data, messages, f.options.Merge(parent), f.check, f.gated,
		func(p string, d map[string]string) (any, error) { return f.convert(p, d) })
}

func (f field[T]) Convert(path string, data map[string]string) (T, error) {
	data, err := process(path, data, f.options)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.convert(path, data)
}

func (f field[T]) ConvertAny(path string, data map[string]string) (any, error) {
	return f.Convert(path, data)
}

func (f field[T]) Configure(fn func(Options) Options) Mapping[T] {
	f.options = fn(f.options)
	return f
}

func (f field[T]) Label(label string) Mapping[T] {
	return f.Configure(func(o Options) Options { return o.WithLabel(label) })
}

func (f field[T]) Constraint(cs ...Constraint) Mapping[T] {
	return f.Configure(func(o Options) Options { return o.AppendConstraints(cs...) })
}

func (f field[T]) Process(ps ...PreProcessor) Mapping[T] {
	return f.Configure(func(o Options) Options { return o.AppendProcessors(ps...) })
}

func (f field[T]) Verifying(cs ...ExtraConstraint[T]) Mapping[T] {
	return f.Configure(func(o Options) Options { return o.AppendExtraConstraints(erase(cs)...) })
}

func erase[T any](cs []ExtraConstraint[T]) []AnyExtraConstraint {
	out := make([]AnyExtraConstraint, len(cs))
	for i, c := range cs {
		out[i] = c.Erase()
	}
	return out
}
