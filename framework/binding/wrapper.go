package binding

// WrapConvert converts through the wrapped base mapping.
type WrapConvert[B, T any] func(base Mapping[B], path string, data map[string]string) (T, error)

// WrapValidate validates through the wrapped base mapping.
type WrapValidate[B any] func(base Mapping[B], path string, data map[string]string, messages Messages, parent Options) (Errors, error)

type wrapper[B, T any] struct {
	base     Mapping[B]
	convert  WrapConvert[B, T]
	validate WrapValidate[B]
	extras   []ExtraConstraint[T]
}

// Wrap decorates base with its own conversion and, optionally, its own
// validation. Option management is delegated to base; a nil validate means
// base.Validate. Extra constraints added with Verifying run on the wrapper's
// converted value after validation succeeded.
func Wrap[B, T any](base Mapping[B], convert WrapConvert[B, T], validate WrapValidate[B]) Mapping[T] {
	return wrapper[B, T]{base: base, convert: convert, validate: validate}
}

func (w wrapper[B, T]) Options() Options { return w.base.Options() }

func (w wrapper[B, T]) Validate(path string, data map[string]string, messages Messages, parent Options) (Errors, error) {
	var (
		errs Errors
		err  error
	)
	if w.validate != nil {
		errs, err = w.validate(w.base, path, data, messages, parent)
	} else {
		errs, err = w.base.Validate(path, data, messages, parent)
	}
	if err != nil || len(errs) > 0 || len(w.extras) == 0 {
		return errs, err
	}

	value, err := w.Convert(path, data)
	if err != nil {
		return nil, err
	}
	return runExtras(path, value, messages, w.base.Options().Merge(parent), erase(w.extras)), nil
}

func (w wrapper[B, T]) Convert(path string, data map[string]string) (T, error) {
	return w.convert(w.base, path, data)
}

func (w wrapper[B, T]) ConvertAny(path string, data map[string]string) (any, error) {
	return w.Convert(path, data)
}

func (w wrapper[B, T]) Configure(fn func(Options) Options) Mapping[T] {
	w.base = w.base.Configure(fn)
	return w
}

func (w wrapper[B, T]) Label(label string) Mapping[T] {
	return w.Configure(func(o Options) Options { return o.WithLabel(label) })
}

func (w wrapper[B, T]) Constraint(cs ...Constraint) Mapping[T] {
	return w.Configure(func(o Options) Options { return o.AppendConstraints(cs...) })
}

func (w wrapper[B, T]) Process(ps ...PreProcessor) Mapping[T] {
	return w.Configure(func(o Options) Options { return o.AppendProcessors(ps...) })
}

func (w wrapper[B, T]) Verifying(cs ...ExtraConstraint[T]) Mapping[T] {
	w.extras = concat(w.extras, cs)
	return w
}
