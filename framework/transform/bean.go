package transform

import "github.com/km-arc/go-formbind/framework/binding"

// Bean turns a group mapping into a mapping of T. Validation is the group's;
// conversion builds the bound tree and transforms it into T through reg, or
// the default registry when reg is nil.
func Bean[T any](group binding.Mapping[*binding.BoundTree], reg *Registry) binding.Mapping[T] {
	return binding.Wrap(group, func(base binding.Mapping[*binding.BoundTree], path string, data map[string]string) (T, error) {
		var zero T
		tree, err := base.Convert(path, data)
		if err != nil || tree == nil {
			return zero, err
		}
		return To[T](tree, reg)
	}, nil)
}

// BindTo binds data with m and transforms the resulting tree into T.
func BindTo[T any](b *binding.Binder, m binding.Mapping[*binding.BoundTree], data map[string]string, reg *Registry) (T, binding.Errors, error) {
	return binding.Bind(b, Bean[T](m, reg), data)
}
