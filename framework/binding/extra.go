package binding

import "cmp"

// Min requires a converted value of at least bound.
func Min[T cmp.Ordered](bound T) ExtraConstraint[T] {
	return func(label string, value T, messages Messages) []string {
		if value < bound {
			return []string{Message(messages, "error.min", label, bound)}
		}
		return nil
	}
}

// Max requires a converted value of at most bound.
func Max[T cmp.Ordered](bound T) ExtraConstraint[T] {
	return func(label string, value T, messages Messages) []string {
		if value > bound {
			return []string{Message(messages, "error.max", label, bound)}
		}
		return nil
	}
}

func MinSize[E any](n int) ExtraConstraint[[]E] {
	return func(label string, value []E, messages Messages) []string {
		if len(value) < n {
			return []string{Message(messages, "error.minsize", label, n)}
		}
		return nil
	}
}

func MaxSize[E any](n int) ExtraConstraint[[]E] {
	return func(label string, value []E, messages Messages) []string {
		if len(value) > n {
			return []string{Message(messages, "error.maxsize", label, n)}
		}
		return nil
	}
}

// Distinct rejects a list holding the same value twice.
func Distinct[E comparable]() ExtraConstraint[[]E] {
	return func(label string, value []E, messages Messages) []string {
		seen := make(map[E]struct{}, len(value))
		for _, v := range value {
			if _, dup := seen[v]; dup {
				return []string{Message(messages, "error.distinct", label)}
			}
			seen[v] = struct{}{}
		}
		return nil
	}
}
