package binding

// TouchedList marks the given paths, and everything below them, as touched.
func TouchedList(paths ...string) TouchedChecker {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(prefix string, _ map[string]string) bool {
		for p := prefix; ; {
			if _, ok := set[p]; ok {
				return true
			}
			if p == "" {
				return false
			}
			p, _, _ = SplitName(p)
		}
	}
}

// TouchedPrefix reads the touched paths from the input itself: a field at
// prefix counts as touched when dataPrefix.prefix holds a truthy value, e.g.
// {"_touched.email": "true"}.
func TouchedPrefix(dataPrefix string) TouchedChecker {
	return func(prefix string, data map[string]string) bool {
		v, ok := data[ChildPath(dataPrefix, prefix)]
		if !ok {
			return false
		}
		on, err := parseBool(v)
		return err == nil && on
	}
}
