package binding

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ── Presence mode ────────────────────────────────────────────────────────────

// PresenceMode decides how "is this field present in the flat input" is answered.
type PresenceMode int

const (
	// Single requires the exact key to hold a non-blank value.
	Single PresenceMode = iota
	// Multiple requires at least one key nested under the path (path. or path[).
	Multiple
	// Polymorphic accepts either of the above.
	Polymorphic
)

func (m PresenceMode) String() string {
	switch m {
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	case Polymorphic:
		return "polymorphic"
	default:
		return "unknown"
	}
}

// ── Path splitting ───────────────────────────────────────────────────────────

var indexSuffix = regexp.MustCompile(`^(.*)\[(\d+)\]$`)

// SplitName splits a flat key into its parent path and leaf.
//
//	SplitName("a.b.c")    // ("a.b", "c", false)
//	SplitName("a.b.c[1]") // ("a.b.c", "1", true)
//	SplitName("x")        // ("", "x", false)
func SplitName(path string) (parent, leaf string, isIndex bool) {
	// The bracket form wins over the dot form: "a.b[0]" is an index of "a.b".
	if m := indexSuffix.FindStringSubmatch(path); m != nil {
		return m[1], m[2], true
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i], path[i+1:], false
	}
	return "", path, false
}

// ChildPath returns the key of a named child of parent. The root path "" has
// bare child names.
func ChildPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// IndexPath returns the key of the i-th element under parent.
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

// ── Discovery ────────────────────────────────────────────────────────────────

// Indexes lists, ascending and without duplicates, every n such that
// path[n] (optionally followed by more path) is a key of data. n must be
// written the way IndexPath writes it, so "a[01]" is not an element.
func Indexes(path string, data map[string]string) []int {
	prefix := path + "["
	seen := make(map[int]struct{})
	var out []int
	for key := range data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		end := strings.IndexByte(rest, ']')
		if end <= 0 || !canonicalIndex(rest[:end]) {
			continue
		}
		if tail := rest[end+1:]; tail != "" && tail[0] != '.' && tail[0] != '[' {
			continue
		}
		n, err := strconv.Atoi(rest[:end])
		if err != nil {
			continue
		}
		if _, dup := seen[n]; !dup {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

// Keys lists the immediate child names of prefix, i.e. every name such that
// prefix.name (optionally followed by more path) is a key of data.
// Keys are scanned in sorted order so the result is deterministic.
func Keys(prefix string, data map[string]string) []string {
	start := ""
	if prefix != "" {
		start = prefix + "."
	}
	var out []string
	seen := make(map[string]struct{})
	for _, key := range sortedKeys(data) {
		if !strings.HasPrefix(key, start) {
			continue
		}
		rest := key[len(start):]
		name := rest
		if end := strings.IndexAny(rest, ".["); end >= 0 {
			name = rest[:end]
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// ── Presence ─────────────────────────────────────────────────────────────────

// IsEmptyInput reports whether path carries no input under the given mode.
func IsEmptyInput(path string, data map[string]string, mode PresenceMode) bool {
	switch mode {
	case Single:
		return isBlank(data[path])
	case Multiple:
		return !hasNested(path, data)
	default:
		return isBlank(data[path]) && !hasNested(path, data)
	}
}

// hasNested reports whether any key lives strictly below path.
func hasNested(path string, data map[string]string) bool {
	if path == "" {
		return len(data) > 0
	}
	for key := range data {
		if len(key) > len(path) && strings.HasPrefix(key, path) {
			if c := key[len(path)]; c == '.' || c == '[' {
				return true
			}
		}
	}
	return false
}

// under reports whether key is path itself or nested below it.
func under(key, path string) bool {
	if path == "" || key == path {
		return true
	}
	if len(key) > len(path) && strings.HasPrefix(key, path) {
		c := key[len(path)]
		return c == '.' || c == '['
	}
	return false
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// canonicalIndex reports whether s is a canonical decimal index: no sign and no
// leading zero.
func canonicalIndex(s string) bool {
	return isDigits(s) && (len(s) == 1 || s[0] != '0')
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func sortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
