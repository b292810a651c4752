package binding

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// rewrite returns a copy of data with fn applied to every value at or under
// prefix.
func rewrite(fn func(string) string) PreProcessor {
	return func(prefix string, data map[string]string, _ Options) (map[string]string, error) {
		out := make(map[string]string, len(data))
		for k, v := range data {
			if under(k, prefix) {
				v = fn(v)
			}
			out[k] = v
		}
		return out, nil
	}
}

// ── Value rewriting ──────────────────────────────────────────────────────────

// Trim strips leading and trailing white space.
func Trim() PreProcessor { return rewrite(strings.TrimSpace) }

// Omit removes every occurrence of s.
func Omit(s string) PreProcessor {
	return rewrite(func(v string) string { return strings.ReplaceAll(v, s, "") })
}

// OmitLeft removes leading repetitions of s.
func OmitLeft(s string) PreProcessor {
	return rewrite(func(v string) string {
		for s != "" && strings.HasPrefix(v, s) {
			v = v[len(s):]
		}
		return v
	})
}

// OmitRight removes trailing repetitions of s.
func OmitRight(s string) PreProcessor {
	return rewrite(func(v string) string {
		for s != "" && strings.HasSuffix(v, s) {
			v = v[:len(v)-len(s)]
		}
		return v
	})
}

// OmitRedundant collapses runs of s into one s.
func OmitRedundant(s string) PreProcessor {
	double := s + s
	return rewrite(func(v string) string {
		for s != "" && strings.Contains(v, double) {
			v = strings.ReplaceAll(v, double, s)
		}
		return v
	})
}

// OmitMatched removes every match of expr. It panics on an invalid expr.
func OmitMatched(expr string) PreProcessor {
	return ReplaceMatched(expr, "")
}

// ReplaceMatched replaces every match of expr with repl, which may use $1
// style references.
func ReplaceMatched(expr, repl string) PreProcessor {
	re := regexp.MustCompile(expr)
	return rewrite(func(v string) string { return re.ReplaceAllString(v, repl) })
}

// ── Key rewriting ────────────────────────────────────────────────────────────

// ChangePrefix renames every key at or under from to live under to instead.
func ChangePrefix(from, to string) PreProcessor {
	return func(_ string, data map[string]string, _ Options) (map[string]string, error) {
		out := make(map[string]string, len(data))
		for k, v := range data {
			if from != "" && under(k, from) {
				k = to + k[len(from):]
			}
			out[k] = v
		}
		return out, nil
	}
}

// ExpandListKeys rewrites numeric dot segments into index form, so that
// "tags.0" becomes "tags[0]".
func ExpandListKeys() PreProcessor {
	return func(prefix string, data map[string]string, _ Options) (map[string]string, error) {
		out := make(map[string]string, len(data))
		for k, v := range data {
			if under(k, prefix) {
				k = bracketIndexes(k)
			}
			out[k] = v
		}
		return out, nil
	}
}

func bracketIndexes(key string) string {
	parts := strings.Split(key, ".")
	var b strings.Builder
	for i, p := range parts {
		switch {
		case i > 0 && isDigits(p):
			b.WriteString("[" + p + "]")
		case i > 0:
			b.WriteString("." + p)
		default:
			b.WriteString(p)
		}
	}
	return b.String()
}

// SplitList splits the value at prefix on sep into prefix[i] keys. Blank
// items are dropped.
func SplitList(sep string) PreProcessor {
	return func(prefix string, data map[string]string, _ Options) (map[string]string, error) {
		raw, ok := data[prefix]
		if !ok {
			return data, nil
		}
		out := without(data, prefix)
		i := 0
		for _, item := range strings.Split(raw, sep) {
			if isBlank(item) {
				continue
			}
			out[IndexPath(prefix, i)] = strings.TrimSpace(item)
			i++
		}
		return out, nil
	}
}

// ── Structured expansion ─────────────────────────────────────────────────────

// ExpandJSON replaces a JSON document held at prefix with its flat keys.
// Invalid JSON yields a *MalformedInputError.
func ExpandJSON() PreProcessor {
	return expand("json", func(raw string) (any, error) {
		dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// ExpandYAML replaces a YAML document held at prefix with its flat keys.
// Invalid YAML yields a *MalformedInputError.
func ExpandYAML() PreProcessor {
	return expand("yaml", func(raw string) (any, error) {
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

func expand(format string, decode func(string) (any, error)) PreProcessor {
	return func(prefix string, data map[string]string, _ Options) (map[string]string, error) {
		raw := data[prefix]
		if isBlank(raw) {
			return data, nil
		}
		v, err := decode(raw)
		if err != nil {
			return nil, &MalformedInputError{Path: prefix, Format: format, Err: err}
		}
		out := without(data, prefix)
		Flatten(prefix, normalize(v), out)
		return out, nil
	}
}

// normalize turns YAML's non-string map keys into strings and integers into
// their decimal form so Flatten sees plain JSON-like values.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[keyString(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case uint64:
		return strconv.FormatUint(t, 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	}
	return v
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	b, _ := json.Marshal(k)
	return strings.Trim(string(b), `"`)
}

// without copies data, dropping the key prefix itself.
func without(data map[string]string, key string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		if k != key {
			out[k] = v
		}
	}
	return out
}
