package binding

import (
	"fmt"
	"strings"
)

// ── Validation errors ────────────────────────────────────────────────────────

// FieldError is one validation message attached to a flat key.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Errors is the ordered list of validation messages produced by a mapping.
// A path may carry several messages; order of first occurrence is kept.
type Errors []FieldError

// Has returns true if there are any errors.
func (e Errors) Has() bool { return len(e) > 0 }

// First returns the first message for path, or "".
func (e Errors) First(path string) string {
	for _, fe := range e {
		if fe.Path == path {
			return fe.Message
		}
	}
	return ""
}

// For returns every message for path in order.
func (e Errors) For(path string) []string {
	var out []string
	for _, fe := range e {
		if fe.Path == path {
			out = append(out, fe.Message)
		}
	}
	return out
}

// Paths returns the distinct paths in order of first occurrence.
func (e Errors) Paths() []string {
	seen := make(map[string]struct{}, len(e))
	var out []string
	for _, fe := range e {
		if _, dup := seen[fe.Path]; dup {
			continue
		}
		seen[fe.Path] = struct{}{}
		out = append(out, fe.Path)
	}
	return out
}

// Fold groups messages by path, the MessageBag shape used in JSON responses:
// {"field": ["msg1", "msg2"]}.
func (e Errors) Fold() map[string][]string {
	bag := make(map[string][]string, len(e))
	for _, fe := range e {
		bag[fe.Path] = append(bag[fe.Path], fe.Message)
	}
	return bag
}

// Tree nests messages by path segment. Messages of a node live under the
// "_errors" key:
//
//	Errors{{"user.emails[0]", "bad"}}.Tree()
//	// {"user": {"emails": {"0": {"_errors": ["bad"]}}}}
func (e Errors) Tree() map[string]any {
	root := make(map[string]any)
	for _, fe := range e {
		node := root
		for _, seg := range segments(fe.Path) {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		msgs, _ := node["_errors"].([]string)
		node["_errors"] = append(msgs, fe.Message)
	}
	return root
}

// Err returns nil when there are no errors, else a *ValidationError.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Errors: e}
}

// segments splits "a.b[0].c" into ["a", "b", "0", "c"].
func segments(path string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range path {
		switch r {
		case '.', '[', ']':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// ValidationError carries Errors through an error return.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Path == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Path+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ── Exceptional errors ───────────────────────────────────────────────────────

// MalformedInputError reports input that could not be parsed into flat keys
// at all, e.g. invalid JSON handed to ExpandJSON.
type MalformedInputError struct {
	Path   string
	Format string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("binding: malformed %s input at %q: %v", e.Format, e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
