package binding

import (
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	alphaRe     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	urlRe       = regexp.MustCompile(`^https?://[^\s/$.?#][^\s]*$`)
)

// rule builds a constraint checking the non-blank value at path. Blank values
// pass: presence is Required's job.
func rule(key string, ok func(value string) bool, args ...any) Constraint {
	return func(path string, data map[string]string, messages Messages, options Options) Errors {
		value := data[path]
		if isBlank(value) || ok(value) {
			return nil
		}
		label := LabelFor(path, messages, options)
		return Errors{{Path: path, Message: Message(messages, key, append([]any{label}, args...)...)}}
	}
}

// ── Presence ─────────────────────────────────────────────────────────────────

// Required reports an empty input under the node's presence mode.
func Required() Constraint {
	return func(path string, data map[string]string, messages Messages, options Options) Errors {
		if !IsEmptyInput(path, data, options.PresenceMode()) {
			return nil
		}
		return Errors{{Path: path, Message: Message(messages, "error.required", LabelFor(path, messages, options))}}
	}
}

// ── String rules ─────────────────────────────────────────────────────────────

func MinLength(n int) Constraint {
	return rule("error.minlength", func(v string) bool { return utf8.RuneCountInString(v) >= n }, n)
}

func MaxLength(n int) Constraint {
	return rule("error.maxlength", func(v string) bool { return utf8.RuneCountInString(v) <= n }, n)
}

// Length requires exactly n characters.
func Length(n int) Constraint {
	return rule("error.length", func(v string) bool { return utf8.RuneCountInString(v) == n }, n)
}

func LengthBetween(min, max int) Constraint {
	return rule("error.lengthbetween", func(v string) bool {
		l := utf8.RuneCountInString(v)
		return l >= min && l <= max
	}, min, max)
}

func OneOf(values ...string) Constraint {
	return rule("error.oneof", func(v string) bool { return slices.Contains(values, v) })
}

func NoneOf(values ...string) Constraint {
	return rule("error.noneof", func(v string) bool { return !slices.Contains(values, v) })
}

func Alpha() Constraint     { return rule("error.alpha", alphaRe.MatchString) }
func AlphaNum() Constraint  { return rule("error.alphanum", alphaNumRe.MatchString) }
func AlphaDash() Constraint { return rule("error.alphadash", alphaDashRe.MatchString) }

// Pattern requires the value to match expr. It panics on an invalid expr.
func Pattern(expr string) Constraint {
	re := regexp.MustCompile(expr)
	return rule("error.pattern", re.MatchString)
}

// PatternNot requires the value not to match expr.
func PatternNot(expr string) Constraint {
	re := regexp.MustCompile(expr)
	return rule("error.patternnot", func(v string) bool { return !re.MatchString(v) }, expr)
}

// ── Format rules ─────────────────────────────────────────────────────────────

func Email() Constraint {
	return rule("error.email", func(v string) bool {
		_, err := mail.ParseAddress(v)
		return err == nil
	})
}

// URL requires an http or https URL.
func URL() Constraint {
	return rule("error.url", urlRe.MatchString)
}

func Numeric() Constraint {
	return rule("error.number", func(v string) bool {
		_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil
	})
}

func Integer() Constraint {
	return rule("error.integer", func(v string) bool {
		_, err := strconv.Atoi(strings.TrimSpace(v))
		return err == nil
	})
}

func Boolean() Constraint {
	return rule("error.boolean", func(v string) bool {
		_, err := parseBool(strings.TrimSpace(v))
		return err == nil
	})
}

// ── Numeric comparisons ──────────────────────────────────────────────────────

func compare(key string, bound float64, ok func(v, bound float64) bool) Constraint {
	shown := strconv.FormatFloat(bound, 'f', -1, 64)
	return rule(key, func(v string) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil && ok(f, bound)
	}, shown)
}

func Gt(bound float64) Constraint {
	return compare("error.gt", bound, func(v, b float64) bool { return v > b })
}

func Gte(bound float64) Constraint {
	return compare("error.gte", bound, func(v, b float64) bool { return v >= b })
}

func Lt(bound float64) Constraint {
	return compare("error.lt", bound, func(v, b float64) bool { return v < b })
}

func Lte(bound float64) Constraint {
	return compare("error.lte", bound, func(v, b float64) bool { return v <= b })
}

// ── Cross-field rules ────────────────────────────────────────────────────────

// sibling resolves other relative to the parent of path.
func sibling(path, other string) string {
	parent, _, _ := SplitName(path)
	return ChildPath(parent, other)
}

// Same requires the value to equal the sibling field other.
func Same(other string) Constraint {
	return func(path string, data map[string]string, messages Messages, options Options) Errors {
		if data[path] == data[sibling(path, other)] {
			return nil
		}
		label := LabelFor(path, messages, options)
		return Errors{{Path: path, Message: Message(messages, "error.same", label, other)}}
	}
}

// Different requires the value to differ from the sibling field other.
func Different(other string) Constraint {
	return func(path string, data map[string]string, messages Messages, options Options) Errors {
		if isBlank(data[path]) || data[path] != data[sibling(path, other)] {
			return nil
		}
		label := LabelFor(path, messages, options)
		return Errors{{Path: path, Message: Message(messages, "error.different", label, other)}}
	}
}

// Confirmed requires a sibling "<leaf>_confirmation" with the same value.
func Confirmed() Constraint {
	return func(path string, data map[string]string, messages Messages, options Options) Errors {
		_, leaf, _ := SplitName(path)
		if isBlank(data[path]) || data[path] == data[sibling(path, leaf+"_confirmation")] {
			return nil
		}
		return Errors{{Path: path, Message: Message(messages, "error.confirmed", LabelFor(path, messages, options))}}
	}
}

// ── Structural rules ─────────────────────────────────────────────────────────

// IndexInKeys reports every path[i] key whose index is not within [0, n).
func IndexInKeys(n int) Constraint {
	return func(path string, data map[string]string, messages Messages, options Options) Errors {
		var errs Errors
		label := LabelFor(path, messages, options)
		for _, i := range Indexes(path, data) {
			if i >= n {
				errs = append(errs, FieldError{
					Path:    IndexPath(path, i),
					Message: Message(messages, "error.index", label, strconv.Itoa(i)),
				})
			}
		}
		return errs
	}
}

// AnyPassed passes when at least one of cs reports no errors; otherwise it
// returns the errors of every constraint.
func AnyPassed(cs ...Constraint) Constraint {
	return func(path string, data map[string]string, messages Messages, options Options) Errors {
		var all Errors
		for _, c := range cs {
			errs := c(path, data, messages, options)
			if len(errs) == 0 {
				return nil
			}
			all = append(all, errs...)
		}
		return all
	}
}
