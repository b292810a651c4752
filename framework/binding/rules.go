package binding

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Rules maps a field name to a pipe-separated rule string, the Laravel
// Validator::make syntax.
//
//	binding.Rules{"email": "required|email", "age": "required|numeric|gte:18"}
type Rules map[string]string

// Group builds a group of Text fields, one per rule entry, in name order.
// A "sometimes" rule makes the field skip validation when empty.
func (r Rules) Group() (Mapping[*BoundTree], error) {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)

	fields := make([]NamedNode, 0, len(names))
	for _, name := range names {
		cs, err := ParseRules(r[name])
		if err != nil {
			return nil, fmt.Errorf("binding: rules for %q: %w", name, err)
		}
		m := Text().Constraint(cs...)
		if hasRule(r[name], "sometimes") {
			m = m.Configure(func(o Options) Options { return o.WithIgnoreEmpty(true) })
		}
		fields = append(fields, Named(name, m))
	}
	return Group(fields...), nil
}

func hasRule(spec, name string) bool {
	for _, part := range strings.Split(spec, "|") {
		if n, _, _ := strings.Cut(strings.TrimSpace(part), ":"); n == name {
			return true
		}
	}
	return false
}

// ParseRules turns a rule string such as "required|min:3|email" into
// constraints, in order. Unknown rules and bad parameters are errors.
func ParseRules(spec string) ([]Constraint, error) {
	var out []Constraint
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// min:3 → name=min, param=3
		name, param, _ := strings.Cut(part, ":")
		c, err := parseRule(name, param)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", part, err)
		}
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// MustRules is ParseRules that panics on error, for package-level mappings.
func MustRules(spec string) []Constraint {
	cs, err := ParseRules(spec)
	if err != nil {
		panic("binding: " + err.Error())
	}
	return cs
}

func parseRule(name, param string) (Constraint, error) {
	switch name {
	case "string", "nullable", "sometimes":
		// Every form value is a string; presence handling lives elsewhere.
		return nil, nil
	case "required":
		return Required(), nil
	case "numeric":
		return Numeric(), nil
	case "integer":
		return Integer(), nil
	case "boolean":
		return Boolean(), nil
	case "email":
		return Email(), nil
	case "url":
		return URL(), nil
	case "alpha":
		return Alpha(), nil
	case "alpha_num":
		return AlphaNum(), nil
	case "alpha_dash":
		return AlphaDash(), nil
	case "confirmed":
		return Confirmed(), nil

	case "min", "max", "size":
		n, err := strconv.Atoi(param)
		if err != nil {
			return nil, fmt.Errorf("want integer parameter: %w", err)
		}
		switch name {
		case "min":
			return MinLength(n), nil
		case "max":
			return MaxLength(n), nil
		default:
			return Length(n), nil
		}

	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return nil, fmt.Errorf("want two parameters")
		}
		min, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, err
		}
		max, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, err
		}
		return LengthBetween(min, max), nil

	case "in", "not_in":
		values := strings.Split(param, ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		if name == "in" {
			return OneOf(values...), nil
		}
		return NoneOf(values...), nil

	case "same", "different":
		if param == "" {
			return nil, fmt.Errorf("want a field name")
		}
		if name == "same" {
			return Same(param), nil
		}
		return Different(param), nil

	case "regex", "not_regex":
		if _, err := regexp.Compile(param); err != nil {
			return nil, err
		}
		if name == "regex" {
			return Pattern(param), nil
		}
		return PatternNot(param), nil

	case "gt", "gte", "lt", "lte":
		f, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return nil, fmt.Errorf("want numeric parameter: %w", err)
		}
		switch name {
		case "gt":
			return Gt(f), nil
		case "gte":
			return Gte(f), nil
		case "lt":
			return Lt(f), nil
		default:
			return Lte(f), nil
		}
	}
	return nil, fmt.Errorf("unknown rule %q", name)
}
