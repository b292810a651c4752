// Package binding binds flat, string-keyed input (form values, query
// parameters) into typed, validated and possibly nested values.
//
// # Overview
//
// Nested structure is encoded in the keys themselves: "user.name" is the
// name field of user and "tags[1]" the second element of tags. A Mapping
// describes how the input at a path becomes a T and which rules it must
// satisfy. Mappings are built by composing combinators and are immutable,
// so a mapping declared once can be shared by concurrent requests.
//
// # Basic Usage
//
//	signup := binding.Group(
//	    binding.Named("email", binding.Text().Constraint(binding.MustRules("required|email")...)),
//	    binding.Named("age", binding.Int().Verifying(binding.Min(18))),
//	    binding.Named("tags", binding.ListOf(binding.Text())),
//	)
//
//	b := binding.NewBinder(nil)
//	tree, errs, err := binding.Bind(b, signup, map[string]string{
//	    "email":   "alice@example.com",
//	    "age":     "30",
//	    "tags[0]": "go",
//	})
//	if errs.Has() {
//	    // errs.Fold() → {"field": ["message1", "message2"]}
//	}
//
// # Validation
//
// A node is validated in tiers. Pre-processors rewrite the input first. An
// empty node is skipped when IgnoreEmpty is on and no TouchedChecker claims
// it. Then every attached Constraint runs, followed by the node's built-in
// check (e.g. "parses as an integer"). Extra constraints run on the
// converted value only when the first tier reported nothing.
//
// Combinators that delegate to another mapping (OptionalOf, and Group for its
// children) only validate the delegate when their own constraints passed,
// unless EagerCheck is on.
//
// # Available Rules
//
// Rule strings follow the Laravel Validator syntax and are parsed by
// ParseRules: required, string, nullable, sometimes, numeric, integer,
// boolean, email, url, min:n, max:n, size:n, between:a,b, in:a,b,
// not_in:a,b, confirmed, same:field, different:field, alpha, alpha_num,
// alpha_dash, regex:pattern, not_regex:pattern, gt:n, gte:n, lt:n, lte:n.
package binding
