// Package transform shapes bound values into application types.
//
// A Registry maps source types to conversion functions. Structs are filled
// from a *binding.BoundTree property by property through an Accessor, and
// everything else recurses structurally until a scalar reaches the registry.
//
//	type Signup struct {
//	    Email string   `form:"email"`
//	    Age   int      `form:"age"`
//	    Tags  []string `form:"tags"`
//	}
//
//	user, errs, err := transform.BindTo[Signup](binder, signup, data, nil)
//
// The registry resolves a type by walking its embedding chain, so a
// transformer registered for Base also serves a struct whose first field
// embeds Base.
package transform
