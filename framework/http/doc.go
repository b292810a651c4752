// Package http binds HTTP requests through form mappings.
//
// # Request
//
// Request wraps *http.Request and exposes its input as the flat keys the
// binding engine reads.
//
//	req := gohttp.NewRequest(r)
//
//	data, err := req.Data() // query + body + route params, flattened
//	// {"user":{"tags":["a","b"]}} → user.tags[0]=a, user.tags[1]=b
//
//	name  := req.Input("name", "default")
//	page  := req.Query("page", "1")
//	id    := req.RouteParam("id")
//	token := req.BearerToken()
//
// # Binding
//
// Handle validates and converts the input before the handler runs:
//
//	r.Post("/signup", gohttp.Handle(binder, transform.Bean[Signup](signupForm, nil),
//	    func(res *gohttp.Response, req *gohttp.Request, v Signup) {
//	        res.Created(v)
//	    }))
//
// Invalid input answers 422 with the error bag, a body that cannot be parsed
// answers 400.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//	res.Unauthorized()            // 401
//	res.ValidationError(errs)     // 422 {"message": ..., "errors": {...}}
package http
