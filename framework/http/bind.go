package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/km-arc/go-formbind/framework/binding"
)

// Bind validates and converts the request input with m.
func Bind[T any](req *Request, b *binding.Binder, m binding.Mapping[T]) (T, binding.Errors, error) {
	var zero T
	data, err := req.Data()
	if err != nil {
		return zero, nil, err
	}
	return binding.Bind(b, m, data)
}

// Handle adapts a typed handler to http.HandlerFunc. The request is bound
// with m first: invalid input answers 422 with the error bag, malformed
// input 400, and any other failure 500. fn only runs with a bound value.
//
//	r.Post("/signup", gohttp.Handle(binder, signup, func(res *gohttp.Response, req *gohttp.Request, v *binding.BoundTree) {
//	    res.Created(v)
//	}))
func Handle[T any](b *binding.Binder, m binding.Mapping[T], fn func(res *Response, req *Request, v T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := NewRequest(r)
		res := NewResponse(w)

		v, errs, err := Bind(req, b, m)
		switch {
		case err != nil:
			var malformed *binding.MalformedInputError
			if errors.As(err, &malformed) {
				res.Error(http.StatusBadRequest, malformed.Error())
				return
			}
			slog.ErrorContext(r.Context(), "binding request failed", "method", req.Method(), "path", req.Path(), "error", err)
			res.ServerError()
		case errs.Has():
			res.ValidationError(errs)
		default:
			fn(res, req, v)
		}
	}
}
