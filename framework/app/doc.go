// Package app assembles a runnable form-binding service.
//
// New loads the configuration, builds the logger and starts an Fx container
// holding the message bundle, the binder, the transformer registry and the
// router. Routes are registered through WithRoutes, whose function receives
// any of those components:
//
//	application := app.New(app.WithRoutes(func(r *routing.Router, b *binding.Binder) {
//	    r.Post("/signup", gohttp.Handle(b, signupForm, createUser))
//	}))
//	application.Run()
package app
