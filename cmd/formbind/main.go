package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/km-arc/go-formbind/framework/app"
	"github.com/km-arc/go-formbind/framework/binding"
	gohttp "github.com/km-arc/go-formbind/framework/http"
	"github.com/km-arc/go-formbind/framework/routing"
	"github.com/km-arc/go-formbind/framework/transform"
)

type EmailAddress string

// UserID is bound from a uuid.UUID through a registered transformer.
type UserID string

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
}

type Signup struct {
	Email    EmailAddress `form:"email"`
	Password string       `form:"password"`
	Age      int          `form:"age"`
	Nickname *string      `form:"nickname"`
	Birthday time.Time    `form:"birthday"`
	Tags     []string     `form:"tags"`
	Address  Address      `form:"address"`
	Referrer *UserID      `form:"referrer"`
}

type Lookup struct {
	ID UserID `form:"id"`
}

var signupForm = binding.Group(
	binding.Named("email", binding.Transform(
		binding.Text().Process(binding.Trim()).Constraint(binding.MustRules("required|email")...),
		func(s string) (EmailAddress, error) { return EmailAddress(strings.ToLower(s)), nil },
	)),
	binding.Named("password", binding.Text().Constraint(binding.MustRules("required|min:8|confirmed")...)),
	binding.Named("age", binding.Int().Constraint(binding.Required()).Verifying(binding.Min(18))),
	binding.Named("nickname", binding.OptionalOf(binding.Text().Constraint(binding.MaxLength(32)))),
	binding.Named("birthday", binding.OptionalOf(binding.Date())),
	binding.Named("tags", binding.ListOf(binding.Text().Constraint(binding.AlphaDash())).Verifying(binding.MaxSize[string](5))),
	binding.Named("referrer", binding.OptionalOf(binding.UUID())),
	binding.Named("address", binding.Group(
		binding.Named("street", binding.Text()),
		binding.Named("city", binding.Text().Constraint(binding.Required())),
	).Configure(func(o binding.Options) binding.Options { return o.WithIgnoreEmpty(true) })),
)

var avatarForm = binding.Group(
	binding.Named("caption", binding.Text().Process(binding.Trim()).Constraint(binding.MaxLength(80))),
)

var lookupForm = binding.Group(
	binding.Named("id", binding.UUID().Constraint(binding.Required())),
)

func userID(id uuid.UUID) (UserID, error) { return UserID(id.String()), nil }

func main() {
	transform.RegisterFunc(transform.Default(), userID)

	application := app.New(app.WithRoutes(routes))
	application.Run()
}

func routes(r *routing.Router, b *binding.Binder, reg *transform.Registry) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"message": "Welcome to FormBind!"})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {
		// POST /api/v1/signup
		api.Post("/signup", gohttp.Handle(b, transform.Bean[Signup](signupForm, reg),
			func(res *gohttp.Response, _ *gohttp.Request, v Signup) {
				res.Created(v)
			}))

		api.Group(func(protected *routing.Router) {
			protected.Middleware(AuthMiddleware)

			// GET /api/v1/users/{id}
			protected.Get("/users/{id}", gohttp.Handle(b, transform.Bean[Lookup](lookupForm, reg),
				func(res *gohttp.Response, _ *gohttp.Request, v Lookup) {
					res.Success(map[string]any{"id": v.ID})
				}))

			// POST /api/v1/avatar (multipart)
			protected.Post("/avatar", gohttp.Handle(b, avatarForm, uploadAvatar(b)))
		})
	})
}

func uploadAvatar(b *binding.Binder) func(*gohttp.Response, *gohttp.Request, *binding.BoundTree) {
	return func(res *gohttp.Response, req *gohttp.Request, v *binding.BoundTree) {
		fh, err := req.File("avatar")
		if err != nil {
			res.ValidationError(binding.Errors{{
				Path:    "avatar",
				Message: binding.Message(b.Messages(), "error.required", "avatar"),
			}})
			return
		}
		caption, _ := binding.Lookup[string](v, "caption")
		res.Created(map[string]any{"caption": caption, "file": fh.Filename, "size": fh.Size})
	}
}

// AuthMiddleware rejects requests without a bearer token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gohttp.NewRequest(r).BearerToken() == "" {
			gohttp.NewResponse(w).Unauthorized()
			return
		}
		next.ServeHTTP(w, r)
	})
}
