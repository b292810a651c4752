package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/km-arc/go-formbind/framework/binding"
	gohttp "github.com/km-arc/go-formbind/framework/http"
)

var signup = binding.Group(
	binding.Named("email", binding.Text().Process(binding.Trim()).Constraint(binding.MustRules("required|email")...)),
	binding.Named("age", binding.Int().Constraint(binding.Required()).Verifying(binding.Min(18))),
	binding.Named("tags", binding.ListOf(binding.Text())),
)

func signupHandler() http.HandlerFunc {
	return gohttp.Handle(binding.NewBinder(nil), signup, func(res *gohttp.Response, _ *gohttp.Request, v *binding.BoundTree) {
		res.Created(v)
	})
}

func serve(t *testing.T, h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func TestHandle_Created(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":" a@b.io ","age":21,"tags":["go"]}`))
	r.Header.Set("Content-Type", "application/json")

	rr := serve(t, signupHandler(), r)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201 (%s)", rr.Code, rr.Body.String())
	}
	if got := rr.Body.String(); got != `{"data":{"email":"a@b.io","age":21,"tags":["go"]}}`+"\n" {
		t.Errorf("body: got %q", got)
	}
}

func TestHandle_Form(t *testing.T) {
	vals := url.Values{"email": {"a@b.io"}, "age": {"30"}, "tags[]": {"x", "y"}}
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := serve(t, signupHandler(), r)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201 (%s)", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["data"].(map[string]any)["tags"]; len(got.([]any)) != 2 {
		t.Errorf("tags: got %v", got)
	}
}

func TestHandle_ValidationFailed(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"nope","age":"16"}`))
	r.Header.Set("Content-Type", "application/json")

	rr := serve(t, signupHandler(), r)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want 422", rr.Code)
	}
	errs, ok := decodeJSON(t, rr)["errors"].(map[string]any)
	if !ok {
		t.Fatal("expected errors bag")
	}
	for _, field := range []string{"email", "age"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %q in errors, got %v", field, errs)
		}
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":`))
	r.Header.Set("Content-Type", "application/json")

	rr := serve(t, signupHandler(), r)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d want 400", rr.Code)
	}
}

func TestBind(t *testing.T) {
	req := newGetRequest(t, "email=a@b.io&age=40")

	tree, errs, err := gohttp.Bind(req, binding.NewBinder(nil), signup)
	if err != nil || errs.Has() {
		t.Fatalf("Bind: err=%v errs=%v", err, errs)
	}
	if age, _ := binding.Lookup[int](tree, "age"); age != 40 {
		t.Errorf("age: got %d want 40", age)
	}
}
