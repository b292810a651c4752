package routing_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/km-arc/go-formbind/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(quiet())
	r.Get("/hello", okHandler)
	r.Post("/users", okHandler)
	r.Put("/users/{id}", okHandler)
	r.Patch("/users/{id}", okHandler)
	r.Delete("/users/{id}", okHandler)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/hello"},
		{http.MethodPost, "/users"},
		{http.MethodPut, "/users/1"},
		{http.MethodPatch, "/users/1"},
		{http.MethodDelete, "/users/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if rr := do(t, r, tt.method, tt.path); rr.Code != http.StatusOK {
				t.Errorf("got %d want 200", rr.Code)
			}
		})
	}
}

// ── 404 for unregistered routes ──────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(quiet())
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New(quiet())
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := routing.Param(req, "id")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(id))
	})

	rr := do(t, r, http.MethodGet, "/users/42")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if rr.Body.String() != "42" {
		t.Errorf("got body %q want %q", rr.Body.String(), "42")
	}
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(quiet())
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/users", okHandler)
	})

	if rr := do(t, r, http.MethodGet, "/api/v1/users"); rr.Code != http.StatusOK {
		t.Errorf("GET /api/v1/users: got %d want 200", rr.Code)
	}
	if rr := do(t, r, http.MethodGet, "/users"); rr.Code != http.StatusNotFound {
		t.Errorf("GET /users: expected 404, got %d", rr.Code)
	}
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(quiet())
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/protected", okHandler)
	})
	r.Get("/open", okHandler)

	do(t, r, http.MethodGet, "/open")
	if called {
		t.Error("middleware must not run outside its group")
	}
	do(t, r, http.MethodGet, "/protected")
	if !called {
		t.Error("expected middleware to be called")
	}
}

// ── Middleware defaults ──────────────────────────────────────────────────────

func TestRouter_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	r := routing.New(slog.New(slog.NewTextHandler(&buf, nil)))
	r.Post("/signup", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	do(t, r, http.MethodPost, "/signup")

	out := buf.String()
	for _, want := range []string{"level=WARN", "method=POST", "path=/signup", "status=422", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q misses %q", out, want)
		}
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(quiet())
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	if rr := do(t, r, http.MethodGet, "/boom"); rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d want 500", rr.Code)
	}
}

// ── Handler() returns http.Handler ───────────────────────────────────────────

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	r.Get("/ping", okHandler)
	rr := httptest.NewRecorder()
	r.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("got %d want 200", rr.Code)
	}
}
