package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-formbind/framework/binding"
)

const maxMemory = 32 << 20 // 32 MB

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw *http.Request

	data    map[string]string
	dataErr error
	parsed  bool
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Flat input ───────────────────────────────────────────────────────────────

// Data returns every input of the request as flat binding keys: the query
// string, then the body (JSON, urlencoded or multipart), then chi route
// parameters, each overriding the previous source. A field sent more than
// once, or named "field[]", becomes field[0], field[1], ...; JSON objects and
// arrays become dotted and indexed keys. The body is read once and cached.
//
// A body that is not valid JSON yields a *binding.MalformedInputError.
func (req *Request) Data() (map[string]string, error) {
	if req.parsed {
		return req.data, req.dataErr
	}
	req.parsed = true
	req.data, req.dataErr = req.collect()
	return req.data, req.dataErr
}

func (req *Request) collect() (map[string]string, error) {
	out := make(map[string]string)
	addValues(out, req.raw.URL.Query())

	ct := req.ContentType()
	switch {
	case strings.Contains(ct, "application/json"):
		if err := req.readJSON(out); err != nil {
			return nil, err
		}
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return nil, err
		}
		addValues(out, req.raw.MultipartForm.Value)
	case req.raw.Body != nil && req.raw.Body != http.NoBody:
		if err := req.raw.ParseForm(); err != nil {
			return nil, err
		}
		addValues(out, req.raw.PostForm)
	}

	if rctx := chi.RouteContext(req.raw.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key != "*" && i < len(rctx.URLParams.Values) {
				out[key] = rctx.URLParams.Values[i]
			}
		}
	}
	return out, nil
}

func (req *Request) readJSON(out map[string]string) error {
	if req.raw.Body == nil {
		return nil
	}
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &binding.MalformedInputError{Path: "", Format: "json", Err: err}
	}
	if _, ok := doc.(map[string]any); !ok {
		return &binding.MalformedInputError{Path: "", Format: "json", Err: errors.New("body must be a JSON object")}
	}
	binding.Flatten("", doc, out)
	return nil
}

// addValues writes url.Values-like input into out.
func addValues(out map[string]string, values map[string][]string) {
	for key, vals := range values {
		name, forced := strings.CutSuffix(key, "[]")
		if len(vals) == 1 && !forced {
			out[name] = vals[0]
			continue
		}
		for i, v := range vals {
			out[binding.IndexPath(name, i)] = v
		}
	}
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single flat input value.
func (req *Request) Input(key string, fallback ...string) string {
	data, _ := req.Data()
	v := data[key]
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// All returns all input as a flat map; it is empty when the body is invalid.
func (req *Request) All() map[string]string {
	data, err := req.Data()
	if err != nil {
		return map[string]string{}
	}
	return data
}

// Has returns true if the key is present and non-empty.
func (req *Request) Has(key string) bool {
	return req.Input(key) != ""
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// ── File uploads ─────────────────────────────────────────────────────────────

// File returns an uploaded file by field name.
func (req *Request) File(key string) (*multipart.FileHeader, error) {
	if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
		return nil, err
	}
	_, fh, err := req.raw.FormFile(key)
	return fh, err
}
