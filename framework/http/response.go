package http

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-formbind/framework/binding"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) {
	res.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusBadRequest, "Malformed input.")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message ...string) {
	res.Error(http.StatusUnauthorized, first(message, "Unauthenticated."))
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// ValidationError sends 422 with the standard Laravel error bag:
//
//	{"message": "...", "errors": {"email": ["The email field is required."]}}
//
// Fields keep one entry per message, in the order they were reported.
func (res *Response) ValidationError(errs binding.Errors) {
	message := "The given data was invalid."
	if len(errs) > 0 {
		message = errs[0].Message
	}
	res.JSON(http.StatusUnprocessableEntity, envelope{
		"message": message,
		"errors":  errs.Fold(),
	})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
