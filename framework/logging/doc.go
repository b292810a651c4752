// Package logging builds the structured slog logger shared by the binder,
// the HTTP layer and the application kernel.
package logging
