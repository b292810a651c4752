package binding

import "log/slog"

// Binder is the validate-then-convert facade. It holds the messages and the
// root options every mapping is merged against.
type Binder struct {
	messages Messages
	options  Options
	logger   *slog.Logger
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithOptions sets the root options, e.g. eager checking for every mapping.
func WithOptions(o Options) BinderOption {
	return func(b *Binder) { b.options = o }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) BinderOption {
	return func(b *Binder) { b.logger = l }
}

// NewBinder creates a Binder. A nil messages uses the English defaults.
func NewBinder(messages Messages, opts ...BinderOption) *Binder {
	if messages == nil {
		messages = DefaultMessages()
	}
	b := &Binder{messages: messages, options: Options{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Binder) Messages() Messages { return b.messages }

func (b *Binder) Options() Options { return b.options }

// Validate checks data against m at the root path.
func (b *Binder) Validate(m Node, data map[string]string) (Errors, error) {
	errs, err := m.Validate("", data, b.messages, b.options)
	if err != nil {
		b.logger.Warn("binding: validation aborted", "error", err)
		return nil, err
	}
	if len(errs) > 0 {
		b.logger.Debug("binding: validation failed", "errors", len(errs), "paths", errs.Paths())
	}
	return errs, nil
}

// Bind validates data against m and converts it when there are no errors.
// Convert is never attempted after a validation failure.
func Bind[T any](b *Binder, m Mapping[T], data map[string]string) (T, Errors, error) {
	var zero T
	errs, err := b.Validate(m, data)
	if err != nil || len(errs) > 0 {
		return zero, errs, err
	}
	v, err := m.Convert("", data)
	if err != nil {
		b.logger.Warn("binding: conversion failed", "error", err)
		return zero, nil, err
	}
	return v, nil, nil
}
