package providers

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/km-arc/go-formbind/framework/binding"
	"github.com/km-arc/go-formbind/framework/config"
	"github.com/km-arc/go-formbind/framework/messages"
	"github.com/km-arc/go-formbind/framework/routing"
	"github.com/km-arc/go-formbind/framework/transform"
)

// ── Messages ──────────────────────────────────────────────────────────────────

// Messages provides the translation bundle for the configured locale.
//
// Provided:
//   - *messages.Bundle
//   - binding.Messages (the same bundle)
//
// Configuration keys read from *config.Config:
//   - Binding.Locale      built-in locale to start from
//   - Binding.MessagesDir optional directory whose <locale>.yaml overrides it
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Messages() fx.Option {
	return fx.Module("messages",
		fx.Provide(
			NewBundle,
			func(b *messages.Bundle) binding.Messages { return b },
		),
	)
}

// NewBundle loads the bundle described by cfg.
func NewBundle(cfg *config.Config, logger *slog.Logger) (*messages.Bundle, error) {
	locale := cfg.Binding.Locale
	bundle, err := messages.Load(locale)
	if err != nil && cfg.Binding.MessagesDir == "" {
		return nil, err
	}
	if err != nil {
		// Only the directory knows this locale.
		bundle = messages.New(locale, nil)
	}

	if dir := cfg.Binding.MessagesDir; dir != "" {
		overrides, derr := messages.LoadDir(dir, locale)
		if derr != nil {
			return nil, fmt.Errorf("loading messages from %s: %w", dir, derr)
		}
		bundle = bundle.Merge(overrides)
	}

	logger.Debug("messages loaded", "locale", bundle.Locale(), "keys", bundle.Len())
	return bundle, nil
}

// ── Binding ───────────────────────────────────────────────────────────────────

// Binding provides the binder and the transformer registry.
//
// Provided:
//   - *binding.Binder     root options from Binding.*, messages from Messages()
//   - *transform.Registry the process-wide default registry
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Binding() fx.Option {
	return fx.Module("binding",
		fx.Provide(
			NewBinder,
			transform.Default,
		),
	)
}

// NewBinder builds the binder every handler binds requests with.
func NewBinder(cfg *config.Config, msgs binding.Messages, logger *slog.Logger) *binding.Binder {
	return binding.NewBinder(msgs,
		binding.WithOptions(cfg.Binding.Options()),
		binding.WithLogger(logger),
	)
}

// ── Routing ───────────────────────────────────────────────────────────────────

// Routing provides the HTTP router.
//
// Provided:
//   - *routing.Router
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Routing() fx.Option {
	return fx.Module("routing",
		fx.Provide(routing.New),
	)
}

// Framework bundles every framework module.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Framework() fx.Option {
	return fx.Options(Messages(), Binding(), Routing())
}
