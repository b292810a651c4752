package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/km-arc/go-formbind/framework/binding"
	"github.com/km-arc/go-formbind/framework/config"
	"github.com/km-arc/go-formbind/framework/logging"
	"github.com/km-arc/go-formbind/framework/providers"
	"github.com/km-arc/go-formbind/framework/routing"
	"github.com/km-arc/go-formbind/framework/transform"
)

var errAppNotInitialized = errors.New("app: not initialized")

// Options holds configuration settings for the application.
type Options struct {
	EnvFiles  []string
	Modules   []fx.Option
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithEnvFiles sets the .env files read at startup; the default is ".env".
func WithEnvFiles(files ...string) Option {
	return func(opts *Options) {
		opts.EnvFiles = append(opts.EnvFiles, files...)
	}
}

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithRoutes registers routes once the router and binder exist.
//
//	app.WithRoutes(func(r *routing.Router, b *binding.Binder) {
//	    r.Post("/signup", gohttp.Handle(b, signup, store))
//	})
func WithRoutes(fn any) Option {
	return WithModules(fx.Invoke(fn))
}

// WithLogOutput sets where logs are written; the default is os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}

// Application is the top-level application: configuration, logger and the
// Fx container wiring the binder, router and HTTP server.
type Application struct {
	app    *fx.App
	config *config.Config
	logger *slog.Logger

	router   *routing.Router
	binder   *binding.Binder
	registry *transform.Registry
	server   *Server
}

// New loads the configuration and builds the application.
func New(opts ...Option) *Application {
	options := Options{LogOutput: os.Stderr}
	for _, apply := range opts {
		apply(&options)
	}

	cfg := config.Load(options.EnvFiles...)
	logger := logging.NewLogger(cfg.Log, options.LogOutput)
	slog.SetDefault(logger)

	a := &Application{config: cfg, logger: logger}

	var validation fx.Option = fx.Options()
	if err := cfg.Validate(); err != nil {
		validation = fx.Error(fmt.Errorf("invalid configuration: %w", err))
	}

	a.app = fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		validation,
		fx.Supply(cfg, logger),
		providers.Framework(),
		fx.Options(options.Modules...),
		fx.Invoke(a.serve),
		fx.Populate(&a.router, &a.binder, &a.registry),
	)
	return a
}

// serve registers the HTTP server with the Fx lifecycle.
func (a *Application) serve(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, router *routing.Router) error {
	srv, err := NewServer(a.config.Address(), router, a.logger, func() {
		if err := shutdowner.Shutdown(); err != nil {
			a.logger.Error("failed to trigger shutdown", "error", err)
		}
	})
	if err != nil {
		return err
	}
	a.server = srv

	lifecycle.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})
	return nil
}

// Err returns the error that prevented the application from being built.
func (a *Application) Err() error {
	if a == nil || a.app == nil {
		return errAppNotInitialized
	}
	return a.app.Err()
}

// Start starts the Fx application and the HTTP server.
func (a *Application) Start(ctx context.Context) error {
	if a == nil || a.app == nil {
		return errAppNotInitialized
	}
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}
	return nil
}

// Stop stops the Fx application gracefully.
func (a *Application) Stop(ctx context.Context) error {
	if a == nil || a.app == nil {
		return errAppNotInitialized
	}
	if err := a.app.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}
	return nil
}

// Run starts the application and blocks until an OS signal is received, then
// shuts down gracefully.
func (a *Application) Run() {
	if a == nil || a.app == nil {
		slog.Error("attempted to run an uninitialized app")
		return
	}
	a.logger.Info("application starting", "name", a.config.App.Name, "env", a.config.App.Env, "address", a.config.Address())
	a.app.Run()
}

func (a *Application) Config() *config.Config        { return a.config }
func (a *Application) Logger() *slog.Logger          { return a.logger }
func (a *Application) Router() *routing.Router       { return a.router }
func (a *Application) Binder() *binding.Binder       { return a.binder }
func (a *Application) Registry() *transform.Registry { return a.registry }

// Addr returns the address the HTTP server listens on.
func (a *Application) Addr() string {
	if a.server == nil {
		return a.config.Address()
	}
	return a.server.Addr()
}
