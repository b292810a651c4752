package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/km-arc/go-formbind/framework/binding"
	"github.com/km-arc/go-formbind/framework/logging"
)

var (
	ErrInvalidEnv       = errors.New("config: APP_ENV must be local, production or testing")
	ErrInvalidPort      = errors.New("config: APP_PORT must be a port number, 0 picks a free one")
	ErrInvalidLogFormat = errors.New("config: LOG_FORMAT must be json or text")
	ErrEmptyLocale      = errors.New("config: BINDING_LOCALE must not be empty")
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Binding BindingConfig
	Log     logging.LoggerConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	URL   string
	Host  string // empty listens on every interface
	Port  string
}

// BindingConfig holds the root options every form is bound with.
type BindingConfig struct {
	Locale      string // messages locale, "en" uses the built-in templates
	MessagesDir string // optional directory of <locale>.yaml overrides
	EagerCheck  bool
	IgnoreEmpty bool
	I18n        bool
}

// Options returns the root binding options.
func (c BindingConfig) Options() binding.Options {
	return binding.Options{}.
		WithEagerCheck(c.EagerCheck).
		WithIgnoreEmpty(c.IgnoreEmpty).
		WithI18n(c.I18n)
}

// Load reads .env (if present) and populates a Config from environment
// variables. Defaults are applied; call Validate before use.
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "FormBind"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			URL:   env("APP_URL", "http://localhost"),
			Host:  env("APP_HOST", ""),
			Port:  env("APP_PORT", "8000"),
		},
		Binding: BindingConfig{
			Locale:      env("BINDING_LOCALE", "en"),
			MessagesDir: env("BINDING_MESSAGES_DIR", ""),
			EagerCheck:  envBool("BINDING_EAGER_CHECK", false),
			IgnoreEmpty: envBool("BINDING_IGNORE_EMPTY", false),
			I18n:        envBool("BINDING_I18N", false),
		},
		Log: logging.LoggerConfig{
			Level:  env("LOG_LEVEL", ""),
			Format: env("LOG_FORMAT", "json"),
		},
	}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills empty fields and reports whether anything changed.
func (c *Config) SetDefaults() bool {
	changed := false
	set := func(field *string, value string) {
		if *field == "" {
			*field = value
			changed = true
		}
	}
	set(&c.App.Name, "FormBind")
	set(&c.App.Env, "local")
	set(&c.App.Port, "8000")
	set(&c.Binding.Locale, "en")
	set(&c.Log.Format, "json")
	if c.Log.Level == "" {
		if c.App.Debug {
			c.Log.Level = "debug"
		} else {
			c.Log.Level = "info"
		}
		changed = true
	}
	return changed
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if !slices.Contains([]string{"local", "production", "testing"}, c.App.Env) {
		err = multierr.Append(err, fmt.Errorf("%w: got %q", ErrInvalidEnv, c.App.Env))
	}
	if p, perr := strconv.Atoi(c.App.Port); perr != nil || p < 0 || p > 65535 {
		err = multierr.Append(err, fmt.Errorf("%w: got %q", ErrInvalidPort, c.App.Port))
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		err = multierr.Append(err, fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Log.Format))
	}
	if strings.TrimSpace(c.Binding.Locale) == "" {
		err = multierr.Append(err, ErrEmptyLocale)
	}
	return err
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string { return net.JoinHostPort(c.App.Host, c.App.Port) }

func (c *Config) IsLocal() bool      { return c.App.Env == "local" }
func (c *Config) IsProduction() bool { return c.App.Env == "production" }
func (c *Config) IsTesting() bool    { return c.App.Env == "testing" }

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
