package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/km-arc/go-formbind/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

var keys = []string{
	"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_URL", "APP_HOST", "APP_PORT",
	"BINDING_LOCALE", "BINDING_MESSAGES_DIR", "BINDING_EAGER_CHECK", "BINDING_IGNORE_EMPTY", "BINDING_I18N",
	"LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load("testdata/missing.env")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"App.Name", cfg.App.Name, "FormBind"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Port", cfg.App.Port, "8000"},
		{"Binding.Locale", cfg.Binding.Locale, "en"},
		{"Log.Format", cfg.Log.Format, "json"},
		{"Log.Level", cfg.Log.Level, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.True(t, cfg.App.Debug)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, ":8000", cfg.Address())
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("BINDING_IGNORE_EMPTY", "true")
	t.Setenv("BINDING_I18N", "1")

	cfg := config.Load("testdata/missing.env")

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1:9000", cfg.Address())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Binding.IgnoreEmpty)
	assert.True(t, cfg.Binding.I18n)
	assert.False(t, cfg.Binding.EagerCheck)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	cfg := config.Load("testdata/app.env")

	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.Equal(t, "9100", cfg.App.Port)
	assert.Equal(t, "de", cfg.Binding.Locale)
	assert.True(t, cfg.Binding.EagerCheck)
}

func TestBindingConfig_Options(t *testing.T) {
	t.Parallel()

	opts := config.BindingConfig{EagerCheck: true, I18n: true}.Options()
	assert.True(t, opts.EagerCheck().OrElse(false))
	assert.True(t, opts.I18n().OrElse(false))
	assert.False(t, opts.IgnoreEmpty().OrElse(true))
}

// ── SetDefaults / Validate ───────────────────────────────────────────────────

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	assert.True(t, cfg.SetDefaults())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.SetDefaults(), "second pass changes nothing")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		App:     config.AppConfig{Env: "staging", Port: "http"},
		Binding: config.BindingConfig{Locale: " "},
	}
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.ErrorIs(t, err, config.ErrInvalidEnv)
	assert.ErrorIs(t, err, config.ErrInvalidPort)
	assert.ErrorIs(t, err, config.ErrInvalidLogFormat)
	assert.ErrorIs(t, err, config.ErrEmptyLocale)
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet_ReturnsValue(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))
}

func TestGet_ReturnsFallback(t *testing.T) {
	t.Setenv("MISSING_KEY", "")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
