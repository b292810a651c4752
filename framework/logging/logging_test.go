package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-formbind/framework/logging"
)

func TestNewLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "INFO"}, &buf)
	logger.Info("bound", slog.String("form", "signup"))

	var entry map[string]any

	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "output should be valid JSON")
	assert.Equal(t, "bound", entry["msg"])
	assert.Equal(t, "signup", entry["form"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLogger_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Format: "TEXT"}, &buf)
	logger.Warn("rejected", "paths", 2)

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "msg=rejected")
	assert.Contains(t, buf.String(), "paths=2")
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		configLevel string
		logLevel    slog.Level
		shouldLog   bool
	}{
		{"debug level logs debug", "debug", slog.LevelDebug, true},
		{"info level does not log debug", "info", slog.LevelDebug, false},
		{"warning alias", "WARNING", slog.LevelWarn, true},
		{"warn level does not log info", "WARN", slog.LevelInfo, false},
		{"error level logs error", "ERROR", slog.LevelError, true},
		{"unknown defaults to info", "verbose", slog.LevelInfo, true},
		{"empty defaults to info", "", slog.LevelDebug, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := logging.NewLogger(logging.LoggerConfig{Level: tc.configLevel}, &buf)
			logger.Log(context.Background(), tc.logLevel, "probe")

			assert.Equal(t, tc.shouldLog, buf.Len() > 0)
		})
	}
}
