package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string
	Format string // json | text
}

// NewLogger creates a slog.Logger writing to w. The level defaults to INFO
// and the format to JSON when empty or unknown.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     parseLevel(config.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(config.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
