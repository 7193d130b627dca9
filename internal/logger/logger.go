// Package logger builds the structured slog logger shared by every binary.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultLogFile receives logs when Output is "file".
const DefaultLogFile = "code-review-assistant.log"

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// OpenOutput resolves cfg.Output to a writer. The returned close func is
// always non-nil.
func OpenOutput(cfg Config) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	case "file":
		file, err := os.OpenFile(DefaultLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return os.Stdout, noop, fmt.Errorf("failed to open log file: %w", err)
		}
		return file, file.Close, nil
	default:
		return os.Stdout, noop, fmt.Errorf("unknown log output %q", cfg.Output)
	}
}

// ParseLevel converts a level name, defaulting to info for unknown values.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger initializes a slog logger writing to output in the configured
// format. A nil output resolves cfg.Output.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		w, _, err := OpenOutput(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v, using stdout\n", err)
		}
		output = w
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything, for tests and quiet CLIs.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
