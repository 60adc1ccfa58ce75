// Package logging builds the diagnostic logger used by the formatify CLI.
//
// Logs go to stderr so they never mix with rendered output on stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Options selects the handler and minimum level.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is text or json.
	Format string
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch opts.Format {
	case "", "text":
		h = slog.NewTextHandler(w, handlerOpts)
	case "json":
		h = slog.NewJSONHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(h), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewRunID returns an identifier for one CLI invocation.
func NewRunID() string {
	return uuid.NewString()
}

// EnrichLogger adds invocation context to a logger.
// Returns a new logger with run_id and command fields.
func EnrichLogger(logger *slog.Logger, runID, command string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("command", command),
	)
}

// LogCommandStart logs the start of a command.
func LogCommandStart(logger *slog.Logger, template string, valueCount int) {
	if logger == nil {
		return
	}
	logger.Info("command starting",
		slog.String("template", template),
		slog.Int("values", valueCount),
	)
}

// LogCommandComplete logs successful command completion.
func LogCommandComplete(logger *slog.Logger, started time.Time) {
	if logger == nil {
		return
	}
	logger.Info("command completed",
		slog.Float64("duration_ms", float64(time.Since(started).Microseconds())/1000),
	)
}

// LogCommandError logs command failure.
func LogCommandError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Error("command failed",
		slog.String("error", err.Error()),
	)
}
