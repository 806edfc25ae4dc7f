// Package logging provides structured logging setup for the real-estate API.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// IsDev reports whether env names a development environment.
func IsDev(env string) bool {
	switch strings.ToLower(env) {
	case "development", "dev", "local":
		return true
	}
	return false
}

// ParseLevel converts a LOG_LEVEL value into a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// NewHandler builds the handler Setup installs, writing to w.
// Dev environments use human-readable text; others use JSON.
func NewHandler(w io.Writer, env string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if IsDev(env) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Setup initializes the default slog logger on stdout.
func Setup(env, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(NewHandler(os.Stdout, env, lvl)))
	return nil
}
