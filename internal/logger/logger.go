// Package logger provides structured logging for the pip-ingester
// binaries. Library packages stay silent; only binaries and the API
// layer log.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a text-handler slog.Logger at the given level. Unknown
// levels fall back to info.
func New(level string) *slog.Logger {
	lvl := new(slog.LevelVar)

	switch strings.ToLower(level) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "info":
		lvl.Set(slog.LevelInfo)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
