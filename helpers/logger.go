package helpers

import (
	"io"
	"log/slog"
)

// NewLogger returns the JSON logger used across the service.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).
		With("service", "smarttrip")
}

// NopLogger discards everything. Use in tests.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
