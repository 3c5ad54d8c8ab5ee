// Package logger sets up structured logging using log/slog with a JSON
// handler and service-level context.
package logger

import (
	"log/slog"
	"os"
)

// Init creates a structured logger for the given service and installs it
// as the process default.
func Init(service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", service),
	)
	slog.SetDefault(logger)
	return logger
}
