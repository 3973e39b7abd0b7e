// Package optlog provides the engine's structured logger: a package-level
// slog.Logger initialized once from the GEAROPT_LOG_LEVEL environment
// variable.
package optlog

import (
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

// Initialize sets up the global structured logger.
func Initialize() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: true,
	}))
	Logger = logger
	slog.SetDefault(logger)
}

func getLogLevel() slog.Level {
	switch strings.ToLower(os.Getenv("GEAROPT_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Info(msg string, args ...any) {
	if Logger == nil {
		Initialize()
	}
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	if Logger == nil {
		Initialize()
	}
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	if Logger == nil {
		Initialize()
	}
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	if Logger == nil {
		Initialize()
	}
	Logger.Debug(msg, args...)
}

// WithContext returns a logger with additional bound fields, e.g. a run id.
func WithContext(args ...any) *slog.Logger {
	if Logger == nil {
		Initialize()
	}
	return Logger.With(args...)
}
