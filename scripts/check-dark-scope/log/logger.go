// Package log holds the guard's structured logger. It writes to stderr so
// stdout stays clean for reports; --verbose lowers the level to Debug.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the shared logger. Replace it with SetOutput, not by assignment.
var Logger = newLogger(os.Stderr, slog.LevelWarn)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetOutput points the logger at w and drops records below level.
func SetOutput(w io.Writer, level slog.Level) {
	Logger = newLogger(w, level)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
