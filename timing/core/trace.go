package core

import (
	"context"
	"log/slog"
)

// LevelTrace is the log level of per-instruction core traces. It sits below
// Debug, so handlers only emit it when configured with LevelTrace.
const LevelTrace slog.Level = slog.LevelDebug - 4

// TraceEnabled reports whether the default logger emits LevelTrace records.
func TraceEnabled() bool {
	return slog.Default().Enabled(context.Background(), LevelTrace)
}

// Trace logs msg at LevelTrace.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
