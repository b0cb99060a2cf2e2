package si

import (
	"context"
	"log/slog"
)

// LevelTrace is the slog level conversion traces are logged at.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs msg at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
