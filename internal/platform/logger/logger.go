package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Services and handlers receive it by
// injection; the same channel carries the low-level diagnostics for swallowed
// activity write failures.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
