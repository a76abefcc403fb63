package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	structuredOnce sync.Once
	structured     *slog.Logger
)

// Structured returns a process-wide JSON structured logger on stderr,
// alongside the leveled console logger above. No pipeline stage logs
// through it.
func Structured() *slog.Logger {
	structuredOnce.Do(func() {
		structured = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	})
	return structured
}

// SetStructuredLevel swaps the structured logger's minimum level.
func SetStructuredLevel(level slog.Level) {
	Structured() // run the one-time default first so it cannot overwrite this level
	structured =slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
