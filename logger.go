package palette

import (
	"log/slog"

	"github.com/gogpu/palette/record"
)

// SetLogger configures the logger for palette and the record package.
// By default, palette produces no log output. Pass nil to restore that.
//
// Sessions created without WithLogger pick up the new logger on their next
// log call. SetLogger is safe for concurrent use.
//
// Log levels used by palette:
//   - [slog.LevelDebug]: refused commands, per-stroke diagnostics
//   - [slog.LevelInfo]: lifecycle events (recording started/stopped, export written)
//   - [slog.LevelWarn]: non-fatal issues (recording capability unavailable)
//
// Example:
//
//	palette.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	record.SetLogger(l)
}

// Logger returns the current logger used by palette.
func Logger() *slog.Logger {
	return record.Logger()
}
