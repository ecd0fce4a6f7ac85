package observability

import (
	"io"
	"log/slog"
)

// NewLogger creates a JSON structured logger. MCP transports own stdout,
// so callers pass stderr (or a buffer in tests).
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
