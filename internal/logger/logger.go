package logger

import (
	"log/slog"
	"os"
)

// New builds the shared application logger: JSON records on stdout,
// info level and above.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
