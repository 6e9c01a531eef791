package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the process-wide JSON logger on stdout. Extra handlers
// (the postgres sink) receive the same records.
func Setup(extra ...slog.Handler) {
	slog.SetDefault(slog.New(newHandler(os.Stdout, extra...)))
}

func newHandler(w io.Writer, extra ...slog.Handler) slog.Handler {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	if len(extra) == 0 {
		return base
	}
	return NewMultiHandler(append([]slog.Handler{base}, extra...)...)
}
