package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls the shared logger. Zero values fall back to JSON on stdout at info level.
type Options struct {
	Service string
	Level   string
	Format  string
	Output  io.Writer
}

// New constructs the slog logger shared by every component, tagged with the service name.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	log := slog.New(handler)
	if service := strings.TrimSpace(opts.Service); service != "" {
		log = log.With("service", service)
	}
	return log
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
