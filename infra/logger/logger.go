package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/giovaniif/cafeteria/infra/requestid"
)

type Config struct {
	Level       string
	Format      string
	Component   string
	Environment string
}

func DefaultConfig() Config {
	return Config{
		Level:       "warn",
		Format:      "text",
		Component:   "cafeteria",
		Environment: "development",
	}
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to warn
// so diagnostics stay out of the customer's way.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds the process logger writing to out and, when given, to every
// sink as well (e.g. a Loki writer).
func New(config Config, out io.Writer, sinks ...io.Writer) *slog.Logger {
	writers := []io.Writer{out}
	for _, sink := range sinks {
		if sink != nil {
			writers = append(writers, sink)
		}
	}
	output := io.MultiWriter(writers...)

	opts := &slog.HandlerOptions{Level: ParseLevel(config.Level)}
	var handler slog.Handler
	if strings.EqualFold(config.Format, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger := slog.New(requestid.NewHandler(handler))
	if config.Component != "" {
		logger = logger.With("component", config.Component)
	}
	if config.Environment != "" {
		logger = logger.With("environment", config.Environment)
	}
	return logger
}

func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}
