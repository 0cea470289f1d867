package setup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"notes-todo/config"
)

// NewLogger builds the application logger. The terminal belongs to the UI,
// so records go to cfg.LogFile. The returned file must be closed on exit.
func NewLogger(cfg *config.Config) (*slog.Logger, *os.File, error) {
	if dir := filepath.Dir(cfg.LogFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return newLogger(cfg, file), file, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     logLevel(cfg.LogLevel),
		AddSource: cfg.Env == "development",
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
