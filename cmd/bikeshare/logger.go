package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/bikeshare"
)

// newLogger builds a text or JSON logger writing to w at the named level.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q: %w", levelStr, bikeshare.ErrValidation)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q: %w", formatStr, bikeshare.ErrValidation)
	}
	return slog.New(handler), nil
}
