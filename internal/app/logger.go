package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the application logger from the log settings in cfg.
// Level names follow slog ("debug", "info", "warn", "error", case-insensitive);
// anything else logs at info.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
