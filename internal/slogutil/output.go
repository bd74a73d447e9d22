package slogutil

import (
	"io"
	"log/slog"

	"hybrid/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// FromConfig builds the process logger: lines to console and, when
// cfg.File is set, to that file (size-rotated when cfg.MaxSize is set).
// A non-nil override replaces cfg.Level. The returned closer releases the file.
func FromConfig(cfg config.LoggingConfig, console io.Writer, override *slog.Level) (*slog.Logger, io.Closer, error) {
	level := LevelFromString(cfg.Level)
	if override != nil {
		level = *override
	}
	opts := &slog.HandlerOptions{Level: level}

	consoleHandler := NewLineHandler(console, opts)
	if cfg.File == "" {
		return slog.New(consoleHandler), nopCloser{}, nil
	}

	rf, err := OpenRotatingFile(cfg.File, ParseSize(cfg.MaxSize), cfg.MaxBackups)
	if err != nil {
		return nil, nil, err
	}
	// The file always records at the configured level, even when the console is quieter
	fileHandler := NewLineHandler(rf, &slog.HandlerOptions{Level: LevelFromString(cfg.Level)})
	return slog.New(NewTeeHandler(consoleHandler, fileHandler)), rf, nil
}
