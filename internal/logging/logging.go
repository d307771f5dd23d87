// SPDX-License-Identifier: EPL-2.0

// Package logging builds the slog logger described by the logging section
// of the configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/voxclean/internal/config"
)

// ParseLevel maps a configuration level name to a slog.Level. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	switch name {
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

// New returns a logger and a close function for the output it opened.
// Output is "stdout", "stderr" (the default) or a file path that is
// appended to.
func New(cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	out, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	return NewWithWriter(cfg, out), closer, nil
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func openOutput(output string) (io.Writer, func() error, error) {
	nop := func() error { return nil }

	switch output {
	case "stderr", "":
		return os.Stderr, nop, nil
	case "stdout":
		return os.Stdout, nop, nil
	}

	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", output, err)
	}

	return file, file.Close, nil
}
