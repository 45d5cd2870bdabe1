// Package logging builds the slog logger used by the command line tool.
//
// Console output is message only, with debug records shown only in debug
// mode. When a log file is configured every record, debug included, is also
// written there with timestamps and attributes, through a rotating
// lumberjack writer.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables tuning log rotation.
const (
	EnvMaxSize    = "RIG_RETARGET_LOG_MAX_SIZE"
	EnvMaxBackups = "RIG_RETARGET_LOG_MAX_BACKUPS"
	EnvMaxAge     = "RIG_RETARGET_LOG_MAX_AGE"
)

// Options configures New.
type Options struct {
	// Console receives message-only output. Nil means os.Stderr.
	Console io.Writer
	Debug   bool
	// File enables file logging when set.
	File string
}

// Logger is a slog logger plus the file it may own.
type Logger struct {
	*slog.Logger

	file io.WriteCloser
}

// New returns a logger for opts.
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{&consoleHandler{writer: console, debug: opts.Debug}}
	l := &Logger{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotating := newRotatingFile(opts.File, os.Getenv)
		l.file = rotating

		handlers = append(handlers, slog.NewTextHandler(rotating, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}

				return a
			},
		}))
	}

	l.Logger = slog.New(&multiHandler{handlers: handlers})

	return l, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}

	return nil
}

// newRotatingFile returns a lumberjack writer with limits read through
// getenv.
func newRotatingFile(path string, getenv func(string) string) *lumberjack.Logger {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}

	if v, err := strconv.Atoi(getenv(EnvMaxSize)); err == nil && v > 0 {
		lj.MaxSize = v
	}

	if v, err := strconv.Atoi(getenv(EnvMaxBackups)); err == nil && v >= 0 {
		lj.MaxBackups = v
	}

	if v, err := strconv.Atoi(getenv(EnvMaxAge)); err == nil && v > 0 {
		lj.MaxAge = v
	}

	return lj
}

// consoleHandler writes record messages without timestamps, levels or
// attributes.
type consoleHandler struct {
	writer io.Writer
	debug  bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level <= slog.LevelDebug {
		return h.debug
	}

	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

// multiHandler fans records out to several handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}

	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}

	return &multiHandler{handlers: next}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}

	return &multiHandler{handlers: next}
}
