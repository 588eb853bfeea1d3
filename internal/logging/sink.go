// Package logging implements the interpreter's diagnostic sink on top of
// log/slog. Two handlers are attached: a console handler that writes the bare
// message (colored by severity when the terminal supports it) and a file
// handler that appends timestamped lines to interpreter.log. Info-class
// diagnostics are suppressible; error-class diagnostics always come through.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// DefaultLogFile is the diagnostic log, opened relative to the working
// directory and appended to. It is never rotated or truncated.
const DefaultLogFile = "interpreter.log"

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Sink is the pluggable diagnostic sink of the interpreter.
type Sink struct {
	logger *slog.Logger
	file   io.Closer
}

type config struct {
	console    io.Writer
	color      bool
	colorSet   bool
	logFile    string
	noFile     bool
	errorsOnly bool
}

// Option configures a Sink.
type Option func(*config)

// WithConsole redirects console output; tests pass a buffer here.
func WithConsole(w io.Writer) Option {
	return func(c *config) { c.console = w }
}

// WithColor forces colored or plain console output regardless of terminal
// detection.
func WithColor(enabled bool) Option {
	return func(c *config) { c.color = enabled; c.colorSet = true }
}

// WithLogFile changes the diagnostic log path.
func WithLogFile(path string) Option {
	return func(c *config) { c.logFile = path }
}

// WithoutFile disables the file handler entirely; tests use this.
func WithoutFile() Option {
	return func(c *config) { c.noFile = true }
}

// WithErrorsOnly raises the threshold so info-class diagnostics are dropped.
// This backs the interpreter's fast mode.
func WithErrorsOnly(errorsOnly bool) Option {
	return func(c *config) { c.errorsOnly = errorsOnly }
}

// New creates a Sink. The file handler is best effort: when the log file
// cannot be opened the console handler still works.
func New(opts ...Option) *Sink {
	cfg := config{console: os.Stderr, logFile: DefaultLogFile}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.colorSet {
		if f, ok := cfg.console.(*os.File); ok {
			cfg.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	minLevel := slog.LevelInfo
	if cfg.errorsOnly {
		minLevel = slog.LevelError
	}

	handlers := []slog.Handler{&consoleHandler{w: cfg.console, color: cfg.color, min: minLevel}}
	s := &Sink{}
	if !cfg.noFile {
		if f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			handlers = append(handlers, &fileHandler{w: f, min: minLevel})
			s.file = f
		}
	}
	s.logger = slog.New(multiHandler(handlers))
	return s
}

// Info emits an info-class diagnostic (suppressed in fast mode).
func (s *Sink) Info(msg string) {
	s.logger.Info(msg)
}

// Error emits an error-class diagnostic (always emitted).
func (s *Sink) Error(msg string) {
	s.logger.Error(msg)
}

// Close releases the log file, if one was opened.
func (s *Sink) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// consoleHandler prints the record message only, styled by severity, matching
// the interpreter's terse console format.
type consoleHandler struct {
	w     io.Writer
	color bool
	min   slog.Level
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	if h.color {
		if r.Level >= slog.LevelError {
			msg = errorStyle.Render(msg)
		} else {
			msg = infoStyle.Render(msg)
		}
	}
	_, err := fmt.Fprintln(h.w, msg)
	return err
}

func (h *consoleHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(string) slog.Handler      { return h }

// fileHandler appends "timestamp - message" lines to the log file.
type fileHandler struct {
	w   io.Writer
	min slog.Level
}

func (h *fileHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *fileHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := fmt.Fprintf(h.w, "%s - %s\n", ts.Format("2006-01-02 15:04:05"), r.Message)
	return err
}

func (h *fileHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *fileHandler) WithGroup(string) slog.Handler      { return h }

// multiHandler fans a record out to every attached handler.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}
