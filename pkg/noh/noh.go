// Package noh is the public embedding API for the NohLang interpreter.
//
// A minimal host looks like:
//
//	engine, err := noh.New()
//	if err != nil { ... }
//	engine.Run(`노무현이 왔습니다 "hello" 북딱`)
package noh

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nohlang/go-noh/internal/interp"
	"github.com/nohlang/go-noh/internal/logging"
)

// ScriptExtension is the required extension for script files.
const ScriptExtension = ".noh"

// Version is the interpreter version.
const Version = interp.Version

// Engine wraps an interpreter with its diagnostic sink.
type Engine struct {
	interp *interp.Interpreter
	sink   *logging.Sink
}

// Options configures an Engine.
type Options struct {
	debug      bool
	fast       bool
	console    io.Writer
	consoleSet bool
	logFile    string
	noLogFile  bool
	stdin      io.Reader
	httpClient *http.Client
	randSeed   *int64
}

// Option configures an Engine.
type Option func(*Options)

// WithDebug enables verbose diagnostics.
func WithDebug(debug bool) Option {
	return func(o *Options) { o.debug = debug }
}

// WithFast suppresses info-class diagnostics.
func WithFast(fast bool) Option {
	return func(o *Options) { o.fast = fast }
}

// WithConsole redirects diagnostic console output.
func WithConsole(w io.Writer) Option {
	return func(o *Options) { o.console = w; o.consoleSet = true }
}

// WithLogFile overrides the diagnostic log path; an empty path disables the
// file handler.
func WithLogFile(path string) Option {
	return func(o *Options) {
		if path == "" {
			o.noLogFile = true
			return
		}
		o.logFile = path
	}
}

// WithStdin replaces the interactive input source.
func WithStdin(r io.Reader) Option {
	return func(o *Options) { o.stdin = r }
}

// WithHTTPClient replaces the HTTP client used by the request builtin.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.httpClient = c }
}

// WithRandSeed makes the random builtins deterministic.
func WithRandSeed(seed int64) Option {
	return func(o *Options) { o.randSeed = &seed }
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	sinkOpts := []logging.Option{logging.WithErrorsOnly(o.fast)}
	if o.consoleSet {
		sinkOpts = append(sinkOpts, logging.WithConsole(o.console), logging.WithColor(false))
	}
	if o.noLogFile {
		sinkOpts = append(sinkOpts, logging.WithoutFile())
	} else if o.logFile != "" {
		sinkOpts = append(sinkOpts, logging.WithLogFile(o.logFile))
	}
	sink := logging.New(sinkOpts...)

	interpOpts := []interp.Option{
		interp.WithDebug(o.debug),
		interp.WithFast(o.fast),
	}
	if o.stdin != nil {
		interpOpts = append(interpOpts, interp.WithStdin(o.stdin))
	}
	if o.httpClient != nil {
		interpOpts = append(interpOpts, interp.WithHTTPClient(o.httpClient))
	}
	if o.randSeed != nil {
		interpOpts = append(interpOpts, interp.WithRandSource(*o.randSeed))
	}

	return &Engine{
		interp: interp.New(sink, interpOpts...),
		sink:   sink,
	}, nil
}

// Run executes a program. Statement errors are reported through the sink and
// recovered; Run itself only fails on host-level problems.
func (e *Engine) Run(program string) error {
	e.interp.InterpretProgram(program)
	return nil
}

// RunFile executes a script file, enforcing the .noh extension.
func (e *Engine) RunFile(path string) error {
	if filepath.Ext(path) != ScriptExtension {
		return fmt.Errorf("파일 확장자는 %s 이어야 합니다: %s", ScriptExtension, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("파일을 읽을 수 없습니다: %w", err)
	}
	e.interp.InterpretProgram(string(content))
	return nil
}

// RunSelfTest executes the built-in test program.
func (e *Engine) RunSelfTest() error {
	return e.Run(interp.TestProgram)
}

// RunDefault executes the built-in default program.
func (e *Engine) RunDefault() error {
	return e.Run(interp.DefaultProgram)
}

// Prompt returns the interpreter's current REPL prompt.
func (e *Engine) Prompt() string {
	return e.interp.Prompt()
}

// SetPrompt overrides the initial REPL prompt.
func (e *Engine) SetPrompt(prompt string) {
	e.interp.SetPrompt(prompt)
}

// Halted reports whether the program ran the exit statement.
func (e *Engine) Halted() bool {
	return e.interp.Halted()
}

// PushInput seeds the scripted-input FIFO.
func (e *Engine) PushInput(lines ...string) {
	e.interp.PushInput(lines...)
}

// Close releases the sink's log file.
func (e *Engine) Close() error {
	return e.sink.Close()
}
