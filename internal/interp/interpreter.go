// Package interp implements the NohLang interpretation engine: the scoped
// environment with closure capture, the safe expression evaluator, the
// statement dispatcher, the block executor with its control-flow signals, and
// the builtin handler catalog.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	nerr "github.com/nohlang/go-noh/internal/errors"
	"github.com/nohlang/go-noh/internal/lexer"
)

// Version is the interpreter version reported by the 버전 statement.
const Version = "1.1"

// Diagnostics is the pluggable sink the interpreter emits output through.
// Info-class diagnostics are suppressible in fast mode; error-class
// diagnostics always surface.
type Diagnostics interface {
	Info(msg string)
	Error(msg string)
}

// Interpreter executes NohLang programs. It is single-threaded and
// synchronous: exactly one execution cursor advances through the program, and
// blocking builtins block the whole interpreter.
type Interpreter struct {
	scopes     *ScopeStack
	diag       Diagnostics
	stdin      *bufio.Reader
	promptOut  io.Writer
	httpClient *http.Client
	rand       *rand.Rand
	commands   []command

	inputBuffer []string
	prompt      string
	currentLine int
	debug       bool
	fast        bool

	// Control-flow signals. They are mutually exclusive non-local exits set
	// by break/continue/return statements and checked after every statement,
	// propagating up until the innermost loop (break/continue) or function
	// call (return) consumes them.
	breakSignal    bool
	continueSignal bool
	returnSignal   bool
	returnValue    Value

	// halted is set by the exit builtin; every execution loop stops once it
	// is set.
	halted bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDebug enables verbose [DEBUG] diagnostics.
func WithDebug(debug bool) Option {
	return func(i *Interpreter) { i.debug = debug }
}

// WithFast suppresses info-class diagnostics.
func WithFast(fast bool) Option {
	return func(i *Interpreter) { i.fast = fast }
}

// WithStdin replaces the interactive input source.
func WithStdin(r io.Reader) Option {
	return func(i *Interpreter) { i.stdin = bufio.NewReader(r) }
}

// WithPromptWriter replaces the writer input prompts are printed to.
func WithPromptWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.promptOut = w }
}

// WithHTTPClient replaces the HTTP client used by the request builtin.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Interpreter) { i.httpClient = c }
}

// WithRandSource seeds the random number generator deterministically.
func WithRandSource(seed int64) Option {
	return func(i *Interpreter) { i.rand = rand.New(rand.NewSource(seed)) }
}

// New creates an interpreter whose builtins frame is populated and whose
// dispatch table is registered.
func New(diag Diagnostics, opts ...Option) *Interpreter {
	i := &Interpreter{
		scopes:     NewScopeStack(),
		diag:       diag,
		stdin:      bufio.NewReader(os.Stdin),
		promptOut:  os.Stdout,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		prompt:     ">> ",
	}
	for _, opt := range opts {
		opt(i)
	}
	i.installBuiltins()
	// Frame 0 stays the builtins frame; top-level declarations live in a
	// dedicated global frame above it so user code never mutates builtins.
	i.scopes.Push()
	i.commands = i.buildCommands()
	return i
}

// Prompt returns the current REPL prompt.
func (i *Interpreter) Prompt() string {
	return i.prompt
}

// SetPrompt overrides the REPL prompt.
func (i *Interpreter) SetPrompt(prompt string) {
	i.prompt = prompt
}

// Halted reports whether the exit builtin has run.
func (i *Interpreter) Halted() bool {
	return i.halted
}

// Scopes exposes the scope stack; tests and the embedding API inspect it.
func (i *Interpreter) Scopes() *ScopeStack {
	return i.scopes
}

// PushInput appends lines to the scripted-input FIFO consulted by the input
// builtin before falling back to interactive reads.
func (i *Interpreter) PushInput(lines ...string) {
	i.inputBuffer = append(i.inputBuffer, lines...)
}

// InterpretProgram executes a whole program. Errors are reported and
// recovered at statement boundaries; control-flow signals that escape to the
// top level are reported as ControlFlowError.
func (i *Interpreter) InterpretProgram(program string) {
	lines := strings.Split(program, "\n")
	i.executeLines(lines)

	if i.breakSignal || i.continueSignal {
		i.reportErr(nerr.New(nerr.ControlFlowError, "브레이크/넘어가 는 반복문 안에서만 사용할 수 있음"))
		i.breakSignal = false
		i.continueSignal = false
	}
	if i.returnSignal {
		i.reportErr(nerr.New(nerr.ControlFlowError, "돌아가 는 함수 안에서만 사용할 수 있음"))
		i.returnSignal = false
		i.returnValue = nil
	}
	i.currentLine = 0
}

// executeLines drives execution over a line sequence: compound openers hand
// off to the block executor, control statements raise signals, and everything
// else goes to the dispatcher. Returns as soon as a signal or halt is
// pending so it propagates to the enclosing construct.
func (i *Interpreter) executeLines(lines []string) {
	idx := 0
	for idx < len(lines) {
		if i.halted {
			return
		}
		i.currentLine = idx + 1
		line := lexer.CleanLine(lines[idx])
		if line == "" {
			idx++
			continue
		}

		switch {
		case patternIf.MatchString(line):
			idx = i.processIf(lines, idx)
		case patternWhile.MatchString(line):
			idx = i.processWhile(lines, idx)
		case patternFor.MatchString(line):
			idx = i.processFor(lines, idx)
		case patternFuncDef.MatchString(line):
			idx = i.processFuncDef(lines, idx)
		case patternFuncCall.MatchString(line):
			i.processFuncCall(line)
			idx++
		case patternBreak.MatchString(line):
			i.breakSignal = true
			return
		case patternContinue.MatchString(line):
			i.continueSignal = true
			return
		case patternReturn.MatchString(line):
			i.processReturn(line)
			return
		default:
			i.interpretLine(line)
			idx++
		}

		if i.breakSignal || i.continueSignal || i.returnSignal {
			return
		}
	}
}

// interpretLine dispatches one simple statement against the pattern table.
// The first whole-line match wins; no match is a SyntaxError.
func (i *Interpreter) interpretLine(line string) {
	for _, cmd := range i.commands {
		if groups := cmd.pattern.FindStringSubmatch(line); groups != nil {
			cmd.handler(groups)
			return
		}
	}
	i.reportErr(nerr.New(nerr.SyntaxError, "알 수 없는 명령어 - %s", line))
}

// evaluate runs the expression evaluator against the combined scope view.
// Failures are reported here and signalled with ok=false so handlers can
// abandon the statement.
func (i *Interpreter) evaluate(expression string) (Value, bool) {
	v, err := EvalExpression(expression, i.scopes.Combined())
	if err != nil {
		i.reportErr(err)
		return nil, false
	}
	return v, true
}

// getUserInput pops the scripted-input FIFO, falling back to an interactive
// read from stdin.
func (i *Interpreter) getUserInput(prompt string) (string, error) {
	if len(i.inputBuffer) > 0 {
		line := i.inputBuffer[0]
		i.inputBuffer = i.inputBuffer[1:]
		return line, nil
	}
	fmt.Fprint(i.promptOut, prompt)
	line, err := i.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// echo emits an info-class diagnostic with the current line prefix.
func (i *Interpreter) echo(msg string) {
	if i.fast {
		return
	}
	i.diag.Info(i.prefixed(msg))
}

func (i *Interpreter) echof(format string, args ...any) {
	i.echo(fmt.Sprintf(format, args...))
}

// debugf emits a [DEBUG] diagnostic when debug mode is on.
func (i *Interpreter) debugf(format string, args ...any) {
	if !i.debug {
		return
	}
	i.echo("[DEBUG] " + fmt.Sprintf(format, args...))
}

// reportErr emits an error-class diagnostic. The statement is abandoned but
// execution continues; nothing short of the exit builtin terminates the
// program.
func (i *Interpreter) reportErr(err error) {
	i.diag.Error(i.prefixed(fmt.Sprintf("오류: %s", err)))
}

func (i *Interpreter) prefixed(msg string) string {
	if i.currentLine > 0 {
		return fmt.Sprintf("Line %d: %s", i.currentLine, msg)
	}
	return msg
}
