// Package naturalpp runs Natural++ programs.
//
// A program is tokenized, parsed and executed in one pass over a fresh
// environment. Syntax problems and runtime problems are both reported as
// log records and never stop a run; only I/O failures are returned as errors.
package naturalpp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/podhmo/naturalpp/evaluator"
	"github.com/podhmo/naturalpp/lexer"
	"github.com/podhmo/naturalpp/object"
	"github.com/podhmo/naturalpp/parser"
)

// Interpreter is the main entry point for running Natural++ source.
// An Interpreter holds no state between runs and may be used from several
// goroutines at once as long as its writers allow it.
type Interpreter struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithStdout sets the writer that display statements print to.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdout = w
	}
}

// WithStderr sets the writer the default logger writes diagnostics to.
// It has no effect when WithLogger is also used.
func WithStderr(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stderr = w
	}
}

// WithLogger sets the logger that receives diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = l
	}
}

// New creates a new interpreter. Output goes to os.Stdout and diagnostics to
// a text logger on os.Stderr unless configured otherwise.
func New(options ...Option) *Interpreter {
	i := &Interpreter{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range options {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(i.stderr, nil))
	}
	return i
}

// Result holds the outcome of a run.
type Result struct {
	// Env is the environment as it was when the program finished.
	Env *object.Environment
	// Diagnostics are the syntax problems found while parsing.
	Diagnostics parser.ErrorList
}

// Get returns the final value of a variable.
func (r *Result) Get(name string) (object.Value, bool) {
	return r.Env.Lookup(name)
}

// Run executes source. The returned error is non-nil only if writing output
// failed; the Result is valid in every case.
func (i *Interpreter) Run(ctx context.Context, source string) (*Result, error) {
	tokens := lexer.Tokenize(source)
	prog, diags := parser.Parse(tokens)
	for _, d := range diags {
		i.logger.WarnContext(ctx, "syntax error",
			slog.Int("line", d.Pos.Line),
			slog.Int("column", d.Pos.Column),
			slog.String("detail", d.Msg),
		)
	}

	env := object.NewEnvironment()
	eval := evaluator.New(evaluator.Config{
		Stdout: i.stdout,
		Logger: i.logger,
	})
	err := eval.Exec(ctx, prog, env)
	return &Result{Env: env, Diagnostics: diags}, err
}

// RunFile reads filename and executes its contents.
func (i *Interpreter) RunFile(ctx context.Context, filename string) (*Result, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading source %q: %w", filename, err)
	}
	i.logger.DebugContext(ctx, "running file", slog.String("filename", filename), slog.Int("size", len(source)))
	return i.Run(ctx, string(source))
}
