// Package naturalpptest provides helpers for testing Natural++ programs.
package naturalpptest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/podhmo/naturalpp"
	"github.com/podhmo/naturalpp/object"
)

// Record is a captured diagnostic.
type Record struct {
	Level   slog.Level
	Message string
	Line    int
	Column  int
	// Attrs holds every attribute other than line and column, in order.
	Attrs []slog.Attr
}

// String renders the record as "LEVEL line:column message key=value ...".
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d:%d %s", r.Level, r.Line, r.Column, r.Message)
	for _, a := range r.Attrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
	}
	return b.String()
}

// Result provides access to the outcome of a program run.
type Result struct {
	Stdout  string
	Records []Record
	env     *object.Environment
}

// Get retrieves a variable by name from the program's final environment.
func (r *Result) Get(name string) (object.Value, bool) {
	return r.env.Lookup(name)
}

// Diagnostics returns the captured records in their String form.
func (r *Result) Diagnostics() []string {
	out := make([]string, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.String()
	}
	return out
}

// Runner is a test helper that runs each program on its own interpreter,
// capturing what it prints and what it logs.
type Runner struct {
	level slog.Leveler
}

// NewRunner creates a new test runner that captures records at level and above.
func NewRunner(level slog.Leveler) *Runner {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Runner{level: level}
}

// Run executes source and returns what it printed and logged.
func (r *Runner) Run(ctx context.Context, source string) (*Result, error) {
	var stdout bytes.Buffer
	h := &captureHandler{level: r.level, state: &captureState{}}
	interp := naturalpp.New(
		naturalpp.WithStdout(&stdout),
		naturalpp.WithLogger(slog.New(h)),
	)

	res, err := interp.Run(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}
	return &Result{Stdout: stdout.String(), Records: h.state.records(), env: res.Env}, nil
}

type captureState struct {
	mu   sync.Mutex
	recs []Record
}

func (s *captureState) records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.recs...)
}

// captureHandler is a slog.Handler that keeps records in memory.
type captureHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	state *captureState
}

func (h *captureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := Record{Level: r.Level, Message: r.Message}
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "line":
			rec.Line = int(a.Value.Int64())
		case "column":
			rec.Column = int(a.Value.Int64())
		default:
			rec.Attrs = append(rec.Attrs, a)
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.recs = append(h.state.recs, rec)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{
		level: h.level,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
		state: h.state,
	}
}

// WithGroup is not needed by the interpreter; groups are flattened.
func (h *captureHandler) WithGroup(string) slog.Handler { return h }
