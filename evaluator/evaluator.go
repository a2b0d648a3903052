// Package evaluator executes Natural++ syntax trees.
//
// Execution never stops on a language-level problem. Reading or assigning an
// undefined variable is logged and replaced by the safe default (Number 0, or
// no change at all); statements whose target has the wrong kind do nothing.
// Only a failure to write output ends a run early.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/podhmo/naturalpp/ast"
	"github.com/podhmo/naturalpp/object"
	"github.com/podhmo/naturalpp/token"
)

// Config is the configuration for an Evaluator.
type Config struct {
	// Stdout receives one line per display statement. Defaults to io.Discard.
	Stdout io.Writer
	// Logger receives runtime diagnostics. Defaults to a logger that discards everything.
	Logger *slog.Logger
}

// Evaluator executes statements against an environment.
type Evaluator struct {
	stdout io.Writer
	logger *slog.Logger
}

// New creates a new Evaluator.
func New(cfg Config) *Evaluator {
	e := &Evaluator{stdout: cfg.Stdout, logger: cfg.Logger}
	if e.stdout == nil {
		e.stdout = io.Discard
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Exec runs the statements of prog in order against env.
// The returned error is non-nil only if writing output failed.
func (e *Evaluator) Exec(ctx context.Context, prog *ast.Program, env *object.Environment) error {
	e.logger.DebugContext(ctx, "executing program", slog.Int("statements", len(prog.Statements)))
	return e.execBlock(ctx, prog.Statements, env)
}

func (e *Evaluator) execBlock(ctx context.Context, block ast.Block, env *object.Environment) error {
	for _, stmt := range block {
		if err := e.ExecStatement(ctx, stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// ExecStatement runs a single statement.
func (e *Evaluator) ExecStatement(ctx context.Context, stmt ast.Statement, env *object.Environment) error {
	switch s := stmt.(type) {
	case *ast.Print:
		v := e.Eval(ctx, s.Expr, env)
		if _, err := fmt.Fprintln(e.stdout, v.Inspect()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

	case *ast.VarDecl:
		env.Define(s.Name, e.Eval(ctx, s.Init, env))

	case *ast.Assign:
		v := e.Eval(ctx, s.Value, env)
		if err := env.Assign(s.Name, v); err != nil {
			e.report(ctx, err, s.NamePos)
		}

	case *ast.ListAssign:
		target := e.lookup(ctx, env, s.Name, s.NamePos)
		index := e.Eval(ctx, s.Index, env)
		list, ok := target.(*object.List)
		if !ok {
			return nil
		}
		i, ok := object.Index(index)
		if !ok {
			return nil
		}
		list.Set(i, e.Eval(ctx, s.Value, env))

	case *ast.PropertyAssign:
		target := e.lookup(ctx, env, s.Name, s.NamePos)
		key := e.Eval(ctx, s.Key, env)
		obj, ok := target.(*object.Object)
		if !ok {
			return nil
		}
		obj.Set(object.Key(key), e.Eval(ctx, s.Value, env))

	case *ast.AddToList:
		target := e.lookup(ctx, env, s.Name, s.NamePos)
		list, ok := target.(*object.List)
		if !ok {
			return nil
		}
		list.Append(e.Eval(ctx, s.Value, env))

	case *ast.If:
		if object.IsTruthy(e.Eval(ctx, s.Cond, env)) {
			return e.execBlock(ctx, s.Then, env)
		}
		return e.execBlock(ctx, s.Else, env)

	case *ast.While:
		for object.IsTruthy(e.Eval(ctx, s.Cond, env)) {
			if err := e.execBlock(ctx, s.Body, env); err != nil {
				return err
			}
		}

	default:
		panic(fmt.Sprintf("evaluator: unexpected statement %T", stmt))
	}
	return nil
}

// Eval evaluates an expression. It always produces a value.
func (e *Evaluator) Eval(ctx context.Context, expr ast.Expression, env *object.Environment) object.Value {
	switch x := expr.(type) {
	case *ast.Literal:
		return x.Value

	case *ast.Variable:
		return e.lookup(ctx, env, x.Name, x.NamePos)

	case *ast.ListAccess:
		target := e.lookup(ctx, env, x.Name, x.NamePos)
		index := e.Eval(ctx, x.Index, env)
		list, ok := target.(*object.List)
		if !ok {
			return object.ZERO
		}
		i, ok := object.Index(index)
		if !ok {
			return object.ZERO
		}
		if v, ok := list.At(i); ok {
			return v
		}
		return object.ZERO

	case *ast.PropertyAccess:
		target := e.lookup(ctx, env, x.Object, x.NamePos)
		key := e.Eval(ctx, x.Key, env)
		if obj, ok := target.(*object.Object); ok {
			if v, ok := obj.Get(object.Key(key)); ok {
				return v
			}
		}
		return object.ZERO

	case *ast.Binary:
		return evalBinary(x.Op, e.Eval(ctx, x.Left, env), e.Eval(ctx, x.Right, env))

	case *ast.NewList:
		return object.NewList()

	case *ast.NewObject:
		return object.NewObject()

	default:
		panic(fmt.Sprintf("evaluator: unexpected expression %T", expr))
	}
}

func evalBinary(op ast.Operator, left, right object.Value) object.Value {
	if op == ast.Add && (left.Type() == object.TEXT_OBJ || right.Type() == object.TEXT_OBJ) {
		return &object.Text{Value: left.Inspect() + right.Inspect()}
	}

	l, r := object.NumberOf(left), object.NumberOf(right)
	switch op {
	case ast.Add:
		return &object.Number{Value: l + r}
	case ast.Subtract:
		return &object.Number{Value: l - r}
	case ast.Multiply:
		return &object.Number{Value: l * r}
	case ast.Divide:
		return &object.Number{Value: l / r}
	case ast.Equals:
		// numeric payloads only: two Texts always compare equal
		return boolean(l == r)
	case ast.LessThan:
		return boolean(l < r)
	default:
		panic(fmt.Sprintf("evaluator: unexpected operator %v", op))
	}
}

func boolean(b bool) object.Value {
	if b {
		return &object.Number{Value: 1}
	}
	return object.ZERO
}

func (e *Evaluator) lookup(ctx context.Context, env *object.Environment, name string, pos token.Position) object.Value {
	v, err := env.Get(name)
	if err != nil {
		e.report(ctx, err, pos)
	}
	return v
}

func (e *Evaluator) report(ctx context.Context, err error, pos token.Position) {
	var undef *object.UndefinedError
	if errors.As(err, &undef) {
		e.logger.ErrorContext(ctx, "variable not defined",
			slog.String("name", undef.Name),
			slog.Int("line", pos.Line),
			slog.Int("column", pos.Column),
		)
		return
	}
	e.logger.ErrorContext(ctx, err.Error(), slog.Int("line", pos.Line), slog.Int("column", pos.Column))
}
