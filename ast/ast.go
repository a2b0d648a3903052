// Package ast declares the syntax tree of Natural++ programs.
//
// The node sets are closed: every Expression and Statement implementation
// lives in this package, and consumers switch over the concrete types.
// Trees are built once by the parser and never modified afterwards.
package ast

import (
	"fmt"
	"strings"

	"github.com/podhmo/naturalpp/object"
	"github.com/podhmo/naturalpp/token"
)

// Node is implemented by every syntax tree node.
type Node interface {
	String() string
}

// Expression is a node that evaluates to a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node that is executed for its effect.
type Statement interface {
	Node
	stmtNode()
}

// Block is an ordered sequence of statements.
type Block []Statement

func (b Block) String() string {
	parts := make([]string, len(b))
	for i, s := range b {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

// Program is a parsed source text.
type Program struct {
	Statements Block
}

func (p *Program) String() string { return p.Statements.String() }

// Operator is the operator of a Binary expression.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Equals
	LessThan
)

var operators = [...]string{
	Add:      "plus",
	Subtract: "minus",
	Multiply: "times",
	Divide:   "divided by",
	Equals:   "is equal to",
	LessThan: "is less than",
}

func (op Operator) String() string {
	if 0 <= op && int(op) < len(operators) {
		return operators[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// ---- expressions ----

// Literal is a constant Number or Text value.
type Literal struct {
	Value object.Value
}

// Variable reads a name from the environment.
type Variable struct {
	NamePos token.Position
	Name    string
}

// ListAccess reads NAME at INDEX.
type ListAccess struct {
	NamePos token.Position
	Name    string
	Index   Expression
}

// PropertyAccess reads property KEY of NAME.
type PropertyAccess struct {
	NamePos token.Position
	Key     Expression
	Object  string
}

// Binary applies Op to two operands.
type Binary struct {
	Left  Expression
	Op    Operator
	Right Expression
}

// NewList creates a fresh, empty list each time it is evaluated.
type NewList struct{}

// NewObject creates a fresh, empty object each time it is evaluated.
type NewObject struct{}

func (*Literal) exprNode()        {}
func (*Variable) exprNode()       {}
func (*ListAccess) exprNode()     {}
func (*PropertyAccess) exprNode() {}
func (*Binary) exprNode()         {}
func (*NewList) exprNode()        {}
func (*NewObject) exprNode()      {}

func (e *Literal) String() string {
	if e.Value.Type() == object.TEXT_OBJ {
		return fmt.Sprintf("%q", e.Value.Inspect())
	}
	return e.Value.Inspect()
}
func (e *Variable) String() string   { return e.Name }
func (e *ListAccess) String() string { return fmt.Sprintf("(%s at %s)", e.Name, e.Index) }
func (e *PropertyAccess) String() string {
	return fmt.Sprintf("(property %s of %s)", e.Key, e.Object)
}
func (e *Binary) String() string  { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }
func (*NewList) String() string   { return "new list" }
func (*NewObject) String() string { return "new object" }

// ---- statements ----

// Print writes the stringified value of Expr and a newline.
type Print struct {
	Expr Expression
}

// VarDecl defines (or redefines) Name.
type VarDecl struct {
	Name string
	Init Expression
}

// Assign updates an existing Name.
type Assign struct {
	NamePos token.Position
	Name    string
	Value   Expression
}

// ListAssign stores Value at Index of the list Name, growing it as needed.
type ListAssign struct {
	NamePos token.Position
	Name    string
	Index   Expression
	Value   Expression
}

// PropertyAssign stores Value under Key of the object Name.
type PropertyAssign struct {
	NamePos token.Position
	Name    string
	Key     Expression
	Value   Expression
}

// AddToList appends Value to the list Name.
type AddToList struct {
	NamePos token.Position
	Name    string
	Value   Expression
}

// If runs Then or Else depending on the truthiness of Cond.
type If struct {
	Cond Expression
	Then Block
	Else Block
}

// While runs Body for as long as Cond is truthy.
type While struct {
	Cond Expression
	Body Block
}

func (*Print) stmtNode()          {}
func (*VarDecl) stmtNode()        {}
func (*Assign) stmtNode()         {}
func (*ListAssign) stmtNode()     {}
func (*PropertyAssign) stmtNode() {}
func (*AddToList) stmtNode()      {}
func (*If) stmtNode()             {}
func (*While) stmtNode()          {}

func (s *Print) String() string   { return fmt.Sprintf("display %s", s.Expr) }
func (s *VarDecl) String() string { return fmt.Sprintf("define %s = %s", s.Name, s.Init) }
func (s *Assign) String() string  { return fmt.Sprintf("set %s = %s", s.Name, s.Value) }
func (s *ListAssign) String() string {
	return fmt.Sprintf("set %s at %s = %s", s.Name, s.Index, s.Value)
}
func (s *PropertyAssign) String() string {
	return fmt.Sprintf("set property %s of %s = %s", s.Key, s.Name, s.Value)
}
func (s *AddToList) String() string { return fmt.Sprintf("add %s to %s", s.Value, s.Name) }
func (s *If) String() string {
	if len(s.Else) == 0 {
		return fmt.Sprintf("if %s then {%s}", s.Cond, s.Then)
	}
	return fmt.Sprintf("if %s then {%s} otherwise {%s}", s.Cond, s.Then, s.Else)
}
func (s *While) String() string { return fmt.Sprintf("while %s do {%s}", s.Cond, s.Body) }
