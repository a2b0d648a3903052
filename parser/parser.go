// Package parser builds Natural++ syntax trees from tokens.
//
// The parser is total: input that matches no rule produces a diagnostic and
// a stand-in node (an empty display statement or a zero literal), and
// parsing carries on with the next token.
//
// Grammar, lowest precedence first:
//
//	comparison = term { "is" ( "equal" "to" | "less" "than" [ "or" "equal" "to" ] | ) term }
//	term       = factor { ( "plus" | "minus" ) factor }
//	factor     = primary { ( "times" | "divided" "by" ) primary }
//	primary    = NUMBER | STRING | "property" primary "of" NAME
//	           | NAME [ "at" term ] | "(" comparison ")"
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/podhmo/naturalpp/ast"
	"github.com/podhmo/naturalpp/lexer"
	"github.com/podhmo/naturalpp/object"
	"github.com/podhmo/naturalpp/token"
)

// Parser holds the state of a single parse.
type Parser struct {
	tokens  []token.Token
	current int
	errors  ErrorList
}

// New returns a parser over tokens. A missing trailing EOF token is added.
func New(tokens []token.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EOF {
		var pos token.Position
		if n > 0 {
			pos = tokens[n-1].Pos
		}
		tokens = append(tokens[:n:n], token.Token{Kind: token.EOF, Pos: pos})
	}
	return &Parser{tokens: tokens}
}

// Parse parses tokens into a program. The returned list holds every
// diagnostic; the program is usable even when the list is not empty.
func Parse(tokens []token.Token) (*ast.Program, ErrorList) {
	p := New(tokens)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// ParseString tokenizes and parses src.
func ParseString(src string) (*ast.Program, ErrorList) {
	return Parse(lexer.Tokenize(src))
}

// Errors returns the diagnostics collected so far.
func (p *Parser) Errors() ErrorList { return p.errors }

// ParseProgram parses statements until the end of input.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		prog.Statements = append(prog.Statements, p.statement())
	}
	return prog
}

// ---- statements ----

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.CREATE):
		return p.createStatement()
	case p.match(token.SET):
		return p.setStatement()
	case p.match(token.ADD):
		value := p.expression()
		p.consume(token.TO)
		pos, name := p.name()
		return &ast.AddToList{NamePos: pos, Name: name, Value: value}
	case p.match(token.DISPLAY):
		return &ast.Print{Expr: p.expression()}
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.IF):
		return p.ifStatement()
	}

	tok := p.advance()
	p.errorf(tok.Pos, "expected a statement, found %s", describe(tok))
	return noop()
}

func (p *Parser) createStatement() ast.Statement {
	switch {
	case p.match(token.VARIABLE, token.CONSTANT):
		_, name := p.name()
		p.consume(token.EQUAL)
		p.consume(token.TO)
		return &ast.VarDecl{Name: name, Init: p.expression()}
	case p.match(token.LIST):
		_, name := p.name()
		return &ast.VarDecl{Name: name, Init: &ast.NewList{}}
	case p.match(token.OBJECT):
		_, name := p.name()
		return &ast.VarDecl{Name: name, Init: &ast.NewObject{}}
	}

	tok := p.peek()
	p.errorf(tok.Pos, "expected 'variable', 'constant', 'list' or 'object' after 'create', found %s", describe(tok))
	return noop()
}

func (p *Parser) setStatement() ast.Statement {
	if p.match(token.PROPERTY) {
		key := p.primary()
		p.consume(token.OF)
		pos, name := p.name()
		p.consume(token.TO)
		return &ast.PropertyAssign{NamePos: pos, Name: name, Key: key, Value: p.expression()}
	}

	pos, name := p.name()
	if p.match(token.AT) {
		index := p.term()
		p.consume(token.TO)
		return &ast.ListAssign{NamePos: pos, Name: name, Index: index, Value: p.expression()}
	}
	p.consume(token.TO)
	return &ast.Assign{NamePos: pos, Name: name, Value: p.expression()}
}

func (p *Parser) whileStatement() ast.Statement {
	cond := p.expression()
	p.consume(token.DO)
	body := p.block(token.END)
	p.consume(token.END)
	p.consume(token.WHILE)
	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) ifStatement() ast.Statement {
	cond := p.expression()
	p.consume(token.THEN)
	stmt := &ast.If{Cond: cond, Then: p.block(token.OTHERWISE, token.END)}
	if p.match(token.OTHERWISE) {
		if p.check(token.IF) {
			tok := p.advance()
			p.errorf(tok.Pos, "'otherwise if' is not supported; nest an if inside otherwise instead")
		} else {
			stmt.Else = p.block(token.END)
		}
	}
	p.consume(token.END)
	p.consume(token.IF)
	return stmt
}

// block parses statements until one of the terminators (left unconsumed) or
// the end of input. Nested blocks consume their own terminators.
func (p *Parser) block(terminators ...token.Kind) ast.Block {
	var stmts ast.Block
	for !p.atEnd() && !p.check(terminators...) {
		stmts = append(stmts, p.statement())
	}
	return stmts
}

// ---- expressions ----

func (p *Parser) expression() ast.Expression { return p.comparison() }

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.check(token.IS) {
		is := p.advance()
		var op ast.Operator
		switch {
		case p.match(token.EQUAL):
			p.consume(token.TO)
			op = ast.Equals
		case p.match(token.LESS):
			p.consume(token.THAN)
			if p.check(token.OR) {
				tok := p.advance()
				p.consume(token.EQUAL)
				p.consume(token.TO)
				p.errorf(tok.Pos, "'is less than or equal to' is evaluated as 'is less than'")
			}
			op = ast.LessThan
		case p.check(token.GREATER, token.NOT):
			p.unsupportedComparison(is)
			expr = zero()
			continue
		default:
			op = ast.Equals // bare "is"
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: p.term()}
	}
	return expr
}

// unsupportedComparison consumes the words of a comparison that has no
// evaluation rule ("is greater than", "is not equal to", ...) and its right
// operand.
func (p *Parser) unsupportedComparison(is token.Token) {
	words := []string{is.Lexeme}
	for p.check(token.GREATER, token.NOT, token.THAN, token.OR, token.EQUAL, token.TO) {
		words = append(words, p.advance().Lexeme)
	}
	p.errorf(is.Pos, "comparison '%s' is not supported; it evaluates to 0", strings.Join(words, " "))
	p.term()
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.check(token.PLUS, token.MINUS) {
		op := ast.Add
		if p.advance().Kind == token.MINUS {
			op = ast.Subtract
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: p.factor()}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.primary()
	for p.check(token.TIMES_OP, token.DIVIDED) {
		op := ast.Multiply
		if p.advance().Kind == token.DIVIDED {
			p.consume(token.BY)
			op = ast.Divide
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: p.primary()}
	}
	return expr
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.NUMBER):
		// lexemes are always well-formed; out-of-range values become ±Inf
		f, _ := strconv.ParseFloat(p.previous().Lexeme, 64)
		return &ast.Literal{Value: &object.Number{Value: f}}
	case p.match(token.STRING):
		return &ast.Literal{Value: &object.Text{Value: p.previous().Lexeme}}
	case p.match(token.PROPERTY):
		key := p.primary()
		p.consume(token.OF)
		pos, name := p.name()
		return &ast.PropertyAccess{NamePos: pos, Key: key, Object: name}
	case p.match(token.IDENT):
		tok := p.previous()
		if p.match(token.AT) {
			return &ast.ListAccess{NamePos: tok.Pos, Name: tok.Lexeme, Index: p.term()}
		}
		return &ast.Variable{NamePos: tok.Pos, Name: tok.Lexeme}
	case p.match(token.LPAREN):
		expr := p.expression()
		p.consume(token.RPAREN)
		return expr
	}

	tok := p.peek()
	p.errorf(tok.Pos, "expected an expression, found %s", describe(tok))
	return zero()
}

// ---- helpers ----

// name consumes the token naming a variable. Any token is accepted so that
// parsing can go on, but only identifiers are reported as valid.
func (p *Parser) name() (token.Position, string) {
	tok := p.peek()
	if tok.Kind == token.EOF {
		p.errorf(tok.Pos, "expected a name, found end of input")
		return tok.Pos, ""
	}
	p.advance()
	if tok.Kind != token.IDENT {
		p.errorf(tok.Pos, "expected a name, found %s", describe(tok))
	}
	return tok.Pos, tok.Lexeme
}

// consume advances past a token of kind k, or reports it missing and leaves
// the current token in place.
func (p *Parser) consume(k token.Kind) {
	if p.check(k) {
		p.advance()
		return
	}
	tok := p.peek()
	p.errorf(tok.Pos, "expected '%s', found %s", k, describe(tok))
}

func (p *Parser) match(kinds ...token.Kind) bool {
	if p.check(kinds...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(kinds ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) peek() token.Token     { return p.tokens[p.current] }
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }
func (p *Parser) atEnd() bool           { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors.add(pos, fmt.Sprintf(format, args...))
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.STRING:
		return fmt.Sprintf("string %q", tok.Lexeme)
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

// noop stands in for a statement that could not be parsed: it displays an empty line.
func noop() ast.Statement {
	return &ast.Print{Expr: &ast.Literal{Value: &object.Text{Value: ""}}}
}

func zero() ast.Expression {
	return &ast.Literal{Value: &object.Number{Value: 0}}
}
