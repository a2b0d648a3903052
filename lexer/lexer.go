// Package lexer converts Natural++ source text into tokens.
//
// Tokenizing never fails: whitespace is discarded, "note:" starts a comment
// that runs to the end of the line, and characters that cannot begin a token
// are skipped without a diagnostic.
package lexer

import (
	"strings"

	"github.com/podhmo/naturalpp/token"
)

const commentMarker = "note:"

// Lexer scans a single source text.
type Lexer struct {
	src    string
	pos    int // byte offset of the next unread character
	line   int
	column int // column of the next unread character

	tokens []token.Token
}

// New returns a lexer for src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Tokenize scans src to the end and returns its tokens, terminated by EOF.
func Tokenize(src string) []token.Token {
	return New(src).Tokenize()
}

// Tokenize scans the remaining input. The result always ends with an EOF token.
func (l *Lexer) Tokenize() []token.Token {
	for !l.atEnd() {
		start := l.position()
		c := l.advance()

		switch {
		case isSpace(c):
			continue
		case c == 'n' && strings.HasPrefix(l.src[l.pos-1:], commentMarker):
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case isAlpha(c):
			l.identifier(start)
		case isDigit(c):
			l.number(start)
		case c == '"':
			l.text(start)
		case c == '(':
			l.emit(token.LPAREN, "(", start)
		case c == ')':
			l.emit(token.RPAREN, ")", start)
		default:
			// unrecognized characters are dropped
		}
	}
	l.emit(token.EOF, "", l.position())
	return l.tokens
}

func (l *Lexer) identifier(start token.Position) {
	begin := l.pos - 1
	for !l.atEnd() && (isAlnum(l.peek()) || l.peek() == '_') {
		l.advance()
	}
	text := l.src[begin:l.pos]

	kind := token.Lookup(text)
	if text == "times" {
		kind = l.timesKind()
	}
	l.emit(kind, text, start)
}

// timesKind decides what "times" means from the two preceding tokens:
// "repeat <N> times" is the loop form, "<operand> times" is multiplication,
// and anything else falls back to the loop keyword.
func (l *Lexer) timesKind() token.Kind {
	n := len(l.tokens)
	if n == 0 {
		return token.TIMES
	}
	if prev := l.tokens[n-1].Kind; prev != token.NUMBER && prev != token.IDENT {
		return token.TIMES
	}
	if n >= 2 && l.tokens[n-2].Kind == token.REPEAT {
		return token.TIMES
	}
	return token.TIMES_OP
}

func (l *Lexer) number(start token.Position) {
	begin := l.pos - 1
	seenDot := false
	for !l.atEnd() {
		c := l.peek()
		if c == '.' && !seenDot {
			seenDot = true
		} else if !isDigit(c) {
			break
		}
		l.advance()
	}
	l.emit(token.NUMBER, l.src[begin:l.pos], start)
}

// text reads a string literal. There are no escape sequences, and an
// unterminated literal runs to the end of the input.
func (l *Lexer) text(start token.Position) {
	begin := l.pos
	for !l.atEnd() && l.peek() != '"' {
		l.advance()
	}
	l.emit(token.STRING, l.src[begin:l.pos], start)
	if !l.atEnd() {
		l.advance() // closing quote
	}
}

func (l *Lexer) emit(kind token.Kind, lexeme string, pos token.Position) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: lexeme, Pos: pos})
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }
