// Package token defines the lexical tokens of the Natural++ language.
package token

import "fmt"

// Kind is the set of lexical token kinds.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	IDENT  // x, total_count
	NUMBER // 12, 3.5
	STRING // "hello"

	keywordBeg
	CREATE
	VARIABLE
	CONSTANT
	EQUAL
	TO
	SET
	DISPLAY // display, show
	IF
	THEN
	OTHERWISE
	END
	WHILE
	DO
	REPEAT
	TIMES    // loop count: repeat 3 times
	TIMES_OP // multiplication: a times b
	PLUS
	MINUS
	DIVIDED
	BY
	MODULO
	IS
	LESS
	GREATER
	THAN
	OR
	AND
	NOT
	LIST
	OBJECT
	PROPERTY
	OF
	AT
	ADD
	keywordEnd

	LPAREN // (
	RPAREN // )
)

var kinds = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	CREATE:    "create",
	VARIABLE:  "variable",
	CONSTANT:  "constant",
	EQUAL:     "equal",
	TO:        "to",
	SET:       "set",
	DISPLAY:   "display",
	IF:        "if",
	THEN:      "then",
	OTHERWISE: "otherwise",
	END:       "end",
	WHILE:     "while",
	DO:        "do",
	REPEAT:    "repeat",
	TIMES:     "times",
	TIMES_OP:  "times(*)",
	PLUS:      "plus",
	MINUS:     "minus",
	DIVIDED:   "divided",
	BY:        "by",
	MODULO:    "modulo",
	IS:        "is",
	LESS:      "less",
	GREATER:   "greater",
	THAN:      "than",
	OR:        "or",
	AND:       "and",
	NOT:       "not",
	LIST:      "list",
	OBJECT:    "object",
	PROPERTY:  "property",
	OF:        "of",
	AT:        "at",
	ADD:       "add",

	LPAREN: "(",
	RPAREN: ")",
}

// String returns the keyword text for keyword kinds and an upper-case
// name for literal and meta kinds.
func (k Kind) String() string {
	if 0 <= k && int(k) < len(kinds) && kinds[k] != "" {
		return kinds[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool { return keywordBeg < k && k < keywordEnd }

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, keywordEnd-keywordBeg)
	for k := keywordBeg + 1; k < keywordEnd; k++ {
		if k == TIMES_OP {
			continue // shares the "times" spelling with TIMES; the lexer picks one by context
		}
		keywords[kinds[k]] = k
	}
	keywords["show"] = DISPLAY
}

// Lookup maps an identifier to its keyword kind, or IDENT if it is not a keyword.
// Matching is case-sensitive. "times" always maps to TIMES.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

// Position is a line/column location in the source text, both 1-based.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set.
func (p Position) IsValid() bool { return p.Line > 0 }

// Token is a lexical unit. Tokens are values and never mutated after creation.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Kind, t.Lexeme, t.Pos)
}
