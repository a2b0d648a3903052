package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/podhmo/naturalpp/ast"
	"github.com/podhmo/naturalpp/object"
	"github.com/podhmo/naturalpp/token"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := ParseString(src)
	if err := errs.Err(); err != nil {
		t.Fatalf("unexpected diagnostics for %q:\n%v", src, err)
	}
	return prog
}

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"variable", `create variable x equal to 5`, `define x = 5`},
		{"constant", `create constant pi equal to 3.14`, `define pi = 3.14`},
		{"list", `create list items`, `define items = new list`},
		{"object", `create object person`, `define person = new object`},
		{"assign", `set x to x plus 1`, `set x = (x plus 1)`},
		{"list assign", `set items at 2 to "c"`, `set items at 2 = "c"`},
		{"list assign computed index", `set items at i plus 1 to 0`, `set items at (i plus 1) = 0`},
		{"property assign", `set property "age" of person to 30`, `set property "age" of person = 30`},
		{"add", `add 4 times 2 to items`, `add (4 times 2) to items`},
		{"display", `display "hi"`, `display "hi"`},
		{"show", `show x`, `display x`},
		{
			"if otherwise",
			"if x is equal to 5 then\n display \"yes\"\notherwise\n display \"no\"\nend if",
			`if (x is equal to 5) then {display "yes"} otherwise {display "no"}`,
		},
		{
			"while",
			"while c is less than 3 do\n set c to c plus 1\nend while",
			`while (c is less than 3) do {set c = (c plus 1)}`,
		},
		{
			"nested blocks",
			"while a do if b then while c do display 1 end while end if end while",
			`while a do {if b then {while c do {display 1}}}`,
		},
		{
			"two statements",
			"create variable x equal to 1 display x",
			`define x = 1; display x`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOK(t, tt.input)
			if diff := cmp.Diff(tt.want, prog.String()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`display 1 plus 2 times 3`, `display (1 plus (2 times 3))`},
		{`display 2 times (1 plus 2)`, `display (2 times (1 plus 2))`},
		{`display 8 divided by 2 minus 1`, `display ((8 divided by 2) minus 1)`},
		{`display 1 minus 2 minus 3`, `display ((1 minus 2) minus 3)`},
		{`display a plus 1 is less than b times 2`, `display ((a plus 1) is less than (b times 2))`},
		{`display x is 5`, `display (x is equal to 5)`},
		{`display items at 0 plus 1`, `display (items at (0 plus 1))`},
		{`display items at 0 is equal to 5`, `display ((items at 0) is equal to 5)`},
		{`display property "k" of o plus 1`, `display ((property "k" of o) plus 1)`},
		{`display property k of o`, `display (property k of o)`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parseOK(t, tt.input)
			if diff := cmp.Diff(tt.want, prog.String()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Tree(t *testing.T) {
	prog := parseOK(t, `set scores at n to property "best" of stats`)
	want := &ast.Program{Statements: ast.Block{
		&ast.ListAssign{
			Name:  "scores",
			Index: &ast.Variable{Name: "n"},
			Value: &ast.PropertyAccess{
				Key:    &ast.Literal{Value: &object.Text{Value: "best"}},
				Object: "stats",
			},
		},
	}}
	if diff := cmp.Diff(want, prog, cmpopts.IgnoreTypes(token.Position{})); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}

	la := prog.Statements[0].(*ast.ListAssign)
	if got, want := la.NamePos, (token.Position{Line: 1, Column: 5}); got != want {
		t.Errorf("NamePos = %v, want %v", got, want)
	}
}

func TestParse_LessThanOrEqualCollapses(t *testing.T) {
	prog, errs := ParseString(`display x is less than or equal to 3`)
	if got, want := prog.String(), `display (x is less than 3)`; got != want {
		t.Errorf("Parse() = %q, want %q", got, want)
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Msg, "evaluated as 'is less than'") {
		t.Errorf("want one diagnostic about the collapse, got %v", errs)
	}
}

func TestParse_Recovery(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantDiags []string
	}{
		{
			name:      "unknown statement becomes empty display",
			input:     `banana display 1`,
			want:      `display ""; display 1`,
			wantDiags: []string{"1:1: expected a statement, found 'banana'"},
		},
		{
			name:      "modulo is not wired",
			input:     `display 7 modulo 2`,
			want:      `display 7; display ""; display ""`,
			wantDiags: []string{"1:11: expected a statement, found 'modulo'", "1:18: expected a statement, found '2'"},
		},
		{
			name:      "missing expression",
			input:     `display`,
			want:      `display 0`,
			wantDiags: []string{"1:8: expected an expression, found end of input"},
		},
		{
			name:      "missing to",
			input:     `set x 5`,
			want:      `set x = 5`,
			wantDiags: []string{"1:7: expected 'to', found '5'"},
		},
		{
			name:      "create without kind",
			input:     `create x display 1`,
			want:      `display ""; display ""; display 1`,
			wantDiags: []string{"1:8: expected 'variable', 'constant', 'list' or 'object' after 'create', found 'x'", "1:8: expected a statement, found 'x'"},
		},
		{
			name:      "greater than is not supported",
			input:     `display x is greater than 3`,
			want:      `display 0`,
			wantDiags: []string{"1:11: comparison 'is greater than' is not supported; it evaluates to 0"},
		},
		{
			name:      "not equal is not supported",
			input:     `display x is not equal to 3 display 1`,
			want:      `display 0; display 1`,
			wantDiags: []string{"1:11: comparison 'is not equal to' is not supported; it evaluates to 0"},
		},
		{
			name:      "unterminated if",
			input:     `if x then display 1`,
			want:      `if x then {display 1}`,
			wantDiags: []string{"1:20: expected 'end', found end of input", "1:20: expected 'if', found end of input"},
		},
		{
			name:  "otherwise if is not chained",
			input: "if a then display 1 otherwise if b then display 2 end if end if",
			want:  `if a then {display 1}; display ""; display ""; display 2; display ""; if 0 then {}`,
			wantDiags: []string{
				"1:31: 'otherwise if' is not supported; nest an if inside otherwise instead",
				"1:34: expected 'end', found 'b'",
				"1:34: expected 'if', found 'b'",
				"1:34: expected a statement, found 'b'",
				"1:36: expected a statement, found 'then'",
				"1:51: expected a statement, found 'end'",
				"1:58: expected an expression, found 'end'",
				"1:58: expected 'then', found 'end'",
			},
		},
		{
			name:      "times after a parenthesis is the loop keyword",
			input:     `display (1 plus 2) times 3`,
			want:      `display (1 plus 2); display ""; display ""`,
			wantDiags: []string{"1:20: expected a statement, found 'times'", "1:26: expected a statement, found '3'"},
		},
		{
			name:      "keyword used as a name",
			input:     `create variable list equal to 1`,
			want:      `define list = 1`,
			wantDiags: []string{"1:17: expected a name, found 'list'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, errs := ParseString(tt.input)
			if diff := cmp.Diff(tt.want, prog.String()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
			var got []string
			for _, e := range errs {
				got = append(got, e.Error())
			}
			if diff := cmp.Diff(tt.wantDiags, got); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew_AddsEOF(t *testing.T) {
	toks := []token.Token{
		{Kind: token.DISPLAY, Lexeme: "display"},
		{Kind: token.NUMBER, Lexeme: "1"},
	}
	prog, errs := Parse(toks)
	if errs.Err() != nil {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if got := prog.String(); got != "display 1" {
		t.Errorf("Parse() = %q", got)
	}
	if len(toks) != 2 {
		t.Errorf("caller's slice was modified")
	}
}

func TestErrorList(t *testing.T) {
	var errs ErrorList
	if errs.Err() != nil {
		t.Errorf("empty list should have nil Err()")
	}
	errs.add(token.Position{Line: 2, Column: 3}, "boom")
	errs.add(token.Position{}, "bang")
	if got, want := errs.Error(), "2:3: boom\nbang"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
