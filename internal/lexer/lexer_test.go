package lexer_test

import (
	"strings"
	"testing"

	"github.com/semetekare/minilang/internal/lexer"
	"github.com/semetekare/minilang/internal/token"
)

func TestLexKeywords(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("fn if else for switch break return as")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	expected := []string{"fn", "if", "else", "for", "switch", "break", "return", "as"}
	if len(toks) != len(expected)+1 { // +1 for EOF
		t.Fatalf("Expected %d tokens, got %d", len(expected)+1, len(toks))
	}
	for i, exp := range expected {
		if toks[i].Type != token.KEYWORD || toks[i].Literal != exp {
			t.Errorf("Token %d: expected KEYWORD %q, got (%v, %q)", i, exp, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestLexTypeNames(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("i64 f64 str bool void")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	for i, exp := range []string{"i64", "f64", "str", "bool", "void"} {
		if toks[i].Type != token.TYPE || toks[i].Literal != exp {
			t.Errorf("Token %d: expected TYPE %q, got (%v, %q)", i, exp, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestLexIdentifiers(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("my_var foo123 isPrime")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	expected := []string{"my_var", "foo123", "isPrime"}
	if len(toks) != len(expected)+1 { // +1 for EOF
		t.Fatalf("Expected %d tokens, got %d", len(expected)+1, len(toks))
	}
	for i, exp := range expected {
		if toks[i].Type != token.IDENT {
			t.Errorf("Token %d: expected IDENT, got %v", i, toks[i].Type)
		}
		if toks[i].Literal != exp {
			t.Errorf("Token %d: expected %q, got %q", i, exp, toks[i].Literal)
		}
	}
}

func TestLexBoolLiterals(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("true false")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if toks[0].Type != token.BOOL || !toks[0].Bool {
		t.Errorf("Token 0: expected BOOL true, got (%v, %t)", toks[0].Type, toks[0].Bool)
	}
	if toks[1].Type != token.BOOL || toks[1].Bool {
		t.Errorf("Token 1: expected BOOL false, got (%v, %t)", toks[1].Type, toks[1].Bool)
	}
}

func TestLexIntLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"0", 0},
		{"42", 42},
		{"9223372036854775807", 9223372036854775807},
	}

	lx := lexer.NewLexer()
	for _, tt := range tests {
		toks, err := lx.Lex(tt.input)
		if err != nil {
			t.Errorf("Lex(%q) failed: %v", tt.input, err)
			continue
		}
		if toks[0].Type != token.INT {
			t.Errorf("Lex(%q): expected INT, got %v", tt.input, toks[0].Type)
		}
		if toks[0].Int != tt.expected {
			t.Errorf("Lex(%q): expected %d, got %d", tt.input, tt.expected, toks[0].Int)
		}
	}
}

func TestLexIntOverflow(t *testing.T) {
	lx := lexer.NewLexer()
	_, err := lx.Lex("9223372036854775808")
	if err == nil {
		t.Fatal("Expected overflow error, got none")
	}
	if !strings.Contains(err.Error(), "Overflow occurred while parsing integer") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLexFloatLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"3.14", 3.14},
		{"2.5", 2.5},
		{"0.5", 0.5},
		{"1.", 1.0},
	}

	lx := lexer.NewLexer()
	for _, tt := range tests {
		toks, err := lx.Lex(tt.input)
		if err != nil {
			t.Errorf("Lex(%q) failed: %v", tt.input, err)
			continue
		}
		if toks[0].Type != token.FLOAT {
			t.Errorf("Lex(%q): expected FLOAT, got %v", tt.input, toks[0].Type)
		}
		if toks[0].Float != tt.expected {
			t.Errorf("Lex(%q): expected %g, got %g", tt.input, tt.expected, toks[0].Float)
		}
	}
}

func TestLexStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
	}

	lx := lexer.NewLexer()
	for _, tt := range tests {
		toks, err := lx.Lex(tt.input)
		if err != nil {
			t.Errorf("Lex(%q) failed: %v", tt.input, err)
			continue
		}
		if toks[0].Type != token.STRING {
			t.Errorf("Lex(%q): expected STRING, got %v", tt.input, toks[0].Type)
		}
		if toks[0].Literal != tt.expected {
			t.Errorf("Lex(%q): expected %q, got %q", tt.input, tt.expected, toks[0].Literal)
		}
	}
}

func TestLexUnknownEscapeWarns(t *testing.T) {
	lx := lexer.NewLexer()
	var warnings []lexer.Warning
	lx.SetWarningHandler(func(w lexer.Warning) { warnings = append(warnings, w) })

	toks, err := lx.Lex(`"a\qb"`)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if toks[0].Literal != `a\qb` {
		t.Errorf("Expected verbatim pass-through, got %q", toks[0].Literal)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Msg, "Unknown escape sequence") {
		t.Errorf("Expected one unknown-escape warning, got %v", warnings)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"at end of text", `"abc`},
		{"at end of line", "\"abc\nfn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx := lexer.NewLexer()
			var warnings []lexer.Warning
			lx.SetWarningHandler(func(w lexer.Warning) { warnings = append(warnings, w) })

			toks, err := lx.Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex failed: %v", err)
			}
			if toks[0].Type != token.STRING || toks[0].Literal != "abc" {
				t.Errorf("Expected partial STRING \"abc\", got (%v, %q)", toks[0].Type, toks[0].Literal)
			}
			if len(warnings) != 1 || warnings[0].Msg != "String not closed" {
				t.Errorf("Expected 'String not closed' warning, got %v", warnings)
			}
		})
	}
}

func TestLexOperatorsGreedy(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("== != <= >= && || -> < > = + - * / ! &")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	expected := []string{"==", "!=", "<=", ">=", "&&", "||", "->", "<", ">", "=", "+", "-", "*", "/", "!", "&"}
	if len(toks) != len(expected)+1 {
		t.Fatalf("Expected %d tokens, got %d", len(expected)+1, len(toks))
	}
	for i, exp := range expected {
		if toks[i].Type != token.OPERATOR || toks[i].Literal != exp {
			t.Errorf("Token %d: expected OPERATOR %q, got (%v, %q)", i, exp, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestLexSinglePipeWarns(t *testing.T) {
	lx := lexer.NewLexer()
	var warnings []lexer.Warning
	lx.SetWarningHandler(func(w lexer.Warning) { warnings = append(warnings, w) })

	toks, err := lx.Lex("a | b")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if toks[1].Type != token.OPERATOR || toks[1].Literal != "||" {
		t.Errorf("Expected '||' token for single '|', got (%v, %q)", toks[1].Type, toks[1].Literal)
	}
	if len(warnings) != 1 || warnings[0].Msg != "Expected '|'" {
		t.Errorf("Expected typo warning, got %v", warnings)
	}
}

func TestLexPunctuationAndTerminator(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("( ) { } , : ;")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	punct := []string{"(", ")", "{", "}", ",", ":"}
	for i, exp := range punct {
		if toks[i].Type != token.PUNCT || toks[i].Literal != exp {
			t.Errorf("Token %d: expected PUNCT %q, got (%v, %q)", i, exp, toks[i].Type, toks[i].Literal)
		}
	}
	if toks[len(punct)].Type != token.TERMINATOR {
		t.Errorf("Expected TERMINATOR for ';', got %v", toks[len(punct)].Type)
	}
}

func TestLexSkipsComments(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("x # comment to end of line\ny")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if len(toks) != 3 { // x, y, EOF
		t.Fatalf("Expected 3 tokens, got %d", len(toks))
	}
	if toks[0].Literal != "x" || toks[1].Literal != "y" {
		t.Errorf("Comment not skipped: %v", toks)
	}
}

func TestLexLongCommentWarns(t *testing.T) {
	lx := lexer.NewLexer()
	lx.MaxCommentLen = 10
	var warnings []lexer.Warning
	lx.SetWarningHandler(func(w lexer.Warning) { warnings = append(warnings, w) })

	if _, err := lx.Lex("# a very long comment body\n"); err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Msg, "Comment exceeds maximum length") {
		t.Errorf("Expected long-comment warning, got %v", warnings)
	}
}

func TestLexLongIdentifierWarns(t *testing.T) {
	lx := lexer.NewLexer()
	lx.MaxIdentLen = 4
	var warnings []lexer.Warning
	lx.SetWarningHandler(func(w lexer.Warning) { warnings = append(warnings, w) })

	toks, err := lx.Lex("abcdef")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if toks[0].Type != token.IDENT || toks[0].Literal != "abcdef" {
		t.Errorf("Identifier must still be produced, got (%v, %q)", toks[0].Type, toks[0].Literal)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Msg, "Identifier exceeds maximum length") {
		t.Errorf("Expected long-identifier warning, got %v", warnings)
	}
}

func TestLexUnknownCharacter(t *testing.T) {
	lx := lexer.NewLexer()
	_, err := lx.Lex("a @ b")
	if err == nil {
		t.Fatal("Expected error for unknown character, got none")
	}
	if !strings.Contains(err.Error(), "Unknown character") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLexPositions(t *testing.T) {
	lx := lexer.NewLexer()
	toks, err := lx.Lex("fn main\n  x")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	expected := []struct {
		line int
		col  int
	}{
		{1, 1}, // fn
		{1, 4}, // main
		{2, 3}, // x
	}
	for i, exp := range expected {
		if toks[i].Line != exp.line || toks[i].Col != exp.col {
			t.Errorf("Token %d (%q): expected %d:%d, got %d:%d",
				i, toks[i].Literal, exp.line, exp.col, toks[i].Line, toks[i].Col)
		}
	}
}

func TestNextTokenIsLazy(t *testing.T) {
	lx := lexer.NewLexer()
	lx.Reset("x y")

	tok, err := lx.NextToken()
	if err != nil || tok.Literal != "x" {
		t.Fatalf("First token: expected x, got (%v, %v)", tok, err)
	}
	tok, err = lx.NextToken()
	if err != nil || tok.Literal != "y" {
		t.Fatalf("Second token: expected y, got (%v, %v)", tok, err)
	}
	for i := 0; i < 2; i++ {
		tok, err = lx.NextToken()
		if err != nil || tok.Type != token.EOF {
			t.Fatalf("Expected EOF on call %d, got (%v, %v)", i, tok, err)
		}
	}
}
