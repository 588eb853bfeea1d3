package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `x + 42 - 3.14 * y / 2 % 7 ** 2 == != < <= > >= and or not True False None [1, 2] {"a": 1} (x)`

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{IDENT, "x"},
		{PLUS, "+"},
		{INT, "42"},
		{MINUS, "-"},
		{FLOAT, "3.14"},
		{ASTERISK, "*"},
		{IDENT, "y"},
		{SLASH, "/"},
		{INT, "2"},
		{PERCENT, "%"},
		{INT, "7"},
		{POWER, "**"},
		{INT, "2"},
		{EQ, "=="},
		{NOT_EQ, "!="},
		{LT, "<"},
		{LE, "<="},
		{GT, ">"},
		{GE, ">="},
		{AND, "and"},
		{OR, "or"},
		{NOT, "not"},
		{TRUE, "True"},
		{FALSE, "False"},
		{NONE, "None"},
		{LBRACKET, "["},
		{INT, "1"},
		{COMMA, ","},
		{INT, "2"},
		{RBRACKET, "]"},
		{LBRACE, "{"},
		{STRING, "a"},
		{COLON, ":"},
		{INT, "1"},
		{RBRACE, "}"},
		{LPAREN, "("},
		{IDENT, "x"},
		{RPAREN, ")"},
		{EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("token %d: wrong type, want %v got %v (literal %q)", i, exp.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != exp.literal {
			t.Fatalf("token %d: wrong literal, want %q got %q", i, exp.literal, tok.Literal)
		}
	}
}

func TestHangulIdentifiers(t *testing.T) {
	l := New(`점수 + 나이2`)
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "점수" {
		t.Fatalf("want IDENT 점수, got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != PLUS {
		t.Fatalf("want PLUS, got %v", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "나이2" {
		t.Fatalf("want IDENT 나이2, got %v %q", tok.Type, tok.Literal)
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\\b"`, `a\b`},
		{`"quote \" inside"`, `quote " inside`},
		{`"unknown \q escape"`, `unknown \q escape`},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Errorf("%q: want STRING, got %v", tt.input, tok.Type)
			continue
		}
		if tok.Literal != tt.expected {
			t.Errorf("%q: want %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestIllegalTokens(t *testing.T) {
	for _, input := range []string{`=`, `!`, `.`, `@`, `"unterminated`} {
		l := New(input)
		tok := l.NextToken()
		if tok.Type != ILLEGAL {
			t.Errorf("%q: want ILLEGAL, got %v %q", input, tok.Type, tok.Literal)
		}
	}
}

func TestNumberForms(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"0", INT},
		{"123", INT},
		{"1.5", FLOAT},
		{"1e3", FLOAT},
		{"2.5e-4", FLOAT},
		{"1E+2", FLOAT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.input {
			t.Errorf("%q: got %v %q", tt.input, tok.Type, tok.Literal)
		}
	}
}
