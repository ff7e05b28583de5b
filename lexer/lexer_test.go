package lexer

import "testing"

func TestNextPrimitives(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"42", []TokenType{INT, EOF}},
		{"0x2A", []TokenType{INT, EOF}},
		{"0x2Au", []TokenType{UINT, EOF}},
		{"3.14", []TokenType{DOUBLE, EOF}},
		{"1.5e10", []TokenType{DOUBLE, EOF}},
		{`"hello"`, []TokenType{STRING, EOF}},
		{`'hello'`, []TokenType{STRING, EOF}},
		{"true", []TokenType{TRUE, EOF}},
		{"false", []TokenType{FALSE, EOF}},
		{"null", []TokenType{NULL, EOF}},
		{"x in y", []TokenType{IDENT, IN, IDENT, EOF}},
		{"a.b", []TokenType{IDENT, DOT, IDENT, EOF}},
	}

	for _, tt := range tests {
		l := New(tt.input)
		for i, want := range tt.expected {
			tok := l.Next()
			if tok.Type != want {
				t.Errorf("input %q token %d: expected=%v, got=%v (%q)", tt.input, i, want, tok.Type, tok.Text)
			}
		}
	}
}

func TestNextOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"&&", []TokenType{AND, EOF}},
		{"||", []TokenType{OR, EOF}},
		{"==", []TokenType{EQ, EOF}},
		{"!=", []TokenType{NE, EOF}},
		{"<=", []TokenType{LE, EOF}},
		{">=", []TokenType{GE, EOF}},
		{"< > ! + - * / %", []TokenType{LT, GT, BANG, PLUS, MINUS, STAR, SLASH, PERCENT, EOF}},
	}
	for _, tt := range tests {
		l := New(tt.input)
		for i, want := range tt.expected {
			tok := l.Next()
			if tok.Type != want {
				t.Errorf("input %q token %d: expected=%v, got=%v", tt.input, i, want, tok.Type)
			}
		}
	}
}

// The lexer preserves the raw lexeme (quotes, prefix, and escapes intact)
// for the parser's decode step to interpret; it does not decode escapes
// itself.
func TestStringLexemesAreRaw(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"a\nb"`, `"a\nb"`},
		{`"a\tb"`, `"a\tb"`},
		{`r"a\nb"`, `r"a\nb"`},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != STRING {
			t.Fatalf("input %q: expected STRING, got %v", tt.input, tok.Type)
		}
		if tok.Text != tt.want {
			t.Errorf("input %q: lexeme = %q, want %q", tt.input, tok.Text, tt.want)
		}
	}
}

func TestUnterminatedStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unterminated string literal")
		}
	}()
	l := New(`"unterminated`)
	l.Next()
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a.b")
	first := l.Peek(1)
	if first.Type != IDENT {
		t.Fatalf("Peek(1) = %v, want IDENT", first.Type)
	}
	second := l.Peek(2)
	if second.Type != DOT {
		t.Fatalf("Peek(2) = %v, want DOT", second.Type)
	}
	// Peeking must not have consumed anything.
	tok := l.Next()
	if tok.Type != IDENT {
		t.Fatalf("Next() after Peek = %v, want IDENT", tok.Type)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("a\nbb")
	l.Next() // a
	tok := l.Next()
	if tok.Line != 2 || tok.Column != 1 {
		t.Errorf("second line token at line=%d column=%d, want line=2 column=1", tok.Line, tok.Column)
	}
}
