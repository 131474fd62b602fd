package lexer

import (
	"testing"
)

func TestNextToken_Operators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "arithmetic operators",
			input:    "+ - * / % **",
			expected: []TokenType{PLUS, MINUS, STAR, SLASH, PERCENT, POWER, EOF},
		},
		{
			name:     "comparison operators",
			input:    "== != < > <= >=",
			expected: []TokenType{EQ, NEQ, LT, GT, LEQ, GEQ, EOF},
		},
		{
			name:     "assignment and bump operators",
			input:    "= ++ --",
			expected: []TokenType{ASSIGN, INCREMENT, DECREMENT, EOF},
		},
		{
			name:     "arrow and question",
			input:    "-> ? :",
			expected: []TokenType{ARROW, QUESTION, COLON, EOF},
		},
		{
			name:     "bump glued to identifier",
			input:    "x++ y--",
			expected: []TokenType{IDENT, INCREMENT, IDENT, DECREMENT, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, expectedType := range tt.expected {
				tok := l.NextToken()
				if tok.Type != expectedType {
					t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
						i, expectedType, tok.Type)
				}
			}
		})
	}
}

func TestNextToken_Delimiters(t *testing.T) {
	input := "( ) { } [ ] , : ."
	expected := []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		COMMA, COLON, DOT, EOF,
	}

	l := New(input)
	for i, expectedType := range expected {
		tok := l.NextToken()
		if tok.Type != expectedType {
			t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
				i, expectedType, tok.Type)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected TokenType
	}{
		{"let", LET},
		{"const", CONST},
		{"item", ITEM},
		{"order", ORDER},
		{"brew", BREW},
		{"pull", PULL},
		{"blend", BLEND},
		{"ristretto", RISTRETTO},
		{"espresso", ESPRESSO},
		{"tamp", TAMP},
		{"serve", SERVE},
		{"remake", REMAKE},
		{"shot", SHOT},
		{"and", AND},
		{"or", OR},
		{"not", NOT},
		{"true", TRUE},
		{"false", FALSE},
		{"pump", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			l := New(tt.keyword)
			tok := l.NextToken()
			if tok.Type != tt.expected {
				t.Errorf("keyword %q - wrong type. expected=%q, got=%q",
					tt.keyword, tt.expected, tok.Type)
			}
			if tok.Literal != tt.keyword {
				t.Errorf("keyword %q - wrong literal. expected=%q, got=%q",
					tt.keyword, tt.keyword, tok.Literal)
			}
		})
	}
}

func TestNextToken_NumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		tokType  TokenType
		expected string
	}{
		{"0", INT_LIT, "0"},
		{"123", INT_LIT, "123"},
		{"89.123", FLOAT_LIT, "89.123"},
		{"2.5e10", FLOAT_LIT, "2.5e10"},
		{"1E-3", FLOAT_LIT, "1E-3"},
		{"7e", INT_LIT, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := l.NextToken()
			if tok.Type != tt.tokType {
				t.Errorf("expected %s, got %q", tt.tokType, tok.Type)
			}
			if tok.Literal != tt.expected {
				t.Errorf("expected literal %q, got %q", tt.expected, tok.Literal)
			}
		})
	}
}

func TestNextToken_StringLiterals(t *testing.T) {
	l := New(`"Hello \"World\""`)
	tok := l.NextToken()
	if tok.Type != STRING_LIT {
		t.Fatalf("expected STRING_LIT, got %q", tok.Type)
	}
	if got := Unquote(tok.Literal); got != `Hello "World"` {
		t.Errorf("expected decoded value %q, got %q", `Hello "World"`, got)
	}

	l = New("\"unterminated\n")
	if tok := l.NextToken(); tok.Type != ILLEGAL {
		t.Errorf("expected ILLEGAL for unterminated string, got %q", tok.Type)
	}
}

func TestNextToken_UnicodeIdentifiers(t *testing.T) {
	l := New("π コンパイラ = 100")
	expected := []struct {
		tokType TokenType
		literal string
		column  int
	}{
		{IDENT, "π", 1},
		{IDENT, "コンパイラ", 3},
		{ASSIGN, "=", 9},
		{INT_LIT, "100", 11},
	}
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.tokType || tok.Literal != exp.literal {
			t.Errorf("token[%d]: expected %s %q, got %s %q", i, exp.tokType, exp.literal, tok.Type, tok.Literal)
		}
		if tok.Column != exp.column {
			t.Errorf("token[%d]: expected column %d, got %d", i, exp.column, tok.Column)
		}
	}
}

func TestNextToken_CommentsAndPositions(t *testing.T) {
	input := "remake 0 // yay\nx--"
	l := New(input)
	tokens := l.Tokenize()

	expected := []TokenType{REMAKE, INT_LIT, IDENT, DECREMENT, EOF}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, tt := range expected {
		if tokens[i].Type != tt {
			t.Errorf("token[%d]: expected %s, got %s", i, tt, tokens[i].Type)
		}
	}
	if tokens[2].Line != 2 || tokens[2].Column != 1 {
		t.Errorf("expected x at 2:1, got %d:%d", tokens[2].Line, tokens[2].Column)
	}
}

func TestTokenType_Symbol(t *testing.T) {
	if POWER.Symbol() != "**" {
		t.Errorf("expected **, got %s", POWER.Symbol())
	}
	if AND.Symbol() != "and" {
		t.Errorf("expected and, got %s", AND.Symbol())
	}
	if LPAREN.Symbol() != "LPAREN" {
		t.Errorf("expected LPAREN, got %s", LPAREN.Symbol())
	}
}
