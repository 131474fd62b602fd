package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans Peak source code and produces tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number, counted in runes
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.readPosition++
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.readPosition += size
	}
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

// skipSingleLineComment skips a single-line comment (//)
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a numeric literal (integer or float)
func (l *Lexer) readNumber() (string, TokenType) {
	position := l.position
	tokenType := INT_LIT

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = FLOAT_LIT
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part: e10, E+3, e-2
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		signed := next == '+' || next == '-'
		if isDigit(next) || (signed && l.readPosition+1 < len(l.input) && isDigit(rune(l.input[l.readPosition+1]))) {
			tokenType = FLOAT_LIT
			l.readChar() // consume 'e'
			if signed {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[position:l.position], tokenType
}

// readString reads a string literal and returns it with quotes and escapes kept
// as written; the parser decodes it.
func (l *Lexer) readString() (string, bool) {
	position := l.position
	for {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			return "", false
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 || l.ch == '\n' {
				return "", false
			}
		}
	}
	return l.input[position : l.position+1], true
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Line = l.line
	tok.Column = l.column

	two := func(tt TokenType) Token {
		ch := l.ch
		l.readChar()
		return Token{Type: tt, Literal: string(ch) + string(l.ch), Line: tok.Line, Column: tok.Column}
	}
	one := func(tt TokenType) Token {
		return Token{Type: tt, Literal: string(l.ch), Line: tok.Line, Column: tok.Column}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = two(EQ)
		} else {
			tok = one(ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = two(NEQ)
		} else {
			tok = one(ILLEGAL)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = two(LEQ)
		} else {
			tok = one(LT)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = two(GEQ)
		} else {
			tok = one(GT)
		}
	case '+':
		if l.peekChar() == '+' {
			tok = two(INCREMENT)
		} else {
			tok = one(PLUS)
		}
	case '-':
		switch l.peekChar() {
		case '-':
			tok = two(DECREMENT)
		case '>':
			tok = two(ARROW)
		default:
			tok = one(MINUS)
		}
	case '*':
		if l.peekChar() == '*' {
			tok = two(POWER)
		} else {
			tok = one(STAR)
		}
	case '/':
		if l.peekChar() == '/' {
			l.skipSingleLineComment()
			return l.NextToken()
		}
		tok = one(SLASH)
	case '%':
		tok = one(PERCENT)
	case '(':
		tok = one(LPAREN)
	case ')':
		tok = one(RPAREN)
	case '{':
		tok = one(LBRACE)
	case '}':
		tok = one(RBRACE)
	case '[':
		tok = one(LBRACKET)
	case ']':
		tok = one(RBRACKET)
	case ',':
		tok = one(COMMA)
	case ':':
		tok = one(COLON)
	case '.':
		tok = one(DOT)
	case '?':
		tok = one(QUESTION)
	case '"':
		str, ok := l.readString()
		if !ok {
			tok = Token{Type: ILLEGAL, Literal: "unterminated string", Line: tok.Line, Column: tok.Column}
		} else {
			tok = Token{Type: STRING_LIT, Literal: str, Line: tok.Line, Column: tok.Column}
		}
	case 0:
		tok = Token{Type: EOF, Literal: "", Line: tok.Line, Column: tok.Column}
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			tok = Token{Type: LookupIdent(ident), Literal: ident, Line: tok.Line, Column: tok.Column}
			return tok // readIdentifier already advanced
		} else if isDigit(l.ch) {
			literal, tokenType := l.readNumber()
			tok = Token{Type: tokenType, Literal: literal, Line: tok.Line, Column: tok.Column}
			return tok // readNumber already advanced
		}
		tok = one(ILLEGAL)
	}

	l.readChar()
	return tok
}

// Tokenize returns all tokens from the input
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Unquote decodes a STRING_LIT literal (quotes included) into its value.
func Unquote(literal string) string {
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		literal = literal[1 : len(literal)-1]
	}
	var sb strings.Builder
	for i := 0; i < len(literal); i++ {
		if literal[i] != '\\' || i+1 == len(literal) {
			sb.WriteByte(literal[i])
			continue
		}
		i++
		switch literal[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		default:
			// unknown escape, keep the backslash
			sb.WriteByte('\\')
			sb.WriteByte(literal[i])
		}
	}
	return sb.String()
}

// Helper functions

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
