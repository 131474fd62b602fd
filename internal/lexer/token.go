package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT      // x, y, myVariable
	INT_LIT    // 123
	FLOAT_LIT  // 123.45
	STRING_LIT // "hello"

	// Keywords
	LET
	CONST
	ITEM
	ORDER
	BREW
	PULL
	BLEND
	RISTRETTO
	ESPRESSO
	TAMP
	SERVE
	REMAKE
	SHOT
	AND
	OR
	NOT
	TRUE
	FALSE

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	POWER     // **
	EQ        // ==
	NEQ       // !=
	LT        // <
	GT        // >
	LEQ       // <=
	GEQ       // >=
	ASSIGN    // =
	INCREMENT // ++
	DECREMENT // --
	ARROW     // ->

	// Delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	COLON    // :
	DOT      // .
	QUESTION // ?
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenNames = map[TokenType]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENT:      "IDENT",
	INT_LIT:    "INT_LIT",
	FLOAT_LIT:  "FLOAT_LIT",
	STRING_LIT: "STRING_LIT",
	LET:        "LET",
	CONST:      "CONST",
	ITEM:       "ITEM",
	ORDER:      "ORDER",
	BREW:       "BREW",
	PULL:       "PULL",
	BLEND:      "BLEND",
	RISTRETTO:  "RISTRETTO",
	ESPRESSO:   "ESPRESSO",
	TAMP:       "TAMP",
	SERVE:      "SERVE",
	REMAKE:     "REMAKE",
	SHOT:       "SHOT",
	AND:        "AND",
	OR:         "OR",
	NOT:        "NOT",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	PERCENT:    "PERCENT",
	POWER:      "POWER",
	EQ:         "EQ",
	NEQ:        "NEQ",
	LT:         "LT",
	GT:         "GT",
	LEQ:        "LEQ",
	GEQ:        "GEQ",
	ASSIGN:     "ASSIGN",
	INCREMENT:  "INCREMENT",
	DECREMENT:  "DECREMENT",
	ARROW:      "ARROW",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	COMMA:      "COMMA",
	COLON:      "COLON",
	DOT:        "DOT",
	QUESTION:   "QUESTION",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// operatorSymbols maps operator token types to their source spelling
var operatorSymbols = map[TokenType]string{
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	POWER:   "**",
	EQ:      "==",
	NEQ:     "!=",
	LT:      "<",
	GT:      ">",
	LEQ:     "<=",
	GEQ:     ">=",
	AND:     "and",
	OR:      "or",
	NOT:     "not",
}

// Symbol returns the source spelling of an operator token, or the token
// name when the type is not an operator.
func (t TokenType) Symbol() string {
	if sym, ok := operatorSymbols[t]; ok {
		return sym
	}
	return t.String()
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"let":       LET,
	"const":     CONST,
	"item":      ITEM,
	"order":     ORDER,
	"brew":      BREW,
	"pull":      PULL,
	"blend":     BLEND,
	"ristretto": RISTRETTO,
	"espresso":  ESPRESSO,
	"tamp":      TAMP,
	"serve":     SERVE,
	"remake":    REMAKE,
	"shot":      SHOT,
	"and":       AND,
	"or":        OR,
	"not":       NOT,
	"true":      TRUE,
	"false":     FALSE,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
