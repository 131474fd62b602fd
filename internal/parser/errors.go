package parser

import (
	"unicode/utf8"

	"github.com/lhaig/peak/internal/diagnostic"
	"github.com/lhaig/peak/internal/lexer"
)

// syncTokens are tokens the parser can synchronize to after an error
var syncTokens = map[lexer.TokenType]bool{
	lexer.LET:       true,
	lexer.CONST:     true,
	lexer.ITEM:      true,
	lexer.ORDER:     true,
	lexer.BREW:      true,
	lexer.BLEND:     true,
	lexer.RISTRETTO: true,
	lexer.TAMP:      true,
	lexer.SERVE:     true,
	lexer.REMAKE:    true,
	lexer.RBRACE:    true,
	lexer.EOF:       true,
}

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.Diagnostics
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise reports an error
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if tok.Type != tt {
		p.unexpected(tok, tt.String())
		return tok
	}
	return p.advance()
}

// unexpected reports the current token as not being what the grammar wants here
func (p *Parser) unexpected(tok lexer.Token, want string) {
	if tok.Type == lexer.ILLEGAL {
		if utf8.RuneCountInString(tok.Literal) > 1 {
			p.diags.Errorf(tok.Line, tok.Column, "%s", tok.Literal)
		} else {
			p.diags.Errorf(tok.Line, tok.Column, "illegal character %q", tok.Literal)
		}
		return
	}
	p.diags.Errorf(tok.Line, tok.Column, "expected %s, got %s", want, tok.Type)
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// synchronize skips tokens until a statement boundary is found.
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if syncTokens[p.current().Type] {
			return
		}
		p.advance()
	}
}

// speculate runs fn against a scratch diagnostics collection. When fn
// reports no errors and returns true its progress is kept; otherwise the
// parser rewinds to where it started.
func (p *Parser) speculate(fn func() bool) bool {
	start, saved := p.pos, p.diags
	p.diags = diagnostic.New()
	ok := fn() && !p.diags.HasErrors()
	p.diags = saved
	if !ok {
		p.pos = start
	}
	return ok
}
