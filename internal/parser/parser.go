package parser

import (
	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/diagnostic"
	"github.com/lhaig/peak/internal/lexer"
)

// New creates a new parser
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()
	return &Parser{
		tokens: tokens,
		pos:    0,
		diags:  diagnostic.New(),
	}
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse parses the token stream into a Program AST
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.check(lexer.EOF) {
		startPos := p.pos
		errs := p.diags.ErrorCount()
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.diags.ErrorCount() > errs {
			p.synchronize()
			if p.check(lexer.RBRACE) {
				p.advance() // stray '}' at top level
			}
		}
		if p.pos == startPos {
			p.advance() // ensure forward progress to avoid infinite loop
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.current().Type {
	case lexer.LET, lexer.CONST:
		return p.parseVarDecl()
	case lexer.ITEM:
		return p.parseFuncDecl()
	case lexer.ORDER:
		return p.parseClassDecl()
	case lexer.BREW:
		return p.parseIfStmt()
	case lexer.BLEND:
		return p.parseWhileStmt()
	case lexer.RISTRETTO:
		return p.parseForStmt()
	case lexer.TAMP:
		tok := p.advance()
		return &ast.BreakStmt{Line: tok.Line, Column: tok.Column}
	case lexer.SERVE:
		return p.parseReturnStmt()
	case lexer.REMAKE:
		tok := p.advance()
		value := p.parseExpression()
		return &ast.PrintStmt{Value: value, Line: tok.Line, Column: tok.Column}
	default:
		return p.parseSimpleStmt()
	}
}

// parseBlock parses: { statement* }
func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	block := &ast.Block{Line: tok.Line, Column: tok.Column}

	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		startPos := p.pos
		errs := p.diags.ErrorCount()
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.diags.ErrorCount() > errs {
			p.synchronize()
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseVarDecl parses: let x = e | const x = e
func (p *Parser) parseVarDecl() *ast.VarDecl {
	kw := p.advance()
	name := p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	value := p.parseExpression()
	return &ast.VarDecl{
		Name:     name.Literal,
		ReadOnly: kw.Type == lexer.CONST,
		Value:    value,
		Line:     name.Line,
		Column:   name.Column,
	}
}

// parseFuncDecl parses: item <name>(<params>) [-> <type>] { ... }
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	p.expect(lexer.ITEM)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	var retType ast.TypeExpr
	if p.match(lexer.ARROW) {
		retType = p.parseType()
	}
	body := p.parseBlock()

	return &ast.FuncDecl{
		Name:       name.Literal,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Line:       name.Line,
		Column:     name.Column,
	}
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.check(lexer.RPAREN) {
		return params
	}
	params = append(params, p.parseParam())
	for p.match(lexer.COMMA) {
		params = append(params, p.parseParam())
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	paramType := p.parseType()
	return &ast.Param{
		Name:   name.Literal,
		Type:   paramType,
		Line:   name.Line,
		Column: name.Column,
	}
}

// parseClassDecl parses: order <name> { <field: type>* <item ...>* }
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	p.expect(lexer.ORDER)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LBRACE)

	class := &ast.ClassDecl{
		Name:   name.Literal,
		Line:   name.Line,
		Column: name.Column,
	}

	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		switch p.current().Type {
		case lexer.IDENT:
			if len(class.Methods) > 0 {
				tok := p.current()
				p.diags.Errorf(tok.Line, tok.Column, "field %s must be declared before the methods of %s", tok.Literal, class.Name)
			}
			class.Fields = append(class.Fields, p.parseFieldDecl())
		case lexer.ITEM:
			class.Methods = append(class.Methods, p.parseFuncDecl())
		default:
			tok := p.current()
			p.unexpected(tok, "field or method")
			p.advance()
			for !p.check(lexer.IDENT) && !p.check(lexer.ITEM) && !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
				p.advance()
			}
		}
	}
	p.expect(lexer.RBRACE)
	return class
}

// parseFieldDecl parses: <name>: <type>
func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	fieldType := p.parseType()
	return &ast.FieldDecl{
		Name:   name.Literal,
		Type:   fieldType,
		Line:   name.Line,
		Column: name.Column,
	}
}

// parseIfStmt parses: brew <expr> { ... } [pull { ... } | pull brew ...]
func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.expect(lexer.BREW)
	test := p.parseExpression()
	then := p.parseBlock()

	var elseStmt ast.Statement
	if p.match(lexer.PULL) {
		if p.check(lexer.BREW) {
			elseStmt = p.parseIfStmt()
		} else {
			elseStmt = p.parseBlock()
		}
	}

	return &ast.IfStmt{
		Test:   test,
		Then:   then,
		Else:   elseStmt,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseWhileStmt parses: blend <expr> { ... }
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.expect(lexer.BLEND)
	test := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileStmt{
		Test:   test,
		Body:   body,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseForStmt parses: ristretto <variable> espresso <collection> { ... }
func (p *Parser) parseForStmt() *ast.ForStmt {
	tok := p.expect(lexer.RISTRETTO)
	varName := p.expect(lexer.IDENT)
	p.expect(lexer.ESPRESSO)
	collection := p.parseExpression()
	body := p.parseBlock()
	return &ast.ForStmt{
		Variable:   varName.Literal,
		VarLine:    varName.Line,
		VarColumn:  varName.Column,
		Collection: collection,
		Body:       body,
		Line:       tok.Line,
		Column:     tok.Column,
	}
}

// parseReturnStmt parses: serve [<expr>]
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.expect(lexer.SERVE)
	stmt := &ast.ReturnStmt{Line: tok.Line, Column: tok.Column}
	if startsExpression(p.current().Type) {
		stmt.Value = p.parseExpression()
	}
	return stmt
}

// startsExpression reports whether a token can begin an expression
func startsExpression(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.INT_LIT, lexer.FLOAT_LIT, lexer.STRING_LIT,
		lexer.TRUE, lexer.FALSE, lexer.SHOT, lexer.LPAREN, lexer.LBRACKET,
		lexer.MINUS, lexer.NOT:
		return true
	}
	return false
}

// parseSimpleStmt parses the statements that begin with an expression:
// target++, target--, target = value, and calls.
func (p *Parser) parseSimpleStmt() ast.Statement {
	tok := p.current()
	errs := p.diags.ErrorCount()
	expr := p.parsePostfix()

	switch p.current().Type {
	case lexer.INCREMENT, lexer.DECREMENT:
		op := p.advance()
		return &ast.BumpStmt{Target: expr, Op: op.Type, Line: tok.Line, Column: tok.Column}
	case lexer.ASSIGN:
		p.advance()
		value := p.parseExpression()
		return &ast.AssignStmt{Target: expr, Value: value, Line: tok.Line, Column: tok.Column}
	}

	if _, ok := expr.(*ast.CallExpr); ok {
		return &ast.ExprStmt{Expr: expr, Line: tok.Line, Column: tok.Column}
	}
	if p.diags.ErrorCount() > errs {
		return nil
	}
	p.unexpected(p.current(), "'=', '++', '--' or a call")
	return nil
}

// Type annotations

// parseType parses: id | [T] | (T, ...) -> R, each optionally followed by '?'
func (p *Parser) parseType() ast.TypeExpr {
	tok := p.current()
	var t ast.TypeExpr

	switch tok.Type {
	case lexer.IDENT:
		p.advance()
		t = &ast.NamedType{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.LBRACKET:
		p.advance()
		base := p.parseType()
		p.expect(lexer.RBRACKET)
		t = &ast.ArrayTypeExpr{Base: base, Line: tok.Line, Column: tok.Column}
	case lexer.LPAREN:
		p.advance()
		var params []ast.TypeExpr
		if !p.check(lexer.RPAREN) {
			params = append(params, p.parseType())
			for p.match(lexer.COMMA) {
				params = append(params, p.parseType())
			}
		}
		p.expect(lexer.RPAREN)
		p.expect(lexer.ARROW)
		ret := p.parseType()
		t = &ast.FunctionTypeExpr{Params: params, Return: ret, Line: tok.Line, Column: tok.Column}
	default:
		p.unexpected(tok, "type")
		return &ast.NamedType{Name: "<error>", Line: tok.Line, Column: tok.Column}
	}

	for p.check(lexer.QUESTION) {
		q := p.advance()
		t = &ast.OptionalTypeExpr{Base: t, Line: q.Line, Column: q.Column}
	}
	return t
}

// Expression parsing - precedence climbing

// Precedence levels (lowest to highest):
// 1. or           (left-associative)
// 2. and          (left-associative)
// 3. < <= == != >= >  (non-associative)
// 4. + -          (left-associative)
// 5. * / %        (left-associative)
// 6. ** and unary (right-associative, see parseFactor)

const (
	precNone       = 0
	precOr         = 1
	precAnd        = 2
	precRelational = 3
	precAdditive   = 4
	precMulti      = 5
)

func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ, lexer.EQ, lexer.NEQ:
		return precRelational
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return precMulti
	default:
		return precNone
	}
}

// parseExpression parses: exp0 [? exp : exp]
func (p *Parser) parseExpression() ast.Expression {
	test := p.parsePrecedence(precOr)
	if !p.check(lexer.QUESTION) {
		return test
	}
	p.advance()
	consequent := p.parseExpression()
	colon := p.expect(lexer.COLON)
	alternate := p.parseExpression()
	return &ast.ConditionalExpr{
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
		Line:       colon.Line,
		Column:     colon.Column,
	}
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	left := p.parseFactor()
	compared := false

	for {
		prec := tokenPrecedence(p.current().Type)
		if prec == precNone || prec < minPrec {
			break
		}

		op := p.advance()
		if prec == precRelational {
			if compared {
				p.diags.Errorf(op.Line, op.Column, "comparison operators cannot be chained")
			}
			compared = true
		}

		right := p.parsePrecedence(prec + 1)
		left = &ast.BinaryExpr{
			Left:   left,
			Op:     op.Type,
			Right:  right,
			Line:   op.Line,
			Column: op.Column,
		}
	}

	return left
}

// parseFactor parses: postfix ** factor | - factor | not factor | postfix
func (p *Parser) parseFactor() ast.Expression {
	if p.check(lexer.MINUS) || p.check(lexer.NOT) {
		op := p.advance()
		operand := p.parseFactor()
		return &ast.UnaryExpr{
			Op:      op.Type,
			Operand: operand,
			Line:    op.Line,
			Column:  op.Column,
		}
	}

	left := p.parsePostfix()
	if p.check(lexer.POWER) {
		op := p.advance()
		right := p.parseFactor()
		return &ast.BinaryExpr{
			Left:   left,
			Op:     op.Type,
			Right:  right,
			Line:   op.Line,
			Column: op.Column,
		}
	}
	return left
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for {
		if p.check(lexer.LBRACKET) {
			// Index access: expr[index]
			open := p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = &ast.IndexExpr{
				Object: expr,
				Index:  index,
				Line:   open.Line,
				Column: open.Column,
			}
		} else if p.check(lexer.DOT) {
			p.advance()
			name := p.expect(lexer.IDENT)
			expr = &ast.MemberExpr{
				Object: expr,
				Name:   name.Literal,
				Line:   name.Line,
				Column: name.Column,
			}
		} else if p.check(lexer.LPAREN) {
			open := p.advance()
			args := p.parseArgList()
			p.expect(lexer.RPAREN)
			expr = &ast.CallExpr{
				Callee: expr,
				Args:   args,
				Line:   open.Line,
				Column: open.Column,
			}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()

	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		return &ast.IntLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.FLOAT_LIT:
		p.advance()
		return &ast.FloatLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.STRING_LIT:
		p.advance()
		return &ast.StringLit{Value: lexer.Unquote(tok.Literal), Line: tok.Line, Column: tok.Column}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Line: tok.Line, Column: tok.Column}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Line: tok.Line, Column: tok.Column}
	case lexer.SHOT:
		p.advance()
		return &ast.ShotExpr{Line: tok.Line, Column: tok.Column}
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr
	case lexer.LBRACKET:
		if empty := p.tryEmptyArray(); empty != nil {
			return empty
		}
		return p.parseArrayLit()
	default:
		p.unexpected(tok, "expression")
		p.advance()
		return &ast.Identifier{Name: "<error>", Line: tok.Line, Column: tok.Column}
	}
}

// tryEmptyArray parses [T]() when the tokens ahead form one, and leaves the
// parser untouched otherwise.
func (p *Parser) tryEmptyArray() *ast.EmptyArrayExpr {
	tok := p.current()
	var typ ast.TypeExpr
	ok := p.speculate(func() bool {
		typ = p.parseType()
		return p.match(lexer.LPAREN) && p.match(lexer.RPAREN)
	})
	if !ok {
		return nil
	}
	return &ast.EmptyArrayExpr{Type: typ, Line: tok.Line, Column: tok.Column}
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.check(lexer.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}

func (p *Parser) parseArrayLit() *ast.ArrayLit {
	tok := p.expect(lexer.LBRACKET)
	var elements []ast.Expression

	// Handle empty array: []
	if !p.check(lexer.RBRACKET) {
		elements = append(elements, p.parseExpression())
		for p.match(lexer.COMMA) {
			elements = append(elements, p.parseExpression())
		}
	}
	p.expect(lexer.RBRACKET)

	return &ast.ArrayLit{
		Elements: elements,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}
