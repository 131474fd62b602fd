// Package formatter prints a parse tree back as canonical Peak source.
// Comments are not part of the tree and are not preserved.
package formatter

import (
	"fmt"
	"strings"

	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/lexer"
)

// Format takes a parsed Program and returns canonical Peak source code.
func Format(prog *ast.Program) string {
	f := &formatter{}
	f.formatProgram(prog)
	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

// --- helpers ---

func (f *formatter) emit(s string) {
	f.sb.WriteString(s)
}

func (f *formatter) emitLine(s string) {
	if s == "" {
		f.sb.WriteString("\n")
	} else {
		f.sb.WriteString(f.indentStr())
		f.sb.WriteString(s)
		f.sb.WriteString("\n")
	}
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(fmt.Sprintf(format, args...))
	f.sb.WriteString("\n")
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

func (f *formatter) blankLine() {
	f.sb.WriteString("\n")
}

// --- program-level ---

// formatProgram separates declarations of functions and classes from their
// neighbours with a blank line.
func (f *formatter) formatProgram(prog *ast.Program) {
	for i, stmt := range prog.Statements {
		if i > 0 && (isDeclaration(stmt) || isDeclaration(prog.Statements[i-1])) {
			f.blankLine()
		}
		f.formatStmt(stmt)
	}
}

func isDeclaration(s ast.Statement) bool {
	switch s.(type) {
	case *ast.FuncDecl, *ast.ClassDecl:
		return true
	}
	return false
}

// --- declarations ---

func (f *formatter) formatFuncDecl(fn *ast.FuncDecl) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name + ": " + ast.TypeString(p.Type)
	}
	header := fmt.Sprintf("item %s(%s)", fn.Name, strings.Join(params, ", "))
	if fn.ReturnType != nil {
		header += " -> " + ast.TypeString(fn.ReturnType)
	}
	f.emitLine(header + " {")
	f.formatBlock(fn.Body)
	f.emitLine("}")
}

func (f *formatter) formatClassDecl(c *ast.ClassDecl) {
	f.emitLinef("order %s {", c.Name)
	f.incIndent()
	for _, field := range c.Fields {
		f.emitLinef("%s: %s", field.Name, ast.TypeString(field.Type))
	}
	for i, m := range c.Methods {
		if i > 0 || len(c.Fields) > 0 {
			f.blankLine()
		}
		f.formatFuncDecl(m)
	}
	f.decIndent()
	f.emitLine("}")
}

// --- statements ---

// formatBlock writes the statements of b one level deeper.
func (f *formatter) formatBlock(b *ast.Block) {
	if b == nil {
		return
	}
	f.incIndent()
	for _, stmt := range b.Statements {
		f.formatStmt(stmt)
	}
	f.decIndent()
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		kind := "let"
		if stmt.ReadOnly {
			kind = "const"
		}
		f.emitLinef("%s %s = %s", kind, stmt.Name, f.formatExpr(stmt.Value))

	case *ast.FuncDecl:
		f.formatFuncDecl(stmt)

	case *ast.ClassDecl:
		f.formatClassDecl(stmt)

	case *ast.AssignStmt:
		f.emitLinef("%s = %s", f.formatExpr(stmt.Target), f.formatExpr(stmt.Value))

	case *ast.BumpStmt:
		op := "++"
		if stmt.Op == lexer.DECREMENT {
			op = "--"
		}
		f.emitLine(f.formatExpr(stmt.Target) + op)

	case *ast.IfStmt:
		f.emit(f.indentStr())
		f.formatIfStmt(stmt)

	case *ast.WhileStmt:
		f.emitLinef("blend %s {", f.formatExpr(stmt.Test))
		f.formatBlock(stmt.Body)
		f.emitLine("}")

	case *ast.ForStmt:
		f.emitLinef("ristretto %s espresso %s {", stmt.Variable, f.formatExpr(stmt.Collection))
		f.formatBlock(stmt.Body)
		f.emitLine("}")

	case *ast.BreakStmt:
		f.emitLine("tamp")

	case *ast.ReturnStmt:
		if stmt.Value != nil {
			f.emitLinef("serve %s", f.formatExpr(stmt.Value))
		} else {
			f.emitLine("serve")
		}

	case *ast.PrintStmt:
		f.emitLinef("remake %s", f.formatExpr(stmt.Value))

	case *ast.ExprStmt:
		f.emitLine(f.formatExpr(stmt.Expr))

	case *ast.Block:
		for _, inner := range stmt.Statements {
			f.formatStmt(inner)
		}
	}
}

// formatIfStmt continues the current line, which already holds the
// indentation or a closing "} pull ".
func (f *formatter) formatIfStmt(stmt *ast.IfStmt) {
	f.emit(fmt.Sprintf("brew %s {\n", f.formatExpr(stmt.Test)))
	f.formatBlock(stmt.Then)
	switch alt := stmt.Else.(type) {
	case *ast.IfStmt:
		f.emit(f.indentStr() + "} pull ")
		f.formatIfStmt(alt)
	case *ast.Block:
		f.emitLine("} pull {")
		f.formatBlock(alt)
		f.emitLine("}")
	default:
		f.emitLine("}")
	}
}

// --- expressions ---

// Precedence levels (higher binds tighter), mirroring the parser:
//
//	1: or
//	2: and
//	3: == != < > <= >= (never chained)
//	4: + -
//	5: * / %
//	6: ** and unary operators
//	7: postfix and primary expressions
const (
	precConditional = 0
	precFactor      = 6
	precPostfix     = 7
)

func (f *formatter) formatExpr(e ast.Expression) string {
	return f.formatExprPrec(e, precConditional)
}

// formatExprPrec formats an expression, wrapping in parens if needed based on parent precedence.
func (f *formatter) formatExprPrec(e ast.Expression, parentPrec int) string {
	result, prec := f.formatBare(e)
	if prec < parentPrec {
		return "(" + result + ")"
	}
	return result
}

// formatBare renders e without outer parentheses and reports its precedence.
func (f *formatter) formatBare(e ast.Expression) (string, int) {
	switch expr := e.(type) {
	case *ast.ConditionalExpr:
		return fmt.Sprintf("%s ? %s : %s",
			f.formatExprPrec(expr.Test, 1),
			f.formatExpr(expr.Consequent),
			f.formatExpr(expr.Alternate)), precConditional

	case *ast.BinaryExpr:
		if expr.Op == lexer.POWER {
			// Right-associative; the base must be a postfix expression.
			left := f.formatExprPrec(expr.Left, precPostfix)
			right := f.formatExprPrec(expr.Right, precFactor)
			return left + " ** " + right, precFactor
		}
		prec := precedence(expr.Op)
		leftPrec := prec
		if prec == 3 {
			leftPrec = prec + 1
		}
		left := f.formatExprPrec(expr.Left, leftPrec)
		right := f.formatExprPrec(expr.Right, prec+1) // +1 for left-associativity
		return fmt.Sprintf("%s %s %s", left, expr.Op.Symbol(), right), prec

	case *ast.UnaryExpr:
		operand := f.formatExprPrec(expr.Operand, precFactor)
		if expr.Op == lexer.NOT {
			return "not " + operand, precFactor
		}
		if inner, ok := expr.Operand.(*ast.UnaryExpr); ok && inner.Op == lexer.MINUS {
			// "--" would lex as a decrement
			operand = "(" + operand + ")"
		}
		return "-" + operand, precFactor

	case *ast.CallExpr:
		args := make([]string, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = f.formatExpr(arg)
		}
		return fmt.Sprintf("%s(%s)", f.formatExprPrec(expr.Callee, precPostfix), strings.Join(args, ", ")), precPostfix

	case *ast.MemberExpr:
		return fmt.Sprintf("%s.%s", f.formatExprPrec(expr.Object, precPostfix), expr.Name), precPostfix

	case *ast.IndexExpr:
		obj := f.formatExprPrec(expr.Object, precPostfix)
		return fmt.Sprintf("%s[%s]", obj, f.formatExpr(expr.Index)), precPostfix

	case *ast.Identifier:
		return expr.Name, precPostfix

	case *ast.ShotExpr:
		return "shot", precPostfix

	case *ast.IntLit:
		return expr.Value, precPostfix

	case *ast.FloatLit:
		return expr.Value, precPostfix

	case *ast.StringLit:
		return quote(expr.Value), precPostfix

	case *ast.BoolLit:
		if expr.Value {
			return "true", precPostfix
		}
		return "false", precPostfix

	case *ast.ArrayLit:
		elems := make([]string, len(expr.Elements))
		for i, elem := range expr.Elements {
			elems[i] = f.formatExpr(elem)
		}
		return fmt.Sprintf("[%s]", strings.Join(elems, ", ")), precPostfix

	case *ast.EmptyArrayExpr:
		return ast.TypeString(expr.Type) + "()", precPostfix

	default:
		return "<unknown>", precPostfix
	}
}

func precedence(op lexer.TokenType) int {
	switch op {
	case lexer.OR:
		return 1
	case lexer.AND:
		return 2
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return 3
	case lexer.PLUS, lexer.MINUS:
		return 4
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return 5
	default:
		return 0
	}
}

// quote re-encodes a decoded string literal using the escapes the lexer reads.
func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return "\"" + s + "\""
}
