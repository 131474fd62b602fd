package optimizer

import (
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/lexer"
	"github.com/lhaig/peak/internal/types"
)

// expression optimizes children first, then the node itself
func expression(expr ir.Expr) ir.Expr {
	switch e := expr.(type) {
	case *ir.BinaryExpr:
		return binary(&ir.BinaryExpr{Op: e.Op, Left: expression(e.Left), Right: expression(e.Right), Type: e.Type})

	case *ir.UnaryExpr:
		operand := expression(e.Operand)
		if folded := foldUnary(e.Op, operand); folded != nil {
			return folded
		}
		return &ir.UnaryExpr{Op: e.Op, Operand: operand, Type: e.Type}

	case *ir.Conditional:
		test := expression(e.Test)
		if b, ok := test.(*ir.BoolLit); ok {
			if b.Value {
				return expression(e.Consequent)
			}
			return expression(e.Alternate)
		}
		return &ir.Conditional{
			Test:       test,
			Consequent: expression(e.Consequent),
			Alternate:  expression(e.Alternate),
			Type:       e.Type,
		}

	case *ir.CallExpr:
		return call(e)

	case *ir.SubscriptExpr:
		return &ir.SubscriptExpr{Array: expression(e.Array), Index: expression(e.Index), Type: e.Type}

	case *ir.MemberExpr:
		return &ir.MemberExpr{Object: expression(e.Object), Field: e.Field, Method: e.Method, Type: e.Type}

	case *ir.ArrayLit:
		elements := make([]ir.Expr, len(e.Elements))
		for i, el := range e.Elements {
			elements[i] = expression(el)
		}
		return &ir.ArrayLit{Elements: elements, Type: e.Type}
	}
	return expr
}

func call(c *ir.CallExpr) *ir.CallExpr {
	args := make([]ir.Expr, len(c.Args))
	for i, a := range c.Args {
		args[i] = expression(a)
	}
	return &ir.CallExpr{Callee: expression(c.Callee), Args: args, Type: c.Type}
}

// binary simplifies an expression whose operands are already optimized
func binary(e *ir.BinaryExpr) ir.Expr {
	x, y := e.Left, e.Right

	switch e.Op {
	case lexer.OR:
		if isBool(x, false) {
			return y
		}
		if isBool(y, false) {
			return x
		}
	case lexer.AND:
		if isBool(x, true) {
			return y
		}
		if isBool(y, true) {
			return x
		}
	}

	if ir.IsLiteral(x) && ir.IsLiteral(y) {
		if folded := foldBinary(e.Op, x, y); folded != nil {
			return folded
		}
		return e
	}

	switch e.Op {
	case lexer.PLUS:
		if isNumber(y, 0) {
			return x
		}
		if isNumber(x, 0) {
			return y
		}
	case lexer.MINUS:
		if isNumber(y, 0) {
			return x
		}
		if isNumber(x, 0) {
			return &ir.UnaryExpr{Op: lexer.MINUS, Operand: y, Type: e.Type}
		}
	case lexer.STAR:
		if isNumber(y, 1) {
			return x
		}
		if isNumber(x, 1) {
			return y
		}
		if isNumber(y, 0) {
			return y
		}
		if isNumber(x, 0) {
			return x
		}
	case lexer.SLASH:
		if isNumber(y, 1) {
			return x
		}
		if isNumber(x, 0) {
			return x
		}
	case lexer.POWER:
		if isNumber(y, 1) {
			return x
		}
		if isNumber(x, 1) {
			return x
		}
		if isNumber(y, 0) {
			return number(e.Type, 1)
		}
	}
	return e
}

func isBool(e ir.Expr, v bool) bool {
	b, ok := e.(*ir.BoolLit)
	return ok && b.Value == v
}

// isNumber reports whether e is the pump or affogato literal n
func isNumber(e ir.Expr, n int64) bool {
	switch lit := e.(type) {
	case *ir.IntLit:
		return lit.Value == n
	case *ir.FloatLit:
		return lit.Value == float64(n)
	}
	return false
}

// number builds the literal n of type t
func number(t types.Type, n int64) ir.Expr {
	if t == types.Float {
		return &ir.FloatLit{Value: float64(n)}
	}
	return &ir.IntLit{Value: n}
}
