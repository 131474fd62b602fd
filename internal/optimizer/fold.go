package optimizer

import (
	"math"

	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/lexer"
)

// foldBinary evaluates op over two literals of the same type. It returns nil
// when the result cannot be represented as a literal, such as an integer
// division by zero, so the expression is kept for the runtime.
func foldBinary(op lexer.TokenType, x, y ir.Expr) ir.Expr {
	switch a := x.(type) {
	case *ir.IntLit:
		b, ok := y.(*ir.IntLit)
		if !ok {
			return nil
		}
		return foldInt(op, a.Value, b.Value)
	case *ir.FloatLit:
		b, ok := y.(*ir.FloatLit)
		if !ok {
			return nil
		}
		return foldFloat(op, a.Value, b.Value)
	case *ir.StringLit:
		b, ok := y.(*ir.StringLit)
		if !ok {
			return nil
		}
		return foldString(op, a.Value, b.Value)
	case *ir.BoolLit:
		b, ok := y.(*ir.BoolLit)
		if !ok {
			return nil
		}
		return foldBool(op, a.Value, b.Value)
	}
	return nil
}

// foldInt leaves any operation whose result does not fit in 64 bits
// unfolded; the generated code computes it at runtime instead.
func foldInt(op lexer.TokenType, a, b int64) ir.Expr {
	var r int64
	ok := true
	switch op {
	case lexer.PLUS:
		r, ok = addInt(a, b)
	case lexer.MINUS:
		r, ok = subInt(a, b)
	case lexer.STAR:
		r, ok = mulInt(a, b)
	case lexer.SLASH:
		if b == 0 || (a == math.MinInt64 && b == -1) {
			return nil
		}
		r = a / b
	case lexer.PERCENT:
		if b == 0 {
			return nil
		}
		r = a % b
	case lexer.POWER:
		if b < 0 {
			return nil
		}
		r, ok = intPow(a, b)
	default:
		return compare(op, cmpOrdered(a, b))
	}
	if !ok {
		return nil
	}
	return &ir.IntLit{Value: r}
}

func foldFloat(op lexer.TokenType, a, b float64) ir.Expr {
	var r float64
	switch op {
	case lexer.PLUS:
		r = a + b
	case lexer.MINUS:
		r = a - b
	case lexer.STAR:
		r = a * b
	case lexer.SLASH:
		r = a / b
	case lexer.PERCENT:
		r = math.Mod(a, b)
	case lexer.POWER:
		r = math.Pow(a, b)
	default:
		return compare(op, cmpOrdered(a, b))
	}
	// Infinities and NaN have no literal form.
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	return &ir.FloatLit{Value: r}
}

func foldString(op lexer.TokenType, a, b string) ir.Expr {
	if op == lexer.PLUS {
		return &ir.StringLit{Value: a + b}
	}
	return compare(op, cmpOrdered(a, b))
}

func foldBool(op lexer.TokenType, a, b bool) ir.Expr {
	switch op {
	case lexer.AND:
		return &ir.BoolLit{Value: a && b}
	case lexer.OR:
		return &ir.BoolLit{Value: a || b}
	case lexer.EQ:
		return &ir.BoolLit{Value: a == b}
	case lexer.NEQ:
		return &ir.BoolLit{Value: a != b}
	}
	return nil
}

// compare turns a three-way comparison into the boolean result of op
func compare(op lexer.TokenType, c int) ir.Expr {
	var v bool
	switch op {
	case lexer.EQ:
		v = c == 0
	case lexer.NEQ:
		v = c != 0
	case lexer.LT:
		v = c < 0
	case lexer.LEQ:
		v = c <= 0
	case lexer.GT:
		v = c > 0
	case lexer.GEQ:
		v = c >= 0
	default:
		return nil
	}
	return &ir.BoolLit{Value: v}
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (b >= 0) == (c >= a)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (b >= 0) == (c <= a)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	return c, c/b == a
}

func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

// foldUnary evaluates -literal and not literal, or returns nil
func foldUnary(op lexer.TokenType, operand ir.Expr) ir.Expr {
	switch lit := operand.(type) {
	case *ir.IntLit:
		if op == lexer.MINUS && lit.Value != math.MinInt64 {
			return &ir.IntLit{Value: -lit.Value}
		}
	case *ir.FloatLit:
		if op == lexer.MINUS {
			return &ir.FloatLit{Value: -lit.Value}
		}
	case *ir.BoolLit:
		if op == lexer.NOT {
			return &ir.BoolLit{Value: !lit.Value}
		}
	}
	return nil
}
