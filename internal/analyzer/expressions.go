package analyzer

import (
	"strconv"

	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/diagnostic"
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/lexer"
	"github.com/lhaig/peak/internal/types"
)

// expression analyzes e in a value position
func (a *analyzer) expression(e ast.Expression) (ir.Expr, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		v, err := strconv.ParseInt(e.Value, 10, 64)
		if err != nil {
			return nil, errorAt(e, diagnostic.TypeMismatch, "Integer %s is out of range", e.Value)
		}
		return &ir.IntLit{Value: v}, nil
	case *ast.FloatLit:
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return nil, errorAt(e, diagnostic.TypeMismatch, "Number %s is out of range", e.Value)
		}
		return &ir.FloatLit{Value: v}, nil
	case *ast.StringLit:
		return &ir.StringLit{Value: e.Value}, nil
	case *ast.BoolLit:
		return &ir.BoolLit{Value: e.Value}, nil
	case *ast.Identifier:
		return a.identifier(e, false)
	case *ast.ShotExpr:
		class := a.scopes.Class()
		if class == nil {
			return nil, errorAt(e, diagnostic.InvalidControlFlow, "Shot can only appear in a method")
		}
		return &ir.SelfExpr{Class: class}, nil
	case *ast.BinaryExpr:
		return a.binary(e)
	case *ast.UnaryExpr:
		return a.unary(e)
	case *ast.ConditionalExpr:
		return a.conditional(e)
	case *ast.CallExpr:
		c, err := a.call(e)
		if err != nil {
			return nil, err
		}
		return c, nil
	case *ast.IndexExpr:
		return a.subscript(e)
	case *ast.MemberExpr:
		return a.member(e)
	case *ast.ArrayLit:
		return a.arrayLit(e)
	case *ast.EmptyArrayExpr:
		t, err := a.resolveType(e.Type)
		if err != nil {
			return nil, err
		}
		arr, ok := t.(*types.ArrayType)
		if !ok {
			return nil, errorAt(e, diagnostic.NotAType, "Must be an array type")
		}
		return &ir.EmptyArray{Type: arr}, nil
	default:
		return nil, errorAt(e, diagnostic.TypeMismatch, "Unsupported expression %T", e)
	}
}

// identifier resolves a name. Type names are values only when asCallee is
// set and the type is a class, which makes the name a constructor.
func (a *analyzer) identifier(id *ast.Identifier, asCallee bool) (ir.Expr, error) {
	entity, ok := a.scopes.Lookup(id.Name)
	if !ok {
		return nil, errorAt(id, diagnostic.UnresolvedIdentifier, "Identifier %s not declared", id.Name)
	}
	switch entity := entity.(type) {
	case *ir.Variable:
		return &ir.VarRef{Var: entity}, nil
	case *ir.Function:
		return &ir.FuncRef{Fun: entity}, nil
	case *ir.TypeName:
		if class, isClass := entity.Type.(*types.ClassType); isClass && asCallee {
			return &ir.ClassRef{Class: class, Type: class.Constructor()}, nil
		}
		if asCallee {
			return nil, errorAt(id, diagnostic.NotCallable, "Call of non-function")
		}
		return nil, errorAt(id, diagnostic.TypeMismatch, "Expected a value, found type %s", types.Describe(entity.Type))
	}
	return nil, errorAt(id, diagnostic.UnresolvedIdentifier, "Identifier %s not declared", id.Name)
}

func (a *analyzer) binary(e *ast.BinaryExpr) (ir.Expr, error) {
	left, err := a.expression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := a.expression(e.Right)
	if err != nil {
		return nil, err
	}
	result := &ir.BinaryExpr{Op: e.Op, Left: left, Right: right, Type: types.Boolean}

	switch e.Op {
	case lexer.OR, lexer.AND:
		if err := expectBoolean(left, e.Left); err != nil {
			return nil, err
		}
		if err := expectBoolean(right, e.Right); err != nil {
			return nil, err
		}
		return result, nil
	case lexer.EQ, lexer.NEQ:
		if err := expectSameType(left, right, e); err != nil {
			return nil, err
		}
		return result, nil
	case lexer.LT, lexer.LEQ, lexer.GT, lexer.GEQ:
		if err := expectNumberOrString(left, e.Left); err != nil {
			return nil, err
		}
	case lexer.PLUS:
		if err := expectNumberOrString(left, e.Left); err != nil {
			return nil, err
		}
		result.Type = left.ExprType()
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.POWER:
		if err := expectNumber(left, e.Left); err != nil {
			return nil, err
		}
		result.Type = left.ExprType()
	default:
		return nil, errorAt(e, diagnostic.TypeMismatch, "Unknown operator %s", e.Op.Symbol())
	}

	if err := expectSameType(left, right, e); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *analyzer) unary(e *ast.UnaryExpr) (ir.Expr, error) {
	operand, err := a.expression(e.Operand)
	if err != nil {
		return nil, err
	}
	if e.Op == lexer.NOT {
		if err := expectBoolean(operand, e.Operand); err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: e.Op, Operand: operand, Type: types.Boolean}, nil
	}
	if err := expectNumber(operand, e.Operand); err != nil {
		return nil, err
	}
	return &ir.UnaryExpr{Op: e.Op, Operand: operand, Type: operand.ExprType()}, nil
}

func (a *analyzer) conditional(e *ast.ConditionalExpr) (ir.Expr, error) {
	test, err := a.expression(e.Test)
	if err != nil {
		return nil, err
	}
	if err := expectBoolean(test, e.Test); err != nil {
		return nil, err
	}
	consequent, err := a.expression(e.Consequent)
	if err != nil {
		return nil, err
	}
	alternate, err := a.expression(e.Alternate)
	if err != nil {
		return nil, err
	}
	if err := expectSameType(consequent, alternate, e); err != nil {
		return nil, err
	}
	return &ir.Conditional{
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
		Type:       consequent.ExprType(),
	}, nil
}

func (a *analyzer) call(e *ast.CallExpr) (*ir.CallExpr, error) {
	var callee ir.Expr
	var err error
	if id, ok := e.Callee.(*ast.Identifier); ok {
		callee, err = a.identifier(id, true)
	} else {
		callee, err = a.expression(e.Callee)
	}
	if err != nil {
		return nil, err
	}

	sig, ok := callee.ExprType().(*types.FunctionType)
	if !ok {
		return nil, errorAt(e.Callee, diagnostic.NotCallable, "Call of non-function")
	}
	if len(e.Args) != len(sig.Params) {
		return nil, errorAt(e, diagnostic.ArityMismatch, "%d argument(s) required but %d passed",
			len(sig.Params), len(e.Args))
	}

	args := make([]ir.Expr, len(e.Args))
	for i, arg := range e.Args {
		args[i], err = a.expression(arg)
		if err != nil {
			return nil, err
		}
		if err := expectAssignable(args[i], sig.Params[i], arg); err != nil {
			return nil, err
		}
	}
	return &ir.CallExpr{Callee: callee, Args: args, Type: sig.Return}, nil
}

func (a *analyzer) subscript(e *ast.IndexExpr) (ir.Expr, error) {
	array, err := a.expression(e.Object)
	if err != nil {
		return nil, err
	}
	arr, err := expectArray(array, e.Object)
	if err != nil {
		return nil, err
	}
	index, err := a.expression(e.Index)
	if err != nil {
		return nil, err
	}
	if err := expectInteger(index, e.Index); err != nil {
		return nil, err
	}
	return &ir.SubscriptExpr{Array: array, Index: index, Type: arr.Base}, nil
}

func (a *analyzer) member(e *ast.MemberExpr) (ir.Expr, error) {
	object, err := a.expression(e.Object)
	if err != nil {
		return nil, err
	}
	class, ok := object.ExprType().(*types.ClassType)
	if !ok {
		return nil, errorAt(e.Object, diagnostic.TypeMismatch, "Expected an object, found %s",
			types.Describe(object.ExprType()))
	}
	if f := class.Field(e.Name); f != nil {
		return &ir.MemberExpr{Object: object, Field: f, Type: f.Type}, nil
	}
	if m := class.Method(e.Name); m != nil {
		return &ir.MemberExpr{Object: object, Method: m, Type: m.Type}, nil
	}
	return nil, errorAt(e, diagnostic.NoSuchMember, "No such field")
}

func (a *analyzer) arrayLit(e *ast.ArrayLit) (ir.Expr, error) {
	if len(e.Elements) == 0 {
		return nil, errorAt(e, diagnostic.TypeMismatch, "Empty arrays need a type, as in [pump]()")
	}
	elements := make([]ir.Expr, len(e.Elements))
	for i, el := range e.Elements {
		var err error
		if elements[i], err = a.expression(el); err != nil {
			return nil, err
		}
		if !types.Equivalent(elements[i].ExprType(), elements[0].ExprType()) {
			return nil, errorAt(el, diagnostic.TypeMismatch, "Not all elements have the same type")
		}
	}
	return &ir.ArrayLit{Elements: elements, Type: &types.ArrayType{Base: elements[0].ExprType()}}, nil
}
