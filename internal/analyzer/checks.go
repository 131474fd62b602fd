package analyzer

import (
	"errors"

	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/diagnostic"
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/scope"
	"github.com/lhaig/peak/internal/types"
)

// errorAt builds a semantic error located at the given node
func errorAt(at ast.Node, kind diagnostic.Kind, format string, args ...interface{}) error {
	line, col := at.Pos()
	return diagnostic.Errorf(kind, line, col, format, args...)
}

// declare binds name in the current scope, turning a duplicate into a
// located DuplicateDeclaration error.
func (a *analyzer) declare(name string, entity ir.Entity, at ast.Node) error {
	err := a.scopes.Add(name, entity)
	var dup *scope.DuplicateError
	if errors.As(err, &dup) {
		return errorAt(at, diagnostic.DuplicateDeclaration, "%s", dup.Error())
	}
	return err
}

func expectBoolean(e ir.Expr, at ast.Node) error {
	if e.ExprType() != types.Boolean {
		return errorAt(at, diagnostic.TypeMismatch, "Expected a boolean")
	}
	return nil
}

func expectInteger(e ir.Expr, at ast.Node) error {
	if e.ExprType() != types.Int {
		return errorAt(at, diagnostic.TypeMismatch, "Expected an integer")
	}
	return nil
}

func expectNumber(e ir.Expr, at ast.Node) error {
	if !types.IsNumeric(e.ExprType()) {
		return errorAt(at, diagnostic.TypeMismatch, "Expected a number")
	}
	return nil
}

func expectNumberOrString(e ir.Expr, at ast.Node) error {
	t := e.ExprType()
	if !types.IsNumeric(t) && t != types.String {
		return errorAt(at, diagnostic.TypeMismatch, "Expected a number or string")
	}
	return nil
}

func expectArray(e ir.Expr, at ast.Node) (*types.ArrayType, error) {
	arr, ok := e.ExprType().(*types.ArrayType)
	if !ok {
		return nil, errorAt(at, diagnostic.NotIndexable, "Expected an array")
	}
	return arr, nil
}

func expectSameType(e1, e2 ir.Expr, at ast.Node) error {
	if !types.Equivalent(e1.ExprType(), e2.ExprType()) {
		return errorAt(at, diagnostic.TypeMismatch, "Operands do not have the same type")
	}
	return nil
}

func expectAssignable(e ir.Expr, to types.Type, at ast.Node) error {
	if !types.Assignable(e.ExprType(), to) {
		return errorAt(at, diagnostic.TypeMismatch, "Cannot assign a %s to a %s",
			types.Describe(e.ExprType()), types.Describe(to))
	}
	return nil
}
