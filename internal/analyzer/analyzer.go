// Package analyzer performs semantic analysis of a Peak parse tree. It walks
// the tree once, resolving names through a scope chain and checking every
// static rule, and produces the typed IR. Analysis stops at the first error.
package analyzer

import (
	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/diagnostic"
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/lexer"
	"github.com/lhaig/peak/internal/scope"
	"github.com/lhaig/peak/internal/types"
)

// analyzer holds the state of one analysis run
type analyzer struct {
	scopes *scope.Chain
}

// Analyze checks prog and returns its typed IR. The returned error, when
// non-nil, is a *diagnostic.SemanticError and no IR is returned.
func Analyze(prog *ast.Program) (*ir.Program, error) {
	a := &analyzer{scopes: scope.New()}
	stmts, err := a.statements(prog.Statements)
	if err != nil {
		return nil, err
	}
	return &ir.Program{Statements: stmts}, nil
}

func (a *analyzer) statements(list []ast.Statement) ([]ir.Stmt, error) {
	var out []ir.Stmt
	for _, s := range list {
		stmt, err := a.statement(s)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// block analyzes a braced body in a fresh child scope
func (a *analyzer) block(b *ast.Block, o scope.Overrides) ([]ir.Stmt, error) {
	a.scopes.Push(o)
	defer a.scopes.Pop()
	return a.statements(b.Statements)
}

func (a *analyzer) statement(s ast.Statement) (ir.Stmt, error) {
	switch s := s.(type) {
	case *ast.VarDecl:
		return a.varDecl(s)
	case *ast.FuncDecl:
		return a.funcDecl(s)
	case *ast.ClassDecl:
		return a.classDecl(s)
	case *ast.AssignStmt:
		return a.assignment(s)
	case *ast.BumpStmt:
		return a.bump(s)
	case *ast.IfStmt:
		return a.ifStmt(s)
	case *ast.WhileStmt:
		return a.whileStmt(s)
	case *ast.ForStmt:
		return a.forStmt(s)
	case *ast.BreakStmt:
		if !a.scopes.InLoop() {
			return nil, errorAt(s, diagnostic.InvalidControlFlow, "Break can only appear in a loop")
		}
		return &ir.BreakStmt{}, nil
	case *ast.ReturnStmt:
		return a.returnStmt(s)
	case *ast.PrintStmt:
		value, err := a.expression(s.Value)
		if err != nil {
			return nil, err
		}
		return &ir.PrintStmt{Value: value}, nil
	case *ast.ExprStmt:
		call, ok := s.Expr.(*ast.CallExpr)
		if !ok {
			return nil, errorAt(s, diagnostic.TypeMismatch, "Only calls can be used as statements")
		}
		c, err := a.call(call)
		if err != nil {
			return nil, err
		}
		return &ir.CallStmt{Call: c}, nil
	default:
		return nil, errorAt(s, diagnostic.TypeMismatch, "Unsupported statement %T", s)
	}
}

func (a *analyzer) varDecl(s *ast.VarDecl) (ir.Stmt, error) {
	// The initializer is analyzed first so `let x = x` refers to an outer x.
	init, err := a.expression(s.Value)
	if err != nil {
		return nil, err
	}
	v := &ir.Variable{Name: s.Name, ReadOnly: s.ReadOnly, Type: init.ExprType()}
	if err := a.declare(s.Name, v, s); err != nil {
		return nil, err
	}
	return &ir.VarDecl{Var: v, Init: init}, nil
}

func (a *analyzer) assignment(s *ast.AssignStmt) (ir.Stmt, error) {
	target, err := a.target(s.Target)
	if err != nil {
		return nil, err
	}
	source, err := a.expression(s.Value)
	if err != nil {
		return nil, err
	}
	if err := expectAssignable(source, target.ExprType(), s.Value); err != nil {
		return nil, err
	}
	return &ir.Assignment{Target: target, Source: source}, nil
}

func (a *analyzer) bump(s *ast.BumpStmt) (ir.Stmt, error) {
	target, err := a.target(s.Target)
	if err != nil {
		return nil, err
	}
	if err := expectInteger(target, s.Target); err != nil {
		return nil, err
	}
	if s.Op == lexer.DECREMENT {
		return &ir.Decrement{Target: target}, nil
	}
	return &ir.Increment{Target: target}, nil
}

// target analyzes the left side of an assignment or bump. Read-only
// bindings are rejected here, before any type is compared.
func (a *analyzer) target(e ast.Expression) (ir.Expr, error) {
	t, err := a.expression(e)
	if err != nil {
		return nil, err
	}
	switch t := t.(type) {
	case *ir.VarRef:
		if t.Var.ReadOnly {
			return nil, errorAt(e, diagnostic.TypeMismatch, "Cannot assign to constant %s", t.Var.Name)
		}
	case *ir.FuncRef:
		if t.Fun.Builtin {
			return nil, errorAt(e, diagnostic.TypeMismatch, "Cannot assign to constant %s", t.Fun.Name)
		}
	case *ir.SubscriptExpr:
	case *ir.MemberExpr:
		if t.Method != nil {
			return nil, errorAt(e, diagnostic.TypeMismatch, "Cannot assign to method %s", t.Method.Name)
		}
	default:
		return nil, errorAt(e, diagnostic.TypeMismatch, "Cannot assign to this expression")
	}
	return t, nil
}

func (a *analyzer) ifStmt(s *ast.IfStmt) (ir.Stmt, error) {
	test, err := a.expression(s.Test)
	if err != nil {
		return nil, err
	}
	if err := expectBoolean(test, s.Test); err != nil {
		return nil, err
	}
	consequent, err := a.block(s.Then, scope.Overrides{})
	if err != nil {
		return nil, err
	}

	switch alt := s.Else.(type) {
	case nil:
		return &ir.ShortIfStmt{Test: test, Consequent: consequent}, nil
	case *ast.Block:
		alternate, err := a.block(alt, scope.Overrides{})
		if err != nil {
			return nil, err
		}
		return &ir.IfStmt{Test: test, Consequent: consequent, Alternate: alternate}, nil
	default:
		nested, err := a.statement(alt)
		if err != nil {
			return nil, err
		}
		return &ir.IfStmt{Test: test, Consequent: consequent, Alternate: []ir.Stmt{nested}}, nil
	}
}

func (a *analyzer) whileStmt(s *ast.WhileStmt) (ir.Stmt, error) {
	test, err := a.expression(s.Test)
	if err != nil {
		return nil, err
	}
	if err := expectBoolean(test, s.Test); err != nil {
		return nil, err
	}
	body, err := a.block(s.Body, scope.Loop())
	if err != nil {
		return nil, err
	}
	return &ir.WhileStmt{Test: test, Body: body}, nil
}

func (a *analyzer) forStmt(s *ast.ForStmt) (ir.Stmt, error) {
	collection, err := a.expression(s.Collection)
	if err != nil {
		return nil, err
	}
	arr, err := expectArray(collection, s.Collection)
	if err != nil {
		return nil, err
	}
	iterator := &ir.Variable{Name: s.Variable, ReadOnly: true, Type: arr.Base}

	// The iterator shares the body's scope.
	a.scopes.Push(scope.Loop())
	defer a.scopes.Pop()
	if err := a.declare(s.Variable, iterator, s); err != nil {
		return nil, err
	}
	body, err := a.statements(s.Body.Statements)
	if err != nil {
		return nil, err
	}
	return &ir.ForStmt{Iterator: iterator, Collection: collection, Body: body}, nil
}

func (a *analyzer) returnStmt(s *ast.ReturnStmt) (ir.Stmt, error) {
	sig := a.scopes.Function()
	if sig == nil {
		return nil, errorAt(s, diagnostic.InvalidControlFlow, "Return can only appear in a function")
	}
	if sig.Return == types.None {
		if s.Value != nil {
			return nil, errorAt(s, diagnostic.InvalidControlFlow, "Cannot return a value")
		}
		return &ir.ReturnStmt{}, nil
	}
	if s.Value == nil {
		return nil, errorAt(s, diagnostic.InvalidControlFlow, "Something should be returned")
	}
	value, err := a.expression(s.Value)
	if err != nil {
		return nil, err
	}
	if err := expectAssignable(value, sig.Return, s.Value); err != nil {
		return nil, err
	}
	return &ir.ReturnStmt{Value: value}, nil
}
