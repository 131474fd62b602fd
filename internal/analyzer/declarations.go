package analyzer

import (
	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/diagnostic"
	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/scope"
	"github.com/lhaig/peak/internal/types"
)

// signature resolves the parameter and return annotations of a function.
// An omitted return type means none.
func (a *analyzer) signature(params []*ast.Param, ret ast.TypeExpr) (*types.FunctionType, error) {
	sig := &types.FunctionType{Return: types.None}
	for _, p := range params {
		t, err := a.resolveType(p.Type)
		if err != nil {
			return nil, err
		}
		sig.Params = append(sig.Params, t)
	}
	if ret != nil {
		t, err := a.resolveType(ret)
		if err != nil {
			return nil, err
		}
		sig.Return = t
	}
	return sig, nil
}

// body binds the parameters in a new function scope and analyzes the block
func (a *analyzer) body(params []*ast.Param, sig *types.FunctionType, o scope.Overrides, b *ast.Block) ([]*ir.Variable, []ir.Stmt, error) {
	a.scopes.Push(o)
	defer a.scopes.Pop()

	vars := make([]*ir.Variable, len(params))
	for i, p := range params {
		vars[i] = &ir.Variable{Name: p.Name, Type: sig.Params[i]}
		if err := a.declare(p.Name, vars[i], p); err != nil {
			return nil, nil, err
		}
	}
	stmts, err := a.statements(b.Statements)
	if err != nil {
		return nil, nil, err
	}
	return vars, stmts, nil
}

func (a *analyzer) funcDecl(s *ast.FuncDecl) (ir.Stmt, error) {
	fun := &ir.Function{Name: s.Name}
	// Bound before the signature is resolved so the body can recurse.
	if err := a.declare(s.Name, fun, s); err != nil {
		return nil, err
	}
	sig, err := a.signature(s.Params, s.ReturnType)
	if err != nil {
		return nil, err
	}
	fun.Type = sig

	params, body, err := a.body(s.Params, sig, scope.Function(sig), s.Body)
	if err != nil {
		return nil, err
	}
	return &ir.FuncDecl{Fun: fun, Params: params, Body: body}, nil
}

// classDecl binds the class, resolves every member signature, and only then
// analyzes method bodies, so methods can refer to each other through shot.
func (a *analyzer) classDecl(s *ast.ClassDecl) (ir.Stmt, error) {
	class := &types.ClassType{Name: s.Name}
	if err := a.declare(s.Name, &ir.TypeName{Name: s.Name, Type: class}, s); err != nil {
		return nil, err
	}

	members := make(map[string]bool)
	member := func(name string, at ast.Node) error {
		if members[name] {
			return errorAt(at, diagnostic.DuplicateDeclaration, "Identifier %s already declared", name)
		}
		members[name] = true
		return nil
	}

	for _, f := range s.Fields {
		if err := member(f.Name, f); err != nil {
			return nil, err
		}
		t, err := a.resolveType(f.Type)
		if err != nil {
			return nil, err
		}
		class.Fields = append(class.Fields, &types.Field{Name: f.Name, Type: t})
	}
	for _, m := range s.Methods {
		if err := member(m.Name, m); err != nil {
			return nil, err
		}
		sig, err := a.signature(m.Params, m.ReturnType)
		if err != nil {
			return nil, err
		}
		class.Methods = append(class.Methods, &types.Method{Name: m.Name, Type: sig})
	}

	decl := &ir.ClassDecl{Class: class}
	for i, m := range s.Methods {
		method := class.Methods[i]
		params, body, err := a.body(m.Params, method.Type, scope.Method(class, method.Type), m.Body)
		if err != nil {
			return nil, err
		}
		decl.Methods = append(decl.Methods, &ir.MethodDecl{Method: method, Params: params, Body: body})
	}
	return decl, nil
}

// resolveType turns an annotation into a type. Named types must resolve to
// a type entity.
func (a *analyzer) resolveType(t ast.TypeExpr) (types.Type, error) {
	switch t := t.(type) {
	case *ast.NamedType:
		entity, ok := a.scopes.Lookup(t.Name)
		if !ok {
			return nil, errorAt(t, diagnostic.UnresolvedIdentifier, "Identifier %s not declared", t.Name)
		}
		tn, ok := entity.(*ir.TypeName)
		if !ok {
			return nil, errorAt(t, diagnostic.NotAType, "Type expected")
		}
		return tn.Type, nil
	case *ast.ArrayTypeExpr:
		base, err := a.resolveType(t.Base)
		if err != nil {
			return nil, err
		}
		return &types.ArrayType{Base: base}, nil
	case *ast.OptionalTypeExpr:
		base, err := a.resolveType(t.Base)
		if err != nil {
			return nil, err
		}
		return &types.OptionalType{Base: base}, nil
	case *ast.FunctionTypeExpr:
		fn := &types.FunctionType{}
		for _, p := range t.Params {
			pt, err := a.resolveType(p)
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, pt)
		}
		ret, err := a.resolveType(t.Return)
		if err != nil {
			return nil, err
		}
		fn.Return = ret
		return fn, nil
	default:
		return nil, diagnostic.Errorf(diagnostic.NotAType, 0, 0, "Type expected")
	}
}
