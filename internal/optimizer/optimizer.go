// Package optimizer rewrites analyzed IR bottom-up: constant folding,
// algebraic identities, and removal of dead branches, dead loops and
// self-assignments. It never fails and never mutates its input.
package optimizer

import "github.com/lhaig/peak/internal/ir"

// Optimize returns an optimized copy of prog
func Optimize(prog *ir.Program) *ir.Program {
	return &ir.Program{Statements: statements(prog.Statements)}
}

// statements optimizes a statement list. A statement may rewrite to zero or
// more statements; the results are spliced in place.
func statements(list []ir.Stmt) []ir.Stmt {
	out := []ir.Stmt{}
	for _, s := range list {
		out = append(out, statement(s)...)
	}
	return out
}

func statement(stmt ir.Stmt) []ir.Stmt {
	switch s := stmt.(type) {
	case *ir.VarDecl:
		return one(&ir.VarDecl{Var: s.Var, Init: expression(s.Init)})

	case *ir.FuncDecl:
		return one(&ir.FuncDecl{Fun: s.Fun, Params: s.Params, Body: statements(s.Body)})

	case *ir.ClassDecl:
		decl := &ir.ClassDecl{Class: s.Class}
		for _, m := range s.Methods {
			decl.Methods = append(decl.Methods, &ir.MethodDecl{
				Method: m.Method,
				Params: m.Params,
				Body:   statements(m.Body),
			})
		}
		return one(decl)

	case *ir.Assignment:
		target, source := expression(s.Target), expression(s.Source)
		if ir.SameEntity(target, source) {
			return nil
		}
		return one(&ir.Assignment{Target: target, Source: source})

	case *ir.Increment:
		return one(&ir.Increment{Target: expression(s.Target)})

	case *ir.Decrement:
		return one(&ir.Decrement{Target: expression(s.Target)})

	case *ir.IfStmt:
		test := expression(s.Test)
		if b, ok := test.(*ir.BoolLit); ok {
			if b.Value {
				return statements(s.Consequent)
			}
			return statements(s.Alternate)
		}
		return one(&ir.IfStmt{Test: test, Consequent: statements(s.Consequent), Alternate: statements(s.Alternate)})

	case *ir.ShortIfStmt:
		test := expression(s.Test)
		if b, ok := test.(*ir.BoolLit); ok {
			if b.Value {
				return statements(s.Consequent)
			}
			return nil
		}
		return one(&ir.ShortIfStmt{Test: test, Consequent: statements(s.Consequent)})

	case *ir.WhileStmt:
		test := expression(s.Test)
		if b, ok := test.(*ir.BoolLit); ok && !b.Value {
			return nil
		}
		return one(&ir.WhileStmt{Test: test, Body: statements(s.Body)})

	case *ir.ForStmt:
		collection := expression(s.Collection)
		if _, empty := collection.(*ir.EmptyArray); empty {
			return nil
		}
		return one(&ir.ForStmt{Iterator: s.Iterator, Collection: collection, Body: statements(s.Body)})

	case *ir.ReturnStmt:
		if s.Value == nil {
			return one(s)
		}
		return one(&ir.ReturnStmt{Value: expression(s.Value)})

	case *ir.PrintStmt:
		return one(&ir.PrintStmt{Value: expression(s.Value)})

	case *ir.CallStmt:
		return one(&ir.CallStmt{Call: call(s.Call)})
	}
	return one(stmt)
}

func one(s ir.Stmt) []ir.Stmt {
	return []ir.Stmt{s}
}
