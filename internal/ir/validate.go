package ir

import (
	"fmt"

	"github.com/lhaig/peak/internal/types"
)

// Validate checks an analyzed program for structural correctness and returns
// a list of error messages. An empty slice indicates the program is valid:
// every node is present and every expression carries a type.
func Validate(prog *Program) []string {
	if prog == nil {
		return []string{"nil program"}
	}
	return validateStmts(prog.Statements, "program")
}

// validateStmts checks statements for nil expressions and other invariants.
func validateStmts(stmts []Stmt, context string) []string {
	var errors []string
	for i, stmt := range stmts {
		errors = append(errors, validateStmt(stmt, fmt.Sprintf("%s statement %d", context, i))...)
	}
	return errors
}

// validateStmt checks a single statement.
func validateStmt(stmt Stmt, context string) []string {
	var errors []string

	switch s := stmt.(type) {
	case *VarDecl:
		if s.Var == nil || s.Var.Type == nil {
			errors = append(errors, fmt.Sprintf("%s: VarDecl has untyped variable", context))
		}
		errors = append(errors, validateExpr(s.Init, context)...)

	case *FuncDecl:
		if s.Fun == nil || s.Fun.Type == nil {
			errors = append(errors, fmt.Sprintf("%s: FuncDecl has untyped function", context))
			break
		}
		errors = append(errors, validateParams(s.Params, s.Fun.Type, fmt.Sprintf("%s function %s", context, s.Fun.Name))...)
		errors = append(errors, validateStmts(s.Body, fmt.Sprintf("function %s", s.Fun.Name))...)

	case *ClassDecl:
		if s.Class == nil {
			errors = append(errors, fmt.Sprintf("%s: ClassDecl has nil Class", context))
			break
		}
		for _, f := range s.Class.Fields {
			if f.Type == nil {
				errors = append(errors, fmt.Sprintf("%s: class %s field %s has nil Type", context, s.Class.Name, f.Name))
			}
		}
		if len(s.Methods) != len(s.Class.Methods) {
			errors = append(errors, fmt.Sprintf("%s: class %s declares %d methods but has %d bodies",
				context, s.Class.Name, len(s.Class.Methods), len(s.Methods)))
		}
		for _, m := range s.Methods {
			if m.Method == nil || m.Method.Type == nil {
				errors = append(errors, fmt.Sprintf("%s: class %s has an untyped method", context, s.Class.Name))
				continue
			}
			ctx := fmt.Sprintf("class %s method %s", s.Class.Name, m.Method.Name)
			errors = append(errors, validateParams(m.Params, m.Method.Type, ctx)...)
			errors = append(errors, validateStmts(m.Body, ctx)...)
		}

	case *Assignment:
		errors = append(errors, validateExpr(s.Target, context)...)
		errors = append(errors, validateExpr(s.Source, context)...)

	case *Increment:
		errors = append(errors, validateExpr(s.Target, context)...)

	case *Decrement:
		errors = append(errors, validateExpr(s.Target, context)...)

	case *IfStmt:
		errors = append(errors, validateExpr(s.Test, context)...)
		errors = append(errors, validateStmts(s.Consequent, fmt.Sprintf("%s (then)", context))...)
		errors = append(errors, validateStmts(s.Alternate, fmt.Sprintf("%s (else)", context))...)

	case *ShortIfStmt:
		errors = append(errors, validateExpr(s.Test, context)...)
		errors = append(errors, validateStmts(s.Consequent, fmt.Sprintf("%s (then)", context))...)

	case *WhileStmt:
		errors = append(errors, validateExpr(s.Test, context)...)
		errors = append(errors, validateStmts(s.Body, fmt.Sprintf("%s (while body)", context))...)

	case *ForStmt:
		if s.Iterator == nil || s.Iterator.Type == nil {
			errors = append(errors, fmt.Sprintf("%s: ForStmt has untyped iterator", context))
		}
		errors = append(errors, validateExpr(s.Collection, context)...)
		errors = append(errors, validateStmts(s.Body, fmt.Sprintf("%s (for body)", context))...)

	case *ReturnStmt:
		// ReturnStmt.Value can be nil for a short return
		if s.Value != nil {
			errors = append(errors, validateExpr(s.Value, context)...)
		}

	case *PrintStmt:
		errors = append(errors, validateExpr(s.Value, context)...)

	case *CallStmt:
		if s.Call == nil {
			errors = append(errors, fmt.Sprintf("%s: CallStmt has nil Call", context))
		} else {
			errors = append(errors, validateExpr(s.Call, context)...)
		}

	case *BreakStmt:
		// No validation needed

	default:
		errors = append(errors, fmt.Sprintf("%s: unknown statement type %T", context, stmt))
	}

	return errors
}

// validateParams checks that the parameter variables match the signature.
func validateParams(params []*Variable, sig *types.FunctionType, context string) []string {
	var errors []string
	if len(params) != len(sig.Params) {
		return append(errors, fmt.Sprintf("%s: %d parameters but signature has %d", context, len(params), len(sig.Params)))
	}
	for i, p := range params {
		if p == nil || p.Type == nil {
			errors = append(errors, fmt.Sprintf("%s: parameter %d is untyped", context, i))
		}
	}
	return errors
}

// validateExpr checks an expression for validity.
func validateExpr(expr Expr, context string) []string {
	var errors []string

	if expr == nil {
		errors = append(errors, fmt.Sprintf("%s: nil expression", context))
		return errors
	}

	untyped := func(name string) {
		errors = append(errors, fmt.Sprintf("%s: %s has nil Type", context, name))
	}

	switch e := expr.(type) {
	case *BinaryExpr:
		if e.Type == nil {
			untyped("BinaryExpr")
		}
		errors = append(errors, validateExpr(e.Left, context)...)
		errors = append(errors, validateExpr(e.Right, context)...)

	case *UnaryExpr:
		if e.Type == nil {
			untyped("UnaryExpr")
		}
		errors = append(errors, validateExpr(e.Operand, context)...)

	case *Conditional:
		if e.Type == nil {
			untyped("Conditional")
		}
		errors = append(errors, validateExpr(e.Test, context)...)
		errors = append(errors, validateExpr(e.Consequent, context)...)
		errors = append(errors, validateExpr(e.Alternate, context)...)

	case *CallExpr:
		if e.Type == nil {
			untyped("CallExpr")
		}
		errors = append(errors, validateExpr(e.Callee, context)...)
		for i, arg := range e.Args {
			errors = append(errors, validateExpr(arg, fmt.Sprintf("%s (arg %d)", context, i))...)
		}

	case *SubscriptExpr:
		if e.Type == nil {
			untyped("SubscriptExpr")
		}
		errors = append(errors, validateExpr(e.Array, context)...)
		errors = append(errors, validateExpr(e.Index, context)...)

	case *MemberExpr:
		if e.Type == nil {
			untyped("MemberExpr")
		}
		if (e.Field == nil) == (e.Method == nil) {
			errors = append(errors, fmt.Sprintf("%s: MemberExpr must select exactly one field or method", context))
		}
		errors = append(errors, validateExpr(e.Object, context)...)

	case *ArrayLit:
		if e.Type == nil {
			untyped("ArrayLit")
		}
		if len(e.Elements) == 0 {
			errors = append(errors, fmt.Sprintf("%s: ArrayLit has no elements", context))
		}
		for i, elem := range e.Elements {
			errors = append(errors, validateExpr(elem, fmt.Sprintf("%s (element %d)", context, i))...)
		}

	case *EmptyArray:
		if e.Type == nil {
			untyped("EmptyArray")
		}

	case *VarRef:
		if e.Var == nil || e.Var.Type == nil {
			errors = append(errors, fmt.Sprintf("%s: VarRef has untyped variable", context))
		}

	case *FuncRef:
		if e.Fun == nil || e.Fun.Type == nil {
			errors = append(errors, fmt.Sprintf("%s: FuncRef has untyped function", context))
		}

	case *ClassRef:
		if e.Class == nil || e.Type == nil {
			errors = append(errors, fmt.Sprintf("%s: ClassRef has nil Class or Type", context))
		}

	case *SelfExpr:
		if e.Class == nil {
			errors = append(errors, fmt.Sprintf("%s: SelfExpr has nil Class", context))
		}

	case *IntLit, *FloatLit, *StringLit, *BoolLit:
		// No validation needed for leaf nodes

	default:
		errors = append(errors, fmt.Sprintf("%s: unknown expression type %T", context, expr))
	}

	return errors
}
