package ir

import (
	"fmt"
	"strings"

	"github.com/lhaig/peak/internal/types"
)

// Print renders an analyzed program as an indented tree. Every expression
// line ends with its type in angle brackets.
func Print(prog *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	printStmts(&sb, prog.Statements, 1)
	return sb.String()
}

func printStmts(sb *strings.Builder, stmts []Stmt, indent int) {
	for _, s := range stmts {
		printStmt(sb, s, indent)
	}
}

func line(sb *strings.Builder, indent int, format string, args ...interface{}) {
	sb.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(sb, format, args...)
	sb.WriteByte('\n')
}

func printStmt(sb *strings.Builder, stmt Stmt, indent int) {
	switch s := stmt.(type) {
	case *VarDecl:
		kind := "let"
		if s.Var.ReadOnly {
			kind = "const"
		}
		line(sb, indent, "VarDecl: %s %s <%s>", kind, s.Var.Name, s.Var.Type)
		printExpr(sb, s.Init, indent+1)

	case *FuncDecl:
		line(sb, indent, "Function: %s <%s>", s.Fun.Name, s.Fun.Type)
		printParams(sb, s.Params, indent+1)
		printStmts(sb, s.Body, indent+1)

	case *ClassDecl:
		line(sb, indent, "Class: %s", s.Class.Name)
		for _, f := range s.Class.Fields {
			line(sb, indent+1, "Field: %s <%s>", f.Name, f.Type)
		}
		for _, m := range s.Methods {
			line(sb, indent+1, "Method: %s <%s>", m.Method.Name, m.Method.Type)
			printParams(sb, m.Params, indent+2)
			printStmts(sb, m.Body, indent+2)
		}

	case *Assignment:
		line(sb, indent, "Assignment")
		printExpr(sb, s.Target, indent+1)
		printExpr(sb, s.Source, indent+1)

	case *Increment:
		line(sb, indent, "Increment")
		printExpr(sb, s.Target, indent+1)

	case *Decrement:
		line(sb, indent, "Decrement")
		printExpr(sb, s.Target, indent+1)

	case *IfStmt:
		line(sb, indent, "IfStmt")
		printExpr(sb, s.Test, indent+1)
		line(sb, indent+1, "Then:")
		printStmts(sb, s.Consequent, indent+2)
		line(sb, indent+1, "Else:")
		printStmts(sb, s.Alternate, indent+2)

	case *ShortIfStmt:
		line(sb, indent, "ShortIfStmt")
		printExpr(sb, s.Test, indent+1)
		line(sb, indent+1, "Then:")
		printStmts(sb, s.Consequent, indent+2)

	case *WhileStmt:
		line(sb, indent, "WhileStmt")
		printExpr(sb, s.Test, indent+1)
		printStmts(sb, s.Body, indent+1)

	case *ForStmt:
		line(sb, indent, "ForStmt: %s <%s>", s.Iterator.Name, s.Iterator.Type)
		printExpr(sb, s.Collection, indent+1)
		printStmts(sb, s.Body, indent+1)

	case *BreakStmt:
		line(sb, indent, "BreakStmt")

	case *ReturnStmt:
		line(sb, indent, "ReturnStmt")
		if s.Value != nil {
			printExpr(sb, s.Value, indent+1)
		}

	case *PrintStmt:
		line(sb, indent, "PrintStmt")
		printExpr(sb, s.Value, indent+1)

	case *CallStmt:
		line(sb, indent, "CallStmt")
		printExpr(sb, s.Call, indent+1)

	default:
		line(sb, indent, "Unknown statement: %T", stmt)
	}
}

func printParams(sb *strings.Builder, params []*Variable, indent int) {
	for _, p := range params {
		line(sb, indent, "Param: %s <%s>", p.Name, p.Type)
	}
}

func printExpr(sb *strings.Builder, expr Expr, indent int) {
	if expr == nil {
		line(sb, indent, "<nil>")
		return
	}
	typ := types.Describe(expr.ExprType())

	switch e := expr.(type) {
	case *BinaryExpr:
		line(sb, indent, "BinaryExpr: %s <%s>", e.Op.Symbol(), typ)
		printExpr(sb, e.Left, indent+1)
		printExpr(sb, e.Right, indent+1)
	case *UnaryExpr:
		line(sb, indent, "UnaryExpr: %s <%s>", e.Op.Symbol(), typ)
		printExpr(sb, e.Operand, indent+1)
	case *Conditional:
		line(sb, indent, "Conditional <%s>", typ)
		printExpr(sb, e.Test, indent+1)
		printExpr(sb, e.Consequent, indent+1)
		printExpr(sb, e.Alternate, indent+1)
	case *CallExpr:
		line(sb, indent, "Call <%s>", typ)
		printExpr(sb, e.Callee, indent+1)
		for _, a := range e.Args {
			printExpr(sb, a, indent+1)
		}
	case *SubscriptExpr:
		line(sb, indent, "Subscript <%s>", typ)
		printExpr(sb, e.Array, indent+1)
		printExpr(sb, e.Index, indent+1)
	case *MemberExpr:
		name := ""
		if e.Field != nil {
			name = e.Field.Name
		} else if e.Method != nil {
			name = e.Method.Name
		}
		line(sb, indent, "Member: %s <%s>", name, typ)
		printExpr(sb, e.Object, indent+1)
	case *ArrayLit:
		line(sb, indent, "ArrayLit <%s>", typ)
		for _, el := range e.Elements {
			printExpr(sb, el, indent+1)
		}
	case *EmptyArray:
		line(sb, indent, "EmptyArray <%s>", typ)
	case *IntLit:
		line(sb, indent, "Int: %d", e.Value)
	case *FloatLit:
		line(sb, indent, "Float: %g", e.Value)
	case *StringLit:
		line(sb, indent, "String: %q", e.Value)
	case *BoolLit:
		line(sb, indent, "Bool: %t", e.Value)
	case *VarRef:
		line(sb, indent, "Var: %s <%s>", e.Var.Name, typ)
	case *FuncRef:
		line(sb, indent, "Func: %s <%s>", e.Fun.Name, typ)
	case *ClassRef:
		line(sb, indent, "Class: %s <%s>", e.Class.Name, typ)
	case *SelfExpr:
		line(sb, indent, "Shot <%s>", typ)
	default:
		line(sb, indent, "Unknown expression: %T", expr)
	}
}
