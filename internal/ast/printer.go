package ast

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

// TypeString renders a type annotation the way it was written
func TypeString(t TypeExpr) string {
	switch n := t.(type) {
	case nil:
		return "none"
	case *NamedType:
		return n.Name
	case *ArrayTypeExpr:
		return "[" + TypeString(n.Base) + "]"
	case *OptionalTypeExpr:
		return TypeString(n.Base) + "?"
	case *FunctionTypeExpr:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = TypeString(p)
		}
		return "(" + strings.Join(params, ",") + ")->" + TypeString(n.Return)
	default:
		return fmt.Sprintf("%T", t)
	}
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Program:
		sb.WriteString(prefix + "Program\n")
		for _, stmt := range n.Statements {
			printNode(sb, stmt, indent+1)
		}

	case *Block:
		for _, stmt := range n.Statements {
			printNode(sb, stmt, indent)
		}

	case *VarDecl:
		kind := "let"
		if n.ReadOnly {
			kind = "const"
		}
		sb.WriteString(fmt.Sprintf("%sVarDecl: %s %s\n", prefix, kind, n.Name))
		printNode(sb, n.Value, indent+1)

	case *FuncDecl:
		sb.WriteString(fmt.Sprintf("%sFunction: %s\n", prefix, n.Name))
		if len(n.Params) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Params:\n", prefix))
			for _, p := range n.Params {
				printNode(sb, p, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		}
		if n.ReturnType != nil {
			sb.WriteString(fmt.Sprintf("%s  Returns: %s\n", prefix, TypeString(n.ReturnType)))
		}
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printNode(sb, n.Body, indent+2)

	case *Param:
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, n.Name, TypeString(n.Type)))

	case *ClassDecl:
		sb.WriteString(fmt.Sprintf("%sClass: %s\n", prefix, n.Name))
		if len(n.Fields) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Fields:\n", prefix))
			for _, f := range n.Fields {
				printNode(sb, f, indent+2)
			}
		}
		if len(n.Methods) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Methods:\n", prefix))
			for _, m := range n.Methods {
				printNode(sb, m, indent+2)
			}
		}

	case *FieldDecl:
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, n.Name, TypeString(n.Type)))

	case *AssignStmt:
		sb.WriteString(fmt.Sprintf("%sAssignStmt\n", prefix))
		sb.WriteString(fmt.Sprintf("%s  Target:\n", prefix))
		printNode(sb, n.Target, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Value:\n", prefix))
		printNode(sb, n.Value, indent+2)

	case *BumpStmt:
		sb.WriteString(fmt.Sprintf("%sBumpStmt: %s\n", prefix, n.Op))
		printNode(sb, n.Target, indent+1)

	case *IfStmt:
		sb.WriteString(fmt.Sprintf("%sIfStmt\n", prefix))
		sb.WriteString(fmt.Sprintf("%s  Test:\n", prefix))
		printNode(sb, n.Test, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Then:\n", prefix))
		printNode(sb, n.Then, indent+2)
		if n.Else != nil {
			sb.WriteString(fmt.Sprintf("%s  Else:\n", prefix))
			printNode(sb, n.Else, indent+2)
		}

	case *WhileStmt:
		sb.WriteString(fmt.Sprintf("%sWhileStmt\n", prefix))
		sb.WriteString(fmt.Sprintf("%s  Test:\n", prefix))
		printNode(sb, n.Test, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printNode(sb, n.Body, indent+2)

	case *ForStmt:
		sb.WriteString(fmt.Sprintf("%sForStmt: %s\n", prefix, n.Variable))
		sb.WriteString(fmt.Sprintf("%s  Collection:\n", prefix))
		printNode(sb, n.Collection, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printNode(sb, n.Body, indent+2)

	case *BreakStmt:
		sb.WriteString(fmt.Sprintf("%sBreakStmt\n", prefix))

	case *ReturnStmt:
		sb.WriteString(fmt.Sprintf("%sReturnStmt\n", prefix))
		if n.Value != nil {
			sb.WriteString(fmt.Sprintf("%s  Value:\n", prefix))
			printNode(sb, n.Value, indent+2)
		}

	case *PrintStmt:
		sb.WriteString(fmt.Sprintf("%sPrintStmt\n", prefix))
		printNode(sb, n.Value, indent+1)

	case *ExprStmt:
		sb.WriteString(fmt.Sprintf("%sExprStmt\n", prefix))
		printNode(sb, n.Expr, indent+1)

	case *ConditionalExpr:
		sb.WriteString(fmt.Sprintf("%sConditionalExpr\n", prefix))
		printNode(sb, n.Test, indent+1)
		printNode(sb, n.Consequent, indent+1)
		printNode(sb, n.Alternate, indent+1)

	case *BinaryExpr:
		sb.WriteString(fmt.Sprintf("%sBinaryExpr: %s\n", prefix, n.Op.Symbol()))
		sb.WriteString(fmt.Sprintf("%s  Left:\n", prefix))
		printNode(sb, n.Left, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Right:\n", prefix))
		printNode(sb, n.Right, indent+2)

	case *UnaryExpr:
		sb.WriteString(fmt.Sprintf("%sUnaryExpr: %s\n", prefix, n.Op.Symbol()))
		printNode(sb, n.Operand, indent+1)

	case *CallExpr:
		sb.WriteString(fmt.Sprintf("%sCallExpr\n", prefix))
		sb.WriteString(fmt.Sprintf("%s  Callee:\n", prefix))
		printNode(sb, n.Callee, indent+2)
		if len(n.Args) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Args:\n", prefix))
			for _, arg := range n.Args {
				printNode(sb, arg, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Args: none\n", prefix))
		}

	case *IndexExpr:
		sb.WriteString(fmt.Sprintf("%sIndexExpr\n", prefix))
		printNode(sb, n.Object, indent+1)
		printNode(sb, n.Index, indent+1)

	case *MemberExpr:
		sb.WriteString(fmt.Sprintf("%sMemberExpr: %s\n", prefix, n.Name))
		printNode(sb, n.Object, indent+1)

	case *Identifier:
		sb.WriteString(fmt.Sprintf("%sIdentifier: %s\n", prefix, n.Name))

	case *ShotExpr:
		sb.WriteString(fmt.Sprintf("%sShot\n", prefix))

	case *IntLit:
		sb.WriteString(fmt.Sprintf("%sIntLit: %s\n", prefix, n.Value))

	case *FloatLit:
		sb.WriteString(fmt.Sprintf("%sFloatLit: %s\n", prefix, n.Value))

	case *StringLit:
		sb.WriteString(fmt.Sprintf("%sStringLit: %q\n", prefix, n.Value))

	case *BoolLit:
		sb.WriteString(fmt.Sprintf("%sBoolLit: %t\n", prefix, n.Value))

	case *ArrayLit:
		sb.WriteString(fmt.Sprintf("%sArrayLit\n", prefix))
		for _, e := range n.Elements {
			printNode(sb, e, indent+1)
		}

	case *EmptyArrayExpr:
		sb.WriteString(fmt.Sprintf("%sEmptyArray: %s\n", prefix, TypeString(n.Type)))

	default:
		sb.WriteString(fmt.Sprintf("%sUnknown node type: %T\n", prefix, node))
	}
}
