// Package jsgen renders an analyzed Peak program as JavaScript.
package jsgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lhaig/peak/internal/ir"
	"github.com/lhaig/peak/internal/lexer"
	"github.com/lhaig/peak/internal/types"
)

// builtins maps built-in entity names to JavaScript expressions usable both
// as values and as callees.
var builtins = map[string]string{
	"π":          "Math.PI",
	"sqrt":       "Math.sqrt",
	"sin":        "Math.sin",
	"cos":        "Math.cos",
	"exp":        "Math.exp",
	"ln":         "Math.log",
	"hypot":      "Math.hypot",
	"bytes":      "((s) => [...new TextEncoder().encode(s)])",
	"codepoints": "((s) => [...s].map((c) => c.codePointAt(0)))",
}

// Generate produces JavaScript source for prog. Each declared entity is
// renamed to name_n, numbered in order of first appearance.
func Generate(prog *ir.Program) string {
	g := &generator{names: make(map[any]string)}
	g.generateStmts(prog.Statements)
	return g.sb.String()
}

type generator struct {
	sb     strings.Builder
	indent int
	names  map[any]string
}

func (g *generator) emit(s string) {
	g.sb.WriteString(s)
}

func (g *generator) emitLinef(format string, args ...any) {
	g.emitLine(fmt.Sprintf(format, args...))
}

func (g *generator) emitLine(s string) {
	if s == "" {
		g.sb.WriteString("\n")
	} else {
		g.sb.WriteString(g.indentStr())
		g.sb.WriteString(s)
		g.sb.WriteString("\n")
	}
}

func (g *generator) incIndent() { g.indent++ }
func (g *generator) decIndent() { g.indent-- }

func (g *generator) indentStr() string {
	return strings.Repeat("  ", g.indent)
}

// targetName returns the synthetic name for an entity, keyed by identity.
func (g *generator) targetName(key any, name string) string {
	if n, ok := g.names[key]; ok {
		return n
	}
	n := fmt.Sprintf("%s_%d", name, len(g.names)+1)
	g.names[key] = n
	return n
}

func (g *generator) variable(v *ir.Variable) string {
	if v.Builtin {
		return builtins[v.Name]
	}
	return g.targetName(v, v.Name)
}

func (g *generator) function(f *ir.Function) string {
	if f.Builtin {
		return builtins[f.Name]
	}
	return g.targetName(f, f.Name)
}

func (g *generator) params(vars []*ir.Variable) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = g.variable(v)
	}
	return strings.Join(names, ", ")
}

// --- Statements ---

func (g *generator) generateStmts(stmts []ir.Stmt) {
	for _, stmt := range stmts {
		g.generateStmt(stmt)
	}
}

func (g *generator) block(stmts []ir.Stmt) {
	g.incIndent()
	g.generateStmts(stmts)
	g.decIndent()
}

func (g *generator) generateStmt(s ir.Stmt) {
	switch stmt := s.(type) {
	case *ir.VarDecl:
		name := g.variable(stmt.Var)
		g.emitLinef("let %s = %s;", name, g.generateExpr(stmt.Init))

	case *ir.FuncDecl:
		name := g.function(stmt.Fun)
		g.emitLinef("function %s(%s) {", name, g.params(stmt.Params))
		g.block(stmt.Body)
		g.emitLine("}")

	case *ir.ClassDecl:
		g.generateClass(stmt)

	case *ir.Assignment:
		g.emitLinef("%s = %s;", g.generateExpr(stmt.Target), g.generateExpr(stmt.Source))

	case *ir.Increment:
		g.emitLinef("%s++;", g.generateExpr(stmt.Target))

	case *ir.Decrement:
		g.emitLinef("%s--;", g.generateExpr(stmt.Target))

	case *ir.IfStmt, *ir.ShortIfStmt:
		g.generateIfStmt(stmt, "")

	case *ir.WhileStmt:
		g.emitLinef("while (%s) {", g.generateExpr(stmt.Test))
		g.block(stmt.Body)
		g.emitLine("}")

	case *ir.ForStmt:
		name := g.variable(stmt.Iterator)
		g.emitLinef("for (let %s of %s) {", name, g.generateExpr(stmt.Collection))
		g.block(stmt.Body)
		g.emitLine("}")

	case *ir.BreakStmt:
		g.emitLine("break;")

	case *ir.ReturnStmt:
		if stmt.Value != nil {
			g.emitLinef("return %s;", g.generateExpr(stmt.Value))
		} else {
			g.emitLine("return;")
		}

	case *ir.PrintStmt:
		g.emitLinef("console.log(%s);", g.generateExpr(stmt.Value))

	case *ir.CallStmt:
		g.emitLinef("%s;", g.generateExpr(stmt.Call))
	}
}

// generateIfStmt writes an if statement; opener is "} else " when the
// statement continues an else-if chain.
func (g *generator) generateIfStmt(s ir.Stmt, opener string) {
	var test ir.Expr
	var then, alternate []ir.Stmt
	hasElse := false
	switch stmt := s.(type) {
	case *ir.IfStmt:
		test, then, alternate, hasElse = stmt.Test, stmt.Consequent, stmt.Alternate, true
	case *ir.ShortIfStmt:
		test, then = stmt.Test, stmt.Consequent
	}

	g.emitLinef("%sif (%s) {", opener, g.generateExpr(test))
	g.block(then)
	if len(alternate) == 1 {
		switch alternate[0].(type) {
		case *ir.IfStmt, *ir.ShortIfStmt:
			g.generateIfStmt(alternate[0], "} else ")
			return
		}
	}
	if hasElse {
		g.emitLine("} else {")
		g.block(alternate)
	}
	g.emitLine("}")
}

func (g *generator) generateClass(decl *ir.ClassDecl) {
	class := decl.Class
	g.emitLinef("class %s {", g.targetName(class, class.Name))
	g.incIndent()

	fields := make([]string, len(class.Fields))
	for i, f := range class.Fields {
		fields[i] = g.targetName(f, f.Name)
	}
	g.emitLinef("constructor(%s) {", strings.Join(fields, ", "))
	g.incIndent()
	for _, f := range fields {
		g.emitLinef("this.%s = %s;", f, f)
	}
	g.decIndent()
	g.emitLine("}")

	// Method names are fixed up front so bodies may call later methods.
	for _, m := range class.Methods {
		g.targetName(m, m.Name)
	}
	for _, m := range decl.Methods {
		g.emitLinef("%s(%s) {", g.targetName(m.Method, m.Method.Name), g.params(m.Params))
		g.block(m.Body)
		g.emitLine("}")
	}

	g.decIndent()
	g.emitLine("}")
}

// --- Expressions ---

func (g *generator) generateExpr(e ir.Expr) string {
	switch expr := e.(type) {
	case *ir.IntLit:
		return strconv.FormatInt(expr.Value, 10)

	case *ir.FloatLit:
		return formatFloat(expr.Value)

	case *ir.StringLit:
		return "\"" + escapeJSString(expr.Value) + "\""

	case *ir.BoolLit:
		return strconv.FormatBool(expr.Value)

	case *ir.VarRef:
		return g.variable(expr.Var)

	case *ir.FuncRef:
		return g.function(expr.Fun)

	case *ir.ClassRef:
		return g.targetName(expr.Class, expr.Class.Name)

	case *ir.SelfExpr:
		return "this"

	case *ir.BinaryExpr:
		return g.generateBinaryExpr(expr)

	case *ir.UnaryExpr:
		if expr.Op == lexer.NOT {
			return fmt.Sprintf("!(%s)", g.generateExpr(expr.Operand))
		}
		return fmt.Sprintf("-(%s)", g.generateExpr(expr.Operand))

	case *ir.Conditional:
		return fmt.Sprintf("((%s) ? (%s) : (%s))",
			g.generateExpr(expr.Test),
			g.generateExpr(expr.Consequent),
			g.generateExpr(expr.Alternate))

	case *ir.CallExpr:
		return g.generateCallExpr(expr)

	case *ir.SubscriptExpr:
		return fmt.Sprintf("%s[%s]", g.generateExpr(expr.Array), g.generateExpr(expr.Index))

	case *ir.MemberExpr:
		obj := g.generateExpr(expr.Object)
		if expr.Field != nil {
			return obj + "." + g.targetName(expr.Field, expr.Field.Name)
		}
		// A detached method keeps its receiver.
		m := obj + "." + g.targetName(expr.Method, expr.Method.Name)
		return fmt.Sprintf("%s.bind(%s)", m, obj)

	case *ir.ArrayLit:
		elems := make([]string, len(expr.Elements))
		for i, el := range expr.Elements {
			elems[i] = g.generateExpr(el)
		}
		return "[" + strings.Join(elems, ",") + "]"

	case *ir.EmptyArray:
		return "[]"

	default:
		return "undefined"
	}
}

func (g *generator) generateBinaryExpr(expr *ir.BinaryExpr) string {
	left := g.generateExpr(expr.Left)
	right := g.generateExpr(expr.Right)
	if expr.Op == lexer.POWER && negativeOperand(expr.Left) {
		// JavaScript rejects a unary operator directly before **.
		left = "(" + left + ")"
	}
	s := fmt.Sprintf("(%s %s %s)", left, mapOperator(expr.Op), right)
	if expr.Op == lexer.SLASH && expr.Type == types.Int {
		return "Math.trunc(" + s + ")"
	}
	return s
}

func (g *generator) generateCallExpr(expr *ir.CallExpr) string {
	args := make([]string, len(expr.Args))
	for i, arg := range expr.Args {
		args[i] = g.generateExpr(arg)
	}
	joined := strings.Join(args, ", ")

	switch callee := expr.Callee.(type) {
	case *ir.ClassRef:
		return fmt.Sprintf("new %s(%s)", g.targetName(callee.Class, callee.Class.Name), joined)
	case *ir.MemberExpr:
		if callee.Method != nil {
			return fmt.Sprintf("%s.%s(%s)", g.generateExpr(callee.Object),
				g.targetName(callee.Method, callee.Method.Name), joined)
		}
	}
	return fmt.Sprintf("%s(%s)", g.generateExpr(expr.Callee), joined)
}

func negativeOperand(e ir.Expr) bool {
	switch e := e.(type) {
	case *ir.UnaryExpr:
		return true
	case *ir.IntLit:
		return e.Value < 0
	case *ir.FloatLit:
		return e.Value < 0 || math.Signbit(e.Value)
	}
	return false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func mapOperator(op lexer.TokenType) string {
	switch op {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.STAR:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.PERCENT:
		return "%"
	case lexer.POWER:
		return "**"
	case lexer.EQ:
		return "==="
	case lexer.NEQ:
		return "!=="
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LEQ:
		return "<="
	case lexer.GEQ:
		return ">="
	case lexer.AND:
		return "&&"
	case lexer.OR:
		return "||"
	default:
		return "?"
	}
}

func escapeJSString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
