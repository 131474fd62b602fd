package linter

import (
	"strings"
	"unicode"

	"github.com/lhaig/peak/internal/ast"
	"github.com/lhaig/peak/internal/diagnostic"
)

// Linter performs style and best-practice checks on a parsed program.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	prog *ast.Program
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on the given program and returns diagnostics.
func Lint(prog *ast.Program) *diagnostic.Diagnostics {
	l := &Linter{
		prog: prog,
		diag: diagnostic.New(),
	}

	l.lintStatements(prog.Statements)
	l.checkLetNeverReassigned(prog.Statements, collectAssignedNames(prog.Statements))

	return l.diag
}

// lintStatements visits every declaration, including nested ones.
func (l *Linter) lintStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			l.checkVariableNaming(s.Name, s.Line, s.Column)
		case *ast.FuncDecl:
			l.lintFunction(s.Name, s)
		case *ast.ClassDecl:
			l.lintClass(s)
		case *ast.ForStmt:
			l.checkVariableNaming(s.Variable, s.VarLine, s.VarColumn)
		}
		forEachBlock(stmt, l.lintStatements)
	}
}

func (l *Linter) lintFunction(scopeName string, fn *ast.FuncDecl) {
	l.checkEmptyFunctionBody(scopeName, fn.Body, fn.Line, fn.Column)
	l.checkFunctionNaming(fn.Name, fn.Line, fn.Column)
	for _, p := range fn.Params {
		l.checkVariableNaming(p.Name, p.Line, p.Column)
	}

	if fn.Body != nil {
		usedNames := collectUsedNames(fn.Body.Statements)
		l.checkUnusedParams(scopeName, fn.Params, usedNames)
		l.checkUnusedVariables(fn.Body.Statements, usedNames)
	}
}

func (l *Linter) lintClass(class *ast.ClassDecl) {
	l.checkClassNaming(class.Name, class.Line, class.Column)
	for _, f := range class.Fields {
		l.checkVariableNaming(f.Name, f.Line, f.Column)
	}
	for _, m := range class.Methods {
		l.lintFunction(class.Name+"."+m.Name, m)
	}
}

// --- Lint rules ---

// checkEmptyFunctionBody warns if a function/method body has no statements.
func (l *Linter) checkEmptyFunctionBody(name string, body *ast.Block, line, col int) {
	if body == nil || len(body.Statements) == 0 {
		l.diag.Warningf(line, col, "function '%s' has an empty body", name)
	}
}

// checkFunctionNaming warns if a function/method name is not lowerCamelCase.
func (l *Linter) checkFunctionNaming(name string, line, col int) {
	if !isLowerCamelCase(name) {
		l.diag.Warningf(line, col,
			"function '%s' should use lowerCamelCase naming", name)
	}
}

func (l *Linter) checkVariableNaming(name string, line, col int) {
	if !isLowerCamelCase(name) {
		l.diag.Warningf(line, col,
			"variable '%s' should use lowerCamelCase naming", name)
	}
}

// checkClassNaming warns if a class name is not UpperCamelCase.
func (l *Linter) checkClassNaming(name string, line, col int) {
	if !isUpperCamelCase(name) {
		l.diag.Warningf(line, col,
			"class '%s' should use UpperCamelCase naming", name)
	}
}

func (l *Linter) checkUnusedParams(scopeName string, params []*ast.Param, usedNames map[string]bool) {
	for _, p := range params {
		if !usedNames[p.Name] {
			l.diag.Warningf(p.Line, p.Column,
				"parameter '%s' in '%s' is never used", p.Name, scopeName)
		}
	}
}

// checkUnusedVariables warns about function locals that are never read.
func (l *Linter) checkUnusedVariables(stmts []ast.Statement, usedNames map[string]bool) {
	for _, stmt := range stmts {
		if decl, ok := stmt.(*ast.VarDecl); ok && !usedNames[decl.Name] {
			l.diag.Warningf(decl.Line, decl.Column,
				"variable '%s' is declared but never used", decl.Name)
		}
		switch stmt.(type) {
		case *ast.IfStmt, *ast.WhileStmt, *ast.ForStmt, *ast.Block:
			forEachBlock(stmt, func(inner []ast.Statement) {
				l.checkUnusedVariables(inner, usedNames)
			})
		}
	}
}

// checkLetNeverReassigned warns about let variables that could be const.
func (l *Linter) checkLetNeverReassigned(stmts []ast.Statement, assigned map[string]bool) {
	for _, stmt := range stmts {
		if decl, ok := stmt.(*ast.VarDecl); ok && !decl.ReadOnly && !assigned[decl.Name] {
			l.diag.WarningWithHint(decl.Line, decl.Column,
				"let "+decl.Name+" is never reassigned", "declare it with const")
		}
		forEachBlock(stmt, func(inner []ast.Statement) {
			l.checkLetNeverReassigned(inner, assigned)
		})
	}
}

// --- Tree walking helpers ---

// forEachBlock calls fn with each statement list nested directly in stmt.
func forEachBlock(stmt ast.Statement, fn func([]ast.Statement)) {
	switch s := stmt.(type) {
	case *ast.Block:
		fn(s.Statements)
	case *ast.FuncDecl:
		if s.Body != nil {
			fn(s.Body.Statements)
		}
	case *ast.ClassDecl:
		for _, m := range s.Methods {
			if m.Body != nil {
				fn(m.Body.Statements)
			}
		}
	case *ast.IfStmt:
		if s.Then != nil {
			fn(s.Then.Statements)
		}
		if s.Else != nil {
			fn([]ast.Statement{s.Else})
		}
	case *ast.WhileStmt:
		if s.Body != nil {
			fn(s.Body.Statements)
		}
	case *ast.ForStmt:
		if s.Body != nil {
			fn(s.Body.Statements)
		}
	}
}

// collectUsedNames walks all expressions in a slice of statements and collects
// all identifier names that are read.
func collectUsedNames(stmts []ast.Statement) map[string]bool {
	used := make(map[string]bool)
	var walk func([]ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, stmt := range stmts {
			collectUsedNamesFromStmt(stmt, used)
			forEachBlock(stmt, walk)
		}
	}
	walk(stmts)
	return used
}

func collectUsedNamesFromStmt(stmt ast.Statement, used map[string]bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		// The declared name is not a read
		collectUsedNamesFromExpr(s.Value, used)
	case *ast.AssignStmt:
		// Assigning to a plain name is a write; x[i] and x.f read x.
		if _, ok := s.Target.(*ast.Identifier); !ok {
			collectUsedNamesFromExpr(s.Target, used)
		}
		collectUsedNamesFromExpr(s.Value, used)
	case *ast.BumpStmt:
		collectUsedNamesFromExpr(s.Target, used)
	case *ast.ReturnStmt:
		collectUsedNamesFromExpr(s.Value, used)
	case *ast.PrintStmt:
		collectUsedNamesFromExpr(s.Value, used)
	case *ast.ExprStmt:
		collectUsedNamesFromExpr(s.Expr, used)
	case *ast.IfStmt:
		collectUsedNamesFromExpr(s.Test, used)
	case *ast.WhileStmt:
		collectUsedNamesFromExpr(s.Test, used)
	case *ast.ForStmt:
		collectUsedNamesFromExpr(s.Collection, used)
	}
}

func collectUsedNamesFromExpr(expr ast.Expression, used map[string]bool) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		used[e.Name] = true
	case *ast.BinaryExpr:
		collectUsedNamesFromExpr(e.Left, used)
		collectUsedNamesFromExpr(e.Right, used)
	case *ast.UnaryExpr:
		collectUsedNamesFromExpr(e.Operand, used)
	case *ast.ConditionalExpr:
		collectUsedNamesFromExpr(e.Test, used)
		collectUsedNamesFromExpr(e.Consequent, used)
		collectUsedNamesFromExpr(e.Alternate, used)
	case *ast.CallExpr:
		collectUsedNamesFromExpr(e.Callee, used)
		for _, arg := range e.Args {
			collectUsedNamesFromExpr(arg, used)
		}
	case *ast.IndexExpr:
		collectUsedNamesFromExpr(e.Object, used)
		collectUsedNamesFromExpr(e.Index, used)
	case *ast.MemberExpr:
		collectUsedNamesFromExpr(e.Object, used)
	case *ast.ArrayLit:
		for _, elem := range e.Elements {
			collectUsedNamesFromExpr(elem, used)
		}
	}
}

// collectAssignedNames collects names that appear as assignment or
// increment targets anywhere in stmts.
func collectAssignedNames(stmts []ast.Statement) map[string]bool {
	assigned := make(map[string]bool)
	var walk func([]ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *ast.AssignStmt:
				if ident, ok := s.Target.(*ast.Identifier); ok {
					assigned[ident.Name] = true
				}
			case *ast.BumpStmt:
				if ident, ok := s.Target.(*ast.Identifier); ok {
					assigned[ident.Name] = true
				}
			}
			forEachBlock(stmt, walk)
		}
	}
	walk(stmts)
	return assigned
}

// --- Naming convention helpers ---

// isLowerCamelCase returns true if the name starts with a lowercase letter
// and contains no underscores.
func isLowerCamelCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsLower(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}

// isUpperCamelCase returns true if the name starts with an uppercase letter
// and contains no underscores.
func isUpperCamelCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}
