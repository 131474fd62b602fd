package ir

import (
	"github.com/lhaig/peak/internal/lexer"
	"github.com/lhaig/peak/internal/types"
)

// Program is an analyzed Peak program.
type Program struct {
	Statements []Stmt
}

// --- Entities ---

// Entity is anything a name can be bound to in a scope.
type Entity interface {
	EntityName() string
	entityNode()
}

// Variable is a let/const binding, a parameter, a loop iterator, or a
// built-in constant.
type Variable struct {
	Name     string
	ReadOnly bool
	Type     types.Type
	Builtin  bool
}

// Function is a declared or built-in function.
type Function struct {
	Name    string
	Type    *types.FunctionType
	Builtin bool
}

// TypeName binds a name to a type: an intrinsic or a declared class.
type TypeName struct {
	Name string
	Type types.Type
}

func (v *Variable) EntityName() string { return v.Name }
func (f *Function) EntityName() string { return f.Name }
func (t *TypeName) EntityName() string { return t.Name }

func (*Variable) entityNode() {}
func (*Function) entityNode() {}
func (*TypeName) entityNode() {}

// --- Statements ---

// Stmt is the interface for all IR statement nodes.
type Stmt interface {
	stmtNode()
}

// VarDecl declares a variable with its initializer.
type VarDecl struct {
	Var  *Variable
	Init Expr
}

func (*VarDecl) stmtNode() {}

// FuncDecl declares a function.
type FuncDecl struct {
	Fun    *Function
	Params []*Variable
	Body   []Stmt
}

func (*FuncDecl) stmtNode() {}

// ClassDecl declares a class along with its method bodies.
type ClassDecl struct {
	Class   *types.ClassType
	Methods []*MethodDecl
}

func (*ClassDecl) stmtNode() {}

// MethodDecl is the body of one class method.
type MethodDecl struct {
	Method *types.Method
	Params []*Variable
	Body   []Stmt
}

// Assignment stores Source into Target.
type Assignment struct {
	Target Expr
	Source Expr
}

func (*Assignment) stmtNode() {}

// Increment represents target++
type Increment struct {
	Target Expr
}

func (*Increment) stmtNode() {}

// Decrement represents target--
type Decrement struct {
	Target Expr
}

func (*Decrement) stmtNode() {}

// IfStmt has both branches. An else-if chain is an Alternate holding a
// single *IfStmt or *ShortIfStmt.
type IfStmt struct {
	Test       Expr
	Consequent []Stmt
	Alternate  []Stmt
}

func (*IfStmt) stmtNode() {}

// ShortIfStmt is an if without a pull branch.
type ShortIfStmt struct {
	Test       Expr
	Consequent []Stmt
}

func (*ShortIfStmt) stmtNode() {}

// WhileStmt represents a blend loop.
type WhileStmt struct {
	Test Expr
	Body []Stmt
}

func (*WhileStmt) stmtNode() {}

// ForStmt iterates a read-only Iterator over Collection.
type ForStmt struct {
	Iterator   *Variable
	Collection Expr
	Body       []Stmt
}

func (*ForStmt) stmtNode() {}

// BreakStmt represents tamp.
type BreakStmt struct{}

func (*BreakStmt) stmtNode() {}

// ReturnStmt represents serve.
type ReturnStmt struct {
	Value Expr // nil for a short return
}

func (*ReturnStmt) stmtNode() {}

// PrintStmt represents remake.
type PrintStmt struct {
	Value Expr
}

func (*PrintStmt) stmtNode() {}

// CallStmt is a call evaluated for its effect.
type CallStmt struct {
	Call *CallExpr
}

func (*CallStmt) stmtNode() {}

// --- Expressions ---

// Expr is the interface for all IR expression nodes. ExprType is never nil
// on an analyzed program.
type Expr interface {
	ExprType() types.Type
	exprNode()
}

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	Type  types.Type
}

func (e *BinaryExpr) ExprType() types.Type { return e.Type }
func (*BinaryExpr) exprNode()              {}

// UnaryExpr represents -e or not e.
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expr
	Type    types.Type
}

func (e *UnaryExpr) ExprType() types.Type { return e.Type }
func (*UnaryExpr) exprNode()              {}

// Conditional represents test ? consequent : alternate.
type Conditional struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
	Type       types.Type
}

func (e *Conditional) ExprType() types.Type { return e.Type }
func (*Conditional) exprNode()              {}

// CallExpr calls a function value, a method, or a class constructor.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Type   types.Type
}

func (e *CallExpr) ExprType() types.Type { return e.Type }
func (*CallExpr) exprNode()              {}

// SubscriptExpr represents array[index].
type SubscriptExpr struct {
	Array Expr
	Index Expr
	Type  types.Type
}

func (e *SubscriptExpr) ExprType() types.Type { return e.Type }
func (*SubscriptExpr) exprNode()              {}

// MemberExpr selects a field or a method of a class instance. Exactly one
// of Field and Method is set.
type MemberExpr struct {
	Object Expr
	Field  *types.Field
	Method *types.Method
	Type   types.Type
}

func (e *MemberExpr) ExprType() types.Type { return e.Type }
func (*MemberExpr) exprNode()              {}

// ArrayLit represents a non-empty array literal.
type ArrayLit struct {
	Elements []Expr
	Type     *types.ArrayType
}

func (e *ArrayLit) ExprType() types.Type { return e.Type }
func (*ArrayLit) exprNode()              {}

// EmptyArray represents [T]().
type EmptyArray struct {
	Type *types.ArrayType
}

func (e *EmptyArray) ExprType() types.Type { return e.Type }
func (*EmptyArray) exprNode()              {}

// IntLit represents a pump literal.
type IntLit struct {
	Value int64
}

func (*IntLit) ExprType() types.Type { return types.Int }
func (*IntLit) exprNode()            {}

// FloatLit represents an affogato literal.
type FloatLit struct {
	Value float64
}

func (*FloatLit) ExprType() types.Type { return types.Float }
func (*FloatLit) exprNode()            {}

// StringLit represents a roast literal.
type StringLit struct {
	Value string
}

func (*StringLit) ExprType() types.Type { return types.String }
func (*StringLit) exprNode()            {}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
}

func (*BoolLit) ExprType() types.Type { return types.Boolean }
func (*BoolLit) exprNode()            {}

// VarRef references a variable.
type VarRef struct {
	Var *Variable
}

func (e *VarRef) ExprType() types.Type { return e.Var.Type }
func (*VarRef) exprNode()              {}

// FuncRef references a function.
type FuncRef struct {
	Fun *Function
}

func (e *FuncRef) ExprType() types.Type { return e.Fun.Type }
func (*FuncRef) exprNode()              {}

// ClassRef references a class in callee position; its type is the
// constructor signature.
type ClassRef struct {
	Class *types.ClassType
	Type  *types.FunctionType
}

func (e *ClassRef) ExprType() types.Type { return e.Type }
func (*ClassRef) exprNode()              {}

// SelfExpr is shot, the receiver inside a method.
type SelfExpr struct {
	Class *types.ClassType
}

func (e *SelfExpr) ExprType() types.Type { return e.Class }
func (*SelfExpr) exprNode()              {}

// IsLiteral reports whether e is a constant literal
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case *IntLit, *FloatLit, *StringLit, *BoolLit:
		return true
	}
	return false
}

// SameEntity reports whether two expressions name the same declared entity
func SameEntity(a, b Expr) bool {
	switch x := a.(type) {
	case *VarRef:
		y, ok := b.(*VarRef)
		return ok && x.Var == y.Var
	case *FuncRef:
		y, ok := b.(*FuncRef)
		return ok && x.Fun == y.Fun
	}
	return false
}
