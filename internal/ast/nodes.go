package ast

import "github.com/lhaig/peak/internal/lexer"

// Node is the base interface for all parse tree nodes
type Node interface {
	Pos() (line, col int)
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// TypeExpr nodes are type annotations
type TypeExpr interface {
	Node
	typeNode()
}

// Program represents an entire Peak source file
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 1, 1
}

// Block represents a braced list of statements
type Block struct {
	Statements []Statement
	Line       int
	Column     int
}

func (b *Block) Pos() (int, int) { return b.Line, b.Column }

// --- Declarations ---

// VarDecl represents: let x = e, const x = e
type VarDecl struct {
	Name     string
	ReadOnly bool
	Value    Expression
	Line     int // position of the name
	Column   int
}

func (v *VarDecl) Pos() (int, int) { return v.Line, v.Column }
func (v *VarDecl) stmtNode()       {}

// FuncDecl represents: item f(x: pump) -> pump { ... }
type FuncDecl struct {
	Name       string
	Params     []*Param
	ReturnType TypeExpr // nil when omitted
	Body       *Block
	Line       int // position of the name
	Column     int
}

func (f *FuncDecl) Pos() (int, int) { return f.Line, f.Column }
func (f *FuncDecl) stmtNode()       {}

// Param represents a function parameter
type Param struct {
	Name   string
	Type   TypeExpr
	Line   int
	Column int
}

func (p *Param) Pos() (int, int) { return p.Line, p.Column }

// ClassDecl represents: order Car { year: pump item age() -> pump { ... } }
type ClassDecl struct {
	Name    string
	Fields  []*FieldDecl
	Methods []*FuncDecl
	Line    int
	Column  int
}

func (c *ClassDecl) Pos() (int, int) { return c.Line, c.Column }
func (c *ClassDecl) stmtNode()       {}

// FieldDecl represents a class field declaration
type FieldDecl struct {
	Name   string
	Type   TypeExpr
	Line   int
	Column int
}

func (f *FieldDecl) Pos() (int, int) { return f.Line, f.Column }

// --- Statements ---

// AssignStmt represents: target = value
type AssignStmt struct {
	Target Expression
	Value  Expression
	Line   int
	Column int
}

func (a *AssignStmt) Pos() (int, int) { return a.Line, a.Column }
func (a *AssignStmt) stmtNode()       {}

// BumpStmt represents x++ or x--
type BumpStmt struct {
	Target Expression
	Op     lexer.TokenType // INCREMENT or DECREMENT
	Line   int
	Column int
}

func (b *BumpStmt) Pos() (int, int) { return b.Line, b.Column }
func (b *BumpStmt) stmtNode()       {}

// IfStmt represents brew/pull. Else is nil, a *Block, or a chained *IfStmt.
type IfStmt struct {
	Test   Expression
	Then   *Block
	Else   Statement
	Line   int
	Column int
}

func (i *IfStmt) Pos() (int, int) { return i.Line, i.Column }
func (i *IfStmt) stmtNode()       {}

func (b *Block) stmtNode() {}

// WhileStmt represents: blend test { ... }
type WhileStmt struct {
	Test   Expression
	Body   *Block
	Line   int
	Column int
}

func (w *WhileStmt) Pos() (int, int) { return w.Line, w.Column }
func (w *WhileStmt) stmtNode()       {}

// ForStmt represents: ristretto v espresso collection { ... }
type ForStmt struct {
	Variable   string
	VarLine    int
	VarColumn  int
	Collection Expression
	Body       *Block
	Line       int
	Column     int
}

func (f *ForStmt) Pos() (int, int) { return f.Line, f.Column }
func (f *ForStmt) stmtNode()       {}

// BreakStmt represents tamp
type BreakStmt struct {
	Line   int
	Column int
}

func (b *BreakStmt) Pos() (int, int) { return b.Line, b.Column }
func (b *BreakStmt) stmtNode()       {}

// ReturnStmt represents serve, with or without a value
type ReturnStmt struct {
	Value  Expression // nil for a short return
	Line   int
	Column int
}

func (r *ReturnStmt) Pos() (int, int) { return r.Line, r.Column }
func (r *ReturnStmt) stmtNode()       {}

// PrintStmt represents remake e
type PrintStmt struct {
	Value  Expression
	Line   int
	Column int
}

func (p *PrintStmt) Pos() (int, int) { return p.Line, p.Column }
func (p *PrintStmt) stmtNode()       {}

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	Expr   Expression
	Line   int
	Column int
}

func (e *ExprStmt) Pos() (int, int) { return e.Line, e.Column }
func (e *ExprStmt) stmtNode()       {}

// --- Expressions ---

// ConditionalExpr represents test ? a : b
type ConditionalExpr struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
	Line       int // position of the ':'
	Column     int
}

func (c *ConditionalExpr) Pos() (int, int) { return c.Line, c.Column }
func (c *ConditionalExpr) exprNode()       {}

// BinaryExpr represents a binary expression; the position is the operator's
type BinaryExpr struct {
	Left   Expression
	Op     lexer.TokenType
	Right  Expression
	Line   int
	Column int
}

func (b *BinaryExpr) Pos() (int, int) { return b.Line, b.Column }
func (b *BinaryExpr) exprNode()       {}

// UnaryExpr represents -e or not e
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expression
	Line    int
	Column  int
}

func (u *UnaryExpr) Pos() (int, int) { return u.Line, u.Column }
func (u *UnaryExpr) exprNode()       {}

// CallExpr represents callee(args); the position is the '('
type CallExpr struct {
	Callee Expression
	Args   []Expression
	Line   int
	Column int
}

func (c *CallExpr) Pos() (int, int) { return c.Line, c.Column }
func (c *CallExpr) exprNode()       {}

// IndexExpr represents array[index]
type IndexExpr struct {
	Object Expression
	Index  Expression
	Line   int
	Column int
}

func (i *IndexExpr) Pos() (int, int) { return i.Line, i.Column }
func (i *IndexExpr) exprNode()       {}

// MemberExpr represents object.name; the position is the member name
type MemberExpr struct {
	Object Expression
	Name   string
	Line   int
	Column int
}

func (m *MemberExpr) Pos() (int, int) { return m.Line, m.Column }
func (m *MemberExpr) exprNode()       {}

// Identifier represents an identifier
type Identifier struct {
	Name   string
	Line   int
	Column int
}

func (i *Identifier) Pos() (int, int) { return i.Line, i.Column }
func (i *Identifier) exprNode()       {}

// ShotExpr represents the shot keyword (the receiver inside methods)
type ShotExpr struct {
	Line   int
	Column int
}

func (s *ShotExpr) Pos() (int, int) { return s.Line, s.Column }
func (s *ShotExpr) exprNode()       {}

// IntLit represents an integer literal
type IntLit struct {
	Value  string
	Line   int
	Column int
}

func (i *IntLit) Pos() (int, int) { return i.Line, i.Column }
func (i *IntLit) exprNode()       {}

// FloatLit represents a float literal
type FloatLit struct {
	Value  string
	Line   int
	Column int
}

func (f *FloatLit) Pos() (int, int) { return f.Line, f.Column }
func (f *FloatLit) exprNode()       {}

// StringLit represents a string literal, already decoded
type StringLit struct {
	Value  string
	Line   int
	Column int
}

func (s *StringLit) Pos() (int, int) { return s.Line, s.Column }
func (s *StringLit) exprNode()       {}

// BoolLit represents a boolean literal
type BoolLit struct {
	Value  bool
	Line   int
	Column int
}

func (b *BoolLit) Pos() (int, int) { return b.Line, b.Column }
func (b *BoolLit) exprNode()       {}

// ArrayLit represents an array literal [expr, expr, ...]
type ArrayLit struct {
	Elements []Expression
	Line     int
	Column   int
}

func (a *ArrayLit) Pos() (int, int) { return a.Line, a.Column }
func (a *ArrayLit) exprNode()       {}

// EmptyArrayExpr represents [T]() where the annotation names the array type
type EmptyArrayExpr struct {
	Type   TypeExpr
	Line   int
	Column int
}

func (e *EmptyArrayExpr) Pos() (int, int) { return e.Line, e.Column }
func (e *EmptyArrayExpr) exprNode()       {}

// --- Type annotations ---

// NamedType references a type by name (pump, Car, ...)
type NamedType struct {
	Name   string
	Line   int
	Column int
}

func (n *NamedType) Pos() (int, int) { return n.Line, n.Column }
func (n *NamedType) typeNode()       {}

// ArrayTypeExpr represents [T]
type ArrayTypeExpr struct {
	Base   TypeExpr
	Line   int
	Column int
}

func (a *ArrayTypeExpr) Pos() (int, int) { return a.Line, a.Column }
func (a *ArrayTypeExpr) typeNode()       {}

// OptionalTypeExpr represents T?
type OptionalTypeExpr struct {
	Base   TypeExpr
	Line   int
	Column int
}

func (o *OptionalTypeExpr) Pos() (int, int) { return o.Line, o.Column }
func (o *OptionalTypeExpr) typeNode()       {}

// FunctionTypeExpr represents (T1, T2) -> R
type FunctionTypeExpr struct {
	Params []TypeExpr
	Return TypeExpr
	Line   int
	Column int
}

func (f *FunctionTypeExpr) Pos() (int, int) { return f.Line, f.Column }
func (f *FunctionTypeExpr) typeNode()       {}
