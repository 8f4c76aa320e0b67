// Package ast defines the abstract syntax tree for monkey-lang.
package ast

import (
	"monkey-lang/internal/span"
	"monkey-lang/internal/token"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetPos() span.Position
}

// Expr is the interface for expression nodes. Every expression yields
// exactly one value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Pos field for all AST nodes.
type NodeBase struct {
	Pos span.Position
}

func (n NodeBase) nodeNode()             {}
func (n NodeBase) GetPos() span.Position { return n.Pos }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// ============================================================
// Program (top-level AST root)
// ============================================================

// Program represents an entire parsed source text: an ordered sequence
// of top-level statements.
type Program struct {
	NodeBase
	Stmts []Stmt
}

// ============================================================
// Statements
// ============================================================

// LetStmt represents a binding: let name = value;
type LetStmt struct {
	StmtBase
	Name  *IdentExpr
	Value Expr
}

// ReturnStmt represents: return value;
type ReturnStmt struct {
	StmtBase
	Value Expr
}

// ExprStmt wraps an expression used as a statement. The value of the
// last expression statement in a program or block becomes that block's
// result.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// BlockStmt represents a braced sequence of statements: { ... }.
type BlockStmt struct {
	StmtBase
	Stmts []Stmt
}

// ============================================================
// Expressions
// ============================================================

// IdentExpr represents an identifier reference.
type IdentExpr struct {
	ExprBase
	Name string
}

// IntLiteral represents an integer literal.
type IntLiteral struct {
	ExprBase
	Value int64
}

// BoolLiteral represents true or false.
type BoolLiteral struct {
	ExprBase
	Value bool
}

// StringLiteral represents a string literal.
type StringLiteral struct {
	ExprBase
	Value string
}

// PrefixExpr represents a prefix operation: !x, -x.
type PrefixExpr struct {
	ExprBase
	Op      token.Kind
	Operand Expr
}

// InfixExpr represents a binary operation: a + b, x == y.
type InfixExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// IfExpr represents a conditional expression. The alternative may be
// nil; a false condition without an alternative yields null.
type IfExpr struct {
	ExprBase
	Condition   Expr
	Consequence *BlockStmt
	Alternative *BlockStmt // may be nil
}

// FuncLiteral represents a function literal: fn(params) { body }.
type FuncLiteral struct {
	ExprBase
	Params []*IdentExpr
	Body   *BlockStmt
}

// CallExpr represents a function call: f(a, b).
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// ArrayLiteral represents an array literal: [a, b, c].
type ArrayLiteral struct {
	ExprBase
	Elements []Expr
}

// HashLiteral represents a hash literal: { key: value, ... }.
// Keys and Values are parallel slices preserving source order.
type HashLiteral struct {
	ExprBase
	Keys   []Expr
	Values []Expr
}

// IndexExpr represents indexing: a[i].
type IndexExpr struct {
	ExprBase
	Object Expr
	Index  Expr
}
