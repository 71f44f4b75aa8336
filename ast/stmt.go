// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// Block is a braced list of statements.
type Block struct {
	Stmts []Stmt
	Span  Span
}

func (b *Block) Pos() Span { return b.Span }

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// BreakStmt represents `break;`.
type BreakStmt struct {
	Span Span
}

func (s *BreakStmt) Pos() Span { return s.Span }
func (s *BreakStmt) stmtNode() {}

// ContinueStmt represents `continue;`.
type ContinueStmt struct {
	Span Span
}

func (s *ContinueStmt) Pos() Span { return s.Span }
func (s *ContinueStmt) stmtNode() {}

// ForStmt represents a counted loop with constant bounds.
type ForStmt struct {
	Ident    Ident
	FromExpr Expr
	ToExpr   Expr
	StepExpr Expr // optional
	Block    *Block
	Span     Span
}

func (s *ForStmt) Pos() Span { return s.Span }
func (s *ForStmt) stmtNode() {}

// IfStmt represents a conditional statement.
type IfStmt struct {
	Expr         Expr
	BlockIfTrue  *Block
	BlockIfFalse *Block // optional
	Span         Span
}

func (s *IfStmt) Pos() Span { return s.Span }
func (s *IfStmt) stmtNode() {}

// LetStmt declares a mutable local variable.
type LetStmt struct {
	Ident  Ident
	TyExpr TyExpr // optional
	Expr   Expr   // optional
	Span   Span
}

func (s *LetStmt) Pos() Span { return s.Span }
func (s *LetStmt) stmtNode() {}

// ReturnStmt represents `return` with an optional value.
type ReturnStmt struct {
	Expr Expr // optional
	Span Span
}

func (s *ReturnStmt) Pos() Span { return s.Span }
func (s *ReturnStmt) stmtNode() {}

// BlockStmt is a nested block.
type BlockStmt struct {
	Block *Block
	Span  Span
}

func (s *BlockStmt) Pos() Span { return s.Span }
func (s *BlockStmt) stmtNode() {}

// ExprStmt is an expression evaluated for its effects.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (s *ExprStmt) Pos() Span { return s.Span }
func (s *ExprStmt) stmtNode() {}
