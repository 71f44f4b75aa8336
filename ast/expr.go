// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/gogpu/shadegen/constant"

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// CondExpr is the ternary `c ? a : b`.
type CondExpr struct {
	Expr        Expr
	ExprIfTrue  Expr
	ExprIfFalse Expr
	Span        Span
}

func (e *CondExpr) Pos() Span { return e.Span }
func (e *CondExpr) exprNode() {}

// BinExpr is a binary operation, including the assignment family.
type BinExpr struct {
	Op        BinOp
	LeftExpr  Expr
	RightExpr Expr
	Span      Span
}

func (e *BinExpr) Pos() Span { return e.Span }
func (e *BinExpr) exprNode() {}

// UnExpr is a prefix unary operation.
type UnExpr struct {
	Op   UnOp
	Expr Expr
	Span Span
}

func (e *UnExpr) Pos() Span { return e.Span }
func (e *UnExpr) exprNode() {}

// IndexExpr is `base[index]`.
type IndexExpr struct {
	Expr      Expr
	IndexExpr Expr
	Span      Span
}

func (e *IndexExpr) Pos() Span { return e.Span }
func (e *IndexExpr) exprNode() {}

// MemberExpr is struct member access or a vector swizzle.
type MemberExpr struct {
	Expr        Expr
	MemberIdent Ident
	Span        Span
}

func (e *MemberExpr) Pos() Span { return e.Span }
func (e *MemberExpr) exprNode() {}

// CallExpr calls a builtin, a function or a struct constructor by name.
type CallExpr struct {
	Ident    Ident
	ArgExprs []Expr
	Span     Span
}

func (e *CallExpr) Pos() Span { return e.Span }
func (e *CallExpr) exprNode() {}

// ConsCallExpr calls a type constructor such as `vec3(1.0, v.xy)`.
type ConsCallExpr struct {
	TyLit    TyLit
	ArgExprs []Expr
	Span     Span
}

func (e *ConsCallExpr) Pos() Span { return e.Span }
func (e *ConsCallExpr) exprNode() {}

// VarExpr references a variable.
type VarExpr struct {
	Ident Ident
	Span  Span
}

func (e *VarExpr) Pos() Span { return e.Span }
func (e *VarExpr) exprNode() {}

// LitExpr is a literal already classified into a constant value.
type LitExpr struct {
	Value constant.Value
	Span  Span
}

func (e *LitExpr) Pos() Span { return e.Span }
func (e *LitExpr) exprNode() {}

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinOpAssign BinOp = iota
	BinOpAddAssign
	BinOpSubAssign
	BinOpMulAssign
	BinOpDivAssign
	BinOpOr
	BinOpAnd
	BinOpEq
	BinOpNe
	BinOpLt
	BinOpLe
	BinOpGt
	BinOpGe
	BinOpAdd
	BinOpSub
	BinOpMul
	BinOpDiv
)

// String returns the operator spelling.
func (op BinOp) String() string {
	switch op {
	case BinOpAssign:
		return "="
	case BinOpAddAssign:
		return "+="
	case BinOpSubAssign:
		return "-="
	case BinOpMulAssign:
		return "*="
	case BinOpDivAssign:
		return "/="
	case BinOpOr:
		return "||"
	case BinOpAnd:
		return "&&"
	case BinOpEq:
		return "=="
	case BinOpNe:
		return "!="
	case BinOpLt:
		return "<"
	case BinOpLe:
		return "<="
	case BinOpGt:
		return ">"
	case BinOpGe:
		return ">="
	case BinOpAdd:
		return "+"
	case BinOpSub:
		return "-"
	case BinOpMul:
		return "*"
	case BinOpDiv:
		return "/"
	default:
		return "?"
	}
}

// IsAssign reports whether op belongs to the assignment family.
func (op BinOp) IsAssign() bool {
	return op <= BinOpDivAssign
}

// UnOp enumerates prefix unary operators.
type UnOp uint8

const (
	UnOpNot UnOp = iota
	UnOpNeg
)

// String returns the operator spelling.
func (op UnOp) String() string {
	switch op {
	case UnOpNot:
		return "!"
	case UnOpNeg:
		return "-"
	default:
		return "?"
	}
}
