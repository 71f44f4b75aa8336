// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// TyExpr is the interface for type expressions.
type TyExpr interface {
	Node
	tyExprNode()
}

// ArrayTyExpr is `elem[len]`.
type ArrayTyExpr struct {
	ElemTyExpr TyExpr
	Len        int
	Span       Span
}

func (t *ArrayTyExpr) Pos() Span   { return t.Span }
func (t *ArrayTyExpr) tyExprNode() {}

// StructTyExpr names a struct type.
type StructTyExpr struct {
	Ident Ident
	Span  Span
}

func (t *StructTyExpr) Pos() Span   { return t.Span }
func (t *StructTyExpr) tyExprNode() {}

// LitTyExpr is a builtin type keyword.
type LitTyExpr struct {
	TyLit TyLit
	Span  Span
}

func (t *LitTyExpr) Pos() Span   { return t.Span }
func (t *LitTyExpr) tyExprNode() {}

// TyLit enumerates builtin type keywords.
type TyLit uint8

const (
	TyLitBool TyLit = iota
	TyLitInt
	TyLitFloat
	TyLitBvec2
	TyLitBvec3
	TyLitBvec4
	TyLitIvec2
	TyLitIvec3
	TyLitIvec4
	TyLitVec2
	TyLitVec3
	TyLitVec4
	TyLitMat2
	TyLitMat3
	TyLitMat4
)

var tyLitNames = [...]string{
	TyLitBool:  "bool",
	TyLitInt:   "int",
	TyLitFloat: "float",
	TyLitBvec2: "bvec2",
	TyLitBvec3: "bvec3",
	TyLitBvec4: "bvec4",
	TyLitIvec2: "ivec2",
	TyLitIvec3: "ivec3",
	TyLitIvec4: "ivec4",
	TyLitVec2:  "vec2",
	TyLitVec3:  "vec3",
	TyLitVec4:  "vec4",
	TyLitMat2:  "mat2",
	TyLitMat3:  "mat3",
	TyLitMat4:  "mat4",
}

// String returns the keyword spelling of the type literal.
func (t TyLit) String() string {
	if int(t) < len(tyLitNames) {
		return tyLitNames[t]
	}
	return "unknown"
}

// LookupTyLit maps a keyword to its type literal.
func LookupTyLit(name string) (TyLit, bool) {
	for i, n := range tyLitNames {
		if n == name {
			return TyLit(i), true
		}
	}
	return 0, false
}
