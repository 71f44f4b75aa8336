// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package types defines the closed set of shading-language types and the
// operator tables the emitter checks expressions against.
//
// Ty values are comparable with ==: two types are the same exactly when
// they compare equal.
package types

import (
	"fmt"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/constant"
)

// Ty is a shading-language type: a Basic, an Array or a Struct.
type Ty interface {
	String() string
	tyNode()
}

// Basic enumerates the non-aggregate types.
type Basic uint8

const (
	Void Basic = iota
	Bool
	Int
	Float
	Bvec2
	Bvec3
	Bvec4
	Ivec2
	Ivec3
	Ivec4
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

var basicNames = [...]string{
	Void:  "void",
	Bool:  "bool",
	Int:   "int",
	Float: "float",
	Bvec2: "bvec2",
	Bvec3: "bvec3",
	Bvec4: "bvec4",
	Ivec2: "ivec2",
	Ivec3: "ivec3",
	Ivec4: "ivec4",
	Vec2:  "vec2",
	Vec3:  "vec3",
	Vec4:  "vec4",
	Mat2:  "mat2",
	Mat3:  "mat3",
	Mat4:  "mat4",
}

func (b Basic) String() string {
	if int(b) < len(basicNames) {
		return basicNames[b]
	}
	return fmt.Sprintf("basic(%d)", uint8(b))
}

func (Basic) tyNode() {}

// Array is a fixed-length array.
type Array struct {
	Elem Ty
	Len  int
}

func (a Array) String() string {
	return fmt.Sprintf("%s[%d]", a.Elem, a.Len)
}

func (Array) tyNode() {}

// Struct is a user-declared struct type.
type Struct struct {
	Ident ast.Ident
}

func (s Struct) String() string { return string(s.Ident) }

func (Struct) tyNode() {}

// FromTyLit converts a type keyword to its type.
func FromTyLit(lit ast.TyLit) Basic {
	switch lit {
	case ast.TyLitBool:
		return Bool
	case ast.TyLitInt:
		return Int
	case ast.TyLitFloat:
		return Float
	case ast.TyLitBvec2:
		return Bvec2
	case ast.TyLitBvec3:
		return Bvec3
	case ast.TyLitBvec4:
		return Bvec4
	case ast.TyLitIvec2:
		return Ivec2
	case ast.TyLitIvec3:
		return Ivec3
	case ast.TyLitIvec4:
		return Ivec4
	case ast.TyLitVec2:
		return Vec2
	case ast.TyLitVec3:
		return Vec3
	case ast.TyLitVec4:
		return Vec4
	case ast.TyLitMat2:
		return Mat2
	case ast.TyLitMat3:
		return Mat3
	case ast.TyLitMat4:
		return Mat4
	default:
		panic(fmt.Sprintf("unknown type literal %d", lit))
	}
}

// TyLit converts a non-void Basic to its type keyword.
func (b Basic) TyLit() (ast.TyLit, bool) {
	switch b {
	case Bool:
		return ast.TyLitBool, true
	case Int:
		return ast.TyLitInt, true
	case Float:
		return ast.TyLitFloat, true
	case Bvec2:
		return ast.TyLitBvec2, true
	case Bvec3:
		return ast.TyLitBvec3, true
	case Bvec4:
		return ast.TyLitBvec4, true
	case Ivec2:
		return ast.TyLitIvec2, true
	case Ivec3:
		return ast.TyLitIvec3, true
	case Ivec4:
		return ast.TyLitIvec4, true
	case Vec2:
		return ast.TyLitVec2, true
	case Vec3:
		return ast.TyLitVec3, true
	case Vec4:
		return ast.TyLitVec4, true
	case Mat2:
		return ast.TyLitMat2, true
	case Mat3:
		return ast.TyLitMat3, true
	case Mat4:
		return ast.TyLitMat4, true
	default:
		return 0, false
	}
}

// FromConstantKind returns the type of a constant value kind.
func FromConstantKind(k constant.Kind) Basic {
	switch k {
	case constant.Bool:
		return Bool
	case constant.Int:
		return Int
	case constant.Float:
		return Float
	default:
		panic(fmt.Sprintf("unknown constant kind %d", k))
	}
}

// ConstantKind returns the constant kind of a scalar type.
func ConstantKind(ty Ty) (constant.Kind, bool) {
	switch ty {
	case Bool:
		return constant.Bool, true
	case Int:
		return constant.Int, true
	case Float:
		return constant.Float, true
	default:
		return 0, false
	}
}

// IsScalar reports whether ty is bool, int or float.
func IsScalar(ty Ty) bool {
	return ty == Bool || ty == Int || ty == Float
}

// IsVector reports whether ty is a bool, int or float vector.
func IsVector(ty Ty) bool {
	b, ok := ty.(Basic)
	return ok && b >= Bvec2 && b <= Vec4
}

// IsMatrix reports whether ty is a square float matrix.
func IsMatrix(ty Ty) bool {
	b, ok := ty.(Basic)
	return ok && b >= Mat2 && b <= Mat4
}

// IsScalarOrVector reports whether ty is a scalar or a vector.
func IsScalarOrVector(ty Ty) bool {
	return IsScalar(ty) || IsVector(ty)
}

// Scalar returns the component type of a scalar, vector or matrix.
func Scalar(ty Ty) (Basic, bool) {
	b, ok := ty.(Basic)
	if !ok {
		return 0, false
	}
	switch b {
	case Bool, Bvec2, Bvec3, Bvec4:
		return Bool, true
	case Int, Ivec2, Ivec3, Ivec4:
		return Int, true
	case Float, Vec2, Vec3, Vec4, Mat2, Mat3, Mat4:
		return Float, true
	default:
		return 0, false
	}
}

// Len returns the number of components of a vector, the number of
// columns of a matrix, or 1 for a scalar.
func Len(ty Ty) int {
	b, ok := ty.(Basic)
	if !ok {
		return 0
	}
	switch b {
	case Bool, Int, Float:
		return 1
	case Bvec2, Ivec2, Vec2, Mat2:
		return 2
	case Bvec3, Ivec3, Vec3, Mat3:
		return 3
	case Bvec4, Ivec4, Vec4, Mat4:
		return 4
	default:
		return 0
	}
}

// Slots returns the number of scalar components a constructor of ty
// consumes: 1 for scalars, N for vectors and N*N for matrices.
func Slots(ty Ty) int {
	if IsMatrix(ty) {
		n := Len(ty)
		return n * n
	}
	return Len(ty)
}

// Vector returns the vector type with the given component type and length.
// Length 1 yields the scalar itself.
func Vector(scalar Basic, n int) (Basic, bool) {
	if n == 1 {
		return scalar, IsScalar(scalar)
	}
	if n < 2 || n > 4 {
		return 0, false
	}
	switch scalar {
	case Bool:
		return Bvec2 + Basic(n-2), true
	case Int:
		return Ivec2 + Basic(n-2), true
	case Float:
		return Vec2 + Basic(n-2), true
	default:
		return 0, false
	}
}

// ColumnTy returns the column vector type of a matrix.
func ColumnTy(mat Ty) (Basic, bool) {
	if !IsMatrix(mat) {
		return 0, false
	}
	return Vector(Float, Len(mat))
}
