// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package types

import (
	"strings"

	"github.com/gogpu/shadegen/ast"
)

type binKey struct {
	op   ast.BinOp
	l, r Basic
}

type unKey struct {
	op ast.UnOp
	ty Basic
}

var (
	binTable = buildBinTable()
	unTable  = buildUnTable()
)

var (
	numericTys = []Basic{Int, Float, Ivec2, Ivec3, Ivec4, Vec2, Vec3, Vec4, Mat2, Mat3, Mat4}
	floatAggs  = []Basic{Vec2, Vec3, Vec4, Mat2, Mat3, Mat4}
	intVecs    = []Basic{Ivec2, Ivec3, Ivec4}
)

func buildBinTable() map[binKey]Basic {
	t := make(map[binKey]Basic)

	arith := make(map[binKey]Basic)
	for _, op := range []ast.BinOp{ast.BinOpAdd, ast.BinOpSub, ast.BinOpMul, ast.BinOpDiv} {
		for _, ty := range numericTys {
			arith[binKey{op, ty, ty}] = ty
		}
		for _, ty := range floatAggs {
			arith[binKey{op, Float, ty}] = ty
			arith[binKey{op, ty, Float}] = ty
		}
		for _, ty := range intVecs {
			arith[binKey{op, Int, ty}] = ty
			arith[binKey{op, ty, Int}] = ty
		}
	}
	// linear algebra products
	for i, vec := range []Basic{Vec2, Vec3, Vec4} {
		mat := Mat2 + Basic(i)
		arith[binKey{ast.BinOpMul, vec, mat}] = vec
		arith[binKey{ast.BinOpMul, mat, vec}] = vec
	}
	for k, ty := range arith {
		t[k] = ty
	}

	// An assignment form is valid when the plain operator yields the
	// type of the left operand.
	assignOf := map[ast.BinOp]ast.BinOp{
		ast.BinOpAdd: ast.BinOpAddAssign,
		ast.BinOpSub: ast.BinOpSubAssign,
		ast.BinOpMul: ast.BinOpMulAssign,
		ast.BinOpDiv: ast.BinOpDivAssign,
	}
	for k, ty := range arith {
		if ty == k.l {
			t[binKey{assignOf[k.op], k.l, k.r}] = ty
		}
	}

	for _, op := range []ast.BinOp{ast.BinOpLt, ast.BinOpLe, ast.BinOpGt, ast.BinOpGe} {
		t[binKey{op, Int, Int}] = Bool
		t[binKey{op, Float, Float}] = Bool
	}
	t[binKey{ast.BinOpAnd, Bool, Bool}] = Bool
	t[binKey{ast.BinOpOr, Bool, Bool}] = Bool

	return t
}

func buildUnTable() map[unKey]Basic {
	t := map[unKey]Basic{
		{ast.UnOpNot, Bool}: Bool,
	}
	for _, ty := range numericTys {
		t[unKey{ast.UnOpNeg, ty}] = ty
	}
	return t
}

// BinOpTy returns the result type of applying op to operands of type l and r.
// Assignment and equality accept any two equal non-void types (equality
// excludes arrays); every other operator is looked up in a finite table.
func BinOpTy(op ast.BinOp, l, r Ty) (Ty, bool) {
	switch op {
	case ast.BinOpAssign:
		if l == r && l != Void {
			return l, true
		}
		return nil, false
	case ast.BinOpEq, ast.BinOpNe:
		if _, isArray := l.(Array); l == r && l != Void && !isArray {
			return Bool, true
		}
		return nil, false
	}
	lb, lok := l.(Basic)
	rb, rok := r.(Basic)
	if !lok || !rok {
		return nil, false
	}
	ty, ok := binTable[binKey{op, lb, rb}]
	if !ok {
		return nil, false
	}
	return ty, true
}

// UnOpTy returns the result type of applying op to an operand of type ty.
func UnOpTy(op ast.UnOp, ty Ty) (Ty, bool) {
	b, ok := ty.(Basic)
	if !ok {
		return nil, false
	}
	res, ok := unTable[unKey{op, b}]
	if !ok {
		return nil, false
	}
	return res, true
}

// IndexTy returns the element type of indexing base with an index of type index.
func IndexTy(base, index Ty) (Ty, bool) {
	if index != Int {
		return nil, false
	}
	if arr, ok := base.(Array); ok {
		return arr.Elem, true
	}
	if IsVector(base) {
		s, _ := Scalar(base)
		return s, true
	}
	if IsMatrix(base) {
		col, _ := ColumnTy(base)
		return col, true
	}
	return nil, false
}

var swizzleSets = []string{"xyzw", "rgba"}

// Swizzle is a parsed vector component selection.
type Swizzle struct {
	Ty      Ty
	Indices []int
}

// HasDuplicates reports whether a component is selected more than once.
func (s Swizzle) HasDuplicates() bool {
	var seen [4]bool
	for _, i := range s.Indices {
		if seen[i] {
			return true
		}
		seen[i] = true
	}
	return false
}

// ParseSwizzle parses name as a component selection on vector type ty.
// All letters must come from one component set and address components
// that exist in ty.
func ParseSwizzle(ty Ty, name string) (Swizzle, bool) {
	if !IsVector(ty) || len(name) == 0 || len(name) > 4 {
		return Swizzle{}, false
	}
	n := Len(ty)
	for _, set := range swizzleSets {
		indices := make([]int, 0, len(name))
		for _, c := range name {
			i := strings.IndexRune(set, c)
			if i < 0 || i >= n {
				indices = nil
				break
			}
			indices = append(indices, i)
		}
		if indices == nil {
			continue
		}
		scalar, _ := Scalar(ty)
		res, ok := Vector(scalar, len(indices))
		if !ok {
			return Swizzle{}, false
		}
		return Swizzle{Ty: res, Indices: indices}, true
	}
	return Swizzle{}, false
}
