// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

// Builtin is a builtin function with its overloads.
type Builtin struct {
	Ident     ast.Ident
	Overloads []Overload
}

var (
	genTys   = []types.Ty{types.Float, types.Vec2, types.Vec3, types.Vec4}
	vecTys   = []types.Ty{types.Vec2, types.Vec3, types.Vec4}
	ivecTys  = []types.Ty{types.Ivec2, types.Ivec3, types.Ivec4}
	bvecTys  = []types.Ty{types.Bvec2, types.Bvec3, types.Bvec4}
	matTys   = []types.Ty{types.Mat2, types.Mat3, types.Mat4}
	floatTy  = types.Ty(types.Float)
	boolTy   = types.Ty(types.Bool)
	unaryFns = []ast.Ident{
		"radians", "degrees", "sin", "cos", "tan", "asin", "acos", "atan",
		"exp", "log", "exp2", "log2", "sqrt", "inversesqrt",
		"abs", "sign", "floor", "ceil", "fract", "normalize",
	}
)

func sig(ret types.Ty, params ...types.Ty) Overload {
	return Overload{ParamTys: params, ReturnTy: ret}
}

// DefaultBuiltins returns the builtin function table every Emitter starts with.
func DefaultBuiltins() []Builtin {
	var out []Builtin
	add := func(ident ast.Ident, overloads ...Overload) {
		out = append(out, Builtin{Ident: ident, Overloads: overloads})
	}
	perGen := func(f func(g types.Ty) []Overload) []Overload {
		var os []Overload
		for _, g := range genTys {
			os = append(os, f(g)...)
		}
		return os
	}

	for _, ident := range unaryFns {
		add(ident, perGen(func(g types.Ty) []Overload {
			if ident == "atan" {
				// atan(y, x)
				return []Overload{sig(g, g), sig(g, g, g)}
			}
			return []Overload{sig(g, g)}
		})...)
	}

	add("pow", perGen(func(g types.Ty) []Overload { return []Overload{sig(g, g, g)} })...)
	for _, ident := range []ast.Ident{"mod", "min", "max"} {
		add(ident, perGen(func(g types.Ty) []Overload {
			if g == floatTy {
				return []Overload{sig(g, g, g)}
			}
			return []Overload{sig(g, g, g), sig(g, g, floatTy)}
		})...)
	}
	add("clamp", perGen(func(g types.Ty) []Overload {
		if g == floatTy {
			return []Overload{sig(g, g, g, g)}
		}
		return []Overload{sig(g, g, g, g), sig(g, g, floatTy, floatTy)}
	})...)
	add("mix", perGen(func(g types.Ty) []Overload {
		if g == floatTy {
			return []Overload{sig(g, g, g, g)}
		}
		return []Overload{sig(g, g, g, g), sig(g, g, g, floatTy)}
	})...)
	add("step", perGen(func(g types.Ty) []Overload {
		if g == floatTy {
			return []Overload{sig(g, g, g)}
		}
		return []Overload{sig(g, g, g), sig(g, floatTy, g)}
	})...)
	add("smoothstep", perGen(func(g types.Ty) []Overload {
		if g == floatTy {
			return []Overload{sig(g, g, g, g)}
		}
		return []Overload{sig(g, g, g, g), sig(g, floatTy, floatTy, g)}
	})...)

	add("length", perGen(func(g types.Ty) []Overload { return []Overload{sig(floatTy, g)} })...)
	add("distance", perGen(func(g types.Ty) []Overload { return []Overload{sig(floatTy, g, g)} })...)
	add("dot", perGen(func(g types.Ty) []Overload { return []Overload{sig(floatTy, g, g)} })...)
	add("cross", sig(types.Vec3, types.Vec3, types.Vec3))
	add("reflect", perGen(func(g types.Ty) []Overload { return []Overload{sig(g, g, g)} })...)
	add("refract", perGen(func(g types.Ty) []Overload { return []Overload{sig(g, g, g, floatTy)} })...)
	add("faceforward", perGen(func(g types.Ty) []Overload { return []Overload{sig(g, g, g, g)} })...)

	var matOps []Overload
	for _, m := range matTys {
		matOps = append(matOps, sig(m, m, m))
	}
	add("matrixCompMult", matOps...)

	relational := func(withBool bool) []Overload {
		var os []Overload
		for i, b := range bvecTys {
			os = append(os, sig(b, vecTys[i], vecTys[i]), sig(b, ivecTys[i], ivecTys[i]))
			if withBool {
				os = append(os, sig(b, b, b))
			}
		}
		return os
	}
	for _, ident := range []ast.Ident{"lessThan", "lessThanEqual", "greaterThan", "greaterThanEqual"} {
		add(ident, relational(false)...)
	}
	add("equal", relational(true)...)
	add("notEqual", relational(true)...)

	var reductions, nots []Overload
	for _, b := range bvecTys {
		reductions = append(reductions, sig(boolTy, b))
		nots = append(nots, sig(b, b))
	}
	add("any", reductions...)
	add("all", reductions...)
	add("not", nots...)

	return out
}
