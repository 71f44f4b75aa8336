// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package constant

import "math"

// The folding functions report ok=false when the operands cannot be
// folded: mismatched kinds, integer division by zero, or a float result
// that is not finite. Callers fall back to rendering source text.

// Add returns x + y.
func Add(x, y Value) (Value, bool) {
	return arith(x, y, func(a, b int32) int32 { return a + b }, func(a, b float64) float64 { return a + b })
}

// Sub returns x - y.
func Sub(x, y Value) (Value, bool) {
	return arith(x, y, func(a, b int32) int32 { return a - b }, func(a, b float64) float64 { return a - b })
}

// Mul returns x * y.
func Mul(x, y Value) (Value, bool) {
	return arith(x, y, func(a, b int32) int32 { return a * b }, func(a, b float64) float64 { return a * b })
}

// Div returns x / y. Integer division truncates toward zero.
func Div(x, y Value) (Value, bool) {
	if x.kind == Int && y.kind == Int && y.i == 0 {
		return Value{}, false
	}
	return arith(x, y, func(a, b int32) int32 { return a / b }, func(a, b float64) float64 { return a / b })
}

func arith(x, y Value, fi func(int32, int32) int32, ff func(float64, float64) float64) (Value, bool) {
	if x.kind != y.kind {
		return Value{}, false
	}
	switch x.kind {
	case Int:
		return MakeInt(fi(x.i, y.i)), true
	case Float:
		f := ff(x.f, y.f)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, false
		}
		return MakeFloat(f), true
	default:
		return Value{}, false
	}
}

// Neg returns -x.
func Neg(x Value) (Value, bool) {
	switch x.kind {
	case Int:
		return MakeInt(-x.i), true
	case Float:
		return MakeFloat(-x.f), true
	default:
		return Value{}, false
	}
}

// Not returns !x.
func Not(x Value) (Value, bool) {
	if x.kind != Bool {
		return Value{}, false
	}
	return MakeBool(!x.b), true
}

// Equal returns x == y.
func Equal(x, y Value) (Value, bool) {
	if x.kind != y.kind {
		return Value{}, false
	}
	return MakeBool(x == y), true
}

// NotEqual returns x != y.
func NotEqual(x, y Value) (Value, bool) {
	v, ok := Equal(x, y)
	if !ok {
		return Value{}, false
	}
	return MakeBool(!v.b), true
}

// Less returns x < y.
func Less(x, y Value) (Value, bool) {
	return compare(x, y, func(c int) bool { return c < 0 })
}

// LessEqual returns x <= y.
func LessEqual(x, y Value) (Value, bool) {
	return compare(x, y, func(c int) bool { return c <= 0 })
}

// Greater returns x > y.
func Greater(x, y Value) (Value, bool) {
	return compare(x, y, func(c int) bool { return c > 0 })
}

// GreaterEqual returns x >= y.
func GreaterEqual(x, y Value) (Value, bool) {
	return compare(x, y, func(c int) bool { return c >= 0 })
}

func compare(x, y Value, pred func(int) bool) (Value, bool) {
	if x.kind != y.kind {
		return Value{}, false
	}
	var c int
	switch x.kind {
	case Int:
		c = cmp3(x.i < y.i, x.i > y.i)
	case Float:
		if math.IsNaN(x.f) || math.IsNaN(y.f) {
			return Value{}, false
		}
		c = cmp3(x.f < y.f, x.f > y.f)
	default:
		return Value{}, false
	}
	return MakeBool(pred(c)), true
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	default:
		return 0
	}
}

// Convert converts x to kind k the way a scalar constructor does:
// bool(x) tests for non-zero, int(x) truncates, float(x) widens.
func Convert(x Value, k Kind) Value {
	switch k {
	case Bool:
		switch x.kind {
		case Int:
			return MakeBool(x.i != 0)
		case Float:
			return MakeBool(x.f != 0)
		}
		return x
	case Int:
		switch x.kind {
		case Bool:
			if x.b {
				return MakeInt(1)
			}
			return MakeInt(0)
		case Float:
			return MakeInt(int32(x.f))
		}
		return x
	case Float:
		switch x.kind {
		case Bool:
			if x.b {
				return MakeFloat(1)
			}
			return MakeFloat(0)
		case Int:
			return MakeFloat(float64(x.i))
		}
		return x
	default:
		return x
	}
}
