// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package constant implements compile-time values of the shading language.
//
// Values are scalars (bool, int, float). Integers follow 32-bit two's
// complement wrapping like GLSL int; floats are folded in float64 and are
// only produced while they stay finite.
package constant

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the kind of a Value.
type Kind uint8

const (
	Bool Kind = iota
	Int
	Float
)

// String returns the type keyword of the kind.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "unknown"
	}
}

// Value is a compile-time constant. The zero Value is bool false.
// Values are comparable with ==.
type Value struct {
	kind Kind
	b    bool
	i    int32
	f    float64
}

// MakeBool returns a bool value.
func MakeBool(b bool) Value {
	return Value{kind: Bool, b: b}
}

// MakeInt returns an int value.
func MakeInt(i int32) Value {
	return Value{kind: Int, i: i}
}

// MakeFloat returns a float value.
func MakeFloat(f float64) Value {
	return Value{kind: Float, f: f}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the value of a bool constant.
func (v Value) Bool() bool { return v.b }

// Int returns the value of an int constant.
func (v Value) Int() int32 { return v.i }

// Float returns the value of a float constant.
func (v Value) Float() float64 { return v.f }

// String returns the value as a shading-language literal.
// Float literals always carry a decimal point or an exponent.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.b)
	case Int:
		return strconv.FormatInt(int64(v.i), 10)
	case Float:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s
	default:
		return "?"
	}
}

// Parse classifies a literal lexeme. Lexemes containing '.', 'e' or 'E'
// are floats; "true" and "false" are bools; everything else is an int.
func Parse(lexeme string) (Value, error) {
	switch lexeme {
	case "true":
		return MakeBool(true), nil
	case "false":
		return MakeBool(false), nil
	}
	if strings.ContainsAny(lexeme, ".eE") && !strings.HasPrefix(strings.ToLower(lexeme), "0x") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float literal %q: %w", lexeme, err)
		}
		if math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("float literal %q out of range", lexeme)
		}
		return MakeFloat(f), nil
	}
	i, err := strconv.ParseInt(lexeme, 0, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid int literal %q: %w", lexeme, err)
	}
	if i > math.MaxUint32 {
		return Value{}, fmt.Errorf("int literal %q out of range", lexeme)
	}
	return MakeInt(int32(uint32(i))), nil
}
