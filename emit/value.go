// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"fmt"

	"github.com/gogpu/shadegen/constant"
	"github.com/gogpu/shadegen/types"
)

// ValueOrString is the synthesized value of an expression: a Constant when
// the expression was evaluated at compile time, otherwise Rendered source text.
type ValueOrString interface {
	valueOrString()
}

// Constant is a compile-time evaluated expression.
type Constant struct {
	Value constant.Value
}

// Rendered is the target source text of an expression.
type Rendered string

func (Constant) valueOrString() {}
func (Rendered) valueOrString() {}

// Render returns the source text of v.
func Render(v ValueOrString) string {
	switch v := v.(type) {
	case Constant:
		return v.Value.String()
	case Rendered:
		return string(v)
	default:
		panic(fmt.Sprintf("unexpected value or string %T", v))
	}
}

// ExprAttrs are the synthesized attributes of an expression.
type ExprAttrs struct {
	Ty            types.Ty
	Deps          Deps
	ValueOrString ValueOrString
}

// Value returns the constant value of the expression, if it has one.
func (a ExprAttrs) Value() (constant.Value, bool) {
	c, ok := a.ValueOrString.(Constant)
	return c.Value, ok
}

// String returns the source text of the expression.
func (a ExprAttrs) String() string {
	return Render(a.ValueOrString)
}
