// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"maps"
	"slices"

	"github.com/gogpu/shadegen/ast"
)

// Deps records the effects a piece of code transitively has: the user
// functions it calls, the uniform blocks it reads, and whether it reads
// attributes, reads varyings or writes varyings.
//
// Deps values are immutable once built. Union never modifies its operands,
// so sets may be shared between values.
type Deps struct {
	fnIdents           map[ast.Ident]struct{}
	uniformBlockIdents map[ast.Ident]struct{}

	HasAttributes     bool
	HasInputVaryings  bool
	HasOutputVaryings bool
}

// Union returns the combined effects of d and other.
func (d Deps) Union(other Deps) Deps {
	return Deps{
		fnIdents:           unionSet(d.fnIdents, other.fnIdents),
		uniformBlockIdents: unionSet(d.uniformBlockIdents, other.uniformBlockIdents),
		HasAttributes:      d.HasAttributes || other.HasAttributes,
		HasInputVaryings:   d.HasInputVaryings || other.HasInputVaryings,
		HasOutputVaryings:  d.HasOutputVaryings || other.HasOutputVaryings,
	}
}

// HasFn reports whether ident is among the called functions.
func (d Deps) HasFn(ident ast.Ident) bool {
	_, ok := d.fnIdents[ident]
	return ok
}

// HasUniformBlock reports whether the uniform block is read.
func (d Deps) HasUniformBlock(ident ast.Ident) bool {
	_, ok := d.uniformBlockIdents[ident]
	return ok
}

// FnIdents returns the called functions in sorted order.
func (d Deps) FnIdents() []ast.Ident {
	return slices.Sorted(maps.Keys(d.fnIdents))
}

// UniformBlockIdents returns the read uniform blocks in sorted order.
func (d Deps) UniformBlockIdents() []ast.Ident {
	return slices.Sorted(maps.Keys(d.uniformBlockIdents))
}

// IsEmpty reports whether d records no effect at all.
func (d Deps) IsEmpty() bool {
	return len(d.fnIdents) == 0 && len(d.uniformBlockIdents) == 0 &&
		!d.HasAttributes && !d.HasInputVaryings && !d.HasOutputVaryings
}

func fnDeps(ident ast.Ident) Deps {
	return Deps{fnIdents: map[ast.Ident]struct{}{ident: {}}}
}

func uniformDeps(blockIdent ast.Ident) Deps {
	return Deps{uniformBlockIdents: map[ast.Ident]struct{}{blockIdent: {}}}
}

func unionSet(a, b map[ast.Ident]struct{}) map[ast.Ident]struct{} {
	switch {
	case len(b) == 0:
		return a
	case len(a) == 0:
		return b
	}
	out := make(map[ast.Ident]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}
