// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"strings"

	"github.com/gogpu/shadegen/ast"
)

// Stage identifies a shader stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// EntryPoint returns the identifier of the function implementing the stage.
func (s Stage) EntryPoint() ast.Ident {
	return ast.Ident(s.String())
}

// Hooks renders target-dialect spelling. The emitter never branches on
// the dialect itself; every difference between targets lives behind this
// interface. Implementations only append to out.
//
// Declarators passed to hooks are already rendered in C style, for
// example "vec2 uv" or "float weights[4]".
type Hooks interface {
	// WriteIdent writes a user identifier: a function, struct, member,
	// parameter or local.
	WriteIdent(out *strings.Builder, ident ast.Ident)
	// WriteBuiltinIdent writes the target name of a builtin function.
	WriteBuiltinIdent(out *strings.Builder, ident ast.Ident)
	// WriteAttributeVar writes a reference to an attribute variable.
	WriteAttributeVar(out *strings.Builder, ident ast.Ident)
	// WriteUniformVar writes a reference to a uniform variable.
	WriteUniformVar(out *strings.Builder, blockIdent, ident ast.Ident)
	// WriteVaryingVar writes a reference to a varying variable.
	WriteVaryingVar(out *strings.Builder, ident ast.Ident)
	// WriteParams writes the parenthesized parameter list of a function
	// whose body has the given deps.
	WriteParams(out *strings.Builder, deps Deps, params []string)
	// WriteArgs writes the parenthesized argument list of a call to a
	// function with the given deps.
	WriteArgs(out *strings.Builder, deps Deps, args []string)
	// WriteTyLit writes a type keyword.
	WriteTyLit(out *strings.Builder, lit ast.TyLit)
	// UseSharedDecls reports whether both stages are emitted into one
	// translation unit, so the fragment text must not repeat declarations
	// already present in the vertex text.
	UseSharedDecls() bool

	// WritePrelude writes what precedes all declarations of a stage.
	WritePrelude(out *strings.Builder, stage Stage)
	// WriteAttributeDecl writes the declaration of an attribute variable.
	WriteAttributeDecl(out *strings.Builder, declarator string)
	// WriteUniformBlock writes the declarations of one uniform block.
	WriteUniformBlock(out *strings.Builder, blockIdent ast.Ident, declarators []string)
	// WriteVaryingDecl writes the declaration of a varying variable for a stage.
	WriteVaryingDecl(out *strings.Builder, stage Stage, declarator string)
	// WriteEntryPoint writes the wrapper that calls the stage function.
	// varyings holds the declarators of every varying variable.
	WriteEntryPoint(out *strings.Builder, stage Stage, ident ast.Ident, varyings []string)
}
