// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shadegen compiles a small typed shading language into a pair of
// GLSL programs, one per stage, plus the binding metadata a renderer needs
// to feed them.
//
// A shader declares attributes, uniforms grouped into blocks, varyings,
// structs and functions. The functions named vertex and fragment are the
// entry points of the two stages:
//
//	source := `
//	attribute pos: vec2;
//	uniform tint: vec4;
//	varying uv: vec2;
//
//	fn vertex() -> vec4 {
//	    uv = pos;
//	    return vec4(pos, 0.0, 1.0);
//	}
//
//	fn fragment() -> vec4 {
//	    return tint * vec4(uv, 0.0, 1.0);
//	}
//	`
//	out, err := shadegen.Compile(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out.VertexString, out.FragmentString)
//
// The pipeline is also available stage by stage: Parse produces the AST and
// Emit validates it and renders it with any emit.Hooks dialect.
package shadegen

import (
	"fmt"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/emit"
	"github.com/gogpu/shadegen/glsl"
	"github.com/gogpu/shadegen/syntax"
)

// CompileOptions configures shader compilation.
type CompileOptions struct {
	// GLSL selects the target dialect.
	GLSL glsl.Options

	// Builtins are added to the default builtin function table.
	Builtins []emit.Builtin
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		GLSL: glsl.DefaultOptions(),
	}
}

// Compile compiles shader source to GLSL using default options.
func Compile(source string) (*emit.ShaderAttrs, error) {
	return CompileWithOptions(source, DefaultOptions())
}

// CompileWithOptions compiles shader source to GLSL with custom options.
//
// The compilation pipeline is:
//  1. Parse source to AST
//  2. Validate the AST and render both stages with the GLSL hooks
//
// Errors keep their concrete types (*syntax.ErrorList, *emit.Error) behind
// the wrapping, so callers can render them with source context.
func CompileWithOptions(source string, opts CompileOptions) (*emit.ShaderAttrs, error) {
	shader, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return Emit(shader, glsl.New(opts.GLSL), opts.Builtins...)
}

// Parse parses shader source to AST.
func Parse(source string) (*ast.ParsedShader, error) {
	shader, err := syntax.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	Logger().Debug("shadegen: parsed", "decls", len(shader.Decls))
	return shader, nil
}

// Emit validates shader and renders it with hooks.
func Emit(shader *ast.ParsedShader, hooks emit.Hooks, builtins ...emit.Builtin) (*emit.ShaderAttrs, error) {
	e := emit.New(emit.WithLogger(Logger()), emit.WithBuiltins(builtins...))
	out, err := e.Emit(shader, hooks)
	if err != nil {
		return nil, fmt.Errorf("emit error: %w", err)
	}
	Logger().Debug("shadegen: emitted",
		"uniform_blocks", len(out.UniformBlockIdents),
		"vertex_fns", len(out.VertexDeps.FnIdents()),
		"fragment_fns", len(out.FragmentDeps.FnIdents()))
	return out, nil
}
