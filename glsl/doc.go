// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl renders emitted shaders as GLSL (OpenGL Shading Language).
//
// Hooks implements emit.Hooks for one language version. Each stage is
// rendered as a complete translation unit with its own main function:
//
//   - GLSL ES 1.00: WebGL 1.0, attribute/varying interfaces, gl_FragColor
//   - GLSL ES 3.00: WebGL 2.0, in/out interfaces, std140 uniform blocks
//   - GLSL 3.30 Core: Desktop OpenGL 3.3+
//
// # Basic Usage
//
//	hooks := glsl.New(glsl.Options{LangVersion: glsl.VersionES300})
//	attrs, err := emit.New().Emit(shader, hooks)
//
// # Naming
//
// Interface variables are written with a prefix naming their kind:
// a_ for attributes, u_ for uniforms and v_ for varyings. The fragment
// output of in/out versions is o_color.
//
// Varyings GLSL cannot pass between stages (booleans, and integers in
// ES 1.00) become private globals. Each is carried by an interface
// variable named with an i_ prefix, of type int/ivec (flat) or float/vec,
// and main converts between the two.
//
// # Reserved Words
//
// GLSL has hundreds of reserved words (including future reserved).
// User identifiers that conflict with one of them, or with a reserved
// prefix, are escaped by prefixing them with an underscore.
package glsl
