// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ast defines the syntax tree of the shading language.
//
// A ParsedShader is produced by the syntax package (or built directly by a
// host program) and consumed read-only by the emit package. Identifiers are
// plain comparable values and literals are already classified into
// constant values, so the emitter never re-inspects source text.
package ast

import (
	"fmt"
	"strings"
)

// Ident is a name in the shading language.
type Ident string

// String returns the identifier text.
func (i Ident) String() string { return string(i) }

// Position represents a position in source code.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span represents a source code location span.
type Span struct {
	Start Position
	End   Position
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s.Start.Line == 0
}

// String formats the span start as line:column.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// ParsedShader is a whole shader translation unit.
type ParsedShader struct {
	Decls []Decl
}

// Decl is the interface for top-level declarations.
type Decl interface {
	Node
	declNode()
}

// AttributeDecl declares a per-vertex input.
type AttributeDecl struct {
	Ident  Ident
	TyExpr TyExpr
	Span   Span
}

func (d *AttributeDecl) Pos() Span { return d.Span }
func (d *AttributeDecl) declNode() {}

// FnDecl declares a function.
type FnDecl struct {
	Ident        Ident
	Params       []*Param
	ReturnTyExpr TyExpr // nil means void
	Block        *Block
	Span         Span
}

func (d *FnDecl) Pos() Span { return d.Span }
func (d *FnDecl) declNode() {}

// Param is a function parameter.
type Param struct {
	Ident  Ident
	TyExpr TyExpr
	Span   Span
}

func (p *Param) Pos() Span { return p.Span }

// StructDecl declares a struct type.
type StructDecl struct {
	Ident   Ident
	Members []*Member
	Span    Span
}

func (d *StructDecl) Pos() Span { return d.Span }
func (d *StructDecl) declNode() {}

// Member is a struct member.
type Member struct {
	Ident  Ident
	TyExpr TyExpr
	Span   Span
}

func (m *Member) Pos() Span { return m.Span }

// DefaultBlockIdent is the uniform block used when a uniform names none.
const DefaultBlockIdent Ident = "default"

// UniformDecl declares a uniform variable.
type UniformDecl struct {
	Ident  Ident
	TyExpr TyExpr
	// BlockIdent is empty when the declaration names no block.
	BlockIdent Ident
	Span       Span
}

func (d *UniformDecl) Pos() Span { return d.Span }
func (d *UniformDecl) declNode() {}

// Block returns the uniform block the declaration belongs to.
func (d *UniformDecl) Block() Ident {
	if d.BlockIdent == "" {
		return DefaultBlockIdent
	}
	return d.BlockIdent
}

// VaryingDecl declares a value interpolated from the vertex to the fragment stage.
type VaryingDecl struct {
	Ident  Ident
	TyExpr TyExpr
	Span   Span
}

func (d *VaryingDecl) Pos() Span { return d.Span }
func (d *VaryingDecl) declNode() {}

// Excerpt renders the source line holding the span start with a caret
// under the start column. It reports false when the span does not fall
// within source.
func (s Span) Excerpt(source string) (string, bool) {
	if source == "" || s.IsZero() {
		return "", false
	}
	lines := strings.Split(source, "\n")
	lineNum := s.Start.Line
	if lineNum < 1 || lineNum > len(lines) {
		return "", false
	}

	line := lines[lineNum-1]
	col := max(s.Start.Column, 1)
	col = min(col, len(line)+1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String(), true
}
