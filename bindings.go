// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shadegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/emit"
)

// Bindings is the binding metadata of a compiled shader in a form a
// renderer can load: every interface variable with its type and the name
// it has in the generated source, plus what each stage touches.
type Bindings struct {
	Attributes    []Binding      `toml:"attributes"`
	UniformBlocks []UniformBlock `toml:"uniform-blocks"`
	Varyings      []Binding      `toml:"varyings"`
	Vertex        StageBindings  `toml:"vertex"`
	Fragment      StageBindings  `toml:"fragment"`
}

// Binding describes one interface variable.
type Binding struct {
	Name   string `toml:"name"`
	Type   string `toml:"type"`
	Symbol string `toml:"symbol"`
}

// UniformBlock lists the uniforms of one block in declaration order.
type UniformBlock struct {
	Name     string    `toml:"name"`
	Uniforms []Binding `toml:"uniforms"`
}

// StageBindings records the effects of a stage function.
type StageBindings struct {
	Functions       []string `toml:"functions"`
	UniformBlocks   []string `toml:"uniform-blocks"`
	ReadsAttributes bool     `toml:"reads-attributes"`
	ReadsVaryings   bool     `toml:"reads-varyings"`
	WritesVaryings  bool     `toml:"writes-varyings"`
}

// NewBindings collects the binding metadata of out. Symbols are rendered
// with hooks, which must be the hooks out was emitted with.
func NewBindings(out *emit.ShaderAttrs, hooks emit.Hooks) *Bindings {
	symbol := func(write func(sb *strings.Builder)) string {
		var sb strings.Builder
		write(&sb)
		return sb.String()
	}

	b := &Bindings{
		Vertex:   newStageBindings(out.VertexDeps),
		Fragment: newStageBindings(out.FragmentDeps),
	}
	for _, a := range out.AttributeDeclsAttrs {
		b.Attributes = append(b.Attributes, Binding{
			Name:   string(a.Ident),
			Type:   a.Ty.String(),
			Symbol: symbol(func(sb *strings.Builder) { hooks.WriteAttributeVar(sb, a.Ident) }),
		})
	}
	for _, block := range out.UniformBlockIdents {
		ub := UniformBlock{Name: string(block)}
		for _, u := range out.UniformDeclsAttrsByBlockIdent[block] {
			ub.Uniforms = append(ub.Uniforms, Binding{
				Name:   string(u.Ident),
				Type:   u.Ty.String(),
				Symbol: symbol(func(sb *strings.Builder) { hooks.WriteUniformVar(sb, block, u.Ident) }),
			})
		}
		b.UniformBlocks = append(b.UniformBlocks, ub)
	}
	for _, v := range out.VaryingDeclsAttrs {
		b.Varyings = append(b.Varyings, Binding{
			Name:   string(v.Ident),
			Type:   v.Ty.String(),
			Symbol: symbol(func(sb *strings.Builder) { hooks.WriteVaryingVar(sb, v.Ident) }),
		})
	}
	return b
}

func newStageBindings(deps emit.Deps) StageBindings {
	return StageBindings{
		Functions:       identStrings(deps.FnIdents()),
		UniformBlocks:   identStrings(deps.UniformBlockIdents()),
		ReadsAttributes: deps.HasAttributes,
		ReadsVaryings:   deps.HasInputVaryings,
		WritesVaryings:  deps.HasOutputVaryings,
	}
}

func identStrings(idents []ast.Ident) []string {
	out := make([]string, len(idents))
	for i, ident := range idents {
		out[i] = string(ident)
	}
	return out
}

// WriteTOML encodes b as TOML.
func (b *Bindings) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("bindings: %w", err)
	}
	return nil
}

// ReadBindings decodes bindings written by WriteTOML.
func ReadBindings(r io.Reader) (*Bindings, error) {
	b := &Bindings{}
	if err := toml.NewDecoder(r).Decode(b); err != nil {
		return nil, fmt.Errorf("bindings: %w", err)
	}
	return b, nil
}
