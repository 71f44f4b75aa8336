// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"strings"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

// ShaderAttrs is the result of emitting a shader.
type ShaderAttrs struct {
	// AttributeDeclsAttrs lists attribute variables in declaration order.
	AttributeDeclsAttrs []AttributeDeclAttrs
	// UniformDeclsAttrsByBlockIdent lists the uniform variables of each
	// block in declaration order.
	UniformDeclsAttrsByBlockIdent map[ast.Ident][]UniformDeclAttrs
	// UniformBlockIdents lists uniform blocks in order of first appearance.
	UniformBlockIdents []ast.Ident
	// VaryingDeclsAttrs lists varying variables in declaration order.
	VaryingDeclsAttrs []VaryingDeclAttrs

	// VertexDeps and FragmentDeps are the effects of the stage functions.
	VertexDeps   Deps
	FragmentDeps Deps

	VertexString   string
	FragmentString string
}

// programEmitter carries the decls shared by both stage texts.
type programEmitter struct {
	*shaderEmitter

	attributeDecls []string
	uniformDecls   map[ast.Ident][]string
	varyingDecls   []string

	// rendered records what an earlier stage text already declares.
	renderedFns     map[ast.Ident]bool
	renderedStructs map[ast.Ident]bool
}

// Emit validates shader and renders its vertex and fragment programs with
// hooks. The Emitter is not modified and may be reused after an error.
func (e *Emitter) Emit(shader *ast.ParsedShader, hooks Hooks) (*ShaderAttrs, error) {
	p := &programEmitter{
		shaderEmitter:   newShaderEmitter(e, hooks),
		uniformDecls:    make(map[ast.Ident][]string),
		renderedFns:     make(map[ast.Ident]bool),
		renderedStructs: make(map[ast.Ident]bool),
	}
	return p.emit(shader)
}

func (p *programEmitter) emit(shader *ast.ParsedShader) (*ShaderAttrs, error) {
	var (
		attributes []*ast.AttributeDecl
		uniforms   []*ast.UniformDecl
		varyings   []*ast.VaryingDecl
	)
	seen := make(map[ast.Ident]bool, len(shader.Decls))
	for _, decl := range shader.Decls {
		ident := declIdent(decl)
		if seen[ident] {
			return nil, &Error{Kind: ErrIdentCannotBeRedefined, Span: decl.Pos(), Ident: ident}
		}
		seen[ident] = true

		switch decl := decl.(type) {
		case *ast.AttributeDecl:
			attributes = append(attributes, decl)
		case *ast.FnDecl:
			p.addFnDecl(decl)
		case *ast.StructDecl:
			p.addStructDecl(decl)
		case *ast.UniformDecl:
			uniforms = append(uniforms, decl)
		case *ast.VaryingDecl:
			varyings = append(varyings, decl)
		}
	}

	out := &ShaderAttrs{UniformDeclsAttrsByBlockIdent: make(map[ast.Ident][]UniformDeclAttrs)}
	for _, decl := range attributes {
		attrs, text, err := p.emitAttributeDecl(decl)
		if err != nil {
			return nil, err
		}
		out.AttributeDeclsAttrs = append(out.AttributeDeclsAttrs, attrs)
		p.attributeDecls = append(p.attributeDecls, text)
	}
	for _, decl := range uniforms {
		attrs, text, err := p.emitUniformDecl(decl)
		if err != nil {
			return nil, err
		}
		block := attrs.BlockIdent
		if _, ok := out.UniformDeclsAttrsByBlockIdent[block]; !ok {
			out.UniformBlockIdents = append(out.UniformBlockIdents, block)
		}
		out.UniformDeclsAttrsByBlockIdent[block] = append(out.UniformDeclsAttrsByBlockIdent[block], attrs)
		p.uniformDecls[block] = append(p.uniformDecls[block], text)
	}
	for _, decl := range varyings {
		attrs, text, err := p.emitVaryingDecl(decl)
		if err != nil {
			return nil, err
		}
		out.VaryingDeclsAttrs = append(out.VaryingDeclsAttrs, attrs)
		p.varyingDecls = append(p.varyingDecls, text)
	}

	vertex, err := p.emitEntryPoint(StageVertex)
	if err != nil {
		return nil, err
	}
	out.VertexDeps = vertex.info.Deps
	out.VertexString = p.renderStage(StageVertex, vertex, out.UniformBlockIdents)

	if !p.hooks.UseSharedDecls() {
		p.resetFns()
	}

	fragment, err := p.emitEntryPoint(StageFragment)
	if err != nil {
		return nil, err
	}
	out.FragmentDeps = fragment.info.Deps
	out.FragmentString = p.renderStage(StageFragment, fragment, out.UniformBlockIdents)

	return out, nil
}

func declIdent(decl ast.Decl) ast.Ident {
	switch decl := decl.(type) {
	case *ast.AttributeDecl:
		return decl.Ident
	case *ast.FnDecl:
		return decl.Ident
	case *ast.StructDecl:
		return decl.Ident
	case *ast.UniformDecl:
		return decl.Ident
	case *ast.VaryingDecl:
		return decl.Ident
	default:
		panic("emit: unexpected declaration")
	}
}

// emitEntryPoint expands the function implementing stage and checks the
// stage contract.
func (p *programEmitter) emitEntryPoint(stage Stage) (*fnDeclAttrs, error) {
	ident := stage.EntryPoint()
	id, ok := p.fnIDs[ident]
	if !ok {
		return nil, &Error{Kind: ErrMissingFn, Ident: ident}
	}
	decl := p.fnDecls[id]
	if n := len(decl.Params); n > 0 {
		return nil, &Error{Kind: ErrTooManyParamsForFn, Span: decl.Span, Ident: ident, Got: n}
	}

	attrs, err := p.expandFn(id, decl.Span)
	if err != nil {
		return nil, err
	}
	if attrs.info.ReturnTy != types.Vec4 {
		return nil, &Error{
			Kind:       ErrMismatchedReturnTyForFn,
			Span:       decl.Span,
			Ident:      ident,
			ExpectedTy: types.Vec4,
			ActualTy:   attrs.info.ReturnTy,
		}
	}

	deps := attrs.info.Deps
	switch {
	case stage == StageVertex && deps.HasInputVaryings:
		return nil, &Error{Kind: ErrFnCannotReadFromVaryings, Span: decl.Span, Ident: ident}
	case stage == StageFragment && deps.HasOutputVaryings:
		return nil, &Error{Kind: ErrFnCannotWriteToVaryings, Span: decl.Span, Ident: ident}
	}
	return attrs, nil
}

// renderStage renders the program text of one stage: prelude, structs,
// uniform blocks, attributes, varyings, reachable functions and the
// entry-point wrapper. Sections are separated by a blank line.
//
// With shared declarations the fragment text leaves out everything the
// vertex text already declares.
func (p *programEmitter) renderStage(stage Stage, entry *fnDeclAttrs, blocks []ast.Ident) string {
	shared := p.hooks.UseSharedDecls()
	repeatDecls := !shared || stage == StageVertex

	var sections []string
	section := func(write func(sb *strings.Builder)) {
		var sb strings.Builder
		write(&sb)
		if sb.Len() > 0 {
			sections = append(sections, sb.String())
		}
	}
	list := func(texts []string) {
		if len(texts) > 0 {
			sections = append(sections, strings.Join(texts, "\n"))
		}
	}

	section(func(sb *strings.Builder) { p.hooks.WritePrelude(sb, stage) })

	var structs []string
	for _, id := range p.structOrder {
		ident := p.structDecls[id].Ident
		if shared && p.renderedStructs[ident] {
			continue
		}
		p.renderedStructs[ident] = true
		structs = append(structs, p.structMemo[id].text)
	}
	list(structs)

	if repeatDecls {
		section(func(sb *strings.Builder) {
			for _, block := range blocks {
				p.hooks.WriteUniformBlock(sb, block, p.uniformDecls[block])
			}
		})
	}
	if stage == StageVertex {
		section(func(sb *strings.Builder) {
			for _, decl := range p.attributeDecls {
				p.hooks.WriteAttributeDecl(sb, decl)
			}
		})
	}
	if repeatDecls {
		section(func(sb *strings.Builder) {
			for _, decl := range p.varyingDecls {
				p.hooks.WriteVaryingDecl(sb, stage, decl)
			}
		})
	}

	entryIdent := stage.EntryPoint()
	var fns []string
	for _, id := range p.fnOrder {
		ident := p.fnDecls[id].Ident
		if ident != entryIdent && !entry.info.Deps.HasFn(ident) {
			continue
		}
		if shared && p.renderedFns[ident] {
			continue
		}
		p.renderedFns[ident] = true
		fns = append(fns, p.fnMemo[id].text)
	}
	list(fns)

	section(func(sb *strings.Builder) { p.hooks.WriteEntryPoint(sb, stage, entryIdent, p.varyingDecls) })

	p.logger.Debug("emit: rendered stage", "stage", stage, "structs", len(structs), "fns", len(fns))
	return strings.Join(sections, "\n")
}
