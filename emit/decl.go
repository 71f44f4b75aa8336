// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"strings"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

// AttributeDeclAttrs describes an attribute variable.
type AttributeDeclAttrs struct {
	Ident ast.Ident
	Ty    types.Ty
}

// UniformDeclAttrs describes a uniform variable.
type UniformDeclAttrs struct {
	Ident      ast.Ident
	Ty         types.Ty
	BlockIdent ast.Ident
}

// VaryingDeclAttrs describes a varying variable.
type VaryingDeclAttrs struct {
	Ident ast.Ident
	Ty    types.Ty
}

func isAttributeTy(ty types.Ty) bool {
	switch ty {
	case types.Float, types.Vec2, types.Vec3, types.Vec4, types.Mat2, types.Mat3, types.Mat4:
		return true
	default:
		return false
	}
}

func isVaryingTy(ty types.Ty) bool {
	if arr, ok := ty.(types.Array); ok {
		return types.IsScalarOrVector(arr.Elem)
	}
	return types.IsScalarOrVector(ty)
}

func (s *shaderEmitter) emitAttributeDecl(decl *ast.AttributeDecl) (AttributeDeclAttrs, string, error) {
	ty, err := s.newDeclEmitter().emitTyExpr(decl.TyExpr)
	if err != nil {
		return AttributeDeclAttrs{}, "", err
	}
	if !isAttributeTy(ty) {
		return AttributeDeclAttrs{}, "", &Error{Kind: ErrInvalidTyForAttributeVar, Span: decl.TyExpr.Pos(), Ident: decl.Ident, ActualTy: ty}
	}
	if !s.scope.Insert(decl.Ident, &VarInfo{Ty: ty, Kind: VarAttribute}) {
		return AttributeDeclAttrs{}, "", &Error{Kind: ErrIdentCannotBeRedefined, Span: decl.Span, Ident: decl.Ident}
	}

	var name strings.Builder
	s.hooks.WriteAttributeVar(&name, decl.Ident)
	return AttributeDeclAttrs{Ident: decl.Ident, Ty: ty}, s.declarator(ty, name.String()), nil
}

func (s *shaderEmitter) emitUniformDecl(decl *ast.UniformDecl) (UniformDeclAttrs, string, error) {
	ty, err := s.newDeclEmitter().emitTyExpr(decl.TyExpr)
	if err != nil {
		return UniformDeclAttrs{}, "", err
	}
	block := decl.Block()
	if !s.scope.Insert(decl.Ident, &VarInfo{Ty: ty, Kind: VarUniform, BlockIdent: block}) {
		return UniformDeclAttrs{}, "", &Error{Kind: ErrIdentCannotBeRedefined, Span: decl.Span, Ident: decl.Ident}
	}

	var name strings.Builder
	s.hooks.WriteUniformVar(&name, block, decl.Ident)
	return UniformDeclAttrs{Ident: decl.Ident, Ty: ty, BlockIdent: block}, s.declarator(ty, name.String()), nil
}

func (s *shaderEmitter) emitVaryingDecl(decl *ast.VaryingDecl) (VaryingDeclAttrs, string, error) {
	ty, err := s.newDeclEmitter().emitTyExpr(decl.TyExpr)
	if err != nil {
		return VaryingDeclAttrs{}, "", err
	}
	if !isVaryingTy(ty) {
		return VaryingDeclAttrs{}, "", &Error{Kind: ErrInvalidTyForVaryingVar, Span: decl.TyExpr.Pos(), Ident: decl.Ident, ActualTy: ty}
	}
	if !s.scope.Insert(decl.Ident, &VarInfo{Ty: ty, Kind: VarVarying}) {
		return VaryingDeclAttrs{}, "", &Error{Kind: ErrIdentCannotBeRedefined, Span: decl.Span, Ident: decl.Ident}
	}

	var name strings.Builder
	s.hooks.WriteVaryingVar(&name, decl.Ident)
	return VaryingDeclAttrs{Ident: decl.Ident, Ty: ty}, s.declarator(ty, name.String()), nil
}

// emitFnDecl emits a function. Parameters and the top-level statements
// of the body share one scope.
func (s *shaderEmitter) emitFnDecl(decl *ast.FnDecl) (*fnDeclAttrs, error) {
	d := s.newDeclEmitter()
	d.pushScope()

	d.returnTy = types.Void
	if decl.ReturnTyExpr != nil {
		ty, err := d.emitTyExpr(decl.ReturnTyExpr)
		if err != nil {
			return nil, err
		}
		d.returnTy = ty
	}

	paramTys := make([]types.Ty, len(decl.Params))
	params := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		ty, err := d.emitTyExpr(p.TyExpr)
		if err != nil {
			return nil, err
		}
		if err := d.insert(p.Ident, &VarInfo{Ty: ty, Kind: VarLocal}, p.Span); err != nil {
			return nil, err
		}
		paramTys[i] = ty
		params[i] = s.declarator(ty, s.identText(p.Ident))
	}

	block, err := d.emitBlock(decl.Block, false)
	if err != nil {
		return nil, err
	}
	deps := block.deps
	if deps.HasInputVaryings && deps.HasOutputVaryings {
		return nil, &Error{Kind: ErrFnCannotReadFromAndWriteToVaryings, Span: decl.Span, Ident: decl.Ident}
	}

	var sb strings.Builder
	s.writeTy(&sb, d.returnTy)
	sb.WriteString(" ")
	s.hooks.WriteIdent(&sb, decl.Ident)
	s.hooks.WriteParams(&sb, deps, params)
	sb.WriteString(" ")
	sb.WriteString(block.render())
	sb.WriteString("\n")

	return &fnDeclAttrs{
		info: &FnInfo{ParamTys: paramTys, ReturnTy: d.returnTy, Deps: deps},
		text: sb.String(),
	}, nil
}

func (s *shaderEmitter) emitStructDecl(decl *ast.StructDecl) (*structDeclAttrs, error) {
	d := s.newDeclEmitter()
	info := &StructInfo{memberTys: make(map[ast.Ident]types.Ty, len(decl.Members))}

	var sb strings.Builder
	sb.WriteString("struct ")
	s.hooks.WriteIdent(&sb, decl.Ident)
	sb.WriteString(" {\n")
	for _, m := range decl.Members {
		ty, err := d.emitTyExpr(m.TyExpr)
		if err != nil {
			return nil, err
		}
		if _, dup := info.memberTys[m.Ident]; dup {
			return nil, &Error{Kind: ErrIdentCannotBeRedefined, Span: m.Span, Ident: m.Ident}
		}
		info.memberTys[m.Ident] = ty
		info.Members = append(info.Members, StructMember{Ident: m.Ident, Ty: ty})
		info.ContainsArrays = info.ContainsArrays || s.containsArrays(ty)

		sb.WriteString(indent)
		sb.WriteString(s.declarator(ty, s.identText(m.Ident)))
		sb.WriteString(";\n")
	}
	sb.WriteString("};\n")

	return &structDeclAttrs{info: info, text: sb.String()}, nil
}
