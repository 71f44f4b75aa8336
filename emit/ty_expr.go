// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

// emitTyExpr resolves a type expression. Struct names are expanded on
// first use.
func (d *declEmitter) emitTyExpr(e ast.TyExpr) (types.Ty, error) {
	switch e := e.(type) {
	case *ast.LitTyExpr:
		return types.FromTyLit(e.TyLit), nil

	case *ast.ArrayTyExpr:
		if e.Len <= 0 {
			return nil, &Error{Kind: ErrInvalidArrayLen, Span: e.Span, Index: e.Len}
		}
		elem, err := d.emitTyExpr(e.ElemTyExpr)
		if err != nil {
			return nil, err
		}
		return types.Array{Elem: elem, Len: e.Len}, nil

	case *ast.StructTyExpr:
		info, err := d.findInfo(e.Ident, e.Span)
		if err != nil {
			return nil, err
		}
		switch info.(type) {
		case nil:
			return nil, &Error{Kind: ErrIdentIsUndefined, Span: e.Span, Ident: e.Ident}
		case *StructInfo:
			return types.Struct{Ident: e.Ident}, nil
		default:
			return nil, &Error{Kind: ErrIdentIsNotAStruct, Span: e.Span, Ident: e.Ident}
		}

	default:
		panic(fmt.Sprintf("emit: unexpected type expression %T", e))
	}
}

// containsArrays reports whether ty is an array or a struct that
// transitively contains one.
func (s *shaderEmitter) containsArrays(ty types.Ty) bool {
	switch ty := ty.(type) {
	case types.Array:
		return true
	case types.Struct:
		return s.structInfo(ty.Ident).ContainsArrays
	default:
		return false
	}
}

// writeTy writes a type in type position, such as a return type.
func (s *shaderEmitter) writeTy(out *strings.Builder, ty types.Ty) {
	switch ty := ty.(type) {
	case types.Basic:
		lit, ok := ty.TyLit()
		if !ok {
			out.WriteString("void")
			return
		}
		s.hooks.WriteTyLit(out, lit)
	case types.Struct:
		s.hooks.WriteIdent(out, ty.Ident)
	case types.Array:
		s.writeTy(out, ty.Elem)
		out.WriteString("[")
		out.WriteString(strconv.Itoa(ty.Len))
		out.WriteString("]")
	default:
		panic(fmt.Sprintf("emit: unexpected type %T", ty))
	}
}

// declarator renders a C-style declaration of name with type ty, with
// array dimensions after the name: "vec2 uv", "float w[4]".
func (s *shaderEmitter) declarator(ty types.Ty, name string) string {
	var dims []int
	for {
		arr, ok := ty.(types.Array)
		if !ok {
			break
		}
		dims = append(dims, arr.Len)
		ty = arr.Elem
	}

	var sb strings.Builder
	s.writeTy(&sb, ty)
	sb.WriteString(" ")
	sb.WriteString(name)
	for _, n := range dims {
		fmt.Fprintf(&sb, "[%d]", n)
	}
	return sb.String()
}

// identText renders a user identifier through the hooks.
func (s *shaderEmitter) identText(ident ast.Ident) string {
	var sb strings.Builder
	s.hooks.WriteIdent(&sb, ident)
	return sb.String()
}
