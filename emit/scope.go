// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

// Info is the semantic information bound to an identifier:
// one of *BuiltinInfo, *FnInfo, *StructInfo or *VarInfo.
type Info interface {
	infoNode()
}

// Overload is one signature of a builtin function.
type Overload struct {
	ParamTys []types.Ty
	ReturnTy types.Ty
}

// BuiltinInfo describes a builtin function by its exact overloads.
type BuiltinInfo struct {
	Overloads []Overload
}

// ReturnTy returns the return type of the overload whose parameter types
// equal argTys.
func (b *BuiltinInfo) ReturnTy(argTys []types.Ty) (types.Ty, bool) {
	for _, o := range b.Overloads {
		if tysEqual(o.ParamTys, argTys) {
			return o.ReturnTy, true
		}
	}
	return nil, false
}

// FnInfo describes a user function after its body has been emitted.
type FnInfo struct {
	ParamTys []types.Ty
	ReturnTy types.Ty
	Deps     Deps
}

// StructMember is a struct member in declaration order.
type StructMember struct {
	Ident ast.Ident
	Ty    types.Ty
}

// StructInfo describes a user struct after its members have been emitted.
type StructInfo struct {
	// ContainsArrays is set when any member is an array or a struct that
	// transitively contains one.
	ContainsArrays bool
	Members        []StructMember
	memberTys      map[ast.Ident]types.Ty
}

// MemberTy returns the type of the named member.
func (s *StructInfo) MemberTy(ident ast.Ident) (types.Ty, bool) {
	ty, ok := s.memberTys[ident]
	return ty, ok
}

// VarKind is the storage kind of a variable.
type VarKind uint8

const (
	VarAttribute VarKind = iota
	VarLocal
	VarUniform
	VarVarying
)

// String returns the storage kind name.
func (k VarKind) String() string {
	switch k {
	case VarAttribute:
		return "attribute"
	case VarLocal:
		return "local"
	case VarUniform:
		return "uniform"
	case VarVarying:
		return "varying"
	default:
		return "unknown"
	}
}

// VarInfo describes a variable.
type VarInfo struct {
	Ty   types.Ty
	Kind VarKind
	// IsMut is meaningful for locals only.
	IsMut bool
	// BlockIdent is meaningful for uniforms only.
	BlockIdent ast.Ident
}

func (*BuiltinInfo) infoNode() {}
func (*FnInfo) infoNode()      {}
func (*StructInfo) infoNode()  {}
func (*VarInfo) infoNode()     {}

// Scope is a single lexical level of identifier bindings.
type Scope struct {
	infos map[ast.Ident]Info
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{infos: make(map[ast.Ident]Info)}
}

// Insert binds ident to info. It returns false and leaves the scope
// unchanged when ident is already bound in this scope.
func (s *Scope) Insert(ident ast.Ident, info Info) bool {
	if _, exists := s.infos[ident]; exists {
		return false
	}
	s.infos[ident] = info
	return true
}

// Lookup returns the info bound to ident in this scope only.
func (s *Scope) Lookup(ident ast.Ident) (Info, bool) {
	info, ok := s.infos[ident]
	return info, ok
}

// Len returns the number of bindings.
func (s *Scope) Len() int {
	return len(s.infos)
}

func tysEqual(a, b []types.Ty) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
