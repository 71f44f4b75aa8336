// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"context"
	"log/slog"
	"slices"
	"testing"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

func TestDepsUnion(t *testing.T) {
	a := fnDeps("f").Union(uniformDeps("L"))
	a.HasAttributes = true
	b := fnDeps("g").Union(Deps{HasInputVaryings: true})

	u := a.Union(b)
	if got := u.FnIdents(); !slices.Equal(got, []ast.Ident{"f", "g"}) {
		t.Errorf("FnIdents: got %v", got)
	}
	if got := u.UniformBlockIdents(); !slices.Equal(got, []ast.Ident{"L"}) {
		t.Errorf("UniformBlockIdents: got %v", got)
	}
	if !u.HasAttributes || !u.HasInputVaryings || u.HasOutputVaryings {
		t.Errorf("flags: got %+v", u)
	}

	// operands are unchanged
	if a.HasFn("g") || b.HasFn("f") || b.HasUniformBlock("L") {
		t.Error("Union modified an operand")
	}
}

func TestDepsEmpty(t *testing.T) {
	var d Deps
	if !d.IsEmpty() {
		t.Error("zero Deps is not empty")
	}
	if d.Union(Deps{}).IsEmpty() != true {
		t.Error("union of empty Deps is not empty")
	}
	if (Deps{HasOutputVaryings: true}).IsEmpty() {
		t.Error("Deps with a flag is empty")
	}
	if fnDeps("f").IsEmpty() {
		t.Error("Deps with a function is empty")
	}
	if len(d.FnIdents()) != 0 {
		t.Errorf("FnIdents of empty Deps: got %v", d.FnIdents())
	}
}

func TestScopeInsert(t *testing.T) {
	s := NewScope()
	if !s.Insert("x", &VarInfo{Ty: types.Float, Kind: VarLocal}) {
		t.Fatal("first insert failed")
	}
	if s.Insert("x", &VarInfo{Ty: types.Int, Kind: VarLocal}) {
		t.Error("duplicate insert succeeded")
	}
	info, ok := s.Lookup("x")
	if !ok || info.(*VarInfo).Ty != types.Float {
		t.Errorf("Lookup: got %v, %v", info, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d", s.Len())
	}
}

func TestBuiltinOverloads(t *testing.T) {
	e := New()
	info, ok := e.scope.Lookup("clamp")
	if !ok {
		t.Fatal("clamp not in the builtin table")
	}
	clamp := info.(*BuiltinInfo)

	tests := []struct {
		args []types.Ty
		ret  types.Ty
		ok   bool
	}{
		{[]types.Ty{types.Float, types.Float, types.Float}, types.Float, true},
		{[]types.Ty{types.Vec3, types.Float, types.Float}, types.Vec3, true},
		{[]types.Ty{types.Vec3, types.Vec3, types.Vec3}, types.Vec3, true},
		{[]types.Ty{types.Vec3, types.Vec2, types.Vec2}, nil, false},
		{[]types.Ty{types.Int, types.Int, types.Int}, nil, false},
	}
	for _, tt := range tests {
		ret, ok := clamp.ReturnTy(tt.args)
		if ok != tt.ok || ret != tt.ret {
			t.Errorf("clamp%v: got %v %v, want %v %v", tt.args, ret, ok, tt.ret, tt.ok)
		}
	}
}

func TestWithBuiltinsMergesOverloads(t *testing.T) {
	extra := Builtin{Ident: "length", Overloads: []Overload{sig(types.Int, types.Ivec2)}}
	e := New(WithBuiltins(extra))
	info, _ := e.scope.Lookup("length")
	length := info.(*BuiltinInfo)
	if ret, ok := length.ReturnTy([]types.Ty{types.Ivec2}); !ok || ret != types.Int {
		t.Errorf("merged overload: got %v %v", ret, ok)
	}
	if ret, ok := length.ReturnTy([]types.Ty{types.Vec4}); !ok || ret != types.Float {
		t.Errorf("default overload: got %v %v", ret, ok)
	}

	// the default table is unaffected
	info, _ = New().scope.Lookup("length")
	if _, ok := info.(*BuiltinInfo).ReturnTy([]types.Ty{types.Ivec2}); ok {
		t.Error("WithBuiltins leaked into another Emitter")
	}
}

func TestStageEntryPoint(t *testing.T) {
	if StageVertex.EntryPoint() != "vertex" || StageFragment.EntryPoint() != "fragment" {
		t.Errorf("got %s %s", StageVertex.EntryPoint(), StageFragment.EntryPoint())
	}
}

func TestRender(t *testing.T) {
	if got := Render(Rendered("a + b")); got != "a + b" {
		t.Errorf("Rendered: got %q", got)
	}
	attrs := ExprAttrs{Ty: types.Float, ValueOrString: Rendered("x")}
	if _, ok := attrs.Value(); ok {
		t.Error("rendered text reported a constant value")
	}
}

func TestNewDefaultLoggerSilent(t *testing.T) {
	if New().logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("default emitter logger is enabled")
	}
}
