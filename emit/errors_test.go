// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/emit"
	"github.com/gogpu/shadegen/types"
)

func TestEmitErrorKinds(t *testing.T) {
	decls := `
attribute pos: vec2;
uniform tint: vec4;
struct S { a: float }
fn two(a: float, b: int) -> float { return a; }
fn noop() {}`

	tests := []struct {
		name string
		body string
		kind emit.ErrorKind
	}{
		{"bin op", "let x = 1 + 1.0;", emit.ErrCannotApplyBinOp},
		{"compare vectors", "let x = pos < pos;", emit.ErrCannotApplyBinOp},
		{"assign mismatch", "let x = 1.0; x = 1;", emit.ErrCannotApplyBinOp},
		{"index float", "let x = 1.0; let y = x[0];", emit.ErrCannotApplyIndexOp},
		{"index float key", "let y = pos[1.0];", emit.ErrCannotApplyIndexOp},
		{"index out of range", "let y = pos[2];", emit.ErrCannotApplyIndexOp},
		{"index negative", "let y = pos[-1];", emit.ErrCannotApplyIndexOp},
		{"not float", "let x = !1.0;", emit.ErrCannotApplyUnOp},
		{"neg bool", "let x = -true;", emit.ErrCannotApplyUnOp},
		{"cons of struct", "let s = S(1.0); let v = vec2(s);", emit.ErrCannotCallCons},
		{"cons of matrix", "let m: mat2; let v = vec4(m);", emit.ErrCannotCallCons},
		{"builtin overload", "let x = dot(1.0, pos);", emit.ErrCannotCallFn},
		{"infer void", "let x = noop();", emit.ErrCannotInferTyForVar},
		{"infer nothing", "let x;", emit.ErrCannotInferTyForVar},
		{"loop bound", "let n = 3; for i from 0 to n { }", emit.ErrExprMustBeConstant},
		{"loop bound type", "for i from 0 to 2.0 { }", emit.ErrMismatchedTyForExpr},
		{"call var", "let x = tint(1.0);", emit.ErrIdentIsNotAFn},
		{"type from var", "let x: tint;", emit.ErrIdentIsNotAStruct},
		{"var from fn", "let x = noop;", emit.ErrIdentIsNotAVar},
		{"undefined var", "let x = nope;", emit.ErrIdentIsUndefined},
		{"undefined fn", "let x = nope();", emit.ErrIdentIsUndefined},
		{"undefined type", "let x: Nope;", emit.ErrIdentIsUndefined},
		{"zero array", "let x: float[0];", emit.ErrInvalidArrayLen},
		{"break", "break;", emit.ErrInvalidBreakStmt},
		{"continue", "continue;", emit.ErrInvalidContinueStmt},
		{"swizzle", "let x = pos.z;", emit.ErrMemberIsUndefined},
		{"member", "let s = S(1.0); let x = s.b;", emit.ErrMemberIsUndefined},
		{"scalar member", "let x = 1.0; let y = x.x;", emit.ErrMemberIsUndefined},
		{"arg type", "let x = two(1.0, 1.0);", emit.ErrMismatchedTyForArg},
		{"let type", "let x: int = 1.0;", emit.ErrMismatchedTyForExpr},
		{"cond type", "let x = 1 ? 1.0 : 2.0;", emit.ErrMismatchedTyForExpr},
		{"cond branches", "let x = true ? 1.0 : 2;", emit.ErrMismatchedTyForExpr},
		{"if cond", "if 1 { }", emit.ErrMismatchedTyForExpr},
		{"return type", "return 1.0;", emit.ErrMismatchedTyForExpr},
		{"missing return", "return;", emit.ErrMissingReturnExpr},
		{"too few args", "let x = two(1.0);", emit.ErrTooFewArgsForCall},
		{"too many args", "let x = two(1.0, 2, 3);", emit.ErrTooManyArgsForCall},
		{"struct cons args", "let s = S();", emit.ErrTooFewArgsForCall},
		{"too few comps", "let v = vec4(1.0, 2.0);", emit.ErrTooFewCompsForConsCall},
		{"too many comps", "let v = vec2(1.0, 2.0, 3.0);", emit.ErrTooManyCompsForConsCall},
		{"matrix comps", "let m = mat2(pos, 1.0);", emit.ErrTooFewCompsForConsCall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vertexBody(t, decls, tt.body)
			if !emit.IsKind(err, tt.kind) {
				t.Errorf("got %v, want %v", err, tt.kind)
			}
		})
	}
}

func TestEmitDeclErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   emit.ErrorKind
	}{
		{"attribute int", "attribute a: int;", emit.ErrInvalidTyForAttributeVar},
		{"attribute array", "attribute a: vec2[2];", emit.ErrInvalidTyForAttributeVar},
		{"varying struct", "struct S { a: float }\nvarying v: S;", emit.ErrInvalidTyForVaryingVar},
		{"varying matrix", "varying v: mat2;", emit.ErrInvalidTyForVaryingVar},
		{"uniform negative array", "uniform u: float[-2];", emit.ErrInvalidArrayLen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := emitSource(t, testHooks{}, tt.source+"\nfn vertex() -> vec4 { return vec4(0.0); }"+fragmentStub)
			if !emit.IsKind(err, tt.kind) {
				t.Errorf("got %v, want %v", err, tt.kind)
			}
		})
	}
}

func TestEmitFirstErrorWins(t *testing.T) {
	source := "fn vertex() -> vec4 {\n    let a = nope;\n    let b = 1 + 1.0;\n    return vec4(0.0);\n}" + fragmentStub
	_, err := emitSource(t, testHooks{}, source)
	var e *emit.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *emit.Error, got %v", err)
	}
	if e.Kind != emit.ErrIdentIsUndefined || e.Span.Start.Line != 2 {
		t.Errorf("got %v at line %d, want IdentIsUndefined at line 2", e.Kind, e.Span.Start.Line)
	}
}

func TestEmitArgIndexIsFirstMismatch(t *testing.T) {
	decls := "fn three(a: float, b: int, c: bool) -> float { return a; }"
	_, err := vertexBody(t, decls, "let x = three(1.0, 1.0, 1);")
	var e *emit.Error
	if !errors.As(err, &e) || e.Kind != emit.ErrMismatchedTyForArg {
		t.Fatalf("got %v, want MismatchedTyForArg", err)
	}
	if e.Index != 1 || e.ExpectedTy != types.Int || e.ActualTy != types.Float {
		t.Errorf("got index %d %v/%v, want 1 int/float", e.Index, e.ExpectedTy, e.ActualTy)
	}
	if want := "argument 2 of three has type float, expected int"; e.Message() != want {
		t.Errorf("message: got %q, want %q", e.Message(), want)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *emit.Error
		want string
	}{
		{
			&emit.Error{Kind: emit.ErrFnHasCyclicDepChain, Ident: "f", DepIdents: []ast.Ident{"f", "g", "f"}},
			"function f has a cyclic dependency chain: f -> g -> f",
		},
		{
			&emit.Error{Kind: emit.ErrCannotApplyBinOp, Op: "+", Tys: []types.Ty{types.Int, types.Float}},
			"cannot apply binary operator + to int and float",
		},
		{
			&emit.Error{Kind: emit.ErrTooManyCompsForConsCall, ExpectedTy: types.Vec2, Want: 2, Got: 3},
			"too many components for vec2 constructor: expected 2, found 3",
		},
		{
			&emit.Error{Kind: emit.ErrMissingFn, Ident: "fragment"},
			"missing function fragment",
		},
		{
			&emit.Error{Kind: emit.ErrStepMustBePositive, Ident: "i", Index: -1},
			"step of loop over i must be positive, found -1",
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%v: got %q, want %q", tt.err.Kind, got, tt.want)
		}
	}
}

func TestErrorLocation(t *testing.T) {
	e := &emit.Error{
		Kind:  emit.ErrIdentIsUndefined,
		Ident: "nope",
		Span:  ast.Span{Start: ast.Position{Line: 2, Column: 13}},
	}
	if got, want := e.Error(), "2:13: identifier nope is undefined"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}

	source := "fn vertex() -> vec4 {\n    let a = nope;\n}"
	want := "error[IdentIsUndefined]: identifier nope is undefined\n" +
		"  --> line 2:13\n" +
		"   |\n" +
		"  2|     let a = nope;\n" +
		"   |             ^\n"
	if got := e.FormatWithContext(source); got != want {
		t.Errorf("FormatWithContext:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if got := e.FormatWithContext(""); got != e.Error() {
		t.Errorf("without source: got %q", got)
	}
}

func TestErrorSpanFromSource(t *testing.T) {
	source := "fn vertex() -> vec4 {\n    let a = nope;\n    return vec4(0.0);\n}" + fragmentStub
	_, err := emitSource(t, testHooks{}, source)
	var e *emit.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *emit.Error, got %v", err)
	}
	if !strings.Contains(e.FormatWithContext(source), "  2|     let a = nope;\n   |             ^\n") {
		t.Errorf("caret misplaced:\n%s", e.FormatWithContext(source))
	}
}

func TestErrorKindString(t *testing.T) {
	if got := emit.ErrTooManyParamsForFn.String(); got != "TooManyParamsForFn" {
		t.Errorf("got %q", got)
	}
	if got := emit.ErrorKind(200).String(); got != "Unknown" {
		t.Errorf("got %q", got)
	}
}
