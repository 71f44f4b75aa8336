// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/constant"
)

func parseSource(t *testing.T, source string) *ast.ParsedShader {
	t.Helper()
	shader, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return shader
}

// parseExpr parses source as the returned expression of a function.
func parseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	shader := parseSource(t, "fn f() { return "+source+"; }")
	ret := shader.Decls[0].(*ast.FnDecl).Block.Stmts[0].(*ast.ReturnStmt)
	return ret.Expr
}

// exprString renders an expression fully parenthesized.
func exprString(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.LitExpr:
		return e.Value.String()
	case *ast.VarExpr:
		return string(e.Ident)
	case *ast.BinExpr:
		return "(" + exprString(e.LeftExpr) + " " + e.Op.String() + " " + exprString(e.RightExpr) + ")"
	case *ast.UnExpr:
		return "(" + e.Op.String() + exprString(e.Expr) + ")"
	case *ast.CondExpr:
		return "(" + exprString(e.Expr) + " ? " + exprString(e.ExprIfTrue) + " : " + exprString(e.ExprIfFalse) + ")"
	case *ast.IndexExpr:
		return exprString(e.Expr) + "[" + exprString(e.IndexExpr) + "]"
	case *ast.MemberExpr:
		return exprString(e.Expr) + "." + string(e.MemberIdent)
	case *ast.CallExpr:
		return string(e.Ident) + "(" + argsString(e.ArgExprs) + ")"
	case *ast.ConsCallExpr:
		return e.TyLit.String() + "(" + argsString(e.ArgExprs) + ")"
	default:
		return "?"
	}
}

func argsString(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = exprString(a)
	}
	return strings.Join(parts, ", ")
}

func TestParseDecls(t *testing.T) {
	source := `
attribute pos: vec2;
uniform tint: vec4;
uniform lights: vec3[4] in L;
varying uv: vec2;
struct S { a: float, b: vec2[2], }
fn helper(x: float, s: S) -> float { return x; }
fn vertex() -> vec4 { return vec4(pos, 0.0, 1.0); }
`
	shader := parseSource(t, source)
	if len(shader.Decls) != 7 {
		t.Fatalf("expected 7 decls, got %d", len(shader.Decls))
	}

	attr := shader.Decls[0].(*ast.AttributeDecl)
	if attr.Ident != "pos" || attr.TyExpr.(*ast.LitTyExpr).TyLit != ast.TyLitVec2 {
		t.Errorf("attribute: got %+v", attr)
	}

	tint := shader.Decls[1].(*ast.UniformDecl)
	if tint.BlockIdent != "" || tint.Block() != ast.DefaultBlockIdent {
		t.Errorf("tint: got block %q", tint.BlockIdent)
	}
	lights := shader.Decls[2].(*ast.UniformDecl)
	if lights.Block() != "L" {
		t.Errorf("lights: got block %q, want L", lights.Block())
	}
	arr, ok := lights.TyExpr.(*ast.ArrayTyExpr)
	if !ok || arr.Len != 4 {
		t.Fatalf("lights: got type %#v, want array of 4", lights.TyExpr)
	}

	st := shader.Decls[4].(*ast.StructDecl)
	if st.Ident != "S" || len(st.Members) != 2 || st.Members[1].Ident != "b" {
		t.Errorf("struct: got %+v", st)
	}

	helper := shader.Decls[5].(*ast.FnDecl)
	if len(helper.Params) != 2 || helper.Params[1].TyExpr.(*ast.StructTyExpr).Ident != "S" {
		t.Errorf("helper params: got %+v", helper.Params)
	}
	if helper.ReturnTyExpr == nil {
		t.Error("helper: missing return type")
	}
}

func TestParseVoidFn(t *testing.T) {
	shader := parseSource(t, "fn f() {}")
	fn := shader.Decls[0].(*ast.FnDecl)
	if fn.ReturnTyExpr != nil {
		t.Errorf("expected void return type, got %#v", fn.ReturnTyExpr)
	}
	if len(fn.Block.Stmts) != 0 {
		t.Errorf("expected empty body, got %d stmts", len(fn.Block.Stmts))
	}
}

func TestParseNestedArrayTy(t *testing.T) {
	shader := parseSource(t, "attribute a: float[2][3];")
	outer := shader.Decls[0].(*ast.AttributeDecl).TyExpr.(*ast.ArrayTyExpr)
	inner, ok := outer.ElemTyExpr.(*ast.ArrayTyExpr)
	if outer.Len != 3 || !ok || inner.Len != 2 {
		t.Errorf("got outer %d, inner %#v", outer.Len, outer.ElemTyExpr)
	}
}

func TestParseNegativeArrayLen(t *testing.T) {
	shader := parseSource(t, "attribute a: float[-1];")
	arr := shader.Decls[0].(*ast.AttributeDecl).TyExpr.(*ast.ArrayTyExpr)
	if arr.Len != -1 {
		t.Errorf("got len %d, want -1", arr.Len)
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a || b && c", "(a || (b && c))"},
		{"!a && -b < c", "((!a) && ((-b) < c))"},
		{"c ? a : b ? x : y", "(c ? a : (b ? x : y))"},
		{"a = b += c", "(a = (b += c))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"v.xy[1]", "v.xy[1]"},
		{"s.m[i].x", "s.m[i].x"},
		{"f(a, b + 1)", "f(a, (b + 1))"},
		{"vec3(1.0, v.xy)", "vec3(1.0, v.xy)"},
		{"g()", "g()"},
		{"--x", "(-(-x))"},
	}

	for _, tt := range tests {
		got := exprString(parseExpr(t, tt.source))
		if got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   constant.Value
	}{
		{"1", constant.MakeInt(1)},
		{"0x10", constant.MakeInt(16)},
		{"2.5", constant.MakeFloat(2.5)},
		{"true", constant.MakeBool(true)},
		{"false", constant.MakeBool(false)},
	}
	for _, tt := range tests {
		lit, ok := parseExpr(t, tt.source).(*ast.LitExpr)
		if !ok {
			t.Errorf("%q: not a literal", tt.source)
			continue
		}
		if lit.Value != tt.want {
			t.Errorf("%q: got %v, want %v", tt.source, lit.Value, tt.want)
		}
	}
}

func TestParseStatements(t *testing.T) {
	source := `fn f() {
    let a: float = 1.0;
    let b = 2;
    let c: vec2;
    for i from 0 to 10 step 2 { continue; }
    for j from 3 to 0 { break; }
    if a > 0.0 { a = 1.0; } else if b == 2 { a = 2.0; } else { a = 3.0; }
    { a += 1.0; }
    return;
}`
	shader := parseSource(t, source)
	stmts := shader.Decls[0].(*ast.FnDecl).Block.Stmts
	if len(stmts) != 8 {
		t.Fatalf("expected 8 stmts, got %d", len(stmts))
	}

	if let := stmts[0].(*ast.LetStmt); let.TyExpr == nil || let.Expr == nil {
		t.Errorf("let a: got %+v", let)
	}
	if let := stmts[1].(*ast.LetStmt); let.TyExpr != nil || let.Expr == nil {
		t.Errorf("let b: got %+v", let)
	}
	if let := stmts[2].(*ast.LetStmt); let.TyExpr == nil || let.Expr != nil {
		t.Errorf("let c: got %+v", let)
	}

	loop := stmts[3].(*ast.ForStmt)
	if loop.Ident != "i" || loop.StepExpr == nil {
		t.Errorf("for i: got %+v", loop)
	}
	if _, ok := loop.Block.Stmts[0].(*ast.ContinueStmt); !ok {
		t.Errorf("for i body: got %T", loop.Block.Stmts[0])
	}
	if loop := stmts[4].(*ast.ForStmt); loop.StepExpr != nil {
		t.Errorf("for j: unexpected step")
	}

	ifStmt := stmts[5].(*ast.IfStmt)
	elseIf, ok := ifStmt.BlockIfFalse.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("else if: got %T", ifStmt.BlockIfFalse.Stmts[0])
	}
	if elseIf.BlockIfFalse == nil {
		t.Error("else if: missing final else")
	}

	if _, ok := stmts[6].(*ast.BlockStmt); !ok {
		t.Errorf("block: got %T", stmts[6])
	}
	if ret := stmts[7].(*ast.ReturnStmt); ret.Expr != nil {
		t.Errorf("return: unexpected value")
	}
}

func TestParseSpans(t *testing.T) {
	source := "fn f() {\n    return a + b;\n}"
	shader := parseSource(t, source)
	fn := shader.Decls[0].(*ast.FnDecl)
	if fn.Span.Start.Line != 1 || fn.Span.End.Line != 3 {
		t.Errorf("fn span: got %+v", fn.Span)
	}
	ret := fn.Block.Stmts[0].(*ast.ReturnStmt)
	sum := ret.Expr.(*ast.BinExpr)
	span := sum.Span
	if got := source[span.Start.Offset:span.End.Offset]; got != "a + b" {
		t.Errorf("sum span covers %q, want %q", got, "a + b")
	}
	if span.Start.Line != 2 || span.Start.Column != 12 {
		t.Errorf("sum start: got %d:%d, want 2:12", span.Start.Line, span.Start.Column)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"missing semicolon", "attribute a: float", "expected ;"},
		{"missing type", "varying v;", "expected :"},
		{"bad type", "attribute a: 1;", "expected type"},
		{"bad decl", "let x = 1;", "expected declaration"},
		{"missing from", "fn f() { for i 0 to 1 {} }", `expected "from"`},
		{"bad array len", "attribute a: float[n];", "expected array length"},
		{"bad expression", "fn f() { return +; }", "expected expression"},
		{"int out of range", "fn f() { return 99999999999; }", "out of range"},
		{"stray character", "fn f() { # }", "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("got %q, want it to contain %q", err.Error(), tt.message)
			}
			var list ErrorList
			if !errors.As(err, &list) {
				t.Errorf("expected ErrorList, got %T", err)
			}
		})
	}
}

func TestParseRecoversAtNextDecl(t *testing.T) {
	source := `fn f() { let = ; }
attribute a float;
fn vertex() -> vec4 { return vec4(1.0); }`
	_, err := Parse(source)
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(list), list)
	}
	if list[1].Span.Start.Line != 2 {
		t.Errorf("second error on line %d, want 2", list[1].Span.Start.Line)
	}
}

func TestErrorFormatWithContext(t *testing.T) {
	source := "attribute a: float\nfn f() {}"
	_, err := Parse(source)
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %v", err)
	}
	got := list.FormatWithContext(source)
	want := "error: expected ;, got fn\n" +
		"  --> line 2:1\n" +
		"   |\n" +
		"  2| fn f() {}\n" +
		"   | ^\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
