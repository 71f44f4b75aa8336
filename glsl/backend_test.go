// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strings"
	"testing"

	"github.com/gogpu/shadegen/emit"
	"github.com/gogpu/shadegen/syntax"
)

// =============================================================================
// Version Tests
// =============================================================================

func TestVersion_String(t *testing.T) {
	tests := []struct {
		version Version
		want    string
	}{
		{Version330, "330 core"},
		{Version400, "400 core"},
		{Version450, "450 core"},
		{VersionES100, "100"},
		{VersionES300, "300 es"},
		{VersionES310, "310 es"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.version.String()
			if got != tt.want {
				t.Errorf("Version.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersion_Features(t *testing.T) {
	tests := []struct {
		version       Version
		inOut, blocks bool
	}{
		{VersionES100, false, false},
		{VersionES300, true, true},
		{Version{Major: 1, Minor: 30}, true, false},
		{Version330, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			if got := tt.version.SupportsInOut(); got != tt.inOut {
				t.Errorf("SupportsInOut() = %v, want %v", got, tt.inOut)
			}
			if got := tt.version.SupportsUniformBlocks(); got != tt.blocks {
				t.Errorf("SupportsUniformBlocks() = %v, want %v", got, tt.blocks)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"330", Version330, false},
		{"330 core", Version330, false},
		{"300 es", VersionES300, false},
		{"ES300", VersionES300, false},
		{"100", VersionES100, false},
		{"450", Version450, false},
		{"", Version{}, true},
		{"abc", Version{}, true},
		{"330 compat", Version{}, true},
		{"3.30", Version{}, true},
		{"1000", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_DefaultVersion(t *testing.T) {
	if got := New(Options{}).Version(); got != Version330 {
		t.Errorf("New(Options{}).Version() = %v, want %v", got, Version330)
	}
}

// =============================================================================
// Keyword Tests
// =============================================================================

func TestEscapeKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"color", "color"},
		{"float", "_float"},
		{"input", "_input"},
		{"main", "_main"},
		{"length", "_length"},
		{"gl_Position", "_gl_Position"},
		{"u_tint", "_u_tint"},
		{"a_pos", "_a_pos"},
		{"o_color", "_o_color"},
		{"i_flag", "_i_flag"},
		{"uv", "uv"},
		{"", "_unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeKeyword(tt.input)
			if got != tt.want {
				t.Errorf("escapeKeyword(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range []string{"void", "vec4", "sampler2D", "uniform", "precision", "texture"} {
		if !isKeyword(kw) {
			t.Errorf("isKeyword(%q) = false, want true", kw)
		}
	}
	for _, nkw := range []string{"position", "color", "vertex", "fragment", "tint"} {
		if isKeyword(nkw) {
			t.Errorf("isKeyword(%q) = true, want false", nkw)
		}
	}
}

// =============================================================================
// Emission Tests
// =============================================================================

func compile(t *testing.T, source string, options Options) *emit.ShaderAttrs {
	t.Helper()
	shader, err := syntax.Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := emit.New().Emit(shader, New(options))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return out
}

const basicShader = `
attribute pos: vec2;
uniform tint: vec4;
varying uv: vec2;

fn vertex() -> vec4 {
    uv = pos;
    return vec4(pos, 0.0, 1.0);
}

fn fragment() -> vec4 {
    return tint * vec4(uv, 0.0, 1.0);
}
`

func TestHooks_ES100(t *testing.T) {
	out := compile(t, basicShader, Options{LangVersion: VersionES100, ForceHighPrecision: true})

	wantVertex := `#version 100
precision highp float;
precision highp int;

uniform vec4 u_tint;

attribute vec2 a_pos;

varying vec2 v_uv;

vec4 vertex() {
    v_uv = a_pos;
    return vec4(a_pos, 0.0, 1.0);
}

void main() {
    gl_Position = vertex();
}
`
	if out.VertexString != wantVertex {
		t.Errorf("vertex:\n%s\nwant:\n%s", out.VertexString, wantVertex)
	}

	wantFragment := `#version 100
precision highp float;
precision highp int;

uniform vec4 u_tint;

varying vec2 v_uv;

vec4 fragment() {
    return (u_tint * vec4(v_uv, 0.0, 1.0));
}

void main() {
    gl_FragColor = fragment();
}
`
	if out.FragmentString != wantFragment {
		t.Errorf("fragment:\n%s\nwant:\n%s", out.FragmentString, wantFragment)
	}
}

func TestHooks_ES300(t *testing.T) {
	source := `
attribute pos: vec2;
uniform tint: vec4;
uniform scale: float in params;
varying uv: vec2;
varying id: int;

fn vertex() -> vec4 {
    uv = pos;
    id = 1;
    return vec4(pos * scale, 0.0, 1.0);
}

fn fragment() -> vec4 {
    return tint * vec4(uv, 0.0, 1.0);
}
`
	out := compile(t, source, Options{LangVersion: VersionES300})

	checks := []struct {
		name string
		text string
		want []string
	}{
		{"vertex", out.VertexString, []string{
			"#version 300 es\nprecision mediump float;\nprecision mediump int;\n",
			"uniform vec4 u_tint;\nlayout(std140) uniform params {\n    float u_scale;\n};\n",
			"in vec2 a_pos;\n",
			"out vec2 v_uv;\nflat out int v_id;\n",
			"return vec4((a_pos * u_scale), 0.0, 1.0);",
			"void main() {\n    gl_Position = vertex();\n}\n",
		}},
		{"fragment", out.FragmentString, []string{
			"in vec2 v_uv;\nflat in int v_id;\n",
			"out vec4 o_color;\n\nvoid main() {\n    o_color = fragment();\n}\n",
		}},
	}
	for _, c := range checks {
		for _, want := range c.want {
			if !strings.Contains(c.text, want) {
				t.Errorf("%s: missing %q in:\n%s", c.name, want, c.text)
			}
		}
	}
	if strings.Contains(out.FragmentString, "a_pos") {
		t.Errorf("fragment declares attributes:\n%s", out.FragmentString)
	}
}

func TestHooks_Desktop(t *testing.T) {
	out := compile(t, basicShader, Options{LangVersion: Version330, WriterFlags: WriterFlagDebugInfo})

	if !strings.HasPrefix(out.VertexString, "#version 330 core\n// vertex shader\n\n") {
		t.Errorf("vertex prelude:\n%s", out.VertexString)
	}
	if !strings.HasPrefix(out.FragmentString, "#version 330 core\n// fragment shader\n\n") {
		t.Errorf("fragment prelude:\n%s", out.FragmentString)
	}
	if strings.Contains(out.VertexString, "precision") {
		t.Errorf("desktop GLSL carries precision statements:\n%s", out.VertexString)
	}
}

func TestHooks_EscapesUserIdents(t *testing.T) {
	source := `
struct input { output: float }

fn length(x: float) -> float {
    let main = input(x);
    return main.output;
}

fn vertex() -> vec4 {
    return vec4(length(2.0));
}

fn fragment() -> vec4 { return vec4(0.0); }
`
	out := compile(t, source, DefaultOptions())
	for _, want := range []string{
		"struct _input {\n    float _output;\n};",
		"float _length(float x) {",
		"_input _main = _input(x);",
		"return _main._output;",
		"return vec4(_length(2.0));",
	} {
		if !strings.Contains(out.VertexString, want) {
			t.Errorf("missing %q in:\n%s", want, out.VertexString)
		}
	}
}

func TestHooks_BuiltinsUnescaped(t *testing.T) {
	source := `
attribute pos: vec2;
fn vertex() -> vec4 {
    return vec4(normalize(pos), length(pos), 1.0);
}
fn fragment() -> vec4 { return vec4(0.0); }
`
	out := compile(t, source, DefaultOptions())
	if want := "return vec4(normalize(a_pos), length(a_pos), 1.0);"; !strings.Contains(out.VertexString, want) {
		t.Errorf("missing %q in:\n%s", want, out.VertexString)
	}
}

const carriedShader = `
varying lit: bool;
varying mask: bvec2[2];
varying id: int;

fn vertex() -> vec4 {
    lit = true;
    mask[0] = bvec2(true, false);
    mask[1] = bvec2(false);
    id = 3;
    return vec4(0.0);
}

fn fragment() -> vec4 {
    if lit && mask[1].x {
        return vec4(float(id));
    }
    return vec4(0.0);
}
`

func TestHooks_CarriedVaryings(t *testing.T) {
	tests := []struct {
		name     string
		options  Options
		vertex   []string
		fragment []string
	}{
		{
			name:    "in/out",
			options: Options{LangVersion: VersionES300},
			vertex: []string{
				"bool v_lit;\nflat out int i_lit;\nbvec2 v_mask[2];\nflat out ivec2 i_mask[2];\nflat out int v_id;\n",
				"    gl_Position = vertex();\n    i_lit = int(v_lit);\n    i_mask[0] = ivec2(v_mask[0]);\n    i_mask[1] = ivec2(v_mask[1]);\n}\n",
			},
			fragment: []string{
				"bool v_lit;\nflat in int i_lit;\nbvec2 v_mask[2];\nflat in ivec2 i_mask[2];\nflat in int v_id;\n",
				"void main() {\n    v_lit = bool(i_lit);\n    v_mask[0] = bvec2(i_mask[0]);\n    v_mask[1] = bvec2(i_mask[1]);\n    o_color = fragment();\n}\n",
			},
		},
		{
			name:    "legacy",
			options: Options{LangVersion: VersionES100},
			vertex: []string{
				"bool v_lit;\nvarying float i_lit;\nbvec2 v_mask[2];\nvarying vec2 i_mask[2];\nint v_id;\nvarying float i_id;\n",
				"    i_lit = float(v_lit);\n",
				"    i_id = float(v_id);\n}\n",
			},
			fragment: []string{
				"void main() {\n    v_lit = bool(i_lit);\n    v_mask[0] = bvec2(i_mask[0]);\n    v_mask[1] = bvec2(i_mask[1]);\n    v_id = int(i_id);\n    gl_FragColor = fragment();\n}\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := compile(t, carriedShader, tt.options)
			for _, want := range tt.vertex {
				if !strings.Contains(out.VertexString, want) {
					t.Errorf("vertex: missing %q in:\n%s", want, out.VertexString)
				}
			}
			for _, want := range tt.fragment {
				if !strings.Contains(out.FragmentString, want) {
					t.Errorf("fragment: missing %q in:\n%s", want, out.FragmentString)
				}
			}
			if strings.Contains(out.VertexString, "out bool") || strings.Contains(out.FragmentString, "in bool") {
				t.Errorf("boolean crosses the stage interface:\n%s", out.VertexString)
			}
		})
	}
}
