// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/emit"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	// Desktop OpenGL versions
	Version330 = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	Version400 = Version{Major: 4, Minor: 0, ES: false}  // OpenGL 4.0
	Version410 = Version{Major: 4, Minor: 10, ES: false} // OpenGL 4.1
	Version450 = Version{Major: 4, Minor: 50, ES: false} // OpenGL 4.5

	// OpenGL ES / WebGL versions
	VersionES100 = Version{Major: 1, Minor: 0, ES: true}  // ES 2.0 / WebGL 1.0
	VersionES300 = Version{Major: 3, Minor: 0, ES: true}  // ES 3.0 / WebGL 2.0
	VersionES310 = Version{Major: 3, Minor: 10, ES: true} // ES 3.1
)

// String returns the version as a GLSL version directive value.
// GLSL ES 1.00 has no profile suffix.
func (v Version) String() string {
	if v.ES && v.versionLessThan(300) {
		return v.VersionNumber()
	}
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// VersionNumber returns just the numeric version (e.g., "330", "300").
func (v Version) VersionNumber() string {
	return fmt.Sprintf("%d%02d", v.Major, v.Minor)
}

// versionLessThan returns true if the numeric version (Major*100+Minor) is
// less than the given number.
func (v Version) versionLessThan(number int) bool {
	return int(v.Major)*100+int(v.Minor) < number
}

// SupportsInOut returns true if stage interfaces are declared with in/out
// rather than attribute/varying.
func (v Version) SupportsInOut() bool {
	if v.ES {
		return !v.versionLessThan(300)
	}
	return !v.versionLessThan(130)
}

// SupportsUniformBlocks returns true if this version has uniform blocks.
func (v Version) SupportsUniformBlocks() bool {
	if v.ES {
		return !v.versionLessThan(300)
	}
	return !v.versionLessThan(140)
}

// ParseVersion parses a version as written in a #version directive or a
// configuration file: "330", "330 core", "300 es", "es300" or "100".
func ParseVersion(s string) (Version, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 || len(fields) > 2 {
		return Version{}, fmt.Errorf("glsl: invalid version %q", s)
	}
	num, es := fields[0], false
	if rest, ok := strings.CutPrefix(num, "es"); ok {
		num, es = rest, true
	}
	if len(fields) == 2 {
		switch fields[1] {
		case "es":
			es = true
		case "core":
		default:
			return Version{}, fmt.Errorf("glsl: invalid version profile %q", fields[1])
		}
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 100 || n > 999 {
		return Version{}, fmt.Errorf("glsl: invalid version %q", s)
	}
	if n == 100 {
		es = true
	}
	return Version{Major: uint8(n / 100), Minor: uint8(n % 100), ES: es}, nil
}

// WriterFlags control output formatting.
type WriterFlags uint32

const (
	// WriterFlagNone uses default settings.
	WriterFlagNone WriterFlags = 0

	// WriterFlagDebugInfo adds a comment naming the stage to each text.
	WriterFlagDebugInfo WriterFlags = 1 << iota
)

// Options configures GLSL code generation.
type Options struct {
	// LangVersion is the target GLSL version.
	// Defaults to Version330 if zero.
	LangVersion Version

	// WriterFlags control output formatting.
	WriterFlags WriterFlags

	// ForceHighPrecision selects highp as the default precision (ES only).
	// If false, mediump is used.
	ForceHighPrecision bool
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() Options {
	return Options{
		LangVersion:        Version330,
		ForceHighPrecision: true,
	}
}

// Name prefixes of interface variables. User identifiers that start with
// one of them are escaped so the two namespaces never collide.
const (
	attributePrefix = "a_"
	uniformPrefix   = "u_"
	varyingPrefix   = "v_"
	outputPrefix    = "o_"
	carrierPrefix   = "i_"

	fragColor = outputPrefix + "color"
)

// Hooks renders emitted shaders as GLSL source for one language version.
// Each stage becomes its own translation unit.
type Hooks struct {
	options Options
}

var _ emit.Hooks = (*Hooks)(nil)

// New returns GLSL hooks for options. A zero LangVersion selects Version330.
func New(options Options) *Hooks {
	if options.LangVersion.Major == 0 {
		options.LangVersion = Version330
	}
	return &Hooks{options: options}
}

// Version returns the target language version.
func (h *Hooks) Version() Version {
	return h.options.LangVersion
}

func (h *Hooks) WriteIdent(out *strings.Builder, ident ast.Ident) {
	out.WriteString(escapeKeyword(string(ident)))
}

// WriteBuiltinIdent writes builtin names unescaped; the builtin table only
// carries names that are GLSL functions.
func (h *Hooks) WriteBuiltinIdent(out *strings.Builder, ident ast.Ident) {
	out.WriteString(string(ident))
}

func (h *Hooks) WriteAttributeVar(out *strings.Builder, ident ast.Ident) {
	out.WriteString(attributePrefix)
	out.WriteString(string(ident))
}

// WriteUniformVar writes the variable without a block qualifier: blocks are
// declared without an instance name, so members live in the global scope.
func (h *Hooks) WriteUniformVar(out *strings.Builder, _, ident ast.Ident) {
	out.WriteString(uniformPrefix)
	out.WriteString(string(ident))
}

func (h *Hooks) WriteVaryingVar(out *strings.Builder, ident ast.Ident) {
	out.WriteString(varyingPrefix)
	out.WriteString(string(ident))
}

// WriteParams ignores deps: interface variables are globals in GLSL.
func (h *Hooks) WriteParams(out *strings.Builder, _ emit.Deps, params []string) {
	writeList(out, params)
}

func (h *Hooks) WriteArgs(out *strings.Builder, _ emit.Deps, args []string) {
	writeList(out, args)
}

func writeList(out *strings.Builder, items []string) {
	out.WriteString("(")
	out.WriteString(strings.Join(items, ", "))
	out.WriteString(")")
}

func (h *Hooks) WriteTyLit(out *strings.Builder, lit ast.TyLit) {
	out.WriteString(lit.String())
}

// UseSharedDecls is false: every stage is compiled on its own.
func (h *Hooks) UseSharedDecls() bool {
	return false
}

func (h *Hooks) WritePrelude(out *strings.Builder, stage emit.Stage) {
	v := h.options.LangVersion
	fmt.Fprintf(out, "#version %s\n", v)
	if h.options.WriterFlags&WriterFlagDebugInfo != 0 {
		fmt.Fprintf(out, "// %s shader\n", stage)
	}
	if v.ES {
		precision := "mediump"
		if h.options.ForceHighPrecision {
			precision = "highp"
		}
		fmt.Fprintf(out, "precision %s float;\n", precision)
		fmt.Fprintf(out, "precision %s int;\n", precision)
	}
}

func (h *Hooks) WriteAttributeDecl(out *strings.Builder, declarator string) {
	if h.options.LangVersion.SupportsInOut() {
		out.WriteString("in ")
	} else {
		out.WriteString("attribute ")
	}
	out.WriteString(declarator)
	out.WriteString(";\n")
}

// WriteUniformBlock declares the default block as plain uniforms and every
// other block as a std140 uniform block when the version has them.
func (h *Hooks) WriteUniformBlock(out *strings.Builder, blockIdent ast.Ident, declarators []string) {
	if blockIdent == ast.DefaultBlockIdent || !h.options.LangVersion.SupportsUniformBlocks() {
		for _, decl := range declarators {
			out.WriteString("uniform ")
			out.WriteString(decl)
			out.WriteString(";\n")
		}
		return
	}
	fmt.Fprintf(out, "layout(std140) uniform %s {\n", escapeKeyword(string(blockIdent)))
	for _, decl := range declarators {
		out.WriteString("    ")
		out.WriteString(decl)
		out.WriteString(";\n")
	}
	out.WriteString("};\n")
}

// Varying types that cannot cross the stage interface, mapped to the types
// that carry them. Legacy dialects only interpolate floating-point values.
var (
	inOutCarriers = map[string]string{
		"bool": "int", "bvec2": "ivec2", "bvec3": "ivec3", "bvec4": "ivec4",
	}
	legacyCarriers = map[string]string{
		"bool": "float", "bvec2": "vec2", "bvec3": "vec3", "bvec4": "vec4",
		"int": "float", "ivec2": "vec2", "ivec3": "vec3", "ivec4": "vec4",
	}
)

// carried splits a varying declarator and returns the carrier type for it,
// if it needs one.
func (h *Hooks) carried(declarator string) (ty, name, carrier string, ok bool) {
	ty, name, _ = strings.Cut(declarator, " ")
	carriers := inOutCarriers
	if !h.options.LangVersion.SupportsInOut() {
		carriers = legacyCarriers
	}
	carrier, ok = carriers[ty]
	return ty, name, carrier, ok
}

// WriteVaryingDecl declares a varying whose type cannot cross the stage
// interface as a private global, plus an interface variable of the carrier
// type that WriteEntryPoint copies it through.
func (h *Hooks) WriteVaryingDecl(out *strings.Builder, stage emit.Stage, declarator string) {
	if _, name, carrier, ok := h.carried(declarator); ok {
		out.WriteString(declarator)
		out.WriteString(";\n")
		declarator = carrier + " " + carrierPrefix + strings.TrimPrefix(name, varyingPrefix)
	}
	if !h.options.LangVersion.SupportsInOut() {
		out.WriteString("varying ")
		out.WriteString(declarator)
		out.WriteString(";\n")
		return
	}
	if isIntegral(declarator) {
		out.WriteString("flat ")
	}
	if stage == emit.StageVertex {
		out.WriteString("out ")
	} else {
		out.WriteString("in ")
	}
	out.WriteString(declarator)
	out.WriteString(";\n")
}

// isIntegral reports whether a declarator has an integer type, which must
// not be interpolated.
func isIntegral(declarator string) bool {
	ty, _, _ := strings.Cut(declarator, " ")
	switch ty {
	case "int", "ivec2", "ivec3", "ivec4":
		return true
	}
	return false
}

// WriteEntryPoint writes main. Carried fragment inputs are converted before
// the stage function runs and carried vertex outputs after it returns.
func (h *Hooks) WriteEntryPoint(out *strings.Builder, stage emit.Stage, ident ast.Ident, varyings []string) {
	target := "gl_Position"
	if stage == emit.StageFragment {
		target = "gl_FragColor"
		if h.options.LangVersion.SupportsInOut() {
			target = fragColor
			fmt.Fprintf(out, "out vec4 %s;\n\n", fragColor)
		}
	}
	out.WriteString("void main() {\n")
	if stage == emit.StageFragment {
		h.writeCarrierCopies(out, stage, varyings)
	}
	fmt.Fprintf(out, "    %s = ", target)
	h.WriteIdent(out, ident)
	out.WriteString("();\n")
	if stage == emit.StageVertex {
		h.writeCarrierCopies(out, stage, varyings)
	}
	out.WriteString("}\n")
}

// writeCarrierCopies converts between carried varyings and their interface
// variables, element by element for arrays.
func (h *Hooks) writeCarrierCopies(out *strings.Builder, stage emit.Stage, varyings []string) {
	for _, declarator := range varyings {
		ty, name, carrier, ok := h.carried(declarator)
		if !ok {
			continue
		}
		name, dims, isArray := strings.Cut(name, "[")
		iface := carrierPrefix + strings.TrimPrefix(name, varyingPrefix)

		indices := []string{""}
		if isArray {
			n, _ := strconv.Atoi(strings.TrimSuffix(dims, "]"))
			indices = indices[:0]
			for i := range n {
				indices = append(indices, "["+strconv.Itoa(i)+"]")
			}
		}
		for _, index := range indices {
			if stage == emit.StageVertex {
				fmt.Fprintf(out, "    %s%s = %s(%s%s);\n", iface, index, carrier, name, index)
			} else {
				fmt.Fprintf(out, "    %s%s = %s(%s%s);\n", name, index, ty, iface, index)
			}
		}
	}
}
