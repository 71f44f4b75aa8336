// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package config loads shadegen.toml, the project file of the shadec
// command.
//
// A project file selects the GLSL dialect, where compiled stages are
// written, the log level, and extra builtin functions the target
// environment provides:
//
//	[glsl]
//	version = "300 es"
//	precision = "highp"
//
//	[output]
//	dir = "build/shaders"
//	bindings = true
//
//	[log]
//	level = "debug"
//
//	[[builtins]]
//	name = "luma"
//	params = ["vec3"]
//	return = "float"
//
// Every key is optional; Load fills missing keys from Default.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/emit"
	"github.com/gogpu/shadegen/glsl"
	"github.com/gogpu/shadegen/types"
)

// FileName is the name of the project file.
const FileName = "shadegen.toml"

// Config is the decoded project file.
type Config struct {
	GLSL     GLSL      `toml:"glsl"`
	Output   Output    `toml:"output"`
	Log      Log       `toml:"log"`
	Builtins []Builtin `toml:"builtins,omitempty"`
}

// GLSL selects the target dialect.
type GLSL struct {
	// Version is a #version value: "100", "300 es", "330".
	Version string `toml:"version"`
	// Precision is the default ES precision: "highp" or "mediump".
	Precision string `toml:"precision"`
	// DebugInfo adds a comment naming the stage to each text.
	DebugInfo bool `toml:"debug-info"`
}

// Output controls where compiled stages are written.
type Output struct {
	Dir         string `toml:"dir"`
	VertexExt   string `toml:"vertex-ext"`
	FragmentExt string `toml:"fragment-ext"`
	// Bindings writes a <name>.bindings.toml file next to the stages.
	Bindings bool `toml:"bindings"`
}

// Log configures diagnostics.
type Log struct {
	// Level is a slog level name: "debug", "info", "warn" or "error".
	Level string `toml:"level"`
}

// Builtin declares one overload of a builtin function.
type Builtin struct {
	Name   string   `toml:"name"`
	Params []string `toml:"params"`
	Return string   `toml:"return"`
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		GLSL: GLSL{
			Version:   "330",
			Precision: "highp",
		},
		Output: Output{
			Dir:         ".",
			VertexExt:   ".vert",
			FragmentExt: ".frag",
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads and validates the project file at path.
func Load(path string) (*Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := &Config{}
	if err := tree.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for the project file in dir and its parents. It returns the
// path of the first one found.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("config: encoding TOML: %w", err)
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	fill := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	fill(&c.GLSL.Version, def.GLSL.Version)
	fill(&c.GLSL.Precision, def.GLSL.Precision)
	fill(&c.Output.Dir, def.Output.Dir)
	fill(&c.Output.VertexExt, def.Output.VertexExt)
	fill(&c.Output.FragmentExt, def.Output.FragmentExt)
	fill(&c.Log.Level, def.Log.Level)
}

// Validate checks every value that Load cannot check by decoding.
func (c *Config) Validate() error {
	if _, err := c.GLSLOptions(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.EmitBuiltins(); err != nil {
		return err
	}
	return nil
}

// GLSLOptions converts the [glsl] table.
func (c *Config) GLSLOptions() (glsl.Options, error) {
	version, err := glsl.ParseVersion(c.GLSL.Version)
	if err != nil {
		return glsl.Options{}, err
	}
	opts := glsl.Options{LangVersion: version}
	switch c.GLSL.Precision {
	case "highp":
		opts.ForceHighPrecision = true
	case "mediump":
	default:
		return glsl.Options{}, fmt.Errorf("invalid precision %q, expected highp or mediump", c.GLSL.Precision)
	}
	if c.GLSL.DebugInfo {
		opts.WriterFlags |= glsl.WriterFlagDebugInfo
	}
	return opts, nil
}

// LogLevel converts the [log] table.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return level, nil
}

// EmitBuiltins converts the [[builtins]] array. Overloads of the same name
// stay separate entries; the emitter merges them.
func (c *Config) EmitBuiltins() ([]emit.Builtin, error) {
	out := make([]emit.Builtin, 0, len(c.Builtins))
	for _, b := range c.Builtins {
		if b.Name == "" {
			return nil, fmt.Errorf("builtin without a name")
		}
		ret, err := parseTy(b.Return)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: return: %w", b.Name, err)
		}
		params := make([]types.Ty, len(b.Params))
		for i, p := range b.Params {
			if params[i], err = parseTy(p); err != nil {
				return nil, fmt.Errorf("builtin %s: parameter %d: %w", b.Name, i+1, err)
			}
		}
		out = append(out, emit.Builtin{
			Ident:     ast.Ident(b.Name),
			Overloads: []emit.Overload{{ParamTys: params, ReturnTy: ret}},
		})
	}
	return out, nil
}

// parseTy parses a type keyword. The empty string and "void" name the
// void type.
func parseTy(name string) (types.Ty, error) {
	if name == "" || name == "void" {
		return types.Void, nil
	}
	lit, ok := ast.LookupTyLit(name)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	return types.FromTyLit(lit), nil
}
