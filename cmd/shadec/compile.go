// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadegen"
	"github.com/gogpu/shadegen/emit"
	"github.com/gogpu/shadegen/glsl"
)

type compileFlags struct {
	outDir   string
	stdout   bool
	bindings bool
}

func newCompileCommand(root *rootOptions) *cobra.Command {
	flags := &compileFlags{}
	compileCmd := &cobra.Command{
		Use:   "compile [source_file]...",
		Short: "Compile shader source files to GLSL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, root, flags, args)
		},
	}
	compileCmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "output directory (default: [output] dir of the project file)")
	compileCmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print both stages instead of writing files")
	compileCmd.Flags().BoolVar(&flags.bindings, "bindings", false, "also write <name>.bindings.toml")
	return compileCmd
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [source_file]...",
		Short: "Validate shader source files without writing output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := root.compileOptions()
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				if _, _, err := compileFile(cmd.ErrOrStderr(), path, opts); err != nil {
					failed++
					continue
				}
				printSuccess(cmd.OutOrStdout(), path, "is valid")
			}
			printSummary(cmd.OutOrStdout(), len(args), failed)
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
}

func runCompile(cmd *cobra.Command, root *rootOptions, flags *compileFlags, args []string) error {
	opts, err := root.compileOptions()
	if err != nil {
		return err
	}
	outDir := flags.outDir
	if outDir == "" {
		outDir = root.cfg.Output.Dir
	}
	writeBindings := flags.bindings || root.cfg.Output.Bindings

	failed := 0
	for _, path := range args {
		out, hooks, err := compileFile(cmd.ErrOrStderr(), path, opts)
		if err != nil {
			failed++
			continue
		}
		if flags.stdout {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s: vertex\n%s\n// %s: fragment\n%s", path, out.VertexString, path, out.FragmentString)
			continue
		}

		outputs := outputPaths(path, outDir, root.cfg.Output.VertexExt, root.cfg.Output.FragmentExt)
		if err := writeOutputs(outputs, out, hooks, writeBindings); err != nil {
			printError(cmd.ErrOrStderr(), err)
			failed++
			continue
		}
		printSuccess(cmd.OutOrStdout(), path, "-> "+strings.Join(outputs.list(writeBindings), ", "))
	}

	if !flags.stdout {
		printSummary(cmd.OutOrStdout(), len(args), failed)
	}
	if failed > 0 {
		return errReported
	}
	return nil
}

// compileFile compiles one source file and prints its diagnostics to w.
func compileFile(w io.Writer, path string, opts shadegen.CompileOptions) (*emit.ShaderAttrs, *glsl.Hooks, error) {
	source, err := readSource(path)
	if err != nil {
		printError(w, err)
		return nil, nil, err
	}
	shader, err := shadegen.Parse(source)
	if err != nil {
		printDiagnostic(w, path, source, err)
		return nil, nil, err
	}
	hooks := glsl.New(opts.GLSL)
	out, err := shadegen.Emit(shader, hooks, opts.Builtins...)
	if err != nil {
		printDiagnostic(w, path, source, err)
		return nil, nil, err
	}
	return out, hooks, nil
}

func readSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("'%s' is a directory, please provide a file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// outputSet names the files written for one source file.
type outputSet struct {
	vertex, fragment, bindings string
}

func (o outputSet) list(withBindings bool) []string {
	if withBindings {
		return []string{o.vertex, o.fragment, o.bindings}
	}
	return []string{o.vertex, o.fragment}
}

// outputPaths derives output file names from the source file name without
// its extension.
func outputPaths(source, dir, vertexExt, fragmentExt string) outputSet {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	stem := filepath.Join(dir, base)
	return outputSet{
		vertex:   stem + vertexExt,
		fragment: stem + fragmentExt,
		bindings: stem + ".bindings.toml",
	}
}

func writeOutputs(o outputSet, out *emit.ShaderAttrs, hooks emit.Hooks, withBindings bool) error {
	if err := os.MkdirAll(filepath.Dir(o.vertex), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(o.vertex, []byte(out.VertexString), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(o.fragment, []byte(out.FragmentString), 0o644); err != nil {
		return err
	}
	if !withBindings {
		return nil
	}

	f, err := os.Create(o.bindings)
	if err != nil {
		return err
	}
	defer f.Close()
	return shadegen.NewBindings(out, hooks).WriteTOML(f)
}
