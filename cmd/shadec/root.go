// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadegen"
	"github.com/gogpu/shadegen/config"
)

// errReported is returned by commands whose failures were already printed
// as diagnostics.
var errReported = errors.New("shadec: errors reported")

type rootOptions struct {
	configPath  string
	glslVersion string
	logLevel    string

	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "shadec",
		Short: "Compile shadegen shaders to GLSL",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "project file (default: nearest "+config.FileName+")")
	flags.StringVar(&opts.glslVersion, "glsl", "", `GLSL version, one of [100, "300 es", 330]`)
	flags.StringVar(&opts.logLevel, "log-level", "", "log level, one of [debug, info, warn, error]")

	rootCmd.AddCommand(newCompileCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand())

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\nrun '%s --help' for usage", err, cmd.CommandPath())
	})
	return rootCmd
}

// execute runs cmd and prints any error that was not already reported as
// a diagnostic.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(cmd.ErrOrStderr(), err)
	}
	return err
}

// setup resolves the project file, applies flag overrides and installs the
// logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if o.glslVersion != "" {
		cfg.GLSL.Version = o.glslVersion
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	shadegen.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	o.cfg = cfg
	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		found, ok := config.Find(".")
		if !ok {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

// compileOptions converts the resolved configuration.
func (o *rootOptions) compileOptions() (shadegen.CompileOptions, error) {
	glslOpts, err := o.cfg.GLSLOptions()
	if err != nil {
		return shadegen.CompileOptions{}, err
	}
	builtins, err := o.cfg.EmitBuiltins()
	if err != nil {
		return shadegen.CompileOptions{}, err
	}
	return shadegen.CompileOptions{GLSL: glslOpts, Builtins: builtins}, nil
}
