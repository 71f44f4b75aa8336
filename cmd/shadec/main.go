// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shadec is the shadegen shader compiler CLI.
//
// Usage:
//
//	shadec compile [flags] <input>...
//	shadec check <input>...
//	shadec init
//	shadec version
//
// Examples:
//
//	shadec compile sprite.shader                  # Write sprite.vert and sprite.frag
//	shadec compile --glsl "300 es" sprite.shader  # Target WebGL 2
//	shadec compile --stdout sprite.shader         # Print both stages
//	shadec check *.shader                         # Validate only
//
// Settings are read from shadegen.toml in the working directory or one of
// its parents; flags override them.
package main

import (
	"os"
)

const shadecVersion = "0.1.0-dev"

func main() {
	if err := execute(newRootCommand()); err != nil {
		os.Exit(1)
	}
}
