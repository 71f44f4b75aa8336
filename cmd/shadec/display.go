// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/gogpu/shadegen/emit"
	"github.com/gogpu/shadegen/syntax"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = pterm.FgLightBlue
)

// maxBannerLen caps the width of diagnostic banners.
const maxBannerLen = 60

// printError prints an error that is not tied to a source file.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyleBG.Sprint(" error ")+" "+errorColorFG.Sprint(err.Error()))
}

// printSuccess prints a one-line success message for a file.
func printSuccess(w io.Writer, path, msg string) {
	fmt.Fprintln(w, successStyleBG.Sprint(" ok ")+" "+infoColorFG.Sprint(path)+" "+msg)
}

// printDiagnostic prints a compile error with a banner naming the file and
// an excerpt of source around the offending span.
func printDiagnostic(w io.Writer, path, source string, err error) {
	var (
		emitErr  *emit.Error
		parseErr syntax.ErrorList
		kind     string
		body     string
	)
	switch {
	case errors.As(err, &emitErr):
		kind = emitErr.Kind.String()
		body = emitErr.FormatWithContext(source)
	case errors.As(err, &parseErr):
		kind = "Syntax"
		body = parseErr.FormatWithContext(source)
	default:
		kind = "Compile"
		body = err.Error() + "\n"
	}

	fmt.Fprintln(w, banner(kind+" Error", path))
	fmt.Fprint(w, body)
	fmt.Fprintln(w)
}

// banner renders "-- <kind> ------ <path>", at most maxBannerLen wide.
func banner(kind, path string) string {
	width := pterm.GetTerminalWidth() / 2
	if width <= 0 || width > maxBannerLen {
		width = maxBannerLen
	}
	dashes := max(width-len(kind)-len(path)-5, 2)
	return "-- " + errorStyleBG.Sprint(kind) + " " + strings.Repeat("-", dashes) + " " + infoColorFG.Sprint(path)
}

// printSummary prints the outcome of a multi-file command.
func printSummary(w io.Writer, files, failed int) {
	if failed == 0 {
		fmt.Fprintln(w, successColorFG.Sprint("All done!")+fmt.Sprintf(" %d file(s) compiled", files))
		return
	}
	fmt.Fprintln(w, errorColorFG.Sprint("Oh no!")+fmt.Sprintf(" %d of %d file(s) failed", failed, files))
}
