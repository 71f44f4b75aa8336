// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package syntax

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadegen/ast"
)

// Error is a lexical or grammatical error with its source location.
type Error struct {
	Message string
	Span    ast.Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// FormatWithContext returns the error message followed by the offending
// source line and a caret under the error location.
func (e *Error) FormatWithContext(source string) string {
	excerpt, ok := e.Span.Excerpt(source)
	if !ok {
		return e.Error()
	}
	return fmt.Sprintf("error: %s\n%s", e.Message, excerpt)
}

// ErrorList is the list of errors reported by one parse.
type ErrorList []*Error

// Error implements the error interface.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// FormatWithContext formats every error with its source context.
func (el ErrorList) FormatWithContext(source string) string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.FormatWithContext(source))
	}
	return sb.String()
}

// Unwrap returns the individual errors.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

func tokenSpan(tok Token) ast.Span {
	start := ast.Position{Line: tok.Line, Column: tok.Column, Offset: tok.Offset}
	end := start
	end.Column += len(tok.Lexeme)
	end.Offset += len(tok.Lexeme)
	return ast.Span{Start: start, End: end}
}
