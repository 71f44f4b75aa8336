// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package syntax

import (
	"testing"
)

func tokenKinds(t *testing.T, input string) []TokenKind {
	t.Helper()
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): unexpected error: %v", input, err)
	}
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"+ - * /", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenEOF}},
		{"( ) { } [ ]", []TokenKind{TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace, TokenLeftBracket, TokenRightBracket, TokenEOF}},
		{", . : ; ?", []TokenKind{TokenComma, TokenDot, TokenColon, TokenSemicolon, TokenQuestion, TokenEOF}},
		{"== != <= >= && || ->", []TokenKind{TokenEqualEqual, TokenBangEqual, TokenLessEqual, TokenGreaterEqual, TokenAmpAmp, TokenPipePipe, TokenArrow, TokenEOF}},
		{"= += -= *= /= ! < >", []TokenKind{TokenEqual, TokenPlusEqual, TokenMinusEqual, TokenStarEqual, TokenSlashEqual, TokenBang, TokenLess, TokenGreater, TokenEOF}},
		{"fn let for if else return", []TokenKind{TokenFn, TokenLet, TokenFor, TokenIf, TokenElse, TokenReturn, TokenEOF}},
		{"attribute uniform varying struct", []TokenKind{TokenAttribute, TokenUniform, TokenVarying, TokenStruct, TokenEOF}},
		{"break continue true false", []TokenKind{TokenBreak, TokenContinue, TokenBoolLiteral, TokenBoolLiteral, TokenEOF}},
		{"vec3 mat4 bvec2 float", []TokenKind{TokenTyLit, TokenTyLit, TokenTyLit, TokenTyLit, TokenEOF}},
		{"from to step in _x vec5", []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		got := tokenKinds(t, tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("%q: expected %d tokens, got %d", tt.input, len(tt.expected), len(got))
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("%q: token %d: expected %v, got %v", tt.input, i, tt.expected[i], got[i])
			}
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input  string
		kind   TokenKind
		lexeme string
	}{
		{"42", TokenIntLiteral, "42"},
		{"0x1F", TokenIntLiteral, "0x1F"},
		{"1.5", TokenFloatLiteral, "1.5"},
		{"1.", TokenFloatLiteral, "1."},
		{".25", TokenFloatLiteral, ".25"},
		{"1e3", TokenFloatLiteral, "1e3"},
		{"2.5e-2", TokenFloatLiteral, "2.5e-2"},
	}

	for _, tt := range tests {
		tokens, err := NewLexer(tt.input).Tokenize()
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.input, err)
			continue
		}
		if tokens[0].Kind != tt.kind || tokens[0].Lexeme != tt.lexeme {
			t.Errorf("%q: got %v %q, want %v %q", tt.input, tokens[0].Kind, tokens[0].Lexeme, tt.kind, tt.lexeme)
		}
	}
}

func TestLexerIntSwizzle(t *testing.T) {
	got := tokenKinds(t, "1.x")
	want := []TokenKind{TokenIntLiteral, TokenDot, TokenIdent, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerComments(t *testing.T) {
	input := `a // line comment
/* block
   comment */ b`
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	b := tokens[1]
	if b.Lexeme != "b" || b.Line != 3 || b.Column != 15 {
		t.Errorf("b: got %q at %d:%d, want \"b\" at 3:15", b.Lexeme, b.Line, b.Column)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, err := NewLexer("let x\n  = 1;").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []struct {
		line, column, offset int
	}{
		{1, 1, 0}, // let
		{1, 5, 4}, // x
		{2, 3, 8}, // =
		{2, 5, 10},
		{2, 6, 11},
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Line != w.line || tok.Column != w.column || tok.Offset != w.offset {
			t.Errorf("token %d (%q): got %d:%d@%d, want %d:%d@%d",
				i, tok.Lexeme, tok.Line, tok.Column, tok.Offset, w.line, w.column, w.offset)
		}
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	_, err := NewLexer("a\n  # b").Tokenize()
	if err == nil {
		t.Fatal("expected error")
	}
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Span.Start.Line != 2 || e.Span.Start.Column != 3 {
		t.Errorf("got span %v, want 2:3", e.Span)
	}
}
