// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package syntax turns shader source text into an ast.ParsedShader.
//
// The surface language looks like this:
//
//	attribute pos: vec2;
//	uniform tint: vec4 in material;
//	varying uv: vec2;
//
//	struct Light { dir: vec3, weights: float[4] }
//
//	fn vertex() -> vec4 {
//	    uv = pos * 0.5 + 0.5;
//	    return vec4(pos, 0.0, 1.0);
//	}
//
// Uniforms without an `in` clause belong to the default block. The words
// from, to, step and in are only special where the grammar expects them.
package syntax

import "fmt"

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenBoolLiteral

	// Operators
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenBang         // !
	TokenEqual        // =
	TokenLess         // <
	TokenGreater      // >
	TokenDot          // .
	TokenComma        // ,
	TokenColon        // :
	TokenSemicolon    // ;
	TokenQuestion     // ?
	TokenArrow        // ->
	TokenEqualEqual   // ==
	TokenBangEqual    // !=
	TokenLessEqual    // <=
	TokenGreaterEqual // >=
	TokenAmpAmp       // &&
	TokenPipePipe     // ||
	TokenPlusEqual    // +=
	TokenMinusEqual   // -=
	TokenStarEqual    // *=
	TokenSlashEqual   // /=

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Keywords
	TokenAttribute
	TokenBreak
	TokenContinue
	TokenElse
	TokenFn
	TokenFor
	TokenIf
	TokenLet
	TokenReturn
	TokenStruct
	TokenUniform
	TokenVarying

	// TokenTyLit is a builtin type keyword such as vec3.
	TokenTyLit
)

var tokenNames = [...]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenIdent:        "identifier",
	TokenIntLiteral:   "int literal",
	TokenFloatLiteral: "float literal",
	TokenBoolLiteral:  "bool literal",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenBang:         "!",
	TokenEqual:        "=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenDot:          ".",
	TokenComma:        ",",
	TokenColon:        ":",
	TokenSemicolon:    ";",
	TokenQuestion:     "?",
	TokenArrow:        "->",
	TokenEqualEqual:   "==",
	TokenBangEqual:    "!=",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenAmpAmp:       "&&",
	TokenPipePipe:     "||",
	TokenPlusEqual:    "+=",
	TokenMinusEqual:   "-=",
	TokenStarEqual:    "*=",
	TokenSlashEqual:   "/=",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenAttribute:    "attribute",
	TokenBreak:        "break",
	TokenContinue:     "continue",
	TokenElse:         "else",
	TokenFn:           "fn",
	TokenFor:          "for",
	TokenIf:           "if",
	TokenLet:          "let",
	TokenReturn:       "return",
	TokenStruct:       "struct",
	TokenUniform:      "uniform",
	TokenVarying:      "varying",
	TokenTyLit:        "type",
}

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", uint8(k))
}

var keywords = map[string]TokenKind{
	"attribute": TokenAttribute,
	"break":     TokenBreak,
	"continue":  TokenContinue,
	"else":      TokenElse,
	"false":     TokenBoolLiteral,
	"fn":        TokenFn,
	"for":       TokenFor,
	"if":        TokenIf,
	"let":       TokenLet,
	"return":    TokenReturn,
	"struct":    TokenStruct,
	"true":      TokenBoolLiteral,
	"uniform":   TokenUniform,
	"varying":   TokenVarying,
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
	Offset int
}
