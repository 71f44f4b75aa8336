// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package syntax

import (
	"unicode"
	"unicode/utf8"

	"github.com/gogpu/shadegen/ast"
)

// Lexer tokenizes shader source code.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  int
	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	// Estimate ~1 token per 5 characters of source.
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, max(len(source)/5, 16)),
	}
}

// Tokenize returns all tokens from the source. An unexpected character
// yields an error located at that character.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.pos
		l.scanToken()
		if n := len(l.tokens); n > 0 && l.tokens[n-1].Kind == TokenError {
			tok := l.tokens[n-1]
			return nil, &Error{
				Message: "unexpected character " + tok.Lexeme,
				Span:    tokenSpan(tok),
			}
		}
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Line:   l.line,
		Column: l.column,
		Offset: l.pos,
	})
	return l.tokens, nil
}

func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case '[':
		l.addToken(TokenLeftBracket)
	case ']':
		l.addToken(TokenRightBracket)
	case ',':
		l.addToken(TokenComma)
	case '.':
		if isDigit(l.peek()) {
			l.number()
		} else {
			l.addToken(TokenDot)
		}
	case ':':
		l.addToken(TokenColon)
	case ';':
		l.addToken(TokenSemicolon)
	case '?':
		l.addToken(TokenQuestion)

	case '+':
		l.addToken(l.either('=', TokenPlusEqual, TokenPlus))
	case '-':
		switch {
		case l.match('='):
			l.addToken(TokenMinusEqual)
		case l.match('>'):
			l.addToken(TokenArrow)
		default:
			l.addToken(TokenMinus)
		}
	case '*':
		l.addToken(l.either('=', TokenStarEqual, TokenStar))
	case '/':
		switch {
		case l.match('/'):
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		case l.match('*'):
			l.blockComment()
		case l.match('='):
			l.addToken(TokenSlashEqual)
		default:
			l.addToken(TokenSlash)
		}
	case '=':
		l.addToken(l.either('=', TokenEqualEqual, TokenEqual))
	case '!':
		l.addToken(l.either('=', TokenBangEqual, TokenBang))
	case '<':
		l.addToken(l.either('=', TokenLessEqual, TokenLess))
	case '>':
		l.addToken(l.either('=', TokenGreaterEqual, TokenGreater))
	case '&':
		l.addToken(l.either('&', TokenAmpAmp, TokenError))
	case '|':
		l.addToken(l.either('|', TokenPipePipe, TokenError))

	case ' ', '\r', '\t':
	case '\n':
		l.line++
		l.column = 1

	default:
		switch {
		case isDigit(r):
			l.number()
		case isAlpha(r) || r == '_':
			l.identifier()
		default:
			l.addToken(TokenError)
		}
	}
}

func (l *Lexer) either(next rune, yes, no TokenKind) TokenKind {
	if l.match(next) {
		return yes
	}
	return no
}

func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		l.advance()
	}
}

// number scans an int or float literal. The first character, a digit or
// a '.', has already been consumed.
func (l *Lexer) number() {
	if l.source[l.start] == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		l.addToken(TokenIntLiteral)
		return
	}

	kind := TokenIntLiteral
	if l.source[l.start] == '.' {
		kind = TokenFloatLiteral
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	// "1.x" is a swizzle of an int, "1." and "1.5" are floats.
	if kind == TokenIntLiteral && l.peek() == '.' && !isAlpha(l.peekNext()) && l.peekNext() != '_' {
		kind = TokenFloatLiteral
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		kind = TokenFloatLiteral
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	l.addToken(kind)
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	text := l.source[l.start:l.pos]
	if kind, ok := keywords[text]; ok {
		l.addToken(kind)
		return
	}
	if _, ok := ast.LookupTyLit(text); ok {
		l.addToken(TokenTyLit)
		return
	}
	l.addToken(TokenIdent)
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Line:   l.line,
		Column: l.column - utf8.RuneCountInString(l.source[l.start:l.pos]),
		Offset: l.start,
	})
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if r != expected {
		return false
	}
	l.pos += size
	l.column++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
