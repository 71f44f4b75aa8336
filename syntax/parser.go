// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package syntax

import (
	"fmt"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/constant"
)

// Parse tokenizes and parses source into a shader. On failure the error
// is an ErrorList holding every error found.
func Parse(source string) (*ast.ParsedShader, error) {
	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		return nil, ErrorList{err.(*Error)}
	}
	return NewParser(tokens).Parse()
}

// Parser parses tokens into a shader AST.
type Parser struct {
	tokens  []Token
	current int
	errors  ErrorList
}

// NewParser creates a new parser for the given tokens. The last token must
// be TokenEOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses all declarations. Parsing resumes at the next top-level
// declaration after an error.
func (p *Parser) Parse() (*ast.ParsedShader, error) {
	shader := &ast.ParsedShader{}

	for !p.isAtEnd() {
		start := p.current
		decl, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize(start)
			continue
		}
		shader.Decls = append(shader.Decls, decl)
	}

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return shader, nil
}

func (p *Parser) declaration() (ast.Decl, *Error) {
	switch {
	case p.check(TokenAttribute):
		return p.attributeDecl()
	case p.check(TokenUniform):
		return p.uniformDecl()
	case p.check(TokenVarying):
		return p.varyingDecl()
	case p.check(TokenStruct):
		return p.structDecl()
	case p.check(TokenFn):
		return p.fnDecl()
	default:
		return nil, p.errorf(p.peek(), "expected declaration, got %s", p.peek().Kind)
	}
}

// typedIdent parses `name: type`.
func (p *Parser) typedIdent() (ast.Ident, ast.TyExpr, *Error) {
	name, err := p.ident()
	if err != nil {
		return "", nil, err
	}
	if err := p.expectErr(TokenColon); err != nil {
		return "", nil, err
	}
	ty, err := p.tyExpr()
	if err != nil {
		return "", nil, err
	}
	return name, ty, nil
}

func (p *Parser) attributeDecl() (*ast.AttributeDecl, *Error) {
	start := p.advance()
	name, ty, err := p.typedIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.AttributeDecl{Ident: name, TyExpr: ty, Span: p.spanFrom(start)}, nil
}

func (p *Parser) uniformDecl() (*ast.UniformDecl, *Error) {
	start := p.advance()
	name, ty, err := p.typedIdent()
	if err != nil {
		return nil, err
	}
	var block ast.Ident
	if p.matchWord("in") {
		if block, err = p.ident(); err != nil {
			return nil, err
		}
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.UniformDecl{Ident: name, TyExpr: ty, BlockIdent: block, Span: p.spanFrom(start)}, nil
}

func (p *Parser) varyingDecl() (*ast.VaryingDecl, *Error) {
	start := p.advance()
	name, ty, err := p.typedIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.VaryingDecl{Ident: name, TyExpr: ty, Span: p.spanFrom(start)}, nil
}

func (p *Parser) structDecl() (*ast.StructDecl, *Error) {
	start := p.advance()
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}

	var members []*ast.Member
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		memberStart := p.peek()
		ident, ty, err := p.typedIdent()
		if err != nil {
			return nil, err
		}
		members = append(members, &ast.Member{Ident: ident, TyExpr: ty, Span: p.spanFrom(memberStart)})
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenRightBrace); err != nil {
		return nil, err
	}
	return &ast.StructDecl{Ident: name, Members: members, Span: p.spanFrom(start)}, nil
}

func (p *Parser) fnDecl() (*ast.FnDecl, *Error) {
	start := p.advance()
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}

	var params []*ast.Param
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		paramStart := p.peek()
		ident, ty, err := p.typedIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Param{Ident: ident, TyExpr: ty, Span: p.spanFrom(paramStart)})
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}

	var ret ast.TyExpr
	if p.match(TokenArrow) {
		if ret, err = p.tyExpr(); err != nil {
			return nil, err
		}
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{Ident: name, Params: params, ReturnTyExpr: ret, Block: body, Span: p.spanFrom(start)}, nil
}

// tyExpr parses a type keyword or struct name followed by any number of
// array suffixes. Each suffix wraps the type before it, so float[2][3]
// is an array of three float[2].
func (p *Parser) tyExpr() (ast.TyExpr, *Error) {
	start := p.peek()
	var ty ast.TyExpr
	switch start.Kind {
	case TokenTyLit:
		p.advance()
		lit, _ := ast.LookupTyLit(start.Lexeme)
		ty = &ast.LitTyExpr{TyLit: lit, Span: tokenSpan(start)}
	case TokenIdent:
		p.advance()
		ty = &ast.StructTyExpr{Ident: ast.Ident(start.Lexeme), Span: tokenSpan(start)}
	default:
		return nil, p.errorf(start, "expected type, got %s", start.Kind)
	}

	for p.match(TokenLeftBracket) {
		n, err := p.arrayLen()
		if err != nil {
			return nil, err
		}
		if err := p.expectErr(TokenRightBracket); err != nil {
			return nil, err
		}
		ty = &ast.ArrayTyExpr{ElemTyExpr: ty, Len: n, Span: p.spanFrom(start)}
	}
	return ty, nil
}

// arrayLen parses an optionally negated int literal. Non-positive lengths
// are rejected by the emitter.
func (p *Parser) arrayLen() (int, *Error) {
	neg := p.match(TokenMinus)
	tok := p.peek()
	if tok.Kind != TokenIntLiteral {
		return 0, p.errorf(tok, "expected array length, got %s", tok.Kind)
	}
	p.advance()
	v, err := constant.Parse(tok.Lexeme)
	if err != nil {
		return 0, p.errorf(tok, "%v", err)
	}
	if neg {
		return -int(v.Int()), nil
	}
	return int(v.Int()), nil
}

func (p *Parser) block() (*ast.Block, *Error) {
	start := p.peek()
	if err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.expectErr(TokenRightBrace); err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts, Span: p.spanFrom(start)}, nil
}

func (p *Parser) statement() (ast.Stmt, *Error) {
	switch p.peek().Kind {
	case TokenLeftBrace:
		b, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Block: b, Span: b.Span}, nil
	case TokenLet:
		return p.letStmt()
	case TokenFor:
		return p.forStmt()
	case TokenIf:
		return p.ifStmt()
	case TokenReturn:
		return p.returnStmt()
	case TokenBreak:
		start := p.advance()
		if err := p.expectErr(TokenSemicolon); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Span: p.spanFrom(start)}, nil
	case TokenContinue:
		start := p.advance()
		if err := p.expectErr(TokenSemicolon); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Span: p.spanFrom(start)}, nil
	default:
		return p.exprStmt()
	}
}

func (p *Parser) letStmt() (*ast.LetStmt, *Error) {
	start := p.advance()
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	var ty ast.TyExpr
	if p.match(TokenColon) {
		if ty, err = p.tyExpr(); err != nil {
			return nil, err
		}
	}
	var init ast.Expr
	if p.match(TokenEqual) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Ident: name, TyExpr: ty, Expr: init, Span: p.spanFrom(start)}, nil
}

// forStmt parses `for i from a to b step c { ... }`.
func (p *Parser) forStmt() (*ast.ForStmt, *Error) {
	start := p.advance()
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	if err := p.expectWord("from"); err != nil {
		return nil, err
	}
	from, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectWord("to"); err != nil {
		return nil, err
	}
	to, err := p.expression()
	if err != nil {
		return nil, err
	}
	var step ast.Expr
	if p.matchWord("step") {
		if step, err = p.expression(); err != nil {
			return nil, err
		}
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{
		Ident:    name,
		FromExpr: from,
		ToExpr:   to,
		StepExpr: step,
		Block:    body,
		Span:     p.spanFrom(start),
	}, nil
}

func (p *Parser) ifStmt() (*ast.IfStmt, *Error) {
	start := p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	ifTrue, err := p.block()
	if err != nil {
		return nil, err
	}

	var ifFalse *ast.Block
	if p.match(TokenElse) {
		if p.check(TokenIf) {
			// else if: wrap the nested if in a block
			nested, err := p.ifStmt()
			if err != nil {
				return nil, err
			}
			ifFalse = &ast.Block{Stmts: []ast.Stmt{nested}, Span: nested.Span}
		} else if ifFalse, err = p.block(); err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Expr: cond, BlockIfTrue: ifTrue, BlockIfFalse: ifFalse, Span: p.spanFrom(start)}, nil
}

func (p *Parser) returnStmt() (*ast.ReturnStmt, *Error) {
	start := p.advance()
	var value ast.Expr
	if !p.check(TokenSemicolon) {
		var err *Error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: value, Span: p.spanFrom(start)}, nil
}

func (p *Parser) exprStmt() (*ast.ExprStmt, *Error) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr, Span: p.spanFrom(start)}, nil
}

var assignOps = map[TokenKind]ast.BinOp{
	TokenEqual:      ast.BinOpAssign,
	TokenPlusEqual:  ast.BinOpAddAssign,
	TokenMinusEqual: ast.BinOpSubAssign,
	TokenStarEqual:  ast.BinOpMulAssign,
	TokenSlashEqual: ast.BinOpDivAssign,
}

// expression parses an assignment, the lowest precedence level.
// Assignment is right-associative.
func (p *Parser) expression() (ast.Expr, *Error) {
	left, err := p.conditional()
	if err != nil {
		return nil, err
	}
	op, ok := assignOps[p.peek().Kind]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.BinExpr{Op: op, LeftExpr: left, RightExpr: right, Span: spanBetween(left, right)}, nil
}

func (p *Parser) conditional() (ast.Expr, *Error) {
	cond, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if !p.match(TokenQuestion) {
		return cond, nil
	}
	ifTrue, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenColon); err != nil {
		return nil, err
	}
	ifFalse, err := p.conditional()
	if err != nil {
		return nil, err
	}
	return &ast.CondExpr{Expr: cond, ExprIfTrue: ifTrue, ExprIfFalse: ifFalse, Span: spanBetween(cond, ifFalse)}, nil
}

// binaryLevel parses a left-associative chain of the operators in ops
// whose operands are parsed by next.
func (p *Parser) binaryLevel(next func() (ast.Expr, *Error), ops map[TokenKind]ast.BinOp) (ast.Expr, *Error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinExpr{Op: op, LeftExpr: left, RightExpr: right, Span: spanBetween(left, right)}
	}
}

var (
	orOps             = map[TokenKind]ast.BinOp{TokenPipePipe: ast.BinOpOr}
	andOps            = map[TokenKind]ast.BinOp{TokenAmpAmp: ast.BinOpAnd}
	equalityOps       = map[TokenKind]ast.BinOp{TokenEqualEqual: ast.BinOpEq, TokenBangEqual: ast.BinOpNe}
	comparisonOps     = map[TokenKind]ast.BinOp{TokenLess: ast.BinOpLt, TokenLessEqual: ast.BinOpLe, TokenGreater: ast.BinOpGt, TokenGreaterEqual: ast.BinOpGe}
	additiveOps       = map[TokenKind]ast.BinOp{TokenPlus: ast.BinOpAdd, TokenMinus: ast.BinOpSub}
	multiplicativeOps = map[TokenKind]ast.BinOp{TokenStar: ast.BinOpMul, TokenSlash: ast.BinOpDiv}
)

func (p *Parser) logicalOr() (ast.Expr, *Error) {
	return p.binaryLevel(p.logicalAnd, orOps)
}

func (p *Parser) logicalAnd() (ast.Expr, *Error) {
	return p.binaryLevel(p.equality, andOps)
}

func (p *Parser) equality() (ast.Expr, *Error) {
	return p.binaryLevel(p.comparison, equalityOps)
}

func (p *Parser) comparison() (ast.Expr, *Error) {
	return p.binaryLevel(p.additive, comparisonOps)
}

func (p *Parser) additive() (ast.Expr, *Error) {
	return p.binaryLevel(p.multiplicative, additiveOps)
}

func (p *Parser) multiplicative() (ast.Expr, *Error) {
	return p.binaryLevel(p.unary, multiplicativeOps)
}

func (p *Parser) unary() (ast.Expr, *Error) {
	var op ast.UnOp
	switch p.peek().Kind {
	case TokenMinus:
		op = ast.UnOpNeg
	case TokenBang:
		op = ast.UnOpNot
	default:
		return p.postfix()
	}
	start := p.advance()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &ast.UnExpr{Op: op, Expr: operand, Span: p.spanFrom(start)}, nil
}

func (p *Parser) postfix() (ast.Expr, *Error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(TokenLeftBracket):
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expectErr(TokenRightBracket); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Expr: expr, IndexExpr: index, Span: p.spanFromPos(expr.Pos().Start)}
		case p.match(TokenDot):
			member, err := p.ident()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{Expr: expr, MemberIdent: member, Span: p.spanFromPos(expr.Pos().Start)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) primary() (ast.Expr, *Error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenBoolLiteral:
		p.advance()
		v, err := constant.Parse(tok.Lexeme)
		if err != nil {
			return nil, p.errorf(tok, "%v", err)
		}
		return &ast.LitExpr{Value: v, Span: tokenSpan(tok)}, nil

	case TokenIdent:
		p.advance()
		if !p.check(TokenLeftParen) {
			return &ast.VarExpr{Ident: ast.Ident(tok.Lexeme), Span: tokenSpan(tok)}, nil
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Ident: ast.Ident(tok.Lexeme), ArgExprs: args, Span: p.spanFrom(tok)}, nil

	case TokenTyLit:
		p.advance()
		lit, _ := ast.LookupTyLit(tok.Lexeme)
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return &ast.ConsCallExpr{TyLit: lit, ArgExprs: args, Span: p.spanFrom(tok)}, nil

	case TokenLeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expectErr(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.errorf(tok, "expected expression, got %s", tok.Kind)
	}
}

// args parses a parenthesized, comma-separated argument list.
func (p *Parser) args() ([]ast.Expr, *Error) {
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) ident() (ast.Ident, *Error) {
	tok := p.peek()
	if tok.Kind != TokenIdent {
		return "", p.errorf(tok, "expected identifier, got %s", tok.Kind)
	}
	p.advance()
	return ast.Ident(tok.Lexeme), nil
}

// Helper methods

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// matchWord consumes an identifier spelled word.
func (p *Parser) matchWord(word string) bool {
	if tok := p.peek(); tok.Kind == TokenIdent && tok.Lexeme == word {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectWord(word string) *Error {
	if p.matchWord(word) {
		return nil
	}
	return p.errorf(p.peek(), "expected %q, got %s", word, p.peek().Kind)
}

func (p *Parser) expectErr(kind TokenKind) *Error {
	if p.match(kind) {
		return nil
	}
	return p.errorf(p.peek(), "expected %s, got %s", kind, p.peek().Kind)
}

func (p *Parser) errorf(tok Token, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Span: tokenSpan(tok)}
}

// synchronize skips to the next top-level declaration keyword. Those
// keywords never occur inside a function body. At least one token is
// skipped when the failed declaration consumed none.
func (p *Parser) synchronize(start int) {
	if p.current == start {
		p.advance()
	}
	for !p.isAtEnd() {
		switch p.peek().Kind {
		case TokenAttribute, TokenUniform, TokenVarying, TokenStruct, TokenFn:
			return
		}
		p.advance()
	}
}

// spanFrom returns the span from the start of tok to the end of the last
// consumed token.
func (p *Parser) spanFrom(tok Token) ast.Span {
	return p.spanFromPos(tokenSpan(tok).Start)
}

func (p *Parser) spanFromPos(start ast.Position) ast.Span {
	return ast.Span{Start: start, End: tokenSpan(p.previous()).End}
}

func spanBetween(first, last ast.Node) ast.Span {
	return ast.Span{Start: first.Pos().Start, End: last.Pos().End}
}
