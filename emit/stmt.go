// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

const indent = "    "

// stmtAttrs are the synthesized attributes of a statement. An empty text
// means the statement emits nothing.
type stmtAttrs struct {
	deps Deps
	text string
	// isBlock is set when text is a braced block.
	isBlock bool
	// isIf is set when text is an if statement.
	isIf bool
	// locals are the variables a braced text declares at its top level.
	locals []ast.Ident
}

type blockAttrs struct {
	deps  Deps
	texts []string
	// collapsed holds the text of a single block-shaped statement whose
	// braces stand in for the block's own.
	collapsed string
	// soleIf holds the text of the only statement when it is an if, so
	// an else branch can chain it.
	soleIf string
	// locals are the variables declared at the top level of the block.
	locals []ast.Ident
}

func (b blockAttrs) isEmpty() bool {
	return len(b.texts) == 0 && b.collapsed == ""
}

// render returns the block as braced source text.
func (b blockAttrs) render() string {
	if b.collapsed != "" {
		return b.collapsed
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, text := range b.texts {
		for line := range strings.SplitSeq(text, "\n") {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// emitBlock emits the statements of b, in a new scope when newScope is set.
func (d *declEmitter) emitBlock(b *ast.Block, newScope bool) (blockAttrs, error) {
	if newScope {
		d.pushScope()
		defer d.popScope()
	}

	var out blockAttrs
	var emitted []stmtAttrs
	for _, stmt := range b.Stmts {
		attrs, err := d.emitStmt(stmt)
		if err != nil {
			return blockAttrs{}, err
		}
		if attrs.text == "" {
			continue
		}
		out.deps = out.deps.Union(attrs.deps)
		emitted = append(emitted, attrs)
		if let, ok := stmt.(*ast.LetStmt); ok {
			out.locals = append(out.locals, let.Ident)
		}
	}

	if len(emitted) == 1 {
		switch {
		case emitted[0].isBlock && !d.bindsAny(emitted[0].locals):
			out.collapsed = emitted[0].text
			out.locals = emitted[0].locals
			return out, nil
		case emitted[0].isIf:
			out.soleIf = emitted[0].text
		}
	}
	for _, attrs := range emitted {
		out.texts = append(out.texts, attrs.text)
	}
	return out, nil
}

// bindsAny reports whether one of idents is bound in the innermost scope,
// where a collapsed block would redeclare it.
func (d *declEmitter) bindsAny(idents []ast.Ident) bool {
	scope := d.scopes[len(d.scopes)-1]
	for _, ident := range idents {
		if _, ok := scope.Lookup(ident); ok {
			return true
		}
	}
	return false
}

func (d *declEmitter) emitStmt(stmt ast.Stmt) (stmtAttrs, error) {
	switch stmt := stmt.(type) {
	case *ast.BreakStmt:
		if !d.isInForStmtBlock {
			return stmtAttrs{}, &Error{Kind: ErrInvalidBreakStmt, Span: stmt.Span}
		}
		return stmtAttrs{text: "break;"}, nil

	case *ast.ContinueStmt:
		if !d.isInForStmtBlock {
			return stmtAttrs{}, &Error{Kind: ErrInvalidContinueStmt, Span: stmt.Span}
		}
		return stmtAttrs{text: "continue;"}, nil

	case *ast.ForStmt:
		return d.emitForStmt(stmt)

	case *ast.IfStmt:
		return d.emitIfStmt(stmt)

	case *ast.LetStmt:
		return d.emitLetStmt(stmt)

	case *ast.ReturnStmt:
		return d.emitReturnStmt(stmt)

	case *ast.BlockStmt:
		block, err := d.emitBlock(stmt.Block, true)
		if err != nil {
			return stmtAttrs{}, err
		}
		if block.isEmpty() {
			return stmtAttrs{}, nil
		}
		return stmtAttrs{deps: block.deps, text: block.render(), isBlock: true, locals: block.locals}, nil

	case *ast.ExprStmt:
		attrs, err := d.emitExpr(stmt.Expr)
		if err != nil {
			return stmtAttrs{}, err
		}
		text := attrs.String()
		if e, ok := stmt.Expr.(*ast.BinExpr); ok && e.Op.IsAssign() {
			// Assignments are grouped only inside larger expressions.
			text = text[1 : len(text)-1]
		}
		return stmtAttrs{deps: attrs.Deps, text: text + ";"}, nil

	default:
		panic(fmt.Sprintf("emit: unexpected statement %T", stmt))
	}
}

// emitConstInt emits an expression that must be a compile-time int.
func (d *declEmitter) emitConstInt(e ast.Expr) (int32, error) {
	attrs, err := d.emitExpr(e)
	if err != nil {
		return 0, err
	}
	if attrs.Ty != types.Int {
		return 0, &Error{Kind: ErrMismatchedTyForExpr, Span: e.Pos(), ExpectedTy: types.Int, ActualTy: attrs.Ty}
	}
	v, ok := attrs.Value()
	if !ok {
		return 0, &Error{Kind: ErrExprMustBeConstant, Span: e.Pos()}
	}
	return v.Int(), nil
}

func (d *declEmitter) emitForStmt(stmt *ast.ForStmt) (stmtAttrs, error) {
	from, err := d.emitConstInt(stmt.FromExpr)
	if err != nil {
		return stmtAttrs{}, err
	}
	to, err := d.emitConstInt(stmt.ToExpr)
	if err != nil {
		return stmtAttrs{}, err
	}

	step := int32(1)
	if from > to {
		step = -1
	}
	if stmt.StepExpr != nil {
		step, err = d.emitConstInt(stmt.StepExpr)
		if err != nil {
			return stmtAttrs{}, err
		}
		span := stmt.StepExpr.Pos()
		switch {
		case step == 0:
			return stmtAttrs{}, &Error{Kind: ErrStepMustBeNonZero, Span: span, Ident: stmt.Ident}
		case from < to && step < 0:
			return stmtAttrs{}, &Error{Kind: ErrStepMustBePositive, Span: span, Ident: stmt.Ident, Index: int(step)}
		case from > to && step > 0:
			return stmtAttrs{}, &Error{Kind: ErrStepMustBeNegative, Span: span, Ident: stmt.Ident, Index: int(step)}
		}
	}

	d.pushScope()
	if err := d.insert(stmt.Ident, &VarInfo{Ty: types.Int, Kind: VarLocal}, stmt.Span); err != nil {
		return stmtAttrs{}, err
	}
	wasInFor := d.isInForStmtBlock
	d.isInForStmtBlock = true
	body, err := d.emitBlock(stmt.Block, false)
	d.isInForStmtBlock = wasInFor
	d.popScope()
	if err != nil {
		return stmtAttrs{}, err
	}

	if from == to || body.isEmpty() {
		d.s.logger.Debug("emit: pruned for statement", "ident", stmt.Ident, "span", stmt.Span)
		return stmtAttrs{}, nil
	}

	name := d.s.identText(stmt.Ident)
	cmp, update := "<", name+"++"
	switch {
	case step < 0:
		cmp = ">"
		if step == -1 {
			update = name + "--"
		} else {
			update = name + " -= " + strconv.FormatInt(-int64(step), 10)
		}
	case step > 1:
		update = name + " += " + strconv.FormatInt(int64(step), 10)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "for (int %s = %d; %s %s %d; %s) ", name, from, name, cmp, to, update)
	sb.WriteString(body.render())
	return stmtAttrs{deps: body.deps, text: sb.String()}, nil
}

func (d *declEmitter) emitIfStmt(stmt *ast.IfStmt) (stmtAttrs, error) {
	cond, err := d.emitExpr(stmt.Expr)
	if err != nil {
		return stmtAttrs{}, err
	}
	if cond.Ty != types.Bool {
		return stmtAttrs{}, &Error{Kind: ErrMismatchedTyForExpr, Span: stmt.Expr.Pos(), ExpectedTy: types.Bool, ActualTy: cond.Ty}
	}

	ifTrue, err := d.emitBlock(stmt.BlockIfTrue, true)
	if err != nil {
		return stmtAttrs{}, err
	}
	var ifFalse blockAttrs
	if stmt.BlockIfFalse != nil {
		ifFalse, err = d.emitBlock(stmt.BlockIfFalse, true)
		if err != nil {
			return stmtAttrs{}, err
		}
	}

	if v, ok := cond.Value(); ok {
		taken := ifFalse
		if v.Bool() {
			taken = ifTrue
		}
		d.s.logger.Debug("emit: pruned if statement", "condition", v.Bool(), "span", stmt.Span)
		if taken.isEmpty() {
			return stmtAttrs{}, nil
		}
		return stmtAttrs{deps: taken.deps, text: taken.render(), isBlock: true, locals: taken.locals}, nil
	}

	deps := cond.Deps.Union(ifTrue.deps).Union(ifFalse.deps)
	var sb strings.Builder
	switch {
	case ifTrue.isEmpty() && !ifFalse.isEmpty():
		fmt.Fprintf(&sb, "if %s %s", parenthesize("(!"+cond.String()+")"), ifFalse.render())
	default:
		fmt.Fprintf(&sb, "if %s %s", parenthesize(cond.String()), ifTrue.render())
		switch {
		case ifFalse.soleIf != "":
			sb.WriteString(" else ")
			sb.WriteString(ifFalse.soleIf)
		case !ifFalse.isEmpty():
			sb.WriteString(" else ")
			sb.WriteString(ifFalse.render())
		}
	}
	return stmtAttrs{deps: deps, text: sb.String(), isIf: true}, nil
}

// parenthesize wraps s in parentheses unless it is already wrapped as a whole.
func parenthesize(s string) string {
	if strings.HasPrefix(s, "(") {
		depth := 0
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 && i == len(s)-1 {
					return s
				}
			}
			if depth == 0 {
				break
			}
		}
	}
	return "(" + s + ")"
}

func (d *declEmitter) emitLetStmt(stmt *ast.LetStmt) (stmtAttrs, error) {
	var init *ExprAttrs
	if stmt.Expr != nil {
		attrs, err := d.emitExpr(stmt.Expr)
		if err != nil {
			return stmtAttrs{}, err
		}
		init = &attrs
	}

	var ty types.Ty
	switch {
	case stmt.TyExpr != nil:
		t, err := d.emitTyExpr(stmt.TyExpr)
		if err != nil {
			return stmtAttrs{}, err
		}
		ty = t
		if init != nil && init.Ty != ty {
			return stmtAttrs{}, &Error{Kind: ErrMismatchedTyForExpr, Span: stmt.Expr.Pos(), ExpectedTy: ty, ActualTy: init.Ty}
		}
	case init != nil && init.Ty != types.Void:
		ty = init.Ty
	default:
		return stmtAttrs{}, &Error{Kind: ErrCannotInferTyForVar, Span: stmt.Span, Ident: stmt.Ident}
	}

	if err := d.insert(stmt.Ident, &VarInfo{Ty: ty, Kind: VarLocal, IsMut: true}, stmt.Span); err != nil {
		return stmtAttrs{}, err
	}

	text := d.s.declarator(ty, d.s.identText(stmt.Ident))
	if init == nil {
		return stmtAttrs{text: text + ";"}, nil
	}
	return stmtAttrs{deps: init.Deps, text: text + " = " + init.String() + ";"}, nil
}

func (d *declEmitter) emitReturnStmt(stmt *ast.ReturnStmt) (stmtAttrs, error) {
	if stmt.Expr == nil {
		if d.returnTy != types.Void {
			return stmtAttrs{}, &Error{Kind: ErrMissingReturnExpr, Span: stmt.Span, ExpectedTy: d.returnTy}
		}
		return stmtAttrs{text: "return;"}, nil
	}

	attrs, err := d.emitExpr(stmt.Expr)
	if err != nil {
		return stmtAttrs{}, err
	}
	if attrs.Ty != d.returnTy {
		return stmtAttrs{}, &Error{Kind: ErrMismatchedTyForExpr, Span: stmt.Expr.Pos(), ExpectedTy: d.returnTy, ActualTy: attrs.Ty}
	}
	return stmtAttrs{deps: attrs.Deps, text: "return " + attrs.String() + ";"}, nil
}
