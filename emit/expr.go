// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/constant"
	"github.com/gogpu/shadegen/types"
)

func (d *declEmitter) emitExpr(e ast.Expr) (ExprAttrs, error) {
	switch e := e.(type) {
	case *ast.CondExpr:
		return d.emitCondExpr(e)
	case *ast.BinExpr:
		return d.emitBinExpr(e)
	case *ast.UnExpr:
		return d.emitUnExpr(e)
	case *ast.IndexExpr:
		return d.emitIndexExpr(e)
	case *ast.MemberExpr:
		return d.emitMemberExpr(e)
	case *ast.CallExpr:
		return d.emitCallExpr(e)
	case *ast.ConsCallExpr:
		return d.emitConsCallExpr(e)
	case *ast.VarExpr:
		return d.emitVarExpr(e)
	case *ast.LitExpr:
		if d.isInLvalueContext {
			return ExprAttrs{}, &Error{Kind: ErrInvalidLeftHandSide, Span: e.Span}
		}
		return ExprAttrs{Ty: types.FromConstantKind(e.Value.Kind()), ValueOrString: Constant{Value: e.Value}}, nil
	default:
		panic(fmt.Sprintf("emit: unexpected expression %T", e))
	}
}

// emitExprIn emits e with the lvalue context set to lvalue.
func (d *declEmitter) emitExprIn(e ast.Expr, lvalue bool) (ExprAttrs, error) {
	saved := d.isInLvalueContext
	d.isInLvalueContext = lvalue
	attrs, err := d.emitExpr(e)
	d.isInLvalueContext = saved
	return attrs, err
}

func (d *declEmitter) checkRvalue(e ast.Expr) error {
	if d.isInLvalueContext {
		return &Error{Kind: ErrInvalidLeftHandSide, Span: e.Pos()}
	}
	return nil
}

func (d *declEmitter) emitCondExpr(e *ast.CondExpr) (ExprAttrs, error) {
	if err := d.checkRvalue(e); err != nil {
		return ExprAttrs{}, err
	}
	cond, err := d.emitExpr(e.Expr)
	if err != nil {
		return ExprAttrs{}, err
	}
	if cond.Ty != types.Bool {
		return ExprAttrs{}, &Error{Kind: ErrMismatchedTyForExpr, Span: e.Expr.Pos(), ExpectedTy: types.Bool, ActualTy: cond.Ty}
	}
	ifTrue, err := d.emitExpr(e.ExprIfTrue)
	if err != nil {
		return ExprAttrs{}, err
	}
	ifFalse, err := d.emitExpr(e.ExprIfFalse)
	if err != nil {
		return ExprAttrs{}, err
	}
	if ifTrue.Ty != ifFalse.Ty {
		return ExprAttrs{}, &Error{Kind: ErrMismatchedTyForExpr, Span: e.ExprIfFalse.Pos(), ExpectedTy: ifTrue.Ty, ActualTy: ifFalse.Ty}
	}

	if v, ok := cond.Value(); ok {
		taken := ifFalse
		if v.Bool() {
			taken = ifTrue
		}
		return ExprAttrs{Ty: taken.Ty, Deps: cond.Deps.Union(taken.Deps), ValueOrString: taken.ValueOrString}, nil
	}

	return ExprAttrs{
		Ty:            ifTrue.Ty,
		Deps:          cond.Deps.Union(ifTrue.Deps).Union(ifFalse.Deps),
		ValueOrString: Rendered(fmt.Sprintf("(%s ? %s : %s)", cond, ifTrue, ifFalse)),
	}, nil
}

func (d *declEmitter) emitBinExpr(e *ast.BinExpr) (ExprAttrs, error) {
	if err := d.checkRvalue(e); err != nil {
		return ExprAttrs{}, err
	}

	left, err := d.emitExprIn(e.LeftExpr, e.Op.IsAssign())
	if err != nil {
		return ExprAttrs{}, err
	}
	right, err := d.emitExpr(e.RightExpr)
	if err != nil {
		return ExprAttrs{}, err
	}

	ty, ok := types.BinOpTy(e.Op, left.Ty, right.Ty)
	if !ok {
		return ExprAttrs{}, &Error{Kind: ErrCannotApplyBinOp, Span: e.Span, Op: e.Op.String(), Tys: []types.Ty{left.Ty, right.Ty}}
	}

	if e.Op.IsAssign() {
		if e.Op == ast.BinOpAssign && d.s.containsArrays(left.Ty) {
			return ExprAttrs{}, &Error{Kind: ErrInvalidLeftHandSide, Span: e.LeftExpr.Pos()}
		}
		return ExprAttrs{
			Ty:            ty,
			Deps:          left.Deps.Union(right.Deps),
			ValueOrString: Rendered(fmt.Sprintf("(%s %s %s)", left, e.Op, right)),
		}, nil
	}

	lv, lconst := left.Value()
	if lconst && (e.Op == ast.BinOpAnd || e.Op == ast.BinOpOr) {
		// A constant left operand decides whether the right one matters.
		if lv.Bool() == (e.Op == ast.BinOpOr) {
			return ExprAttrs{Ty: ty, Deps: left.Deps, ValueOrString: Constant{Value: lv}}, nil
		}
		return ExprAttrs{Ty: ty, Deps: left.Deps.Union(right.Deps), ValueOrString: right.ValueOrString}, nil
	}

	deps := left.Deps.Union(right.Deps)
	if rv, rconst := right.Value(); lconst && rconst {
		if v, ok := foldBinOp(e.Op, lv, rv); ok {
			return ExprAttrs{Ty: ty, Deps: deps, ValueOrString: Constant{Value: v}}, nil
		}
	}
	return ExprAttrs{
		Ty:            ty,
		Deps:          deps,
		ValueOrString: Rendered(fmt.Sprintf("(%s %s %s)", left, e.Op, right)),
	}, nil
}

func foldBinOp(op ast.BinOp, x, y constant.Value) (constant.Value, bool) {
	switch op {
	case ast.BinOpOr:
		return constant.MakeBool(x.Bool() || y.Bool()), x.Kind() == constant.Bool && y.Kind() == constant.Bool
	case ast.BinOpAnd:
		return constant.MakeBool(x.Bool() && y.Bool()), x.Kind() == constant.Bool && y.Kind() == constant.Bool
	case ast.BinOpEq:
		return constant.Equal(x, y)
	case ast.BinOpNe:
		return constant.NotEqual(x, y)
	case ast.BinOpLt:
		return constant.Less(x, y)
	case ast.BinOpLe:
		return constant.LessEqual(x, y)
	case ast.BinOpGt:
		return constant.Greater(x, y)
	case ast.BinOpGe:
		return constant.GreaterEqual(x, y)
	case ast.BinOpAdd:
		return constant.Add(x, y)
	case ast.BinOpSub:
		return constant.Sub(x, y)
	case ast.BinOpMul:
		return constant.Mul(x, y)
	case ast.BinOpDiv:
		return constant.Div(x, y)
	default:
		return constant.Value{}, false
	}
}

func (d *declEmitter) emitUnExpr(e *ast.UnExpr) (ExprAttrs, error) {
	if err := d.checkRvalue(e); err != nil {
		return ExprAttrs{}, err
	}
	operand, err := d.emitExpr(e.Expr)
	if err != nil {
		return ExprAttrs{}, err
	}
	ty, ok := types.UnOpTy(e.Op, operand.Ty)
	if !ok {
		return ExprAttrs{}, &Error{Kind: ErrCannotApplyUnOp, Span: e.Span, Op: e.Op.String(), Tys: []types.Ty{operand.Ty}}
	}

	if x, ok := operand.Value(); ok {
		var v constant.Value
		switch e.Op {
		case ast.UnOpNot:
			v, ok = constant.Not(x)
		case ast.UnOpNeg:
			v, ok = constant.Neg(x)
		}
		if ok {
			return ExprAttrs{Ty: ty, Deps: operand.Deps, ValueOrString: Constant{Value: v}}, nil
		}
	}
	return ExprAttrs{Ty: ty, Deps: operand.Deps, ValueOrString: Rendered(fmt.Sprintf("(%s%s)", e.Op, operand))}, nil
}

// emitIndexExpr keeps the lvalue context for the base; the index itself
// is always read.
func (d *declEmitter) emitIndexExpr(e *ast.IndexExpr) (ExprAttrs, error) {
	base, err := d.emitExpr(e.Expr)
	if err != nil {
		return ExprAttrs{}, err
	}
	index, err := d.emitExprIn(e.IndexExpr, false)
	if err != nil {
		return ExprAttrs{}, err
	}

	ty, ok := types.IndexTy(base.Ty, index.Ty)
	if !ok {
		return ExprAttrs{}, &Error{Kind: ErrCannotApplyIndexOp, Span: e.Span, Tys: []types.Ty{base.Ty, index.Ty}}
	}
	if v, ok := index.Value(); ok {
		n := types.Len(base.Ty)
		if arr, ok := base.Ty.(types.Array); ok {
			n = arr.Len
		}
		if v.Int() < 0 || int(v.Int()) >= n {
			return ExprAttrs{}, &Error{Kind: ErrCannotApplyIndexOp, Span: e.IndexExpr.Pos(), Tys: []types.Ty{base.Ty, index.Ty}}
		}
	}

	return ExprAttrs{
		Ty:            ty,
		Deps:          base.Deps.Union(index.Deps),
		ValueOrString: Rendered(fmt.Sprintf("%s[%s]", base, index)),
	}, nil
}

func (d *declEmitter) emitMemberExpr(e *ast.MemberExpr) (ExprAttrs, error) {
	base, err := d.emitExpr(e.Expr)
	if err != nil {
		return ExprAttrs{}, err
	}
	undefined := &Error{Kind: ErrMemberIsUndefined, Span: e.Span, Ident: e.MemberIdent, Tys: []types.Ty{base.Ty}}

	var ty types.Ty
	var member string
	if st, ok := base.Ty.(types.Struct); ok {
		ty, ok = d.s.structInfo(st.Ident).MemberTy(e.MemberIdent)
		if !ok {
			return ExprAttrs{}, undefined
		}
		member = d.s.identText(e.MemberIdent)
	} else {
		sw, ok := types.ParseSwizzle(base.Ty, string(e.MemberIdent))
		if !ok {
			return ExprAttrs{}, undefined
		}
		if d.isInLvalueContext && sw.HasDuplicates() {
			return ExprAttrs{}, &Error{Kind: ErrInvalidLeftHandSide, Span: e.Span}
		}
		ty = sw.Ty
		member = string(e.MemberIdent)
	}

	return ExprAttrs{Ty: ty, Deps: base.Deps, ValueOrString: Rendered(base.String() + "." + member)}, nil
}

func (d *declEmitter) emitArgs(exprs []ast.Expr) ([]ExprAttrs, error) {
	args := make([]ExprAttrs, len(exprs))
	for i, e := range exprs {
		attrs, err := d.emitExpr(e)
		if err != nil {
			return nil, err
		}
		args[i] = attrs
	}
	return args, nil
}

func argTys(args []ExprAttrs) []types.Ty {
	tys := make([]types.Ty, len(args))
	for i, a := range args {
		tys[i] = a.Ty
	}
	return tys
}

func argTexts(args []ExprAttrs) []string {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.String()
	}
	return texts
}

func argDeps(args []ExprAttrs) Deps {
	var deps Deps
	for _, a := range args {
		deps = deps.Union(a.Deps)
	}
	return deps
}

func (d *declEmitter) emitCallExpr(e *ast.CallExpr) (ExprAttrs, error) {
	if err := d.checkRvalue(e); err != nil {
		return ExprAttrs{}, err
	}
	info, err := d.findInfo(e.Ident, e.Span)
	if err != nil {
		return ExprAttrs{}, err
	}

	switch info := info.(type) {
	case nil:
		return ExprAttrs{}, &Error{Kind: ErrIdentIsUndefined, Span: e.Span, Ident: e.Ident}

	case *FnInfo:
		args, err := d.emitCheckedArgs(e, info.ParamTys)
		if err != nil {
			return ExprAttrs{}, err
		}
		var sb strings.Builder
		d.s.hooks.WriteIdent(&sb, e.Ident)
		d.s.hooks.WriteArgs(&sb, info.Deps, argTexts(args))
		return ExprAttrs{
			Ty:            info.ReturnTy,
			Deps:          fnDeps(e.Ident).Union(info.Deps).Union(argDeps(args)),
			ValueOrString: Rendered(sb.String()),
		}, nil

	case *BuiltinInfo:
		args, err := d.emitArgs(e.ArgExprs)
		if err != nil {
			return ExprAttrs{}, err
		}
		tys := argTys(args)
		ty, ok := info.ReturnTy(tys)
		if !ok {
			return ExprAttrs{}, &Error{Kind: ErrCannotCallFn, Span: e.Span, Ident: e.Ident, Tys: tys}
		}
		var sb strings.Builder
		d.s.hooks.WriteBuiltinIdent(&sb, e.Ident)
		d.s.hooks.WriteArgs(&sb, Deps{}, argTexts(args))
		return ExprAttrs{Ty: ty, Deps: argDeps(args), ValueOrString: Rendered(sb.String())}, nil

	case *StructInfo:
		memberTys := make([]types.Ty, len(info.Members))
		for i, m := range info.Members {
			memberTys[i] = m.Ty
		}
		args, err := d.emitCheckedArgs(e, memberTys)
		if err != nil {
			return ExprAttrs{}, err
		}
		var sb strings.Builder
		d.s.hooks.WriteIdent(&sb, e.Ident)
		d.s.hooks.WriteArgs(&sb, Deps{}, argTexts(args))
		return ExprAttrs{Ty: types.Struct{Ident: e.Ident}, Deps: argDeps(args), ValueOrString: Rendered(sb.String())}, nil

	default:
		return ExprAttrs{}, &Error{Kind: ErrIdentIsNotAFn, Span: e.Span, Ident: e.Ident}
	}
}

// emitCheckedArgs emits call arguments against a fixed parameter list.
// The first mismatch wins.
func (d *declEmitter) emitCheckedArgs(e *ast.CallExpr, paramTys []types.Ty) ([]ExprAttrs, error) {
	switch want, got := len(paramTys), len(e.ArgExprs); {
	case got < want:
		return nil, &Error{Kind: ErrTooFewArgsForCall, Span: e.Span, Ident: e.Ident, Want: want, Got: got}
	case got > want:
		return nil, &Error{Kind: ErrTooManyArgsForCall, Span: e.Span, Ident: e.Ident, Want: want, Got: got}
	}

	args := make([]ExprAttrs, len(e.ArgExprs))
	for i, argExpr := range e.ArgExprs {
		arg, err := d.emitExpr(argExpr)
		if err != nil {
			return nil, err
		}
		if arg.Ty != paramTys[i] {
			return nil, &Error{
				Kind:       ErrMismatchedTyForArg,
				Span:       argExpr.Pos(),
				Ident:      e.Ident,
				Index:      i,
				ExpectedTy: paramTys[i],
				ActualTy:   arg.Ty,
			}
		}
		args[i] = arg
	}
	return args, nil
}

func (d *declEmitter) emitConsCallExpr(e *ast.ConsCallExpr) (ExprAttrs, error) {
	if err := d.checkRvalue(e); err != nil {
		return ExprAttrs{}, err
	}
	ty := types.FromTyLit(e.TyLit)
	args, err := d.emitArgs(e.ArgExprs)
	if err != nil {
		return ExprAttrs{}, err
	}
	for _, a := range args {
		if !types.IsScalarOrVector(a.Ty) {
			return ExprAttrs{}, &Error{Kind: ErrCannotCallCons, Span: e.Span, ExpectedTy: ty, Tys: argTys(args)}
		}
	}

	var sb strings.Builder
	d.s.hooks.WriteTyLit(&sb, e.TyLit)
	d.s.hooks.WriteArgs(&sb, Deps{}, argTexts(args))
	attrs := ExprAttrs{Ty: ty, Deps: argDeps(args), ValueOrString: Rendered(sb.String())}

	if len(args) == 1 {
		arg := args[0]
		switch {
		case types.IsScalar(ty):
			// conversion, or selection of the first component
			if v, ok := arg.Value(); ok {
				kind, _ := types.ConstantKind(ty)
				attrs.ValueOrString = Constant{Value: constant.Convert(v, kind)}
			}
			return attrs, nil
		case types.IsScalar(arg.Ty):
			// splat, or a diagonal matrix
			return attrs, nil
		case types.IsVector(ty) && types.Len(arg.Ty) >= types.Len(ty):
			return attrs, nil
		}
	}

	want, got := types.Slots(ty), 0
	for _, a := range args {
		got += types.Slots(a.Ty)
	}
	switch {
	case got < want:
		return ExprAttrs{}, &Error{Kind: ErrTooFewCompsForConsCall, Span: e.Span, ExpectedTy: ty, Want: want, Got: got}
	case got > want:
		return ExprAttrs{}, &Error{Kind: ErrTooManyCompsForConsCall, Span: e.Span, ExpectedTy: ty, Want: want, Got: got}
	}
	return attrs, nil
}

func (d *declEmitter) emitVarExpr(e *ast.VarExpr) (ExprAttrs, error) {
	info, err := d.findInfo(e.Ident, e.Span)
	if err != nil {
		return ExprAttrs{}, err
	}
	if info == nil {
		return ExprAttrs{}, &Error{Kind: ErrIdentIsUndefined, Span: e.Span, Ident: e.Ident}
	}
	v, ok := info.(*VarInfo)
	if !ok {
		return ExprAttrs{}, &Error{Kind: ErrIdentIsNotAVar, Span: e.Span, Ident: e.Ident}
	}

	var sb strings.Builder
	var deps Deps
	switch v.Kind {
	case VarAttribute:
		if d.isInLvalueContext {
			return ExprAttrs{}, &Error{Kind: ErrCannotAssignToAttributeVar, Span: e.Span, Ident: e.Ident}
		}
		deps.HasAttributes = true
		d.s.hooks.WriteAttributeVar(&sb, e.Ident)
	case VarUniform:
		if d.isInLvalueContext {
			return ExprAttrs{}, &Error{Kind: ErrCannotAssignToUniformVar, Span: e.Span, Ident: e.Ident}
		}
		deps = uniformDeps(v.BlockIdent)
		d.s.hooks.WriteUniformVar(&sb, v.BlockIdent, e.Ident)
	case VarLocal:
		if d.isInLvalueContext && !v.IsMut {
			return ExprAttrs{}, &Error{Kind: ErrCannotAssignToImmutableVar, Span: e.Span, Ident: e.Ident}
		}
		d.s.hooks.WriteIdent(&sb, e.Ident)
	case VarVarying:
		if d.isInLvalueContext {
			deps.HasOutputVaryings = true
		} else {
			deps.HasInputVaryings = true
		}
		d.s.hooks.WriteVaryingVar(&sb, e.Ident)
	default:
		panic(fmt.Sprintf("emit: unexpected variable kind %v", v.Kind))
	}
	return ExprAttrs{Ty: v.Ty, Deps: deps, ValueOrString: Rendered(sb.String())}, nil
}
