// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package emit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

// ErrorKind categorizes semantic errors.
type ErrorKind uint8

const (
	ErrCannotApplyBinOp ErrorKind = iota
	ErrCannotApplyIndexOp
	ErrCannotApplyUnOp
	ErrCannotAssignToAttributeVar
	ErrCannotAssignToImmutableVar
	ErrCannotAssignToUniformVar
	ErrCannotCallCons
	ErrCannotCallFn
	ErrCannotInferTyForVar
	ErrExprMustBeConstant
	ErrFnCannotReadFromAndWriteToVaryings
	ErrFnCannotReadFromVaryings
	ErrFnCannotWriteToVaryings
	ErrFnHasCyclicDepChain
	ErrIdentCannotBeRedefined
	ErrIdentIsNotAFn
	ErrIdentIsNotAStruct
	ErrIdentIsNotAVar
	ErrIdentIsUndefined
	ErrInvalidArrayLen
	ErrInvalidBreakStmt
	ErrInvalidContinueStmt
	ErrInvalidLeftHandSide
	ErrInvalidTyForAttributeVar
	ErrInvalidTyForVaryingVar
	ErrMemberIsUndefined
	ErrMismatchedReturnTyForFn
	ErrMismatchedTyForArg
	ErrMismatchedTyForExpr
	ErrMissingFn
	ErrMissingReturnExpr
	ErrStepMustBeNegative
	ErrStepMustBeNonZero
	ErrStepMustBePositive
	ErrStructHasCyclicDepChain
	ErrTooFewArgsForCall
	ErrTooFewCompsForConsCall
	ErrTooManyArgsForCall
	ErrTooManyCompsForConsCall
	ErrTooManyParamsForFn
)

var errorKindNames = [...]string{
	ErrCannotApplyBinOp:                   "CannotApplyBinOp",
	ErrCannotApplyIndexOp:                 "CannotApplyIndexOp",
	ErrCannotApplyUnOp:                    "CannotApplyUnOp",
	ErrCannotAssignToAttributeVar:         "CannotAssignToAttributeVar",
	ErrCannotAssignToImmutableVar:         "CannotAssignToImmutableVar",
	ErrCannotAssignToUniformVar:           "CannotAssignToUniformVar",
	ErrCannotCallCons:                     "CannotCallCons",
	ErrCannotCallFn:                       "CannotCallFn",
	ErrCannotInferTyForVar:                "CannotInferTyForVar",
	ErrExprMustBeConstant:                 "ExprMustBeConstant",
	ErrFnCannotReadFromAndWriteToVaryings: "FnCannotReadFromAndWriteToVaryings",
	ErrFnCannotReadFromVaryings:           "FnCannotReadFromVaryings",
	ErrFnCannotWriteToVaryings:            "FnCannotWriteToVaryings",
	ErrFnHasCyclicDepChain:                "FnHasCyclicDepChain",
	ErrIdentCannotBeRedefined:             "IdentCannotBeRedefined",
	ErrIdentIsNotAFn:                      "IdentIsNotAFn",
	ErrIdentIsNotAStruct:                  "IdentIsNotAStruct",
	ErrIdentIsNotAVar:                     "IdentIsNotAVar",
	ErrIdentIsUndefined:                   "IdentIsUndefined",
	ErrInvalidArrayLen:                    "InvalidArrayLen",
	ErrInvalidBreakStmt:                   "InvalidBreakStmt",
	ErrInvalidContinueStmt:                "InvalidContinueStmt",
	ErrInvalidLeftHandSide:                "InvalidLeftHandSide",
	ErrInvalidTyForAttributeVar:           "InvalidTyForAttributeVar",
	ErrInvalidTyForVaryingVar:             "InvalidTyForVaryingVar",
	ErrMemberIsUndefined:                  "MemberIsUndefined",
	ErrMismatchedReturnTyForFn:            "MismatchedReturnTyForFn",
	ErrMismatchedTyForArg:                 "MismatchedTyForArg",
	ErrMismatchedTyForExpr:                "MismatchedTyForExpr",
	ErrMissingFn:                          "MissingFn",
	ErrMissingReturnExpr:                  "MissingReturnExpr",
	ErrStepMustBeNegative:                 "StepMustBeNegative",
	ErrStepMustBeNonZero:                  "StepMustBeNonZero",
	ErrStepMustBePositive:                 "StepMustBePositive",
	ErrStructHasCyclicDepChain:            "StructHasCyclicDepChain",
	ErrTooFewArgsForCall:                  "TooFewArgsForCall",
	ErrTooFewCompsForConsCall:             "TooFewCompsForConsCall",
	ErrTooManyArgsForCall:                 "TooManyArgsForCall",
	ErrTooManyCompsForConsCall:            "TooManyCompsForConsCall",
	ErrTooManyParamsForFn:                 "TooManyParamsForFn",
}

// String returns the error kind name.
func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "Unknown"
}

// Error is a semantic error. Which fields are set depends on Kind.
type Error struct {
	Kind ErrorKind

	// Span is the location of the offending node.
	Span ast.Span

	// Ident is the identifier the error is about.
	Ident ast.Ident

	// DepIdents is the cycle path of a cyclic dependency chain, starting
	// and ending with the re-entered identifier.
	DepIdents []ast.Ident

	// Op is the operator spelling for operator errors.
	Op string

	// Tys are operand or argument types.
	Tys []types.Ty

	// ExpectedTy and ActualTy describe type mismatches.
	ExpectedTy types.Ty
	ActualTy   types.Ty

	// Index is the zero-based argument index, the array length or the
	// loop step, depending on Kind.
	Index int

	// Want and Got are expected and actual counts for arity errors.
	Want int
	Got  int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span.IsZero() {
		return e.Message()
	}
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message())
}

// Message returns the diagnostic text without location.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrCannotApplyBinOp:
		return fmt.Sprintf("cannot apply binary operator %s to %s and %s", e.Op, e.ty(0), e.ty(1))
	case ErrCannotApplyIndexOp:
		return fmt.Sprintf("cannot index %s with %s", e.ty(0), e.ty(1))
	case ErrCannotApplyUnOp:
		return fmt.Sprintf("cannot apply unary operator %s to %s", e.Op, e.ty(0))
	case ErrCannotAssignToAttributeVar:
		return fmt.Sprintf("cannot assign to attribute variable %s", e.Ident)
	case ErrCannotAssignToImmutableVar:
		return fmt.Sprintf("cannot assign to immutable variable %s", e.Ident)
	case ErrCannotAssignToUniformVar:
		return fmt.Sprintf("cannot assign to uniform variable %s", e.Ident)
	case ErrCannotCallCons:
		return fmt.Sprintf("cannot construct %s from (%s)", e.ExpectedTy, joinTys(e.Tys))
	case ErrCannotCallFn:
		return fmt.Sprintf("no overload of %s takes (%s)", e.Ident, joinTys(e.Tys))
	case ErrCannotInferTyForVar:
		return fmt.Sprintf("cannot infer type for variable %s", e.Ident)
	case ErrExprMustBeConstant:
		return "expression must be a compile-time constant"
	case ErrFnCannotReadFromAndWriteToVaryings:
		return fmt.Sprintf("function %s cannot both read from and write to varyings", e.Ident)
	case ErrFnCannotReadFromVaryings:
		return fmt.Sprintf("function %s cannot read from varyings", e.Ident)
	case ErrFnCannotWriteToVaryings:
		return fmt.Sprintf("function %s cannot write to varyings", e.Ident)
	case ErrFnHasCyclicDepChain:
		return fmt.Sprintf("function %s has a cyclic dependency chain: %s", e.Ident, joinIdents(e.DepIdents))
	case ErrIdentCannotBeRedefined:
		return fmt.Sprintf("identifier %s cannot be redefined", e.Ident)
	case ErrIdentIsNotAFn:
		return fmt.Sprintf("identifier %s is not a function", e.Ident)
	case ErrIdentIsNotAStruct:
		return fmt.Sprintf("identifier %s is not a struct", e.Ident)
	case ErrIdentIsNotAVar:
		return fmt.Sprintf("identifier %s is not a variable", e.Ident)
	case ErrIdentIsUndefined:
		return fmt.Sprintf("identifier %s is undefined", e.Ident)
	case ErrInvalidArrayLen:
		return fmt.Sprintf("invalid array length %d", e.Index)
	case ErrInvalidBreakStmt:
		return "break statement outside of a for loop"
	case ErrInvalidContinueStmt:
		return "continue statement outside of a for loop"
	case ErrInvalidLeftHandSide:
		return "invalid left-hand side of assignment"
	case ErrInvalidTyForAttributeVar:
		return fmt.Sprintf("invalid type %s for attribute variable %s", e.ActualTy, e.Ident)
	case ErrInvalidTyForVaryingVar:
		return fmt.Sprintf("invalid type %s for varying variable %s", e.ActualTy, e.Ident)
	case ErrMemberIsUndefined:
		return fmt.Sprintf("type %s has no member %s", e.ty(0), e.Ident)
	case ErrMismatchedReturnTyForFn:
		return fmt.Sprintf("function %s must return %s, found %s", e.Ident, e.ExpectedTy, e.ActualTy)
	case ErrMismatchedTyForArg:
		return fmt.Sprintf("argument %d of %s has type %s, expected %s", e.Index+1, e.Ident, e.ActualTy, e.ExpectedTy)
	case ErrMismatchedTyForExpr:
		return fmt.Sprintf("expected type %s, found %s", e.ExpectedTy, e.ActualTy)
	case ErrMissingFn:
		return fmt.Sprintf("missing function %s", e.Ident)
	case ErrMissingReturnExpr:
		return fmt.Sprintf("missing return expression of type %s", e.ExpectedTy)
	case ErrStepMustBeNegative:
		return fmt.Sprintf("step of loop over %s must be negative, found %d", e.Ident, e.Index)
	case ErrStepMustBeNonZero:
		return fmt.Sprintf("step of loop over %s must be non-zero", e.Ident)
	case ErrStepMustBePositive:
		return fmt.Sprintf("step of loop over %s must be positive, found %d", e.Ident, e.Index)
	case ErrStructHasCyclicDepChain:
		return fmt.Sprintf("struct %s has a cyclic dependency chain: %s", e.Ident, joinIdents(e.DepIdents))
	case ErrTooFewArgsForCall:
		return fmt.Sprintf("too few arguments for call to %s: expected %d, found %d", e.Ident, e.Want, e.Got)
	case ErrTooFewCompsForConsCall:
		return fmt.Sprintf("too few components for %s constructor: expected %d, found %d", e.ExpectedTy, e.Want, e.Got)
	case ErrTooManyArgsForCall:
		return fmt.Sprintf("too many arguments for call to %s: expected %d, found %d", e.Ident, e.Want, e.Got)
	case ErrTooManyCompsForConsCall:
		return fmt.Sprintf("too many components for %s constructor: expected %d, found %d", e.ExpectedTy, e.Want, e.Got)
	case ErrTooManyParamsForFn:
		return fmt.Sprintf("function %s must take no parameters, found %d", e.Ident, e.Got)
	default:
		return e.Kind.String()
	}
}

func (e *Error) ty(i int) types.Ty {
	if i < len(e.Tys) {
		return e.Tys[i]
	}
	return types.Void
}

// FormatWithContext returns the error message with the offending source
// line and a caret under the error location.
func (e *Error) FormatWithContext(source string) string {
	excerpt, ok := e.Span.Excerpt(source)
	if !ok {
		return e.Error()
	}
	return fmt.Sprintf("error[%s]: %s\n%s", e.Kind, e.Message(), excerpt)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func joinTys(tys []types.Ty) string {
	names := make([]string, len(tys))
	for i, ty := range tys {
		names[i] = ty.String()
	}
	return strings.Join(names, ", ")
}

func joinIdents(idents []ast.Ident) string {
	names := make([]string, len(idents))
	for i, id := range idents {
		names[i] = string(id)
	}
	return strings.Join(names, " -> ")
}
