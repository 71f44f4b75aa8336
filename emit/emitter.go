// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package emit validates a parsed shader and renders it into one source
// text per stage.
//
// An Emitter holds the builtin function table and is safe to reuse across
// Emit calls: all per-shader state lives in a shaderEmitter that is
// discarded when Emit returns, whether it succeeded or not.
//
// Top-level functions and structs are expanded lazily, the first time they
// are referenced. Expansion order is observable in the output: a function
// is rendered after every function it calls.
package emit

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gogpu/shadegen/ast"
	"github.com/gogpu/shadegen/types"
)

// Emitter is the root of symbol resolution. It is immutable after New.
type Emitter struct {
	scope  *Scope
	logger *slog.Logger
}

// Option configures an Emitter.
type Option func(*emitterConfig)

type emitterConfig struct {
	logger   *slog.Logger
	builtins []Builtin
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *emitterConfig) {
		c.logger = l
	}
}

// WithBuiltins adds builtin functions. Overloads of an identifier already
// in the table are appended to the existing ones.
func WithBuiltins(builtins ...Builtin) Option {
	return func(c *emitterConfig) {
		c.builtins = append(c.builtins, builtins...)
	}
}

// nopHandler discards all records. Enabled returns false so debug
// attributes are never built.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// New returns an Emitter seeded with DefaultBuiltins.
func New(opts ...Option) *Emitter {
	cfg := emitterConfig{builtins: DefaultBuiltins()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(nopHandler{})
	}

	scope := NewScope()
	for _, b := range cfg.builtins {
		if info, ok := scope.Lookup(b.Ident); ok {
			prev := info.(*BuiltinInfo)
			merged := slices.Concat(prev.Overloads, b.Overloads)
			scope.infos[b.Ident] = &BuiltinInfo{Overloads: merged}
			continue
		}
		scope.Insert(b.Ident, &BuiltinInfo{Overloads: slices.Clone(b.Overloads)})
	}
	return &Emitter{scope: scope, logger: cfg.logger}
}

type fnDeclAttrs struct {
	info *FnInfo
	text string
}

type structDeclAttrs struct {
	info *StructInfo
	text string
}

// shaderEmitter holds the state of one Emit call.
//
// Functions and structs are identified by dense ids assigned in
// declaration order. Memo tables are indexed by id; a nil entry means the
// declaration has not been expanded yet. The active stacks hold the ids
// currently being expanded, innermost last.
type shaderEmitter struct {
	root   *Emitter
	hooks  Hooks
	logger *slog.Logger

	// scope holds attribute, uniform and varying variables.
	scope *Scope

	fnDecls  []*ast.FnDecl
	fnIDs    map[ast.Ident]int
	fnMemo   []*fnDeclAttrs
	fnActive []int
	fnOrder  []int

	structDecls  []*ast.StructDecl
	structIDs    map[ast.Ident]int
	structMemo   []*structDeclAttrs
	structActive []int
	structOrder  []int
}

func newShaderEmitter(root *Emitter, hooks Hooks) *shaderEmitter {
	return &shaderEmitter{
		root:      root,
		hooks:     hooks,
		logger:    root.logger,
		scope:     NewScope(),
		fnIDs:     make(map[ast.Ident]int),
		structIDs: make(map[ast.Ident]int),
	}
}

// addFnDecl registers a top-level function for lazy expansion.
func (s *shaderEmitter) addFnDecl(decl *ast.FnDecl) {
	s.fnIDs[decl.Ident] = len(s.fnDecls)
	s.fnDecls = append(s.fnDecls, decl)
	s.fnMemo = append(s.fnMemo, nil)
}

// addStructDecl registers a top-level struct for lazy expansion.
func (s *shaderEmitter) addStructDecl(decl *ast.StructDecl) {
	s.structIDs[decl.Ident] = len(s.structDecls)
	s.structDecls = append(s.structDecls, decl)
	s.structMemo = append(s.structMemo, nil)
}

// resetFns forgets every expanded function so the next stage expands
// what it needs from scratch.
func (s *shaderEmitter) resetFns() {
	clear(s.fnMemo)
	s.fnOrder = s.fnOrder[:0]
}

// findInfo resolves ident outside any function body: the shader scope,
// then top-level functions and structs (expanding them on first use),
// then builtins. A nil Info with a nil error means ident is undefined.
// span locates the reference for cycle errors.
func (s *shaderEmitter) findInfo(ident ast.Ident, span ast.Span) (Info, error) {
	if info, ok := s.scope.Lookup(ident); ok {
		return info, nil
	}
	if id, ok := s.fnIDs[ident]; ok {
		attrs, err := s.expandFn(id, span)
		if err != nil {
			return nil, err
		}
		return attrs.info, nil
	}
	if id, ok := s.structIDs[ident]; ok {
		attrs, err := s.expandStruct(id, span)
		if err != nil {
			return nil, err
		}
		return attrs.info, nil
	}
	if info, ok := s.root.scope.Lookup(ident); ok {
		return info, nil
	}
	return nil, nil
}

func (s *shaderEmitter) expandFn(id int, span ast.Span) (*fnDeclAttrs, error) {
	if attrs := s.fnMemo[id]; attrs != nil {
		return attrs, nil
	}
	decl := s.fnDecls[id]
	if i := slices.Index(s.fnActive, id); i >= 0 {
		return nil, &Error{
			Kind:      ErrFnHasCyclicDepChain,
			Span:      span,
			Ident:     decl.Ident,
			DepIdents: s.cyclePath(s.fnActive[i:], decl.Ident, func(id int) ast.Ident { return s.fnDecls[id].Ident }),
		}
	}

	s.fnActive = append(s.fnActive, id)
	attrs, err := s.emitFnDecl(decl)
	s.fnActive = s.fnActive[:len(s.fnActive)-1]
	if err != nil {
		return nil, err
	}

	s.fnMemo[id] = attrs
	s.fnOrder = append(s.fnOrder, id)
	s.logger.Debug("emit: expanded function", "ident", decl.Ident, "deps", attrs.info.Deps.FnIdents())
	return attrs, nil
}

func (s *shaderEmitter) expandStruct(id int, span ast.Span) (*structDeclAttrs, error) {
	if attrs := s.structMemo[id]; attrs != nil {
		return attrs, nil
	}
	decl := s.structDecls[id]
	if i := slices.Index(s.structActive, id); i >= 0 {
		return nil, &Error{
			Kind:      ErrStructHasCyclicDepChain,
			Span:      span,
			Ident:     decl.Ident,
			DepIdents: s.cyclePath(s.structActive[i:], decl.Ident, func(id int) ast.Ident { return s.structDecls[id].Ident }),
		}
	}

	s.structActive = append(s.structActive, id)
	attrs, err := s.emitStructDecl(decl)
	s.structActive = s.structActive[:len(s.structActive)-1]
	if err != nil {
		return nil, err
	}

	s.structMemo[id] = attrs
	s.structOrder = append(s.structOrder, id)
	s.logger.Debug("emit: expanded struct", "ident", decl.Ident)
	return attrs, nil
}

// cyclePath returns the identifiers of the active ids followed by the
// re-entered identifier.
func (s *shaderEmitter) cyclePath(active []int, reentered ast.Ident, identOf func(int) ast.Ident) []ast.Ident {
	path := make([]ast.Ident, 0, len(active)+1)
	for _, id := range active {
		path = append(path, identOf(id))
	}
	return append(path, reentered)
}

// structInfo returns the info of an already expanded struct.
func (s *shaderEmitter) structInfo(ident ast.Ident) *StructInfo {
	id, ok := s.structIDs[ident]
	if !ok || s.structMemo[id] == nil {
		panic("emit: struct " + string(ident) + " used before expansion")
	}
	return s.structMemo[id].info
}

// declEmitter holds the state of one top-level declaration.
type declEmitter struct {
	s *shaderEmitter

	// scopes is the stack of block scopes, innermost last.
	scopes   []*Scope
	returnTy types.Ty

	isInForStmtBlock  bool
	isInLvalueContext bool
}

func (s *shaderEmitter) newDeclEmitter() *declEmitter {
	return &declEmitter{s: s}
}

func (d *declEmitter) pushScope() *Scope {
	scope := NewScope()
	d.scopes = append(d.scopes, scope)
	return scope
}

func (d *declEmitter) popScope() {
	d.scopes = d.scopes[:len(d.scopes)-1]
}

// insert binds ident in the innermost scope.
func (d *declEmitter) insert(ident ast.Ident, info Info, span ast.Span) error {
	if !d.scopes[len(d.scopes)-1].Insert(ident, info) {
		return &Error{Kind: ErrIdentCannotBeRedefined, Span: span, Ident: ident}
	}
	return nil
}

// findInfo resolves ident from the innermost block scope outward.
func (d *declEmitter) findInfo(ident ast.Ident, span ast.Span) (Info, error) {
	for i := len(d.scopes) - 1; i >= 0; i-- {
		if info, ok := d.scopes[i].Lookup(ident); ok {
			return info, nil
		}
	}
	return d.s.findInfo(ident, span)
}
