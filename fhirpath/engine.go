// Package fhirpath is the public entry point: it composes the
// token/parser/evaluator/provider packages into a single Engine that
// compiles FHIRPath expressions and evaluates them against FHIR
// resources, plus the JSON wire-contract types a host embeds this
// engine with. This mirrors the teacher's flow package, which exposes
// Flow/Join/OfNode as a thin composition root over the lower-level
// Node/OrderNode machinery rather than asking callers to wire the
// pieces themselves.
package fhirpath

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/evalctx"
	"github.com/fhirpath-go/fhirpath/evaluator"
	"github.com/fhirpath-go/fhirpath/fherrors"
	"github.com/fhirpath-go/fhirpath/parser"
)

// Engine compiles and evaluates FHIRPath expressions against FHIR
// resources, sharing one provider set and compiled-expression cache
// across every call. The zero value is not usable; construct one with
// New.
type Engine struct {
	config Config

	mu    sync.RWMutex
	cache map[string]*Expression
}

// New builds an Engine from the given options, applied over
// DefaultConfig in order — later options win on conflicting fields.
func New(opts ...EngineOption) (*Engine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{config: cfg, cache: make(map[string]*Expression)}, nil
}

// Expression is a parsed, immutable FHIRPath expression ready to
// evaluate against any number of resources. Expressions are safe for
// concurrent use — evaluation never mutates the AST, only the
// per-call evalctx.Context built fresh in Eval.
type Expression struct {
	// ID identifies this compiled expression for trace correlation,
	// minted once at compile time the way the teacher's ai/core
	// request plumbing mints an opaque id per request
	// (ai/core/document/id/uuid.go).
	ID   string
	Src  string
	node ast.Node
}

// Compile parses src and returns the reusable Expression, caching the
// result by source text so a host re-submitting the same expression
// (e.g. a FHIR SearchParameter's fhirPath) skips re-parsing. A cache
// miss beyond the Engine's configured CacheCapacity still compiles
// and returns successfully, it is just not retained.
func (e *Engine) Compile(src string) (*Expression, error) {
	e.mu.RLock()
	if expr, ok := e.cache[src]; ok {
		e.mu.RUnlock()
		return expr, nil
	}
	e.mu.RUnlock()

	node, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	expr := &Expression{ID: uuid.NewString(), Src: src, node: node}

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.cache[src]; ok {
		return cached, nil
	}
	if e.config.CacheCapacity == 0 || len(e.cache) < e.config.CacheCapacity {
		e.cache[src] = expr
	}
	e.config.Logger.Debugf("fhirpath: compiled %q as %s", src, expr.ID)
	return expr, nil
}

// Eval compiles src (via the cache) and evaluates it against root, a
// decoded FHIR resource (typically the result of json.Unmarshal into
// map[string]any). It is a convenience wrapper over
// Compile+Expression.Eval for one-shot callers.
func (e *Engine) Eval(ctx context.Context, src string, root any) (collection.Collection, error) {
	expr, err := e.Compile(src)
	if err != nil {
		return collection.Collection{}, err
	}
	return e.evalExpr(ctx, expr, root)
}

// evalExpr evaluates the compiled expr against root using e's providers
// and resolution cache. Each call gets its own evalctx.Context rooted
// fresh at root, so a defineVariable() inside one call's lambda bodies
// can never leak into a sibling call evaluating the same Expression
// concurrently.
func (e *Engine) evalExpr(ctx context.Context, expr *Expression, root any) (collection.Collection, error) {
	rootCtx := evalctx.NewRoot(collection.Single(wrapRoot(root)), root, e.config.Providers)
	result, err := evaluator.Evaluate(ctx, rootCtx, expr.node)
	if err != nil {
		if ee, ok := err.(*fherrors.EvalError); ok {
			return collection.Collection{}, ee.WithExpr(expr.Src)
		}
		return collection.Collection{}, err
	}
	return result, nil
}

// Eval evaluates expr against root, delegating to the Engine that
// compiled it — the shape a host calls repeatedly once it has compiled
// an expression once.
func (expr *Expression) Eval(ctx context.Context, e *Engine, root any) (collection.Collection, error) {
	return e.evalExpr(ctx, expr, root)
}
