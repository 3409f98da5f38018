// Package function implements the FHIRPath function registry: ~100
// named functions across the categories spec.md groups them into
// (collection, string, math, type, terminology, tree-navigation,
// temporal, utility), each registered with metadata describing its
// argument-evaluation mode and empty-propagation policy.
//
// The four evaluator traits the expanded spec names
// (PureFunctionEvaluator, FunctionEvaluator, ProviderPureFunctionEvaluator,
// LazyFunctionEvaluator) are collapsed here into one Invoke signature:
// every function receives the same Call struct, and Metadata's ArgMode
// tells the caller (package evaluator) whether to pre-evaluate argument
// expressions against the current focus or hand them over raw for the
// function itself to evaluate per element. This keeps the registry a
// single map of uniform entries rather than four parallel ones.
package function

import (
	"context"

	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/evalctx"
)

// ArgMode controls how the evaluator prepares a function's arguments
// before invoking it.
type ArgMode int

const (
	// ArgCurrent: every argument expression is evaluated once against
	// the current focus before the function is called.
	ArgCurrent ArgMode = iota
	// ArgLambda: argument expressions are handed over unevaluated; the
	// function evaluates them itself, typically once per focus element
	// with $this/$index/$total bound.
	ArgLambda
)

// EmptyPolicy controls what an empty focus collection does to a
// function's result.
type EmptyPolicy int

const (
	// PropagateFocus: an empty focus makes the result empty without
	// calling Invoke.
	PropagateFocus EmptyPolicy = iota
	// NoPropagation: the function runs even on an empty focus (e.g.
	// `empty()`, `count()`, `exists()` must see the empty case).
	NoPropagation
	// CustomPropagation: the function implements its own empty-input
	// rule internally.
	CustomPropagation
)

// Category groups functions the way spec.md's function registry table
// does, for documentation and introspection purposes only — it has no
// effect on dispatch.
type Category int

const (
	CategorySubsetting Category = iota
	CategoryFilteringProjection
	CategoryExistence
	CategoryAggregate
	CategoryCombining
	CategoryStringManipulation
	CategoryMath
	CategoryConversion
	CategoryTemporal
	CategoryTypeChecking
	CategoryTreeNavigation
	CategoryTerminology
	CategoryUtility
	CategoryLogic
)

// EvalFunc evaluates an AST node against a given evaluation context,
// returning the resulting collection. Package evaluator supplies the
// real implementation; lambda-accepting and lazy-argument functions
// call it once per element (or once per argument) as needed.
type EvalFunc func(ctx context.Context, ectx *evalctx.Context, node ast.Node) (collection.Collection, error)

// Call bundles everything an Invoke needs: the standard context (for
// cancellation and provider I/O), the evaluation context (focus,
// scope, providers, cache), the raw argument nodes (used directly by
// ArgLambda functions and by provider-aware functions that must
// re-evaluate an argument per element), the pre-evaluated argument
// collections (populated only for ArgCurrent functions), and the
// Evaluate callback.
type Call struct {
	Std       context.Context
	Ctx       *evalctx.Context
	ArgNodes  []ast.Node
	ArgValues []collection.Collection
	Evaluate  EvalFunc
}

// Invoke is a function implementation: given a Call (which carries the
// focus via Call.Ctx.Focus), produce a result collection.
type Invoke func(call Call) (collection.Collection, error)

// Metadata is the registry entry for one function.
type Metadata struct {
	Name                string
	ArgMode             ArgMode
	Empty               EmptyPolicy
	Deterministic       bool
	Category            Category
	RequiresTerminology bool
	RequiresModel       bool
	MinArity            int
	MaxArity            int // -1 means unbounded
	Fn                  Invoke
}

var registry = map[string]Metadata{}

func register(m Metadata) {
	registry[m.Name] = m
}

// Lookup returns the registered metadata for name.
func Lookup(name string) (Metadata, bool) {
	m, ok := registry[name]
	return m, ok
}

// Names returns every registered function name, for introspection and
// testing.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
