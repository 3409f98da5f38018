package evalctx

import (
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/provider"
	"github.com/fhirpath-go/fhirpath/value"
)

// Providers bundles the optional collaborator interfaces an evaluation
// may consult. All of them may be nil. Without a ModelProvider, `is`
// and `as` resolve only the System primitive types and report any
// other type name as not matching. The rest are nil-checked at the
// call site and the corresponding functions return empty rather than
// erroring when the capability they need is unavailable.
type Providers struct {
	Model       provider.ModelProvider
	Terminology provider.TerminologyProvider
	Validation  provider.ValidationProvider
	Trace       provider.TraceProvider
}

// Context is the per-node evaluation context: the focus
// collection a node sees as its input, the lexical variable scope
// chain, the shared provider handles and resolution cache, and a
// pointer to the root resource for %resource/%context. A new Context
// is created for every path step, every function call and every
// lambda iteration; Providers, the cache, and the root pointer are shared by
// reference across all of them rather than copied.
type Context struct {
	Focus    collection.Collection
	Scope    *Scope
	Root     any // the resource %resource/%context resolve to
	Cache    *ResolutionCache
	Provider Providers
}

// NewRoot builds the top-level context for evaluating an expression
// against root, with an empty variable scope and a fresh resolution
// cache.
func NewRoot(focus collection.Collection, root any, providers Providers) *Context {
	return &Context{
		Focus:    focus,
		Scope:    NewRootScope(),
		Root:     root,
		Cache:    NewResolutionCache(),
		Provider: providers,
	}
}

// WithFocus returns a copy of c with a different Focus collection —
// the context every path-navigation step builds for its sub-expression
// (e.g. the segment after a `.`).
func (c *Context) WithFocus(focus collection.Collection) *Context {
	next := *c
	next.Focus = focus
	return &next
}

// WithScope returns a copy of c with a different variable scope — used
// when entering a lambda body or a `defineVariable` continuation.
func (c *Context) WithScope(scope *Scope) *Context {
	next := *c
	next.Scope = scope
	return &next
}

// Child builds the context for one lambda iteration: a new focus (the
// current item as a singleton collection) and a new scope with
// `$this`/`$index`/`$total` bound, without disturbing the parent's
// scope for the next iteration.
func (c *Context) Child(focus collection.Collection, bindings map[string]value.Value) *Context {
	next := *c
	next.Focus = focus
	next.Scope = c.Scope.ChildMany(bindings)
	return &next
}
