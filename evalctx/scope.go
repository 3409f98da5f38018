package evalctx

import "github.com/fhirpath-go/fhirpath/value"

// Scope is one link in the lexical variable-scope chain.
// Lookups walk outward through Parent until a binding is found or the
// chain is exhausted. Each Scope is immutable once constructed — a
// lambda iteration or defineVariable() call creates a new child Scope
// rather than mutating its parent, so sibling iterations never see
// each other's bindings.
type Scope struct {
	parent   *Scope
	bindings map[string]value.Value
}

// NewRootScope creates the outermost scope of an evaluation, with no
// parent.
func NewRootScope() *Scope {
	return &Scope{bindings: map[string]value.Value{}}
}

// Child creates a new scope nested under s with a single binding
// already populated — the common case for `$this`/`$index`/`$total`
// per lambda iteration, and for defineVariable().
func (s *Scope) Child(name string, v value.Value) *Scope {
	return &Scope{
		parent:   s,
		bindings: map[string]value.Value{name: v},
	}
}

// ChildMany is Child for multiple simultaneous bindings, used when a
// lambda iteration establishes `$this`, `$index`, and `$total` at once.
func (s *Scope) ChildMany(bindings map[string]value.Value) *Scope {
	return &Scope{parent: s, bindings: bindings}
}

// Lookup walks the scope chain outward from s and returns the nearest
// binding for name.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}
