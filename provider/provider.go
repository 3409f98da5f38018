// Package provider declares the narrow async capability interfaces the
// evaluator consumes but never implements: model/schema lookup,
// terminology services, profile validation, and trace output. Callers
// supply concrete implementations; this module ships none, the same way the ai/core package defines
// Model/StreamingModel interfaces consumed by value rather than a
// single concrete implementation.
package provider

import (
	"context"

	"github.com/fhirpath-go/fhirpath/fhirtype"
)

// ModelProvider answers schema questions about FHIR types: whether a
// name denotes a known type, what type an element of a given type has,
// and how a choice-type ("value[x]") property expands into concrete
// suffixed names.
type ModelProvider interface {
	// GetType resolves a bare or namespace-qualified type name to its
	// TypeInfo. ok is false when the name is unknown to this provider.
	GetType(ctx context.Context, name string) (info fhirtype.TypeInfo, ok bool, err error)

	// GetElementType resolves the declared type of path within parent,
	// e.g. GetElementType(ctx, "Patient", "name") -> HumanName.
	GetElementType(ctx context.Context, parent fhirtype.TypeInfo, path string) (info fhirtype.TypeInfo, ok bool, err error)

	// ChoiceSuffixes lists the type-suffixed property names a choice
	// element expands to, e.g. "value" on an Observation expands to
	// ["valueQuantity", "valueString", ...]. Returns nil if base is not
	// a known choice element.
	ChoiceSuffixes(ctx context.Context, parent fhirtype.TypeInfo, base string) ([]string, error)

	// IsAssignable reports whether a value of type from may be treated
	// as type to, per the FHIR type lattice (used by `is`/`as`).
	IsAssignable(ctx context.Context, from, to fhirtype.TypeInfo) (bool, error)
}

// SubsumptionOutcome is the result of a subsumption test between two
// codes in the same code system.
type SubsumptionOutcome int

const (
	SubsumptionUnknown SubsumptionOutcome = iota
	SubsumptionEquivalent
	SubsumptionSubsumes
	SubsumptionSubsumedBy
	SubsumptionNotSubsumed
)

// CodeLookupResult carries the descriptive fields a terminology
// `lookup()` call returns for a single code.
type CodeLookupResult struct {
	System  string
	Code    string
	Display string
	Found   bool
}

// TerminologyProvider is the async gateway to a terminology service,
// consumed by the `memberOf`, `subsumes`, `subsumedBy`, `validateCS`,
// `validateVS`, `lookup`, `translate`, and `expand` functions.
type TerminologyProvider interface {
	ValidateCodeVS(ctx context.Context, valueSetURL, system, code string) (bool, error)
	ValidateCodeCS(ctx context.Context, codeSystemURL, code string) (bool, error)
	LookupCode(ctx context.Context, system, code string) (CodeLookupResult, error)
	Subsumes(ctx context.Context, system, codeA, codeB string) (SubsumptionOutcome, error)
	Translate(ctx context.Context, conceptMapURL, system, code string) ([]CodeLookupResult, error)
	ExpandValueSet(ctx context.Context, valueSetURL string) ([]CodeLookupResult, error)
}

// ValidationProvider is consulted by `conformsTo(profile)`. It returns
// ok=false (not an error) when the provider simply can't evaluate the
// profile, matching the engine's empty-on-unavailable behavior.
type ValidationProvider interface {
	Validate(ctx context.Context, resourceJSON any, profileURL string) (bool, error)
}

// TraceProvider receives the side-effecting output of the `trace()`
// function; it has no return value to consume.
type TraceProvider interface {
	Trace(ctx context.Context, name string, values any)
}
