// Package fhirtype carries the type metadata attached to every
// package value.Value: a namespace (System or FHIR), a type name, and
// singleton/emptiness flags consulted by the `is`/`as`/`ofType`
// operators and by ModelProvider lookups.
package fhirtype

// Namespace distinguishes FHIRPath's two type systems: the built-in
// System primitives and the FHIR model types resolved through a
// ModelProvider.
type Namespace int

const (
	// NoNamespace marks a TypeInfo whose namespace has not been
	// resolved yet (e.g. a bare, unqualified type name before lookup).
	NoNamespace Namespace = iota
	System
	FHIR
)

func (n Namespace) String() string {
	switch n {
	case System:
		return "System"
	case FHIR:
		return "FHIR"
	default:
		return ""
	}
}

// systemPrimitives is the fixed set of names resolvable in the System
// namespace without any ModelProvider involvement.
var systemPrimitives = map[string]bool{
	"Boolean": true, "String": true, "Integer": true, "Decimal": true,
	"Date": true, "DateTime": true, "Time": true, "Quantity": true,
}

// IsSystemPrimitive reports whether name is one of the eight System
// primitive type names.
func IsSystemPrimitive(name string) bool { return systemPrimitives[name] }

// TypeInfo describes the runtime type of a Value.
type TypeInfo struct {
	Namespace Namespace
	Name      string
	Singleton bool
	IsEmpty   bool
}

// Qualified renders the namespace-qualified name, e.g. "System.Boolean"
// or "FHIR.Patient". A TypeInfo with NoNamespace renders just Name.
func (t TypeInfo) Qualified() string {
	if t.Namespace == NoNamespace || t.Name == "" {
		return t.Name
	}
	return t.Namespace.String() + "." + t.Name
}

// Of builds a singleton, non-empty TypeInfo for the given namespace and
// name — the common case for literal and navigation results.
func Of(ns Namespace, name string) TypeInfo {
	return TypeInfo{Namespace: ns, Name: name, Singleton: true}
}

// Empty builds the TypeInfo attached to the Empty sentinel value.
func Empty() TypeInfo {
	return TypeInfo{IsEmpty: true}
}

// SplitQualified splits a dotted type name such as "FHIR.Patient" into
// its namespace and bare name. An unqualified name ("Patient") returns
// NoNamespace and the name unchanged; the evaluator's type check treats
// an unqualified name of one of the eight System primitives as System
// and hands every other name to the ModelProvider.
func SplitQualified(qualified string) (Namespace, string) {
	for i := 0; i < len(qualified); i++ {
		if qualified[i] == '.' {
			prefix := qualified[:i]
			rest := qualified[i+1:]
			switch prefix {
			case "System":
				return System, rest
			case "FHIR":
				return FHIR, rest
			}
		}
	}
	return NoNamespace, qualified
}
