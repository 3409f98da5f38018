package value

import "github.com/fhirpath-go/fhirpath/fhirtype"

// FromJSONScalar wraps one non-object, non-array JSON value (as
// produced by encoding/json's default decoding into `any`) as the
// matching System primitive Value. Numbers decode as Decimal, not
// Integer, since encoding/json cannot distinguish "5" from "5.0" —
// callers that know a field is FHIR integer-typed should convert
// separately.
func FromJSONScalar(v any) Value {
	switch n := v.(type) {
	case string:
		return NewString(n)
	case bool:
		return Boolean(n)
	case float64:
		return NewDecimal(decimalFromFloat64(n))
	default:
		return Empty{}
	}
}

// FromJSONProperty expands one FHIR JSON property value into the
// collection items it represents: a JSON array becomes one item per
// element (FHIR's repeating-element convention), a JSON object becomes
// a single Resource item, and a scalar becomes a single primitive
// item. Used for ordinary path navigation, where array-valued
// properties must flatten into the result collection rather than
// staying nested.
func FromJSONProperty(v any) []Value {
	switch n := v.(type) {
	case []any:
		out := make([]Value, 0, len(n))
		for _, elem := range n {
			out = append(out, elemToValue(elem))
		}
		return out
	default:
		return []Value{elemToValue(v)}
	}
}

func elemToValue(v any) Value {
	switch v.(type) {
	case map[string]any:
		return NewResource(v, fhirtype.TypeInfo{Namespace: fhirtype.FHIR, Singleton: true})
	default:
		return FromJSONScalar(v)
	}
}
