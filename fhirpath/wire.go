package fhirpath

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/fhirtype"
	"github.com/fhirpath-go/fhirpath/value"
)

// wrapRoot lifts a decoded FHIR resource (map[string]any, as produced
// by encoding/json) into the Resource value navigation starts from,
// tagging it with its resourceType when present.
func wrapRoot(root any) value.Value {
	name := ""
	if m, ok := root.(map[string]any); ok {
		if rt, ok := m["resourceType"].(string); ok {
			name = rt
		}
	}
	return value.NewResource(root, fhirtype.TypeInfo{Namespace: fhirtype.FHIR, Name: name, Singleton: true})
}

// ToJSON renders a single value.Value per the wire-facing contract:
// Integer becomes a JSON number, Decimal a string preserving trailing
// zeros and precision (round-trips through toString()), Quantity an
// object with value/unit/system/code, Date/DateTime/Time an ISO-8601
// string at the value's stated precision, and Resource the underlying
// decoded JSON unchanged.
func ToJSON(v value.Value) (any, error) {
	switch t := v.(type) {
	case value.Empty:
		return nil, nil
	case value.Boolean:
		return bool(t), nil
	case value.Integer:
		return int64(t), nil
	case value.Decimal:
		return t.String(), nil
	case value.String:
		return t.S, nil
	case value.Quantity:
		obj := map[string]any{"value": t.Value.String(), "unit": t.Unit}
		if t.System != "" {
			obj["system"] = t.System
		}
		if t.Code != "" {
			obj["code"] = t.Code
		}
		return obj, nil
	case value.Date:
		return t.String(), nil
	case value.DateTime:
		return t.String(), nil
	case value.Time:
		return t.String(), nil
	case value.Resource:
		return t.Data, nil
	default:
		return nil, fmt.Errorf("fhirpath: no wire representation for %T", v)
	}
}

// CollectionToJSON renders every item of c via ToJSON, in order. Per
// §6.2, a single-element collection is never unwrapped here — callers
// that want a bare scalar for a one-item result unwrap it themselves,
// e.g. via collection.Collection.Single1.
func CollectionToJSON(c collection.Collection) ([]any, error) {
	out := make([]any, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		rendered, err := ToJSON(c.At(i))
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}
