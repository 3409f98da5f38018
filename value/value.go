// Package value defines the typed value model that flows through
// evaluation: the scalar FHIRPath value kinds, each
// carrying a fhirtype.TypeInfo. Collections of these values live in
// package collection, which this package does not depend on, keeping
// the value <-> collection relationship one-directional.
package value

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/fhirtype"
	"github.com/shopspring/decimal"
)

// Value is the sum type of every scalar FHIRPath value. Empty is its
// own variant rather than a nil Value, so callers never need a nil
// check before calling Type().
type Value interface {
	// Type reports the value's namespace-qualified FHIR type.
	Type() fhirtype.TypeInfo
	// String renders the value the way FHIRPath's toString() would.
	String() string

	value()
}

// Empty is the sentinel for "no value" — semantically equivalent to a
// zero-length collection.
type Empty struct{}

func (Empty) Type() fhirtype.TypeInfo { return fhirtype.Empty() }
func (Empty) String() string          { return "" }
func (Empty) value()                  {}

// Boolean is a System.Boolean value.
type Boolean bool

func (Boolean) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "Boolean") }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Boolean) value() {}

// Integer is a System.Integer value, a signed 64-bit integer (spec
// keeps the source's i64 width rather than FHIRPath's nominal 32-bit
// integer, matching the int64-first numeric helpers in
// pkg/math).
type Integer int64

func (Integer) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "Integer") }
func (i Integer) String() string        { return fmt.Sprintf("%d", int64(i)) }
func (Integer) value()                  {}

// Decimal is a System.Decimal value backed by shopspring/decimal for
// arbitrary precision and exact trailing-zero preservation — spec
// §3.3 explicitly forbids IEEE-754 floats here.
type Decimal struct {
	D decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal { return Decimal{D: d} }

func (Decimal) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "Decimal") }
func (d Decimal) String() string {
	if d.D.Exponent() < 0 {
		return d.D.StringFixed(-d.D.Exponent())
	}
	return d.D.String()
}
func (Decimal) value() {}

// Precision reports the number of digits after the decimal point as
// written, used by the `precision()` function.
func (d Decimal) Precision() int32 {
	return -d.D.Exponent()
}

// String is a System.String value with an optional FHIR primitive
// extension payload (the `_field` sibling carrying id/extension) kept
// as opaque decoded JSON — this package does not interpret it, it only
// carries it through navigation so `extension()` can inspect it later.
type String struct {
	S         string
	Extension any
}

func NewString(s string) String { return String{S: s} }

func (String) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "String") }
func (s String) String() string        { return s.S }
func (String) value()                  {}

// Resource wraps a decoded FHIR resource or element as shared JSON.
// Go maps and slices are already reference types, so assigning Data to
// multiple Resource values during navigation is the zero-copy sharing
// cross-language implementations need an Arc for — no explicit
// refcount wrapper is needed here.
type Resource struct {
	Data any // map[string]any, []any, or a JSON scalar
	Info fhirtype.TypeInfo
}

func NewResource(data any, info fhirtype.TypeInfo) Resource {
	return Resource{Data: data, Info: info}
}

func (r Resource) Type() fhirtype.TypeInfo { return r.Info }
func (r Resource) String() string          { return fmt.Sprintf("%v", r.Data) }
func (Resource) value()                    {}
