// Package quantity implements UCUM-aware arithmetic and comparison
// over value.Quantity: unit conversion to a common base before adding,
// subtracting, or comparing two quantities, and the calendar-duration
// special case FHIRPath treats separately from UCUM conversion.
package quantity

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/value"
	"github.com/shopspring/decimal"
)

// factor describes a UCUM unit's conversion to its dimension's base
// unit: base = value * scale. Affine units such as temperatures, which
// would also need an offset, are not represented.
type factor struct {
	dimension string
	scale     decimal.Decimal
}

// ucumFactors covers the UCUM units that appear in FHIR Quantity data
// and FHIRPath test suites: mass, length, and time units convertible
// to a common base within each dimension. Units outside this table are
// compared only when their codes are textually identical.
var ucumFactors = map[string]factor{
	"kg": {"mass", decimal.NewFromInt(1)},
	"g":  {"mass", decimal.NewFromFloat(0.001)},
	"mg": {"mass", decimal.NewFromFloat(0.000001)},
	"ug": {"mass", decimal.NewFromFloat(0.000000001)},

	"m":  {"length", decimal.NewFromInt(1)},
	"cm": {"length", decimal.NewFromFloat(0.01)},
	"mm": {"length", decimal.NewFromFloat(0.001)},
	"km": {"length", decimal.NewFromInt(1000)},

	"s":   {"time", decimal.NewFromInt(1)},
	"min": {"time", decimal.NewFromInt(60)},
	"h":   {"time", decimal.NewFromInt(3600)},
	"d":   {"time", decimal.NewFromInt(86400)},
	"ms":  {"time", decimal.NewFromFloat(0.001)},
}

// calendarToSeconds gives the nominal (non-leap) second count used
// only to compare calendar-unit quantities against each other; true
// calendar arithmetic on Date/DateTime values lives in package
// temporal, not here.
var calendarToSeconds = map[string]decimal.Decimal{
	"second":       decimal.NewFromInt(1),
	"seconds":      decimal.NewFromInt(1),
	"millisecond":  decimal.NewFromFloat(0.001),
	"milliseconds": decimal.NewFromFloat(0.001),
	"minute":       decimal.NewFromInt(60),
	"minutes":      decimal.NewFromInt(60),
	"hour":         decimal.NewFromInt(3600),
	"hours":        decimal.NewFromInt(3600),
	"day":          decimal.NewFromInt(86400),
	"days":         decimal.NewFromInt(86400),
	"week":         decimal.NewFromInt(604800),
	"weeks":        decimal.NewFromInt(604800),
	"month":        decimal.NewFromInt(2629800), // 365.25/12 days
	"months":       decimal.NewFromInt(2629800),
	"year":         decimal.NewFromInt(31557600), // 365.25 days
	"years":        decimal.NewFromInt(31557600),
}

// comparableBase returns q's magnitude expressed in its dimension's
// base unit, and a dimension key, or ok=false if q's unit is not in
// either conversion table (the caller then falls back to exact code
// comparison).
func comparableBase(q value.Quantity) (base decimal.Decimal, dimension string, ok bool) {
	if q.Calendar {
		if s, found := calendarToSeconds[q.Code]; found {
			return q.Value.Mul(s), "calendar-seconds", true
		}
		return decimal.Decimal{}, "", false
	}
	if f, found := ucumFactors[q.Code]; found {
		return q.Value.Mul(f.scale), f.dimension, true
	}
	return decimal.Decimal{}, "", false
}

// Comparable reports whether two quantities can be compared/added at
// all — same dimension, whether via UCUM conversion or matching
// calendar-unit magnitude class.
func Comparable(a, b value.Quantity) bool {
	ab, ad, aok := comparableBase(a)
	bb, bd, bok := comparableBase(b)
	if aok && bok {
		_ = ab
		_ = bb
		return ad == bd
	}
	return a.Code == b.Code
}

// Compare returns -1, 0, or 1 for a versus b. The second return value
// is false when the quantities are not comparable (differing
// dimension), matching the "convert before comparing" requirement for
// quantity equality —
// callers must treat !ok as an empty result, not an error.
func Compare(a, b value.Quantity) (cmp int, ok bool) {
	ab, ad, aok := comparableBase(a)
	bb, bd, bok := comparableBase(b)
	if aok && bok {
		if ad != bd {
			return 0, false
		}
		return ab.Cmp(bb), true
	}
	if a.Code != b.Code {
		return 0, false
	}
	return a.Value.Cmp(b.Value), true
}

// Add adds two comparable quantities, returning the result in a's
// unit. Returns an error if the quantities are not comparable — the
// operator layer turns that into an empty result.
func Add(a, b value.Quantity) (value.Quantity, error) {
	return combine(a, b, func(x, y decimal.Decimal) decimal.Decimal { return x.Add(y) })
}

// Subtract subtracts b from a, returning the result in a's unit.
func Subtract(a, b value.Quantity) (value.Quantity, error) {
	return combine(a, b, func(x, y decimal.Decimal) decimal.Decimal { return x.Sub(y) })
}

func combine(a, b value.Quantity, op func(x, y decimal.Decimal) decimal.Decimal) (value.Quantity, error) {
	if !Comparable(a, b) {
		return value.Quantity{}, fmt.Errorf("quantity: incompatible units %q and %q", a.Code, b.Code)
	}
	bConverted, err := convertTo(b, a)
	if err != nil {
		return value.Quantity{}, err
	}
	result := a
	result.Value = op(a.Value, bConverted.Value)
	return result, nil
}

// convertTo converts q into target's unit, assuming Comparable(q, target).
func convertTo(q, target value.Quantity) (value.Quantity, error) {
	if q.Code == target.Code {
		return q, nil
	}
	qBase, _, qok := comparableBase(q)
	tBase, _, tok := comparableBase(target)
	if !qok || !tok || tBase.IsZero() {
		return value.Quantity{}, fmt.Errorf("quantity: cannot convert %q to %q", q.Code, target.Code)
	}
	// qBase and tBase are both expressed per unit-magnitude 1 of their
	// respective units scaled to the dimension base; dividing by the
	// target's own per-unit scale yields the magnitude in target units.
	_, targetFactorScale, ok := dimensionScale(target)
	if !ok {
		return value.Quantity{}, fmt.Errorf("quantity: cannot convert %q to %q", q.Code, target.Code)
	}
	converted := qBase.Div(targetFactorScale)
	out := target
	out.Value = converted
	return out, nil
}

func dimensionScale(q value.Quantity) (dimension string, scale decimal.Decimal, ok bool) {
	if q.Calendar {
		s, found := calendarToSeconds[q.Code]
		return "calendar-seconds", s, found
	}
	f, found := ucumFactors[q.Code]
	return f.dimension, f.scale, found
}
