package operator

import (
	"fmt"
	"strings"

	"github.com/fhirpath-go/fhirpath/quantity"
	"github.com/fhirpath-go/fhirpath/temporal"
	"github.com/fhirpath-go/fhirpath/value"
	"github.com/shopspring/decimal"
)

// Compare orders two singleton values per the inequality operators'
// promotion rules: Integer/Decimal numeric promotion, lexicographic
// strings, precision-gated temporal comparison, and UCUM/calendar-aware
// quantity comparison. ok is false when the comparison is not
// meaningful (cross-precision temporal mismatch, incompatible
// quantity dimensions) — callers must render that as empty, not error.
func Compare(a, b value.Value) (cmp int, ok bool, err error) {
	switch av := a.(type) {
	case value.Integer:
		switch bv := b.(type) {
		case value.Integer:
			return cmpInt64(int64(av), int64(bv)), true, nil
		case value.Decimal:
			return int(decimal.NewFromInt(int64(av)).Cmp(bv.D)), true, nil
		}
	case value.Decimal:
		switch bv := b.(type) {
		case value.Decimal:
			return int(av.D.Cmp(bv.D)), true, nil
		case value.Integer:
			return int(av.D.Cmp(decimal.NewFromInt(int64(bv)))), true, nil
		}
	case value.String:
		if bv, ok := b.(value.String); ok {
			return strings.Compare(av.S, bv.S), true, nil
		}
	case value.Date:
		if bv, ok := b.(value.Date); ok {
			c, ok := temporal.CompareDates(av, bv)
			return c, ok, nil
		}
	case value.DateTime:
		if bv, ok := b.(value.DateTime); ok {
			c, ok := temporal.CompareDateTimes(av, bv)
			return c, ok, nil
		}
	case value.Time:
		if bv, ok := b.(value.Time); ok {
			c, ok := temporal.CompareTimes(av, bv)
			return c, ok, nil
		}
	case value.Quantity:
		if bv, ok := b.(value.Quantity); ok {
			c, ok := quantity.Compare(av, bv)
			return c, ok, nil
		}
	}
	return 0, false, fmt.Errorf("operator: %T and %T are not comparable", a, b)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
