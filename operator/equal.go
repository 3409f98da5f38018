package operator

import (
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/quantity"
	"github.com/fhirpath-go/fhirpath/temporal"
	"github.com/fhirpath-go/fhirpath/value"
)

// ValueEqual implements `=`'s per-item comparison with the three-valued
// semantics Compare already gives the ordering operators: ok is false
// when the two values are not meaningfully comparable (cross-precision
// temporal values, quantities with no common UCUM/calendar dimension),
// and callers must render that as empty rather than false. Every other
// value kind still compares with value.Equal, which is exact for them.
func ValueEqual(a, b value.Value) (equal bool, ok bool) {
	switch av := a.(type) {
	case value.Date:
		if bv, isDate := b.(value.Date); isDate {
			cmp, ok := temporal.CompareDates(av, bv)
			return cmp == 0, ok
		}
		return false, true
	case value.DateTime:
		if bv, isDateTime := b.(value.DateTime); isDateTime {
			cmp, ok := temporal.CompareDateTimes(av, bv)
			return cmp == 0, ok
		}
		return false, true
	case value.Time:
		if bv, isTime := b.(value.Time); isTime {
			cmp, ok := temporal.CompareTimes(av, bv)
			return cmp == 0, ok
		}
		return false, true
	case value.Quantity:
		if bv, isQuantity := b.(value.Quantity); isQuantity {
			cmp, ok := quantity.Compare(av, bv)
			return cmp == 0, ok
		}
		return false, true
	default:
		return value.Equal(a, b), true
	}
}

// CollectionEqual implements FHIRPath collection equality: same
// length, pairwise-equal items in the same order, with any
// incomparable pair making the whole result empty rather than false —
// a mismatched length is still determinately unequal, since it needs
// no per-item comparison to decide.
func CollectionEqual(a, b collection.Collection) (equal bool, ok bool) {
	if a.Len() != b.Len() {
		return false, true
	}
	for i := 0; i < a.Len(); i++ {
		eq, ok := ValueEqual(a.At(i), b.At(i))
		if !ok {
			return false, false
		}
		if !eq {
			return false, true
		}
	}
	return true, true
}
