package collection

import (
	"strings"

	"github.com/fhirpath-go/fhirpath/value"
)

// Equal implements FHIRPath collection equality: same length, and
// pairwise-equal items in the same order.
func Equal(a, b Collection) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	for i := range a.items {
		if !value.Equal(a.items[i], b.items[i]) {
			return false
		}
	}
	return true
}

// Equivalent implements FHIRPath's `~` operator at the collection
// level: same length, order-independent, case-insensitive string
// comparison, but otherwise the same per-item rule as Equal.
func Equivalent(a, b Collection) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	used := make([]bool, len(b.items))
	for _, av := range a.items {
		matched := false
		for j, bv := range b.items {
			if used[j] {
				continue
			}
			if valueEquivalent(av, bv) {
				used[j] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func valueEquivalent(a, b value.Value) bool {
	as, aok := a.(value.String)
	bs, bok := b.(value.String)
	if aok && bok {
		return strings.EqualFold(as.S, bs.S)
	}
	return value.Equal(a, b)
}
