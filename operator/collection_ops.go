package operator

import (
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

// Union concatenates two collections without deduplication — FHIRPath
// deliberately does not dedup `|`, unlike the `union()` function.
func Union(a, b collection.Collection) collection.Collection {
	return a.Concat(b)
}

// In reports whether needle (a singleton collection) equals any item
// of haystack, by FHIRPath equality.
func In(needle value.Value, haystack collection.Collection) bool {
	for _, v := range haystack.Slice() {
		if value.Equal(needle, v) {
			return true
		}
	}
	return false
}

// Contains is `in` with operands reversed: haystack contains needle.
func Contains(haystack collection.Collection, needle value.Value) bool {
	return In(needle, haystack)
}
