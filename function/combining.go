package function

import (
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "combine", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryCombining, MinArity: 1, MaxArity: 1, Fn: combineFn})
	register(Metadata{Name: "union", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryCombining, MinArity: 1, MaxArity: 1, Fn: unionFn})
	register(Metadata{Name: "intersect", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryCombining, MinArity: 1, MaxArity: 1, Fn: intersectFn})
	register(Metadata{Name: "exclude", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryCombining, MinArity: 1, MaxArity: 1, Fn: excludeFn})
	register(Metadata{Name: "coalesce", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryCombining, MinArity: 1, MaxArity: -1, Fn: coalesceFn})
}

// combine concatenates both operands without deduplication, unlike union().
func combineFn(call Call) (collection.Collection, error) {
	return focus(call).Concat(call.ArgValues[0]), nil
}

func unionFn(call Call) (collection.Collection, error) {
	merged := focus(call).Concat(call.ArgValues[0])
	out := make([]value.Value, 0, merged.Len())
	for _, v := range merged.Slice() {
		dup := false
		for _, seen := range out {
			if value.Equal(seen, v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return collection.FromSlice(out), nil
}

func intersectFn(call Call) (collection.Collection, error) {
	other := call.ArgValues[0]
	out := make([]value.Value, 0, focus(call).Len())
	for _, v := range focus(call).Slice() {
		if !containsValue(out, v) && containsValue(other.Slice(), v) {
			out = append(out, v)
		}
	}
	return collection.FromSlice(out), nil
}

func excludeFn(call Call) (collection.Collection, error) {
	other := call.ArgValues[0]
	out := make([]value.Value, 0, focus(call).Len())
	for _, v := range focus(call).Slice() {
		if !containsValue(other.Slice(), v) {
			out = append(out, v)
		}
	}
	return collection.FromSlice(out), nil
}

func containsValue(haystack []value.Value, needle value.Value) bool {
	for _, v := range haystack {
		if value.Equal(v, needle) {
			return true
		}
	}
	return false
}

// coalesceFn evaluates its argument expressions left to right against
// the current focus, returning the first one that is non-empty. Each
// argument is only evaluated if the preceding ones produced nothing.
func coalesceFn(call Call) (collection.Collection, error) {
	for _, arg := range call.ArgNodes {
		result, err := call.Evaluate(call.Std, call.Ctx, arg)
		if err != nil {
			return collection.Collection{}, err
		}
		if !result.IsEmpty() {
			return result, nil
		}
	}
	return collection.Empty(), nil
}
