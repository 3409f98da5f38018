package function

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "first", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 0, MaxArity: 0, Fn: firstFn})
	register(Metadata{Name: "last", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 0, MaxArity: 0, Fn: lastFn})
	register(Metadata{Name: "tail", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 0, MaxArity: 0, Fn: tailFn})
	register(Metadata{Name: "skip", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 1, MaxArity: 1, Fn: skipFn})
	register(Metadata{Name: "take", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 1, MaxArity: 1, Fn: takeFn})
	register(Metadata{Name: "single", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 0, MaxArity: 0, Fn: singleFn})
	register(Metadata{Name: "distinct", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 0, MaxArity: 0, Fn: distinctFn})
	register(Metadata{Name: "isDistinct", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategorySubsetting, MinArity: 0, MaxArity: 0, Fn: isDistinctFn})
}

func firstFn(call Call) (collection.Collection, error) {
	f := focus(call)
	if v, ok := f.First(); ok {
		return collection.Single(v), nil
	}
	return collection.Empty(), nil
}

func lastFn(call Call) (collection.Collection, error) {
	f := focus(call)
	if v, ok := f.Last(); ok {
		return collection.Single(v), nil
	}
	return collection.Empty(), nil
}

func tailFn(call Call) (collection.Collection, error) {
	f := focus(call)
	if f.Len() <= 1 {
		return collection.Empty(), nil
	}
	return collection.FromSlice(f.Slice()[1:]), nil
}

func skipFn(call Call) (collection.Collection, error) {
	n, _, err := singletonInt(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	f := focus(call)
	if n < 0 {
		n = 0
	}
	if int(n) >= f.Len() {
		return collection.Empty(), nil
	}
	return collection.FromSlice(f.Slice()[n:]), nil
}

func takeFn(call Call) (collection.Collection, error) {
	n, _, err := singletonInt(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	f := focus(call)
	if n <= 0 {
		return collection.Empty(), nil
	}
	if int(n) > f.Len() {
		n = int64(f.Len())
	}
	return collection.FromSlice(f.Slice()[:n]), nil
}

func singleFn(call Call) (collection.Collection, error) {
	f := focus(call)
	switch f.Len() {
	case 0:
		return collection.Empty(), nil
	case 1:
		return f, nil
	default:
		return collection.Collection{}, fmt.Errorf("function: single() called on a collection with %d items", f.Len())
	}
}

func distinctFn(call Call) (collection.Collection, error) {
	f := focus(call)
	out := make([]value.Value, 0, f.Len())
	for _, v := range f.Slice() {
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

func isDistinctFn(call Call) (collection.Collection, error) {
	f := focus(call)
	d, err := distinctFn(call)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(d.Len() == f.Len()), nil
}
