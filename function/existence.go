package function

import (
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "empty", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryExistence, MinArity: 0, MaxArity: 0, Fn: emptyFn})
	register(Metadata{Name: "exists", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryExistence, MinArity: 0, MaxArity: 1, Fn: existsFn})
	register(Metadata{Name: "all", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryExistence, MinArity: 1, MaxArity: 1, Fn: allFn})
	register(Metadata{Name: "allTrue", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryExistence, MinArity: 0, MaxArity: 0, Fn: allTrueFn})
	register(Metadata{Name: "anyTrue", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryExistence, MinArity: 0, MaxArity: 0, Fn: anyTrueFn})
	register(Metadata{Name: "allFalse", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryExistence, MinArity: 0, MaxArity: 0, Fn: allFalseFn})
	register(Metadata{Name: "anyFalse", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryExistence, MinArity: 0, MaxArity: 0, Fn: anyFalseFn})
}

func emptyFn(call Call) (collection.Collection, error) {
	return boolResult(focus(call).IsEmpty()), nil
}

func existsFn(call Call) (collection.Collection, error) {
	if len(call.ArgNodes) == 0 {
		return boolResult(!focus(call).IsEmpty()), nil
	}
	filtered, err := whereFn(call)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(!filtered.IsEmpty()), nil
}

func allFn(call Call) (collection.Collection, error) {
	f := focus(call)
	for i, v := range f.Slice() {
		childCtx := call.Ctx.Child(collection.Single(v), map[string]value.Value{
			"this":  v,
			"index": value.Integer(int64(i)),
		})
		result, err := call.Evaluate(call.Std, childCtx, call.ArgNodes[0])
		if err != nil {
			return collection.Collection{}, err
		}
		ok, err := coerceBool(result)
		if err != nil {
			return collection.Collection{}, err
		}
		if !ok {
			return boolResult(false), nil
		}
	}
	return boolResult(true), nil
}

func allTrueFn(call Call) (collection.Collection, error)  { return booleanAggregate(call, true, true) }
func anyTrueFn(call Call) (collection.Collection, error)  { return booleanAggregate(call, true, false) }
func allFalseFn(call Call) (collection.Collection, error) { return booleanAggregate(call, false, true) }
func anyFalseFn(call Call) (collection.Collection, error) { return booleanAggregate(call, false, false) }

// booleanAggregate implements the four allTrue/anyTrue/allFalse/anyFalse
// functions: want is the boolean value being tested for, all controls
// whether every element must match (true) or just one (false, "any").
func booleanAggregate(call Call, want bool, all bool) (collection.Collection, error) {
	f := focus(call)
	for _, v := range f.Slice() {
		b, ok := v.(value.Boolean)
		matches := ok && bool(b) == want
		if all && !matches {
			return boolResult(false), nil
		}
		if !all && matches {
			return boolResult(true), nil
		}
	}
	return boolResult(all), nil
}
