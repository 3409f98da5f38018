package function

import (
	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/operator"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "count", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryAggregate, MinArity: 0, MaxArity: 0, Fn: countFn})
	register(Metadata{Name: "sum", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryAggregate, MinArity: 0, MaxArity: 0, Fn: sumFn})
	register(Metadata{Name: "avg", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryAggregate, MinArity: 0, MaxArity: 0, Fn: avgFn})
	register(Metadata{Name: "min", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryAggregate, MinArity: 0, MaxArity: 0, Fn: minFn})
	register(Metadata{Name: "max", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryAggregate, MinArity: 0, MaxArity: 0, Fn: maxFn})
	register(Metadata{Name: "aggregate", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryAggregate, MinArity: 1, MaxArity: 2, Fn: aggregateFn})
}

func countFn(call Call) (collection.Collection, error) {
	return intResult(int64(focus(call).Len())), nil
}

func sumFn(call Call) (collection.Collection, error) {
	f := focus(call)
	if f.IsEmpty() {
		return intResult(0), nil
	}
	acc := f.At(0)
	for _, v := range f.Slice()[1:] {
		result, err := operator.Evaluate(ast.OpAdd, collection.Single(acc), collection.Single(v))
		if err != nil {
			return collection.Collection{}, err
		}
		acc, _ = result.Single1()
	}
	return collection.Single(acc), nil
}

func avgFn(call Call) (collection.Collection, error) {
	f := focus(call)
	if f.IsEmpty() {
		return collection.Empty(), nil
	}
	total, err := sumFn(call)
	if err != nil {
		return collection.Collection{}, err
	}
	totalV, _ := total.Single1()
	result, err := operator.Evaluate(ast.OpDiv, collection.Single(totalV), intResult(int64(f.Len())))
	if err != nil {
		return collection.Collection{}, err
	}
	return result, nil
}

func minFn(call Call) (collection.Collection, error) { return extremum(call, true) }
func maxFn(call Call) (collection.Collection, error) { return extremum(call, false) }

func extremum(call Call, wantMin bool) (collection.Collection, error) {
	f := focus(call)
	if f.IsEmpty() {
		return collection.Empty(), nil
	}
	best := f.At(0)
	for _, v := range f.Slice()[1:] {
		cmp, ok, err := operator.Compare(best, v)
		if err != nil {
			return collection.Collection{}, err
		}
		if !ok {
			continue
		}
		if (wantMin && cmp > 0) || (!wantMin && cmp < 0) {
			best = v
		}
	}
	return collection.Single(best), nil
}

func aggregateFn(call Call) (collection.Collection, error) {
	var total collection.Collection
	if len(call.ArgNodes) == 2 {
		init, err := call.Evaluate(call.Std, call.Ctx, call.ArgNodes[1])
		if err != nil {
			return collection.Collection{}, err
		}
		total = init
	}
	f := focus(call)
	for i, v := range f.Slice() {
		bindings := map[string]value.Value{
			"this":  v,
			"index": value.Integer(int64(i)),
		}
		if tv, ok := total.Single1(); ok {
			bindings["total"] = tv
		}
		childCtx := call.Ctx.Child(collection.Single(v), bindings)
		result, err := call.Evaluate(call.Std, childCtx, call.ArgNodes[0])
		if err != nil {
			return collection.Collection{}, err
		}
		total = result
	}
	return total, nil
}
