package function

import (
	"github.com/fhirpath-go/fhirpath/collection"
)

func init() {
	register(Metadata{Name: "trace", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: false, Category: CategoryUtility, MinArity: 1, MaxArity: 2, Fn: traceFn})
	register(Metadata{Name: "iif", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryUtility, MinArity: 2, MaxArity: 3, Fn: iifFn})
	register(Metadata{Name: "defineVariable", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryUtility, MinArity: 1, MaxArity: 2, Fn: defineVariableFn})
}

// traceFn logs the current focus (or, with a second argument, the
// result of projecting it) to the configured TraceProvider and passes
// the original focus through unchanged.
func traceFn(call Call) (collection.Collection, error) {
	f := focus(call)
	nameResult, err := call.Evaluate(call.Std, call.Ctx, call.ArgNodes[0])
	if err != nil {
		return collection.Collection{}, err
	}
	name, err := singletonString(nameResult)
	if err != nil {
		return collection.Collection{}, err
	}
	logged := f
	if len(call.ArgNodes) == 2 {
		projected, err := call.Evaluate(call.Std, call.Ctx, call.ArgNodes[1])
		if err != nil {
			return collection.Collection{}, err
		}
		logged = projected
	}
	if tracer := call.Ctx.Provider.Trace; tracer != nil {
		tracer.Trace(call.Std, name, logged.Slice())
	}
	return f, nil
}

func iifFn(call Call) (collection.Collection, error) {
	condResult, err := call.Evaluate(call.Std, call.Ctx, call.ArgNodes[0])
	if err != nil {
		return collection.Collection{}, err
	}
	cond, err := coerceBool(condResult)
	if err != nil {
		return collection.Collection{}, err
	}
	if condResult.IsEmpty() {
		cond = false
	}
	if cond {
		return call.Evaluate(call.Std, call.Ctx, call.ArgNodes[1])
	}
	if len(call.ArgNodes) == 3 {
		return call.Evaluate(call.Std, call.Ctx, call.ArgNodes[2])
	}
	return collection.Empty(), nil
}

// defineVariableFn binds name to the evaluated value expression (or
// the current focus if omitted) in a child scope, returning the
// current focus unchanged so the definition reads as a pass-through
// step in a pipeline.
func defineVariableFn(call Call) (collection.Collection, error) {
	nameResult, err := call.Evaluate(call.Std, call.Ctx, call.ArgNodes[0])
	if err != nil {
		return collection.Collection{}, err
	}
	name, err := singletonString(nameResult)
	if err != nil {
		return collection.Collection{}, err
	}
	bound := focus(call)
	if len(call.ArgNodes) == 2 {
		bound, err = call.Evaluate(call.Std, call.Ctx, call.ArgNodes[1])
		if err != nil {
			return collection.Collection{}, err
		}
	}
	v, ok := bound.Single1()
	if !ok {
		return focus(call), nil
	}
	call.Ctx.Scope = call.Ctx.Scope.Child(name, v)
	return focus(call), nil
}
