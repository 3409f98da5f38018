package function

import (
	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/fhirtype"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "where", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryFilteringProjection, MinArity: 1, MaxArity: 1, Fn: whereFn})
	register(Metadata{Name: "select", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryFilteringProjection, MinArity: 1, MaxArity: 1, Fn: selectFn})
	register(Metadata{Name: "repeat", ArgMode: ArgLambda, Empty: NoPropagation, Deterministic: true, Category: CategoryFilteringProjection, MinArity: 1, MaxArity: 1, Fn: repeatFn})
	register(Metadata{Name: "ofType", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryTypeChecking, MinArity: 1, MaxArity: 1, Fn: ofTypeFn})
}

func whereFn(call Call) (collection.Collection, error) {
	f := focus(call)
	out := make([]value.Value, 0, f.Len())
	for i, v := range f.Slice() {
		childCtx := call.Ctx.Child(collection.Single(v), map[string]value.Value{
			"this":  v,
			"index": value.Integer(int64(i)),
		})
		result, err := call.Evaluate(call.Std, childCtx, call.ArgNodes[0])
		if err != nil {
			return collection.Collection{}, err
		}
		keep, err := coerceBool(result)
		if err != nil {
			return collection.Collection{}, err
		}
		if keep {
			out = append(out, v)
		}
	}
	return collection.FromSlice(out), nil
}

func selectFn(call Call) (collection.Collection, error) {
	f := focus(call)
	var out collection.Collection
	for i, v := range f.Slice() {
		childCtx := call.Ctx.Child(collection.Single(v), map[string]value.Value{
			"this":  v,
			"index": value.Integer(int64(i)),
		})
		result, err := call.Evaluate(call.Std, childCtx, call.ArgNodes[0])
		if err != nil {
			return collection.Collection{}, err
		}
		out = out.Concat(result)
	}
	return out, nil
}

// repeatFn repeatedly applies the projection expression, accumulating
// distinct results, until an iteration adds nothing new — spec's
// repeat() is defined as the fixed point of select().
func repeatFn(call Call) (collection.Collection, error) {
	seen := map[string]bool{}
	var out []value.Value
	frontier := focus(call).Slice()

	addUnique := func(v value.Value) bool {
		key := v.String()
		if seen[key] {
			return false
		}
		seen[key] = true
		out = append(out, v)
		return true
	}
	for _, v := range frontier {
		addUnique(v)
	}

	for len(frontier) > 0 {
		var next []value.Value
		for i, v := range frontier {
			childCtx := call.Ctx.Child(collection.Single(v), map[string]value.Value{
				"this":  v,
				"index": value.Integer(int64(i)),
			})
			result, err := call.Evaluate(call.Std, childCtx, call.ArgNodes[0])
			if err != nil {
				return collection.Collection{}, err
			}
			for _, rv := range result.Slice() {
				if addUnique(rv) {
					next = append(next, rv)
				}
			}
		}
		frontier = next
	}
	return collection.FromSlice(out), nil
}

func ofTypeFn(call Call) (collection.Collection, error) {
	if len(call.ArgNodes) > 0 {
		if name, ok := ast.QualifiedName(call.ArgNodes[0]); ok {
			call.ArgValues = []collection.Collection{collection.Single(value.NewString(name))}
		}
	}
	typeArg, ok := call.ArgValues[0].Single1()
	if !ok {
		return collection.Empty(), nil
	}
	wantType, ok := typeArg.(value.String)
	if !ok {
		return collection.Empty(), nil
	}
	f := focus(call)
	out := make([]value.Value, 0, f.Len())
	for _, v := range f.Slice() {
		if _, name := fhirtype.SplitQualified(wantType.S); v.Type().Name == name {
			out = append(out, v)
		}
	}
	return collection.FromSlice(out), nil
}

func coerceBool(c collection.Collection) (bool, error) {
	v, ok := c.Single1()
	if !ok {
		return false, nil
	}
	b, ok := v.(value.Boolean)
	if !ok {
		return true, nil
	}
	return bool(b), nil
}
