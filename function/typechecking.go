package function

import (
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "type", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTypeChecking, MinArity: 0, MaxArity: 0, Fn: typeFn})
	register(Metadata{Name: "conformsTo", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTypeChecking, RequiresModel: false, MinArity: 1, MaxArity: 1, Fn: conformsToFn})
}

// typeFn returns a namespace/name pair describing each focus item's
// runtime type; `is`/`as` are handled directly by package evaluator
// since they carry a type operand in the AST rather than an argument
// expression, but `type()` is an ordinary focus-producing function.
func typeFn(call Call) (collection.Collection, error) {
	f := focus(call)
	out := make([]value.Value, 0, f.Len())
	for _, v := range f.Slice() {
		info := v.Type()
		out = append(out, value.NewString(info.Qualified()))
	}
	return collection.FromSlice(out), nil
}

func conformsToFn(call Call) (collection.Collection, error) {
	profile, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	validator := call.Ctx.Provider.Validation
	if validator == nil {
		return collection.Empty(), nil
	}
	res, ok := v.(value.Resource)
	if !ok {
		return boolResult(false), nil
	}
	ok2, err := validator.Validate(call.Std, res.Data, profile)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(ok2), nil
}
