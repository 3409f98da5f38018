package function

import (
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/provider"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "memberOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 1, MaxArity: 1, Fn: memberOfFn})
	register(Metadata{Name: "subsumes", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 1, MaxArity: 1, Fn: subsumesFn})
	register(Metadata{Name: "subsumedBy", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 1, MaxArity: 1, Fn: subsumedByFn})
	register(Metadata{Name: "validateVS", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 2, MaxArity: 2, Fn: validateVSFn})
	register(Metadata{Name: "validateCS", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 2, MaxArity: 2, Fn: validateCSFn})
	register(Metadata{Name: "lookup", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 2, MaxArity: 2, Fn: lookupFn})
	register(Metadata{Name: "translate", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 3, MaxArity: 3, Fn: translateFn})
	register(Metadata{Name: "expand", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: false, Category: CategoryTerminology, RequiresTerminology: true, MinArity: 1, MaxArity: 1, Fn: expandFn})
}

// codingOf extracts a system/code pair from a focus Coding- or
// code-shaped value; terminology operations treat both a plain
// System.String code and a FHIR Coding resource the same way.
func codingOf(v value.Value) (system, code string, ok bool) {
	switch n := v.(type) {
	case value.String:
		return "", n.S, true
	case value.Resource:
		m, isMap := n.Data.(map[string]any)
		if !isMap {
			return "", "", false
		}
		sys, _ := m["system"].(string)
		c, _ := m["code"].(string)
		if c == "" {
			return "", "", false
		}
		return sys, c, true
	default:
		return "", "", false
	}
}

func memberOfFn(call Call) (collection.Collection, error) {
	term := call.Ctx.Provider.Terminology
	if term == nil {
		return collection.Empty(), nil
	}
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	system, code, ok := codingOf(v)
	if !ok {
		return boolResult(false), nil
	}
	vs, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	valid, err := term.ValidateCodeVS(call.Std, vs, system, code)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(valid), nil
}

func subsumesFn(call Call) (collection.Collection, error) { return subsumption(call, false) }
func subsumedByFn(call Call) (collection.Collection, error) { return subsumption(call, true) }

func subsumption(call Call, flip bool) (collection.Collection, error) {
	term := call.Ctx.Provider.Terminology
	if term == nil {
		return collection.Empty(), nil
	}
	a, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	b, ok := call.ArgValues[0].Single1()
	if !ok {
		return collection.Empty(), nil
	}
	systemA, codeA, okA := codingOf(a)
	_, codeB, okB := codingOf(b)
	if !okA || !okB {
		return boolResult(false), nil
	}
	outcome, err := term.Subsumes(call.Std, systemA, codeA, codeB)
	if err != nil {
		return collection.Collection{}, err
	}
	want := provider.SubsumptionSubsumes
	if flip {
		want = provider.SubsumptionSubsumedBy
	}
	return boolResult(outcome == want || outcome == provider.SubsumptionEquivalent), nil
}

func validateVSFn(call Call) (collection.Collection, error) {
	term := call.Ctx.Provider.Terminology
	if term == nil {
		return collection.Empty(), nil
	}
	vs, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	code, err := singletonString(call.ArgValues[1])
	if err != nil {
		return collection.Collection{}, err
	}
	system, _ := singletonString(call.ArgValues[0])
	valid, err := term.ValidateCodeVS(call.Std, vs, system, code)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(valid), nil
}

func validateCSFn(call Call) (collection.Collection, error) {
	term := call.Ctx.Provider.Terminology
	if term == nil {
		return collection.Empty(), nil
	}
	cs, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	code, err := singletonString(call.ArgValues[1])
	if err != nil {
		return collection.Collection{}, err
	}
	valid, err := term.ValidateCodeCS(call.Std, cs, code)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(valid), nil
}

func lookupFn(call Call) (collection.Collection, error) {
	term := call.Ctx.Provider.Terminology
	if term == nil {
		return collection.Empty(), nil
	}
	system, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	code, err := singletonString(call.ArgValues[1])
	if err != nil {
		return collection.Collection{}, err
	}
	result, err := term.LookupCode(call.Std, system, code)
	if err != nil {
		return collection.Collection{}, err
	}
	if !result.Found {
		return collection.Empty(), nil
	}
	return stringResult(result.Display), nil
}

func translateFn(call Call) (collection.Collection, error) {
	term := call.Ctx.Provider.Terminology
	if term == nil {
		return collection.Empty(), nil
	}
	conceptMap, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	system, err := singletonString(call.ArgValues[1])
	if err != nil {
		return collection.Collection{}, err
	}
	code, err := singletonString(call.ArgValues[2])
	if err != nil {
		return collection.Collection{}, err
	}
	results, err := term.Translate(call.Std, conceptMap, system, code)
	if err != nil {
		return collection.Collection{}, err
	}
	out := make([]value.Value, 0, len(results))
	for _, r := range results {
		out = append(out, value.NewString(r.Code))
	}
	return collection.FromSlice(out), nil
}

func expandFn(call Call) (collection.Collection, error) {
	term := call.Ctx.Provider.Terminology
	if term == nil {
		return collection.Empty(), nil
	}
	vs, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	results, err := term.ExpandValueSet(call.Std, vs)
	if err != nil {
		return collection.Collection{}, err
	}
	out := make([]value.Value, 0, len(results))
	for _, r := range results {
		out = append(out, value.NewString(r.Code))
	}
	return collection.FromSlice(out), nil
}
