package function

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/fhirtype"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "children", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryTreeNavigation, MinArity: 0, MaxArity: 0, Fn: childrenFn})
	register(Metadata{Name: "descendants", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryTreeNavigation, MinArity: 0, MaxArity: 0, Fn: descendantsFn})
	register(Metadata{Name: "resolve", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTreeNavigation, RequiresModel: true, MinArity: 0, MaxArity: 0, Fn: resolveFn})
	register(Metadata{Name: "hasValue", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTreeNavigation, MinArity: 0, MaxArity: 0, Fn: hasValueFn})
	register(Metadata{Name: "extension", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryTreeNavigation, MinArity: 1, MaxArity: 1, Fn: extensionFn})
}

// jsonChildren walks one level of a JSON-shaped resource, wrapping
// each property value as a Value via value.FromJSONProperty — arrays
// flatten into one item per element, objects become nested Resources.
func jsonChildren(data any) []value.Value {
	var out []value.Value
	switch d := data.(type) {
	case map[string]any:
		for k, v := range d {
			if len(k) > 0 && k[0] == '_' {
				continue // FHIR's sibling "_field" extension-carrier properties
			}
			out = append(out, value.FromJSONProperty(v)...)
		}
	case []any:
		for _, v := range d {
			out = append(out, value.FromJSONProperty(v)...)
		}
	}
	return out
}

func childrenFn(call Call) (collection.Collection, error) {
	var out []value.Value
	for _, v := range focus(call).Slice() {
		res, ok := v.(value.Resource)
		if !ok {
			continue
		}
		out = append(out, jsonChildren(res.Data)...)
	}
	return collection.FromSlice(out), nil
}

// descendantsFn is children() applied transitively — the fixed point
// of repeatedly expanding every Resource item found so far.
func descendantsFn(call Call) (collection.Collection, error) {
	var out []value.Value
	frontier := focus(call).Slice()
	for len(frontier) > 0 {
		var next []value.Value
		for _, v := range frontier {
			res, ok := v.(value.Resource)
			if !ok {
				continue
			}
			kids := jsonChildren(res.Data)
			out = append(out, kids...)
			next = append(next, kids...)
		}
		frontier = next
	}
	return collection.FromSlice(out), nil
}

// resolveFn follows a Reference.reference string to the matching
// entry in the Bundle root, using the shared resolution
// cache so a repeated resolve() of the same reference in one
// evaluation only walks the root once.
func resolveFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	var ref string
	switch n := v.(type) {
	case value.String:
		ref = n.S
	case value.Resource:
		if m, ok := n.Data.(map[string]any); ok {
			if r, ok := m["reference"].(string); ok {
				ref = r
			}
		}
	}
	if ref == "" {
		return collection.Empty(), nil
	}
	result, err := call.Ctx.Cache.GetOrCompute("resolve:"+ref, func() (any, error) {
		return findByReference(call.Ctx.Root, ref), nil
	})
	if err != nil {
		return collection.Collection{}, err
	}
	if result == nil {
		return collection.Empty(), nil
	}
	return collection.Single(value.NewResource(result, fhirtype.TypeInfo{Namespace: fhirtype.FHIR, Singleton: true})), nil
}

// findByReference performs a shallow Bundle.entry scan for a matching
// fullUrl or relative "Type/id" reference; it does not attempt
// absolute-URL resolution against an external server.
func findByReference(root any, ref string) any {
	m, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	entries, ok := m["entry"].([]any)
	if !ok {
		return nil
	}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if fullURL, _ := entry["fullUrl"].(string); fullURL == ref {
			return entry["resource"]
		}
		if resource, ok := entry["resource"].(map[string]any); ok {
			rt, _ := resource["resourceType"].(string)
			id, _ := resource["id"].(string)
			if rt != "" && id != "" && fmt.Sprintf("%s/%s", rt, id) == ref {
				return resource
			}
		}
	}
	return nil
}

func hasValueFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return boolResult(false), nil
	}
	if _, isEmpty := v.(value.Empty); isEmpty {
		return boolResult(false), nil
	}
	if res, ok := v.(value.Resource); ok {
		_, isMap := res.Data.(map[string]any)
		return boolResult(!isMap), nil
	}
	return boolResult(true), nil
}

func extensionFn(call Call) (collection.Collection, error) {
	url, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	var out []value.Value
	for _, v := range focus(call).Slice() {
		res, ok := v.(value.Resource)
		if !ok {
			continue
		}
		m, ok := res.Data.(map[string]any)
		if !ok {
			continue
		}
		exts, ok := m["extension"].([]any)
		if !ok {
			continue
		}
		for _, e := range exts {
			em, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if u, _ := em["url"].(string); u == url {
				out = append(out, value.NewResource(em, fhirtype.TypeInfo{Namespace: fhirtype.FHIR, Name: "Extension", Singleton: true}))
			}
		}
	}
	return collection.FromSlice(out), nil
}
