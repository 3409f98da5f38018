package function

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "length", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 0, MaxArity: 0, Fn: lengthFn})
	register(Metadata{Name: "substring", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 2, Fn: substringFn})
	register(Metadata{Name: "upper", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 0, MaxArity: 0, Fn: upperFn})
	register(Metadata{Name: "lower", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 0, MaxArity: 0, Fn: lowerFn})
	register(Metadata{Name: "startsWith", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: startsWithFn})
	register(Metadata{Name: "endsWith", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: endsWithFn})
	register(Metadata{Name: "contains", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: stringContainsFn})
	register(Metadata{Name: "indexOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: indexOfFn})
	register(Metadata{Name: "replace", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 2, MaxArity: 2, Fn: replaceFn})
	register(Metadata{Name: "matches", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: matchesFn})
	register(Metadata{Name: "matchesFull", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: matchesFullFn})
	register(Metadata{Name: "replaceMatches", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 2, MaxArity: 2, Fn: replaceMatchesFn})
	register(Metadata{Name: "toChars", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 0, MaxArity: 0, Fn: toCharsFn})
	register(Metadata{Name: "trim", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 0, MaxArity: 0, Fn: trimFn})
	register(Metadata{Name: "split", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: splitFn})
	register(Metadata{Name: "join", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: true, Category: CategoryStringManipulation, MinArity: 0, MaxArity: 1, Fn: joinFn})
	register(Metadata{Name: "encode", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: encodeFn})
	register(Metadata{Name: "decode", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryStringManipulation, MinArity: 1, MaxArity: 1, Fn: decodeFn})
}

func lengthFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	return intResult(int64(len([]rune(s)))), nil
}

func substringFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	runes := []rune(s)
	start, _, err := singletonInt(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	if start < 0 || int(start) >= len(runes) {
		return collection.Empty(), nil
	}
	end := int64(len(runes))
	if len(call.ArgValues) == 2 {
		length, _, err := singletonInt(call.ArgValues[1])
		if err != nil {
			return collection.Collection{}, err
		}
		if start+length < end {
			end = start + length
		}
	}
	return stringResult(string(runes[start:end])), nil
}

func upperFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	return stringResult(strings.ToUpper(s)), nil
}

func lowerFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	return stringResult(strings.ToLower(s)), nil
}

func startsWithFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	arg, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(strings.HasPrefix(s, arg)), nil
}

func endsWithFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	arg, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(strings.HasSuffix(s, arg)), nil
}

func stringContainsFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	arg, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(strings.Contains(s, arg)), nil
}

func indexOfFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	arg, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	return intResult(int64(strings.Index(s, arg))), nil
}

func replaceFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	pattern, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	repl, err := singletonString(call.ArgValues[1])
	if err != nil {
		return collection.Collection{}, err
	}
	if pattern == "" {
		return stringResult(repl + strings.Join(strings.Split(s, ""), repl) + repl), nil
	}
	return stringResult(strings.ReplaceAll(s, pattern, repl)), nil
}

// matchesFn tests s against a regular expression using dlclark/regexp2
// for .NET/ECMAScript-compatible regex semantics, matching anywhere in
// the string.
func matchesFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	pattern, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return collection.Collection{}, fmt.Errorf("function: matches(): invalid regular expression: %w", err)
	}
	m, err := re.MatchString(s)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(m), nil
}

// matchesFullFn anchors the pattern to the entire string.
func matchesFullFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	pattern, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	re, err := regexp2.Compile("^(?:"+pattern+")$", regexp2.None)
	if err != nil {
		return collection.Collection{}, fmt.Errorf("function: matchesFull(): invalid regular expression: %w", err)
	}
	m, err := re.MatchString(s)
	if err != nil {
		return collection.Collection{}, err
	}
	return boolResult(m), nil
}

func replaceMatchesFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	pattern, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	repl, err := singletonString(call.ArgValues[1])
	if err != nil {
		return collection.Collection{}, err
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return collection.Collection{}, fmt.Errorf("function: replaceMatches(): invalid regular expression: %w", err)
	}
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return collection.Collection{}, err
	}
	return stringResult(out), nil
}

func toCharsFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	runes := []rune(s)
	out := make([]value.Value, len(runes))
	for i, r := range runes {
		out[i] = value.NewString(string(r))
	}
	return collection.FromSlice(out), nil
}

func trimFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	return stringResult(strings.TrimSpace(s)), nil
}

func splitFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	sep, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	parts := strings.Split(s, sep)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.NewString(p)
	}
	return collection.FromSlice(out), nil
}

func joinFn(call Call) (collection.Collection, error) {
	sep := ""
	if len(call.ArgValues) == 1 {
		var err error
		sep, err = singletonString(call.ArgValues[0])
		if err != nil {
			return collection.Collection{}, err
		}
	}
	parts := make([]string, 0, focus(call).Len())
	for _, v := range focus(call).Slice() {
		s, ok := v.(value.String)
		if !ok {
			return collection.Collection{}, fmt.Errorf("function: join(): expected String items, got %T", v)
		}
		parts = append(parts, s.S)
	}
	return stringResult(strings.Join(parts, sep)), nil
}

// encodeFn/decodeFn support the {base64,urlbase64,hex,url,html} schemes.
func encodeFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	scheme, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	switch scheme {
	case "base64":
		return stringResult(base64.StdEncoding.EncodeToString([]byte(s))), nil
	case "urlbase64":
		return stringResult(base64.URLEncoding.EncodeToString([]byte(s))), nil
	case "hex":
		return stringResult(hex.EncodeToString([]byte(s))), nil
	case "url":
		return stringResult(url.QueryEscape(s)), nil
	case "html":
		return stringResult(html.EscapeString(s)), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: encode(): unsupported scheme %q", scheme)
	}
}

func decodeFn(call Call) (collection.Collection, error) {
	s, err := singletonString(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	scheme, err := singletonString(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	switch scheme {
	case "base64":
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return collection.Collection{}, err
		}
		return stringResult(string(b)), nil
	case "urlbase64":
		b, err := base64.URLEncoding.DecodeString(s)
		if err != nil {
			return collection.Collection{}, err
		}
		return stringResult(string(b)), nil
	case "hex":
		b, err := hex.DecodeString(s)
		if err != nil {
			return collection.Collection{}, err
		}
		return stringResult(string(b)), nil
	case "url":
		out, err := url.QueryUnescape(s)
		if err != nil {
			return collection.Collection{}, err
		}
		return stringResult(out), nil
	case "html":
		return stringResult(html.UnescapeString(s)), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: decode(): unsupported scheme %q", scheme)
	}
}
