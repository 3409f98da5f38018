package function

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "abs", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 0, Fn: absFn})
	register(Metadata{Name: "ceiling", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 0, Fn: ceilingFn})
	register(Metadata{Name: "floor", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 0, Fn: floorFn})
	register(Metadata{Name: "round", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 1, Fn: roundFn})
	register(Metadata{Name: "truncate", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 0, Fn: truncateFn})
	register(Metadata{Name: "sqrt", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 0, Fn: sqrtFn})
	register(Metadata{Name: "exp", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 0, Fn: expFn})
	register(Metadata{Name: "ln", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 0, MaxArity: 0, Fn: lnFn})
	register(Metadata{Name: "log", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 1, MaxArity: 1, Fn: logFn})
	register(Metadata{Name: "power", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryMath, MinArity: 1, MaxArity: 1, Fn: powerFn})
}

// toFloat extracts the sole numeric item from the focus as a float64,
// for the transcendental functions where shopspring/decimal has no
// native equivalent.
func toFloat(c collection.Collection) (float64, error) {
	if c.Len() > 1 {
		return 0, fmt.Errorf("function: expected a single numeric value, got %d items", c.Len())
	}
	v, ok := c.Single1()
	if !ok {
		return 0, fmt.Errorf("function: expected a single numeric value, got %d items", c.Len())
	}
	switch n := v.(type) {
	case value.Integer:
		return float64(n), nil
	case value.Decimal:
		f, _ := n.D.Float64()
		return f, nil
	default:
		return 0, fmt.Errorf("function: expected a numeric value, got %T", v)
	}
}

func decimalResult(d decimal.Decimal) collection.Collection {
	return collection.Single(value.NewDecimal(d))
}

func absFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Collection{}, fmt.Errorf("function: abs(): expected a single numeric value")
	}
	switch n := v.(type) {
	case value.Integer:
		if n < 0 {
			n = -n
		}
		return intResult(int64(n)), nil
	case value.Decimal:
		return decimalResult(n.D.Abs()), nil
	case value.Quantity:
		abs := n
		abs.Value = n.Value.Abs()
		return collection.Single(abs), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: abs(): expected a numeric value, got %T", v)
	}
}

func ceilingFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Collection{}, fmt.Errorf("function: ceiling(): expected a single numeric value")
	}
	switch n := v.(type) {
	case value.Integer:
		return intResult(int64(n)), nil
	case value.Decimal:
		return intResult(n.D.Ceil().IntPart()), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: ceiling(): expected a numeric value, got %T", v)
	}
}

func floorFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Collection{}, fmt.Errorf("function: floor(): expected a single numeric value")
	}
	switch n := v.(type) {
	case value.Integer:
		return intResult(int64(n)), nil
	case value.Decimal:
		return intResult(n.D.Floor().IntPart()), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: floor(): expected a numeric value, got %T", v)
	}
}

func roundFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Collection{}, fmt.Errorf("function: round(): expected a single numeric value")
	}
	precision := int32(0)
	if len(call.ArgValues) == 1 {
		p, _, err := singletonInt(call.ArgValues[0])
		if err != nil {
			return collection.Collection{}, err
		}
		precision = int32(p)
	}
	switch n := v.(type) {
	case value.Integer:
		return decimalResult(decimal.NewFromInt(int64(n)).Round(precision)), nil
	case value.Decimal:
		return decimalResult(n.D.Round(precision)), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: round(): expected a numeric value, got %T", v)
	}
}

func truncateFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Collection{}, fmt.Errorf("function: truncate(): expected a single numeric value")
	}
	switch n := v.(type) {
	case value.Integer:
		return intResult(int64(n)), nil
	case value.Decimal:
		return intResult(n.D.Truncate(0).IntPart()), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: truncate(): expected a numeric value, got %T", v)
	}
}

func sqrtFn(call Call) (collection.Collection, error) {
	f, err := toFloat(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	if f < 0 {
		return collection.Empty(), nil
	}
	return decimalResult(decimal.NewFromFloat(math.Sqrt(f))), nil
}

func expFn(call Call) (collection.Collection, error) {
	f, err := toFloat(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	return decimalResult(decimal.NewFromFloat(math.Exp(f))), nil
}

func lnFn(call Call) (collection.Collection, error) {
	f, err := toFloat(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	if f <= 0 {
		return collection.Empty(), nil
	}
	return decimalResult(decimal.NewFromFloat(math.Log(f))), nil
}

func logFn(call Call) (collection.Collection, error) {
	f, err := toFloat(focus(call))
	if err != nil {
		return collection.Collection{}, err
	}
	base, err := toFloat(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	if f <= 0 || base <= 0 || base == 1 {
		return collection.Empty(), nil
	}
	return decimalResult(decimal.NewFromFloat(math.Log(f) / math.Log(base))), nil
}

func powerFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Collection{}, fmt.Errorf("function: power(): expected a single numeric value")
	}
	exp, err := toFloat(call.ArgValues[0])
	if err != nil {
		return collection.Collection{}, err
	}
	switch n := v.(type) {
	case value.Integer:
		result := math.Pow(float64(n), exp)
		if math.IsNaN(result) {
			return collection.Empty(), nil
		}
		if exp == math.Trunc(exp) && exp >= 0 {
			return intResult(int64(result)), nil
		}
		return decimalResult(decimal.NewFromFloat(result)), nil
	case value.Decimal:
		base, _ := n.D.Float64()
		result := math.Pow(base, exp)
		if math.IsNaN(result) {
			return collection.Empty(), nil
		}
		return decimalResult(decimal.NewFromFloat(result)), nil
	default:
		return collection.Collection{}, fmt.Errorf("function: power(): expected a numeric value, got %T", v)
	}
}
