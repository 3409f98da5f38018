package function

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/temporal"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "toInteger", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toIntegerFn})
	register(Metadata{Name: "toDecimal", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toDecimalFn})
	register(Metadata{Name: "toString", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toStringFn})
	register(Metadata{Name: "toBoolean", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toBooleanFn})
	register(Metadata{Name: "toDate", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toDateFn})
	register(Metadata{Name: "toDateTime", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toDateTimeFn})
	register(Metadata{Name: "toTime", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toTimeFn})
	register(Metadata{Name: "toQuantity", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: toQuantityFn})
	register(Metadata{Name: "convertsToInteger", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toIntegerFn)})
	register(Metadata{Name: "convertsToDecimal", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toDecimalFn)})
	register(Metadata{Name: "convertsToString", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toStringFn)})
	register(Metadata{Name: "convertsToBoolean", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toBooleanFn)})
	register(Metadata{Name: "convertsToDate", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toDateFn)})
	register(Metadata{Name: "convertsToDateTime", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toDateTimeFn)})
	register(Metadata{Name: "convertsToTime", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toTimeFn)})
	register(Metadata{Name: "convertsToQuantity", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryConversion, MinArity: 0, MaxArity: 0, Fn: convertsTo(toQuantityFn)})
}

// convertsTo wraps a toX conversion into its convertsToX predicate:
// true if the conversion would succeed and produce a single value,
// false otherwise, never an error.
func convertsTo(convert Invoke) Invoke {
	return func(call Call) (collection.Collection, error) {
		result, err := convert(call)
		if err != nil {
			return boolResult(false), nil
		}
		return boolResult(result.Len() == 1), nil
	}
}

func toIntegerFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.Integer:
		return intResult(int64(n)), nil
	case value.Boolean:
		if n {
			return intResult(1), nil
		}
		return intResult(0), nil
	case value.String:
		i, err := strconv.ParseInt(strings.TrimSpace(n.S), 10, 64)
		if err != nil {
			return collection.Empty(), nil
		}
		return intResult(i), nil
	case value.Decimal:
		if !n.D.Equal(n.D.Truncate(0)) {
			return collection.Empty(), nil
		}
		return intResult(n.D.IntPart()), nil
	default:
		return collection.Empty(), nil
	}
}

func toDecimalFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.Decimal:
		return collection.Single(n), nil
	case value.Integer:
		return decimalResult(decimal.NewFromInt(int64(n))), nil
	case value.Boolean:
		if n {
			return decimalResult(decimal.NewFromInt(1)), nil
		}
		return decimalResult(decimal.NewFromInt(0)), nil
	case value.String:
		d, err := decimal.NewFromString(strings.TrimSpace(n.S))
		if err != nil {
			return collection.Empty(), nil
		}
		return decimalResult(d), nil
	default:
		return collection.Empty(), nil
	}
}

func toStringFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	return stringResult(v.String()), nil
}

func toBooleanFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.Boolean:
		return collection.Single(n), nil
	case value.Integer:
		switch n {
		case 0:
			return boolResult(false), nil
		case 1:
			return boolResult(true), nil
		default:
			return collection.Empty(), nil
		}
	case value.String:
		switch strings.ToLower(strings.TrimSpace(n.S)) {
		case "true", "t", "yes", "y", "1", "1.0":
			return boolResult(true), nil
		case "false", "f", "no", "n", "0", "0.0":
			return boolResult(false), nil
		default:
			return collection.Empty(), nil
		}
	default:
		return collection.Empty(), nil
	}
}

func toDateFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.Date:
		return collection.Single(n), nil
	case value.DateTime:
		return collection.Single(value.Date{Year: n.Year, Month: n.Month, Day: n.Day, Prec: value.Min(n.Prec, value.PrecisionDay)}), nil
	case value.String:
		d, err := temporal.ParseDate(strings.TrimSpace(n.S))
		if err != nil {
			return collection.Empty(), nil
		}
		return collection.Single(d), nil
	default:
		return collection.Empty(), nil
	}
}

func toDateTimeFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.DateTime:
		return collection.Single(n), nil
	case value.Date:
		return collection.Single(value.DateTime{Year: n.Year, Month: n.Month, Day: n.Day, Prec: n.Prec}), nil
	case value.String:
		dt, err := temporal.ParseDateTime(strings.TrimSpace(n.S))
		if err != nil {
			return collection.Empty(), nil
		}
		return collection.Single(dt), nil
	default:
		return collection.Empty(), nil
	}
}

func toTimeFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.Time:
		return collection.Single(n), nil
	case value.String:
		t, err := temporal.ParseTime(strings.TrimSpace(n.S))
		if err != nil {
			return collection.Empty(), nil
		}
		return collection.Single(t), nil
	default:
		return collection.Empty(), nil
	}
}

func toQuantityFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.Quantity:
		return collection.Single(n), nil
	case value.Integer:
		return collection.Single(value.NewQuantity(decimal.NewFromInt(int64(n)), "1")), nil
	case value.Decimal:
		return collection.Single(value.NewQuantity(n.D, "1")), nil
	case value.String:
		parts := strings.SplitN(strings.TrimSpace(n.S), " ", 2)
		d, err := decimal.NewFromString(parts[0])
		if err != nil {
			return collection.Empty(), nil
		}
		unit := "1"
		if len(parts) == 2 {
			unit = strings.Trim(strings.TrimSpace(parts[1]), "'")
		}
		return collection.Single(value.NewQuantity(d, unit)), nil
	default:
		return collection.Empty(), nil
	}
}
