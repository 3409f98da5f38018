package function

import (
	"time"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/temporal"
	"github.com/fhirpath-go/fhirpath/value"
)

func init() {
	register(Metadata{Name: "now", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: false, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: nowFn})
	register(Metadata{Name: "today", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: false, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: todayFn})
	register(Metadata{Name: "timeOfDay", ArgMode: ArgCurrent, Empty: NoPropagation, Deterministic: false, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: timeOfDayFn})
	register(Metadata{Name: "yearOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: fieldOfFn(value.PrecisionYear)})
	register(Metadata{Name: "monthOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: fieldOfFn(value.PrecisionMonth)})
	register(Metadata{Name: "dayOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: fieldOfFn(value.PrecisionDay)})
	register(Metadata{Name: "hourOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: fieldOfFn(value.PrecisionHour)})
	register(Metadata{Name: "minuteOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: fieldOfFn(value.PrecisionMinute)})
	register(Metadata{Name: "secondOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: fieldOfFn(value.PrecisionSecond)})
	register(Metadata{Name: "millisecondOf", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: fieldOfFn(value.PrecisionMillisecond)})
	register(Metadata{Name: "precision", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 0, MaxArity: 0, Fn: precisionFn})
	register(Metadata{Name: "difference", ArgMode: ArgCurrent, Empty: PropagateFocus, Deterministic: true, Category: CategoryTemporal, MinArity: 2, MaxArity: 2, Fn: differenceFn})
}

func nowFn(call Call) (collection.Collection, error) {
	n := time.Now()
	dt := value.DateTime{
		Year: n.Year(), Month: int(n.Month()), Day: n.Day(),
		Hour: n.Hour(), Minute: n.Minute(), Second: n.Second(), Millisec: n.Nanosecond() / 1e6,
		Prec: value.PrecisionMillisecond,
	}
	_, offsetSec := n.Zone()
	dt.Offset = value.TimeOffset{Minutes: offsetSec / 60, HasZone: true}
	return collection.Single(dt), nil
}

func todayFn(call Call) (collection.Collection, error) {
	n := time.Now()
	return collection.Single(value.Date{Year: n.Year(), Month: int(n.Month()), Day: n.Day(), Prec: value.PrecisionDay}), nil
}

func timeOfDayFn(call Call) (collection.Collection, error) {
	n := time.Now()
	return collection.Single(value.Time{
		Hour: n.Hour(), Minute: n.Minute(), Second: n.Second(), Millisec: n.Nanosecond() / 1e6,
		Prec: value.PrecisionMillisecond,
	}), nil
}

// fieldOfFn builds the yearOf/monthOf/.../millisecondOf family: each
// extracts one calendar field, returning empty if the value's
// precision doesn't reach that field.
func fieldOfFn(want value.Precision) Invoke {
	return func(call Call) (collection.Collection, error) {
		v, ok := focus(call).Single1()
		if !ok {
			return collection.Empty(), nil
		}
		var prec value.Precision
		var year, month, day, hour, minute, second, ms int
		switch n := v.(type) {
		case value.Date:
			prec, year, month, day = n.Prec, n.Year, n.Month, n.Day
		case value.DateTime:
			prec, year, month, day = n.Prec, n.Year, n.Month, n.Day
			hour, minute, second, ms = n.Hour, n.Minute, n.Second, n.Millisec
		case value.Time:
			prec, hour, minute, second, ms = n.Prec, n.Hour, n.Minute, n.Second, n.Millisec
		default:
			return collection.Empty(), nil
		}
		if prec < want {
			return collection.Empty(), nil
		}
		switch want {
		case value.PrecisionYear:
			return intResult(int64(year)), nil
		case value.PrecisionMonth:
			return intResult(int64(month)), nil
		case value.PrecisionDay:
			return intResult(int64(day)), nil
		case value.PrecisionHour:
			return intResult(int64(hour)), nil
		case value.PrecisionMinute:
			return intResult(int64(minute)), nil
		case value.PrecisionSecond:
			return intResult(int64(second)), nil
		case value.PrecisionMillisecond:
			return intResult(int64(ms)), nil
		default:
			return collection.Empty(), nil
		}
	}
}

func precisionFn(call Call) (collection.Collection, error) {
	v, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n := v.(type) {
	case value.Date:
		return stringResult(n.Prec.String()), nil
	case value.DateTime:
		return stringResult(n.Prec.String()), nil
	case value.Time:
		return stringResult(n.Prec.String()), nil
	case value.Decimal:
		return intResult(int64(n.Precision())), nil
	default:
		return collection.Empty(), nil
	}
}

// differenceFn implements difference(other, unit): other is the
// comparison DateTime/Date, unit is a calendar-duration keyword
// string naming the granularity to measure in.
func differenceFn(call Call) (collection.Collection, error) {
	a, ok := focus(call).Single1()
	if !ok {
		return collection.Empty(), nil
	}
	b, ok := call.ArgValues[0].Single1()
	if !ok {
		return collection.Empty(), nil
	}
	unit, err := singletonString(call.ArgValues[1])
	if err != nil {
		return collection.Collection{}, err
	}
	aDT, aOK := asDateTime(a)
	bDT, bOK := asDateTime(b)
	if !aOK || !bOK {
		return collection.Empty(), nil
	}
	result, ok := temporal.Difference(aDT, bDT, unit)
	if !ok {
		return collection.Empty(), nil
	}
	return intResult(int64(result)), nil
}

func asDateTime(v value.Value) (value.DateTime, bool) {
	switch n := v.(type) {
	case value.DateTime:
		return n, true
	case value.Date:
		return value.DateTime{Year: n.Year, Month: n.Month, Day: n.Day, Prec: n.Prec}, true
	default:
		return value.DateTime{}, false
	}
}
