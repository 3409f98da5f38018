// Package temporal implements calendar-aware comparison and arithmetic
// over value.Date, value.DateTime, and value.Time: precision-gated
// comparison (two temporals compare only down to the lesser of their
// stated precisions, yielding empty rather than false on a genuine
// mismatch) and the signed difference(other, unit) function.
package temporal

import "github.com/fhirpath-go/fhirpath/value"

// fields is a normalized view shared by Date, DateTime, and Time so
// comparison logic is written once.
type fields struct {
	year, month, day               int
	hour, minute, second, millisec int
	offsetMinutes                  int
	hasDate, hasTime, hasZone      bool
	prec                           value.Precision
}

func dateFields(d value.Date) fields {
	return fields{year: d.Year, month: d.Month, day: d.Day, prec: d.Prec, hasDate: true}
}

func dateTimeFields(d value.DateTime) fields {
	return fields{
		year: d.Year, month: d.Month, day: d.Day,
		hour: d.Hour, minute: d.Minute, second: d.Second, millisec: d.Millisec,
		offsetMinutes: d.Offset.Minutes, hasZone: d.Offset.HasZone,
		prec: d.Prec, hasDate: true, hasTime: d.Prec > value.PrecisionDay,
	}
}

func timeFields(t value.Time) fields {
	return fields{hour: t.Hour, minute: t.Minute, second: t.Second, millisec: t.Millisec, prec: t.Prec, hasTime: true}
}

// CompareDates compares two Date values down to their shared
// precision. ok is false when the values are equal down to the shared
// precision but were stated at different precisions, which makes them
// incomparable — callers must render !ok as an empty result.
func CompareDates(a, b value.Date) (cmp int, ok bool) {
	return compareFields(dateFields(a), dateFields(b))
}

// CompareDateTimes compares two DateTime values the same way.
func CompareDateTimes(a, b value.DateTime) (cmp int, ok bool) {
	return compareFields(dateTimeFields(a), dateTimeFields(b))
}

// CompareTimes compares two Time values the same way.
func CompareTimes(a, b value.Time) (cmp int, ok bool) {
	return compareFields(timeFields(a), timeFields(b))
}

func compareFields(a, b fields) (int, bool) {
	prec := value.Min(a.prec, b.prec)

	if c := cmpInt(a.year, b.year); c != 0 {
		return c, true
	}
	if prec == value.PrecisionYear {
		return 0, a.prec == b.prec
	}
	if prec >= value.PrecisionMonth {
		if c := cmpInt(a.month, b.month); c != 0 {
			return c, true
		}
		if prec == value.PrecisionMonth {
			return 0, a.prec == b.prec
		}
	}
	if prec >= value.PrecisionDay {
		if c := cmpInt(a.day, b.day); c != 0 {
			return c, true
		}
		if prec == value.PrecisionDay {
			return 0, a.prec == b.prec
		}
	}
	if prec >= value.PrecisionHour {
		// Differing timezone offsets make sub-day comparison
		// meaningless without normalizing to a common offset; FHIRPath
		// treats floating (no-zone) vs zoned values below day precision
		// as incomparable.
		if a.hasZone != b.hasZone {
			return 0, false
		}
		aMin := a.hour*60 + a.minute - a.offsetMinutes
		bMin := b.hour*60 + b.minute - b.offsetMinutes
		if c := cmpInt(aMin, bMin); c != 0 {
			return c, true
		}
		if prec == value.PrecisionHour || prec == value.PrecisionMinute {
			return 0, a.prec == b.prec
		}
	}
	if prec >= value.PrecisionSecond {
		if c := cmpInt(a.second, b.second); c != 0 {
			return c, true
		}
		if prec == value.PrecisionSecond {
			return 0, a.prec == b.prec
		}
	}
	if c := cmpInt(a.millisec, b.millisec); c != 0 {
		return c, true
	}
	return 0, true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
