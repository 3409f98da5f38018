package temporal

import "github.com/fhirpath-go/fhirpath/value"

// Difference returns the signed integer count of unit between a and b,
// computed as (b - a) truncated toward zero: positive when b is later
// than a. Years and months use calendar arithmetic; weeks, days and
// the fixed units (hours down to milliseconds) use a plain millisecond
// delta. ok is false for an unrecognized unit.
func Difference(a, b value.DateTime, unit string) (result int, ok bool) {
	if !isCalendarUnit(unit) {
		return 0, false
	}
	switch normalizeUnit(unit) {
	case "year":
		return diffCalendarMonths(a, b) / 12, true
	case "month":
		return diffCalendarMonths(a, b), true
	case "week":
		return diffMillis(a, b) / (7 * 86400000), true
	case "day":
		return diffMillis(a, b) / 86400000, true
	case "hour":
		return diffMillis(a, b) / 3600000, true
	case "minute":
		return diffMillis(a, b) / 60000, true
	case "second":
		return diffMillis(a, b) / 1000, true
	case "millisecond":
		return diffMillis(a, b), true
	default:
		return 0, false
	}
}

func diffCalendarMonths(a, b value.DateTime) int {
	months := (b.Year-a.Year)*12 + (b.Month - a.Month)
	// Truncate toward zero for a trailing partial month, judged by
	// day-of-month only; time-of-day is not considered.
	if months > 0 && b.Day < a.Day {
		months--
	} else if months < 0 && b.Day > a.Day {
		months++
	}
	return months
}

func diffMillis(a, b value.DateTime) int {
	aJD := toJulianDay(a.Year, a.Month, a.Day)
	bJD := toJulianDay(b.Year, b.Month, b.Day)
	aMillis := ((a.Hour*60+a.Minute)*60+a.Second)*1000 + a.Millisec
	bMillis := ((b.Hour*60+b.Minute)*60+b.Second)*1000 + b.Millisec
	return (bJD-aJD)*86400000 + (bMillis - aMillis)
}
