package temporal

import "github.com/fhirpath-go/fhirpath/value"

// daysInMonth returns the number of days in the given (1-based) month
// of year, accounting for leap years.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 30
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// AddToDateTime adds a calendar or fixed-unit quantity to a DateTime,
// normalizing overflowed fields. unit is one of the calendar-duration
// keywords: year(s), month(s), week(s), day(s), hour(s), minute(s),
// second(s), millisecond(s).
func AddToDateTime(d value.DateTime, amount int, unit string) value.DateTime {
	switch normalizeUnit(unit) {
	case "year":
		d.Year += amount
	case "month":
		total := d.Year*12 + (d.Month - 1) + amount
		d.Year = total / 12
		d.Month = total%12 + 1
		if d.Month <= 0 {
			d.Month += 12
			d.Year--
		}
	case "week":
		return AddToDateTime(d, amount*7, "day")
	case "day":
		d = addDays(d, amount)
	case "hour":
		d = addMillis(d, amount*3600000)
	case "minute":
		d = addMillis(d, amount*60000)
	case "second":
		d = addMillis(d, amount*1000)
	case "millisecond":
		d = addMillis(d, amount)
	}
	clampDay(&d)
	return d
}

func clampDay(d *value.DateTime) {
	max := daysInMonth(d.Year, d.Month)
	if d.Day > max {
		d.Day = max
	}
}

func addDays(d value.DateTime, amount int) value.DateTime {
	// Convert to a proleptic day count, add, convert back — avoids
	// re-deriving a full calendar library for a single operation.
	jd := toJulianDay(d.Year, d.Month, d.Day) + amount
	d.Year, d.Month, d.Day = fromJulianDay(jd)
	return d
}

func addMillis(d value.DateTime, amount int) value.DateTime {
	total := ((d.Hour*60+d.Minute)*60+d.Second)*1000 + d.Millisec + amount
	dayDelta := total / 86400000
	rem := total % 86400000
	if rem < 0 {
		rem += 86400000
		dayDelta--
	}
	d.Millisec = rem % 1000
	rem /= 1000
	d.Second = rem % 60
	rem /= 60
	d.Minute = rem % 60
	rem /= 60
	d.Hour = rem
	if dayDelta != 0 {
		d = addDays(d, dayDelta)
	}
	return d
}

// toJulianDay/fromJulianDay implement the standard proleptic Gregorian
// Julian day number conversion (Fliegel & Van Flandern).
func toJulianDay(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

func fromJulianDay(jd int) (year, month, day int) {
	a := jd + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153
	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = 100*b + d - 4800 + m/10
	return
}

func normalizeUnit(unit string) string {
	switch unit {
	case "year", "years":
		return "year"
	case "month", "months":
		return "month"
	case "week", "weeks":
		return "week"
	case "day", "days":
		return "day"
	case "hour", "hours":
		return "hour"
	case "minute", "minutes":
		return "minute"
	case "second", "seconds":
		return "second"
	case "millisecond", "milliseconds":
		return "millisecond"
	default:
		return unit
	}
}

// isCalendarUnit reflects the same keyword set normalizeUnit knows.
func isCalendarUnit(unit string) bool {
	switch normalizeUnit(unit) {
	case "year", "month", "week", "day", "hour", "minute", "second", "millisecond":
		return true
	default:
		return false
	}
}

// IsCalendarUnit reports whether unit is one of the FHIRPath calendar
// duration keywords (singular or plural), as opposed to a UCUM code —
// used by literal evaluation to decide whether a quantity literal's
// unit needs UCUM conversion or calendar-duration handling.
func IsCalendarUnit(unit string) bool { return isCalendarUnit(unit) }
