package temporal

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/fhirpath-go/fhirpath/value"
)

var (
	dateRe = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2}))?)?$`)
	timeRe = regexp.MustCompile(`^(\d{2})(?::(\d{2})(?::(\d{2})(?:\.(\d+))?)?)?$`)
	// dateTimeRe splits date, time-of-day, and zone offset; each optional
	// per FHIRPath's partial-precision DateTime grammar.
	dateTimeRe = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2})(?:T(\d{2})(?::(\d{2})(?::(\d{2})(?:\.(\d+))?)?)?)?)?)?(Z|[+-]\d{2}:\d{2})?$`)
)

// ParseDate parses a FHIRPath Date literal body (without the leading
// `@`), e.g. "2020", "2020-06", "2020-06-15".
func ParseDate(s string) (value.Date, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return value.Date{}, fmt.Errorf("temporal: %q is not a valid Date literal", s)
	}
	year, _ := strconv.Atoi(m[1])
	d := value.Date{Year: year, Month: 1, Day: 1, Prec: value.PrecisionYear}
	if m[2] != "" {
		d.Month, _ = strconv.Atoi(m[2])
		d.Prec = value.PrecisionMonth
	}
	if m[3] != "" {
		d.Day, _ = strconv.Atoi(m[3])
		d.Prec = value.PrecisionDay
	}
	return d, nil
}

// ParseTime parses a FHIRPath Time literal body (without the leading
// `@T`), e.g. "13", "13:45", "13:45:30.5".
func ParseTime(s string) (value.Time, error) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return value.Time{}, fmt.Errorf("temporal: %q is not a valid Time literal", s)
	}
	t := value.Time{Prec: value.PrecisionHour}
	t.Hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		t.Minute, _ = strconv.Atoi(m[2])
		t.Prec = value.PrecisionMinute
	}
	if m[3] != "" {
		t.Second, _ = strconv.Atoi(m[3])
		t.Prec = value.PrecisionSecond
	}
	if m[4] != "" {
		t.Millisec = millisFromFraction(m[4])
		t.Prec = value.PrecisionMillisecond
	}
	return t, nil
}

// ParseDateTime parses a FHIRPath DateTime literal body (without the
// leading `@`), e.g. "2020", "2020-06-15T13:45:30.5+01:00".
func ParseDateTime(s string) (value.DateTime, error) {
	m := dateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return value.DateTime{}, fmt.Errorf("temporal: %q is not a valid DateTime literal", s)
	}
	dt := value.DateTime{Month: 1, Day: 1, Prec: value.PrecisionYear}
	dt.Year, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		dt.Month, _ = strconv.Atoi(m[2])
		dt.Prec = value.PrecisionMonth
	}
	if m[3] != "" {
		dt.Day, _ = strconv.Atoi(m[3])
		dt.Prec = value.PrecisionDay
	}
	if m[4] != "" {
		dt.Hour, _ = strconv.Atoi(m[4])
		dt.Prec = value.PrecisionHour
	}
	if m[5] != "" {
		dt.Minute, _ = strconv.Atoi(m[5])
		dt.Prec = value.PrecisionMinute
	}
	if m[6] != "" {
		dt.Second, _ = strconv.Atoi(m[6])
		dt.Prec = value.PrecisionSecond
	}
	if m[7] != "" {
		dt.Millisec = millisFromFraction(m[7])
		dt.Prec = value.PrecisionMillisecond
	}
	if m[8] != "" {
		dt.Offset.HasZone = true
		if m[8] != "Z" {
			sign := 1
			if m[8][0] == '-' {
				sign = -1
			}
			hh, _ := strconv.Atoi(m[8][1:3])
			mm, _ := strconv.Atoi(m[8][4:6])
			dt.Offset.Minutes = sign * (hh*60 + mm)
		}
	}
	return dt, nil
}

func millisFromFraction(frac string) int {
	for len(frac) < 3 {
		frac += "0"
	}
	ms, _ := strconv.Atoi(frac[:3])
	return ms
}
