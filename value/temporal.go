package value

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/fhirtype"
)

// Precision records how much of a temporal literal was actually
// specified, from coarsest to finest. Comparisons and arithmetic only
// operate down to the lesser of two operands' precisions.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
	PrecisionMillisecond
)

func (p Precision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	case PrecisionHour:
		return "hour"
	case PrecisionMinute:
		return "minute"
	case PrecisionSecond:
		return "second"
	case PrecisionMillisecond:
		return "millisecond"
	default:
		return "unknown"
	}
}

// Min returns the coarser (numerically smaller) of two precisions —
// the precision down to which a comparison between two temporals with
// differing precision is still meaningful.
func Min(a, b Precision) Precision {
	if a < b {
		return a
	}
	return b
}

// Date is a System.Date value with a year/month/day precision flag.
type Date struct {
	Year, Month, Day int
	Prec             Precision // one of PrecisionYear, PrecisionMonth, PrecisionDay
}

func (Date) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "Date") }

func (d Date) String() string {
	switch d.Prec {
	case PrecisionYear:
		return fmt.Sprintf("@%04d", d.Year)
	case PrecisionMonth:
		return fmt.Sprintf("@%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("@%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}
func (Date) value() {}

// TimeOffset expresses a fixed UTC offset in minutes; FHIRPath temporal
// literals never carry IANA zone names, only +/-HH:MM or Z.
type TimeOffset struct {
	Minutes int
	HasZone bool // false means "no timezone specified" (floating time)
}

// DateTime is a System.DateTime value with up to millisecond precision
// and an optional timezone offset.
type DateTime struct {
	Year, Month, Day               int
	Hour, Minute, Second, Millisec int
	Prec                           Precision
	Offset                         TimeOffset
}

func (DateTime) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "DateTime") }

func (d DateTime) String() string {
	s := fmt.Sprintf("@%04d", d.Year)
	if d.Prec == PrecisionYear {
		return s
	}
	s += fmt.Sprintf("-%02d", d.Month)
	if d.Prec == PrecisionMonth {
		return s
	}
	s += fmt.Sprintf("-%02d", d.Day)
	if d.Prec == PrecisionDay {
		return s
	}
	s += fmt.Sprintf("T%02d:%02d:%02d", d.Hour, d.Minute, d.Second)
	if d.Prec == PrecisionMillisecond {
		s += fmt.Sprintf(".%03d", d.Millisec)
	}
	if d.Offset.HasZone {
		if d.Offset.Minutes == 0 {
			s += "Z"
		} else {
			sign := "+"
			m := d.Offset.Minutes
			if m < 0 {
				sign = "-"
				m = -m
			}
			s += fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
		}
	}
	return s
}
func (DateTime) value() {}

// Time is a System.Time value (no date component).
type Time struct {
	Hour, Minute, Second, Millisec int
	Prec                           Precision
}

func (Time) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "Time") }

func (t Time) String() string {
	s := fmt.Sprintf("@T%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Prec == PrecisionMillisecond {
		s += fmt.Sprintf(".%03d", t.Millisec)
	}
	return s
}
func (Time) value() {}
