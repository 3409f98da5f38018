package value

import (
	"github.com/fhirpath-go/fhirpath/fhirtype"
	"github.com/shopspring/decimal"
)

// Quantity is a System.Quantity value: a decimal magnitude plus a UCUM
// unit. Calendar indicates the unit is one of the calendar duration
// keywords (year, month, week, day, hour, minute, second, millisecond
// and their plural forms) rather than a UCUM code, which changes how
// arithmetic and comparison treat it.
type Quantity struct {
	Value    decimal.Decimal
	Unit     string // the unit exactly as written, e.g. "mg" or "'mg'"
	Code     string // the UCUM code, defaults to Unit when no UCUM annotation
	System   string // the unit system URI, usually UCUM's
	Calendar bool
}

const UCUMSystem = "http://unitsofmeasure.org"

// NewQuantity builds a UCUM-backed quantity.
func NewQuantity(v decimal.Decimal, unit string) Quantity {
	return Quantity{Value: v, Unit: unit, Code: unit, System: UCUMSystem}
}

// NewCalendarQuantity builds a quantity expressed in a FHIRPath
// calendar-duration keyword (e.g. "year", "days"), which temporal
// arithmetic treats specially rather than via UCUM conversion factors.
func NewCalendarQuantity(v decimal.Decimal, unit string) Quantity {
	return Quantity{Value: v, Unit: unit, Code: unit, System: UCUMSystem, Calendar: true}
}

func (Quantity) Type() fhirtype.TypeInfo { return fhirtype.Of(fhirtype.System, "Quantity") }

func (q Quantity) String() string {
	return q.Value.String() + " '" + q.Unit + "'"
}
func (Quantity) value() {}
