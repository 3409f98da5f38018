package temporal

import (
	"testing"

	"github.com/fhirpath-go/fhirpath/value"
	"github.com/stretchr/testify/assert"
)

func TestCompareDates_SamePrecision(t *testing.T) {
	a := value.Date{Year: 2024, Month: 3, Day: 7, Prec: value.PrecisionDay}
	b := value.Date{Year: 2024, Month: 3, Day: 8, Prec: value.PrecisionDay}
	cmp, ok := CompareDates(a, b)
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestCompareDates_DifferingPrecisionEqualDownToShared(t *testing.T) {
	a := value.Date{Year: 2024, Prec: value.PrecisionYear}
	b := value.Date{Year: 2024, Month: 6, Day: 15, Prec: value.PrecisionDay}
	cmp, ok := CompareDates(a, b)
	assert.False(t, ok)
	assert.Equal(t, 0, cmp)
}

func TestCompareDates_DifferingPrecisionUnequalAboveShared(t *testing.T) {
	a := value.Date{Year: 2023, Prec: value.PrecisionYear}
	b := value.Date{Year: 2024, Month: 6, Day: 15, Prec: value.PrecisionDay}
	cmp, ok := CompareDates(a, b)
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestCompareDateTimes_FloatingVsZonedIncomparable(t *testing.T) {
	a := value.DateTime{Year: 2024, Month: 1, Day: 1, Hour: 10, Prec: value.PrecisionHour}
	b := value.DateTime{
		Year: 2024, Month: 1, Day: 1, Hour: 10, Prec: value.PrecisionHour,
		Offset: value.TimeOffset{HasZone: true},
	}
	_, ok := CompareDateTimes(a, b)
	assert.False(t, ok)
}

func TestCompareTimes(t *testing.T) {
	a := value.Time{Hour: 10, Minute: 30, Prec: value.PrecisionMinute}
	b := value.Time{Hour: 10, Minute: 30, Prec: value.PrecisionMinute}
	cmp, ok := CompareTimes(a, b)
	assert.True(t, ok)
	assert.Equal(t, 0, cmp)
}
