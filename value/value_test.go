package value

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal_PreservesTrailingZeros(t *testing.T) {
	d, err := decimal.NewFromString("2.300")
	require.NoError(t, err)

	v := NewDecimal(d)
	assert.Equal(t, "2.300", v.String())
	assert.Equal(t, int32(3), v.Precision())
}

func TestValue_TypeQualified(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"empty", Empty{}, ""},
		{"boolean", Boolean(true), "System.Boolean"},
		{"integer", Integer(42), "System.Integer"},
		{"string", NewString("hi"), "System.String"},
		{"quantity", NewQuantity(decimal.NewFromInt(5), "mg"), "System.Quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Type().Qualified())
		})
	}
}

func TestDate_StringPrecision(t *testing.T) {
	tests := []struct {
		name string
		d    Date
		want string
	}{
		{"year", Date{Year: 2024, Prec: PrecisionYear}, "@2024"},
		{"month", Date{Year: 2024, Month: 3, Prec: PrecisionMonth}, "@2024-03"},
		{"day", Date{Year: 2024, Month: 3, Day: 7, Prec: PrecisionDay}, "@2024-03-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestDateTime_StringWithZone(t *testing.T) {
	dt := DateTime{
		Year: 2024, Month: 3, Day: 7,
		Hour: 13, Minute: 30, Second: 0,
		Prec:   PrecisionSecond,
		Offset: TimeOffset{Minutes: 0, HasZone: true},
	}
	assert.Equal(t, "@2024-03-07T13:30:00Z", dt.String())
}

func TestMinPrecision(t *testing.T) {
	assert.Equal(t, PrecisionYear, Min(PrecisionYear, PrecisionDay))
	assert.Equal(t, PrecisionMonth, Min(PrecisionMonth, PrecisionMonth))
}
