package value

import "github.com/shopspring/decimal"

func decimalFromInt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func decimalFromFloat64(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
