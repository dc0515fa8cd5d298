package bonus

import "github.com/shopspring/decimal"

// RoundCurrency rounds v to places decimal places, halves away from zero.
// Decimal arithmetic avoids float artefacts such as 1.005 rounding to 1.00.
func RoundCurrency(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
