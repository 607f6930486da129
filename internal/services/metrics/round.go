package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places, halves away from zero. Going through
// decimal keeps values like 1.005 from rounding down on their binary form.
// Non-finite values round to 0.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ratioPct returns num/den*100, or 0 when den is 0.
func ratioPct(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}
