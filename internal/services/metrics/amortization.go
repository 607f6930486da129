// Package metrics computes per-property financial metrics for rental investments.
//
// Every function here is pure: inputs are read-only, there is no shared state,
// and every numeric output is defined for any input (division by zero yields 0).
package metrics

import (
	"math"

	"github.com/bobmcallan/rentvest/internal/models"
)

// ActivePrincipal returns the balance the amortization runs on: the remaining
// balance when one is recorded, otherwise the original loan amount. Term and
// rate are assumed to still apply to whichever balance is active.
func ActivePrincipal(s models.SharedDetails) float64 {
	if s.RemainingBalance > 0 {
		return s.RemainingBalance
	}
	return s.LoanAmount
}

// MonthlyPayment returns the fixed payment that fully amortizes principal over
// termYears*12 monthly payments at annualRatePercent/12/100 per month:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero principal or zero rate has no amortized payment and returns 0, as does
// a non-positive term. The result is not rounded.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	r := annualRatePercent / 12 / 100
	if principal == 0 || r == 0 || termYears <= 0 {
		return 0
	}
	n := float64(termYears * 12)
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}
