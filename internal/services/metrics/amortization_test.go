package metrics

import (
	"math"
	"testing"

	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/stretchr/testify/assert"
)

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMonthlyPayment_StandardAnnuity(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		want      float64
	}{
		{"200k at 6% for 30 years", 200000, 6, 30, 1199.10},
		{"300k at 7% for 30 years", 300000, 7, 30, 1995.91},
		{"150k at 4.5% for 15 years", 150000, 4.5, 15, 1147.49},
		{"100k at 5% for 10 years", 100000, 5, 10, 1060.66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(MonthlyPayment(tt.principal, tt.rate, tt.years))
			assert.InDelta(t, tt.want, got, 0.005)
		})
	}
}

func TestMonthlyPayment_ZeroGuards(t *testing.T) {
	assert.Equal(t, 0.0, MonthlyPayment(0, 6, 30), "zero principal")
	assert.Equal(t, 0.0, MonthlyPayment(200000, 0, 30), "zero rate")
	assert.Equal(t, 0.0, MonthlyPayment(200000, 6, 0), "zero term")
	assert.Equal(t, 0.0, MonthlyPayment(200000, 6, -5), "negative term")
}

func TestMonthlyPayment_MonotonicInRate(t *testing.T) {
	prev := MonthlyPayment(250000, 0, 30)
	for rate := 0.25; rate <= 15; rate += 0.25 {
		got := MonthlyPayment(250000, rate, 30)
		if got < prev {
			t.Fatalf("payment at %.2f%% = %.4f, below payment at lower rate %.4f", rate, got, prev)
		}
		prev = got
	}
}

func TestActivePrincipal(t *testing.T) {
	assert.Equal(t, 180000.0, ActivePrincipal(models.SharedDetails{LoanAmount: 200000, RemainingBalance: 180000}))
	assert.Equal(t, 200000.0, ActivePrincipal(models.SharedDetails{LoanAmount: 200000}))
	assert.Equal(t, 0.0, ActivePrincipal(models.SharedDetails{}))
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{1199.1010503, 1199.10},
		{0.004, 0},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRound2_NonFinite(t *testing.T) {
	assert.Equal(t, 0.0, Round2(math.NaN()))
	assert.Equal(t, 0.0, Round2(math.Inf(1)))
	assert.Equal(t, 0.0, Round2(math.Inf(-1)))
}
