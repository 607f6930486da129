package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInvestors(t *testing.T) {
	tests := []struct {
		name      string
		investors []Investor
		wantErr   string
	}{
		{"none", nil, ""},
		{"single full owner", []Investor{{"Alice", 100}}, ""},
		{"partial ownership", []Investor{{"Alice", 25}}, ""},
		{"thirds", []Investor{{"A", 33.33}, {"B", 33.33}, {"C", 33.34}}, ""},
		{"over 100 total", []Investor{{"Alice", 60}, {"Bob", 50}}, "must not exceed 100%"},
		{"negative share", []Investor{{"Alice", -5}}, "ownership_pct"},
		{"share over 100", []Investor{{"Alice", 120}}, "ownership_pct"},
		{"NaN share", []Investor{{"Alice", math.NaN()}}, "finite"},
		{"blank name", []Investor{{"  ", 10}}, "name is required"},
		{"duplicate name", []Investor{{"Alice", 10}, {"alice", 10}}, "duplicate investor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInvestors(tt.investors)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateMarketCapRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"typical", 6.5, false},
		{"upper bound", 100, false},
		{"negative", -0.1, true},
		{"over 100", 100.01, true},
		{"NaN", math.NaN(), true},
		{"infinite", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarketCapRate(tt.rate)
			if tt.wantErr {
				assert.Error(t, err, "ValidateMarketCapRate(%v) should return error", tt.rate)
			} else {
				assert.NoError(t, err, "ValidateMarketCapRate(%v) should not return error", tt.rate)
			}
		})
	}
}
