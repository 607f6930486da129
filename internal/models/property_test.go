package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLTR() Property {
	return NewLTRProperty("Duplex", SharedDetails{
		PurchasePrice: 250000,
		DownPayment:   50000,
		LoanAmount:    200000,
		InterestRate:  6,
		LoanTermYears: 30,
		ClosingCosts:  5000,
	}, LTRDetails{
		MonthlyRentPerUnit:    1500,
		Units:                 2,
		PropertyManagementPct: 10,
		AnnualTax:             2400,
		AnnualInsurance:       1200,
		MonthlyRepairReserve:  50,
	})
}

func validSTR() Property {
	return NewSTRProperty("Cabin", SharedDetails{PurchasePrice: 300000, DownPayment: 300000}, STRDetails{
		NightlyRate:          200,
		DaysPerMonth:         30,
		OccupancyRatePct:     70,
		CoHostFeePct:         20,
		CleaningFeePerStay:   100,
		AverageStaysPerMonth: 5,
		MonthlyUtilities:     300,
		AnnualTax:            3600,
		AnnualInsurance:      2400,
	})
}

func TestValidVariant(t *testing.T) {
	assert.True(t, ValidVariant(VariantLTR))
	assert.True(t, ValidVariant(VariantSTR))
	assert.False(t, ValidVariant(""))
	assert.False(t, ValidVariant("LTR"))
	assert.False(t, ValidVariant("hotel"))
}

func TestPropertyDetails(t *testing.T) {
	ltr := validLTR()
	d, ok := ltr.Details().(*LTRDetails)
	require.True(t, ok, "ltr property should expose *LTRDetails")
	assert.Equal(t, 2, d.Units)

	str := validSTR()
	s, ok := str.Details().(*STRDetails)
	require.True(t, ok, "str property should expose *STRDetails")
	assert.Equal(t, 200.0, s.NightlyRate)

	// tag without payload
	missing := Property{Variant: VariantSTR, LTR: &LTRDetails{}}
	assert.Nil(t, missing.Details())

	unknown := Property{Variant: "hotel", LTR: &LTRDetails{}}
	assert.Nil(t, unknown.Details())
}

func TestPropertyValidate_Valid(t *testing.T) {
	require.NoError(t, validLTR().Validate())
	require.NoError(t, validSTR().Validate())

	p := validLTR()
	p.ManualExpenses = []ManualExpense{
		{Name: "Roof", EstimatedCost: 12000, Timing: TimingImmediate},
		{Name: "HVAC", EstimatedCost: 6000, Timing: TimingYear1},
	}
	require.NoError(t, p.Validate())

	// percentages at the boundary are accepted
	p = validSTR()
	p.STR.OccupancyRatePct = 100
	p.STR.DaysPerMonth = 31
	require.NoError(t, p.Validate())
}

func TestPropertyValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Property)
		wantErr string
	}{
		{"unknown variant", func(p *Property) { p.Variant = "hotel" }, "invalid property variant"},
		{"long name", func(p *Property) {
			b := make([]byte, 201)
			for i := range b {
				b[i] = 'a'
			}
			p.Name = string(b)
		}, "maximum length"},
		{"negative price", func(p *Property) { p.Shared.PurchasePrice = -1 }, "purchase_price"},
		{"NaN loan", func(p *Property) { p.Shared.LoanAmount = math.NaN() }, "finite"},
		{"infinite closing", func(p *Property) { p.Shared.ClosingCosts = math.Inf(1) }, "finite"},
		{"interest over 100", func(p *Property) { p.Shared.InterestRate = 101 }, "interest_rate"},
		{"negative term", func(p *Property) { p.Shared.LoanTermYears = -5 }, "loan_term_years"},
		{"ltr payload missing", func(p *Property) { p.LTR = nil }, "ltr details are required"},
		{"both payloads", func(p *Property) { p.STR = &STRDetails{} }, "str details must be empty"},
		{"negative units", func(p *Property) { p.LTR.Units = -1 }, "units"},
		{"negative rent", func(p *Property) { p.LTR.MonthlyRentPerUnit = -1500 }, "monthly_rent_per_unit"},
		{"management over 100", func(p *Property) { p.LTR.PropertyManagementPct = 150 }, "property_management_pct"},
		{"expense without name", func(p *Property) {
			p.ManualExpenses = []ManualExpense{{Name: " ", EstimatedCost: 10, Timing: TimingImmediate}}
		}, "name is required"},
		{"negative expense", func(p *Property) {
			p.ManualExpenses = []ManualExpense{{Name: "Roof", EstimatedCost: -10, Timing: TimingImmediate}}
		}, "estimated_cost"},
		{"bad timing", func(p *Property) {
			p.ManualExpenses = []ManualExpense{{Name: "Roof", EstimatedCost: 10, Timing: "someday"}}
		}, "invalid timing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validLTR()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPropertyValidate_STRErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Property)
		wantErr string
	}{
		{"str payload missing", func(p *Property) { p.STR = nil }, "str details are required"},
		{"both payloads", func(p *Property) { p.LTR = &LTRDetails{} }, "ltr details must be empty"},
		{"days over 31", func(p *Property) { p.STR.DaysPerMonth = 32 }, "days_per_month"},
		{"occupancy over 100", func(p *Property) { p.STR.OccupancyRatePct = 100.5 }, "occupancy_rate_pct"},
		{"negative co-host fee", func(p *Property) { p.STR.CoHostFeePct = -1 }, "co_host_fee_pct"},
		{"negative utilities", func(p *Property) { p.STR.MonthlyUtilities = -300 }, "monthly_utilities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validSTR()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHasManualCapEx(t *testing.T) {
	assert.False(t, FinancialMetrics{}.HasManualCapEx())
	assert.True(t, FinancialMetrics{TotalManualCapEx: 0.01}.HasManualCapEx())
}

func TestPortfolioFindEntryAndListing(t *testing.T) {
	a, b := validLTR(), validSTR()
	a.ID, b.ID = "p-1", "p-2"
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &Portfolio{
		ID:        "pf-1",
		Name:      "Main",
		Entries:   []PortfolioEntry{{Property: a}, {Property: b}},
		UpdatedAt: updated,
	}

	assert.Equal(t, 0, p.FindEntry("p-1"))
	assert.Equal(t, 1, p.FindEntry("p-2"))
	assert.Equal(t, -1, p.FindEntry("p-3"))

	l := p.Listing()
	assert.Equal(t, "pf-1", l.ID)
	assert.Equal(t, "Main", l.Name)
	assert.Equal(t, 2, l.PropertyCount)
	assert.True(t, l.UpdatedAt.Equal(updated))
}
