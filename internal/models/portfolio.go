// Package models defines data structures for Rentvest
package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PortfolioEntry pairs a property with the metrics last computed from it.
type PortfolioEntry struct {
	Property Property         `json:"property"`
	Metrics  FinancialMetrics `json:"metrics"`
}

// Investor is a co-owner holding a flat percentage of the whole portfolio.
type Investor struct {
	Name         string  `json:"name"`
	OwnershipPct float64 `json:"ownership_pct"`
}

// Portfolio is an ordered collection of properties plus the market cap rate used
// for valuation. MarketCapRate never feeds per-property metrics.
type Portfolio struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Entries       []PortfolioEntry `json:"entries"`
	MarketCapRate float64          `json:"market_cap_rate"` // %
	Investors     []Investor       `json:"investors,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// FindEntry returns the index of the entry holding propertyID, or -1.
func (p *Portfolio) FindEntry(propertyID string) int {
	for i := range p.Entries {
		if p.Entries[i].Property.ID == propertyID {
			return i
		}
	}
	return -1
}

// PortfolioListing is the lightweight row returned when listing saved portfolios.
type PortfolioListing struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	PropertyCount int       `json:"property_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Listing summarises the portfolio for list views.
func (p *Portfolio) Listing() PortfolioListing {
	return PortfolioListing{
		ID:            p.ID,
		Name:          p.Name,
		PropertyCount: len(p.Entries),
		UpdatedAt:     p.UpdatedAt,
	}
}

// InvestorShare is one investor's flat-percentage slice of every dollar aggregate.
type InvestorShare struct {
	Name                 string  `json:"name"`
	OwnershipPct         float64 `json:"ownership_pct"`
	PurchasePrice        float64 `json:"purchase_price"`
	LoanAmount           float64 `json:"loan_amount"`
	Equity               float64 `json:"equity"`
	CashInvested         float64 `json:"cash_invested"`
	GrossMonthlyIncome   float64 `json:"gross_monthly_income"`
	NetMonthlyIncome     float64 `json:"net_monthly_income"`
	MonthlyMortgage      float64 `json:"monthly_mortgage"`
	MonthlyExpenses      float64 `json:"monthly_expenses"`
	MonthlyNetCashFlow   float64 `json:"monthly_net_cash_flow"`
	AnnualNetCashFlow    float64 `json:"annual_net_cash_flow"`
	AnnualNOI            float64 `json:"annual_noi"`
	EstimatedMarketValue float64 `json:"estimated_market_value"`
	UnrealizedGain       float64 `json:"unrealized_gain"`
}

// PortfolioSummary holds the rolled-up totals, simple averages and valuation.
type PortfolioSummary struct {
	PropertyCount           int             `json:"property_count"`
	LTRCount                int             `json:"ltr_count"`
	STRCount                int             `json:"str_count"`
	TotalPurchasePrice      float64         `json:"total_purchase_price"`
	TotalLoanAmount         float64         `json:"total_loan_amount"`
	TotalEquity             float64         `json:"total_equity"` // purchase price - loan amount
	TotalCashInvested       float64         `json:"total_cash_invested"`
	TotalGrossMonthlyIncome float64         `json:"total_gross_monthly_income"`
	TotalNetMonthlyIncome   float64         `json:"total_net_monthly_income"`
	TotalMonthlyMortgage    float64         `json:"total_monthly_mortgage"`
	TotalMonthlyExpenses    float64         `json:"total_monthly_expenses"`
	TotalMonthlyNetCashFlow float64         `json:"total_monthly_net_cash_flow"`
	AnnualNetCashFlow       float64         `json:"annual_net_cash_flow"`
	AnnualNOI               float64         `json:"annual_noi"`
	AverageCapRate          float64         `json:"average_cap_rate"`            // unweighted mean, %
	AverageCashOnCashReturn float64         `json:"average_cash_on_cash_return"` // unweighted mean, %
	MarketCapRate           float64         `json:"market_cap_rate"`
	EstimatedMarketValue    float64         `json:"estimated_market_value"`
	UnrealizedGain          float64         `json:"unrealized_gain"`
	InvestorShares          []InvestorShare `json:"investor_shares,omitempty"`
}

// ValidateInvestors checks each ownership percentage is within 0-100, names are
// present and unique, and the total does not exceed 100%.
func ValidateInvestors(investors []Investor) error {
	seen := make(map[string]bool, len(investors))
	total := 0.0
	for _, inv := range investors {
		name := strings.TrimSpace(inv.Name)
		if name == "" {
			return fmt.Errorf("investor name is required")
		}
		if seen[strings.ToLower(name)] {
			return fmt.Errorf("duplicate investor %q", name)
		}
		seen[strings.ToLower(name)] = true
		if err := percent("ownership_pct", inv.OwnershipPct); err != nil {
			return fmt.Errorf("investor %q: %w", name, err)
		}
		total += inv.OwnershipPct
	}
	// allow float noise from splits like 33.33 x 3
	if total > 100+1e-9 {
		return fmt.Errorf("investor ownership totals %.2f%%, must not exceed 100%%", total)
	}
	return nil
}

// ValidateMarketCapRate rejects non-finite or out-of-range cap rates. Zero is
// allowed and yields a zero valuation.
func ValidateMarketCapRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("market_cap_rate must be a finite number")
	}
	if rate < 0 || rate > 100 {
		return fmt.Errorf("market_cap_rate must be between 0 and 100, got %.2f", rate)
	}
	return nil
}
