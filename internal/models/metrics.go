package models

// FinancialMetrics is derived from a Property and recomputed from scratch whenever
// the property changes. Currency fields are rounded to cents, percentages to two
// decimals.
//
// NetMonthlyCashFlow, InitialCashInvested, CashOnCashReturn, CapRate and
// AnnualNetCashFlow are the primary figures. They hold the CapEx-adjusted values
// when TotalManualCapEx > 0 and the raw values otherwise; the Raw* and Adjusted*
// fields always carry both views.
type FinancialMetrics struct {
	MonthlyMortgagePayment float64 `json:"monthly_mortgage_payment"`
	GrossMonthlyIncome     float64 `json:"gross_monthly_income"`
	TotalMonthlyExpenses   float64 `json:"total_monthly_expenses"`
	NetMonthlyIncome       float64 `json:"net_monthly_income"` // gross - expenses, before debt service
	AnnualGrossIncome      float64 `json:"annual_gross_income"`
	AnnualNOI              float64 `json:"annual_noi"`

	// Primary figures (see selection rule above)
	NetMonthlyCashFlow  float64 `json:"net_monthly_cash_flow"`
	InitialCashInvested float64 `json:"initial_cash_invested"`
	CashOnCashReturn    float64 `json:"cash_on_cash_return"` // %
	CapRate             float64 `json:"cap_rate"`            // %
	AnnualNetCashFlow   float64 `json:"annual_net_cash_flow"`

	// Raw figures, before manual CapEx
	RawNetMonthlyCashFlow  float64 `json:"raw_net_monthly_cash_flow"`
	RawInitialCashInvested float64 `json:"raw_initial_cash_invested"`
	RawCashOnCashReturn    float64 `json:"raw_cash_on_cash_return"`
	RawCapRate             float64 `json:"raw_cap_rate"`
	RawAnnualNetCashFlow   float64 `json:"raw_annual_net_cash_flow"`

	// CapEx bookkeeping
	TotalManualCapEx float64 `json:"total_manual_capex"`
	ImmediateCapEx   float64 `json:"immediate_capex"`
	Year1CapEx       float64 `json:"year1_capex"`

	// CapEx-adjusted figures
	AdjustedNetMonthlyCashFlow  float64 `json:"adjusted_net_monthly_cash_flow"`
	AdjustedInitialCashInvested float64 `json:"adjusted_initial_cash_invested"`
	AdjustedCashOnCashReturn    float64 `json:"adjusted_cash_on_cash_return"`
	AdjustedCapRate             float64 `json:"adjusted_cap_rate"`
	AdjustedAnnualNetCashFlow   float64 `json:"adjusted_annual_net_cash_flow"`
}

// HasManualCapEx reports whether the primary figures carry the adjusted view.
func (m FinancialMetrics) HasManualCapEx() bool {
	return m.TotalManualCapEx > 0
}
