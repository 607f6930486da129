package metrics

import "github.com/bobmcallan/rentvest/internal/models"

// InitialCashInvested is the stated down payment, or purchase price less the
// original loan when no down payment is stated, plus closing costs.
func InitialCashInvested(s models.SharedDetails) float64 {
	down := s.DownPayment
	if down <= 0 {
		down = s.PurchasePrice - s.LoanAmount
	}
	return down + s.ClosingCosts
}

// CalculateMetrics derives the full FinancialMetrics record for a property.
//
// It never fails: missing variant details degrade to zero income and expenses,
// and zero denominators yield zero ratios. The property is not modified.
//
// When the property carries any manual CapEx, all five primary figures
// (monthly and annual net cash flow, initial cash invested, cash-on-cash
// return, cap rate) switch together to their adjusted values. Otherwise they
// equal the raw values.
func CalculateMetrics(p models.Property) models.FinancialMetrics {
	s := p.Shared

	payment := MonthlyPayment(ActivePrincipal(s), s.InterestRate, s.LoanTermYears)
	ie := IncomeExpenses(p)

	netMonthlyIncome := ie.GrossMonthlyIncome - ie.TotalMonthlyExpenses
	netMonthlyCashFlow := netMonthlyIncome - payment
	annualNOI := netMonthlyIncome * 12
	annualNetCashFlow := netMonthlyCashFlow * 12
	initialCash := InitialCashInvested(s)

	cashOnCash := ratioPct(annualNetCashFlow, initialCash)
	capRate := ratioPct(annualNOI, s.PurchasePrice)

	adj := AdjustForCapEx(CapExInput{
		NetMonthlyCashFlow:  netMonthlyCashFlow,
		AnnualNetCashFlow:   annualNetCashFlow,
		InitialCashInvested: initialCash,
		PurchasePrice:       s.PurchasePrice,
		AnnualNOI:           annualNOI,
		Expenses:            p.ManualExpenses,
	})

	m := models.FinancialMetrics{
		MonthlyMortgagePayment: Round2(payment),
		GrossMonthlyIncome:     Round2(ie.GrossMonthlyIncome),
		TotalMonthlyExpenses:   Round2(ie.TotalMonthlyExpenses),
		NetMonthlyIncome:       Round2(netMonthlyIncome),
		AnnualGrossIncome:      Round2(ie.GrossMonthlyIncome * 12),
		AnnualNOI:              Round2(annualNOI),

		RawNetMonthlyCashFlow:  Round2(netMonthlyCashFlow),
		RawInitialCashInvested: Round2(initialCash),
		RawCashOnCashReturn:    Round2(cashOnCash),
		RawCapRate:             Round2(capRate),
		RawAnnualNetCashFlow:   Round2(annualNetCashFlow),

		TotalManualCapEx: Round2(adj.Total),
		ImmediateCapEx:   Round2(adj.Immediate),
		Year1CapEx:       Round2(adj.Year1),

		AdjustedNetMonthlyCashFlow:  Round2(adj.NetMonthlyCashFlow),
		AdjustedInitialCashInvested: Round2(adj.InitialCashInvested),
		AdjustedCashOnCashReturn:    Round2(adj.CashOnCashReturn),
		AdjustedCapRate:             Round2(adj.CapRate),
		AdjustedAnnualNetCashFlow:   Round2(adj.AnnualNetCashFlow),
	}

	if m.HasManualCapEx() {
		m.NetMonthlyCashFlow = m.AdjustedNetMonthlyCashFlow
		m.InitialCashInvested = m.AdjustedInitialCashInvested
		m.CashOnCashReturn = m.AdjustedCashOnCashReturn
		m.CapRate = m.AdjustedCapRate
		m.AnnualNetCashFlow = m.AdjustedAnnualNetCashFlow
	} else {
		m.NetMonthlyCashFlow = m.RawNetMonthlyCashFlow
		m.InitialCashInvested = m.RawInitialCashInvested
		m.CashOnCashReturn = m.RawCashOnCashReturn
		m.CapRate = m.RawCapRate
		m.AnnualNetCashFlow = m.RawAnnualNetCashFlow
	}
	return m
}

// CalculateAll computes metrics for each property in order. Properties are
// independent; results line up index for index with the input.
func CalculateAll(properties []models.Property) []models.FinancialMetrics {
	out := make([]models.FinancialMetrics, len(properties))
	for i := range properties {
		out[i] = CalculateMetrics(properties[i])
	}
	return out
}
