package portfolio

import (
	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/bobmcallan/rentvest/internal/services/metrics"
)

// CalculateValuation capitalizes annual NOI at the market cap rate:
// value = NOI / (rate/100). Returns 0 when the rate is not positive.
func CalculateValuation(annualNOI, marketCapRatePercent float64) float64 {
	if marketCapRatePercent <= 0 {
		return 0
	}
	return metrics.Round2(annualNOI / (marketCapRatePercent / 100))
}

// Aggregate rolls the metrics of each entry into portfolio totals.
//
// Totals use each property's primary metrics as stored on the entry; nothing is
// recomputed here. Cap rate and cash-on-cash return are simple means where every
// property counts equally. Loan amount is the active principal of each loan.
func Aggregate(entries []models.PortfolioEntry, marketCapRate float64, investors []models.Investor) models.PortfolioSummary {
	var purchase, loan, cash float64
	var gross, netIncome, mortgage, expenses float64
	var monthlyCashFlow, annualCashFlow float64
	var capRateSum, cocSum float64
	var ltr, str int

	for _, e := range entries {
		p, m := e.Property, e.Metrics

		purchase += p.Shared.PurchasePrice
		loan += metrics.ActivePrincipal(p.Shared)
		cash += m.InitialCashInvested
		gross += m.GrossMonthlyIncome
		netIncome += m.NetMonthlyIncome
		mortgage += m.MonthlyMortgagePayment
		expenses += m.TotalMonthlyExpenses
		monthlyCashFlow += m.NetMonthlyCashFlow
		annualCashFlow += m.AnnualNetCashFlow
		capRateSum += m.CapRate
		cocSum += m.CashOnCashReturn

		switch p.Variant {
		case models.VariantLTR:
			ltr++
		case models.VariantSTR:
			str++
		}
	}

	annualNOI := netIncome * 12
	value := CalculateValuation(annualNOI, marketCapRate)

	s := models.PortfolioSummary{
		PropertyCount:           len(entries),
		LTRCount:                ltr,
		STRCount:                str,
		TotalPurchasePrice:      metrics.Round2(purchase),
		TotalLoanAmount:         metrics.Round2(loan),
		TotalEquity:             metrics.Round2(purchase - loan),
		TotalCashInvested:       metrics.Round2(cash),
		TotalGrossMonthlyIncome: metrics.Round2(gross),
		TotalNetMonthlyIncome:   metrics.Round2(netIncome),
		TotalMonthlyMortgage:    metrics.Round2(mortgage),
		TotalMonthlyExpenses:    metrics.Round2(expenses),
		TotalMonthlyNetCashFlow: metrics.Round2(monthlyCashFlow),
		AnnualNetCashFlow:       metrics.Round2(annualCashFlow),
		AnnualNOI:               metrics.Round2(annualNOI),
		MarketCapRate:           marketCapRate,
		EstimatedMarketValue:    value,
		UnrealizedGain:          metrics.Round2(value - purchase),
	}
	if n := len(entries); n > 0 {
		s.AverageCapRate = metrics.Round2(capRateSum / float64(n))
		s.AverageCashOnCashReturn = metrics.Round2(cocSum / float64(n))
	}

	s.InvestorShares = InvestorShares(s, investors)
	return s
}

// InvestorShares splits every dollar aggregate by each investor's ownership
// fraction. Nothing is investor-specific beyond that multiplication.
func InvestorShares(s models.PortfolioSummary, investors []models.Investor) []models.InvestorShare {
	if len(investors) == 0 {
		return nil
	}
	shares := make([]models.InvestorShare, 0, len(investors))
	for _, inv := range investors {
		f := inv.OwnershipPct / 100
		shares = append(shares, models.InvestorShare{
			Name:                 inv.Name,
			OwnershipPct:         inv.OwnershipPct,
			PurchasePrice:        metrics.Round2(s.TotalPurchasePrice * f),
			LoanAmount:           metrics.Round2(s.TotalLoanAmount * f),
			Equity:               metrics.Round2(s.TotalEquity * f),
			CashInvested:         metrics.Round2(s.TotalCashInvested * f),
			GrossMonthlyIncome:   metrics.Round2(s.TotalGrossMonthlyIncome * f),
			NetMonthlyIncome:     metrics.Round2(s.TotalNetMonthlyIncome * f),
			MonthlyMortgage:      metrics.Round2(s.TotalMonthlyMortgage * f),
			MonthlyExpenses:      metrics.Round2(s.TotalMonthlyExpenses * f),
			MonthlyNetCashFlow:   metrics.Round2(s.TotalMonthlyNetCashFlow * f),
			AnnualNetCashFlow:    metrics.Round2(s.AnnualNetCashFlow * f),
			AnnualNOI:            metrics.Round2(s.AnnualNOI * f),
			EstimatedMarketValue: metrics.Round2(s.EstimatedMarketValue * f),
			UnrealizedGain:       metrics.Round2(s.UnrealizedGain * f),
		})
	}
	return shares
}
