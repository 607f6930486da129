package metrics

import "github.com/bobmcallan/rentvest/internal/models"

// IncomeExpense is the monthly operating waterfall of a property, before debt service.
type IncomeExpense struct {
	GrossMonthlyIncome   float64
	TotalMonthlyExpenses float64
}

// IncomeExpenses computes gross monthly income and total monthly operating
// expenses for the property's variant. A property whose variant payload is
// missing yields zero for both.
func IncomeExpenses(p models.Property) IncomeExpense {
	switch d := p.Details().(type) {
	case *models.LTRDetails:
		return ltrIncomeExpenses(d)
	case *models.STRDetails:
		return strIncomeExpenses(d)
	default:
		return IncomeExpense{}
	}
}

func ltrIncomeExpenses(d *models.LTRDetails) IncomeExpense {
	gross := d.MonthlyRentPerUnit * float64(d.Units)
	management := gross * d.PropertyManagementPct / 100
	expenses := management +
		d.AnnualTax/12 +
		d.AnnualInsurance/12 +
		d.MonthlyRepairReserve
	return IncomeExpense{GrossMonthlyIncome: gross, TotalMonthlyExpenses: expenses}
}

func strIncomeExpenses(d *models.STRDetails) IncomeExpense {
	bookedNights := d.DaysPerMonth * d.OccupancyRatePct / 100
	gross := bookedNights * d.NightlyRate
	coHost := gross * d.CoHostFeePct / 100
	cleaning := d.CleaningFeePerStay * d.AverageStaysPerMonth
	expenses := coHost +
		cleaning +
		d.AnnualTax/12 +
		d.AnnualInsurance/12 +
		d.MonthlyUtilities
	return IncomeExpense{GrossMonthlyIncome: gross, TotalMonthlyExpenses: expenses}
}
