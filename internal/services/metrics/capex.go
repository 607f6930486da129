package metrics

import "github.com/bobmcallan/rentvest/internal/models"

// CapExInput carries the raw figures the CapEx adjustment starts from.
type CapExInput struct {
	NetMonthlyCashFlow  float64
	AnnualNetCashFlow   float64
	InitialCashInvested float64
	PurchasePrice       float64
	AnnualNOI           float64
	Expenses            []models.ManualExpense
}

// CapExAdjustment holds the CapEx totals and the adjusted figures. Values are
// not rounded.
type CapExAdjustment struct {
	Immediate float64
	Year1     float64
	Total     float64

	NetMonthlyCashFlow  float64
	AnnualNetCashFlow   float64
	InitialCashInvested float64
	CashOnCashReturn    float64
	CapRate             float64
}

// SumCapEx totals manual expenses by timing. Items with an unrecognised timing
// are counted in neither bucket.
func SumCapEx(expenses []models.ManualExpense) (immediate, year1 float64) {
	for _, e := range expenses {
		switch e.Timing {
		case models.TimingImmediate:
			immediate += e.EstimatedCost
		case models.TimingYear1:
			year1 += e.EstimatedCost
		}
	}
	return immediate, year1
}

// AdjustForCapEx applies manual capital expenses to the raw figures.
//
// Immediate CapEx adds to the cash invested and to the cap-rate cost basis.
// Year-1 CapEx is taken off the first year's cash flow; the monthly figure
// carries one twelfth of it, so it reads as an annualized average rather than
// a specific month.
func AdjustForCapEx(in CapExInput) CapExAdjustment {
	immediate, year1 := SumCapEx(in.Expenses)

	adj := CapExAdjustment{
		Immediate:           immediate,
		Year1:               year1,
		Total:               immediate + year1,
		NetMonthlyCashFlow:  in.NetMonthlyCashFlow - year1/12,
		AnnualNetCashFlow:   in.AnnualNetCashFlow - year1,
		InitialCashInvested: in.InitialCashInvested + immediate,
	}
	adj.CashOnCashReturn = ratioPct(adj.AnnualNetCashFlow, adj.InitialCashInvested)
	adj.CapRate = ratioPct(in.AnnualNOI, in.PurchasePrice+immediate)
	return adj
}
