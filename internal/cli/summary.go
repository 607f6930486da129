package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/bobmcallan/rentvest/internal/services/metrics"
	"github.com/bobmcallan/rentvest/internal/services/portfolio"
)

// summaryCmd aggregates a portfolio file. Metrics are always recomputed from
// the property inputs, so hand-written files need no metrics section.
type summaryCmd struct {
	file     string
	rate     float64
	currency string
	plain    bool
	asJSON   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "aggregate and value a portfolio file" }
func (*summaryCmd) Usage() string {
	return `rentvest summary -f <portfolio.json> [-rate <cap rate %>] [-plain] [-json]

  Displays portfolio totals, averages, valuation and investor shares.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "portfolio JSON file, or - for stdin")
	f.Float64Var(&c.rate, "rate", -1, "market cap rate override in percent (default: the file's)")
	f.StringVar(&c.currency, "currency", DefaultCurrency, "ISO currency code for display")
	f.BoolVar(&c.plain, "plain", false, "print markdown without terminal styling")
	f.BoolVar(&c.asJSON, "json", false, "print the summary as JSON")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "summary: -f is required")
		return subcommands.ExitUsageError
	}

	var p models.Portfolio
	if err := decodeFile(c.file, &p); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.rate >= 0 {
		p.MarketCapRate = c.rate
	}
	if err := models.ValidateMarketCapRate(p.MarketCapRate); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := models.ValidateInvestors(p.Investors); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	for i := range p.Entries {
		if err := p.Entries[i].Property.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid property %d: %v\n", i, err)
			return subcommands.ExitFailure
		}
		p.Entries[i].Metrics = metrics.CalculateMetrics(p.Entries[i].Property)
	}

	s := portfolio.Aggregate(p.Entries, p.MarketCapRate, p.Investors)
	if c.asJSON {
		if err := writeJSON(s); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := printMarkdown(renderSummary(p.Name, s, c.currency), c.plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func renderSummary(name string, s models.PortfolioSummary, cur string) string {
	if name == "" {
		name = "Portfolio"
	}
	t := newTable(fmt.Sprintf("%s: %d properties (%d LTR, %d STR)", name, s.PropertyCount, s.LTRCount, s.STRCount), "Total", "Value")
	t.row("Purchase price", formatMoney(s.TotalPurchasePrice, cur))
	t.row("Loan balance", formatMoney(s.TotalLoanAmount, cur))
	t.row("Equity", formatMoney(s.TotalEquity, cur))
	t.row("Cash invested", formatMoney(s.TotalCashInvested, cur))
	t.row("Gross monthly income", formatMoney(s.TotalGrossMonthlyIncome, cur))
	t.row("Monthly expenses", formatMoney(s.TotalMonthlyExpenses, cur))
	t.row("Monthly mortgage", formatMoney(s.TotalMonthlyMortgage, cur))
	t.row("Monthly net cash flow", formatMoney(s.TotalMonthlyNetCashFlow, cur))
	t.row("Annual net cash flow", formatMoney(s.AnnualNetCashFlow, cur))
	t.row("Annual NOI", formatMoney(s.AnnualNOI, cur))
	t.row("Average cap rate", formatPct(s.AverageCapRate))
	t.row("Average cash-on-cash", formatPct(s.AverageCashOnCashReturn))
	t.row("Market cap rate", formatPct(s.MarketCapRate))
	t.row("Estimated market value", formatMoney(s.EstimatedMarketValue, cur))
	t.row("Unrealized gain", formatMoney(s.UnrealizedGain, cur))
	out := t.String()

	if len(s.InvestorShares) > 0 {
		inv := newTable("Investors", "Investor", "Share")
		for _, sh := range s.InvestorShares {
			inv.row(fmt.Sprintf("%s (%s)", sh.Name, formatPct(sh.OwnershipPct)),
				fmt.Sprintf("%s cash flow/yr, %s value", formatMoney(sh.AnnualNetCashFlow, cur), formatMoney(sh.EstimatedMarketValue, cur)))
		}
		out += inv.String()
	}
	return out
}
