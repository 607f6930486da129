package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/bobmcallan/rentvest/internal/services/metrics"
)

// metricsCmd computes the financial metrics of one property file.
type metricsCmd struct {
	file     string
	currency string
	plain    bool
	asJSON   bool
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "compute the financial metrics of a rental property" }
func (*metricsCmd) Usage() string {
	return `rentvest metrics -f <property.json> [-currency USD] [-plain] [-json]

  Reads one property (ltr or str) and prints its cash flow, cap rate and
  cash-on-cash return. Use -f - to read from stdin.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "property JSON file, or - for stdin")
	f.StringVar(&c.currency, "currency", DefaultCurrency, "ISO currency code for display")
	f.BoolVar(&c.plain, "plain", false, "print markdown without terminal styling")
	f.BoolVar(&c.asJSON, "json", false, "print the metrics as JSON")
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "metrics: -f is required")
		return subcommands.ExitUsageError
	}

	var p models.Property
	if err := decodeFile(c.file, &p); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading property: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := p.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid property: %v\n", err)
		return subcommands.ExitFailure
	}

	m := metrics.CalculateMetrics(p)
	if c.asJSON {
		if err := writeJSON(m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := printMarkdown(renderMetrics(p, m, c.currency), c.plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func renderMetrics(p models.Property, m models.FinancialMetrics, cur string) string {
	title := p.Name
	if title == "" {
		title = "Property"
	}
	t := newTable(fmt.Sprintf("%s (%s)", title, p.Variant), "Metric", "Value")
	t.row("Gross monthly income", formatMoney(m.GrossMonthlyIncome, cur))
	t.row("Monthly expenses", formatMoney(m.TotalMonthlyExpenses, cur))
	t.row("Monthly mortgage", formatMoney(m.MonthlyMortgagePayment, cur))
	t.row("Net monthly income", formatMoney(m.NetMonthlyIncome, cur))
	t.row("Net monthly cash flow", formatMoney(m.NetMonthlyCashFlow, cur))
	t.row("Annual net cash flow", formatMoney(m.AnnualNetCashFlow, cur))
	t.row("Annual NOI", formatMoney(m.AnnualNOI, cur))
	t.row("Initial cash invested", formatMoney(m.InitialCashInvested, cur))
	t.row("Cap rate", formatPct(m.CapRate))
	t.row("Cash-on-cash return", formatPct(m.CashOnCashReturn))

	out := t.String()
	if m.HasManualCapEx() {
		capex := newTable("Before manual CapEx", "Metric", "Value")
		capex.row("Immediate CapEx", formatMoney(m.ImmediateCapEx, cur))
		capex.row("Year-1 CapEx", formatMoney(m.Year1CapEx, cur))
		capex.row("Net monthly cash flow", formatMoney(m.RawNetMonthlyCashFlow, cur))
		capex.row("Initial cash invested", formatMoney(m.RawInitialCashInvested, cur))
		capex.row("Cap rate", formatPct(m.RawCapRate))
		capex.row("Cash-on-cash return", formatPct(m.RawCashOnCashReturn))
		out += capex.String()
	}
	return out
}
