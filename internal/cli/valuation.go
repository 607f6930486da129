package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/bobmcallan/rentvest/internal/services/portfolio"
)

type valuationCmd struct {
	noi      float64
	rate     float64
	currency string
	plain    bool
}

func (*valuationCmd) Name() string     { return "valuation" }
func (*valuationCmd) Synopsis() string { return "capitalize an annual NOI at a market cap rate" }
func (*valuationCmd) Usage() string {
	return `rentvest valuation -noi <annual NOI> -rate <cap rate %>

  Prints NOI / (rate/100). A zero rate values the income at zero.
`
}

func (c *valuationCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.noi, "noi", 0, "annual net operating income")
	f.Float64Var(&c.rate, "rate", 6, "market cap rate in percent")
	f.StringVar(&c.currency, "currency", DefaultCurrency, "ISO currency code for display")
	f.BoolVar(&c.plain, "plain", false, "print markdown without terminal styling")
}

func (c *valuationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := models.ValidateMarketCapRate(c.rate); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid rate: %v\n", err)
		return subcommands.ExitUsageError
	}

	t := newTable("Valuation", "Input", "Value")
	t.row("Annual NOI", formatMoney(c.noi, c.currency))
	t.row("Market cap rate", formatPct(c.rate))
	t.row("Estimated value", formatMoney(portfolio.CalculateValuation(c.noi, c.rate), c.currency))

	if err := printMarkdown(t.String(), c.plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
