package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/rentvest/internal/app"
)

// listCmd prints the portfolios saved in the configured store.
type listCmd struct {
	config string
	plain  bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list saved portfolios" }
func (*listCmd) Usage() string {
	return `rentvest list [-config rentvest.toml]

  Lists saved portfolios from the configured storage backend, newest first.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "", "path to rentvest.toml")
	f.BoolVar(&c.plain, "plain", false, "print markdown without terminal styling")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := app.NewApp(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	listings, err := a.PortfolioService.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	md := "## Saved portfolios\n\n| ID | Name | Properties | Updated |\n|---|---|---:|---|\n"
	for _, l := range listings {
		md += fmt.Sprintf("| %s | %s | %d | %s |\n", l.ID, l.Name, l.PropertyCount, l.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if len(listings) == 0 {
		md += "| - | none saved | 0 | - |\n"
	}

	if err := printMarkdown(md+"\n", c.plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
