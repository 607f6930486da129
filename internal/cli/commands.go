package cli

import "github.com/google/subcommands"

// Register adds every rentvest subcommand to c.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&metricsCmd{}, "calculators")
	c.Register(&valuationCmd{}, "calculators")
	c.Register(&summaryCmd{}, "portfolios")
	c.Register(&listCmd{}, "portfolios")
}
