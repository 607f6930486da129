// Package cli implements the rentvest command line subcommands.
package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when -currency is not given.
const DefaultCurrency = money.USD

// stdout is where commands print; tests swap it.
var stdout io.Writer = os.Stdout

// formatMoney renders v in the currency's own format, e.g. $1,199.10.
func formatMoney(v float64, code string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	cur := money.New(0, code).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// table accumulates a two-column markdown table.
type table struct {
	b strings.Builder
}

func newTable(title, left, right string) *table {
	t := &table{}
	if title != "" {
		fmt.Fprintf(&t.b, "## %s\n\n", title)
	}
	fmt.Fprintf(&t.b, "| %s | %s |\n|---|---:|\n", left, right)
	return t
}

func (t *table) row(label, value string) {
	fmt.Fprintf(&t.b, "| %s | %s |\n", label, value)
}

func (t *table) String() string {
	return t.b.String() + "\n"
}

// printMarkdown renders md for the terminal, or writes it verbatim when plain.
func printMarkdown(md string, plain bool) error {
	if plain {
		_, err := io.WriteString(stdout, md)
		return err
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(stdout, out)
	return err
}
