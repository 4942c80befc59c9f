package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/moidotsh/stocks"
)

type holdingsCmd struct {
	asset    string
	holdings string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show the current positions of a book" }
func (*holdingsCmd) Usage() string {
	return `stk holdings [-asset <equity|crypto>] [-holdings <csv>]

  Prints the open positions of the book as a table.
`
}

func (p *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "asset", "equity", "Asset class of the book (equity or crypto).")
	f.StringVar(&p.holdings, "holdings", "", "Holdings snapshot to read. Defaults to the configured one.")
}

func (p *holdingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, status := parseClass(p.asset)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, path, err := openBook(class, p.holdings)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading holdings:", err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Printf("No open positions in %s\n", path)
		return subcommands.ExitSuccess
	}

	printMarkdown(holdingsMarkdown(ledger))
	return subcommands.ExitSuccess
}

// holdingsMarkdown renders the ledger as a markdown table, one row per
// position, in snapshot order.
func holdingsMarkdown(ledger *stocks.Ledger) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s holdings\n\n", ledger.Class())
	if ledger.Class().HasCurrency() {
		b.WriteString("| Instrument | Quantity | Avg Cost | Currency |\n")
		b.WriteString("|---|---:|---:|---|\n")
		for p := range ledger.Positions() {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Instrument, p.Quantity, p.AvgCost, p.Currency)
		}
	} else {
		b.WriteString("| Instrument | Quantity | Avg Cost (CAD) |\n")
		b.WriteString("|---|---:|---:|\n")
		for p := range ledger.Positions() {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Instrument, p.Quantity, p.AvgCost)
		}
	}
	return b.String()
}
