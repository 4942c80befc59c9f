package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/moidotsh/stocks"
)

type applyCmd struct {
	asset    string
	holdings string
	trades   string
	fills    string
	out      string
}

func (*applyCmd) Name() string     { return "apply" }
func (*applyCmd) Synopsis() string { return "reconcile a trades document against fills and apply it" }
func (*applyCmd) Usage() string {
	return `stk apply -trades <trades.json> -fills <fills.csv> [-asset <equity|crypto>] [-holdings <csv>] [-out <csv>]

  Reconciles the planned trades against the executed fills and applies the
  resulting operations to the holdings snapshot. Nothing is written unless
  every trade reconciles and every operation applies.
`
}

func (p *applyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "asset", "equity", "Asset class of the book (equity or crypto).")
	f.StringVar(&p.holdings, "holdings", "", "Holdings snapshot to update. Defaults to the configured one.")
	f.StringVar(&p.trades, "trades", "", "Trades JSON document.")
	f.StringVar(&p.fills, "fills", "", "Executed fills CSV.")
	f.StringVar(&p.out, "out", "", "Where to write the updated snapshot. Defaults to the holdings file.")
}

func (p *applyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.trades == "" || p.fills == "" {
		fmt.Fprintln(os.Stderr, "Error: -trades and -fills are required.")
		return subcommands.ExitUsageError
	}

	class, status := parseClass(p.asset)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, holdingsPath, err := openBook(class, p.holdings)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading holdings:", err)
		return subcommands.ExitFailure
	}

	tradesFile, err := os.Open(p.trades)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening trades:", err)
		return subcommands.ExitFailure
	}
	defer tradesFile.Close()
	trades, err := stocks.DecodeTrades(tradesFile, class)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading trades:", err)
		return subcommands.ExitFailure
	}

	fillsFile, err := os.Open(p.fills)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening fills:", err)
		return subcommands.ExitFailure
	}
	defer fillsFile.Close()
	fills, err := stocks.DecodeFills(fillsFile, class)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading fills:", err)
		return subcommands.ExitFailure
	}

	ops, err := stocks.Reconcile(class, trades, fills)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Reconciliation failed:", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Apply(ops...); err != nil {
		fmt.Fprintln(os.Stderr, "Apply failed:", err)
		return subcommands.ExitFailure
	}

	out := p.out
	if out == "" {
		out = holdingsPath
	}
	if err := stocks.SaveSnapshotFile(out, ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing snapshot:", err)
		return subcommands.ExitFailure
	}

	for _, op := range ops {
		fmt.Println(op)
	}
	fmt.Printf("Applied %d operation(s) to %s\n", len(ops), out)
	return subcommands.ExitSuccess
}
