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

type historyCmd struct {
	asset   string
	entries string
	tail    int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the recorded weeks of a book" }
func (*historyCmd) Usage() string {
	return `stk history [-asset <equity|crypto>] [-entries <json>] [-tail <n>]

  Lists the recorded weekly entries, oldest first.
`
}

func (p *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "asset", "equity", "Asset class of the book (equity or crypto).")
	f.StringVar(&p.entries, "entries", "", "History file to read. Defaults to the configured one.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N weeks.")
}

func (p *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, status := parseClass(p.asset)
	if status != subcommands.ExitSuccess {
		return status
	}

	path, err := entriesPath(class, p.entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	entries, err := stocks.LoadHistory(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading history:", err)
		return subcommands.ExitFailure
	}
	if len(entries) == 0 {
		fmt.Printf("No entries in %s\n", path)
		return subcommands.ExitSuccess
	}
	if p.tail > 0 && len(entries) > p.tail {
		entries = entries[len(entries)-p.tail:]
	}

	printMarkdown(historyMarkdown(class, entries))
	return subcommands.ExitSuccess
}

func historyMarkdown(class stocks.Class, entries []stocks.HistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s history\n", class)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s (deposit %.2f CAD)\n\n", e.WeekStart, e.DepositCAD)
		if len(e.Trades) == 0 {
			b.WriteString("no trades\n")
		}
		for _, t := range e.Trades {
			instrument := t.Ticker
			if instrument == "" {
				instrument = t.Symbol
			}
			if t.Currency != "" {
				fmt.Fprintf(&b, "- %s %s %v @ %v %s\n", t.Action, instrument, t.Qty, t.Price, t.Currency)
			} else {
				fmt.Fprintf(&b, "- %s %s %v @ %v\n", t.Action, instrument, t.Qty, t.Price)
			}
		}
		if e.Notes != "" {
			fmt.Fprintf(&b, "\n> %s\n", e.Notes)
		}
	}
	return b.String()
}
