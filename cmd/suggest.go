package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/moidotsh/stocks"
	"github.com/moidotsh/stocks/advisor"
	"google.golang.org/genai"
)

type suggestCmd struct {
	asset      string
	holdings   string
	candidates string
	budget     float64
	out        string
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "ask the advisor for next week's trades" }
func (*suggestCmd) Usage() string {
	return `stk suggest -candidates <json> [-asset <equity|crypto>] [-budget <cad>] [-out <trades.json>]

  Sends the current holdings and the candidates document to the advisor and
  prints the proposed trades JSON. The document is validated before it is
  written; apply it with "stk apply" once the orders have filled.
`
}

func (p *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "asset", "equity", "Asset class of the book (equity or crypto).")
	f.StringVar(&p.holdings, "holdings", "", "Holdings snapshot to read. Defaults to the configured one.")
	f.StringVar(&p.candidates, "candidates", "", "Candidates document sent to the advisor.")
	f.Float64Var(&p.budget, "budget", 0, "CAD budget for the week.")
	f.StringVar(&p.out, "out", "", "Where to write the trades JSON. Prints to stdout when omitted.")
}

func (p *suggestCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.candidates == "" {
		fmt.Fprintln(os.Stderr, "Error: -candidates is required.")
		return subcommands.ExitUsageError
	}

	class, status := parseClass(p.asset)
	if status != subcommands.ExitSuccess {
		return status
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	holdingsPath := p.holdings
	if holdingsPath == "" {
		holdingsPath = cfg.Book(class).Holdings
	}
	holdingsCSV, err := os.ReadFile(holdingsPath)
	if errors.Is(err, fs.ErrNotExist) {
		holdingsCSV = nil
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading holdings:", err)
		return subcommands.ExitFailure
	}

	candidates, err := os.ReadFile(p.candidates)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading candidates:", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := advisor.New(class.String())
	if err := a.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting advisor:", err)
		return subcommands.ExitFailure
	}
	doc, err := a.SuggestTrades(ctx, string(holdingsCSV), string(candidates), p.budget)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}

	// The advisor's output is untrusted until it parses as a trades document.
	trades, err := stocks.DecodeTrades(strings.NewReader(doc), class)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Advisor returned an invalid trades document:", err)
		fmt.Fprintln(os.Stderr, doc)
		return subcommands.ExitFailure
	}

	if p.out == "" {
		fmt.Println(doc)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(p.out, []byte(doc+"\n"), 0644); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing trades:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d proposed trade(s) to %s\n", len(trades), p.out)
	return subcommands.ExitSuccess
}
