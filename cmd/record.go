package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/moidotsh/stocks"
)

type recordCmd struct {
	asset    string
	week     string
	deposit  float64
	fills    string
	notes    string
	holdings string
	entries  string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a week's fills into the book" }
func (*recordCmd) Usage() string {
	return `stk record [-asset <equity|crypto>] [-week <YYYY-MM-DD>] [-deposit <cad>] [-fills <csv>] [-notes <text>]

  Applies a week's executed fills to the holdings snapshot and appends the
  week to the history. Without -fills the fills are read interactively, one
  per line:

    buy ABX.TO 0.25 39.37 CAD        (equity; currency defaults to CAD)
    buy BTC 0.0002 93000             (crypto)

  An empty line ends the input. The whole week applies atomically.
`
}

func (p *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "asset", "equity", "Asset class of the book (equity or crypto).")
	f.StringVar(&p.week, "week", "", "Week start date. Defaults to the most recent Sunday.")
	f.Float64Var(&p.deposit, "deposit", 0, "CAD deposited this week.")
	f.StringVar(&p.fills, "fills", "", "Executed fills CSV. Interactive input when omitted.")
	f.StringVar(&p.notes, "notes", "", "Free-form note stored with the entry.")
	f.StringVar(&p.holdings, "holdings", "", "Holdings snapshot to update. Defaults to the configured one.")
	f.StringVar(&p.entries, "entries", "", "History file to append to. Defaults to the configured one.")
}

func (p *recordCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, status := parseClass(p.asset)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, holdingsPath, err := openBook(class, p.holdings)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading holdings:", err)
		return subcommands.ExitFailure
	}

	var fills []stocks.Fill
	if p.fills != "" {
		f, err := os.Open(p.fills)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error opening fills:", err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		fills, err = stocks.DecodeFills(f, class)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error reading fills:", err)
			return subcommands.ExitFailure
		}
	} else {
		fills, err = promptFills(os.Stdin, os.Stdout, class)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	}

	// Recorded fills are already executed, so they apply directly, in order,
	// without a trades document to reconcile against.
	ops := make([]stocks.Operation, 0, len(fills))
	for _, f := range fills {
		ops = append(ops, stocks.Operation{
			Action:     f.Action,
			Instrument: f.Instrument,
			Quantity:   f.Quantity,
			UnitPrice:  f.UnitPrice,
			Currency:   f.Currency,
		})
	}
	if err := ledger.Apply(ops...); err != nil {
		fmt.Fprintln(os.Stderr, "Apply failed:", err)
		return subcommands.ExitFailure
	}

	if err := stocks.SaveSnapshotFile(holdingsPath, ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing snapshot:", err)
		return subcommands.ExitFailure
	}

	week := p.week
	if week == "" {
		week = mostRecentSunday(time.Now()).Format("2006-01-02")
	}
	entriesFile, err := entriesPath(class, p.entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	entry := stocks.NewHistoryEntry(class, week, p.deposit, ops, p.notes)
	if err := stocks.AppendHistory(entriesFile, entry); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing history:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded week %s: %d fill(s), deposit %.2f CAD\n", week, len(ops), p.deposit)
	return subcommands.ExitSuccess
}

func mostRecentSunday(now time.Time) time.Time {
	d := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// promptFills reads fills interactively, one per line, until an empty line.
func promptFills(in io.Reader, out io.Writer, class stocks.Class) ([]stocks.Fill, error) {
	fmt.Fprintln(out, "Enter fills, one per line (empty line to finish):")
	scanner := bufio.NewScanner(in)
	var fills []stocks.Fill
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		fill, err := parseFillLine(class, line)
		if err != nil {
			fmt.Fprintln(out, "  ", err)
			continue
		}
		fills = append(fills, fill)
	}
	return fills, scanner.Err()
}

// parseFillLine parses "action instrument qty price [currency]". The currency
// defaults to CAD for currency-tracked classes and is rejected otherwise.
func parseFillLine(class stocks.Class, line string) (stocks.Fill, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return stocks.Fill{}, fmt.Errorf("expected: action instrument qty price [currency], got %q", line)
	}

	action, err := stocks.ParseAction(fields[0])
	if err != nil {
		return stocks.Fill{}, err
	}
	qty, err := stocks.ParseQuantity(fields[2])
	if err != nil {
		return stocks.Fill{}, err
	}
	unitPrice, err := stocks.ParsePrice(fields[3])
	if err != nil {
		return stocks.Fill{}, err
	}

	fill := stocks.Fill{
		Action:     action,
		Instrument: stocks.NormalizeInstrument(fields[1]),
		Quantity:   qty,
		UnitPrice:  unitPrice,
	}
	if class.HasCurrency() {
		fill.Currency = "CAD"
		if len(fields) > 4 {
			fill.Currency = strings.ToUpper(fields[4])
		}
	} else if len(fields) > 4 {
		return stocks.Fill{}, fmt.Errorf("%s books do not take a currency", class)
	}
	return fill, fill.Validate(class)
}
