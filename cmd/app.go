// Package cmd implements the CLI application to manage the weekly books.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/moidotsh/stocks"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&applyCmd{}, "ledger")
	c.Register(&recordCmd{}, "ledger")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")

	c.Register(&suggestCmd{}, "advisor")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", ".stocks.toml", "Path to the configuration file")

func loadConfig() (Config, error) {
	return LoadConfig(*configFile)
}

// parseClass resolves the -asset flag into a Class.
func parseClass(asset string) (stocks.Class, subcommands.ExitStatus) {
	class, err := stocks.ParseClass(asset)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return class, subcommands.ExitUsageError
	}
	return class, subcommands.ExitSuccess
}

// openBook loads the snapshot of the class's book, an empty ledger if the
// snapshot file does not exist yet. An explicit path overrides the config.
func openBook(class stocks.Class, path string) (*stocks.Ledger, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		path = cfg.Book(class).Holdings
	}
	ledger, err := stocks.LoadSnapshotFileOrEmpty(path, class)
	return ledger, path, err
}

// entriesPath resolves the history file of the class's book.
func entriesPath(class stocks.Class, path string) (string, error) {
	if path != "" {
		return path, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Book(class).Entries, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text if rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
