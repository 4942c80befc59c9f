package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/moidotsh/stocks"
)

// BookConfig holds the file locations of one book.
type BookConfig struct {
	Holdings string `toml:"holdings"` // holdings CSV snapshot
	Entries  string `toml:"entries"`  // weekly history JSON
}

// Config is the on-disk configuration, one section per book.
type Config struct {
	Equity BookConfig `toml:"equity"`
	Crypto BookConfig `toml:"crypto"`
}

// Defaults returns the historical file layout, so running without a config
// file keeps working on an existing checkout.
func Defaults() Config {
	return Config{
		Equity: BookConfig{Holdings: "holdings.csv", Entries: "data/entries.json"},
		Crypto: BookConfig{Holdings: "crypto_holdings.csv", Entries: "data/crypto_entries.json"},
	}
}

// LoadConfig reads the TOML configuration at path, merged on top of the
// defaults, then applies STOCKS_* environment variable overrides. A missing
// config file is not an error; the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	// Load .env if present (silently ignore if missing).
	_ = godotenv.Load()

	setStr(&cfg.Equity.Holdings, "STOCKS_EQUITY_HOLDINGS")
	setStr(&cfg.Equity.Entries, "STOCKS_EQUITY_ENTRIES")
	setStr(&cfg.Crypto.Holdings, "STOCKS_CRYPTO_HOLDINGS")
	setStr(&cfg.Crypto.Entries, "STOCKS_CRYPTO_ENTRIES")

	return cfg, nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Book returns the configuration of the class's book.
func (c Config) Book(class stocks.Class) BookConfig {
	if class == stocks.Crypto {
		return c.Crypto
	}
	return c.Equity
}
