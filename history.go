package stocks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// The history file is a growing JSON array of weekly entries, one appended
// per recorded batch. Prior entries are never rewritten; the whole array is
// reserialized with the new entry at the end, which keeps the file trivially
// mergeable and diffable.

// HistoryEntry summarizes one applied batch.
type HistoryEntry struct {
	ID         string       `json:"id,omitempty"`
	WeekStart  string       `json:"week_start"` // ISO date marking the period
	DepositCAD float64      `json:"deposit_cad"`
	Trades     []EntryTrade `json:"trades"`
	Notes      string       `json:"notes,omitempty"`
}

// EntryTrade is one applied operation with its realized quantity and
// effective price. Quantities and prices are plain JSON numbers here; the
// history is a display record, not an accounting source.
type EntryTrade struct {
	Action   Action  `json:"action"`
	Ticker   string  `json:"ticker,omitempty"` // equity books
	Symbol   string  `json:"symbol,omitempty"` // crypto books
	Qty      float64 `json:"qty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

// NewHistoryEntry builds the entry for one applied batch. Each entry gets a
// fresh id so external consumers can deduplicate.
func NewHistoryEntry(class Class, weekStart string, depositCAD float64, ops []Operation, notes string) HistoryEntry {
	e := HistoryEntry{
		ID:         uuid.NewString(),
		WeekStart:  weekStart,
		DepositCAD: depositCAD,
		Trades:     make([]EntryTrade, 0, len(ops)),
		Notes:      notes,
	}
	for _, op := range ops {
		t := EntryTrade{
			Action:   op.Action,
			Qty:      op.Quantity.InexactFloat64(),
			Price:    op.UnitPrice.Quantize().InexactFloat64(),
			Currency: op.Currency,
		}
		if class == Crypto {
			t.Symbol = op.Instrument
		} else {
			t.Ticker = op.Instrument
		}
		e.Trades = append(e.Trades, t)
	}
	return e
}

// LoadHistory reads the entries file. A missing file is an empty history.
func LoadHistory(path string) ([]HistoryEntry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read history file %q: %w", path, err)
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("history file %q is not a JSON array of entries: %w", path, err)
	}
	return entries, nil
}

// AppendHistory appends one entry to the entries file, creating the file and
// its parent directory if needed.
func AppendHistory(path string, entry HistoryEntry) error {
	entries, err := LoadHistory(path)
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal history: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create history directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("cannot write history file %q: %w", path, err)
	}
	return nil
}
