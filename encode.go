package stocks

import (
	"encoding/csv"
	"fmt"
	"io"
)

// This file contains the snapshot codec. A snapshot is a small CSV, one row
// per open position, sorted by instrument so that two identical ledgers
// always persist byte-identically. The column names are the class's
// historical ones (ticker,shares,avg_cost,currency for equities;
// symbol,amount,avg_cost_cad for crypto).

// EncodeSnapshot writes the ledger as a CSV snapshot, instruments ascending.
func EncodeSnapshot(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	s := l.Class().schema()

	header := []string{s.symbol, s.quantity, s.cost}
	if l.Class().HasCurrency() {
		header = append(header, s.currency)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write snapshot header: %w", err)
	}

	for p := range l.Positions() {
		row := []string{p.Instrument, p.Quantity.String(), p.AvgCost.String()}
		if l.Class().HasCurrency() {
			row = append(row, p.Currency)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write snapshot row for %s: %w", p.Instrument, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSnapshot reads a CSV snapshot into a fresh ledger. All required
// columns must be present; the error names every missing one. Extra columns
// are ignored.
func DecodeSnapshot(r io.Reader, class Class) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	s := class.schema()

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: snapshot has no header", ErrSchemaViolation)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot header: %w", err)
	}

	required := []string{s.symbol, s.quantity, s.cost}
	if class.HasCurrency() {
		required = append(required, s.currency)
	}
	index, missing := indexColumns(header, required)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: snapshot missing columns: %v", ErrSchemaViolation, missing)
	}

	ledger := NewLedger(class)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read snapshot line %d: %w", line, err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("%w: snapshot line %d has %d fields, header has %d",
				ErrSchemaViolation, line, len(row), len(header))
		}

		p := Position{Instrument: NormalizeInstrument(row[index[s.symbol]])}
		if p.Quantity, err = ParseQuantity(row[index[s.quantity]]); err != nil {
			return nil, fmt.Errorf("snapshot line %d: bad %s: %w", line, s.quantity, err)
		}
		if p.AvgCost, err = ParsePrice(row[index[s.cost]]); err != nil {
			return nil, fmt.Errorf("snapshot line %d: bad %s: %w", line, s.cost, err)
		}
		if !p.Quantity.IsPositive() {
			return nil, fmt.Errorf("snapshot line %d: %s must be positive, got %s", line, s.quantity, p.Quantity)
		}
		if p.AvgCost.IsNegative() {
			return nil, fmt.Errorf("snapshot line %d: %s must not be negative, got %s", line, s.cost, p.AvgCost)
		}
		if class.HasCurrency() {
			p.Currency = NormalizeInstrument(row[index[s.currency]])
			if !KnownCurrency(p.Currency) {
				return nil, fmt.Errorf("snapshot line %d: unknown currency %q for %s", line, p.Currency, p.Instrument)
			}
		}
		if err := ledger.insert(p); err != nil {
			return nil, fmt.Errorf("snapshot line %d: %w", line, err)
		}
	}
	return ledger, nil
}

// indexColumns maps each required column name to its position in the header
// and reports the ones that are absent.
func indexColumns(header, required []string) (index map[string]int, missing []string) {
	index = make(map[string]int, len(required))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, missing
	}
	return index, nil
}
