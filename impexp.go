package stocks

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file decodes the two input feeds the engine consumes: the trades JSON
// produced by the weekly decision process, and the fills CSV exported from
// the broker. Both are read fully into memory before reconciliation begins.

// DecodeTrades reads a trades document. The document is a JSON object whose
// "trades" property is an array of {action, ticker|symbol, qty} objects; the
// instrument key depends on the class. The document comes from an external
// tool, so the array is located with a jsonpath query rather than a rigid
// struct, tolerating extra wrapper fields.
func DecodeTrades(r io.Reader, class Class) ([]Trade, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read trades document: %w", err)
	}

	// UseNumber keeps quantities as their decimal literals instead of
	// float64, so "0.123456" survives exactly.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("trades document is not valid JSON: %w", err)
	}

	jval, err := jsonpath.Get("$.trades", jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: trades JSON missing 'trades' array", ErrSchemaViolation)
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: 'trades' is not an array", ErrSchemaViolation)
	}

	key := class.schema().symbol
	trades := make([]Trade, 0, len(list))
	for i, item := range list {
		jtrade, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("trade %d is not an object", i)
		}

		var t Trade
		action, _ := jtrade["action"].(string)
		if t.Action, err = ParseAction(action); err != nil {
			return nil, fmt.Errorf("trade %d: %w", i, err)
		}

		sym, _ := jtrade[key].(string)
		if sym == "" {
			return nil, fmt.Errorf("%w: trade %d missing %q", ErrSchemaViolation, i, key)
		}
		t.Instrument = NormalizeInstrument(sym)

		qty, ok := jtrade["qty"]
		if !ok {
			return nil, fmt.Errorf("%w: trade %d missing \"qty\"", ErrSchemaViolation, i)
		}
		if t.Quantity, err = parseJSONQuantity(qty); err != nil {
			return nil, fmt.Errorf("trade %d (%s): %w", i, t.Instrument, err)
		}

		if err := t.Validate(); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// parseJSONQuantity accepts a quantity as a JSON number or a numeric string.
func parseJSONQuantity(v any) (Quantity, error) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return Quantity{}, fmt.Errorf("bad qty %q: %w", n.String(), err)
		}
		return Quantity{value: d}, nil
	case string:
		q, err := ParseQuantity(n)
		if err != nil {
			return Quantity{}, fmt.Errorf("bad qty %q: %w", n, err)
		}
		return q, nil
	default:
		return Quantity{}, fmt.Errorf("qty must be a number, got %T", v)
	}
}

// DecodeFills reads a fills CSV in the class's schema
// (action,ticker,qty,fill_price,currency for equities;
// action,symbol,amount,fill_price_cad for crypto). All required columns must
// be present; the error names every missing one.
func DecodeFills(r io.Reader, class Class) ([]Fill, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	s := class.schema()

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: fills CSV has no header", ErrSchemaViolation)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read fills header: %w", err)
	}

	required := []string{"action", s.symbol, s.fillQty, s.fillPrice}
	if class.HasCurrency() {
		required = append(required, s.currency)
	}
	index, missing := indexColumns(header, required)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: fills CSV missing columns: %v", ErrSchemaViolation, missing)
	}

	var fills []Fill
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read fills line %d: %w", line, err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("%w: fills line %d has %d fields, header has %d",
				ErrSchemaViolation, line, len(row), len(header))
		}

		var f Fill
		if f.Action, err = ParseAction(row[index["action"]]); err != nil {
			return nil, fmt.Errorf("fills line %d: %w", line, err)
		}
		f.Instrument = NormalizeInstrument(row[index[s.symbol]])
		if f.Quantity, err = ParseQuantity(row[index[s.fillQty]]); err != nil {
			return nil, fmt.Errorf("fills line %d: bad %s: %w", line, s.fillQty, err)
		}
		if f.UnitPrice, err = ParsePrice(row[index[s.fillPrice]]); err != nil {
			return nil, fmt.Errorf("fills line %d: bad %s: %w", line, s.fillPrice, err)
		}
		if class.HasCurrency() {
			f.Currency = NormalizeInstrument(row[index[s.currency]])
		}
		if err := f.Validate(class); err != nil {
			return nil, fmt.Errorf("fills line %d: %w", line, err)
		}
		fills = append(fills, f)
	}
	return fills, nil
}
