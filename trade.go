package stocks

import (
	"fmt"
	"strings"
)

// NormalizeInstrument canonicalizes a ticker or coin symbol: trimmed, upper
// case. Instrument equality is exact string match after normalization.
func NormalizeInstrument(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Trade is an intended transaction, independent of execution price.
type Trade struct {
	Action     Action
	Instrument string
	Quantity   Quantity
}

// Validate checks the trade fields.
func (t Trade) Validate() error {
	if t.Action != Buy && t.Action != Sell {
		return fmt.Errorf("%w: %q in trade for %s", ErrInvalidAction, string(t.Action), t.Instrument)
	}
	if t.Instrument == "" {
		return fmt.Errorf("%w: trade has no instrument", ErrSchemaViolation)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: trade %s %s qty %s", ErrNonPositiveQuantity, t.Action, t.Instrument, t.Quantity)
	}
	return nil
}

// Fill is a single executed slice of an order. Several fills may jointly
// satisfy one trade.
type Fill struct {
	Action     Action
	Instrument string
	Quantity   Quantity
	UnitPrice  Price
	Currency   string // set for classes that track currency
}

// Validate checks the fill fields. For currency-tracked classes the currency
// must be a known ISO code.
func (f Fill) Validate(class Class) error {
	if f.Action != Buy && f.Action != Sell {
		return fmt.Errorf("%w: %q in fill for %s", ErrInvalidAction, string(f.Action), f.Instrument)
	}
	if f.Instrument == "" {
		return fmt.Errorf("%w: fill has no instrument", ErrSchemaViolation)
	}
	if !f.Quantity.IsPositive() {
		return fmt.Errorf("%w: fill %s %s qty %s", ErrNonPositiveQuantity, f.Action, f.Instrument, f.Quantity)
	}
	if f.UnitPrice.IsNegative() {
		return fmt.Errorf("fill %s %s has negative price %s", f.Action, f.Instrument, f.UnitPrice)
	}
	if class.HasCurrency() {
		if f.Currency == "" {
			return fmt.Errorf("%w: fill %s %s has no currency", ErrSchemaViolation, f.Action, f.Instrument)
		}
		if !KnownCurrency(f.Currency) {
			return fmt.Errorf("fill %s %s has unknown currency %q", f.Action, f.Instrument, f.Currency)
		}
	}
	return nil
}

// Operation is a reconciled, priced mutation of the ledger. It is the only
// form the ledger accepts.
type Operation struct {
	Action     Action
	Instrument string
	Quantity   Quantity
	UnitPrice  Price  // volume-weighted average over the trade's fills
	Currency   string // "" for classes without currency tracking
}

func (o Operation) String() string {
	if o.Currency != "" {
		return fmt.Sprintf("%s %s %s @ %s %s", o.Action, o.Instrument, o.Quantity, o.UnitPrice, o.Currency)
	}
	return fmt.Sprintf("%s %s %s @ %s", o.Action, o.Instrument, o.Quantity, o.UnitPrice)
}
