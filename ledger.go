package stocks

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Position is an open holding of one instrument.
//
// AvgCost is the volume-weighted average of every unit acquired into the
// current open lot. Sells reduce the quantity and leave AvgCost untouched;
// realized gain or loss is not tracked here.
type Position struct {
	Instrument string
	Quantity   Quantity
	AvgCost    Price
	Currency   string // fixed at first acquisition; "" for classes without currency
}

// Ledger maps instruments to open positions for one asset class.
//
// A ledger lives for one invocation: decoded from a prior snapshot, mutated
// in memory by Apply, then encoded back out. Positions are handed out by
// value, never aliased, so callers cannot see or cause a partial update.
type Ledger struct {
	class     Class
	positions map[string]Position
}

// NewLedger creates an empty ledger for the given class.
func NewLedger(class Class) *Ledger {
	return &Ledger{
		class:     class,
		positions: make(map[string]Position),
	}
}

// Class returns the asset class this ledger tracks.
func (l *Ledger) Class() Class { return l.class }

// Len returns the number of open positions.
func (l *Ledger) Len() int { return len(l.positions) }

// Position returns a copy of the position for instrument, if open.
func (l *Ledger) Position(instrument string) (Position, bool) {
	p, ok := l.positions[NormalizeInstrument(instrument)]
	return p, ok
}

// Positions iterates over open positions in ascending instrument order, the
// same order snapshots are written in.
func (l *Ledger) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, instrument := range slices.Sorted(maps.Keys(l.positions)) {
			if !yield(l.positions[instrument]) {
				return
			}
		}
	}
}

// Equal reports whether two ledgers hold the same positions with equal
// quantities, costs and currencies.
func (l *Ledger) Equal(o *Ledger) bool {
	if l.class != o.class || len(l.positions) != len(o.positions) {
		return false
	}
	for instrument, p := range l.positions {
		q, ok := o.positions[instrument]
		if !ok || !p.Quantity.Equal(q.Quantity) || !p.AvgCost.Equal(q.AvgCost) || p.Currency != q.Currency {
			return false
		}
	}
	return true
}

func (l *Ledger) clone() *Ledger {
	return &Ledger{class: l.class, positions: maps.Clone(l.positions)}
}

// insert sets a position, for decoding snapshots. Instrument keys are unique.
func (l *Ledger) insert(p Position) error {
	p.Instrument = NormalizeInstrument(p.Instrument)
	if _, ok := l.positions[p.Instrument]; ok {
		return fmt.Errorf("%w: duplicate instrument %s", ErrSchemaViolation, p.Instrument)
	}
	l.positions[p.Instrument] = p
	return nil
}

// Apply runs a whole batch of reconciled operations, all-or-nothing. The
// operations run in the given order against a scratch copy; only if every one
// succeeds is the result committed, so a failing batch leaves the ledger
// exactly as it was.
func (l *Ledger) Apply(ops ...Operation) error {
	scratch := l.clone()
	for _, op := range ops {
		var err error
		switch op.Action {
		case Buy:
			err = scratch.buy(op)
		case Sell:
			err = scratch.sell(op)
		default:
			err = fmt.Errorf("%w: %q for %s", ErrInvalidAction, string(op.Action), op.Instrument)
		}
		if err != nil {
			return err
		}
	}
	l.positions = scratch.positions
	return nil
}

// buy opens a position at the fill price, or blends the fill into the
// weighted average cost of the existing one. Quantity and average cost are
// re-quantized only after the exact arithmetic.
func (l *Ledger) buy(op Operation) error {
	if !op.Quantity.IsPositive() {
		return fmt.Errorf("%w: buy %s qty %s", ErrNonPositiveQuantity, op.Instrument, op.Quantity)
	}

	p, ok := l.positions[op.Instrument]
	if !ok {
		l.positions[op.Instrument] = Position{
			Instrument: op.Instrument,
			Quantity:   op.Quantity.Quantize(),
			AvgCost:    op.UnitPrice.Quantize(),
			Currency:   op.Currency,
		}
		return nil
	}

	if l.class.HasCurrency() && p.Currency != op.Currency {
		return fmt.Errorf("%w: position %s is %s, buy is %s",
			ErrCurrencyMismatch, op.Instrument, p.Currency, op.Currency)
	}

	newQty := p.Quantity.Add(op.Quantity)
	// (q0*avg0 + q*p) / (q0+q), exact until the final rounding.
	newCost := p.AvgCost.Cost(p.Quantity).Add(op.UnitPrice.Cost(op.Quantity)).Div(newQty.value)

	p.Quantity = newQty.Quantize()
	p.AvgCost = Price{value: newCost}.Quantize()
	l.positions[op.Instrument] = p
	return nil
}

// sell reduces the position, removing it entirely when the quantity reaches
// zero. The average cost of the remainder is unchanged.
func (l *Ledger) sell(op Operation) error {
	if !op.Quantity.IsPositive() {
		return fmt.Errorf("%w: sell %s qty %s", ErrNonPositiveQuantity, op.Instrument, op.Quantity)
	}

	p, ok := l.positions[op.Instrument]
	if !ok {
		return fmt.Errorf("%w: selling %s", ErrNoSuchPosition, op.Instrument)
	}
	if op.Quantity.GreaterThan(p.Quantity) {
		return fmt.Errorf("%w: sell qty %s exceeds holding %s for %s",
			ErrInsufficientPosition, op.Quantity, p.Quantity, op.Instrument)
	}

	p.Quantity = p.Quantity.Sub(op.Quantity).Quantize()
	if p.Quantity.IsZero() {
		delete(l.positions, op.Instrument)
		return nil
	}
	l.positions[op.Instrument] = p
	return nil
}
