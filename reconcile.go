package stocks

import "fmt"

// Reconcile matches every trade to its aggregated fills and returns one
// priced Operation per trade, in trade order.
//
// A trade with no fill group fails with ErrNoFillsForTrade. The group's total
// quantity must equal the trade quantity exactly, on unrounded values, so a
// partial or over-fill is never silently accepted. For currency-tracked
// classes, all fills of one group must agree on the currency.
//
// Fills no trade claims are left alone: the fills document may carry slices
// of other activity, and the trade list is the source of intent.
//
// Any failure aborts the whole batch; no operations are returned alongside an
// error.
func Reconcile(class Class, trades []Trade, fills []Fill) ([]Operation, error) {
	for _, f := range fills {
		if err := f.Validate(class); err != nil {
			return nil, err
		}
	}

	groups := groupFills(fills)
	ops := make([]Operation, 0, len(trades))

	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return nil, err
		}

		group, ok := groups[fillKey{action: t.Action, instrument: t.Instrument}]
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrNoFillsForTrade, t.Action, t.Instrument)
		}

		total, vwap, err := Aggregate(group)
		if err != nil {
			return nil, err
		}
		if !total.Equal(t.Quantity) {
			return nil, fmt.Errorf("%w: fills qty %s != trade qty %s for %s",
				ErrQuantityMismatch, total, t.Quantity, t.Instrument)
		}

		op := Operation{
			Action:     t.Action,
			Instrument: t.Instrument,
			Quantity:   t.Quantity,
			UnitPrice:  vwap,
		}
		if class.HasCurrency() {
			cur := group[0].Currency
			for _, f := range group[1:] {
				if f.Currency != cur {
					return nil, fmt.Errorf("%w: fills for %s %s report both %s and %s",
						ErrCurrencyMismatch, t.Action, t.Instrument, cur, f.Currency)
				}
			}
			op.Currency = cur
		}
		ops = append(ops, op)
	}
	return ops, nil
}
