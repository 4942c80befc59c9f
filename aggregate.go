package stocks

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// fillKey groups fills that can jointly satisfy one trade. A buy and a sell
// of the same instrument in one batch are never merged.
type fillKey struct {
	action     Action
	instrument string
}

// groupFills indexes fills by (action, instrument), preserving input order
// within each group.
func groupFills(fills []Fill) map[fillKey][]Fill {
	groups := make(map[fillKey][]Fill)
	for _, f := range fills {
		k := fillKey{action: f.Action, instrument: f.Instrument}
		groups[k] = append(groups[k], f)
	}
	return groups
}

// Aggregate sums the quantities of a fill group and computes the
// volume-weighted average execution price. It is a pure function of its
// input. The total quantity must be non-zero; a zero total would require a
// division by zero and fails fast instead.
//
// All arithmetic runs at full precision; neither result is quantized here so
// that the reconciler can compare exact values.
func Aggregate(fills []Fill) (total Quantity, vwap Price, err error) {
	var sum, weighted decimal.Decimal
	for _, f := range fills {
		sum = sum.Add(f.Quantity.value)
		weighted = weighted.Add(f.UnitPrice.Cost(f.Quantity))
	}
	if sum.IsZero() {
		instrument := ""
		if len(fills) > 0 {
			instrument = fills[0].Instrument
		}
		return Quantity{}, Price{}, fmt.Errorf("%w: cannot compute weighted price for %q", ErrZeroQuantityAggregate, instrument)
	}
	return Quantity{value: sum}, Price{value: weighted.Div(sum)}, nil
}
