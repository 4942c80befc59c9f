package stocks

import (
	"errors"
	"testing"
)

func TestAggregate_WeightsPartialFills(t *testing.T) {
	fills := []Fill{
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "6"), UnitPrice: price(t, "100"), Currency: "CAD"},
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "4"), UnitPrice: price(t, "110"), Currency: "CAD"},
	}

	total, vwap, err := Aggregate(fills)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if got := total.String(); got != "10.000000" {
		t.Errorf("total = %s, want 10.000000", got)
	}
	// (6*100 + 4*110) / 10 = 104
	if got := vwap.String(); got != "104.0000" {
		t.Errorf("vwap = %s, want 104.0000", got)
	}
}

// The weighted price is computed on unrounded values; a fractional aggregate
// like 3 coins at one third of a dollar must not accumulate rounding error.
func TestAggregate_ExactIntermediateArithmetic(t *testing.T) {
	fills := []Fill{
		{Action: Buy, Instrument: "ADA", Quantity: qty(t, "1"), UnitPrice: price(t, "0.3333")},
		{Action: Buy, Instrument: "ADA", Quantity: qty(t, "2"), UnitPrice: price(t, "0.3334")},
	}

	_, vwap, err := Aggregate(fills)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	// (0.3333 + 2*0.3334)/3 = 0.333366..., half-up at scale 4 gives 0.3334.
	if got := vwap.Quantize().String(); got != "0.3334" {
		t.Errorf("vwap = %s, want 0.3334", got)
	}
}

func TestAggregate_ZeroQuantityFailsFast(t *testing.T) {
	_, _, err := Aggregate(nil)
	if !errors.Is(err, ErrZeroQuantityAggregate) {
		t.Fatalf("empty group: got %v, want ErrZeroQuantityAggregate", err)
	}
}

func TestGroupFills_NeverMergesOppositeActions(t *testing.T) {
	fills := []Fill{
		{Action: Buy, Instrument: "BTC", Quantity: qty(t, "1"), UnitPrice: price(t, "90000")},
		{Action: Sell, Instrument: "BTC", Quantity: qty(t, "1"), UnitPrice: price(t, "91000")},
	}

	groups := groupFills(fills)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (buy and sell must stay separate)", len(groups))
	}
	if got := len(groups[fillKey{action: Buy, instrument: "BTC"}]); got != 1 {
		t.Errorf("buy group has %d fills, want 1", got)
	}
}
