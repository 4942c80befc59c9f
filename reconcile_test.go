package stocks

import (
	"errors"
	"strings"
	"testing"
)

func TestReconcile_CarriesWeightedPrice(t *testing.T) {
	trades := []Trade{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "10")}}
	fills := []Fill{
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "6"), UnitPrice: price(t, "100"), Currency: "CAD"},
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "4"), UnitPrice: price(t, "110"), Currency: "CAD"},
	}

	ops, err := Reconcile(Equity, trades, fills)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d operations, want 1", len(ops))
	}
	op := ops[0]
	if got := op.UnitPrice.String(); got != "104.0000" {
		t.Errorf("effective unit price = %s, want 104.0000", got)
	}
	if op.Currency != "CAD" {
		t.Errorf("currency = %s, want CAD", op.Currency)
	}
}

func TestReconcile_NoFillsForTrade(t *testing.T) {
	trades := []Trade{{Action: Sell, Instrument: "AAA", Quantity: qty(t, "1")}}
	fills := []Fill{
		// Same instrument, opposite action: must not satisfy the sell.
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1"), UnitPrice: price(t, "100"), Currency: "CAD"},
	}

	_, err := Reconcile(Equity, trades, fills)
	if !errors.Is(err, ErrNoFillsForTrade) {
		t.Fatalf("got %v, want ErrNoFillsForTrade", err)
	}
}

func TestReconcile_QuantityMismatch(t *testing.T) {
	trades := []Trade{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "10")}}
	fills := []Fill{
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "9.999999"), UnitPrice: price(t, "100"), Currency: "CAD"},
	}

	_, err := Reconcile(Equity, trades, fills)
	if !errors.Is(err, ErrQuantityMismatch) {
		t.Fatalf("got %v, want ErrQuantityMismatch", err)
	}
	// The diagnostic must carry both quantities.
	if msg := err.Error(); !strings.Contains(msg, "9.999999") || !strings.Contains(msg, "10.000000") {
		t.Errorf("error %q does not name both quantities", msg)
	}
}

func TestReconcile_InconsistentFillCurrencies(t *testing.T) {
	trades := []Trade{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "10")}}
	fills := []Fill{
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "6"), UnitPrice: price(t, "100"), Currency: "USD"},
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "4"), UnitPrice: price(t, "110"), Currency: "CAD"},
	}

	_, err := Reconcile(Equity, trades, fills)
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("got %v, want ErrCurrencyMismatch", err)
	}
}

func TestReconcile_EquivalentScalesAreEqual(t *testing.T) {
	// 10 and 10.000000 are the same quantity; scaling must not fabricate a
	// mismatch.
	trades := []Trade{{Action: Buy, Instrument: "BTC", Quantity: qty(t, "10.000000")}}
	fills := []Fill{
		{Action: Buy, Instrument: "BTC", Quantity: qty(t, "10"), UnitPrice: price(t, "90000")},
	}

	if _, err := Reconcile(Crypto, trades, fills); err != nil {
		t.Fatalf("Reconcile failed on equal quantities at different scales: %v", err)
	}
}

func TestReconcile_RejectsBadInputs(t *testing.T) {
	cases := []struct {
		name   string
		trades []Trade
		fills  []Fill
		want   error
	}{
		{
			name:   "zero trade quantity",
			trades: []Trade{{Action: Buy, Instrument: "AAA", Quantity: Q(0)}},
			fills:  []Fill{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1"), UnitPrice: price(t, "1"), Currency: "CAD"}},
			want:   ErrNonPositiveQuantity,
		},
		{
			name:   "negative fill quantity",
			trades: []Trade{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1")}},
			fills:  []Fill{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "-1"), UnitPrice: price(t, "1"), Currency: "CAD"}},
			want:   ErrNonPositiveQuantity,
		},
		{
			name:   "bad action",
			trades: []Trade{{Action: Action("hold"), Instrument: "AAA", Quantity: qty(t, "1")}},
			fills:  []Fill{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1"), UnitPrice: price(t, "1"), Currency: "CAD"}},
			want:   ErrInvalidAction,
		},
		{
			name:   "missing fill currency",
			trades: []Trade{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1")}},
			fills:  []Fill{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1"), UnitPrice: price(t, "1")}},
			want:   ErrSchemaViolation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Reconcile(Equity, tc.trades, tc.fills)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

// Unclaimed fill groups are tolerated: the trades list is the source of
// intent, and the fills export may contain unrelated slices.
func TestReconcile_IgnoresUnclaimedFills(t *testing.T) {
	trades := []Trade{{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1")}}
	fills := []Fill{
		{Action: Buy, Instrument: "AAA", Quantity: qty(t, "1"), UnitPrice: price(t, "10"), Currency: "CAD"},
		{Action: Buy, Instrument: "ZZZ", Quantity: qty(t, "5"), UnitPrice: price(t, "1"), Currency: "CAD"},
	}

	ops, err := Reconcile(Equity, trades, fills)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(ops) != 1 || ops[0].Instrument != "AAA" {
		t.Fatalf("ops = %v, want the single AAA buy", ops)
	}
}
