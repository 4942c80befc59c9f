package stocks

import "testing"

// qty parses a quantity literal or fails the test.
func qty(t *testing.T, s string) Quantity {
	t.Helper()
	q, err := ParseQuantity(s)
	if err != nil {
		t.Fatalf("bad quantity literal %q: %v", s, err)
	}
	return q
}

// price parses a price literal or fails the test.
func price(t *testing.T, s string) Price {
	t.Helper()
	p, err := ParsePrice(s)
	if err != nil {
		t.Fatalf("bad price literal %q: %v", s, err)
	}
	return p
}

// buyOp is shorthand for a reconciled buy operation.
func buyOp(t *testing.T, instrument, quantity, unitPrice, currency string) Operation {
	t.Helper()
	return Operation{
		Action:     Buy,
		Instrument: instrument,
		Quantity:   qty(t, quantity),
		UnitPrice:  price(t, unitPrice),
		Currency:   currency,
	}
}

// sellOp is shorthand for a reconciled sell operation.
func sellOp(t *testing.T, instrument, quantity, unitPrice, currency string) Operation {
	t.Helper()
	return Operation{
		Action:     Sell,
		Instrument: instrument,
		Quantity:   qty(t, quantity),
		UnitPrice:  price(t, unitPrice),
		Currency:   currency,
	}
}
