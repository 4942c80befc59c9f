package stocks

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// PriceScale is the fixed number of fractional digits kept for unit prices
// and average costs.
const PriceScale = 4

// Price is a per-unit monetary value. Like Quantity, arithmetic is exact and
// only Quantize rounds, to PriceScale digits, half-up.
type Price struct {
	value decimal.Decimal
}

// P creates a Price from any numeric type.
func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Price {
	return Price{value: newDecimal(value)}
}

// ParsePrice parses the decimal representation of a price.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	return Price{value: d}, nil
}

func (p Price) Equal(o Price) bool { return p.value.Equal(o.value) }
func (p Price) IsZero() bool       { return p.value.IsZero() }
func (p Price) IsNegative() bool   { return p.value.IsNegative() }
func (p Price) IsPositive() bool   { return p.value.IsPositive() }

// Cost returns the exact total cost of q units at this price.
func (p Price) Cost(q Quantity) decimal.Decimal { return p.value.Mul(q.value) }

// Quantize rounds the price to PriceScale fractional digits, half-up.
func (p Price) Quantize() Price { return Price{value: p.value.Round(PriceScale)} }

// String renders the price with the full fixed scale, e.g. "103.3333".
func (p Price) String() string { return p.value.StringFixed(PriceScale) }

// InexactFloat64 reports the price as a float64 for display records only;
// ledger math never goes through floats.
func (p Price) InexactFloat64() float64 { return p.value.InexactFloat64() }

// MarshalJSON implements the json.Marshaler interface for Price.
func (p Price) MarshalJSON() ([]byte, error) { return p.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface for Price.
func (p *Price) UnmarshalJSON(data []byte) error { return p.value.UnmarshalJSON(data) }

// KnownCurrency reports whether code is an ISO currency known to the currency
// table (e.g. "CAD", "USD").
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
