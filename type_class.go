package stocks

import "fmt"

// Class identifies which book an input or ledger belongs to. The two classes
// share one engine; the class only decides whether currency is tracked per
// position and which column names the flat files use.
type Class int

const (
	// Equity positions carry a currency, fixed at first acquisition.
	Equity Class = iota
	// Crypto positions are kept in a single implicit CAD book, no currency
	// column.
	Crypto
)

func (c Class) String() string {
	switch c {
	case Equity:
		return "equity"
	case Crypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// ParseClass parses a string into a Class.
func ParseClass(s string) (Class, error) {
	switch s {
	case "equity":
		return Equity, nil
	case "crypto":
		return Crypto, nil
	default:
		return 0, fmt.Errorf("unknown asset class: %q", s)
	}
}

// HasCurrency reports whether positions of this class track a currency.
func (c Class) HasCurrency() bool { return c == Equity }

// schema describes the column and key names of the class's flat files. The
// names are those of the historical CSV/JSON documents, kept so existing
// books remain readable.
type schema struct {
	symbol    string // instrument column in holdings and fills, JSON key in trades
	quantity  string // quantity column in holdings
	cost      string // average cost column in holdings
	currency  string // currency column, "" when the class has none
	fillQty   string // quantity column in fills
	fillPrice string // unit price column in fills
}

func (c Class) schema() schema {
	if c == Equity {
		return schema{
			symbol:    "ticker",
			quantity:  "shares",
			cost:      "avg_cost",
			currency:  "currency",
			fillQty:   "qty",
			fillPrice: "fill_price",
		}
	}
	return schema{
		symbol:    "symbol",
		quantity:  "amount",
		cost:      "avg_cost_cad",
		fillQty:   "amount",
		fillPrice: "fill_price_cad",
	}
}
