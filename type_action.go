package stocks

import (
	"fmt"
	"strings"
)

// Action is the side of a trade or fill.
type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// ParseAction parses a buy/sell action, case-insensitively.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

func (a Action) String() string { return string(a) }
