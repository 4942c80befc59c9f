package stocks

import "errors"

// The reconciliation and ledger errors form a closed taxonomy. Callers match
// with errors.Is; the wrapped message always carries the offending instrument
// and the numeric values involved.
var (
	// ErrSchemaViolation reports required fields or columns absent from an
	// input document. The message names every missing one, not just the first.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrInvalidAction reports an action that is neither buy nor sell.
	ErrInvalidAction = errors.New("invalid action")

	// ErrNoFillsForTrade reports a trade with no fill group for its
	// (action, instrument) pair.
	ErrNoFillsForTrade = errors.New("no fills for trade")

	// ErrQuantityMismatch reports aggregated fill quantity differing from the
	// trade quantity.
	ErrQuantityMismatch = errors.New("quantity mismatch")

	// ErrCurrencyMismatch reports inconsistent currencies within a fill
	// group, or versus the existing position.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrInsufficientPosition reports a sell quantity exceeding the held
	// quantity.
	ErrInsufficientPosition = errors.New("insufficient position")

	// ErrNoSuchPosition reports a sell against an instrument with no open
	// position.
	ErrNoSuchPosition = errors.New("no such position")

	// ErrNonPositiveQuantity reports a trade or fill quantity that is zero or
	// negative.
	ErrNonPositiveQuantity = errors.New("non-positive quantity")

	// ErrZeroQuantityAggregate reports a weighted average requested over a
	// zero total quantity. This is a contract violation in the input, caught
	// before it can divide by zero.
	ErrZeroQuantityAggregate = errors.New("aggregated quantity is zero")
)
