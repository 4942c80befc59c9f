// Package stocks maintains weighted-average-cost position ledgers for two
// small books, equities and crypto, reconciling intended trades against
// executed fills and persisting deterministic CSV snapshots.
//
// The engine is deliberately small and strict: every trade must be exactly
// covered by its fills, every batch applies atomically or not at all, and
// all money math runs on exact decimals, rounded half-up only at the final
// stored value (6 fractional digits for quantities, 4 for prices).
//
// The cmd package wraps the engine into the weekly workflow: apply a trades
// document, record a week's fills and deposit, inspect holdings and history.
package stocks
