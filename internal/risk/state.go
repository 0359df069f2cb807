// Package risk tracks the sign of the projected balance per household and
// month, and turns sign changes into one-shot notification events.
//
// The state machine is edge-triggered: re-evaluating the same projection
// against the same stored state emits nothing, so alerts fire once per sign
// change instead of on every recomputation.
package risk

import (
	"context"
	"fmt"

	"previsao/internal/core"
)

// BalanceState is the persisted sign of a household+month projection.
type BalanceState string

const (
	Negative    BalanceState = "NEGATIVE"
	NonNegative BalanceState = "NON_NEGATIVE"
)

// StateOf classifies a projected balance.
func StateOf(projected core.Money) BalanceState {
	if projected.IsNegative() {
		return Negative
	}
	return NonNegative
}

// Key builds the storage key for a household+month pair.
func Key(householdID string, month core.Month) string {
	return fmt.Sprintf("%s|%s", householdID, month.Key())
}

// Store persists balance states. Entries are created on first observation,
// overwritten on every re-evaluation, and never deleted.
type Store interface {
	// Get returns the stored state and whether one exists for the key.
	Get(ctx context.Context, key string) (BalanceState, bool, error)

	// Set overwrites the state for the key.
	Set(ctx context.Context, key string, state BalanceState) error
}

// EventKind distinguishes the two transition directions.
type EventKind string

const (
	EventRisk      EventKind = "risk"
	EventRecovered EventKind = "recovered"
)

// Event is a single sign-change notification. Amount carries the projected
// deficit magnitude and is only set on risk events.
type Event struct {
	Kind        EventKind
	HouseholdID string
	MonthKey    string
	Amount      core.Money
}
