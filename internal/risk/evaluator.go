package risk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"previsao/internal/core"
)

// Evaluator runs the balance-state transition check against a Store.
//
// Store failures never fail an evaluation: an unavailable store degrades to
// "no transition detected". The read-then-write is not transactional; under
// two rapid concurrent evaluations both may read the same prior state and
// emit a duplicate, and the final write is last-write-wins.
type Evaluator struct {
	store Store
}

func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// Evaluate compares the current projection sign against the stored state for
// the household+month pair and returns a transition event, or nil.
//
// No stored state means no prior observation: the current state is persisted
// as the baseline and nothing is emitted. The stored state is always
// overwritten afterwards, whether or not an event fired, which makes repeated
// identical observations a no-op.
func (e *Evaluator) Evaluate(ctx context.Context, householdID string, month core.Month, projected core.Money) (*Event, error) {
	if strings.TrimSpace(householdID) == "" {
		return nil, fmt.Errorf("household id: %w", core.ErrInvalidInput)
	}
	if err := month.Validate(); err != nil {
		return nil, fmt.Errorf("month: %w", err)
	}

	key := Key(householdID, month)
	current := StateOf(projected)

	previous, exists, err := e.store.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Balance state read failed, treating as first observation",
			"key", key, "error", err)
		exists = false
	}

	var event *Event
	if exists && previous != current {
		switch current {
		case Negative:
			event = &Event{
				Kind:        EventRisk,
				HouseholdID: householdID,
				MonthKey:    month.Key(),
				Amount:      projected.Abs(),
			}
		case NonNegative:
			event = &Event{
				Kind:        EventRecovered,
				HouseholdID: householdID,
				MonthKey:    month.Key(),
			}
		}
	}

	if err := e.store.Set(ctx, key, current); err != nil {
		slog.WarnContext(ctx, "Balance state write failed",
			"key", key, "state", current, "error", err)
	}

	return event, nil
}
