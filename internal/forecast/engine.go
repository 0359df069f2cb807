package forecast

import (
	"fmt"

	"previsao/internal/core"
)

// Inputs feed the future balance engine. CurrentBalance may be negative;
// the remaining amounts are non-negative magnitudes.
type Inputs struct {
	CurrentBalance             core.Money
	PendingFixedExpenses       core.Money
	ConfirmedVariableThisMonth core.Money
	HistoricalVariableAvg      core.Money
	DaysElapsed                int
	DaysInMonth                int
}

// Result is the engine output. It is a pure function of Inputs: identical
// inputs always yield an identical result, which the risk notification
// state machine relies on for meaningful transition detection.
type Result struct {
	ProjectedBalance           core.Money
	DailyRunRate               core.Money
	ProjectedRemainingVariable core.Money
	HistoricalVariableAvg      core.Money
	DaysElapsed                int
	DaysInMonth                int
	DaysRemaining              int
}

// Compute projects the end-of-month balance.
//
// The daily run-rate prefers the actual in-month pace once at least one day
// has elapsed; only a fresh month (daysElapsed = 0) falls back to the
// historical daily average. Arithmetic stays in integer cents, multiplying
// before dividing, with half-up rounding.
func Compute(in Inputs) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	remaining := in.DaysInMonth - in.DaysElapsed

	var rate, projectedRemaining int64
	if in.DaysElapsed > 0 {
		rate = divRound(in.ConfirmedVariableThisMonth.Cents, int64(in.DaysElapsed))
		projectedRemaining = divRound(in.ConfirmedVariableThisMonth.Cents*int64(remaining), int64(in.DaysElapsed))
	} else {
		rate = divRound(in.HistoricalVariableAvg.Cents, int64(in.DaysInMonth))
		projectedRemaining = divRound(in.HistoricalVariableAvg.Cents*int64(remaining), int64(in.DaysInMonth))
	}

	projected := in.CurrentBalance.Cents - in.PendingFixedExpenses.Cents - projectedRemaining

	return Result{
		ProjectedBalance:           core.Money{Cents: projected},
		DailyRunRate:               core.Money{Cents: rate},
		ProjectedRemainingVariable: core.Money{Cents: projectedRemaining},
		HistoricalVariableAvg:      in.HistoricalVariableAvg,
		DaysElapsed:                in.DaysElapsed,
		DaysInMonth:                in.DaysInMonth,
		DaysRemaining:              remaining,
	}, nil
}

func validate(in Inputs) error {
	if in.DaysInMonth <= 0 {
		return fmt.Errorf("days in month %d: %w", in.DaysInMonth, core.ErrInvalidInput)
	}
	if in.DaysElapsed < 0 || in.DaysElapsed > in.DaysInMonth {
		return fmt.Errorf("days elapsed %d of %d: %w", in.DaysElapsed, in.DaysInMonth, core.ErrInvalidInput)
	}
	if in.PendingFixedExpenses.IsNegative() || in.ConfirmedVariableThisMonth.IsNegative() || in.HistoricalVariableAvg.IsNegative() {
		return fmt.Errorf("negative expense magnitude: %w", core.ErrInvalidInput)
	}
	return nil
}
