// Package forecast implements the deterministic end-of-month balance
// projection: the month time window, the historical variable-spend average,
// and the future balance engine. Everything here is a pure function over
// already-fetched data.
package forecast

import (
	"time"

	"previsao/internal/core"
)

// MonthWindow positions "today" inside the reference month.
//
// A month that does not contain today (past or future) is treated as fully
// elapsed, so projections for it show a completed-month view rather than a
// partial one. DaysElapsed + DaysRemaining always equals DaysInMonth.
type MonthWindow struct {
	Month         core.Month
	DaysElapsed   int
	DaysInMonth   int
	DaysRemaining int
}

// NewMonthWindow derives the elapsed/remaining day counts for month relative
// to today. DaysElapsed is 1-indexed inclusive when the month contains today.
func NewMonthWindow(month core.Month, today time.Time) MonthWindow {
	days := month.Days()
	w := MonthWindow{Month: month, DaysInMonth: days}

	if !month.Contains(today) {
		w.DaysElapsed = days
		w.DaysRemaining = 0
		return w
	}

	w.DaysElapsed = today.Day()
	w.DaysRemaining = days - w.DaysElapsed
	return w
}
