package forecast

import (
	"time"

	"previsao/internal/core"
)

// History is the variable-spend baseline derived from the three full
// calendar months preceding the reference month.
//
// MonthsCount is the number of months that actually contained confirmed
// variable expenses; the average divides by that count, never by three.
// Zero months is a valid state, not an error: the baseline is simply zero.
type History struct {
	VariableAvg core.Money
	MonthsCount int
}

// HistoryMonths is how many full months back the aggregator looks.
const HistoryMonths = 3

// HistoryRange returns the half-open interval [start of month-3, start of
// month) that historical transactions must fall in.
func HistoryRange(month core.Month) (from, to time.Time) {
	return month.AddMonths(-HistoryMonths).Start(), month.Start()
}

// AverageVariableSpend buckets confirmed variable expenses by calendar month
// of their entry date and averages the bucket sums.
func AverageVariableSpend(txs []core.Transaction, month core.Month) History {
	from, to := HistoryRange(month)

	buckets := make(map[string]int64)
	for _, tx := range txs {
		if tx.Kind != core.Expense || tx.Status != core.Confirmed || tx.ExpenseType != core.Variable {
			continue
		}
		d := tx.Date.Time
		if d.Before(from) || !d.Before(to) {
			continue
		}
		buckets[core.MonthOf(d).Key()] += tx.Amount.Cents
	}

	if len(buckets) == 0 {
		return History{}
	}

	var total int64
	for _, sum := range buckets {
		total += sum
	}
	return History{
		VariableAvg: core.Money{Cents: divRound(total, int64(len(buckets)))},
		MonthsCount: len(buckets),
	}
}

// divRound divides non-negative cents with half-up rounding.
func divRound(a, b int64) int64 {
	return (a + b/2) / b
}
