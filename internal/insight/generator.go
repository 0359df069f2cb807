package insight

import (
	"math"
	"sort"
	"time"

	"previsao/internal/core"
	"previsao/internal/forecast"
)

// Inputs is everything the generator looks at. Transactions are the
// reference month's entries; Today anchors overdue and days-in-red checks.
type Inputs struct {
	Projection   forecast.Result
	Totals       forecast.ProjectionTotals
	Transactions []core.Transaction
	Month        core.Month
	Today        time.Time
}

// Generate evaluates every insight rule independently and returns the fired
// insights sorted by severity (critical, warning, info). Insights of equal
// severity keep generation order.
//
// When finances are healthy (projected balance non-negative and comfortably
// above 20% of pending expenses) the result is empty. No noise.
func Generate(in Inputs) []Insight {
	if !atRisk(in.Totals) {
		return nil
	}

	var out []Insight
	rules := []func(Inputs) *Insight{
		monthClosesNegative,
		daysInRed,
		postponeBenefit,
		pendingIncomeHelps,
		overduePayments,
		largestPendingExpense,
	}
	for _, rule := range rules {
		if ins := rule(in); ins != nil {
			out = append(out, *ins)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.rank() < out[j].Severity.rank()
	})
	return out
}

// atRisk is the generation gate: a negative close, or a thin margin under
// 20% of what is still due this month.
func atRisk(t forecast.ProjectionTotals) bool {
	if t.ProjectedBalance.IsNegative() {
		return true
	}
	return t.PendingExpenses.Cents > 0 && t.ProjectedBalance.Cents*5 < t.PendingExpenses.Cents
}

func monthClosesNegative(in Inputs) *Insight {
	if !in.Totals.ProjectedBalance.IsNegative() {
		return nil
	}
	return &Insight{
		ID:         string(MonthClosesNegative),
		Type:       MonthClosesNegative,
		Severity:   SeverityCritical,
		MessageKey: "insights.month_closes_negative",
		Params: map[string]any{
			"amount": in.Totals.ProjectedBalance.Abs().Cents,
		},
		ActionHintKey: "insights.hint.review_spending",
	}
}

func daysInRed(in Inputs) *Insight {
	if !in.Totals.RealizedBalance.IsNegative() {
		return nil
	}
	var earliest core.Date
	found := false
	for _, tx := range in.Transactions {
		if tx.Kind != core.Expense || tx.Status != core.Confirmed {
			continue
		}
		if !found || tx.Date.Before(earliest.Time) {
			earliest = tx.Date
			found = true
		}
	}
	if !found {
		return nil
	}
	days := daysBetween(earliest.Time, in.Today)
	if days <= 0 {
		return nil
	}
	return &Insight{
		ID:         string(DaysInRed),
		Type:       DaysInRed,
		Severity:   SeverityWarning,
		MessageKey: "insights.days_in_red",
		Params: map[string]any{
			"days": days,
		},
	}
}

func postponeBenefit(in Inputs) *Insight {
	if !in.Totals.ProjectedBalance.IsNegative() {
		return nil
	}
	largest, ok := largestPlannedExpense(in.Transactions)
	if !ok {
		return nil
	}
	afterPostpone := in.Totals.ProjectedBalance.Cents + largest.Amount.Cents
	severity := SeverityWarning
	if afterPostpone >= 0 {
		severity = SeverityInfo
	}
	return &Insight{
		ID:         string(PostponeBenefit),
		Type:       PostponeBenefit,
		Severity:   severity,
		MessageKey: "insights.postpone_benefit",
		Params: map[string]any{
			"description": largest.Description,
			"amount":      largest.Amount.Cents,
			"deficit":     core.Money{Cents: afterPostpone}.Abs().Cents,
		},
		ActionHintKey: "insights.hint.postpone_expense",
	}
}

func pendingIncomeHelps(in Inputs) *Insight {
	if in.Totals.PendingIncome.Cents <= 0 || !in.Totals.ProjectedBalance.IsNegative() {
		return nil
	}
	withIncome := in.Totals.RealizedBalance.Cents + in.Totals.PendingIncome.Cents - in.Totals.PendingExpenses.Cents
	key := "insights.pending_income_partial"
	if withIncome >= 0 {
		key = "insights.pending_income_covers"
	}
	return &Insight{
		ID:         string(PendingIncomeHelps),
		Type:       PendingIncomeHelps,
		Severity:   SeverityInfo,
		MessageKey: key,
		Params: map[string]any{
			"amount":  in.Totals.PendingIncome.Cents,
			"balance": withIncome,
		},
	}
}

func overduePayments(in Inputs) *Insight {
	var count int
	var total int64
	for _, tx := range in.Transactions {
		if tx.Overdue(in.Today) {
			count++
			total += tx.Amount.Cents
		}
	}
	if count == 0 {
		return nil
	}
	key := "insights.overdue_payments"
	if count == 1 {
		key = "insights.overdue_payment"
	}
	return &Insight{
		ID:         string(OverduePayments),
		Type:       OverduePayments,
		Severity:   SeverityCritical,
		MessageKey: key,
		Params: map[string]any{
			"count": count,
			"total": total,
		},
		ActionHintKey: "insights.hint.settle_overdue",
	}
}

func largestPendingExpense(in Inputs) *Insight {
	if in.Totals.ProjectedBalance.IsNegative() {
		return nil
	}
	largest, ok := largestPlannedExpense(in.Transactions)
	if !ok {
		return nil
	}
	// fires only when the single expense eats more than half the projection
	if largest.Amount.Cents*2 <= in.Totals.ProjectedBalance.Cents {
		return nil
	}
	if in.Totals.PendingExpenses.Cents <= 0 {
		return nil
	}
	pct := int(math.Round(float64(largest.Amount.Cents) / float64(in.Totals.PendingExpenses.Cents) * 100))
	return &Insight{
		ID:         string(LargestPendingExpense),
		Type:       LargestPendingExpense,
		Severity:   SeverityInfo,
		MessageKey: "insights.largest_pending_expense",
		Params: map[string]any{
			"description": largest.Description,
			"amount":      largest.Amount.Cents,
			"percentage":  pct,
		},
	}
}

// largestPlannedExpense picks the biggest planned expense, first-seen wins
// ties.
func largestPlannedExpense(txs []core.Transaction) (core.Transaction, bool) {
	var best core.Transaction
	found := false
	for _, tx := range txs {
		if tx.Kind != core.Expense || tx.Status != core.Planned {
			continue
		}
		if !found || tx.Amount.Cents > best.Amount.Cents {
			best = tx
			found = true
		}
	}
	return best, found
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
