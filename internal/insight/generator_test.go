package insight

import (
	"testing"
	"time"

	"previsao/internal/core"
	"previsao/internal/forecast"
)

var today = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func baseInputs(projected, realized, pendingExp, pendingInc int64, txs []core.Transaction) Inputs {
	return Inputs{
		Totals: forecast.ProjectionTotals{
			ProjectedBalance: core.Money{Cents: projected},
			RealizedBalance:  core.Money{Cents: realized},
			PendingExpenses:  core.Money{Cents: pendingExp},
			PendingIncome:    core.Money{Cents: pendingInc},
		},
		Transactions: txs,
		Month:        core.Month{Year: 2026, Month: time.August},
		Today:        today,
	}
}

func plannedExpense(desc string, cents int64) core.Transaction {
	return core.Transaction{
		HouseholdID: "h1",
		Date:        core.NewDate(2026, 8, 20),
		Amount:      core.Money{Cents: cents},
		Kind:        core.Expense,
		Status:      core.Planned,
		Description: desc,
	}
}

func TestGenerateHealthyGateReturnsEmpty(t *testing.T) {
	// projected >= 0 and pending*0.2 <= projected
	cases := []struct {
		projected, pending int64
	}{
		{10000, 15000},
		{0, 0},
		{50000, 100000},
	}
	for _, tc := range cases {
		in := baseInputs(tc.projected, tc.projected, tc.pending, 0,
			[]core.Transaction{plannedExpense("rent", tc.pending)})
		if got := Generate(in); len(got) != 0 {
			t.Fatalf("projected=%d pending=%d: expected empty, got %d insights",
				tc.projected, tc.pending, len(got))
		}
	}
}

func TestGenerateMonthClosesNegative(t *testing.T) {
	in := baseInputs(-30000, 10000, 0, 0, nil)
	got := Generate(in)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	ins := got[0]
	if ins.Type != MonthClosesNegative || ins.Severity != SeverityCritical {
		t.Fatalf("unexpected insight %+v", ins)
	}
	if ins.Params["amount"].(int64) != 30000 {
		t.Fatalf("amount = %v", ins.Params["amount"])
	}
	if ins.MessageKey == "" || ins.ID == "" {
		t.Fatal("message key and id must be set")
	}
}

func TestGenerateDaysInRed(t *testing.T) {
	confirmed := core.Transaction{
		Date:   core.NewDate(2026, 8, 10),
		Amount: core.Money{Cents: 5000},
		Kind:   core.Expense,
		Status: core.Confirmed,
	}
	in := baseInputs(-1000, -5000, 0, 0, []core.Transaction{confirmed})
	got := find(Generate(in), DaysInRed)
	if got == nil {
		t.Fatal("expected days_in_red to fire")
	}
	if got.Params["days"].(int) != 5 {
		t.Fatalf("days = %v", got.Params["days"])
	}
	if got.Severity != SeverityWarning {
		t.Fatalf("severity = %v", got.Severity)
	}
}

func TestGenerateDaysInRedSuppressedWhenZeroDays(t *testing.T) {
	confirmedToday := core.Transaction{
		Date:   core.NewDate(2026, 8, 15),
		Amount: core.Money{Cents: 5000},
		Kind:   core.Expense,
		Status: core.Confirmed,
	}
	in := baseInputs(-1000, -5000, 0, 0, []core.Transaction{confirmedToday})
	if got := find(Generate(in), DaysInRed); got != nil {
		t.Fatalf("expected suppression for zero days, got %+v", got)
	}
}

func TestGeneratePostponeBenefitSeverities(t *testing.T) {
	// Postponing flips the balance non-negative: info.
	in := baseInputs(-5000, 0, 8000, 0, []core.Transaction{plannedExpense("sofa", 8000)})
	got := find(Generate(in), PostponeBenefit)
	if got == nil || got.Severity != SeverityInfo {
		t.Fatalf("expected info postpone insight, got %+v", got)
	}
	if got.Params["deficit"].(int64) != 3000 {
		t.Fatalf("deficit = %v", got.Params["deficit"])
	}

	// Postponing still leaves a deficit: warning.
	in = baseInputs(-20000, 0, 8000, 0, []core.Transaction{plannedExpense("sofa", 8000)})
	got = find(Generate(in), PostponeBenefit)
	if got == nil || got.Severity != SeverityWarning {
		t.Fatalf("expected warning postpone insight, got %+v", got)
	}
	if got.Params["deficit"].(int64) != 12000 {
		t.Fatalf("deficit = %v", got.Params["deficit"])
	}
	if got.Params["description"].(string) != "sofa" {
		t.Fatalf("description = %v", got.Params["description"])
	}
}

func TestGeneratePostponeBenefitPicksLargestFirstSeen(t *testing.T) {
	txs := []core.Transaction{
		plannedExpense("first big", 8000),
		plannedExpense("second big", 8000),
		plannedExpense("small", 100),
	}
	in := baseInputs(-5000, 0, 16100, 0, txs)
	got := find(Generate(in), PostponeBenefit)
	if got == nil {
		t.Fatal("expected postpone insight")
	}
	if got.Params["description"].(string) != "first big" {
		t.Fatalf("tie must keep first seen, got %v", got.Params["description"])
	}
}

func TestGeneratePendingIncomeVariants(t *testing.T) {
	// realized + pendingIncome - pendingExpenses >= 0 -> covers variant
	in := baseInputs(-2000, 1000, 5000, 9000, nil)
	got := find(Generate(in), PendingIncomeHelps)
	if got == nil {
		t.Fatal("expected pending income insight")
	}
	if got.MessageKey != "insights.pending_income_covers" {
		t.Fatalf("key = %s", got.MessageKey)
	}
	if got.Params["balance"].(int64) != 5000 {
		t.Fatalf("balance = %v", got.Params["balance"])
	}

	// still short -> partial variant
	in = baseInputs(-2000, -1000, 9000, 5000, nil)
	got = find(Generate(in), PendingIncomeHelps)
	if got == nil {
		t.Fatal("expected pending income insight")
	}
	if got.MessageKey != "insights.pending_income_partial" {
		t.Fatalf("key = %s", got.MessageKey)
	}
	if got.Params["balance"].(int64) != -5000 {
		t.Fatalf("balance = %v", got.Params["balance"])
	}
}

func TestGenerateOverduePayments(t *testing.T) {
	dueTwoDaysAgo := plannedExpense("electricity", 4000)
	dueTwoDaysAgo.Date = core.NewDate(2026, 8, 1)
	dueTwoDaysAgo.DueDate = core.NewDate(2026, 8, 13)

	noDueYesterday := plannedExpense("water", 2000)
	noDueYesterday.Date = core.NewDate(2026, 8, 14)

	dueTomorrow := plannedExpense("internet", 9000)
	dueTomorrow.Date = core.NewDate(2026, 8, 1)
	dueTomorrow.DueDate = core.NewDate(2026, 8, 16)

	in := baseInputs(-1000, 0, 15000, 0,
		[]core.Transaction{dueTwoDaysAgo, noDueYesterday, dueTomorrow})
	got := find(Generate(in), OverduePayments)
	if got == nil {
		t.Fatal("expected overdue insight")
	}
	if got.Severity != SeverityCritical {
		t.Fatalf("severity = %v", got.Severity)
	}
	if got.Params["count"].(int) != 2 {
		t.Fatalf("count = %v", got.Params["count"])
	}
	if got.Params["total"].(int64) != 6000 {
		t.Fatalf("total = %v", got.Params["total"])
	}
	if got.MessageKey != "insights.overdue_payments" {
		t.Fatalf("expected plural key, got %s", got.MessageKey)
	}
}

func TestGenerateOverdueSingularKey(t *testing.T) {
	overdue := plannedExpense("electricity", 4000)
	overdue.Date = core.NewDate(2026, 8, 10)

	in := baseInputs(-1000, 0, 4000, 0, []core.Transaction{overdue})
	got := find(Generate(in), OverduePayments)
	if got == nil {
		t.Fatal("expected overdue insight")
	}
	if got.MessageKey != "insights.overdue_payment" {
		t.Fatalf("expected singular key, got %s", got.MessageKey)
	}
}

func TestLargestPendingExpenseRule(t *testing.T) {
	// projected=100, pendingExpenses=150, largest=80:
	// 80 > 100*0.5 fires, percentage = round(80/150*100) = 53
	in := baseInputs(10000, 10000, 15000, 0, []core.Transaction{plannedExpense("school", 8000)})
	got := largestPendingExpense(in)
	if got == nil {
		t.Fatal("expected rule to fire")
	}
	if got.Params["percentage"].(int) != 53 {
		t.Fatalf("percentage = %v", got.Params["percentage"])
	}
	if got.Severity != SeverityInfo {
		t.Fatalf("severity = %v", got.Severity)
	}

	// largest below half the projection: silent
	in = baseInputs(20000, 20000, 15000, 0, []core.Transaction{plannedExpense("school", 8000)})
	if got := largestPendingExpense(in); got != nil {
		t.Fatalf("expected silence, got %+v", got)
	}

	// negative projection belongs to the postpone rule instead
	in = baseInputs(-100, 0, 15000, 0, []core.Transaction{plannedExpense("school", 8000)})
	if got := largestPendingExpense(in); got != nil {
		t.Fatalf("expected silence for negative projection, got %+v", got)
	}
}

func TestGenerateLargestPendingThroughGate(t *testing.T) {
	// Tight margin: projected=100 against pending=600 passes the 20% gate.
	in := baseInputs(10000, 10000, 60000, 0, []core.Transaction{plannedExpense("car repair", 35000)})
	got := find(Generate(in), LargestPendingExpense)
	if got == nil {
		t.Fatal("expected insight through the gate")
	}
	if got.Params["percentage"].(int) != 58 {
		t.Fatalf("percentage = %v", got.Params["percentage"])
	}
}

func TestGenerateOrderingBySeverity(t *testing.T) {
	overdue := plannedExpense("electricity", 4000)
	overdue.Date = core.NewDate(2026, 8, 10)

	confirmed := core.Transaction{
		Date:   core.NewDate(2026, 8, 5),
		Amount: core.Money{Cents: 5000},
		Kind:   core.Expense,
		Status: core.Confirmed,
	}

	in := baseInputs(-30000, -5000, 12000, 2000,
		[]core.Transaction{overdue, plannedExpense("sofa", 8000), confirmed})
	got := Generate(in)
	if len(got) < 4 {
		t.Fatalf("expected several insights, got %d", len(got))
	}

	lastRank := -1
	for i, ins := range got {
		r := ins.Severity.rank()
		if r < lastRank {
			t.Fatalf("insight %d (%s) out of order", i, ins.Type)
		}
		lastRank = r
	}

	// criticals keep generation order: month_closes_negative before overdue
	if got[0].Type != MonthClosesNegative || got[1].Type != OverduePayments {
		t.Fatalf("stable order broken: %s, %s", got[0].Type, got[1].Type)
	}
}

func find(list []Insight, typ Type) *Insight {
	for i := range list {
		if list[i].Type == typ {
			return &list[i]
		}
	}
	return nil
}
