package forecast

import "previsao/internal/core"

// ProjectionTotals is the per-evaluation money summary handed to the insight
// generator. Produced fresh on every recomputation; it has no identity beyond
// the current evaluation.
type ProjectionTotals struct {
	ProjectedBalance core.Money
	RealizedBalance  core.Money
	PendingExpenses  core.Money
	PendingIncome    core.Money
}

// ComputeTotals sums the reference month's planned flows on top of the
// realized balance. Transfers move money between accounts of the same
// household, so they count in neither direction; cancelled entries count
// nowhere. ProjectedBalance is filled in by the caller from the engine
// result.
func ComputeTotals(txs []core.Transaction, realizedBalance core.Money) ProjectionTotals {
	t := ProjectionTotals{RealizedBalance: realizedBalance}
	for _, tx := range txs {
		if tx.Status != core.Planned {
			continue
		}
		switch tx.Kind {
		case core.Expense:
			t.PendingExpenses.Cents += tx.Amount.Cents
		case core.Income:
			t.PendingIncome.Cents += tx.Amount.Cents
		}
	}
	return t
}

// PendingFixedExpenses sums planned fixed-type expenses not yet realized in
// the reference month.
func PendingFixedExpenses(txs []core.Transaction) core.Money {
	var cents int64
	for _, tx := range txs {
		if tx.Kind == core.Expense && tx.Status == core.Planned && tx.ExpenseType == core.Fixed {
			cents += tx.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}

// ConfirmedVariableSpend sums variable expenses already confirmed in the
// reference month.
func ConfirmedVariableSpend(txs []core.Transaction) core.Money {
	var cents int64
	for _, tx := range txs {
		if tx.Kind == core.Expense && tx.Status == core.Confirmed && tx.ExpenseType == core.Variable {
			cents += tx.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}
