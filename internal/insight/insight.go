// Package insight derives severity-ranked findings from a balance
// projection.
//
// Insights carry a message key plus raw parameter values only. Translation
// and currency formatting happen at the render boundary, never here, so the
// same insight list is valid for every locale.
package insight

// Type identifies one of the deterministic insight rules.
type Type string

const (
	MonthClosesNegative   Type = "month_closes_negative"
	DaysInRed             Type = "days_in_red"
	PostponeBenefit       Type = "postpone_benefit"
	PendingIncomeHelps    Type = "pending_income_helps"
	OverduePayments       Type = "overdue_payments"
	LargestPendingExpense Type = "largest_pending_expense"
)

// Severity orders insights for display: critical first, info last.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Insight is a single finding. Params holds raw values (cents as int64,
// counts as int) keyed by placeholder name.
type Insight struct {
	ID            string
	Type          Type
	Severity      Severity
	MessageKey    string
	Params        map[string]any
	ActionHintKey string
}
