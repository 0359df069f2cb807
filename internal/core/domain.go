package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income   Kind = "income"
	Expense  Kind = "expense"
	Transfer Kind = "transfer"
)

const (
	Planned   Status = "planned"
	Confirmed Status = "confirmed"
	Cancelled Status = "cancelled"
)

const (
	Fixed    ExpenseType = "fixed"
	Variable ExpenseType = "variable"
)

type (
	Kind        string
	Status      string
	ExpenseType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single household ledger entry. Amount is always a
	// non-negative magnitude; direction comes from Kind.
	Transaction struct {
		ID          int64
		HouseholdID string
		Date        Date
		DueDate     Date // optional, zero when absent
		Amount      Money
		Kind        Kind
		Status      Status
		ExpenseType ExpenseType // only meaningful for expenses
		Description string
		Category    string
		Subcategory string
	}
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidStatus   = errors.New("invalid transaction status")
	ErrInvalidExpense  = errors.New("invalid expense type")
	ErrEmptyHousehold  = errors.New("empty household id")
	ErrDescriptionSize = errors.New("description too long (max 200 characters)")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty returns true if the date is unset (used for optional due dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// EffectiveDate is the date used to classify a transaction as overdue or
// belonging to a period: the due date when present, the entry date otherwise.
func (t Transaction) EffectiveDate() Date {
	if !t.DueDate.IsEmpty() {
		return t.DueDate
	}
	return t.Date
}

// Overdue reports whether a planned expense's effective date is strictly
// before today's calendar date.
func (t Transaction) Overdue(today time.Time) bool {
	if t.Kind != Expense || t.Status != Planned {
		return false
	}
	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.EffectiveDate().Before(midnight)
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense, Transfer:
		return nil
	}
	return ErrInvalidKind
}

func (s Status) Validate() error {
	switch s {
	case Planned, Confirmed, Cancelled:
		return nil
	}
	return ErrInvalidStatus
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.HouseholdID) == "" {
		return ErrEmptyHousehold
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	switch t.ExpenseType {
	case "", Fixed, Variable:
	default:
		return ErrInvalidExpense
	}
	if t.ExpenseType != "" && t.Kind != Expense {
		return ErrInvalidExpense
	}
	if len(t.Description) > 200 {
		return ErrDescriptionSize
	}
	return nil
}
