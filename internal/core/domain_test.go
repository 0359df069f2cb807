package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		HouseholdID: "h1",
		Date:        NewDate(2026, 8, 10),
		Amount:      Money{Cents: 1500},
		Kind:        Expense,
		Status:      Confirmed,
		ExpenseType: Variable,
		Description: "groceries",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{HouseholdID: "", Date: NewDate(2026, 8, 10), Amount: Money{Cents: 1}, Kind: Expense, Status: Confirmed},
		{HouseholdID: "h1", Date: Date{}, Amount: Money{Cents: 1}, Kind: Expense, Status: Confirmed},
		{HouseholdID: "h1", Date: NewDate(2026, 8, 10), Amount: Money{Cents: -1}, Kind: Expense, Status: Confirmed},
		{HouseholdID: "h1", Date: NewDate(2026, 8, 10), Amount: Money{Cents: 1}, Kind: "loan", Status: Confirmed},
		{HouseholdID: "h1", Date: NewDate(2026, 8, 10), Amount: Money{Cents: 1}, Kind: Expense, Status: "done"},
		{HouseholdID: "h1", Date: NewDate(2026, 8, 10), Amount: Money{Cents: 1}, Kind: Expense, Status: Confirmed, ExpenseType: "weird"},
		{HouseholdID: "h1", Date: NewDate(2026, 8, 10), Amount: Money{Cents: 1}, Kind: Income, Status: Confirmed, ExpenseType: Fixed},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionEffectiveDate(t *testing.T) {
	withDue := Transaction{Date: NewDate(2026, 8, 5), DueDate: NewDate(2026, 8, 20)}
	if got := withDue.EffectiveDate(); !got.Equal(NewDate(2026, 8, 20).Time) {
		t.Fatalf("expected due date, got %v", got)
	}
	withoutDue := Transaction{Date: NewDate(2026, 8, 5)}
	if got := withoutDue.EffectiveDate(); !got.Equal(NewDate(2026, 8, 5).Time) {
		t.Fatalf("expected entry date, got %v", got)
	}
}

func TestTransactionOverdue(t *testing.T) {
	today := time.Date(2026, 8, 15, 13, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{"due date two days ago", Transaction{Kind: Expense, Status: Planned, Date: NewDate(2026, 8, 1), DueDate: NewDate(2026, 8, 13)}, true},
		{"no due date, entry date yesterday", Transaction{Kind: Expense, Status: Planned, Date: NewDate(2026, 8, 14)}, true},
		{"due tomorrow", Transaction{Kind: Expense, Status: Planned, Date: NewDate(2026, 8, 1), DueDate: NewDate(2026, 8, 16)}, false},
		{"due today is not overdue", Transaction{Kind: Expense, Status: Planned, Date: NewDate(2026, 8, 15)}, false},
		{"confirmed expense never overdue", Transaction{Kind: Expense, Status: Confirmed, Date: NewDate(2026, 8, 1)}, false},
		{"planned income never overdue", Transaction{Kind: Income, Status: Planned, Date: NewDate(2026, 8, 1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tx.Overdue(today); got != tc.want {
				t.Fatalf("Overdue() = %v, want %v", got, tc.want)
			}
		})
	}
}
