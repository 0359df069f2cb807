package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"previsao/internal/core"
)

var (
	flagAddDate        string
	flagAddDueDate     string
	flagAddAmount      string
	flagAddKind        string
	flagAddStatus      string
	flagAddExpenseType string
	flagAddDescription string
	flagAddCategory    string
	flagAddSubcategory string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a ledger entry",
	Example: `  previsao add --amount 49.90 --kind expense --status planned --type fixed --desc "internet bill"
  previsao add --amount 3200.00 --kind income --status confirmed --desc salary`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Entry date YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&flagAddDueDate, "due", "", "Due date YYYY-MM-DD (optional)")
	addCmd.Flags().StringVar(&flagAddAmount, "amount", "", "Amount as a decimal, e.g. 49.90")
	addCmd.Flags().StringVar(&flagAddKind, "kind", "expense", "Entry kind: income, expense, transfer")
	addCmd.Flags().StringVar(&flagAddStatus, "status", "planned", "Entry status: planned, confirmed, cancelled")
	addCmd.Flags().StringVar(&flagAddExpenseType, "type", "", "Expense type: fixed, variable")
	addCmd.Flags().StringVar(&flagAddDescription, "desc", "", "Description")
	addCmd.Flags().StringVar(&flagAddCategory, "category", "", "Category")
	addCmd.Flags().StringVar(&flagAddSubcategory, "subcategory", "", "Subcategory")
	_ = addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	cents, err := core.ParseDecimalToCents(flagAddAmount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", flagAddAmount, err)
	}

	date := core.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	if flagAddDate != "" {
		parsed, err := time.Parse("2006-01-02", flagAddDate)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", flagAddDate, err)
		}
		date = core.Date{Time: parsed}
	}

	var dueDate core.Date
	if flagAddDueDate != "" {
		parsed, err := time.Parse("2006-01-02", flagAddDueDate)
		if err != nil {
			return fmt.Errorf("parse due date %q: %w", flagAddDueDate, err)
		}
		dueDate = core.Date{Time: parsed}
	}

	tx := core.Transaction{
		HouseholdID: flagHousehold,
		Date:        date,
		DueDate:     dueDate,
		Amount:      core.Money{Cents: cents},
		Kind:        core.Kind(flagAddKind),
		Status:      core.Status(flagAddStatus),
		ExpenseType: core.ExpenseType(flagAddExpenseType),
		Description: flagAddDescription,
		Category:    flagAddCategory,
		Subcategory: flagAddSubcategory,
	}

	svc, repo, err := openService()
	if err != nil {
		return err
	}
	defer repo.Close()

	id, err := svc.CreateTransaction(context.Background(), tx)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s %s of %s (id %d)\n", tx.Status, tx.Kind, formatMoney(tx.Amount), id)
	return nil
}
