package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List the month's ledger entries",
	RunE:  runTransactions,
}

func init() {
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	svc, repo, err := openService()
	if err != nil {
		return err
	}
	defer repo.Close()

	txs, err := svc.ListTransactions(context.Background(), flagHousehold, month)
	if err != nil {
		return err
	}

	if len(txs) == 0 {
		fmt.Printf("No entries for %s in %s.\n", flagHousehold, month.Key())
		return nil
	}

	fmt.Printf("%-6s %-12s %-10s %-10s %-9s %12s  %s\n",
		"ID", "DATE", "KIND", "STATUS", "TYPE", "AMOUNT", "DESCRIPTION")
	for _, tx := range txs {
		fmt.Printf("%-6d %-12s %-10s %-10s %-9s %12s  %s\n",
			tx.ID,
			tx.Date.Format("2006-01-02"),
			tx.Kind,
			tx.Status,
			tx.ExpenseType,
			formatMoney(tx.Amount),
			tx.Description)
	}
	return nil
}
