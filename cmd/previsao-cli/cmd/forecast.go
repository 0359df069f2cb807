package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project the end-of-month balance",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	month, err := selectedMonth()
	if err != nil {
		return err
	}

	svc, repo, err := openService()
	if err != nil {
		return err
	}
	defer repo.Close()

	eval, err := svc.Evaluate(context.Background(), flagHousehold, month)
	if err != nil {
		return err
	}

	fmt.Printf("Forecast for %s (%s)\n\n", flagHousehold, eval.Month.Key())
	fmt.Printf("  Current balance:      %12s\n", formatMoney(eval.Totals.RealizedBalance))
	fmt.Printf("  Pending expenses:     %12s\n", formatMoney(eval.Totals.PendingExpenses))
	fmt.Printf("  Pending income:       %12s\n", formatMoney(eval.Totals.PendingIncome))
	fmt.Printf("  Daily run rate:       %12s\n", formatMoney(eval.Projection.DailyRunRate))
	fmt.Printf("  Projected balance:    %12s\n\n", formatMoney(eval.Projection.ProjectedBalance))
	fmt.Printf("  Day %d of %d, %d days remaining\n",
		eval.Window.DaysElapsed, eval.Window.DaysInMonth, eval.Window.DaysRemaining)
	if eval.History.MonthsCount > 0 {
		fmt.Printf("  Historical variable spend: %s/month over %d month(s)\n",
			formatMoney(eval.History.VariableAvg), eval.History.MonthsCount)
	}

	if eval.Projection.ProjectedBalance.IsNegative() {
		fmt.Printf("\n  WARNING: projected to close %s in the red\n",
			formatMoney(eval.Projection.ProjectedBalance.Abs()))
	}
	if n := len(eval.Insights); n > 0 {
		fmt.Printf("\n  %d insight(s) available, run 'previsao insights' for details\n", n)
	}
	return nil
}
