package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List risk insights for the month",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
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

	if len(eval.Insights) == 0 {
		fmt.Printf("No insights for %s: finances look healthy.\n", eval.Month.Key())
		return nil
	}

	fmt.Printf("Insights for %s (%s)\n\n", flagHousehold, eval.Month.Key())
	for _, in := range eval.Insights {
		fmt.Printf("  [%s] %s\n", strings.ToUpper(string(in.Severity)), in.Type)
		if len(in.Params) > 0 {
			keys := make([]string, 0, len(in.Params))
			for k := range in.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("      %s: %v\n", k, in.Params[k])
			}
		}
	}
	return nil
}
