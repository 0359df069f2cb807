package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"previsao/internal/core"
	"previsao/internal/services"
	"previsao/internal/storage"
)

var (
	flagDB        string
	flagHousehold string
	flagMonth     string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "previsao",
	Short: "End-of-month balance forecast CLI",
	Long:  "Project your end-of-month balance, list risk insights, and manage ledger entries from the terminal.",
	RunE:  runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	defaultDB := os.Getenv("SQLITE_DB_PATH")
	if defaultDB == "" {
		defaultDB = "./data/previsao.db"
	}

	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "d", defaultDB, "SQLite database path")
	rootCmd.PersistentFlags().StringVarP(&flagHousehold, "household", "H", "default", "Household identifier")
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month in YYYY-MM format (default: current month)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
}

// openService is the shared setup path used by all commands. The CLI talks
// to the database directly and never publishes events.
func openService() (*services.ForecastService, *storage.SQLiteRepository, error) {
	var handler slog.Handler = slog.NewTextHandler(io.Discard, nil)
	if flagVerbose {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	repo, err := storage.NewSQLiteRepository(flagDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", flagDB, err)
	}

	svc := services.NewForecastService(repo, repo, repo, nil, 16, 5*time.Second)
	return svc, repo, nil
}

// selectedMonth resolves the --month flag, defaulting to the current month.
func selectedMonth() (core.Month, error) {
	if flagMonth == "" {
		return core.MonthOf(time.Now().UTC()), nil
	}
	return core.ParseMonth(flagMonth)
}

func formatMoney(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
