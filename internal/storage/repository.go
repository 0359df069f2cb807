package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"previsao/internal/core"
	"previsao/internal/risk"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// SQLiteRepository persists transactions, balance states, and delivered
// notifications. It is the risk.Store implementation used in production.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddTransaction validates and inserts a ledger entry, returning its ID.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, fmt.Errorf("validate transaction: %w", err)
	}

	var dueDate sql.NullString
	if !tx.DueDate.IsEmpty() {
		dueDate = sql.NullString{String: tx.DueDate.Format(dateLayout), Valid: true}
	}
	var expenseType sql.NullString
	if tx.ExpenseType != "" {
		expenseType = sql.NullString{String: string(tx.ExpenseType), Valid: true}
	}

	id, err := r.queries.CreateTransaction(ctx, createTransactionParams{
		HouseholdID: tx.HouseholdID,
		Date:        tx.Date.Format(dateLayout),
		DueDate:     dueDate,
		AmountCents: tx.Amount.Cents,
		Kind:        string(tx.Kind),
		Status:      string(tx.Status),
		ExpenseType: expenseType,
		Description: tx.Description,
		Category:    tx.Category,
		Subcategory: tx.Subcategory,
	})
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"household", tx.HouseholdID,
		"kind", tx.Kind,
		"status", tx.Status,
		"amount_cents", tx.Amount.Cents)

	return id, nil
}

// ListMonthTransactions returns the household's entries for one calendar
// month, ordered by date.
func (r *SQLiteRepository) ListMonthTransactions(ctx context.Context, householdID string, month core.Month) ([]core.Transaction, error) {
	from := month.Start()
	to := month.AddMonths(1).Start()
	return r.ListTransactionsInRange(ctx, householdID, from, to)
}

// ListTransactionsInRange returns entries with date in the half-open
// interval [from, to).
func (r *SQLiteRepository) ListTransactionsInRange(ctx context.Context, householdID string, from, to time.Time) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactionsInRange(ctx, householdID,
		from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := rowToTransaction(row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// RealizedBalance sums confirmed income minus confirmed expense strictly
// before the given date.
func (r *SQLiteRepository) RealizedBalance(ctx context.Context, householdID string, before time.Time) (core.Money, error) {
	cents, err := r.queries.RealizedBalanceCents(ctx, householdID, before.Format(dateLayout))
	if err != nil {
		return core.Money{}, fmt.Errorf("realized balance: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// Get implements risk.Store.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (risk.BalanceState, bool, error) {
	state, err := r.queries.GetBalanceState(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get balance state: %w", err)
	}
	return risk.BalanceState(state), true, nil
}

// Set implements risk.Store.
func (r *SQLiteRepository) Set(ctx context.Context, key string, state risk.BalanceState) error {
	if err := r.queries.UpsertBalanceState(ctx, key, string(state), time.Now()); err != nil {
		return fmt.Errorf("set balance state: %w", err)
	}
	return nil
}

// Notification is one delivered risk event.
type Notification struct {
	EventID     string
	HouseholdID string
	MonthKey    string
	Kind        string
	Amount      core.Money
	DeliveredAt time.Time
}

// RecordNotification logs a delivered event. Duplicate event IDs are
// silently ignored so redelivered queue messages stay idempotent.
func (r *SQLiteRepository) RecordNotification(ctx context.Context, n Notification) error {
	err := r.queries.CreateNotification(ctx, createNotificationParams{
		EventID:     n.EventID,
		HouseholdID: n.HouseholdID,
		MonthKey:    n.MonthKey,
		Kind:        n.Kind,
		AmountCents: n.Amount.Cents,
		DeliveredAt: n.DeliveredAt,
	})
	if err != nil {
		return fmt.Errorf("record notification: %w", err)
	}
	return nil
}

// ListNotifications returns the household's most recent deliveries.
func (r *SQLiteRepository) ListNotifications(ctx context.Context, householdID string, limit int) ([]Notification, error) {
	rows, err := r.queries.ListNotifications(ctx, householdID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	items := make([]Notification, 0, len(rows))
	for _, row := range rows {
		items = append(items, Notification{
			EventID:     row.EventID,
			HouseholdID: row.HouseholdID,
			MonthKey:    row.MonthKey,
			Kind:        row.Kind,
			Amount:      core.Money{Cents: row.AmountCents},
			DeliveredAt: row.DeliveredAt,
		})
	}
	return items, nil
}

func rowToTransaction(row transactionRow) (core.Transaction, error) {
	date, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", row.Date, err)
	}

	tx := core.Transaction{
		ID:          row.ID,
		HouseholdID: row.HouseholdID,
		Date:        core.Date{Time: date},
		Amount:      core.Money{Cents: row.AmountCents},
		Kind:        core.Kind(row.Kind),
		Status:      core.Status(row.Status),
		Description: row.Description,
		Category:    row.Category,
		Subcategory: row.Subcategory,
	}
	if row.DueDate.Valid {
		due, err := time.Parse(dateLayout, row.DueDate.String)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("parse due date %q: %w", row.DueDate.String, err)
		}
		tx.DueDate = core.Date{Time: due}
	}
	if row.ExpenseType.Valid {
		tx.ExpenseType = core.ExpenseType(row.ExpenseType.String)
	}
	return tx, nil
}
