package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries holds the raw SQL access layer. The repository wraps it with
// domain-type conversions.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// transactionRow mirrors the transactions table.
type transactionRow struct {
	ID          int64
	HouseholdID string
	Date        string
	DueDate     sql.NullString
	AmountCents int64
	Kind        string
	Status      string
	ExpenseType sql.NullString
	Description string
	Category    string
	Subcategory string
}

const createTransaction = `
INSERT INTO transactions (household_id, date, due_date, amount_cents, kind, status, expense_type, description, category, subcategory)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type createTransactionParams struct {
	HouseholdID string
	Date        string
	DueDate     sql.NullString
	AmountCents int64
	Kind        string
	Status      string
	ExpenseType sql.NullString
	Description string
	Category    string
	Subcategory string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg createTransactionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createTransaction,
		arg.HouseholdID, arg.Date, arg.DueDate, arg.AmountCents, arg.Kind,
		arg.Status, arg.ExpenseType, arg.Description, arg.Category, arg.Subcategory)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listTransactionsInRange = `
SELECT id, household_id, date, due_date, amount_cents, kind, status, expense_type, description, category, subcategory
FROM transactions
WHERE household_id = ? AND date >= ? AND date < ?
ORDER BY date, id
`

func (q *Queries) ListTransactionsInRange(ctx context.Context, householdID, from, to string) ([]transactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsInRange, householdID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []transactionRow
	for rows.Next() {
		var r transactionRow
		if err := rows.Scan(&r.ID, &r.HouseholdID, &r.Date, &r.DueDate, &r.AmountCents,
			&r.Kind, &r.Status, &r.ExpenseType, &r.Description, &r.Category, &r.Subcategory); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const realizedBalanceCents = `
SELECT COALESCE(SUM(CASE kind WHEN 'income' THEN amount_cents WHEN 'expense' THEN -amount_cents ELSE 0 END), 0)
FROM transactions
WHERE household_id = ? AND status = 'confirmed' AND date < ?
`

func (q *Queries) RealizedBalanceCents(ctx context.Context, householdID, before string) (int64, error) {
	var cents int64
	err := q.db.QueryRowContext(ctx, realizedBalanceCents, householdID, before).Scan(&cents)
	return cents, err
}

const getBalanceState = `
SELECT state FROM balance_states WHERE key = ?
`

func (q *Queries) GetBalanceState(ctx context.Context, key string) (string, error) {
	var state string
	err := q.db.QueryRowContext(ctx, getBalanceState, key).Scan(&state)
	return state, err
}

const upsertBalanceState = `
INSERT INTO balance_states (key, state, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
`

func (q *Queries) UpsertBalanceState(ctx context.Context, key, state string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, upsertBalanceState, key, state, at.UTC())
	return err
}

const createNotification = `
INSERT INTO notifications (event_id, household_id, month_key, kind, amount_cents, delivered_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (event_id) DO NOTHING
`

type createNotificationParams struct {
	EventID     string
	HouseholdID string
	MonthKey    string
	Kind        string
	AmountCents int64
	DeliveredAt time.Time
}

func (q *Queries) CreateNotification(ctx context.Context, arg createNotificationParams) error {
	_, err := q.db.ExecContext(ctx, createNotification,
		arg.EventID, arg.HouseholdID, arg.MonthKey, arg.Kind, arg.AmountCents, arg.DeliveredAt.UTC())
	return err
}

const listNotifications = `
SELECT event_id, household_id, month_key, kind, amount_cents, delivered_at
FROM notifications
WHERE household_id = ?
ORDER BY delivered_at DESC, id DESC
LIMIT ?
`

type notificationRow struct {
	EventID     string
	HouseholdID string
	MonthKey    string
	Kind        string
	AmountCents int64
	DeliveredAt time.Time
}

func (q *Queries) ListNotifications(ctx context.Context, householdID string, limit int64) ([]notificationRow, error) {
	rows, err := q.db.QueryContext(ctx, listNotifications, householdID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []notificationRow
	for rows.Next() {
		var r notificationRow
		if err := rows.Scan(&r.EventID, &r.HouseholdID, &r.MonthKey, &r.Kind, &r.AmountCents, &r.DeliveredAt); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
