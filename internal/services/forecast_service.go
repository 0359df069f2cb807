// Package services orchestrates storage, the forecast computation, and the
// notification side effects into caller-facing operations.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"previsao/internal/amqp"
	"previsao/internal/core"
	"previsao/internal/forecast"
	"previsao/internal/insight"
	"previsao/internal/risk"
)

// DataSource is the transaction/account read side the forecast consumes.
// *storage.SQLiteRepository implements it.
type DataSource interface {
	ListMonthTransactions(ctx context.Context, householdID string, month core.Month) ([]core.Transaction, error)
	ListTransactionsInRange(ctx context.Context, householdID string, from, to time.Time) ([]core.Transaction, error)
	RealizedBalance(ctx context.Context, householdID string, before time.Time) (core.Money, error)
}

// TransactionWriter is the intake side used by CreateTransaction.
type TransactionWriter interface {
	AddTransaction(ctx context.Context, tx core.Transaction) (int64, error)
}

// Evaluation is one complete forecast run for a household+month.
type Evaluation struct {
	HouseholdID string
	Month       core.Month
	Window      forecast.MonthWindow
	History     forecast.History
	Projection  forecast.Result
	Totals      forecast.ProjectionTotals
	Insights    []insight.Insight
	Event       *risk.Event
}

// ForecastService runs evaluations and publishes risk transitions. The AMQP
// client is optional: without it, events are still detected and returned,
// just not published. Publishing failures never fail an evaluation; the
// forecast is the product, the alert is a nicety.
type ForecastService struct {
	source     DataSource
	writer     TransactionWriter
	evaluator  *risk.Evaluator
	amqpClient *amqp.Client
	cache      *evalCache

	// Now is the clock used for "today"; overridable in tests.
	Now func() time.Time
}

func NewForecastService(source DataSource, writer TransactionWriter, store risk.Store, amqpClient *amqp.Client, cacheSize int, cacheTTL time.Duration) *ForecastService {
	return &ForecastService{
		source:     source,
		writer:     writer,
		evaluator:  risk.NewEvaluator(store),
		amqpClient: amqpClient,
		cache:      newEvalCache(cacheSize, cacheTTL),
		Now:        time.Now,
	}
}

// Evaluate computes the projection, insights, and risk transition for a
// household+month. Recent identical evaluations are served from a short
// TTL cache, which also keeps rapid re-renders from re-running the state
// machine.
func (s *ForecastService) Evaluate(ctx context.Context, householdID string, month core.Month) (*Evaluation, error) {
	if err := month.Validate(); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	cacheKey := risk.Key(householdID, month)
	if cached, ok := s.cache.get(cacheKey); ok {
		return cached, nil
	}

	today := s.Now().UTC()

	var (
		monthTxs   []core.Transaction
		historyTxs []core.Transaction
		realized   core.Money
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthTxs, err = s.source.ListMonthTransactions(gctx, householdID, month)
		return err
	})
	g.Go(func() error {
		from, to := forecast.HistoryRange(month)
		var err error
		historyTxs, err = s.source.ListTransactionsInRange(gctx, householdID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		realized, err = s.source.RealizedBalance(gctx, householdID, tomorrow(today))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch forecast inputs: %w", err)
	}

	window := forecast.NewMonthWindow(month, today)
	history := forecast.AverageVariableSpend(historyTxs, month)

	projection, err := forecast.Compute(forecast.Inputs{
		CurrentBalance:             realized,
		PendingFixedExpenses:       forecast.PendingFixedExpenses(monthTxs),
		ConfirmedVariableThisMonth: forecast.ConfirmedVariableSpend(monthTxs),
		HistoricalVariableAvg:      history.VariableAvg,
		DaysElapsed:                window.DaysElapsed,
		DaysInMonth:                window.DaysInMonth,
	})
	if err != nil {
		return nil, fmt.Errorf("compute projection: %w", err)
	}

	totals := forecast.ComputeTotals(monthTxs, realized)
	totals.ProjectedBalance = projection.ProjectedBalance

	insights := insight.Generate(insight.Inputs{
		Projection:   projection,
		Totals:       totals,
		Transactions: monthTxs,
		Month:        month,
		Today:        today,
	})

	event, err := s.evaluator.Evaluate(ctx, householdID, month, projection.ProjectedBalance)
	if err != nil {
		return nil, fmt.Errorf("evaluate risk transition: %w", err)
	}
	if event != nil {
		s.publishEvent(ctx, amqp.NewRiskEventMessage(*event))
	}

	eval := &Evaluation{
		HouseholdID: householdID,
		Month:       month,
		Window:      window,
		History:     history,
		Projection:  projection,
		Totals:      totals,
		Insights:    insights,
		Event:       event,
	}
	s.cache.set(cacheKey, eval)
	return eval, nil
}

// CreateTransaction stores a new ledger entry and drops the household's
// cached evaluation so the next forecast sees it.
func (s *ForecastService) CreateTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	if s.writer == nil {
		return 0, fmt.Errorf("create transaction: no writer configured")
	}
	id, err := s.writer.AddTransaction(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	s.cache.deleteHousehold(tx.HouseholdID)
	return id, nil
}

// ListTransactions returns the household's ledger entries for a month.
func (s *ForecastService) ListTransactions(ctx context.Context, householdID string, month core.Month) ([]core.Transaction, error) {
	if err := month.Validate(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	txs, err := s.source.ListMonthTransactions(ctx, householdID, month)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// NotifyRiskReduced emits the caller-triggered "your decision reduced the
// deficit" event. It bypasses the state machine and fires only for positive
// amounts.
func (s *ForecastService) NotifyRiskReduced(ctx context.Context, householdID string, month core.Month, amount core.Money) {
	if amount.Cents <= 0 {
		return
	}
	s.publishEvent(ctx, amqp.NewRiskReducedMessage(householdID, month.Key(), amount.Cents))
}

func (s *ForecastService) publishEvent(ctx context.Context, msg *amqp.RiskEventMessage) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping risk event",
			"event_id", msg.EventID, "kind", msg.Kind)
		return
	}
	if err := s.amqpClient.PublishRiskEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish risk event",
			"event_id", msg.EventID, "kind", msg.Kind, "error", err)
		// Don't fail the evaluation - the forecast itself is intact
	}
}

// tomorrow returns midnight after today, so date-keyed queries include
// today's entries.
func tomorrow(today time.Time) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
