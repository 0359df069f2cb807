// Package worker consumes risk events from the queue and turns them into
// stored notifications.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"previsao/internal/amqp"
	"previsao/internal/core"
	"previsao/internal/storage"
)

// NotificationRecorder is the storage surface the worker writes through.
// *storage.SQLiteRepository implements it.
type NotificationRecorder interface {
	RecordNotification(ctx context.Context, n storage.Notification) error
}

// NotifyWorker persists risk event messages as household notifications.
type NotifyWorker struct {
	recorder NotificationRecorder
}

func NewNotifyWorker(recorder NotificationRecorder) *NotifyWorker {
	return &NotifyWorker{recorder: recorder}
}

// HandleRiskEvent processes a single risk event message from AMQP. The
// underlying store ignores duplicate event IDs, so redelivered messages
// are safe to handle again.
func (w *NotifyWorker) HandleRiskEvent(ctx context.Context, msg *amqp.RiskEventMessage) error {
	slog.InfoContext(ctx, "Processing risk event",
		"event_id", msg.EventID,
		"household_id", msg.HouseholdID,
		"month", msg.MonthKey,
		"kind", msg.Kind)

	if msg.EventID == "" || msg.HouseholdID == "" || msg.MonthKey == "" {
		return fmt.Errorf("risk event message missing identity fields: %w", core.ErrInvalidInput)
	}
	switch msg.Kind {
	case "risk", "recovered", "risk_reduced":
	default:
		return fmt.Errorf("unknown risk event kind %q: %w", msg.Kind, core.ErrInvalidInput)
	}

	deliveredAt := msg.Timestamp
	if deliveredAt.IsZero() {
		deliveredAt = time.Now().UTC()
	}

	err := w.recorder.RecordNotification(ctx, storage.Notification{
		EventID:     msg.EventID,
		HouseholdID: msg.HouseholdID,
		MonthKey:    msg.MonthKey,
		Kind:        msg.Kind,
		Amount:      core.Money{Cents: msg.AmountCents},
		DeliveredAt: deliveredAt,
	})
	if err != nil {
		return fmt.Errorf("record risk notification: %w", err)
	}

	slog.InfoContext(ctx, "Risk event recorded",
		"event_id", msg.EventID,
		"kind", msg.Kind)
	return nil
}
