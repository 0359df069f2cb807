package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"previsao/internal/risk"
)

// RiskEventMessage is the wire form of a risk transition event. It carries a
// message key and raw amounts only; translation happens wherever the
// notification is rendered, never here.
type RiskEventMessage struct {
	EventID     string    `json:"event_id"`
	HouseholdID string    `json:"household_id"`
	MonthKey    string    `json:"month_key"`
	Kind        string    `json:"kind"`
	MessageKey  string    `json:"message_key"`
	AmountCents int64     `json:"amount_cents"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRiskEventMessage wraps a state-machine event with a fresh event ID.
func NewRiskEventMessage(event risk.Event) *RiskEventMessage {
	key := "notifications.risk"
	if event.Kind == risk.EventRecovered {
		key = "notifications.recovered"
	}
	return &RiskEventMessage{
		EventID:     uuid.NewString(),
		HouseholdID: event.HouseholdID,
		MonthKey:    event.MonthKey,
		Kind:        string(event.Kind),
		MessageKey:  key,
		AmountCents: event.Amount.Cents,
		Timestamp:   time.Now().UTC(),
	}
}

// NewRiskReducedMessage builds the caller-triggered "your decision reduced
// the deficit" message, which bypasses the state machine.
func NewRiskReducedMessage(householdID string, monthKey string, amountCents int64) *RiskEventMessage {
	return &RiskEventMessage{
		EventID:     uuid.NewString(),
		HouseholdID: householdID,
		MonthKey:    monthKey,
		Kind:        "risk_reduced",
		MessageKey:  "notifications.risk_reduced",
		AmountCents: amountCents,
		Timestamp:   time.Now().UTC(),
	}
}

func (m *RiskEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RiskEventMessageFromJSON(data []byte) (*RiskEventMessage, error) {
	var msg RiskEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
