package amqp

import (
	"testing"
	"time"

	"previsao/internal/core"
	"previsao/internal/risk"
)

func TestNewRiskEventMessage(t *testing.T) {
	event := risk.Event{
		Kind:        risk.EventRisk,
		HouseholdID: "h1",
		MonthKey:    "2026-08",
		Amount:      core.Money{Cents: 7500},
	}
	msg := NewRiskEventMessage(event)

	if msg.EventID == "" {
		t.Fatal("event id must be set")
	}
	if msg.Kind != "risk" || msg.MessageKey != "notifications.risk" {
		t.Fatalf("kind/key = %s/%s", msg.Kind, msg.MessageKey)
	}
	if msg.AmountCents != 7500 {
		t.Fatalf("AmountCents = %d", msg.AmountCents)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp must be set")
	}

	recovered := NewRiskEventMessage(risk.Event{Kind: risk.EventRecovered, HouseholdID: "h1", MonthKey: "2026-08"})
	if recovered.MessageKey != "notifications.recovered" || recovered.AmountCents != 0 {
		t.Fatalf("recovered message wrong: %+v", recovered)
	}
	if recovered.EventID == msg.EventID {
		t.Fatal("event ids must be unique")
	}
}

func TestRiskEventMessageJSONRoundTrip(t *testing.T) {
	msg := &RiskEventMessage{
		EventID:     "evt-1",
		HouseholdID: "h1",
		MonthKey:    "2026-08",
		Kind:        "risk",
		MessageKey:  "notifications.risk",
		AmountCents: 12345,
		Timestamp:   time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
	}
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	parsed, err := RiskEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if *parsed != *msg {
		t.Fatalf("round trip mismatch: %+v vs %+v", parsed, msg)
	}
}

func TestRiskEventMessageInvalidJSON(t *testing.T) {
	if _, err := RiskEventMessageFromJSON([]byte(`{"amount_cents": "nope"}`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestNewRiskReducedMessage(t *testing.T) {
	msg := NewRiskReducedMessage("h1", "2026-08", 3000)
	if msg.Kind != "risk_reduced" || msg.MessageKey != "notifications.risk_reduced" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.AmountCents != 3000 {
		t.Fatalf("AmountCents = %d", msg.AmountCents)
	}
}
