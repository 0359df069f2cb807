package core

import (
	"testing"
	"time"
)

func TestMonthDays(t *testing.T) {
	cases := []struct {
		m    Month
		want int
	}{
		{Month{2026, time.January}, 31},
		{Month{2026, time.February}, 28},
		{Month{2024, time.February}, 29}, // leap year
		{Month{2026, time.April}, 30},
		{Month{2026, time.December}, 31},
	}
	for _, tc := range cases {
		if got := tc.m.Days(); got != tc.want {
			t.Errorf("%s Days() = %d, want %d", tc.m.Key(), got, tc.want)
		}
	}
}

func TestMonthKeyAndParse(t *testing.T) {
	m := Month{2026, time.March}
	if m.Key() != "2026-03" {
		t.Fatalf("Key() = %q", m.Key())
	}
	parsed, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if parsed != m {
		t.Fatalf("ParseMonth round trip: %v", parsed)
	}
	if _, err := ParseMonth("2026/03"); err == nil {
		t.Fatal("expected error for bad format")
	}
}

func TestMonthAddMonths(t *testing.T) {
	m := Month{2026, time.January}
	if got := m.AddMonths(-1); got != (Month{2025, time.December}) {
		t.Fatalf("AddMonths(-1) = %v", got)
	}
	if got := m.AddMonths(-3); got != (Month{2025, time.October}) {
		t.Fatalf("AddMonths(-3) = %v", got)
	}
	if got := m.AddMonths(12); got != (Month{2027, time.January}) {
		t.Fatalf("AddMonths(12) = %v", got)
	}
}

func TestMonthCompareAndContains(t *testing.T) {
	a := Month{2026, time.May}
	b := Month{2026, time.June}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatal("Compare ordering broken")
	}
	if !a.Contains(time.Date(2026, 5, 31, 23, 0, 0, 0, time.UTC)) {
		t.Fatal("expected Contains true")
	}
	if a.Contains(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected Contains false")
	}
}
