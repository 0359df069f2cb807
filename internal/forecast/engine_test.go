package forecast

import (
	"errors"
	"testing"

	"previsao/internal/core"
)

func TestComputeInMonthRunRate(t *testing.T) {
	// 1000 - 400 - (150/10 * 20) = 300
	in := Inputs{
		CurrentBalance:             core.Money{Cents: 100000},
		PendingFixedExpenses:       core.Money{Cents: 40000},
		ConfirmedVariableThisMonth: core.Money{Cents: 15000},
		HistoricalVariableAvg:      core.Money{Cents: 30000},
		DaysElapsed:                10,
		DaysInMonth:                30,
	}
	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.DailyRunRate.Cents != 1500 {
		t.Fatalf("DailyRunRate = %d", res.DailyRunRate.Cents)
	}
	if res.ProjectedRemainingVariable.Cents != 30000 {
		t.Fatalf("ProjectedRemainingVariable = %d", res.ProjectedRemainingVariable.Cents)
	}
	if res.ProjectedBalance.Cents != 30000 {
		t.Fatalf("ProjectedBalance = %d", res.ProjectedBalance.Cents)
	}
	if res.DaysRemaining != 20 {
		t.Fatalf("DaysRemaining = %d", res.DaysRemaining)
	}
}

func TestComputeHistoricalFallbackOnFreshMonth(t *testing.T) {
	in := Inputs{
		CurrentBalance:        core.Money{Cents: 100000},
		HistoricalVariableAvg: core.Money{Cents: 30000},
		DaysElapsed:           0,
		DaysInMonth:           30,
	}
	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// full historical average projected over the whole month
	if res.ProjectedRemainingVariable.Cents != 30000 {
		t.Fatalf("ProjectedRemainingVariable = %d", res.ProjectedRemainingVariable.Cents)
	}
	if res.ProjectedBalance.Cents != 70000 {
		t.Fatalf("ProjectedBalance = %d", res.ProjectedBalance.Cents)
	}
}

func TestComputePrefersInMonthRateOverHistorical(t *testing.T) {
	// One elapsed day with zero spend beats a large historical average.
	in := Inputs{
		CurrentBalance:        core.Money{Cents: 100000},
		HistoricalVariableAvg: core.Money{Cents: 90000},
		DaysElapsed:           1,
		DaysInMonth:           30,
	}
	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.ProjectedRemainingVariable.Cents != 0 {
		t.Fatalf("expected zero remaining spend, got %d", res.ProjectedRemainingVariable.Cents)
	}
}

func TestComputeDeterminism(t *testing.T) {
	in := Inputs{
		CurrentBalance:             core.Money{Cents: -12345},
		PendingFixedExpenses:       core.Money{Cents: 777},
		ConfirmedVariableThisMonth: core.Money{Cents: 10001},
		HistoricalVariableAvg:      core.Money{Cents: 5000},
		DaysElapsed:                7,
		DaysInMonth:                31,
	}
	first, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if again != first {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestComputeInvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		in   Inputs
	}{
		{"zero days in month", Inputs{DaysInMonth: 0}},
		{"negative days in month", Inputs{DaysInMonth: -1}},
		{"negative days elapsed", Inputs{DaysInMonth: 30, DaysElapsed: -1}},
		{"elapsed beyond month", Inputs{DaysInMonth: 30, DaysElapsed: 31}},
		{"negative pending fixed", Inputs{DaysInMonth: 30, PendingFixedExpenses: core.Money{Cents: -1}}},
		{"negative confirmed variable", Inputs{DaysInMonth: 30, ConfirmedVariableThisMonth: core.Money{Cents: -1}}},
		{"negative historical avg", Inputs{DaysInMonth: 30, HistoricalVariableAvg: core.Money{Cents: -1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.in)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestComputeFullyElapsedMonthHasNoRemainingSpend(t *testing.T) {
	in := Inputs{
		CurrentBalance:             core.Money{Cents: 50000},
		PendingFixedExpenses:       core.Money{Cents: 10000},
		ConfirmedVariableThisMonth: core.Money{Cents: 31000},
		DaysElapsed:                31,
		DaysInMonth:                31,
	}
	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.ProjectedRemainingVariable.Cents != 0 {
		t.Fatalf("ProjectedRemainingVariable = %d", res.ProjectedRemainingVariable.Cents)
	}
	if res.ProjectedBalance.Cents != 40000 {
		t.Fatalf("ProjectedBalance = %d", res.ProjectedBalance.Cents)
	}
}
