package insights

import (
	"reflect"
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
)

func whatIfSnapshot() model.DerivedMetrics {
	return model.DerivedMetrics{
		SafeSpendToday:     ptr(500),
		RemainingSpendable: 13500,
		DaysLeft:           27,
		DaysInMonth:        31,
		SavingsGoal:        30000,
		WeekSpent:          1000,
		SpentThisMonth:     69500,
		CategoryTotals:     map[model.Category]int64{model.Food: 4800},
		Budgets:            model.CategoryBudgets{model.Food: 5000},
	}
}

func TestSimulateWhatIf_Risky(t *testing.T) {
	res := SimulateWhatIf(whatIfSnapshot(), 600, model.Food)

	if res.Status != model.StatusRisky {
		t.Fatalf("Status = %s, want RISKY", res.Status)
	}
	if res.NewValues.SafeSpendToday != 477 {
		t.Fatalf("new SafeSpendToday = %d, want 477", res.NewValues.SafeSpendToday)
	}
	if res.Deltas.SafeSpendToday != -23 {
		t.Fatalf("delta SafeSpendToday = %d, want -23", res.Deltas.SafeSpendToday)
	}
	if res.NewValues.RemainingSpendable != 12900 || res.Deltas.RemainingSpendable != -600 {
		t.Fatalf("remaining = %d (delta %d), want 12900 (-600)",
			res.NewValues.RemainingSpendable, res.Deltas.RemainingSpendable)
	}
	if res.NewValues.WeekSpent != 1600 || res.NewValues.SpentThisMonth != 70100 {
		t.Fatalf("week/month = %d/%d, want 1600/70100", res.NewValues.WeekSpent, res.NewValues.SpentThisMonth)
	}
	if res.NewValues.CategorySpent != 5400 {
		t.Fatalf("CategorySpent = %d, want 5400", res.NewValues.CategorySpent)
	}
	if res.GoalDelayDays != 1 {
		t.Fatalf("GoalDelayDays = %d, want 1", res.GoalDelayDays)
	}
	if !res.ExceedsBudget || res.BudgetRatio <= 1 {
		t.Fatalf("budget ratio = %.2f exceeds=%v, want over 1", res.BudgetRatio, res.ExceedsBudget)
	}
}

func TestSimulateWhatIf_Status(t *testing.T) {
	s := whatIfSnapshot()
	cases := []struct {
		amount int64
		want   model.WhatIfStatus
	}{
		{0, model.StatusSafe},
		{500, model.StatusSafe},
		{501, model.StatusRisky},
		{1000, model.StatusRisky},
		{1001, model.StatusNotAdvised},
	}
	for _, tc := range cases {
		if got := SimulateWhatIf(s, tc.amount, model.Shopping).Status; got != tc.want {
			t.Fatalf("amount %d: Status = %s, want %s", tc.amount, got, tc.want)
		}
	}
}

func TestSimulateWhatIf_Overdraw(t *testing.T) {
	s := whatIfSnapshot()
	s.RemainingSpendable = 100

	res := SimulateWhatIf(s, 600, model.Transport)
	if res.NewValues.RemainingSpendable != -500 {
		t.Fatalf("new remaining = %d, want -500", res.NewValues.RemainingSpendable)
	}
	if res.NewValues.SafeSpendToday != 0 {
		t.Fatalf("new SafeSpendToday = %d, want 0", res.NewValues.SafeSpendToday)
	}
	if res.ExceedsBudget || res.BudgetRatio != 0 {
		t.Fatalf("unbudgeted category reported ratio %.2f", res.BudgetRatio)
	}
}

func TestSimulateWhatIf_NoGoalNoDelay(t *testing.T) {
	s := whatIfSnapshot()
	s.SavingsGoal = 0
	if got := SimulateWhatIf(s, 5000, model.Food).GoalDelayDays; got != 0 {
		t.Fatalf("GoalDelayDays = %d, want 0", got)
	}
}

func TestSimulateWhatIf_UnconfiguredProfile(t *testing.T) {
	s := model.DerivedMetrics{DaysLeft: 10, DaysInMonth: 30}
	if got := SimulateWhatIf(s, 1, model.Food).Status; got != model.StatusNotAdvised {
		t.Fatalf("Status = %s, want NOT ADVISED without a safe spend", got)
	}
}

func TestSimulateWhatIf_DoesNotMutate(t *testing.T) {
	now := at(t, "2025-01-15 12:00")
	profile := model.Profile{Income: 60000, FixedExpenses: 20000, SavingsGoal: 10000}
	txs := []model.Transaction{
		expense(3000, model.Food, at(t, "2025-01-03 12:00")),
		expense(800, model.Transport, at(t, "2025-01-14 12:00")),
	}
	budgets := model.CategoryBudgets{model.Food: 3500}

	s := pipeline.ComputeSnapshot(txs, profile, budgets, now)
	want := pipeline.ComputeSnapshot(txs, profile, budgets, now)

	for _, amount := range []int64{0, 200, 5000, 100000} {
		SimulateWhatIf(s, amount, model.Food)
		SimulateWhatIf(s, amount, "")
	}
	if !reflect.DeepEqual(s, want) {
		t.Fatal("SimulateWhatIf mutated its snapshot")
	}
}
