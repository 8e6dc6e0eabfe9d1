package insights

import (
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
)

func TestComputeConfidence_FreshMonth(t *testing.T) {
	now := at(t, "2025-01-05 10:00")
	profile := model.Profile{Income: 175000, FixedExpenses: 50000, MonthlySubscriptions: 12000, SavingsGoal: 30000}
	s := pipeline.ComputeSnapshot(nil, profile, nil, now)

	got := ComputeConfidence(s)
	// 70 + 10 (streak capped) + 10 (on track)
	if got.Score != 90 {
		t.Fatalf("Score = %d, want 90", got.Score)
	}
	if got.Reason != "On track to save this month" {
		t.Fatalf("Reason = %q", got.Reason)
	}
	if !got.Timestamp.Equal(now) {
		t.Fatalf("Timestamp = %s, want %s", got.Timestamp, now)
	}
}

func TestComputeConfidence_Penalties(t *testing.T) {
	s := model.DerivedMetrics{
		SafeSpendToday:           ptr(0),
		ProjectedRemainingSigned: -4000,
		BudgetStatuses: []model.BudgetStatus{
			{Category: model.Food, HasBudget: true, Over: true},
			{Category: model.Shopping, HasBudget: true, Over: true},
			{Category: model.Bills, HasBudget: true},
		},
	}
	got := ComputeConfidence(s)
	if got.Score != 45 {
		t.Fatalf("Score = %d, want 45", got.Score)
	}
	if got.Reason != "Projected to overspend this month" {
		t.Fatalf("Reason = %q", got.Reason)
	}
}

func TestComputeConfidence_BudgetBonusNeedsABudget(t *testing.T) {
	within := model.DerivedMetrics{
		BudgetStatuses: []model.BudgetStatus{{Category: model.Food, HasBudget: true}},
	}
	if got := ComputeConfidence(within); got.Score != 75 || got.Reason != "All categories within budget" {
		t.Fatalf("ComputeConfidence = %+v, want 75 within budget", got)
	}

	if got := ComputeConfidence(model.DerivedMetrics{}); got.Score != 70 || got.Reason != "Stable financial health" {
		t.Fatalf("ComputeConfidence(empty) = %+v, want 70 stable", got)
	}
}

func TestComputeConfidence_StreakAndMargin(t *testing.T) {
	s := model.DerivedMetrics{
		NoSpendStreak:  2,
		SafeSpendToday: ptr(2000),
		BasePerDay:     1000,
	}
	got := ComputeConfidence(s)
	if got.Score != 79 {
		t.Fatalf("Score = %d, want 79", got.Score)
	}
	if got.Reason != "2 day no-spend streak!" {
		t.Fatalf("Reason = %q, want the streak label kept", got.Reason)
	}

	s.ProjectedRemainingSigned = 500
	got = ComputeConfidence(s)
	if got.Score != 89 || got.Reason != "On track to save this month" {
		t.Fatalf("ComputeConfidence = %+v, want 89 on track", got)
	}
}

func TestComputeConfidence_ClampsToZero(t *testing.T) {
	var statuses []model.BudgetStatus
	for _, c := range model.Categories {
		statuses = append(statuses, model.BudgetStatus{Category: c, HasBudget: true, Over: true})
	}
	s := model.DerivedMetrics{
		BudgetStatuses:           statuses,
		ProjectedRemainingSigned: -1,
		SafeSpendToday:           ptr(-1),
	}
	got := ComputeConfidence(s)
	if got.Score != 0 {
		t.Fatalf("Score = %d, want 0", got.Score)
	}
	if got.Reason != "Over spent today's limit" {
		t.Fatalf("Reason = %q", got.Reason)
	}
}

func TestComputeConfidence_FallsBackToBudgetMap(t *testing.T) {
	s := model.DerivedMetrics{
		Budgets:        model.CategoryBudgets{model.Food: 100},
		CategoryTotals: map[model.Category]int64{model.Food: 150},
	}
	if got := ComputeConfidence(s); got.Score != 65 || got.Reason != "1 categories over budget" {
		t.Fatalf("ComputeConfidence = %+v, want 65 with one over", got)
	}
}
