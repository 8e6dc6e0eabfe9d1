package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d := at(t, s+" 00:00")
	return &d
}

func TestGoalProgressAt_Undated(t *testing.T) {
	g := model.SavingsGoal{Name: "Laptop", TargetAmount: 50000, CurrentSaved: 12500}
	p := GoalProgressAt(g, at(t, "2025-01-15 10:00"))
	if p.Ratio != 0.25 || p.Percent != 25 || p.Remaining != 37500 || p.Complete {
		t.Fatalf("progress = %+v", p)
	}
	if p.DaysLeft != nil || p.MonthlyNeeded != nil || p.Overdue {
		t.Fatalf("undated goal has schedule %+v", p)
	}
}

func TestGoalProgressAt_MonthlyNeeded(t *testing.T) {
	now := at(t, "2025-01-15 10:00")
	g := model.SavingsGoal{TargetAmount: 50000, CurrentSaved: 12500, TargetDate: datePtr(t, "2025-04-15")}

	p := GoalProgressAt(g, now)
	if p.DaysLeft == nil || *p.DaysLeft != 90 {
		t.Fatalf("DaysLeft = %v, want 90", p.DaysLeft)
	}
	if *p.MonthlyNeeded != 12500 {
		t.Fatalf("MonthlyNeeded = %d, want 12500 over 3 months", *p.MonthlyNeeded)
	}

	g.TargetDate = datePtr(t, "2025-04-20")
	if p := GoalProgressAt(g, now); *p.MonthlyNeeded != 9375 {
		t.Fatalf("MonthlyNeeded = %d, want 9375 over 4 months", *p.MonthlyNeeded)
	}

	g.TargetDate = datePtr(t, "2025-01-20")
	if p := GoalProgressAt(g, now); *p.MonthlyNeeded != 37500 {
		t.Fatalf("MonthlyNeeded = %d, want the full remainder within a month", *p.MonthlyNeeded)
	}
}

func TestGoalProgressAt_OverdueAndComplete(t *testing.T) {
	now := at(t, "2025-01-15 10:00")
	g := model.SavingsGoal{TargetAmount: 50000, CurrentSaved: 12500, TargetDate: datePtr(t, "2025-01-10")}

	p := GoalProgressAt(g, now)
	if !p.Overdue || *p.DaysLeft != -5 || *p.MonthlyNeeded != 37500 {
		t.Fatalf("overdue progress = %+v", p)
	}

	g.CurrentSaved = 60000
	p = GoalProgressAt(g, now)
	if p.Overdue || !p.Complete || p.Ratio != 1 || p.Percent != 100 || p.Remaining != 0 {
		t.Fatalf("complete progress = %+v", p)
	}
}

func TestGoalProgressAt_ZeroTarget(t *testing.T) {
	p := GoalProgressAt(model.SavingsGoal{CurrentSaved: 100}, at(t, "2025-01-15 10:00"))
	if p.Ratio != 0 || p.Complete {
		t.Fatalf("zero target progress = %+v", p)
	}
}

func TestRankGoals(t *testing.T) {
	now := at(t, "2025-01-15 10:00")
	goals := []model.SavingsGoal{
		{ID: "old", TargetAmount: 100, CreatedAt: at(t, "2024-11-01 10:00")},
		{ID: "late", TargetAmount: 100, TargetDate: datePtr(t, "2025-12-01")},
		{ID: "new", TargetAmount: 100, CreatedAt: at(t, "2025-01-01 10:00")},
		{ID: "soon", TargetAmount: 100, TargetDate: datePtr(t, "2025-03-01")},
	}
	got := RankGoals(goals, now)
	want := []string{"soon", "late", "new", "old"}
	for i, id := range want {
		if got[i].Goal.ID != id {
			t.Fatalf("order[%d] = %s, want %s", i, got[i].Goal.ID, id)
		}
	}
}
