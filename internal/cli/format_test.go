package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{83000, "83,000"},
		{175000, "1,75,000"},
		{1234567, "12,34,567"},
		{123456789, "12,34,56,789"},
		{-1200, "-1,200"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(3074); got != "₹3,074" {
		t.Fatalf("FormatMoney(3074) = %q, want %q", got, "₹3,074")
	}
	if got := FormatMoney(-227000); got != "-₹2,27,000" {
		t.Fatalf("FormatMoney(-227000) = %q", got)
	}
	if got := FormatDelta(-23); got != "-₹23" {
		t.Fatalf("FormatDelta(-23) = %q", got)
	}
	if got := FormatDelta(0); got != "+₹0" {
		t.Fatalf("FormatDelta(0) = %q", got)
	}
}

func TestFormatSafeSpend(t *testing.T) {
	if got := FormatSafeSpend(nil); got != "n/a" {
		t.Fatalf("FormatSafeSpend(nil) = %q", got)
	}
	v := int64(500)
	if got := FormatSafeSpend(&v); got != "₹500" {
		t.Fatalf("FormatSafeSpend(500) = %q", got)
	}
}

func TestRenderTableAlignsWideCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Spent"},
		Rows: [][]string{
			{"Food", FormatMoney(6000)},
			{"---"},
			{"Transport", FormatMoney(250)},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "₹6,000") {
		t.Fatalf("missing amount:\n%s", out)
	}
}

func TestRenderBudgetBarLabels(t *testing.T) {
	over := model.BudgetStatus{Category: model.Food, Cap: 5000, Spent: 6000, HasBudget: true, Ratio: 1.2, Over: true, OverBy: 1000}
	if out := RenderBudgetBar(over, 10, 20); !strings.Contains(out, "OVER by ₹1000") {
		t.Fatalf("over bar missing label: %q", out)
	}

	none := model.BudgetStatus{Category: model.Transport, Spent: 250}
	if out := RenderBudgetBar(none, 10, 20); !strings.Contains(out, "no budget") {
		t.Fatalf("unbudgeted bar missing label: %q", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 50, 100}); got != "▁▄█" {
		t.Fatalf("RenderSparkline = %q, want %q", got, "▁▄█")
	}
	if got := RenderSparkline(nil); got != "" {
		t.Fatalf("RenderSparkline(nil) = %q", got)
	}
}

func TestRenderGoalBar(t *testing.T) {
	days := 45
	needed := int64(12500)
	p := model.GoalProgress{
		Goal:          model.SavingsGoal{Name: "Laptop", TargetAmount: 50000, CurrentSaved: 12500},
		Ratio:         0.25,
		Percent:       25,
		Remaining:     37500,
		DaysLeft:      &days,
		MonthlyNeeded: &needed,
	}
	got := RenderGoalBar(p, 10, 20)
	for _, want := range []string{"Laptop", "₹12,500 / ₹50,000", "25%", "₹12,500/month to finish"} {
		if !strings.Contains(got, want) {
			t.Fatalf("RenderGoalBar missing %q: %q", want, got)
		}
	}

	overdue := -3
	p.DaysLeft = &overdue
	p.Overdue = true
	if got := RenderGoalBar(p, 10, 20); !strings.Contains(got, "overdue by 3 days") {
		t.Fatalf("RenderGoalBar = %q, want overdue note", got)
	}
}
