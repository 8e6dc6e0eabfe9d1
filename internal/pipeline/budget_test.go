package pipeline

import (
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
)

func TestTrackBudgets(t *testing.T) {
	totals := map[model.Category]int64{
		model.Food:      4500,
		model.Transport: 1200,
		model.Shopping:  900,
	}
	caps := model.CategoryBudgets{
		model.Food:      5000,
		model.Transport: 1000,
		model.Shopping:  0,
	}

	statuses := TrackBudgets(totals, caps)
	if len(statuses) != 3 {
		t.Fatalf("statuses len = %d, want 3", len(statuses))
	}

	food, transport, shopping := statuses[0], statuses[1], statuses[2]
	if food.Category != model.Food || food.Over || food.PercentUsed != 90 {
		t.Fatalf("food = %+v, want 90%% used", food)
	}
	if food.Label() != "90% used" {
		t.Fatalf("food label = %q", food.Label())
	}
	if !transport.Over || transport.OverBy != 200 {
		t.Fatalf("transport = %+v, want over by 200", transport)
	}
	if shopping.HasBudget || shopping.Over {
		t.Fatalf("shopping = %+v, want no budget", shopping)
	}
	if shopping.Label() != "no budget" {
		t.Fatalf("shopping label = %q, want %q", shopping.Label(), "no budget")
	}

	over, budgeted := OverBudgetCount(statuses)
	if over != 1 || budgeted != 2 {
		t.Fatalf("OverBudgetCount = %d/%d, want 1/2", over, budgeted)
	}
}

func TestTrackBudgets_ExactlyAtCapIsNotOver(t *testing.T) {
	statuses := TrackBudgets(
		map[model.Category]int64{model.Bills: 3000},
		model.CategoryBudgets{model.Bills: 3000},
	)
	if statuses[0].Over {
		t.Fatal("spend equal to cap reported as over")
	}
	if statuses[0].PercentUsed != 100 {
		t.Fatalf("PercentUsed = %d, want 100", statuses[0].PercentUsed)
	}
}
