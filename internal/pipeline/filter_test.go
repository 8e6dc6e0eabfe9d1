package pipeline

import (
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
)

func TestFilters(t *testing.T) {
	txs := []model.Transaction{
		expense("a", 100, model.Food, at(t, "2025-01-03 09:00")),
		expense("b", 200, model.Transport, at(t, "2025-01-05 09:00")),
		{ID: "c", Amount: 90000, Type: model.Income, Category: model.Salary, CreatedAt: at(t, "2025-01-06 09:00")},
		expense("d", 300, model.Food, at(t, "2025-01-07 09:00")),
	}

	got := FilterByTime(txs, at(t, "2025-01-05 09:00"), at(t, "2025-01-07 09:00"))
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Fatalf("FilterByTime = %+v, want [b c]", got)
	}
	if got := FilterByTime(txs, at(t, "2025-01-05 00:00"), at(t, "2025-01-05 00:00").AddDate(1, 0, 0)); len(got) != 3 {
		t.Fatalf("FilterByTime open end = %d, want 3", len(got))
	}

	if got := FilterByCategory(txs, model.Food); len(got) != 2 {
		t.Fatalf("FilterByCategory(Food) = %d, want 2", len(got))
	}
	if got := FilterByCategory(txs, ""); len(got) != 4 {
		t.Fatalf("FilterByCategory(\"\") = %d, want 4", len(got))
	}
	if got := Expenses(txs); len(got) != 3 {
		t.Fatalf("Expenses = %d, want 3", len(got))
	}
}

func TestRecentNewestFirst(t *testing.T) {
	txs := []model.Transaction{
		expense("a", 100, model.Food, at(t, "2025-01-03 09:00")),
		expense("b", 200, model.Food, at(t, "2025-01-07 09:00")),
		expense("c", 300, model.Food, at(t, "2025-01-05 09:00")),
	}

	got := Recent(txs, 2)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Fatalf("Recent = %+v, want [b c]", got)
	}
	if txs[0].ID != "a" {
		t.Fatal("Recent reordered its input")
	}
}
