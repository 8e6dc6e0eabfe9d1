package pipeline

import (
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
)

func TestRunDue(t *testing.T) {
	now := at(t, "2025-03-10 09:00")
	rules := []model.RecurringRule{
		{ID: "rent", Title: "Rent", Amount: 20000, Category: model.Bills, Cadence: model.Monthly,
			NextRunDate: at(t, "2025-03-01 00:00"), Active: true, Type: model.Expense},
		{ID: "gym", Title: "Gym", Amount: 500, Category: model.Health, Cadence: model.Weekly,
			NextRunDate: at(t, "2025-03-12 00:00"), Active: true, Type: model.Expense},
		{ID: "paused", Title: "Paused", Amount: 100, Category: model.Other, Cadence: model.Daily,
			NextRunDate: at(t, "2025-03-01 00:00"), Active: false, Type: model.Expense},
	}

	created, updated := RunDue(rules, now)
	if len(created) != 1 || len(updated) != 1 {
		t.Fatalf("created/updated = %d/%d, want 1/1", len(created), len(updated))
	}

	tx := created[0]
	if tx.Amount != 20000 || tx.Category != model.Bills || tx.Note != "Rent" || !tx.CreatedAt.Equal(now) {
		t.Fatalf("created tx = %+v", tx)
	}
	if tx.ID == "" {
		t.Fatal("created tx has no ID")
	}
	if want := at(t, "2025-04-01 00:00"); !updated[0].NextRunDate.Equal(want) {
		t.Fatalf("NextRunDate = %s, want %s", updated[0].NextRunDate, want)
	}
	if !rules[0].NextRunDate.Equal(at(t, "2025-03-01 00:00")) {
		t.Fatal("RunDue modified its input rules")
	}
}

func TestCadenceAdvance(t *testing.T) {
	base := at(t, "2025-01-31 00:00")
	cases := []struct {
		cadence model.Cadence
		want    string
	}{
		{model.Daily, "2025-02-01 00:00"},
		{model.Weekly, "2025-02-07 00:00"},
		{model.Monthly, "2025-03-03 00:00"},
		{model.Yearly, "2026-01-31 00:00"},
	}
	for _, tc := range cases {
		if got := tc.cadence.Advance(base); !got.Equal(at(t, tc.want)) {
			t.Fatalf("%s advance = %s, want %s", tc.cadence, got, tc.want)
		}
	}
}
