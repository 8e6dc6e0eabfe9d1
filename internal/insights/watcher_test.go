package insights

import (
	"testing"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

func safeSnapshot(v int64) model.DerivedMetrics {
	return model.DerivedMetrics{SafeSpendToday: ptr(v)}
}

func TestWatcher_DailyLimitDebounce(t *testing.T) {
	clock := &fakeClock{t: at(t, "2025-01-15 09:00")}
	w := NewWatcher(0, clock.Now)

	if ev := w.OnSnapshot(safeSnapshot(500)); len(ev) != 0 {
		t.Fatalf("first snapshot emitted %+v", ev)
	}
	ev := w.OnSnapshot(safeSnapshot(0))
	if len(ev) != 1 || ev[0].Title != TitleDailyLimit {
		t.Fatalf("OnSnapshot = %+v, want one daily limit event", ev)
	}

	clock.Advance(time.Hour)
	if ev := w.OnSnapshot(safeSnapshot(0)); len(ev) != 0 {
		t.Fatalf("steady state emitted %+v", ev)
	}

	clock.Advance(time.Hour)
	w.OnSnapshot(safeSnapshot(300))
	clock.Advance(time.Hour)
	if ev := w.OnSnapshot(safeSnapshot(0)); len(ev) != 0 {
		t.Fatalf("re-crossing inside cooldown emitted %+v", ev)
	}

	clock.Advance(3 * time.Hour)
	w.OnSnapshot(safeSnapshot(300))
	if ev := w.OnSnapshot(safeSnapshot(0)); len(ev) != 1 {
		t.Fatalf("re-crossing after cooldown emitted %d events, want 1", len(ev))
	}
}

func TestWatcher_KeysAreIndependent(t *testing.T) {
	clock := &fakeClock{t: at(t, "2025-01-15 09:00")}
	w := NewWatcher(6*time.Hour, clock.Now)

	budgets := model.CategoryBudgets{model.Food: 1000, model.Shopping: 1000}
	w.OnSnapshot(model.DerivedMetrics{Budgets: budgets, CategoryTotals: map[model.Category]int64{}})
	ev := w.OnSnapshot(model.DerivedMetrics{
		Budgets:        budgets,
		CategoryTotals: map[model.Category]int64{model.Food: 1100},
	})
	if len(ev) != 1 || ev[0].Category != model.Food {
		t.Fatalf("OnSnapshot = %+v, want Food exceeded", ev)
	}

	ev = w.OnSnapshot(model.DerivedMetrics{
		Budgets:        budgets,
		CategoryTotals: map[model.Category]int64{model.Food: 1100, model.Shopping: 1500},
	})
	if len(ev) != 1 || ev[0].Category != model.Shopping {
		t.Fatalf("OnSnapshot = %+v, want Shopping exceeded", ev)
	}
}

func TestWatcher_Dispatch(t *testing.T) {
	clock := &fakeClock{t: at(t, "2025-01-15 09:00")}
	w := NewWatcher(0, clock.Now)

	fatigue := FatigueEvent(model.FatigueResult{Detected: true, Count: 4}, 0)
	if got := w.Dispatch([]model.InsightEvent{fatigue}); len(got) != 1 {
		t.Fatalf("Dispatch = %d events, want 1", len(got))
	}
	clock.Advance(5 * time.Hour)
	if got := w.Dispatch([]model.InsightEvent{fatigue}); len(got) != 0 {
		t.Fatalf("Dispatch inside cooldown = %d events, want 0", len(got))
	}
	clock.Advance(time.Hour)
	if got := w.Dispatch([]model.InsightEvent{fatigue}); len(got) != 1 {
		t.Fatalf("Dispatch after cooldown = %d events, want 1", len(got))
	}

	if _, ok := w.Previous(); ok {
		t.Fatal("Dispatch should not record a snapshot")
	}
}
