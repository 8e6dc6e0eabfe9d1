package insights

import (
	"testing"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

func TestDetectFatigue(t *testing.T) {
	now := at(t, "2025-01-15 20:00")
	txs := []model.Transaction{
		expense(100, model.Food, at(t, "2025-01-15 09:00")),
		expense(80, model.Food, at(t, "2025-01-15 12:30")),
		expense(250, model.Shopping, at(t, "2025-01-15 16:00")),
		expense(60, model.Transport, at(t, "2025-01-15 19:45")),
		expense(500, model.Food, at(t, "2025-01-15 08:00")), // exactly at the cutoff
		expense(70, model.Food, at(t, "2025-01-15 21:00")),  // after now
		{Amount: 5000, Type: model.Income, Category: model.Bonus, CreatedAt: at(t, "2025-01-15 18:00")},
	}

	res := DetectFatigue(txs, 0, 0, now)
	if !res.Detected || res.Count != 4 {
		t.Fatalf("DetectFatigue = %+v, want detected with count 4", res)
	}

	res = DetectFatigue(txs, 5, 12*time.Hour, now)
	if res.Detected {
		t.Fatalf("DetectFatigue with threshold 5 = %+v, want not detected", res)
	}

	res = DetectFatigue(txs, 2, time.Hour, now)
	if res.Count != 1 || res.Detected {
		t.Fatalf("DetectFatigue 1h window = %+v, want count 1", res)
	}
}

func TestFatigueEventMessage(t *testing.T) {
	ev := FatigueEvent(model.FatigueResult{Detected: true, Count: 5}, 0)
	if ev.Key != "fatigue" || ev.Type != model.EventFatigue {
		t.Fatalf("event = %+v", ev)
	}
	want := "You've logged 5 expenses in the last 12 hours. Time for a pause?"
	if ev.Message != want {
		t.Fatalf("Message = %q, want %q", ev.Message, want)
	}
}
