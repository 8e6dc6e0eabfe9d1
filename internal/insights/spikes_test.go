package insights

import (
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
)

func TestDetectSpikes(t *testing.T) {
	now := at(t, "2025-01-20 12:00")
	txs := []model.Transaction{
		expense(100, model.Food, at(t, "2025-01-02 12:00")),
		expense(100, model.Food, at(t, "2025-01-03 12:00")),
		expense(3000, model.Shopping, at(t, "2025-01-10 12:00")),
		expense(9000, model.Shopping, at(t, "2024-12-30 12:00")),
	}

	rep := DetectSpikes(txs, now)
	if rep.Threshold != 213 {
		t.Fatalf("Threshold = %d, want 213", rep.Threshold)
	}
	if len(rep.Spikes) != 1 || rep.Spikes[0].Amount != 3000 {
		t.Fatalf("Spikes = %+v, want the 3000 expense", rep.Spikes)
	}
	if rep.MostExpensiveDay == nil || rep.MostExpensiveDay.YMD != "2025-01-10" || rep.MostExpensiveDay.Total != 3000 {
		t.Fatalf("MostExpensiveDay = %+v", rep.MostExpensiveDay)
	}
}

func TestDetectSpikes_EmptyMonth(t *testing.T) {
	rep := DetectSpikes(nil, at(t, "2025-01-20 12:00"))
	if rep.MostExpensiveDay != nil || len(rep.Spikes) != 0 {
		t.Fatalf("DetectSpikes(nil) = %+v, want empty report", rep)
	}
}
