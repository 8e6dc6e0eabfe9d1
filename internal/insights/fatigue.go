package insights

import (
	"fmt"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

// Fatigue defaults, used when a caller passes zero values.
const (
	DefaultFatigueThreshold = 4
	DefaultFatigueWindow    = 12 * time.Hour
)

// DetectFatigue counts expenses created in (now-window, now] and flags
// fatigue when the count reaches threshold.
func DetectFatigue(txs []model.Transaction, threshold int, window time.Duration, now time.Time) model.FatigueResult {
	if threshold <= 0 {
		threshold = DefaultFatigueThreshold
	}
	if window <= 0 {
		window = DefaultFatigueWindow
	}
	cutoff := now.Add(-window)

	count := 0
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		if tx.CreatedAt.After(cutoff) && !tx.CreatedAt.After(now) {
			count++
		}
	}
	return model.FatigueResult{Detected: count >= threshold, Count: count}
}

// FatigueEvent describes a detected fatigue result for the watcher.
func FatigueEvent(res model.FatigueResult, window time.Duration) model.InsightEvent {
	if window <= 0 {
		window = DefaultFatigueWindow
	}
	return model.InsightEvent{
		Key:     "fatigue",
		Type:    model.EventFatigue,
		Title:   "Spend Fatigue",
		Message: fmt.Sprintf("You've logged %d expenses in the last %d hours. Time for a pause?", res.Count, int(window.Hours())),
	}
}
