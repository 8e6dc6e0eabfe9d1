package insights

import (
	"sync"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

// DefaultCooldown is how long an alert key stays quiet after it fires.
const DefaultCooldown = 6 * time.Hour

// Watcher turns consecutive snapshots into rate-limited alerts. It keeps the
// previous snapshot and the last time each alert key fired. Safe for
// concurrent use.
type Watcher struct {
	mu        sync.Mutex
	prev      *model.DerivedMetrics
	lastFired map[string]time.Time
	cooldown  time.Duration
	now       func() time.Time
}

// NewWatcher creates a watcher. A zero cooldown means DefaultCooldown and a
// nil clock means time.Now.
func NewWatcher(cooldown time.Duration, now func() time.Time) *Watcher {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &Watcher{
		lastFired: make(map[string]time.Time),
		cooldown:  cooldown,
		now:       now,
	}
}

// OnSnapshot compares next with the previously seen snapshot and returns the
// crossings whose keys are out of cooldown. The first snapshot only primes
// the watcher.
func (w *Watcher) OnSnapshot(next model.DerivedMetrics) []model.InsightEvent {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev := w.prev
	w.prev = &next
	if prev == nil {
		return nil
	}
	return w.filterLocked(DetectCrossings(*prev, next))
}

// Dispatch applies the cooldown to events produced outside the crossing
// detector, such as fatigue or recurring suggestions.
func (w *Watcher) Dispatch(events []model.InsightEvent) []model.InsightEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filterLocked(events)
}

// Previous returns the last snapshot seen, if any.
func (w *Watcher) Previous() (model.DerivedMetrics, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.prev == nil {
		return model.DerivedMetrics{}, false
	}
	return *w.prev, true
}

func (w *Watcher) filterLocked(events []model.InsightEvent) []model.InsightEvent {
	var out []model.InsightEvent
	now := w.now()
	for _, ev := range events {
		key := ev.Key
		if key == "" {
			key = ev.Title
		}
		if last, ok := w.lastFired[key]; ok && now.Sub(last) < w.cooldown {
			continue
		}
		w.lastFired[key] = now
		out = append(out, ev)
	}
	return out
}
