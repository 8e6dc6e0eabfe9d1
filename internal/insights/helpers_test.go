package insights

import (
	"testing"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return d
}

func ptr(v int64) *int64 { return &v }

func expense(amount int64, cat model.Category, when time.Time) model.Transaction {
	return model.Transaction{ID: when.Format(time.RFC3339), Amount: amount, Type: model.Expense, Category: cat, CreatedAt: when}
}

// fakeClock is a settable clock for the watcher.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
