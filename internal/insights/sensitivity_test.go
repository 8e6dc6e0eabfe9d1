package insights

import (
	"testing"

	"github.com/theirongolddev/wisespend/internal/model"
)

func TestTimeSensitivity(t *testing.T) {
	if _, ok := TimeSensitivity(model.DerivedMetrics{DayOfMonth: 21, DaysInMonth: 30}); ok {
		t.Fatal("day 21 of 30 flagged, want not flagged")
	}
	if _, ok := TimeSensitivity(model.DerivedMetrics{DayOfMonth: 21, DaysInMonth: 31}); ok {
		t.Fatal("day 21 of 31 flagged, want not flagged")
	}
	s, ok := TimeSensitivity(model.DerivedMetrics{DayOfMonth: 22, DaysInMonth: 30})
	if !ok {
		t.Fatal("day 22 of 30 not flagged")
	}
	if s.Level != "medium" || s.Label != "Late-month sensitivity" {
		t.Fatalf("sensitivity = %+v", s)
	}
	if _, ok := TimeSensitivity(model.DerivedMetrics{DayOfMonth: 22, DaysInMonth: 31}); !ok {
		t.Fatal("day 22 of 31 not flagged")
	}
	if _, ok := TimeSensitivity(model.DerivedMetrics{}); ok {
		t.Fatal("zero snapshot flagged")
	}
}
