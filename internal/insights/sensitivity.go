package insights

import "github.com/theirongolddev/wisespend/internal/model"

const lateMonthProgress = 0.7

// Sensitivity flags a period where each spend weighs more than usual.
type Sensitivity struct {
	Label   string `json:"label"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// TimeSensitivity reports late-month sensitivity once more than 70% of the
// month has passed.
func TimeSensitivity(s model.DerivedMetrics) (Sensitivity, bool) {
	if s.DaysInMonth <= 0 {
		return Sensitivity{}, false
	}
	if float64(s.DayOfMonth)/float64(s.DaysInMonth) <= lateMonthProgress {
		return Sensitivity{}, false
	}
	return Sensitivity{
		Label:   "Late-month sensitivity",
		Level:   "medium",
		Message: "You are in the last 30% of the month. Every ₹ counts more now.",
	}, true
}
