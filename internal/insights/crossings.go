package insights

import (
	"fmt"

	"github.com/theirongolddev/wisespend/internal/model"
)

const budgetAlertRatio = 0.9

// Alert titles. Keys for budget events append ":<category>".
const (
	TitleDailyLimit         = "Daily Limit Reached"
	TitleNegativeProjection = "Negative Projection"
	TitleBudgetExceeded     = "Budget Exceeded"
	TitleBudgetAlert        = "Budget Alert"
)

// DetectCrossings reports edges between two consecutive snapshots. A
// condition that already held in prev never fires. Per category, Exceeded
// wins over Alert when a single step jumps past both lines.
func DetectCrossings(prev, next model.DerivedMetrics) []model.InsightEvent {
	var events []model.InsightEvent

	prevSafe, prevOK := prev.SafeSpend()
	nextSafe, nextOK := next.SafeSpend()
	if prevOK && nextOK && prevSafe > 0 && nextSafe <= 0 {
		events = append(events, model.InsightEvent{
			Key:     TitleDailyLimit,
			Type:    model.EventWarning,
			Title:   TitleDailyLimit,
			Message: "You've exhausted your safe spend for today.",
		})
	}

	if prev.ProjectedRemainingSigned >= 0 && next.ProjectedRemainingSigned < 0 {
		events = append(events, model.InsightEvent{
			Key:     TitleNegativeProjection,
			Type:    model.EventBudget,
			Title:   TitleNegativeProjection,
			Message: "At this rate, you'll overspend your monthly budget.",
		})
	}

	for _, c := range model.Categories {
		limit := next.Budgets[c]
		if limit <= 0 {
			continue
		}
		prevUtil := float64(prev.CategoryTotals[c]) / float64(limit)
		nextUtil := float64(next.CategoryTotals[c]) / float64(limit)

		switch {
		case prevUtil < 1 && nextUtil >= 1:
			events = append(events, budgetEvent(TitleBudgetExceeded, model.EventBudget, c,
				fmt.Sprintf("You've spent more than your %s budget.", c)))
		case prevUtil < budgetAlertRatio && nextUtil >= budgetAlertRatio:
			events = append(events, budgetEvent(TitleBudgetAlert, model.EventWarning, c,
				fmt.Sprintf("You've used 90%% of your %s budget.", c)))
		}
	}
	return events
}

func budgetEvent(title string, typ model.EventType, c model.Category, msg string) model.InsightEvent {
	return model.InsightEvent{
		Key:      title + ":" + string(c),
		Type:     typ,
		Title:    title,
		Message:  msg,
		Category: c,
	}
}
