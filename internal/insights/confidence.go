package insights

import (
	"fmt"

	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
)

const (
	baseConfidence    = 70
	defaultReason     = "Stable financial health"
	comfortableMargin = 1.2
	maxStreakBonus    = 10
	overBudgetPenalty = 5
	withinBudgetBonus = 5
	onTrackBonus      = 10
	overspendPenalty  = 15
	safeMarginBonus   = 5
	overDailyPenalty  = 10
)

// ComputeConfidence scores the snapshot in [0,100]. Adjustments are applied
// in a fixed order and the reason is the label of the last labelled one
// applied. The daily margin bonus carries no label.
// The timestamp is the snapshot's own instant.
func ComputeConfidence(s model.DerivedMetrics) model.ConfidenceScore {
	score := baseConfidence
	reason := ""

	over, budgeted := pipeline.OverBudgetCount(s.BudgetStatuses)
	if s.BudgetStatuses == nil {
		over, budgeted = countOverBudget(s)
	}
	switch {
	case over > 0:
		score -= over * overBudgetPenalty
		reason = fmt.Sprintf("%d categories over budget", over)
	case budgeted > 0:
		score += withinBudgetBonus
		reason = "All categories within budget"
	}

	if s.NoSpendStreak > 0 {
		score += min(s.NoSpendStreak*2, maxStreakBonus)
		reason = fmt.Sprintf("%d day no-spend streak!", s.NoSpendStreak)
	}

	switch {
	case s.ProjectedRemainingSigned > 0:
		score += onTrackBonus
		reason = "On track to save this month"
	case s.ProjectedRemainingSigned < 0:
		score -= overspendPenalty
		reason = "Projected to overspend this month"
	}

	if safe, ok := s.SafeSpend(); ok {
		switch {
		case float64(safe) > s.BasePerDay*comfortableMargin:
			score += safeMarginBonus
		case safe < 0:
			score -= overDailyPenalty
			reason = "Over spent today's limit"
		}
	}

	score = max(0, min(100, score))
	if reason == "" {
		reason = defaultReason
	}
	return model.ConfidenceScore{Score: score, Reason: reason, Timestamp: s.At}
}

// countOverBudget covers snapshots built without the budget tracker pass.
func countOverBudget(s model.DerivedMetrics) (over, budgeted int) {
	for _, c := range model.Categories {
		limit := s.Budgets[c]
		if limit <= 0 {
			continue
		}
		budgeted++
		if s.CategoryTotals[c] > limit {
			over++
		}
	}
	return over, budgeted
}
