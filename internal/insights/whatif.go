package insights

import (
	"math"

	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
)

// SimulateWhatIf projects a hypothetical expense against s without touching
// s or its maps. A snapshot with no safe spend (unconfigured profile) is
// treated as having zero headroom. The new safe spend is the remaining
// amount over the days left, floored to whole rupees and clamped at 0.
func SimulateWhatIf(s model.DerivedMetrics, amount int64, category model.Category) model.WhatIfResult {
	if amount < 0 {
		amount = 0
	}
	category = model.NormalizeCategory(string(category))
	safe, _ := s.SafeSpend()
	daysLeft := int64(max(1, s.DaysLeft))

	newRemaining := s.RemainingSpendable - amount
	newSafe := max(0, pipeline.FloorDiv(newRemaining, daysLeft))
	categorySpent := s.CategoryTotals[category]

	res := model.WhatIfResult{
		Amount:   amount,
		Category: category,
		Deltas: model.WhatIfValues{
			SafeSpendToday:     newSafe - safe,
			RemainingSpendable: -amount,
			WeekSpent:          amount,
			SpentThisMonth:     amount,
			CategorySpent:      amount,
		},
		NewValues: model.WhatIfValues{
			SafeSpendToday:     newSafe,
			RemainingSpendable: newRemaining,
			WeekSpent:          s.WeekSpent + amount,
			SpentThisMonth:     s.SpentThisMonth + amount,
			CategorySpent:      categorySpent + amount,
		},
		GoalDelayDays: goalDelayDays(s, amount),
		Status:        whatIfStatus(amount, safe),
	}

	if limit := s.Budgets[category]; limit > 0 {
		res.BudgetRatio = float64(categorySpent+amount) / float64(limit)
		res.ExceedsBudget = res.BudgetRatio > 1
	}
	return res
}

func goalDelayDays(s model.DerivedMetrics, amount int64) int {
	if s.DaysInMonth <= 0 || s.SavingsGoal <= 0 {
		return 0
	}
	dailyTarget := float64(s.SavingsGoal) / float64(s.DaysInMonth)
	return int(math.Ceil(float64(amount) / dailyTarget))
}

func whatIfStatus(amount, safe int64) model.WhatIfStatus {
	switch {
	case amount <= safe:
		return model.StatusSafe
	case amount <= 2*safe:
		return model.StatusRisky
	default:
		return model.StatusNotAdvised
	}
}
