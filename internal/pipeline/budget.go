package pipeline

import (
	"math"

	"github.com/theirongolddev/wisespend/internal/model"
)

// TrackBudgets compares month-to-date category spend with caps. A status is
// produced for every category present in caps, in display order; caps of 0
// report "no budget" and are never classified as over.
func TrackBudgets(totals map[model.Category]int64, caps model.CategoryBudgets) []model.BudgetStatus {
	statuses := make([]model.BudgetStatus, 0, len(caps))
	for _, c := range model.Categories {
		limit, ok := caps[c]
		if !ok {
			continue
		}
		spent := totals[c]
		st := model.BudgetStatus{Category: c, Cap: limit, Spent: spent}
		if limit > 0 {
			st.HasBudget = true
			st.Ratio = float64(spent) / float64(limit)
			st.PercentUsed = int(math.Round(st.Ratio * 100))
			if st.Ratio > 1 {
				st.Over = true
				st.OverBy = spent - limit
			}
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// OverBudgetCount returns how many budgeted categories are over their cap,
// and how many categories have a budget at all.
func OverBudgetCount(statuses []model.BudgetStatus) (over, budgeted int) {
	for _, st := range statuses {
		if !st.HasBudget {
			continue
		}
		budgeted++
		if st.Over {
			over++
		}
	}
	return over, budgeted
}
