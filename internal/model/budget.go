package model

import "fmt"

// CategoryBudgets maps a category to its monthly cap. A cap of 0 means no
// budget is set, not that spending is forbidden.
type CategoryBudgets map[Category]int64

// BudgetStatus is the Budget Tracker's verdict for one category.
type BudgetStatus struct {
	Category    Category `json:"category"`
	Cap         int64    `json:"cap"`
	Spent       int64    `json:"spent"`
	HasBudget   bool     `json:"hasBudget"`
	Ratio       float64  `json:"ratio"`
	Over        bool     `json:"over"`
	OverBy      int64    `json:"overBy"`
	PercentUsed int      `json:"percentUsed"`
}

// Label renders the status the way the dashboard shows it.
func (b BudgetStatus) Label() string {
	switch {
	case !b.HasBudget:
		return "no budget"
	case b.Over:
		return fmt.Sprintf("OVER by ₹%d", b.OverBy)
	default:
		return fmt.Sprintf("%d%% used", b.PercentUsed)
	}
}
