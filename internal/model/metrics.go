package model

import "time"

// DaySpend is one point of the trailing 7-day series.
type DaySpend struct {
	Date  time.Time `json:"date"`
	YMD   string    `json:"ymd"`
	Total int64     `json:"total"`
}

// CategoryTotal is one entry of the ranked category list.
type CategoryTotal struct {
	Category Category `json:"category"`
	Total    int64    `json:"total"`
}

// DerivedMetrics is the snapshot computed from a ledger, a profile and
// budgets at a single instant. It is a value: nothing here is persisted.
// JSON names match the context object the chat assistant consumes.
type DerivedMetrics struct {
	At time.Time `json:"at"`

	Income      int64 `json:"income"`
	FixedTotal  int64 `json:"fixedTotal"`
	SavingsGoal int64 `json:"goal"`

	DaysInMonth int `json:"daysInMonth"`
	DayOfMonth  int `json:"dayOfMonth"`
	DaysLeft    int `json:"daysLeft"`

	SpendableMonth     int64 `json:"spendableMonth"`
	SpentThisMonth     int64 `json:"spentThisMonth"`
	RemainingSpendable int64 `json:"remainingSpendable"`
	// SafeSpendToday is nil until the profile has an income.
	SafeSpendToday *int64  `json:"safeSpendToday"`
	MonthProgress  float64 `json:"monthProgress"`
	SpentToday     int64   `json:"spentToday"`

	WeekSpent           int64 `json:"weekSpent"`
	ExpectedThisWeek    int64 `json:"expectedThisWeek"`
	WeekDelta           int64 `json:"deltaWeek"`
	DaysElapsedThisWeek int   `json:"daysElapsedThisWeek"`
	DaysLeftThisWeek    int   `json:"daysLeftThisWeek"`
	SafeSpendRestOfWeek int64 `json:"safeSpendRestOfWeek"`

	CategoryTotals map[Category]int64 `json:"categoryTotals"`
	TopCategories  []CategoryTotal    `json:"topCategories"`
	Last7          []DaySpend         `json:"last7"`

	BasePerDay               float64 `json:"basePerDay"`
	AvgPerDaySoFar           float64 `json:"avgPerDaySoFar"`
	ProjectedMonthSpend      int64   `json:"projectedMonthSpend"`
	ProjectedRemaining       int64   `json:"projectedRemaining"`
	ProjectedRemainingSigned int64   `json:"projectedRemainingSigned"`
	SpendVsExpected          int64   `json:"spendVsExpected"`
	Utilization              float64 `json:"utilization"`
	NoSpendStreak            int     `json:"noSpendStreak"`

	TotalIncomeThisMonth int64 `json:"totalIncomeThisMonth"`
	NetThisMonth         int64 `json:"netThisMonth"`

	Budgets        CategoryBudgets `json:"budgets"`
	BudgetStatuses []BudgetStatus  `json:"budgetStatuses"`
}

// SafeSpend returns SafeSpendToday and whether it is set.
func (d DerivedMetrics) SafeSpend() (int64, bool) {
	if d.SafeSpendToday == nil {
		return 0, false
	}
	return *d.SafeSpendToday, true
}

// CategoryRatio returns spent/cap for a budgeted category, and false when the
// category has no budget.
func (d DerivedMetrics) CategoryRatio(c Category) (float64, bool) {
	budget := d.Budgets[c]
	if budget <= 0 {
		return 0, false
	}
	return float64(d.CategoryTotals[c]) / float64(budget), true
}
