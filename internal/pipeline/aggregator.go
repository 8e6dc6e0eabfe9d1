// Package pipeline derives dashboard metrics from a ledger, a profile and
// category budgets. Every function here is pure: callers recompute the whole
// snapshot whenever any input changes.
package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

const (
	// streakLookbackDays bounds the no-spend streak walk.
	streakLookbackDays = 60
	// TopCategoryCount is the display truncation for ranked categories.
	TopCategoryCount = 5
)

// ComputeSnapshot builds the derived-metrics snapshot for now. "This month",
// "this week" (Monday 00:00 through now) and "today" are judged independently
// per transaction in now's location. Negative inputs are clamped to zero.
func ComputeSnapshot(
	txs []model.Transaction,
	profile model.Profile,
	budgets model.CategoryBudgets,
	now time.Time,
) model.DerivedMetrics {
	income := nonNeg(profile.Income)
	fixedTotal := nonNeg(profile.FixedExpenses) + nonNeg(profile.MonthlySubscriptions)
	goal := nonNeg(profile.SavingsGoal)

	daysInMonth := DaysInMonth(now)
	dayOfMonth := now.Day()
	daysLeft := max(1, daysInMonth-dayOfMonth+1)
	spendable := max(0, income-fixedTotal-goal)

	weekStart := StartOfWeek(now)

	categoryTotals := make(map[model.Category]int64, len(model.Categories))
	for _, c := range model.Categories {
		categoryTotals[c] = 0
	}
	byDay := make(map[string]int64)

	var spentThisMonth, spentToday, weekSpent, incomeThisMonth int64
	for _, tx := range txs {
		at := tx.CreatedAt.In(now.Location())
		amount := nonNeg(tx.Amount)

		if !tx.IsExpense() {
			if SameMonth(at, now) {
				incomeThisMonth += amount
			}
			continue
		}

		if SameMonth(at, now) {
			spentThisMonth += amount
			categoryTotals[model.NormalizeCategory(string(tx.Category))] += amount
		}
		if SameDay(at, now) {
			spentToday += amount
		}
		if !at.Before(weekStart) && !at.After(now) {
			weekSpent += amount
		}
		byDay[YMD(at)] += amount
	}

	remaining := max(0, spendable-spentThisMonth)

	var safeSpendToday *int64
	if income > 0 {
		v := remaining / int64(daysLeft)
		safeSpendToday = &v
	}

	avgPerDay := float64(spentThisMonth) / float64(max(1, dayOfMonth))
	projected := int64(math.Round(avgPerDay * float64(daysInMonth)))
	projectedSigned := spendable - projected

	var basePerDay float64
	if daysInMonth > 0 {
		basePerDay = float64(spendable) / float64(daysInMonth)
	}
	daysElapsedThisWeek := weekdayOffset(now) + 1
	expectedThisWeek := int64(math.Round(basePerDay * float64(daysElapsedThisWeek)))
	expectedByNow := int64(math.Round(basePerDay * float64(dayOfMonth)))

	var utilization float64
	if spendable > 0 {
		utilization = float64(spentThisMonth) / float64(spendable)
	}

	daysLeftThisWeek := max(1, 7-weekdayOffset(now))
	weekOvershoot := max(0, weekSpent-expectedThisWeek)
	safeRestOfWeek := max(0, FloorDiv(remaining-weekOvershoot, int64(daysLeftThisWeek)))

	ranked := RankCategories(categoryTotals)
	caps := copyBudgets(budgets)

	return model.DerivedMetrics{
		At:                       now,
		Income:                   income,
		FixedTotal:               fixedTotal,
		SavingsGoal:              goal,
		DaysInMonth:              daysInMonth,
		DayOfMonth:               dayOfMonth,
		DaysLeft:                 daysLeft,
		SpendableMonth:           spendable,
		SpentThisMonth:           spentThisMonth,
		RemainingSpendable:       remaining,
		SafeSpendToday:           safeSpendToday,
		MonthProgress:            float64(dayOfMonth) / float64(daysInMonth),
		SpentToday:               spentToday,
		WeekSpent:                weekSpent,
		ExpectedThisWeek:         expectedThisWeek,
		WeekDelta:                weekSpent - expectedThisWeek,
		DaysElapsedThisWeek:      daysElapsedThisWeek,
		DaysLeftThisWeek:         daysLeftThisWeek,
		SafeSpendRestOfWeek:      safeRestOfWeek,
		CategoryTotals:           categoryTotals,
		TopCategories:            ranked,
		Last7:                    lastSevenDays(byDay, now),
		BasePerDay:               basePerDay,
		AvgPerDaySoFar:           avgPerDay,
		ProjectedMonthSpend:      projected,
		ProjectedRemaining:       max(0, projectedSigned),
		ProjectedRemainingSigned: projectedSigned,
		SpendVsExpected:          spentThisMonth - expectedByNow,
		Utilization:              utilization,
		NoSpendStreak:            noSpendStreak(byDay, now),
		TotalIncomeThisMonth:     incomeThisMonth,
		NetThisMonth:             incomeThisMonth - spentThisMonth,
		Budgets:                  caps,
		BudgetStatuses:           TrackBudgets(categoryTotals, caps),
	}
}

// RankCategories returns nonzero totals sorted descending. Ties keep the
// fixed category order.
func RankCategories(totals map[model.Category]int64) []model.CategoryTotal {
	ranked := make([]model.CategoryTotal, 0, len(totals))
	for _, c := range model.Categories {
		if v := totals[c]; v > 0 {
			ranked = append(ranked, model.CategoryTotal{Category: c, Total: v})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}

// TopCategories truncates a ranked list for display.
func TopCategories(ranked []model.CategoryTotal, n int) []model.CategoryTotal {
	if n < 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// lastSevenDays fills the trailing series oldest first, ending today.
func lastSevenDays(byDay map[string]int64, now time.Time) []model.DaySpend {
	days := make([]model.DaySpend, 0, 7)
	for i := 6; i >= 0; i-- {
		d := StartOfDay(now.AddDate(0, 0, -i))
		key := YMD(d)
		days = append(days, model.DaySpend{Date: d, YMD: key, Total: byDay[key]})
	}
	return days
}

// noSpendStreak counts trailing zero-spend days, today included.
func noSpendStreak(byDay map[string]int64, now time.Time) int {
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		if byDay[YMD(now.AddDate(0, 0, -i))] != 0 {
			break
		}
		streak++
	}
	return streak
}

func copyBudgets(in model.CategoryBudgets) model.CategoryBudgets {
	out := make(model.CategoryBudgets, len(in))
	for c, v := range in {
		out[model.NormalizeCategory(string(c))] = nonNeg(v)
	}
	return out
}

func nonNeg(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
