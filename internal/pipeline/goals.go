package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

// GoalProgressAt derives progress for g at now. The ratio is clamped to
// [0,1]. A dated goal also reports the days left and the monthly amount
// that would reach the target on time, counting any partial month as a
// whole one. Past the date an incomplete goal is overdue and the whole
// remainder is due this month.
func GoalProgressAt(g model.SavingsGoal, now time.Time) model.GoalProgress {
	p := model.GoalProgress{
		Goal:      g,
		Remaining: max(0, g.TargetAmount-g.CurrentSaved),
	}
	if g.TargetAmount > 0 {
		p.Ratio = math.Max(0, math.Min(1, float64(g.CurrentSaved)/float64(g.TargetAmount)))
		p.Percent = int(math.Round(p.Ratio * 100))
		p.Complete = g.CurrentSaved >= g.TargetAmount
	}

	if g.TargetDate == nil {
		return p
	}
	today := StartOfDay(now)
	due := StartOfDay(*g.TargetDate)
	days := int(math.Round(due.Sub(today).Hours() / 24))
	p.DaysLeft = &days
	p.Overdue = days < 0 && !p.Complete

	months := int64(1)
	if days > 0 {
		months = int64(monthsBetween(today, due))
	}
	needed := ceilDiv(p.Remaining, months)
	p.MonthlyNeeded = &needed
	return p
}

// RankGoals derives progress for every goal, dated goals first by due date,
// then undated goals newest first.
func RankGoals(goals []model.SavingsGoal, now time.Time) []model.GoalProgress {
	out := make([]model.GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalProgressAt(g, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Goal, out[j].Goal
		switch {
		case a.TargetDate != nil && b.TargetDate != nil:
			return a.TargetDate.Before(*b.TargetDate)
		case a.TargetDate != nil || b.TargetDate != nil:
			return a.TargetDate != nil
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	return out
}

// monthsBetween counts calendar months from a to b, rounding a partial month
// up, with a minimum of 1.
func monthsBetween(a, b time.Time) int {
	m := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() > a.Day() {
		m++
	}
	return max(1, m)
}

func ceilDiv(a, b int64) int64 {
	return -FloorDiv(-a, b)
}
