// Package insights turns derived-metrics snapshots and raw ledgers into
// alerts, suggestions, scores and what-if projections. Everything except
// Watcher is a pure function of its arguments.
package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/google/uuid"
)

const (
	minRecurringOccurrences = 3
	ruleAmountTolerance     = 0.1
)

// DetectRecurring suggests a recurring rule for the first bucket of expenses
// that repeats at least three times and is not already covered by an active
// rule. Buckets are keyed by category and amount rounded to the nearest 10,
// and are visited in order of their earliest transaction.
func DetectRecurring(txs []model.Transaction, rules []model.RecurringRule) (model.RecurringRule, bool) {
	var expenses []model.Transaction
	for _, tx := range txs {
		if tx.IsExpense() && tx.Amount > 0 {
			tx.Category = model.NormalizeCategory(string(tx.Category))
			expenses = append(expenses, tx)
		}
	}
	if len(expenses) < minRecurringOccurrences {
		return model.RecurringRule{}, false
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.Before(expenses[j].CreatedAt)
	})

	var order []string
	groups := make(map[string][]model.Transaction)
	for _, tx := range expenses {
		key := bucketKey(tx)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], tx)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < minRecurringOccurrences {
			continue
		}
		first := group[0]
		if coveredByRule(first, rules) {
			continue
		}

		cadence := guessCadence(group)
		last := group[len(group)-1].CreatedAt

		title := first.Note
		if title == "" {
			title = "Recurring " + string(first.Category)
		}
		return model.RecurringRule{
			ID:          uuid.NewString(),
			Title:       title,
			Amount:      first.Amount,
			Category:    first.Category,
			Cadence:     cadence,
			NextRunDate: cadence.Advance(last),
			Active:      true,
			Type:        model.Expense,
			CreatedAt:   last,
		}, true
	}
	return model.RecurringRule{}, false
}

// RecurringEvent wraps a suggestion as an insight event for the watcher.
func RecurringEvent(rule model.RecurringRule) model.InsightEvent {
	return model.InsightEvent{
		Key:      fmt.Sprintf("recurring:%s:%d", rule.Category, roundToTen(rule.Amount)),
		Type:     model.EventRecurring,
		Title:    "Recurring Pattern",
		Message:  fmt.Sprintf("%s looks %s at ₹%d. Add it as a recurring rule?", rule.Title, rule.Cadence, rule.Amount),
		Category: rule.Category,
	}
}

func bucketKey(tx model.Transaction) string {
	return fmt.Sprintf("%s-%d", tx.Category, roundToTen(tx.Amount))
}

func roundToTen(amount int64) int64 {
	return int64(math.Round(float64(amount)/10)) * 10
}

func coveredByRule(tx model.Transaction, rules []model.RecurringRule) bool {
	tolerance := float64(tx.Amount) * ruleAmountTolerance
	for _, r := range rules {
		if !r.Active || model.NormalizeCategory(string(r.Category)) != tx.Category {
			continue
		}
		if math.Abs(float64(r.Amount-tx.Amount)) < tolerance {
			return true
		}
	}
	return false
}

// guessCadence classifies the mean gap between sorted occurrences.
func guessCadence(group []model.Transaction) model.Cadence {
	span := group[len(group)-1].CreatedAt.Sub(group[0].CreatedAt)
	avgDays := span.Hours() / 24 / float64(len(group)-1)
	switch {
	case avgDays < 2:
		return model.Daily
	case avgDays < 10:
		return model.Weekly
	default:
		return model.Monthly
	}
}
