package pipeline

import (
	"time"

	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/google/uuid"
)

// RunDue materializes every active rule whose NextRunDate is at or before now.
// Each due rule yields one transaction stamped now, and its NextRunDate moves
// forward by one cadence unit. The input slice is not modified; updated
// holds copies of the rules that ran.
func RunDue(rules []model.RecurringRule, now time.Time) (created []model.Transaction, updated []model.RecurringRule) {
	for _, rule := range rules {
		if !rule.Active || rule.NextRunDate.After(now) {
			continue
		}

		txType := rule.Type
		if txType == "" {
			txType = model.Expense
		}
		created = append(created, model.Transaction{
			ID:        uuid.NewString(),
			Amount:    nonNeg(rule.Amount),
			Type:      txType,
			Category:  model.NormalizeCategory(string(rule.Category)),
			CreatedAt: now,
			Note:      rule.Title,
		})

		next := rule
		next.NextRunDate = rule.Cadence.Advance(rule.NextRunDate)
		updated = append(updated, next)
	}
	return created, updated
}
