package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

// FilterByTime returns transactions created within [since, until). A zero
// bound is open.
func FilterByTime(txs []model.Transaction, since, until time.Time) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}

	var result []model.Transaction
	for _, tx := range txs {
		if !since.IsZero() && tx.CreatedAt.Before(since) {
			continue
		}
		if !until.IsZero() && !tx.CreatedAt.Before(until) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// FilterByCategory returns transactions in the given category. An empty
// category matches everything.
func FilterByCategory(txs []model.Transaction, category model.Category) []model.Transaction {
	if category == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if model.NormalizeCategory(string(tx.Category)) == category {
			result = append(result, tx)
		}
	}
	return result
}

// Expenses returns only expense transactions.
func Expenses(txs []model.Transaction) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if tx.IsExpense() {
			result = append(result, tx)
		}
	}
	return result
}

// Recent returns up to n transactions, newest first. The input is not reordered.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	sorted := make([]model.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
