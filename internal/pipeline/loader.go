package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

// Ledger is the read side of the ledger and profile sources.
type Ledger interface {
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetProfile(ctx context.Context) (model.Profile, error)
	GetBudgets(ctx context.Context) (model.CategoryBudgets, error)
	ListRules(ctx context.Context) ([]model.RecurringRule, error)
}

// LoadResult holds every input the engine needs for one recompute.
type LoadResult struct {
	Transactions []model.Transaction
	Profile      model.Profile
	Budgets      model.CategoryBudgets
	Rules        []model.RecurringRule
}

// Load reads the complete current input set from the ledger. There is no
// partial update path; every recompute starts from a full load.
func Load(ctx context.Context, ledger Ledger) (*LoadResult, error) {
	txs, err := ledger.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	profile, err := ledger.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	budgets, err := ledger.GetBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}
	rules, err := ledger.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading recurring rules: %w", err)
	}

	return &LoadResult{
		Transactions: txs,
		Profile:      profile,
		Budgets:      budgets,
		Rules:        rules,
	}, nil
}

// Snapshot computes the derived metrics for the loaded inputs at now.
func (r *LoadResult) Snapshot(now time.Time) model.DerivedMetrics {
	return ComputeSnapshot(r.Transactions, r.Profile, r.Budgets, now)
}
