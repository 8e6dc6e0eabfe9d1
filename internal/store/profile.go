package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

// GetProfile returns the stored profile, or a zero profile if none was saved.
func (l *Ledger) GetProfile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	err := l.db.QueryRowContext(ctx, `SELECT income, fixed_expenses, monthly_subscriptions, savings_goal
		FROM profile WHERE id = 1`).Scan(&p.Income, &p.FixedExpenses, &p.MonthlySubscriptions, &p.SavingsGoal)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, nil
	}
	return p, err
}

// SaveProfile replaces the single profile record.
func (l *Ledger) SaveProfile(ctx context.Context, p model.Profile) error {
	_, err := l.db.ExecContext(ctx, `INSERT OR REPLACE INTO profile
		(id, income, fixed_expenses, monthly_subscriptions, savings_goal, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)`,
		p.Income, p.FixedExpenses, p.MonthlySubscriptions, p.SavingsGoal, formatTime(time.Now()),
	)
	return err
}

// GetBudgets returns every category cap.
func (l *Ledger) GetBudgets(ctx context.Context) (model.CategoryBudgets, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT category, cap FROM budgets")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	budgets := make(model.CategoryBudgets)
	for rows.Next() {
		var cat string
		var limit int64
		if err := rows.Scan(&cat, &limit); err != nil {
			return nil, err
		}
		budgets[model.NormalizeCategory(cat)] = limit
	}
	return budgets, rows.Err()
}

// SetBudget sets a category cap. A cap of 0 clears the budget.
func (l *Ledger) SetBudget(ctx context.Context, c model.Category, limit int64) error {
	c = model.NormalizeCategory(string(c))
	if limit <= 0 {
		_, err := l.db.ExecContext(ctx, "DELETE FROM budgets WHERE category = ?", string(c))
		return err
	}
	_, err := l.db.ExecContext(ctx, "INSERT OR REPLACE INTO budgets (category, cap) VALUES (?, ?)", string(c), limit)
	return err
}
