package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/wisespend/internal/model"
)

// ListGoals returns every savings goal, newest first.
func (l *Ledger) ListGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, name, target_amount, target_date, current_saved, contribution_type, created_at
		FROM savings_goals ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.SavingsGoal
	for rows.Next() {
		var g model.SavingsGoal
		var targetDate, kind, createdAt string
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &targetDate, &g.CurrentSaved, &kind, &createdAt); err != nil {
			return nil, err
		}
		g.ContributionType = model.ContributionType(kind)
		if targetDate != "" {
			due, err := parseTime(targetDate)
			if err != nil {
				return nil, fmt.Errorf("goal %s: %w", g.ID, err)
			}
			g.TargetDate = &due
		}
		if g.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SaveGoal inserts or replaces a savings goal.
func (l *Ledger) SaveGoal(ctx context.Context, g model.SavingsGoal) error {
	switch {
	case g.ID == "":
		return errors.New("goal has no id")
	case g.Name == "":
		return errors.New("goal has no name")
	case g.TargetAmount <= 0:
		return fmt.Errorf("goal %s: target must be positive", g.ID)
	}
	kind := g.ContributionType
	if kind == "" {
		kind = model.ContributeMonthly
	}
	targetDate := ""
	if g.TargetDate != nil {
		targetDate = formatTime(*g.TargetDate)
	}
	_, err := l.db.ExecContext(ctx, `INSERT OR REPLACE INTO savings_goals
		(id, name, target_amount, target_date, current_saved, contribution_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount, targetDate, g.CurrentSaved, string(kind), formatTime(g.CreatedAt),
	)
	return err
}

// AddContribution records c and adds its amount to the goal's saved total
// in one database transaction.
func (l *Ledger) AddContribution(ctx context.Context, c model.Contribution) error {
	if c.ID == "" {
		return errors.New("contribution has no id")
	}
	if c.Amount <= 0 {
		return errors.New("contribution must be positive")
	}
	dbtx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	res, err := dbtx.ExecContext(ctx, "UPDATE savings_goals SET current_saved = current_saved + ? WHERE id = ?", c.Amount, c.GoalID)
	if err != nil {
		return err
	}
	if err := requireRow(res, "goal", c.GoalID); err != nil {
		return err
	}
	if _, err := dbtx.ExecContext(ctx, `INSERT INTO goal_contributions (id, goal_id, amount, created_at)
		VALUES (?, ?, ?, ?)`, c.ID, c.GoalID, c.Amount, formatTime(c.CreatedAt)); err != nil {
		return err
	}
	return dbtx.Commit()
}

// ListContributions returns a goal's contributions, oldest first.
func (l *Ledger) ListContributions(ctx context.Context, goalID string) ([]model.Contribution, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, goal_id, amount, created_at
		FROM goal_contributions WHERE goal_id = ? ORDER BY created_at, id`, goalID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Contribution
	for rows.Next() {
		var c model.Contribution
		var createdAt string
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &createdAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("contribution %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteGoal removes a goal and its contributions.
func (l *Ledger) DeleteGoal(ctx context.Context, id string) error {
	dbtx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	if _, err := dbtx.ExecContext(ctx, "DELETE FROM goal_contributions WHERE goal_id = ?", id); err != nil {
		return err
	}
	res, err := dbtx.ExecContext(ctx, "DELETE FROM savings_goals WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := requireRow(res, "goal", id); err != nil {
		return err
	}
	return dbtx.Commit()
}
