package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/wisespend/internal/model"
)

// ListRules returns every recurring rule ordered by next run date.
func (l *Ledger) ListRules(ctx context.Context) ([]model.RecurringRule, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, title, amount, category, cadence, next_run_date, active, type, created_at
		FROM recurring_rules ORDER BY next_run_date, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rules []model.RecurringRule
	for rows.Next() {
		var r model.RecurringRule
		var category, cadence, nextRun, txType, createdAt string
		var active int
		if err := rows.Scan(&r.ID, &r.Title, &r.Amount, &category, &cadence, &nextRun, &active, &txType, &createdAt); err != nil {
			return nil, err
		}
		r.Category = model.NormalizeCategory(category)
		r.Cadence = model.Cadence(cadence)
		r.Active = active != 0
		r.Type = model.TxType(txType)
		if r.NextRunDate, err = parseTime(nextRun); err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// SaveRule inserts or replaces a recurring rule.
func (l *Ledger) SaveRule(ctx context.Context, r model.RecurringRule) error {
	return saveRule(ctx, l.db, r)
}

// DeleteRule removes a recurring rule.
func (l *Ledger) DeleteRule(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, "DELETE FROM recurring_rules WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "rule", id)
}

// ApplyRecurring stores materialized transactions and advanced rules
// atomically, so a rule never runs twice for the same date.
func (l *Ledger) ApplyRecurring(ctx context.Context, created []model.Transaction, updated []model.RecurringRule) error {
	if len(created) == 0 && len(updated) == 0 {
		return nil
	}
	dbtx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	for _, tx := range created {
		if err := insertTransaction(ctx, dbtx, tx); err != nil {
			return fmt.Errorf("inserting %s: %w", tx.ID, err)
		}
	}
	for _, r := range updated {
		if err := saveRule(ctx, dbtx, r); err != nil {
			return fmt.Errorf("advancing rule %s: %w", r.ID, err)
		}
	}
	return dbtx.Commit()
}

func saveRule(ctx context.Context, db execer, r model.RecurringRule) error {
	if r.ID == "" {
		return errors.New("rule has no id")
	}
	txType := r.Type
	if txType == "" {
		txType = model.Expense
	}
	active := 0
	if r.Active {
		active = 1
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO recurring_rules
		(id, title, amount, category, cadence, next_run_date, active, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Amount, string(model.NormalizeCategory(string(r.Category))), string(r.Cadence),
		formatTime(r.NextRunDate), active, string(txType), formatTime(r.CreatedAt),
	)
	return err
}
