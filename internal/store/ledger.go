// Package store provides the SQLite-backed ledger: transactions, the profile,
// category budgets, recurring rules, savings goals and emitted notifications.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a record addressed by ID does not exist.
var ErrNotFound = errors.New("not found")

// timeLayout keeps sub-second precision so lexical order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Ledger is a single-writer SQLite ledger.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// AddTransaction appends a transaction. Adding an existing ID replaces it.
func (l *Ledger) AddTransaction(ctx context.Context, tx model.Transaction) error {
	return insertTransaction(ctx, l.db, tx)
}

// ImportTransactions writes txs in one database transaction and returns how
// many were written.
func (l *Ledger) ImportTransactions(ctx context.Context, txs []model.Transaction) (int, error) {
	dbtx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = dbtx.Rollback() }()

	for i, tx := range txs {
		if err := insertTransaction(ctx, dbtx, tx); err != nil {
			return 0, fmt.Errorf("transaction %d (%s): %w", i, tx.ID, err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return 0, err
	}
	return len(txs), nil
}

// DeleteTransaction hard-removes a transaction.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "transaction", id)
}

// ListTransactions returns every transaction, oldest first.
func (l *Ledger) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, amount, type, category, created_at, note, intent
		FROM transactions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var txType, category, createdAt, intent string
		if err := rows.Scan(&tx.ID, &tx.Amount, &txType, &category, &createdAt, &tx.Note, &intent); err != nil {
			return nil, err
		}
		tx.Type = model.TxType(txType)
		tx.Category = model.NormalizeCategory(category)
		tx.Intent = model.Intent(intent)
		if tx.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, tx model.Transaction) error {
	if tx.ID == "" {
		return errors.New("transaction has no id")
	}
	txType := tx.Type
	if txType == "" {
		txType = model.Expense
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO transactions
		(id, amount, type, category, created_at, note, intent)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Amount, string(txType), string(model.NormalizeCategory(string(tx.Category))),
		formatTime(tx.CreatedAt), tx.Note, string(tx.Intent),
	)
	return err
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t.Local(), nil
}
