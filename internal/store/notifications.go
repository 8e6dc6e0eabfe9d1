package store

import (
	"context"
	"fmt"

	"github.com/theirongolddev/wisespend/internal/model"
)

// AddNotification persists an emitted alert.
func (l *Ledger) AddNotification(ctx context.Context, n model.Notification) error {
	read := 0
	if n.Read {
		read = 1
	}
	_, err := l.db.ExecContext(ctx, `INSERT OR REPLACE INTO notifications
		(id, type, title, message, created_at, read) VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, string(n.Type), n.Title, n.Message, formatTime(n.CreatedAt), read,
	)
	return err
}

// ListNotifications returns notifications newest first. limit <= 0 means all.
func (l *Ledger) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]model.Notification, error) {
	query := "SELECT id, type, title, message, created_at, read FROM notifications"
	if unreadOnly {
		query += " WHERE read = 0"
	}
	query += " ORDER BY created_at DESC, id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		var typ, createdAt string
		var read int
		if err := rows.Scan(&n.ID, &typ, &n.Title, &n.Message, &createdAt, &read); err != nil {
			return nil, err
		}
		n.Type = model.EventType(typ)
		n.Read = read != 0
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("notification %s: %w", n.ID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead marks one notification as read.
func (l *Ledger) MarkRead(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "notification", id)
}

// MarkAllRead marks every notification as read and returns how many changed.
func (l *Ledger) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := l.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE read = 0")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
