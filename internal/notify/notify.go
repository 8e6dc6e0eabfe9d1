// Package notify delivers emitted alerts to the user.
package notify

import (
	"context"
	"errors"

	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/rs/zerolog"
)

// Notifier delivers one notification.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// Log writes notifications to a logger.
type Log struct {
	log zerolog.Logger
}

// NewLog returns a notifier backed by log.
func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log}
}

// Notify logs n at warn level for warnings and info otherwise.
func (l *Log) Notify(_ context.Context, n model.Notification) error {
	ev := l.log.Info()
	if n.Type == model.EventWarning || n.Type == model.EventBudget {
		ev = l.log.Warn()
	}
	ev.Str("type", string(n.Type)).Str("id", n.ID).Str("title", n.Title).Msg(n.Message)
	return nil
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

// Notify delivers n to all notifiers, even when some fail.
func (m Multi) Notify(ctx context.Context, n model.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
