package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
)

// EmailSettings configures SMTP delivery.
type EmailSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// sendFunc matches (*email.Email).Send so tests can capture messages.
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Email sends notifications over SMTP.
type Email struct {
	cfg  EmailSettings
	log  zerolog.Logger
	send sendFunc
}

// NewEmail validates settings and returns an SMTP notifier.
func NewEmail(cfg EmailSettings, log zerolog.Logger) (*Email, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, errors.New("email from and to are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Email{
		cfg: cfg,
		log: log,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}, nil
}

// Notify mails n to every configured recipient. Failures are returned
// for the caller to log.
func (s *Email) Notify(_ context.Context, n model.Notification) error {
	e := s.message(n)

	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := s.send(e, addr, auth); err != nil {
		return fmt.Errorf("sending alert email %q: %w", n.Title, err)
	}

	s.log.Debug().Strs("to", s.cfg.To).Str("subject", e.Subject).Msg("alert email sent")
	return nil
}

func (s *Email) message(n model.Notification) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = s.cfg.To
	e.Subject = "wisespend: " + n.Title

	body := n.Message + "\n\n"
	body += fmt.Sprintf("Alert type: %s\nRaised at: %s\n", n.Type, n.CreatedAt.Format("2006-01-02 15:04"))
	body += "\nRun `wisespend notifications` to review and mark alerts as read.\n"
	e.Text = []byte(body)
	return e
}
