package notification

import (
	"context"

	"hris-portal/internal/shared/config"

	"gopkg.in/gomail.v2"
)

//go:generate mockgen -source=notification_mailer.go -destination=mock/notification_mailer_mock.go -package=mock
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns nil when SMTP is not configured; the service then stores
// notifications without sending e-mail.
func NewSMTPMailer(cfg config.SMTP) Mailer {
	if !cfg.Enabled() {
		return nil
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
