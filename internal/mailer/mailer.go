package mailer

import (
	"context"

	"github.com/edustack/academy-api/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Dispatcher is the outbound notification contract the auth flows depend on.
// Send is synchronous: a nil return means the message was accepted by the
// mail relay, so callers may tell the client the email went out.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config holds SMTP relay settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers mail through a single SMTP relay
type SMTPMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.GetLogger().Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	logger.GetLogger().Debug("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return nil
}
