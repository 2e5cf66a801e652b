package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/edulane/enrollment-api/pkg/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages to a recipient.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer constructs an SMTP-backed mailer.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// Send writes the message to the configured relay. A relay without a username
// is treated as unconfigured and the message is logged instead of sent, so
// local development does not require an SMTP server.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.Username == "" {
		m.logger.Sugar().Infow("smtp not configured, skipping email", "to", msg.To, "subject", msg.Subject)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, msg.To, msg.Subject, msg.Body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(raw)); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	m.logger.Sugar().Debugw("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
