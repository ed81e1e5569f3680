// Package mailer sends transactional email over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/pvmlabs/examgate-backend/internal/config"
	mail "github.com/wneessen/go-mail"
)

// ErrDisabled is returned when no SMTP host is configured.
var ErrDisabled = errors.New("mailer is disabled: no SMTP host configured")

// Message is one queued outbound email. Messages are serialized to JSON
// on the delivery queue, so field names are part of the queue format.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers messages through a configured SMTP relay.
type Mailer struct {
	client *mail.Client
	from   string
}

// New builds a Mailer from SMTP config. An empty SMTP host yields a
// disabled mailer whose Send always returns ErrDisabled; the rest of the
// system treats mail as best-effort, so that is safe for development.
func New(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return &Mailer{from: cfg.SMTPFrom}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Mailer{client: client, from: cfg.SMTPFrom}, nil
}

// Enabled reports whether outbound mail is configured.
func (m *Mailer) Enabled() bool {
	return m.client != nil
}

// Send delivers one message.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.client == nil {
		return ErrDisabled
	}

	em := mail.NewMsg()
	if err := em.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := em.To(msg.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	em.Subject(msg.Subject)
	em.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, em); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
