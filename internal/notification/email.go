// Package notification sends outbound email. Everything here is best-effort:
// the subscriber record is the durable source of truth, so a lost email is
// recoverable by re-submitting the form, while failing a request because the
// SMTP provider is down is not acceptable.
package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// EmailConfig holds SMTP transport settings.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through an SMTP submission endpoint.
type SMTPMailer struct {
	config EmailConfig
	client *mail.Client
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(config EmailConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTimeout(10 * time.Second),
	}
	if config.Username != "" && config.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(config.Username),
			mail.WithPassword(config.Password),
		)
	}
	if config.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts,
			mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
			mail.WithTLSPolicy(mail.NoTLS),
		)
	}

	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &SMTPMailer{config: config, client: client}, nil
}

// Send delivers one HTML message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	from := m.config.From
	if m.config.FromName != "" {
		if err := msg.FromFormat(m.config.FromName, m.config.From); err != nil {
			return fmt.Errorf("failed to set from address: %w", err)
		}
	} else if err := msg.From(from); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return m.client.DialAndSendWithContext(ctx, msg)
}
