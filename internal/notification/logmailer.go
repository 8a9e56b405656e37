package notification

import (
	"context"
	"log/slog"
)

// LogMailer records messages in the log instead of sending them. It stands in
// for SMTP in local development.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a log-only mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.Info("email suppressed, smtp not configured", "to", to, "subject", subject)
	return nil
}
