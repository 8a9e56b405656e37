package notification

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Dispatcher is the fire-and-forget boundary in front of the mail capability.
// Failures are logged for operational visibility and swallowed; they never
// reach the caller.
type Dispatcher struct {
	mailer  Mailer
	baseURL string
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher. baseURL is the public site address used
// to build verification links.
func NewDispatcher(mailer Mailer, baseURL string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, baseURL: baseURL, logger: logger}
}

// SendVerification mails the double opt-in link, best-effort.
func (d *Dispatcher) SendVerification(ctx context.Context, email, token string) {
	verifyURL := fmt.Sprintf("%s/verify?token=%s", d.baseURL, url.QueryEscape(token))
	body := fmt.Sprintf(`<html><body>
		<h2>Confirm your subscription</h2>
		<p>Thanks for signing up for our newsletter! Please confirm your email address.</p>
		<p><a href="%s">Click here to confirm</a></p>
		<p>Or copy this link to your browser: %s</p>
		<p>This link expires in 7 days. If you didn't sign up, just ignore this email.</p>
	</body></html>`, verifyURL, verifyURL)

	if err := d.mailer.Send(ctx, email, "Confirm your newsletter subscription", body); err != nil {
		d.logger.Error("failed to send verification email", "error", err, "email", email)
	}
}

// SendWelcome mails the post-verification welcome note, best-effort.
func (d *Dispatcher) SendWelcome(ctx context.Context, email string) {
	body := `<html><body>
		<h2>You're on the list!</h2>
		<p>Your subscription is confirmed. Expect seasonal menus, events and openings in your inbox.</p>
	</body></html>`

	if err := d.mailer.Send(ctx, email, "Welcome to the newsletter", body); err != nil {
		d.logger.Error("failed to send welcome email", "error", err, "email", email)
	}
}
