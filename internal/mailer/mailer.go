// Package mailer sends the transactional emails for the account flows:
// password resets, magic sign-in links, and contact form relays.
package mailer

import (
	"context"
	"fmt"

	"codeberg.org/agentic/server/internal/config"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"
)

// outbound email throttle, shared across flows so a burst of reset
// requests cannot saturate the SMTP relay
var sendLimiter = rate.NewLimiter(1, 5)

// paths baked into the emailed links. LoginLinkPath must match the
// registered verify route; PasswordResetPath is the frontend reset page.
const (
	LoginLinkPath     = "/api/v1/auth/magic-link/verify"
	PasswordResetPath = "/reset-password"
)

// Sender is the slice of the mailer the handlers need
type Sender interface {
	SendPasswordReset(ctx context.Context, to, rawToken string) error
	SendLoginLink(ctx context.Context, to, rawToken string) error
	SendContact(ctx context.Context, fromEmail, name, body string) error
}

type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	baseURL   string
	contactTo string
}

// creates a mailer from the SMTP settings in the config
func New(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:      cfg.MailFrom,
		baseURL:   cfg.BaseURL,
		contactTo: cfg.ContactEmailTo,
	}
}

// emails a password reset link containing the raw token
func (m *Mailer) SendPasswordReset(ctx context.Context, to, rawToken string) error {
	link := m.resetLink(rawToken)

	msg := m.newMessage(to, "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf(
		"Click <a href='%s'>here</a> to choose a new password.<br><br>This link expires in 1 hour. If you did not request it, you can ignore this email.",
		link,
	))

	return m.send(ctx, msg)
}

// emails a single-use sign-in link containing the raw token
func (m *Mailer) SendLoginLink(ctx context.Context, to, rawToken string) error {
	link := m.loginLink(rawToken)

	msg := m.newMessage(to, "Your sign-in link")
	msg.SetBody("text/html", fmt.Sprintf(
		"Click <a href='%s'>here</a> to sign in.<br><br>This link expires in 15 minutes and works once.",
		link,
	))

	return m.send(ctx, msg)
}

// relays a contact form submission to the configured inbox
func (m *Mailer) SendContact(ctx context.Context, fromEmail, name, body string) error {
	msg := m.newMessage(m.contactTo, fmt.Sprintf("Contact form: %s", name))
	msg.SetHeader("Reply-To", fromEmail)
	msg.SetBody("text/plain", body)

	return m.send(ctx, msg)
}

func (m *Mailer) resetLink(rawToken string) string {
	return fmt.Sprintf("%s%s?token=%s", m.baseURL, PasswordResetPath, rawToken)
}

func (m *Mailer) loginLink(rawToken string) string {
	return fmt.Sprintf("%s%s?token=%s", m.baseURL, LoginLinkPath, rawToken)
}

func (m *Mailer) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	if err := sendLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail throttle: %w", err)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
