// Package mail forwards contact-form submissions to a transactional email
// provider: SendGrid when an API key is present, SMTP when a host is
// configured, and a soft no-op when neither is.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"autovitrine/internal/config"
	"autovitrine/internal/domain"
)

// Providers reported by SendContact.
const (
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"
	ProviderNone     = ""
)

type Mailer struct {
	cfg      config.Config
	sendgrid *sendgrid.Client
}

func New(cfg config.Config) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.SendGridAPIKey != "" {
		m.sendgrid = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	return m
}

func (m *Mailer) to() string {
	if m.cfg.ToEmail != "" {
		return m.cfg.ToEmail
	}
	return m.cfg.SMTPUser
}

func (m *Mailer) from() string {
	if m.cfg.FromEmail != "" {
		return m.cfg.FromEmail
	}
	if m.cfg.SMTPUser != "" {
		return m.cfg.SMTPUser
	}
	return "no-reply@autovitrine.local"
}

func body(msg domain.ContactMessage) (subject, text string) {
	subject = "Contato via site - " + msg.Name
	text = fmt.Sprintf("Nome: %s\nEmail: %s\nTelefone: %s\n\nMensagem:\n%s",
		msg.Name, msg.Email, msg.Phone, msg.Message)
	return subject, text
}

// SendContact attempts SendGrid, then SMTP. It returns the provider that
// accepted the message; ProviderNone with a nil error means nothing is
// configured and the message was only received.
func (m *Mailer) SendContact(ctx context.Context, msg domain.ContactMessage) (string, error) {
	subject, text := body(msg)

	if m.sendgrid != nil {
		if err := m.sendViaSendGrid(ctx, subject, text); err != nil {
			return ProviderSendGrid, err
		}
		return ProviderSendGrid, nil
	}

	if m.cfg.SMTPHost != "" {
		if err := m.sendViaSMTP(subject, text); err != nil {
			return ProviderSMTP, err
		}
		return ProviderSMTP, nil
	}

	return ProviderNone, nil
}

func (m *Mailer) sendViaSendGrid(ctx context.Context, subject, text string) error {
	message := sgmail.NewV3Mail()
	message.From = sgmail.NewEmail("", m.from())
	message.Subject = subject

	personalization := sgmail.NewPersonalization()
	personalization.To = append(personalization.To, sgmail.NewEmail("", m.to()))
	message.Personalizations = append(message.Personalizations, personalization)
	message.Content = append(message.Content, sgmail.NewContent("text/plain", text))

	resp, err := m.sendgrid.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send via sendgrid: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (m *Mailer) sendViaSMTP(subject, text string) error {
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}
	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from(), m.to(), subject, text)
	if err := smtp.SendMail(addr, auth, m.from(), []string{m.to()}, []byte(raw)); err != nil {
		return fmt.Errorf("send via smtp: %w", err)
	}
	return nil
}
