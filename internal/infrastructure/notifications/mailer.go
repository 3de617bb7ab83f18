package notifications

import (
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// SMTPMailer implements domain.Mailer over plain SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(host string, port int, username, password, from string) domain.Mailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendMessage implements domain.Mailer
func (m *SMTPMailer) SendMessage(to, subject, text, html string) error {
	// If the transport is not configured, log instead of sending so local
	// environments can run without an SMTP server.
	if m.dialer.Host == "" {
		slog.Info("mock email", "to", to, "subject", subject, "body", text)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

var _ domain.Mailer = (*SMTPMailer)(nil)
