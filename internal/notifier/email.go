package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailConfig carries SMTP credentials and the sender identity. Passed in
// explicitly; nothing here reads the environment.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Email delivers over SMTP with an HTML body.
type Email struct {
	cfg  EmailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmail(cfg EmailConfig) *Email {
	return &Email{cfg: cfg, send: smtp.SendMail}
}

func (e *Email) Notify(_ context.Context, m Message) error {
	if m.Email == "" {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.Body)

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	var a smtp.Auth
	if e.cfg.Username != "" {
		a = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}
	if err := e.send(addr, a, e.cfg.From, []string{m.Email}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", m.Email, err)
	}
	return nil
}
