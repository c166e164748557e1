package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"sync"
)

// Mailer is the outbound email boundary. The dispatcher owns retries and
// failure accounting; implementations just attempt one delivery.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends through a plain SMTP relay configured from the
// environment (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM).
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer() (*SMTPMailer, error) {
	m := &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: os.Getenv("SMTP_FROM"),
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return nil, fmt.Errorf("SMTP_HOST, SMTP_PORT and SMTP_FROM must be set")
	}
	return m, nil
}

func (m *SMTPMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" + body)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	// net/smtp has no context hook; honor cancellation before dialing.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// MockMailer logs instead of sending. Used in tests and when SMTP is not
// configured, so the rest of the notification path still runs.
type MockMailer struct {
	mu   sync.Mutex
	sent []MockMessage
}

type MockMessage struct {
	To      string
	Subject string
	Body    string
}

func (m *MockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, MockMessage{To: to, Subject: subject, Body: body})
	m.mu.Unlock()
	log.Printf("MOCK EMAIL: To %s, Subject: %s", to, subject)
	return nil
}

// Messages returns a snapshot of everything sent so far.
func (m *MockMailer) Messages() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockMessage(nil), m.sent...)
}
