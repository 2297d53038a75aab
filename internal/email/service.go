package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/lawlink/lawlink-api/internal/config"
)

type Service interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendNotification(ctx context.Context, to, name, title, message string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to LawLink. You can now browse lawyers and book consultations.", name)
	return s.send(to, "Welcome to LawLink", body)
}

func (s *smtpService) SendNotification(ctx context.Context, to, name, title, message string) error {
	body := fmt.Sprintf("Hi %s,\n\n%s", name, message)
	return s.send(to, title, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopService drops all mail. Used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendWelcome(ctx context.Context, to, name string) error { return nil }

func (NoopService) SendNotification(ctx context.Context, to, name, title, message string) error {
	return nil
}
