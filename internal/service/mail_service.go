package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// ContactSubject is the subject line of every relayed contact message.
const ContactSubject = "Inquiry Form Submission"

var ErrMailDelivery = errors.New("mail delivery failed")

// Mailer delivers composed messages. *gomail.Dialer satisfies it.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// MailService relays contact form submissions to a fixed recipient.
type MailService struct {
	mailer    Mailer
	recipient string
}

// NewSMTPMailer returns a gomail dialer for the given SMTP server. Port 465
// uses implicit TLS; other ports upgrade with STARTTLS when offered.
func NewSMTPMailer(host string, port int, username, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, username, password)
}

// NewMailService creates a MailService instance.
func NewMailService(mailer Mailer, recipient string) *MailService {
	return &MailService{mailer: mailer, recipient: strings.TrimSpace(recipient)}
}

// SendContact composes a plain text email from msg and dispatches it once.
func (s *MailService) SendContact(ctx context.Context, msg ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}
	if s.recipient == "" {
		return fmt.Errorf("%w: recipient address is not configured", ErrMailDelivery)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.recipient)
	m.SetHeader("To", s.recipient)
	m.SetHeader("Subject", ContactSubject)
	m.SetBody("text/plain", ContactBody(msg))

	if err := s.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}
	return nil
}

// ContactBody renders the text body of a contact email.
func ContactBody(msg ContactMessage) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", msg.Name, msg.Email, msg.Message)
}
