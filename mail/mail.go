// Package mail sends email through an SMTP relay. It wraps message
// construction and delivery; address validation beyond the obvious is
// the relay's problem.
package mail

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"
)

// Message is one email to deliver.
type Message struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	HTML        bool
	Attachments []string
}

// Validate reports a message that cannot be delivered.
func (m *Message) Validate() error {
	if m.From == "" {
		return fmt.Errorf("mail: message has no sender")
	}
	if len(m.To) == 0 {
		return fmt.Errorf("mail: message has no recipients")
	}
	return nil
}

// build renders the message in wire format.
func (m *Message) build() (*gomail.Message, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To...)
	if len(m.Cc) > 0 {
		msg.SetHeader("Cc", m.Cc...)
	}
	if len(m.Bcc) > 0 {
		msg.SetHeader("Bcc", m.Bcc...)
	}
	msg.SetHeader("Subject", m.Subject)
	msg.SetHeader("Message-Id", messageID(m.From))
	if m.HTML {
		msg.SetBody("text/html", m.Body)
	} else {
		msg.SetBody("text/plain", m.Body)
	}
	for _, path := range m.Attachments {
		msg.Attach(path)
	}
	return msg, nil
}

// WriteTo renders the message in wire format without sending it.
func (m *Message) WriteTo(w io.Writer) error {
	msg, err := m.build()
	if err != nil {
		return err
	}
	if _, err := msg.WriteTo(w); err != nil {
		return fmt.Errorf("mail: render message: %w", err)
	}
	return nil
}

// messageID derives a unique Message-Id, using the sender's domain when
// one is available.
func messageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.TrimSuffix(strings.TrimSpace(from[at+1:]), ">")
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// Sender delivers messages through one SMTP relay.
type Sender struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Send validates, renders and delivers the message synchronously.
func (s *Sender) Send(m *Message) error {
	if s.Host == "" {
		return fmt.Errorf("mail: sender has no relay host")
	}
	msg, err := m.build()
	if err != nil {
		return err
	}
	port := s.Port
	if port == 0 {
		port = 25
	}
	dialer := gomail.NewDialer(s.Host, port, s.Username, s.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: send via %s:%d: %w", s.Host, port, err)
	}
	return nil
}
