package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// OutboundMail is one message to submit over SMTP
type OutboundMail struct {
	To         string
	Subject    string
	Text       string
	HTML       string // optional alternative part
	InReplyTo  string // Message-ID being answered, keeps client threading
	References string
}

// Sender submits mail over SMTP
type Sender struct {
	host     string
	port     int
	user     string
	password string
	fromAddr string
	fromName string
}

// NewSender creates a new SMTP sender
func NewSender(host string, port int, user, password, fromAddr, fromName string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		fromAddr: fromAddr,
		fromName: fromName,
	}
}

// Send dials the SMTP server and submits the message
func (s *Sender) Send(m *OutboundMail) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.fromAddr, s.fromName)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	if m.InReplyTo != "" {
		msg.SetHeader("In-Reply-To", m.InReplyTo)
		references := m.References
		if references == "" {
			references = m.InReplyTo
		}
		msg.SetHeader("References", references)
	}

	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}

	d := gomail.NewDialer(s.host, s.port, s.user, s.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
