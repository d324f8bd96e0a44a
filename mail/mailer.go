// Package mail delivers transactional emails (currently only password
// resets). The SMTP transport is deliberately minimal; deployments without
// SMTP credentials fall back to logging the message, which is enough for
// local development.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	payload := fmt.Sprintf("From: Support <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, msg.To, msg.Subject, msg.Body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(payload))
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	Log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{Log: log}
}

func (m *LogMailer) Send(msg Message) error {
	m.Log.Info("Mail delivery skipped (no SMTP configured)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body)
	return nil
}
