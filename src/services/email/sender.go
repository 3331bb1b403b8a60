// Package email handles outbound mail. Services never talk SMTP directly;
// they enqueue through a Notifier and the asynq worker delivers through a
// MailSender.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// MailSender delivers one HTML email. The production implementation speaks
// SMTP; tests swap in a recorder.
type MailSender interface {
	Send(toEmail, toName, subject, html string) error
}

// GomailSender is the SMTP-backed MailSender.
type GomailSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewGomailSender(host string, port int, username, password, from string) *GomailSender {
	return &GomailSender{Host: host, Port: port, Username: username, Password: password, From: from}
}

func (g *GomailSender) Send(toEmail, toName, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", g.From)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(g.Host, g.Port, g.Username, g.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", toEmail, err)
	}
	return nil
}
