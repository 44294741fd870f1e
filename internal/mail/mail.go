// Package mail sends the rendered budget report over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"budgetmail/internal/log"
)

// Config holds the SMTP endpoint and credentials. The defaults target Gmail
// with an app password over implicit TLS.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Message is one outgoing reminder email. The sender is always blind-copied
// so every sent reminder lands in their own inbox too.
type Message struct {
	From     string
	To       []string
	Subject  string
	HTMLBody string
}

type Client struct {
	cfg    Config
	logger *log.Logger
}

func NewClient(cfg Config, logger *log.Logger) *Client {
	return &Client{cfg: cfg, logger: logger.WithComponent(log.ComponentMail)}
}

// Send delivers the message, dialing a fresh SMTP session per call. Reminder
// volume is one email a day, so there is nothing to pool.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("no recipients")
	}

	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	if err := m.Bcc(msg.From); err != nil {
		return fmt.Errorf("set bcc: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	client, err := gomail.NewClient(c.cfg.Host,
		gomail.WithPort(c.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(c.cfg.Username),
		gomail.WithPassword(c.cfg.Password))
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	c.logger.InfoContext(ctx, "Email sent",
		log.FieldRecipient, msg.To,
		log.FieldSubject, msg.Subject)
	return nil
}
