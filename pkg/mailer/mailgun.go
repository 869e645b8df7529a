package mailer

import (
	"context"
	"errors"
	"strings"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// MailgunConfig configures delivery through the Mailgun HTTP API.
type MailgunConfig struct {
	Domain string
	APIKey string
	Sender string
	// Region is "us" (default) or "eu".
	Region  string
	Timeout time.Duration
}

// Mailgun sends rendered messages through Mailgun. It implements Sender.
type Mailgun struct {
	Sender  string
	Timeout time.Duration
	client  *mg.MailgunImpl
}

func NewMailgun(cfg MailgunConfig) (*Mailgun, error) {
	if cfg.Domain == "" || cfg.APIKey == "" || cfg.Sender == "" {
		return nil, errors.New("mailgun domain, api key and sender are required")
	}
	client := mg.NewMailgun(cfg.Domain, cfg.APIKey)
	if strings.EqualFold(cfg.Region, "eu") {
		client.SetAPIBase(mg.APIBaseEU)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Mailgun{Sender: cfg.Sender, Timeout: timeout, client: client}, nil
}

// Send delivers one message. html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
