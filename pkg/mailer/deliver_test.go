package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oksasatya/plantify/pkg/mailer/templates"
)

type sentMessage struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{to, subject, text, html})
	return nil
}

func TestDeliverTemplate(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       "alice@x.com",
		Template: templates.Welcome,
		Data:     map[string]any{"Name": "Alice", "Method": "password"},
	}
	if err := Deliver(context.Background(), s, job, templates.WithAppName("Plantify")); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(s.sent))
	}
	m := s.sent[0]
	if m.subject != "Welcome to Plantify" {
		t.Fatalf("unexpected subject %q", m.subject)
	}
	if !strings.Contains(m.text, "alice@x.com") {
		t.Fatalf("expected recipient to default into body, got %q", m.text)
	}
}

func TestDeliverPermanentFailures(t *testing.T) {
	tests := []struct {
		name string
		job  EmailJob
	}{
		{"no recipient", EmailJob{Subject: "s", Text: "t"}},
		{"unknown template", EmailJob{To: "a@x.com", Template: "login_otp"}},
		{"empty body", EmailJob{To: "a@x.com", Subject: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Deliver(context.Background(), &fakeSender{}, tt.job)
			if !errors.Is(err, ErrPermanent) {
				t.Fatalf("expected permanent failure, got %v", err)
			}
		})
	}
}

func TestDeliverTransportErrorIsRetryable(t *testing.T) {
	boom := errors.New("connection reset")
	err := Deliver(context.Background(), &fakeSender{err: boom}, EmailJob{To: "a@x.com", Subject: "s", Text: "t"})
	if !errors.Is(err, boom) || errors.Is(err, ErrPermanent) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
