package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/plantify/pkg/mailer/templates"
)

// ErrPermanent marks jobs that can never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent email failure")

// Sender delivers a rendered message. *Mailgun implements it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Deliver renders job when it names a template and hands it to s. Rendering
// problems and malformed jobs wrap ErrPermanent; transport errors do not.
func Deliver(ctx context.Context, s Sender, job EmailJob, opts ...templates.Option) error {
	to := job.Recipient()
	if to == "" {
		return fmt.Errorf("%w: empty recipient", ErrPermanent)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if !templates.Known(job.Template) {
			return fmt.Errorf("%w: unknown template %q", ErrPermanent, job.Template)
		}
		data := templates.ApplyDefaults(job.Data, opts...)
		if _, ok := data["Email"]; !ok || data["Email"] == "" {
			data["Email"] = to
		}
		var err error
		subject, text, html, err = templates.Render(job.Template, data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPermanent, err)
		}
	}
	if !(EmailJob{Subject: subject, Text: text, HTML: html}).Prerendered() {
		return fmt.Errorf("%w: empty message", ErrPermanent)
	}
	return s.Send(ctx, to, subject, text, html)
}
