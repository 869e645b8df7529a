package mailer

import "strings"

// EmailJob is the JSON payload the API puts on the email queue. A job names
// a Template with its Data, or carries a pre-rendered Subject/Text/HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Recipient is the trimmed destination address.
func (j EmailJob) Recipient() string { return strings.TrimSpace(j.To) }

// Prerendered reports whether the job carries its own bodies.
func (j EmailJob) Prerendered() bool {
	return j.Template == "" && j.Subject != "" && (j.Text != "" || j.HTML != "")
}
