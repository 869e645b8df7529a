package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"strings"
	"sync"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines the fields available to every account email template.
type EmailData struct {
	Name       string `json:"Name"`
	Email      string `json:"Email"`
	Type       string `json:"Type"`
	AppName    string `json:"AppName"`
	SupportURL string `json:"SupportURL"`
	// Method is the sign-in method that triggered the email ("password" or "google").
	Method string `json:"Method"`
	Time   string `json:"Time"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	m := map[string]any{}
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
	}
	return value
}

// Template names
const (
	Welcome      = "welcome"
	GoogleLinked = "google_linked"
)

// set holds the three parsed parts of one email.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	loadOnce sync.Once
	sets     map[string]set
	loadErr  error
)

// load parses every embedded template once. Each email needs
// <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func load() {
	funcs := map[string]any{"default": defaultFn}
	sets = make(map[string]set)
	for _, name := range []string{Welcome, GoogleLinked} {
		var s set
		if s.subject, loadErr = texttpl.New(name).Funcs(funcs).ParseFS(FS, name+".subject.tmpl"); loadErr != nil {
			return
		}
		if s.text, loadErr = texttpl.New(name).Funcs(funcs).ParseFS(FS, name+".text.tmpl"); loadErr != nil {
			return
		}
		if s.html, loadErr = htmpl.New(name).Funcs(funcs).ParseFS(FS, name+".html.tmpl"); loadErr != nil {
			return
		}
		sets[name] = s
	}
}

func lookup(name string) (set, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return set{}, fmt.Errorf("parse templates: %w", loadErr)
	}
	s, ok := sets[name]
	if !ok {
		return set{}, fmt.Errorf("unknown template %q", name)
	}
	return s, nil
}

// Known reports whether name has embedded templates.
func Known(name string) bool {
	_, err := lookup(name)
	return err == nil
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(t executor, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, file, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", file, err)
	}
	return buf.String(), nil
}

// Render returns the subject, plain text and HTML bodies of the named email.
// The subject is trimmed; HTML values are escaped by html/template.
func Render(name string, data any) (subject string, text string, html string, err error) {
	s, err := lookup(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(s.subject, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(s.text, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(s.html, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
