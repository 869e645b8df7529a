package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithAppName(name string) Option { return func(d *EmailData) { d.AppName = name } }
func WithSupportURL(url string) Option {
	return func(d *EmailData) { d.SupportURL = strings.TrimSpace(url) }
}
func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

// NewAccountEmailData builds the payload for a template of kind typ.
func NewAccountEmailData(typ, name, email, method string, opts ...Option) EmailData {
	d := EmailData{
		Name:   name,
		Email:  email,
		Type:   typ,
		Method: method,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// ApplyDefaults fills fields the publisher does not know about (app name,
// support link) without overwriting values already present in data. Every
// template field ends up present so templates never see a missing key.
func ApplyDefaults(data map[string]any, opts ...Option) map[string]any {
	var d EmailData
	for _, opt := range opts {
		opt(&d)
	}
	if data == nil {
		data = map[string]any{}
	}
	for k, v := range ToMap(d) {
		cur, ok := data[k]
		if !ok || cur == nil || (cur == "" && v != "") {
			data[k] = v
		}
	}
	return data
}
