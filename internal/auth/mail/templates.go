package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Product is the name shown in subjects and headings.
const Product = "HireHub"

// Templates renders the account emails.
type Templates struct {
	t *template.Template
}

func NewTemplates() (*Templates, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Templates{t: t}, nil
}

// OTP renders the verification code email.
func (t *Templates) OTP(to, name, code string, validFor time.Duration) (Message, error) {
	body, err := t.render("otp.html", map[string]any{
		"Product":  Product,
		"Name":     displayName(name, to),
		"Code":     code,
		"ValidFor": humanDuration(validFor),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: Product + " - Email Verification Code", HTMLBody: body}, nil
}

// Reset renders the password reset email carrying link.
func (t *Templates) Reset(to, name, link string, validFor time.Duration) (Message, error) {
	body, err := t.render("reset.html", map[string]any{
		"Product":  Product,
		"Name":     displayName(name, to),
		"Link":     template.URL(link), //nolint:gosec // built by the service, never user supplied
		"ValidFor": humanDuration(validFor),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: Product + " - Password Reset Request", HTMLBody: body}, nil
}

func (t *Templates) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}

// humanDuration prints 30m as "30 minutes" and 1h as "1 hour".
func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
