package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

const (
	TemplateReferrerSignup       = "referrer_signup"
	TemplateContactReferral      = "contact_referral"
	TemplateContactNoReferral    = "contact_no_referral"
	TemplateReferrerNotification = "referrer_notification"
	TemplateAdminInvite          = "admin_invite"
)

var subjects = map[string]string{
	TemplateReferrerSignup:       "You're in! Let's get cooking 🌺",
	TemplateContactReferral:      "Welcome to Salt & Serenity 🌴",
	TemplateContactNoReferral:    "Welcome to Salt & Serenity 🌴",
	TemplateReferrerNotification: "🌟 Someone joined thanks to you!",
	TemplateAdminInvite:          "Welcome to admin access to Salt and Serenity",
}

//go:embed templates/*.html
var templateFS embed.FS

type Templates struct {
	sets map[string]*template.Template
	now  func() time.Time
}

func LoadTemplates() (*Templates, error) {
	t := &Templates{sets: make(map[string]*template.Template, len(subjects)), now: time.Now}
	for name := range subjects {
		set, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		t.sets[name] = set
	}
	return t, nil
}

// Render returns the subject and HTML body for name.
func (t *Templates) Render(name string, data TemplateData) (string, string, error) {
	set, ok := t.sets[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	if data.Year == 0 {
		data.Year = t.now().Year()
	}

	subject := subjects[name]
	var body bytes.Buffer
	err := set.ExecuteTemplate(&body, "layout", struct {
		Subject string
		Data    TemplateData
	}{subject, data})
	if err != nil {
		return "", "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return subject, body.String(), nil
}
