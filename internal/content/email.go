// Package content generates campaign copy from a free-form prompt.
// Generation is template based. A future revision may route prompts to an
// external model while keeping the same output shapes.
package content

import (
	"bytes"
	"strings"
	"text/template"
)

type GeneratedEmail struct {
	Subject     string `json:"subject"`
	PreviewText string `json:"preview_text"`
	BodyHTML    string `json:"body_html"`
	BodyText    string `json:"body_text"`
	CTAText     string `json:"cta_text"`
	CTAURL      string `json:"cta_url"`
}

type emailTheme struct {
	Subject     string
	PreviewText string
	Heading     string
	Pitch       string
	Closing     string
	CTAText     string
	CTAURL      string
}

var emailHTMLTemplate = template.Must(template.New("email_html").Parse(`<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #1a1a1a;">{{.Theme.Heading}}</h1>
    <p style="color: #4a4a4a; line-height: 1.6;">
        Based on your prompt: "{{.Prompt}}"
    </p>
    <p style="color: #4a4a4a; line-height: 1.6;">
        {{.Theme.Pitch}}
    </p>
    <div style="margin: 30px 0;">
        <a href="{{.Theme.CTAURL}}" style="background-color: #0066ff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: 600;">
            {{.Theme.CTAText}}
        </a>
    </div>{{if .Theme.Closing}}
    <p style="color: #666; font-size: 14px;">
        {{.Theme.Closing}}
    </p>{{end}}
</body>
</html>`))

var emailTextTemplate = template.Must(template.New("email_text").Parse(
	"{{.Theme.Heading}}\n\nBased on your prompt: \"{{.Prompt}}\"\n\n{{.Theme.Pitch}}{{if .Theme.Closing}}\n\n{{.Theme.Closing}}{{end}}",
))

var emailThemes = map[string]emailTheme{
	"event": {
		Subject:     "You're Invited: Exclusive Event Just for You",
		PreviewText: "Join us for an exciting event that you won't want to miss",
		Heading:     "You're Invited!",
		Pitch:       "We're hosting an exclusive event and would love for you to join us. This is your chance to connect with industry leaders, learn from experts, and be part of something special.",
		Closing:     "Space is limited, so don't wait!",
		CTAText:     "Reserve Your Spot",
		CTAURL:      "https://crm.hey.sh/events/register",
	},
	"launch": {
		Subject:     "Introducing Something New",
		PreviewText: "Be the first to experience our latest innovation",
		Heading:     "Something Big is Here",
		Pitch:       "We've been working hard to bring you something amazing, and today we're thrilled to share it with you. This is more than just an update - it's a leap forward.",
		CTAText:     "Learn More",
		CTAURL:      "https://crm.hey.sh/product",
	},
	"newsletter": {
		Subject:     "Your Weekly Update",
		PreviewText: "Here's what you need to know this week",
		Heading:     "This Week's Highlights",
		Pitch:       "Here's a quick roundup of everything that happened this week and what's coming up next.",
		CTAText:     "Read Full Update",
		CTAURL:      "https://crm.hey.sh/blog",
	},
	"default": {
		Subject:     "A Quick Note for You",
		PreviewText: "We have something to share",
		Heading:     "Hello!",
		Pitch:       "We wanted to reach out and share something with you. Your engagement means a lot to us, and we're always looking for ways to provide value.",
		CTAText:     "Learn More",
		CTAURL:      "https://crm.hey.sh",
	},
}

func emailThemeFor(prompt string) emailTheme {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "event") || strings.Contains(p, "webinar"):
		return emailThemes["event"]
	case strings.Contains(p, "launch") || strings.Contains(p, "product"):
		return emailThemes["launch"]
	case strings.Contains(p, "newsletter") || strings.Contains(p, "update"):
		return emailThemes["newsletter"]
	default:
		return emailThemes["default"]
	}
}

// GenerateEmail produces campaign email copy keyed off keywords in the prompt.
func GenerateEmail(prompt string) GeneratedEmail {
	theme := emailThemeFor(prompt)
	data := struct {
		Prompt string
		Theme  emailTheme
	}{Prompt: prompt, Theme: theme}

	var html, text bytes.Buffer
	// Templates are compile-time constants, execution cannot fail.
	_ = emailHTMLTemplate.Execute(&html, data)
	_ = emailTextTemplate.Execute(&text, data)

	return GeneratedEmail{
		Subject:     theme.Subject,
		PreviewText: theme.PreviewText,
		BodyHTML:    html.String(),
		BodyText:    text.String(),
		CTAText:     theme.CTAText,
		CTAURL:      theme.CTAURL,
	}
}
