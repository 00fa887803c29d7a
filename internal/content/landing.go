package content

import "strings"

type GeneratedLandingPage struct {
	Title        string           `json:"title"`
	Subtitle     string           `json:"subtitle"`
	HeroSection  HeroSection      `json:"hero_section"`
	Features     []FeatureSection `json:"features"`
	CTASection   CTASection       `json:"cta_section"`
	Testimonials []Testimonial    `json:"testimonials"`
	FAQ          []FAQItem        `json:"faq"`
	Footer       FooterSection    `json:"footer"`
}

type HeroSection struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	CTAText     string `json:"cta_text"`
	CTAURL      string `json:"cta_url"`
	ImagePrompt string `json:"image_prompt"`
}

type FeatureSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CTASection struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	ButtonText  string `json:"button_text"`
	ButtonURL   string `json:"button_url"`
}

type Testimonial struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FooterSection struct {
	CompanyName string       `json:"company_name"`
	Tagline     string       `json:"tagline"`
	Links       []FooterLink `json:"links"`
}

type FooterLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// GenerateLandingPage produces a full landing page payload keyed off
// keywords in the prompt.
func GenerateLandingPage(prompt string) GeneratedLandingPage {
	p := strings.ToLower(prompt)
	isEvent := strings.Contains(p, "event")
	isWaitlist := strings.Contains(p, "waitlist") || strings.Contains(p, "early access")
	isProduct := strings.Contains(p, "product")

	var headline string
	switch {
	case isEvent:
		headline = "Join Us for an Exclusive Event"
	case isWaitlist:
		headline = "Be First in Line"
	case isProduct:
		headline = "The CRM Built for Founders"
	default:
		headline = "Transform How You Connect"
	}

	ctaText := "Get Started Free"
	if isWaitlist {
		ctaText = "Join the Waitlist"
	}

	return GeneratedLandingPage{
		Title:    headline + " | hey.sh",
		Subtitle: "Generated from: " + prompt,
		HeroSection: HeroSection{
			Headline:    headline,
			Subheadline: "A modern CRM designed specifically for startup founders. Manage relationships, run campaigns, and grow your business - all in one place.",
			CTAText:     ctaText,
			CTAURL:      "/signup",
			ImagePrompt: "Modern SaaS dashboard with clean UI, showing CRM features, light mode",
		},
		Features: []FeatureSection{
			{
				Title:       "Contact Management",
				Description: "Keep track of every relationship with smart contact profiles, company associations, and engagement scoring.",
				Icon:        "users",
			},
			{
				Title:       "Campaign Builder",
				Description: "Create multi-channel campaigns with generated content. Email, social, landing pages - all from one prompt.",
				Icon:        "rocket",
			},
			{
				Title:       "Event Management",
				Description: "Host webinars, meetups, and demos. Track RSVPs and attendance automatically.",
				Icon:        "calendar",
			},
			{
				Title:       "Real-time Analytics",
				Description: "Understand your funnel with detailed analytics. Track engagement, conversions, and ROI.",
				Icon:        "chart",
			},
		},
		CTASection: CTASection{
			Headline:    "Ready to Transform Your Outreach?",
			Description: "Join thousands of founders who are building better relationships with hey.sh CRM.",
			ButtonText:  "Start Free Trial",
			ButtonURL:   "/signup",
		},
		Testimonials: []Testimonial{
			{
				Quote:   "Finally, a CRM that understands what founders actually need. Simple, powerful, and just works.",
				Author:  "Sarah Chen",
				Role:    "CEO",
				Company: "TechStartup Inc",
			},
			{
				Quote:   "The campaign builder saved us hours of work. Our email open rates increased by 40%.",
				Author:  "Mike Johnson",
				Role:    "Head of Growth",
				Company: "ScaleUp Labs",
			},
		},
		FAQ: []FAQItem{
			{
				Question: "How is this different from other CRMs?",
				Answer:   "hey.sh CRM is built specifically for founders and small teams. We focus on simplicity and automation instead of bloated features you'll never use.",
			},
			{
				Question: "What's included in the free trial?",
				Answer:   "Full access to all features for 14 days. No credit card required.",
			},
			{
				Question: "Can I import my existing contacts?",
				Answer:   "Yes! We support CSV import and direct integrations with popular tools.",
			},
		},
		Footer: FooterSection{
			CompanyName: "hey.sh",
			Tagline:     "The founder-focused CRM",
			Links: []FooterLink{
				{Text: "About", URL: "/about"},
				{Text: "Blog", URL: "/blog"},
				{Text: "Privacy", URL: "/privacy"},
				{Text: "Terms", URL: "/terms"},
			},
		},
	}
}
