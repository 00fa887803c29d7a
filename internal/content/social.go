package content

type SocialPlatform string

const (
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformInstagram SocialPlatform = "instagram"
)

type GeneratedPost struct {
	Platform             SocialPlatform `json:"platform"`
	Content              string         `json:"content"`
	Hashtags             []string       `json:"hashtags"`
	SuggestedImagePrompt string         `json:"suggested_image_prompt"`
	CharacterCount       int            `json:"character_count"`
}

// GenerateSocialPosts produces one post per platform from the prompt.
// Long prompts are truncated so the short-form platforms stay readable.
func GenerateSocialPosts(prompt string) []GeneratedPost {
	base := prompt
	if len(base) > 50 {
		base = base[:50]
	}

	return []GeneratedPost{
		{
			Platform:             PlatformTwitter,
			Content:              "Exciting news! " + base + " - We're building the future of founder-focused CRM. Stay tuned for more updates!",
			Hashtags:             []string{"#startup", "#CRM", "#founders", "#growth"},
			SuggestedImagePrompt: "Modern tech dashboard with growth charts, blue gradient background",
			CharacterCount:       140,
		},
		{
			Platform:             PlatformLinkedIn,
			Content:              base + "\n\nAt hey.sh, we're reimagining how founders manage relationships and drive growth. Our new CRM platform is designed specifically for the unique needs of startup founders.\n\nKey features:\n- Contact & company management\n- Campaign builder with generated content\n- Event tracking & RSVPs\n- Real-time analytics\n\nInterested in early access? Drop a comment below!",
			Hashtags:             []string{"#Entrepreneurship", "#StartupLife", "#SaaS", "#B2B", "#ProductLaunch"},
			SuggestedImagePrompt: "Professional product screenshot showing CRM dashboard with modern UI",
			CharacterCount:       500,
		},
		{
			Platform:             PlatformFacebook,
			Content:              "Big things are happening!\n\n" + base + "\n\nWe've been hard at work building something special for founders and growth teams. Our new CRM platform combines the simplicity you need with the power you want.\n\nFollow our page to be the first to know when we launch!",
			Hashtags:             []string{"#startup", "#business", "#technology"},
			SuggestedImagePrompt: "Team collaboration image with modern office aesthetic",
			CharacterCount:       300,
		},
		{
			Platform:             PlatformInstagram,
			Content:              "Building the future, one relationship at a time.\n\n" + base + "\n\nLink in bio for early access!",
			Hashtags:             []string{"#startuplife", "#entrepreneurship", "#techstartup", "#saas", "#crm", "#growthhacking", "#b2b", "#founder"},
			SuggestedImagePrompt: "Minimalist product mockup on gradient background with geometric shapes",
			CharacterCount:       150,
		},
	}
}
