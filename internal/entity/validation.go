package entity

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Pure format checks. No side effects: nothing here touches the database or
// the network. "Is this email syntactically valid?" is answered here;
// "is this email already in use?" is a repository concern.

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Accepts +1234567890, (123) 456-7890, 123-456-7890, etc.
	phoneRegex = regexp.MustCompile(`^[\d\s\-\(\)\+\.]{7,20}$`)

	linkedinRegex = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[\w\-]+/?$`)
)

// ValidateEmail checks the email shape: one @, a domain with a dot, a TLD of
// at least 2 characters, and no consecutive dots.
func ValidateEmail(email string) error {
	if email == "" {
		return &RequiredFieldError{Field: "email"}
	}
	if !emailRegex.MatchString(email) {
		return &InvalidFieldError{Field: "email", Reason: "Invalid email format"}
	}
	if strings.Contains(email, "..") {
		return &InvalidFieldError{Field: "email", Reason: "Email cannot contain consecutive dots"}
	}
	return nil
}

// ValidatePhone accepts an empty phone (the field is optional). A non-empty
// phone must be 7-20 characters of digits, spaces, dashes, parentheses,
// plus signs and dots.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return &InvalidFieldError{Field: "phone", Reason: "Invalid phone format"}
	}
	return nil
}

// ValidateLinkedInURL accepts an empty URL; otherwise it must be a profile
// URL of the form https://linkedin.com/in/username.
func ValidateLinkedInURL(url string) error {
	if url == "" {
		return nil
	}
	if !linkedinRegex.MatchString(url) {
		return &InvalidFieldError{
			Field:  "linkedin_url",
			Reason: "Must be a valid LinkedIn profile URL (https://linkedin.com/in/username)",
		}
	}
	return nil
}

// ValidateName checks a first or last name: required, at most 100 characters,
// no control characters. fieldName is reported in the error.
func ValidateName(name, fieldName string) error {
	if strings.TrimSpace(name) == "" {
		return &RequiredFieldError{Field: fieldName}
	}
	if len(name) > 100 {
		return &InvalidFieldError{Field: fieldName, Reason: "Name cannot exceed 100 characters"}
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return &InvalidFieldError{Field: fieldName, Reason: "Name cannot contain control characters"}
		}
	}
	return nil
}

// ValidateTag trims, lowercases and checks a tag. Returns the normalized
// value: 1-50 characters, letters/digits/hyphens/underscores only.
func ValidateTag(tag string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))

	if normalized == "" {
		return "", &InvalidFieldError{Field: "tag", Reason: "Tag cannot be empty"}
	}
	if len(normalized) > 50 {
		return "", &InvalidFieldError{Field: "tag", Reason: "Tag cannot exceed 50 characters"}
	}
	for _, r := range normalized {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return "", &InvalidFieldError{
				Field:  "tag",
				Reason: "Tag can only contain letters, numbers, hyphens, and underscores",
			}
		}
	}
	return normalized, nil
}

// ValidateTags validates every tag and removes duplicates while preserving
// first-seen order.
func ValidateTags(tags []string) ([]string, error) {
	validated := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		normalized, err := ValidateTag(tag)
		if err != nil {
			return nil, err
		}
		if !seen[normalized] {
			seen[normalized] = true
			validated = append(validated, normalized)
		}
	}
	return validated, nil
}

// ValidateEngagementScore rejects NaN, infinities and anything outside
// [0, 100]. Used by strict call sites that must not clamp.
func ValidateEngagementScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0.0 || score > 100.0 {
		return &InvalidFieldError{
			Field:  "engagement_score",
			Reason: "Engagement score must be between 0.0 and 100.0 (inclusive)",
		}
	}
	return nil
}

// ValidateCompanyDomain accepts an empty domain; otherwise it must look like
// "example.com": no protocol prefix, at least one dot, TLD of 2-10 characters.
func ValidateCompanyDomain(domain string) error {
	if domain == "" {
		return nil
	}
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return &InvalidFieldError{
			Field:  "company_domain",
			Reason: "Company domain cannot have protocol prefix",
		}
	}

	parts := strings.Split(domain, ".")
	tld := parts[len(parts)-1]
	if len(parts) < 2 || len(tld) < 2 || len(tld) > 10 {
		return &InvalidFieldError{
			Field:  "company_domain",
			Reason: "Company domain must have at least one dot and a valid TLD",
		}
	}
	return nil
}
