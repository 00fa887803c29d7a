package entity

import (
	"math"
	"strings"
	"time"
)

// Contact is the CRM aggregate. It always holds validated data: construction
// goes through ContactBuilder and every mutation re-checks the relevant rules,
// so an invalid Contact is never observable.
//
// Persistence identity and email uniqueness live in the repository layer, not
// here. CompanyID is a weak reference resolved externally.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	Phone       string `json:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`

	Tags   []string      `json:"tags"`
	Status ContactStatus `json:"status"`

	EngagementScore float64 `json:"engagement_score"`

	CompanyID string `json:"company_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// HasTag reports whether the contact carries the tag, case-insensitively.
func (c *Contact) HasTag(tag string) bool {
	normalized := strings.ToLower(tag)
	for _, t := range c.Tags {
		if t == normalized {
			return true
		}
	}
	return false
}

// IsEngaged reports whether the engagement score is at least 50.
func (c *Contact) IsEngaged() bool {
	return c.EngagementScore >= 50.0
}

// IsAtRisk reports whether a customer is at risk of churning (score below 30).
func (c *Contact) IsAtRisk() bool {
	return c.Status == StatusCustomer && c.EngagementScore < 30.0
}

// TransitionStatus moves the contact to a new lifecycle status. Illegal
// transitions leave the contact unchanged.
func (c *Contact) TransitionStatus(next ContactStatus) error {
	if !c.Status.CanTransitionTo(next) {
		return &InvalidStateTransitionError{
			From:   c.Status,
			To:     next,
			Reason: c.Status.TransitionExplanation(next),
		}
	}

	c.Status = next
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// AddTag validates, normalizes and appends a tag. Adding a tag the contact
// already has is a successful no-op and does not touch UpdatedAt.
func (c *Contact) AddTag(tag string) error {
	validated, err := ValidateTag(tag)
	if err != nil {
		return err
	}

	if !c.HasTag(validated) {
		c.Tags = append(c.Tags, validated)
		c.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// RemoveTag removes a tag case-insensitively and reports whether anything
// was removed.
func (c *Contact) RemoveTag(tag string) bool {
	normalized := strings.ToLower(tag)
	kept := c.Tags[:0]
	for _, t := range c.Tags {
		if t != normalized {
			kept = append(kept, t)
		}
	}

	if len(kept) == len(c.Tags) {
		return false
	}
	c.Tags = kept
	c.UpdatedAt = time.Now().UTC()
	return true
}

// UpdateEngagement stores a new engagement score, clamped to [0, 100].
// NaN and infinities are rejected.
func (c *Contact) UpdateEngagement(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return &InvalidFieldError{
			Field:  "engagement_score",
			Reason: "Score must be a finite number",
		}
	}

	c.EngagementScore = clamp(score, 0.0, 100.0)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ContactBuilder is the only way to create a Contact. It accumulates raw
// input, normalizes it, and validates everything in Build. Build fails with
// the first violation; no partially valid Contact escapes.
type ContactBuilder struct {
	firstName string
	lastName  string
	email     string
	hasFirst  bool
	hasLast   bool
	hasEmail  bool

	phone       string
	linkedinURL string
	tags        []string
	status      ContactStatus
	companyID   string
}

func NewContactBuilder() *ContactBuilder {
	return &ContactBuilder{status: StatusLead}
}

func (b *ContactBuilder) FirstName(name string) *ContactBuilder {
	b.firstName = strings.TrimSpace(name)
	b.hasFirst = true
	return b
}

func (b *ContactBuilder) LastName(name string) *ContactBuilder {
	b.lastName = strings.TrimSpace(name)
	b.hasLast = true
	return b
}

func (b *ContactBuilder) Email(email string) *ContactBuilder {
	b.email = strings.ToLower(strings.TrimSpace(email))
	b.hasEmail = true
	return b
}

// Phone keeps the number as given, trimmed. Empty strings are dropped so the
// field stays unset.
func (b *ContactBuilder) Phone(phone string) *ContactBuilder {
	if trimmed := strings.TrimSpace(phone); trimmed != "" {
		b.phone = trimmed
	}
	return b
}

func (b *ContactBuilder) LinkedInURL(url string) *ContactBuilder {
	if trimmed := strings.TrimSpace(url); trimmed != "" {
		b.linkedinURL = trimmed
	}
	return b
}

func (b *ContactBuilder) Tag(tag string) *ContactBuilder {
	b.tags = append(b.tags, tag)
	return b
}

func (b *ContactBuilder) Tags(tags []string) *ContactBuilder {
	b.tags = append(b.tags, tags...)
	return b
}

func (b *ContactBuilder) Status(status ContactStatus) *ContactBuilder {
	b.status = status
	return b
}

func (b *ContactBuilder) CompanyID(id string) *ContactBuilder {
	b.companyID = id
	return b
}

// Build validates every field and produces the Contact. New contacts start
// with an engagement score of zero.
func (b *ContactBuilder) Build() (*Contact, error) {
	if !b.hasFirst {
		return nil, &RequiredFieldError{Field: "first_name"}
	}
	if err := ValidateName(b.firstName, "first_name"); err != nil {
		return nil, err
	}

	if !b.hasLast {
		return nil, &RequiredFieldError{Field: "last_name"}
	}
	if err := ValidateName(b.lastName, "last_name"); err != nil {
		return nil, err
	}

	if !b.hasEmail {
		return nil, &RequiredFieldError{Field: "email"}
	}
	if err := ValidateEmail(b.email); err != nil {
		return nil, err
	}

	if err := ValidatePhone(b.phone); err != nil {
		return nil, err
	}
	if err := ValidateLinkedInURL(b.linkedinURL); err != nil {
		return nil, err
	}

	tags, err := ValidateTags(b.tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Contact{
		FirstName:       b.firstName,
		LastName:        b.lastName,
		Email:           b.email,
		Phone:           b.phone,
		LinkedInURL:     b.linkedinURL,
		Tags:            tags,
		Status:          b.status,
		EngagementScore: 0.0,
		CompanyID:       b.companyID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ContactUpdater applies partial updates to an existing contact. Each setter
// validates immediately; the first error sticks and Apply returns it, leaving
// the caller's original value untouched (the updater works on a copy).
type ContactUpdater struct {
	contact  Contact
	modified []string
	err      error
}

func NewContactUpdater(contact Contact) *ContactUpdater {
	return &ContactUpdater{contact: contact}
}

func (u *ContactUpdater) Email(email string) *ContactUpdater {
	if u.err != nil {
		return u
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(normalized); err != nil {
		u.err = err
		return u
	}
	u.contact.Email = normalized
	u.modified = append(u.modified, "email")
	return u
}

func (u *ContactUpdater) FirstName(name string) *ContactUpdater {
	if u.err != nil {
		return u
	}
	trimmed := strings.TrimSpace(name)
	if err := ValidateName(trimmed, "first_name"); err != nil {
		u.err = err
		return u
	}
	u.contact.FirstName = trimmed
	u.modified = append(u.modified, "first_name")
	return u
}

func (u *ContactUpdater) LastName(name string) *ContactUpdater {
	if u.err != nil {
		return u
	}
	trimmed := strings.TrimSpace(name)
	if err := ValidateName(trimmed, "last_name"); err != nil {
		u.err = err
		return u
	}
	u.contact.LastName = trimmed
	u.modified = append(u.modified, "last_name")
	return u
}

// Phone sets or clears the phone number. An empty string clears it.
func (u *ContactUpdater) Phone(phone string) *ContactUpdater {
	if u.err != nil {
		return u
	}
	trimmed := strings.TrimSpace(phone)
	if err := ValidatePhone(trimmed); err != nil {
		u.err = err
		return u
	}
	u.contact.Phone = trimmed
	u.modified = append(u.modified, "phone")
	return u
}

func (u *ContactUpdater) AddTag(tag string) *ContactUpdater {
	if u.err != nil {
		return u
	}
	if err := u.contact.AddTag(tag); err != nil {
		u.err = err
		return u
	}
	u.modified = append(u.modified, "tags")
	return u
}

func (u *ContactUpdater) Status(next ContactStatus) *ContactUpdater {
	if u.err != nil {
		return u
	}
	if err := u.contact.TransitionStatus(next); err != nil {
		u.err = err
		return u
	}
	u.modified = append(u.modified, "status")
	return u
}

// Apply returns the updated contact, or the first validation error.
func (u *ContactUpdater) Apply() (*Contact, error) {
	if u.err != nil {
		return nil, u.err
	}
	if len(u.modified) > 0 {
		u.contact.UpdatedAt = time.Now().UTC()
	}
	c := u.contact
	return &c, nil
}

// ModifiedFields lists the fields touched so far, for audit logging.
func (u *ContactUpdater) ModifiedFields() []string {
	return u.modified
}
