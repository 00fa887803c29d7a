package entity

import (
	"context"
	"time"
)

// TimelineEntry records one interaction with a contact. The engagement
// engine reads these back as Interaction values.
type TimelineEntry struct {
	ID         string          `json:"id"`
	ContactID  string          `json:"contact_id"`
	CompanyID  string          `json:"company_id,omitempty"`
	Type       InteractionType `json:"type"`
	Content    string          `json:"content"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewTimelineEntry validates the interaction type and stamps the entry.
// A zero occurredAt means "now".
func NewTimelineEntry(contactID, companyID string, interactionType InteractionType, content string, metadata map[string]any, occurredAt time.Time) (*TimelineEntry, error) {
	if contactID == "" {
		return nil, &RequiredFieldError{Field: "contact_id"}
	}
	if !interactionType.IsValid() {
		return nil, &InvalidFieldError{
			Field:  "interaction_type",
			Reason: "Unknown interaction type '" + string(interactionType) + "'",
		}
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	return &TimelineEntry{
		ContactID:  contactID,
		CompanyID:  companyID,
		Type:       interactionType,
		Content:    content,
		Metadata:   metadata,
		OccurredAt: occurredAt,
	}, nil
}

// Interaction projects the entry into the scoring engine's input value.
func (e *TimelineEntry) Interaction() Interaction {
	return Interaction{Type: e.Type, OccurredAt: e.OccurredAt}
}

type TimelineRepositoryInterface interface {
	Create(ctx context.Context, entry *TimelineEntry) error
	FindByContactID(ctx context.Context, contactID string, limit, offset int) ([]*TimelineEntry, error)
	// ListInteractions returns the bare interaction history for scoring.
	ListInteractions(ctx context.Context, contactID string) ([]Interaction, error)
	// CountByTypeForCampaign tallies entries whose metadata attributes them
	// to the campaign.
	CountByTypeForCampaign(ctx context.Context, campaignID string) (map[InteractionType]int, error)
}
