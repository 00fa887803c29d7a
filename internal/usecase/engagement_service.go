package usecase

import (
	"context"
	"log"

	"github.com/heysh/crm-backend/internal/entity"
)

// EngagementService recomputes a contact's engagement from the recorded
// timeline. It is called on demand over HTTP and asynchronously by the
// rescore worker whenever a new interaction lands.
type EngagementService struct {
	Contacts ContactRepositoryInterface
	Timeline entity.TimelineRepositoryInterface
	Config   entity.EngagementConfig
}

func NewEngagementService(contacts ContactRepositoryInterface, timeline entity.TimelineRepositoryInterface, config entity.EngagementConfig) (*EngagementService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &EngagementService{
		Contacts: contacts,
		Timeline: timeline,
		Config:   config,
	}, nil
}

// Report scores the contact's history without persisting anything.
func (s *EngagementService) Report(ctx context.Context, contactID string) (*entity.EngagementReport, error) {
	stored, err := s.Contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &NotFoundError{Resource: "Contact", ID: contactID}
	}

	interactions, err := s.Timeline.ListInteractions(ctx, contactID)
	if err != nil {
		return nil, err
	}

	report := entity.BuildEngagementReport(interactions, s.Config)
	return &report, nil
}

// Rescore recomputes the score and writes it back to the contact.
func (s *EngagementService) Rescore(ctx context.Context, contactID string) (*entity.EngagementReport, error) {
	stored, err := s.Contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &NotFoundError{Resource: "Contact", ID: contactID}
	}

	interactions, err := s.Timeline.ListInteractions(ctx, contactID)
	if err != nil {
		return nil, err
	}

	report := entity.BuildEngagementReport(interactions, s.Config)

	contact := stored.Contact
	if err := contact.UpdateEngagement(report.Score); err != nil {
		// The engine clamps its own output; a failure here means the engine
		// produced a non-finite score, which is a bug.
		return nil, err
	}

	if err := s.Contacts.Update(ctx, contactID, &contact); err != nil {
		return nil, err
	}

	log.Printf("engagement: contact %s rescored to %.1f (%s)", contactID, report.Score, report.Level)
	return &report, nil
}
