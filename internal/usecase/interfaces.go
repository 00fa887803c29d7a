package usecase

import (
	"context"

	"github.com/heysh/crm-backend/internal/entity"
)

// StoredContact pairs a persisted contact with its repository identity. The
// domain entity itself carries no ID.
type StoredContact struct {
	ID      string
	Contact entity.Contact
}

// ContactFilter narrows List results. Zero values mean "no filter".
type ContactFilter struct {
	Search    string
	Status    entity.ContactStatus
	Tag       string
	CompanyID string
	Limit     int
	Offset    int
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Contact) (*StoredContact, error)
	FindByID(ctx context.Context, id string) (*StoredContact, error)
	FindByEmail(ctx context.Context, email string) (*StoredContact, error)
	// EmailExistsForOther reports whether another contact already owns the email.
	EmailExistsForOther(ctx context.Context, email, excludeID string) (bool, error)
	FindAll(ctx context.Context, filter ContactFilter) ([]*StoredContact, error)
	Update(ctx context.Context, id string, c *entity.Contact) error
	Delete(ctx context.Context, id string) error
	// FindBySegment resolves a campaign segment into concrete contacts.
	FindBySegment(ctx context.Context, def *SegmentDefinition, limit int) ([]*StoredContact, error)
	CountByStatus(ctx context.Context) (map[entity.ContactStatus]int, error)
	AverageEngagement(ctx context.Context) (float64, error)
	TopEngaged(ctx context.Context, limit int) ([]*StoredContact, error)
}

// RescorePayload is the message published when new interactions land.
type RescorePayload struct {
	ContactID string `json:"contact_id"`
	// Trigger is the interaction type that caused the rescore.
	Trigger string `json:"trigger"`
}

type QueueProducerInterface interface {
	PublishRescore(ctx context.Context, payload RescorePayload) error
}

// EmailSender delivers one rendered campaign email.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}
