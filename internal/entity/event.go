package entity

import (
	"context"
	"strings"
	"time"
)

type EventType string

const (
	EventWebinar EventType = "webinar"
	EventMeetup  EventType = "meetup"
	EventAma     EventType = "ama"
	EventDemo    EventType = "demo"
	EventOther   EventType = "other"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventWebinar, EventMeetup, EventAma, EventDemo, EventOther:
		return true
	}
	return false
}

type Event struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id,omitempty"`
	Name        string    `json:"name"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewEvent(campaignID, name string, eventType EventType, description string, startTime, endTime time.Time, location string) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &RequiredFieldError{Field: "name"}
	}
	if !eventType.IsValid() {
		return nil, &InvalidFieldError{Field: "type", Reason: "Unknown event type '" + string(eventType) + "'"}
	}
	if endTime.Before(startTime) {
		return nil, &InvalidFieldError{Field: "end_time", Reason: "Event cannot end before it starts"}
	}

	return &Event{
		CampaignID:  campaignID,
		Name:        name,
		Type:        eventType,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    location,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// RsvpStatus tracks a contact's relationship with an event. Registered and
// attended RSVPs also feed the engagement timeline.
type RsvpStatus string

const (
	RsvpInvited    RsvpStatus = "invited"
	RsvpRegistered RsvpStatus = "registered"
	RsvpAttended   RsvpStatus = "attended"
	RsvpNoShow     RsvpStatus = "no_show"
)

func (s RsvpStatus) IsValid() bool {
	switch s {
	case RsvpInvited, RsvpRegistered, RsvpAttended, RsvpNoShow:
		return true
	}
	return false
}

// InteractionType maps an RSVP change to its engagement interaction, if any.
func (s RsvpStatus) InteractionType() (InteractionType, bool) {
	switch s {
	case RsvpRegistered:
		return InteractionEventRegistration, true
	case RsvpAttended:
		return InteractionEventAttendance, true
	}
	return "", false
}

type Rsvp struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	ContactID string     `json:"contact_id"`
	Status    RsvpStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}

type EventRepositoryInterface interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	FindAll(ctx context.Context, limit, offset int) ([]*Event, error)
	UpsertRsvp(ctx context.Context, r *Rsvp) error
	FindRsvpsByEventID(ctx context.Context, eventID string) ([]*Rsvp, error)
}
