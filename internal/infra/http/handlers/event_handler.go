package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/infra/http/middleware"
	"github.com/heysh/crm-backend/internal/usecase"
)

type EventHandler struct {
	Repo     entity.EventRepositoryInterface
	Timeline entity.TimelineRepositoryInterface
	Producer usecase.QueueProducerInterface
}

func NewEventHandler(repo entity.EventRepositoryInterface, timeline entity.TimelineRepositoryInterface, producer usecase.QueueProducerInterface) *EventHandler {
	return &EventHandler{Repo: repo, Timeline: timeline, Producer: producer}
}

type createEventRequest struct {
	CampaignID  string           `json:"campaign_id"`
	Name        string           `json:"name"`
	Type        entity.EventType `json:"type"`
	Description string           `json:"description"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     time.Time        `json:"end_time"`
	Location    string           `json:"location"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	event, err := entity.NewEvent(req.CampaignID, req.Name, req.Type, req.Description, req.StartTime, req.EndTime, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Repo.Create(r.Context(), event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if event == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Event", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Repo.FindAll(r.Context(), queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []*entity.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

type inviteRequest struct {
	ContactIDs []string `json:"contact_ids"`
}

// Invite creates invited RSVPs for each contact and records the invitation
// on their timelines. Invitations alone do not trigger a rescore.
func (h *EventHandler) Invite(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	event, err := h.Repo.FindByID(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}
	if event == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Event", ID: eventID})
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}
	if len(req.ContactIDs) == 0 {
		writeError(w, &entity.RequiredFieldError{Field: "contact_ids"})
		return
	}

	rsvps := make([]*entity.Rsvp, 0, len(req.ContactIDs))
	for _, contactID := range req.ContactIDs {
		rsvp := &entity.Rsvp{
			EventID:   eventID,
			ContactID: contactID,
			Status:    entity.RsvpInvited,
			Timestamp: time.Now().UTC(),
		}
		if err := h.Repo.UpsertRsvp(r.Context(), rsvp); err != nil {
			writeError(w, err)
			return
		}
		rsvps = append(rsvps, rsvp)

		entry, err := entity.NewTimelineEntry(contactID, "", entity.InteractionEmailSent,
			fmt.Sprintf("Invited to event %s", event.Name),
			map[string]any{"event_id": eventID}, time.Time{})
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.Timeline.Create(r.Context(), entry); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusCreated, rsvps)
}

type rsvpRequest struct {
	ContactID string            `json:"contact_id"`
	Status    entity.RsvpStatus `json:"status"`
}

// Rsvp updates a contact's RSVP. Registered and attended statuses feed the
// engagement timeline and queue an asynchronous rescore.
func (h *EventHandler) Rsvp(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	event, err := h.Repo.FindByID(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}
	if event == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Event", ID: eventID})
		return
	}

	var req rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}
	if req.ContactID == "" {
		writeError(w, &entity.RequiredFieldError{Field: "contact_id"})
		return
	}
	if !req.Status.IsValid() {
		writeError(w, &entity.InvalidFieldError{Field: "status", Reason: "Unknown RSVP status '" + string(req.Status) + "'"})
		return
	}

	rsvp := &entity.Rsvp{
		EventID:   eventID,
		ContactID: req.ContactID,
		Status:    req.Status,
		Timestamp: time.Now().UTC(),
	}
	if err := h.Repo.UpsertRsvp(r.Context(), rsvp); err != nil {
		writeError(w, err)
		return
	}

	if interactionType, ok := req.Status.InteractionType(); ok {
		entry, err := entity.NewTimelineEntry(req.ContactID, "", interactionType,
			fmt.Sprintf("RSVP %s for event %s", req.Status, event.Name),
			map[string]any{"event_id": eventID}, time.Time{})
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.Timeline.Create(r.Context(), entry); err != nil {
			writeError(w, err)
			return
		}
		middleware.RecordInteraction(string(interactionType))

		if err := h.Producer.PublishRescore(r.Context(), usecase.RescorePayload{
			ContactID: req.ContactID,
			Trigger:   string(interactionType),
		}); err != nil {
			// The interaction is recorded; the score catches up on the next
			// rescore. Log and keep going.
			logPublishFailure(req.ContactID, err)
		}
	}

	writeJSON(w, http.StatusOK, rsvp)
}
