package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/infra/http/middleware"
	"github.com/heysh/crm-backend/internal/usecase"
)

type TimelineHandler struct {
	Repo     entity.TimelineRepositoryInterface
	Contacts usecase.ContactRepositoryInterface
	Producer usecase.QueueProducerInterface
}

func NewTimelineHandler(repo entity.TimelineRepositoryInterface, contacts usecase.ContactRepositoryInterface, producer usecase.QueueProducerInterface) *TimelineHandler {
	return &TimelineHandler{Repo: repo, Contacts: contacts, Producer: producer}
}

type createTimelineEntryRequest struct {
	ContactID  string                 `json:"contact_id"`
	CompanyID  string                 `json:"company_id"`
	Type       entity.InteractionType `json:"type"`
	Content    string                 `json:"content"`
	Metadata   map[string]any         `json:"metadata"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Create records one interaction and queues a rescore for the contact.
func (h *TimelineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTimelineEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	entry, err := entity.NewTimelineEntry(req.ContactID, req.CompanyID, req.Type, req.Content, req.Metadata, req.OccurredAt)
	if err != nil {
		writeError(w, err)
		return
	}

	stored, err := h.Contacts.FindByID(r.Context(), req.ContactID)
	if err != nil {
		writeError(w, err)
		return
	}
	if stored == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Contact", ID: req.ContactID})
		return
	}

	if err := h.Repo.Create(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordInteraction(string(entry.Type))

	if err := h.Producer.PublishRescore(r.Context(), usecase.RescorePayload{
		ContactID: entry.ContactID,
		Trigger:   string(entry.Type),
	}); err != nil {
		logPublishFailure(entry.ContactID, err)
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *TimelineHandler) ListByContact(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.FindByContactID(r.Context(),
		chi.URLParam(r, "id"),
		queryInt(r, "limit", 50),
		queryInt(r, "offset", 0),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*entity.TimelineEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
