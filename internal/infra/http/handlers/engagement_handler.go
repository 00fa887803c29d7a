package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heysh/crm-backend/internal/content"
	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/infra/http/middleware"
	"github.com/heysh/crm-backend/internal/usecase"
)

type EngagementHandler struct {
	Service  *usecase.EngagementService
	Timeline entity.TimelineRepositoryInterface
}

func NewEngagementHandler(service *usecase.EngagementService, timeline entity.TimelineRepositoryInterface) *EngagementHandler {
	return &EngagementHandler{Service: service, Timeline: timeline}
}

func (h *EngagementHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *EngagementHandler) Rescore(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Rescore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordEngagementRescore()
	writeJSON(w, http.StatusOK, report)
}

type summaryResponse struct {
	Summary        string `json:"summary"`
	NextBestAction string `json:"next_best_action"`
}

// Summary narrates the contact's history in plain language.
func (h *EngagementHandler) Summary(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	stored, err := h.Service.Contacts.FindByID(r.Context(), contactID)
	if err != nil {
		writeError(w, err)
		return
	}
	if stored == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Contact", ID: contactID})
		return
	}

	entries, err := h.Timeline.FindByContactID(r.Context(), contactID, 100, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:        content.SummarizeTimeline(entries),
		NextBestAction: content.NextBestAction(entries, stored.Contact.EngagementScore),
	})
}
