package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/infra/http/middleware"
	"github.com/heysh/crm-backend/internal/usecase"
)

type ContactHandler struct {
	Service *usecase.ContactService
}

func NewContactHandler(service *usecase.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	stored, err := h.Service.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordContactCreated(string(stored.Contact.Status))
	writeJSON(w, http.StatusCreated, usecase.ToContactOutput(stored))
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	stored, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.ToContactOutput(stored))
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ContactFilter{
		Search:    r.URL.Query().Get("search"),
		Status:    entity.ContactStatus(r.URL.Query().Get("status")),
		Tag:       r.URL.Query().Get("tag"),
		CompanyID: r.URL.Query().Get("company_id"),
		Limit:     queryInt(r, "limit", 50),
		Offset:    queryInt(r, "offset", 0),
	}

	contacts, err := h.Service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	outputs := make([]usecase.ContactOutput, 0, len(contacts))
	for _, c := range contacts {
		outputs = append(outputs, usecase.ToContactOutput(c))
	}
	writeJSON(w, http.StatusOK, outputs)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	stored, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.ToContactOutput(stored))
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
