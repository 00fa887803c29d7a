package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/usecase"
)

type CompanyHandler struct {
	Repo entity.CompanyRepositoryInterface
}

func NewCompanyHandler(repo entity.CompanyRepositoryInterface) *CompanyHandler {
	return &CompanyHandler{Repo: repo}
}

type companyRequest struct {
	Name     string   `json:"name"`
	Domain   string   `json:"domain"`
	Industry string   `json:"industry"`
	Size     string   `json:"size"`
	Tags     []string `json:"tags"`
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	company, err := entity.NewCompany(req.Name, req.Domain, req.Industry, req.Size, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Repo.Create(r.Context(), company); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	company, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if company == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Company", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Repo.FindAll(r.Context(),
		r.URL.Query().Get("search"),
		queryInt(r, "limit", 50),
		queryInt(r, "offset", 0),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	if companies == nil {
		companies = []*entity.Company{}
	}
	writeJSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	company, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if company == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Company", ID: id})
		return
	}

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	if req.Name != "" {
		company.Name = strings.TrimSpace(req.Name)
	}
	if req.Domain != "" {
		domain := strings.ToLower(strings.TrimSpace(req.Domain))
		if err := entity.ValidateCompanyDomain(domain); err != nil {
			writeError(w, err)
			return
		}
		company.Domain = domain
	}
	if req.Industry != "" {
		company.Industry = strings.TrimSpace(req.Industry)
	}
	if req.Size != "" {
		company.Size = strings.TrimSpace(req.Size)
	}
	if req.Tags != nil {
		tags, err := entity.ValidateTags(req.Tags)
		if err != nil {
			writeError(w, err)
			return
		}
		company.Tags = tags
	}
	company.UpdatedAt = time.Now().UTC()

	if err := h.Repo.Update(r.Context(), company); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
