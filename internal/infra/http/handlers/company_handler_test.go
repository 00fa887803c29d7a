package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/heysh/crm-backend/internal/entity"
)

func newCompanyRouter(repo *MockCompanyRepository) *chi.Mux {
	handler := NewCompanyHandler(repo)

	r := chi.NewRouter()
	r.Post("/api/companies", handler.Create)
	r.Get("/api/companies", handler.List)
	r.Get("/api/companies/{id}", handler.Get)
	r.Patch("/api/companies/{id}", handler.Update)
	r.Delete("/api/companies/{id}", handler.Delete)
	return r
}

func testCompany(id string) *entity.Company {
	company, _ := entity.NewCompany("Acme Corp", "acme.io", "SaaS", "11-50", []string{"prospect"})
	company.ID = id
	return company
}

func TestCompanyHandlerCreate(t *testing.T) {
	repo := new(MockCompanyRepository)
	router := newCompanyRouter(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Company) bool {
		return c.Name == "Acme Corp" && c.Domain == "acme.io"
	})).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"name":     "Acme Corp",
		"domain":   "ACME.io",
		"industry": "SaaS",
		"size":     "11-50",
		"tags":     []string{"prospect"},
	})
	req := httptest.NewRequest("POST", "/api/companies", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var company entity.Company
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &company))
	assert.Equal(t, "acme.io", company.Domain)
}

func TestCompanyHandlerCreateRequiresName(t *testing.T) {
	repo := new(MockCompanyRepository)
	router := newCompanyRouter(repo)

	body, _ := json.Marshal(map[string]any{"domain": "acme.io"})
	req := httptest.NewRequest("POST", "/api/companies", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompanyHandlerList(t *testing.T) {
	repo := new(MockCompanyRepository)
	router := newCompanyRouter(repo)

	repo.On("FindAll", mock.Anything, "acme", 10, 0).Return([]*entity.Company{testCompany("co-1")}, nil)

	req := httptest.NewRequest("GET", "/api/companies?search=acme&limit=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var companies []entity.Company
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &companies))
	assert.Len(t, companies, 1)
}

func TestCompanyHandlerGetNotFound(t *testing.T) {
	repo := new(MockCompanyRepository)
	router := newCompanyRouter(repo)

	repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	req := httptest.NewRequest("GET", "/api/companies/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyHandlerUpdate(t *testing.T) {
	repo := new(MockCompanyRepository)
	router := newCompanyRouter(repo)

	repo.On("FindByID", mock.Anything, "co-1").Return(testCompany("co-1"), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Company) bool {
		return c.Industry == "Fintech" && c.Name == "Acme Corp"
	})).Return(nil)

	body, _ := json.Marshal(map[string]any{"industry": "Fintech"})
	req := httptest.NewRequest("PATCH", "/api/companies/co-1", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestCompanyHandlerUpdateRejectsBadDomain(t *testing.T) {
	repo := new(MockCompanyRepository)
	router := newCompanyRouter(repo)

	repo.On("FindByID", mock.Anything, "co-1").Return(testCompany("co-1"), nil)

	body, _ := json.Marshal(map[string]any{"domain": "not a domain"})
	req := httptest.NewRequest("PATCH", "/api/companies/co-1", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompanyHandlerDelete(t *testing.T) {
	repo := new(MockCompanyRepository)
	router := newCompanyRouter(repo)

	repo.On("Delete", mock.Anything, "co-1").Return(nil)

	req := httptest.NewRequest("DELETE", "/api/companies/co-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
