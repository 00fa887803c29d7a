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
	"github.com/heysh/crm-backend/internal/usecase"
)

func newContactRouter(repo usecase.ContactRepositoryInterface) *chi.Mux {
	handler := NewContactHandler(usecase.NewContactService(repo))

	r := chi.NewRouter()
	r.Get("/api/contacts", handler.List)
	r.Post("/api/contacts", handler.Create)
	r.Get("/api/contacts/{id}", handler.Get)
	r.Patch("/api/contacts/{id}", handler.Update)
	r.Delete("/api/contacts/{id}", handler.Delete)
	return r
}

func storedContact(id string) *usecase.StoredContact {
	contact, _ := entity.NewContactBuilder().
		FirstName("Jane").
		LastName("Doe").
		Email("jane.doe@example.com").
		Build()
	return &usecase.StoredContact{ID: id, Contact: *contact}
}

func TestContactHandlerCreate(t *testing.T) {
	repo := new(MockContactRepository)
	router := newContactRouter(repo)

	repo.On("FindByEmail", mock.Anything, "jane.doe@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(storedContact("c-1"), nil)

	body, _ := json.Marshal(map[string]any{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane.doe@example.com",
	})
	req := httptest.NewRequest("POST", "/api/contacts", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var out usecase.ContactOutput
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "c-1", out.ID)
	assert.Equal(t, entity.StatusLead, out.Status)
}

func TestContactHandlerCreateConflict(t *testing.T) {
	repo := new(MockContactRepository)
	router := newContactRouter(repo)

	repo.On("FindByEmail", mock.Anything, "jane.doe@example.com").Return(storedContact("existing"), nil)

	body, _ := json.Marshal(map[string]any{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane.doe@example.com",
	})
	req := httptest.NewRequest("POST", "/api/contacts", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestContactHandlerCreateValidationFailure(t *testing.T) {
	repo := new(MockContactRepository)
	router := newContactRouter(repo)

	repo.On("FindByEmail", mock.Anything, "not-an-email").Return(nil, nil)

	body, _ := json.Marshal(map[string]any{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "not-an-email",
	})
	req := httptest.NewRequest("POST", "/api/contacts", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestContactHandlerCreateBadJSON(t *testing.T) {
	router := newContactRouter(new(MockContactRepository))

	req := httptest.NewRequest("POST", "/api/contacts", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactHandlerGetNotFound(t *testing.T) {
	repo := new(MockContactRepository)
	router := newContactRouter(repo)

	repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	req := httptest.NewRequest("GET", "/api/contacts/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactHandlerListPassesFilter(t *testing.T) {
	repo := new(MockContactRepository)
	router := newContactRouter(repo)

	repo.On("FindAll", mock.Anything, usecase.ContactFilter{
		Status: entity.StatusCustomer,
		Tag:    "vip",
		Limit:  10,
	}).Return([]*usecase.StoredContact{storedContact("c-1")}, nil)

	req := httptest.NewRequest("GET", "/api/contacts?status=customer&tag=vip&limit=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var out []usecase.ContactOutput
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 1)
	repo.AssertExpectations(t)
}

func TestContactHandlerUpdateStatus(t *testing.T) {
	repo := new(MockContactRepository)
	router := newContactRouter(repo)

	repo.On("FindByID", mock.Anything, "c-1").Return(storedContact("c-1"), nil)
	repo.On("Update", mock.Anything, "c-1", mock.MatchedBy(func(c *entity.Contact) bool {
		return c.Status == entity.StatusCustomer
	})).Return(nil)

	body, _ := json.Marshal(map[string]any{"status": "customer"})
	req := httptest.NewRequest("PATCH", "/api/contacts/c-1", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContactHandlerDelete(t *testing.T) {
	repo := new(MockContactRepository)
	router := newContactRouter(repo)

	repo.On("FindByID", mock.Anything, "c-1").Return(storedContact("c-1"), nil)
	repo.On("Delete", mock.Anything, "c-1").Return(nil)

	req := httptest.NewRequest("DELETE", "/api/contacts/c-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
