package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/usecase"
)

func newTimelineRouter(timeline *MockTimelineRepository, contacts *MockContactRepository, producer *MockQueueProducer) *chi.Mux {
	handler := NewTimelineHandler(timeline, contacts, producer)

	r := chi.NewRouter()
	r.Post("/api/timeline", handler.Create)
	r.Get("/api/contacts/{id}/timeline", handler.ListByContact)
	return r
}

func TestTimelineHandlerCreatePublishesRescore(t *testing.T) {
	timeline := new(MockTimelineRepository)
	contacts := new(MockContactRepository)
	producer := new(MockQueueProducer)
	router := newTimelineRouter(timeline, contacts, producer)

	contacts.On("FindByID", mock.Anything, "c-1").Return(storedContact("c-1"), nil)
	timeline.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.TimelineEntry) bool {
		return e.Type == entity.InteractionEmailOpen && e.ContactID == "c-1"
	})).Return(nil)
	producer.On("PublishRescore", mock.Anything, usecase.RescorePayload{
		ContactID: "c-1",
		Trigger:   "email_open",
	}).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"contact_id": "c-1",
		"type":       "email_open",
		"content":    "Opened launch email",
	})
	req := httptest.NewRequest("POST", "/api/timeline", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	producer.AssertExpectations(t)
}

func TestTimelineHandlerCreateUnknownTypeRejected(t *testing.T) {
	router := newTimelineRouter(new(MockTimelineRepository), new(MockContactRepository), new(MockQueueProducer))

	body, _ := json.Marshal(map[string]any{
		"contact_id": "c-1",
		"type":       "carrier_pigeon",
	})
	req := httptest.NewRequest("POST", "/api/timeline", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTimelineHandlerCreateUnknownContact(t *testing.T) {
	timeline := new(MockTimelineRepository)
	contacts := new(MockContactRepository)
	router := newTimelineRouter(timeline, contacts, new(MockQueueProducer))

	contacts.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	body, _ := json.Marshal(map[string]any{
		"contact_id": "ghost",
		"type":       "note_added",
	})
	req := httptest.NewRequest("POST", "/api/timeline", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	timeline.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTimelineHandlerCreateSurvivesPublishFailure(t *testing.T) {
	timeline := new(MockTimelineRepository)
	contacts := new(MockContactRepository)
	producer := new(MockQueueProducer)
	router := newTimelineRouter(timeline, contacts, producer)

	contacts.On("FindByID", mock.Anything, "c-1").Return(storedContact("c-1"), nil)
	timeline.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishRescore", mock.Anything, mock.Anything).Return(assertError{})

	body, _ := json.Marshal(map[string]any{
		"contact_id": "c-1",
		"type":       "note_added",
		"content":    "Called about renewal",
	})
	req := httptest.NewRequest("POST", "/api/timeline", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

type assertError struct{}

func (assertError) Error() string { return "broker unavailable" }

func TestTimelineHandlerListByContact(t *testing.T) {
	timeline := new(MockTimelineRepository)
	router := newTimelineRouter(timeline, new(MockContactRepository), new(MockQueueProducer))

	entries := []*entity.TimelineEntry{
		{ID: "t-1", ContactID: "c-1", Type: entity.InteractionEmailSent, OccurredAt: time.Now()},
	}
	timeline.On("FindByContactID", mock.Anything, "c-1", 50, 0).Return(entries, nil)

	req := httptest.NewRequest("GET", "/api/contacts/c-1/timeline", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var out []entity.TimelineEntry
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 1)
}
