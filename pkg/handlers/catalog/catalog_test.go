package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/festhq/gatekeeper/pkg/storage/mocks"
)

var testEventID = uuid.MustParse("4f7b2a9c-1d5e-4c3b-8a6f-2e9d0c7b1001")

func serve(h *CatalogHandler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/v1/events", h.CreateEvent)
	r.Post("/v1/events/ticket-types", h.CreateTicketType)
	r.Get("/v1/ticket-types/{ticketTypeId}", h.GetTicketTypeById)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		created := &models.Event{Id: testEventID.String(), Name: "Summer Fest", Published: true}
		mockStore.On("CreateEvent", mock.Anything, mock.Anything).Return(created, nil)

		body, _ := json.Marshal(api.NewEvent{Name: "Summer Fest", Published: true, StartsAt: time.Now().Add(24 * time.Hour)})
		req := httptest.NewRequest("POST", "/v1/events", bytes.NewReader(body))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var event api.Event
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &event))
		assert.Equal(t, "Summer Fest", event.Name)
		mockStore.AssertExpectations(t)
	})

	t.Run("Missing Name", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		body, _ := json.Marshal(api.NewEvent{})
		req := httptest.NewRequest("POST", "/v1/events", bytes.NewReader(body))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	})
}

func TestCreateTicketType(t *testing.T) {
	newTicketTypeBody := func(total int64) []byte {
		body, _ := json.Marshal(api.NewTicketType{
			EventId:     testEventID,
			Name:        "General Admission",
			Price:       5000,
			Total:       total,
			MaxPerOrder: 4,
			SaleStart:   time.Now().Add(-time.Hour),
			SaleEnd:     time.Now().Add(time.Hour),
		})
		return body
	}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetEvent", mock.Anything, testEventID.String()).
			Return(&models.Event{Id: testEventID.String(), Name: "Summer Fest"}, nil)
		created := &models.TicketType{Id: "tt-1", EventId: testEventID.String(), Name: "General Admission", Price: 5000, Total: 100}
		mockStore.On("CreateTicketType", mock.Anything, mock.Anything).Return(created, nil)

		req := httptest.NewRequest("POST", "/v1/events/ticket-types", bytes.NewReader(newTicketTypeBody(100)))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var tt api.TicketType
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tt))
		assert.Equal(t, int64(100), tt.Available)
		mockStore.AssertExpectations(t)
	})

	t.Run("Non Positive Total", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		req := httptest.NewRequest("POST", "/v1/events/ticket-types", bytes.NewReader(newTicketTypeBody(0)))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreateTicketType", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Event", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetEvent", mock.Anything, testEventID.String()).Return(nil, storage.ErrEventNotFound)

		req := httptest.NewRequest("POST", "/v1/events/ticket-types", bytes.NewReader(newTicketTypeBody(100)))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertNotCalled(t, "CreateTicketType", mock.Anything, mock.Anything)
	})
}

func TestGetTicketTypeById(t *testing.T) {
	t.Run("Reports Live Availability", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		tt := &models.TicketType{Id: "tt-1", EventId: testEventID.String(), Total: 100, Sold: 60, Reserved: 15}
		mockStore.On("GetTicketType", mock.Anything, "tt-1").Return(tt, nil)

		req := httptest.NewRequest("GET", "/v1/ticket-types/tt-1", nil)
		rr := serve(handler, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.TicketType
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(25), got.Available)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetTicketType", mock.Anything, "tt-1").Return(nil, storage.ErrTicketTypeNotFound)

		req := httptest.NewRequest("GET", "/v1/ticket-types/tt-1", nil)
		rr := serve(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
