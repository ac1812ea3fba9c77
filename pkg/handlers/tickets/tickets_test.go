package tickets

import (
	"bytes"
	"context"
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
	"github.com/festhq/gatekeeper/pkg/credential"
	"github.com/festhq/gatekeeper/pkg/middleware"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/festhq/gatekeeper/pkg/storage/mocks"
)

var testEventID = uuid.MustParse("9c4e2b7a-6d1f-4e8b-a2c3-7f5e9d0b1001")

func issuedTicket() *models.Ticket {
	return &models.Ticket{
		Id:         "ticket-1",
		OrderId:    "order-1",
		EventId:    testEventID.String(),
		OwnerId:    "buyer-1",
		Credential: "signed-credential",
		Status:     models.TICKET_ACTIVE,
		CreatedAt:  time.Now().UTC(),
	}
}

func serve(h *TicketsHandler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/v1/tickets/{ticketId}", h.GetTicketById)
	r.Post("/v1/tickets/redeem", h.RedeemTicket)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGetTicketById(t *testing.T) {
	verifier := credential.NewSigner([]byte("test-secret"))

	t.Run("Owner Sees Credential", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore, verifier)

		mockStore.On("GetTicket", mock.Anything, "ticket-1").Return(issuedTicket(), nil)

		req := httptest.NewRequest("GET", "/v1/tickets/ticket-1", nil)
		req = req.WithContext(middleware.WithUser(context.Background(), "buyer-1", middleware.RoleBuyer))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var ticket api.Ticket
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ticket))
		assert.Equal(t, "signed-credential", ticket.Credential)
	})

	t.Run("Staff Sees Ticket Without Credential", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore, verifier)

		mockStore.On("GetTicket", mock.Anything, "ticket-1").Return(issuedTicket(), nil)

		req := httptest.NewRequest("GET", "/v1/tickets/ticket-1", nil)
		req = req.WithContext(middleware.WithUser(context.Background(), "staff-1", middleware.RoleStaff))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var ticket api.Ticket
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ticket))
		assert.Empty(t, ticket.Credential)
	})

	t.Run("Stranger Sees Not Found", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore, verifier)

		mockStore.On("GetTicket", mock.Anything, "ticket-1").Return(issuedTicket(), nil)

		req := httptest.NewRequest("GET", "/v1/tickets/ticket-1", nil)
		req = req.WithContext(middleware.WithUser(context.Background(), "someone-else", middleware.RoleBuyer))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRedeemTicket(t *testing.T) {
	signer := credential.NewSigner([]byte("test-secret"))

	scanBody := func(t *testing.T, cred string) []byte {
		t.Helper()
		body, err := json.Marshal(api.RedeemRequest{
			Credential: cred,
			EventId:    testEventID,
			Gate:       "gate-a",
		})
		assert.NoError(t, err)
		return body
	}

	staffScan := func(body []byte) *http.Request {
		req := httptest.NewRequest("POST", "/v1/tickets/redeem", bytes.NewReader(body))
		return req.WithContext(middleware.WithUser(context.Background(), "staff-1", middleware.RoleStaff))
	}

	t.Run("Admitted", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore, signer)

		cred, err := signer.Mint("ticket-1", testEventID.String(), "buyer-1", time.Now().UTC())
		assert.NoError(t, err)

		redeemed := issuedTicket()
		redeemed.Status = models.TICKET_USED
		redeemed.Gate = "gate-a"
		mockStore.On("RedeemTicket", mock.Anything, "ticket-1", testEventID.String(), "gate-a").Return(redeemed, nil)

		rr := serve(handler, staffScan(scanBody(t, cred)))

		assert.Equal(t, http.StatusOK, rr.Code)
		var result api.RedeemResult
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.True(t, result.Admitted)
		assert.Equal(t, "ticket-1", result.Ticket.Id)
		mockStore.AssertExpectations(t)
	})

	t.Run("Forged Credential Never Reaches Store", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore, signer)

		forger := credential.NewSigner([]byte("wrong-secret"))
		cred, err := forger.Mint("ticket-1", testEventID.String(), "buyer-1", time.Now().UTC())
		assert.NoError(t, err)

		rr := serve(handler, staffScan(scanBody(t, cred)))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var result api.RedeemResult
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.False(t, result.Admitted)
		assert.Equal(t, storage.RejectNotRedeemable, result.Reason)
		mockStore.AssertNotCalled(t, "RedeemTicket", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Used", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore, signer)

		cred, err := signer.Mint("ticket-1", testEventID.String(), "buyer-1", time.Now().UTC())
		assert.NoError(t, err)

		mockStore.On("RedeemTicket", mock.Anything, "ticket-1", testEventID.String(), "gate-a").
			Return(nil, &storage.RedemptionError{Reason: storage.RejectAlreadyUsed})

		rr := serve(handler, staffScan(scanBody(t, cred)))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var result api.RedeemResult
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.False(t, result.Admitted)
		assert.Equal(t, storage.RejectAlreadyUsed, result.Reason)
	})

	t.Run("Missing Gate", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore, signer)

		body, _ := json.Marshal(api.RedeemRequest{Credential: "anything", EventId: testEventID})
		rr := serve(handler, staffScan(body))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
