package terminal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/festhq/gatekeeper/pkg/storage/mocks"
)

var testAccountID = uuid.MustParse("3e8a1c5d-72b9-4f0e-b6a1-8d4c2e9f1001")

func TestPayment(t *testing.T) {
	paymentBody := func(amount int64) []byte {
		body, _ := json.Marshal(api.TerminalPaymentRequest{
			AccountId: testAccountID,
			Amount:    amount,
			Vendor:    "beer-tent",
		})
		return body
	}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		entry := &models.LedgerEntry{
			EntryId:      "entry-1",
			AccountId:    testAccountID.String(),
			Type:         models.ENTRY_PAYMENT,
			Amount:       -1500,
			BalanceAfter: 3500,
			Description:  "Terminal charge at beer-tent",
			CreatedAt:    time.Now().UTC(),
		}
		mockStore.On("Spend", mock.Anything, testAccountID.String(), int64(1500), "Terminal charge at beer-tent", "").
			Return(entry, nil)

		req := httptest.NewRequest("POST", "/v1/terminal/payment", bytes.NewReader(paymentBody(1500)))
		rr := httptest.NewRecorder()
		handler.Payment(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.LedgerEntry
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(-1500), got.Amount)
		assert.Equal(t, int64(3500), got.BalanceAfter)
		mockStore.AssertExpectations(t)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("Spend", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &storage.InsufficientBalanceError{AccountId: testAccountID.String(), Requested: 1500, Balance: 200})

		req := httptest.NewRequest("POST", "/v1/terminal/payment", bytes.NewReader(paymentBody(1500)))
		rr := httptest.NewRecorder()
		handler.Payment(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Blocked Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("Spend", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, storage.ErrAccountBlocked)

		req := httptest.NewRequest("POST", "/v1/terminal/payment", bytes.NewReader(paymentBody(1500)))
		rr := httptest.NewRecorder()
		handler.Payment(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestRefund(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		entry := &models.LedgerEntry{
			EntryId:      "entry-2",
			AccountId:    testAccountID.String(),
			Type:         models.ENTRY_REFUND,
			Amount:       1500,
			BalanceAfter: 5000,
			CreatedAt:    time.Now().UTC(),
		}
		mockStore.On("Refund", mock.Anything, testAccountID.String(), int64(1500), "charge-42").Return(entry, nil)

		body, _ := json.Marshal(api.TerminalRefundRequest{
			AccountId: testAccountID,
			Amount:    1500,
			Reference: "charge-42",
		})
		req := httptest.NewRequest("POST", "/v1/terminal/refund", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.Refund(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.LedgerEntry
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(1500), got.Amount)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, storage.ErrAccountNotFound)

		body, _ := json.Marshal(api.TerminalRefundRequest{AccountId: testAccountID, Amount: 1500})
		req := httptest.NewRequest("POST", "/v1/terminal/refund", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.Refund(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
