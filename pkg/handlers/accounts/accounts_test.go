package accounts

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
	"github.com/festhq/gatekeeper/pkg/middleware"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/festhq/gatekeeper/pkg/storage/mocks"
)

var testDestinationID = uuid.MustParse("b1a2c3d4-e5f6-4789-9abc-def012341001")

func walletAccount() *models.Account {
	return &models.Account{
		Id:        "acct-1",
		OwnerId:   "buyer-1",
		Kind:      models.ACCOUNT_WALLET,
		Balance:   5000,
		Status:    models.ACCOUNT_ACTIVE,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
}

func serve(h *AccountsHandler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/v1/accounts", h.CreateAccount)
	r.Get("/v1/accounts/{accountId}", h.GetAccountById)
	r.Post("/v1/accounts/{accountId}/topup", h.TopUp)
	r.Post("/v1/accounts/{accountId}/transfer", h.Transfer)
	r.Post("/v1/accounts/{accountId}/block", h.Block)
	r.Post("/v1/accounts/{accountId}/unblock", h.Unblock)
	r.Get("/v1/accounts/{accountId}/ledger", h.ListLedger)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func asOwner(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithUser(context.Background(), "buyer-1", middleware.RoleBuyer))
}

func asStaff(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithUser(context.Background(), "staff-1", middleware.RoleStaff))
}

func TestCreateAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("CreateAccount", mock.Anything, mock.Anything).Return(walletAccount(), nil)

		body, _ := json.Marshal(api.NewAccount{OwnerId: "buyer-1", Kind: "WALLET"})
		req := httptest.NewRequest("POST", "/v1/accounts", bytes.NewReader(body))
		rr := serve(handler, asStaff(req))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var account api.Account
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
		assert.Equal(t, "acct-1", account.Id)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		body, _ := json.Marshal(api.NewAccount{OwnerId: "buyer-1", Kind: "PIGGYBANK"})
		req := httptest.NewRequest("POST", "/v1/accounts", bytes.NewReader(body))
		rr := serve(handler, asStaff(req))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("Missing Owner", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		body, _ := json.Marshal(api.NewAccount{Kind: "WRISTBAND"})
		req := httptest.NewRequest("POST", "/v1/accounts", bytes.NewReader(body))
		rr := serve(handler, asStaff(req))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetAccountById(t *testing.T) {
	t.Run("Owner Sees Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)

		req := httptest.NewRequest("GET", "/v1/accounts/acct-1", nil)
		rr := serve(handler, asOwner(req))

		assert.Equal(t, http.StatusOK, rr.Code)
		var account api.Account
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
		assert.Equal(t, int64(5000), account.Balance)
	})

	t.Run("Stranger Sees Not Found", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)

		req := httptest.NewRequest("GET", "/v1/accounts/acct-1", nil)
		req = req.WithContext(middleware.WithUser(context.Background(), "someone-else", middleware.RoleBuyer))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTopUp(t *testing.T) {
	topUpEntry := func() *models.LedgerEntry {
		return &models.LedgerEntry{
			EntryId:      "entry-1",
			AccountId:    "acct-1",
			Type:         models.ENTRY_TOPUP,
			Amount:       2000,
			BalanceAfter: 7000,
			Description:  "Top-up via cash-booth",
			CreatedAt:    time.Now().UTC(),
		}
	}

	t.Run("Owner Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)
		mockStore.On("TopUp", mock.Anything, "acct-1", int64(2000), models.ENTRY_TOPUP, "cash-booth").Return(topUpEntry(), nil)

		body, _ := json.Marshal(api.TopUpRequest{Amount: 2000, Source: "cash-booth"})
		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/topup", bytes.NewReader(body))
		rr := serve(handler, asOwner(req))

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Staff Can Credit Any Account", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)
		mockStore.On("TopUp", mock.Anything, "acct-1", int64(2000), models.ENTRY_TOPUP, "cash-booth").Return(topUpEntry(), nil)

		body, _ := json.Marshal(api.TopUpRequest{Amount: 2000, Source: "cash-booth"})
		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/topup", bytes.NewReader(body))
		rr := serve(handler, asStaff(req))

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Stranger Sees Not Found", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)

		body, _ := json.Marshal(api.TopUpRequest{Amount: 2000, Source: "cash-booth"})
		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/topup", bytes.NewReader(body))
		req = req.WithContext(middleware.WithUser(context.Background(), "someone-else", middleware.RoleBuyer))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertNotCalled(t, "TopUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)
		mockStore.On("TopUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, storage.ErrInvalidAmount)

		body, _ := json.Marshal(api.TopUpRequest{Amount: -5, Source: "cash-booth"})
		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/topup", bytes.NewReader(body))
		rr := serve(handler, asOwner(req))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTransfer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)

		out := &models.LedgerEntry{EntryId: "entry-out", AccountId: "acct-1", Type: models.ENTRY_TRANSFER_OUT, Amount: -2000, BalanceAfter: 3000}
		in := &models.LedgerEntry{EntryId: "entry-in", AccountId: testDestinationID.String(), Type: models.ENTRY_TRANSFER_IN, Amount: 2000, BalanceAfter: 2000}
		mockStore.On("Transfer", mock.Anything, "acct-1", testDestinationID.String(), int64(2000)).Return(out, in, nil)

		body, _ := json.Marshal(api.TransferRequest{DestinationId: testDestinationID, Amount: 2000})
		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/transfer", bytes.NewReader(body))
		rr := serve(handler, asOwner(req))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var entries []api.LedgerEntry
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Len(t, entries, 2)
		assert.Equal(t, int64(-2000), entries[0].Amount)
		assert.Equal(t, int64(2000), entries[1].Amount)
		mockStore.AssertExpectations(t)
	})

	t.Run("Stranger Cannot Transfer", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)

		body, _ := json.Marshal(api.TransferRequest{DestinationId: testDestinationID, Amount: 2000})
		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/transfer", bytes.NewReader(body))
		req = req.WithContext(middleware.WithUser(context.Background(), "someone-else", middleware.RoleBuyer))
		rr := serve(handler, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBlockUnblock(t *testing.T) {
	t.Run("Block Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("SetBlocked", mock.Anything, "acct-1", true).Return(nil)

		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/block", nil)
		rr := serve(handler, asStaff(req))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unblock Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("SetBlocked", mock.Anything, "acct-1", false).Return(nil)

		req := httptest.NewRequest("POST", "/v1/accounts/acct-1/unblock", nil)
		rr := serve(handler, asStaff(req))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestListLedger(t *testing.T) {
	t.Run("Default Limit", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)
		mockStore.On("ListLedgerEntries", mock.Anything, "acct-1", int32(defaultLedgerLimit)).
			Return([]models.LedgerEntry{{EntryId: "entry-1", AccountId: "acct-1"}}, nil)

		req := httptest.NewRequest("GET", "/v1/accounts/acct-1/ledger", nil)
		rr := serve(handler, asOwner(req))

		assert.Equal(t, http.StatusOK, rr.Code)
		var entries []api.LedgerEntry
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Len(t, entries, 1)
		mockStore.AssertExpectations(t)
	})

	t.Run("Explicit Limit", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)
		mockStore.On("ListLedgerEntries", mock.Anything, "acct-1", int32(5)).Return([]models.LedgerEntry{}, nil)

		req := httptest.NewRequest("GET", "/v1/accounts/acct-1/ledger?limit=5", nil)
		rr := serve(handler, asOwner(req))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		handler := NewHandler(mockStore)

		mockStore.On("GetAccount", mock.Anything, "acct-1").Return(walletAccount(), nil)

		req := httptest.NewRequest("GET", "/v1/accounts/acct-1/ledger?limit=lots", nil)
		rr := serve(handler, asOwner(req))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "ListLedgerEntries", mock.Anything, mock.Anything, mock.Anything)
	})
}
