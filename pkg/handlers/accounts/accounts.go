package accounts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/handlers/respond"
	"github.com/festhq/gatekeeper/pkg/mapping"
	"github.com/festhq/gatekeeper/pkg/middleware"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// defaultLedgerLimit bounds ledger listings when the client does not ask for
// a specific page size.
const defaultLedgerLimit = 50

// AccountsStore is the slice of the storage layer the account handlers use.
type AccountsStore interface {
	storage.AccountStore
	storage.LedgerReader
}

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store AccountsStore
}

// NewHandler creates a new AccountsHandler.
func NewHandler(store AccountsStore) *AccountsHandler {
	return &AccountsHandler{Store: store}
}

// CreateAccount provisions a new wallet or wristband.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	kind := models.AccountKind(req.Kind)
	if kind != models.ACCOUNT_WALLET && kind != models.ACCOUNT_WRISTBAND {
		http.Error(w, fmt.Sprintf("Unknown account kind %q", req.Kind), http.StatusBadRequest)
		return
	}
	if req.OwnerId == "" {
		http.Error(w, "owner_id is required", http.StatusBadRequest)
		return
	}

	account, err := h.Store.CreateAccount(r.Context(), mapping.ToDomainNewAccount(&req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiAccount(account))
}

// GetAccountById retrieves an account. Accounts belonging to someone else are
// reported as missing unless the caller is staff.
func (h *AccountsHandler) GetAccountById(w http.ResponseWriter, r *http.Request) {
	account, err := h.authorizedAccount(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiAccount(account))
}

// TopUp credits an account at a cash booth or card terminal. The caller must
// own the account; booth staff pass the ownership gate by role.
func (h *AccountsHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	account, err := h.authorizedAccount(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req api.TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	entry, err := h.Store.TopUp(r.Context(), account.Id, req.Amount, models.ENTRY_TOPUP, req.Source)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiLedgerEntry(entry))
}

// Transfer moves balance from the caller's account to another account.
func (h *AccountsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	account, err := h.authorizedAccount(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req api.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	outEntry, inEntry, err := h.Store.Transfer(r.Context(), account.Id, req.DestinationId.String(), req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, []*api.LedgerEntry{
		mapping.ToApiLedgerEntry(outEntry),
		mapping.ToApiLedgerEntry(inEntry),
	})
}

// Block freezes an account (lost wristband).
func (h *AccountsHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true)
}

// Unblock lifts a freeze.
func (h *AccountsHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false)
}

func (h *AccountsHandler) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	accountID := chi.URLParam(r, "accountId")

	if err := h.Store.SetBlocked(r.Context(), accountID, blocked); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLedger returns the account's most recent entries, newest first.
func (h *AccountsHandler) ListLedger(w http.ResponseWriter, r *http.Request) {
	account, err := h.authorizedAccount(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	limit := int64(defaultLedgerLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 32)
		if err != nil || limit <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	entries, err := h.Store.ListLedgerEntries(r.Context(), account.Id, int32(limit))
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}
	respond.JSON(w, http.StatusOK, apiEntries)
}

// authorizedAccount loads the account in the path and enforces ownership.
// Other people's accounts look exactly like missing ones.
func (h *AccountsHandler) authorizedAccount(r *http.Request) (*models.Account, error) {
	accountID := chi.URLParam(r, "accountId")

	account, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		return nil, err
	}

	role := middleware.Role(r.Context())
	if account.OwnerId != middleware.UserID(r.Context()) && role != middleware.RoleStaff && role != middleware.RoleAdmin {
		return nil, storage.ErrAccountNotFound
	}
	return account, nil
}
