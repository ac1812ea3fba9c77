package terminal

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/handlers/respond"
	"github.com/festhq/gatekeeper/pkg/mapping"
	"github.com/festhq/gatekeeper/pkg/monitoring"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// TerminalHandler holds the dependencies for vendor terminal operations:
// wristband taps at food stalls and merch stands.
type TerminalHandler struct {
	Store storage.AccountStore
}

// NewHandler creates a new TerminalHandler.
func NewHandler(store storage.AccountStore) *TerminalHandler {
	return &TerminalHandler{Store: store}
}

// Payment charges an account for an on-site purchase.
func (h *TerminalHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var req api.TerminalPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	reason := fmt.Sprintf("Terminal charge at %s", req.Vendor)
	entry, err := h.Store.Spend(r.Context(), req.AccountId.String(), req.Amount, reason, "")
	if err != nil {
		monitoring.TrackTerminalSpend("rejected")
		respond.Error(w, err)
		return
	}

	monitoring.TrackTerminalSpend("charged")
	respond.JSON(w, http.StatusCreated, mapping.ToApiLedgerEntry(entry))
}

// Refund reverses a prior terminal charge.
func (h *TerminalHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req api.TerminalRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	entry, err := h.Store.Refund(r.Context(), req.AccountId.String(), req.Amount, req.Reference)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiLedgerEntry(entry))
}
