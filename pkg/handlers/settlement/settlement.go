package settlement

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/handlers/respond"
	"github.com/festhq/gatekeeper/pkg/mapping"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/monitoring"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// SettlementHandler holds the dependencies for the settlement webhook.
type SettlementHandler struct {
	Store storage.SettlementStore
}

// NewHandler creates a new SettlementHandler.
func NewHandler(store storage.SettlementStore) *SettlementHandler {
	return &SettlementHandler{Store: store}
}

// NotifySettlement processes a payment provider notification. The response
// status distinguishes the three dispositions the gateway cares about:
// 202 for a first-time settlement, 200 for a duplicate it should stop
// retrying, and 409 for a reference that conflicts with an earlier one.
func (h *SettlementHandler) NotifySettlement(w http.ResponseWriter, r *http.Request) {
	var notification api.SettlementNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if notification.ProviderRef == "" {
		http.Error(w, "provider_ref is required", http.StatusBadRequest)
		return
	}

	outcome := models.SettlementOutcome(notification.Outcome)
	if outcome != models.OUTCOME_SUCCESS && outcome != models.OUTCOME_FAILURE {
		http.Error(w, fmt.Sprintf("Unknown outcome %q", notification.Outcome), http.StatusBadRequest)
		return
	}

	result, err := h.Store.SettleOrder(r.Context(), notification.OrderId.String(), notification.ProviderRef, outcome)
	if err != nil {
		monitoring.TrackSettlement(notification.Outcome, "error")
		respond.Error(w, err)
		return
	}

	status := http.StatusAccepted
	disposition := "applied"
	if result.AlreadyProcessed {
		status = http.StatusOK
		disposition = "duplicate"
	}
	monitoring.TrackSettlement(notification.Outcome, disposition)
	monitoring.TrackMinted(result.TicketsMinted)

	respond.JSON(w, status, api.SettlementResult{
		Order:            mapping.ToApiOrder(result.Order),
		AlreadyProcessed: result.AlreadyProcessed,
		TicketsMinted:    result.TicketsMinted,
	})
}
