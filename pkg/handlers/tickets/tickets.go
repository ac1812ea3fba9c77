package tickets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/credential"
	"github.com/festhq/gatekeeper/pkg/handlers/respond"
	"github.com/festhq/gatekeeper/pkg/mapping"
	"github.com/festhq/gatekeeper/pkg/middleware"
	"github.com/festhq/gatekeeper/pkg/monitoring"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// TicketsHandler holds the dependencies for ticket readback and redemption.
type TicketsHandler struct {
	Store    storage.TicketStore
	Verifier *credential.Signer
}

// NewHandler creates a new TicketsHandler.
func NewHandler(store storage.TicketStore, verifier *credential.Signer) *TicketsHandler {
	return &TicketsHandler{Store: store, Verifier: verifier}
}

// GetTicketById handles the logic for retrieving a ticket. The signed
// credential is included only for the ticket's owner; staff see the rest.
func (h *TicketsHandler) GetTicketById(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	ticket, err := h.Store.GetTicket(r.Context(), ticketID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	isOwner := ticket.OwnerId == middleware.UserID(r.Context())
	role := middleware.Role(r.Context())
	if !isOwner && role != middleware.RoleStaff && role != middleware.RoleAdmin {
		respond.Error(w, storage.ErrTicketNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTicket(ticket, isOwner))
}

// RedeemTicket handles a gate scan. The scanned credential is verified
// before the store is touched, so forged or damaged tokens never reach the
// database; every rejection reads the same to the person holding the phone.
func (h *TicketsHandler) RedeemTicket(w http.ResponseWriter, r *http.Request) {
	var req api.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Gate == "" {
		http.Error(w, "gate is required", http.StatusBadRequest)
		return
	}

	claims, err := h.Verifier.Verify(req.Credential)
	if err != nil {
		monitoring.TrackRedemption(storage.RejectNotRedeemable)
		respond.JSON(w, http.StatusUnprocessableEntity, api.RedeemResult{
			Admitted: false,
			Reason:   storage.RejectNotRedeemable,
		})
		return
	}

	ticket, err := h.Store.RedeemTicket(r.Context(), claims.TicketId, req.EventId.String(), req.Gate)
	if err != nil {
		var rejection *storage.RedemptionError
		if errors.As(err, &rejection) {
			monitoring.TrackRedemption(rejection.Reason)
			respond.JSON(w, http.StatusUnprocessableEntity, api.RedeemResult{
				Admitted: false,
				Reason:   rejection.Reason,
			})
			return
		}
		respond.Error(w, err)
		return
	}

	monitoring.TrackRedemption("admitted")
	respond.JSON(w, http.StatusOK, api.RedeemResult{
		Admitted: true,
		Ticket:   mapping.ToApiTicket(ticket, false),
	})
}
