package reservations

import (
	"encoding/json"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/handlers/respond"
	"github.com/festhq/gatekeeper/pkg/mapping"
	"github.com/festhq/gatekeeper/pkg/middleware"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/monitoring"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// ReservationsHandler holds the dependencies for reservation and order handlers.
type ReservationsHandler struct {
	Store storage.ReservationStore
}

// NewHandler creates a new ReservationsHandler.
func NewHandler(store storage.ReservationStore) *ReservationsHandler {
	return &ReservationsHandler{Store: store}
}

// CreateReservation handles the logic for reserving a basket of tickets.
func (h *ReservationsHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req api.NewReservation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "Reservation needs at least one item", http.StatusBadRequest)
		return
	}

	order := mapping.ToDomainNewOrder(&req, middleware.UserID(r.Context()))
	if order.Method == models.PAY_BALANCE && order.AccountId == "" {
		http.Error(w, "account_id is required for balance orders", http.StatusBadRequest)
		return
	}

	created, err := h.Store.ReserveOrder(r.Context(), order)
	if err != nil {
		monitoring.TrackReservation("rejected")
		respond.Error(w, err)
		return
	}

	monitoring.TrackReservation("reserved")
	respond.JSON(w, http.StatusCreated, mapping.ToApiOrder(created))
}

// GetOrderById handles the logic for retrieving an order. Orders belonging to
// someone else are reported as missing.
func (h *ReservationsHandler) GetOrderById(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.Store.GetOrder(r.Context(), orderID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	role := middleware.Role(r.Context())
	if order.BuyerId != middleware.UserID(r.Context()) && role != middleware.RoleStaff && role != middleware.RoleAdmin {
		respond.Error(w, storage.ErrOrderNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiOrder(order))
}

// CancelOrderById handles explicit buyer cancellation of a reserved order.
func (h *ReservationsHandler) CancelOrderById(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	if err := h.Store.CancelOrder(r.Context(), orderID, middleware.UserID(r.Context())); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
