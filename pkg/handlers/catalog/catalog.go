package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/handlers/respond"
	"github.com/festhq/gatekeeper/pkg/mapping"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// CatalogHandler holds the dependencies for event and ticket type setup.
type CatalogHandler struct {
	Store storage.CatalogStore
}

// NewHandler creates a new CatalogHandler.
func NewHandler(store storage.CatalogStore) *CatalogHandler {
	return &CatalogHandler{Store: store}
}

// CreateEvent creates the sales context record reservations validate against.
func (h *CatalogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req api.NewEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	event, err := h.Store.CreateEvent(r.Context(), mapping.ToDomainNewEvent(&req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiEvent(event))
}

// CreateTicketType creates a ticket type with its inventory counters zeroed.
func (h *CatalogHandler) CreateTicketType(w http.ResponseWriter, r *http.Request) {
	var req api.NewTicketType
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Total <= 0 {
		http.Error(w, "total must be positive", http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetEvent(r.Context(), req.EventId.String()); err != nil {
		respond.Error(w, err)
		return
	}

	tt, err := h.Store.CreateTicketType(r.Context(), mapping.ToDomainNewTicketType(&req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiTicketType(tt))
}

// GetTicketTypeById returns a ticket type with its live availability.
func (h *CatalogHandler) GetTicketTypeById(w http.ResponseWriter, r *http.Request) {
	ticketTypeID := chi.URLParam(r, "ticketTypeId")

	tt, err := h.Store.GetTicketType(r.Context(), ticketTypeID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTicketType(tt))
}
