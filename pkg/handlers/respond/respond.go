// Package respond carries the response helpers shared by every handler:
// JSON encoding and the storage-error-to-status mapping.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/festhq/gatekeeper/pkg/storage"
)

// JSON encodes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Error maps a storage error to its HTTP status and writes it. Unmapped
// errors become a 500 without echoing internals to the client.
func Error(w http.ResponseWriter, err error) {
	var outOfStock *storage.OutOfStockError
	var insufficient *storage.InsufficientBalanceError

	switch {
	case errors.Is(err, storage.ErrEventNotFound),
		errors.Is(err, storage.ErrTicketTypeNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrTicketNotFound),
		errors.Is(err, storage.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, storage.ErrInvalidQuantity),
		errors.Is(err, storage.ErrInvalidAmount),
		errors.Is(err, storage.ErrExceedsMaxPerOrder):
		http.Error(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, storage.ErrSaleNotStarted),
		errors.Is(err, storage.ErrSaleEnded),
		errors.Is(err, storage.ErrEventNotOnSale),
		errors.Is(err, storage.ErrAccountBlocked),
		errors.Is(err, storage.ErrAccountInactive):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)

	case errors.As(err, &insufficient):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)

	case errors.As(err, &outOfStock):
		http.Error(w, err.Error(), http.StatusConflict)

	case errors.Is(err, storage.ErrInvalidTransition),
		errors.Is(err, storage.ErrConflictingSettlement),
		errors.Is(err, storage.ErrAccountExists):
		http.Error(w, err.Error(), http.StatusConflict)

	case errors.Is(err, storage.ErrConflict):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)

	default:
		slog.Error("unhandled storage error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
