package storage

import (
	"context"
	"time"

	"github.com/festhq/gatekeeper/pkg/models"
)

// OrderReader defines the interface for reading order data.
type OrderReader interface {
	// GetOrder retrieves an order by its ID.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)

	// ListOrdersByBuyerID retrieves all orders placed by a buyer.
	ListOrdersByBuyerID(ctx context.Context, buyerID string) ([]models.Order, error)
}

// ReservationStore creates and manages orders before settlement. This is
// suitable for components like the main API service.
type ReservationStore interface {
	OrderReader

	// ReserveOrder validates the basket against the event and each ticket
	// type, holds inventory for every item, and creates the order record.
	// The hold and the order creation are a single atomic unit: if any item
	// cannot be held, nothing is applied.
	//
	// The caller provides EventId, BuyerId, Method and Items with quantities;
	// prices, totals, status and the reservation deadline are filled in
	// server-side.
	ReserveOrder(ctx context.Context, order *models.Order) (*models.Order, error)

	// CancelOrder cancels a buyer's reserved order and releases its holds.
	// Returns ErrInvalidTransition when the order is already terminal.
	CancelOrder(ctx context.Context, orderID, buyerID string) error
}

// SweeperStore is the privileged interface used by the expiry sweeper.
type SweeperStore interface {
	// GetLapsedOrders retrieves orders still RESERVED whose hold deadline
	// passed more than gracePeriod ago.
	GetLapsedOrders(ctx context.Context, gracePeriod time.Duration) ([]models.Order, error)

	// ExpireOrder transitions a lapsed order to EXPIRED and releases its
	// holds. The transition is compare-and-swap on the current status: when
	// settlement already moved the order out of RESERVED the call is a no-op
	// and returns false.
	ExpireOrder(ctx context.Context, orderID string) (bool, error)
}
