package storage

import (
	"context"

	"github.com/festhq/gatekeeper/pkg/models"
)

// CatalogStore manages the sales context records the engine validates against.
type CatalogStore interface {
	// CreateEvent creates a new event record.
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)

	// GetEvent retrieves an event by its ID.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// CreateTicketType creates a new ticket type with its inventory counters.
	CreateTicketType(ctx context.Context, tt *models.TicketType) (*models.TicketType, error)

	// GetTicketType retrieves a ticket type by its ID.
	GetTicketType(ctx context.Context, ticketTypeID string) (*models.TicketType, error)
}

// InventoryStore is the inventory ledger: atomic counter movements on a single
// ticket type. All three operations are conditional read-modify-write cycles;
// no caller ever observes a stale available count taking effect.
type InventoryStore interface {
	// TryReserve atomically moves qty units into the reserved counter.
	// Returns an OutOfStockError when remaining capacity is insufficient,
	// ErrSaleNotStarted/ErrSaleEnded outside the sale window, and
	// ErrExceedsMaxPerOrder before touching the counters.
	TryReserve(ctx context.Context, ticketTypeID string, qty int64) error

	// Release atomically returns qty units from reserved to available.
	Release(ctx context.Context, ticketTypeID string, qty int64) error

	// CommitSale atomically moves qty units from reserved to sold.
	CommitSale(ctx context.Context, ticketTypeID string, qty int64) error
}
