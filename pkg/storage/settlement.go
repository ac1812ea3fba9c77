package storage

import (
	"context"

	"github.com/festhq/gatekeeper/pkg/models"
)

// SettleResult reports what a settlement attempt did.
type SettleResult struct {
	Order *models.Order

	// AlreadyProcessed is true when the notification was a duplicate of an
	// earlier settlement with the same provider reference. Duplicates are a
	// success to the caller but must be distinguishable so gateways stop
	// retrying.
	AlreadyProcessed bool

	// TicketsMinted is the number of tickets created by this call. Zero on
	// duplicates whose tickets already exist.
	TicketsMinted int
}

// SettlementStore defines the highly-privileged interface for settling an
// order. Settlement pairs the paid transition with the inventory commit in one
// atomic unit and then mints tickets; it should only be exposed to the webhook
// processor.
type SettlementStore interface {
	// SettleOrder applies the provider's outcome to the order exactly once.
	// The idempotency key is (orderID, providerRef): a repeat with the same
	// reference is a no-op success, a different reference against a settled
	// order returns ErrConflictingSettlement.
	SettleOrder(ctx context.Context, orderID, providerRef string, outcome models.SettlementOutcome) (*SettleResult, error)
}
