package storage

import (
	"context"

	"github.com/festhq/gatekeeper/pkg/models"
)

// TicketStore defines the interface for reading and redeeming issued tickets.
// Minting is not exposed here: tickets are created only as a side effect of
// settlement.
type TicketStore interface {
	// GetTicket retrieves a ticket by its ID.
	GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error)

	// ListTicketsByOrderID retrieves every ticket minted for an order.
	ListTicketsByOrderID(ctx context.Context, orderID string) ([]models.Ticket, error)

	// RedeemTicket performs the one-way ACTIVE -> USED transition for a
	// ticket presented at the given event's gate. Rejections carry a
	// RedemptionError whose reason distinguishes used, cancelled and
	// transferred tickets. A ticket belonging to a different event is
	// indistinguishable from an unknown one.
	RedeemTicket(ctx context.Context, ticketID, eventID, gate string) (*models.Ticket, error)
}
