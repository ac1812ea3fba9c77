// Package api holds the JSON wire types for the HTTP surface. They are kept
// separate from the domain models so storage attributes never leak onto the
// wire and request IDs are validated as UUIDs at decode time.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewReservationItem is one requested basket line.
type NewReservationItem struct {
	TicketTypeId openapi_types.UUID `json:"ticket_type_id"`
	Quantity     int64              `json:"quantity"`
}

// NewReservation is the request body for creating a reservation.
type NewReservation struct {
	EventId openapi_types.UUID   `json:"event_id"`
	Items   []NewReservationItem `json:"items"`

	// Method selects GATEWAY (default) or BALANCE settlement.
	Method *string `json:"method,omitempty"`

	// AccountId names the wallet to debit for BALANCE orders.
	AccountId *openapi_types.UUID `json:"account_id,omitempty"`
}

// OrderItem is one priced basket line of an order.
type OrderItem struct {
	TicketTypeId string `json:"ticket_type_id"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
}

// Order is the API view of an order.
type Order struct {
	Id            string      `json:"id"`
	EventId       string      `json:"event_id"`
	BuyerId       string      `json:"buyer_id"`
	Items         []OrderItem `json:"items"`
	Subtotal      int64       `json:"subtotal"`
	Fees          int64       `json:"fees"`
	Total         int64       `json:"total"`
	Status        string      `json:"status"`
	Method        string      `json:"method"`
	ReservedUntil time.Time   `json:"reserved_until"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// SettlementNotification is the payment provider's webhook payload.
type SettlementNotification struct {
	OrderId     openapi_types.UUID `json:"order_id"`
	ProviderRef string             `json:"provider_ref"`
	Outcome     string             `json:"outcome"`
}

// SettlementResult is the webhook response body.
type SettlementResult struct {
	Order            *Order `json:"order"`
	AlreadyProcessed bool   `json:"already_processed"`
	TicketsMinted    int    `json:"tickets_minted"`
}

// Ticket is the API view of an issued ticket. The credential is included only
// for the ticket owner.
type Ticket struct {
	Id         string     `json:"id"`
	OrderId    string     `json:"order_id"`
	EventId    string     `json:"event_id"`
	OwnerId    string     `json:"owner_id"`
	Status     string     `json:"status"`
	Credential string     `json:"credential,omitempty"`
	Gate       string     `json:"gate,omitempty"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
}

// RedeemRequest is a gate scan: the opaque credential plus the scanning
// gate's own event and name.
type RedeemRequest struct {
	Credential string             `json:"credential"`
	EventId    openapi_types.UUID `json:"event_id"`
	Gate       string             `json:"gate"`
}

// RedeemResult reports the outcome of a gate scan. Reason is set on
// rejections only.
type RedeemResult struct {
	Admitted bool    `json:"admitted"`
	Reason   string  `json:"reason,omitempty"`
	Ticket   *Ticket `json:"ticket,omitempty"`
}

// NewAccount is the request body for provisioning a wallet or wristband.
type NewAccount struct {
	OwnerId string `json:"owner_id"`
	Kind    string `json:"kind"`
}

// Account is the API view of a prepaid account.
type Account struct {
	Id        string    `json:"id"`
	OwnerId   string    `json:"owner_id"`
	Kind      string    `json:"kind"`
	Balance   int64     `json:"balance"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TopUpRequest credits an account.
type TopUpRequest struct {
	Amount int64  `json:"amount"`
	Source string `json:"source"`
}

// TransferRequest moves balance from the account in the path to another.
type TransferRequest struct {
	DestinationId openapi_types.UUID `json:"destination_id"`
	Amount        int64              `json:"amount"`
}

// TerminalPaymentRequest is an NFC spend at a vendor terminal.
type TerminalPaymentRequest struct {
	AccountId openapi_types.UUID `json:"account_id"`
	Amount    int64              `json:"amount"`
	Vendor    string             `json:"vendor"`
}

// TerminalRefundRequest reverses a prior terminal charge.
type TerminalRefundRequest struct {
	AccountId openapi_types.UUID `json:"account_id"`
	Amount    int64              `json:"amount"`
	Reference string             `json:"reference"`
}

// LedgerEntry is the API view of one balance mutation.
type LedgerEntry struct {
	EntryId        string    `json:"entry_id"`
	AccountId      string    `json:"account_id"`
	Type           string    `json:"type"`
	Amount         int64     `json:"amount"`
	BalanceAfter   int64     `json:"balance_after"`
	RelatedOrderId string    `json:"related_order_id,omitempty"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewEvent is the request body for creating an event record.
type NewEvent struct {
	Name           string    `json:"name"`
	Published      bool      `json:"published"`
	StartsAt       time.Time `json:"starts_at"`
	AllowLateEntry bool      `json:"allow_late_entry"`
}

// Event is the API view of an event.
type Event struct {
	Id             string    `json:"id"`
	Name           string    `json:"name"`
	Published      bool      `json:"published"`
	StartsAt       time.Time `json:"starts_at"`
	AllowLateEntry bool      `json:"allow_late_entry"`
}

// NewTicketType is the request body for creating a ticket type.
type NewTicketType struct {
	EventId     openapi_types.UUID `json:"event_id"`
	Name        string             `json:"name"`
	Price       int64              `json:"price"`
	Total       int64              `json:"total"`
	MaxPerOrder int64              `json:"max_per_order"`
	SaleStart   time.Time          `json:"sale_start"`
	SaleEnd     time.Time          `json:"sale_end"`
}

// TicketType is the API view of a ticket type with its live counters.
type TicketType struct {
	Id          string    `json:"id"`
	EventId     string    `json:"event_id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Total       int64     `json:"total"`
	Sold        int64     `json:"sold"`
	Reserved    int64     `json:"reserved"`
	Available   int64     `json:"available"`
	MaxPerOrder int64     `json:"max_per_order"`
	SaleStart   time.Time `json:"sale_start"`
	SaleEnd     time.Time `json:"sale_end"`
}
