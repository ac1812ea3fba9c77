package models

import (
	"time"
)

// OrderStatus defines the possible states of an order.
type OrderStatus string

const (
	// ORDER_RESERVED means inventory is held and the buyer has until
	// ReservedUntil to complete payment.
	ORDER_RESERVED OrderStatus = "RESERVED"
	// ORDER_PENDING means settlement is already underway (e.g. the buyer was
	// redirected to the gateway) and the hold must not be swept.
	ORDER_PENDING   OrderStatus = "PENDING"
	ORDER_PAID      OrderStatus = "PAID"
	ORDER_CANCELLED OrderStatus = "CANCELLED"
	ORDER_EXPIRED   OrderStatus = "EXPIRED"
	ORDER_FAILED    OrderStatus = "FAILED"
)

// Terminal reports whether no further transition out of the status is allowed.
func (s OrderStatus) Terminal() bool {
	switch s {
	case ORDER_PAID, ORDER_CANCELLED, ORDER_EXPIRED, ORDER_FAILED:
		return true
	}
	return false
}

// TicketStatus defines the possible states of an issued ticket.
type TicketStatus string

const (
	TICKET_ACTIVE      TicketStatus = "ACTIVE"
	TICKET_USED        TicketStatus = "USED"
	TICKET_CANCELLED   TicketStatus = "CANCELLED"
	TICKET_TRANSFERRED TicketStatus = "TRANSFERRED"
)

// AccountStatus defines the possible states of a prepaid account.
type AccountStatus string

const (
	ACCOUNT_ACTIVE   AccountStatus = "ACTIVE"
	ACCOUNT_INACTIVE AccountStatus = "INACTIVE"
	ACCOUNT_BLOCKED  AccountStatus = "BLOCKED"
)

// AccountKind distinguishes online wallets from on-site wristbands. Both obey
// the same ledger contract.
type AccountKind string

const (
	ACCOUNT_WALLET    AccountKind = "WALLET"
	ACCOUNT_WRISTBAND AccountKind = "WRISTBAND"
)

// LedgerEntryType classifies a balance mutation.
type LedgerEntryType string

const (
	ENTRY_TOPUP        LedgerEntryType = "TOPUP"
	ENTRY_PAYMENT      LedgerEntryType = "PAYMENT"
	ENTRY_REFUND       LedgerEntryType = "REFUND"
	ENTRY_BONUS        LedgerEntryType = "BONUS"
	ENTRY_TRANSFER_IN  LedgerEntryType = "TRANSFER_IN"
	ENTRY_TRANSFER_OUT LedgerEntryType = "TRANSFER_OUT"
)

// PaymentMethod selects the settlement path for an order.
type PaymentMethod string

const (
	// PAY_GATEWAY settles through the external payment provider webhook.
	PAY_GATEWAY PaymentMethod = "GATEWAY"
	// PAY_BALANCE settles internally against the buyer's wallet account.
	PAY_BALANCE PaymentMethod = "BALANCE"
)

// Event is the sales context for ticket types. Only the fields the engine
// validates during reservation live here; everything else belongs to the
// catalog service.
type Event struct {
	Id             string    `dynamodbav:"id"`
	Name           string    `dynamodbav:"name"`
	Published      bool      `dynamodbav:"published"`
	StartsAt       time.Time `dynamodbav:"starts_at"`
	AllowLateEntry bool      `dynamodbav:"allow_late_entry"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
}

// TicketType holds the per-type inventory counters. The invariant
// sold + reserved <= total is enforced exclusively through conditional writes
// that carry the Version attribute; counters are never mutated blindly.
type TicketType struct {
	Id          string    `dynamodbav:"id"`
	EventId     string    `dynamodbav:"event_id"`
	Name        string    `dynamodbav:"name"`
	Price       int64     `dynamodbav:"price"` // minor currency units
	Total       int64     `dynamodbav:"total"`
	Sold        int64     `dynamodbav:"sold"`
	Reserved    int64     `dynamodbav:"reserved"`
	MaxPerOrder int64     `dynamodbav:"max_per_order"`
	SaleStart   time.Time `dynamodbav:"sale_start"`
	SaleEnd     time.Time `dynamodbav:"sale_end"`
	Version     int64     `dynamodbav:"version"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"`
}

// Available is the capacity left for new holds, computed from the snapshot.
func (t *TicketType) Available() int64 {
	return t.Total - t.Sold - t.Reserved
}

// OrderItem is one basket line of an order. UnitPrice is captured at
// reservation time so later price changes never affect settlement.
type OrderItem struct {
	TicketTypeId string `dynamodbav:"ticket_type_id"`
	Quantity     int64  `dynamodbav:"quantity"`
	UnitPrice    int64  `dynamodbav:"unit_price"`
}

// Order is the audit record of a reservation attempt. Orders are never
// deleted; they only move through the status machine.
type Order struct {
	Id            string        `dynamodbav:"id"`
	EventId       string        `dynamodbav:"event_id"`
	BuyerId       string        `dynamodbav:"buyer_id"`
	Items         []OrderItem   `dynamodbav:"items"`
	Subtotal      int64         `dynamodbav:"subtotal"`
	Fees          int64         `dynamodbav:"fees"`
	Total         int64         `dynamodbav:"total"`
	Status        OrderStatus   `dynamodbav:"status"`
	Method        PaymentMethod `dynamodbav:"method"`
	// AccountId names the wallet debited at settlement for BALANCE orders.
	AccountId     string        `dynamodbav:"account_id,omitempty"`
	ProviderRef   string        `dynamodbav:"provider_ref,omitempty"`
	ReservedUntil time.Time     `dynamodbav:"reserved_until"`
	CreatedAt     time.Time     `dynamodbav:"created_at"`
	UpdatedAt     time.Time     `dynamodbav:"updated_at"`
}

// Ticket is one redeemable unit minted when its order reached PAID. The Id is
// deterministic per (order, ticket type, unit index) so retried settlements
// never double-mint.
type Ticket struct {
	Id           string       `dynamodbav:"id"`
	OrderId      string       `dynamodbav:"order_id"`
	TicketTypeId string       `dynamodbav:"ticket_type_id"`
	EventId      string       `dynamodbav:"event_id"`
	OwnerId      string       `dynamodbav:"owner_id"`
	UnitIndex    int          `dynamodbav:"unit_index"`
	Credential   string       `dynamodbav:"credential"`
	Status       TicketStatus `dynamodbav:"status"`
	Gate         string       `dynamodbav:"gate,omitempty"`
	RedeemedAt   *time.Time   `dynamodbav:"redeemed_at,omitempty"`
	CreatedAt    time.Time    `dynamodbav:"created_at"`
}

// Account is a prepaid balance holder (wallet or wristband). Balance is a
// cached value that must always equal the running sum of the account's ledger
// entries; Version guards every mutation.
type Account struct {
	Id        string        `dynamodbav:"id"`
	OwnerId   string        `dynamodbav:"owner_id"`
	Kind      AccountKind   `dynamodbav:"kind"`
	Balance   int64         `dynamodbav:"balance"`
	Status    AccountStatus `dynamodbav:"status"`
	Version   int64         `dynamodbav:"version"`
	CreatedAt time.Time     `dynamodbav:"created_at"`
	UpdatedAt time.Time     `dynamodbav:"updated_at"`
}

// LedgerEntry is the immutable record of one balance mutation. Amount is
// signed (debits negative); BalanceAfter snapshots the post-mutation balance
// so the ledger can be replayed for reconciliation.
type LedgerEntry struct {
	EntryId        string          `dynamodbav:"entry_id"`
	AccountId      string          `dynamodbav:"account_id"`
	Type           LedgerEntryType `dynamodbav:"type"`
	Amount         int64           `dynamodbav:"amount"`
	BalanceAfter   int64           `dynamodbav:"balance_after"`
	RelatedOrderId string          `dynamodbav:"related_order_id,omitempty"`
	Description    string          `dynamodbav:"description"`
	CreatedAt      time.Time       `dynamodbav:"created_at"`
}

// SettlementOutcome is what the payment provider reports for an order.
type SettlementOutcome string

const (
	OUTCOME_SUCCESS SettlementOutcome = "SUCCESS"
	OUTCOME_FAILURE SettlementOutcome = "FAILURE"
)
