package storage

import (
	"errors"
	"fmt"
)

// ErrEventNotFound is returned when the referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrEventNotOnSale is returned when the event is unpublished, or already
// started without allowing late entry.
var ErrEventNotOnSale = errors.New("event not on sale")

// ErrTicketTypeNotFound is returned when the referenced ticket type does not exist.
var ErrTicketTypeNotFound = errors.New("ticket type not found")

// ErrSaleNotStarted is returned for holds requested before the sale window opens.
var ErrSaleNotStarted = errors.New("sale window not yet open")

// ErrSaleEnded is returned for holds requested after the sale window closed.
var ErrSaleEnded = errors.New("sale window closed")

// ErrExceedsMaxPerOrder is returned before the inventory ledger is touched
// when a single basket line asks for more units than the type allows.
var ErrExceedsMaxPerOrder = errors.New("quantity exceeds per-order limit")

// ErrInvalidQuantity is returned for qty <= 0 requests. Argument error, never retryable.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrInvalidAmount is returned for amount <= 0 balance operations.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrOrderNotFound is returned when the referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrTicketNotFound is returned when the referenced ticket does not exist.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrAccountNotFound is returned when the referenced account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when creating an account whose ID is taken.
var ErrAccountExists = errors.New("account already exists")

// ErrAccountBlocked is returned for debits against a blocked account.
var ErrAccountBlocked = errors.New("account is blocked")

// ErrAccountInactive is returned for debits against an inactive account.
var ErrAccountInactive = errors.New("account is inactive")

// ErrInvalidTransition is returned for any attempt to move an order or ticket
// out of a terminal state. Attempts are reported, never silently ignored.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrConflictingSettlement is returned when a settlement notification carries
// a different provider reference than the one that settled the order.
var ErrConflictingSettlement = errors.New("conflicting settlement reference")

// ErrConflict is returned when an operation kept losing optimistic-lock races
// past its retry budget. Callers may retry the whole call.
var ErrConflict = errors.New("too much contention, try again")

// OutOfStockError reports a hold that exceeded remaining capacity. Available
// is surfaced verbatim so the UI can show the remaining quantity.
type OutOfStockError struct {
	TicketTypeId string
	Requested    int64
	Available    int64
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("ticket type %s out of stock: requested %d, available %d", e.TicketTypeId, e.Requested, e.Available)
}

// InsufficientBalanceError reports a debit that exceeded the account balance.
type InsufficientBalanceError struct {
	AccountId string
	Requested int64
	Balance   int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s has insufficient balance: requested %d, have %d", e.AccountId, e.Requested, e.Balance)
}

// Redemption rejection reasons.
const (
	RejectAlreadyUsed   = "already_used"
	RejectCancelled     = "cancelled"
	RejectTransferred   = "transferred"
	RejectNotRedeemable = "not_redeemable"
)

// RedemptionError reports why a ticket was refused at the gate. Tickets for a
// different event use RejectNotRedeemable so their existence is not revealed.
type RedemptionError struct {
	Reason string
}

func (e *RedemptionError) Error() string {
	return fmt.Sprintf("ticket not redeemable: %s", e.Reason)
}
