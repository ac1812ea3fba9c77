package storage

import (
	"context"

	"github.com/festhq/gatekeeper/pkg/models"
)

// AccountStore defines the interface for managing prepaid accounts (wallets
// and wristbands). Every mutating operation re-reads the balance inside the
// same atomic unit as the write and appends exactly one ledger entry per
// affected account.
type AccountStore interface {
	// CreateAccount creates a new account with a zero balance.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetAccount retrieves an account by its ID.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// TopUp credits the account and appends a TOPUP (or BONUS) entry.
	TopUp(ctx context.Context, accountID string, amount int64, entryType models.LedgerEntryType, source string) (*models.LedgerEntry, error)

	// Spend debits the account and appends a PAYMENT entry. Returns an
	// InsufficientBalanceError when the balance cannot cover the amount, and
	// ErrAccountBlocked/ErrAccountInactive for accounts that must not spend.
	Spend(ctx context.Context, accountID string, amount int64, reason, relatedOrderID string) (*models.LedgerEntry, error)

	// Refund credits the account back and appends a REFUND entry. Used when a
	// balance-paid order fails after the debit.
	Refund(ctx context.Context, accountID string, amount int64, relatedOrderID string) (*models.LedgerEntry, error)

	// Transfer moves amount between two accounts as one atomic unit,
	// appending a TRANSFER_OUT entry on the source and a TRANSFER_IN entry on
	// the destination. Partial transfers are impossible: both writes commit
	// or neither does.
	Transfer(ctx context.Context, sourceID, destID string, amount int64) (*models.LedgerEntry, *models.LedgerEntry, error)

	// SetBlocked flips the account's blocked state (lost wristbands).
	SetBlocked(ctx context.Context, accountID string, blocked bool) error
}

// LedgerReader defines the interface for reading ledger data.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent entries for an account,
	// newest first.
	ListLedgerEntries(ctx context.Context, accountID string, limit int32) ([]models.LedgerEntry, error)
}
