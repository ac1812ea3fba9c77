package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/festhq/gatekeeper/pkg/credential"
	"github.com/festhq/gatekeeper/pkg/pricing"
	"github.com/festhq/gatekeeper/pkg/scheduler"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses. Mocks for
// tests are generated from this interface.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables names the DynamoDB tables backing the engine.
type Tables struct {
	Events      string
	TicketTypes string
	Orders      string
	Tickets     string
	Accounts    string
	Ledger      string
}

// Store implements the Storage interface using AWS DynamoDB. Every mutating
// operation is a conditional write (or TransactWriteItems) guarded by either a
// version attribute or an expected current status; contended operations are
// retried within a bounded budget before surfacing ErrConflict.
type Store struct {
	Client    DynamoDBAPI
	Scheduler scheduler.Scheduler
	Signer    *credential.Signer
	Tables    Tables

	// HoldDuration is how long a reservation holds inventory before it
	// becomes eligible for sweeping.
	HoldDuration time.Duration

	// Pricer computes subtotal, platform fee and total for a basket.
	Pricer pricing.Calculator

	// MaxAttempts bounds the optimistic-lock retry loop per operation.
	MaxAttempts int
}

// New creates a Store with default hold duration, fee and retry budget.
func New(client DynamoDBAPI, sched scheduler.Scheduler, signer *credential.Signer, tables Tables) *Store {
	return &Store{
		Client:       client,
		Scheduler:    sched,
		Signer:       signer,
		Tables:       tables,
		HoldDuration: 10 * time.Minute,
		Pricer:       pricing.NewCalculator(pricing.DefaultFeePercent),
		MaxAttempts:  4,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func (s *Store) maxAttempts() int {
	if s.MaxAttempts <= 0 {
		return 4
	}
	return s.MaxAttempts
}
