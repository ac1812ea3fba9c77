package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/google/uuid"
)

// ReserveOrder holds inventory for every basket line and creates the order in
// one TransactWriteItems call. Because the counter movements and the order
// put ride in a single transaction, a failure on any line applies nothing:
// the all-or-nothing basket semantics come from the transaction itself rather
// than compensating rollbacks.
func (s *Store) ReserveOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if len(order.Items) == 0 {
		return nil, storage.ErrInvalidQuantity
	}
	seen := make(map[string]bool, len(order.Items))
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return nil, storage.ErrInvalidQuantity
		}
		if seen[item.TicketTypeId] {
			return nil, fmt.Errorf("duplicate basket line for ticket type %s", item.TicketTypeId)
		}
		seen[item.TicketTypeId] = true
	}

	event, err := s.GetEvent(ctx, order.EventId)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if !event.Published {
		return nil, storage.ErrEventNotOnSale
	}
	if now.After(event.StartsAt) && !event.AllowLateEntry {
		return nil, storage.ErrEventNotOnSale
	}

	if order.Method == models.PAY_BALANCE {
		account, err := s.GetAccount(ctx, order.AccountId)
		if err != nil {
			return nil, err
		}
		// The wallet named on a balance order must belong to the buyer who
		// will be debited at settlement. Foreign wallets look exactly like
		// missing ones.
		if account.OwnerId != order.BuyerId {
			return nil, storage.ErrAccountNotFound
		}
	}

	// The ID is fixed before the retry loop so a retried attempt can never
	// create a second order.
	order.Id = uuid.New().String()
	order.Status = models.ORDER_RESERVED
	if order.Method == "" {
		order.Method = models.PAY_GATEWAY
	}

	err = s.withRetry(ctx, func(ctx context.Context) error {
		return s.reserveAttempt(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	// Enqueue the expiry check. Losing the message is tolerable: the cron
	// sweeper reclaims anything the queue misses.
	if s.Scheduler != nil {
		delay := time.Until(order.ReservedUntil)
		if err := s.Scheduler.ScheduleExpiry(ctx, order.Id, delay); err != nil {
			slog.Error("order reserved but expiry enqueue failed", "order_id", order.Id, "error", err)
		}
	}

	return order, nil
}

// reserveAttempt performs one optimistic attempt: snapshot every ticket type,
// validate, price, and submit the combined transaction.
func (s *Store) reserveAttempt(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()

	snapshots := make(map[string]*models.TicketType, len(order.Items))
	for _, item := range order.Items {
		tt, err := s.GetTicketType(ctx, item.TicketTypeId)
		if err != nil {
			return err
		}
		if tt.EventId != order.EventId {
			return storage.ErrTicketTypeNotFound
		}
		if err := validateHold(tt, item.Quantity, now); err != nil {
			return err
		}
		snapshots[item.TicketTypeId] = tt
	}

	order.Subtotal, order.Fees, order.Total = s.Pricer.Quote(order.Items, func(id string) int64 {
		return snapshots[id].Price
	})
	// reserved_until is the sweeper GSI range key and is compared as a
	// string: whole-second precision keeps every stored value the same width,
	// so the lexicographic order matches the chronological one.
	order.ReservedUntil = now.Add(s.HoldDuration).Truncate(time.Second)
	order.CreatedAt = now
	order.UpdatedAt = now

	orderAV, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	items := make([]types.TransactWriteItem, 0, len(order.Items)+1)
	for _, item := range order.Items {
		items = append(items, s.counterUpdate(item.TicketTypeId, reserveExpr, item.Quantity, snapshots[item.TicketTypeId].Version))
	}
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.Tables.Orders),
			Item:                orderAV,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	})

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var txCancelled *types.TransactionCanceledException
		if errors.As(err, &txCancelled) {
			// The order put is the final item; a conditional failure there
			// means the ID collided, which is not a contention retry.
			reasons := txCancelled.CancellationReasons
			if len(reasons) == len(items) {
				last := reasons[len(reasons)-1]
				if last.Code != nil && *last.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("order %s already exists", order.Id)
				}
			}
		}
		if isConditionalCancel(err) {
			return fmt.Errorf("basket reservation: %w", errLockConflict)
		}
		return fmt.Errorf("failed to execute reservation transaction: %w", err)
	}

	return nil
}
