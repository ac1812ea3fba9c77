package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/google/uuid"
)

// SettleOrder applies the provider's outcome to an order exactly once.
//
// The idempotency key is (orderID, providerRef). The success path pairs the
// RESERVED|PENDING -> PAID transition with the reserved->sold counter
// movement for every item (and, for balance-paid orders, the wallet debit
// plus its ledger entry) in a single TransactWriteItems call. An order can
// therefore never be PAID while its units are merely reserved. Tickets are
// minted afterwards with deterministic IDs, so a crash between the
// transaction and the mint is healed by the gateway's retry.
func (s *Store) SettleOrder(ctx context.Context, orderID, providerRef string, outcome models.SettlementOutcome) (*storage.SettleResult, error) {
	if providerRef == "" {
		return nil, fmt.Errorf("provider reference is required")
	}

	var result *storage.SettleResult
	err := s.withRetry(ctx, func(ctx context.Context) error {
		order, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if order.Status.Terminal() {
			if order.ProviderRef != providerRef {
				return storage.ErrConflictingSettlement
			}
			// Duplicate notification. Re-run the idempotent mint so a crash
			// after the paid transition still converges on a full ticket set.
			minted := 0
			if order.Status == models.ORDER_PAID {
				if minted, err = s.mintTickets(ctx, order); err != nil {
					return err
				}
			}
			result = &storage.SettleResult{Order: order, AlreadyProcessed: true, TicketsMinted: minted}
			return nil
		}

		switch outcome {
		case models.OUTCOME_SUCCESS:
			if err := s.settleSuccess(ctx, order, providerRef); err != nil {
				return err
			}
			order.Status = models.ORDER_PAID
			order.ProviderRef = providerRef
			minted, err := s.mintTickets(ctx, order)
			if err != nil {
				return err
			}
			result = &storage.SettleResult{Order: order, TicketsMinted: minted}
			return nil

		case models.OUTCOME_FAILURE:
			if err := s.settleFailure(ctx, order, providerRef); err != nil {
				return err
			}
			order.Status = models.ORDER_FAILED
			order.ProviderRef = providerRef
			result = &storage.SettleResult{Order: order}
			return nil

		default:
			return fmt.Errorf("unknown settlement outcome %q", outcome)
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settleSuccess submits the atomic paid transition: order status, inventory
// commit, and (for balance orders) the wallet debit with its ledger entry.
func (s *Store) settleSuccess(ctx context.Context, order *models.Order, providerRef string) error {
	now := time.Now().UTC()

	items := make([]types.TransactWriteItem, 0, len(order.Items)+3)
	for _, item := range order.Items {
		tt, err := s.GetTicketType(ctx, item.TicketTypeId)
		if err != nil {
			return err
		}
		if tt.Reserved < item.Quantity {
			return fmt.Errorf("commit of %d exceeds reserved count %d for ticket type %s", item.Quantity, tt.Reserved, item.TicketTypeId)
		}
		items = append(items, s.counterUpdate(item.TicketTypeId, commitExpr, item.Quantity, tt.Version))
	}

	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                aws.String(s.Tables.Orders),
			Key:                      map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: order.Id}},
			UpdateExpression:         aws.String("SET #status = :paid_status, provider_ref = :ref, updated_at = :now"),
			ConditionExpression:      aws.String("#status = :reserved_status OR #status = :pending_status"),
			ExpressionAttributeNames: map[string]string{"#status": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":paid_status":     &types.AttributeValueMemberS{Value: string(models.ORDER_PAID)},
				":reserved_status": &types.AttributeValueMemberS{Value: string(models.ORDER_RESERVED)},
				":pending_status":  &types.AttributeValueMemberS{Value: string(models.ORDER_PENDING)},
				":ref":             &types.AttributeValueMemberS{Value: providerRef},
				":now":             &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
			},
		},
	})

	if order.Method == models.PAY_BALANCE {
		account, err := s.GetAccount(ctx, order.AccountId)
		if err != nil {
			return err
		}
		// Ownership is checked at reservation time too; re-checking here keeps
		// a tampered order from ever debiting a wallet the buyer does not own.
		if account.OwnerId != order.BuyerId {
			return fmt.Errorf("account %s does not belong to the order buyer: %w", account.Id, storage.ErrAccountNotFound)
		}
		if err := validateDebit(account, order.Total); err != nil {
			return err
		}

		entry := &models.LedgerEntry{
			EntryId:        uuid.New().String(),
			AccountId:      account.Id,
			Type:           models.ENTRY_PAYMENT,
			Amount:         -order.Total,
			BalanceAfter:   account.Balance - order.Total,
			RelatedOrderId: order.Id,
			Description:    fmt.Sprintf("Payment for order %s", order.Id),
			CreatedAt:      now,
		}
		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal payment ledger entry: %w", err)
		}

		items = append(items,
			s.accountDebit(account, order.Total, now),
			types.TransactWriteItem{
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		)
	}

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if isConditionalCancel(err) {
			return fmt.Errorf("paid transition for order %s: %w", order.Id, errLockConflict)
		}
		return fmt.Errorf("failed to execute settlement transaction: %w", err)
	}

	return nil
}

// settleFailure moves the order to FAILED and releases its holds, recording
// the provider reference for idempotent replay detection.
func (s *Store) settleFailure(ctx context.Context, order *models.Order, providerRef string) error {
	now := time.Now().UTC()

	items := make([]types.TransactWriteItem, 0, len(order.Items)+1)
	for _, item := range order.Items {
		tt, err := s.GetTicketType(ctx, item.TicketTypeId)
		if err != nil {
			return err
		}
		if tt.Reserved < item.Quantity {
			return fmt.Errorf("release of %d exceeds reserved count %d for ticket type %s", item.Quantity, tt.Reserved, item.TicketTypeId)
		}
		items = append(items, s.counterUpdate(item.TicketTypeId, releaseExpr, item.Quantity, tt.Version))
	}

	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                aws.String(s.Tables.Orders),
			Key:                      map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: order.Id}},
			UpdateExpression:         aws.String("SET #status = :failed_status, provider_ref = :ref, updated_at = :now"),
			ConditionExpression:      aws.String("#status = :reserved_status OR #status = :pending_status"),
			ExpressionAttributeNames: map[string]string{"#status": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":failed_status":   &types.AttributeValueMemberS{Value: string(models.ORDER_FAILED)},
				":reserved_status": &types.AttributeValueMemberS{Value: string(models.ORDER_RESERVED)},
				":pending_status":  &types.AttributeValueMemberS{Value: string(models.ORDER_PENDING)},
				":ref":             &types.AttributeValueMemberS{Value: providerRef},
				":now":             &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
			},
		},
	})

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if isConditionalCancel(err) {
			return fmt.Errorf("failed transition for order %s: %w", order.Id, errLockConflict)
		}
		return fmt.Errorf("failed to execute failure transaction: %w", err)
	}

	return nil
}
