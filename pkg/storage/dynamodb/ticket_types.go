package dynamodb

import (
	"context"
	"errors"
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

// CreateTicketType creates a new ticket type record with zeroed counters.
func (s *Store) CreateTicketType(ctx context.Context, tt *models.TicketType) (*models.TicketType, error) {
	if tt.Id == "" {
		tt.Id = uuid.New().String()
	}
	now := time.Now().UTC()
	tt.Sold = 0
	tt.Reserved = 0
	tt.Version = 1
	tt.CreatedAt = now
	tt.UpdatedAt = now

	ttAV, err := attributevalue.MarshalMap(tt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket type: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.TicketTypes),
		Item:                ttAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return nil, fmt.Errorf("ticket type %s already exists", tt.Id)
		}
		return nil, fmt.Errorf("failed to create ticket type in DynamoDB: %w", err)
	}

	return tt, nil
}

// GetTicketType retrieves a ticket type from DynamoDB by its ID.
func (s *Store) GetTicketType(ctx context.Context, ticketTypeID string) (*models.TicketType, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": ticketTypeID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket type ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.TicketTypes),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket type from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrTicketTypeNotFound
	}

	var tt models.TicketType
	if err := attributevalue.UnmarshalMap(result.Item, &tt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket type: %w", err)
	}

	return &tt, nil
}

// validateHold checks a hold request against a counter snapshot. The returned
// errors are terminal for the call; only availability is re-checked on retry.
func validateHold(tt *models.TicketType, qty int64, now time.Time) error {
	if qty <= 0 {
		return storage.ErrInvalidQuantity
	}
	if tt.MaxPerOrder > 0 && qty > tt.MaxPerOrder {
		return storage.ErrExceedsMaxPerOrder
	}
	if now.Before(tt.SaleStart) {
		return storage.ErrSaleNotStarted
	}
	if now.After(tt.SaleEnd) {
		return storage.ErrSaleEnded
	}
	if tt.Available() < qty {
		return &storage.OutOfStockError{
			TicketTypeId: tt.Id,
			Requested:    qty,
			Available:    tt.Available(),
		}
	}
	return nil
}

// counterUpdate builds the conditional wallet-style counter movement for one
// ticket type, guarded by the version read in the current attempt. Condition
// expressions cannot do arithmetic, so sold+reserved<=total is validated in
// code against the snapshot and the version CAS guarantees the snapshot still
// holds when the write lands.
func (s *Store) counterUpdate(ticketTypeID, updateExpr string, qty, version int64) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.TicketTypes),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: ticketTypeID},
			},
			UpdateExpression:    aws.String(updateExpr),
			ConditionExpression: aws.String("version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":qty":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", qty)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
			},
		},
	}
}

const (
	reserveExpr = "SET reserved = reserved + :qty, version = version + :inc, updated_at = :now"
	releaseExpr = "SET reserved = reserved - :qty, version = version + :inc, updated_at = :now"
	commitExpr  = "SET reserved = reserved - :qty, sold = sold + :qty, version = version + :inc, updated_at = :now"
)

// TryReserve atomically moves qty units of a single ticket type into the
// reserved counter.
func (s *Store) TryReserve(ctx context.Context, ticketTypeID string, qty int64) error {
	return s.withRetry(ctx, func(ctx context.Context) error {
		tt, err := s.GetTicketType(ctx, ticketTypeID)
		if err != nil {
			return err
		}
		if err := validateHold(tt, qty, time.Now().UTC()); err != nil {
			return err
		}
		return s.applyCounter(ctx, ticketTypeID, reserveExpr, qty, tt.Version)
	})
}

// Release atomically returns qty units from reserved back to available.
func (s *Store) Release(ctx context.Context, ticketTypeID string, qty int64) error {
	if qty <= 0 {
		return storage.ErrInvalidQuantity
	}
	return s.withRetry(ctx, func(ctx context.Context) error {
		tt, err := s.GetTicketType(ctx, ticketTypeID)
		if err != nil {
			return err
		}
		if tt.Reserved < qty {
			return fmt.Errorf("release of %d exceeds reserved count %d for ticket type %s", qty, tt.Reserved, ticketTypeID)
		}
		return s.applyCounter(ctx, ticketTypeID, releaseExpr, qty, tt.Version)
	})
}

// CommitSale atomically moves qty units from reserved to sold.
func (s *Store) CommitSale(ctx context.Context, ticketTypeID string, qty int64) error {
	if qty <= 0 {
		return storage.ErrInvalidQuantity
	}
	return s.withRetry(ctx, func(ctx context.Context) error {
		tt, err := s.GetTicketType(ctx, ticketTypeID)
		if err != nil {
			return err
		}
		if tt.Reserved < qty {
			return fmt.Errorf("commit of %d exceeds reserved count %d for ticket type %s", qty, tt.Reserved, ticketTypeID)
		}
		return s.applyCounter(ctx, ticketTypeID, commitExpr, qty, tt.Version)
	})
}

// applyCounter executes a single counter movement as a conditional update.
func (s *Store) applyCounter(ctx context.Context, ticketTypeID, updateExpr string, qty, version int64) error {
	item := s.counterUpdate(ticketTypeID, updateExpr, qty, version)

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 item.Update.TableName,
		Key:                       item.Update.Key,
		UpdateExpression:          item.Update.UpdateExpression,
		ConditionExpression:       item.Update.ConditionExpression,
		ExpressionAttributeValues: item.Update.ExpressionAttributeValues,
	})
	if err != nil {
		if isConditionalCancel(err) {
			return fmt.Errorf("counter movement on %s: %w", ticketTypeID, errLockConflict)
		}
		return fmt.Errorf("failed to update ticket type counters: %w", err)
	}
	return nil
}
