package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// CancelOrder cancels a buyer's reserved order and releases its holds in one
// atomic unit. The status transition is conditional on the order still being
// RESERVED, so a cancellation racing settlement or the sweeper loses cleanly.
func (s *Store) CancelOrder(ctx context.Context, orderID, buyerID string) error {
	return s.withRetry(ctx, func(ctx context.Context) error {
		order, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.BuyerId != buyerID {
			return storage.ErrOrderNotFound
		}
		if order.Status != models.ORDER_RESERVED {
			return storage.ErrInvalidTransition
		}
		return s.releaseTransition(ctx, order, models.ORDER_CANCELLED, false)
	})
}

// releaseTransition moves a RESERVED order to a terminal released state
// (CANCELLED, EXPIRED or FAILED) and returns every held unit to availability.
// When pastDeadlineOnly is set the transition additionally requires the hold
// deadline to have passed, so a racing clock cannot expire a live hold.
func (s *Store) releaseTransition(ctx context.Context, order *models.Order, to models.OrderStatus, pastDeadlineOnly bool) error {
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

	condition := "#status = :reserved_status"
	values := map[string]types.AttributeValue{
		":new_status":      &types.AttributeValueMemberS{Value: string(to)},
		":reserved_status": &types.AttributeValueMemberS{Value: string(models.ORDER_RESERVED)},
		":now":             &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
	}
	if pastDeadlineOnly {
		// Whole-second cutoff, matching the fixed-width format reserved_until
		// is stored in.
		condition += " AND reserved_until <= :cutoff"
		values[":cutoff"] = &types.AttributeValueMemberS{Value: now.Truncate(time.Second).Format(time.RFC3339)}
	}

	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(s.Tables.Orders),
			Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: order.Id}},
			UpdateExpression:          aws.String("SET #status = :new_status, updated_at = :now"),
			ConditionExpression:       aws.String(condition),
			ExpressionAttributeNames:  map[string]string{"#status": "status"},
			ExpressionAttributeValues: values,
		},
	})

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if isConditionalCancel(err) {
			return fmt.Errorf("release transition for order %s: %w", order.Id, errLockConflict)
		}
		return fmt.Errorf("failed to execute release transaction: %w", err)
	}

	return nil
}
