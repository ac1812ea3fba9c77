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
)

const lapsedOrdersGSI = "status-reserved_until-index"

// GetLapsedOrders retrieves orders still RESERVED whose hold deadline passed
// more than gracePeriod ago.
func (s *Store) GetLapsedOrders(ctx context.Context, gracePeriod time.Duration) ([]models.Order, error) {
	cutoff := time.Now().UTC().Add(-gracePeriod)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Orders),
		IndexName:              aws.String(lapsedOrdersGSI),
		KeyConditionExpression: aws.String("#status = :status AND reserved_until <= :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.ORDER_RESERVED)},
			// Whole-second cutoff, matching the fixed-width format
			// reserved_until is stored in.
			":cutoff": &types.AttributeValueMemberS{Value: cutoff.Truncate(time.Second).Format(time.RFC3339)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for lapsed orders: %w", err)
	}

	var orders []models.Order
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lapsed orders: %w", err)
	}

	return orders, nil
}

// ExpireOrder transitions a lapsed order to EXPIRED and releases its holds.
// Safe against racing settlement: the transition is compare-and-swap on the
// RESERVED status and the hold deadline, never a blind write. Returns false
// when another actor already moved the order on, or when the hold has not
// lapsed yet.
func (s *Store) ExpireOrder(ctx context.Context, orderID string) (bool, error) {
	var expired bool

	err := s.withRetry(ctx, func(ctx context.Context) error {
		expired = false

		order, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != models.ORDER_RESERVED {
			// Settlement or cancellation won the race. Nothing to reclaim.
			return nil
		}
		if time.Now().UTC().Before(order.ReservedUntil) {
			// Delivered early; the sweeper picks it up after the deadline.
			return nil
		}

		if err := s.releaseTransition(ctx, order, models.ORDER_EXPIRED, true); err != nil {
			return err
		}
		expired = true
		return nil
	})

	return expired, err
}
