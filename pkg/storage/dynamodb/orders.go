package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage"
)

const buyerOrdersGSI = "buyer_id-created_at-index"

// GetOrder retrieves an order from DynamoDB by its ID.
func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Orders),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get order from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrOrderNotFound
	}

	var order models.Order
	if err := attributevalue.UnmarshalMap(result.Item, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	return &order, nil
}

// ListOrdersByBuyerID retrieves all orders placed by a buyer, newest first.
func (s *Store) ListOrdersByBuyerID(ctx context.Context, buyerID string) ([]models.Order, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Orders),
		IndexName:              aws.String(buyerOrdersGSI),
		KeyConditionExpression: aws.String("buyer_id = :buyer_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":buyer_id": &types.AttributeValueMemberS{Value: buyerID},
		},
		ScanIndexForward: aws.Bool(false),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by buyer: %w", err)
	}

	var orders []models.Order
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
	}

	return orders, nil
}
