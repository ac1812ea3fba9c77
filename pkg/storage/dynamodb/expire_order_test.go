package dynamodb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/festhq/gatekeeper/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetLapsedOrders(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		lapsed := []models.Order{*reservedOrder()}
		var lapsedAV []map[string]types.AttributeValue
		for _, order := range lapsed {
			av, err := attributevalue.MarshalMap(order)
			assert.NoError(t, err)
			lapsedAV = append(lapsedAV, av)
		}
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			// The cutoff must be whole-second so the string comparison on the
			// range key cannot mis-sort against fractional timestamps.
			cutoff, ok := input.ExpressionAttributeValues[":cutoff"].(*types.AttributeValueMemberS)
			return ok && !strings.Contains(cutoff.Value, ".")
		})).Return(&dynamodb.QueryOutput{Items: lapsedAV}, nil)

		result, err := store.GetLapsedOrders(context.Background(), 30*time.Second)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "order-1", result[0].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := store.GetLapsedOrders(context.Background(), 30*time.Second)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query for lapsed orders")
	})
}

func TestExpireOrder(t *testing.T) {
	t.Run("Expires Lapsed Order", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables, MaxAttempts: 2}

		order := reservedOrder()
		order.ReservedUntil = time.Now().UTC().Add(-time.Minute)
		orderAV, _ := attributevalue.MarshalMap(order)
		ttAV, _ := attributevalue.MarshalMap(onSaleTicketType())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: orderAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: ttAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			update := input.TransactItems[len(input.TransactItems)-1].Update
			cutoff, ok := update.ExpressionAttributeValues[":cutoff"].(*types.AttributeValueMemberS)
			return ok && !strings.Contains(cutoff.Value, ".")
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		expired, err := store.ExpireOrder(context.Background(), "order-1")

		assert.NoError(t, err)
		assert.True(t, expired)
		mockClient.AssertExpectations(t)
	})

	t.Run("No-Op When Already Settled", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables, MaxAttempts: 2}

		order := reservedOrder()
		order.Status = models.ORDER_PAID
		orderAV, _ := attributevalue.MarshalMap(order)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: orderAV}, nil)

		expired, err := store.ExpireOrder(context.Background(), "order-1")

		assert.NoError(t, err)
		assert.False(t, expired)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("No-Op When Hold Still Live", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables, MaxAttempts: 2}

		orderAV, _ := attributevalue.MarshalMap(reservedOrder())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: orderAV}, nil)

		expired, err := store.ExpireOrder(context.Background(), "order-1")

		assert.NoError(t, err)
		assert.False(t, expired)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Lost Race Resolves On Retry", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables, MaxAttempts: 2}

		lapsed := reservedOrder()
		lapsed.ReservedUntil = time.Now().UTC().Add(-time.Minute)
		lapsedAV, _ := attributevalue.MarshalMap(lapsed)
		ttAV, _ := attributevalue.MarshalMap(onSaleTicketType())

		settled := reservedOrder()
		settled.Status = models.ORDER_PAID
		settledAV, _ := attributevalue.MarshalMap(settled)

		// First attempt loses the conditional race against settlement; the
		// re-read finds the order PAID and the call converges on a no-op.
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: lapsedAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: ttAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{{Code: aws.String("ConditionalCheckFailed")}},
		})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: settledAV}, nil)

		expired, err := store.ExpireOrder(context.Background(), "order-1")

		assert.NoError(t, err)
		assert.False(t, expired)
		mockClient.AssertExpectations(t)
	})
}
