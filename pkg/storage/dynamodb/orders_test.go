package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/festhq/gatekeeper/pkg/storage"
	"github.com/festhq/gatekeeper/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		orderAV, _ := attributevalue.MarshalMap(reservedOrder())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: orderAV}, nil)

		order, err := store.GetOrder(context.Background(), "order-1")

		assert.NoError(t, err)
		assert.Equal(t, "order-1", order.Id)
		assert.Equal(t, "buyer-1", order.BuyerId)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetOrder(context.Background(), "order-1")

		assert.ErrorIs(t, err, storage.ErrOrderNotFound)
	})
}

func TestListOrdersByBuyerID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		orderAV, _ := attributevalue.MarshalMap(reservedOrder())
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{orderAV},
		}, nil)

		orders, err := store.ListOrdersByBuyerID(context.Background(), "buyer-1")

		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, "order-1", orders[0].Id)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := store.ListOrdersByBuyerID(context.Background(), "buyer-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query orders by buyer")
	})
}
