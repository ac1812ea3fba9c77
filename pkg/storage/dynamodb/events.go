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

// CreateEvent creates a new event record in DynamoDB.
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.Id == "" {
		event.Id = uuid.New().String()
	}
	event.CreatedAt = time.Now().UTC()

	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Events),
		Item:                eventAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return nil, fmt.Errorf("event %s already exists", event.Id)
		}
		return nil, fmt.Errorf("failed to create event in DynamoDB: %w", err)
	}

	return event, nil
}

// GetEvent retrieves an event from DynamoDB by its ID.
func (s *Store) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Events),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get event from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrEventNotFound
	}

	var event models.Event
	if err := attributevalue.UnmarshalMap(result.Item, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}
