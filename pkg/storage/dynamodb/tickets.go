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

// ticketNamespace seeds the deterministic (v5) ticket IDs. Minting the same
// (order, ticket type, unit index) twice always derives the same ID, which is
// what makes settlement retries unable to double-mint.
var ticketNamespace = uuid.MustParse("6f1c24c8-9b3e-4ad2-9a6f-6d1a2f6b0c11")

// TicketID derives the deterministic ID for one purchased unit.
func TicketID(orderID, ticketTypeID string, unitIndex int) string {
	name := fmt.Sprintf("%s:%s:%d", orderID, ticketTypeID, unitIndex)
	return uuid.NewSHA1(ticketNamespace, []byte(name)).String()
}

// mintTickets issues one ticket per purchased unit of a paid order. Each put
// is guarded by attribute_not_exists, so units minted by an earlier attempt
// are skipped and the call converges on exactly one ticket per unit. Returns
// how many tickets this call created.
func (s *Store) mintTickets(ctx context.Context, order *models.Order) (int, error) {
	now := time.Now().UTC()
	minted := 0

	for _, item := range order.Items {
		for unit := 0; unit < int(item.Quantity); unit++ {
			ticketID := TicketID(order.Id, item.TicketTypeId, unit)

			cred, err := s.Signer.Mint(ticketID, order.EventId, order.BuyerId, now)
			if err != nil {
				return minted, fmt.Errorf("failed to mint credential for ticket %s: %w", ticketID, err)
			}

			ticket := &models.Ticket{
				Id:           ticketID,
				OrderId:      order.Id,
				TicketTypeId: item.TicketTypeId,
				EventId:      order.EventId,
				OwnerId:      order.BuyerId,
				UnitIndex:    unit,
				Credential:   cred,
				Status:       models.TICKET_ACTIVE,
				CreatedAt:    now,
			}
			ticketAV, err := attributevalue.MarshalMap(ticket)
			if err != nil {
				return minted, fmt.Errorf("failed to marshal ticket: %w", err)
			}

			_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
				TableName:           aws.String(s.Tables.Tickets),
				Item:                ticketAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			})
			if err != nil {
				var condFailed *types.ConditionalCheckFailedException
				if errors.As(err, &condFailed) {
					continue // already minted by an earlier attempt
				}
				return minted, fmt.Errorf("failed to put ticket %s: %w", ticketID, err)
			}
			minted++
		}
	}

	return minted, nil
}

// GetTicket retrieves a ticket from DynamoDB by its ID.
func (s *Store) GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": ticketID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Tickets),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrTicketNotFound
	}

	var ticket models.Ticket
	if err := attributevalue.UnmarshalMap(result.Item, &ticket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket: %w", err)
	}

	return &ticket, nil
}

const orderTicketsGSI = "order_id-unit_index-index"

// ListTicketsByOrderID retrieves every ticket minted for an order.
func (s *Store) ListTicketsByOrderID(ctx context.Context, orderID string) ([]models.Ticket, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Tickets),
		IndexName:              aws.String(orderTicketsGSI),
		KeyConditionExpression: aws.String("order_id = :order_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets by order: %w", err)
	}

	var tickets []models.Ticket
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &tickets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tickets: %w", err)
	}

	return tickets, nil
}

// RedeemTicket performs the one-way ACTIVE -> USED transition at the gate.
// A ticket that exists but belongs to a different event is reported exactly
// like a missing one, so scanning at the wrong gate reveals nothing.
func (s *Store) RedeemTicket(ctx context.Context, ticketID, eventID, gate string) (*models.Ticket, error) {
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, storage.ErrTicketNotFound) {
			return nil, &storage.RedemptionError{Reason: storage.RejectNotRedeemable}
		}
		return nil, err
	}

	if ticket.EventId != eventID {
		return nil, &storage.RedemptionError{Reason: storage.RejectNotRedeemable}
	}

	switch ticket.Status {
	case models.TICKET_USED:
		return nil, &storage.RedemptionError{Reason: storage.RejectAlreadyUsed}
	case models.TICKET_CANCELLED:
		return nil, &storage.RedemptionError{Reason: storage.RejectCancelled}
	case models.TICKET_TRANSFERRED:
		return nil, &storage.RedemptionError{Reason: storage.RejectTransferred}
	}

	now := time.Now().UTC()
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(s.Tables.Tickets),
		Key:                      map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: ticketID}},
		UpdateExpression:         aws.String("SET #status = :used_status, redeemed_at = :now, gate = :gate"),
		ConditionExpression:      aws.String("#status = :active_status"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":used_status":   &types.AttributeValueMemberS{Value: string(models.TICKET_USED)},
			":active_status": &types.AttributeValueMemberS{Value: string(models.TICKET_ACTIVE)},
			":now":           &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
			":gate":          &types.AttributeValueMemberS{Value: gate},
		},
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			// Lost a race with another scan of the same credential.
			return nil, &storage.RedemptionError{Reason: storage.RejectAlreadyUsed}
		}
		return nil, fmt.Errorf("failed to redeem ticket %s: %w", ticketID, err)
	}

	ticket.Status = models.TICKET_USED
	ticket.Gate = gate
	ticket.RedeemedAt = &now
	return ticket, nil
}
