package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// ExpiryMessage is the body of a scheduled expiry check.
type ExpiryMessage struct {
	OrderId string `json:"order_id"`
}

// SQSAPI is the subset of the SQS client the scheduler uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS delayed
// messages. SQS caps DelaySeconds at 15 minutes, which comfortably covers the
// default 10 minute hold; the cron sweeper backstops anything longer or lost.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

const maxSQSDelay = 900 * time.Second

// ScheduleExpiry sends the order ID to the expiry queue with the hold
// duration as the message delay.
func (s *SQSScheduler) ScheduleExpiry(ctx context.Context, orderID string, delay time.Duration) error {
	body, err := json.Marshal(ExpiryMessage{OrderId: orderID})
	if err != nil {
		return fmt.Errorf("failed to marshal expiry message: %w", err)
	}

	if delay < 0 {
		delay = 0
	}
	if delay > maxSQSDelay {
		delay = maxSQSDelay
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
