package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/festhq/gatekeeper/pkg/config"
	"github.com/festhq/gatekeeper/pkg/credential"
	"github.com/festhq/gatekeeper/pkg/scheduler"
	"github.com/festhq/gatekeeper/pkg/storage"
	dydbstore "github.com/festhq/gatekeeper/pkg/storage/dynamodb"
)

var store storage.SweeperStore
var expiryScheduler scheduler.Scheduler

// Orders are only picked up once their hold deadline is this far in the
// past, giving the delay queue first shot at every expiry.
const lapsedGracePeriod = 30 * time.Second

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	if cfg.ExpiryQueueURL == "" {
		log.Fatal("SQS_EXPIRY_QUEUE_URL environment variable not set")
	}
	expiryScheduler = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.ExpiryQueueURL)

	store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), nil,
		credential.NewSigner([]byte(cfg.CredentialSecret)), dydbstore.Tables{
			Events:      cfg.EventsTable,
			TicketTypes: cfg.TicketTypesTable,
			Orders:      cfg.OrdersTable,
			Tickets:     cfg.TicketsTable,
			Accounts:    cfg.AccountsTable,
			Ledger:      cfg.LedgerTable,
		})
}

// HandleRequest is triggered by an EventBridge Schedule. It re-enqueues
// lapsed orders whose delayed message was lost rather than expiring them
// inline, so the expiry consumer stays the single writer for that path.
func HandleRequest(ctx context.Context) error {
	lapsed, err := store.GetLapsedOrders(ctx, lapsedGracePeriod)
	if err != nil {
		log.Printf("ERROR: failed to get lapsed orders: %v", err)
		return err
	}

	if len(lapsed) == 0 {
		log.Println("No lapsed orders found.")
		return nil
	}

	log.Printf("Found %d lapsed orders. Re-enqueuing them...", len(lapsed))

	for _, order := range lapsed {
		if err := expiryScheduler.ScheduleExpiry(ctx, order.Id, 0); err != nil {
			log.Printf("ERROR: failed to re-enqueue order %s: %v", order.Id, err)
			// Continue to the next order, don't let one failure stop the batch.
			continue
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
