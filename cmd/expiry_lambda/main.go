package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/festhq/gatekeeper/pkg/config"
	"github.com/festhq/gatekeeper/pkg/credential"
	"github.com/festhq/gatekeeper/pkg/scheduler"
	"github.com/festhq/gatekeeper/pkg/storage"
	dydbstore "github.com/festhq/gatekeeper/pkg/storage/dynamodb"
)

var store storage.SweeperStore

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	// The expiry consumer never schedules new messages or mints tickets.
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

// HandleRequest processes delayed expiry messages. Orders already settled or
// cancelled by the time the message fires are skipped without error.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		var msg scheduler.ExpiryMessage
		if err := json.Unmarshal([]byte(message.Body), &msg); err != nil {
			log.Printf("ERROR: failed to unmarshal expiry message %s: %v", message.MessageId, err)
			// Returning an error makes SQS retry; a malformed body will never
			// get better, so drop it.
			continue
		}

		expired, err := store.ExpireOrder(ctx, msg.OrderId)
		if err != nil {
			log.Printf("ERROR: failed to expire order %s: %v", msg.OrderId, err)
			return err
		}
		if expired {
			log.Printf("Expired order %s", msg.OrderId)
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
