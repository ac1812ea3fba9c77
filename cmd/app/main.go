package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/festhq/gatekeeper/pkg/config"
	"github.com/festhq/gatekeeper/pkg/credential"
	"github.com/festhq/gatekeeper/pkg/handlers"
	"github.com/festhq/gatekeeper/pkg/pricing"
	"github.com/festhq/gatekeeper/pkg/scheduler"
	dydbstore "github.com/festhq/gatekeeper/pkg/storage/dynamodb"
	"github.com/festhq/gatekeeper/pkg/sweeper"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)

	// The expiry queue is optional for local runs; without it the in-process
	// sweeper is the only expiry path.
	var sched scheduler.Scheduler
	if cfg.ExpiryQueueURL != "" {
		sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.ExpiryQueueURL)
	}

	signer := credential.NewSigner([]byte(cfg.CredentialSecret))

	store := dydbstore.New(dbClient, sched, signer, dydbstore.Tables{
		Events:      cfg.EventsTable,
		TicketTypes: cfg.TicketTypesTable,
		Orders:      cfg.OrdersTable,
		Tickets:     cfg.TicketsTable,
		Accounts:    cfg.AccountsTable,
		Ledger:      cfg.LedgerTable,
	})
	store.HoldDuration = cfg.HoldDuration
	store.Pricer = pricing.NewCalculator(cfg.FeePercent)
	store.MaxAttempts = cfg.RetryBudget

	router := handlers.NewRouter(handlers.Config{
		Store:     store,
		Verifier:  signer,
		JWTSecret: []byte(cfg.JWTSecret),
		Logger:    logger,
	})

	if cfg.SweepInterval > 0 {
		sw := sweeper.New(store, logger)
		sw.Interval = cfg.SweepInterval
		go sw.Run(context.Background())
	}

	logger.Info("starting server", "port", cfg.HTTPPort)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
