// Package config loads the engine's settings from the environment. Mains
// load a .env file first (godotenv) so local runs need no exported shell
// state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting of the engine.
type Config struct {
	HTTPPort string

	EventsTable      string
	TicketTypesTable string
	OrdersTable      string
	TicketsTable     string
	AccountsTable    string
	LedgerTable      string

	ExpiryQueueURL string

	// HoldDuration is how long a reservation holds inventory.
	HoldDuration time.Duration

	// SweepInterval is the in-process sweeper period; zero disables it.
	SweepInterval time.Duration

	// FeePercent is the platform fee applied to subtotals.
	FeePercent float64

	// RetryBudget bounds optimistic-lock retries per storage operation.
	RetryBudget int

	// CredentialSecret signs ticket credentials.
	CredentialSecret string

	// JWTSecret verifies API bearer tokens.
	JWTSecret string
}

// Load reads the configuration from the environment. Table names and secrets
// are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		EventsTable:      os.Getenv("DYNAMODB_EVENTS_TABLE_NAME"),
		TicketTypesTable: os.Getenv("DYNAMODB_TICKET_TYPES_TABLE_NAME"),
		OrdersTable:      os.Getenv("DYNAMODB_ORDERS_TABLE_NAME"),
		TicketsTable:     os.Getenv("DYNAMODB_TICKETS_TABLE_NAME"),
		AccountsTable:    os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		LedgerTable:      os.Getenv("DYNAMODB_LEDGER_TABLE_NAME"),
		ExpiryQueueURL:   os.Getenv("SQS_EXPIRY_QUEUE_URL"),
		HoldDuration:     getDuration("HOLD_DURATION", 10*time.Minute),
		SweepInterval:    getDuration("SWEEP_INTERVAL", 60*time.Second),
		FeePercent:       getFloat("FEE_PERCENT", 5.0),
		RetryBudget:      getInt("RETRY_BUDGET", 4),
		CredentialSecret: os.Getenv("CREDENTIAL_SECRET"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
	}

	for name, value := range map[string]string{
		"DYNAMODB_EVENTS_TABLE_NAME":       cfg.EventsTable,
		"DYNAMODB_TICKET_TYPES_TABLE_NAME": cfg.TicketTypesTable,
		"DYNAMODB_ORDERS_TABLE_NAME":       cfg.OrdersTable,
		"DYNAMODB_TICKETS_TABLE_NAME":      cfg.TicketsTable,
		"DYNAMODB_ACCOUNTS_TABLE_NAME":     cfg.AccountsTable,
		"DYNAMODB_LEDGER_TABLE_NAME":       cfg.LedgerTable,
		"CREDENTIAL_SECRET":                cfg.CredentialSecret,
		"JWT_SECRET":                       cfg.JWTSecret,
	} {
		if value == "" {
			return nil, fmt.Errorf("environment variable %s is not set", name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}
