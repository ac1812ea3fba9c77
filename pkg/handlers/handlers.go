// Package handlers assembles the HTTP surface: route wiring and auth guards
// for the per-resource subpackages.
package handlers

import (
	"log/slog"

	chi "github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/festhq/gatekeeper/pkg/credential"
	"github.com/festhq/gatekeeper/pkg/handlers/accounts"
	"github.com/festhq/gatekeeper/pkg/handlers/catalog"
	"github.com/festhq/gatekeeper/pkg/handlers/reservations"
	"github.com/festhq/gatekeeper/pkg/handlers/settlement"
	"github.com/festhq/gatekeeper/pkg/handlers/terminal"
	"github.com/festhq/gatekeeper/pkg/handlers/tickets"
	"github.com/festhq/gatekeeper/pkg/middleware"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// Config holds the dependencies for the HTTP surface.
type Config struct {
	Store     storage.Storage
	Verifier  *credential.Signer
	JWTSecret []byte
	Logger    *slog.Logger
}

// NewRouter builds the chi router with every route mounted behind its guard.
// The settlement webhook and /metrics sit outside the bearer-token group:
// the webhook is authenticated upstream by the gateway integration and
// metrics are scraped from inside the network.
func NewRouter(cfg Config) chi.Router {
	reservationsHandler := reservations.NewHandler(cfg.Store)
	settlementHandler := settlement.NewHandler(cfg.Store)
	ticketsHandler := tickets.NewHandler(cfg.Store, cfg.Verifier)
	terminalHandler := terminal.NewHandler(cfg.Store)
	accountsHandler := accounts.NewHandler(cfg.Store)
	catalogHandler := catalog.NewHandler(cfg.Store)

	r := chi.NewRouter()
	r.Use(middleware.NewStructuredLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Post("/v1/webhooks/settlement", settlementHandler.NotifySettlement)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Authenticator(cfg.JWTSecret))

		r.Post("/reservations", reservationsHandler.CreateReservation)
		r.Get("/orders/{orderId}", reservationsHandler.GetOrderById)
		r.Post("/orders/{orderId}/cancel", reservationsHandler.CancelOrderById)

		r.Get("/tickets/{ticketId}", ticketsHandler.GetTicketById)
		r.With(middleware.RequireRole(middleware.RoleStaff)).
			Post("/tickets/redeem", ticketsHandler.RedeemTicket)

		r.Route("/terminal", func(r chi.Router) {
			r.Use(middleware.RequireRole(middleware.RoleVendor))
			r.Post("/payment", terminalHandler.Payment)
			r.Post("/refund", terminalHandler.Refund)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.With(middleware.RequireRole(middleware.RoleStaff)).
				Post("/", accountsHandler.CreateAccount)
			r.Get("/{accountId}", accountsHandler.GetAccountById)
			r.Post("/{accountId}/topup", accountsHandler.TopUp)
			r.Post("/{accountId}/transfer", accountsHandler.Transfer)
			r.With(middleware.RequireRole(middleware.RoleStaff)).
				Post("/{accountId}/block", accountsHandler.Block)
			r.With(middleware.RequireRole(middleware.RoleStaff)).
				Post("/{accountId}/unblock", accountsHandler.Unblock)
			r.Get("/{accountId}/ledger", accountsHandler.ListLedger)
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(middleware.RequireRole(middleware.RoleAdmin))
			r.Post("/", catalogHandler.CreateEvent)
			r.Post("/ticket-types", catalogHandler.CreateTicketType)
		})
		r.Get("/ticket-types/{ticketTypeId}", catalogHandler.GetTicketTypeById)
	})

	return r
}
