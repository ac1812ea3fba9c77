// Package monitoring exposes the engine's Prometheus metrics. All collectors
// are registered on the default registry via promauto; mains serve them on
// /metrics with promhttp.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservations_total",
			Help: "Reservation attempts by result",
		},
		[]string{"result"},
	)

	settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlements_total",
			Help: "Settlement notifications by outcome and disposition",
		},
		[]string{"outcome", "disposition"},
	)

	expiredOrders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expired_orders_total",
			Help: "Orders expired by the sweeper or the delay queue",
		},
	)

	ticketsMinted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_minted_total",
			Help: "Tickets issued by successful settlements",
		},
	)

	redemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemptions_total",
			Help: "Gate scans by result (admitted or rejection reason)",
		},
		[]string{"result"},
	)

	terminalSpend = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terminal_spend_total",
			Help: "Terminal charge attempts by result",
		},
		[]string{"result"},
	)

	sweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_duration_seconds",
			Help:    "Duration of one sweeper pass",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)

// TrackReservation records one reservation attempt.
func TrackReservation(result string) {
	reservations.WithLabelValues(result).Inc()
}

// TrackSettlement records one settlement notification.
func TrackSettlement(outcome, disposition string) {
	settlements.WithLabelValues(outcome, disposition).Inc()
}

// TrackExpired records n orders moved to EXPIRED.
func TrackExpired(n int) {
	expiredOrders.Add(float64(n))
}

// TrackMinted records n tickets issued.
func TrackMinted(n int) {
	ticketsMinted.Add(float64(n))
}

// TrackRedemption records one gate scan.
func TrackRedemption(result string) {
	redemptions.WithLabelValues(result).Inc()
}

// TrackTerminalSpend records one terminal charge attempt.
func TrackTerminalSpend(result string) {
	terminalSpend.WithLabelValues(result).Inc()
}

// TrackSweep records the duration of one sweeper pass.
func TrackSweep(d time.Duration) {
	sweepDuration.Observe(d.Seconds())
}
