// Package sweeper implements the expiry backstop: a periodic scan that
// releases holds whose delayed-queue message was lost or delayed.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/festhq/gatekeeper/pkg/monitoring"
	"github.com/festhq/gatekeeper/pkg/storage"
)

// Sweeper periodically expires lapsed reservations. Each order is handled
// independently: one failing order never stops the rest of the pass.
type Sweeper struct {
	Store storage.SweeperStore

	// Interval between passes.
	Interval time.Duration

	// GracePeriod past the hold deadline before an order is considered
	// lapsed. Gives the delay queue first shot at every expiry.
	GracePeriod time.Duration

	Logger *slog.Logger
}

// New creates a Sweeper with the default 60s interval and 30s grace period.
func New(store storage.SweeperStore, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		Store:       store,
		Interval:    60 * time.Second,
		GracePeriod: 30 * time.Second,
		Logger:      logger,
	}
}

// Run executes passes until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.Logger.Error("sweep pass failed", "error", err)
			}
		}
	}
}

// Sweep performs one pass and returns how many orders it expired. An error
// from the lapsed-orders query aborts the pass; per-order failures are
// logged and skipped.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() { monitoring.TrackSweep(time.Since(start)) }()

	lapsed, err := s.Store.GetLapsedOrders(ctx, s.GracePeriod)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, order := range lapsed {
		didExpire, err := s.Store.ExpireOrder(ctx, order.Id)
		if err != nil {
			s.Logger.Error("failed to expire order", "order_id", order.Id, "error", err)
			continue
		}
		if didExpire {
			expired++
		}
	}

	if expired > 0 {
		monitoring.TrackExpired(expired)
		s.Logger.Info("sweep pass expired orders", "count", expired, "scanned", len(lapsed))
	}
	return expired, nil
}
