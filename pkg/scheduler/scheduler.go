package scheduler

import (
	"context"
	"time"
)

// Scheduler defines the interface for a component that schedules the expiry
// check of a reservation. The delay is data derived from the order's hold
// deadline; nothing blocks waiting for it.
type Scheduler interface {
	// ScheduleExpiry enqueues an expiry check for the order after delay.
	ScheduleExpiry(ctx context.Context, orderID string, delay time.Duration) error
}
