package clock

import (
	"context"
	"time"
)

// RealClock is a Clock backed by the host's monotonic wall clock. Tick 0 is the instant
// NewRealClock was called; Now() is monotonic for the lifetime of the process (it never
// runs backward, matching the free-running hardware timer it stands in for).
type RealClock struct {
	epoch time.Time
}

// NewRealClock returns a RealClock epoched at the current instant.
func NewRealClock() *RealClock {
	return &RealClock{epoch: time.Now()}
}

// Now returns elapsed microseconds since the clock was created.
func (r *RealClock) Now() uint64 {
	return uint64(time.Since(r.epoch).Microseconds())
}

// DelayUntil blocks until untilMicros has elapsed since the epoch, or ctx is cancelled.
func (r *RealClock) DelayUntil(ctx context.Context, untilMicros uint64) error {
	now := r.Now()
	if untilMicros <= now {
		return nil
	}
	d := time.Duration(untilMicros-now) * time.Microsecond
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Clock = (*RealClock)(nil)
