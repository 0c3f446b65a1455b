package clock

import (
	"context"
	"testing"
	"time"
)

func TestFakeClockAdvanceWakesWaiter(t *testing.T) {
	c := NewFakeClock()
	done := make(chan error, 1)
	go func() {
		done <- c.DelayUntil(context.Background(), 1000)
	}()

	select {
	case <-done:
		t.Fatal("DelayUntil returned before deadline")
	case <-time.After(20 * time.Millisecond):
	}

	c.Advance(1000)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("DelayUntil returned error %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("DelayUntil did not wake after Advance")
	}
}

func TestFakeClockDelayUntilPastDeadlineReturnsImmediately(t *testing.T) {
	c := NewFakeClock()
	c.Advance(500)
	if err := c.DelayUntil(context.Background(), 100); err != nil {
		t.Fatalf("DelayUntil returned error %v", err)
	}
}

func TestFakeClockSetBackwardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic moving clock backward")
		}
	}()
	c := NewFakeClock()
	c.Advance(100)
	c.Set(50)
}

func TestFakeClockDelayUntilCancelled(t *testing.T) {
	c := NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.DelayUntil(ctx, 1000) }()

	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error from cancelled context")
		}
	case <-time.After(time.Second):
		t.Fatal("DelayUntil did not return after cancel")
	}
}

func TestTimeoutAtReturnsResultBeforeDeadline(t *testing.T) {
	c := NewFakeClock()
	err := TimeoutAt(context.Background(), c, 1000, func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("TimeoutAt = %v, want nil", err)
	}
}

func TestTimeoutAtFiresOnDeadline(t *testing.T) {
	c := NewFakeClock()
	started := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		errc <- TimeoutAt(context.Background(), c, 1000, func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		})
	}()

	<-started
	c.Advance(1000)

	select {
	case err := <-errc:
		if err != ErrTimeout {
			t.Fatalf("TimeoutAt = %v, want ErrTimeout", err)
		}
	case <-time.After(time.Second):
		t.Fatal("TimeoutAt did not return after deadline")
	}
}

func TestRealClockMonotonic(t *testing.T) {
	c := NewRealClock()
	a := c.Now()
	time.Sleep(time.Millisecond)
	b := c.Now()
	if b <= a {
		t.Fatalf("Now() did not advance: a=%d b=%d", a, b)
	}
}

func TestRealClockDelayUntil(t *testing.T) {
	c := NewRealClock()
	target := c.Now() + 5000 // 5ms
	if err := c.DelayUntil(context.Background(), target); err != nil {
		t.Fatalf("DelayUntil returned error %v", err)
	}
	if c.Now() < target {
		t.Fatalf("Now() = %d, want >= %d", c.Now(), target)
	}
}
