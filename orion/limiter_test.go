package orion

import (
	"testing"
	"time"
)

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func newTestLimiter(fps int) (*FrameLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}

	limiter := NewFrameLimiter(fps)
	limiter.now = clock.Now
	limiter.sleep = clock.Sleep

	return limiter, clock
}

func TestFrameLimiter_SleepsRemainingBudget(t *testing.T) {
	limiter, clock := newTestLimiter(50)

	if limiter.Budget() != 20*time.Millisecond {
		t.Fatalf("unexpected budget %s", limiter.Budget())
	}

	// first frame only starts the clock
	limiter.Wait()

	clock.now = clock.now.Add(5 * time.Millisecond)
	limiter.Wait()

	if len(clock.slept) != 1 || clock.slept[0] != 15*time.Millisecond {
		t.Fatalf("unexpected sleeps %v", clock.slept)
	}
}

func TestFrameLimiter_LateFrameDoesNotSleep(t *testing.T) {
	limiter, clock := newTestLimiter(50)

	limiter.Wait()

	clock.now = clock.now.Add(45 * time.Millisecond)
	limiter.Wait()

	if len(clock.slept) != 0 {
		t.Fatalf("a late frame must not sleep, slept %v", clock.slept)
	}

	// the next deadline is one budget after the late frame
	clock.now = clock.now.Add(10 * time.Millisecond)
	limiter.Wait()

	if len(clock.slept) != 1 || clock.slept[0] != 10*time.Millisecond {
		t.Fatalf("unexpected sleeps %v", clock.slept)
	}
}

func TestFrameBudget_Clamped(t *testing.T) {
	if frameBudget(100000) != time.Millisecond {
		t.Fatalf("budget must be clamped to 1000 fps")
	}

	if frameBudget(-5) != time.Second {
		t.Fatalf("budget must be clamped to 1 fps")
	}
}
