package orion

import (
	"time"

	"golang.org/x/exp/constraints"
)

// FrameLimiter sleeps until the next frame deadline to cap the frame rate.
type FrameLimiter struct {
	budget   time.Duration
	deadline time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func NewFrameLimiter(fps int) *FrameLimiter {
	return &FrameLimiter{
		budget: frameBudget(fps),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

func (l *FrameLimiter) Budget() time.Duration {
	return l.budget
}

// Wait blocks until at least one frame budget passed since the previous call.
func (l *FrameLimiter) Wait() {
	now := l.now()

	if l.deadline.IsZero() {
		l.deadline = now.Add(l.budget)
		return
	}

	if remaining := l.deadline.Sub(now); remaining > 0 {
		l.sleep(remaining)
		l.deadline = l.deadline.Add(l.budget)
		return
	}

	// we are late, do not try to catch up on missed frames
	l.deadline = now.Add(l.budget)
}

func clamp[T constraints.Integer | constraints.Float](value, lo, hi T) T {
	return min(max(value, lo), hi)
}
