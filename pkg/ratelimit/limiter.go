package ratelimit

import "time"

// DefaultDelay is the pause between two requests to the same backend
const DefaultDelay = 300 * time.Millisecond

// Limiter paces successive requests
type Limiter interface {
	// Wait blocks until another request may be sent
	Wait()
}

// FixedDelay blocks for the same duration on every Wait
type FixedDelay struct {
	delay time.Duration
	sleep func(time.Duration)
}

// Option configures a FixedDelay
type Option func(*FixedDelay)

// WithSleep replaces time.Sleep, mostly for tests
func WithSleep(sleep func(time.Duration)) Option {
	return func(f *FixedDelay) {
		f.sleep = sleep
	}
}

// NewFixedDelay creates a limiter pausing delay between requests.
// A non-positive delay falls back to DefaultDelay.
func NewFixedDelay(delay time.Duration, opts ...Option) *FixedDelay {
	if delay <= 0 {
		delay = DefaultDelay
	}
	f := &FixedDelay{
		delay: delay,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Delay returns the configured pause
func (f *FixedDelay) Delay() time.Duration {
	return f.delay
}

// Wait sleeps for the fixed delay
func (f *FixedDelay) Wait() {
	f.sleep(f.delay)
}

// Nop never blocks. Useful when a caller wants pagination without pauses.
type Nop struct{}

func (Nop) Wait() {}
