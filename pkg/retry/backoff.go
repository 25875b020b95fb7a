package retry

import "time"

// LinearBackoff grows the delay by a fixed step on every attempt
type LinearBackoff struct {
	// BaseDelay is the delay before the first attempt
	BaseDelay time.Duration
	// MaxDelay ends the schedule once a delay reaches it
	MaxDelay time.Duration
	// Increment is added to the delay after each attempt
	Increment time.Duration
}

// DefaultLinearBackoff returns the schedule used to poll disk operations:
// 0.3s, 0.6s, ... up to 3s.
func DefaultLinearBackoff() *LinearBackoff {
	return &LinearBackoff{
		BaseDelay: DefaultBaseDelay,
		MaxDelay:  DefaultMaxDelay,
		Increment: DefaultBaseDelay,
	}
}

// NextDelay returns the delay before the given attempt. It is not capped
// at MaxDelay: the step that crosses the maximum is slept in full and
// Exhausted then ends the schedule.
func (lb *LinearBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return lb.BaseDelay + lb.Increment*time.Duration(attempt-1)
}

// Exhausted reports whether delay has reached the end of the schedule
func (lb *LinearBackoff) Exhausted(delay time.Duration) bool {
	return delay >= lb.MaxDelay
}
