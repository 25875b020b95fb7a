package retry

import (
	"time"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/response"
)

const (
	// DefaultBaseDelay is the first wait and the step added after each
	// in-progress report
	DefaultBaseDelay = 300 * time.Millisecond

	// DefaultMaxDelay ends polling once the wait grows to it
	DefaultMaxDelay = 3 * time.Second

	// DefaultMaxStalls bounds consecutive polls that neither report
	// progress nor finish, such as failed status requests. Such polls do
	// not grow the delay, so without a bound they could repeat forever.
	DefaultMaxStalls = 10
)

// Messages of terminal poll failures
const (
	MsgTimeout           = "Timeout reached"
	MsgOperationFailed   = "Operation was not successful"
	MsgStatusUnavailable = "Status unavailable"
)

// Status is the state of an asynchronous remote operation
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// StatusFunc fetches the current state of an operation
type StatusFunc func() response.Envelope[Status]

// Poller waits for an asynchronous operation with a linearly growing delay.
type Poller struct {
	Backoff   *LinearBackoff
	MaxStalls int
	Sleep     func(time.Duration)
	Logger    logger.Logger
}

// NewPoller creates a poller stepping by base until max is reached.
// Zero values fall back to the defaults.
func NewPoller(base, max time.Duration, log logger.Logger) *Poller {
	if base <= 0 {
		base = DefaultBaseDelay
	}
	if max <= 0 {
		max = DefaultMaxDelay
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Poller{
		Backoff: &LinearBackoff{
			BaseDelay: base,
			MaxDelay:  max,
			Increment: base,
		},
		MaxStalls: DefaultMaxStalls,
		Sleep:     time.Sleep,
		Logger:    log,
	}
}

// Poll sleeps, asks fetch for the operation status and decides what to do.
// An in-progress report grows the delay by one step while the delay is
// still below the maximum; once it reaches the maximum the poll times out.
// Reports other than in-progress, success or failed are retried at the
// same delay, at most MaxStalls times in a row; hitting that bound fails
// with MsgStatusUnavailable rather than MsgTimeout. A MaxStalls of zero
// retries them for as long as the status stays unknown.
func (p *Poller) Poll(fetch StatusFunc) response.Envelope[struct{}] {
	step := 1
	stalls := 0

	for attempt := 1; ; attempt++ {
		delay := p.Backoff.NextDelay(step)
		p.Sleep(delay)

		env := fetch()
		status := env.Object
		if !env.Success() {
			status = ""
		}

		p.Logger.DebugWithFields("checked operation status", map[string]interface{}{
			"attempt": attempt,
			"delay":   delay,
			"status":  string(status),
			"message": env.Message,
		})

		switch {
		case status == StatusInProgress && !p.Backoff.Exhausted(delay):
			step++
			stalls = 0
		case p.Backoff.Exhausted(delay):
			p.Logger.WarnWithFields("operation did not finish in time", map[string]interface{}{
				"attempts": attempt,
				"delay":    delay,
			})
			return response.Fail[struct{}](errs.New(errs.ErrorTypeTimeout, MsgTimeout))
		case status == StatusSuccess:
			return response.OK(struct{}{})
		case status == StatusFailed:
			return response.Fail[struct{}](errs.New(errs.ErrorTypeOperationFailed, MsgOperationFailed))
		default:
			stalls++
			if p.MaxStalls > 0 && stalls >= p.MaxStalls {
				p.Logger.WarnWithFields("operation status unavailable", map[string]interface{}{
					"attempts": attempt,
					"message":  env.Message,
				})
				return response.Fail[struct{}](errs.New(errs.ErrorTypeTimeout, MsgStatusUnavailable))
			}
		}
	}
}
