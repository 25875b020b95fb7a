package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelayWait(t *testing.T) {
	var slept []time.Duration
	limiter := NewFixedDelay(300*time.Millisecond, WithSleep(func(d time.Duration) {
		slept = append(slept, d)
	}))

	limiter.Wait()
	limiter.Wait()
	limiter.Wait()

	assert.Equal(t, []time.Duration{
		300 * time.Millisecond,
		300 * time.Millisecond,
		300 * time.Millisecond,
	}, slept)
}

func TestFixedDelayDefault(t *testing.T) {
	assert.Equal(t, DefaultDelay, NewFixedDelay(0).Delay())
	assert.Equal(t, DefaultDelay, NewFixedDelay(-time.Second).Delay())
	assert.Equal(t, time.Second, NewFixedDelay(time.Second).Delay())
}

func TestFixedDelayIsLimiter(t *testing.T) {
	var slept []time.Duration
	var l Limiter = NewFixedDelay(time.Second, WithSleep(func(d time.Duration) {
		slept = append(slept, d)
	}))

	l.Wait()
	assert.Equal(t, []time.Duration{time.Second}, slept)
}

func TestNopLimiter(t *testing.T) {
	var l Limiter = Nop{}
	assert.NotPanics(t, l.Wait)
}
