// Package ratelimit throttles successive requests to the same backend.
//
// Both the VK API and Yandex Disk ban clients that fire requests back to
// back, so every paginated fetch and every per-item upload waits a fixed
// delay before the next call:
//
//	limiter := ratelimit.NewFixedDelay(300 * time.Millisecond)
//	for _, item := range items {
//		upload(item)
//		limiter.Wait()
//	}
//
// The delay is a plain blocking sleep. There is no token bucket and no
// adaptive behavior; tests swap the sleep function through WithSleep.
package ratelimit
