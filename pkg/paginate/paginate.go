// Package paginate drives offset/count paged listings against a remote API.
package paginate

import (
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/ratelimit"
	"vkbackup/pkg/response"
)

// DefaultPhotoPageCap is the largest page photos.get accepts
const DefaultPhotoPageCap = 1000

// DefaultFilePageSize is the page size used for disk listings
const DefaultFilePageSize = 20

// Fetcher requests count items starting at offset
type Fetcher[T any] func(offset, count int) response.Envelope[[]T]

type options struct {
	pageCap int
	limiter ratelimit.Limiter
	logger  logger.Logger
}

// Option configures a pagination run
type Option func(*options)

// WithPageCap limits the number of items requested per page
func WithPageCap(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageCap = n
		}
	}
}

// WithLimiter pauses between page requests
func WithLimiter(l ratelimit.Limiter) Option {
	return func(o *options) {
		if l != nil {
			o.limiter = l
		}
	}
}

// WithLogger sets the logger used to report page progress
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		pageCap: DefaultPhotoPageCap,
		limiter: ratelimit.Nop{},
		logger:  logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Photos collects up to maxQty items. A failed page ends the run and keeps
// what was gathered; the failure is only logged. The loop also ends on an
// empty page, a short page, or once offset+count covers maxQty. The result
// never holds more than maxQty items.
func Photos[T any](fetch Fetcher[T], maxQty int, opts ...Option) []T {
	o := buildOptions(opts)
	if maxQty <= 0 {
		return []T{}
	}

	count := maxQty
	if count > o.pageCap {
		count = o.pageCap
	}

	items := make([]T, 0, count)
	offset := 0
	for {
		o.logger.DebugWithFields("requesting page", map[string]interface{}{
			"offset": offset,
			"count":  count,
		})

		page := fetch(offset, count)
		if !page.Success() {
			o.logger.ErrorWithFields("page request failed", map[string]interface{}{
				"offset":   offset,
				"count":    count,
				"error":    page.Message,
				"gathered": len(items),
			})
			break
		}
		if len(page.Object) == 0 {
			break
		}

		items = append(items, page.Object...)

		if len(page.Object) < count || offset+count >= maxQty {
			break
		}
		offset += count
		o.limiter.Wait()
	}

	if len(items) > maxQty {
		items = items[:maxQty]
	}
	return items
}

// Files collects every item of a listing using a fixed page size. An empty
// or short page ends the listing successfully. A failed page ends it with a
// failed envelope that still carries the items of the earlier pages.
func Files[T any](fetch Fetcher[T], pageSize int, opts ...Option) response.Envelope[[]T] {
	o := buildOptions(opts)
	if pageSize <= 0 {
		return response.Fail[[]T](errs.Newf(errs.ErrorTypeInvalidInput, "page size must be positive, got %d", pageSize))
	}

	items := []T{}
	offset := 0
	for {
		o.logger.DebugWithFields("requesting page", map[string]interface{}{
			"offset": offset,
			"limit":  pageSize,
		})

		page := fetch(offset, pageSize)
		if !page.Success() {
			o.logger.WarnWithFields("listing stopped early", map[string]interface{}{
				"offset":   offset,
				"error":    page.Message,
				"gathered": len(items),
			})
			return response.Partial(items, page.Err)
		}
		if len(page.Object) == 0 {
			break
		}

		items = append(items, page.Object...)

		if len(page.Object) < pageSize {
			break
		}
		offset += pageSize
		o.limiter.Wait()
	}

	return response.OK(items)
}
