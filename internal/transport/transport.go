// Package transport sends HTTP requests for the API clients and turns the
// replies into envelopes.
package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/response"
)

// Doer is satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends requests with a fixed set of headers
type Client struct {
	httpClient Doer
	headers    map[string]string
	logger     logger.Logger
}

// New creates a transport with the given timeout and default headers
func New(timeout time.Duration, headers map[string]string, log logger.Logger) *Client {
	return NewWithDoer(&http.Client{Timeout: timeout}, headers, log)
}

// NewWithDoer creates a transport over a custom HTTP implementation
func NewWithDoer(doer Doer, headers map[string]string, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	h := make(map[string]string, len(headers))
	for k, v := range headers {
		h[k] = v
	}
	return &Client{httpClient: doer, headers: h, logger: log}
}

// SetHeader sets a header sent with every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// Do sends one request and returns the status and the whole body. Only
// failures that prevent a reply from arriving are returned as errors.
func (c *Client) Do(method, rawURL string, query url.Values, body io.Reader) (int, []byte, *errs.Error) {
	target := rawURL
	if len(query) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return 0, nil, errs.Newf(errs.ErrorTypeInvalidInput, "invalid URL %q: %v", rawURL, err)
		}
		q := u.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return 0, nil, errs.Newf(errs.ErrorTypeInvalidInput, "failed to create request: %v", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": method,
		"url":    redact(req.URL),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		// url.Error repeats the full URL, token included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   method,
			"url":      redact(req.URL),
			"error":    err.Error(),
			"duration": duration,
		})
		return 0, nil, errs.Newf(errs.ErrorTypeNetwork, "network error: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	logger.LogRequest(c.logger, method, redact(req.URL), resp.StatusCode, float64(duration.Microseconds())/1000)
	return resp.StatusCode, data, nil
}

// Call sends a request and parses the reply, extracting path
func (c *Client) Call(method, rawURL string, query url.Values, body io.Reader, path string, opts ...response.Option) response.Envelope[response.Value] {
	status, data, err := c.Do(method, rawURL, query, body)
	if err != nil {
		return response.Fail[response.Value](err)
	}
	return response.Parse(status, data, path, opts...)
}

var secretParams = []string{"access_token"}

// redact hides tokens carried in the query string
func redact(u *url.URL) string {
	q := u.Query()
	changed := false
	for _, key := range secretParams {
		if q.Has(key) {
			q.Set(key, "***")
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}
