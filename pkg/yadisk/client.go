package yadisk

import (
	"bytes"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vkbackup/internal/transport"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/paginate"
	"vkbackup/pkg/ratelimit"
	"vkbackup/pkg/response"
	"vkbackup/pkg/retry"
)

// Config holds what the client needs to reach the API
type Config struct {
	Token     string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Doer overrides the HTTP client, mostly for tests
	Doer transport.Doer
}

// Client talks to the Yandex Disk REST API. It only exists once the
// token has been checked against the disk info endpoint.
type Client struct {
	http    *transport.Client
	baseURL string
	info    Info
	poller  *retry.Poller
	limiter ratelimit.Limiter
	logger  logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithPoller sets the poller used to wait for async deletes
func WithPoller(p *retry.Poller) Option {
	return func(c *Client) {
		if p != nil {
			c.poller = p
		}
	}
}

// WithLimiter sets the pause between listing pages
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// New creates a client and checks the token by reading the disk info.
// A failed check returns a not_initialized error and no client.
func New(cfg Config, log logger.Logger, opts ...Option) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	log = log.WithField("component", "yadisk")

	if cfg.Token == "" {
		return nil, errs.New(errs.ErrorTypeInvalidInput, "Yandex Disk token is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	headers := map[string]string{"Authorization": "OAuth " + cfg.Token}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}

	var httpClient *transport.Client
	if cfg.Doer != nil {
		httpClient = transport.NewWithDoer(cfg.Doer, headers, log)
	} else {
		httpClient = transport.New(cfg.Timeout, headers, log)
	}

	c := &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		poller:  retry.NewPoller(0, 0, log),
		limiter: ratelimit.Nop{},
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}

	info := c.DiskInfo()
	if !info.Success() {
		log.WarnWithFields("Yandex Disk client init failed", map[string]interface{}{"error": info.Message})
		return nil, errs.New(errs.ErrorTypeNotInitialized, "Yandex Disk client init failed: "+info.Message)
	}
	c.info = info.Object

	log.InfoWithFields("Yandex Disk client initialised", map[string]interface{}{
		"user": info.Object.User.DisplayName,
	})
	return c, nil
}

// Owner returns the display name of the disk owner
func (c *Client) Owner() string {
	return c.info.User.DisplayName
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// DiskInfo reads the disk summary. It doubles as a token check.
func (c *Client) DiskInfo() response.Envelope[Info] {
	return response.Decode[Info](c.http.Call(http.MethodGet, c.endpoint(PathDisk), nil, nil, ""))
}

// CreateFolder creates a folder; an empty path means the disk root.
// An existing folder fails with a 409 transport error, see IsConflict.
func (c *Client) CreateFolder(path string) response.Envelope[Link] {
	if path == "" {
		path = "/"
	}
	env := c.http.Call(http.MethodPut, c.endpoint(PathResources), url.Values{"path": {path}}, nil, "")
	return response.Decode[Link](env)
}

// IsConflict reports whether a failure was an HTTP 409, which the API
// returns for paths that already exist.
func IsConflict[T any](env response.Envelope[T]) bool {
	return env.Err != nil && env.Err.Code == http.StatusConflict
}

// UploadLocalFile copies a local file into folder, replacing any file with
// the same name. The API hands out an upload URL first; the file is then
// sent to it in one PUT.
func (c *Client) UploadLocalFile(localPath, folder string) response.Envelope[struct{}] {
	if localPath == "" {
		return response.Fail[struct{}](errs.New(errs.ErrorTypeInvalidInput, "File name is empty"))
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return response.Fail[struct{}](errs.Newf(errs.ErrorTypeInvalidInput, "cannot read %s: %v", localPath, err))
	}

	target := Join(folder, filepath.Base(localPath))
	link := response.Decode[Link](c.http.Call(http.MethodGet, c.endpoint(PathUpload),
		url.Values{"path": {target}, "overwrite": {"true"}}, nil, ""))
	if !link.Success() {
		return response.Fail[struct{}](link.Err)
	}

	c.logger.DebugWithFields("uploading local file", map[string]interface{}{
		"file":   localPath,
		"target": target,
		"bytes":  len(data),
	})
	put := c.http.Call(http.MethodPut, link.Object.Href, nil, bytes.NewReader(data), "")
	return response.Map(put, func(response.Value) struct{} { return struct{}{} })
}

// UploadRemoteFile asks the disk to download sourceURL into diskPath.
// The returned link points at the async operation.
func (c *Client) UploadRemoteFile(diskPath, sourceURL string) response.Envelope[Link] {
	if sourceURL == "" {
		return response.Fail[Link](errs.New(errs.ErrorTypeInvalidInput, "URL is empty"))
	}
	env := c.http.Call(http.MethodPost, c.endpoint(PathUpload),
		url.Values{"path": {diskPath}, "url": {sourceURL}}, nil, "")
	return response.Decode[Link](env)
}

// FilePage fetches one page of the flat file listing
func (c *Client) FilePage(offset, limit int) response.Envelope[[]Resource] {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
		"fields": {ListFields},
	}
	return response.Decode[[]Resource](c.http.Call(http.MethodGet, c.endpoint(PathFlatListing), query, nil, "items"))
}

// Files lists every file on the disk. When a page fails the envelope is a
// failure that still holds the files of the earlier pages.
func (c *Client) Files(pageSize int) response.Envelope[[]Resource] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return paginate.Files(c.FilePage, pageSize,
		paginate.WithLimiter(c.limiter),
		paginate.WithLogger(c.logger))
}

// ListFiles renders Files as "<path> (<size>)" lines, keeping partial
// results on failure.
func (c *Client) ListFiles(pageSize int) response.Envelope[[]string] {
	files := c.Files(pageSize)
	lines := make([]string, 0, len(files.Object))
	for _, f := range files.Object {
		lines = append(lines, DisplayPath(f.Path)+" ("+FormatSize(f.Size)+")")
	}
	if !files.Success() {
		return response.Partial(lines, files.Err)
	}
	return response.OK(lines)
}

// FileInfo reads the metadata of a file or folder; empty means the root.
// A missing path fails with a 404 transport error.
func (c *Client) FileInfo(path string) response.Envelope[Resource] {
	if path == "" {
		path = "/"
	}
	return response.Decode[Resource](c.http.Call(http.MethodGet, c.endpoint(PathResources), url.Values{"path": {path}}, nil, ""))
}

// DeleteFile removes a file or folder permanently. Small deletes finish
// with 204; larger ones answer 202 with an operation link, which is then
// polled until it completes.
func (c *Client) DeleteFile(path string) response.Envelope[struct{}] {
	if path == "" {
		return response.Fail[struct{}](errs.New(errs.ErrorTypeInvalidInput, "File/folder name is empty"))
	}
	query := url.Values{
		"path":        {path},
		"permanently": {"true"},
		"force_async": {"false"},
	}
	env := c.http.Call(http.MethodDelete, c.endpoint(PathResources), query, nil, "")
	if !env.Success() {
		return response.Fail[struct{}](env.Err)
	}

	href, ok := env.Object.Field("href")
	if !ok {
		return response.OK(struct{}{})
	}
	c.logger.DebugWithFields("delete scheduled", map[string]interface{}{"path": path, "operation": href.String()})
	return c.WaitOperation(href.String())
}

// OperationStatus reads the state of an async operation
func (c *Client) OperationStatus(href string) response.Envelope[retry.Status] {
	env := c.http.Call(http.MethodGet, href, nil, nil, "status")
	return response.Map(env, func(v response.Value) retry.Status { return retry.Status(v.String()) })
}

// WaitOperation polls href until the operation succeeds, fails or the
// poller gives up.
func (c *Client) WaitOperation(href string) response.Envelope[struct{}] {
	if href == "" {
		return response.Fail[struct{}](errs.New(errs.ErrorTypeInvalidInput, "URL is empty"))
	}
	return c.poller.Poll(func() response.Envelope[retry.Status] {
		return c.OperationStatus(href)
	})
}
