package vk

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vkbackup/internal/transport"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/paginate"
	"vkbackup/pkg/response"
)

// Config holds what the client needs to reach the API
type Config struct {
	Token      string
	UserID     string
	APIVersion string
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration

	// Doer overrides the HTTP client, mostly for tests
	Doer transport.Doer
}

// Client is a VK API client bound to one user. It only exists once the
// token has been checked against users.get.
type Client struct {
	http    *transport.Client
	baseURL string
	params  url.Values
	user    User
	logger  logger.Logger
}

// New creates a client and checks the token by looking up the configured
// user (the token owner when UserID is empty). A failed lookup or a
// deactivated account returns a not_initialized error and no client.
func New(cfg Config, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	log = log.WithField("component", "vk")

	if cfg.Token == "" {
		return nil, errs.New(errs.ErrorTypeInvalidInput, "VK token is empty")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	headers := map[string]string{}
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
		params:  url.Values{"access_token": {cfg.Token}, "v": {cfg.APIVersion}},
		logger:  log,
	}

	var ids []string
	if cfg.UserID != "" {
		ids = []string{cfg.UserID}
	}
	users := c.GetUsers(ids, nil)
	if !users.Success() {
		log.WarnWithFields("VK client init failed", map[string]interface{}{"error": users.Message})
		return nil, errs.New(errs.ErrorTypeNotInitialized, "VK client init failed: "+users.Message)
	}
	if len(users.Object) == 0 {
		return nil, errs.New(errs.ErrorTypeNotInitialized, "VK client init failed: "+response.MsgObjectNotFound)
	}
	user := users.Object[0]
	if user.Deactivated != "" {
		return nil, errs.New(errs.ErrorTypeNotInitialized, "VK client init failed: User "+user.Deactivated)
	}

	c.user = user
	log.InfoWithFields("VK client initialised", map[string]interface{}{
		"user_id": user.ID,
		"name":    user.FullName(),
	})
	return c, nil
}

// User returns the account the client was created for
func (c *Client) User() User {
	return c.user
}

// UserID returns the id of the account as a string
func (c *Client) UserID() string {
	return strconv.FormatInt(c.user.ID, 10)
}

// ProfileURL returns the public page of the account
func (c *Client) ProfileURL() string {
	if c.user.Domain == "" {
		return ProfileRoot + "id" + c.UserID()
	}
	return ProfileRoot + c.user.Domain
}

// call runs an API method and extracts path from the reply
func (c *Client) call(method string, params url.Values, path string) response.Envelope[response.Value] {
	query := url.Values{}
	for k, v := range c.params {
		query[k] = v
	}
	for k, v := range params {
		query[k] = v
	}
	return c.http.Call(http.MethodGet, MethodURL(c.baseURL, method), query, nil, path,
		response.WithAPIError(apiError))
}

// apiError reads {"error": {"error_msg": ...}}. An empty error object
// is not a failure.
func apiError(root response.Value) (string, bool) {
	e, ok := root.Field("error")
	if !ok || e.Len() == 0 {
		return "", false
	}
	msg, _ := e.Field("error_msg")
	return msg.String(), true
}

func (c *Client) orSelf(userID string) string {
	if userID == "" {
		return c.UserID()
	}
	return userID
}

// GetUsers looks up users by id. fields defaults to ["domain"].
func (c *Client) GetUsers(userIDs []string, fields []string) response.Envelope[[]User] {
	if fields == nil {
		fields = []string{"domain"}
	}
	params := url.Values{}
	if len(fields) > 0 {
		params.Set("fields", JoinParams(fields))
	}
	if len(userIDs) > 0 {
		params.Set("user_ids", JoinParams(userIDs))
	}
	return response.Decode[[]User](c.call(MethodUsersGet, params, "response"))
}

// PhotosRequest selects a page of photos
type PhotosRequest struct {
	UserID  string
	AlbumID string
	Count   int
	Offset  int
}

// GetUserPhotos fetches one page of an album with like counts and all sizes.
// An empty UserID means the client's own account.
func (c *Client) GetUserPhotos(req PhotosRequest) response.Envelope[PhotoPage] {
	params := url.Values{
		"photo_sizes": {"1"},
		"extended":    {"1"},
		"count":       {strconv.Itoa(req.Count)},
		"offset":      {strconv.Itoa(req.Offset)},
		"user_id":     {c.orSelf(req.UserID)},
	}
	if req.AlbumID != "" {
		params.Set("album_id", req.AlbumID)
	}
	return response.Decode[PhotoPage](c.call(MethodPhotosGet, params, "response"))
}

// PhotoFetcher adapts GetUserPhotos to the paginator
func (c *Client) PhotoFetcher(userID, albumID string) paginate.Fetcher[Photo] {
	return func(offset, count int) response.Envelope[[]Photo] {
		page := c.GetUserPhotos(PhotosRequest{UserID: userID, AlbumID: albumID, Count: count, Offset: offset})
		return response.Map(page, func(p PhotoPage) []Photo { return p.Items })
	}
}

// GetUserStatus returns the status text of a user
func (c *Client) GetUserStatus(userID string) response.Envelope[string] {
	params := url.Values{"user_id": {c.orSelf(userID)}}
	env := c.call(MethodStatusGet, params, "response,text")
	return response.Map(env, func(v response.Value) string { return v.String() })
}

// GetMutualFriends returns, for every target, the friends it shares with
// sourceID (the client's account when empty).
func (c *Client) GetMutualFriends(targetIDs []string, sourceID string) response.Envelope[[]MutualFriends] {
	params := url.Values{"source_uid": {c.orSelf(sourceID)}}
	if len(targetIDs) > 0 {
		params.Set("target_uids", JoinParams(targetIDs))
	}
	return response.Decode[[]MutualFriends](c.call(MethodFriendsGetMutual, params, "response"))
}

// CommonFriends resolves the friends the client's account shares with
// otherID into user records.
func (c *Client) CommonFriends(otherID string) response.Envelope[[]User] {
	mutual := c.GetMutualFriends([]string{otherID}, "")
	return response.Then(mutual, func(entries []MutualFriends) response.Envelope[[]User] {
		var ids []int64
		for _, e := range entries {
			ids = append(ids, e.CommonFriends...)
		}
		if len(ids) == 0 {
			return response.OK([]User{})
		}
		c.logger.DebugWithFields("resolving mutual friends", map[string]interface{}{"count": len(ids)})
		return c.GetUsers([]string{JoinParams(ids)}, nil)
	})
}
