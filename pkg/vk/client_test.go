package vk

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/paginate"
)

const ownerJSON = `{"response":[{"id":1,"first_name":"Pavel","last_name":"Durov","domain":"durov"}]}`

// fakeAPI serves canned replies keyed by method name and records queries.
type fakeAPI struct {
	replies map[string]func(q url.Values) string
	queries map[string][]url.Values
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		replies: map[string]func(url.Values) string{
			MethodUsersGet: func(url.Values) string { return ownerJSON },
		},
		queries: map[string][]url.Values{},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := strings.TrimPrefix(r.URL.Path, "/method/")
	q := r.URL.Query()
	f.queries[method] = append(f.queries[method], q)
	reply, ok := f.replies[method]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, reply(q))
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	c, err := New(Config{Token: "tkn", BaseURL: server.URL + "/method/"}, logger.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestNewChecksToken(t *testing.T) {
	api := newFakeAPI()
	c := newTestClient(t, api)

	assert.Equal(t, "1", c.UserID())
	assert.Equal(t, "Pavel Durov", c.User().FullName())
	assert.Equal(t, "https://vk.com/durov", c.ProfileURL())

	q := api.queries[MethodUsersGet][0]
	assert.Equal(t, "tkn", q.Get("access_token"))
	assert.Equal(t, DefaultAPIVersion, q.Get("v"))
	assert.Equal(t, "domain", q.Get("fields"))
	assert.Empty(t, q.Get("user_ids"))
}

func TestNewFailures(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		status  int
		wantMsg string
	}{
		{
			name:    "api error",
			reply:   `{"error":{"error_code":5,"error_msg":"User authorization failed: invalid access_token (4)."}}`,
			wantMsg: "VK client init failed: API error: User authorization failed: invalid access_token (4).",
		},
		{
			name:    "deactivated user",
			reply:   `{"response":[{"id":2,"first_name":"DELETED","last_name":"","deactivated":"deleted"}]}`,
			wantMsg: "VK client init failed: User deleted",
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			wantMsg: "VK client init failed: Request error: 502 (Bad Gateway)",
		},
		{
			name:    "no users",
			reply:   `{"response":[]}`,
			wantMsg: "VK client init failed: Object not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return
				}
				fmt.Fprint(w, tt.reply)
			}))
			defer server.Close()

			c, err := New(Config{Token: "bad", UserID: "2", BaseURL: server.URL}, logger.NewNopLogger())

			assert.Nil(t, c)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrorTypeNotInitialized))
			assert.Equal(t, tt.wantMsg, err.(*errs.Error).Message)
		})
	}
}

func TestNewRequiresToken(t *testing.T) {
	c, err := New(Config{}, logger.NewNopLogger())
	assert.Nil(t, c)
	assert.True(t, errs.Is(err, errs.ErrorTypeInvalidInput))
}

func TestGetUserPhotos(t *testing.T) {
	api := newFakeAPI()
	api.replies[MethodPhotosGet] = func(url.Values) string {
		return `{"response":{"count":1,"items":[{"id":10,"owner_id":1,"album_id":-6,
			"sizes":[{"type":"s","width":75,"height":50,"url":"https://cdn/s.jpg"},
			         {"type":"z","width":1080,"height":720,"url":"https://cdn/z.jpg"}],
			"likes":{"count":12,"user_likes":0}}]}}`
	}
	c := newTestClient(t, api)

	page := c.GetUserPhotos(PhotosRequest{AlbumID: AlbumProfile, Count: 50, Offset: 100})

	require.True(t, page.Success(), page.Message)
	require.Len(t, page.Object.Items, 1)
	photo := page.Object.Items[0]
	assert.Equal(t, 12, photo.Likes.Count)
	assert.Len(t, photo.Sizes, 2)
	assert.Equal(t, 12, photo.Item().Likes)

	q := api.queries[MethodPhotosGet][0]
	assert.Equal(t, "1", q.Get("user_id"))
	assert.Equal(t, "profile", q.Get("album_id"))
	assert.Equal(t, "50", q.Get("count"))
	assert.Equal(t, "100", q.Get("offset"))
	assert.Equal(t, "1", q.Get("photo_sizes"))
	assert.Equal(t, "1", q.Get("extended"))
}

func TestPhotoFetcherWithPaginator(t *testing.T) {
	api := newFakeAPI()
	api.replies[MethodPhotosGet] = func(q url.Values) string {
		offset, _ := strconv.Atoi(q.Get("offset"))
		count, _ := strconv.Atoi(q.Get("count"))
		var items []string
		for i := offset; i < offset+count && i < 5; i++ {
			items = append(items, fmt.Sprintf(`{"id":%d,"sizes":[],"likes":{"count":%d}}`, i, i))
		}
		return fmt.Sprintf(`{"response":{"count":5,"items":[%s]}}`, strings.Join(items, ","))
	}
	c := newTestClient(t, api)

	photos := paginate.Photos(c.PhotoFetcher("", AlbumWall), 10, paginate.WithPageCap(2), paginate.WithLogger(logger.NewNopLogger()))

	assert.Len(t, photos, 5)
	assert.Len(t, api.queries[MethodPhotosGet], 3)
}

func TestGetUserStatus(t *testing.T) {
	api := newFakeAPI()
	api.replies[MethodStatusGet] = func(url.Values) string { return `{"response":{"text":"on vacation"}}` }
	c := newTestClient(t, api)

	status := c.GetUserStatus("")

	require.True(t, status.Success())
	assert.Equal(t, "on vacation", status.Object)
	assert.Equal(t, "1", api.queries[MethodStatusGet][0].Get("user_id"))
}

func TestGetUserStatusMissingText(t *testing.T) {
	api := newFakeAPI()
	api.replies[MethodStatusGet] = func(url.Values) string { return `{"response":{}}` }
	c := newTestClient(t, api)

	status := c.GetUserStatus("7")

	assert.False(t, status.Success())
	assert.Equal(t, "Object not found", status.Message)
	assert.Empty(t, status.Object)
}

func TestEmptyErrorObjectIgnored(t *testing.T) {
	api := newFakeAPI()
	api.replies[MethodStatusGet] = func(url.Values) string { return `{"error":{},"response":{"text":"here"}}` }
	c := newTestClient(t, api)

	status := c.GetUserStatus("")

	require.True(t, status.Success(), status.Message)
	assert.Equal(t, "here", status.Object)
}

func TestErrorObjectReported(t *testing.T) {
	api := newFakeAPI()
	api.replies[MethodStatusGet] = func(url.Values) string {
		return `{"error":{"error_code":15,"error_msg":"Access denied"}}`
	}
	c := newTestClient(t, api)

	status := c.GetUserStatus("")

	assert.False(t, status.Success())
	assert.Equal(t, "API error: Access denied", status.Message)
	assert.True(t, errs.Is(status.Error(), errs.ErrorTypeAPI))
}

func TestCommonFriends(t *testing.T) {
	api := newFakeAPI()
	api.replies[MethodFriendsGetMutual] = func(url.Values) string {
		return `{"response":[{"id":5,"common_friends":[7,8],"common_count":2}]}`
	}
	c := newTestClient(t, api)
	api.replies[MethodUsersGet] = func(q url.Values) string {
		return `{"response":[{"id":7,"first_name":"A","last_name":"B"},{"id":8,"first_name":"C","last_name":"D"}]}`
	}

	friends := c.CommonFriends("5")

	require.True(t, friends.Success())
	assert.Len(t, friends.Object, 2)
	mutualQuery := api.queries[MethodFriendsGetMutual][0]
	assert.Equal(t, "5", mutualQuery.Get("target_uids"))
	assert.Equal(t, "1", mutualQuery.Get("source_uid"))
	lookups := api.queries[MethodUsersGet]
	assert.Equal(t, "7,8", lookups[len(lookups)-1].Get("user_ids"))
}
