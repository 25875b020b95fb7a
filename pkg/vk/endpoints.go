package vk

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// BaseURL is the VK API method root
	BaseURL = "https://api.vk.com/method/"

	// DefaultAPIVersion is sent as the v parameter
	DefaultAPIVersion = "5.124"

	// AuthorizeURL starts the implicit OAuth flow
	AuthorizeURL = "https://oauth.vk.com/authorize"

	// RedirectURL is the page VK sends the token to. The token ends up in
	// the fragment of the browser's address bar.
	RedirectURL = "https://oauth.vk.com/blank.html"

	// ProfileRoot prefixes a user's short name to form a profile link
	ProfileRoot = "https://vk.com/"

	// MaxPhotosPerRequest is the largest count photos.get accepts
	MaxPhotosPerRequest = 1000
)

// API methods used by the client
const (
	MethodUsersGet         = "users.get"
	MethodPhotosGet        = "photos.get"
	MethodStatusGet        = "status.get"
	MethodFriendsGetMutual = "friends.getMutual"
)

// Albums accepted by photos.get
const (
	AlbumWall    = "wall"
	AlbumProfile = "profile"
	AlbumSaved   = "saved"
)

// MethodURL joins the API root and a method name
func MethodURL(base, method string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + method
}

// AuthLink builds the browser link that grants an access token for appID.
// scope is a comma separated list such as "status,friends,photos".
func AuthLink(appID, scope string) string {
	cfg := oauth2.Config{
		ClientID:    appID,
		RedirectURL: RedirectURL,
		Endpoint:    oauth2.Endpoint{AuthURL: AuthorizeURL},
	}
	if scope != "" {
		cfg.Scopes = []string{scope}
	}
	return cfg.AuthCodeURL("", oauth2.SetAuthURLParam("response_type", "token"))
}

// JoinParams renders an id or a list of ids as a comma separated string
func JoinParams(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []string:
		return strings.Join(v, ",")
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case []int64:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ",")
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = JoinParams(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
