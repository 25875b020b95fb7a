package vk

import (
	"fmt"

	"vkbackup/pkg/media"
)

// User is an entry of users.get
type User struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Domain      string `json:"domain"`
	Deactivated string `json:"deactivated,omitempty"`
}

// FullName returns "First Last"
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) String() string {
	return fmt.Sprintf("%s (#%d)", u.FullName(), u.ID)
}

// Likes holds the like counter of a photo
type Likes struct {
	Count     int `json:"count"`
	UserLikes int `json:"user_likes"`
}

// Photo is an entry of photos.get with extended=1 and photo_sizes=1
type Photo struct {
	ID      int64           `json:"id"`
	OwnerID int64           `json:"owner_id"`
	AlbumID int64           `json:"album_id"`
	Date    int64           `json:"date"`
	Text    string          `json:"text"`
	Sizes   []media.Variant `json:"sizes"`
	Likes   Likes           `json:"likes"`
}

// Item returns the parts of the photo needed to name and fetch it
func (p Photo) Item() media.Item {
	return media.Item{Likes: p.Likes.Count, Variants: p.Sizes}
}

// PhotoPage is the response object of photos.get
type PhotoPage struct {
	Count int     `json:"count"`
	Items []Photo `json:"items"`
}

// MutualFriends is an entry of friends.getMutual called with target_uids
type MutualFriends struct {
	ID            int64   `json:"id"`
	CommonFriends []int64 `json:"common_friends"`
	CommonCount   int     `json:"common_count"`
}
