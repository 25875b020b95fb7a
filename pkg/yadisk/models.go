package yadisk

import "time"

// Link is returned by requests that hand out a URL to follow: upload
// targets and async operation handles.
type Link struct {
	Href      string `json:"href"`
	Method    string `json:"method"`
	Templated bool   `json:"templated"`
}

// User is the owner of a disk
type User struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	UID         string `json:"uid"`
}

// Info describes the disk as a whole
type Info struct {
	TotalSpace int64 `json:"total_space"`
	UsedSpace  int64 `json:"used_space"`
	TrashSize  int64 `json:"trash_size"`
	User       User  `json:"user"`
}

// Resource is a file or folder on the disk
type Resource struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Size     int64     `json:"size"`
	MimeType string    `json:"mime_type,omitempty"`
	Created  time.Time `json:"created,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
}

// IsDir reports whether the resource is a folder
func (r Resource) IsDir() bool {
	return r.Type == "dir"
}
