package saver

import (
	"vkbackup/pkg/paginate"
	"vkbackup/pkg/response"
	"vkbackup/pkg/vk"
	"vkbackup/pkg/yadisk"
)

// PhotoSource is the part of the VK client the saver uses
type PhotoSource interface {
	UserID() string
	PhotoFetcher(userID, albumID string) paginate.Fetcher[vk.Photo]
	GetUserStatus(userID string) response.Envelope[string]
}

// Storage is the part of the Yandex Disk client the saver uses
type Storage interface {
	CreateFolder(path string) response.Envelope[yadisk.Link]
	UploadRemoteFile(diskPath, sourceURL string) response.Envelope[yadisk.Link]
	UploadLocalFile(localPath, folder string) response.Envelope[struct{}]
	ListFiles(pageSize int) response.Envelope[[]string]
	FileInfo(path string) response.Envelope[yadisk.Resource]
	DeleteFile(path string) response.Envelope[struct{}]
}

var (
	_ PhotoSource = (*vk.Client)(nil)
	_ Storage     = (*yadisk.Client)(nil)
)
