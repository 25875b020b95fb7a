package yadisk

import (
	"fmt"
	"strings"
)

const (
	// BaseURL is the REST API root
	BaseURL = "https://cloud-api.yandex.net:443"

	// DefaultPageSize is the listing page size
	DefaultPageSize = 20

	// PollingPage is where users can issue a debug token
	PollingPage = "https://yandex.ru/dev/disk/poligon/"
)

// Endpoint paths below BaseURL
const (
	PathDisk        = "/v1/disk"
	PathResources   = "/v1/disk/resources"
	PathUpload      = "/v1/disk/resources/upload"
	PathFlatListing = "/v1/disk/resources/files"
)

// ListFields limits listing replies to what the formatter needs
const ListFields = "items.path,items.size"

// diskPrefix starts every absolute disk path in API replies
const diskPrefix = "disk:"

// DisplayPath strips the "disk:" scheme from a path returned by the API
func DisplayPath(p string) string {
	return strings.TrimPrefix(p, diskPrefix)
}

// Join builds a disk path from a folder and a file name
func Join(folder, name string) string {
	folder = strings.TrimSuffix(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

var sizeUnits = []string{"B", "kB", "mB", "gB", "tB"}

// FormatSize renders a byte count in 1024-based units with two decimals.
// The value is divided while it exceeds 1024, so 1024 stays "1024.00 B".
func FormatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size > 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}
