// Package manifest records which files an upload run sent to the disk.
//
// The manifest is a JSON array of {"filename", "size"} objects, where size
// is the VK variant letter of the uploaded image. It is saved atomically
// and then uploaded next to the images.
package manifest
