// Package yadisk wraps the parts of the Yandex Disk REST API used by the
// backup: disk info, folders, uploads by URL or from a local file, the flat
// file listing and deletes with async operation polling.
package yadisk
