// Package saver ties the VK and Yandex Disk clients together into a
// backup run.
//
// A run collects up to N photos of an album, picks the largest variant of
// each, names files after their like count and asks the disk to fetch them
// by URL. Uploads are sequential with a fixed pause after each one and the
// first rejected upload ends the loop. Accepted files are recorded in a
// manifest that is uploaded next to them.
//
//	s, _ := saver.New(vkClient, diskClient, saver.WithLimiter(ratelimit.NewFixedDelay(0)))
//	report := s.Backup(saver.Plan{Folder: "vk_backup", Album: vk.AlbumProfile, MaxImages: 10})
package saver
