package saver

import (
	"fmt"

	"github.com/google/uuid"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/manifest"
	"vkbackup/pkg/media"
	"vkbackup/pkg/paginate"
	"vkbackup/pkg/ratelimit"
	"vkbackup/pkg/response"
	"vkbackup/pkg/vk"
	"vkbackup/pkg/yadisk"
)

// Stages reported to the stage hook during Backup
const (
	StageHeating     = "Heating"
	StageDownloading = "Downloading"
	StageUploading   = "Uploading"
	StageChecking    = "Checking"
)

// Saver copies photos from a PhotoSource into a Storage
type Saver struct {
	source   PhotoSource
	storage  Storage
	limiter  ratelimit.Limiter
	pageCap  int
	pageSize int
	onStage  func(stage string)
	runID    string
	logger   logger.Logger
}

// Option configures a Saver
type Option func(*Saver)

// WithLimiter sets the pause applied between page fetches and uploads
func WithLimiter(l ratelimit.Limiter) Option {
	return func(s *Saver) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithPageCap sets the largest photos.get page
func WithPageCap(n int) Option {
	return func(s *Saver) {
		if n > 0 {
			s.pageCap = n
		}
	}
}

// WithListPageSize sets the page size of disk listings
func WithListPageSize(n int) Option {
	return func(s *Saver) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the logger; the saver adds its run id to it
func WithLogger(l logger.Logger) Option {
	return func(s *Saver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStageHook registers a callback invoked as Backup enters each stage
func WithStageHook(fn func(stage string)) Option {
	return func(s *Saver) {
		s.onStage = fn
	}
}

// New creates a saver over two initialised clients
func New(source PhotoSource, storage Storage, opts ...Option) (*Saver, error) {
	if source == nil || storage == nil {
		return nil, errs.New(errs.ErrorTypeNotInitialized, "Error: not initialized")
	}

	s := &Saver{
		source:   source,
		storage:  storage,
		limiter:  ratelimit.NewFixedDelay(ratelimit.DefaultDelay),
		pageCap:  paginate.DefaultPhotoPageCap,
		pageSize: 50,
		onStage:  func(string) {},
		runID:    uuid.NewString(),
		logger:   logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithFields(map[string]interface{}{
		"component": "saver",
		"run_id":    s.runID,
	})
	return s, nil
}

// RunID identifies this saver in log output
func (s *Saver) RunID() string {
	return s.runID
}

// ImageLinks fetches up to maxQty photos of an album and turns them into
// upload descriptors. An empty userID means the token owner. A failed page
// only shortens the result.
func (s *Saver) ImageLinks(userID, album string, maxQty int) []media.Descriptor {
	if userID == "" {
		userID = s.source.UserID()
	}
	s.logger.InfoWithFields("Collecting image links", map[string]interface{}{
		"user":  userID,
		"album": album,
		"max":   maxQty,
	})

	photos := paginate.Photos(s.source.PhotoFetcher(userID, album), maxQty,
		paginate.WithPageCap(s.pageCap),
		paginate.WithLimiter(s.limiter),
		paginate.WithLogger(s.logger))

	items := make([]media.Item, len(photos))
	for i, p := range photos {
		items[i] = p.Item()
	}
	descriptors := media.Describe(items)

	s.logger.InfoWithFields("Image links collected", map[string]interface{}{"count": len(descriptors)})
	return descriptors
}

// CreateFolder creates the target folder on the disk
func (s *Saver) CreateFolder(name string) response.Envelope[yadisk.Link] {
	env := s.storage.CreateFolder(name)
	if env.Success() {
		s.logger.InfoWithFields("Folder created", map[string]interface{}{"href": env.Object.Href})
	} else {
		s.logger.WarnWithFields("Error creating folder", map[string]interface{}{"error": env.Message})
	}
	return env
}

// UploadRemoteFiles asks the disk to fetch every descriptor into folder,
// one at a time with the limiter's pause after each accepted request.
// The first rejected upload stops the loop; files already accepted stay
// on the disk. Whatever was accepted is written to the manifest at
// manifestPath, which is then uploaded into folder with overwrite.
//
// On failure the envelope keeps the entries accepted before it.
func (s *Saver) UploadRemoteFiles(folder string, files []media.Descriptor, manifestPath string) response.Envelope[[]manifest.Entry] {
	s.logger.InfoWithFields("Uploading remote files", map[string]interface{}{
		"folder": folder,
		"files":  len(files),
	})

	log := manifest.New(manifestPath, s.logger)
	var failure *errs.Error

	for i, file := range files {
		env := s.storage.UploadRemoteFile(yadisk.Join(folder, file.FileName()), file.SourceURL)
		if !env.Success() {
			failure = errs.Newf(env.Err.Type, "Uploading file failed: %s (%s)", file.SourceURL, env.Message)
			logger.LogUpload(s.logger, i+1, file.FileName(), file.SourceURL, env.Error())
			break
		}
		logger.LogUpload(s.logger, i+1, file.FileName(), file.SourceURL, nil)
		log.Add(manifest.EntryFor(file))
		logger.LogProgress(s.logger, StageUploading, i+1, len(files))
		s.limiter.Wait()
	}

	s.publishManifest(log, folder)

	if failure != nil {
		return response.Partial(log.Entries(), failure)
	}
	return response.OK(log.Entries())
}

// publishManifest saves the manifest locally and copies it to the disk.
// Either step failing is logged and does not change the upload result.
func (s *Saver) publishManifest(m *manifest.Manifest, folder string) {
	if err := m.Save(); err != nil {
		s.logger.WithError(err).Error("Failed to save manifest")
		return
	}
	env := s.storage.UploadLocalFile(m.Path(), folder+"/")
	if !env.Success() {
		s.logger.WarnWithFields("Uploading log file error", map[string]interface{}{"error": env.Message})
		return
	}
	s.logger.Info("Log file uploaded to disk")
}

// ListDisk returns "<path> (<size>)" lines for every file on the disk
func (s *Saver) ListDisk() response.Envelope[[]string] {
	env := s.storage.ListFiles(s.pageSize)
	if !env.Success() {
		s.logger.WarnWithFields("Disk listing incomplete", map[string]interface{}{
			"error": env.Message,
			"files": len(env.Object),
		})
	}
	return env
}

// UserStatus returns the VK status text of userID, or of the token owner
func (s *Saver) UserStatus(userID string) response.Envelope[string] {
	env := s.source.GetUserStatus(userID)
	if env.Success() {
		s.logger.InfoWithFields("VK user status", map[string]interface{}{"status": env.Object})
	}
	return env
}

// FileInfo reads a disk resource
func (s *Saver) FileInfo(path string) response.Envelope[yadisk.Resource] {
	return s.storage.FileInfo(path)
}

// DeleteFile removes a disk resource and waits for async deletes
func (s *Saver) DeleteFile(path string) response.Envelope[struct{}] {
	env := s.storage.DeleteFile(path)
	if env.Success() {
		s.logger.InfoWithFields("Deleted", map[string]interface{}{"path": path})
	} else {
		s.logger.WarnWithFields("Delete failed", map[string]interface{}{"path": path, "error": env.Message})
	}
	return env
}

// Plan describes one backup run
type Plan struct {
	UserID       string
	Album        string
	Folder       string
	MaxImages    int
	ManifestPath string

	// ConfirmDelete is asked whether an existing target folder should be
	// removed first. Nil keeps the folder.
	ConfirmDelete func(displayPath string) bool
}

// Report summarises a backup run
type Report struct {
	Status        string
	FolderDeleted bool
	FolderExisted bool
	Found         int
	Uploaded      []manifest.Entry
	Listing       []string
}

// Backup runs the whole transfer: status check, optional removal of an
// existing folder, folder creation (an existing folder is reused),
// link collection, upload and a final listing. A failed upload fails the
// run but the report keeps what was done.
func (s *Saver) Backup(plan Plan) response.Envelope[Report] {
	if plan.Folder == "" {
		return response.Fail[Report](errs.New(errs.ErrorTypeInvalidInput, "folder name is empty"))
	}
	if plan.Album == "" {
		plan.Album = vk.AlbumProfile
	}
	report := Report{}

	s.onStage(StageHeating)
	if status := s.UserStatus(plan.UserID); status.Success() {
		report.Status = status.Object
	}

	if info := s.FileInfo(plan.Folder); info.Success() && plan.ConfirmDelete != nil {
		if plan.ConfirmDelete(yadisk.DisplayPath(info.Object.Path)) {
			report.FolderDeleted = s.DeleteFile(plan.Folder).Success()
		}
	}

	folder := s.CreateFolder(plan.Folder)
	if !folder.Success() {
		if !yadisk.IsConflict(folder) {
			return response.Partial(report, errs.Newf(folder.Err.Type, "Something went wrong: %s", folder.Message))
		}
		report.FolderExisted = true
	}

	s.onStage(StageDownloading)
	links := s.ImageLinks(plan.UserID, plan.Album, plan.MaxImages)
	report.Found = len(links)

	s.onStage(StageUploading)
	uploaded := s.UploadRemoteFiles(plan.Folder, links, plan.ManifestPath)
	report.Uploaded = uploaded.Object

	s.onStage(StageChecking)
	report.Listing = s.ListDisk().Object

	if !uploaded.Success() {
		return response.Partial(report, uploaded.Err)
	}
	s.logger.InfoWithFields("Backup finished", map[string]interface{}{
		"found":    report.Found,
		"uploaded": len(report.Uploaded),
	})
	return response.OK(report)
}

// String renders the report for terminal output
func (r Report) String() string {
	return fmt.Sprintf("found %d, uploaded %d, %d files on disk", r.Found, len(r.Uploaded), len(r.Listing))
}
