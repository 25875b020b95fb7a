package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vkbackup/pkg/logger"
	"vkbackup/pkg/media"
)

// DefaultFileName is used when no manifest path is configured
const DefaultFileName = "images_log.json"

// Entry records one uploaded file
type Entry struct {
	Filename string `json:"filename"`
	Size     string `json:"size"`
}

// EntryFor builds the manifest entry of an uploaded descriptor
func EntryFor(d media.Descriptor) Entry {
	return Entry{Filename: d.FileName(), Size: d.VariantType}
}

// Manifest collects entries for one upload run and writes them to a
// local JSON file.
type Manifest struct {
	path    string
	entries []Entry
	logger  logger.Logger
}

// New creates an empty manifest that will be written to path
func New(path string, log logger.Logger) *Manifest {
	if path == "" {
		path = DefaultFileName
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Manifest{
		path:    path,
		entries: []Entry{},
		logger:  log.WithField("manifest", path),
	}
}

// Path returns the local file the manifest is written to
func (m *Manifest) Path() string {
	return m.path
}

// Add appends an entry
func (m *Manifest) Add(e Entry) {
	m.entries = append(m.entries, e)
}

// Entries returns a copy of the recorded entries
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of recorded entries
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Save writes the entries as a JSON array. The file is written to a
// temporary sibling first and renamed over the target, so readers never
// see a half-written manifest.
func (m *Manifest) Save() error {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}

	tempPath := m.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary manifest file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m.entries); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync manifest file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close manifest file: %w", err)
	}

	if err := os.Rename(tempPath, m.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace manifest file: %w", err)
	}

	m.logger.InfoWithFields("Manifest saved", map[string]interface{}{
		"entries": len(m.entries),
	})
	return nil
}

// Load reads a manifest written by Save. A missing file yields an empty
// list and no error.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
