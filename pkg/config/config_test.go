package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "5.124", cfg.VK.APIVersion)
	assert.Equal(t, "profile", cfg.Transfer.Album)
	assert.Equal(t, 1000, cfg.Transfer.PageCap)
	assert.Equal(t, "images_log.json", cfg.Transfer.ManifestFile)
	assert.Equal(t, 300*time.Millisecond, cfg.Transfer.RequestDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.Poll.BaseDelay)
	assert.Equal(t, 3*time.Second, cfg.Poll.MaxDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VKBACKUP_VK_TOKEN", "vk-token")
	t.Setenv("VKBACKUP_VK_USER_ID", "1")
	t.Setenv("VKBACKUP_DISK_TOKEN", "disk-token")
	t.Setenv("VKBACKUP_ALBUM", "wall")
	t.Setenv("VKBACKUP_MAX_IMAGES", "25")
	t.Setenv("VKBACKUP_POLL_MAX_DELAY", "5s")
	t.Setenv("VKBACKUP_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "vk-token", cfg.VK.Token)
	assert.Equal(t, "1", cfg.VK.UserID)
	assert.Equal(t, "disk-token", cfg.Disk.Token)
	assert.Equal(t, "wall", cfg.Transfer.Album)
	assert.Equal(t, 25, cfg.Transfer.MaxImages)
	assert.Equal(t, 5*time.Second, cfg.Poll.MaxDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NoError(t, cfg.RequireTokens())
}

func TestLoadFromEnvInvalidNumbers(t *testing.T) {
	t.Setenv("VKBACKUP_MAX_IMAGES", "ten")
	t.Setenv("VKBACKUP_REQUEST_DELAY", "soon")

	cfg := DefaultConfig()
	err := cfg.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VKBACKUP_MAX_IMAGES")
	assert.Contains(t, err.Error(), "VKBACKUP_REQUEST_DELAY")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"unknown album", func(c *Config) { c.Transfer.Album = "stories" }, "album must be one of"},
		{"zero max images", func(c *Config) { c.Transfer.MaxImages = 0 }, "max images must be positive"},
		{"page cap above api limit", func(c *Config) { c.Transfer.PageCap = 1001 }, "page cap"},
		{"poll max below base", func(c *Config) { c.Poll.MaxDelay = 100 * time.Millisecond }, "poll max delay"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid log level"},
		{"zero disk page", func(c *Config) { c.Disk.PageSize = 0 }, "disk page size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireTokens(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.RequireTokens()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VK token")
	assert.Contains(t, err.Error(), "Yandex Disk token")
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"folder":    "Test",
		"album":     "saved",
		"max":       3,
		"log-level": "",
		"user":      "42",
	})

	assert.Equal(t, "Test", cfg.Transfer.Folder)
	assert.Equal(t, "saved", cfg.Transfer.Album)
	assert.Equal(t, 3, cfg.Transfer.MaxImages)
	assert.Equal(t, "info", cfg.Logging.Level, "empty flags keep the previous value")
	assert.Equal(t, "42", cfg.VK.UserID)
}

func TestSaveAndLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Transfer.Folder = "Archive"
	cfg.Poll.MaxDelay = 6 * time.Second
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, "Archive", loaded.Transfer.Folder)
	assert.Equal(t, 6*time.Second, loaded.Poll.MaxDelay)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transfer:\n  folder: FromFile\n  album: wall\n"), 0600))
	t.Setenv("VKBACKUP_FOLDER", "FromEnv")

	cfg, err := Load(path, map[string]interface{}{"max": 7})
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", cfg.Transfer.Folder)
	assert.Equal(t, "wall", cfg.Transfer.Album)
	assert.Equal(t, 7, cfg.Transfer.MaxImages)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}
