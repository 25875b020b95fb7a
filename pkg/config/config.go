package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by LoadFromEnv
const EnvPrefix = "VKBACKUP_"

// Config holds all configuration options for the photo backup tool
type Config struct {
	// VK API access
	VK VKConfig `yaml:"vk" json:"vk"`

	// Yandex Disk access
	Disk DiskConfig `yaml:"disk" json:"disk"`

	// What to copy and where
	Transfer TransferConfig `yaml:"transfer" json:"transfer"`

	// Async operation polling
	Poll PollConfig `yaml:"poll" json:"poll"`

	// Shared HTTP settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// VKConfig holds VK-specific configuration
type VKConfig struct {
	Token      string `yaml:"token" json:"token"`
	UserID     string `yaml:"user_id" json:"user_id"`
	AppID      string `yaml:"app_id" json:"app_id"`
	Scope      string `yaml:"scope" json:"scope"`
	APIVersion string `yaml:"api_version" json:"api_version"`
	BaseURL    string `yaml:"base_url" json:"base_url"`
}

// DiskConfig holds Yandex Disk configuration
type DiskConfig struct {
	Token    string `yaml:"token" json:"token"`
	BaseURL  string `yaml:"base_url" json:"base_url"`
	PageSize int    `yaml:"page_size" json:"page_size"`
}

// TransferConfig holds the settings of one backup run
type TransferConfig struct {
	Folder       string        `yaml:"folder" json:"folder"`
	Album        string        `yaml:"album" json:"album"`
	MaxImages    int           `yaml:"max_images" json:"max_images"`
	PageCap      int           `yaml:"page_cap" json:"page_cap"`
	ManifestFile string        `yaml:"manifest_file" json:"manifest_file"`
	RequestDelay time.Duration `yaml:"request_delay" json:"request_delay"`
}

// PollConfig holds the schedule used to wait for async disk operations
type PollConfig struct {
	BaseDelay time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay  time.Duration `yaml:"max_delay" json:"max_delay"`
}

// HTTPConfig holds settings shared by both API clients
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Albums accepted by photos.get
var validAlbums = map[string]bool{
	"wall": true, "profile": true, "saved": true,
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		VK: VKConfig{
			Scope:      "status,friends,photos",
			APIVersion: "5.124",
			BaseURL:    "https://api.vk.com/method/",
		},
		Disk: DiskConfig{
			BaseURL:  "https://cloud-api.yandex.net:443",
			PageSize: 50,
		},
		Transfer: TransferConfig{
			Folder:       "vk_backup",
			Album:        "profile",
			MaxImages:    10,
			PageCap:      1000,
			ManifestFile: "images_log.json",
			RequestDelay: 300 * time.Millisecond,
		},
		Poll: PollConfig{
			BaseDelay: 300 * time.Millisecond,
			MaxDelay:  3 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "vkbackup/1.0",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func envString(name string, target *string) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		*target = v
	}
}

func envInt(name string, target *int) error {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*target = n
	return nil
}

func envDuration(name string, target *time.Duration) error {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*target = d
	return nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	envString("VK_TOKEN", &c.VK.Token)
	envString("VK_USER_ID", &c.VK.UserID)
	envString("VK_APP_ID", &c.VK.AppID)
	envString("VK_SCOPE", &c.VK.Scope)
	envString("VK_API_VERSION", &c.VK.APIVersion)
	envString("DISK_TOKEN", &c.Disk.Token)
	envString("FOLDER", &c.Transfer.Folder)
	envString("ALBUM", &c.Transfer.Album)
	envString("MANIFEST_FILE", &c.Transfer.ManifestFile)
	envString("LOG_LEVEL", &c.Logging.Level)
	envString("LOG_FILE", &c.Logging.File)

	var errs []error
	errs = append(errs,
		envInt("MAX_IMAGES", &c.Transfer.MaxImages),
		envInt("DISK_PAGE_SIZE", &c.Disk.PageSize),
		envDuration("REQUEST_DELAY", &c.Transfer.RequestDelay),
		envDuration("POLL_BASE_DELAY", &c.Poll.BaseDelay),
		envDuration("POLL_MAX_DELAY", &c.Poll.MaxDelay),
		envDuration("HTTP_TIMEOUT", &c.HTTP.Timeout),
	)
	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// DefaultPath is where `config init` writes a new file
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "vkbackup", "config.yaml")
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".vkbackup.yaml",
		".vkbackup.yml",
		DefaultPath(),
		filepath.Join(os.Getenv("HOME"), ".config", "vkbackup", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".vkbackup.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. Tokens are not required
// here since they may come from the credential store; see RequireTokens.
func (c *Config) Validate() error {
	var errs []error

	if c.VK.APIVersion == "" {
		errs = append(errs, errors.New("VK API version is required"))
	}
	if c.VK.BaseURL == "" || c.Disk.BaseURL == "" {
		errs = append(errs, errors.New("API base URLs are required"))
	}
	if c.Disk.PageSize <= 0 {
		errs = append(errs, errors.New("disk page size must be positive"))
	}

	if !validAlbums[c.Transfer.Album] {
		errs = append(errs, fmt.Errorf("album must be one of wall, profile, saved; got %q", c.Transfer.Album))
	}
	if c.Transfer.MaxImages <= 0 {
		errs = append(errs, errors.New("max images must be positive"))
	}
	if c.Transfer.PageCap <= 0 || c.Transfer.PageCap > 1000 {
		errs = append(errs, errors.New("page cap must be between 1 and 1000"))
	}
	if c.Transfer.ManifestFile == "" {
		errs = append(errs, errors.New("manifest file is required"))
	}
	if c.Transfer.RequestDelay < 0 {
		errs = append(errs, errors.New("request delay cannot be negative"))
	}

	if c.Poll.BaseDelay <= 0 {
		errs = append(errs, errors.New("poll base delay must be positive"))
	}
	if c.Poll.MaxDelay < c.Poll.BaseDelay {
		errs = append(errs, errors.New("poll max delay must not be below base delay"))
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("HTTP timeout must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// RequireTokens fails when either API token is missing
func (c *Config) RequireTokens() error {
	var errs []error
	if c.VK.Token == "" {
		errs = append(errs, errors.New("VK token is required"))
	}
	if c.Disk.Token == "" {
		errs = append(errs, errors.New("Yandex Disk token is required"))
	}
	return errors.Join(errs...)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["vk-token"].(string); ok && v != "" {
		c.VK.Token = v
	}
	if v, ok := flags["user"].(string); ok && v != "" {
		c.VK.UserID = v
	}
	if v, ok := flags["disk-token"].(string); ok && v != "" {
		c.Disk.Token = v
	}
	if v, ok := flags["folder"].(string); ok && v != "" {
		c.Transfer.Folder = v
	}
	if v, ok := flags["album"].(string); ok && v != "" {
		c.Transfer.Album = v
	}
	if v, ok := flags["max"].(int); ok && v > 0 {
		c.Transfer.MaxImages = v
	}
	if v, ok := flags["manifest"].(string); ok && v != "" {
		c.Transfer.ManifestFile = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := flags["log-file"].(string); ok && v != "" {
		c.Logging.File = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".vkbackup.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
